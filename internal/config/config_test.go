package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Paths: PathsConfig{
					Input:  "data/input",
					Output: "data/output",
				},
			},
			wantErr: false,
		},
		{
			name: "missing paths",
			config: Config{
				Paths: PathsConfig{},
			},
			wantErr: true,
		},
		{
			name: "unknown analysis mode",
			config: Config{
				Paths:    PathsConfig{Input: "in", Output: "out"},
				Analysis: AnalysisConfig{Mode: "maybe_hap"},
			},
			wantErr: true,
		},
		{
			name: "unknown index driver",
			config: Config{
				Paths: PathsConfig{Input: "in", Output: "out"},
				Index: IndexConfig{Driver: "mysql"},
			},
			wantErr: true,
		},
		{
			name: "negative concurrency",
			config: Config{
				Paths:       PathsConfig{Input: "in", Output: "out"},
				Performance: PerformanceConfig{MaxConcurrent: -1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := Config{Paths: PathsConfig{Input: "in", Output: "out"}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Analysis.Mode != "hap" {
		t.Errorf("Mode = %q, want hap", cfg.Analysis.Mode)
	}
	if cfg.Performance.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %d, want 2", cfg.Performance.MaxConcurrent)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q", cfg.Gemini.Model)
	}
	if cfg.TTS.Voice != "pt-br" || cfg.Whisper.Language != "pt" {
		t.Errorf("speech defaults = %q/%q", cfg.TTS.Voice, cfg.Whisper.Language)
	}
	if cfg.Redis.CacheTTL != 24*time.Hour {
		t.Errorf("CacheTTL = %v", cfg.Redis.CacheTTL)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
gemini:
  api_keys: ["k1", "k2"]
  model: "gemini-2.0-flash"

paths:
  input: "corpus/inbox"
  output: "corpus/reports"

analysis:
  mode: "no_hap"
  disjoint_zones: true

index:
  driver: "sqlite"
  dsn: "docs.db"
  table: "textos"

redis:
  cache_ttl: 1h

logging:
  level: "debug"
  format: "json"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GEMINI_API_KEYS", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg.Gemini.APIKeys, []string{"k1", "k2"}) {
		t.Errorf("APIKeys = %v", cfg.Gemini.APIKeys)
	}
	if cfg.Paths.Input != "corpus/inbox" {
		t.Errorf("Input = %v, want %v", cfg.Paths.Input, "corpus/inbox")
	}
	if cfg.Analysis.Mode != "no_hap" || !cfg.Analysis.Disjoint {
		t.Errorf("Analysis = %+v", cfg.Analysis)
	}
	if cfg.Index.Table != "textos" || cfg.Index.TopK != 3 {
		t.Errorf("Index = %+v", cfg.Index)
	}
	if cfg.Redis.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v", cfg.Redis.CacheTTL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEYS", "a, b ,")
	t.Setenv("TEXTLAB_ANALYSIS_MODE", "no_hap")
	t.Setenv("TEXTLAB_KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg.Gemini.APIKeys, []string{"a", "b"}) {
		t.Errorf("APIKeys = %v", cfg.Gemini.APIKeys)
	}
	if cfg.Analysis.Mode != "no_hap" {
		t.Errorf("Mode = %q", cfg.Analysis.Mode)
	}
	if len(cfg.Kafka.Brokers) != 2 {
		t.Errorf("Brokers = %v", cfg.Kafka.Brokers)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
