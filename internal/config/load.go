package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML config file (optional when path is empty), applies
// TEXTLAB_* environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			Input:  "data/input",
			Output: "data/output",
		},
		Analysis: AnalysisConfig{Mode: "hap"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GEMINI_API_KEYS"); v != "" {
		cfg.Gemini.APIKeys = splitList(v)
	} else if v := os.Getenv("GEMINI_API_KEY"); v != "" && len(cfg.Gemini.APIKeys) == 0 {
		cfg.Gemini.APIKeys = []string{v}
	}
	if v := os.Getenv("TEXTLAB_GEMINI_MODEL"); v != "" {
		cfg.Gemini.Model = v
	}
	if v := os.Getenv("TEXTLAB_INPUT_DIR"); v != "" {
		cfg.Paths.Input = v
	}
	if v := os.Getenv("TEXTLAB_OUTPUT_DIR"); v != "" {
		cfg.Paths.Output = v
	}
	if v := os.Getenv("TEXTLAB_ANALYSIS_MODE"); v != "" {
		cfg.Analysis.Mode = v
	}
	if v := os.Getenv("TEXTLAB_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("TEXTLAB_INDEX_DRIVER"); v != "" {
		cfg.Index.Driver = v
	}
	if v := os.Getenv("TEXTLAB_INDEX_DSN"); v != "" {
		cfg.Index.DSN = v
	}
	if v := os.Getenv("TEXTLAB_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("TEXTLAB_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	if v := os.Getenv("TEXTLAB_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("TEXTLAB_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Performance.MaxConcurrent = n
		}
	}
	if v := os.Getenv("TEXTLAB_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TEXTLAB_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
