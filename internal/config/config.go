package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Gemini      GeminiConfig      `yaml:"gemini"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	TTS         TTSConfig         `yaml:"tts"`
	Paths       PathsConfig       `yaml:"paths"`
	Analysis    AnalysisConfig    `yaml:"analysis"`
	Index       IndexConfig       `yaml:"index"`
	Database    DatabaseConfig    `yaml:"database"`
	Redis       RedisConfig       `yaml:"redis"`
	Kafka       KafkaConfig       `yaml:"kafka"`
	Server      ServerConfig      `yaml:"server"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type GeminiConfig struct {
	APIKeys    []string `yaml:"api_keys"`
	Model      string   `yaml:"model"`
	EmbedModel string   `yaml:"embed_model"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
}

type TTSConfig struct {
	BinaryPath string `yaml:"binary_path"`
	Voice      string `yaml:"voice"`
	Player     string `yaml:"player"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
	Index    string `yaml:"index"`
}

// AnalysisConfig selects the word list fed to OME ("hap" keeps hapaxes,
// "no_hap" drops them) and the zone membership rules.
type AnalysisConfig struct {
	Mode     string `yaml:"mode"`
	Disjoint bool   `yaml:"disjoint_zones"`
}

// IndexConfig points at the SQL table documents are indexed from.
type IndexConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Table  string `yaml:"table"`
	TopK   int    `yaml:"top_k"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
	ImportWorkers int `yaml:"import_workers"`
}

func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	switch c.Analysis.Mode {
	case "":
		c.Analysis.Mode = "hap"
	case "hap", "no_hap":
	default:
		return fmt.Errorf("analysis.mode must be 'hap' or 'no_hap', got %q", c.Analysis.Mode)
	}
	switch c.Index.Driver {
	case "", "postgres", "sqlite":
	default:
		return fmt.Errorf("index.driver must be 'postgres' or 'sqlite', got %q", c.Index.Driver)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", c.Logging.Format)
	}
	if c.Performance.MaxConcurrent < 0 {
		return fmt.Errorf("performance.max_concurrent must not be negative")
	}

	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Index == "" {
		c.Paths.Index = "data/index"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Performance.ImportWorkers == 0 {
		c.Performance.ImportWorkers = 4
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.EmbedModel == "" {
		c.Gemini.EmbedModel = "text-embedding-004"
	}
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "pt"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.TTS.BinaryPath == "" {
		c.TTS.BinaryPath = "espeak-ng"
	}
	if c.TTS.Voice == "" {
		c.TTS.Voice = "pt-br"
	}
	if c.Index.TopK == 0 {
		c.Index.TopK = 3
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "analysis.completed"
	}
	if c.Redis.CacheTTL == 0 {
		c.Redis.CacheTTL = 24 * time.Hour
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	return nil
}
