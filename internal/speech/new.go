package speech

import (
	"github.com/nguyentantai21042004/textlab/internal/logger"
	"github.com/nguyentantai21042004/textlab/pkg/executor"
)

type WhisperConfig struct {
	FFmpegPath string
	BinaryPath string
	ModelPath  string
	Language   string
	Prompt     string
	Threads    int
	TempDir    string
}

type EspeakConfig struct {
	BinaryPath string
	Voice      string
	// Player, when set, is run with the output file after synthesis.
	Player string
}

type implWhisper struct {
	cfg      WhisperConfig
	executor executor.Executor
	logger   logger.Logger
}

// NewWhisper creates a Recognizer backed by ffmpeg and whisper.cpp.
func NewWhisper(cfg WhisperConfig, exec executor.Executor, l logger.Logger) Recognizer {
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = "ffmpeg"
	}
	if cfg.BinaryPath == "" {
		cfg.BinaryPath = "whisper-cli"
	}
	if cfg.Language == "" {
		cfg.Language = "pt"
	}
	if cfg.Threads <= 0 {
		cfg.Threads = 4
	}
	return &implWhisper{cfg: cfg, executor: exec, logger: l}
}

type implEspeak struct {
	cfg      EspeakConfig
	executor executor.Executor
	logger   logger.Logger
}

// NewEspeak creates a Synthesizer backed by espeak-ng.
func NewEspeak(cfg EspeakConfig, exec executor.Executor, l logger.Logger) Synthesizer {
	if cfg.BinaryPath == "" {
		cfg.BinaryPath = "espeak-ng"
	}
	if cfg.Voice == "" {
		cfg.Voice = "pt-br"
	}
	return &implEspeak{cfg: cfg, executor: exec, logger: l}
}
