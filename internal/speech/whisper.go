package speech

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
)

// AudioExt reports whether path looks like an audio file Recognize accepts.
func AudioExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".mp3", ".m4a", ".ogg", ".flac":
		return true
	}
	return false
}

func (w *implWhisper) Recognize(ctx context.Context, audioPath string) (string, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return "", fmt.Errorf("audio %s: %w", audioPath, apperrors.ErrNotFound)
	}

	wavPath, err := w.convert(ctx, audioPath)
	if err != nil {
		return "", err
	}
	defer os.Remove(wavPath)

	txtPath, err := w.transcribe(ctx, wavPath)
	if err != nil {
		return "", err
	}
	defer os.Remove(txtPath)

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// convert resamples audioPath to the 16 kHz mono PCM WAV whisper.cpp expects.
func (w *implWhisper) convert(ctx context.Context, audioPath string) (string, error) {
	dir := w.cfg.TempDir
	if dir == "" {
		dir = filepath.Dir(audioPath)
	} else if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	wavPath := filepath.Join(dir, base+"_temp.wav")

	w.logger.Info(ctx, "speech.Recognize: converting %s", audioPath)
	args := []string{
		"-i", audioPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		wavPath,
	}
	if _, err := w.executor.Execute(ctx, w.cfg.FFmpegPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg convert audio: %w", err)
	}
	return wavPath, nil
}

func (w *implWhisper) transcribe(ctx context.Context, wavPath string) (string, error) {
	outputPrefix := strings.TrimSuffix(wavPath, filepath.Ext(wavPath))

	w.logger.Info(ctx, "speech.Recognize: transcribing with %d threads: %s", w.cfg.Threads, wavPath)
	args := []string{
		"-m", w.cfg.ModelPath,
		"-f", wavPath,
		"-otxt",
		"-l", w.cfg.Language,
		"-t", strconv.Itoa(w.cfg.Threads),
		"-bo", "5",
		"--output-file", outputPrefix,
	}
	if w.cfg.Prompt != "" {
		args = append(args, "--prompt", w.cfg.Prompt)
	}
	if _, err := w.executor.Execute(ctx, w.cfg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}
	return outputPrefix + ".txt", nil
}
