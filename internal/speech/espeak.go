package speech

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
)

// OutputName is the file a spoken text is written to: a fixed name that
// is overwritten each time, or a timestamped one when save is set.
func OutputName(save bool, now time.Time) string {
	if !save {
		return "audio.wav"
	}
	return now.Format("2006-01-02_15-04-05") + ".wav"
}

func (e *implEspeak) Synthesize(ctx context.Context, text, outPath string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("nothing to speak: %w", apperrors.ErrEmptyInput)
	}

	e.logger.Info(ctx, "speech.Synthesize: %d chars with voice %s to %s", len(text), e.cfg.Voice, outPath)
	if _, err := e.executor.Execute(ctx, e.cfg.BinaryPath, "-v", e.cfg.Voice, "-w", outPath, text); err != nil {
		return fmt.Errorf("espeak synthesize: %w", err)
	}

	if e.cfg.Player != "" {
		if _, err := e.executor.Execute(ctx, e.cfg.Player, outPath); err != nil {
			// the file is already written
			e.logger.Warn(ctx, "speech.Synthesize: playback failed: %v", err)
		}
	}
	return nil
}
