package speech

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/nguyentantai21042004/textlab/internal/logger"
	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
)

type call struct {
	name string
	args []string
}

// fakeExecutor records calls. When it sees whisper's --output-file it
// writes the transcript whisper.cpp would produce.
type fakeExecutor struct {
	calls      []call
	transcript string
	failOn     string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	if name == f.failOn {
		return "", errors.New(name + " failed")
	}
	for i, a := range args {
		if a == "--output-file" && i+1 < len(args) {
			if err := os.WriteFile(args[i+1]+".txt", []byte(f.transcript), 0o644); err != nil {
				return "", err
			}
		}
	}
	return "", nil
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func TestRecognize(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "aula.mp3")
	if err := os.WriteFile(audio, []byte("ID3"), 0o644); err != nil {
		t.Fatal(err)
	}
	tmp := filepath.Join(dir, "tmp")
	exec := &fakeExecutor{transcript: " olá turma \n"}
	rec := NewWhisper(WhisperConfig{ModelPath: "ggml-base.bin", TempDir: tmp}, exec, logger.Nop())

	got, err := rec.Recognize(context.Background(), audio)
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if got != "olá turma" {
		t.Errorf("Recognize() = %q", got)
	}
	if len(exec.calls) != 2 {
		t.Fatalf("got %d calls, want 2", len(exec.calls))
	}
	if exec.calls[0].name != "ffmpeg" || exec.calls[1].name != "whisper-cli" {
		t.Errorf("calls = %v", exec.calls)
	}
	wav := filepath.Join(tmp, "aula_temp.wav")
	if last := exec.calls[0].args[len(exec.calls[0].args)-1]; last != wav {
		t.Errorf("ffmpeg output = %s, want %s", last, wav)
	}
	if !contains(exec.calls[1].args, "-otxt") || !contains(exec.calls[1].args, "pt") {
		t.Errorf("whisper args = %v", exec.calls[1].args)
	}
	if _, err := os.Stat(filepath.Join(tmp, "aula_temp.txt")); !os.IsNotExist(err) {
		t.Errorf("transcript should be removed, stat err = %v", err)
	}
}

func TestRecognizeErrors(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "a.wav")
	if err := os.WriteFile(audio, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	rec := NewWhisper(WhisperConfig{}, &fakeExecutor{}, logger.Nop())
	if _, err := rec.Recognize(context.Background(), filepath.Join(dir, "missing.wav")); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("missing audio: err = %v", err)
	}

	rec = NewWhisper(WhisperConfig{}, &fakeExecutor{failOn: "ffmpeg"}, logger.Nop())
	if _, err := rec.Recognize(context.Background(), audio); err == nil {
		t.Error("ffmpeg failure should be returned")
	}
}

func TestSynthesize(t *testing.T) {
	tests := []struct {
		name      string
		cfg       EspeakConfig
		failOn    string
		wantCalls []call
	}{
		{
			name: "default voice",
			wantCalls: []call{
				{"espeak-ng", []string{"-v", "pt-br", "-w", "out.wav", "bom dia"}},
			},
		},
		{
			name: "with player",
			cfg:  EspeakConfig{Voice: "en", Player: "aplay"},
			wantCalls: []call{
				{"espeak-ng", []string{"-v", "en", "-w", "out.wav", "bom dia"}},
				{"aplay", []string{"out.wav"}},
			},
		},
		{
			name:   "player failure is not fatal",
			cfg:    EspeakConfig{Player: "aplay"},
			failOn: "aplay",
			wantCalls: []call{
				{"espeak-ng", []string{"-v", "pt-br", "-w", "out.wav", "bom dia"}},
				{"aplay", []string{"out.wav"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{failOn: tt.failOn}
			if err := NewEspeak(tt.cfg, exec, logger.Nop()).Synthesize(context.Background(), " bom dia ", "out.wav"); err != nil {
				t.Fatalf("Synthesize() error = %v", err)
			}
			if !reflect.DeepEqual(exec.calls, tt.wantCalls) {
				t.Errorf("calls = %v, want %v", exec.calls, tt.wantCalls)
			}
		})
	}
}

func TestSynthesizeEmpty(t *testing.T) {
	err := NewEspeak(EspeakConfig{}, &fakeExecutor{}, logger.Nop()).Synthesize(context.Background(), "  ", "out.wav")
	if !errors.Is(err, apperrors.ErrEmptyInput) {
		t.Fatalf("err = %v", err)
	}
}

func TestOutputName(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	if got := OutputName(false, now); got != "audio.wav" {
		t.Errorf("OutputName(false) = %q", got)
	}
	if got := OutputName(true, now); got != "2024-03-09_14-05-07.wav" {
		t.Errorf("OutputName(true) = %q", got)
	}
}

func TestAudioExt(t *testing.T) {
	for path, want := range map[string]bool{"a.WAV": true, "b.mp3": true, "c.txt": false, "d": false} {
		if got := AudioExt(path); got != want {
			t.Errorf("AudioExt(%q) = %v", path, got)
		}
	}
}

func contains(args []string, s string) bool {
	for _, a := range args {
		if a == s {
			return true
		}
	}
	return false
}
