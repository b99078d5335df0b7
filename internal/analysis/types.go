package analysis

import (
	"fmt"
	"time"

	"github.com/nguyentantai21042004/textlab/internal/cleaner"
	"github.com/nguyentantai21042004/textlab/internal/entities"
	"github.com/nguyentantai21042004/textlab/internal/language"
	"github.com/nguyentantai21042004/textlab/internal/ome"
	"github.com/nguyentantai21042004/textlab/internal/prototype"
	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
)

// Mode selects which cleaned word list feeds the OME computation.
type Mode string

const (
	ModeHapax   Mode = "hap"
	ModeNoHapax Mode = "no_hap"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeHapax, ModeNoHapax:
		return Mode(s), nil
	}
	return "", fmt.Errorf("mode must be %q or %q, got %q: %w", ModeHapax, ModeNoHapax, s, apperrors.ErrInvalidInput)
}

// Report is everything one analysis produced.
type Report struct {
	Source    string            `json:"source"`
	Mode      Mode              `json:"mode"`
	Language  language.Info     `json:"language"`
	Entities  []entities.Entity `json:"entities"`
	Cleaned   cleaner.Result    `json:"cleaned"`
	OME       ome.Result        `json:"ome"`
	Zones     prototype.Zones   `json:"zones"`
	CreatedAt time.Time         `json:"created_at"`
	Duration  time.Duration     `json:"duration_ns"`
	Text      string            `json:"-"`
}

// Counts returns the sizes of core, zone 1, zone 2 and zone 3.
func (r *Report) Counts() [4]int {
	return r.Zones.Counts()
}
