// Package prototype partitions a ranked vocabulary into the four zones of
// prototype analysis: a core and three peripheral zones.
package prototype

import (
	"fmt"
	"math"

	"github.com/nguyentantai21042004/textlab/internal/ome"
	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
)

const (
	lowerRankRatio = 0.25
	upperRankRatio = 0.75
)

// Entry is a word with its OME divided by the mean OME of the table.
type Entry struct {
	Word       string  `json:"word"`
	Normalized float64 `json:"normalized_ome"`
}

// Zones is the result of a prototype analysis. Core holds words whose
// normalized OME exceeds 1; the peripheral zones follow rank bands.
type Zones struct {
	Core    []Entry `json:"core"`
	Zone1   []Entry `json:"zone1"`
	Zone2   []Entry `json:"zone2"`
	Zone3   []Entry `json:"zone3"`
	MeanOME float64 `json:"mean_ome"`
}

// Counts returns the sizes of core, zone 1, zone 2 and zone 3.
func (z Zones) Counts() [4]int {
	return [4]int{len(z.Core), len(z.Zone1), len(z.Zone2), len(z.Zone3)}
}

// Options tweaks classification. The zero value reproduces the historical
// membership rules, where peripheral words ranked past the first quartile
// are also copied into zone 1 (or zone 2).
type Options struct {
	Disjoint bool
}

// MismatchError reports ranked words and an OME table that disagree.
type MismatchError struct {
	RankedLen int
	TableLen  int
	Word      string
	Reason    string
}

func (e *MismatchError) Error() string {
	if e.Word != "" {
		return fmt.Sprintf("%s: %s %q (ranked=%d table=%d)", apperrors.ErrShapeMismatch, e.Reason, e.Word, e.RankedLen, e.TableLen)
	}
	return fmt.Sprintf("%s: %s (ranked=%d table=%d)", apperrors.ErrShapeMismatch, e.Reason, e.RankedLen, e.TableLen)
}

func (e *MismatchError) Unwrap() error {
	return apperrors.ErrShapeMismatch
}

// Classify assigns every ranked word to zones using its OME normalized by
// the table mean.
func Classify(ranked []string, table map[string]float64) (Zones, error) {
	return ClassifyWith(ranked, table, Options{})
}

// ClassifyResult classifies the output of ome.Compute.
func ClassifyResult(res ome.Result) (Zones, error) {
	return Classify(res.Ranked, res.Table)
}

// ClassifyWith is Classify with explicit options. ranked must list every
// key of table exactly once. OME values must be finite with a positive mean.
func ClassifyWith(ranked []string, table map[string]float64, opts Options) (Zones, error) {
	if ranked == nil || table == nil {
		return Zones{}, fmt.Errorf("classify: ranked words must be a list and ome a mapping: %w", apperrors.ErrTypeMismatch)
	}
	if len(table) == 0 {
		return Zones{}, fmt.Errorf("classify: %w", apperrors.ErrEmptyInput)
	}
	if err := checkShape(ranked, table); err != nil {
		return Zones{}, err
	}

	sum := 0.0
	for _, w := range ranked {
		v := table[w]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Zones{}, fmt.Errorf("classify: ome of %q is %v: %w", w, v, apperrors.ErrInvalidInput)
		}
		sum += v
	}
	mean := sum / float64(len(table))
	if !(mean > 0) || math.IsInf(mean, 0) {
		return Zones{}, fmt.Errorf("classify: mean ome must be positive, got %v: %w", mean, apperrors.ErrInvalidInput)
	}

	z := Zones{
		Core:    []Entry{},
		Zone1:   []Entry{},
		Zone2:   []Entry{},
		Zone3:   []Entry{},
		MeanOME: mean,
	}
	in1 := map[string]struct{}{}
	in2 := map[string]struct{}{}
	add1 := func(e Entry) {
		z.Zone1 = append(z.Zone1, e)
		in1[e.Word] = struct{}{}
	}
	add2 := func(e Entry) {
		z.Zone2 = append(z.Zone2, e)
		in2[e.Word] = struct{}{}
	}

	n := float64(len(ranked))
	for i, w := range ranked {
		e := Entry{Word: w, Normalized: table[w] / mean}
		if e.Normalized > 1 {
			z.Core = append(z.Core, e)
			continue
		}

		rank := float64(i)
		switch {
		case rank < lowerRankRatio*n:
			add1(e)
		case rank < upperRankRatio*n:
			add2(e)
			if opts.Disjoint {
				continue
			}
			if _, ok := in1[w]; !ok {
				add1(e)
			}
		default:
			z.Zone3 = append(z.Zone3, e)
			if opts.Disjoint {
				continue
			}
			_, inZone1 := in1[w]
			_, inZone2 := in2[w]
			// ranked words are unique, so only the first case can match here.
			switch {
			case !inZone1 && !inZone2:
				add1(e)
			case !inZone1:
				add2(e)
			case !inZone2:
				add2(e)
			}
		}
	}
	return z, nil
}

func checkShape(ranked []string, table map[string]float64) error {
	if len(ranked) != len(table) {
		return &MismatchError{RankedLen: len(ranked), TableLen: len(table), Reason: "cardinality differs"}
	}
	seen := make(map[string]struct{}, len(ranked))
	for _, w := range ranked {
		if _, ok := table[w]; !ok {
			return &MismatchError{RankedLen: len(ranked), TableLen: len(table), Word: w, Reason: "ranked word missing from table"}
		}
		if _, dup := seen[w]; dup {
			return &MismatchError{RankedLen: len(ranked), TableLen: len(table), Word: w, Reason: "ranked word repeated"}
		}
		seen[w] = struct{}{}
	}
	return nil
}
