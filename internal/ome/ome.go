// Package ome computes the average evocation order (OME) of every distinct
// word in a token sequence: the mean of the 1-based positions at which the
// word occurs.
package ome

import (
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
)

// WordStat is the per-word record built while scanning the sequence.
type WordStat struct {
	Word      string  `json:"word"`
	Positions []int   `json:"positions"`
	Count     int     `json:"count"`
	OME       float64 `json:"ome"`
}

// Result holds the ranked vocabulary and the OME table. Stats is in
// first-encounter order; Ranked is sorted by OME descending.
type Result struct {
	Ranked []string           `json:"ranked"`
	Table  map[string]float64 `json:"ome"`
	Stats  []WordStat         `json:"stats"`
	Tokens int                `json:"tokens"`
}

// Compute builds order lists, frequencies and OME values for tokens.
func Compute(tokens []string) (Result, error) {
	if len(tokens) == 0 {
		return Result{}, fmt.Errorf("compute ome: %w", apperrors.ErrEmptyInput)
	}

	index := make(map[string]int, len(tokens))
	stats := make([]WordStat, 0, len(tokens)/2+1)
	for i, tok := range tokens {
		pos := i + 1
		idx, ok := index[tok]
		if !ok {
			idx = len(stats)
			index[tok] = idx
			stats = append(stats, WordStat{Word: tok})
		}
		stats[idx].Positions = append(stats[idx].Positions, pos)
	}

	table := make(map[string]float64, len(stats))
	for i := range stats {
		s := &stats[i]
		s.Count = len(s.Positions)
		sum := 0
		for _, p := range s.Positions {
			sum += p
		}
		s.OME = float64(sum) / float64(s.Count)
		table[s.Word] = s.OME
	}

	ranked := make([]string, len(stats))
	for i, s := range stats {
		ranked[i] = s.Word
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return table[ranked[i]] > table[ranked[j]]
	})

	return Result{
		Ranked: ranked,
		Table:  table,
		Stats:  stats,
		Tokens: len(tokens),
	}, nil
}

// ComputeText splits text on whitespace and computes OME over the words.
func ComputeText(text string) (Result, error) {
	return Compute(strings.Fields(text))
}

// Frequencies returns word -> occurrence count.
func (r Result) Frequencies() map[string]int {
	out := make(map[string]int, len(r.Stats))
	for _, s := range r.Stats {
		out[s.Word] = s.Count
	}
	return out
}

// OrderLists returns word -> 1-based positions.
func (r Result) OrderLists() map[string][]int {
	out := make(map[string][]int, len(r.Stats))
	for _, s := range r.Stats {
		out[s.Word] = append([]int(nil), s.Positions...)
	}
	return out
}
