package summarizer

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/textlab/internal/cleaner"
	"github.com/nguyentantai21042004/textlab/internal/language"
	apperrors "github.com/nguyentantai21042004/textlab/pkg/errors"
)

var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]*`)

// Summarize joins the best sentences in their original order.
func (s *implExtractive) Summarize(ctx context.Context, text string) (string, error) {
	sentences, best := Rank(text, s.sentences)
	if len(sentences) == 0 {
		return "", fmt.Errorf("summarize: %w", apperrors.ErrEmptyInput)
	}
	return strings.Join(best, " "), nil
}

// SplitSentences breaks text on terminal punctuation, keeping it.
func SplitSentences(text string) []string {
	var out []string
	for _, m := range sentencePattern.FindAllString(text, -1) {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// Rank scores each sentence by the normalized corpus frequency of its
// content words and returns all sentences plus the top n, the latter in
// text order. Ties go to the earlier sentence. n <= 0 selects nothing.
func Rank(text string, n int) (sentences, best []string) {
	sentences = SplitSentences(text)
	if len(sentences) == 0 {
		return nil, nil
	}
	if n <= 0 {
		return sentences, []string{}
	}
	if n >= len(sentences) {
		return sentences, append([]string(nil), sentences...)
	}

	lang := language.Detect(text).Short
	freq := make(map[string]int)
	maxFreq := 0
	words := make([][]string, len(sentences))
	for i, sent := range sentences {
		words[i] = cleaner.Clean(sent, lang).Words
		for _, w := range words[i] {
			freq[w]++
			if freq[w] > maxFreq {
				maxFreq = freq[w]
			}
		}
	}

	scores := make([]float64, len(sentences))
	for i, ws := range words {
		if len(ws) == 0 || maxFreq == 0 {
			continue
		}
		total := 0.0
		for _, w := range ws {
			total += float64(freq[w]) / float64(maxFreq)
		}
		scores[i] = total / float64(len(ws))
	}

	idx := make([]int, len(sentences))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })
	top := idx[:n]
	sort.Ints(top)

	best = make([]string, 0, n)
	for _, i := range top {
		best = append(best, sentences[i])
	}
	return sentences, best
}
