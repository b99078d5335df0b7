package entities

import (
	"context"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nguyentantai21042004/textlab/internal/cleaner"
)

var sentencePattern = regexp.MustCompile(`[^.!?]+`)

// connectors may sit inside a multi-word name ("Universidade de São Paulo").
var connectors = map[string]struct{}{
	"de": {}, "da": {}, "do": {}, "das": {}, "dos": {}, "e": {}, "of": {}, "the": {},
}

func (r *implHeuristic) Recognize(ctx context.Context, text, lang string) ([]Entity, error) {
	stop := cleaner.Stopwords(lang)
	var out []Entity
	for _, sentence := range sentencePattern.FindAllString(text, -1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tokens := cleaner.Tokenize(sentence)
		var run []string
		flush := func() {
			// drop trailing connectors
			for len(run) > 0 {
				if _, ok := connectors[run[len(run)-1]]; !ok {
					break
				}
				run = run[:len(run)-1]
			}
			if len(run) > 0 {
				out = append(out, Entity{Text: strings.Join(run, " "), Label: "MISC"})
			}
			run = nil
		}
		for i, tok := range tokens {
			lower := strings.ToLower(tok)
			switch {
			case i > 0 && isCapitalized(tok) && (len(run) > 0 || !isStopword(stop, lower)):
				run = append(run, tok)
			case len(run) > 0 && tok == lower && isConnector(lower):
				run = append(run, tok)
			default:
				flush()
			}
		}
		flush()
	}
	return out, nil
}

func isCapitalized(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return unicode.IsUpper(r)
}

func isConnector(w string) bool {
	_, ok := connectors[w]
	return ok
}

func isStopword(stop map[string]struct{}, w string) bool {
	_, ok := stop[w]
	return ok
}
