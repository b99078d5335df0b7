// Package cleaner turns raw corpus text into the filtered word list that the
// evocation analysis runs on.
package cleaner

import (
	"bufio"
	"bytes"
	"embed"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

//go:embed stopwords/*.txt
var stopwordFS embed.FS

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’\-][\p{L}\p{N}]+)*`)

// Result holds every list derived from one cleaning pass. All lists keep
// text order; Hapaxes keeps first-encounter order.
type Result struct {
	Words        []string    `json:"words"`
	Bigrams      [][2]string `json:"bigrams"`
	Trigrams     [][3]string `json:"trigrams"`
	Hapaxes      []string    `json:"hapaxes"`
	WordsNoHapax []string    `json:"words_no_hapax"`
}

// Clean tokenizes text, lowercases it, drops stopwords for lang, strips
// digits and discards words shorter than two characters. lang accepts
// "english", "portuguese" or their ISO 639-1 codes; any other value
// disables stopword removal.
func Clean(text, lang string) Result {
	stop := Stopwords(lang)

	words := make([]string, 0)
	for _, tok := range Tokenize(text) {
		w := strings.ToLower(tok)
		if _, ok := stop[w]; ok {
			continue
		}
		w = stripDigits(w)
		if utf8.RuneCountInString(w) < 2 {
			continue
		}
		words = append(words, w)
	}

	res := Result{
		Words:        words,
		Bigrams:      make([][2]string, 0),
		Trigrams:     make([][3]string, 0),
		Hapaxes:      make([]string, 0),
		WordsNoHapax: make([]string, 0, len(words)),
	}
	for i := 0; i+1 < len(words); i++ {
		res.Bigrams = append(res.Bigrams, [2]string{words[i], words[i+1]})
	}
	for i := 0; i+2 < len(words); i++ {
		res.Trigrams = append(res.Trigrams, [3]string{words[i], words[i+1], words[i+2]})
	}

	counts := make(map[string]int, len(words))
	order := make([]string, 0)
	for _, w := range words {
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	for _, w := range order {
		if counts[w] == 1 {
			res.Hapaxes = append(res.Hapaxes, w)
		}
	}
	for _, w := range words {
		if counts[w] > 1 {
			res.WordsNoHapax = append(res.WordsNoHapax, w)
		}
	}
	return res
}

// Tokenize splits text into word tokens. Punctuation never forms a token;
// apostrophes and hyphens are kept inside words ("d'água", "fazê-lo").
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}

// Stopwords returns the stopword set for lang, or an empty set when the
// language has no bundled list.
func Stopwords(lang string) map[string]struct{} {
	name := ""
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "english", "en":
		name = "english"
	case "portuguese", "pt":
		name = "portuguese"
	default:
		return map[string]struct{}{}
	}

	data, err := stopwordFS.ReadFile("stopwords/" + name + ".txt")
	if err != nil {
		return map[string]struct{}{}
	}
	set := make(map[string]struct{})
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if w := strings.TrimSpace(sc.Text()); w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

func stripDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return -1
		}
		return r
	}, s)
}
