// Package language identifies the corpus language and maps it onto the
// stopword list and entity model names used downstream.
package language

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Info describes a detected language.
type Info struct {
	Code       string  `json:"code"`
	Short      string  `json:"short"`
	Model      string  `json:"model"`
	Confidence float64 `json:"confidence"`
}

// Detect returns the language of text. Unsupported languages keep their
// ISO 639-1 code as Short and leave Model empty. Undetectable text yields
// a zero Code.
func Detect(text string) Info {
	text = strings.ReplaceAll(text, "\n", " ")
	info := whatlanggo.Detect(text)
	return fromCode(info.Lang.Iso6391(), info.Confidence)
}

func fromCode(code string, confidence float64) Info {
	out := Info{Code: code, Short: code, Confidence: confidence}
	switch code {
	case "en":
		out.Short = "english"
		out.Model = "en_core_web_sm"
	case "pt":
		out.Short = "portuguese"
		out.Model = "pt_core_news_sm"
	}
	return out
}
