package summarizer

import (
	"html"
	"strings"
)

// Highlight renders sentences as an HTML fragment under a title, wrapping
// the ones present in best with <mark>.
func Highlight(title string, sentences, best []string) string {
	marked := make(map[string]struct{}, len(best))
	for _, s := range best {
		marked[s] = struct{}{}
	}

	var b strings.Builder
	b.WriteString("<h1>Resumo do texto - ")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</h1>\n<p>")
	for i, s := range sentences {
		if i > 0 {
			b.WriteString(" ")
		}
		esc := html.EscapeString(s)
		if _, ok := marked[s]; ok {
			b.WriteString("<mark>" + esc + "</mark>")
		} else {
			b.WriteString(esc)
		}
	}
	b.WriteString("</p>\n")
	return b.String()
}
