package corrector

import "strings"

// digraphs maps umlauts and sharp s to their two-letter ASCII spelling.
var digraphs = map[rune]string{
	'Ä': "Ae",
	'ä': "ae",
	'Ö': "Oe",
	'ö': "oe",
	'Ü': "Ue",
	'ü': "ue",
	'ß': "ss",
}

// Transliterate replaces every mapped character in s with its digraph.
func Transliterate(s string) string {
	if !strings.ContainsFunc(s, hasDigraph) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if d, ok := digraphs[r]; ok {
			b.WriteString(d)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Digraph returns the two-character expansion of r, if any.
func Digraph(r rune) (string, bool) {
	d, ok := digraphs[r]
	return d, ok
}

func hasDigraph(r rune) bool {
	_, ok := digraphs[r]
	return ok
}
