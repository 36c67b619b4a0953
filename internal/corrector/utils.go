package corrector

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizePhrase lowercases s in NFC form and collapses runs of
// whitespace to single spaces.
func normalizePhrase(s string) string {
	return strings.Join(strings.Fields(normalizeQuery(s)), " ")
}

// normalizeQuery composes decomposed umlauts so they match the trie, which
// stores precomposed characters.
func normalizeQuery(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

func normalizeLanguage(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cacheKey(language, text string) string {
	return language + "\u0000" + text
}

// NormalizeCustomPhrase prepares a custom phrase for storage the way the
// tries store it.
func NormalizeCustomPhrase(language, phrase string) (string, string, error) {
	language, phrase = normalizeLanguage(language), normalizePhrase(phrase)
	if language == "" {
		return "", "", ErrEmptyLanguage
	}
	if phrase == "" {
		return "", "", ErrEmptyPhrase
	}
	return language, phrase, nil
}
