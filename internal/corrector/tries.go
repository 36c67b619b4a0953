package corrector

import (
	"maps"
	"slices"
)

// Tries keeps one dictionary trie per language. It does no locking of its
// own; SpellCorrector serialises writers against readers.
type Tries struct {
	byLanguage map[string]*Trie
}

func NewTries() *Tries {
	return &Tries{byLanguage: make(map[string]*Trie)}
}

// Insert normalises phrase and adds it to the trie of language. It reports
// whether anything was inserted.
func (ts *Tries) Insert(language, phrase string, score float64) bool {
	language, phrase = normalizeLanguage(language), normalizePhrase(phrase)
	if language == "" || phrase == "" {
		return false
	}
	t, ok := ts.byLanguage[language]
	if !ok {
		t = NewTrie()
		ts.byLanguage[language] = t
	}
	t.Insert(phrase, score)
	return true
}

func (ts *Tries) Remove(language, phrase string) bool {
	t, ok := ts.byLanguage[normalizeLanguage(language)]
	if !ok {
		return false
	}
	return t.Remove(normalizePhrase(phrase))
}

// Get returns the trie of language or nil.
func (ts *Tries) Get(language string) *Trie {
	return ts.byLanguage[normalizeLanguage(language)]
}

// Languages lists the loaded languages in order.
func (ts *Tries) Languages() []string {
	return slices.Sorted(maps.Keys(ts.byLanguage))
}

// Len counts phrases over all languages.
func (ts *Tries) Len() int {
	n := 0
	for _, t := range ts.byLanguage {
		n += t.Len()
	}
	return n
}
