package corrector

import "strings"

// Correction is a candidate replacement for (part of) a query.
type Correction struct {
	Value    string
	Original string
	Distance int
	Score    float64
	// Terminal is set when Value ends on a complete dictionary phrase.
	Terminal bool
	// Continuation is the chain the automaton stopped at; matching the next
	// word resumes from its head.
	Continuation *Chain
}

// Equal compares value, distance and score. Continuations are ignored.
func (c Correction) Equal(o Correction) bool {
	return c.Value == o.Value && c.Distance == o.Distance && c.Score == o.Score
}

// MatchesTransliterated reports whether value and original spell the same
// text once umlauts are expanded.
func (c Correction) MatchesTransliterated() bool {
	return Transliterate(c.Value) == Transliterate(c.Original)
}

// WordCount counts the words of the original text.
func (c Correction) WordCount() int {
	return strings.Count(strings.TrimLeft(c.Original, " "), " ") + 1
}

// Restarts is the depth of the continuation chain.
func (c Correction) Restarts() int {
	return c.Continuation.Depth()
}

// Compare orders corrections best first: lower distance, then
// transliteration matches, then higher score.
func (c Correction) Compare(o Correction) int {
	if c.Distance != o.Distance {
		if c.Distance < o.Distance {
			return -1
		}
		return 1
	}
	ct, ot := c.MatchesTransliterated(), o.MatchesTransliterated()
	if ct != ot {
		if ct {
			return -1
		}
		return 1
	}
	switch {
	case c.Score > o.Score:
		return -1
	case c.Score < o.Score:
		return 1
	}
	return 0
}

// rankPhrase orders phrase candidates: fewer restarts, then more covered
// words, then Compare.
func rankPhrase(a, b Correction) int {
	if ra, rb := a.Restarts(), b.Restarts(); ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	if wa, wb := a.WordCount(), b.WordCount(); wa != wb {
		if wa > wb {
			return -1
		}
		return 1
	}
	return a.Compare(b)
}
