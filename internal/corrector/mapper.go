package corrector

import (
	"math"
	"strings"

	"phrasecorrector/pkg/options"
)

// QueryMapper corrects whole queries against one dictionary trie. It
// segments the query greedily into the longest phrases it can correct and
// keeps any word it cannot correct as typed.
type QueryMapper struct {
	trie *Trie
	opts options.MapperOptions
}

// NewQueryMapper returns a mapper over t. A nil trie maps every query to
// itself.
func NewQueryMapper(t *Trie, opts ...options.Options) *QueryMapper {
	return &QueryMapper{trie: t, opts: options.New(opts...)}
}

// mapping carries the state of a single Map call.
type mapping struct {
	*QueryMapper
	words []string
	// singles memoises the best terminal correction per word; nil entries
	// record that the word has none.
	singles map[string]*Correction
}

// Map corrects input. Values of the corrected segments are joined with
// ", "; distances and scores are summed.
func (m *QueryMapper) Map(input string) Correction {
	if m.trie == nil {
		return Correction{Value: input, Original: input}
	}
	run := &mapping{
		QueryMapper: m,
		words:       strings.Fields(input),
		singles:     make(map[string]*Correction),
	}

	var values, originals []string
	res := Correction{}
	for i := 0; i < len(run.words); {
		last := i + min(m.opts.MaxLookahead, len(run.words)-i) - 1
		c := run.correctPhrase(i, last, NewChain(m.trie, Root, nil), false, math.MaxInt)
		if c == nil {
			word := run.words[i]
			values = append(values, word)
			originals = append(originals, word)
			i++
			continue
		}
		values = append(values, c.Value)
		originals = append(originals, c.Original)
		res.Distance += c.Distance
		res.Score += c.Score
		i += c.WordCount()
	}
	res.Value = strings.Join(values, ", ")
	res.Original = strings.Join(originals, " ")
	return res
}

// correctPhrase corrects words[first] starting from the head of chain and,
// where the trie allows, extends the match over the following words up to
// words[last]. It returns the best terminal candidate or nil.
func (r *mapping) correctPhrase(first, last int, chain *Chain, continuation bool, maxRestarts int) *Correction {
	word := r.words[first]
	maxEdits := r.opts.MaxEdits(len([]rune(word)))
	single := r.correctWord(word, maxEdits)

	fragment := word
	if continuation {
		fragment = " " + word
	}

	var best *Correction
	for _, c := range NewAutomaton(r.trie, fragment, maxEdits).Correct(chain) {
		if single != nil && single.Distance < c.Distance {
			continue
		}
		if c.Restarts() > maxRestarts {
			continue
		}

		cur := c
		if first < last {
			if ext := r.correctPhrase(first+1, last, c.Continuation, true, maxRestarts); ext != nil {
				cur = Correction{
					Value:        ext.Value,
					Original:     c.Original + ext.Original,
					Distance:     c.Distance + ext.Distance,
					Score:        ext.Score,
					Terminal:     ext.Terminal,
					Continuation: ext.Continuation,
				}
			}
		}

		if !cur.Terminal {
			continue
		}
		if best == nil || rankPhrase(cur, *best) < 0 {
			best = &cur
			maxRestarts = cur.Restarts()
		}
	}
	return best
}

// correctWord returns the best terminal correction of word on its own.
func (r *mapping) correctWord(word string, maxEdits int) *Correction {
	if c, ok := r.singles[word]; ok {
		return c
	}
	var best *Correction
	for _, c := range NewAutomaton(r.trie, word, maxEdits).Correct(NewChain(r.trie, Root, nil)) {
		if !c.Terminal {
			continue
		}
		if best == nil || c.Compare(*best) < 0 {
			best = &c
		}
	}
	r.singles[word] = best
	return best
}
