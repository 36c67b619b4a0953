package corrector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrectionCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Correction
		want int
	}{
		{
			name: "lower distance wins",
			a:    Correction{Value: "phrase1", Original: "phrase1", Distance: 0, Score: 1},
			b:    Correction{Value: "phrase2", Original: "phrase1", Distance: 1, Score: 9},
			want: -1,
		},
		{
			name: "transliteration match wins on equal distance",
			a:    Correction{Value: "schön", Original: "schoen", Distance: 1, Score: 1},
			b:    Correction{Value: "schon", Original: "schoen", Distance: 1, Score: 2},
			want: -1,
		},
		{
			name: "higher score wins",
			a:    Correction{Value: "some", Original: "sume", Distance: 1, Score: 1},
			b:    Correction{Value: "same", Original: "sume", Distance: 1, Score: 3},
			want: 1,
		},
		{
			name: "equal",
			a:    Correction{Value: "some", Original: "sume", Distance: 1, Score: 1},
			b:    Correction{Value: "same", Original: "sume", Distance: 1, Score: 1},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
			assert.Equal(t, -tt.want, tt.b.Compare(tt.a))
		})
	}
}

func TestCorrectionEqualIgnoresContinuation(t *testing.T) {
	trie := newTrie(map[string]float64{"some": 1})
	a := Correction{Value: "some", Distance: 1, Score: 1, Continuation: NewChain(trie, Root, nil)}
	b := Correction{Value: "some", Distance: 1, Score: 1, Original: "sone"}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(Correction{Value: "some", Distance: 1, Score: 2}))
	assert.False(t, a.Equal(Correction{Value: "some", Distance: 0, Score: 1}))
}

func TestCorrectionWordCount(t *testing.T) {
	assert.Equal(t, 1, Correction{Original: "some"}.WordCount())
	assert.Equal(t, 1, Correction{Original: " phrse"}.WordCount())
	assert.Equal(t, 3, Correction{Original: "somee lnog phrse"}.WordCount())
}

func TestRankPhrase(t *testing.T) {
	trie := newTrie(map[string]float64{"some": 1, "phrase": 2})
	some, _ := trie.Lookup("some")
	oneSegment := NewChain(trie, some, nil)
	twoSegments := oneSegment.restart()

	fewerRestarts := Correction{Original: "some", Distance: 2, Continuation: oneSegment}
	moreRestarts := Correction{Original: "some phrse", Distance: 0, Continuation: twoSegments}
	assert.Equal(t, -1, rankPhrase(fewerRestarts, moreRestarts))

	moreWords := Correction{Original: "some phrse", Distance: 2, Continuation: oneSegment}
	assert.Equal(t, -1, rankPhrase(moreWords, fewerRestarts))

	closer := Correction{Original: "some", Distance: 1, Continuation: oneSegment}
	assert.Equal(t, -1, rankPhrase(closer, fewerRestarts))
	assert.Equal(t, 0, rankPhrase(closer, closer))
}

// rankPhrase must be a strict weak ordering for best-candidate selection to
// be well defined.
func TestRankPhraseIsStrictWeakOrdering(t *testing.T) {
	trie := newTrie(map[string]float64{"schön": 1, "schon": 2})
	one := NewChain(trie, Root, nil)
	two := one.restart()

	var cs []Correction
	for _, cont := range []*Chain{one, two} {
		for _, orig := range []string{"schoen", "schoen phrase"} {
			for _, value := range []string{"schön", "schon"} {
				for d := 0; d < 2; d++ {
					for _, score := range []float64{1, 2} {
						cs = append(cs, Correction{Value: value, Original: orig, Distance: d, Score: score, Continuation: cont})
					}
				}
			}
		}
	}

	for _, a := range cs {
		assert.Equal(t, 0, rankPhrase(a, a), "irreflexive")
		for _, b := range cs {
			assert.Equal(t, rankPhrase(a, b), -rankPhrase(b, a), "antisymmetric")
			for _, c := range cs {
				if rankPhrase(a, b) < 0 && rankPhrase(b, c) < 0 {
					assert.Negative(t, rankPhrase(a, c), "transitive")
				}
				if rankPhrase(a, b) == 0 && rankPhrase(b, c) == 0 {
					assert.Zero(t, rankPhrase(a, c), "incomparability is transitive")
				}
			}
		}
	}
}
