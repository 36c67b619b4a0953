package corrector

// state is the sparse fringe of one edit-distance matrix row: the fragment
// offsets still within budget and the cost of reaching each.
type state struct {
	offsets []int
	costs   []int
}

// Automaton finds the trie paths within maxEdits of a fragment. Besides
// insertions, deletions and substitutions it accepts adjacent
// transpositions and umlaut digraphs at the cost of a single edit, and it
// may leave a finished word through a space and continue at the root.
//
// An Automaton holds no mutable state; Correct may be called concurrently.
type Automaton struct {
	trie     *Trie
	fragment []rune
	maxEdits int
}

func NewAutomaton(t *Trie, fragment string, maxEdits int) *Automaton {
	return &Automaton{trie: t, fragment: []rune(fragment), maxEdits: max(maxEdits, 0)}
}

// Correct walks the trie below the head of chain and returns a correction
// for every node the whole fragment matches, terminal or not.
func (a *Automaton) Correct(chain *Chain) []Correction {
	var out []Correction
	a.walk(chain, a.initialState(), a.trie.Char(chain.head), true, &out)
	return out
}

func (a *Automaton) initialState() state {
	n := min(a.maxEdits, len(a.fragment))
	st := state{offsets: make([]int, n+1), costs: make([]int, n+1)}
	for i := 0; i <= n; i++ {
		st.offsets[i] = i
		st.costs[i] = i
	}
	return st
}

func (a *Automaton) walk(chain *Chain, st state, prev rune, start bool, out *[]Correction) {
	node := chain.head
	if a.isFullMatch(st) {
		*out = append(*out, Correction{
			Value:        chain.Phrase(),
			Original:     string(a.fragment),
			Distance:     st.costs[len(st.costs)-1],
			Score:        chain.Score(),
			Terminal:     a.trie.IsTerminal(node),
			Continuation: chain,
		})
	}

	for _, e := range a.trie.nodes[node].edges {
		next := a.advance(st, e.char, prev)
		if canContinue(next) {
			a.walk(chain.withHead(e.to), next, e.char, false, out)
		}
	}

	// No restart at the starting node or at the root.
	if start || node == Root || !a.trie.IsWordBoundary(node) {
		return
	}
	next := a.advance(st, ' ', prev)
	if canContinue(next) {
		a.walk(chain.restart(), next, ' ', false, out)
	}
}

// advance consumes one trie character.
func (a *Automaton) advance(st state, char, prev rune) state {
	var next state
	if len(st.offsets) > 0 && st.offsets[0] == 0 && st.costs[0] < a.maxEdits {
		next.offsets = append(next.offsets, 0)
		next.costs = append(next.costs, st.costs[0]+1)
	}
	for j, i := range st.offsets {
		if i >= len(a.fragment) {
			continue
		}
		cost := st.costs[j] + a.substitutionCost(i, char, prev)
		if n := len(next.offsets); n > 0 && next.offsets[n-1] == i {
			cost = min(cost, next.costs[n-1]+1)
		}
		if j+1 < len(st.offsets) && st.offsets[j+1] == i+1 {
			cost = min(cost, st.costs[j+1]+1)
		}
		if cost <= a.maxEdits {
			next.offsets = append(next.offsets, i+1)
			next.costs = append(next.costs, cost)
		}
	}
	return next
}

// substitutionCost prices matching fragment[i] against char. The second
// half of a transposition and a digraph spelled out in the fragment are
// free; the first half was already paid for.
func (a *Automaton) substitutionCost(i int, char, prev rune) int {
	if a.fragment[i] == char {
		return 0
	}
	if i == 0 {
		return 1
	}
	if prev != 0 && a.fragment[i-1] == char && a.fragment[i] == prev {
		return 0
	}
	// Digraphs are ASCII.
	if d, ok := digraphs[char]; ok && a.fragment[i-1] == rune(d[0]) && a.fragment[i] == rune(d[1]) {
		return 0
	}
	return 1
}

func canContinue(st state) bool {
	return len(st.offsets) > 0
}

func (a *Automaton) isFullMatch(st state) bool {
	n := len(st.offsets)
	return n > 0 && st.offsets[n-1] == len(a.fragment)
}
