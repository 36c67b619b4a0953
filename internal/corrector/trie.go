package corrector

import "slices"

// NodeID addresses a node inside a Trie arena. Ids are stable for the
// lifetime of the trie.
type NodeID int32

const (
	// Root is the id of every trie's root node.
	Root NodeID = 0

	noParent NodeID = -1
)

type edge struct {
	char rune
	to   NodeID
}

type trieNode struct {
	char     rune
	parent   NodeID
	edges    []edge // sorted by char
	boundary bool
	terminal bool
	score    float64
}

// Trie is a character trie over dictionary phrases. Nodes live in a single
// slice and refer to each other by NodeID, so parent links do not own
// anything. A Trie is not safe for concurrent mutation; readers may share
// it once loading has finished.
type Trie struct {
	nodes   []trieNode
	phrases int
}

func NewTrie() *Trie {
	return &Trie{nodes: []trieNode{{parent: noParent}}}
}

// Insert adds phrase with the given score. The node closing each word and
// the final node become word boundaries; only the final node is terminal.
// Inserting an existing phrase overwrites its score.
func (t *Trie) Insert(phrase string, score float64) {
	if phrase == "" {
		return
	}
	cur := Root
	for _, r := range phrase {
		if r == ' ' {
			t.nodes[cur].boundary = true
		}
		cur = t.child(cur, r, true)
	}
	n := &t.nodes[cur]
	n.boundary = true
	if !n.terminal {
		t.phrases++
	}
	n.terminal = true
	n.score = score
}

// Remove clears the terminal mark of phrase. Nodes are kept in place so
// ids handed out earlier stay valid.
func (t *Trie) Remove(phrase string) bool {
	id, ok := t.Lookup(phrase)
	if !ok || !t.nodes[id].terminal {
		return false
	}
	n := &t.nodes[id]
	n.terminal = false
	n.score = 0
	_, hasSpace := t.Child(id, ' ')
	n.boundary = hasSpace
	t.phrases--
	return true
}

// Lookup follows s from the root.
func (t *Trie) Lookup(s string) (NodeID, bool) {
	cur := Root
	for _, r := range s {
		next, ok := t.Child(cur, r)
		if !ok {
			return 0, false
		}
		cur = next
	}
	return cur, true
}

// Child returns the child of id reached over r.
func (t *Trie) Child(id NodeID, r rune) (NodeID, bool) {
	next := t.child(id, r, false)
	return next, next != noParent
}

func (t *Trie) child(id NodeID, r rune, create bool) NodeID {
	edges := t.nodes[id].edges
	i, found := slices.BinarySearchFunc(edges, r, func(e edge, r rune) int {
		return int(e.char) - int(r)
	})
	if found {
		return edges[i].to
	}
	if !create {
		return noParent
	}
	next := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, trieNode{char: r, parent: id})
	t.nodes[id].edges = slices.Insert(t.nodes[id].edges, i, edge{char: r, to: next})
	return next
}

// Phrase rebuilds the text from the root down to id.
func (t *Trie) Phrase(id NodeID) string {
	var rs []rune
	for cur := id; cur != Root; cur = t.nodes[cur].parent {
		rs = append(rs, t.nodes[cur].char)
	}
	slices.Reverse(rs)
	return string(rs)
}

// RootOf walks parent links up to the root.
func (t *Trie) RootOf(id NodeID) NodeID {
	cur := id
	for t.nodes[cur].parent != noParent {
		cur = t.nodes[cur].parent
	}
	return cur
}

func (t *Trie) Char(id NodeID) rune { return t.nodes[id].char }

func (t *Trie) IsTerminal(id NodeID) bool { return t.nodes[id].terminal }

func (t *Trie) IsWordBoundary(id NodeID) bool { return t.nodes[id].boundary }

func (t *Trie) Score(id NodeID) float64 { return t.nodes[id].score }

// Len reports how many phrases are stored.
func (t *Trie) Len() int { return t.phrases }
