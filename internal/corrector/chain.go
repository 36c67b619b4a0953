package corrector

import "strings"

// Chain records the trie nodes a correction passed through across restarts.
// The head is the node currently being matched; the tail holds the nodes at
// which earlier words ended, newest first. Chains are immutable and share
// their tails.
type Chain struct {
	trie  *Trie
	head  NodeID
	tail  *Chain
	depth int
	score float64
}

// NewChain returns a chain with head on top of tail. tail may be nil.
func NewChain(t *Trie, head NodeID, tail *Chain) *Chain {
	c := &Chain{trie: t, head: head, tail: tail, depth: 1, score: t.Score(head)}
	if tail != nil {
		c.depth += tail.depth
		c.score += tail.score
	}
	return c
}

func (c *Chain) Head() NodeID { return c.head }

func (c *Chain) Tail() *Chain { return c.tail }

// Depth is the number of segments; a chain without restarts has depth 1.
func (c *Chain) Depth() int {
	if c == nil {
		return 0
	}
	return c.depth
}

// Score sums the scores of every node in the chain.
func (c *Chain) Score() float64 {
	if c == nil {
		return 0
	}
	return c.score
}

// withHead replaces the head and keeps the tail.
func (c *Chain) withHead(head NodeID) *Chain {
	return NewChain(c.trie, head, c.tail)
}

// restart pushes the head onto the tail and starts over at the root.
func (c *Chain) restart() *Chain {
	return NewChain(c.trie, c.trie.RootOf(c.head), c)
}

// Phrase joins the phrases of all segments, oldest first.
func (c *Chain) Phrase() string {
	parts := make([]string, c.depth)
	i := c.depth - 1
	for cur := c; cur != nil; cur = cur.tail {
		parts[i] = c.trie.Phrase(cur.head)
		i--
	}
	return strings.Join(parts, " ")
}
