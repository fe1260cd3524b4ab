package ast

import (
	"fmt"

	"github.com/andrewchambers/cppncss/cpp"
)

// Verify checks that every node has a span, that each child span lies
// within its parent's and that siblings follow each other. A failure is
// a parser defect.
func (t *Tree) Verify() error {
	root := t.Root()
	order := map[*cpp.Token]int{}
	i := 0
	for tok := root.First; tok != nil; tok = tok.Next {
		order[tok] = i
		i++
		if tok == root.Last {
			break
		}
	}
	index := func(n *Node, tok *cpp.Token, what string) (int, error) {
		idx, ok := order[tok]
		if !ok {
			return 0, fmt.Errorf("%s: %s token not in the token stream", n, what)
		}
		return idx, nil
	}
	for _, n := range t.nodes {
		first, err := index(n, n.First, "first")
		if err != nil {
			return err
		}
		last, err := index(n, n.Last, "last")
		if err != nil {
			return err
		}
		if first > last {
			return fmt.Errorf("%s: span ends before it starts", n)
		}
		prevLast := first
		for _, c := range n.Children() {
			if c.parent != n.id {
				return fmt.Errorf("%s: child %s has parent %d", n, c, c.parent)
			}
			cfirst, err := index(c, c.First, "first")
			if err != nil {
				return err
			}
			clast, err := index(c, c.Last, "last")
			if err != nil {
				return err
			}
			if cfirst < prevLast {
				return fmt.Errorf("%s: child %s overlaps its predecessor or starts before its parent", n, c)
			}
			if clast > last {
				return fmt.Errorf("%s: child %s ends after its parent", n, c)
			}
			prevLast = clast
		}
	}
	return nil
}
