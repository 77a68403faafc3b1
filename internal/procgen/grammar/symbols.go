// Package grammar expands a start symbol into a typed topology tree using
// weighted production rules and per-node child-count sampling. The output
// tree carries no physical attributes; those are assigned by the universe
// generator.
package grammar

import "fmt"

// Symbol is the closed set of node kinds the grammar can produce. Every
// consumer switches exhaustively over it so adding a kind is a
// compile-visible change.
type Symbol int

const (
	SymbolStar Symbol = iota
	SymbolPlanet
	SymbolMoon
	SymbolGroup
)

func (s Symbol) String() string {
	switch s {
	case SymbolStar:
		return "star"
	case SymbolPlanet:
		return "planet"
	case SymbolMoon:
		return "moon"
	case SymbolGroup:
		return "group"
	default:
		return fmt.Sprintf("Symbol(%d)", int(s))
	}
}

// Node is one vertex of an expanded topology tree. Children are ordered and
// the tree is immutable once Expand returns.
type Node struct {
	Type     Symbol
	Depth    int
	Children []*Node
}

// Walk visits the tree depth-first in child order using an explicit stack.
func (n *Node) Walk(visit func(*Node)) {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(cur)
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// Count returns the number of nodes in the tree.
func (n *Node) Count() int {
	total := 0
	n.Walk(func(*Node) { total++ })
	return total
}
