// Package ast holds the syntax tree built by the parser and the visitor
// protocol analyses use to walk it.
//
// Nodes live in an arena owned by their Tree and refer to each other by
// NodeID, so a parent link is an index and never a second owner.
package ast

import (
	"fmt"
	"io"
	"strings"

	"github.com/andrewchambers/cppncss/cpp"
	"github.com/andrewchambers/cppncss/symtab"
)

type NodeID int

const NoNode NodeID = -1

type Node struct {
	tree     *Tree
	id       NodeID
	Kind     Kind
	parent   NodeID
	children []NodeID
	// First token of the node and the token following its last one.
	First *cpp.Token
	Last  *cpp.Token
	// Scope that was current when the parser opened the node.
	Scope symtab.ScopeID
}

func (n *Node) ID() NodeID       { return n.id }
func (n *Node) Tree() *Tree      { return n.tree }
func (n *Node) NumChildren() int { return len(n.children) }

// Parent returns the enclosing node, nil for the root.
func (n *Node) Parent() *Node {
	if n.parent == NoNode {
		return nil
	}
	return n.tree.nodes[n.parent]
}

func (n *Node) Child(i int) *Node {
	return n.tree.nodes[n.children[i]]
}

func (n *Node) Children() []*Node {
	ret := make([]*Node, len(n.children))
	for i, c := range n.children {
		ret[i] = n.tree.nodes[c]
	}
	return ret
}

// ChildOfKind returns the first child of the given kind, nil if none.
func (n *Node) ChildOfKind(k Kind) *Node {
	for _, c := range n.children {
		if child := n.tree.nodes[c]; child.Kind == k {
			return child
		}
	}
	return nil
}

// Tokens returns the tokens the node was built from.
func (n *Node) Tokens() []*cpp.Token {
	var ret []*cpp.Token
	for t := n.First; t != nil && t != n.Last; t = t.Next {
		ret = append(ret, t)
	}
	return ret
}

// Pos is the position of the first token.
func (n *Node) Pos() cpp.FilePos {
	if n.First == nil {
		return cpp.FilePos{}
	}
	return n.First.Pos
}

// ScopeOf returns the scope that was current when n was opened.
func (n *Node) ScopeOf() *symtab.Scope {
	return n.tree.Symbols.Scope(n.Scope)
}

func (n *Node) String() string {
	return fmt.Sprintf("%s at %s", n.Kind, n.Pos())
}

// Tree is the syntax tree of one translation unit.
type Tree struct {
	File  string
	nodes []*Node
	// Symbols is the table the node scopes refer to. It is shared by all
	// the trees parsed in one run.
	Symbols *symtab.SymbolTable
}

// Root returns the TranslationUnit node.
func (t *Tree) Root() *Node {
	return t.nodes[0]
}

func (t *Tree) Node(id NodeID) *Node {
	return t.nodes[id]
}

func (t *Tree) Len() int {
	return len(t.nodes)
}

// Dump writes the tree one node per line, indented by depth, with the
// text of leaf-like nodes.
func (t *Tree) Dump(w io.Writer) {
	var dump func(n *Node, depth int)
	dump = func(n *Node, depth int) {
		fmt.Fprintf(w, "%s%s", strings.Repeat("  ", depth), n.Kind)
		switch n.Kind {
		case DeclaratorID, Expression:
			fmt.Fprintf(w, " %s", TokenText(n.Tokens()))
		}
		fmt.Fprintln(w)
		for _, c := range n.Children() {
			dump(c, depth+1)
		}
	}
	dump(t.Root(), 0)
}

// TokenText joins token values with single spaces.
func TokenText(toks []*cpp.Token) string {
	vals := make([]string, len(toks))
	for i, tok := range toks {
		vals[i] = tok.Val
	}
	return strings.Join(vals, " ")
}

// Builder assembles a Tree. Nodes may only be changed through the Builder
// while it is open, the Tree it returns is read only.
type Builder struct {
	tree *Tree
}

// NewBuilder starts a tree whose root spans from first.
func NewBuilder(file string, symbols *symtab.SymbolTable, first *cpp.Token) *Builder {
	b := &Builder{tree: &Tree{File: file, Symbols: symbols}}
	b.Open(TranslationUnit, NoNode, first, symtab.Root)
	return b
}

// Open appends a node as the last child of parent.
func (b *Builder) Open(kind Kind, parent NodeID, first *cpp.Token, scope symtab.ScopeID) NodeID {
	n := &Node{
		tree:   b.tree,
		id:     NodeID(len(b.tree.nodes)),
		Kind:   kind,
		parent: parent,
		First:  first,
		Scope:  scope,
	}
	b.tree.nodes = append(b.tree.nodes, n)
	if parent != NoNode {
		p := b.tree.nodes[parent]
		p.children = append(p.children, n.id)
	}
	return n.id
}

// Close records the token following the last one of the node.
func (b *Builder) Close(id NodeID, last *cpp.Token) {
	b.tree.nodes[id].Last = last
}

// SetKind changes the kind of a node the parser could only classify after
// reading its children.
func (b *Builder) SetKind(id NodeID, kind Kind) {
	b.tree.nodes[id].Kind = kind
}

func (b *Builder) Kind(id NodeID) Kind {
	return b.tree.nodes[id].Kind
}

func (b *Builder) NumChildren(id NodeID) int {
	return len(b.tree.nodes[id].children)
}

// Wrap moves the children of parent from index from onwards under a new
// node, which takes their place as the last child of parent. The parser
// uses it when an operator shows up after its left operand was built.
func (b *Builder) Wrap(parent NodeID, from int, kind Kind, first *cpp.Token, scope symtab.ScopeID) NodeID {
	p := b.tree.nodes[parent]
	moved := append([]NodeID(nil), p.children[from:]...)
	p.children = p.children[:from]
	id := b.Open(kind, parent, first, scope)
	n := b.tree.nodes[id]
	n.children = moved
	for _, c := range moved {
		b.tree.nodes[c].parent = id
	}
	return id
}

// Finish closes the root and hands out the tree.
func (b *Builder) Finish(last *cpp.Token) *Tree {
	b.Close(0, last)
	return b.tree
}
