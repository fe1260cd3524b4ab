package ast

import (
	"bytes"
	"strings"
	"testing"

	"github.com/andrewchambers/cppncss/cpp"
	"github.com/andrewchambers/cppncss/symtab"
)

func linkTokens(t *testing.T, src string) []*cpp.Token {
	toks, err := cpp.Tokenize("test.cpp", src)
	if err != nil {
		t.Fatal(err)
	}
	toks = append(toks, &cpp.Token{Kind: cpp.EOF})
	for i := 0; i+1 < len(toks); i++ {
		toks[i].Next = toks[i+1]
	}
	return toks
}

// buildTree builds the tree of "void f ( ) { if ( a && b ) x ; }" by hand.
func buildTree(t *testing.T) *Tree {
	toks := linkTokens(t, "void f ( ) { if ( a && b ) x ; }")
	st := symtab.New()
	b := NewBuilder("test.cpp", st, toks[0])
	fn := b.Open(FunctionDefinition, 0, toks[0], symtab.Root)
	decl := b.Open(FunctionDeclarator, fn, toks[1], symtab.Root)
	id := b.Open(DeclaratorID, decl, toks[1], symtab.Root)
	b.Close(id, toks[2])
	b.Close(decl, toks[4])
	body := b.Open(CompoundStatement, fn, toks[4], symtab.Root)
	ifs := b.Open(IfStatement, body, toks[5], symtab.Root)
	and := b.Open(LogicalAndExpression, ifs, toks[7], symtab.Root)
	b.Close(and, toks[10])
	stmt := b.Open(ExpressionStatement, ifs, toks[11], symtab.Root)
	expr := b.Open(Expression, stmt, toks[11], symtab.Root)
	b.Close(expr, toks[12])
	b.Close(stmt, toks[13])
	b.Close(ifs, toks[13])
	b.Close(body, toks[14])
	b.Close(fn, toks[14])
	return b.Finish(toks[14])
}

type kindRecorder struct {
	BaseVisitor
	visited []string
	left    []string
}

func (r *kindRecorder) record(n *Node, data any) any {
	r.visited = append(r.visited, n.Kind.String())
	return data
}

func (r *kindRecorder) VisitTranslationUnit(n *Node, data any) any    { return r.record(n, data) }
func (r *kindRecorder) VisitFunctionDefinition(n *Node, data any) any { return r.record(n, data) }
func (r *kindRecorder) VisitFunctionDeclarator(n *Node, data any) any { return r.record(n, data) }
func (r *kindRecorder) VisitDeclaratorID(n *Node, data any) any       { return r.record(n, data) }
func (r *kindRecorder) VisitCompoundStatement(n *Node, data any) any  { return r.record(n, data) }
func (r *kindRecorder) VisitIfStatement(n *Node, data any) any        { return r.record(n, data) }
func (r *kindRecorder) VisitExpressionStatement(n *Node, data any) any {
	return r.record(n, data)
}
func (r *kindRecorder) VisitLogicalAndExpression(n *Node, data any) any {
	return r.record(n, data)
}

func (r *kindRecorder) Leave(n *Node, data any) any {
	r.left = append(r.left, n.Kind.String())
	return data
}

func TestWalkerOrder(t *testing.T) {
	tree := buildTree(t)
	r := &kindRecorder{}
	Walk(r, tree.Root(), nil)
	expected := "TranslationUnit FunctionDefinition FunctionDeclarator DeclaratorID CompoundStatement IfStatement LogicalAndExpression ExpressionStatement"
	if got := strings.Join(r.visited, " "); got != expected {
		t.Errorf("pre-order got\n%s\nexpected\n%s", got, expected)
	}
	expectedLeave := "DeclaratorID FunctionDeclarator LogicalAndExpression Expression ExpressionStatement IfStatement CompoundStatement FunctionDefinition TranslationUnit"
	if got := strings.Join(r.left, " "); got != expectedLeave {
		t.Errorf("post-order got\n%s\nexpected\n%s", got, expectedLeave)
	}
}

type counter struct {
	BaseVisitor
	n int
}

func (c *counter) VisitIfStatement(n *Node, data any) any {
	c.n++
	return data
}

func (c *counter) VisitExpression(n *Node, data any) any {
	c.n += 10
	return data
}

type depthCounter struct {
	BaseVisitor
	max int
}

func (d *depthCounter) VisitExpression(n *Node, data any) any {
	depth := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		depth++
	}
	if depth > d.max {
		d.max = depth
	}
	return data
}

func TestMultiMatchesSeparateWalks(t *testing.T) {
	tree := buildTree(t)

	c1, d1 := &counter{}, &depthCounter{}
	Walk(c1, tree.Root(), nil)
	Walk(d1, tree.Root(), nil)

	c2, d2 := &counter{}, &depthCounter{}
	m := NewMulti()
	m.Register(c2)
	m.Register(d2)
	state := "unchanged"
	if got := Walk(m, tree.Root(), state); got != state {
		t.Errorf("Multi must return the state it received, got %v", got)
	}
	if c1.n != c2.n || d1.max != d2.max {
		t.Errorf("combined walk differs: %d/%d vs %d/%d", c1.n, d1.max, c2.n, d2.max)
	}
	if c1.n != 11 || d1.max != 5 {
		t.Errorf("unexpected results %d %d", c1.n, d1.max)
	}
}

func TestMultiOfWalkers(t *testing.T) {
	tree := buildTree(t)
	c := &counter{}
	m := NewMulti(NewWalker(c))
	// A walker member walks the subtree itself, so accepting the root
	// alone covers the whole tree.
	tree.Root().Accept(m, nil)
	if c.n != 11 {
		t.Errorf("got %d", c.n)
	}
}

func TestEveryKindDispatches(t *testing.T) {
	toks := linkTokens(t, "x")
	b := NewBuilder("test.cpp", symtab.New(), toks[0])
	for _, k := range Kinds() {
		if k == TranslationUnit {
			continue
		}
		id := b.Open(k, 0, toks[0], symtab.Root)
		b.Close(id, toks[0])
	}
	tree := b.Finish(toks[1])
	if tree.Len() != len(Kinds()) {
		t.Fatalf("got %d nodes", tree.Len())
	}
	for _, n := range tree.Root().Children() {
		if got := n.Accept(BaseVisitor{}, n.Kind); got != n.Kind {
			t.Errorf("%s: BaseVisitor changed the state", n.Kind)
		}
	}
	if err := tree.Verify(); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an unknown kind")
		}
	}()
	bogus := &Node{tree: tree, Kind: numKinds}
	bogus.Accept(BaseVisitor{}, nil)
}

func TestVerify(t *testing.T) {
	if err := buildTree(t).Verify(); err != nil {
		t.Fatal(err)
	}

	toks := linkTokens(t, "a b c")
	b := NewBuilder("test.cpp", symtab.New(), toks[0])
	p := b.Open(Declaration, 0, toks[0], symtab.Root)
	c := b.Open(Expression, p, toks[1], symtab.Root)
	b.Close(c, toks[3])
	b.Close(p, toks[2])
	if err := b.Finish(toks[3]).Verify(); err == nil {
		t.Fatal("a child ending after its parent must be reported")
	}

	toks = linkTokens(t, "a b c")
	b = NewBuilder("test.cpp", symtab.New(), toks[0])
	p = b.Open(Declaration, 0, toks[0], symtab.Root)
	c1 := b.Open(Expression, p, toks[1], symtab.Root)
	b.Close(c1, toks[3])
	c2 := b.Open(Expression, p, toks[2], symtab.Root)
	b.Close(c2, toks[3])
	b.Close(p, toks[3])
	if err := b.Finish(toks[3]).Verify(); err == nil {
		t.Fatal("overlapping siblings must be reported")
	}
}

func TestNodeAccessors(t *testing.T) {
	tree := buildTree(t)
	fn := tree.Root().Child(0)
	if fn.Parent() != tree.Root() || tree.Root().Parent() != nil {
		t.Fatal("bad parent links")
	}
	if fn.ChildOfKind(CompoundStatement) == nil || fn.ChildOfKind(Handler) != nil {
		t.Fatal("ChildOfKind")
	}
	decl := fn.ChildOfKind(FunctionDeclarator)
	if got := TokenText(decl.Tokens()); got != "f ( )" {
		t.Errorf("got %q", got)
	}
	if !fn.ScopeOf().IsRoot() {
		t.Error("the function was opened at the root")
	}
	var buf bytes.Buffer
	tree.Dump(&buf)
	expected := `TranslationUnit
  FunctionDefinition
    FunctionDeclarator
      DeclaratorID f
    CompoundStatement
      IfStatement
        LogicalAndExpression
        ExpressionStatement
          Expression x
`
	if buf.String() != expected {
		t.Errorf("got\n%s", buf.String())
	}
}

func TestBuilderWrap(t *testing.T) {
	toks := linkTokens(t, "a && b")
	b := NewBuilder("wrap.cpp", symtab.New(), toks[0])
	expr := b.Open(Expression, 0, toks[0], symtab.Root)
	inner := b.Open(ConditionalExpression, expr, toks[0], symtab.Root)
	b.Close(inner, toks[1])
	and := b.Wrap(expr, 0, LogicalAndExpression, toks[0], symtab.Root)
	b.Close(and, toks[3])
	b.Close(expr, toks[3])
	tree := b.Finish(toks[3])
	if err := tree.Verify(); err != nil {
		t.Fatal(err)
	}
	e := tree.Root().Child(0)
	if e.NumChildren() != 1 || e.Child(0).Kind != LogicalAndExpression {
		t.Fatalf("expression children not wrapped")
	}
	w := e.Child(0)
	if w.NumChildren() != 1 || w.Child(0).ID() != inner || w.Child(0).Parent() != w {
		t.Fatalf("wrapped child not moved under the new node")
	}
}
