package measure

import (
	"log/slog"

	"github.com/andrewchambers/cppncss/ast"
	"github.com/andrewchambers/cppncss/cpp"
)

// counter accumulates a count per function. Units nest when a local class
// defines member functions, so open units are kept on a stack and each
// is flushed when the walk leaves it.
type counter struct {
	ast.BaseVisitor
	name    string
	initial int
	stack   []int
	results []Measurement
	log     *slog.Logger
}

func newCounter(name string, initial int, logger *slog.Logger) counter {
	c := counter{name: name, initial: initial}
	if logger != nil {
		c.log = logger.With(slog.String("component", "measure"), slog.String("measure", name))
	}
	return c
}

func (c *counter) Name() string { return c.name }

func (c *counter) Results() []Measurement {
	ret := c.results
	c.results = nil
	return ret
}

// add counts k for the innermost open unit. Nodes outside of any unit
// are not counted.
func (c *counter) add(k int) {
	if len(c.stack) == 0 {
		return
	}
	c.stack[len(c.stack)-1] += k
}

func (c *counter) push(data any) any {
	c.stack = append(c.stack, c.initial)
	return data
}

func (c *counter) VisitFunctionDefinition(n *ast.Node, data any) any    { return c.push(data) }
func (c *counter) VisitConstructorDefinition(n *ast.Node, data any) any { return c.push(data) }
func (c *counter) VisitDestructorDefinition(n *ast.Node, data any) any  { return c.push(data) }

func (c *counter) Leave(n *ast.Node, data any) any {
	if !isUnit(n) || len(c.stack) == 0 {
		return data
	}
	count := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	m := Measurement{
		Measure: c.name,
		Unit:    UnitName(n),
		Pos:     n.Pos(),
		Count:   count,
	}
	if c.log != nil {
		c.log.Debug("flush", slog.String("unit", m.Unit), slog.Int("count", m.Count))
	}
	c.results = append(c.results, m)
	return data
}

// CCN is the cyclomatic complexity number: one plus the number of
// branches of a function.
type CCN struct {
	counter
}

func NewCCN(logger *slog.Logger) *CCN {
	return &CCN{newCounter("CCN", 1, logger)}
}

func (c *CCN) branch(data any) any {
	c.add(1)
	return data
}

func (c *CCN) VisitIfStatement(n *ast.Node, data any) any           { return c.branch(data) }
func (c *CCN) VisitWhileStatement(n *ast.Node, data any) any        { return c.branch(data) }
func (c *CCN) VisitDoStatement(n *ast.Node, data any) any           { return c.branch(data) }
func (c *CCN) VisitForStatement(n *ast.Node, data any) any          { return c.branch(data) }
func (c *CCN) VisitCaseLabel(n *ast.Node, data any) any             { return c.branch(data) }
func (c *CCN) VisitHandler(n *ast.Node, data any) any               { return c.branch(data) }
func (c *CCN) VisitConditionalExpression(n *ast.Node, data any) any { return c.branch(data) }

// The operators of a logical expression are counted by scanning its
// tokens. A nested logical expression is counted again by its own node,
// so "(a && b) && c" adds 3.
func (c *CCN) VisitLogicalOrExpression(n *ast.Node, data any) any {
	c.add(countTokens(n, cpp.LOR))
	return data
}

func (c *CCN) VisitLogicalAndExpression(n *ast.Node, data any) any {
	c.add(countTokens(n, cpp.LAND))
	return data
}

func countTokens(n *ast.Node, k cpp.TokenKind) int {
	count := 0
	for _, t := range n.Tokens() {
		if t.Kind == k {
			count++
		}
	}
	return count
}

// NCSS counts the non commented source statements of a function. The
// signature is not a statement.
type NCSS struct {
	counter
}

func NewNCSS(logger *slog.Logger) *NCSS {
	return &NCSS{newCounter("NCSS", 0, logger)}
}

func (c *NCSS) statement(data any) any {
	c.add(1)
	return data
}

func (c *NCSS) VisitDeclaration(n *ast.Node, data any) any         { return c.statement(data) }
func (c *NCSS) VisitExpressionStatement(n *ast.Node, data any) any { return c.statement(data) }
func (c *NCSS) VisitIfStatement(n *ast.Node, data any) any         { return c.statement(data) }
func (c *NCSS) VisitWhileStatement(n *ast.Node, data any) any      { return c.statement(data) }
func (c *NCSS) VisitDoStatement(n *ast.Node, data any) any         { return c.statement(data) }
func (c *NCSS) VisitForStatement(n *ast.Node, data any) any        { return c.statement(data) }
func (c *NCSS) VisitSwitchStatement(n *ast.Node, data any) any     { return c.statement(data) }
func (c *NCSS) VisitTryBlock(n *ast.Node, data any) any            { return c.statement(data) }
func (c *NCSS) VisitReturnStatement(n *ast.Node, data any) any     { return c.statement(data) }
func (c *NCSS) VisitBreakStatement(n *ast.Node, data any) any      { return c.statement(data) }
func (c *NCSS) VisitContinueStatement(n *ast.Node, data any) any   { return c.statement(data) }
func (c *NCSS) VisitGotoStatement(n *ast.Node, data any) any       { return c.statement(data) }
func (c *NCSS) VisitLabeledStatement(n *ast.Node, data any) any    { return c.statement(data) }
func (c *NCSS) VisitCaseLabel(n *ast.Node, data any) any           { return c.statement(data) }
func (c *NCSS) VisitDefaultLabel(n *ast.Node, data any) any        { return c.statement(data) }
func (c *NCSS) VisitHandler(n *ast.Node, data any) any             { return c.statement(data) }
