package measure

import (
	"log/slog"

	"github.com/andrewchambers/cppncss/ast"
)

// FunctionCounter counts the functions defined in each file.
type FunctionCounter struct {
	ast.BaseVisitor
	count   int
	results []Measurement
	log     *slog.Logger
}

func NewFunctionCounter(logger *slog.Logger) *FunctionCounter {
	c := &FunctionCounter{}
	if logger != nil {
		c.log = logger.With(slog.String("component", "measure"), slog.String("measure", "function"))
	}
	return c
}

func (c *FunctionCounter) Name() string { return "Function" }

func (c *FunctionCounter) Results() []Measurement {
	ret := c.results
	c.results = nil
	return ret
}

func (c *FunctionCounter) VisitTranslationUnit(n *ast.Node, data any) any {
	c.count = 0
	return data
}

func (c *FunctionCounter) VisitFunctionDefinition(n *ast.Node, data any) any {
	c.count++
	return data
}

func (c *FunctionCounter) VisitConstructorDefinition(n *ast.Node, data any) any {
	c.count++
	return data
}

func (c *FunctionCounter) VisitDestructorDefinition(n *ast.Node, data any) any {
	c.count++
	return data
}

func (c *FunctionCounter) Leave(n *ast.Node, data any) any {
	if n.Kind != ast.TranslationUnit {
		return data
	}
	m := Measurement{
		Measure: "Function",
		Unit:    n.Tree().File,
		Pos:     n.Pos(),
		Count:   c.count,
	}
	if c.log != nil {
		c.log.Debug("flush", slog.String("file", m.Unit), slog.Int("count", m.Count))
	}
	c.results = append(c.results, m)
	return data
}
