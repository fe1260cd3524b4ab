// Package measure computes metrics over parsed translation units.
//
// Each metric is an ast.Visitor meant to be walked with ast.Walk, on its
// own or as a member of an ast.Multi so that a single walk feeds all of
// them. Results are read back with Results once the walk is done.
package measure

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/andrewchambers/cppncss/ast"
	"github.com/andrewchambers/cppncss/cpp"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Measurement is the value of one metric for one function, or for one
// file in the case of the function counter.
type Measurement struct {
	Measure string
	// Unit is the qualified signature of the function, or the file name.
	Unit  string
	Pos   cpp.FilePos
	Count int
}

func (m Measurement) String() string {
	return fmt.Sprintf("%s: %s %s %d", m.Pos, m.Measure, m.Unit, m.Count)
}

// Measure is a metric.
type Measure interface {
	ast.Visitor
	ast.Leaver
	Name() string
	// Results returns the measurements flushed so far and forgets them.
	Results() []Measurement
}

type constructor func(logger *slog.Logger) Measure

var measures = map[string]constructor{
	"ccn":      func(l *slog.Logger) Measure { return NewCCN(l) },
	"ncss":     func(l *slog.Logger) Measure { return NewNCSS(l) },
	"function": func(l *slog.Logger) Measure { return NewFunctionCounter(l) },
}

// Names lists the known measures in report order.
func Names() []string {
	return []string{"ncss", "ccn", "function"}
}

// New returns the measure called name, which is looked up ignoring case.
func New(name string, logger *slog.Logger) (Measure, error) {
	c, ok := measures[strings.ToLower(name)]
	if !ok {
		err := fmt.Errorf("unknown measurement %q", name)
		if ranks := fuzzy.RankFindFold(name, Names()); len(ranks) > 0 {
			err = fmt.Errorf("%w (did you mean %s?)", err, ranks[0].Target)
		}
		return nil, err
	}
	return c(logger), nil
}

// isUnit reports whether n is a countable unit.
func isUnit(n *ast.Node) bool {
	switch n.Kind {
	case ast.FunctionDefinition, ast.ConstructorDefinition, ast.DestructorDefinition:
		return true
	}
	return false
}
