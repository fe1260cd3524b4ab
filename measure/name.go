package measure

import (
	"strings"

	"github.com/andrewchambers/cppncss/ast"
	"github.com/andrewchambers/cppncss/cpp"
)

// UnitName returns the qualified signature of a function definition, as
// in "ns::A::get(int,const char*)const". Parameter names and default
// arguments are left out.
func UnitName(def *ast.Node) string {
	d := def.ChildOfKind(ast.Declarator)
	if d == nil {
		return ""
	}
	fd := findFunctionDeclarator(d)
	if fd == nil {
		return signature(d.Tokens())
	}
	id := fd.ChildOfKind(ast.DeclaratorID)
	if id == nil {
		return signature(fd.Tokens())
	}
	skip := make(map[*cpp.Token]bool)
	for _, c := range fd.Children() {
		if c.Kind == ast.ParameterDeclaration {
			skipParameterNames(c, skip)
		}
	}
	var rest []*cpp.Token
	for t := id.Last; t != nil && t != fd.Last; t = t.Next {
		if !skip[t] {
			rest = append(rest, t)
		}
	}
	name := def.ScopeOf().Resolve(signature(id.Tokens()))
	return name + signature(rest)
}

// findFunctionDeclarator looks for the function declarator of a
// definition. Parameters are not searched, they may have their own.
func findFunctionDeclarator(n *ast.Node) *ast.Node {
	for _, c := range n.Children() {
		switch c.Kind {
		case ast.FunctionDeclarator:
			return c
		case ast.ParameterDeclaration, ast.Expression:
			continue
		}
		if fd := findFunctionDeclarator(c); fd != nil {
			return fd
		}
	}
	return nil
}

// skipParameterNames marks the names and default arguments of a
// parameter, and of the parameters of a function pointer parameter.
func skipParameterNames(n *ast.Node, skip map[*cpp.Token]bool) {
	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		for _, c := range n.Children() {
			if c.Kind == ast.DeclaratorID {
				for _, t := range c.Tokens() {
					skip[t] = true
				}
				continue
			}
			walk(c)
		}
	}
	walk(n)
	for _, c := range n.Children() {
		if c.Kind != ast.Expression {
			continue
		}
		for t := n.First; t != nil && t != c.First; t = t.Next {
			if t.Next == c.First && t.Kind == '=' {
				skip[t] = true
			}
		}
		for _, t := range c.Tokens() {
			skip[t] = true
		}
	}
}

// signature joins tokens without spaces except after cv and sign
// qualifiers and between two words.
func signature(toks []*cpp.Token) string {
	var b strings.Builder
	for i, t := range toks {
		if i > 0 && needSpace(toks[i-1], t) {
			b.WriteByte(' ')
		}
		b.WriteString(t.Val)
	}
	return b.String()
}

func needSpace(prev, t *cpp.Token) bool {
	if t.Kind == cpp.SCOPE {
		return false
	}
	switch prev.Kind {
	case cpp.CONST, cpp.VOLATILE, cpp.SIGNED, cpp.UNSIGNED:
		return true
	}
	return prev.Kind.IsWord() && t.Kind.IsWord()
}
