package parse

import (
	"strings"

	"github.com/andrewchambers/cppncss/cpp"
	"github.com/andrewchambers/cppncss/symtab"
)

// qualName is a possibly qualified name as written in the source, with
// template argument lists left out of its text.
type qualName struct {
	// text is the whole name, "A::B::f".
	text string
	// qualifier is text without its last component, "A::B".
	qualifier string
	last      string
	// Started with "::".
	global bool
	dtor   bool
	op     bool
	// A template argument list was part of the name.
	templ bool
	// Number of tokens spanned.
	n int
}

// When a '<' after a name opens a template argument list.
type templMode int

const (
	templNever templMode = iota
	// After names of known types, or when the closing '>' is followed by
	// '(' or '::'.
	templTypes
	templAlways
)

// scanName looks at the tokens from lookahead index i and reports the
// qualified name starting there, if any. Nothing is consumed.
func (p *parser) scanName(i int, mode templMode) (qualName, bool) {
	var q qualName
	start := i
	var parts []string
	if p.kind(i) == cpp.SCOPE {
		q.global = true
		i++
	}
loop:
	for {
		if p.kind(i) == cpp.TEMPLATE {
			i++
		}
		switch t := p.peek(i); t.Kind {
		case cpp.IDENT:
			parts = append(parts, t.Val)
			i++
			if p.kind(i) == '<' && mode != templNever {
				if n, ok := p.scanTemplateArgs(i); ok && p.wantTemplate(mode, q.global, parts, i+n) {
					i += n
					q.templ = true
				}
			}
		case '~':
			if p.kind(i+1) != cpp.IDENT {
				return q, false
			}
			parts = append(parts, "~"+p.peek(i+1).Val)
			q.dtor = true
			i += 2
			break loop
		case cpp.OPERATOR:
			name, n := p.scanOperator(i)
			if n == 0 {
				return q, false
			}
			parts = append(parts, name)
			q.op = true
			i += n
			break loop
		default:
			return q, false
		}
		if p.kind(i) != cpp.SCOPE {
			break
		}
		switch p.kind(i + 1) {
		case cpp.IDENT, '~', cpp.OPERATOR, cpp.TEMPLATE:
			i++
		default:
			// C::* of a pointer to member.
			break loop
		}
	}
	q.last = parts[len(parts)-1]
	q.qualifier = strings.Join(parts[:len(parts)-1], symtab.Separator)
	q.text = strings.Join(parts, symtab.Separator)
	if q.global {
		q.text = symtab.Separator + q.text
		if q.qualifier != "" {
			q.qualifier = symtab.Separator + q.qualifier
		}
	}
	q.n = i - start
	return q, true
}

func (p *parser) wantTemplate(mode templMode, global bool, parts []string, after int) bool {
	switch mode {
	case templAlways:
		return true
	case templTypes:
		name := strings.Join(parts, symtab.Separator)
		if global {
			name = symtab.Separator + name
		}
		if p.st.IsType(name) {
			return true
		}
		k := p.kind(after)
		return k == '(' || k == cpp.SCOPE
	}
	return false
}

// scanTemplateArgs measures the template argument list opening at
// lookahead index i. It fails on tokens that cannot be part of one, so a
// less-than comparison is not mistaken for a list.
func (p *parser) scanTemplateArgs(i int) (int, bool) {
	depth, parens := 0, 0
	for j := i; ; j++ {
		switch p.kind(j) {
		case '<':
			if parens == 0 {
				depth++
			}
		case '>':
			if parens == 0 {
				depth--
				if depth == 0 {
					return j - i + 1, true
				}
			}
		case cpp.SHR:
			if parens == 0 {
				depth -= 2
				if depth <= 0 {
					return j - i + 1, true
				}
			}
		case '(', '[':
			parens++
		case ')', ']':
			parens--
			if parens < 0 {
				return 0, false
			}
		case cpp.LAND, cpp.LOR:
			if parens == 0 {
				return 0, false
			}
		case ';', '{', '}', cpp.EOF:
			return 0, false
		}
	}
}

// scanOperator reads an operator function name at lookahead index i,
// returning its text and length, or a zero length.
func (p *parser) scanOperator(i int) (string, int) {
	t := p.peek(i + 1)
	switch t.Kind {
	case '(':
		if p.kind(i+2) == ')' {
			return "operator()", 3
		}
		return "", 0
	case '[':
		if p.kind(i+2) == ']' {
			return "operator[]", 3
		}
		return "", 0
	case cpp.NEW, cpp.DELETE:
		if p.kind(i+2) == '[' && p.kind(i+3) == ']' {
			return "operator " + t.Val + "[]", 4
		}
		return "operator " + t.Val, 2
	case cpp.STRING:
		// User defined literal.
		if p.kind(i+2) == cpp.IDENT {
			return "operator\"\"" + p.peek(i+2).Val, 3
		}
		return "", 0
	}
	if isOperatorToken(t.Kind) {
		return "operator" + t.Val, 2
	}
	// Conversion function.
	j := i + 1
	var parts []string
	for {
		k := p.kind(j)
		switch {
		case k.IsWord():
			parts = append(parts, p.peek(j).Val)
			j++
			if p.kind(j) == '<' {
				if n, ok := p.scanTemplateArgs(j); ok {
					j += n
				}
			}
			continue
		case k == cpp.SCOPE:
			j++
			continue
		case k == '*' || k == '&' || k == cpp.LAND:
			parts = append(parts, p.peek(j).Val)
			j++
			continue
		}
		break
	}
	if len(parts) == 0 {
		return "", 0
	}
	return "operator " + strings.Join(parts, " "), j - i
}

func isOperatorToken(k cpp.TokenKind) bool {
	switch k {
	case '+', '-', '*', '/', '%', '^', '&', '|', '~', '!', '=', '<', '>', ',':
		return true
	case cpp.SCOPE, cpp.ELLIPSIS:
		return false
	}
	return k >= cpp.SHL && k <= cpp.GEQ
}

// parseName consumes a qualified name.
func (p *parser) parseName(mode templMode) qualName {
	q, ok := p.scanName(0, mode)
	if !ok {
		p.unexpected("name")
	}
	p.consume(q.n)
	return q
}

func isBuiltinType(k cpp.TokenKind) bool {
	switch k {
	case cpp.VOID, cpp.CHAR, cpp.SHORT, cpp.INT, cpp.LONG, cpp.FLOAT, cpp.DOUBLE,
		cpp.SIGNED, cpp.UNSIGNED, cpp.BOOL, cpp.WCHAR_T, cpp.AUTO:
		return true
	}
	return false
}

func isSpecifierKeyword(k cpp.TokenKind) bool {
	switch k {
	case cpp.STATIC, cpp.EXTERN, cpp.INLINE, cpp.VIRTUAL, cpp.EXPLICIT,
		cpp.MUTABLE, cpp.REGISTER, cpp.CONST, cpp.VOLATILE:
		return true
	}
	return false
}

// Specifiers newer than the keyword table.
func isSpecifierWord(s string) bool {
	switch s {
	case "constexpr", "consteval", "constinit", "thread_local":
		return true
	}
	return false
}

func isAttributeWord(s string) bool {
	switch s {
	case "__attribute__", "__declspec", "alignas":
		return true
	}
	return false
}

// isDeclarationStart decides whether the statement at the current token
// is a declaration. A name followed by '*', '&' or '(' starts one only if
// it was declared as a type; a name followed by an identifier always does.
func (p *parser) isDeclarationStart() bool {
	t := p.curt()
	switch {
	case isBuiltinType(t.Kind), isSpecifierKeyword(t.Kind):
		return true
	}
	switch t.Kind {
	case cpp.CLASS, cpp.STRUCT, cpp.UNION, cpp.ENUM, cpp.TYPENAME, cpp.TYPEDEF,
		cpp.FRIEND, cpp.USING, cpp.TEMPLATE, cpp.NAMESPACE:
		return true
	case cpp.IDENT, cpp.SCOPE:
	default:
		return false
	}
	if t.Kind == cpp.IDENT && isSpecifierWord(t.Val) {
		return true
	}
	q, ok := p.scanName(0, templAlways)
	if !ok || q.dtor || q.op {
		return false
	}
	after := p.kind(q.n)
	if p.st.IsType(q.text) {
		switch after {
		case cpp.IDENT, '*', '&', cpp.LAND, '(', cpp.CONST, cpp.VOLATILE:
			return true
		}
		return false
	}
	switch after {
	case cpp.IDENT, cpp.CONST:
		return true
	case '*', '&', cpp.LAND:
		return q.templ && p.kind(q.n+1) == cpp.IDENT
	}
	return false
}

// parameterListFollows tells the parameter list of a function declarator
// from the parenthesised initializer of a variable, as in "Foo f(a, b);".
func (p *parser) parameterListFollows() bool {
	t := p.peek(1)
	switch {
	case t.Kind == ')', t.Kind == cpp.ELLIPSIS:
		return true
	case isBuiltinType(t.Kind), isSpecifierKeyword(t.Kind):
		return true
	}
	switch t.Kind {
	case cpp.CLASS, cpp.STRUCT, cpp.UNION, cpp.ENUM, cpp.TYPENAME:
		return true
	case cpp.IDENT, cpp.SCOPE:
	default:
		return false
	}
	if t.Kind == cpp.IDENT && (isSpecifierWord(t.Val) || isAttributeWord(t.Val)) {
		return true
	}
	q, ok := p.scanName(1, templAlways)
	if !ok {
		return false
	}
	if s := p.st.CurrentScope().GetScope(q.text); s != nil {
		switch s.Kind() {
		case symtab.Variable, symtab.Function:
			return false
		}
		if s.Kind().IsType() {
			return true
		}
	}
	switch p.kind(1 + q.n) {
	case cpp.IDENT, cpp.CONST:
		return true
	case '*', '&', cpp.LAND:
		switch p.kind(2 + q.n) {
		case cpp.IDENT, ')', ',', '*', '&', cpp.CONST:
			return true
		}
	case ',', ')':
		// Unnamed parameters of unknown types are the norm outside of
		// function bodies, arguments are the norm inside.
		return p.funcDepth == 0
	}
	return q.templ
}

// parenthesizedTypeFollows reports whether the '(' at lookahead index i
// encloses a type id, as in "(char *)p" or "sizeof(T)".
func (p *parser) parenthesizedTypeFollows(i int) bool {
	i++
	for {
		k := p.kind(i)
		if k != cpp.CONST && k != cpp.VOLATILE && k != cpp.TYPENAME {
			break
		}
		i++
	}
	switch k := p.kind(i); {
	case isBuiltinType(k):
		for isBuiltinType(p.kind(i)) {
			i++
		}
	case k == cpp.IDENT || k == cpp.SCOPE:
		q, ok := p.scanName(i, templTypes)
		if !ok || !p.st.IsType(q.text) {
			return false
		}
		i += q.n
	default:
		return false
	}
	for {
		switch p.kind(i) {
		case '*', '&', cpp.LAND, cpp.CONST, cpp.VOLATILE:
			i++
			continue
		}
		break
	}
	return p.kind(i) == ')'
}

// nestedDeclaratorFollows reports whether the '(' at the current token
// opens a nested declarator such as the "(*fp)" of a function pointer, or
// a parenthesised name.
func (p *parser) nestedDeclaratorFollows() bool {
	switch p.kind(1) {
	case '*', '&', cpp.LAND:
		return true
	case cpp.IDENT, cpp.SCOPE:
		q, ok := p.scanName(1, templAlways)
		if !ok {
			return false
		}
		if p.kind(1+q.n) == ')' {
			return true
		}
		return p.kind(1+q.n) == cpp.SCOPE && p.kind(2+q.n) == '*'
	}
	return false
}
