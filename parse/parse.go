package parse

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/andrewchambers/cppncss/ast"
	"github.com/andrewchambers/cppncss/cpp"
	"github.com/andrewchambers/cppncss/symtab"
)

type parser struct {
	src cpp.TokenSource
	st  *symtab.SymbolTable
	b   *ast.Builder
	// Lookahead, toks[0] is the current token.
	toks []*cpp.Token
	// Last token pulled from src, the end of the Next chain.
	tail *cpp.Token
	// Number of function bodies being parsed.
	funcDepth int
	log       *slog.Logger
}

type parseErrorBreakOut struct {
	err error
}

// Parse reads one translation unit from src and builds its tree.
//
// Names declared by the unit are added to st and stay there, so a table
// shared by several calls lets later files see the types of earlier ones.
// On error the cursor of st is moved back to the root.
func Parse(file string, src cpp.TokenSource, st *symtab.SymbolTable, logger *slog.Logger) (tree *ast.Tree, errRet error) {
	p := &parser{src: src, st: st}
	if logger != nil {
		p.log = logger.With(slog.String("component", "parse"))
	}
	defer func() {
		if e := recover(); e != nil {
			peb := e.(parseErrorBreakOut) // Will re-panic if not a breakout.
			st.CloseScopes()
			tree = nil
			errRet = peb.err
		}
	}()
	p.b = ast.NewBuilder(file, st, p.curt())
	p.parseTranslationUnit()
	tree = p.b.Finish(p.curt())
	if p.log != nil {
		p.log.Debug("parsed",
			slog.String("file", file),
			slog.Int("nodes", tree.Len()),
			slog.Int("scopes", st.Len()))
	}
	return tree, nil
}

func (p *parser) errorPos(m string, pos cpp.FilePos, vals ...interface{}) {
	err := fmt.Errorf("syntax error: "+m, vals...)
	if os.Getenv("CPPNCSSDEBUG") == "true" {
		err = fmt.Errorf("%s\n%s", err, debug.Stack())
	}
	err = cpp.ErrWithLoc(err, pos)
	panic(parseErrorBreakOut{err})
}

// unexpected fails on the current token. Unknown identifiers get the
// closest visible names as suggestions.
func (p *parser) unexpected(want string) {
	t := p.curt()
	msg := "unexpected " + describe(t)
	if want != "" {
		msg += ", expected " + want
	}
	if t.Kind == cpp.IDENT && p.st.CurrentScope().GetScope(t.Val) == nil {
		if s := p.st.Suggest(t.Val, 3); len(s) > 0 {
			msg += " (did you mean " + strings.Join(s, ", ") + "?)"
		}
	}
	p.errorPos("%s", t.Pos, msg)
}

func describe(t *cpp.Token) string {
	switch t.Kind {
	case cpp.EOF:
		return "end of file"
	case cpp.IDENT:
		return "identifier " + t.Val
	}
	return "'" + t.Val + "'"
}

func (p *parser) expect(k cpp.TokenKind) *cpp.Token {
	if p.kind(0) != k {
		p.unexpected(k.String())
	}
	return p.next()
}

// peek returns the token i places after the current one, reading from the
// source as needed. Tokens are linked through Next as they are read.
func (p *parser) peek(i int) *cpp.Token {
	for len(p.toks) <= i {
		if p.tail != nil && p.tail.Kind == cpp.EOF {
			return p.tail
		}
		t, err := p.src.Next()
		if err != nil {
			panic(parseErrorBreakOut{err})
		}
		if p.tail != nil {
			p.tail.Next = t
		}
		p.tail = t
		p.toks = append(p.toks, t)
	}
	return p.toks[i]
}

func (p *parser) curt() *cpp.Token {
	return p.peek(0)
}

func (p *parser) kind(i int) cpp.TokenKind {
	return p.peek(i).Kind
}

// next consumes the current token. EOF is never consumed.
func (p *parser) next() *cpp.Token {
	t := p.curt()
	if t.Kind != cpp.EOF {
		p.toks = p.toks[1:]
	}
	return t
}

func (p *parser) consume(n int) {
	for ; n > 0; n-- {
		p.next()
	}
}

// skipParens consumes a parenthesised token sequence.
func (p *parser) skipParens() {
	p.expect('(')
	depth := 1
	for depth > 0 {
		switch p.kind(0) {
		case cpp.EOF:
			p.unexpected("')'")
		case '(':
			depth++
		case ')':
			depth--
		}
		p.next()
	}
}

// skipTo consumes tokens up to, not including, the first one of stop
// found outside of brackets.
func (p *parser) skipTo(stop ...cpp.TokenKind) {
	depth := 0
	for {
		k := p.kind(0)
		if depth == 0 && slices.Contains(stop, k) {
			return
		}
		switch k {
		case cpp.EOF:
			p.unexpected(stop[0].String())
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth < 0 {
				p.unexpected(stop[0].String())
			}
		}
		p.next()
	}
}

func (p *parser) skipAttributes() {
	for {
		t := p.curt()
		switch {
		case t.Kind == '[' && p.kind(1) == '[':
			p.next()
			p.next()
			p.skipTo(']')
			p.expect(']')
			p.expect(']')
		case t.Kind == cpp.IDENT && isAttributeWord(t.Val) && p.kind(1) == '(':
			p.next()
			p.skipParens()
		default:
			return
		}
	}
}

func (p *parser) open(kind ast.Kind, parent ast.NodeID) ast.NodeID {
	return p.b.Open(kind, parent, p.curt(), p.st.CurrentScope().ID())
}

func (p *parser) close(id ast.NodeID) {
	p.b.Close(id, p.curt())
}

// wrap puts the nodes built since mark under a new node starting at first.
func (p *parser) wrap(parent ast.NodeID, mark int, kind ast.Kind, first *cpp.Token) ast.NodeID {
	return p.b.Wrap(parent, mark, kind, first, p.st.CurrentScope().ID())
}

// enterQualifier makes the scope named by the qualifier of q current, so
// the members of a class are visible in the bodies of its out of line
// functions. The returned function goes back to the previous scope.
func (p *parser) enterQualifier(q qualName) func() {
	if q.qualifier == "" {
		return func() {}
	}
	prev := p.st.CurrentScope()
	if s := prev.GetScope(q.qualifier); s != nil {
		p.st.Enter(s)
	} else {
		if q.global {
			p.st.Enter(p.st.Root())
		}
		p.st.OpenScopes(q.qualifier)
	}
	return func() { p.st.Enter(prev) }
}

func (p *parser) parseTranslationUnit() {
	for p.kind(0) != cpp.EOF {
		p.parseDeclaration(0)
	}
}

// parseDeclaration parses anything allowed at namespace scope or in a
// class body. Declaration statements come here too.
func (p *parser) parseDeclaration(parent ast.NodeID) {
	t := p.curt()
	switch t.Kind {
	case ';':
		p.next()
	case cpp.NAMESPACE:
		p.parseNamespace(parent)
	case cpp.INLINE:
		if p.kind(1) == cpp.NAMESPACE {
			p.parseNamespace(parent)
			return
		}
		p.parseSimpleDeclaration(parent)
	case cpp.USING:
		p.parseUsing(parent)
	case cpp.TEMPLATE:
		p.parseTemplate(parent)
	case cpp.EXTERN:
		switch p.kind(1) {
		case cpp.STRING:
			p.parseLinkage(parent)
		case cpp.TEMPLATE:
			// Explicit instantiation declaration.
			p.next()
			p.parseTemplate(parent)
		default:
			p.parseSimpleDeclaration(parent)
		}
	case cpp.PUBLIC, cpp.PROTECTED, cpp.PRIVATE:
		n := p.open(ast.AccessSpecifier, parent)
		p.next()
		p.expect(':')
		p.close(n)
	case cpp.EOF:
		p.unexpected("declaration")
	default:
		p.parseSimpleDeclaration(parent)
	}
}

func (p *parser) parseNamespace(parent ast.NodeID) {
	n := p.open(ast.NamespaceDefinition, parent)
	if p.kind(0) == cpp.INLINE {
		p.next()
	}
	p.expect(cpp.NAMESPACE)
	var names []string
	for p.kind(0) == cpp.IDENT {
		names = append(names, p.next().Val)
		if p.kind(0) != cpp.SCOPE {
			break
		}
		p.next()
		if p.kind(0) == cpp.INLINE {
			p.next()
		}
	}
	if p.kind(0) == '=' && len(names) == 1 {
		p.next()
		q := p.parseName(templNever)
		p.expect(';')
		p.st.Alias(names[0], q.text)
		p.close(n)
		return
	}
	p.expect('{')
	// Anonymous namespaces share the enclosing scope.
	for _, name := range names {
		p.st.Declare(name, symtab.Namespace)
		p.st.OpenScope(name)
	}
	for p.kind(0) != '}' && p.kind(0) != cpp.EOF {
		p.parseDeclaration(n)
	}
	p.expect('}')
	for range names {
		p.st.CloseScope()
	}
	p.close(n)
}

func (p *parser) parseUsing(parent ast.NodeID) {
	switch {
	case p.kind(1) == cpp.NAMESPACE:
		n := p.open(ast.UsingDirective, parent)
		p.next()
		p.next()
		q := p.parseName(templNever)
		p.expect(';')
		p.st.Extend(q.text)
		p.close(n)
	case p.kind(1) == cpp.IDENT && p.kind(2) == '=':
		// Alias declaration, using T = type;
		n := p.open(ast.Declaration, parent)
		p.next()
		name := p.next().Val
		p.next()
		p.skipTo(';')
		p.expect(';')
		p.st.Declare(name, symtab.Typedef)
		p.close(n)
	default:
		n := p.open(ast.UsingDeclaration, parent)
		p.next()
		if p.kind(0) == cpp.TYPENAME {
			p.next()
		}
		q := p.parseName(templNever)
		p.expect(';')
		p.st.Using(q.text)
		p.close(n)
	}
}

func (p *parser) parseTemplate(parent ast.NodeID) {
	n := p.open(ast.TemplateDeclaration, parent)
	p.expect(cpp.TEMPLATE)
	if p.kind(0) == '<' {
		p.parseTemplateParameters()
	}
	p.parseDeclaration(n)
	p.close(n)
}

// parseTemplateParameters skips a template parameter list, declaring its
// type parameters in the current scope.
func (p *parser) parseTemplateParameters() {
	p.expect('<')
	depth := 1
	for depth > 0 {
		switch p.kind(0) {
		case cpp.EOF, ';', '{', '}':
			p.unexpected("'>'")
		case '<':
			depth++
		case '>':
			depth--
		case cpp.SHR:
			depth -= 2
		case '(':
			p.skipParens()
			continue
		case cpp.CLASS, cpp.TYPENAME:
			i := 1
			if p.kind(i) == cpp.ELLIPSIS {
				i++
			}
			if p.kind(i) == cpp.IDENT && depth == 1 {
				p.st.Declare(p.peek(i).Val, symtab.TemplateParam)
			}
		}
		p.next()
	}
}

func (p *parser) parseLinkage(parent ast.NodeID) {
	n := p.open(ast.LinkageSpecification, parent)
	p.expect(cpp.EXTERN)
	p.expect(cpp.STRING)
	if p.kind(0) == '{' {
		p.next()
		for p.kind(0) != '}' && p.kind(0) != cpp.EOF {
			p.parseDeclaration(n)
		}
		p.expect('}')
	} else {
		p.parseDeclaration(n)
	}
	p.close(n)
}

type declSpec struct {
	typedef bool
	sawType bool
}

// parseSimpleDeclaration parses variable, function and type declarations
// and function definitions. The node starts as a Declaration and becomes
// a definition once a body shows up.
func (p *parser) parseSimpleDeclaration(parent ast.NodeID) {
	n := p.open(ast.Declaration, parent)
	if t := p.curt(); t.Kind == cpp.IDENT && t.Val == "static_assert" {
		p.next()
		p.skipParens()
		p.expect(';')
		p.close(n)
		return
	}
	spec := p.parseDeclSpecifiers(n)
	if p.kind(0) == ';' {
		p.next()
		p.close(n)
		return
	}
	for first := true; ; first = false {
		d := p.parseDeclarator(n)
		if first && d.function && p.startsFunctionBody() {
			p.parseFunctionDefinition(n, d)
			return
		}
		p.declare(spec, d)
		if p.kind(0) == ':' {
			// Bit field width.
			p.next()
			p.parseConstantExpression(n)
		}
		p.parseInitializer(n)
		if p.kind(0) != ',' {
			break
		}
		p.next()
	}
	p.expect(';')
	p.close(n)
}

func (p *parser) startsFunctionBody() bool {
	switch p.kind(0) {
	case '{', ':', cpp.TRY:
		return true
	}
	return false
}

func (p *parser) parseFunctionDefinition(n ast.NodeID, d declarator) {
	switch {
	case d.name.dtor:
		p.b.SetKind(n, ast.DestructorDefinition)
	case d.ctor:
		p.b.SetKind(n, ast.ConstructorDefinition)
	default:
		p.b.SetKind(n, ast.FunctionDefinition)
	}
	p.declare(declSpec{}, d)
	restore := p.enterQualifier(d.name)
	// Locals live in a scope of their own so they never hide types
	// outside of the function.
	p.st.Declare(d.name.last+"()", symtab.Function)
	p.st.OpenScope(d.name.last + "()")
	p.funcDepth++
	if p.kind(0) == ':' {
		p.parseCtorInitializer(n)
	}
	if p.kind(0) == cpp.TRY {
		p.parseTryBlock(n)
	} else {
		p.parseCompoundStatement(n)
	}
	p.funcDepth--
	p.st.CloseScope()
	restore()
	p.close(n)
}

// declare registers the name introduced by a declarator in the current
// scope. Qualified names belong to scopes declared elsewhere.
func (p *parser) declare(spec declSpec, d declarator) {
	if !d.named || d.name.qualifier != "" || d.name.global {
		return
	}
	switch {
	case spec.typedef:
		p.st.Declare(d.name.last, symtab.Typedef)
	case d.ctor, d.name.dtor, d.name.op:
	case d.function:
		p.st.Declare(d.name.last, symtab.Function)
	default:
		p.st.Declare(d.name.last, symtab.Variable)
	}
}

func (p *parser) parseDeclSpecifiers(parent ast.NodeID) declSpec {
	var s declSpec
	for {
		t := p.curt()
		switch {
		case t.Kind == cpp.TYPEDEF:
			s.typedef = true
			p.next()
		case t.Kind == cpp.FRIEND, t.Kind == cpp.TYPENAME, isSpecifierKeyword(t.Kind):
			p.next()
		case t.Kind == cpp.IDENT && isSpecifierWord(t.Val):
			p.next()
		case t.Kind == cpp.IDENT && isAttributeWord(t.Val) && p.kind(1) == '(',
			t.Kind == '[' && p.kind(1) == '[':
			p.skipAttributes()
		case isBuiltinType(t.Kind):
			s.sawType = true
			p.next()
		case t.Kind == cpp.CLASS || t.Kind == cpp.STRUCT || t.Kind == cpp.UNION:
			if s.sawType {
				return s
			}
			p.parseClassSpecifier(parent)
			s.sawType = true
		case t.Kind == cpp.ENUM:
			if s.sawType {
				return s
			}
			p.parseEnumSpecifier(parent)
			s.sawType = true
		case t.Kind == cpp.IDENT && t.Val == "decltype" && p.kind(1) == '(':
			p.next()
			p.skipParens()
			s.sawType = true
		case (t.Kind == cpp.IDENT || t.Kind == cpp.SCOPE) && !s.sawType:
			q, ok := p.scanName(0, templAlways)
			if !ok || q.dtor || q.op {
				return s
			}
			if p.kind(q.n) == '(' && p.st.IsConstructor(q.qualifier, q.last) {
				return s
			}
			p.consume(q.n)
			s.sawType = true
		default:
			return s
		}
	}
}

func (p *parser) parseClassSpecifier(parent ast.NodeID) {
	n := p.open(ast.ClassSpecifier, parent)
	p.next()
	p.skipAttributes()
	var q qualName
	named := false
	if k := p.kind(0); k == cpp.IDENT || k == cpp.SCOPE {
		q = p.parseName(templAlways)
		named = true
	}
	if t := p.curt(); t.Kind == cpp.IDENT && t.Val == "final" {
		p.next()
	}
	if k := p.kind(0); k != ':' && k != '{' {
		// Forward declaration or elaborated type specifier.
		if named && q.qualifier == "" && !q.global {
			p.st.Declare(q.last, symtab.Class)
		}
		p.close(n)
		return
	}
	if p.kind(0) == ':' {
		// Base classes.
		p.next()
		p.skipTo('{')
	}
	restore := func() {}
	if named {
		restore = p.enterQualifier(q)
		p.st.Declare(q.last, symtab.Class)
		p.st.OpenScope(q.last)
	}
	p.expect('{')
	for p.kind(0) != '}' && p.kind(0) != cpp.EOF {
		p.parseDeclaration(n)
	}
	p.expect('}')
	if named {
		p.st.CloseScope()
		restore()
	}
	p.close(n)
}

func (p *parser) parseEnumSpecifier(parent ast.NodeID) {
	n := p.open(ast.EnumSpecifier, parent)
	p.expect(cpp.ENUM)
	scoped := false
	if k := p.kind(0); k == cpp.CLASS || k == cpp.STRUCT {
		scoped = true
		p.next()
	}
	var q qualName
	named := false
	if k := p.kind(0); k == cpp.IDENT || k == cpp.SCOPE {
		q = p.parseName(templNever)
		named = true
	}
	if p.kind(0) == ':' {
		// Underlying type.
		p.next()
		p.skipTo('{', ';')
	}
	if named && q.qualifier == "" && !q.global {
		p.st.Declare(q.last, symtab.Enum)
	}
	if p.kind(0) == '{' {
		p.next()
		for p.kind(0) != '}' {
			t := p.expect(cpp.IDENT)
			if !scoped {
				p.st.Declare(t.Val, symtab.Variable)
			}
			if p.kind(0) == '=' {
				p.next()
				p.parseConstantExpression(n)
			}
			if p.kind(0) != ',' {
				break
			}
			p.next()
		}
		p.expect('}')
	}
	p.close(n)
}

type declarator struct {
	name  qualName
	named bool
	// A parameter list follows the name directly.
	function bool
	ctor     bool
}

// parseDeclarator parses a possibly abstract declarator into a
// Declarator node. The name and parameter list of a function are put
// under a FunctionDeclarator inside it.
func (p *parser) parseDeclarator(parent ast.NodeID) declarator {
	n := p.open(ast.Declarator, parent)
	var d declarator
	p.parsePtrOperators()
	switch p.kind(0) {
	case '(':
		if !p.nestedDeclaratorFollows() {
			break
		}
		p.next()
		inner := p.parseDeclarator(n)
		p.expect(')')
		d.name, d.named = inner.name, inner.named
		if p.kind(0) == '(' {
			// Function pointer parameters.
			p.parseParameters(n)
			p.parseCVQualifiers()
			p.parseFunctionTrailer(n)
		}
	case cpp.IDENT, cpp.SCOPE, '~', cpp.OPERATOR:
		mark := p.b.NumChildren(n)
		first := p.curt()
		id := p.open(ast.DeclaratorID, n)
		d.name = p.parseName(templAlways)
		d.named = true
		p.close(id)
		if p.kind(0) == '(' && p.parameterListFollows() {
			fd := p.wrap(n, mark, ast.FunctionDeclarator, first)
			p.parseParameters(fd)
			p.parseCVQualifiers()
			p.close(fd)
			p.parseFunctionTrailer(n)
			d.function = true
			d.ctor = !d.name.dtor && !d.name.op && p.st.IsConstructor(d.name.qualifier, d.name.last)
		}
	}
	for p.kind(0) == '[' {
		p.next()
		if p.kind(0) != ']' {
			p.parseExpression(n)
		}
		p.expect(']')
	}
	p.skipAttributes()
	p.close(n)
	return d
}

func (p *parser) parsePtrOperators() {
	for {
		switch p.kind(0) {
		case '*', '&', cpp.LAND, cpp.CONST, cpp.VOLATILE:
			p.next()
		case cpp.IDENT, cpp.SCOPE:
			q, ok := p.scanName(0, templAlways)
			if !ok || p.kind(q.n) != cpp.SCOPE || p.kind(q.n+1) != '*' {
				return
			}
			// Pointer to member.
			p.consume(q.n + 2)
		default:
			return
		}
	}
}

func (p *parser) parseCVQualifiers() {
	for {
		switch p.kind(0) {
		case cpp.CONST, cpp.VOLATILE, '&', cpp.LAND:
			p.next()
		default:
			return
		}
	}
}

// parseFunctionTrailer skips exception specifications, virt-specifiers
// and trailing return types.
func (p *parser) parseFunctionTrailer(parent ast.NodeID) {
	for {
		t := p.curt()
		switch {
		case t.Kind == cpp.THROW:
			p.next()
			p.skipParens()
		case t.Kind == cpp.IDENT && t.Val == "noexcept":
			p.next()
			if p.kind(0) == '(' {
				p.skipParens()
			}
		case t.Kind == cpp.IDENT && (t.Val == "override" || t.Val == "final"):
			p.next()
		case t.Kind == cpp.ARROW:
			p.next()
			p.parseDeclSpecifiers(parent)
			p.parsePtrOperators()
		default:
			return
		}
	}
}

func (p *parser) parseParameters(parent ast.NodeID) {
	p.expect('(')
	for p.kind(0) != ')' {
		n := p.open(ast.ParameterDeclaration, parent)
		if p.kind(0) == cpp.ELLIPSIS {
			p.next()
		} else {
			p.parseDeclSpecifiers(n)
			p.parseDeclarator(n)
			if p.kind(0) == cpp.ELLIPSIS {
				p.next()
			}
			if p.kind(0) == '=' {
				p.next()
				p.parseInitializerExpression(n)
			}
		}
		p.close(n)
		if p.kind(0) != ',' {
			break
		}
		p.next()
	}
	p.expect(')')
}

func (p *parser) parseInitializer(parent ast.NodeID) {
	switch p.kind(0) {
	case '=':
		p.next()
		if k := p.kind(0); (k == cpp.DEFAULT || k == cpp.DELETE) && p.kind(1) == ';' {
			p.next()
			return
		}
		p.parseInitializerExpression(parent)
	case '(':
		n := p.open(ast.Expression, parent)
		p.next()
		if p.kind(0) != ')' {
			p.parseCommaExpression(n)
		}
		p.expect(')')
		p.close(n)
	case '{':
		p.parseInitializerExpression(parent)
	}
}

func (p *parser) parseCtorInitializer(parent ast.NodeID) {
	n := p.open(ast.CtorInitializer, parent)
	p.expect(':')
	for {
		p.parseName(templAlways)
		switch p.kind(0) {
		case '(':
			p.next()
			if p.kind(0) != ')' {
				p.parseExpression(n)
			}
			p.expect(')')
		case '{':
			p.parseInitializerExpression(n)
		default:
			p.unexpected("'(' or '{'")
		}
		if p.kind(0) == cpp.ELLIPSIS {
			p.next()
		}
		if p.kind(0) != ',' {
			break
		}
		p.next()
	}
	p.close(n)
}
