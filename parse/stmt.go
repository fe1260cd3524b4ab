package parse

import (
	"github.com/andrewchambers/cppncss/ast"
	"github.com/andrewchambers/cppncss/cpp"
)

func (p *parser) parseStatement(parent ast.NodeID) {
	if p.kind(0) == cpp.IDENT && p.kind(1) == ':' {
		n := p.open(ast.LabeledStatement, parent)
		p.next()
		p.next()
		p.parseLabelTarget(n)
		p.close(n)
		return
	}
	switch p.kind(0) {
	case '{':
		p.parseCompoundStatement(parent)
	case ';':
		n := p.open(ast.EmptyStatement, parent)
		p.next()
		p.close(n)
	case cpp.IF:
		p.parseIf(parent)
	case cpp.WHILE:
		p.parseWhile(parent)
	case cpp.DO:
		p.parseDoWhile(parent)
	case cpp.FOR:
		p.parseFor(parent)
	case cpp.SWITCH:
		p.parseSwitch(parent)
	case cpp.CASE:
		n := p.open(ast.CaseLabel, parent)
		p.next()
		p.parseConstantExpression(n)
		if p.kind(0) == cpp.ELLIPSIS {
			// case 1 ... 3:
			p.next()
			p.parseConstantExpression(n)
		}
		p.expect(':')
		p.parseLabelTarget(n)
		p.close(n)
	case cpp.DEFAULT:
		n := p.open(ast.DefaultLabel, parent)
		p.next()
		p.expect(':')
		p.parseLabelTarget(n)
		p.close(n)
	case cpp.RETURN:
		n := p.open(ast.ReturnStatement, parent)
		p.next()
		if p.kind(0) != ';' {
			p.parseExpression(n)
		}
		p.expect(';')
		p.close(n)
	case cpp.BREAK:
		p.parseJump(parent, ast.BreakStatement)
	case cpp.CONTINUE:
		p.parseJump(parent, ast.ContinueStatement)
	case cpp.GOTO:
		n := p.open(ast.GotoStatement, parent)
		p.next()
		p.expect(cpp.IDENT)
		p.expect(';')
		p.close(n)
	case cpp.TRY:
		p.parseTryBlock(parent)
	case cpp.EOF:
		p.unexpected("statement")
	default:
		if p.isDeclarationStart() {
			p.parseDeclaration(parent)
			return
		}
		n := p.open(ast.ExpressionStatement, parent)
		p.parseExpression(n)
		p.expect(';')
		p.close(n)
	}
}

// A label owns the statement after it, unless the block ends first.
func (p *parser) parseLabelTarget(parent ast.NodeID) {
	if p.kind(0) != '}' {
		p.parseStatement(parent)
	}
}

func (p *parser) parseJump(parent ast.NodeID, kind ast.Kind) {
	n := p.open(kind, parent)
	p.next()
	p.expect(';')
	p.close(n)
}

func (p *parser) parseCompoundStatement(parent ast.NodeID) {
	n := p.open(ast.CompoundStatement, parent)
	p.expect('{')
	for p.kind(0) != '}' && p.kind(0) != cpp.EOF {
		p.parseStatement(n)
	}
	p.expect('}')
	p.close(n)
}

func (p *parser) parseIf(parent ast.NodeID) {
	n := p.open(ast.IfStatement, parent)
	p.expect(cpp.IF)
	if t := p.curt(); t.Kind == cpp.IDENT && t.Val == "constexpr" {
		p.next()
	}
	p.expect('(')
	p.parseCondition(n, true)
	p.expect(')')
	p.parseStatement(n)
	if p.kind(0) == cpp.ELSE {
		p.next()
		p.parseStatement(n)
	}
	p.close(n)
}

func (p *parser) parseWhile(parent ast.NodeID) {
	n := p.open(ast.WhileStatement, parent)
	p.expect(cpp.WHILE)
	p.expect('(')
	p.parseCondition(n, false)
	p.expect(')')
	p.parseStatement(n)
	p.close(n)
}

func (p *parser) parseDoWhile(parent ast.NodeID) {
	n := p.open(ast.DoStatement, parent)
	p.expect(cpp.DO)
	p.parseStatement(n)
	p.expect(cpp.WHILE)
	p.expect('(')
	p.parseExpression(n)
	p.expect(')')
	p.expect(';')
	p.close(n)
}

func (p *parser) parseFor(parent ast.NodeID) {
	n := p.open(ast.ForStatement, parent)
	p.expect(cpp.FOR)
	p.expect('(')
	switch {
	case p.kind(0) == ';':
	case p.isDeclarationStart():
		p.parseConditionDeclaration(n)
		if p.kind(0) == ':' {
			// Range based for.
			p.next()
			p.parseExpression(n)
			p.expect(')')
			p.parseStatement(n)
			p.close(n)
			return
		}
	default:
		p.parseExpression(n)
	}
	p.expect(';')
	if p.kind(0) != ';' {
		p.parseCondition(n, false)
	}
	p.expect(';')
	if p.kind(0) != ')' {
		p.parseExpression(n)
	}
	p.expect(')')
	p.parseStatement(n)
	p.close(n)
}

func (p *parser) parseSwitch(parent ast.NodeID) {
	n := p.open(ast.SwitchStatement, parent)
	p.expect(cpp.SWITCH)
	p.expect('(')
	p.parseCondition(n, true)
	p.expect(')')
	p.parseStatement(n)
	p.close(n)
}

// parseCondition parses the condition of a selection or iteration
// statement, which may declare a variable. An init statement ahead of it
// is accepted if initOK is set.
func (p *parser) parseCondition(parent ast.NodeID, initOK bool) {
	if p.isDeclarationStart() {
		p.parseConditionDeclaration(parent)
	} else {
		p.parseExpression(parent)
	}
	if initOK && p.kind(0) == ';' {
		p.next()
		p.parseCondition(parent, false)
	}
}

// parseConditionDeclaration parses the declaration of a condition or a
// for loop initializer. It is kept in an Expression node since it is not
// a statement of its own.
func (p *parser) parseConditionDeclaration(parent ast.NodeID) {
	n := p.open(ast.Expression, parent)
	spec := p.parseDeclSpecifiers(n)
	for {
		d := p.parseDeclarator(n)
		p.declare(spec, d)
		p.parseInitializer(n)
		if p.kind(0) != ',' {
			break
		}
		p.next()
	}
	p.close(n)
}

func (p *parser) parseTryBlock(parent ast.NodeID) {
	n := p.open(ast.TryBlock, parent)
	p.expect(cpp.TRY)
	if p.kind(0) == ':' {
		// Function try block of a constructor.
		p.parseCtorInitializer(n)
	}
	p.parseCompoundStatement(n)
	if p.kind(0) != cpp.CATCH {
		p.unexpected("catch")
	}
	for p.kind(0) == cpp.CATCH {
		h := p.open(ast.Handler, n)
		p.next()
		p.expect('(')
		if p.kind(0) == cpp.ELLIPSIS {
			p.next()
		} else {
			pd := p.open(ast.ParameterDeclaration, h)
			p.parseDeclSpecifiers(pd)
			p.parseDeclarator(pd)
			p.close(pd)
		}
		p.expect(')')
		p.parseCompoundStatement(h)
		p.close(h)
	}
	p.close(n)
}
