package parse

import (
	"github.com/andrewchambers/cppncss/ast"
	"github.com/andrewchambers/cppncss/cpp"
)

// Only the operators analyses care about get nodes of their own, the
// other levels of the grammar just consume tokens.

// parseExpression parses a full expression into an Expression node.
func (p *parser) parseExpression(parent ast.NodeID) {
	n := p.open(ast.Expression, parent)
	p.parseCommaExpression(n)
	p.close(n)
}

// parseInitializerExpression parses an expression that stops at a comma.
func (p *parser) parseInitializerExpression(parent ast.NodeID) {
	n := p.open(ast.Expression, parent)
	p.parseAssignmentExpression(n)
	p.close(n)
}

func (p *parser) parseConstantExpression(parent ast.NodeID) {
	n := p.open(ast.Expression, parent)
	p.parseConditionalExpression(n)
	p.close(n)
}

func isAssignmentOperator(k cpp.TokenKind) bool {
	switch k {
	case '=', cpp.ADD_ASSIGN, cpp.SUB_ASSIGN, cpp.MUL_ASSIGN, cpp.QUO_ASSIGN,
		cpp.REM_ASSIGN, cpp.AND_ASSIGN, cpp.OR_ASSIGN, cpp.XOR_ASSIGN,
		cpp.SHL_ASSIGN, cpp.SHR_ASSIGN:
		return true
	}
	return false
}

func (p *parser) parseCommaExpression(parent ast.NodeID) {
	p.parseAssignmentExpression(parent)
	for p.kind(0) == ',' {
		p.next()
		p.parseAssignmentExpression(parent)
	}
}

func (p *parser) parseAssignmentExpression(parent ast.NodeID) {
	if p.kind(0) == cpp.THROW {
		p.parseThrowExpression(parent)
		return
	}
	p.parseConditionalExpression(parent)
	if isAssignmentOperator(p.kind(0)) {
		p.next()
		p.parseAssignmentExpression(parent)
	}
}

func (p *parser) parseThrowExpression(parent ast.NodeID) {
	n := p.open(ast.ThrowExpression, parent)
	p.expect(cpp.THROW)
	switch p.kind(0) {
	case ';', ')', ']', '}', ',', ':':
	default:
		p.parseAssignmentExpression(n)
	}
	p.close(n)
}

// Aka Ternary operator.
func (p *parser) parseConditionalExpression(parent ast.NodeID) {
	mark, first := p.b.NumChildren(parent), p.curt()
	p.parseLogicalOrExpression(parent)
	if p.kind(0) != '?' {
		return
	}
	n := p.wrap(parent, mark, ast.ConditionalExpression, first)
	p.next()
	p.parseCommaExpression(n)
	p.expect(':')
	p.parseAssignmentExpression(n)
	p.close(n)
}

func (p *parser) parseLogicalOrExpression(parent ast.NodeID) {
	mark, first := p.b.NumChildren(parent), p.curt()
	p.parseLogicalAndExpression(parent)
	if p.kind(0) != cpp.LOR {
		return
	}
	n := p.wrap(parent, mark, ast.LogicalOrExpression, first)
	for p.kind(0) == cpp.LOR {
		p.next()
		p.parseLogicalAndExpression(n)
	}
	p.close(n)
}

func (p *parser) parseLogicalAndExpression(parent ast.NodeID) {
	mark, first := p.b.NumChildren(parent), p.curt()
	p.parseInclusiveOrExpression(parent)
	if p.kind(0) != cpp.LAND {
		return
	}
	n := p.wrap(parent, mark, ast.LogicalAndExpression, first)
	for p.kind(0) == cpp.LAND {
		p.next()
		p.parseInclusiveOrExpression(n)
	}
	p.close(n)
}

func (p *parser) parseInclusiveOrExpression(parent ast.NodeID) {
	p.parseExclusiveOrExpression(parent)
	for p.kind(0) == '|' {
		p.next()
		p.parseExclusiveOrExpression(parent)
	}
}

func (p *parser) parseExclusiveOrExpression(parent ast.NodeID) {
	p.parseAndExpression(parent)
	for p.kind(0) == '^' {
		p.next()
		p.parseAndExpression(parent)
	}
}

func (p *parser) parseAndExpression(parent ast.NodeID) {
	p.parseEqualityExpression(parent)
	for p.kind(0) == '&' {
		p.next()
		p.parseEqualityExpression(parent)
	}
}

func (p *parser) parseEqualityExpression(parent ast.NodeID) {
	p.parseRelationalExpression(parent)
	for p.kind(0) == cpp.EQL || p.kind(0) == cpp.NEQ {
		p.next()
		p.parseRelationalExpression(parent)
	}
}

func (p *parser) parseRelationalExpression(parent ast.NodeID) {
	p.parseShiftExpression(parent)
	for {
		switch p.kind(0) {
		case '<', '>', cpp.LEQ, cpp.GEQ:
			p.next()
			p.parseShiftExpression(parent)
			continue
		}
		return
	}
}

func (p *parser) parseShiftExpression(parent ast.NodeID) {
	p.parseAdditiveExpression(parent)
	for p.kind(0) == cpp.SHL || p.kind(0) == cpp.SHR {
		p.next()
		p.parseAdditiveExpression(parent)
	}
}

func (p *parser) parseAdditiveExpression(parent ast.NodeID) {
	p.parseMultiplicativeExpression(parent)
	for p.kind(0) == '+' || p.kind(0) == '-' {
		p.next()
		p.parseMultiplicativeExpression(parent)
	}
}

func (p *parser) parseMultiplicativeExpression(parent ast.NodeID) {
	p.parsePointerToMemberExpression(parent)
	for p.kind(0) == '*' || p.kind(0) == '/' || p.kind(0) == '%' {
		p.next()
		p.parsePointerToMemberExpression(parent)
	}
}

func (p *parser) parsePointerToMemberExpression(parent ast.NodeID) {
	p.parseCastExpression(parent)
	for p.kind(0) == cpp.DOT_STAR || p.kind(0) == cpp.ARROW_STAR {
		p.next()
		p.parseCastExpression(parent)
	}
}

func (p *parser) parseCastExpression(parent ast.NodeID) {
	if p.kind(0) == '(' && p.parenthesizedTypeFollows(0) {
		p.next()
		p.skipTo(')')
		p.expect(')')
		if p.kind(0) == '{' {
			p.parseBracedList(parent)
			return
		}
		p.parseCastExpression(parent)
		return
	}
	p.parseUnaryExpression(parent)
}

func (p *parser) parseUnaryExpression(parent ast.NodeID) {
	switch p.kind(0) {
	case cpp.INC, cpp.DEC:
		p.next()
		p.parseUnaryExpression(parent)
	case '*', '&', '+', '-', '!', '~':
		p.next()
		p.parseCastExpression(parent)
	case cpp.SIZEOF:
		p.next()
		if p.kind(0) == cpp.ELLIPSIS {
			p.next()
		}
		if p.kind(0) == '(' && p.parenthesizedTypeFollows(0) {
			p.skipParens()
			return
		}
		p.parseUnaryExpression(parent)
	case cpp.NEW:
		p.parseNewExpression(parent)
	case cpp.DELETE:
		p.next()
		if p.kind(0) == '[' {
			p.next()
			p.expect(']')
		}
		p.parseCastExpression(parent)
	case cpp.SCOPE:
		if k := p.kind(1); k == cpp.NEW || k == cpp.DELETE {
			p.next()
			p.parseUnaryExpression(parent)
			return
		}
		p.parsePostfixExpression(parent)
	default:
		p.parsePostfixExpression(parent)
	}
}

func (p *parser) parseNewExpression(parent ast.NodeID) {
	p.expect(cpp.NEW)
	if p.kind(0) == '(' {
		// Placement arguments.
		p.next()
		p.parseCommaExpression(parent)
		p.expect(')')
	}
	for p.kind(0) == cpp.CONST || p.kind(0) == cpp.VOLATILE {
		p.next()
	}
	if isBuiltinType(p.kind(0)) {
		for isBuiltinType(p.kind(0)) {
			p.next()
		}
	} else {
		p.parseName(templAlways)
	}
	for {
		switch p.kind(0) {
		case '*', '&':
			p.next()
			continue
		case '[':
			p.next()
			p.parseCommaExpression(parent)
			p.expect(']')
			continue
		}
		break
	}
	switch p.kind(0) {
	case '(':
		p.next()
		if p.kind(0) != ')' {
			p.parseCommaExpression(parent)
		}
		p.expect(')')
	case '{':
		p.parseBracedList(parent)
	}
}

func (p *parser) parsePostfixExpression(parent ast.NodeID) {
	p.parsePrimaryExpression(parent)
	for {
		switch p.kind(0) {
		case '[':
			p.next()
			p.parseCommaExpression(parent)
			p.expect(']')
		case '(':
			p.next()
			if p.kind(0) != ')' {
				p.parseCommaExpression(parent)
			}
			p.expect(')')
		case '.', cpp.ARROW:
			p.next()
			p.parseName(templTypes)
		case cpp.INC, cpp.DEC:
			p.next()
		default:
			return
		}
	}
}

func (p *parser) parsePrimaryExpression(parent ast.NodeID) {
	switch k := p.kind(0); {
	case k == cpp.INT_CONSTANT, k == cpp.FLOAT_CONSTANT, k == cpp.CHAR_CONSTANT,
		k == cpp.TRUE, k == cpp.FALSE, k == cpp.THIS:
		p.next()
	case k == cpp.STRING:
		for p.kind(0) == cpp.STRING {
			p.next()
		}
	case k == '(':
		p.next()
		p.parseCommaExpression(parent)
		p.expect(')')
	case k == '{':
		p.parseBracedList(parent)
	case k == '[':
		p.parseLambda(parent)
	case k == cpp.STATIC_CAST, k == cpp.DYNAMIC_CAST, k == cpp.REINTERPRET_CAST, k == cpp.CONST_CAST:
		p.next()
		n, ok := p.scanTemplateArgs(0)
		if !ok {
			p.unexpected("'<'")
		}
		p.consume(n)
		p.expect('(')
		p.parseCommaExpression(parent)
		p.expect(')')
	case k == cpp.TYPEID:
		p.next()
		p.skipParens()
	case isBuiltinType(k):
		// Functional cast, the arguments are left to the postfix loop.
		for isBuiltinType(p.kind(0)) {
			p.next()
		}
		if p.kind(0) == '{' {
			p.parseBracedList(parent)
		}
	case k == cpp.TYPENAME:
		p.next()
		p.parseName(templAlways)
	case k == cpp.IDENT, k == cpp.SCOPE, k == cpp.OPERATOR:
		q := p.parseName(templTypes)
		if p.kind(0) == '{' && p.st.IsType(q.text) {
			p.parseBracedList(parent)
		}
	default:
		p.unexpected("expression")
	}
}

// parseBracedList parses an initializer list, designators included.
func (p *parser) parseBracedList(parent ast.NodeID) {
	p.expect('{')
	for p.kind(0) != '}' {
		if p.kind(0) == '.' && p.kind(1) == cpp.IDENT {
			p.next()
			p.next()
			p.expect('=')
		}
		if p.kind(0) == '{' {
			p.parseBracedList(parent)
		} else {
			p.parseAssignmentExpression(parent)
		}
		if p.kind(0) == cpp.ELLIPSIS {
			p.next()
		}
		if p.kind(0) != ',' {
			break
		}
		p.next()
	}
	p.expect('}')
}

// parseLambda parses a lambda expression. Its body is part of the
// enclosing function, as far as the analyses are concerned.
func (p *parser) parseLambda(parent ast.NodeID) {
	p.expect('[')
	p.skipTo(']')
	p.expect(']')
	if p.kind(0) == '<' {
		p.parseTemplateParameters()
	}
	if p.kind(0) == '(' {
		p.skipParens()
	}
	for {
		t := p.curt()
		switch {
		case t.Kind == cpp.MUTABLE, t.Kind == cpp.IDENT && (t.Val == "constexpr" || t.Val == "noexcept"):
			p.next()
			if p.kind(0) == '(' {
				p.skipParens()
			}
			continue
		case t.Kind == cpp.ARROW:
			p.next()
			p.skipTo('{')
		}
		break
	}
	p.parseCompoundStatement(parent)
}
