package cpp

import (
	"fmt"
	"strconv"
	"strings"
)

/*
   Expression evaluation for #if and #elif lines.

   #if expression
       controlled text
   #endif

   expression may be:

   Integer constants.

   Character constants, which are interpreted as they would be in normal code.

   Arithmetic operators for most of C.

   defined name and defined(name).

   Identifiers. A define whose replacement is a single integer constant
   has that value, any other registered name is one, and unknown names
   are zero.
*/

type cppExprCtx struct {
	toks  []*Token
	value func(string) (int64, bool)
}

func (ctx *cppExprCtx) nextToken() *Token {
	if len(ctx.toks) == 0 {
		return nil
	}
	tok := ctx.toks[0]
	ctx.toks = ctx.toks[1:]
	return tok
}

func (ctx *cppExprCtx) peek() *Token {
	if len(ctx.toks) == 0 {
		return nil
	}
	return ctx.toks[0]
}

func (ctx *cppExprCtx) isDefined(name string) bool {
	_, ok := ctx.value(name)
	return ok
}

func parseCPPExprAtom(ctx *cppExprCtx) (int64, error) {
	toCheck := ctx.nextToken()
	if toCheck == nil {
		return 0, fmt.Errorf("expected integer, char, or defined but got nothing")
	}
	switch toCheck.Kind {
	case NOT:
		v, err := parseCPPExprAtom(ctx)
		if err != nil {
			return 0, err
		}
		if v == 0 {
			return 1, nil
		}
		return 0, nil
	case BNOT:
		v, err := parseCPPExprAtom(ctx)
		if err != nil {
			return 0, err
		}
		return ^v, nil
	case SUB:
		v, err := parseCPPExprAtom(ctx)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case ADD:
		return parseCPPExprAtom(ctx)
	case LPAREN:
		v, err := parseCPPExpr(ctx)
		if err != nil {
			return 0, err
		}
		rparen := ctx.nextToken()
		if rparen == nil || rparen.Kind != RPAREN {
			return 0, fmt.Errorf("unclosed parenthesis")
		}
		return v, nil
	case INT_CONSTANT:
		return parseIntConstant(toCheck.Val)
	case CHAR_CONSTANT:
		return parseCharConstant(toCheck.Val)
	case TRUE:
		return 1, nil
	case FALSE:
		return 0, nil
	case IDENT:
		if toCheck.Val != "defined" {
			v, _ := ctx.value(toCheck.Val)
			return v, nil
		}
		name := ctx.nextToken()
		if name == nil {
			return 0, fmt.Errorf("expected ( or an identifier but got nothing")
		}
		switch name.Kind {
		case LPAREN:
			name = ctx.nextToken()
			rparen := ctx.nextToken()
			if name == nil || rparen == nil || rparen.Kind != RPAREN {
				return 0, fmt.Errorf("malformed defined check, missing )")
			}
		case IDENT:
		default:
			return 0, fmt.Errorf("malformed defined statement at %s", name.Pos)
		}
		if ctx.isDefined(name.Val) {
			return 1, nil
		}
		return 0, nil
	}
	if toCheck.Kind.IsKeyword() {
		// Keywords are plain identifiers to the preprocessor.
		return 0, nil
	}
	return 0, fmt.Errorf("expected integer, char, or defined but got %s", toCheck.Val)
}

func parseIntConstant(s string) (int64, error) {
	s = strings.TrimRight(strings.ReplaceAll(s, "'", ""), "uUlL")
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		u, uerr := strconv.ParseUint(s, 0, 64)
		if uerr != nil {
			return 0, fmt.Errorf("bad integer constant %s", s)
		}
		v = int64(u)
	}
	return v, nil
}

func parseCharConstant(s string) (int64, error) {
	if i := strings.IndexByte(s, '\''); i >= 0 {
		s = s[i:]
	}
	if len(s) < 2 {
		return 0, fmt.Errorf("bad char constant %s", s)
	}
	r, _, _, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
	if err != nil {
		return 0, fmt.Errorf("bad char constant %s", s)
	}
	return int64(r), nil
}

func evalCPPBinop(k TokenKind, l int64, r int64) (int64, error) {
	b2i := func(b bool) int64 {
		if b {
			return 1
		}
		return 0
	}
	switch k {
	case LOR:
		return b2i(l != 0 || r != 0), nil
	case LAND:
		return b2i(l != 0 && r != 0), nil
	case OR:
		return l | r, nil
	case XOR:
		return l ^ r, nil
	case AND:
		return l & r, nil
	case ADD:
		return l + r, nil
	case SUB:
		return l - r, nil
	case MUL:
		return l * r, nil
	case SHR:
		return l >> uint64(r), nil
	case SHL:
		return l << uint64(r), nil
	case QUO:
		if r == 0 {
			return 0, fmt.Errorf("divide by zero in expression")
		}
		return l / r, nil
	case REM:
		if r == 0 {
			return 0, fmt.Errorf("divide by zero in expression")
		}
		return l % r, nil
	case EQL:
		return b2i(l == r), nil
	case NEQ:
		return b2i(l != r), nil
	case LSS:
		return b2i(l < r), nil
	case GTR:
		return b2i(l > r), nil
	case LEQ:
		return b2i(l <= r), nil
	case GEQ:
		return b2i(l >= r), nil
	}
	return 0, fmt.Errorf("internal error %s", k)
}

func parseCPPTernary(ctx *cppExprCtx) (int64, error) {
	cond, err := parseCPPBinop(ctx, 0)
	if err != nil {
		return 0, err
	}
	t := ctx.peek()
	if t == nil || t.Kind != QUESTION {
		return cond, nil
	}
	ctx.nextToken()
	a, err := parseCPPExpr(ctx)
	if err != nil {
		return 0, err
	}
	colon := ctx.nextToken()
	if colon == nil || colon.Kind != COLON {
		return 0, fmt.Errorf("ternary without :")
	}
	b, err := parseCPPExpr(ctx)
	if err != nil {
		return 0, err
	}
	if cond != 0 {
		return a, nil
	}
	return b, nil
}

func parseCPPExpr(ctx *cppExprCtx) (int64, error) {
	v, err := parseCPPTernary(ctx)
	if err != nil {
		return 0, err
	}
	for {
		t := ctx.peek()
		if t == nil || t.Kind != COMMA {
			return v, nil
		}
		ctx.nextToken()
		v, err = parseCPPTernary(ctx)
		if err != nil {
			return 0, err
		}
	}
}

func getPrec(k TokenKind) int {
	switch k {
	case MUL, REM, QUO:
		return 10
	case ADD, SUB:
		return 9
	case SHR, SHL:
		return 8
	case LSS, GTR, GEQ, LEQ:
		return 7
	case EQL, NEQ:
		return 6
	case AND:
		return 5
	case XOR:
		return 4
	case OR:
		return 3
	case LAND:
		return 2
	case LOR:
		return 1
	}
	return -1
}

// Precedence climbing, simplified because all the operators are left
// associative. There are no assignment operators to deal with.
func parseCPPBinop(ctx *cppExprCtx, prec int) (int64, error) {
	l, err := parseCPPExprAtom(ctx)
	if err != nil {
		return 0, err
	}
	for {
		t := ctx.peek()
		if t == nil {
			return l, nil
		}
		p := getPrec(t.Kind)
		if p == -1 || p < prec {
			return l, nil
		}
		ctx.nextToken()
		r, err := parseCPPBinop(ctx, p+1)
		if err != nil {
			return 0, err
		}
		l, err = evalCPPBinop(t.Kind, l, r)
		if err != nil {
			return 0, err
		}
	}
}

// evalIfExpr evaluates the tokens of an #if line. value reports the
// value of a name and whether it is registered at all.
func evalIfExpr(value func(string) (int64, bool), toks []*Token) (int64, error) {
	ctx := &cppExprCtx{toks: toks, value: value}
	ret, err := parseCPPExpr(ctx)
	if err != nil {
		return 0, err
	}
	if t := ctx.nextToken(); t != nil {
		return 0, fmt.Errorf("stray token %s", t.Val)
	}
	return ret, nil
}
