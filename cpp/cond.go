package cpp

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// condFrame is one #if group being read.
type condFrame struct {
	pos FilePos
	// The group as a whole is in live code.
	outerLive bool
	// One of the branches was taken already.
	taken   bool
	live    bool
	sawElse bool
}

func (pp *Processor) live() bool {
	if len(pp.conds) == 0 {
		return true
	}
	return pp.conds[len(pp.conds)-1].live
}

// nextLive reads from the source and drops the tokens of conditional
// groups that are not taken. Their comments and directives are kept for
// the next token that is.
func (pp *Processor) nextLive() (*Token, error) {
	for {
		t, err := pp.src.Next()
		if err != nil {
			return t, err
		}
		for _, s := range t.Specials() {
			if s.Kind != DIRECTIVE {
				continue
			}
			if err := pp.directive(s); err != nil {
				return t, ErrWithLoc(err, s.Pos)
			}
		}
		if t.Kind == EOF {
			if len(pp.conds) != 0 {
				top := pp.conds[len(pp.conds)-1]
				return t, ErrWithLoc(errors.New("unterminated conditional directive"), top.pos)
			}
			return t, nil
		}
		if pp.live() {
			return t, nil
		}
		pp.pending = chainSpecials(pp.pending, t.Special)
	}
}

// directive updates the conditional state for one directive line.
func (pp *Processor) directive(d *Token) error {
	line := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(d.Val), "#"))
	name, rest, _ := strings.Cut(line, " ")
	if i := strings.IndexAny(name, "\t("); i >= 0 {
		name, rest = name[:i], name[i:]+" "+rest
	}
	rest = strings.TrimSpace(rest)
	switch name {
	case "if", "ifdef", "ifndef":
		f := condFrame{pos: d.Pos, outerLive: pp.live()}
		if f.outerLive {
			v, err := pp.evalCondition(name, rest, d.Pos)
			if err != nil {
				return err
			}
			f.live, f.taken = v, v
		}
		pp.conds = append(pp.conds, f)
	case "elif":
		if len(pp.conds) == 0 {
			return errors.New("#elif without #if")
		}
		f := &pp.conds[len(pp.conds)-1]
		if f.sawElse {
			return errors.New("#elif after #else")
		}
		f.live = false
		if f.outerLive && !f.taken {
			v, err := pp.evalCondition("if", rest, d.Pos)
			if err != nil {
				return err
			}
			f.live, f.taken = v, v
		}
	case "else":
		if len(pp.conds) == 0 {
			return errors.New("#else without #if")
		}
		f := &pp.conds[len(pp.conds)-1]
		if f.sawElse {
			return errors.New("#else after #else")
		}
		f.sawElse = true
		f.live = f.outerLive && !f.taken
		f.taken = true
	case "endif":
		if len(pp.conds) == 0 {
			return errors.New("#endif without #if")
		}
		pp.conds = pp.conds[:len(pp.conds)-1]
	default:
		return nil
	}
	if pp.log != nil {
		pp.log.Debug("conditional",
			slog.String("directive", name),
			slog.String("pos", d.Pos.String()),
			slog.Bool("live", pp.live()),
			slog.Int("depth", len(pp.conds)))
	}
	return nil
}

func (pp *Processor) evalCondition(kind, text string, pos FilePos) (bool, error) {
	switch kind {
	case "ifdef", "ifndef":
		name, _, _ := strings.Cut(text, " ")
		if name == "" {
			return false, fmt.Errorf("#%s without a name", kind)
		}
		_, ok := pp.macros[name]
		return ok == (kind == "ifdef"), nil
	}
	toks, err := Tokenize(pos.File, text)
	if err != nil {
		return false, err
	}
	if len(toks) == 0 {
		return false, errors.New("#if with no expression")
	}
	v, err := evalIfExpr(pp.value, toks)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// value is the value of a registered name in a conditional expression.
func (pp *Processor) value(name string) (int64, bool) {
	m, ok := pp.macros[name]
	if !ok {
		return 0, false
	}
	if len(m.tokens) == 1 && m.tokens[0].Kind == INT_CONSTANT {
		if v, err := parseIntConstant(m.tokens[0].Val); err == nil {
			return v, true
		}
	}
	return 1, true
}
