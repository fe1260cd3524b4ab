package cpp

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// DefaultMaxExpansionDepth bounds nested define and macro expansion.
const DefaultMaxExpansionDepth = 64

// TokenSource is anything producing tokens the way Lexer does.
type TokenSource interface {
	Next() (*Token, error)
}

// Processor sits between the lexer and the parser and substitutes the
// configured defines and macros in the token stream.
//
// Only names registered with AddDefine and AddMacro are replaced. Other
// directives in the source are never interpreted, and conditionals only
// when Conditionals is set.
type Processor struct {
	src TokenSource
	//List of all pushed back tokens
	tl *tokenList
	//Map of defines and macros, names are shared between both kinds
	macros map[string]*macro
	// Specials of invocations that expanded to nothing, waiting for
	// the next emitted token.
	pending *Token
	// Tokens nested deeper than this fail with an error instead of
	// expanding again.
	MaxExpansionDepth int
	// Conditionals makes the processor follow #if, #ifdef, #ifndef,
	// #elif, #else and #endif, with the registered names as the defined
	// ones, and drop the tokens of the groups not taken.
	Conditionals bool
	conds        []condFrame

	log *slog.Logger
}

// New returns a Processor reading from src. Pass nil for logger to
// disable logging.
func New(src TokenSource, logger *slog.Logger) *Processor {
	ret := new(Processor)
	ret.src = src
	ret.tl = newTokenList()
	ret.macros = make(map[string]*macro)
	ret.MaxExpansionDepth = DefaultMaxExpansionDepth
	if logger != nil {
		ret.log = logger.With(slog.String("component", "cpp"))
	}
	return ret
}

// Reset switches the processor to a new source, keeping the definitions.
func (pp *Processor) Reset(src TokenSource) {
	pp.src = src
	pp.tl.clear()
	pp.pending = nil
	pp.conds = nil
}

// AddDefine registers name to be replaced by the tokens of text.
func (pp *Processor) AddDefine(name, text string) error {
	return pp.add(name, text, Define)
}

// AddMacro registers name to be replaced, together with the parenthesised
// list following it, by the tokens of text.
func (pp *Processor) AddMacro(name, text string) error {
	return pp.add(name, text, Macro)
}

func (pp *Processor) add(name, text string, kind MacroKind) error {
	if pp.isDefined(name) {
		return fmt.Errorf("%w %s", ErrRedefinition, name)
	}
	tokens, err := Tokenize("<"+kind.String()+" "+name+">", text)
	if err != nil {
		return fmt.Errorf("%s %s: %w", kind, name, err)
	}
	pp.macros[name] = &macro{
		name:   name,
		kind:   kind,
		tokens: tokens,
	}
	return nil
}

func (pp *Processor) isDefined(s string) bool {
	_, ok := pp.macros[s]
	return ok
}

// Names lists the registered names of the given kind in sorted order.
func (pp *Processor) Names(kind MacroKind) []string {
	var ret []string
	for name, m := range pp.macros {
		if m.kind == kind {
			ret = append(ret, name)
		}
	}
	slices.Sort(ret)
	return ret
}

func (pp *Processor) nextNoExpand() (*Token, error) {
	if !pp.tl.isEmpty() {
		return pp.tl.popFront(), nil
	}
	if pp.Conditionals {
		return pp.nextLive()
	}
	return pp.src.Next()
}

func (pp *Processor) ungetToken(t *Token) {
	pp.tl.prepend(t)
}

func (pp *Processor) ungetTokens(toks []*Token) {
	for i := len(toks) - 1; i >= 0; i-- {
		pp.tl.prepend(toks[i])
	}
}

// Next returns the next token with substitutions applied.
func (pp *Processor) Next() (*Token, error) {
	for {
		t, err := pp.nextNoExpand()
		if err != nil {
			return t, err
		}
		m, ok := pp.macros[t.Val]
		if !ok || !t.Kind.IsWord() {
			return pp.emit(t), nil
		}
		if m.kind == Macro {
			opening, err := pp.nextNoExpand()
			if err != nil {
				return opening, err
			}
			if opening.Kind != LPAREN {
				pp.ungetToken(opening)
				return pp.emit(t), nil
			}
		}
		if t.trail.len() >= pp.MaxExpansionDepth {
			return t, ErrWithLoc(pp.depthError(t), t.Pos)
		}
		if m.kind == Macro {
			if err := pp.skipMacroInvokeArguments(t); err != nil {
				return t, err
			}
		}
		pp.subst(m, t)
	}
}

func (pp *Processor) depthError(t *Token) error {
	if t.trail.contains(t.Val) {
		return fmt.Errorf("recursive expansion of %s (%s)", t.Val, strings.Join(t.trail.names(), " -> "))
	}
	return fmt.Errorf("expansion of %s nested deeper than %d", t.Val, pp.MaxExpansionDepth)
}

func (pp *Processor) emit(t *Token) *Token {
	if pp.pending != nil {
		t.Special = chainSpecials(pp.pending, t.Special)
		pp.pending = nil
	}
	return t
}

func (pp *Processor) subst(m *macro, t *Token) {
	expanded := m.expand(t)
	if pp.log != nil {
		pp.log.Debug("expand",
			slog.String("name", m.name),
			slog.String("kind", m.kind.String()),
			slog.String("pos", t.Pos.String()),
			slog.Int("tokens", len(expanded)),
			slog.Int("depth", t.trail.len()+1))
	}
	if len(expanded) == 0 {
		pp.pending = chainSpecials(pp.pending, t.Special)
		return
	}
	pp.ungetTokens(expanded)
}

// Discard the tokens that are part of a macro invocation, not including
// the first paren but including the last one. Handles nested parens,
// e.g. FOO(BAR,(A,B),C) is dropped as a whole once FOO( has been consumed.
func (pp *Processor) skipMacroInvokeArguments(name *Token) error {
	parenDepth := 1
	for {
		t, err := pp.nextNoExpand()
		if err != nil {
			return err
		}
		switch t.Kind {
		case EOF:
			return ErrWithLoc(fmt.Errorf("EOF while reading arguments of macro %s", name.Val), name.Pos)
		case LPAREN:
			parenDepth += 1
		case RPAREN:
			parenDepth -= 1
			if parenDepth == 0 {
				return nil
			}
		}
	}
}
