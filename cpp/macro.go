package cpp

// Data structures representing configured substitutions.
// These should be immutable once registered.

type MacroKind int

const (
	// A define replaces its name wherever it appears.
	Define MacroKind = iota
	// A macro replaces its name and a following parenthesised argument
	// list, the arguments are dropped.
	Macro
)

func (k MacroKind) String() string {
	switch k {
	case Define:
		return "define"
	case Macro:
		return "macro"
	}
	return "unknown"
}

type macro struct {
	name   string
	kind   MacroKind
	tokens []*Token
}

// expand returns fresh copies of the replacement tokens for an invocation
// at t. The first copy inherits the invocation's special tokens.
func (m *macro) expand(t *Token) []*Token {
	trail := t.trail.push(m.name)
	ret := make([]*Token, len(m.tokens))
	for i, rt := range m.tokens {
		cpy := rt.copy()
		cpy.Pos = t.Pos
		cpy.WasMacroExpanded = true
		cpy.trail = trail
		if i == 0 {
			cpy.Special = chainSpecials(t.Special, rt.Special)
		}
		ret[i] = cpy
	}
	return ret
}
