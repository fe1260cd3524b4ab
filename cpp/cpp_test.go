package cpp

import (
	"errors"
	"strings"
	"testing"
)

func newTestProcessor(t *testing.T, src string, defines, macros [][2]string) *Processor {
	pp := New(Lex("test.cpp", strings.NewReader(src)), nil)
	for _, d := range defines {
		if err := pp.AddDefine(d[0], d[1]); err != nil {
			t.Fatal(err)
		}
	}
	for _, m := range macros {
		if err := pp.AddMacro(m[0], m[1]); err != nil {
			t.Fatal(err)
		}
	}
	return pp
}

func readAll(pp *Processor) ([]*Token, error) {
	var ret []*Token
	for {
		tok, err := pp.Next()
		if err != nil {
			return ret, err
		}
		if tok.Kind == EOF {
			return ret, nil
		}
		ret = append(ret, tok)
	}
}

func joinVals(toks []*Token) string {
	var vals []string
	for _, tok := range toks {
		vals = append(vals, tok.Val)
	}
	return strings.Join(vals, " ")
}

func TestProcessorSubstitution(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		defines  [][2]string
		macros   [][2]string
		expected string
	}{
		{"define", "here is my text", [][2]string{{"my", "your"}}, nil, "here is your text"},
		{"define exact match", "my_text", [][2]string{{"my", "your"}}, nil, "my_text"},
		{"define to nothing", "inline int f", [][2]string{{"inline", ""}}, nil, "int f"},
		{"define to many", "X;", [][2]string{{"X", "a + b"}}, nil, "a + b ;"},
		{"define of keyword", "register int i", [][2]string{{"register", ""}}, nil, "int i"},
		{"define chain", "a", [][2]string{{"a", "b"}, {"b", "c"}}, nil, "c"},
		{"macro needs paren", "my text()", nil, [][2]string{{"my", "your"}}, "my text ( )"},
		{"macro at end", "x my", nil, [][2]string{{"my", "your"}}, "x my"},
		{"macro", "my(a, b) + 1", nil, [][2]string{{"my", "your"}}, "your + 1"},
		{"macro nested parens", "my( ((a!(a!)) a!) )", nil, [][2]string{{"my", "your"}}, "your"},
		{"macro followed by macro", "m m(x)", nil, [][2]string{{"m", "z"}}, "m z"},
		{"macro body refers to define", "m()", [][2]string{{"d", "e"}}, [][2]string{{"m", "d d"}}, "e e"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pp := newTestProcessor(t, tc.src, tc.defines, tc.macros)
			toks, err := readAll(pp)
			if err != nil {
				t.Fatal(err)
			}
			if got := joinVals(toks); got != tc.expected {
				t.Fatalf("got %q expected %q", got, tc.expected)
			}
		})
	}
}

func TestProcessorRoundTrip(t *testing.T) {
	src := "namespace a { int f(int x) { return x && y ? 1 : -2; } } // end\n"
	raw, err := Tokenize("test.cpp", src)
	if err != nil {
		t.Fatal(err)
	}
	got, err := readAll(newTestProcessor(t, src, nil, nil))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(raw) {
		t.Fatalf("got %d tokens expected %d", len(got), len(raw))
	}
	for i := range raw {
		if got[i].Kind != raw[i].Kind || got[i].Val != raw[i].Val || got[i].Pos != raw[i].Pos {
			t.Errorf("token %d: got %s expected %s", i, got[i], raw[i])
		}
	}
}

func TestProcessorRedefinition(t *testing.T) {
	pp := New(Lex("test.cpp", strings.NewReader("")), nil)
	if err := pp.AddDefine("a", "1"); err != nil {
		t.Fatal(err)
	}
	for _, err := range []error{
		pp.AddDefine("a", "2"),
		pp.AddMacro("a", "2"),
	} {
		if !errors.Is(err, ErrRedefinition) {
			t.Errorf("expected a redefinition error, got %v", err)
		}
	}
	if err := pp.AddMacro("b", "2"); err != nil {
		t.Fatal(err)
	}
	if err := pp.AddDefine("b", "3"); !errors.Is(err, ErrRedefinition) {
		t.Errorf("expected a redefinition error, got %v", err)
	}
}

func TestProcessorExpandedTokens(t *testing.T) {
	pp := newTestProcessor(t, "x /* keep */ M(1)", nil, [][2]string{{"M", "a b"}})
	toks, err := readAll(pp)
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 3 {
		t.Fatalf("unexpected tokens %s", joinVals(toks))
	}
	a := toks[1]
	if !a.WasMacroExpanded || a.ExpansionDepth() != 1 {
		t.Errorf("%s should be marked as expanded once", a)
	}
	if a.Pos.Line != 1 || a.Pos.Col != 14 {
		t.Errorf("expanded token should sit at the invocation, got %s", a.Pos)
	}
	found := false
	for _, s := range a.Specials() {
		if s.Val == "/* keep */" {
			found = true
		}
	}
	if !found {
		t.Errorf("comment before the invocation was dropped")
	}
}

func TestProcessorEmptyExpansionKeepsComments(t *testing.T) {
	pp := newTestProcessor(t, "/* doc */ inline int", [][2]string{{"inline", ""}}, nil)
	toks, err := readAll(pp)
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 1 {
		t.Fatalf("unexpected tokens %s", joinVals(toks))
	}
	specials := specialVals(toks[0])
	if len(specials) == 0 || specials[0] != "comment:/* doc */" {
		t.Errorf("comment lost, specials are %q", specials)
	}
}

func TestProcessorRecursionLimit(t *testing.T) {
	pp := newTestProcessor(t, "int A;", [][2]string{{"A", "A"}}, nil)
	_, err := readAll(pp)
	if err == nil {
		t.Fatal("expected recursive expansion to fail")
	}
	if !strings.Contains(err.Error(), "recursive expansion of A") {
		t.Errorf("unexpected error %s", err)
	}

	pp = newTestProcessor(t, "a", [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}}, nil)
	pp.MaxExpansionDepth = 2
	if _, err := readAll(pp); err == nil {
		t.Fatal("expected the depth cap to be hit")
	}
}

func TestProcessorDepthCapNeedsInvocation(t *testing.T) {
	pp := newTestProcessor(t, "a", [][2]string{{"a", "m x"}}, [][2]string{{"m", "y"}})
	pp.MaxExpansionDepth = 1
	toks, err := readAll(pp)
	if err != nil {
		t.Fatal(err)
	}
	if got := joinVals(toks); got != "m x" {
		t.Fatalf("got %q", got)
	}

	pp = newTestProcessor(t, "a", [][2]string{{"a", "m(x)"}}, [][2]string{{"m", "y"}})
	pp.MaxExpansionDepth = 1
	if _, err := readAll(pp); err == nil {
		t.Fatal("expected the depth cap to be hit")
	}
}

func TestProcessorNames(t *testing.T) {
	pp := newTestProcessor(t, "", [][2]string{{"b", ""}, {"a", "1"}}, [][2]string{{"m", ""}})
	if got := strings.Join(pp.Names(Define), " "); got != "a b" {
		t.Errorf("defines %q", got)
	}
	if got := strings.Join(pp.Names(Macro), " "); got != "m" {
		t.Errorf("macros %q", got)
	}
}

func TestProcessorUnterminatedMacro(t *testing.T) {
	pp := newTestProcessor(t, "m( a (", nil, [][2]string{{"m", ""}})
	_, err := readAll(pp)
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := err.(ErrorLoc); !ok {
		t.Errorf("expected an ErrorLoc, got %T", err)
	}
}

func TestProcessorReset(t *testing.T) {
	pp := newTestProcessor(t, "a", [][2]string{{"a", "b"}}, nil)
	if _, err := readAll(pp); err != nil {
		t.Fatal(err)
	}
	pp.Reset(Lex("other.cpp", strings.NewReader("a a")))
	toks, err := readAll(pp)
	if err != nil {
		t.Fatal(err)
	}
	if got := joinVals(toks); got != "b b" {
		t.Fatalf("got %q", got)
	}
}

func TestProcessorConditionals(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		defines  [][2]string
		expected string
	}{
		{"if 0", "a\n#if 0\nb\n#endif\nc", nil, "a c"},
		{"if 1", "a\n#if 1\nb\n#endif\nc", nil, "a b c"},
		{"else", "#if 0\na\n#else\nb\n#endif", nil, "b"},
		{"elif", "#if 0\na\n#elif 1\nb\n#elif 1\nc\n#else\nd\n#endif", nil, "b"},
		{"ifdef", "#ifdef X\na\n#else\nb\n#endif", [][2]string{{"X", ""}}, "a"},
		{"ifndef", "#ifndef X\na\n#endif\nb", [][2]string{{"X", ""}}, "b"},
		{"include guard", "#ifndef H\n#define H\nint x;\n#endif", nil, "int x ;"},
		{"nested", "#if 0\n#if 1\na\n#else\nb\n#endif\n#else\nc\n#endif", nil, "c"},
		{"value", "#if V >= 2\na\n#endif", [][2]string{{"V", "2"}}, "a"},
		{"defined", "#  if defined(X) && !defined Y\na\n#endif", [][2]string{{"X", "x"}}, "a"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pp := newTestProcessor(t, tc.src, tc.defines, nil)
			pp.Conditionals = true
			toks, err := readAll(pp)
			if err != nil {
				t.Fatal(err)
			}
			if got := joinVals(toks); got != tc.expected {
				t.Fatalf("got %q expected %q", got, tc.expected)
			}
		})
	}
}

func TestProcessorConditionalsOff(t *testing.T) {
	pp := newTestProcessor(t, "#if 0\na\n#else\nb\n#endif", nil, nil)
	toks, err := readAll(pp)
	if err != nil {
		t.Fatal(err)
	}
	if got := joinVals(toks); got != "a b" {
		t.Fatalf("got %q", got)
	}
}

func TestProcessorConditionalErrors(t *testing.T) {
	for _, src := range []string{
		"#if 1\na",
		"a\n#endif",
		"#else\na",
		"#if 1\n#else\n#else\n#endif",
		"#if 1 +\na\n#endif",
	} {
		pp := newTestProcessor(t, src, nil, nil)
		pp.Conditionals = true
		_, err := readAll(pp)
		var loc ErrorLoc
		if !errors.As(err, &loc) {
			t.Errorf("%q: expected a located error, got %v", src, err)
		}
	}
}

func TestProcessorSkippedCommentsKept(t *testing.T) {
	pp := newTestProcessor(t, "#if 0\n/* note */ skipped\n#endif\nx", nil, nil)
	pp.Conditionals = true
	toks, err := readAll(pp)
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 1 {
		t.Fatalf("got %q", joinVals(toks))
	}
	var comments int
	for _, s := range toks[0].Specials() {
		if s.Kind == COMMENT {
			comments++
		}
	}
	if comments != 1 {
		t.Fatalf("%d comments before x", comments)
	}
}
