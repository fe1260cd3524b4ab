package measure

import (
	"strings"
	"testing"

	"github.com/andrewchambers/cppncss/ast"
	"github.com/andrewchambers/cppncss/cpp"
	"github.com/andrewchambers/cppncss/parse"
	"github.com/andrewchambers/cppncss/symtab"
)

func walkSource(t *testing.T, src string, ms ...Measure) {
	t.Helper()
	pp := cpp.New(cpp.Lex("test.cpp", strings.NewReader(src)), nil)
	tree, err := parse.Parse("test.cpp", pp, symtab.New(), nil)
	if err != nil {
		t.Fatal(err)
	}
	m := ast.NewMulti()
	for _, v := range ms {
		m.Register(v)
	}
	ast.Walk(m, tree.Root(), nil)
}

func counts(ms []Measurement) map[string]int {
	ret := make(map[string]int)
	for _, m := range ms {
		ret[m.Unit] = m.Count
	}
	return ret
}

func TestCCN(t *testing.T) {
	tests := []struct {
		src  string
		want int
	}{
		{"void f() { }", 1},
		{"void f(int a, int b) { if (a && b) return; }", 3},
		{"void f(int a) { while (a) a--; do { } while (a); for (;;) { } }", 4},
		{"int f(int x) { switch (x) { case 1: return 1; case 2: case 3: break; default: return 0; } return x > 0 ? 1 : 2; }", 5},
		{"void f() { try { g(); } catch (const E & e) { } catch (...) { } }", 3},
		{"bool f(int a, int b, int c) { return a || b || c; }", 3},
		{"bool f(int a, int b, int c) { return (a && b) && c; }", 4},
	}
	for _, tc := range tests {
		ccn := NewCCN(nil)
		walkSource(t, tc.src, ccn)
		res := ccn.Results()
		if len(res) != 1 {
			t.Fatalf("%q: %d results", tc.src, len(res))
		}
		if res[0].Count != tc.want {
			t.Errorf("%q: got %d, want %d", tc.src, res[0].Count, tc.want)
		}
	}
}

func TestNCSS(t *testing.T) {
	tests := []struct {
		src  string
		want int
	}{
		{"void f() { }", 0},
		{"int f() { int x = 1; return x; }", 2},
		{"int f(int x) { switch (x) { case 1: return 1; case 2: case 3: break; default: return 0; } return x > 0 ? 1 : 2; }", 9},
		{"void f() { try { g(); } catch (const E & e) { } catch (...) { } }", 4},
		{"void f() { for (int i = 0; i < 3; i++) { g(i); } }", 2},
		{"void f() { again: if (g()) goto again; else throw 1; }", 4},
	}
	for _, tc := range tests {
		ncss := NewNCSS(nil)
		walkSource(t, tc.src, ncss)
		res := ncss.Results()
		if len(res) != 1 {
			t.Fatalf("%q: %d results", tc.src, len(res))
		}
		if res[0].Count != tc.want {
			t.Errorf("%q: got %d, want %d", tc.src, res[0].Count, tc.want)
		}
	}
}

func TestNestedUnits(t *testing.T) {
	src := `
int f() {
    struct L {
        int g() { if (x) return 1; return 2; }
        int x;
    };
    return 0;
}
`
	ccn, ncss := NewCCN(nil), NewNCSS(nil)
	walkSource(t, src, ccn, ncss)
	got := counts(ccn.Results())
	if got["f()"] != 1 || got["f()::L::g()"] != 2 {
		t.Errorf("ccn %v", got)
	}
	got = counts(ncss.Results())
	// The member declaration of L is a statement of f.
	if got["f()"] != 3 || got["f()::L::g()"] != 3 {
		t.Errorf("ncss %v", got)
	}
}

func TestUnitNames(t *testing.T) {
	src := `
namespace n {
class A {
public:
    A() {}
    ~A() {}
    int get() const { return v; }
    int v;
};
}
void n::A::set(int x, const std::string & s = "") {}
unsigned long g(unsigned int count, signed char c, char * p) { return count; }
`
	ccn := NewCCN(nil)
	walkSource(t, src, ccn)
	var units []string
	for _, m := range ccn.Results() {
		units = append(units, m.Unit)
	}
	expected := []string{
		"n::A::A()",
		"n::A::~A()",
		"n::A::get()const",
		"n::A::set(int,const std::string&)",
		"g(unsigned int,signed char,char*)",
	}
	if strings.Join(units, "\n") != strings.Join(expected, "\n") {
		t.Fatalf("got:\n%s\nexpected:\n%s", strings.Join(units, "\n"), strings.Join(expected, "\n"))
	}
}

func TestFunctionCounter(t *testing.T) {
	fc := NewFunctionCounter(nil)
	walkSource(t, "class A { A() {} void f(); }; void A::f() {} int g(); int h() { return 0; }", fc)
	res := fc.Results()
	if len(res) != 1 {
		t.Fatalf("%d results", len(res))
	}
	if res[0].Unit != "test.cpp" || res[0].Count != 3 {
		t.Fatalf("got %v", res[0])
	}
}

func TestResultsAreFlushed(t *testing.T) {
	ncss := NewNCSS(nil)
	walkSource(t, "void f() { g(); }", ncss)
	if len(ncss.Results()) != 1 {
		t.Fatal("expected a result")
	}
	if len(ncss.Results()) != 0 {
		t.Fatal("results must be forgotten once read")
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		m, err := New(name, nil)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.EqualFold(m.Name(), name) {
			t.Errorf("%s: got %s", name, m.Name())
		}
	}
	if _, err := New("CCN", nil); err != nil {
		t.Fatal(err)
	}
	_, err := New("ncs", nil)
	if err == nil || !strings.Contains(err.Error(), "did you mean ncss?") {
		t.Fatalf("got %v", err)
	}
}

func TestCollector(t *testing.T) {
	c := NewCollector("NCSS", 2)
	c.Add(
		Measurement{Unit: "b()", Count: 3},
		Measurement{Unit: "a()", Count: 3},
		Measurement{Unit: "c()", Count: 7},
		Measurement{Unit: "d()", Count: 1},
	)
	top := c.Top()
	if len(top) != 2 || top[0].Unit != "c()" || top[1].Unit != "a()" {
		t.Fatalf("got %v", top)
	}
	if c.Total() != 14 || c.Len() != 4 {
		t.Fatalf("total %d len %d", c.Total(), c.Len())
	}
	if c.Average() != 3.5 {
		t.Fatalf("average %v", c.Average())
	}
	if n := len(NewCollector("CCN", 0).Top()); n != 0 {
		t.Fatalf("%d", n)
	}
}
