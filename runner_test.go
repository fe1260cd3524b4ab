package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testConfig() *config {
	return &config{measures: []string{"ncss", "ccn", "function"}}
}

func TestReport(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := run(testConfig(), []string{"test"}, &out, &errOut, nil); err != nil {
		t.Fatal(err)
	}
	expected, err := os.ReadFile("test/report.expected")
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != string(expected) {
		t.Fatalf("got:\n%s\nexpected:\n%s", out.String(), expected)
	}
	if errOut.Len() != 0 {
		t.Fatalf("unexpected errors: %s", errOut.String())
	}
}

func TestReportTopAndPrefix(t *testing.T) {
	cfg := testConfig()
	cfg.measures = []string{"ccn"}
	cfg.top = 1
	cfg.prefix = "test/"
	var out, errOut bytes.Buffer
	if err := run(cfg, []string{"test"}, &out, &errOut, nil); err != nil {
		t.Fatal(err)
	}
	expected := `Nr. | CCN | function
  1 |   3 | classify(const geo::Shape&) shape.cpp:16
CCN total: 8, average: 2.00
`
	if out.String() != expected {
		t.Fatalf("got:\n%s\nexpected:\n%s", out.String(), expected)
	}
}

func writeFiles(t *testing.T, files map[string]string) string {
	dir := t.TempDir()
	for name, src := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestCollectFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b.cpp":       "",
		"a.cc":        "",
		"z.h":         "",
		"notes.txt":   "",
		"sub/c.hpp":   "",
		"sub/d.cpp":   "",
		"sub/e/f.cxx": "",
	})
	rel := func(files []string) string {
		var ret []string
		for _, f := range files {
			r, err := filepath.Rel(dir, f)
			if err != nil {
				t.Fatal(err)
			}
			ret = append(ret, filepath.ToSlash(r))
		}
		return strings.Join(ret, " ")
	}
	files, err := collectFiles([]string{dir}, false)
	if err != nil {
		t.Fatal(err)
	}
	if got := rel(files); got != "z.h a.cc b.cpp" {
		t.Errorf("got %q", got)
	}
	files, err = collectFiles([]string{dir}, true)
	if err != nil {
		t.Fatal(err)
	}
	if got := rel(files); got != "sub/c.hpp z.h a.cc b.cpp sub/d.cpp sub/e/f.cxx" {
		t.Errorf("got %q", got)
	}
	files, err = collectFiles([]string{filepath.Join(dir, "notes.txt"), dir}, false)
	if err != nil {
		t.Fatal(err)
	}
	if got := rel(files); got != "z.h a.cc b.cpp notes.txt" {
		t.Errorf("got %q", got)
	}
	if _, err := collectFiles([]string{filepath.Join(dir, "missing")}, false); err == nil {
		t.Error("expected an error for a missing path")
	}
}

func TestHeadersComeFirst(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.cpp": "int T::f() { return 0; }\n",
		"t.h":   "namespace n { class T { int f(); }; }\nusing namespace n;\n",
	})
	cfg := testConfig()
	cfg.measures = []string{"ncss"}
	var out, errOut bytes.Buffer
	if err := run(cfg, []string{dir}, &out, &errOut, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "|    1 | n::T::f() ") {
		t.Fatalf("got:\n%s", out.String())
	}

	out.Reset()
	cfg.reset = true
	if err := run(cfg, []string{dir}, &out, &errOut, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "|    1 | T::f() ") {
		t.Fatalf("got:\n%s", out.String())
	}
}

func TestParseErrors(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"bad.cpp":  "void f() { if (x) }\n",
		"good.cpp": "void g() { h(); }\n",
	})
	var out, errOut bytes.Buffer
	err := run(testConfig(), []string{dir}, &out, &errOut, nil)
	if err == nil || !strings.Contains(err.Error(), "unexpected '}'") {
		t.Fatalf("got %v", err)
	}

	out.Reset()
	cfg := testConfig()
	cfg.keepGoing = true
	if err := run(cfg, []string{dir}, &out, &errOut, nil); err != nil {
		t.Fatal(err)
	}
	report := errOut.String()
	if !strings.Contains(report, "void f() { if (x) }\n"+strings.Repeat(" ", 18)+"^\n") {
		t.Errorf("no caret in %q", report)
	}
	if !strings.Contains(report, "1 of 2 files could not be parsed") {
		t.Errorf("no summary in %q", report)
	}
	if !strings.Contains(out.String(), "g()") {
		t.Errorf("good.cpp was not measured:\n%s", out.String())
	}
}

func TestDefinitions(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.cpp": "API int f() LOG(\"f\", (1, 2)) { return 0; }\n",
	})
	var out, errOut bytes.Buffer
	cfg := testConfig()
	cfg.measures = []string{"function"}
	if err := run(cfg, []string{dir}, &out, &errOut, nil); err == nil {
		t.Fatal("expected a parse error without definitions")
	}
	out.Reset()
	if err := cfg.defines.Set("API"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.macros.Set("LOG="); err != nil {
		t.Fatal(err)
	}
	if err := run(cfg, []string{dir}, &out, &errOut, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "|        1 | ") {
		t.Fatalf("got:\n%s", out.String())
	}
	if err := cfg.defines.Set("=x"); err == nil {
		t.Error("expected an error for an empty name")
	}
	if err := cfg.macros.Set("API"); err != nil {
		t.Fatal(err)
	}
	if err := run(cfg, []string{dir}, &out, &errOut, nil); err == nil {
		t.Error("expected a redefinition error")
	}
}

func TestConditionals(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.cpp": "#ifdef _WIN32\nvoid f() {\n#else\nvoid f() { g();\n#endif\n}\n",
	})
	var out, errOut bytes.Buffer
	cfg := testConfig()
	cfg.measures = []string{"ncss"}
	if err := run(cfg, []string{dir}, &out, &errOut, nil); err == nil {
		t.Fatal("both branches can't parse together")
	}
	out.Reset()
	cfg.conditionals = true
	if err := run(cfg, []string{dir}, &out, &errOut, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "|    1 | f()") {
		t.Fatalf("got:\n%s", out.String())
	}
}

func TestUnknownMeasure(t *testing.T) {
	cfg := testConfig()
	cfg.measures = []string{"ncs"}
	var out, errOut bytes.Buffer
	err := run(cfg, []string{"test"}, &out, &errOut, nil)
	if err == nil || !strings.Contains(err.Error(), "did you mean ncss?") {
		t.Fatalf("got %v", err)
	}
}
