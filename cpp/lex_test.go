package cpp

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sourceToExpectFile(s string) string {
	return strings.TrimSuffix(s, ".cpp") + ".exp"
}

func lexTestCase(t *testing.T, cfile string, expectfile string) {
	f, err := os.Open(cfile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	ef, err := os.Open(expectfile)
	if err != nil {
		t.Fatal(err)
	}
	defer ef.Close()
	scanner := bufio.NewScanner(ef)
	errorReported := false
	lexer := Lex(cfile, f)
	for {
		expectedTokS := ""
		if scanner.Scan() {
			expectedTokS = scanner.Text()
		}
		tok, err := lexer.Next()
		if err != nil {
			t.Errorf("Testfile %s failed because %s", cfile, err)
			return
		}
		tokS := fmt.Sprintf("%s:%s:%d:%d", tok.Kind, tok.Val, tok.Pos.Line, tok.Pos.Col)
		if tokS != expectedTokS && !errorReported {
			if expectedTokS == "" {
				t.Errorf("Test failed %s - extra token %s", cfile, tokS)
			} else {
				t.Errorf("Test failed %s: got %s expected %s ", cfile, tokS, expectedTokS)
			}
			errorReported = true
		}
		if tok.Kind == EOF {
			break
		}
	}
}

func TestLexer(t *testing.T) {
	files, err := filepath.Glob("lextests/*.cpp")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no lexer tests found")
	}
	for _, filename := range files {
		lexTestCase(t, filename, sourceToExpectFile(filename))
	}
}

func specialVals(tok *Token) []string {
	var ret []string
	for _, s := range tok.Specials() {
		ret = append(ret, s.Kind.String()+":"+s.Val)
	}
	return ret
}

func TestSpecialTokens(t *testing.T) {
	toks, err := Tokenize("special.cpp", "/* a */ int // b\n x;\n#define X 1\ny")
	if err != nil {
		t.Fatal(err)
	}
	expected := [][]string{
		{"comment:/* a */", "whitespace: "},
		{"whitespace: ", "comment:// b", "whitespace:\n "},
		nil,
		{"whitespace:\n", "directive:#define X 1", "whitespace:\n"},
	}
	if len(toks) != len(expected) {
		t.Fatalf("got %d tokens, expected %d", len(toks), len(expected))
	}
	for i, tok := range toks {
		got := specialVals(tok)
		if strings.Join(got, "|") != strings.Join(expected[i], "|") {
			t.Errorf("token %s: got specials %q expected %q", tok.Val, got, expected[i])
		}
	}
}

func TestHashInsideLineIsNotDirective(t *testing.T) {
	toks, err := Tokenize("hash.cpp", "a # b")
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 3 || toks[1].Kind != HASH {
		t.Fatalf("unexpected tokens %v", toks)
	}
}

func TestLexerErrors(t *testing.T) {
	for _, src := range []string{
		"/* never closed",
		"\"no end",
		"'a\n'",
		"a @ b",
	} {
		_, err := Tokenize("bad.cpp", src)
		if err == nil {
			t.Errorf("expected an error lexing %q", src)
			continue
		}
		if _, ok := err.(ErrorLoc); !ok {
			t.Errorf("expected an ErrorLoc for %q, got %T", src, err)
		}
	}
}
