package cpp

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"modernc.org/token"
)

// Lexer turns C++ source text into tokens.
//
// Comments, whitespace and preprocessor lines are not returned by Next,
// they are chained onto the Special field of the following token so
// nothing in the source is lost. Directives are never interpreted.
type Lexer struct {
	name string
	src  []byte
	file *token.File
	// Offset of the next unread byte.
	off int
	// Offset where the token being read starts.
	markedOff int
	// At the beginning on line not including whitespace and comments.
	bol bool
	// Specials read since the last real token, most recent first.
	special *Token
	err     error
}

type breakout struct{}

// Lex reads the whole of r and prepares to tokenize it.
// fname is used for error messages when showing the source location.
// No preprocessing is done, this is just pure reading of the unprocessed
// source file.
func Lex(fname string, r io.Reader) *Lexer {
	lx := new(Lexer)
	lx.name = fname
	src, err := io.ReadAll(r)
	lx.src = src
	lx.file = token.NewFile(fname, len(src))
	lx.file.SetLinesForContent(src)
	lx.bol = true
	if err != nil {
		lx.err = ErrWithLoc(fmt.Errorf("reading source: %w", err), lx.position(0))
	}
	return lx
}

// Tokenize lexes text completely, returning every real token before EOF.
func Tokenize(fname, text string) ([]*Token, error) {
	lx := Lex(fname, strings.NewReader(text))
	var ret []*Token
	for {
		t, err := lx.Next()
		if err != nil {
			return nil, err
		}
		if t.Kind == EOF {
			return ret, nil
		}
		ret = append(ret, t)
	}
}

// Next returns the next real token. Once the input is exhausted every call
// returns an EOF token; once an error was hit every call returns it again.
func (lx *Lexer) Next() (tok *Token, err error) {
	if lx.err != nil {
		return &Token{Kind: ERROR, Pos: lx.position(lx.off)}, lx.err
	}
	defer func() {
		if e := recover(); e != nil {
			_ = e.(*breakout) // Will re-panic if not a breakout.
			tok = &Token{Kind: ERROR, Pos: lx.position(lx.markedOff)}
			err = lx.err
		}
	}()
	return lx.lex(), nil
}

func (lx *Lexer) position(off int) FilePos {
	p := lx.file.PositionFor(lx.file.Pos(off), false)
	return FilePos{
		File: lx.name,
		Line: p.Line,
		Col:  p.Column,
	}
}

func (lx *Lexer) Error(e string) {
	lx.err = ErrWithLoc(errors.New(e), lx.position(lx.markedOff))
	//recover exits the lexer cleanly
	panic(&breakout{})
}

func (lx *Lexer) markPos() {
	lx.markedOff = lx.off
}

func (lx *Lexer) peek(i int) byte {
	if lx.off+i >= len(lx.src) {
		return 0
	}
	return lx.src[lx.off+i]
}

func (lx *Lexer) atEOF() bool {
	return lx.off >= len(lx.src)
}

func (lx *Lexer) text() string {
	return string(lx.src[lx.markedOff:lx.off])
}

func (lx *Lexer) makeTok(kind TokenKind, val string) *Token {
	tok := &Token{
		Kind:    kind,
		Val:     val,
		Pos:     lx.position(lx.markedOff),
		Special: lx.special,
		trail:   emptyTrail,
	}
	lx.special = nil
	lx.bol = false
	return tok
}

func (lx *Lexer) addSpecial(kind TokenKind) {
	lx.special = &Token{
		Kind:    kind,
		Val:     lx.text(),
		Pos:     lx.position(lx.markedOff),
		Special: lx.special,
		trail:   emptyTrail,
	}
}

func (lx *Lexer) lex() *Token {
	for {
		lx.markPos()
		if lx.atEOF() {
			tok := lx.makeTok(EOF, "")
			return tok
		}
		first := lx.peek(0)
		switch {
		case isValidIdentStart(first):
			return lx.readIdentOrKeyword()
		case isNumeric(first) || (first == '.' && isNumeric(lx.peek(1))):
			return lx.readConstantIntOrFloat()
		case isWhiteSpace(first):
			lx.skipWhiteSpace()
			lx.addSpecial(WHITESPACE)
		case first == '\\' && (lx.peek(1) == '\n' || (lx.peek(1) == '\r' && lx.peek(2) == '\n')):
			// Line splice outside of a directive.
			lx.off++
			lx.skipWhiteSpace()
			lx.addSpecial(WHITESPACE)
		case first == '#' && lx.bol:
			lx.readDirective()
			lx.addSpecial(DIRECTIVE)
		case first == '/' && lx.peek(1) == '*':
			lx.readBlockComment()
			lx.addSpecial(COMMENT)
		case first == '/' && lx.peek(1) == '/':
			lx.readLineComment()
			lx.addSpecial(COMMENT)
		case first == '"':
			lx.readQuoted('"', "string literal")
			return lx.makeTok(STRING, lx.text())
		case first == '\'':
			lx.readQuoted('\'', "char literal")
			return lx.makeTok(CHAR_CONSTANT, lx.text())
		default:
			return lx.readPunctuator()
		}
	}
}

// Longest spellings first.
var punctuators = []struct {
	s string
	k TokenKind
}{
	{"->*", ARROW_STAR},
	{"...", ELLIPSIS},
	{"<<=", SHL_ASSIGN},
	{">>=", SHR_ASSIGN},
	{"::", SCOPE},
	{"->", ARROW},
	{".*", DOT_STAR},
	{"++", INC},
	{"--", DEC},
	{"<<", SHL},
	{">>", SHR},
	{"<=", LEQ},
	{">=", GEQ},
	{"==", EQL},
	{"!=", NEQ},
	{"&&", LAND},
	{"||", LOR},
	{"+=", ADD_ASSIGN},
	{"-=", SUB_ASSIGN},
	{"*=", MUL_ASSIGN},
	{"/=", QUO_ASSIGN},
	{"%=", REM_ASSIGN},
	{"&=", AND_ASSIGN},
	{"|=", OR_ASSIGN},
	{"^=", XOR_ASSIGN},
}

func (lx *Lexer) readPunctuator() *Token {
	rest := lx.src[lx.off:]
	for _, p := range punctuators {
		if bytes.HasPrefix(rest, []byte(p.s)) {
			lx.off += len(p.s)
			return lx.makeTok(p.k, p.s)
		}
	}
	c := rest[0]
	switch c {
	case '+', '-', '*', '/', '%', '&', '|', '^', '?', '#', '<', '>', '=', '!', '~',
		'(', ')', '[', ']', '{', '}', ',', '.', ';', ':':
		lx.off++
		return lx.makeTok(TokenKind(c), string(c))
	}
	lx.Error(fmt.Sprintf("bad char code '%d'", c))
	panic("unreachable")
}

func (lx *Lexer) skipWhiteSpace() {
	for !lx.atEOF() {
		c := lx.peek(0)
		if !isWhiteSpace(c) {
			break
		}
		if c == '\n' {
			lx.bol = true
		}
		lx.off++
	}
}

// readDirective consumes a preprocessor line up to, not including, the
// terminating newline. Spliced lines and block comments spanning lines
// belong to the directive.
func (lx *Lexer) readDirective() {
	for !lx.atEOF() {
		c := lx.peek(0)
		switch {
		case c == '\\' && lx.peek(1) == '\n':
			lx.off += 2
		case c == '\\' && lx.peek(1) == '\r' && lx.peek(2) == '\n':
			lx.off += 3
		case c == '/' && lx.peek(1) == '*':
			lx.readBlockComment()
		case c == '\n':
			return
		default:
			lx.off++
		}
	}
}

func (lx *Lexer) readBlockComment() {
	end := bytes.Index(lx.src[lx.off+2:], []byte("*/"))
	if end < 0 {
		lx.Error("unclosed comment.")
	}
	lx.off += 2 + end + 2
}

func (lx *Lexer) readLineComment() {
	end := bytes.IndexByte(lx.src[lx.off:], '\n')
	if end < 0 {
		lx.off = len(lx.src)
		return
	}
	lx.off += end
}

func (lx *Lexer) readIdentOrKeyword() *Token {
	for !lx.atEOF() && isValidIdentTail(lx.peek(0)) {
		lx.off++
	}
	str := lx.text()
	switch lx.peek(0) {
	case '"':
		if isRawPrefix(str) {
			lx.readRawString()
			return lx.makeTok(STRING, lx.text())
		}
		if isEncodingPrefix(str) {
			lx.readQuoted('"', "string literal")
			return lx.makeTok(STRING, lx.text())
		}
	case '\'':
		if isEncodingPrefix(str) {
			lx.readQuoted('\'', "char literal")
			return lx.makeTok(CHAR_CONSTANT, lx.text())
		}
	}
	tokType, ok := keywordLUT[str]
	if !ok {
		tokType = IDENT
	}
	return lx.makeTok(tokType, str)
}

func isEncodingPrefix(s string) bool {
	return s == "L" || s == "u" || s == "U" || s == "u8"
}

func isRawPrefix(s string) bool {
	return strings.HasSuffix(s, "R") && (s == "R" || isEncodingPrefix(s[:len(s)-1]))
}

// readRawString reads R"delim( ... )delim" with the opening quote next.
func (lx *Lexer) readRawString() {
	open := bytes.IndexByte(lx.src[lx.off:], '(')
	if open < 0 {
		lx.Error("bad raw string delimiter")
	}
	delim := lx.src[lx.off+1 : lx.off+open]
	lx.off += open + 1
	closing := append(append([]byte(")"), delim...), '"')
	end := bytes.Index(lx.src[lx.off:], closing)
	if end < 0 {
		lx.Error("eof in raw string literal")
	}
	lx.off += end + len(closing)
}

func (lx *Lexer) readQuoted(terminator byte, what string) {
	// Opening quote.
	lx.off++
	for {
		if lx.atEOF() {
			lx.Error("eof in " + what)
		}
		c := lx.peek(0)
		lx.off++
		switch c {
		case '\\':
			if lx.atEOF() {
				lx.Error("eof in " + what)
			}
			lx.off++
		case '\n':
			lx.Error("new line in " + what)
		case terminator:
			return
		}
	}
}

// readConstantIntOrFloat reads a preprocessing number, digit separators
// and suffixes included, and classifies it.
func (lx *Lexer) readConstantIntOrFloat() *Token {
	isFloat := false
	hex := lx.peek(0) == '0' && (lx.peek(1) == 'x' || lx.peek(1) == 'X')
	if hex {
		lx.off += 2
	}
	for !lx.atEOF() {
		c := lx.peek(0)
		switch {
		case c == '.':
			isFloat = true
		case (c == 'e' || c == 'E') && !hex, (c == 'p' || c == 'P') && hex:
			isFloat = true
			if n := lx.peek(1); n == '+' || n == '-' {
				lx.off++
			}
		case c == '\'' && isValidIdentTail(lx.peek(1)):
		case isValidIdentTail(c):
		default:
			return lx.makeTok(lx.numberKind(isFloat), lx.text())
		}
		lx.off++
	}
	return lx.makeTok(lx.numberKind(isFloat), lx.text())
}

func (lx *Lexer) numberKind(isFloat bool) TokenKind {
	if isFloat {
		return FLOAT_CONSTANT
	}
	return INT_CONSTANT
}

func isValidIdentTail(b byte) bool {
	return isValidIdentStart(b) || isNumeric(b) || b == '$'
}

// Bytes of multi byte UTF-8 sequences are accepted in identifiers.
func isValidIdentStart(b byte) bool {
	return b == '_' || isAlpha(b) || b >= 0x80
}

func isAlpha(b byte) bool {
	if b >= 'a' && b <= 'z' {
		return true
	}
	if b >= 'A' && b <= 'Z' {
		return true
	}
	return false
}

func isWhiteSpace(b byte) bool {
	return b == ' ' || b == '\r' || b == '\n' || b == '\t' || b == '\f' || b == '\v'
}

func isNumeric(b byte) bool {
	if b >= '0' && b <= '9' {
		return true
	}
	return false
}
