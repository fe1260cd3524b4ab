package cpp

import (
	"fmt"
)

// The list of tokens.
const (

	// Single char tokens are themselves.
	ADD       = '+'
	SUB       = '-'
	MUL       = '*'
	QUO       = '/'
	REM       = '%'
	AND       = '&'
	OR        = '|'
	XOR       = '^'
	QUESTION  = '?'
	HASH      = '#'
	LSS       = '<'
	GTR       = '>'
	ASSIGN    = '='
	NOT       = '!'
	BNOT      = '~'
	LPAREN    = '('
	LBRACK    = '['
	LBRACE    = '{'
	COMMA     = ','
	PERIOD    = '.'
	RPAREN    = ')'
	RBRACK    = ']'
	RBRACE    = '}'
	SEMICOLON = ';'
	COLON     = ':'

	ERROR = 10000 + iota
	EOF

	// Special tokens never reach the parser, they hang off the
	// Special chain of the next real token.
	COMMENT
	WHITESPACE
	DIRECTIVE // A whole preprocessor line, continuations included.

	// Identifiers and basic type literals
	// (these tokens stand for classes of literals)
	IDENT          // main
	INT_CONSTANT   // 12345
	FLOAT_CONSTANT // 123.45
	CHAR_CONSTANT  // 'a'
	STRING         // "abc"

	SHL        // <<
	SHR        // >>
	ADD_ASSIGN // +=
	SUB_ASSIGN // -=
	MUL_ASSIGN // *=
	QUO_ASSIGN // /=
	REM_ASSIGN // %=
	AND_ASSIGN // &=
	OR_ASSIGN  // |=
	XOR_ASSIGN // ^=
	SHL_ASSIGN // <<=
	SHR_ASSIGN // >>=
	LAND       // &&
	LOR        // ||
	ARROW      // ->
	ARROW_STAR // ->*
	DOT_STAR   // .*
	SCOPE      // ::
	INC        // ++
	DEC        // --
	EQL        // ==
	NEQ        // !=
	LEQ        // <=
	GEQ        // >=
	ELLIPSIS   // ...

	// Keywords
	AUTO
	BOOL
	BREAK
	CASE
	CATCH
	CHAR
	CLASS
	CONST
	CONST_CAST
	CONTINUE
	DEFAULT
	DELETE
	DO
	DOUBLE
	DYNAMIC_CAST
	ELSE
	ENUM
	EXPLICIT
	EXTERN
	FALSE
	FLOAT
	FOR
	FRIEND
	GOTO
	IF
	INLINE
	INT
	LONG
	MUTABLE
	NAMESPACE
	NEW
	OPERATOR
	PRIVATE
	PROTECTED
	PUBLIC
	REGISTER
	REINTERPRET_CAST
	RETURN
	SHORT
	SIGNED
	SIZEOF
	STATIC
	STATIC_CAST
	STRUCT
	SWITCH
	TEMPLATE
	THIS
	THROW
	TRUE
	TRY
	TYPEDEF
	TYPEID
	TYPENAME
	UNION
	UNSIGNED
	USING
	VIRTUAL
	VOID
	VOLATILE
	WCHAR_T
	WHILE
)

var tokenKindToStr = [...]string{
	HASH:             "'#'",
	ERROR:            "error",
	EOF:              "EOF",
	COMMENT:          "comment",
	WHITESPACE:       "whitespace",
	DIRECTIVE:        "directive",
	CHAR_CONSTANT:    "charconst",
	INT_CONSTANT:     "intconst",
	FLOAT_CONSTANT:   "floatconst",
	IDENT:            "ident",
	STRING:           "string",
	ADD:              "'+'",
	SUB:              "'-'",
	MUL:              "'*'",
	QUO:              "'/'",
	REM:              "'%'",
	AND:              "'&'",
	OR:               "'|'",
	XOR:              "'^'",
	SHL:              "'<<'",
	SHR:              "'>>'",
	ADD_ASSIGN:       "'+='",
	SUB_ASSIGN:       "'-='",
	MUL_ASSIGN:       "'*='",
	QUO_ASSIGN:       "'/='",
	REM_ASSIGN:       "'%='",
	AND_ASSIGN:       "'&='",
	OR_ASSIGN:        "'|='",
	XOR_ASSIGN:       "'^='",
	SHL_ASSIGN:       "'<<='",
	SHR_ASSIGN:       "'>>='",
	LAND:             "'&&'",
	LOR:              "'||'",
	ARROW:            "'->'",
	ARROW_STAR:       "'->*'",
	DOT_STAR:         "'.*'",
	SCOPE:            "'::'",
	INC:              "'++'",
	DEC:              "'--'",
	EQL:              "'=='",
	LSS:              "'<'",
	GTR:              "'>'",
	ASSIGN:           "'='",
	NOT:              "'!'",
	BNOT:             "'~'",
	NEQ:              "'!='",
	LEQ:              "'<='",
	GEQ:              "'>='",
	ELLIPSIS:         "'...'",
	LPAREN:           "'('",
	LBRACK:           "'['",
	LBRACE:           "'{'",
	COMMA:            "','",
	PERIOD:           "'.'",
	RPAREN:           "')'",
	RBRACK:           "']'",
	RBRACE:           "'}'",
	SEMICOLON:        "';'",
	COLON:            "':'",
	QUESTION:         "'?'",
	AUTO:             "auto",
	BOOL:             "bool",
	BREAK:            "break",
	CASE:             "case",
	CATCH:            "catch",
	CHAR:             "char",
	CLASS:            "class",
	CONST:            "const",
	CONST_CAST:       "const_cast",
	CONTINUE:         "continue",
	DEFAULT:          "default",
	DELETE:           "delete",
	DO:               "do",
	DOUBLE:           "double",
	DYNAMIC_CAST:     "dynamic_cast",
	ELSE:             "else",
	ENUM:             "enum",
	EXPLICIT:         "explicit",
	EXTERN:           "extern",
	FALSE:            "false",
	FLOAT:            "float",
	FOR:              "for",
	FRIEND:           "friend",
	GOTO:             "goto",
	IF:               "if",
	INLINE:           "inline",
	INT:              "int",
	LONG:             "long",
	MUTABLE:          "mutable",
	NAMESPACE:        "namespace",
	NEW:              "new",
	OPERATOR:         "operator",
	PRIVATE:          "private",
	PROTECTED:        "protected",
	PUBLIC:           "public",
	REGISTER:         "register",
	REINTERPRET_CAST: "reinterpret_cast",
	RETURN:           "return",
	SHORT:            "short",
	SIGNED:           "signed",
	SIZEOF:           "sizeof",
	STATIC:           "static",
	STATIC_CAST:      "static_cast",
	STRUCT:           "struct",
	SWITCH:           "switch",
	TEMPLATE:         "template",
	THIS:             "this",
	THROW:            "throw",
	TRUE:             "true",
	TRY:              "try",
	TYPEDEF:          "typedef",
	TYPEID:           "typeid",
	TYPENAME:         "typename",
	UNION:            "union",
	UNSIGNED:         "unsigned",
	USING:            "using",
	VIRTUAL:          "virtual",
	VOID:             "void",
	VOLATILE:         "volatile",
	WCHAR_T:          "wchar_t",
	WHILE:            "while",
}

var keywordLUT = map[string]TokenKind{}

func init() {
	for k := AUTO; k <= WHILE; k++ {
		keywordLUT[tokenKindToStr[k]] = TokenKind(k)
	}
}

type TokenKind uint32

func (tk TokenKind) String() string {
	if uint32(tk) >= uint32(len(tokenKindToStr)) {
		return "Unknown"
	}
	ret := tokenKindToStr[tk]
	if ret == "" {
		return "Unknown"
	}
	return ret
}

// IsKeyword reports whether tk is a reserved word.
func (tk TokenKind) IsKeyword() bool {
	return tk >= AUTO && tk <= WHILE
}

// IsWord reports whether tokens of kind tk are spelled like identifiers.
func (tk TokenKind) IsWord() bool {
	return tk == IDENT || tk.IsKeyword()
}

// IsSpecial reports whether tk is one of the non-grammar kinds.
func (tk TokenKind) IsSpecial() bool {
	return tk == COMMENT || tk == WHITESPACE || tk == DIRECTIVE
}

type FilePos struct {
	File string
	Line int
	Col  int
}

func (pos FilePos) String() string {
	return fmt.Sprintf("%s:%d:%d", pos.File, pos.Line, pos.Col)
}

// Token represents a grouping of characters
// that provide semantic meaning in a C++ program.
type Token struct {
	Kind TokenKind
	Val  string
	Pos  FilePos
	// Special is the most recent comment, whitespace or directive
	// preceding the token. Older ones follow the Special field of each
	// special token in turn.
	Special *Token
	// Next is filled in by the consumer as the stream is read.
	Next             *Token
	WasMacroExpanded bool
	trail            *expansion
}

func (t *Token) copy() *Token {
	ret := *t
	ret.Next = nil
	return &ret
}

// Specials returns the special tokens preceding t, oldest first.
func (t *Token) Specials() []*Token {
	var ret []*Token
	for s := t.Special; s != nil; s = s.Special {
		ret = append(ret, s)
	}
	for i, j := 0, len(ret)-1; i < j; i, j = i+1, j-1 {
		ret[i], ret[j] = ret[j], ret[i]
	}
	return ret
}

// ExpansionDepth is the number of macro expansions that produced t.
func (t *Token) ExpansionDepth() int {
	return t.trail.len()
}

func (t Token) String() string {
	if t.WasMacroExpanded {
		return fmt.Sprintf("%s expanded from macro at %s", t.Val, t.Pos)
	}
	return fmt.Sprintf("%s at %s", t.Val, t.Pos)
}

// chainSpecials puts the older chain in front of the newer one without
// touching either; the newer chain is copied.
func chainSpecials(older, newer *Token) *Token {
	if older == nil {
		return newer
	}
	if newer == nil {
		return older
	}
	cp := newer.copy()
	cp.Special = chainSpecials(older, newer.Special)
	return cp
}
