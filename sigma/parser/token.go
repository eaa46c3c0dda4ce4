package parser

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError

	// Literals
	TokenIdent
	TokenNumber
	TokenString

	// Keywords
	TokenProgram
	TokenVar
	TokenInteger
	TokenBoolean
	TokenBegin
	TokenEnd
	TokenRead
	TokenReadln
	TokenWrite
	TokenWriteln
	TokenIf
	TokenThen
	TokenElse
	TokenWhile
	TokenDo

	// Operators
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenEQ
	TokenNE
	TokenAssign

	// Delimiters
	TokenSemicolon
	TokenComma
	TokenColon
	TokenLParen
	TokenRParen
	TokenDot
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:       "EOF",
	TokenError:     "Error",
	TokenIdent:     "id",
	TokenNumber:    "num",
	TokenString:    "str",
	TokenProgram:   "program",
	TokenVar:       "var",
	TokenInteger:   "integer",
	TokenBoolean:   "boolean",
	TokenBegin:     "begin",
	TokenEnd:       "end",
	TokenRead:      "read",
	TokenReadln:    "readln",
	TokenWrite:     "write",
	TokenWriteln:   "writeln",
	TokenIf:        "if",
	TokenThen:      "then",
	TokenElse:      "else",
	TokenWhile:     "while",
	TokenDo:        "do",
	TokenPlus:      "+",
	TokenMinus:     "-",
	TokenStar:      "*",
	TokenSlash:     "/",
	TokenLT:        "<",
	TokenLE:        "<=",
	TokenGT:        ">",
	TokenGE:        ">=",
	TokenEQ:        "=",
	TokenNE:        "<>",
	TokenAssign:    ":=",
	TokenSemicolon: ";",
	TokenComma:     ",",
	TokenColon:     ":",
	TokenLParen:    "(",
	TokenRParen:    ")",
	TokenDot:       ".",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is one classified lexical unit. Line and Column are 1-based and
// point at the first character of the lexeme. For string literals the
// lexeme is the text between the quotes.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Line   int
	Column int
}

var keywords = map[string]TokenKind{
	"program": TokenProgram,
	"var":     TokenVar,
	"integer": TokenInteger,
	"boolean": TokenBoolean,
	"begin":   TokenBegin,
	"end":     TokenEnd,
	"read":    TokenRead,
	"readln":  TokenReadln,
	"write":   TokenWrite,
	"writeln": TokenWriteln,
	"if":      TokenIf,
	"then":    TokenThen,
	"else":    TokenElse,
	"while":   TokenWhile,
	"do":      TokenDo,
}

// LookupKeyword classifies an identifier-shaped lexeme. Reserved words are
// matched case-sensitively; anything else is an identifier.
func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}
