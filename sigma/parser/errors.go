package parser

import (
	"fmt"
	"strings"
)

// LexicalError reports the first character sequence the lexer could not
// classify: an unrecognized character, an unterminated string, or an
// unterminated comment. Positions are 1-based; for unterminated strings
// and comments they point at the opening quote or brace.
type LexicalError struct {
	Line    int
	Column  int
	Message string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// SyntaxError reports the first token that cannot continue any production.
// Found is the offending token; Expected lists the terminals the failing
// handler would have accepted.
type SyntaxError struct {
	Line     int
	Column   int
	Found    Token
	Expected []TokenKind
}

func (e *SyntaxError) Error() string {
	found := e.Found.Lexeme
	if e.Found.Kind == TokenEOF {
		found = "end of input"
	} else {
		found = fmt.Sprintf("'%s'", found)
	}
	return fmt.Sprintf("syntax error at line %d, column %d: expected %s, found %s",
		e.Line, e.Column, expectedList(e.Expected), found)
}

func expectedList(kinds []TokenKind) string {
	if len(kinds) == 1 {
		return fmt.Sprintf("'%s'", kinds[0])
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = fmt.Sprintf("'%s'", k)
	}
	return "one of " + strings.Join(names, ", ")
}
