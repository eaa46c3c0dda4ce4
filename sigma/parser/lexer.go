package parser

// Lexer scans Sigma- source text into tokens. It is a byte cursor over the
// input with 1-based line/column tracking; each call to NextToken returns
// the next classified token or the lexical error that stops the scan.
type Lexer struct {
	input  []byte
	pos    int
	line   int
	column int
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{
		input:  input,
		pos:    0,
		line:   1,
		column: 1,
	}
}

// Tokenize scans the whole input, ending the sequence with a single EOF
// token. It returns the first lexical error encountered, if any.
func Tokenize(input []byte) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) NextToken() (Token, error) {
	for {
		ch := l.peek()

		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.advance()
			continue
		}

		if ch == '{' {
			if err := l.skipComment(); err != nil {
				return Token{}, err
			}
			continue
		}

		break
	}

	line, column := l.line, l.column

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Line: line, Column: column}, nil
	}

	ch := l.peek()

	if isLetter(ch) {
		return l.scanIdentOrKeyword(line, column), nil
	}

	if isDigit(ch) {
		return l.scanNumber(line, column), nil
	}

	if ch == '"' {
		return l.scanString(line, column)
	}

	return l.scanOperator(line, column)
}

// skipComment consumes a brace-delimited comment. The closing brace must
// appear before end of input; otherwise the error points at the opening
// brace.
func (l *Lexer) skipComment() error {
	line, column := l.line, l.column
	l.advance()
	for l.peek() != '}' {
		if l.pos >= len(l.input) {
			return &LexicalError{Line: line, Column: column, Message: "unterminated comment"}
		}
		l.advance()
	}
	l.advance()
	return nil
}

func (l *Lexer) scanIdentOrKeyword(line, column int) Token {
	start := l.pos
	for isLetter(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}
	lexeme := string(l.input[start:l.pos])
	return Token{Kind: LookupKeyword(lexeme), Lexeme: lexeme, Line: line, Column: column}
}

func (l *Lexer) scanNumber(line, column int) Token {
	start := l.pos
	for isDigit(l.peek()) {
		l.advance()
	}
	return Token{Kind: TokenNumber, Lexeme: string(l.input[start:l.pos]), Line: line, Column: column}
}

// scanString consumes a double-quoted string literal. Strings may span
// lines; the lexeme excludes the quotes.
func (l *Lexer) scanString(line, column int) (Token, error) {
	l.advance()
	start := l.pos
	for l.peek() != '"' {
		if l.pos >= len(l.input) {
			return Token{}, &LexicalError{Line: line, Column: column, Message: "unterminated string"}
		}
		l.advance()
	}
	lexeme := string(l.input[start:l.pos])
	l.advance()
	return Token{Kind: TokenString, Lexeme: lexeme, Line: line, Column: column}, nil
}

func (l *Lexer) scanOperator(line, column int) (Token, error) {
	ch := l.peek()

	switch ch {
	case ':':
		if l.peekN(1) == '=' {
			return l.token(TokenAssign, 2, line, column), nil
		}
		return l.token(TokenColon, 1, line, column), nil

	case '<':
		if l.peekN(1) == '=' {
			return l.token(TokenLE, 2, line, column), nil
		}
		if l.peekN(1) == '>' {
			return l.token(TokenNE, 2, line, column), nil
		}
		return l.token(TokenLT, 1, line, column), nil

	case '>':
		if l.peekN(1) == '=' {
			return l.token(TokenGE, 2, line, column), nil
		}
		return l.token(TokenGT, 1, line, column), nil

	case '=':
		return l.token(TokenEQ, 1, line, column), nil
	case '+':
		return l.token(TokenPlus, 1, line, column), nil
	case '-':
		return l.token(TokenMinus, 1, line, column), nil
	case '*':
		return l.token(TokenStar, 1, line, column), nil
	case '/':
		return l.token(TokenSlash, 1, line, column), nil
	case ';':
		return l.token(TokenSemicolon, 1, line, column), nil
	case ',':
		return l.token(TokenComma, 1, line, column), nil
	case '(':
		return l.token(TokenLParen, 1, line, column), nil
	case ')':
		return l.token(TokenRParen, 1, line, column), nil
	case '.':
		return l.token(TokenDot, 1, line, column), nil
	}

	l.advance()
	return Token{}, &LexicalError{
		Line:    line,
		Column:  column,
		Message: "unrecognized character '" + string(ch) + "'",
	}
}

func (l *Lexer) token(kind TokenKind, width, line, column int) Token {
	start := l.pos
	l.advanceN(width)
	return Token{Kind: kind, Lexeme: string(l.input[start:l.pos]), Line: line, Column: column}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}
