package parser

// Parser is a recursive-descent recognizer for the Sigma- grammar. Each
// non-terminal has one method; the production to apply is always selected
// by the current token, so the cursor never backtracks. The first mismatch
// aborts the whole parse with a *SyntaxError.
type Parser struct {
	tokens []Token
	pos    int
}

// Parse builds the concrete parse tree for a complete token sequence, as
// produced by Tokenize. The returned root has symbol "S".
func Parse(tokens []Token) (*Node, error) {
	p := &Parser{tokens: tokens}
	return p.parseProgram()
}

// ParseProgram tokenizes and parses source text in one call.
func ParseProgram(source []byte) (*Node, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		if len(p.tokens) > 0 {
			last := p.tokens[len(p.tokens)-1]
			return Token{Kind: TokenEOF, Line: last.Line, Column: last.Column}
		}
		return Token{Kind: TokenEOF, Line: 1, Column: 1}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

// leaf consumes the current token unconditionally and returns its terminal
// leaf, named after the token kind.
func (p *Parser) leaf() *Node {
	tok := p.advance()
	return &Node{Symbol: tok.Kind.String(), Token: &tok}
}

// expect consumes the current token as a terminal leaf if it has the given
// kind, and fails otherwise.
func (p *Parser) expect(kind TokenKind) (*Node, error) {
	if !p.check(kind) {
		return nil, p.syntaxError(kind)
	}
	return p.leaf(), nil
}

func (p *Parser) syntaxError(expected ...TokenKind) error {
	tok := p.peek()
	return &SyntaxError{
		Line:     tok.Line,
		Column:   tok.Column,
		Found:    tok,
		Expected: expected,
	}
}

// parseProgram handles S -> program id ; D M . EOF. The declaration section
// D is always present in the tree, empty when the program has no var block.
func (p *Parser) parseProgram() (*Node, error) {
	node := &Node{Symbol: SymProgram}

	for _, kind := range []TokenKind{TokenProgram, TokenIdent, TokenSemicolon} {
		child, err := p.expect(kind)
		if err != nil {
			return nil, err
		}
		node.add(child)
	}

	decls, err := p.parseDeclarations()
	if err != nil {
		return nil, err
	}
	node.add(decls)

	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node.add(block)

	dot, err := p.expect(TokenDot)
	if err != nil {
		return nil, err
	}
	node.add(dot)

	eof, err := p.expect(TokenEOF)
	if err != nil {
		return nil, err
	}
	node.add(eof)

	return node, nil
}

// parseDeclarations handles D -> var V D | ε. Each var keyword opens one
// declaration section; further sections nest as a trailing D child.
func (p *Parser) parseDeclarations() (*Node, error) {
	node := &Node{Symbol: SymDecls}
	if !p.check(TokenVar) {
		return node, nil
	}
	node.add(p.leaf())

	decl, err := p.parseVarDecl()
	if err != nil {
		return nil, err
	}
	node.add(decl)

	if p.check(TokenVar) {
		more, err := p.parseDeclarations()
		if err != nil {
			return nil, err
		}
		node.add(more)
	}
	return node, nil
}

// parseVarDecl handles V -> I : T ; V | I : T ;. The list continues while
// the lookahead is an identifier.
func (p *Parser) parseVarDecl() (*Node, error) {
	node := &Node{Symbol: SymVarDecl}

	idents, err := p.parseIdentList()
	if err != nil {
		return nil, err
	}
	node.add(idents)

	colon, err := p.expect(TokenColon)
	if err != nil {
		return nil, err
	}
	node.add(colon)

	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	node.add(typ)

	semi, err := p.expect(TokenSemicolon)
	if err != nil {
		return nil, err
	}
	node.add(semi)

	if p.check(TokenIdent) {
		more, err := p.parseVarDecl()
		if err != nil {
			return nil, err
		}
		node.add(more)
	}
	return node, nil
}

// parseType handles T -> integer | boolean.
func (p *Parser) parseType() (*Node, error) {
	if !p.match(TokenInteger, TokenBoolean) {
		return nil, p.syntaxError(TokenInteger, TokenBoolean)
	}
	return (&Node{Symbol: SymType}).add(p.leaf()), nil
}

// parseIdentList handles I -> id | id , I.
func (p *Parser) parseIdentList() (*Node, error) {
	node := &Node{Symbol: SymIdentList}

	id, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	node.add(id)

	if p.check(TokenComma) {
		node.add(p.leaf())
		more, err := p.parseIdentList()
		if err != nil {
			return nil, err
		}
		node.add(more)
	}
	return node, nil
}

// parseBlock handles M -> begin L end.
func (p *Parser) parseBlock() (*Node, error) {
	node := &Node{Symbol: SymBlock}

	begin, err := p.expect(TokenBegin)
	if err != nil {
		return nil, err
	}
	node.add(begin)

	list, err := p.parseStatementList()
	if err != nil {
		return nil, err
	}
	node.add(list)

	end, err := p.expect(TokenEnd)
	if err != nil {
		return nil, err
	}
	node.add(end)

	return node, nil
}

// parseStatementList handles L -> C | C ; L. A trailing semicolon before
// end is tolerated: after consuming one, another statement is parsed only
// if the lookahead can start one.
func (p *Parser) parseStatementList() (*Node, error) {
	node := &Node{Symbol: SymStmtList}

	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	node.add(stmt)

	if p.check(TokenSemicolon) {
		node.add(p.leaf())
		if p.startsStatement() {
			more, err := p.parseStatementList()
			if err != nil {
				return nil, err
			}
			node.add(more)
		}
	}
	return node, nil
}

func (p *Parser) startsStatement() bool {
	return p.match(TokenIdent, TokenRead, TokenReadln, TokenWrite, TokenWriteln,
		TokenBegin, TokenIf, TokenWhile)
}

// parseStatement handles C -> A | R | W | M | N | P, selected by lookahead.
func (p *Parser) parseStatement() (*Node, error) {
	node := &Node{Symbol: SymStmt}

	var child *Node
	var err error
	switch p.peek().Kind {
	case TokenIdent:
		child, err = p.parseAssignment()
	case TokenRead, TokenReadln:
		child, err = p.parseRead()
	case TokenWrite, TokenWriteln:
		child, err = p.parseWrite()
	case TokenBegin:
		child, err = p.parseBlock()
	case TokenIf:
		child, err = p.parseIf()
	case TokenWhile:
		child, err = p.parseWhile()
	default:
		return nil, p.syntaxError(TokenIdent, TokenRead, TokenReadln,
			TokenWrite, TokenWriteln, TokenBegin, TokenIf, TokenWhile)
	}
	if err != nil {
		return nil, err
	}
	return node.add(child), nil
}

// parseAssignment handles A -> id := E.
func (p *Parser) parseAssignment() (*Node, error) {
	node := &Node{Symbol: SymAssign}

	id, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	node.add(id)

	assign, err := p.expect(TokenAssign)
	if err != nil {
		return nil, err
	}
	node.add(assign)

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	node.add(expr)

	return node, nil
}

// parseRead handles R -> read ( I ) | readln | readln ( I ). A bare readln
// just skips an input line, so its argument list is optional.
func (p *Parser) parseRead() (*Node, error) {
	node := &Node{Symbol: SymRead}

	bare := p.check(TokenReadln)
	node.add(p.leaf())

	if bare && !p.check(TokenLParen) {
		return node, nil
	}
	return p.parseArgs(node, p.parseIdentList)
}

// parseWrite handles W -> write ( F ) | writeln | writeln ( F ).
func (p *Parser) parseWrite() (*Node, error) {
	node := &Node{Symbol: SymWrite}

	bare := p.check(TokenWriteln)
	node.add(p.leaf())

	if bare && !p.check(TokenLParen) {
		return node, nil
	}
	return p.parseArgs(node, p.parseOutputList)
}

func (p *Parser) parseArgs(node *Node, parseList func() (*Node, error)) (*Node, error) {
	lparen, err := p.expect(TokenLParen)
	if err != nil {
		return nil, err
	}
	node.add(lparen)

	list, err := parseList()
	if err != nil {
		return nil, err
	}
	node.add(list)

	rparen, err := p.expect(TokenRParen)
	if err != nil {
		return nil, err
	}
	node.add(rparen)

	return node, nil
}

// parseOutputList handles F -> G | G , F.
func (p *Parser) parseOutputList() (*Node, error) {
	node := &Node{Symbol: SymOutputList}

	item, err := p.parseOutputItem()
	if err != nil {
		return nil, err
	}
	node.add(item)

	if p.check(TokenComma) {
		node.add(p.leaf())
		more, err := p.parseOutputList()
		if err != nil {
			return nil, err
		}
		node.add(more)
	}
	return node, nil
}

// parseOutputItem handles G -> str | E.
func (p *Parser) parseOutputItem() (*Node, error) {
	node := &Node{Symbol: SymOutputItem}
	if p.check(TokenString) {
		return node.add(p.leaf()), nil
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return node.add(expr), nil
}

// parseIf handles N -> if B then C | if B then C else C. The else branch
// binds to the nearest unmatched if: after the then-statement completes,
// an else lookahead is consumed by the innermost conditional still open.
func (p *Parser) parseIf() (*Node, error) {
	node := &Node{Symbol: SymIf}

	ifLeaf, err := p.expect(TokenIf)
	if err != nil {
		return nil, err
	}
	node.add(ifLeaf)

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	node.add(cond)

	then, err := p.expect(TokenThen)
	if err != nil {
		return nil, err
	}
	node.add(then)

	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	node.add(stmt)

	if p.check(TokenElse) {
		node.add(p.leaf())
		alt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		node.add(alt)
	}
	return node, nil
}

// parseWhile handles P -> while B do C.
func (p *Parser) parseWhile() (*Node, error) {
	node := &Node{Symbol: SymWhile}

	while, err := p.expect(TokenWhile)
	if err != nil {
		return nil, err
	}
	node.add(while)

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	node.add(cond)

	do, err := p.expect(TokenDo)
	if err != nil {
		return nil, err
	}
	node.add(do)

	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	node.add(stmt)

	return node, nil
}

// parseCondition handles B -> E relop E with relop in { < <= > >= = <> }.
func (p *Parser) parseCondition() (*Node, error) {
	node := &Node{Symbol: SymCondition}

	left, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	node.add(left)

	if !p.match(TokenLT, TokenLE, TokenGT, TokenGE, TokenEQ, TokenNE) {
		return nil, p.syntaxError(TokenLT, TokenLE, TokenGT, TokenGE, TokenEQ, TokenNE)
	}
	node.add(p.leaf())

	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	node.add(right)

	return node, nil
}

// parseExpression handles E. The grammar's left recursion is eliminated by
// iterating over (+|-) and (*|/) chains; each binary step folds the result
// so far into the left operand, which keeps the operators left-associative.
func (p *Parser) parseExpression() (*Node, error) {
	sum, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	return (&Node{Symbol: SymExpr}).add(sum), nil
}

func (p *Parser) parseSum() (*Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.match(TokenPlus, TokenMinus) {
		op := p.leaf()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = (&Node{Symbol: SymExpr}).add(left, op, right)
	}
	return left, nil
}

func (p *Parser) parseTerm() (*Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.match(TokenStar, TokenSlash) {
		op := p.leaf()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = (&Node{Symbol: SymExpr}).add(left, op, right)
	}
	return left, nil
}

// parseFactor handles id, num, unary minus, and parenthesized expressions.
// The parentheses stay in the tree as terminal leaves.
func (p *Parser) parseFactor() (*Node, error) {
	switch p.peek().Kind {
	case TokenMinus:
		node := (&Node{Symbol: SymExpr}).add(p.leaf())
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return node.add(operand), nil

	case TokenLParen:
		node := (&Node{Symbol: SymExpr}).add(p.leaf())
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.add(inner)
		rparen, err := p.expect(TokenRParen)
		if err != nil {
			return nil, err
		}
		return node.add(rparen), nil

	case TokenIdent, TokenNumber:
		return p.leaf(), nil

	default:
		return nil, p.syntaxError(TokenIdent, TokenNumber, TokenLParen, TokenMinus)
	}
}
