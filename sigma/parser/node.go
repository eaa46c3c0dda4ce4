package parser

import (
	"fmt"
	"strings"
)

// Grammar symbols of the Sigma- parse tree. Terminal leaves use the token
// kind's name as their symbol (id, num, str, keywords, operators).
const (
	SymProgram    = "S"
	SymDecls      = "D"
	SymVarDecl    = "V"
	SymType       = "T"
	SymIdentList  = "I"
	SymStmtList   = "L"
	SymStmt       = "C"
	SymAssign     = "A"
	SymRead       = "R"
	SymWrite      = "W"
	SymOutputList = "F"
	SymOutputItem = "G"
	SymBlock      = "M"
	SymIf         = "N"
	SymWhile      = "P"
	SymExpr       = "E"
	SymCondition  = "B"
)

// Node is one node of the concrete parse tree. A terminal leaf carries the
// matched token and no children; a non-terminal carries children and no
// token. Children appear in production order, so reading the leaves left to
// right yields exactly the consumed token sequence. The tree is not mutated
// after the parser returns it.
type Node struct {
	Symbol   string
	Token    *Token
	Children []*Node
}

func (n *Node) add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// IsTerminal reports whether n is a leaf matched against a single token.
func (n *Node) IsTerminal() bool {
	return n.Token != nil
}

// Literal returns the matched lexeme for terminal leaves and "" otherwise.
func (n *Node) Literal() string {
	if n.Token != nil {
		return n.Token.Lexeme
	}
	return ""
}

// FirstChild returns the first direct child with the given symbol, or nil.
func (n *Node) FirstChild(symbol string) *Node {
	for _, child := range n.Children {
		if child.Symbol == symbol {
			return child
		}
	}
	return nil
}

// Tokens collects the tokens of all terminal leaves in left-to-right order.
func (n *Node) Tokens() []Token {
	var tokens []Token
	n.walkTokens(&tokens)
	return tokens
}

func (n *Node) walkTokens(tokens *[]Token) {
	if n.Token != nil {
		*tokens = append(*tokens, *n.Token)
		return
	}
	for _, child := range n.Children {
		child.walkTokens(tokens)
	}
}

// String renders the tree as an indented diagram with branch-drawing
// characters, terminals shown as `symbol → "lexeme"`:
//
//	S
//	 ├── program → "program"
//	 ├── id → "exemplo"
//	 └── ; → ";"
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b, 0, true, "")
	return b.String()
}

func (n *Node) write(b *strings.Builder, level int, isLast bool, prefix string) {
	if level == 0 {
		fmt.Fprintf(b, "%s\n", n.Symbol)
	} else {
		connector := "├── "
		if isLast {
			connector = "└── "
		}
		if n.Token != nil {
			fmt.Fprintf(b, "%s%s%s → %q\n", prefix, connector, n.Symbol, n.Token.Lexeme)
		} else {
			fmt.Fprintf(b, "%s%s%s\n", prefix, connector, n.Symbol)
		}
	}

	for i, child := range n.Children {
		extension := ""
		if level > 0 {
			if isLast {
				extension = "    "
			} else {
				extension = "│   "
			}
		}
		child.write(b, level+1, i == len(n.Children)-1, prefix+extension)
	}
}
