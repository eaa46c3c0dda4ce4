package parser

import "encoding/json"

type jsonNode struct {
	Symbol   string        `json:"symbol"`
	Lexeme   string        `json:"lexeme,omitempty"`
	Position *jsonPosition `json:"position,omitempty"`
	Children []*jsonNode   `json:"children,omitempty"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		Symbol: n.Symbol,
	}

	if n.Token != nil {
		jn.Lexeme = n.Token.Lexeme
		jn.Position = &jsonPosition{Line: n.Token.Line, Column: n.Token.Column}
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = child.toJSON()
		}
	}

	return jn
}
