package parser

import (
	"errors"
	"testing"
)

const minimalProgram = "program exemplo;\nvar x,y:integer;\nbegin\n x:=10;\n y:=x+20\nend."

func mustParse(t *testing.T, source string) *Node {
	t.Helper()
	root, err := ParseProgram([]byte(source))
	if err != nil {
		t.Fatalf("ParseProgram() error = %v", err)
	}
	return root
}

func childSymbols(n *Node) []string {
	symbols := make([]string, len(n.Children))
	for i, child := range n.Children {
		symbols[i] = child.Symbol
	}
	return symbols
}

func TestParseMinimalProgram(t *testing.T) {
	root := mustParse(t, minimalProgram)

	if root.Symbol != SymProgram {
		t.Fatalf("root symbol = %q, want %q", root.Symbol, SymProgram)
	}

	want := []string{"program", "id", ";", "D", "M", ".", "EOF"}
	got := childSymbols(root)
	if len(got) != len(want) {
		t.Fatalf("root has %d children %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("child %d: symbol = %q, want %q", i, got[i], want[i])
		}
	}

	if name := root.Children[1].Literal(); name != "exemplo" {
		t.Errorf("program name = %q, want %q", name, "exemplo")
	}

	// The first statement is the assignment x := 10.
	block := root.FirstChild(SymBlock)
	list := block.FirstChild(SymStmtList)
	stmt := list.Children[0]
	if stmt.Symbol != SymStmt {
		t.Fatalf("first list child = %q, want %q", stmt.Symbol, SymStmt)
	}
	assign := stmt.Children[0]
	if assign.Symbol != SymAssign {
		t.Fatalf("statement child = %q, want %q", assign.Symbol, SymAssign)
	}

	wantAssign := []string{"id", ":=", "E"}
	gotAssign := childSymbols(assign)
	for i := range wantAssign {
		if gotAssign[i] != wantAssign[i] {
			t.Errorf("assignment child %d: symbol = %q, want %q", i, gotAssign[i], wantAssign[i])
		}
	}
	if assign.Children[0].Literal() != "x" {
		t.Errorf("assignment target = %q, want %q", assign.Children[0].Literal(), "x")
	}

	expr := assign.Children[2]
	if len(expr.Children) != 1 || expr.Children[0].Symbol != "num" {
		t.Fatalf("expression children = %v, want [num]", childSymbols(expr))
	}
	if expr.Children[0].Literal() != "10" {
		t.Errorf("number lexeme = %q, want %q", expr.Children[0].Literal(), "10")
	}
}

func TestParseEmptyDeclarations(t *testing.T) {
	root := mustParse(t, "program p; begin x:=1 end.")

	decls := root.FirstChild(SymDecls)
	if decls == nil {
		t.Fatal("declaration node missing from root")
	}
	if len(decls.Children) != 0 {
		t.Errorf("declaration node has %d children %v, want 0",
			len(decls.Children), childSymbols(decls))
	}
}

func TestParseMultipleDeclarations(t *testing.T) {
	root := mustParse(t, "program p;\nvar a, b : integer;\n    ok : boolean;\nbegin a:=1 end.")

	decls := root.FirstChild(SymDecls)
	decl := decls.FirstChild(SymVarDecl)
	if decl == nil {
		t.Fatal("var declaration missing")
	}
	if nested := decl.FirstChild(SymVarDecl); nested == nil {
		t.Error("second declaration should nest as a trailing V child")
	}

	idents := decl.FirstChild(SymIdentList)
	got := childSymbols(idents)
	want := []string{"id", ",", "I"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ident list child %d: symbol = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseMissingSemicolonAfterDecl(t *testing.T) {
	_, err := ParseProgram([]byte("program p; var x:integer begin x:=1 end."))
	if err == nil {
		t.Fatal("ParseProgram() error = nil, want *SyntaxError")
	}
	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("error type = %T, want *SyntaxError", err)
	}
	// The offending token is `begin` at line 1, column 26.
	if synErr.Line != 1 || synErr.Column != 26 {
		t.Errorf("position = %d:%d, want 1:26", synErr.Line, synErr.Column)
	}
	if synErr.Found.Kind != TokenBegin {
		t.Errorf("Found = %v, want %v", synErr.Found.Kind, TokenBegin)
	}
	if len(synErr.Expected) != 1 || synErr.Expected[0] != TokenSemicolon {
		t.Errorf("Expected = %v, want [;]", synErr.Expected)
	}
}

func TestParseIfWithElse(t *testing.T) {
	root := mustParse(t, "program p;\nvar x : integer;\nbegin\n if x > 0 then writeln(\"p\") else writeln(\"n\")\nend.")

	cond := findNode(root, SymIf)
	if cond == nil {
		t.Fatal("conditional node missing")
	}
	want := []string{"if", "B", "then", "C", "else", "C"}
	got := childSymbols(cond)
	if len(got) != len(want) {
		t.Fatalf("conditional has %d children %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("conditional child %d: symbol = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	root := mustParse(t, "program p;\nbegin\n if x > 0 then writeln(\"p\")\nend.")

	cond := findNode(root, SymIf)
	if cond == nil {
		t.Fatal("conditional node missing")
	}
	want := []string{"if", "B", "then", "C"}
	got := childSymbols(cond)
	if len(got) != len(want) {
		t.Fatalf("conditional has %d children %v, want %d", len(got), got, len(want))
	}
}

func TestParseDanglingElseBindsInnermost(t *testing.T) {
	root := mustParse(t, "program p;\nbegin\n if x > 0 then if y > 0 then writeln(\"a\") else writeln(\"b\")\nend.")

	outer := findNode(root, SymIf)
	if len(outer.Children) != 4 {
		t.Fatalf("outer conditional has %d children %v, want 4",
			len(outer.Children), childSymbols(outer))
	}
	inner := findNode(outer.Children[3], SymIf)
	if inner == nil {
		t.Fatal("inner conditional missing")
	}
	if len(inner.Children) != 6 {
		t.Errorf("inner conditional has %d children %v, want 6",
			len(inner.Children), childSymbols(inner))
	}
}

func TestParseWhileBlock(t *testing.T) {
	root := mustParse(t, "program w;\nvar i : integer;\nbegin\n i := 0;\n while i < 10 do\n begin\n  writeln(i);\n  i := i + 1\n end\nend.")

	loop := findNode(root, SymWhile)
	if loop == nil {
		t.Fatal("while node missing")
	}
	want := []string{"while", "B", "do", "C"}
	got := childSymbols(loop)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("while child %d: symbol = %q, want %q", i, got[i], want[i])
		}
	}
	if body := loop.Children[3].FirstChild(SymBlock); body == nil {
		t.Error("while body should be a compound block statement")
	}
}

func TestParseReadWriteForms(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"read with idents", "program p; begin read(x, y) end."},
		{"readln with idents", "program p; begin readln(n) end."},
		{"bare readln", "program p; begin readln end."},
		{"write mixed args", "program p; begin write(\"soma: \", a + b) end."},
		{"bare writeln", "program p; begin writeln end."},
		{"writeln with string", "program p; begin writeln(\"fim\") end."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mustParse(t, tt.source)
		})
	}
}

func TestParseReadRequiresParens(t *testing.T) {
	_, err := ParseProgram([]byte("program p; begin read end."))
	if err == nil {
		t.Fatal("ParseProgram() error = nil, want *SyntaxError")
	}
	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("error type = %T, want *SyntaxError", err)
	}
	if len(synErr.Expected) != 1 || synErr.Expected[0] != TokenLParen {
		t.Errorf("Expected = %v, want [(]", synErr.Expected)
	}
}

func TestParseTrailingSemicolon(t *testing.T) {
	mustParse(t, "program p;\nbegin\n x := 1;\n y := 2;\nend.")
}

func TestParseConditionRequiresRelop(t *testing.T) {
	_, err := ParseProgram([]byte("program p; begin if x then writeln(\"a\") end."))
	if err == nil {
		t.Fatal("ParseProgram() error = nil, want *SyntaxError")
	}
	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("error type = %T, want *SyntaxError", err)
	}
	if synErr.Found.Kind != TokenThen {
		t.Errorf("Found = %v, want %v", synErr.Found.Kind, TokenThen)
	}
	if len(synErr.Expected) != 6 {
		t.Errorf("Expected = %v, want the six relational operators", synErr.Expected)
	}
}

func TestParseExpressionShapes(t *testing.T) {
	root := mustParse(t, "program p; begin x := a + b * c end.")

	assign := findNode(root, SymAssign)
	expr := assign.Children[2]
	// E wraps E(a, +, E(b, *, c)): multiplication binds tighter.
	sum := expr.Children[0]
	if got := childSymbols(sum); len(got) != 3 || got[0] != "id" || got[1] != "+" || got[2] != SymExpr {
		t.Fatalf("sum children = %v, want [id + E]", got)
	}
	product := sum.Children[2]
	if got := childSymbols(product); len(got) != 3 || got[1] != "*" {
		t.Errorf("product children = %v, want [id * id]", got)
	}
}

func TestParseExpressionLeftAssociative(t *testing.T) {
	root := mustParse(t, "program p; begin x := a - b + c end.")

	assign := findNode(root, SymAssign)
	sum := assign.Children[2].Children[0]
	// (a - b) + c: the left operand is itself a binary expression node.
	if got := childSymbols(sum); len(got) != 3 || got[0] != SymExpr || got[1] != "+" {
		t.Fatalf("sum children = %v, want [E + id]", got)
	}
	left := sum.Children[0]
	if got := childSymbols(left); len(got) != 3 || got[1] != "-" {
		t.Errorf("left children = %v, want [id - id]", got)
	}
}

func TestParseParenthesizedExpression(t *testing.T) {
	root := mustParse(t, "program p; begin x := (a + b) * 2 end.")

	assign := findNode(root, SymAssign)
	product := assign.Children[2].Children[0]
	group := product.Children[0]
	got := childSymbols(group)
	want := []string{"(", "E", ")"}
	if len(got) != len(want) {
		t.Fatalf("group children = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("group child %d: symbol = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseUnaryMinus(t *testing.T) {
	root := mustParse(t, "program p; begin x := -5 end.")

	assign := findNode(root, SymAssign)
	neg := assign.Children[2].Children[0]
	got := childSymbols(neg)
	if len(got) != 2 || got[0] != "-" || got[1] != "num" {
		t.Errorf("negation children = %v, want [- num]", got)
	}
}

func TestParseStopsAtFirstError(t *testing.T) {
	// Both the missing := and the stray ( are wrong; only the first is reported.
	_, err := ParseProgram([]byte("program p; begin x 1; y ( end."))
	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("error type = %T, want *SyntaxError", err)
	}
	if synErr.Found.Kind != TokenNumber {
		t.Errorf("Found = %v, want %v", synErr.Found.Kind, TokenNumber)
	}
}

func TestParseTrailingInputAfterDot(t *testing.T) {
	_, err := ParseProgram([]byte("program p; begin x:=1 end. extra"))
	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("error type = %T, want *SyntaxError", err)
	}
	if len(synErr.Expected) != 1 || synErr.Expected[0] != TokenEOF {
		t.Errorf("Expected = %v, want [EOF]", synErr.Expected)
	}
}

func TestParsePropagatesLexicalError(t *testing.T) {
	_, err := ParseProgram([]byte("program p; begin x := 1 ? end."))
	var lexErr *LexicalError
	if !errors.As(err, &lexErr) {
		t.Fatalf("error type = %T, want *LexicalError", err)
	}
}

func TestRoundTripLeaves(t *testing.T) {
	sources := []string{
		minimalProgram,
		"program io;\nvar n : integer;\nbegin\n readln(n);\n writeln(\"Resultado: \", n)\nend.",
		"program calc;\nvar a, b, resultado : integer;\nbegin\n readln(a, b);\n resultado := (a + b) * 2;\n if resultado > 100 then\n  writeln(\"Grande\")\n else\n  writeln(\"Pequeno\")\nend.",
	}

	for _, source := range sources {
		tokens, err := Tokenize([]byte(source))
		if err != nil {
			t.Fatalf("Tokenize() error = %v", err)
		}
		root, err := Parse(tokens)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		leaves := root.Tokens()
		if len(leaves) != len(tokens) {
			t.Fatalf("tree has %d leaves, token stream has %d", len(leaves), len(tokens))
		}
		for i := range tokens {
			if leaves[i] != tokens[i] {
				t.Errorf("leaf %d = %+v, want %+v", i, leaves[i], tokens[i])
			}
		}
	}
}

func TestParseDeterministic(t *testing.T) {
	first := mustParse(t, minimalProgram)
	second := mustParse(t, minimalProgram)
	if first.String() != second.String() {
		t.Error("identical input produced structurally different trees")
	}
}

func findNode(n *Node, symbol string) *Node {
	if n.Symbol == symbol {
		return n
	}
	for _, child := range n.Children {
		if found := findNode(child, symbol); found != nil {
			return found
		}
	}
	return nil
}
