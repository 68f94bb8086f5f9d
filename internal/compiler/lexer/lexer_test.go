package lexer

import (
	"testing"

	"emergent/internal/compiler/token"
)

func TestBasicTokens(t *testing.T) {
	input := `: { } ( ) [ ] , | + - * / %`

	expected := []token.Type{
		token.COLON, token.LBRACE, token.RBRACE, token.LPAREN, token.RPAREN,
		token.LBRACKET, token.RBRACKET, token.COMMA, token.PIPE,
		token.ADD, token.SUB, token.MULT, token.DIV, token.MOD,
		token.EOF,
	}

	l := New(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp {
			t.Fatalf("test[%d] - wrong type. expected=%s, got=%s (literal=%q)", i, exp, tok.Type, tok.Literal)
		}
	}
}

func TestRelationalOperators(t *testing.T) {
	input := `== != <= >= < >`
	expected := []token.Type{token.EQ, token.NE, token.LE, token.GE, token.LT, token.GT, token.EOF}

	l := New(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp {
			t.Fatalf("test[%d] - expected %s, got %s", i, exp, tok.Type)
		}
	}
}

func TestBareEqualsAndBangAreIllegal(t *testing.T) {
	input := `= !`
	l := New(input)

	tok := l.NextToken()
	if tok.Type != token.ILLEGAL || tok.Literal != "=" {
		t.Fatalf("expected ILLEGAL '=', got %s %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != token.ILLEGAL || tok.Literal != "!" {
		t.Fatalf("expected ILLEGAL '!', got %s %q", tok.Type, tok.Literal)
	}
}

func TestKeywords(t *testing.T) {
	input := `neighbourhood model state set all default this in and or xor not`
	expected := []token.Type{
		token.NEIGHBOURHOOD, token.MODEL, token.STATE, token.SET, token.ALL,
		token.DEFAULT, token.THIS, token.IN, token.AND, token.OR, token.XOR, token.NOT,
		token.EOF,
	}

	l := New(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp {
			t.Fatalf("test[%d] - expected %s, got %s", i, exp, tok.Type)
		}
	}
}

func TestIdentifier(t *testing.T) {
	l := New("north_east2")
	tok := l.NextToken()
	if tok.Type != token.IDENT || tok.Literal != "north_east2" {
		t.Fatalf("expected IDENT north_east2, got %s %q", tok.Type, tok.Literal)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		typ   token.Type
		lit   string
	}{
		{"42", token.NAT_LIT, "42"},
		{"3.14", token.DEC_LIT, "3.14"},
		{".5", token.DEC_LIT, ".5"},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.typ || tok.Literal != tt.lit {
			t.Errorf("input %q: expected %s %q, got %s %q", tt.input, tt.typ, tt.lit, tok.Type, tok.Literal)
		}
	}
}

func TestCharLiteral(t *testing.T) {
	l := New(`'X'`)
	tok := l.NextToken()
	if tok.Type != token.CHAR || tok.Literal != "X" {
		t.Fatalf("expected CHAR 'X', got %s %q", tok.Type, tok.Literal)
	}
}

func TestCharLiteralMissingClosingQuote(t *testing.T) {
	l := New(`'Xy`)
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s %q", tok.Type, tok.Literal)
	}
}

func TestLineComment(t *testing.T) {
	l := New("model // trailing comment\nstate")
	tok := l.NextToken()
	if tok.Type != token.MODEL {
		t.Fatalf("expected MODEL, got %s", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != token.STATE {
		t.Fatalf("expected STATE after comment, got %s", tok.Type)
	}
}

func TestEOFIsIdempotent(t *testing.T) {
	l := New("")
	for i := 0; i < 3; i++ {
		tok := l.NextToken()
		if tok.Type != token.EOF {
			t.Fatalf("call %d: expected EOF, got %s", i, tok.Type)
		}
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	l := New("model\n  state")
	tok := l.NextToken()
	if tok.Pos.Line != 1 || tok.Pos.Column != 1 {
		t.Fatalf("model: expected 1:1, got %d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	tok = l.NextToken()
	if tok.Pos.Line != 2 || tok.Pos.Column != 3 {
		t.Fatalf("state: expected 2:3, got %d:%d", tok.Pos.Line, tok.Pos.Column)
	}
}
