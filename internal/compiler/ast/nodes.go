package ast

import (
	"fmt"
	"strconv"
	"strings"

	"emergent/internal/compiler/token"
)

// ============ PROGRAM ============

// Program is the root AST node: an ordered sequence of models and an
// ordered sequence of neighbourhoods.
type Program struct {
	Models         *Series[*Model]
	Neighbourhoods *Series[*Neighbourhood]
}

func (p *Program) Render(w *strings.Builder, ctx *RenderContext) {
	w.WriteString("<program>")
	indent := ctx.startIndent()
	ctx.depth++
	ctx.line(w)
	w.WriteString("|-  ")
	p.Neighbourhoods.Render(w, ctx)
	ctx.endIndent(indent)
	ctx.line(w)
	w.WriteString("\\-  ")
	p.Models.Render(w, ctx)
	ctx.depth--
}

// ============ NEIGHBOURHOOD ============

// Neighbourhood is a named, dimensioned set of Neighbour offsets.
type Neighbourhood struct {
	ID         string
	Dimensions int
	Neighbours *Series[*Neighbour]
	Pos        token.Position
}

func (n *Neighbourhood) Render(w *strings.Builder, ctx *RenderContext) {
	w.WriteString(fmt.Sprintf("<neighbourhood> %s ~ %d:", n.ID, n.Dimensions))
	ctx.depth++
	ctx.line(w)
	w.WriteString("\\-  ")
	n.Neighbours.Render(w, ctx)
	ctx.depth--
}

// ============ NEIGHBOUR ============

// Neighbour is one offset in a Neighbourhood, optionally named.
type Neighbour struct {
	ID         string // empty means anonymous
	Coordinate *Coordinate
	Pos        token.Position
}

func (n *Neighbour) Render(w *strings.Builder, ctx *RenderContext) {
	label := "<neighbour> Ø"
	if n.ID != "" {
		label = "<neighbour> " + n.ID
	}
	w.WriteString(label + ":")
	ctx.depth++
	ctx.line(w)
	w.WriteString("\\-  ")
	n.Coordinate.Render(w, ctx)
	ctx.depth--
}

// ============ COORDINATE ============

// Coordinate is a vector of Integer literals, one per dimension of the
// enclosing Neighbourhood.
type Coordinate struct {
	Components []*Integer
	Pos        token.Position
}

func (c *Coordinate) Render(w *strings.Builder, ctx *RenderContext) {
	w.WriteString("<coordinate>")
	if len(c.Components) == 0 {
		return
	}
	w.WriteByte(':')
	indent := ctx.startIndent()
	ctx.depth++
	last := len(c.Components) - 1
	for i := 0; i < last; i++ {
		ctx.line(w)
		w.WriteString("|-  ")
		c.Components[i].Render(w, ctx)
	}
	ctx.endIndent(indent)
	ctx.line(w)
	w.WriteString("\\-  ")
	c.Components[last].Render(w, ctx)
	ctx.depth--
}

// ============ MODEL ============

// Model binds an ordered sequence of States to a Neighbourhood.
type Model struct {
	ID              string
	NeighbourhoodID string
	States          *Series[*State]
	Pos             token.Position
}

func (m *Model) Render(w *strings.Builder, ctx *RenderContext) {
	w.WriteString(fmt.Sprintf("<model> %s ~ %s:", m.ID, m.NeighbourhoodID))
	ctx.depth++
	ctx.line(w)
	w.WriteString("\\-  ")
	m.States.Render(w, ctx)
	ctx.depth--
}

// ============ STATE ============

// State is one cell state: an id, a glyph, and either a predicate or
// the "default" marker.
type State struct {
	ID        string
	Character byte
	IsDefault bool
	Predicate Node // nil when IsDefault, or when the predicate body is empty
	Pos       token.Position
}

func (s *State) Render(w *strings.Builder, ctx *RenderContext) {
	if s.IsDefault {
		w.WriteString(fmt.Sprintf("<state> %s %c ~ default", s.ID, s.Character))
		return
	}
	w.WriteString(fmt.Sprintf("<state> %s %c:", s.ID, s.Character))
	ctx.depth++
	ctx.line(w)
	w.WriteString("\\-  ")
	if s.Predicate == nil {
		w.WriteString("<empty>")
	} else {
		s.Predicate.Render(w, ctx)
	}
	ctx.depth--
}

// ============ BINARY EXPRESSION ============

// BinaryOp names a Binary node's operation.
type BinaryOp string

const (
	OpAnd BinaryOp = "AND"
	OpOr  BinaryOp = "OR"
	OpXor BinaryOp = "XOR"
	OpEq  BinaryOp = "EQ"
	OpNe  BinaryOp = "NE"
	OpLe  BinaryOp = "LE"
	OpLt  BinaryOp = "LT"
	OpGe  BinaryOp = "GE"
	OpGt  BinaryOp = "GT"
	OpAdd BinaryOp = "ADD"
	OpSub BinaryOp = "SUB"
	OpMul BinaryOp = "MUL"
	OpDiv BinaryOp = "DIV"
	OpMod BinaryOp = "MOD"
)

// Binary is a two-operand expression: operation kind + left + right.
type Binary struct {
	Left  Node
	Op    BinaryOp
	Right Node
}

func (b *Binary) Render(w *strings.Builder, ctx *RenderContext) {
	w.WriteString("<expression> " + string(b.Op) + ":")
	indent := ctx.startIndent()
	ctx.depth++
	ctx.line(w)
	w.WriteString("|-  ")
	b.Left.Render(w, ctx)
	ctx.endIndent(indent)
	ctx.line(w)
	w.WriteString("\\-  ")
	b.Right.Render(w, ctx)
	ctx.depth--
}

// ============ UNARY EXPRESSIONS ============

// Negation is the logical "not" unary operation.
type Negation struct {
	Value Node
}

func (n *Negation) Render(w *strings.Builder, ctx *RenderContext) {
	w.WriteString("<negation>:")
	ctx.depth++
	ctx.line(w)
	w.WriteString("\\-  ")
	n.Value.Render(w, ctx)
	ctx.depth--
}

// Negative is the arithmetic "-" unary operation.
type Negative struct {
	Value Node
}

func (n *Negative) Render(w *strings.Builder, ctx *RenderContext) {
	w.WriteString("<negative>:")
	ctx.depth++
	ctx.line(w)
	w.WriteString("\\-  ")
	n.Value.Render(w, ctx)
	ctx.depth--
}

// ============ CARDINALITY ============

// Cardinality counts how many coordinates in Coords (or, if Coords is
// nil, every neighbour of the enclosing neighbourhood) satisfy
// Predicate once Variable is bound to their offset.
type Cardinality struct {
	Variable  string
	Coords    *Series[*Coordinate] // nil means "all"
	Predicate Node
}

func (c *Cardinality) Render(w *strings.Builder, ctx *RenderContext) {
	w.WriteString("<cardinality> " + c.Variable + ":")
	indent := ctx.startIndent()
	ctx.depth++
	ctx.line(w)
	w.WriteString("|-  ")
	if c.Coords == nil {
		w.WriteString("<all>")
	} else {
		c.Coords.Render(w, ctx)
	}
	ctx.endIndent(indent)
	ctx.line(w)
	w.WriteString("\\-  ")
	c.Predicate.Render(w, ctx)
	ctx.depth--
}

// ============ TERMINALS ============

// Integer is an integer literal terminal.
type Integer struct {
	Value int
}

func (i *Integer) Render(w *strings.Builder, ctx *RenderContext) {
	w.WriteString("<integer> " + strconv.Itoa(i.Value))
}

// Decimal is a decimal literal terminal.
type Decimal struct {
	Value float64
	Text  string // original lexeme, preserved for exact codegen text
}

func (d *Decimal) Render(w *strings.Builder, ctx *RenderContext) {
	w.WriteString("<decimal> " + d.Text)
}

// Identifier is a name terminal: the keyword "this", a neighbour id, a
// state id, or a cardinality-bound variable, resolved during codegen.
type Identifier struct {
	Name string
	Pos  token.Position
}

func (i *Identifier) Render(w *strings.Builder, ctx *RenderContext) {
	w.WriteString("<identifier> " + i.Name)
}

// CharLiteral is a bare character literal used directly inside a
// predicate (e.g. comparing a neighbour's value against 'X' without
// naming the state that glyph belongs to).
type CharLiteral struct {
	Value byte
}

func (c *CharLiteral) Render(w *strings.Builder, ctx *RenderContext) {
	w.WriteString(fmt.Sprintf("<char> '%c'", c.Value))
}
