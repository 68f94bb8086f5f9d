package ast

import (
	"fmt"
	"strconv"

	"emergent/internal/compiler/token"
)

// Codegen produces the emitted-language fragment for this node, or
// ("", false) if a semantic error was raised (already recorded on
// ctx.Errors). Every node implements this.

func (p *Program) Codegen(ctx *CodegenContext) (string, bool) {
	var neighbourhoods string
	for _, n := range p.Neighbourhoods.Items {
		if _, exists := ctx.Globals[n.ID]; exists {
			return ctx.fail("Neighbourhood", "Duplicate identifiers conflict.", n.Pos)
		}
		ctx.Globals[n.ID] = n
		ctx.Current = n
		code, ok := n.Codegen(ctx)
		ctx.Current = nil
		if !ok {
			return "", false
		}
		neighbourhoods += code
	}

	var models string
	for _, m := range p.Models.Items {
		if _, exists := ctx.Globals[m.ID]; exists {
			return ctx.fail("Model", "Duplicate identifiers conflict.", m.Pos)
		}
		ctx.Globals[m.ID] = m
		code, ok := m.Codegen(ctx)
		if !ok {
			return "", false
		}
		models += code
	}

	return preamble + neighbourhoods + models + mainPrelude(p.Models.Items) +
		mainDispatch(p.Models.Items) + mainPostlude, true
}

func (n *Neighbourhood) Codegen(ctx *CodegenContext) (string, bool) {
	if n.Dimensions != 1 && n.Dimensions != 2 {
		return ctx.fail("Neighbourhood", "Neighbourhood's dimensions must be 1 or 2.", n.Pos)
	}
	var body string
	for _, nb := range n.Neighbours.Items {
		code, ok := nb.Codegen(ctx)
		if !ok {
			return "", false
		}
		if body != "" {
			body += ", "
		}
		body += code
	}
	if n.Dimensions == 1 {
		return fmt.Sprintf("std::vector<int> %s = std::vector<int> {\n   %s\n};\n", n.ID, body), true
	}
	return fmt.Sprintf("std::vector<std::pair<int,int>> %s = std::vector<std::pair<int,int>> {\n   %s\n};\n", n.ID, body), true
}

func (n *Neighbour) Codegen(ctx *CodegenContext) (string, bool) {
	if ctx.Current == nil {
		return ctx.fail("Neighbour", "Neighbour outside neighbourhood scope.", n.Pos)
	}
	table, ok := ctx.NeighbourIDs[ctx.Current.ID]
	if !ok {
		table = make(map[string]*Coordinate)
		ctx.NeighbourIDs[ctx.Current.ID] = table
	}
	if n.ID != "" {
		if _, exists := table[n.ID]; exists {
			return ctx.fail("Neighbour", "Duplicate identifiers conflict.", n.Pos)
		}
	}
	table[n.ID] = n.Coordinate
	return n.Coordinate.codegenRestricted(ctx)
}

func (c *Coordinate) codegenRestricted(ctx *CodegenContext) (string, bool) {
	if ctx.Current.Dimensions != len(c.Components) {
		return ctx.fail("Coordinate", "Dimension don't match neighbourhood.", c.Pos)
	}
	parts := make([]string, len(c.Components))
	for i, v := range c.Components {
		code, ok := v.Codegen(ctx)
		if !ok {
			return "", false
		}
		parts[i] = code
	}
	if ctx.Current.Dimensions == 1 {
		return parts[0], true
	}
	return "{" + parts[0] + "," + parts[1] + "}", true
}

// Codegen emits a Coordinate used inside an expression: a literal
// displacement from "this", rather than the restricted literal-vector
// form a Neighbour declaration uses.
func (c *Coordinate) Codegen(ctx *CodegenContext) (string, bool) {
	restricted, ok := c.codegenRestricted(ctx)
	if !ok {
		return "", false
	}
	if ctx.Current.Dimensions == 1 {
		return fmt.Sprintf("coordinate1d(x + %s)", restricted), true
	}
	return fmt.Sprintf("coordinate2d(add_point(%s, x, y))", restricted), true
}

func (m *Model) Codegen(ctx *CodegenContext) (string, bool) {
	neighbourhood, ok := ctx.Globals[m.NeighbourhoodID].(*Neighbourhood)
	if !ok {
		return ctx.fail("Model", "Associated neighbourhood doesn't exist.", m.Pos)
	}
	ctx.Current = neighbourhood
	ctx.LocalStates = make(map[string]*State)
	defer func() {
		ctx.Current = nil
		ctx.LocalStates = make(map[string]*State)
	}()

	var defaultState *State
	for _, s := range m.States.Items {
		if _, exists := ctx.LocalStates[s.ID]; exists {
			return ctx.fail("State", "Duplicate identifiers conflict.", s.Pos)
		}
		ctx.LocalStates[s.ID] = s
		if s.IsDefault {
			if defaultState != nil {
				return ctx.fail("State", "Multiple Default States.", s.Pos)
			}
			defaultState = s
		}
	}
	if defaultState == nil {
		return ctx.fail("Model", "Model has no default state.", m.Pos)
	}

	var body string
	for _, s := range m.States.Items {
		if s.IsDefault {
			continue
		}
		code, ok := s.Codegen(ctx)
		if !ok {
			return "", false
		}
		body += code
	}
	defaultCode, ok := defaultState.Codegen(ctx)
	if !ok {
		return "", false
	}
	body += defaultCode

	return modelFunction(m.ID, neighbourhood.Dimensions, body), true
}

func (s *State) Codegen(ctx *CodegenContext) (string, bool) {
	glyph := string(s.Character)
	if s.IsDefault {
		return fmt.Sprintf("{\n              next[current] = '%s';\n           }\n", glyph), true
	}
	if s.Predicate == nil {
		return "if(false) {\n           } else ", true
	}
	code, ok := s.Predicate.Codegen(ctx)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("if(%s) {\n               next[current] = '%s';\n           } else ", code, glyph), true
}

func (b *Binary) Codegen(ctx *CodegenContext) (string, bool) {
	l, ok := b.Left.Codegen(ctx)
	if !ok {
		return "", false
	}
	r, ok := b.Right.Codegen(ctx)
	if !ok {
		return "", false
	}
	switch b.Op {
	case OpAnd:
		return "(" + l + " && " + r + ")", true
	case OpOr:
		return "(" + l + " || " + r + ")", true
	case OpXor:
		return "((" + l + " && !" + r + ") || (!" + l + " && " + r + "))", true
	case OpEq:
		return "(" + l + " == " + r + ")", true
	case OpNe:
		return "(" + l + " != " + r + ")", true
	case OpLe:
		return "(" + l + " <= " + r + ")", true
	case OpLt:
		return "(" + l + " < " + r + ")", true
	case OpGe:
		return "(" + l + " >= " + r + ")", true
	case OpGt:
		return "(" + l + " > " + r + ")", true
	case OpAdd:
		return "(" + l + " + " + r + ")", true
	case OpSub:
		return "(" + l + " - " + r + ")", true
	case OpMul:
		return "(" + l + " * " + r + ")", true
	case OpDiv:
		return "(" + l + " / " + r + ")", true
	case OpMod:
		return "(" + l + " % " + r + ")", true
	}
	return ctx.fail("Binary", "Unrecognised operation.", token.Position{})
}

func (n *Negation) Codegen(ctx *CodegenContext) (string, bool) {
	v, ok := n.Value.Codegen(ctx)
	if !ok {
		return "", false
	}
	return "!" + v, true
}

func (n *Negative) Codegen(ctx *CodegenContext) (string, bool) {
	v, ok := n.Value.Codegen(ctx)
	if !ok {
		return "", false
	}
	return "-" + v, true
}

func (c *Cardinality) Codegen(ctx *CodegenContext) (string, bool) {
	ctx.pushBoundVar(c.Variable)
	defer ctx.popBoundVar()

	varType := "int"
	dim := "1d"
	if ctx.Current.Dimensions == 2 {
		varType = "std::pair<int, int>"
		dim = "2d"
	}

	var list string
	if c.Coords == nil {
		list = ctx.Current.ID
	} else {
		var items string
		for i, coord := range c.Coords.Items {
			code, ok := coord.codegenRestricted(ctx)
			if !ok {
				return "", false
			}
			if i > 0 {
				items += ", "
			}
			items += code
		}
		list = "vec" + dim + "({" + items + "})"
	}

	condition, ok := c.Predicate.Codegen(ctx)
	if !ok {
		return "", false
	}

	return fmt.Sprintf(
		"std::count_if(%s.begin(), %s.end(), [=](%s %s) { return %s; })",
		list, list, varType, c.Variable, condition,
	), true
}

func (i *Integer) Codegen(ctx *CodegenContext) (string, bool) {
	return strconv.Itoa(i.Value), true
}

func (d *Decimal) Codegen(ctx *CodegenContext) (string, bool) {
	return d.Text, true
}

func (c *CharLiteral) Codegen(ctx *CodegenContext) (string, bool) {
	return "'" + string(c.Value) + "'", true
}

func (id *Identifier) Codegen(ctx *CodegenContext) (string, bool) {
	if id.Name == "this" {
		return "prev[current]", true
	}

	if ctx.isBound(id.Name) {
		if ctx.Current.Dimensions == 1 {
			return fmt.Sprintf("prev[coordinate1d(x + %s)]", id.Name), true
		}
		return fmt.Sprintf("prev[coordinate2d(add_point(%s, x, y))]", id.Name), true
	}
	if ctx.Current != nil {
		if coord, ok := ctx.NeighbourIDs[ctx.Current.ID][id.Name]; ok {
			return coord.Codegen(ctx)
		}
	}
	if state, ok := ctx.LocalStates[id.Name]; ok {
		return "'" + string(state.Character) + "'", true
	}

	message := "Unrecognised name"
	if suggestion := ctx.suggest(id.Name); suggestion != "" {
		message = fmt.Sprintf("Unrecognised name. Did you mean '%s'?", suggestion)
	}
	return ctx.fail("Identifier", message, id.Pos)
}
