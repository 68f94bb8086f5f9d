// Package parser turns a token stream into an Emergent AST via
// recursive descent, one token of lookahead and one slot of pushback.
package parser

import (
	"strconv"

	"emergent/internal/compiler/ast"
	"emergent/internal/compiler/cerrors"
	"emergent/internal/compiler/lexer"
	"emergent/internal/compiler/token"
)

// Parser consumes a *lexer.Lexer and produces an *ast.Program, or
// records the first error it hits and stops.
type Parser struct {
	lex    *lexer.Lexer
	tok    token.Token
	peeked *token.Token
	errors *cerrors.List
}

// New returns a Parser reading from lex.
func New(lex *lexer.Lexer) *Parser {
	return &Parser{lex: lex, errors: cerrors.NewList()}
}

// Errors returns the error list accumulated during parsing.
func (p *Parser) Errors() *cerrors.List {
	return p.errors
}

func (p *Parser) next() {
	if p.peeked != nil {
		p.tok = *p.peeked
		p.peeked = nil
		return
	}
	p.tok = p.lex.NextToken()
}

// pushBack restores p.tok to prev, remembering the token that was
// current so the following next() call replays it. One slot is always
// enough: BinaryParsing and SeriesParsing never look ahead more than
// one token past the point they decide to backtrack from.
func (p *Parser) pushBack(prev token.Token) {
	saved := p.tok
	p.peeked = &saved
	p.tok = prev
}

func (p *Parser) errorf(caller, expected string) {
	p.errors.AddParser(caller, expected, p.tok)
}

func inSet(t token.Type, set []token.Type) bool {
	for _, s := range set {
		if s == t {
			return true
		}
	}
	return false
}

// BinaryParsing implements the left-associative "operand (op operand)*"
// shape shared by every predicate precedence level: parse one operand,
// then, while the lookahead is an operator of this level, consume it and
// a further operand and fold both into a Binary on the left; finally
// push the lookahead back and return the folded expression.
func BinaryParsing(
	p *Parser,
	parseOperand func() (ast.Node, bool),
	firstSet []token.Type,
	followSet []token.Type,
	caller, expected string,
	opOf func(token.Type) ast.BinaryOp,
) (ast.Node, bool) {
	left, ok := parseOperand()
	if !ok {
		return nil, false
	}
	saved := p.tok
	p.next()
	for inSet(p.tok.Type, firstSet) {
		op := opOf(p.tok.Type)
		p.next()
		right, ok := parseOperand()
		if !ok {
			return nil, false
		}
		left = &ast.Binary{Left: left, Op: op, Right: right}
		saved = p.tok
		p.next()
	}
	if inSet(p.tok.Type, followSet) {
		p.pushBack(saved)
		return left, true
	}
	p.errorf(caller, expected)
	return nil, false
}

// SeriesParsing repeatedly parses items of the same kind, optionally
// separated by a fixed separator token, until the lookahead no longer
// starts a new item. It is the generic form of the original's
// SeriesParsing<T>: every homogeneous list in the grammar (neighbours,
// states, coordinates, vector components) goes through this.
func SeriesParsing[T ast.Node](
	p *Parser,
	label string,
	parseItem func() (T, bool),
	firstSet []token.Type,
	followSet []token.Type,
	caller, expected string,
	separator token.Type, // token.ILLEGAL means "no separator"
) (*ast.Series[T], bool) {
	var items []T
	var saved token.Token
	for {
		item, ok := parseItem()
		if !ok {
			return nil, false
		}
		items = append(items, item)

		saved = p.tok
		p.next()
		if separator != token.ILLEGAL {
			if p.tok.Type != separator {
				break
			}
			p.next()
			saved = p.tok
		}
		if !inSet(p.tok.Type, firstSet) {
			break
		}
	}

	if inSet(p.tok.Type, followSet) {
		p.pushBack(saved)
		return &ast.Series[T]{Label: label, Items: items}, true
	}
	p.pushBack(saved)
	p.errorf(caller, expected)
	return nil, false
}

// ParseProgram is the grammar's start symbol: an unordered mixture of
// "model" and "neighbourhood" declarations, at least one of either.
func (p *Parser) ParseProgram() (*ast.Program, bool) {
	p.next()
	models := &ast.Series[*ast.Model]{Label: "<models>"}
	neighbourhoods := &ast.Series[*ast.Neighbourhood]{Label: "<neighbourhoods>"}
	for p.tok.Type == token.MODEL || p.tok.Type == token.NEIGHBOURHOOD {
		switch p.tok.Type {
		case token.MODEL:
			m, ok := p.ParseModel()
			if !ok {
				return nil, false
			}
			models.Items = append(models.Items, m)
		case token.NEIGHBOURHOOD:
			n, ok := p.ParseNeighbourhood()
			if !ok {
				return nil, false
			}
			neighbourhoods.Items = append(neighbourhoods.Items, n)
		}
		p.next()
	}
	if len(models.Items) == 0 && len(neighbourhoods.Items) == 0 {
		p.errorf("Program", "'model' or 'neighbourhood'")
		return nil, false
	}
	return &ast.Program{Models: models, Neighbourhoods: neighbourhoods}, true
}

func (p *Parser) ParseModel() (*ast.Model, bool) {
	if p.tok.Type != token.MODEL {
		p.errorf("Model", "'model'")
		return nil, false
	}
	pos := p.tok.Pos
	p.next()
	if p.tok.Type != token.IDENT {
		p.errorf("Model", "identifier")
		return nil, false
	}
	id := p.tok.Literal
	p.next()
	if p.tok.Type != token.COLON {
		p.errorf("Model", "':'")
		return nil, false
	}
	p.next()
	if p.tok.Type != token.IDENT {
		p.errorf("Model", "identifier")
		return nil, false
	}
	neighbourhoodID := p.tok.Literal
	p.next()
	if p.tok.Type != token.LBRACE {
		p.errorf("Model", "'{'")
		return nil, false
	}
	p.next()
	states, ok := p.ParseStates()
	if !ok {
		return nil, false
	}
	p.next()
	if p.tok.Type != token.RBRACE {
		p.errorf("Model", "'}'")
		return nil, false
	}
	return &ast.Model{ID: id, NeighbourhoodID: neighbourhoodID, States: states, Pos: pos}, true
}

func (p *Parser) ParseNeighbourhood() (*ast.Neighbourhood, bool) {
	if p.tok.Type != token.NEIGHBOURHOOD {
		p.errorf("Neighbourhood", "'neighbourhood'")
		return nil, false
	}
	pos := p.tok.Pos
	p.next()
	if p.tok.Type != token.IDENT {
		p.errorf("Neighbourhood", "identifier")
		return nil, false
	}
	id := p.tok.Literal
	p.next()
	if p.tok.Type != token.COLON {
		p.errorf("Neighbourhood", "':'")
		return nil, false
	}
	p.next()
	if p.tok.Type != token.NAT_LIT {
		p.errorf("Neighbourhood", "natural literal")
		return nil, false
	}
	dimensions, _ := strconv.Atoi(p.tok.Literal)
	p.next()
	if p.tok.Type != token.LBRACE {
		p.errorf("Neighbourhood", "'{'")
		return nil, false
	}
	p.next()
	neighbours, ok := p.ParseNeighbours()
	if !ok {
		return nil, false
	}
	p.next()
	if p.tok.Type != token.RBRACE {
		p.errorf("Neighbourhood", "'}'")
		return nil, false
	}
	return &ast.Neighbourhood{ID: id, Dimensions: dimensions, Neighbours: neighbours, Pos: pos}, true
}

func (p *Parser) ParseNeighbours() (*ast.Series[*ast.Neighbour], bool) {
	firstSet := []token.Type{token.IDENT, token.LBRACKET}
	followSet := []token.Type{token.RBRACE}
	return SeriesParsing(p, "<neighbours>", p.ParseNeighbour, firstSet, followSet, "Neighbours", "'}'", token.COMMA)
}

func (p *Parser) ParseNeighbour() (*ast.Neighbour, bool) {
	pos := p.tok.Pos
	var id string
	if p.tok.Type == token.IDENT {
		id = p.tok.Literal
		p.next()
	}
	coord, ok := p.ParseCoordinate()
	if !ok {
		return nil, false
	}
	return &ast.Neighbour{ID: id, Coordinate: coord, Pos: pos}, true
}

func (p *Parser) ParseStates() (*ast.Series[*ast.State], bool) {
	firstSet := []token.Type{token.DEFAULT, token.STATE}
	followSet := []token.Type{token.RBRACE}
	return SeriesParsing(p, "<states>", p.ParseState, firstSet, followSet, "States", "'}'", token.ILLEGAL)
}

func (p *Parser) ParseState() (*ast.State, bool) {
	switch p.tok.Type {
	case token.DEFAULT:
		pos := p.tok.Pos
		p.next()
		if p.tok.Type != token.STATE {
			p.errorf("State", "'state'")
			return nil, false
		}
		p.next()
		if p.tok.Type != token.IDENT {
			p.errorf("State", "identifier")
			return nil, false
		}
		id := p.tok.Literal
		p.next()
		if p.tok.Type != token.CHAR {
			p.errorf("State", "character literal")
			return nil, false
		}
		return &ast.State{ID: id, Character: p.tok.Literal[0], IsDefault: true, Pos: pos}, true
	case token.STATE:
		pos := p.tok.Pos
		p.next()
		if p.tok.Type != token.IDENT {
			p.errorf("State", "identifier")
			return nil, false
		}
		id := p.tok.Literal
		p.next()
		if p.tok.Type != token.CHAR {
			p.errorf("State", "character literal")
			return nil, false
		}
		glyph := p.tok.Literal[0]
		p.next()
		if p.tok.Type != token.LBRACE {
			p.errorf("State", "'{'")
			return nil, false
		}
		p.next()
		if p.tok.Type == token.RBRACE {
			return &ast.State{ID: id, Character: glyph, IsDefault: false, Pos: pos}, true
		}
		predicate, ok := p.ParsePredicate()
		if !ok {
			return nil, false
		}
		p.next()
		if p.tok.Type != token.RBRACE {
			p.errorf("State", "'}'")
			return nil, false
		}
		return &ast.State{ID: id, Character: glyph, Predicate: predicate, Pos: pos}, true
	}
	p.errorf("State", "'default' or 'state'")
	return nil, false
}

var opTable = map[token.Type]ast.BinaryOp{
	token.OR:  ast.OpOr,
	token.XOR: ast.OpXor,
	token.AND: ast.OpAnd,
	token.EQ:  ast.OpEq,
	token.NE:  ast.OpNe,
	token.LE:  ast.OpLe,
	token.LT:  ast.OpLt,
	token.GE:  ast.OpGe,
	token.GT:  ast.OpGt,
	token.ADD:  ast.OpAdd,
	token.SUB:  ast.OpSub,
	token.MULT: ast.OpMul,
	token.DIV:  ast.OpDiv,
	token.MOD:  ast.OpMod,
}

func opOf(t token.Type) ast.BinaryOp { return opTable[t] }

func (p *Parser) ParsePredicate() (ast.Node, bool) {
	first := []token.Type{token.OR}
	follow := []token.Type{token.RBRACE, token.PIPE, token.RPAREN}
	return BinaryParsing(p, p.ParseExDisjunction, first, follow, "Predicate", "'}', '|' or ')'", opOf)
}

func (p *Parser) ParseExDisjunction() (ast.Node, bool) {
	first := []token.Type{token.XOR}
	follow := []token.Type{token.OR, token.RBRACE, token.PIPE, token.RPAREN}
	return BinaryParsing(p, p.ParseConjunction, first, follow, "ExDisjunction", "'or', '}', '|' or ')'", opOf)
}

func (p *Parser) ParseConjunction() (ast.Node, bool) {
	first := []token.Type{token.AND}
	follow := []token.Type{token.XOR, token.OR, token.RBRACE, token.PIPE, token.RPAREN}
	return BinaryParsing(p, p.ParseEquivalence, first, follow, "Conjunction", "'xor', 'or', '}', '|' or ')'", opOf)
}

func (p *Parser) ParseEquivalence() (ast.Node, bool) {
	first := []token.Type{token.EQ, token.NE}
	follow := []token.Type{token.AND, token.XOR, token.OR, token.RBRACE, token.PIPE, token.RPAREN}
	return BinaryParsing(p, p.ParseRelation, first, follow, "Equivalence",
		"'and', 'xor', 'or', '}', '|' or ')'", opOf)
}

func (p *Parser) ParseRelation() (ast.Node, bool) {
	first := []token.Type{token.LE, token.LT, token.GE, token.GT}
	follow := []token.Type{token.EQ, token.NE, token.AND, token.XOR, token.OR, token.RBRACE, token.PIPE, token.RPAREN}
	return BinaryParsing(p, p.ParseTranslation, first, follow, "Relation",
		"'==', '!=', 'and', 'xor', 'or', '}', '|' or ')'", opOf)
}

func (p *Parser) ParseTranslation() (ast.Node, bool) {
	first := []token.Type{token.ADD, token.SUB}
	follow := []token.Type{token.LE, token.LT, token.GE, token.GT, token.EQ, token.NE,
		token.AND, token.XOR, token.OR, token.RBRACE, token.PIPE, token.RPAREN}
	return BinaryParsing(p, p.ParseScaling, first, follow, "Translation",
		"'<=', '<', '>=', '>', '==', '!=', 'and', 'xor', 'or', '}', '|' or ')'", opOf)
}

func (p *Parser) ParseScaling() (ast.Node, bool) {
	first := []token.Type{token.MULT, token.DIV, token.MOD}
	follow := []token.Type{token.ADD, token.SUB, token.LE, token.LT, token.GE, token.GT, token.EQ, token.NE,
		token.AND, token.XOR, token.OR, token.RBRACE, token.PIPE, token.RPAREN}
	return BinaryParsing(p, p.ParseElement, first, follow, "Scaling",
		"'-', '+', '<=', '<', '>=', '>', '==', '!=', 'and', 'xor', 'or', '}', '|' or ')'", opOf)
}

func (p *Parser) ParseElement() (ast.Node, bool) {
	if p.tok.Type == token.SUB || p.tok.Type == token.NOT {
		isNegative := p.tok.Type == token.SUB
		p.next()
		element, ok := p.ParseElement()
		if !ok {
			return nil, false
		}
		if isNegative {
			return &ast.Negative{Value: element}, true
		}
		return &ast.Negation{Value: element}, true
	}
	if p.tok.Type == token.LPAREN {
		p.next()
		predicate, ok := p.ParsePredicate()
		if !ok {
			return nil, false
		}
		p.next()
		if p.tok.Type != token.RPAREN {
			p.errorf("Element", "')'")
			return nil, false
		}
		return predicate, true
	}
	if p.tok.Type == token.PIPE {
		p.next()
		if p.tok.Type == token.SET {
			set, ok := p.ParseSet()
			if !ok {
				return nil, false
			}
			p.next()
			if p.tok.Type != token.PIPE {
				p.errorf("Element", "'|'")
				return nil, false
			}
			return set, true
		}
	}
	switch p.tok.Type {
	case token.LBRACKET:
		return p.ParseCoordinate()
	case token.NAT_LIT:
		v, _ := strconv.Atoi(p.tok.Literal)
		return &ast.Integer{Value: v}, true
	case token.DEC_LIT:
		v, _ := strconv.ParseFloat(p.tok.Literal, 64)
		return &ast.Decimal{Value: v, Text: p.tok.Literal}, true
	case token.CHAR:
		return &ast.CharLiteral{Value: p.tok.Literal[0]}, true
	case token.IDENT, token.THIS:
		return &ast.Identifier{Name: p.tok.Literal, Pos: p.tok.Pos}, true
	}
	p.errorf("Element", "'-', 'not', '(', '[', '|', 'this', identifier, character literal, natural literal or decimal literal")
	return nil, false
}

func (p *Parser) ParseSet() (*ast.Cardinality, bool) {
	if p.tok.Type != token.SET {
		p.errorf("Set", "'set'")
		return nil, false
	}
	p.next()
	if p.tok.Type != token.IDENT {
		p.errorf("Set", "identifier")
		return nil, false
	}
	variable := p.tok.Literal
	p.next()
	if p.tok.Type != token.IN {
		p.errorf("Set", "'in'")
		return nil, false
	}
	p.next()
	var coords *ast.Series[*ast.Coordinate]
	if p.tok.Type == token.ALL {
		coords = nil
	} else {
		c, ok := p.ParseCoordinates()
		if !ok {
			return nil, false
		}
		coords = c
	}
	p.next()
	if p.tok.Type != token.COLON {
		p.errorf("Set", "':'")
		return nil, false
	}
	p.next()
	predicate, ok := p.ParsePredicate()
	if !ok {
		return nil, false
	}
	return &ast.Cardinality{Variable: variable, Coords: coords, Predicate: predicate}, true
}

func (p *Parser) ParseCoordinate() (*ast.Coordinate, bool) {
	if p.tok.Type != token.LBRACKET {
		p.errorf("Coordinate", "'['")
		return nil, false
	}
	pos := p.tok.Pos
	p.next()
	vector, ok := p.ParseVector()
	if !ok {
		return nil, false
	}
	p.next()
	if p.tok.Type != token.RBRACKET {
		p.errorf("Coordinate", "']'")
		return nil, false
	}
	return &ast.Coordinate{Components: vector.Items, Pos: pos}, true
}

func (p *Parser) ParseInteger() (*ast.Integer, bool) {
	factor := 1
	if p.tok.Type == token.SUB {
		factor = -1
		p.next()
	}
	if p.tok.Type != token.NAT_LIT {
		p.errorf("Integer", "'-' or natural literal")
		return nil, false
	}
	v, _ := strconv.Atoi(p.tok.Literal)
	return &ast.Integer{Value: factor * v}, true
}

func (p *Parser) ParseVector() (*ast.Series[*ast.Integer], bool) {
	first := []token.Type{token.SUB, token.NAT_LIT}
	follow := []token.Type{token.RBRACKET}
	return SeriesParsing(p, "<vector>", p.ParseInteger, first, follow, "Vector", "']'", token.COMMA)
}

func (p *Parser) ParseCoordinates() (*ast.Series[*ast.Coordinate], bool) {
	first := []token.Type{token.LBRACKET}
	follow := []token.Type{token.COLON}
	return SeriesParsing(p, "<coordinates>", p.ParseCoordinate, first, follow, "Coordinates", "':'", token.COMMA)
}
