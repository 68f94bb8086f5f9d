package ast

import (
	"strings"
	"testing"
)

func TestRenderLeafNodes(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{&Integer{Value: 42}, "<integer> 42"},
		{&Integer{Value: -3}, "<integer> -3"},
		{&Decimal{Value: 0.5, Text: ".5"}, "<decimal> .5"},
		{&Identifier{Name: "this"}, "<identifier> this"},
		{&CharLiteral{Value: 'X'}, "<char> 'X'"},
	}
	for _, tt := range tests {
		got := RenderTree(tt.node)
		if got != tt.want {
			t.Errorf("RenderTree(%#v) = %q, want %q", tt.node, got, tt.want)
		}
	}
}

func TestRenderBinaryExpression(t *testing.T) {
	tree := &Binary{Left: &Integer{Value: 1}, Op: OpAdd, Right: &Integer{Value: 2}}
	want := "<expression> ADD:\n|-  <integer> 1\n\\-  <integer> 2"
	got := RenderTree(tree)
	if got != want {
		t.Fatalf("RenderTree =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderNegationAndNegative(t *testing.T) {
	neg := RenderTree(&Negation{Value: &Identifier{Name: "this"}})
	if neg != "<negation>:\n\\-  <identifier> this" {
		t.Fatalf("unexpected negation render: %q", neg)
	}
	negative := RenderTree(&Negative{Value: &Integer{Value: 1}})
	if negative != "<negative>:\n\\-  <integer> 1" {
		t.Fatalf("unexpected negative render: %q", negative)
	}
}

func TestRenderEmptySeriesIsHollowDiamond(t *testing.T) {
	series := &Series[*Integer]{Label: "<values>"}
	got := RenderTree(series)
	if got != "<values> Ø" {
		t.Fatalf("got %q, want %q", got, "<values> Ø")
	}
}

func TestRenderStateVariants(t *testing.T) {
	def := &State{ID: "off", Character: '.', IsDefault: true}
	if got := RenderTree(def); got != "<state> off . ~ default" {
		t.Fatalf("default state render: %q", got)
	}

	empty := &State{ID: "on", Character: 'X'}
	got := RenderTree(empty)
	if !strings.HasPrefix(got, "<state> on X:") || !strings.Contains(got, "<empty>") {
		t.Fatalf("empty-predicate state render: %q", got)
	}
}

// TestRenderIsDeterministic exercises tree-printing determinism directly:
// rendering the same tree twice must produce byte-identical output,
// including the pipe bookkeeping across a nested Program/Neighbourhood/
// Series structure.
func TestRenderIsDeterministic(t *testing.T) {
	program := &Program{
		Neighbourhoods: &Series[*Neighbourhood]{
			Label: "<neighbourhoods>",
			Items: []*Neighbourhood{
				{
					ID:         "bi",
					Dimensions: 1,
					Neighbours: &Series[*Neighbour]{
						Label: "<neighbours>",
						Items: []*Neighbour{
							{ID: "l", Coordinate: &Coordinate{Components: []*Integer{{Value: -1}}}},
							{ID: "r", Coordinate: &Coordinate{Components: []*Integer{{Value: 1}}}},
						},
					},
				},
			},
		},
		Models: &Series[*Model]{Label: "<models>"},
	}

	first := RenderTree(program)
	second := RenderTree(program)
	if first != second {
		t.Fatalf("render is not deterministic:\nfirst:  %q\nsecond: %q", first, second)
	}
	if !strings.Contains(first, "<neighbourhood> bi ~ 1:") {
		t.Fatalf("missing neighbourhood header in %q", first)
	}
	if !strings.Contains(first, "<neighbour> l:") || !strings.Contains(first, "<neighbour> r:") {
		t.Fatalf("missing neighbour entries in %q", first)
	}
	if !strings.Contains(first, "<models> Ø") {
		t.Fatalf("missing empty models series in %q", first)
	}
}

func TestRenderCardinalityOverAllVsExplicitCoords(t *testing.T) {
	overAll := &Cardinality{Variable: "k", Predicate: &Identifier{Name: "k"}}
	got := RenderTree(overAll)
	if !strings.Contains(got, "<all>") {
		t.Fatalf("expected <all> marker for nil Coords, got %q", got)
	}

	explicit := &Cardinality{
		Variable:  "k",
		Coords:    &Series[*Coordinate]{Label: "<coordinates>", Items: []*Coordinate{{Components: []*Integer{{Value: -1}}}}},
		Predicate: &Identifier{Name: "k"},
	}
	got = RenderTree(explicit)
	if strings.Contains(got, "<all>") {
		t.Fatalf("did not expect <all> marker when Coords is explicit, got %q", got)
	}
	if !strings.Contains(got, "<coordinates>") {
		t.Fatalf("expected explicit coordinates series, got %q", got)
	}
}
