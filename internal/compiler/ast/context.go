package ast

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"emergent/internal/compiler/cerrors"
	"emergent/internal/compiler/token"
)

// CodegenContext is the explicit state threaded through a depth-first
// codegen traversal, replacing the process-wide globals a naive port
// would reach for with scoped tables passed by reference. A fresh
// CodegenContext makes the generator re-entrant.
type CodegenContext struct {
	Errors *cerrors.List

	// Globals maps every top-level model/neighbourhood id to its
	// declaration, accumulated as the Program visits its children.
	Globals map[string]Node

	// Current is the neighbourhood selected before codegen of the
	// model/neighbourhood presently being generated, and cleared after.
	Current *Neighbourhood

	// NeighbourIDs is keyed by neighbourhood id, then by neighbour id,
	// holding that neighbour's coordinate for Identifier resolution.
	NeighbourIDs map[string]map[string]*Coordinate

	// LocalStates is keyed by state id within the model presently being
	// generated; cleared once that model's codegen finishes.
	LocalStates map[string]*State

	// BoundVars is the stack of cardinality-bound variable names
	// currently in scope, innermost last.
	BoundVars []string
}

// NewCodegenContext returns an empty, ready-to-use CodegenContext.
func NewCodegenContext() *CodegenContext {
	return &CodegenContext{
		Errors:       cerrors.NewList(),
		Globals:      make(map[string]Node),
		NeighbourIDs: make(map[string]map[string]*Coordinate),
		LocalStates:  make(map[string]*State),
	}
}

func (c *CodegenContext) pushBoundVar(name string) {
	c.BoundVars = append(c.BoundVars, name)
}

func (c *CodegenContext) popBoundVar() {
	c.BoundVars = c.BoundVars[:len(c.BoundVars)-1]
}

func (c *CodegenContext) isBound(name string) bool {
	for _, v := range c.BoundVars {
		if v == name {
			return true
		}
	}
	return false
}

// fail records a semantic error and returns the ("", false) pair every
// Codegen method returns on failure.
func (c *CodegenContext) fail(nodeKind, message string, pos token.Position) (string, bool) {
	c.Errors.AddSemantic(nodeKind, message, pos)
	return "", false
}

// suggest returns the closest known name to want (neighbour ids, state
// ids, bound variables and "this" in scope), or "" if none is close
// enough to be worth suggesting. This never changes whether an
// identifier resolves — it only enriches the diagnostic already raised.
func (c *CodegenContext) suggest(want string) string {
	var candidates []string
	candidates = append(candidates, "this")
	candidates = append(candidates, c.BoundVars...)
	if c.Current != nil {
		for id := range c.NeighbourIDs[c.Current.ID] {
			if id != "" {
				candidates = append(candidates, id)
			}
		}
	}
	for id := range c.LocalStates {
		candidates = append(candidates, id)
	}
	sort.Strings(candidates) // deterministic tie-breaking before ranking
	ranks := fuzzy.RankFindNormalizedFold(want, candidates)
	sort.Sort(ranks)
	if len(ranks) == 0 {
		return ""
	}
	return ranks[0].Target
}
