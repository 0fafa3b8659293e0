// Package cdt layers constrained Delaunay triangulation on top of the
// plain incremental kernel in package triangulation: edges can be marked
// as constraints, which exempts them from Delaunay flips, and new
// constraints are forced into the triangulation by rotating the diagonals
// that cross them into place rather than by deleting and retriangulating
// a channel, the way the teacher's cdt/constraint.go does it with a Lawson
// flip channel - here each conflict region is resolved by flipping any
// diagonal that still crosses the new segment until the segment is an edge.
package cdt

import (
	"github.com/latticecdt/cdt/triangulation"
	"github.com/latticecdt/cdt/types"
)

// CDT wraps a triangulation kernel with constraint-edge bookkeeping. The
// embedded kernel's isIllegal check consults the constraint map through
// the LegalHook wired in New, so legalization inside the embedded
// *triangulation.Kernel never flips a constraint edge. Remove is
// overridden below so the removed vertex's constraint entries are dropped.
type CDT struct {
	*triangulation.Kernel
	constrained    map[types.Edge]bool
	numConstraints int
}

// New creates an empty constrained triangulation.
func New(opts ...triangulation.Option) *CDT {
	c := &CDT{constrained: make(map[types.Edge]bool)}
	k := triangulation.New(opts...)
	k.SetLegalHook(c.isConstrained)
	c.Kernel = k
	return c
}

func (c *CDT) isConstrained(u, v types.VertexID) bool {
	return c.constrained[types.NewEdge(u, v).Canonical()]
}

// IsConstraint reports whether the edge between u and v (if one exists)
// carries a constraint.
func (c *CDT) IsConstraint(u, v types.VertexID) bool { return c.isConstrained(u, v) }

// NumConstraints reports the number of constrained edges currently held.
func (c *CDT) NumConstraints() int { return c.numConstraints }

// Constraints returns every constrained edge currently held, in canonical
// (lower-id-first) form. Used by package mesh to snapshot constraint edges
// alongside the triangulation for rendering/export.
func (c *CDT) Constraints() []types.Edge {
	out := make([]types.Edge, 0, len(c.constrained))
	for e := range c.constrained {
		out = append(out, e)
	}
	return out
}

func (c *CDT) markConstraint(u, v types.VertexID) {
	e := types.NewEdge(u, v).Canonical()
	if !c.constrained[e] {
		c.numConstraints++
	}
	c.constrained[e] = true
}

func (c *CDT) unmarkConstraint(u, v types.VertexID) bool {
	e := types.NewEdge(u, v).Canonical()
	if !c.constrained[e] {
		return false
	}
	delete(c.constrained, e)
	c.numConstraints--
	return true
}

// Remove deletes vertex v, first clearing the constraint bit on every
// edge incident to it so num_constraints keeps tracking exactly the set
// of surviving constrained edges - those edges cease to exist once v is
// gone, so their constraint bits must not linger in the bookkeeping map.
func (c *CDT) Remove(v types.VertexID) error {
	for e := range c.constrained {
		if e.V1() == v || e.V2() == v {
			delete(c.constrained, e)
			c.numConstraints--
		}
	}
	return c.Kernel.Remove(v)
}
