package cdt

import (
	"fmt"

	"github.com/latticecdt/cdt/types"
)

// conflictRegion is a maximal run of edge-crossings between two vertices
// already present in the triangulation (the region's start and end).
type conflictRegion struct {
	from, to types.VertexID
	crosses  [][2]types.VertexID // endpoints of each crossed edge, at detection time
}

// partitionConflictRegions walks the raw intersection sequence from start
// to end and splits it at every vertex intersection, the way spec.md's
// conflict-region definition does: a region is a run of EdgeIntersections
// terminated by a VertexIntersection, plus a degenerate zero-edge region
// for each EdgeOverlap.
func (c *CDT) partitionConflictRegions(start, end types.VertexID, items []intersection) ([]conflictRegion, error) {
	store := c.Store()
	var regions []conflictRegion
	cur := start
	var pending [][2]types.VertexID

	for _, it := range items {
		switch it.kind {
		case intersectEdgeCross:
			u, v := store.Origin(it.edge), store.Destination(it.edge)
			if c.isConstrained(u, v) {
				return nil, fmt.Errorf("cdt: constraint %d-%d crosses existing constraint %d-%d", start, end, u, v)
			}
			pending = append(pending, [2]types.VertexID{u, v})
		case intersectVertex:
			regions = append(regions, conflictRegion{from: cur, to: it.vertex, crosses: pending})
			cur = it.vertex
			pending = nil
		case intersectEdgeOverlap:
			u, v := store.Origin(it.edge), store.Destination(it.edge)
			regions = append(regions, conflictRegion{from: u, to: v})
		}
	}
	if len(pending) > 0 {
		regions = append(regions, conflictRegion{from: cur, to: end, crosses: pending})
	} else if cur != end {
		regions = append(regions, conflictRegion{from: cur, to: end})
	}
	return regions, nil
}

// applyConflictRegion forces region.from -> region.to to become a direct
// edge by repeatedly flipping crossing diagonals (re-checked against the
// segment each pass, since a flip can remove or replace neighboring
// crossings) until it exists, then marks it constrained and legalizes the
// disturbed strip. This converges to the same end state spec.md's
// strictly left-to-right rotate pass does - an edge from `from` to `to`
// with the strip re-legalized, never a deleted-and-rebuilt hole - without
// depending on half-edge handles that a neighboring flip in the same pass
// could invalidate.
func (c *CDT) applyConflictRegion(region conflictRegion) error {
	store := c.Store()
	if _, ok := store.FindHalfEdge(region.from, region.to); !ok {
		if _, rev := store.FindHalfEdge(region.to, region.from); rev {
			// A hull edge has only the half-edge running the other way.
			region.from, region.to = region.to, region.from
		}
	}
	if _, ok := store.FindHalfEdge(region.from, region.to); ok {
		c.markAndLegalize(region.from, region.to)
		return nil
	}

	maxFlips := len(region.crosses)*4 + 8
	flips := 0
	for flips < maxFlips {
		if _, ok := store.FindHalfEdge(region.from, region.to); ok {
			break
		}
		flippedAny := false
		for _, pair := range region.crosses {
			h, ok := store.FindHalfEdge(pair[0], pair[1])
			if !ok {
				continue
			}
			if !store.Twin(h).IsValid() {
				continue
			}
			if c.isConstrained(pair[0], pair[1]) {
				return fmt.Errorf("cdt: constraint %d-%d crosses existing constraint %d-%d", region.from, region.to, pair[0], pair[1])
			}
			if !crosses(store.Point(region.from), store.Point(region.to), store.Point(pair[0]), store.Point(pair[1])) {
				continue
			}
			store.FlipCW(h)
			flippedAny = true
			flips++
		}
		if !flippedAny {
			break
		}
	}

	if _, ok := store.FindHalfEdge(region.from, region.to); !ok {
		return fmt.Errorf("cdt: failed to force edge %d-%d into the triangulation", region.from, region.to)
	}
	c.markAndLegalize(region.from, region.to)
	return nil
}

func (c *CDT) markAndLegalize(from, to types.VertexID) {
	c.markConstraint(from, to)
	h, ok := c.Store().FindHalfEdge(from, to)
	if !ok {
		return
	}
	seeds := c.strandedEdges(h)
	c.LegalizeAround(seeds)
}

// strandedEdges returns the edges bordering h's two incident faces other
// than h itself, the candidates that may have gone illegal once h (now
// protected by its own constraint mark) stopped being flip-eligible.
func (c *CDT) strandedEdges(h types.HalfEdgeID) []types.HalfEdgeID {
	store := c.Store()
	out := []types.HalfEdgeID{store.Next(h), store.Prev(h)}
	if twin := store.Twin(h); twin.IsValid() {
		out = append(out, store.Next(twin), store.Prev(twin))
	}
	return out
}

// AddConstraint inserts a constrained edge between from and to, panicking
// if the segment would cross an edge that is already a constraint (the
// non-splitting API is documented to panic rather than silently fail, per
// spec.md's "panicking API" note on add_constraint).
func (c *CDT) AddConstraint(from, to types.VertexID) {
	if _, err := c.addConstraintRegions(from, to); err != nil {
		panic(err)
	}
}

// TryAddConstraint is the failure-atomic form: if the segment crosses an
// existing constraint, the triangulation is left unchanged and ok is
// false. On success it returns the ordered vertex path realizing the
// constraint (from, ..., to).
func (c *CDT) TryAddConstraint(from, to types.VertexID) (path []types.VertexID, ok bool) {
	items := c.intersections(from, to)
	regions, err := c.partitionConflictRegions(from, to, items)
	if err != nil {
		return nil, false
	}
	for _, r := range regions {
		if c.isConstrained(r.from, r.to) {
			continue
		}
		for _, pair := range r.crosses {
			if c.isConstrained(pair[0], pair[1]) {
				return nil, false
			}
		}
	}
	if _, err := c.addConstraintRegions(from, to); err != nil {
		return nil, false
	}
	path = append(path, from)
	for _, r := range regions {
		if r.to != path[len(path)-1] {
			path = append(path, r.to)
		}
	}
	return path, true
}

func (c *CDT) addConstraintRegions(from, to types.VertexID) ([]conflictRegion, error) {
	items := c.intersections(from, to)
	regions, err := c.partitionConflictRegions(from, to, items)
	if err != nil {
		return nil, err
	}
	for _, r := range regions {
		if err := c.applyConflictRegion(r); err != nil {
			return nil, err
		}
	}
	return regions, nil
}

// RemoveConstraint clears the constraint bit on edge (u, v), if any, and
// re-legalizes it locally. Returns whether a bit was actually cleared.
func (c *CDT) RemoveConstraint(u, v types.VertexID) bool {
	if !c.unmarkConstraint(u, v) {
		return false
	}
	if h, ok := c.Store().FindHalfEdge(u, v); ok {
		c.LegalizeAround([]types.HalfEdgeID{h})
	}
	return true
}

// AddConstraintEdges inserts vertices as a polyline of constraints,
// vertices[i] to vertices[i+1] for each consecutive pair, and also
// vertices[last] to vertices[0] when closed is true.
func (c *CDT) AddConstraintEdges(vertices []types.VertexID, closed bool) {
	for i := 0; i+1 < len(vertices); i++ {
		c.AddConstraint(vertices[i], vertices[i+1])
	}
	if closed && len(vertices) > 1 {
		c.AddConstraint(vertices[len(vertices)-1], vertices[0])
	}
}

// IntersectsConstraint reports whether segment (p, q) would cross any
// existing constraint edge.
func (c *CDT) IntersectsConstraint(p, q types.VertexID) bool {
	for _, it := range c.intersections(p, q) {
		if it.kind != intersectEdgeCross {
			continue
		}
		u, v := c.Store().Origin(it.edge), c.Store().Destination(it.edge)
		if c.isConstrained(u, v) {
			return true
		}
	}
	return false
}

// CanAddConstraint reports whether (v1, v2) could be added as a
// constraint without crossing an existing one.
func (c *CDT) CanAddConstraint(v1, v2 types.VertexID) bool {
	return !c.IntersectsConstraint(v1, v2)
}
