package cdt

import (
	"fmt"

	"github.com/latticecdt/cdt/dcel"
	"github.com/latticecdt/cdt/predicates"
	"github.com/latticecdt/cdt/triangulation"
	"github.com/latticecdt/cdt/types"
)

// AddConstraintAndSplit forces the constraint from -> to into the
// triangulation, inserting a new vertex at the computed intersection
// point wherever the segment would otherwise cross a *pre-existing*
// constraint. It streams through the line-intersection walk one
// conflicting edge at a time, restarting the walk after every split since
// the split changes which edges remain in conflict, per spec.md's
// streaming description of add_constraint_and_split.
func (c *CDT) AddConstraintAndSplit(from, to types.VertexID) error {
	cur := from
	guard := 0
	for cur != to {
		guard++
		if guard > c.NumVertices()+16 {
			return fmt.Errorf("cdt: add_constraint_and_split did not converge between %d and %d", from, to)
		}

		items := c.intersections(cur, to)
		blockedAt := -1
		for i, it := range items {
			if it.kind != intersectEdgeCross {
				continue
			}
			u, v := c.Store().Origin(it.edge), c.Store().Destination(it.edge)
			if c.isConstrained(u, v) {
				blockedAt = i
				break
			}
		}

		if blockedAt < 0 {
			// No remaining conflicts with existing constraints; the
			// ordinary rotate-into-place pass can finish the job.
			if _, err := c.addConstraintRegions(cur, to); err != nil {
				return err
			}
			return nil
		}

		blockedEdge := items[blockedAt].edge
		splitVertex, err := c.splitAtConflict(cur, to, blockedEdge)
		if err != nil {
			return err
		}
		if _, ok := c.Store().FindHalfEdge(cur, splitVertex); !ok {
			if _, err := c.addConstraintRegions(cur, splitVertex); err != nil {
				return err
			}
		} else {
			c.markAndLegalize(cur, splitVertex)
		}
		cur = splitVertex
	}
	return nil
}

// splitAtConflict computes the intersection of the blocked constrained
// edge with (cur, to), validates it, and returns the vertex that the walk
// should continue from: either a freshly inserted vertex at the (possibly
// snapped) intersection point, which takes over the blocked edge's
// constraint mark on both halves when it splits that edge, or - if that
// position is not valid - the vertex rotateConstraintOffBlockedEdge picks,
// per spec.md's split-validation policy.
func (c *CDT) splitAtConflict(cur, to types.VertexID, blockedEdge types.HalfEdgeID) (types.VertexID, error) {
	store := c.Store()
	eu, ev := store.Origin(blockedEdge), store.Destination(blockedEdge)
	pCur, pTo := store.Point(cur), store.Point(to)
	pu, pv := store.Point(eu), store.Point(ev)

	raw, ok := predicates.SegmentIntersection(pCur, pTo, pu, pv)
	if !ok {
		return c.nearestEdgeCorner(blockedEdge, pCur), nil
	}
	snapped := types.Point{X: predicates.SnapUnderflow(raw.X), Y: predicates.SnapUnderflow(raw.Y)}

	if c.validSplitPosition(blockedEdge, snapped) {
		v, err := c.Insert(snapped)
		if err != nil {
			return types.NilVertex, err
		}
		if _, still := store.FindHalfEdge(eu, ev); !still && c.unmarkConstraint(eu, ev) {
			c.markConstraint(eu, v)
			c.markConstraint(v, ev)
		}
		return v, nil
	}

	return c.rotateConstraintOffBlockedEdge(blockedEdge, snapped)
}

// validSplitPosition accepts a snapped intersection point if it locates
// onto the blocked edge itself, one of its two adjacent faces, or outside
// the hull while the blocked edge is a hull edge.
func (c *CDT) validSplitPosition(blockedEdge types.HalfEdgeID, p types.Point) bool {
	store := c.Store()
	loc := c.Locate(p)
	switch loc.Kind {
	case triangulation.LocateOnEdge:
		u, v := store.Origin(loc.Edge), store.Destination(loc.Edge)
		bu, bv := store.Origin(blockedEdge), store.Destination(blockedEdge)
		return (u == bu && v == bv) || (u == bv && v == bu)
	case triangulation.LocateInterior:
		f := store.Face(blockedEdge)
		twin := store.Twin(blockedEdge)
		if loc.Face == f {
			return true
		}
		return twin.IsValid() && loc.Face == store.Face(twin)
	case triangulation.LocateOutside:
		return !store.Twin(blockedEdge).IsValid()
	default:
		return false
	}
}

// nearestEdgeCorner returns whichever of blockedEdge's endpoints and the
// apex vertices of its adjacent faces is closest to reference.
func (c *CDT) nearestEdgeCorner(blockedEdge types.HalfEdgeID, reference types.Point) types.VertexID {
	store := c.Store()
	candidates := []types.VertexID{store.Origin(blockedEdge), store.Destination(blockedEdge)}
	if twin := store.Twin(blockedEdge); twin.IsValid() {
		candidates = append(candidates,
			thirdVertexAcross(store, blockedEdge),
			thirdVertexAcross(store, twin),
		)
	} else {
		candidates = append(candidates, thirdVertexAcross(store, blockedEdge))
	}

	best := candidates[0]
	bestDist := predicates.Dist2(store.Point(best), reference)
	for _, cand := range candidates[1:] {
		d := predicates.Dist2(store.Point(cand), reference)
		if d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best
}

// rotateConstraintOffBlockedEdge is used when the computed split position
// is not valid anywhere near the blocked edge: rather than inserting a
// vertex, the walk continues from the nearest endpoint or apex. If an apex
// is chosen, the constraint mark moves from the blocked edge onto the
// apex's edges to both endpoints; if an endpoint is chosen, the blocked
// edge keeps its mark. Legalization is then re-run around the edge from
// the chosen vertex to an endpoint.
func (c *CDT) rotateConstraintOffBlockedEdge(blockedEdge types.HalfEdgeID, reference types.Point) (types.VertexID, error) {
	store := c.Store()
	eu, ev := store.Origin(blockedEdge), store.Destination(blockedEdge)
	chosen := c.nearestEdgeCorner(blockedEdge, reference)

	c.unmarkConstraint(eu, ev)

	other := eu
	if chosen == eu {
		other = ev
	}
	if chosen != eu && chosen != ev {
		// An opposite (apex) vertex was chosen: the two edges of its
		// degenerate triangle adjacent to the new constraint take over
		// the mark instead of the edge that was split away.
		c.markConstraint(chosen, eu)
		c.markConstraint(chosen, ev)
	} else {
		c.markConstraint(chosen, other)
	}

	if h, ok := store.FindHalfEdge(chosen, other); ok {
		c.LegalizeAround(c.strandedEdges(h))
	}
	return chosen, nil
}

func thirdVertexAcross(store *dcel.Store, h types.HalfEdgeID) types.VertexID {
	faceHE := store.FaceHalfEdges(store.Face(h))
	for _, fh := range faceHE {
		if store.Origin(fh) != store.Origin(h) && store.Origin(fh) != store.Destination(h) {
			return store.Origin(fh)
		}
	}
	return types.NilVertex
}
