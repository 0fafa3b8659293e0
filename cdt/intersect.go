package cdt

import (
	"github.com/latticecdt/cdt/predicates"
	"github.com/latticecdt/cdt/types"
)

// intersectionKind classifies one step of the line-intersection walk from
// one constraint endpoint to the other.
type intersectionKind int

const (
	// intersectVertex means the line passes exactly through a vertex.
	intersectVertex intersectionKind = iota
	// intersectEdgeCross means the line strictly crosses a directed edge.
	intersectEdgeCross
	// intersectEdgeOverlap means the line runs along an existing edge
	// between two consecutive vertex intersections.
	intersectEdgeOverlap
)

type intersection struct {
	kind   intersectionKind
	vertex types.VertexID   // set for intersectVertex
	edge   types.HalfEdgeID // set for intersectEdgeCross / intersectEdgeOverlap
}

// outgoingSpokes returns every half-edge with origin v, walking the fan
// CCW and then CW from start, the same two-direction walk
// dcel.Store.FindHalfEdge uses to tolerate a hull boundary cutting the
// fan short partway around.
func outgoingSpokes(rotateCCW, rotateCW func(types.HalfEdgeID) types.HalfEdgeID, start types.HalfEdgeID) []types.HalfEdgeID {
	if !start.IsValid() {
		return nil
	}
	var out []types.HalfEdgeID
	seen := map[types.HalfEdgeID]bool{}

	h := start
	for h.IsValid() && !seen[h] {
		out = append(out, h)
		seen[h] = true
		h = rotateCCW(h)
	}
	h = rotateCW(start)
	for h.IsValid() && !seen[h] {
		out = append(out, h)
		seen[h] = true
		h = rotateCW(h)
	}
	return out
}

// intersections walks the line from `from` to `to`, yielding the ordered
// sequence of vertex/edge intersections it passes through. It alternates
// between a vertex-centered step (fanning the spokes of the current
// vertex to find the wedge, or collinear spoke, that continues toward
// `to`) and a face-centered step (once inside a triangle, deciding which
// of its two unvisited edges the segment exits through), mirroring the
// teacher's edge/vertex classification in cdt/constraint.go but walking
// the DCEL instead of the TriSoup's neighbor arrays.
func (c *CDT) intersections(from, to types.VertexID) []intersection {
	store := c.Store()
	pt := store.Point(to)

	var out []intersection
	cur := from

	for cur != to {
		pc := store.Point(cur)
		spokes := outgoingSpokes(store.RotateCCW, store.RotateCW, store.Outgoing(cur))

		// Look for a spoke collinear with the direction toward `to`.
		overlapped := false
		for _, s := range spokes {
			dest := store.Destination(s)
			pd := store.Point(dest)
			if predicates.Orient2D(pc, pt, pd) != 0 || !sameDirection(pc, pt, pd) {
				continue
			}
			out = append(out, intersection{kind: intersectEdgeOverlap, edge: s})
			if dest != to {
				out = append(out, intersection{kind: intersectVertex, vertex: dest})
			}
			cur = dest
			overlapped = true
			break
		}
		if overlapped {
			continue
		}

		// Find the wedge of consecutive spokes bracketing the direction
		// toward `to`, and cross into the triangle between them.
		crossEdge, ok := findExitEdge(store.Destination, store.Next, store.Point, pc, pt, spokes)
		if !ok {
			return out
		}
		out = append(out, intersection{kind: intersectEdgeCross, edge: crossEdge})

		// Step across faces until the walk reaches a vertex exactly on
		// the line, or a face that `to` lies inside of.
		face := store.Twin(crossEdge)
		if !face.IsValid() {
			return out
		}
		for {
			a := store.Origin(face)
			b := store.Destination(face)
			farEdge := store.Next(face)
			third := store.Destination(farEdge)
			nearEdge := store.Next(farEdge)
			pa, pb, pThird := store.Point(a), store.Point(b), store.Point(third)

			if predicates.Orient2D(pc, pt, pThird) == 0 && sameDirection(pc, pt, pThird) {
				out = append(out, intersection{kind: intersectVertex, vertex: third})
				cur = third
				break
			}
			if crosses(pc, pt, pb, pThird) {
				twin := store.Twin(farEdge)
				if !twin.IsValid() {
					return out
				}
				out = append(out, intersection{kind: intersectEdgeCross, edge: farEdge})
				face = twin
				continue
			}
			if crosses(pc, pt, pThird, pa) {
				twin := store.Twin(nearEdge)
				if !twin.IsValid() {
					return out
				}
				out = append(out, intersection{kind: intersectEdgeCross, edge: nearEdge})
				face = twin
				continue
			}
			// Neither remaining edge is crossed: `to` lies within this face.
			return out
		}
	}
	return out
}

// sameDirection reports whether q lies ahead of p when walking toward r,
// rejecting spokes or vertices that are collinear but point the wrong way.
func sameDirection(p, r, q types.Point) bool {
	dxr, dyr := r.X-p.X, r.Y-p.Y
	dxq, dyq := q.X-p.X, q.Y-p.Y
	return dxr*dxq+dyr*dyq > 0
}

// crosses reports whether segment (p,q) properly crosses segment (a,b).
func crosses(p, q, a, b types.Point) bool {
	d1 := predicates.Orient2D(a, b, p)
	d2 := predicates.Orient2D(a, b, q)
	d3 := predicates.Orient2D(p, q, a)
	d4 := predicates.Orient2D(p, q, b)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// findExitEdge scans the triangles around pc (one per spoke) for the one
// whose two edges at pc bracket the direction toward pt, returning that
// triangle's far edge - the edge the segment exits through.
func findExitEdge(
	destination func(types.HalfEdgeID) types.VertexID,
	next func(types.HalfEdgeID) types.HalfEdgeID,
	point func(types.VertexID) types.Point,
	pc, pt types.Point,
	spokes []types.HalfEdgeID,
) (types.HalfEdgeID, bool) {
	for _, sa := range spokes {
		far := next(sa)
		pa := point(destination(sa))
		pb := point(destination(far))
		oa := predicates.Orient2D(pc, pa, pt)
		ob := predicates.Orient2D(pc, pb, pt)
		if oa > 0 && ob < 0 {
			return far, true
		}
	}
	return types.NilHalfEdge, false
}
