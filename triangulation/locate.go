package triangulation

import (
	"github.com/latticecdt/cdt/predicates"
	"github.com/latticecdt/cdt/types"
)

// LocateKind classifies where a query point falls relative to the
// triangulation.
type LocateKind int

const (
	// LocateInterior means the point is strictly inside a face.
	LocateInterior LocateKind = iota
	// LocateOnEdge means the point lies on an existing edge.
	LocateOnEdge
	// LocateOnVertex means the point coincides with an existing vertex.
	LocateOnVertex
	// LocateOutside means the point lies outside the convex hull.
	LocateOutside
)

// LocateResult is the outcome of a point-location query.
type LocateResult struct {
	Kind   LocateKind
	Face   types.FaceID
	Edge   types.HalfEdgeID // valid for OnEdge (interior edge) and Outside (the hull edge p is beyond)
	Vertex types.VertexID   // valid for OnVertex
}

// Locate finds where p falls in the triangulation, starting the
// rotation walk from the kernel's current hint. This is the "hinted walk
// plus precise rotation search" described for the kernel: the hint gets
// us near the right face in O(1) expected for spatially coherent query
// sequences, and the per-face orientation tests that follow are exact.
func (k *Kernel) Locate(p types.Point) LocateResult {
	if k.store.NumFaces() == 0 {
		for _, pv := range k.pending {
			if k.closeEnough(k.store.Point(pv), p) {
				return LocateResult{Kind: LocateOnVertex, Vertex: pv}
			}
		}
		return LocateResult{Kind: LocateOutside, Edge: types.NilHalfEdge}
	}

	start := k.hint.GetHint(p)
	if !start.IsValid() || !k.validLiveHalfEdge(start) {
		start = k.anyFaceEdge()
	}

	res := k.walkFrom(start, p)
	k.hint.NotifyVertexLookup(k.hintEdgeFor(res))
	return res
}

// validLiveHalfEdge reports whether h still names a half-edge bounding a
// live face; a stale hint (its face may have been flipped away or its
// vertex removed since the hint was recorded) is not trustworthy.
func (k *Kernel) validLiveHalfEdge(h types.HalfEdgeID) bool {
	return h.IsValid() && k.store.Face(h).IsValid()
}

func (k *Kernel) hintEdgeFor(res LocateResult) types.HalfEdgeID {
	switch res.Kind {
	case LocateInterior:
		return k.store.FaceEdge(res.Face)
	case LocateOnEdge:
		return res.Edge
	case LocateOutside:
		return res.Edge
	default:
		return types.NilHalfEdge
	}
}

func (k *Kernel) anyFaceEdge() types.HalfEdgeID {
	var found types.HalfEdgeID = types.NilHalfEdge
	k.store.EachFace(func(f types.FaceID) {
		if !found.IsValid() {
			found = k.store.FaceEdge(f)
		}
	})
	return found
}

// walkFrom runs the rotation walk from start and falls back to a full
// linear scan if it can't settle on an answer within its step budget.
func (k *Kernel) walkFrom(start types.HalfEdgeID, p types.Point) LocateResult {
	if res, ok := k.rotationWalk(start, p); ok {
		return res
	}
	return k.linearScanFallback(p)
}

// rotationWalk is the vertex-pivot walk: it keeps a directed edge e0 whose
// origin is the pivot vertex V, rotates e0 around V (CCW or CW, chosen
// from which side of e0 the target falls on) until the target lies within
// the angular wedge of the triangle currently incident to e0, then either
// classifies that triangle or crosses its far edge into the next one,
// reseating the pivot at the shared apex and continuing from there. Each
// step is an O(1) RotateCCW/RotateCW/Next hop rather than a face-to-face
// visibility step, so the walk's cost tracks the angular distance rotated
// around pivots, not triangle-to-triangle hops across the mesh.
func (k *Kernel) rotationWalk(start types.HalfEdgeID, p types.Point) (LocateResult, bool) {
	e0 := start
	pivot := k.store.Origin(e0)

	maxSteps := k.store.NumFaces()*2 + 8
	seen := make(map[types.HalfEdgeID]bool, maxSteps)

	for step := 0; step < maxSteps; step++ {
		if seen[e0] {
			return LocateResult{}, false
		}
		seen[e0] = true

		pv := k.store.Point(pivot)
		if k.closeEnough(pv, p) {
			return LocateResult{Kind: LocateOnVertex, Vertex: pivot}, true
		}

		dest := k.store.Destination(e0)
		dp := k.store.Point(dest)
		if k.closeEnough(dp, p) {
			return LocateResult{Kind: LocateOnVertex, Vertex: dest}, true
		}

		side := predicates.Orient2D(pv, dp, p)

		if side == 0 {
			if onSegmentBetween(pv, dp, p) {
				if face := k.store.Face(e0); face.IsValid() {
					return LocateResult{Kind: LocateOnEdge, Face: face, Edge: e0}, true
				}
				if twin := k.store.Twin(e0); twin.IsValid() {
					if face := k.store.Face(twin); face.IsValid() {
						return LocateResult{Kind: LocateOnEdge, Face: face, Edge: twin}, true
					}
				}
				return LocateResult{Kind: LocateOutside, Edge: e0}, true
			}
			// p lies on e0's line but beyond dest or behind the pivot:
			// reset the pivot to e0.prev().from() (the triangle's third
			// vertex) and reclassify from there, per the collinear case.
			prevEdge := k.store.Prev(e0)
			newPivot := k.store.Origin(prevEdge)
			if newPivot == pivot {
				return LocateResult{}, false
			}
			next, ok := k.store.FindHalfEdge(newPivot, dest)
			if !ok {
				return LocateResult{}, false
			}
			pivot, e0 = newPivot, next
			continue
		}

		if side < 0 {
			// p is clockwise of e0: rotate the pivot's spoke CW toward it.
			cw := k.store.RotateCW(e0)
			if !cw.IsValid() {
				return LocateResult{Kind: LocateOutside, Edge: e0}, true
			}
			e0 = cw
			continue
		}

		// p is counterclockwise of e0: check whether it already falls
		// within the wedge spanned by e0 and the next spoke CCW.
		ccw := k.store.RotateCCW(e0)
		apex := k.store.Origin(k.store.Prev(e0))
		ap := k.store.Point(apex)
		if o := predicates.Orient2D(pv, ap, p); o > 0 || (o == 0 && ccw.IsValid()) {
			// Still further CCW than this spoke too; keep rotating, or, if
			// the fan ends here, p is beyond the hull edge apex->pivot.
			if !ccw.IsValid() {
				return LocateResult{Kind: LocateOutside, Edge: k.store.Prev(e0)}, true
			}
			e0 = ccw
			continue
		}

		// p falls inside the wedge (pivot, dest, apex): settle the exact
		// classification against that triangle's three edges.
		face := k.store.Face(e0)
		if !face.IsValid() {
			return LocateResult{}, false
		}
		hs := k.store.FaceHalfEdges(face)
		verts := k.store.FaceVertices(face)
		pts := [3]types.Point{k.store.Point(verts[0]), k.store.Point(verts[1]), k.store.Point(verts[2])}
		if res, ok := k.classifyWithinFace(face, hs, verts, pts, p); ok {
			return res, true
		}

		// p is beyond the triangle's far edge (dest-apex, i.e. Next(e0)):
		// cross to the triangle on the other side and reseat the pivot at
		// apex, the vertex the two triangles share on p's rotation sense.
		far := k.store.Next(e0)
		twin := k.store.Twin(far)
		if !twin.IsValid() {
			return LocateResult{Kind: LocateOutside, Edge: far}, true
		}
		pivot = apex
		e0 = twin
	}

	return LocateResult{}, false
}

// closeEnough reports whether a and b are within the kernel's merge
// tolerance of each other, the same test classifyWithinFace uses for its
// on-vertex check.
func (k *Kernel) closeEnough(a, b types.Point) bool {
	tol := k.eps.TolForPoints(a, b)
	return predicates.Dist2(a, b) <= tol*tol
}

// classifyWithinFace checks whether p lies inside, on an edge of, or on a
// vertex of the given face.
func (k *Kernel) classifyWithinFace(face types.FaceID, hs [3]types.HalfEdgeID, verts [3]types.VertexID, pts [3]types.Point, p types.Point) (LocateResult, bool) {
	tol := k.eps.TolForPoints(append(pts[:], p)...)

	for i := 0; i < 3; i++ {
		if predicates.Dist2(pts[i], p) <= tol*tol {
			return LocateResult{Kind: LocateOnVertex, Vertex: verts[i]}, true
		}
	}

	var orients [3]int
	for i := 0; i < 3; i++ {
		orients[i] = predicates.Orient2D(pts[i], pts[(i+1)%3], p)
		if orients[i] < 0 {
			return LocateResult{}, false
		}
	}

	for i := 0; i < 3; i++ {
		if orients[i] == 0 && onSegmentBetween(pts[i], pts[(i+1)%3], p) {
			return LocateResult{Kind: LocateOnEdge, Face: face, Edge: hs[i]}, true
		}
	}

	return LocateResult{Kind: LocateInterior, Face: face}, true
}

func onSegmentBetween(a, b, p types.Point) bool {
	minX, maxX := minMax(a.X, b.X)
	minY, maxY := minMax(a.Y, b.Y)
	const slack = 1e-9
	return p.X >= minX-slack && p.X <= maxX+slack && p.Y >= minY-slack && p.Y <= maxY+slack
}

func minMax(a, b float64) (float64, float64) {
	if a < b {
		return a, b
	}
	return b, a
}

// linearScanFallback is used when the rotation walk's step budget is
// exhausted (pathological input or a hint pointing somewhere stale); it
// checks every live face directly, the same safety net the teacher's
// Locator fell back on when its own maxSteps bound was hit.
func (k *Kernel) linearScanFallback(p types.Point) LocateResult {
	var result LocateResult
	found := false
	k.store.EachFace(func(f types.FaceID) {
		if found {
			return
		}
		hs := k.store.FaceHalfEdges(f)
		verts := k.store.FaceVertices(f)
		pts := [3]types.Point{k.store.Point(verts[0]), k.store.Point(verts[1]), k.store.Point(verts[2])}
		if res, ok := k.classifyWithinFace(f, hs, verts, pts, p); ok {
			result = res
			found = true
		}
	})
	if found {
		return result
	}
	return LocateResult{Kind: LocateOutside, Edge: k.anyHullEdge(p)}
}

// anyHullEdge returns a hull edge that p lies strictly beyond, or any hull
// edge if there is none.
func (k *Kernel) anyHullEdge(p types.Point) types.HalfEdgeID {
	var found, facing types.HalfEdgeID = types.NilHalfEdge, types.NilHalfEdge
	k.store.EachFace(func(f types.FaceID) {
		for _, h := range k.store.FaceHalfEdges(f) {
			if !k.store.IsBoundary(h) {
				continue
			}
			if !found.IsValid() {
				found = h
			}
			if !facing.IsValid() && predicates.Orient2D(k.store.Point(k.store.Origin(h)), k.store.Point(k.store.Destination(h)), p) < 0 {
				facing = h
			}
		}
	})
	if facing.IsValid() {
		return facing
	}
	return found
}
