package triangulation

import (
	"github.com/latticecdt/cdt/predicates"
	"github.com/latticecdt/cdt/hull"
	"github.com/latticecdt/cdt/types"
)

// Insert adds a point to the triangulation, legalizing every new edge
// afterward. If p coincides (within the kernel's epsilon) with an
// existing vertex, that vertex's ID is returned and no new vertex is
// created, per the insert-idempotence requirement on coincident
// positions. Returns a *predicates.InsertionError if p is NaN, infinite,
// or outside the configured coordinate bound.
func (k *Kernel) Insert(p types.Point) (types.VertexID, error) {
	if err := predicates.ValidateCoordinate(p.X, p.Y, k.coordLimit); err != nil {
		return types.NilVertex, err
	}

	if k.store.NumFaces() == 0 {
		return k.insertBootstrap(p), nil
	}

	loc := k.Locate(p)
	if loc.Kind == LocateOnVertex {
		return loc.Vertex, nil
	}

	v := k.store.AddVertex(p)
	k.insertAt(v, p, loc)
	return v, nil
}

func (k *Kernel) insertAt(v types.VertexID, p types.Point, loc LocateResult) {
	switch loc.Kind {
	case LocateInterior:
		faces := k.store.SplitFaceAtPoint(loc.Face, v)
		seeds := make([]types.HalfEdgeID, 0, 3)
		for _, f := range faces {
			seeds = append(seeds, k.oppositeEdge(f, v))
		}
		k.hint.NotifyVertexInserted(v, k.store.FaceEdge(faces[0]))
		k.legalizeAround(seeds)

	case LocateOnEdge:
		if k.store.IsBoundary(loc.Edge) {
			faces := k.store.SplitBoundaryEdge(loc.Edge, v)
			seeds := []types.HalfEdgeID{k.oppositeEdge(faces[0], v), k.oppositeEdge(faces[1], v)}
			k.hint.NotifyVertexInserted(v, k.store.FaceEdge(faces[0]))
			k.legalizeAround(seeds)
			k.insertHullVertexBetweenNeighbors(v, p, loc.Edge)
		} else {
			faces := k.store.SplitEdge(loc.Edge, v)
			seeds := make([]types.HalfEdgeID, 0, 4)
			for _, f := range faces {
				seeds = append(seeds, k.oppositeEdge(f, v))
			}
			k.hint.NotifyVertexInserted(v, k.store.FaceEdge(faces[0]))
			k.legalizeAround(seeds)
		}

	case LocateOutside:
		k.insertOutsideHull(v, p, loc.Edge)

	default:
		panic("triangulation: insertAt called with LocateOnVertex")
	}
}

// oppositeEdge returns the half-edge of face f that does not touch vertex
// v, i.e. the edge across from v - exactly the edge a freshly split
// triangle needs legalized.
func (k *Kernel) oppositeEdge(f types.FaceID, v types.VertexID) types.HalfEdgeID {
	for _, h := range k.store.FaceHalfEdges(f) {
		if k.store.Origin(h) != v && k.store.Destination(h) != v {
			return h
		}
	}
	panic("triangulation: face does not contain vertex after split")
}

// insertHullVertexBetweenNeighbors patches the hull index after a point
// was inserted on a hull boundary edge, replacing that one hull edge with
// two meeting at the new vertex.
func (k *Kernel) insertHullVertexBetweenNeighbors(v types.VertexID, p types.Point, oldEdge types.HalfEdgeID) {
	if k.hull == nil {
		return
	}
	origin := k.store.Origin(oldEdge)
	n := k.hull.FindPredecessorOfPoint(k.store.Point(origin))
	k.hull.InsertAfter(n, v, p)
}

func (k *Kernel) findNonCollinearTriple() (a, b, c types.VertexID, ok bool) {
	pending := k.pending
	for i := 0; i < len(pending); i++ {
		for j := i + 1; j < len(pending); j++ {
			for l := j + 1; l < len(pending); l++ {
				pa, pb, pc := k.store.Point(pending[i]), k.store.Point(pending[j]), k.store.Point(pending[l])
				if predicates.Orient2D(pa, pb, pc) != 0 {
					return pending[i], pending[j], pending[l], true
				}
			}
		}
	}
	return types.NilVertex, types.NilVertex, types.NilVertex, false
}

// insertBootstrap handles vertices added before the triangulation has its
// first face. Points accumulate in k.pending (after a coincident-point
// check against that same pending list, since no locate structure exists
// yet to check against) until three are found that are not all
// collinear, at which point the first face is created and every other
// pending point is replayed through the ordinary insertAt path.
func (k *Kernel) insertBootstrap(p types.Point) types.VertexID {
	for _, existing := range k.pending {
		if predicates.Dist2(k.store.Point(existing), p) <= k.eps.MergeDistance(p, k.store.Point(existing))*k.eps.MergeDistance(p, k.store.Point(existing)) {
			return existing
		}
	}

	v := k.store.AddVertex(p)
	k.pending = append(k.pending, v)
	if len(k.pending) < 3 {
		return v
	}

	a, b, c, ok := k.findNonCollinearTriple()
	if !ok {
		return v
	}

	pa, pb, pc := k.store.Point(a), k.store.Point(b), k.store.Point(c)
	if predicates.Orient2D(pa, pb, pc) < 0 {
		b, c = c, b
		pb, pc = pc, pb
	}
	k.store.AddFace(a, b, c)

	center := types.Point{X: (pa.X + pb.X + pc.X) / 3, Y: (pa.Y + pb.Y + pc.Y) / 3}
	k.hull = hull.New(center, 16)
	k.hull.InsertFirstThree([3]types.VertexID{a, b, c}, [3]types.Point{pa, pb, pc})
	k.hint.InitializeFromTriangulation(k.store.FaceEdge(0))

	rest := make([]types.VertexID, 0, len(k.pending))
	for _, pv := range k.pending {
		if pv == a || pv == b || pv == c {
			continue
		}
		rest = append(rest, pv)
	}
	k.pending = nil

	for _, pv := range rest {
		pp := k.store.Point(pv)
		loc := k.Locate(pp)
		if loc.Kind == LocateOnVertex {
			k.store.RemoveVertex(pv) // coincided with a, b, or c; free the orphaned duplicate
			continue
		}
		k.insertAt(pv, pp, loc)
	}

	return v
}
