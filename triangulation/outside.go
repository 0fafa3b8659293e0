package triangulation

import (
	"github.com/latticecdt/cdt/hull"
	"github.com/latticecdt/cdt/predicates"
	"github.com/latticecdt/cdt/types"
)

// addFaceCCW creates a face from a, b, c, reordering b and c if needed so
// the stored winding is counter-clockwise, the way the teacher's
// addTriCCW helper in cdt/insert_point.go fixed winding before calling
// AddTri.
func (k *Kernel) addFaceCCW(a, b, c types.VertexID) types.FaceID {
	pa, pb, pc := k.store.Point(a), k.store.Point(b), k.store.Point(c)
	if predicates.Orient2D(pa, pb, pc) < 0 {
		b, c = c, b
	}
	return k.store.AddFace(a, b, c)
}

// insertOutsideHull fans new triangles from v to the full chain of hull
// edges visible from p, then updates the hull ring so v replaces that
// chain's interior vertices as the new boundary.
func (k *Kernel) insertOutsideHull(v types.VertexID, p types.Point, visibleEdge types.HalfEdgeID) {
	origin := k.store.Origin(visibleEdge)
	dest := k.store.Destination(visibleEdge)

	nodeU, ok := k.hull.FindNode(origin)
	if !ok {
		// Hull bookkeeping lost sync with the DCEL; resynchronize by
		// rebuilding from the store's boundary edges is out of scope for
		// a single insertion, so fall back to treating this edge alone as
		// the visible chain.
		face := k.addFaceCCW(origin, dest, v)
		k.legalizeAround(allFaceEdges(k.store.FaceHalfEdges(face)))
		return
	}
	nodeW, ok := k.hull.FindNode(dest)
	if !ok || k.hull.Next(nodeU) != nodeW {
		nodeW = k.hull.Next(nodeU)
		dest = k.hull.Vertex(nodeW)
	}

	// Expand the visible chain forward (CCW, via Next) past nodeW.
	for {
		next := k.hull.Next(nodeW)
		a, b := k.hull.Vertex(nodeW), k.hull.Vertex(next)
		if predicates.Orient2D(k.store.Point(a), k.store.Point(b), p) >= 0 {
			break
		}
		nodeW = next
		if nodeW == nodeU {
			break
		}
	}
	// Expand backward (CW, via Prev) past nodeU.
	for {
		prev := k.hull.Prev(nodeU)
		a, b := k.hull.Vertex(prev), k.hull.Vertex(nodeU)
		if predicates.Orient2D(k.store.Point(a), k.store.Point(b), p) >= 0 {
			break
		}
		nodeU = prev
		if nodeU == nodeW {
			break
		}
	}

	chain := []types.VertexID{k.hull.Vertex(nodeU)}
	n := nodeU
	var interiorNodes []hull.Node
	for n != nodeW {
		next := k.hull.Next(n)
		chain = append(chain, k.hull.Vertex(next))
		if next != nodeW {
			interiorNodes = append(interiorNodes, next)
		}
		n = next
	}

	var seeds []types.HalfEdgeID
	for i := 0; i+1 < len(chain); i++ {
		f := k.addFaceCCW(chain[i], chain[i+1], v)
		seeds = append(seeds, allFaceEdges(k.store.FaceHalfEdges(f))...)
	}

	for _, ni := range interiorNodes {
		k.hull.Remove(ni)
	}
	k.hull.InsertAfter(nodeU, v, p)

	k.hint.NotifyVertexInserted(v, seeds[0])
	k.legalizeAround(seeds)
}

func allFaceEdges(hs [3]types.HalfEdgeID) []types.HalfEdgeID {
	return []types.HalfEdgeID{hs[0], hs[1], hs[2]}
}
