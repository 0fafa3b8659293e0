package triangulation

import "github.com/latticecdt/cdt/types"

// LegalizeAround is the exported form of legalizeAround, used by package
// cdt after a constraint insertion rotates diagonals into place and needs
// to restore the Delaunay property around the affected strip without
// touching edges the constraint hook marks as constrained.
func (k *Kernel) LegalizeAround(seeds []types.HalfEdgeID) { k.legalizeAround(seeds) }

// legalizeAround repeatedly flips illegal edges reachable from the seed
// half-edges, in the BFS-with-dedup style of the teacher's
// LegalizeAround: each flip produces up to four new candidate edges (the
// two edges of each new triangle that weren't the flipped diagonal),
// which are pushed onto the queue in turn.
func (k *Kernel) legalizeAround(seeds []types.HalfEdgeID) {
	type edgeKey struct{ u, v types.VertexID }
	queue := append([]types.HalfEdgeID(nil), seeds...)
	queued := make(map[edgeKey]bool, len(seeds)*2)

	key := func(h types.HalfEdgeID) edgeKey {
		u, v := k.store.Origin(h), k.store.Destination(h)
		if u > v {
			u, v = v, u
		}
		return edgeKey{u, v}
	}
	for _, h := range seeds {
		queued[key(h)] = true
	}

	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		k2 := key(h)
		delete(queued, k2)

		if !k.edgeStillPresent(h, k2) {
			continue
		}
		if !k.isIllegal(h) {
			continue
		}

		newDiag := k.store.FlipCW(h)
		k.hint.NotifyVertexInserted(k.store.Origin(newDiag), newDiag)

		for _, candidate := range k.candidatesAfterFlip(newDiag) {
			ck := key(candidate)
			if !queued[ck] {
				queued[ck] = true
				queue = append(queue, candidate)
			}
		}
	}
}

// edgeStillPresent guards against acting on a queued edge that a prior
// flip in this same pass already replaced.
func (k *Kernel) edgeStillPresent(h types.HalfEdgeID, want struct{ u, v types.VertexID }) bool {
	if !h.IsValid() || !k.store.Face(h).IsValid() {
		return false
	}
	u, v := k.store.Origin(h), k.store.Destination(h)
	if u > v {
		u, v = v, u
	}
	return u == want.u && v == want.v
}

// candidatesAfterFlip returns the four non-diagonal edges of the two
// triangles newly created by a flip whose diagonal is newDiag.
func (k *Kernel) candidatesAfterFlip(newDiag types.HalfEdgeID) []types.HalfEdgeID {
	twin := k.store.Twin(newDiag)
	out := []types.HalfEdgeID{k.store.Next(newDiag), k.store.Prev(newDiag)}
	if twin.IsValid() {
		out = append(out, k.store.Next(twin), k.store.Prev(twin))
	}
	return out
}
