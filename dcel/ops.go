package dcel

import (
	assert "github.com/arl/assertgo"

	"github.com/latticecdt/cdt/types"
)

// AddVertex allocates a new, isolated vertex at p and returns its handle.
// Reuses a freed slot from a prior RemoveVertex call when one is available,
// mirroring the arena free-list idiom used for half-edges and faces.
func (s *Store) AddVertex(p types.Point) types.VertexID {
	if n := len(s.freeVertices); n > 0 {
		v := s.freeVertices[n-1]
		s.freeVertices = s.freeVertices[:n-1]
		s.vertices[v] = vertexRecord{point: p, outgoing: types.NilHalfEdge}
		return v
	}
	s.vertices = append(s.vertices, vertexRecord{point: p, outgoing: types.NilHalfEdge})
	return types.VertexID(len(s.vertices) - 1)
}

func (s *Store) allocHalfEdge(origin types.VertexID) types.HalfEdgeID {
	rec := halfEdgeRecord{origin: origin, twin: types.NilHalfEdge, next: types.NilHalfEdge, prev: types.NilHalfEdge, face: types.NilFace}
	if n := len(s.freeHalfEdges); n > 0 {
		h := s.freeHalfEdges[n-1]
		s.freeHalfEdges = s.freeHalfEdges[:n-1]
		s.halfEdges[h] = rec
		return h
	}
	s.halfEdges = append(s.halfEdges, rec)
	return types.HalfEdgeID(len(s.halfEdges) - 1)
}

func (s *Store) allocFace(edge types.HalfEdgeID) types.FaceID {
	rec := faceRecord{edge: edge}
	if n := len(s.freeFaces); n > 0 {
		f := s.freeFaces[n-1]
		s.freeFaces = s.freeFaces[:n-1]
		s.faces[f] = rec
		return f
	}
	s.faces = append(s.faces, rec)
	return types.FaceID(len(s.faces) - 1)
}

func (s *Store) freeHalfEdge(h types.HalfEdgeID) {
	s.halfEdges[h] = halfEdgeRecord{removed: true}
	s.freeHalfEdges = append(s.freeHalfEdges, h)
}

func (s *Store) freeFace(f types.FaceID) {
	s.faces[f] = faceRecord{removed: true}
	s.freeFaces = append(s.freeFaces, f)
}

// AddFace creates a new triangular face with CCW vertices a, b, c. Any of
// the three edges that already has a matching half-edge running the other
// way (an existing boundary edge of a neighboring face) is automatically
// twinned with the new one. This single primitive backs triangle
// bootstrap, point-insertion splits, edge flips, and hole refill alike.
func (s *Store) AddFace(a, b, c types.VertexID) types.FaceID {
	ha := s.allocHalfEdge(a)
	hb := s.allocHalfEdge(b)
	hc := s.allocHalfEdge(c)

	s.halfEdges[ha].next, s.halfEdges[ha].prev = hb, hc
	s.halfEdges[hb].next, s.halfEdges[hb].prev = hc, ha
	s.halfEdges[hc].next, s.halfEdges[hc].prev = ha, hb

	f := s.allocFace(ha)
	s.halfEdges[ha].face = f
	s.halfEdges[hb].face = f
	s.halfEdges[hc].face = f

	s.linkTwinIfPresent(ha, b)
	s.linkTwinIfPresent(hb, c)
	s.linkTwinIfPresent(hc, a)

	s.ensureOutgoing(a, ha)
	s.ensureOutgoing(b, hb)
	s.ensureOutgoing(c, hc)

	return f
}

// linkTwinIfPresent searches for a pre-existing boundary half-edge running
// from dest(h) to origin(h) and, if found, twins the two together.
func (s *Store) linkTwinIfPresent(h types.HalfEdgeID, dest types.VertexID) {
	origin := s.halfEdges[h].origin
	other := s.firstBoundaryHalfEdgeBetween(dest, origin)
	if !other.IsValid() {
		return
	}
	s.halfEdges[h].twin = other
	s.halfEdges[other].twin = h
}

// firstBoundaryHalfEdgeBetween finds a boundary (twin-less) half-edge from
// u to v, scanning u's outgoing fan. Used only while building faces, so a
// short fan walk is cheap relative to the triangle-soup alternative. While
// faces are being replaced, u's fan can be split into pieces the walk from
// its outgoing half-edge does not reach, so a miss falls back to a scan of
// the whole half-edge arena.
func (s *Store) firstBoundaryHalfEdgeBetween(u, v types.VertexID) types.HalfEdgeID {
	start := s.vertices[u].outgoing
	if !start.IsValid() {
		return types.NilHalfEdge
	}
	h := start
	for {
		if s.halfEdges[h].origin == u && !s.halfEdges[h].twin.IsValid() && s.Destination(h) == v {
			return h
		}
		next := s.RotateCCW(h)
		if !next.IsValid() || next == start {
			break
		}
		h = next
	}
	h = start
	for {
		prevStep := s.RotateCW(h)
		if !prevStep.IsValid() {
			break
		}
		h = prevStep
		if s.halfEdges[h].origin == u && !s.halfEdges[h].twin.IsValid() && s.Destination(h) == v {
			return h
		}
		if h == start {
			break
		}
	}
	for i, he := range s.halfEdges {
		if !he.removed && he.origin == u && !he.twin.IsValid() && he.next.IsValid() && s.Destination(types.HalfEdgeID(i)) == v {
			return types.HalfEdgeID(i)
		}
	}
	return types.NilHalfEdge
}

func (s *Store) ensureOutgoing(v types.VertexID, h types.HalfEdgeID) {
	if !s.vertices[v].outgoing.IsValid() {
		s.vertices[v].outgoing = h
	}
}

// removeFace tears down face f, freeing its three half-edges. Any twin on
// the far side is unlinked (becomes a new boundary edge); any incident
// vertex whose recorded outgoing half-edge was one of the three freed is
// repointed to a still-live alternative, or NilHalfEdge if none remains.
func (s *Store) removeFace(f types.FaceID) {
	hs := s.FaceHalfEdges(f)
	verts := [3]types.VertexID{s.halfEdges[hs[0]].origin, s.halfEdges[hs[1]].origin, s.halfEdges[hs[2]].origin}

	for _, h := range hs {
		if t := s.halfEdges[h].twin; t.IsValid() {
			s.halfEdges[t].twin = types.NilHalfEdge
		}
	}
	for _, h := range hs {
		s.freeHalfEdge(h)
	}
	s.freeFace(f)

	for _, v := range verts {
		s.repairOutgoing(v)
	}
}

// repairOutgoing ensures vertices[v].outgoing names a live half-edge,
// searching the full arena as a fallback when the cheap fan walk from the
// recorded slot no longer works (its record may have just been freed).
func (s *Store) repairOutgoing(v types.VertexID) {
	cur := s.vertices[v].outgoing
	if cur.IsValid() && !s.halfEdges[cur].removed && s.halfEdges[cur].origin == v {
		return
	}
	for i, he := range s.halfEdges {
		if !he.removed && he.origin == v {
			s.vertices[v].outgoing = types.HalfEdgeID(i)
			return
		}
	}
	s.vertices[v].outgoing = types.NilHalfEdge
}

// SplitFaceAtPoint replaces face f, with CCW vertices (a,b,c), by three
// faces (a,b,v), (b,c,v), (c,a,v) meeting at v. v must not already be one
// of a, b, c.
func (s *Store) SplitFaceAtPoint(f types.FaceID, v types.VertexID) [3]types.FaceID {
	verts := s.FaceVertices(f)
	a, b, c := verts[0], verts[1], verts[2]
	assert.True(v != a && v != b && v != c, "dcel: split point coincides with face vertex")

	s.removeFace(f)

	return [3]types.FaceID{
		s.AddFace(a, b, v),
		s.AddFace(b, c, v),
		s.AddFace(c, a, v),
	}
}

// SplitEdge inserts vertex v in the interior of half-edge h, which must not
// lie on the hull boundary: both h and its twin bound real triangles. The
// two incident faces are each replaced by two, giving four total, all
// meeting at v.
func (s *Store) SplitEdge(h types.HalfEdgeID, v types.VertexID) [4]types.FaceID {
	twin := s.Twin(h)
	assert.True(twin.IsValid(), "dcel: SplitEdge requires an interior edge; use SplitBoundaryEdge")

	faceHE := s.FaceHalfEdges(s.Face(h))
	twinFaceHE := s.FaceHalfEdges(s.Face(twin))

	apex1 := s.thirdVertex(faceHE, h)
	apex2 := s.thirdVertex(twinFaceHE, twin)
	p1 := s.Origin(h)
	p2 := s.Origin(twin)

	s.removeFace(s.Face(h))
	s.removeFace(s.Face(twin))

	return [4]types.FaceID{
		s.AddFace(p1, v, apex1),
		s.AddFace(v, p2, apex1),
		s.AddFace(p2, v, apex2),
		s.AddFace(v, p1, apex2),
	}
}

// SplitBoundaryEdge inserts vertex v in the interior of hull boundary
// half-edge h (no twin). The single incident face is replaced by two.
func (s *Store) SplitBoundaryEdge(h types.HalfEdgeID, v types.VertexID) [2]types.FaceID {
	assert.True(!s.Twin(h).IsValid(), "dcel: SplitBoundaryEdge requires a hull edge")

	faceHE := s.FaceHalfEdges(s.Face(h))
	apex := s.thirdVertex(faceHE, h)
	p1 := s.Origin(h)
	p2 := s.Destination(h)

	s.removeFace(s.Face(h))

	return [2]types.FaceID{
		s.AddFace(p1, v, apex),
		s.AddFace(v, p2, apex),
	}
}

func (s *Store) thirdVertex(faceHE [3]types.HalfEdgeID, h types.HalfEdgeID) types.VertexID {
	for _, fh := range faceHE {
		if fh != h && s.Origin(fh) != s.Origin(h) && s.Origin(fh) != s.Destination(h) {
			return s.Origin(fh)
		}
	}
	panic("dcel: degenerate face, no third vertex")
}

// FlipCW replaces the diagonal h/twin(h) of the quadrilateral formed by
// the two triangles on either side of h with the other diagonal, rotating
// the edge clockwise as seen from h's origin. h must be an interior edge.
// Returns the half-edge of the new diagonal, directed apex1 -> apex2.
func (s *Store) FlipCW(h types.HalfEdgeID) types.HalfEdgeID {
	twin := s.Twin(h)
	assert.True(twin.IsValid(), "dcel: FlipCW requires an interior edge")

	p1 := s.Origin(h)
	p2 := s.Origin(twin)
	apex1 := s.thirdVertex(s.FaceHalfEdges(s.Face(h)), h)
	apex2 := s.thirdVertex(s.FaceHalfEdges(s.Face(twin)), twin)

	s.removeFace(s.Face(h))
	s.removeFace(s.Face(twin))

	s.AddFace(p1, apex2, apex1)
	s.AddFace(p2, apex1, apex2)

	newDiag, ok := s.FindHalfEdge(apex1, apex2)
	assert.True(ok, "dcel: flip did not produce the expected diagonal")
	return newDiag
}

// RemoveVertex deletes v and every incident face, returning the boundary
// ring of surviving vertices in clockwise order around v (the hole to be retriangulated
// by the caller) and whether the ring is open (v was on the hull).
// The caller is responsible for refilling the hole via AddFace/SplitFace-
// style calls; RemoveVertex only tears the structure down.
func (s *Store) RemoveVertex(v types.VertexID) (ring []types.VertexID, openRing bool) {
	start := s.vertices[v].outgoing
	if !start.IsValid() {
		s.vertices[v] = vertexRecord{removed: true}
		s.freeVertices = append(s.freeVertices, v)
		return nil, false
	}

	// Walk as far CCW as possible to find the fan's starting spoke, which
	// is either back to start (closed fan, interior vertex) or the hull
	// edge where the fan runs out (open fan, hull vertex).
	spoke := start
	openRing = false
	for {
		prevSpoke := s.RotateCCW(spoke)
		if !prevSpoke.IsValid() {
			openRing = true
			break
		}
		spoke = prevSpoke
		if spoke == start {
			break
		}
	}

	var faces []types.FaceID
	h := spoke
	for {
		f := s.Face(h)
		if f.IsValid() {
			faces = append(faces, f)
			ring = append(ring, s.Destination(h))
		}
		next := s.RotateCW(h)
		if !next.IsValid() {
			break
		}
		h = next
		if h == spoke {
			break
		}
	}
	if openRing {
		// The far vertex of the first spoke's face has no spoke from v of
		// its own; it leads the ring.
		ring = append([]types.VertexID{s.Origin(s.Prev(spoke))}, ring...)
	}

	for _, f := range dedupFaces(faces) {
		s.removeFaceKeepingVertex(f, v)
	}

	s.vertices[v] = vertexRecord{removed: true}
	s.freeVertices = append(s.freeVertices, v)

	return ring, openRing
}

func dedupFaces(faces []types.FaceID) []types.FaceID {
	seen := make(map[types.FaceID]bool, len(faces))
	out := faces[:0]
	for _, f := range faces {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// removeFaceKeepingVertex tears down f without trying to repair v's own
// outgoing pointer (v is about to be freed outright).
func (s *Store) removeFaceKeepingVertex(f types.FaceID, v types.VertexID) {
	hs := s.FaceHalfEdges(f)
	origins := [3]types.VertexID{s.halfEdges[hs[0]].origin, s.halfEdges[hs[1]].origin, s.halfEdges[hs[2]].origin}

	for _, h := range hs {
		if t := s.halfEdges[h].twin; t.IsValid() {
			s.halfEdges[t].twin = types.NilHalfEdge
		}
	}
	for _, h := range hs {
		s.freeHalfEdge(h)
	}
	s.freeFace(f)
	for _, origin := range origins {
		if origin != v {
			s.repairOutgoing(origin)
		}
	}
}
