// Package dcel implements a doubly-connected edge list over arenas of
// vertices, half-edges, and faces, addressed by stable integer handles.
//
// Interior faces are triangles: every half-edge bounding a triangle has a
// valid Face and a next/prev cycle of length three. Half-edges on the
// convex hull boundary have no twin (Twin returns types.NilHalfEdge) but
// still bound their own triangle; there is no "outer face", and the hull
// itself is tracked separately by package hull.
package dcel

import (
	assert "github.com/arl/assertgo"

	"github.com/latticecdt/cdt/types"
)

type vertexRecord struct {
	point    types.Point
	outgoing types.HalfEdgeID
	removed  bool
}

type halfEdgeRecord struct {
	origin  types.VertexID
	twin    types.HalfEdgeID
	next    types.HalfEdgeID
	prev    types.HalfEdgeID
	face    types.FaceID
	removed bool
}

type faceRecord struct {
	edge    types.HalfEdgeID
	removed bool
}

// Store owns the vertex, half-edge, and face arenas of a triangulation.
// Freed slots are tracked in per-arena free-lists and reused by the next
// allocation, so handles are not necessarily dense or monotonically
// increasing over the lifetime of a Store.
type Store struct {
	vertices  []vertexRecord
	halfEdges []halfEdgeRecord
	faces     []faceRecord

	freeVertices  []types.VertexID
	freeHalfEdges []types.HalfEdgeID
	freeFaces     []types.FaceID
}

// New returns an empty Store with arenas pre-sized for n vertices.
func New(n int) *Store {
	if n < 0 {
		n = 0
	}
	return &Store{
		vertices:  make([]vertexRecord, 0, n),
		halfEdges: make([]halfEdgeRecord, 0, 3*n),
		faces:     make([]faceRecord, 0, 2*n),
	}
}

// NumVertices returns the number of live (non-removed) vertices.
func (s *Store) NumVertices() int {
	n := 0
	for _, v := range s.vertices {
		if !v.removed {
			n++
		}
	}
	return n
}

// NumFaces returns the number of live (non-removed) faces.
func (s *Store) NumFaces() int {
	n := 0
	for _, f := range s.faces {
		if !f.removed {
			n++
		}
	}
	return n
}

// VertexCap returns the current capacity of the vertex arena, i.e. one
// past the highest handle ever allocated. Useful for sizing parallel
// per-vertex slices.
func (s *Store) VertexCap() int { return len(s.vertices) }

// Point returns the position of vertex v.
func (s *Store) Point(v types.VertexID) types.Point {
	assert.True(v.IsValid() && int(v) < len(s.vertices), "dcel: invalid vertex handle")
	return s.vertices[v].point
}

// SetPoint overwrites the position of vertex v in place.
func (s *Store) SetPoint(v types.VertexID, p types.Point) {
	assert.True(v.IsValid() && int(v) < len(s.vertices), "dcel: invalid vertex handle")
	s.vertices[v].point = p
}

// VertexRemoved reports whether v has been freed.
func (s *Store) VertexRemoved(v types.VertexID) bool {
	if !v.IsValid() || int(v) >= len(s.vertices) {
		return true
	}
	return s.vertices[v].removed
}

// Outgoing returns one half-edge originating at v, or NilHalfEdge if v has
// no incident edges (the isolated first-vertex case).
func (s *Store) Outgoing(v types.VertexID) types.HalfEdgeID {
	assert.True(v.IsValid() && int(v) < len(s.vertices), "dcel: invalid vertex handle")
	return s.vertices[v].outgoing
}

// Origin returns the vertex a half-edge points away from.
func (s *Store) Origin(h types.HalfEdgeID) types.VertexID {
	assert.True(h.IsValid() && int(h) < len(s.halfEdges), "dcel: invalid half-edge handle")
	return s.halfEdges[h].origin
}

// Destination returns the vertex a half-edge points to.
func (s *Store) Destination(h types.HalfEdgeID) types.VertexID {
	return s.Origin(s.Next(h))
}

// Twin returns the oppositely-oriented half-edge sharing h's endpoints, or
// NilHalfEdge if h lies on the convex hull boundary.
func (s *Store) Twin(h types.HalfEdgeID) types.HalfEdgeID {
	assert.True(h.IsValid() && int(h) < len(s.halfEdges), "dcel: invalid half-edge handle")
	return s.halfEdges[h].twin
}

// Next returns the next half-edge around h's face.
func (s *Store) Next(h types.HalfEdgeID) types.HalfEdgeID {
	assert.True(h.IsValid() && int(h) < len(s.halfEdges), "dcel: invalid half-edge handle")
	return s.halfEdges[h].next
}

// Prev returns the previous half-edge around h's face.
func (s *Store) Prev(h types.HalfEdgeID) types.HalfEdgeID {
	assert.True(h.IsValid() && int(h) < len(s.halfEdges), "dcel: invalid half-edge handle")
	return s.halfEdges[h].prev
}

// Face returns the face h bounds; hull boundary half-edges bound their own
// triangle like any other half-edge.
func (s *Store) Face(h types.HalfEdgeID) types.FaceID {
	assert.True(h.IsValid() && int(h) < len(s.halfEdges), "dcel: invalid half-edge handle")
	return s.halfEdges[h].face
}

// IsBoundary reports whether h has no twin, i.e. lies on the hull.
func (s *Store) IsBoundary(h types.HalfEdgeID) bool {
	return !s.Twin(h).IsValid()
}

// FaceEdge returns one half-edge bounding face f.
func (s *Store) FaceEdge(f types.FaceID) types.HalfEdgeID {
	assert.True(f.IsValid() && int(f) < len(s.faces), "dcel: invalid face handle")
	return s.faces[f].edge
}

// FaceVertices returns the three vertices of triangular face f in CCW order.
func (s *Store) FaceVertices(f types.FaceID) [3]types.VertexID {
	h0 := s.FaceEdge(f)
	h1 := s.Next(h0)
	h2 := s.Next(h1)
	return [3]types.VertexID{s.Origin(h0), s.Origin(h1), s.Origin(h2)}
}

// FaceHalfEdges returns the three half-edges bounding face f in CCW order.
func (s *Store) FaceHalfEdges(f types.FaceID) [3]types.HalfEdgeID {
	h0 := s.FaceEdge(f)
	h1 := s.Next(h0)
	h2 := s.Next(h1)
	return [3]types.HalfEdgeID{h0, h1, h2}
}

// RotateCCW returns the next half-edge counter-clockwise around the origin
// of h, i.e. the next outgoing edge in angular order. Returns NilHalfEdge
// if that step would cross the hull boundary (h is the last spoke).
func (s *Store) RotateCCW(h types.HalfEdgeID) types.HalfEdgeID {
	prev := s.Prev(h)
	return s.Twin(prev)
}

// RotateCW returns the previous half-edge clockwise around the origin of h.
// Returns NilHalfEdge if that step would cross the hull boundary.
func (s *Store) RotateCW(h types.HalfEdgeID) types.HalfEdgeID {
	t := s.Twin(h)
	if !t.IsValid() {
		return types.NilHalfEdge
	}
	return s.Next(t)
}

// FindHalfEdge returns the half-edge from u to v, if one exists.
func (s *Store) FindHalfEdge(u, v types.VertexID) (types.HalfEdgeID, bool) {
	start := s.Outgoing(u)
	if !start.IsValid() {
		return types.NilHalfEdge, false
	}
	h := start
	for {
		if s.Destination(h) == v {
			return h, true
		}
		next := s.RotateCCW(h)
		if !next.IsValid() {
			break
		}
		h = next
		if h == start {
			break
		}
	}
	// The CCW fan may have been cut short by a hull boundary; walk CW too.
	h = start
	for {
		cw := s.RotateCW(h)
		if !cw.IsValid() {
			break
		}
		h = cw
		if s.Destination(h) == v {
			return h, true
		}
		if h == start {
			break
		}
	}
	return types.NilHalfEdge, false
}

// Compact rebuilds the arenas with no freed slots, remapping every handle.
// Returns the vertex-handle remap (old VertexID -> new VertexID, NilVertex
// for removed vertices) for callers that must translate external indices.
func (s *Store) Compact() []types.VertexID {
	vertexRemap := make([]types.VertexID, len(s.vertices))
	newVerts := make([]vertexRecord, 0, len(s.vertices))
	for old, v := range s.vertices {
		if v.removed {
			vertexRemap[old] = types.NilVertex
			continue
		}
		vertexRemap[old] = types.VertexID(len(newVerts))
		newVerts = append(newVerts, v)
	}

	heRemap := make([]types.HalfEdgeID, len(s.halfEdges))
	newHEs := make([]halfEdgeRecord, 0, len(s.halfEdges))
	for old, h := range s.halfEdges {
		if h.removed {
			heRemap[old] = types.NilHalfEdge
			continue
		}
		heRemap[old] = types.HalfEdgeID(len(newHEs))
		newHEs = append(newHEs, h)
	}

	faceRemap := make([]types.FaceID, len(s.faces))
	newFaces := make([]faceRecord, 0, len(s.faces))
	for old, f := range s.faces {
		if f.removed {
			faceRemap[old] = types.NilFace
			continue
		}
		faceRemap[old] = types.FaceID(len(newFaces))
		newFaces = append(newFaces, f)
	}

	for i := range newVerts {
		if newVerts[i].outgoing.IsValid() {
			newVerts[i].outgoing = heRemap[newVerts[i].outgoing]
		}
	}
	for i := range newHEs {
		if newHEs[i].twin.IsValid() {
			newHEs[i].twin = heRemap[newHEs[i].twin]
		}
		newHEs[i].next = heRemap[newHEs[i].next]
		newHEs[i].prev = heRemap[newHEs[i].prev]
		if newHEs[i].face.IsValid() {
			newHEs[i].face = faceRemap[newHEs[i].face]
		}
	}
	for i := range newFaces {
		newFaces[i].edge = heRemap[newFaces[i].edge]
	}

	s.vertices = newVerts
	s.halfEdges = newHEs
	s.faces = newFaces
	s.freeVertices = nil
	s.freeHalfEdges = nil
	s.freeFaces = nil

	return vertexRemap
}

// EachFace calls fn once for every live face handle.
func (s *Store) EachFace(fn func(types.FaceID)) {
	for i, f := range s.faces {
		if !f.removed {
			fn(types.FaceID(i))
		}
	}
}

// EachVertex calls fn once for every live vertex handle.
func (s *Store) EachVertex(fn func(types.VertexID)) {
	for i, v := range s.vertices {
		if !v.removed {
			fn(types.VertexID(i))
		}
	}
}
