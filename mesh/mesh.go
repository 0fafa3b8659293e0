// Package mesh builds a read-only snapshot of a triangulation's current
// faces, vertices, and convex hull - a plain export view rather than the
// teacher's mutable triangle-soup editor (AddTriangle, overlap detection,
// duplicate rejection), since a DCEL-backed triangulation already
// guarantees a non-overlapping, non-duplicate face set by construction;
// there is nothing left for an editor layer to validate.
package mesh

import (
	"github.com/latticecdt/cdt/cdt"
	"github.com/latticecdt/cdt/dcel"
	"github.com/latticecdt/cdt/hull"
	"github.com/latticecdt/cdt/triangulation"
	"github.com/latticecdt/cdt/types"
)

// Mesh is an immutable snapshot: every live vertex position, every live
// face as a CCW vertex triple, and the convex hull loop.
type Mesh struct {
	Vertices  []types.Point
	Triangles []types.Triangle
	Hull      []types.VertexID

	// Constraints holds the constrained edges of the triangulation this
	// snapshot was taken from, populated only by FromCDT - a plain
	// triangulation.Kernel has none. These are the nearest equivalent to
	// the teacher's perimeter/hole polygon loops: under a DCEL there is no
	// separate stored boundary polygon, only the constraint edges a CDT
	// layer marks on top of the triangulation.
	Constraints []types.Edge

	// MergeEpsilon records the tolerance duplicate points were collapsed
	// under before this snapshot was taken (see WithMergeDistance),
	// zero-valued if the caller didn't set one. It is metadata only: the
	// merge itself already happened at insertion time (triangulation.Kernel)
	// or in bulk.LoadStable's pre-pass, not here.
	MergeEpsilon types.Epsilon
}

// NumVertices reports the size of the vertex arena snapshot, including any
// removed slots (the zero Point at a removed index is harmless for
// rendering, which only ever walks Triangles/Hull/Constraints for live
// geometry).
func (m *Mesh) NumVertices() int { return len(m.Vertices) }

// GetVertex returns the point stored at vertex v.
func (m *Mesh) GetVertex(v types.VertexID) types.Point { return m.Vertices[v] }

// NumTriangles reports the number of live faces in the snapshot.
func (m *Mesh) NumTriangles() int { return len(m.Triangles) }

// GetTriangles returns the snapshot's face list.
func (m *Mesh) GetTriangles() []types.Triangle { return m.Triangles }

// GetTriangleCoords returns the three corner points of triangle i.
func (m *Mesh) GetTriangleCoords(i int) (types.Point, types.Point, types.Point) {
	t := m.Triangles[i]
	return m.Vertices[t.V1()], m.Vertices[t.V2()], m.Vertices[t.V3()]
}

// GetHullLoop returns the convex hull boundary as a closed polygon loop.
func (m *Mesh) GetHullLoop() types.PolygonLoop { return types.PolygonLoop(m.Hull) }

type config struct {
	mergeEpsilon types.Epsilon
}

// Option configures mesh construction, kept in the same
// options.go/config.go split the teacher's mesh package uses.
type Option func(*config)

// FromKernel snapshots a plain Delaunay kernel's current state.
func FromKernel(k *triangulation.Kernel, opts ...Option) *Mesh {
	return build(k.Store(), k.Hull(), opts...)
}

// FromStore snapshots a DCEL directly, for callers holding a *cdt.CDT
// (whose embedded kernel's Store()/Hull() are promoted) or any other
// store-owning type.
func FromStore(s *dcel.Store, h *hull.Index, opts ...Option) *Mesh {
	return build(s, h, opts...)
}

// FromCDT snapshots a constrained triangulation, additionally populating
// Constraints with every edge currently marked as a constraint.
func FromCDT(c *cdt.CDT, opts ...Option) *Mesh {
	m := build(c.Store(), c.Hull(), opts...)
	m.Constraints = c.Constraints()
	return m
}

func build(s *dcel.Store, h *hull.Index, opts ...Option) *Mesh {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Mesh{
		Vertices:     make([]types.Point, s.VertexCap()),
		MergeEpsilon: cfg.mergeEpsilon,
	}
	s.EachVertex(func(v types.VertexID) {
		m.Vertices[v] = s.Point(v)
	})

	s.EachFace(func(f types.FaceID) {
		verts := s.FaceVertices(f)
		m.Triangles = append(m.Triangles, types.NewTriangle(verts[0], verts[1], verts[2]))
	})

	if h != nil {
		m.Hull = h.Loop()
	}

	return m
}
