package triangulation

import (
	"math"
	"testing"

	"github.com/latticecdt/cdt/predicates"
	"github.com/latticecdt/cdt/types"
)

func assertInvariants(t *testing.T, k *Kernel) {
	t.Helper()
	s := k.Store()
	s.EachFace(func(f types.FaceID) {
		verts := s.FaceVertices(f)
		a, b, c := s.Point(verts[0]), s.Point(verts[1]), s.Point(verts[2])
		if predicates.Orient2D(a, b, c) <= 0 {
			t.Errorf("face %d is not strictly CCW: %v %v %v", f, a, b, c)
		}
	})
}

func TestInsertSinglePoint(t *testing.T) {
	k := New()
	v, err := k.Insert(types.Point{X: 1, Y: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loc := k.Locate(types.Point{X: 1, Y: 2})
	if loc.Kind != LocateOnVertex || loc.Vertex != v {
		t.Fatalf("expected OnVertex(%d), got %+v", v, loc)
	}
	loc2 := k.Locate(types.Point{X: 5, Y: 5})
	if loc2.Kind != LocateOutside {
		t.Fatalf("single-vertex triangulation should report anything else as Outside, got %+v", loc2)
	}
}

func TestInsertIdempotentOnCoincidentPosition(t *testing.T) {
	k := New()
	v1, _ := k.Insert(types.Point{X: 0, Y: 0})
	k.Insert(types.Point{X: 1, Y: 0})
	k.Insert(types.Point{X: 0, Y: 1})
	v2, err := k.Insert(types.Point{X: 0, Y: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v1 != v2 {
		t.Fatalf("expected coincident insert to return the same handle: %d != %d", v1, v2)
	}
	if k.NumVertices() != 3 {
		t.Fatalf("expected 3 vertices, got %d", k.NumVertices())
	}
}

func TestAllCollinearInput(t *testing.T) {
	k := New()
	for i := 0; i < 5; i++ {
		if _, err := k.Insert(types.Point{X: float64(i), Y: 0}); err != nil {
			t.Fatalf("unexpected error inserting collinear point %d: %v", i, err)
		}
	}
	if k.Store().NumFaces() != 0 {
		t.Fatalf("all-collinear input must have zero inner faces, got %d", k.Store().NumFaces())
	}
	if k.NumVertices() != 5 {
		t.Fatalf("expected 5 vertices, got %d", k.NumVertices())
	}
}

func TestInsertGeneralPositionProducesDelaunayTriangulation(t *testing.T) {
	k := New()
	pts := []types.Point{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4},
		{X: 2, Y: 2}, {X: 1, Y: 3}, {X: 3, Y: 1},
	}
	for _, p := range pts {
		if _, err := k.Insert(p); err != nil {
			t.Fatalf("unexpected error inserting %v: %v", p, err)
		}
	}
	if k.NumVertices() != len(pts) {
		t.Fatalf("expected %d vertices, got %d", len(pts), k.NumVertices())
	}
	assertInvariants(t, k)
}

func TestInsertRejectsInvalidCoordinates(t *testing.T) {
	k := New(WithCoordLimit(1000))
	if _, err := k.Insert(types.Point{X: math.NaN(), Y: 0}); err == nil {
		t.Fatalf("expected error for NaN coordinate")
	}
	if _, err := k.Insert(types.Point{X: math.Inf(1), Y: 0}); err == nil {
		t.Fatalf("expected error for infinite coordinate")
	}
	if _, err := k.Insert(types.Point{X: 1e9, Y: 0}); err == nil {
		t.Fatalf("expected error for out-of-bound coordinate")
	}
}

func TestRemoveInteriorVertexPreservesInvariants(t *testing.T) {
	k := New()
	var handles []types.VertexID
	for _, p := range []types.Point{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}, {X: 2, Y: 2},
	} {
		v, err := k.Insert(p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		handles = append(handles, v)
	}
	center := handles[4]
	if err := k.Remove(center); err != nil {
		t.Fatalf("unexpected error removing vertex: %v", err)
	}
	if k.NumVertices() != 4 {
		t.Fatalf("expected 4 vertices after removal, got %d", k.NumVertices())
	}
	assertInvariants(t, k)
}

func TestRemoveHullVertexPreservesInvariants(t *testing.T) {
	k := New()
	var handles []types.VertexID
	for _, p := range []types.Point{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}, {X: 2, Y: 2},
	} {
		v, _ := k.Insert(p)
		handles = append(handles, v)
	}
	if err := k.Remove(handles[1]); err != nil {
		t.Fatalf("unexpected error removing hull vertex: %v", err)
	}
	if k.NumVertices() != 4 {
		t.Fatalf("expected 4 vertices after removal, got %d", k.NumVertices())
	}
	assertInvariants(t, k)
}
