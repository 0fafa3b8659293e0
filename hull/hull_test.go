package hull

import (
	"math"
	"testing"

	"github.com/latticecdt/cdt/predicates"
	"github.com/latticecdt/cdt/types"
)

func TestInsertFirstThreeAndFindPredecessor(t *testing.T) {
	center := types.Point{X: 0, Y: 0}
	idx := New(center, 8)

	a := types.Point{X: 1, Y: 0}
	b := types.Point{X: 0, Y: 1}
	c := types.Point{X: -1, Y: -1}
	idx.InsertFirstThree([3]types.VertexID{0, 1, 2}, [3]types.Point{a, b, c})

	if idx.Len() != 3 {
		t.Fatalf("expected 3 hull nodes, got %d", idx.Len())
	}

	angle := predicates.PseudoAngle(a, center)
	pred := idx.FindPredecessor(angle)
	if idx.Vertex(pred) != 0 {
		t.Fatalf("expected predecessor of a's own angle to be vertex 0, got %d", idx.Vertex(pred))
	}
}

func TestLoopReturnsAllVertices(t *testing.T) {
	center := types.Point{X: 0, Y: 0}
	idx := New(center, 8)
	pts := [3]types.Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: -1}}
	idx.InsertFirstThree([3]types.VertexID{0, 1, 2}, pts)

	loop := idx.Loop()
	if len(loop) != 3 {
		t.Fatalf("expected loop of 3 vertices, got %d", len(loop))
	}
	seen := map[types.VertexID]bool{}
	for _, v := range loop {
		seen[v] = true
	}
	for _, v := range []types.VertexID{0, 1, 2} {
		if !seen[v] {
			t.Errorf("expected vertex %d in hull loop", v)
		}
	}
}

func TestRemoveShrinksHull(t *testing.T) {
	center := types.Point{X: 0, Y: 0}
	idx := New(center, 8)
	pts := [3]types.Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: -1}}
	idx.InsertFirstThree([3]types.VertexID{0, 1, 2}, pts)

	n, ok := idx.FindNode(1)
	if !ok {
		t.Fatalf("expected to find node for vertex 1")
	}
	idx.Remove(n)
	if idx.Len() != 2 {
		t.Fatalf("expected 2 hull nodes after removal, got %d", idx.Len())
	}
	if _, ok := idx.FindNode(1); ok {
		t.Fatalf("expected vertex 1 to be gone from the hull")
	}
}

func TestRemoveBucketRepresentativeKeepsLookupCorrect(t *testing.T) {
	center := types.Point{X: 0, Y: 0}
	idx := New(center, 4)

	const n = 64
	verts := make([]types.VertexID, n)
	pts := make([]types.Point, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = types.Point{X: 10 * math.Cos(theta), Y: 10 * math.Sin(theta)}
		verts[i] = types.VertexID(i)
		idx.InsertSorted(verts[i], pts[i])
	}

	// Remove every other node, which repeatedly knocks out bucket
	// representatives, then confirm every surviving point still locates
	// itself via FindPredecessorOfPoint.
	for i := 0; i < n; i += 2 {
		node, ok := idx.FindNode(verts[i])
		if !ok {
			t.Fatalf("expected to find node for vertex %d before removal", i)
		}
		idx.Remove(node)
	}
	if idx.Len() != n/2 {
		t.Fatalf("expected %d hull nodes after removing half, got %d", n/2, idx.Len())
	}

	for i := 1; i < n; i += 2 {
		node := idx.FindPredecessorOfPoint(pts[i])
		if idx.Vertex(node) != verts[i] {
			t.Errorf("point %d: expected predecessor vertex %d, got %d", i, verts[i], idx.Vertex(node))
		}
	}
}

func TestBucketGrowthKeepsLookupCorrect(t *testing.T) {
	center := types.Point{X: 0, Y: 0}
	idx := New(center, 4)

	const n = 200
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		p := types.Point{X: 10 * math.Cos(theta), Y: 10 * math.Sin(theta)}
		idx.InsertSorted(types.VertexID(i), p)
	}
	if idx.Len() != n {
		t.Fatalf("expected %d hull nodes, got %d", n, idx.Len())
	}

	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		p := types.Point{X: 10 * math.Cos(theta), Y: 10 * math.Sin(theta)}
		angle := predicates.PseudoAngle(p, center)
		node := idx.FindPredecessorOfPoint(p)
		if idx.Vertex(node) != types.VertexID(i) {
			// The predecessor of a point placed exactly on the hull
			// should be that same point, since its angle is its own.
			t.Errorf("point %d (angle %.4f): expected predecessor vertex %d, got %d", i, angle, i, idx.Vertex(node))
		}
	}
}
