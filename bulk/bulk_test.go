package bulk

import (
	"testing"

	"github.com/latticecdt/cdt/predicates"
	"github.com/latticecdt/cdt/types"
)

func square(n int) []types.Point {
	pts := make([]types.Point, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			pts = append(pts, types.Point{X: float64(i), Y: float64(j)})
		}
	}
	return pts
}

func TestLoadProducesAllVertices(t *testing.T) {
	pts := square(6)
	res, err := Load(pts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kernel.NumVertices() != len(pts) {
		t.Fatalf("expected %d vertices, got %d", len(pts), res.Kernel.NumVertices())
	}
	for i, h := range res.Handles {
		if !h.IsValid() {
			t.Fatalf("point %d has no handle", i)
		}
		if got := res.Kernel.Store().Point(h); got != pts[i] {
			t.Fatalf("point %d: expected %v, got %v", i, pts[i], got)
		}
	}

	res.Kernel.Store().EachFace(func(f types.FaceID) {
		verts := res.Kernel.Store().FaceVertices(f)
		a := res.Kernel.Store().Point(verts[0])
		b := res.Kernel.Store().Point(verts[1])
		c := res.Kernel.Store().Point(verts[2])
		if predicates.Orient2D(a, b, c) <= 0 {
			t.Errorf("face %d not CCW: %v %v %v", f, a, b, c)
		}
	})
}

// TestLoadCDTFivePointChain covers spec scenario 5: 5 points with edges
// forming a chain yield 5 vertices and 4 constraints, each queryable.
func TestLoadCDTFivePointChain(t *testing.T) {
	pts := []types.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 1}, {X: 3, Y: 0}, {X: 4, Y: 0},
	}
	edges := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}}

	c, handles, err := LoadCDT(pts, edges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.NumVertices() != 5 {
		t.Fatalf("expected 5 vertices, got %d", c.NumVertices())
	}
	if c.NumConstraints() != 4 {
		t.Fatalf("expected 4 constraints, got %d", c.NumConstraints())
	}
	for _, e := range edges {
		if !c.IsConstraint(handles[e[0]], handles[e[1]]) {
			t.Errorf("expected edge %d-%d to be a constraint", e[0], e[1])
		}
	}
}

func TestLoadStablePreservesInputOrder(t *testing.T) {
	pts := []types.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 0.5, Y: 0.5},
	}
	res, _, err := LoadStable(pts, types.DefaultEpsilon())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range pts {
		h := res.Handles[i]
		if !h.IsValid() {
			t.Fatalf("point %d has no handle", i)
		}
		if got := res.Kernel.Store().Point(h); got != p {
			t.Fatalf("stable load: point %d expected %v, got %v", i, p, got)
		}
	}
}

func TestLoadStableMergesDuplicates(t *testing.T) {
	pts := []types.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 1},
	}
	res, remap, err := LoadStable(pts, types.DefaultEpsilon())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Handles[0] != res.Handles[2] {
		t.Fatalf("expected duplicate points 0 and 2 to share a vertex handle")
	}
	if remap[0] != remap[2] {
		t.Fatalf("expected remap to collapse indices 0 and 2")
	}
	if res.Kernel.NumVertices() != 3 {
		t.Fatalf("expected 3 distinct vertices after merge, got %d", res.Kernel.NumVertices())
	}
}
