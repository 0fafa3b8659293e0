package mesh

import (
	"testing"

	"github.com/latticecdt/cdt/cdt"
	"github.com/latticecdt/cdt/triangulation"
	"github.com/latticecdt/cdt/types"
)

func TestFromKernelSnapshotsFacesAndHull(t *testing.T) {
	k := triangulation.New()
	k.Insert(types.Point{X: 0, Y: 0})
	k.Insert(types.Point{X: 4, Y: 0})
	k.Insert(types.Point{X: 4, Y: 4})
	k.Insert(types.Point{X: 0, Y: 4})
	k.Insert(types.Point{X: 2, Y: 2})

	m := FromKernel(k)
	if m.NumVertices() != 5 {
		t.Fatalf("expected 5 vertices in snapshot, got %d", m.NumVertices())
	}
	if m.NumTriangles() == 0 {
		t.Fatalf("expected at least one triangle in snapshot")
	}
	if len(m.Hull) != 4 {
		t.Fatalf("expected 4 hull vertices, got %d", len(m.Hull))
	}
}

func TestFromCDTPopulatesConstraints(t *testing.T) {
	c := cdt.New()
	v0, _ := c.Insert(types.Point{X: 0, Y: 0})
	v1, _ := c.Insert(types.Point{X: 1, Y: 0})
	_, _ = c.Insert(types.Point{X: 0, Y: 1})
	c.AddConstraint(v0, v1)

	m := FromCDT(c)
	if len(m.Constraints) != 1 {
		t.Fatalf("expected 1 constraint in snapshot, got %d", len(m.Constraints))
	}
	if m.Constraints[0] != types.NewEdge(v0, v1) {
		t.Fatalf("expected constraint %v, got %v", types.NewEdge(v0, v1), m.Constraints[0])
	}
}

func TestWithMergeDistanceRecordsEpsilon(t *testing.T) {
	k := triangulation.New()
	k.Insert(types.Point{X: 0, Y: 0})
	k.Insert(types.Point{X: 1, Y: 0})
	k.Insert(types.Point{X: 0, Y: 1})

	eps := types.NewEpsilon(1e-6, 1e-9)
	m := FromKernel(k, WithMergeDistance(eps))
	if m.MergeEpsilon != eps {
		t.Fatalf("expected MergeEpsilon %v, got %v", eps, m.MergeEpsilon)
	}
}
