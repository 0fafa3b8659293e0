package cdt

import (
	"math"
	"testing"

	"github.com/latticecdt/cdt/types"
)

// TestSquareCrossingConstraints covers spec scenario 1: inserting one
// diagonal as a constraint must make try-adding the other diagonal fail
// because it would cross the first.
func TestSquareCrossingConstraints(t *testing.T) {
	c := New()
	v0, _ := c.Insert(types.Point{X: -1, Y: 0})
	v1, _ := c.Insert(types.Point{X: 1, Y: 0})
	v2, _ := c.Insert(types.Point{X: 0, Y: 1})
	v3, _ := c.Insert(types.Point{X: 0, Y: -1})

	path, ok := c.TryAddConstraint(v2, v3)
	if !ok || len(path) == 0 {
		t.Fatalf("expected v2-v3 constraint to succeed, got ok=%v path=%v", ok, path)
	}
	if c.NumConstraints() != 1 {
		t.Fatalf("expected 1 constraint, got %d", c.NumConstraints())
	}

	path2, ok2 := c.TryAddConstraint(v0, v1)
	if ok2 {
		t.Fatalf("expected v0-v1 to be rejected as crossing an existing constraint, got path %v", path2)
	}
	if len(path2) != 0 {
		t.Fatalf("expected empty path on rejection, got %v", path2)
	}
	if c.NumConstraints() != 1 {
		t.Fatalf("constraint count should be unchanged after a rejected insertion, got %d", c.NumConstraints())
	}
}

// TestConstraintThroughInteriorVertex covers spec scenario 2: a
// constraint whose endpoints have a third vertex exactly on the segment
// between them is recorded as two sub-constraints.
func TestConstraintThroughInteriorVertex(t *testing.T) {
	c := New()
	v0, _ := c.Insert(types.Point{X: 0, Y: 0})
	v1, _ := c.Insert(types.Point{X: 1, Y: 0})
	v2, _ := c.Insert(types.Point{X: 2, Y: 0})
	_, _ = c.Insert(types.Point{X: 0, Y: 1})

	c.AddConstraint(v0, v2)

	if c.NumConstraints() != 2 {
		t.Fatalf("expected 2 constraints (v0-v1, v1-v2), got %d", c.NumConstraints())
	}
	if !c.IsConstraint(v0, v1) {
		t.Fatalf("expected v0-v1 to be a constraint")
	}
	if !c.IsConstraint(v1, v2) {
		t.Fatalf("expected v1-v2 to be a constraint")
	}
}

// TestSplitOnIntersection covers spec scenario 3: forcing a constraint
// across a pre-existing one splits it at the computed intersection.
func TestSplitOnIntersection(t *testing.T) {
	c := New()
	v0, _ := c.Insert(types.Point{X: -1, Y: 0})
	v1, _ := c.Insert(types.Point{X: 1, Y: 0})
	v2, _ := c.Insert(types.Point{X: 0, Y: -1})
	v3, _ := c.Insert(types.Point{X: 0, Y: 1})

	c.AddConstraint(v2, v3)
	before := c.NumVertices()

	if err := c.AddConstraintAndSplit(v0, v1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.NumVertices() != before+1 {
		t.Fatalf("expected exactly one new vertex from the split, went from %d to %d", before, c.NumVertices())
	}
	if c.NumConstraints() != 4 {
		t.Fatalf("expected 4 constraint edges after the split (2 original + 2 new halves), got %d", c.NumConstraints())
	}
}

// TestCircleConstraints covers spec scenario 4: a closed polyline of 51
// points around a circle yields exactly 51 constraints.
func TestCircleConstraints(t *testing.T) {
	c := New()
	const n = 51
	handles := make([]types.VertexID, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		v, err := c.Insert(types.Point{X: math.Cos(theta), Y: math.Sin(theta)})
		if err != nil {
			t.Fatalf("unexpected error inserting point %d: %v", i, err)
		}
		handles[i] = v
	}
	c.AddConstraintEdges(handles, true)
	if c.NumConstraints() != n {
		t.Fatalf("expected %d constraints, got %d", n, c.NumConstraints())
	}
}

// TestRemoveDegenerateTriangle covers spec scenario 6: removing one
// vertex of a fully-constrained triangle leaves exactly one constraint.
func TestRemoveDegenerateTriangle(t *testing.T) {
	c := New()
	v0, _ := c.Insert(types.Point{X: 0, Y: 0})
	v1, _ := c.Insert(types.Point{X: 1, Y: 0})
	v2, _ := c.Insert(types.Point{X: 0, Y: 1})

	c.AddConstraint(v0, v1)
	c.AddConstraint(v1, v2)
	c.AddConstraint(v2, v0)
	if c.NumConstraints() != 3 {
		t.Fatalf("expected 3 constraints before removal, got %d", c.NumConstraints())
	}

	if err := c.Remove(v1); err != nil {
		t.Fatalf("unexpected error removing v1: %v", err)
	}
	if c.NumConstraints() != 1 {
		t.Fatalf("expected 1 constraint remaining after removing v1, got %d", c.NumConstraints())
	}
	if !c.IsConstraint(v0, v2) {
		t.Fatalf("expected v0-v2 constraint to survive removal")
	}
}

func TestRemoveConstraintThenReAdd(t *testing.T) {
	c := New()
	v0, _ := c.Insert(types.Point{X: 0, Y: 0})
	v1, _ := c.Insert(types.Point{X: 1, Y: 0})
	_, _ = c.Insert(types.Point{X: 0, Y: 1})
	_, _ = c.Insert(types.Point{X: 1, Y: 1})

	c.AddConstraint(v0, v1)
	if !c.RemoveConstraint(v0, v1) {
		t.Fatalf("expected RemoveConstraint to report the bit was cleared")
	}
	if c.NumConstraints() != 0 {
		t.Fatalf("expected 0 constraints after removal, got %d", c.NumConstraints())
	}
	c.AddConstraint(v0, v1)
	if c.NumConstraints() != 1 {
		t.Fatalf("expected constraint count restored to 1, got %d", c.NumConstraints())
	}
}

