package pslg

import (
	"testing"

	"github.com/latticecdt/cdt/algorithm/polygon"
	"github.com/latticecdt/cdt/types"
)

func TestEpsilonMerge(t *testing.T) {
	points := []types.Point{
		{X: 0, Y: 0},
		{X: 1e-10, Y: -1e-10},
		{X: 1, Y: 1},
		{X: 1.0 + 5e-10, Y: 1.0 - 5e-10},
	}

	merged, remap := EpsilonMerge(points, types.DefaultEpsilon())
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged points, got %d", len(merged))
	}
	if remap[0] != remap[1] || remap[2] != remap[3] {
		t.Fatalf("unexpected remap %v", remap)
	}
}

func TestLoopSelfIntersections(t *testing.T) {
	loop := []types.Point{
		{X: 0, Y: 0},
		{X: 2, Y: 2},
		{X: 0, Y: 2},
		{X: 2, Y: 0},
	}

	err := LoopSelfIntersections(loop)
	if err == nil {
		t.Fatalf("expected self-intersection to be detected")
	}
}

func TestValidateLoopsSuccess(t *testing.T) {
	outer := []types.Point{
		{X: 0, Y: 0},
		{X: 5, Y: 0},
		{X: 5, Y: 5},
		{X: 0, Y: 5},
	}

	hole := []types.Point{
		{X: 3, Y: 1},
		{X: 1, Y: 1},
		{X: 1, Y: 3},
		{X: 3, Y: 3},
	}

	if polygon.SignedArea(hole) >= 0 {
		t.Fatalf("test setup error: hole must be CW")
	}

	err := ValidateLoops(outer, [][]types.Point{hole}, types.DefaultEpsilon())
	if err != nil {
		t.Fatalf("expected loops to be valid, got %v", err)
	}
}

func TestValidateLoopsFailsForHoleOutside(t *testing.T) {
	outer := []types.Point{
		{X: 0, Y: 0},
		{X: 5, Y: 0},
		{X: 5, Y: 5},
		{X: 0, Y: 5},
	}

	hole := []types.Point{
		{X: 6, Y: 1},
		{X: 6, Y: 2},
		{X: 7, Y: 2},
		{X: 7, Y: 1},
	}

	err := ValidateLoops(outer, [][]types.Point{hole}, types.DefaultEpsilon())
	if err == nil {
		t.Fatalf("expected validation to fail for hole outside perimeter")
	}
}

func TestValidateLoopsWithMultipleHoles(t *testing.T) {
	outer := []types.Point{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 0, Y: 10},
	}

	holeA := []types.Point{
		{X: 2, Y: 2},
		{X: 2, Y: 4},
		{X: 4, Y: 4},
		{X: 4, Y: 2},
	}
	holeB := []types.Point{
		{X: 6, Y: 6},
		{X: 6, Y: 8},
		{X: 8, Y: 8},
		{X: 8, Y: 6},
	}

	outer = polygon.ReverseIfNeeded(outer, true)
	holeA = polygon.ReverseIfNeeded(holeA, false)
	holeB = polygon.ReverseIfNeeded(holeB, false)

	if err := ValidateLoops(outer, [][]types.Point{holeA, holeB}, types.DefaultEpsilon()); err != nil {
		t.Fatalf("expected disjoint holes to validate, got %v", err)
	}
}

func TestValidateLoopsFailsForOverlappingHoles(t *testing.T) {
	outer := []types.Point{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 0, Y: 10},
	}

	holeA := polygon.ReverseIfNeeded([]types.Point{
		{X: 2, Y: 2},
		{X: 2, Y: 6},
		{X: 6, Y: 6},
		{X: 6, Y: 2},
	}, false)
	holeB := polygon.ReverseIfNeeded([]types.Point{
		{X: 4, Y: 4},
		{X: 4, Y: 8},
		{X: 8, Y: 8},
		{X: 8, Y: 4},
	}, false)

	outer = polygon.ReverseIfNeeded(outer, true)

	if err := ValidateLoops(outer, [][]types.Point{holeA, holeB}, types.DefaultEpsilon()); err == nil {
		t.Fatalf("expected overlapping holes to fail validation")
	}
}
