// Package bulk loads a whole point set into a triangulation at once via a
// centroid-ordered circle sweep, rather than one call to Insert per point
// in caller-supplied (often poorly conditioned) order. Feeding points to
// the incremental kernel nearest-to-center-first keeps the point-location
// walk short and the hull small relative to the region already
// triangulated, the way the teacher's cdt/builder.go stages construction
// (normalize, seed, insert, constrain, legalize) rather than inserting
// blindly in input order.
package bulk

import (
	"fmt"
	"sort"

	"github.com/latticecdt/cdt/cdt"
	"github.com/latticecdt/cdt/predicates"
	"github.com/latticecdt/cdt/triangulation"
	"github.com/latticecdt/cdt/types"
)

// Result is the output of a bulk load: the triangulation kernel and a
// per-input-index slice of the vertex handle each point was assigned
// (coincident points within the kernel's epsilon share a handle).
type Result struct {
	Kernel   *triangulation.Kernel
	Handles  []types.VertexID
	Deferred int // number of points that needed a slow-path fallback insert
}

// Load bulk-inserts points into a fresh Delaunay kernel via a circle
// sweep ordered by ascending distance from the point set's centroid.
func Load(points []types.Point, opts ...triangulation.Option) (*Result, error) {
	k := triangulation.New(opts...)
	handles, deferred, err := sweep(k, points)
	if err != nil {
		return nil, err
	}
	return &Result{Kernel: k, Handles: handles, Deferred: deferred}, nil
}

// LoadCDT bulk-inserts points the same way Load does, then interleaves
// constraint insertion: edges reference points by their index into the
// points slice, and a constraint is applied as soon as both of its
// endpoints have been swept in and the kernel has its first triangle, per
// spec.md's CDT bulk-loading interleaving rule.
func LoadCDT(points []types.Point, edges [][2]int, opts ...triangulation.Option) (*cdt.CDT, []types.VertexID, error) {
	c := cdt.New(opts...)

	order, _, err := sweepOrder(points)
	if err != nil {
		return nil, nil, err
	}

	pending := map[int][]int{} // original index -> list of edge partners awaiting it
	for _, e := range edges {
		a, b := e[0], e[1]
		pending[a] = append(pending[a], b)
		pending[b] = append(pending[b], a)
	}

	handles := make([]types.VertexID, len(points))
	inserted := make([]bool, len(points))
	var waiting [][2]types.VertexID

	for _, idx := range order {
		v, err := c.Insert(points[idx])
		if err != nil {
			return nil, nil, fmt.Errorf("bulk: inserting point %d: %w", idx, err)
		}
		handles[idx] = v
		inserted[idx] = true

		for _, partner := range pending[idx] {
			if !inserted[partner] {
				continue
			}
			waiting = append(waiting, [2]types.VertexID{handles[idx], handles[partner]})
		}
		// A constraint needs a triangle to live in, so edges between the
		// first points wait until the kernel has formed its first face.
		if c.Store().NumFaces() > 0 {
			for _, e := range waiting {
				c.AddConstraint(e[0], e[1])
			}
			waiting = waiting[:0]
		}
	}

	return c, handles, nil
}

// sweepOrder returns point indices sorted by ascending squared distance
// to the centroid, validating every coordinate first.
func sweepOrder(points []types.Point) ([]int, types.Point, error) {
	if len(points) == 0 {
		return nil, types.Point{}, nil
	}
	var cx, cy float64
	for _, p := range points {
		if err := predicates.ValidateCoordinate(p.X, p.Y, 0); err != nil {
			return nil, types.Point{}, err
		}
		cx += p.X
		cy += p.Y
	}
	centroid := types.Point{X: cx / float64(len(points)), Y: cy / float64(len(points))}

	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return predicates.Dist2(points[order[i]], centroid) < predicates.Dist2(points[order[j]], centroid)
	})
	return order, centroid, nil
}

// sweep inserts every point into k in centroid-ascending order. Points
// that fail to insert via the ordinary incremental path (a numeric
// degeneracy at the moment of insertion) are deferred and retried once
// at the end, per spec.md's deferred-vertex fallback.
func sweep(k *triangulation.Kernel, points []types.Point) ([]types.VertexID, int, error) {
	order, _, err := sweepOrder(points)
	if err != nil {
		return nil, 0, err
	}

	handles := make([]types.VertexID, len(points))
	var deferredIdx []int

	for _, idx := range order {
		v, err := k.Insert(points[idx])
		if err != nil {
			deferredIdx = append(deferredIdx, idx)
			continue
		}
		handles[idx] = v
	}

	for _, idx := range deferredIdx {
		v, err := k.Insert(points[idx])
		if err != nil {
			return nil, 0, fmt.Errorf("bulk: point %d could not be inserted even on retry: %w", idx, err)
		}
		handles[idx] = v
	}

	return handles, len(deferredIdx), nil
}
