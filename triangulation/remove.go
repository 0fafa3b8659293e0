package triangulation

import (
	"fmt"

	"github.com/latticecdt/cdt/predicates"
	"github.com/latticecdt/cdt/types"
)

// Remove deletes vertex v, re-triangulating the hole it leaves behind by
// ear-clipping the ring of its former neighbors. If v was a hull vertex,
// the hull index is updated so its two hull-adjacent neighbors become
// directly connected on the boundary.
func (k *Kernel) Remove(v types.VertexID) error {
	if v.IsValid() == false || k.store.VertexRemoved(v) {
		return fmt.Errorf("triangulation: cannot remove invalid or already-removed vertex %d", v)
	}

	k.hint.NotifyVertexRemoved(v)

	if k.hull != nil {
		if node, ok := k.hull.FindNode(v); ok {
			k.hull.Remove(node)
		}
	}

	ring, _ := k.store.RemoveVertex(v)
	if len(ring) < 3 {
		return nil
	}

	triangles := earClipPolygon(ring, k.store.Point)
	var seeds []types.HalfEdgeID
	for _, tri := range triangles {
		f := k.addFaceCCW(tri[0], tri[1], tri[2])
		seeds = append(seeds, allFaceEdges(k.store.FaceHalfEdges(f))...)
	}
	k.legalizeAround(seeds)
	return nil
}

// earClipPolygon triangulates a simple polygon given as an ordered vertex
// ring (orientation unknown) by repeatedly clipping convex ears,
// returning the triangles produced.
func earClipPolygon(ring []types.VertexID, point func(types.VertexID) types.Point) [][3]types.VertexID {
	n := len(ring)
	if n < 3 {
		return nil
	}

	ccw := signedPolygonOrientation(ring, point) > 0
	remaining := append([]types.VertexID(nil), ring...)
	var out [][3]types.VertexID

	guard := 0
	for len(remaining) > 3 && guard < n*n+8 {
		guard++
		m := len(remaining)
		clipped := false
		for i := 0; i < m; i++ {
			a := remaining[(i-1+m)%m]
			b := remaining[i]
			c := remaining[(i+1)%m]

			orient := predicates.Orient2D(point(a), point(b), point(c))
			isConvex := orient > 0 == ccw
			if orient == 0 || !isConvex {
				continue
			}

			earContainsOther := false
			for j := 0; j < m; j++ {
				if j == (i-1+m)%m || j == i || j == (i+1)%m {
					continue
				}
				if pointInTriangleStrict(point(remaining[j]), point(a), point(b), point(c)) {
					earContainsOther = true
					break
				}
			}
			if earContainsOther {
				continue
			}

			out = append(out, [3]types.VertexID{a, b, c})
			remaining = append(remaining[:i], remaining[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			// Degenerate/numerically borderline ring; fall back to a
			// simple fan from the first remaining vertex rather than
			// looping forever.
			break
		}
	}

	if len(remaining) == 3 {
		// A collinear final ring encloses no area and yields no triangle.
		if predicates.Orient2D(point(remaining[0]), point(remaining[1]), point(remaining[2])) != 0 {
			out = append(out, [3]types.VertexID{remaining[0], remaining[1], remaining[2]})
		}
	} else if len(remaining) > 3 {
		for i := 1; i+1 < len(remaining); i++ {
			out = append(out, [3]types.VertexID{remaining[0], remaining[i], remaining[i+1]})
		}
	}

	return out
}

func signedPolygonOrientation(ring []types.VertexID, point func(types.VertexID) types.Point) float64 {
	sum := 0.0
	n := len(ring)
	for i := 0; i < n; i++ {
		a := point(ring[i])
		b := point(ring[(i+1)%n])
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum
}

func pointInTriangleStrict(p, a, b, c types.Point) bool {
	o1 := predicates.Orient2D(a, b, p)
	o2 := predicates.Orient2D(b, c, p)
	o3 := predicates.Orient2D(c, a, p)
	allPos := o1 > 0 && o2 > 0 && o3 > 0
	allNeg := o1 < 0 && o2 < 0 && o3 < 0
	return allPos || allNeg
}
