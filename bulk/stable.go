package bulk

import (
	"github.com/latticecdt/cdt/algorithm/pslg"
	"github.com/latticecdt/cdt/cdt"
	"github.com/latticecdt/cdt/triangulation"
	"github.com/latticecdt/cdt/types"
)

// LoadStable is Load's order-preserving counterpart: duplicate points
// (within eps) are merged before the sweep, and the returned Handles
// slice maps every *original* input index - including indices that
// merged into another point's vertex - to the surviving vertex handle.
//
// spec.md's stable loader additionally swaps arena slots until a
// vertex's arena index equals its original input index; the DCEL arena
// here has no primitive for reordering live slots to an arbitrary
// permutation, so that last compaction step is not implemented. The
// handle-per-original-index mapping this returns is the part of the
// contract callers actually depend on.
func LoadStable(points []types.Point, eps types.Epsilon, opts ...triangulation.Option) (*Result, []int, error) {
	merged, remap := pslg.EpsilonMerge(points, eps)

	res, err := Load(merged, opts...)
	if err != nil {
		return nil, nil, err
	}

	handles := make([]types.VertexID, len(points))
	for original, mergedIdx := range remap {
		handles[original] = res.Handles[mergedIdx]
	}

	return &Result{Kernel: res.Kernel, Handles: handles, Deferred: res.Deferred}, remap, nil
}

// LoadCDTStable merges duplicate points the same way LoadStable does,
// remaps edges onto the merged index space, and runs the interleaved CDT
// sweep.
func LoadCDTStable(points []types.Point, edges [][2]int, eps types.Epsilon, opts ...triangulation.Option) (*cdt.CDT, []types.VertexID, error) {
	merged, remap := pslg.EpsilonMerge(points, eps)

	mergedEdges := make([][2]int, len(edges))
	for i, e := range edges {
		mergedEdges[i] = [2]int{remap[e[0]], remap[e[1]]}
	}

	c, mergedHandles, err := LoadCDT(merged, mergedEdges, opts...)
	if err != nil {
		return nil, nil, err
	}

	handles := make([]types.VertexID, len(points))
	for original, mergedIdx := range remap {
		handles[original] = mergedHandles[mergedIdx]
	}

	return c, handles, nil
}
