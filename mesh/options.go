package mesh

import "github.com/latticecdt/cdt/types"

// WithMergeDistance records the merge tolerance that duplicate points
// were already collapsed under (typically by bulk.LoadStable's
// algorithm/pslg.EpsilonMerge pre-pass, or a kernel's WithEpsilon) so
// downstream consumers of the Mesh snapshot - diagnostics, rasterize's
// vertex picking - know what tolerance to treat two close vertices as
// the same point under, the same merge-radius idiom as the teacher's
// mesh.WithMergeDistance.
func WithMergeDistance(eps types.Epsilon) Option {
	return func(c *config) {
		c.mergeEpsilon = eps
	}
}
