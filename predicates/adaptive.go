package predicates

import (
	"math"

	"github.com/latticecdt/cdt/algorithm/robust"
	"github.com/latticecdt/cdt/types"
)

// Orient2D returns the orientation of triangle (a,b,c): +1 for a
// counter-clockwise turn, -1 for clockwise, 0 for collinear. It
// evaluates the determinant in float64 with an adaptive error filter and
// falls back to exact big.Float arithmetic only when the fast result falls
// within the filter's uncertainty band.
func Orient2D(a, b, c types.Point) int {
	return robust.Orient2D(a, b, c)
}

// InCircle tests point d against the circumcircle of (a,b,c), assumed CCW.
// Positive means d is inside the circle, negative outside, zero cocircular.
func InCircle(a, b, c, d types.Point) int {
	return robust.InCircle(a, b, c, d)
}

const underflowThreshold = 1e-300

// SnapUnderflow replaces magnitudes too small to participate meaningfully
// in orientation/incircle arithmetic with exact zero, avoiding spurious
// sign flips from denormalized floats.
func SnapUnderflow(x float64) float64 {
	if math.Abs(x) < underflowThreshold {
		return 0
	}
	return x
}

// ValidateCoordinate rejects NaN, infinite, or out-of-bounds coordinates.
// limit <= 0 disables the bounds check.
func ValidateCoordinate(x, y, limit float64) error {
	if math.IsNaN(x) || math.IsNaN(y) {
		return &InsertionError{Reason: ReasonNaN, X: x, Y: y}
	}
	if math.IsInf(x, 0) || math.IsInf(y, 0) {
		return &InsertionError{Reason: ReasonInfinite, X: x, Y: y}
	}
	if limit > 0 && (math.Abs(x) > limit || math.Abs(y) > limit) {
		return &InsertionError{Reason: ReasonOutOfBounds, X: x, Y: y}
	}
	return nil
}

// PseudoAngle returns a monotone, arithmetic-only substitute for
// atan2(p.Y-center.Y, p.X-center.X), mapped into [0, 1). It preserves
// angular ordering without computing a trigonometric function, which is
// what the hull index's bucket lookup relies on.
func PseudoAngle(p, center types.Point) float64 {
	dx := p.X - center.X
	dy := p.Y - center.Y
	adx, ady := math.Abs(dx), math.Abs(dy)
	denom := adx + ady
	var a float64
	if denom == 0 {
		a = 0
	} else {
		a = ady / denom
	}
	switch {
	case dx >= 0 && dy >= 0:
		// first quadrant, a in [0,1]
	case dx < 0 && dy >= 0:
		a = 2 - a
	case dx < 0 && dy < 0:
		a = 2 + a
	default:
		a = 4 - a
	}
	return a / 4
}

// SegmentIntersection computes the intersection point of segments (a1,a2)
// and (b1,b2) in double precision, regardless of the caller's storage
// width. ok is false for parallel (including collinear) segments; the
// caller is expected to handle the collinear/touching cases separately via
// PointOnSegment, matching SegmentIntersectionPoint's IntersectionType
// classification.
func SegmentIntersection(a1, a2, b1, b2 types.Point) (types.Point, bool) {
	intersects, t, u := robust.SegmentIntersect(a1, a2, b1, b2)
	if !intersects || math.IsNaN(t) || math.IsNaN(u) {
		return types.Point{}, false
	}
	return types.Point{X: a1.X + t*(a2.X-a1.X), Y: a1.Y + t*(a2.Y-a1.Y)}, true
}
