// Package triangulation implements the incremental Delaunay kernel: point
// location, insertion with Delaunay legalization, and vertex removal. It
// knows nothing about constraint edges; package cdt layers that on top via
// the LegalHook.
package triangulation

import (
	"github.com/latticecdt/cdt/dcel"
	"github.com/latticecdt/cdt/hint"
	"github.com/latticecdt/cdt/hull"
	"github.com/latticecdt/cdt/predicates"
	"github.com/latticecdt/cdt/types"
)

// LegalHook lets a caller (package cdt) mark some edges as exempt from
// Delaunay legalization because they carry a user constraint. A nil hook
// means every edge is flippable, i.e. a plain Delaunay triangulation.
type LegalHook func(u, v types.VertexID) bool

// Kernel is the incremental triangulation engine shared by plain Delaunay
// triangulations and the constrained layer in package cdt.
type Kernel struct {
	store *dcel.Store
	hull  *hull.Index
	hint  hint.Generator
	eps   types.Epsilon
	legal LegalHook

	// pending holds vertices inserted before three non-collinear points
	// are known, i.e. before the first face can be created.
	pending []types.VertexID

	coordLimit float64
}

// Config carries the kernel's tunable knobs, set through Option values.
type Config struct {
	Epsilon     types.Epsilon
	CoordLimit  float64
	HintGen     hint.Generator
	InitialCap  int
	LegalHook   LegalHook
}

// Option configures a Kernel at construction time.
type Option func(*Config)

// WithEpsilon sets the merge/comparison tolerance.
func WithEpsilon(e types.Epsilon) Option { return func(c *Config) { c.Epsilon = e } }

// WithCoordLimit rejects coordinates whose magnitude exceeds limit.
// limit <= 0 disables the check.
func WithCoordLimit(limit float64) Option { return func(c *Config) { c.CoordLimit = limit } }

// WithHintGenerator overrides the default last-used-vertex hint strategy.
func WithHintGenerator(g hint.Generator) Option { return func(c *Config) { c.HintGen = g } }

// WithInitialCapacity sizes the arenas for an expected vertex count.
func WithInitialCapacity(n int) Option { return func(c *Config) { c.InitialCap = n } }

// WithLegalHook installs the constraint predicate; used internally by
// package cdt, not ordinarily by callers building a plain Delaunay kernel.
func WithLegalHook(h LegalHook) Option { return func(c *Config) { c.LegalHook = h } }

// New creates an empty kernel.
func New(opts ...Option) *Kernel {
	cfg := Config{Epsilon: types.DefaultEpsilon(), HintGen: hint.NewLastUsed()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Kernel{
		store:      dcel.New(cfg.InitialCap),
		hint:       cfg.HintGen,
		eps:        cfg.Epsilon,
		legal:      cfg.LegalHook,
		coordLimit: cfg.CoordLimit,
	}
}

// Store exposes the underlying DCEL for read-only traversal by mesh
// export and diagnostics. Mutation must go through Kernel methods so the
// hull and hint stay consistent.
func (k *Kernel) Store() *dcel.Store { return k.store }

// Hull exposes the convex hull index for diagnostics and bulk loading.
func (k *Kernel) Hull() *hull.Index { return k.hull }

// SetLegalHook installs or clears the constraint predicate. Exposed for
// package cdt, which wraps a Kernel and must wire its own constraint map
// in after construction.
func (k *Kernel) SetLegalHook(h LegalHook) { k.legal = h }

// NumVertices reports the number of live vertices.
func (k *Kernel) NumVertices() int { return k.store.NumVertices() }

// isIllegal reports whether the edge of half-edge h violates the Delaunay
// condition and should be flipped. Hull edges and constrained edges (per
// the LegalHook) are never illegal.
func (k *Kernel) isIllegal(h types.HalfEdgeID) bool {
	twin := k.store.Twin(h)
	if !twin.IsValid() {
		return false
	}
	u, v := k.store.Origin(h), k.store.Destination(h)
	if k.legal != nil && k.legal(u, v) {
		return false
	}

	faceHE := [3]types.HalfEdgeID{h, k.store.Next(h), k.store.Prev(h)}
	twinFaceHE := [3]types.HalfEdgeID{twin, k.store.Next(twin), k.store.Prev(twin)}
	apex1 := thirdVertex(k.store, faceHE, h)
	apex2 := thirdVertex(k.store, twinFaceHE, twin)

	a := k.store.Point(u)
	b := k.store.Point(v)
	c := k.store.Point(apex1)
	d := k.store.Point(apex2)

	// InCircle(a,b,c,d) assumes a,b,c CCW; face h is already CCW with
	// (u, v, apex1) order since h.origin=u, next.origin=v.
	return predicates.InCircle(a, b, c, d) > 0
}

func thirdVertex(s *dcel.Store, faceHE [3]types.HalfEdgeID, h types.HalfEdgeID) types.VertexID {
	origin := s.Origin(h)
	dest := s.Destination(h)
	for _, fh := range faceHE {
		o := s.Origin(fh)
		if o != origin && o != dest {
			return o
		}
	}
	panic("triangulation: degenerate face")
}
