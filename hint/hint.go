// Package hint provides pluggable point-location starting hints for the
// triangulation kernel, generalizing the single "last visited triangle"
// field the teacher's Locator kept into a small interface so incremental
// insertion and bulk loading can each supply the hint strategy that suits
// their access pattern.
package hint

import "github.com/latticecdt/cdt/types"

// Generator supplies a starting half-edge for point location and is kept
// informed of mutations so its hint stays close to the query locality.
type Generator interface {
	// GetHint returns a half-edge to start a locate walk from, or
	// types.NilHalfEdge if the generator has nothing useful to suggest
	// yet (an empty or just-initialized triangulation).
	GetHint(target types.Point) types.HalfEdgeID

	// NotifyVertexInserted is called after a vertex is successfully
	// inserted, along with one half-edge incident to it.
	NotifyVertexInserted(v types.VertexID, incident types.HalfEdgeID)

	// NotifyVertexLookup is called after a successful locate, regardless
	// of whether the point was subsequently inserted.
	NotifyVertexLookup(incident types.HalfEdgeID)

	// NotifyVertexRemoved is called before a vertex is removed.
	NotifyVertexRemoved(v types.VertexID)

	// InitializeFromTriangulation resets the generator's internal state
	// from an existing triangulation, e.g. after a bulk load seeds the
	// structure directly rather than through incremental insertion.
	InitializeFromTriangulation(anyFaceEdge types.HalfEdgeID)
}

// LastUsed is the default Generator: it remembers the single most
// recently touched half-edge, mirroring cdt/locate.go's Locator.last
// field from the teacher.
type LastUsed struct {
	last types.HalfEdgeID
}

// NewLastUsed returns a LastUsed hint generator with no hint yet.
func NewLastUsed() *LastUsed {
	return &LastUsed{last: types.NilHalfEdge}
}

func (g *LastUsed) GetHint(types.Point) types.HalfEdgeID { return g.last }

func (g *LastUsed) NotifyVertexInserted(_ types.VertexID, incident types.HalfEdgeID) {
	if incident.IsValid() {
		g.last = incident
	}
}

func (g *LastUsed) NotifyVertexLookup(incident types.HalfEdgeID) {
	if incident.IsValid() {
		g.last = incident
	}
}

func (g *LastUsed) NotifyVertexRemoved(types.VertexID) {
	// The remembered half-edge may have just been freed; the kernel
	// revalidates hints before using them, so nothing to do here.
}

func (g *LastUsed) InitializeFromTriangulation(anyFaceEdge types.HalfEdgeID) {
	g.last = anyFaceEdge
}
