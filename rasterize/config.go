package rasterize

import "image/color"

// Config holds options for rasterizing a mesh to an image.
type Config struct {
	Width  int
	Height int

	Background      color.Color
	VertexColor     color.Color
	EdgeColor       color.Color
	TriangleColor   color.Color
	HullColor       color.Color
	ConstraintColor color.Color

	FillTriangles   bool
	DrawVertices    bool
	DrawEdges       bool
	DrawHull        bool
	DrawConstraints bool

	VertexLabels   bool
	EdgeLabels     bool
	TriangleLabels bool

	// DebugElements and DebugLocations overlay ad hoc markers on top of
	// everything else, for visualizing algorithm state (a walk path, a
	// rejected location) rather than the mesh itself.
	DebugElements  []DebugElement
	DebugLocations []DebugLocation
}

// DebugElement is a labeled line segment drawn over the rasterized mesh.
type DebugElement struct {
	Name                                string
	SourceX, SourceY, TargetX, TargetY float64
}

// DebugLocation is a labeled point drawn over the rasterized mesh.
type DebugLocation struct {
	Name string
	X, Y float64
}

// DefaultConfig returns sensible default rasterization settings.
func DefaultConfig() Config {
	return Config{
		Width:  800,
		Height: 600,

		Background:      color.RGBA{R: 255, G: 255, B: 255, A: 255}, // White
		VertexColor:     color.RGBA{R: 0, G: 0, B: 0, A: 255},       // Black
		EdgeColor:       color.RGBA{R: 64, G: 64, B: 64, A: 255},    // Dark gray
		TriangleColor:   color.RGBA{R: 100, G: 100, B: 255, A: 128}, // Semi-transparent blue
		HullColor:       color.RGBA{R: 0, G: 128, B: 0, A: 255},     // Green
		ConstraintColor: color.RGBA{R: 255, G: 0, B: 0, A: 255},     // Red

		FillTriangles:   true,
		DrawVertices:    true,
		DrawEdges:       true,
		DrawHull:        true,
		DrawConstraints: true,

		VertexLabels:   false,
		EdgeLabels:     false,
		TriangleLabels: false,
	}
}
