package rasterize

// Option configures rasterization.
type Option func(*Config)

// WithDimensions sets the output image dimensions.
func WithDimensions(width, height int) Option {
	return func(c *Config) {
		if width > 0 {
			c.Width = width
		}
		if height > 0 {
			c.Height = height
		}
	}
}

// WithVertexLabels enables or disables vertex ID labels.
func WithVertexLabels(enable bool) Option {
	return func(c *Config) {
		c.VertexLabels = enable
	}
}

// WithEdgeLabels enables or disables edge labels.
func WithEdgeLabels(enable bool) Option {
	return func(c *Config) {
		c.EdgeLabels = enable
	}
}

// WithTriangleLabels enables or disables triangle labels.
func WithTriangleLabels(enable bool) Option {
	return func(c *Config) {
		c.TriangleLabels = enable
	}
}

// WithFillTriangles enables or disables triangle fills.
func WithFillTriangles(enable bool) Option {
	return func(c *Config) {
		c.FillTriangles = enable
	}
}

// WithDebugElement adds a labeled line segment overlay from (sx, sy) to
// (tx, ty), in mesh coordinates.
func WithDebugElement(name string, sx, sy, tx, ty float64) Option {
	return func(c *Config) {
		c.DebugElements = append(c.DebugElements, DebugElement{
			Name: name, SourceX: sx, SourceY: sy, TargetX: tx, TargetY: ty,
		})
	}
}

// WithDebugLocation adds a labeled point overlay at (x, y), in mesh
// coordinates.
func WithDebugLocation(name string, x, y float64) Option {
	return func(c *Config) {
		c.DebugLocations = append(c.DebugLocations, DebugLocation{Name: name, X: x, Y: y})
	}
}
