// Package kernel defines the abstract 2D geometry kernel interface.
// Implementations model each shape as a region with a signed distance
// function, which gives hit testing and bounds without rasterizing.
// The kernel abstraction allows swapping backends without changing the
// rest of the system.
package kernel

// Region is an opaque handle to a kernel region.
// Implementations wrap their internal representation.
type Region interface {
	// Bounds returns the axis-aligned bounding box.
	Bounds() Bounds
	// Distance returns the signed distance from (x, y) to the region's
	// boundary: negative inside, positive outside.
	Distance(x, y float64) float64
}

// Kernel is the abstract 2D geometry kernel interface.
// Coordinates are drawing units with y growing downwards.
type Kernel interface {
	// Primitives
	Circle(cx, cy, radius float64) (Region, error)
	Box(x0, y0, x1, y1 float64) (Region, error)
	// Stroke is the segment from (x0, y0) to (x1, y1) thickened to width
	// with round caps.
	Stroke(x0, y0, x1, y1, width float64) (Region, error)

	// Boolean operations
	Union(rs ...Region) (Region, error)

	// Transforms
	Translate(r Region, dx, dy float64) Region
}
