// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx 2D signed distance functions.
package sdfx

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/paint/pkg/kernel"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// ErrNoRegions is returned by Union when called without arguments.
var ErrNoRegions = errors.New("sdfx: union of no regions")

// sdfxRegion wraps an sdf.SDF2 to implement kernel.Region.
type sdfxRegion struct {
	s sdf.SDF2
}

// Bounds returns the axis-aligned bounding box.
func (r *sdfxRegion) Bounds() kernel.Bounds {
	bb := r.s.BoundingBox()
	return kernel.Bounds{
		Min: [2]float64{bb.Min.X, bb.Min.Y},
		Max: [2]float64{bb.Max.X, bb.Max.Y},
	}
}

// Distance evaluates the signed distance function at (x, y).
func (r *sdfxRegion) Distance(x, y float64) float64 {
	return r.s.Evaluate(v2.Vec{X: x, Y: y})
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// unwrap extracts the underlying sdf.SDF2 from a kernel.Region.
func unwrap(r kernel.Region) (sdf.SDF2, error) {
	sr, ok := r.(*sdfxRegion)
	if !ok {
		return nil, fmt.Errorf("sdfx: foreign region %T", r)
	}
	return sr.s, nil
}

// wrap creates a kernel.Region from an sdf.SDF2.
func wrap(s sdf.SDF2) kernel.Region {
	return &sdfxRegion{s: s}
}

// Circle creates a disc centred on (cx, cy).
func (k *SdfxKernel) Circle(cx, cy, radius float64) (kernel.Region, error) {
	s, err := sdf.Circle2D(radius)
	if err != nil {
		return nil, fmt.Errorf("sdfx: circle: %w", err)
	}
	return k.Translate(wrap(s), cx, cy), nil
}

// Box creates the box spanned by two opposite corners in any order.
// sdf.Box2D centers the box at the origin, so we translate to the midpoint.
func (k *SdfxKernel) Box(x0, y0, x1, y1 float64) (kernel.Region, error) {
	w, h := math.Abs(x1-x0), math.Abs(y1-y0)
	if math.IsNaN(w) || math.IsNaN(h) {
		return nil, fmt.Errorf("sdfx: box: invalid corners (%v,%v) (%v,%v)", x0, y0, x1, y1)
	}
	s := sdf.Box2D(v2.Vec{X: w, Y: h}, 0)
	return k.Translate(wrap(s), (x0+x1)/2, (y0+y1)/2), nil
}

// Stroke builds a capsule: a box as long as the segment plus the width,
// fully rounded at both ends, then rotated onto the segment.
func (k *SdfxKernel) Stroke(x0, y0, x1, y1, width float64) (kernel.Region, error) {
	if width < 0 {
		return nil, fmt.Errorf("sdfx: stroke: negative width %v", width)
	}
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	s := sdf.Box2D(v2.Vec{X: length + width, Y: width}, width/2)

	m := sdf.Translate2d(v2.Vec{X: (x0 + x1) / 2, Y: (y0 + y1) / 2}).Mul(sdf.Rotate2d(math.Atan2(dy, dx)))
	return wrap(sdf.Transform2D(s, m)), nil
}

// Union returns the union of the given regions.
func (k *SdfxKernel) Union(rs ...kernel.Region) (kernel.Region, error) {
	if len(rs) == 0 {
		return nil, ErrNoRegions
	}
	if len(rs) == 1 {
		return rs[0], nil
	}
	parts := make([]sdf.SDF2, len(rs))
	for i, r := range rs {
		s, err := unwrap(r)
		if err != nil {
			return nil, err
		}
		parts[i] = s
	}
	return wrap(sdf.Union2D(parts...)), nil
}

// Translate moves a region by (dx, dy). Foreign regions are returned
// unchanged.
func (k *SdfxKernel) Translate(r kernel.Region, dx, dy float64) kernel.Region {
	s, err := unwrap(r)
	if err != nil {
		return r
	}
	if dx == 0 && dy == 0 {
		return r
	}
	return wrap(sdf.Transform2D(s, sdf.Translate2d(v2.Vec{X: dx, Y: dy})))
}
