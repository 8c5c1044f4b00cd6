package kernel

// Bounds is an axis-aligned box. The zero value is an empty box at the
// origin.
type Bounds struct {
	Min [2]float64 `json:"min"`
	Max [2]float64 `json:"max"`
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 {
	return b.Max[0] - b.Min[0]
}

// Height returns the vertical extent.
func (b Bounds) Height() float64 {
	return b.Max[1] - b.Min[1]
}

// IsEmpty returns true if the box has no area.
func (b Bounds) IsEmpty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// Contains reports whether (x, y) lies inside or on the box.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.Min[0] && x <= b.Max[0] && y >= b.Min[1] && y <= b.Max[1]
}

// Union returns the smallest box holding both boxes.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		Min: [2]float64{min(b.Min[0], o.Min[0]), min(b.Min[1], o.Min[1])},
		Max: [2]float64{max(b.Max[0], o.Max[0]), max(b.Max[1], o.Max[1])},
	}
}

// Expand grows the box by d on every side.
func (b Bounds) Expand(d float64) Bounds {
	return Bounds{
		Min: [2]float64{b.Min[0] - d, b.Min[1] - d},
		Max: [2]float64{b.Max[0] + d, b.Max[1] + d},
	}
}
