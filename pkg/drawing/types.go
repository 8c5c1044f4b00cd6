package drawing

import (
	"fmt"
	"image/color"
)

// Point is an integer position on the drawing surface.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Color is an RGB triple. Channels are meant to lie in [0, 255] but are
// stored exactly as written in a save file; see Valid.
type Color struct {
	R, G, B int
}

// RGB is shorthand for Color{R: r, G: g, B: b}.
func RGB(r, g, b int) Color {
	return Color{R: r, G: g, B: b}
}

// Valid reports whether every channel lies in [0, 255].
func (c Color) Valid() bool {
	return inByte(c.R) && inByte(c.G) && inByte(c.B)
}

// NRGBA converts to an opaque image/color value, clamping each channel.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: clampByte(c.R), G: clampByte(c.G), B: clampByte(c.B), A: 0xff}
}

func (c Color) String() string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

func inByte(v int) bool {
	return v >= 0 && v <= 255
}

func clampByte(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

// Style holds the attributes shared by every shape.
type Style struct {
	Color  Color
	Filled bool
}
