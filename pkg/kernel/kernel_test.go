package kernel

import "testing"

func TestBoundsSize(t *testing.T) {
	tests := []struct {
		name  string
		b     Bounds
		w, h  float64
		empty bool
	}{
		{"zero", Bounds{}, 0, 0, true},
		{"line", Bounds{Min: [2]float64{0, 5}, Max: [2]float64{10, 5}}, 10, 0, true},
		{"box", Bounds{Min: [2]float64{-1, -2}, Max: [2]float64{3, 4}}, 4, 6, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.Width(); got != tt.w {
				t.Errorf("Width() = %v, want %v", got, tt.w)
			}
			if got := tt.b.Height(); got != tt.h {
				t.Errorf("Height() = %v, want %v", got, tt.h)
			}
			if got := tt.b.IsEmpty(); got != tt.empty {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.empty)
			}
		})
	}
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{Min: [2]float64{0, 0}, Max: [2]float64{10, 20}}
	tests := []struct {
		x, y float64
		want bool
	}{
		{5, 5, true},
		{0, 0, true},
		{10, 20, true},
		{-0.1, 5, false},
		{5, 20.1, false},
	}
	for _, tt := range tests {
		if got := b.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestBoundsUnionAndExpand(t *testing.T) {
	a := Bounds{Min: [2]float64{0, 0}, Max: [2]float64{1, 1}}
	b := Bounds{Min: [2]float64{-5, 2}, Max: [2]float64{0, 8}}
	u := a.Union(b)
	want := Bounds{Min: [2]float64{-5, 0}, Max: [2]float64{1, 8}}
	if u != want {
		t.Errorf("Union = %+v, want %+v", u, want)
	}
	e := a.Expand(2)
	if e.Min != [2]float64{-2, -2} || e.Max != [2]float64{3, 3} {
		t.Errorf("Expand = %+v", e)
	}
}
