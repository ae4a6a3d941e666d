package core

import (
	"math"
	"testing"
)

func TestHit(t *testing.T) {
	tests := []struct {
		name     string
		p1       Vec2
		r1       float64
		p2       Vec2
		r2       float64
		expected bool
	}{
		{"same point zero radius", V(10, 10), 0, V(10, 10), 0, true},
		{"same point large radius", V(10, 10), 7, V(10, 10), 7, true},
		{"touching exactly", V(0, 0), 3, V(7, 0), 4, true},
		{"just apart", V(0, 0), 3, V(7.01, 0), 4, false},
		{"diagonal inside", V(0, 0), 5, V(3, 4), 0, true},
		{"diagonal outside", V(0, 0), 4.9, V(3, 4), 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Hit(tc.p1, tc.r1, tc.p2, tc.r2)
			if result != tc.expected {
				t.Errorf("Hit() = %v, expected %v", result, tc.expected)
			}
			// Also test symmetry
			resultReverse := Hit(tc.p2, tc.r2, tc.p1, tc.r1)
			if resultReverse != tc.expected {
				t.Errorf("Hit() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestHitPure(t *testing.T) {
	p1, p2 := V(1, 2), V(3, 4)
	Hit(p1, 1, p2, 1)
	if p1 != V(1, 2) || p2 != V(3, 4) {
		t.Error("Hit must not modify its arguments")
	}
}

func TestOutOfArena(t *testing.T) {
	tests := []struct {
		name     string
		p        Vec2
		expected bool
	}{
		{"center", V(240, 135), false},
		{"origin", V(0, 0), false},
		{"far corner", V(480, 270), false},
		{"left", V(-0.1, 100), true},
		{"top", V(100, -0.1), true},
		{"right", V(480.1, 100), true},
		{"bottom", V(100, 270.1), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := OutOfArena(tc.p); got != tc.expected {
				t.Errorf("OutOfArena(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestClampToArena(t *testing.T) {
	got := ClampToArena(V(-10, 300))
	if got != V(0, 270) {
		t.Errorf("ClampToArena() = %v, expected (0, 270)", got)
	}
}

func TestVecBearingAndPolar(t *testing.T) {
	from := V(0, 0)
	to := V(0, 10)

	angle := from.Bearing(to)
	if math.Abs(angle-math.Pi/2) > 1e-9 {
		t.Errorf("Bearing() = %f, expected pi/2", angle)
	}

	step := Polar(angle, 5)
	if math.Abs(step.X) > 1e-9 || math.Abs(step.Y-5) > 1e-9 {
		t.Errorf("Polar() = %v, expected (0, 5)", step)
	}

	if d := V(1, 1).DistSq(V(4, 5)); d != 25 {
		t.Errorf("DistSq() = %f, expected 25", d)
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestFrameClock(t *testing.T) {
	c := NewFrameClock(0)
	for i := 0; i < 60; i++ {
		c.Advance(1.0 / 60.0)
	}
	if c.NowMs() != 1000 {
		t.Errorf("NowMs() after 60 frames = %d, expected 1000", c.NowMs())
	}

	c.Advance(-1)
	if c.NowMs() != 1000 {
		t.Errorf("negative Advance moved the clock to %d", c.NowMs())
	}

	c.Set(500)
	if c.NowMs() != 1000 {
		t.Errorf("Set to an earlier time moved the clock to %d", c.NowMs())
	}

	c.Set(1200)
	if c.NowMs() != 1200 {
		t.Errorf("NowMs() after Set(1200) = %d", c.NowMs())
	}
}

func TestInputDirection(t *testing.T) {
	in := NewInputFrame()
	in.Set(ActionUp)
	in.Set(ActionRight)

	if d := in.Direction(); d != V(1, -1) {
		t.Errorf("Direction() = %v, expected (1, -1)", d)
	}

	in.Clear()
	if d := in.Direction(); d != V(0, 0) {
		t.Errorf("Direction() after Clear = %v, expected zero", d)
	}
}
