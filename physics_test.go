package voronoi

import (
	"math"
	"testing"
)

func TestPhysicsVelocityStaysUnitLength(t *testing.T) {
	sc := NewSiteCollection([]Position{{X: 10, Y: 10}, {X: 20, Y: 5}, {X: 3, Y: 3}}, 42)
	rng := NewPRNG(1)
	var p Physics

	for step := 0; step < 300; step++ {
		p.Step(sc, rng, 15, 0.01, 0, 3, 3, nil, 100, 100)
	}

	for i := 0; i < sc.Len(); i++ {
		vx, vy := sc.Velocity(i)
		n := math.Hypot(vx, vy)
		if n < 1-1e-6 || n > 1+1e-6 {
			t.Fatalf("site %d: |v| = %v, want ~1", i, n)
		}
	}
}

func TestPhysicsKeepsSitesInBounds(t *testing.T) {
	sc := NewSiteCollection([]Position{{X: 1, Y: 1}, {X: 99, Y: 99}}, 5)
	rng := NewPRNG(2)
	var p Physics

	for step := 0; step < 300; step++ {
		p.Step(sc, rng, 15, 0.01, 0, 3, 3, nil, 100, 100)
		for i := 0; i < sc.Len(); i++ {
			pos := sc.Position(i)
			if pos.X < 0 || pos.X >= 100 || pos.Y < 0 || pos.Y >= 100 {
				t.Fatalf("step %d site %d out of bounds: %v", step, i, pos)
			}
		}
	}
}

func TestPhysicsMostSitesMove(t *testing.T) {
	n := 50
	positions := make([]Position, n)
	for i := range positions {
		positions[i] = Position{X: float64(i%100) + 0.5, Y: float64((i*7)%100) + 0.5}
	}
	sc := NewSiteCollection(positions, 42)
	start := sc.Clone()

	rng := NewPRNG(42)
	var p Physics
	for step := 0; step < 300; step++ {
		p.Step(sc, rng, 15, 0.01, 0, 3, 3, nil, 100, 100)
	}

	moved := 0
	for i := 0; i < sc.Len(); i++ {
		if sc.Position(i).DistSq(start.Position(i)) > 0 {
			moved++
		}
	}
	if float64(moved)/float64(n) < 0.95 {
		t.Fatalf("only %d/%d sites moved, want >= 95%%", moved, n)
	}
}

func TestReflectBoundaryInvariant(t *testing.T) {
	sc := NewSiteCollection([]Position{{X: 0, Y: 0}}, 1)
	sc.SetVelocity(0, -1, 0)
	rng := NewPRNG(1)
	var p Physics

	speed, dt := 10.0, 1.0
	p.Step(sc, rng, speed, dt, 0, 0, 0, nil, 100, 100)

	pos := sc.Position(0)
	if math.Abs(pos.X-speed*dt) > 1e-9 {
		t.Fatalf("x = %v, want %v", pos.X, speed*dt)
	}
	if pos.Y != 0 {
		t.Fatalf("y = %v, want 0", pos.Y)
	}
	vx, vy := sc.Velocity(0)
	if vx <= 0 {
		t.Fatalf("vx = %v, want positive after reflection", vx)
	}
	if vy != 0 {
		t.Fatalf("vy = %v, want 0", vy)
	}
}

func TestReflectHelper(t *testing.T) {
	cases := []struct {
		v, max   float64
		wantFlip bool
	}{
		{-1, 100, true},
		{101, 100, true},
		{50, 100, false},
		{0, 100, false},
	}
	for _, c := range cases {
		got, flipped := reflect(c.v, c.max)
		if flipped != c.wantFlip {
			t.Errorf("reflect(%v, %v) flipped = %v, want %v", c.v, c.max, flipped, c.wantFlip)
		}
		if got < 0 || got >= c.max {
			t.Errorf("reflect(%v, %v) = %v, out of [0,%v)", c.v, c.max, got, c.max)
		}
	}
}
