package someline15

import (
	"math"
	"testing"

	"github.com/someline/someline/sdf"
	"gonum.org/v1/gonum/spatial/r3"
)

type probe struct {
	name  string
	p     r3.Vec
	solid bool
}

func checkProbes(t *testing.T, s sdf.SDF3, probes []probe) {
	t.Helper()
	for _, pr := range probes {
		d := s.Evaluate(pr.p)
		if pr.solid != (d < 0) {
			t.Errorf("%s: %v got distance %g, want solid=%v", pr.name, pr.p, d, pr.solid)
		}
	}
}

func TestUnitToLength(t *testing.T) {
	for u, want := range map[int]float64{1: 33.25, 2: 66.5, 3: 100.75, 5: 169.25} {
		if got := UnitToLength(u); math.Abs(got-want) > 1e-9 {
			t.Errorf("UnitToLength(%d) = %g, want %g", u, got, want)
		}
	}
}

func TestMakeSingle(t *testing.T) {
	const W = 25
	s, err := Make(1, W)
	if err != nil {
		t.Fatal(err)
	}
	checkProbes(t, s, []probe{
		{"floor", r3.Vec{X: 16, Y: W / 2, Z: 0.5}, true},
		{"cavity", r3.Vec{X: 16, Y: W / 2, Z: 10}, false},
		{"handle", r3.Vec{X: 16, Y: W - 3, Z: Height - 0.4}, true},
		{"front wall", r3.Vec{X: 16, Y: 0.6, Z: 10}, true},
	})
	if _, err := Make(0, W); err == nil {
		t.Error("expected error for zero units")
	}
}

func TestMakeCutouts(t *testing.T) {
	s, err := Make(3, Width)
	if err != nil {
		t.Fatal(err)
	}
	checkProbes(t, s, []probe{
		{"front pocket", r3.Vec{X: OuterRow, Y: 0.3, Z: 5}, false},
		{"pad", r3.Vec{X: OuterRow, Y: 2.6, Z: 5}, true},
		{"back pocket", r3.Vec{X: OuterRow + InnerRow, Y: Width - 0.3, Z: 5}, false},
		{"back pad", r3.Vec{X: OuterRow + InnerRow, Y: Width - 2.6, Z: 5}, true},
		{"plain wall", r3.Vec{X: 50, Y: 0.6, Z: 5}, true},
		{"short handle", r3.Vec{X: 20, Y: Width - 3, Z: Height - 0.4}, true},
		{"past handle", r3.Vec{X: 50, Y: Width - 3, Z: Height - 0.4}, false},
	})
}

func TestMakeCap(t *testing.T) {
	s, err := MakeCap()
	if err != nil {
		t.Fatal(err)
	}
	checkProbes(t, s, []probe{
		{"bottom", r3.Vec{X: 10, Z: 0.8}, true},
		{"groove", r3.Vec{X: 10, Z: 0.2}, false},
		{"hollow", r3.Vec{X: 5, Z: 2}, false},
		{"hook", r3.Vec{X: 14.2, Z: 2.35}, true},
		{"pin slot", r3.Vec{X: 2.2, Y: -9, Z: 2.5}, false},
		{"below pin slot", r3.Vec{X: 2.2, Y: -9, Z: 1}, true},
		{"lowered top", r3.Vec{X: 10, Y: -9, Z: 5}, false},
		{"back wall", r3.Vec{X: 0.5, Y: -9, Z: 5}, true},
		{"back chamfer", r3.Vec{X: 0.2, Z: 0.3}, false},
		{"front chamfer", r3.Vec{X: capLength - 0.2, Z: 0.1}, false},
		{"sharp side bottom edge", r3.Vec{X: 5, Y: capWidth/2 - 0.15, Z: 0.2}, true},
		{"rounded corner", r3.Vec{X: 21.5, Y: 9.15, Z: 3}, false},
	})
}

func TestProject(t *testing.T) {
	p := Project()
	want := []string{"U0", "U1", "U2", "U3", "U4", "U5", "cap"}
	got := p.Names()
	if len(got) != len(want) {
		t.Fatalf("got models %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("model %d is %s, want %s", i, got[i], want[i])
		}
	}
	if p.Grid != nil {
		t.Error("someline-15 is packed, not laid out on a grid")
	}
	for _, m := range p.Models() {
		if m.Color != Color {
			t.Errorf("%s has color %v", m.Name, m.Color)
		}
		if _, err := m.Part(); err != nil {
			t.Error(err)
		}
	}
}
