package world

import (
	"math/rand"
	"testing"
)

func visibleSet(points []Point) map[Point]bool {
	set := make(map[Point]bool, len(points))
	for _, p := range points {
		set[p] = true
	}
	return set
}

func randomCave(r *rand.Rand, width, height int, wallChance float64) *Map {
	m := NewMap(1, width, height, "random")
	for i := range m.Tiles {
		if r.Float64() >= wallChance {
			m.Tiles[i] = Floor
		}
	}
	return m
}

var fovVariants = []struct {
	name string
	fn   FOVFunc
}{
	{"recursive", FieldOfView},
	{"sweep", FieldOfViewSweep},
}

func TestFOVOriginAlwaysVisible(t *testing.T) {
	m := NewMap(1, 5, 5, "solid")
	for _, v := range fovVariants {
		t.Run(v.name, func(t *testing.T) {
			for _, radius := range []int{0, 1, 8} {
				got := visibleSet(v.fn(Pt(2, 2), radius, m))
				if !got[Pt(2, 2)] {
					t.Errorf("radius %d: origin not visible", radius)
				}
			}
			// Even inside solid rock the neighbouring walls are seen
			got := visibleSet(v.fn(Pt(2, 2), 1, m))
			if !got[Pt(2, 1)] || !got[Pt(3, 2)] {
				t.Error("adjacent walls not visible from inside rock")
			}
		})
	}
}

func TestFOVOpenRoomSeesEverything(t *testing.T) {
	m := mapFromRows(
		"###########",
		"#.........#",
		"#.........#",
		"#.........#",
		"#.........#",
		"#.........#",
		"#.........#",
		"#.........#",
		"#.........#",
		"#.........#",
		"###########",
	)
	for _, v := range fovVariants {
		t.Run(v.name, func(t *testing.T) {
			got := visibleSet(v.fn(Pt(5, 5), 10, m))
			if len(got) != m.Size() {
				t.Errorf("visible %d tiles, want %d", len(got), m.Size())
			}
		})
	}
}

func TestFOVRespectsRadius(t *testing.T) {
	m := NewMap(1, 21, 21, "open")
	m.Fill(Floor)
	origin := Pt(10, 10)
	for _, v := range fovVariants {
		t.Run(v.name, func(t *testing.T) {
			for _, p := range v.fn(origin, 4, m) {
				if p.DistanceSquared(origin) > 16 {
					t.Errorf("%v is outside radius 4", p)
				}
			}
			got := visibleSet(v.fn(origin, 4, m))
			if !got[Pt(14, 10)] || !got[Pt(10, 6)] {
				t.Error("tiles at exactly the radius are not visible")
			}
			if got[Pt(14, 11)] {
				t.Error("tile just past the radius is visible")
			}
		})
	}
}

func TestFOVWallBlocksSight(t *testing.T) {
	m := mapFromRows(
		"#########",
		"#.......#",
		"#.......#",
		"#...#...#",
		"#.......#",
		"#.......#",
		"#########",
	)
	for _, v := range fovVariants {
		t.Run(v.name, func(t *testing.T) {
			got := visibleSet(v.fn(Pt(2, 3), 10, m))
			if !got[Pt(4, 3)] {
				t.Error("blocking wall itself is not visible")
			}
			if got[Pt(5, 3)] || got[Pt(6, 3)] {
				t.Error("tiles directly behind the wall are visible")
			}
			if !got[Pt(6, 1)] {
				t.Error("tile past the wall's shadow is not visible")
			}
		})
	}
}

func TestFOVOutOfBoundsOrigin(t *testing.T) {
	m := NewMap(1, 5, 5, "tiny")
	for _, v := range fovVariants {
		if got := v.fn(Pt(-1, 2), 5, m); got != nil {
			t.Errorf("%s: out-of-bounds origin returned %v", v.name, got)
		}
	}
}

func TestFOVNeverReturnsOutOfBounds(t *testing.T) {
	m := NewMap(1, 6, 4, "open")
	m.Fill(Floor)
	for _, v := range fovVariants {
		for _, p := range v.fn(Pt(0, 0), 10, m) {
			if !m.InBounds(p.X, p.Y) {
				t.Errorf("%s: returned out-of-bounds %v", v.name, p)
			}
		}
	}
}

func TestFOVSymmetry(t *testing.T) {
	const radius = 7
	r := rand.New(rand.NewSource(99))

	for trial := 0; trial < 5; trial++ {
		m := randomCave(r, 24, 18, 0.35)

		for _, v := range fovVariants {
			views := make(map[Point]map[Point]bool)
			for y := 0; y < m.Height; y++ {
				for x := 0; x < m.Width; x++ {
					if !m.IsOpaqueAt(x, y) {
						views[Pt(x, y)] = visibleSet(v.fn(Pt(x, y), radius, m))
					}
				}
			}

			for a, seenFromA := range views {
				for b, seenFromB := range views {
					if a == b || a.DistanceSquared(b) > radius*radius {
						continue
					}
					if seenFromA[b] != seenFromB[a] {
						t.Fatalf("%s trial %d: %v sees %v = %v, but reverse = %v",
							v.name, trial, a, b, seenFromA[b], seenFromB[a])
					}
				}
			}
		}
	}
}

func TestFOVVariantsAgree(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for trial := 0; trial < 10; trial++ {
		m := randomCave(r, 30, 20, 0.3)
		origin := Pt(r.Intn(m.Width), r.Intn(m.Height))
		radius := 3 + r.Intn(10)

		recursive := visibleSet(FieldOfView(origin, radius, m))
		sweep := visibleSet(FieldOfViewSweep(origin, radius, m))
		if len(recursive) != len(sweep) {
			t.Fatalf("trial %d: recursive saw %d tiles, sweep saw %d", trial, len(recursive), len(sweep))
		}
		for p := range recursive {
			if !sweep[p] {
				t.Fatalf("trial %d: %v seen by recursive only", trial, p)
			}
		}
	}
}

func TestFOVNoDuplicates(t *testing.T) {
	m := NewMap(1, 15, 15, "open")
	m.Fill(Floor)
	for _, v := range fovVariants {
		points := v.fn(Pt(7, 7), 6, m)
		if len(points) != len(visibleSet(points)) {
			t.Errorf("%s returned duplicate tiles", v.name)
		}
	}
}
