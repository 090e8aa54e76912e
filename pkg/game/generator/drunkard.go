package generator

import (
	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
)

// WalkerStart decides where each new walker begins
type WalkerStart int

const (
	// StartCentral always starts at the map centre
	StartCentral WalkerStart = iota
	// StartRandom starts anywhere inside the map
	StartRandom
	// StartPreviousEnd continues from where the last walker stopped
	StartPreviousEnd
)

// DrunkardsWalk digs caves with random walkers until enough of the map is floor
type DrunkardsWalk struct {
	Start        WalkerStart
	Lifetime     int
	FloorPercent float64
	Brush        int
	Symmetry     Symmetry
	// MaxWalkers stops digging even if the floor quota was not met
	MaxWalkers int
	label      string
}

// OpenArea carves one large central cave
func OpenArea() *DrunkardsWalk {
	return &DrunkardsWalk{Start: StartCentral, Lifetime: 400, FloorPercent: 0.5, Brush: 1, MaxWalkers: 5000, label: "Open Area"}
}

// OpenHalls carves many overlapping open halls
func OpenHalls() *DrunkardsWalk {
	return &DrunkardsWalk{Start: StartRandom, Lifetime: 400, FloorPercent: 0.5, Brush: 1, MaxWalkers: 5000, label: "Open Halls"}
}

// WindingPassages carves narrow twisting tunnels
func WindingPassages() *DrunkardsWalk {
	return &DrunkardsWalk{Start: StartCentral, Lifetime: 100, FloorPercent: 0.4, Brush: 1, MaxWalkers: 5000, label: "Winding Passages"}
}

// FatPassages carves wide twisting tunnels
func FatPassages() *DrunkardsWalk {
	return &DrunkardsWalk{Start: StartCentral, Lifetime: 100, FloorPercent: 0.4, Brush: 2, MaxWalkers: 5000, label: "Fat Passages"}
}

// FearfulSymmetry carves tunnels mirrored on both axes
func FearfulSymmetry() *DrunkardsWalk {
	return &DrunkardsWalk{Start: StartRandom, Lifetime: 100, FloorPercent: 0.4, Brush: 1, Symmetry: BothAxes, MaxWalkers: 5000, label: "Fearful Symmetry"}
}

// LongTunnels chains walkers end to end into long meandering tunnels
func LongTunnels() *DrunkardsWalk {
	return &DrunkardsWalk{Start: StartPreviousEnd, Lifetime: 200, FloorPercent: 0.35, Brush: 1, MaxWalkers: 5000, label: "Long Tunnels"}
}

// Name returns the name of this builder
func (b *DrunkardsWalk) Name() string {
	if b.label == "" {
		return "Drunkard's Walk"
	}
	return "Drunkard's Walk: " + b.label
}

// BuildMap releases walkers until the floor quota or the walker cap is reached
func (b *DrunkardsWalk) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	m := ctx.Map
	center := m.CenterPosition()
	m.Set(center.X, center.Y, world.Floor)

	desired := int(float64(m.Size()) * b.FloorPercent)
	floorCount := m.Count(world.Floor)
	last := center

	for walker := 0; floorCount < desired && walker < b.MaxWalkers; walker++ {
		pos := center
		switch b.Start {
		case StartRandom:
			if walker > 0 {
				pos = world.Pt(r.Range(1, m.Width-1), r.Range(1, m.Height-1))
			}
		case StartPreviousEnd:
			pos = last
		}

		for life := b.Lifetime; life > 0; life-- {
			paint(m, b.Symmetry, b.Brush, pos.X, pos.Y)
			pos = stagger(r, m, pos)
		}
		last = pos

		if walker%10 == 0 {
			ctx.TakeSnapshot()
		}
		floorCount = m.Count(world.Floor)
	}
	return nil
}

// stagger moves one tile in a random cardinal direction, staying clear of the perimeter
func stagger(r *rng.RNG, m *world.Map, p world.Point) world.Point {
	switch r.RollDice(1, 4) {
	case 1:
		if p.X > 2 {
			p.X--
		}
	case 2:
		if p.X < m.Width-2 {
			p.X++
		}
	case 3:
		if p.Y > 2 {
			p.Y--
		}
	default:
		if p.Y < m.Height-2 {
			p.Y++
		}
	}
	return p
}
