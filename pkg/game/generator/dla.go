package generator

import (
	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
)

// DLAAlgorithm selects how particles travel before they stick
type DLAAlgorithm int

const (
	// WalkInwards launches particles at random points; they stick on touching floor
	WalkInwards DLAAlgorithm = iota
	// WalkOutwards launches particles from the centre; they dig where they leave the floor
	WalkOutwards
	// CentralAttractor fires particles in a straight line at the centre
	CentralAttractor
)

// DLA grows a cave by diffusion-limited aggregation around a central seed
type DLA struct {
	Algorithm    DLAAlgorithm
	Brush        int
	Symmetry     Symmetry
	FloorPercent float64
	// StickPath carves the whole trail of a particle instead of only where it stopped
	StickPath  bool
	MaxWalkers int
	// MaxSteps bounds one particle's walk; zero means four steps per map tile
	MaxSteps int
	label    string
}

// maxStrandedParticles is how many particles in a row may die without
// sticking before the builder gives up on the quota
const maxStrandedParticles = 50

// DLAWalkInwards grows spidery tendrils from particles wandering in from outside
func DLAWalkInwards() *DLA {
	return &DLA{Algorithm: WalkInwards, Brush: 1, FloorPercent: 0.25, MaxWalkers: 20000, label: "Walk Inwards"}
}

// DLAWalkOutwards grows a blobby cave from the centre outwards
func DLAWalkOutwards() *DLA {
	return &DLA{Algorithm: WalkOutwards, Brush: 2, FloorPercent: 0.25, MaxWalkers: 20000, label: "Walk Outwards"}
}

// DLACentralAttractor grows spokes towards the centre
func DLACentralAttractor() *DLA {
	return &DLA{Algorithm: CentralAttractor, Brush: 2, FloorPercent: 0.25, MaxWalkers: 20000, label: "Central Attractor"}
}

// DLAInsectoid grows a bilaterally symmetric central attractor
func DLAInsectoid() *DLA {
	return &DLA{Algorithm: CentralAttractor, Brush: 2, Symmetry: Horizontal, FloorPercent: 0.25, MaxWalkers: 20000, label: "Insectoid"}
}

// DLARootlike leaves the whole trail of every wandering particle
func DLARootlike() *DLA {
	return &DLA{Algorithm: WalkInwards, Brush: 1, FloorPercent: 0.3, StickPath: true, MaxWalkers: 20000, label: "Rootlike"}
}

// Name returns the name of this builder
func (b *DLA) Name() string {
	if b.label == "" {
		return "Diffusion-Limited Aggregation"
	}
	return "Diffusion-Limited Aggregation: " + b.label
}

// BuildMap launches particles until the floor quota or the particle cap is reached
func (b *DLA) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	m := ctx.Map
	center := m.CenterPosition()
	m.Set(center.X, center.Y, world.Floor)
	for _, dir := range world.Cardinals() {
		dx, dy := dir.Delta()
		m.Set(center.X+dx, center.Y+dy, world.Floor)
	}

	desired := int(float64(m.Size()) * b.FloorPercent)
	floorCount := m.Count(world.Floor)

	steps := b.MaxSteps
	if steps <= 0 {
		steps = m.Size() * 4
	}

	stranded := 0
	for walker := 0; floorCount < desired && walker < b.MaxWalkers; walker++ {
		var stuck bool
		switch b.Algorithm {
		case WalkInwards:
			stuck = b.walkInwards(r, m, steps)
		case WalkOutwards:
			stuck = b.walkOutwards(r, m, center, steps)
		case CentralAttractor:
			stuck = b.attract(r, m, center)
		}
		if stuck {
			stranded = 0
		} else {
			stranded++
			if stranded >= maxStrandedParticles {
				break
			}
		}

		if walker%25 == 0 {
			ctx.TakeSnapshot()
		}
		floorCount = m.Count(world.Floor)
	}
	return nil
}

func (b *DLA) randomInterior(r *rng.RNG, m *world.Map) world.Point {
	return world.Pt(r.Range(2, m.Width-2), r.Range(2, m.Height-2))
}

// walkInwards wanders a particle until it touches floor. A particle that runs
// out of steps dies without sticking.
func (b *DLA) walkInwards(r *rng.RNG, m *world.Map, steps int) bool {
	digger := b.randomInterior(r, m)
	prev := digger
	var trail []world.Point
	for m.At(digger.X, digger.Y) == world.Wall {
		if steps == 0 {
			return false
		}
		steps--
		prev = digger
		trail = append(trail, digger)
		digger = stagger(r, m, digger)
	}
	b.stick(m, prev, trail)
	return true
}

// walkOutwards wanders a particle from the centre until it leaves the floor.
// Once the reachable interior is all floor no particle can stick.
func (b *DLA) walkOutwards(r *rng.RNG, m *world.Map, center world.Point, steps int) bool {
	digger := center
	var trail []world.Point
	for m.At(digger.X, digger.Y) == world.Floor {
		if steps == 0 {
			return false
		}
		steps--
		digger = stagger(r, m, digger)
		trail = append(trail, digger)
	}
	b.stick(m, digger, trail)
	return true
}

func (b *DLA) attract(r *rng.RNG, m *world.Map, center world.Point) bool {
	digger := b.randomInterior(r, m)
	prev := digger
	path := world.OrthogonalLine(digger, center)
	var trail []world.Point
	for m.At(digger.X, digger.Y) == world.Wall && len(path) > 0 {
		prev = digger
		trail = append(trail, digger)
		digger = path[0]
		path = path[1:]
	}
	b.stick(m, prev, trail)
	return true
}

func (b *DLA) stick(m *world.Map, at world.Point, trail []world.Point) {
	if b.StickPath {
		for _, p := range trail {
			paint(m, b.Symmetry, b.Brush, p.X, p.Y)
		}
	}
	paint(m, b.Symmetry, b.Brush, at.X, at.Y)
}
