package generator

import (
	"delving/pkg/engine/rng"
	"delving/pkg/engine/world"
)

// DistanceMetric selects how Voronoi cells measure distance to their seed
type DistanceMetric int

const (
	Pythagoras DistanceMetric = iota
	Manhattan
	Chebyshev
)

func (d DistanceMetric) distance(a, b world.Point) float64 {
	switch d {
	case Manhattan:
		return float64(a.Manhattan(b))
	case Chebyshev:
		return float64(a.Chebyshev(b))
	default:
		return float64(a.DistanceSquared(b))
	}
}

// VoronoiBoundary selects what a Voronoi map carves
type VoronoiBoundary int

const (
	// BoundaryWalls leaves cell interiors open and walls along the borders
	BoundaryWalls VoronoiBoundary = iota
	// BoundaryFloors leaves cell interiors solid and carves the borders as passages
	BoundaryFloors
)

// VoronoiCells partitions the map around random seeds
type VoronoiCells struct {
	Seeds    int
	Metric   DistanceMetric
	Boundary VoronoiBoundary
}

// NewVoronoiCells creates a Voronoi builder with 64 seeds
func NewVoronoiCells(metric DistanceMetric) *VoronoiCells {
	return &VoronoiCells{Seeds: 64, Metric: metric}
}

// Name returns the name of this builder
func (b *VoronoiCells) Name() string {
	if b.Boundary == BoundaryFloors {
		return "Voronoi Passages"
	}
	return "Voronoi Cells"
}

// BuildMap assigns every tile to its nearest seed and carves by cell membership
func (b *VoronoiCells) BuildMap(r *rng.RNG, ctx *BuildContext) error {
	m := ctx.Map
	seeds := scatterSeeds(r, m, b.Seeds)
	membership := voronoiMembership(m, seeds, b.Metric)

	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			idx := m.Index(x, y)
			mine := membership[idx]
			differing := 0
			for _, dir := range world.Cardinals() {
				dx, dy := dir.Delta()
				if membership[m.Index(x+dx, y+dy)] != mine {
					differing++
				}
			}

			border := differing >= 2
			if border == (b.Boundary == BoundaryFloors) {
				m.Tiles[idx] = world.Floor
			} else {
				m.Tiles[idx] = world.Wall
			}
		}
	}
	ctx.TakeSnapshot()
	return nil
}

// scatterSeeds picks up to n distinct interior tiles
func scatterSeeds(r *rng.RNG, m *world.Map, n int) []world.Point {
	interior := (m.Width - 2) * (m.Height - 2)
	n = min(n, interior)

	used := make(map[world.Point]bool, n)
	seeds := make([]world.Point, 0, n)
	for len(seeds) < n {
		p := world.Pt(r.Range(1, m.Width-1), r.Range(1, m.Height-1))
		if used[p] {
			continue
		}
		used[p] = true
		seeds = append(seeds, p)
	}
	return seeds
}

// voronoiMembership returns the index of the nearest seed for every tile;
// ties go to the earlier seed
func voronoiMembership(m *world.Map, seeds []world.Point, metric DistanceMetric) []int {
	membership := make([]int, m.Size())
	for idx := range membership {
		p := m.PointOf(idx)
		best, bestDist := -1, 0.0
		for i, s := range seeds {
			d := metric.distance(p, s)
			if best < 0 || d < bestDist {
				best, bestDist = i, d
			}
		}
		membership[idx] = best
	}
	return membership
}
