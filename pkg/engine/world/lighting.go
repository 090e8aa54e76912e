package world

import "math"

// LightSource is something that gives off light
type LightSource struct {
	Color     Color `json:"color"`
	Radius    int   `json:"radius"`
	Intensity int   `json:"intensity"`
}

// Candle provides very little light
func Candle() LightSource {
	return LightSource{Color: Color{255, 127, 255}, Radius: 6, Intensity: 64}
}

// Torch provides more and stronger light
func Torch() LightSource {
	return LightSource{Color: Color{255, 127, 0}, Radius: 10, Intensity: 96}
}

// Moss is a patch of phosphorescent moss
func Moss() LightSource {
	return LightSource{Color: Color{173, 223, 173}, Radius: 5, Intensity: 32}
}

// Roller is the slice of a random stream RandomLight needs
type Roller interface {
	Range(min, max int) int
}

// RandomLight creates a light of random colour, reach and strength
func RandomLight(r Roller) LightSource {
	return LightSource{
		Color: Color{
			R: uint8(r.Range(0, 5) * 60),
			G: uint8(r.Range(0, 5) * 60),
			B: uint8(r.Range(0, 5) * 60),
		},
		Radius:    r.Range(10, 15),
		Intensity: r.Range(128, 255),
	}
}

// IntensityAt returns the strength of the light at to when the source stands at from.
// It falls off linearly to zero at the radius.
func (l LightSource) IntensityAt(from, to Point) int {
	dx := abs(to.X - from.X)
	dy := abs(to.Y - from.Y)
	if dx > l.Radius || dy > l.Radius || l.Radius <= 0 {
		return 0
	}
	distance := math.Sqrt(float64(dx*dx + dy*dy))
	result := int(float64(l.Intensity) - distance*float64(l.Intensity)/float64(l.Radius))
	return max(result, 0)
}

// Tint shifts c towards the light's colour in proportion to its intensity at to
func (l LightSource) Tint(c Color, from, to Point) Color {
	multiplier := float64(l.IntensityAt(from, to)) / 512
	shift := func(base, light uint8) uint8 {
		diff := math.Abs(float64(light) - float64(base))
		return uint8(math.Min(255, float64(base)+diff*multiplier))
	}
	return Color{R: shift(c.R, l.Color.R), G: shift(c.G, l.Color.G), B: shift(c.B, l.Color.B)}
}

// PlacedLight is a light source standing on a tile
type PlacedLight struct {
	Position Point       `json:"position"`
	Source   LightSource `json:"source"`
}

// ApplyLighting recomputes the light layer. Every tile starts at ambient and
// each source adds its intensity (scaled to 0..1) on the tiles it can see.
func (m *Map) ApplyLighting(ambient float32, lights []PlacedLight, fov FOVFunc) {
	for i := range m.Light {
		m.Light[i] = ambient
	}
	for _, light := range lights {
		for _, p := range fov(light.Position, light.Source.Radius, m) {
			idx := m.Index(p.X, p.Y)
			m.Light[idx] += float32(light.Source.IntensityAt(light.Position, p)) / 255
			if m.Light[idx] > 1 {
				m.Light[idx] = 1
			}
		}
	}
}
