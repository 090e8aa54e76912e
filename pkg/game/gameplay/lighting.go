package gameplay

import (
	"delving/pkg/engine/world"
	"delving/pkg/game/state"
)

const (
	// UndergroundAmbient is the light every tile below ground starts with
	UndergroundAmbient float32 = 0.1
	// DarkThreshold is the light below which a visible tile is too dark to make out
	DarkThreshold float32 = 0.15
)

// torchTag is the spawn that burns as a light on the level
const torchTag = "Torch"

// Lights lists the light sources of the level, the player's candle first
func Lights(g *state.Game) []world.PlacedLight {
	lights := []world.PlacedLight{{Position: g.Player, Source: world.Candle()}}
	m := g.Level.Map
	for _, s := range g.Level.Spawns {
		if s.Tag == torchTag {
			lights = append(lights, world.PlacedLight{Position: m.PointOf(s.Index), Source: world.Torch()})
		}
	}
	return lights
}

// Ambient returns the base light of the level
func Ambient(m *world.Map) float32 {
	if m.Outdoors {
		return 1
	}
	return UndergroundAmbient
}

// UpdateView recomputes what the player sees and how it is lit
func UpdateView(g *state.Game) {
	m := g.Level.Map
	m.UpdateVisibility(g.Player, g.FOVRadius, world.FieldOfView)
	m.ApplyLighting(Ambient(m), Lights(g), world.FieldOfView)
}
