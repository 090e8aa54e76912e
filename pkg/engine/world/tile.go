package world

import "fmt"

// TileType is the terrain occupying one map tile
type TileType int

// Tile types
const (
	Wall TileType = iota
	Stalactite
	Stalagmite
	Floor
	WoodFloor
	Bridge
	Road
	Grass
	ShallowWater
	DeepWater
	Gravel
	UpStairs
	DownStairs
)

var tileNames = []string{
	"Wall",
	"Stalactite",
	"Stalagmite",
	"Floor",
	"WoodFloor",
	"Bridge",
	"Road",
	"Grass",
	"ShallowWater",
	"DeepWater",
	"Gravel",
	"UpStairs",
	"DownStairs",
}

// AllTileTypes returns every tile type in declaration order
func AllTileTypes() []TileType {
	all := make([]TileType, len(tileNames))
	for i := range all {
		all[i] = TileType(i)
	}
	return all
}

// String returns the name of the tile type
func (t TileType) String() string {
	if !t.IsValid() {
		return "Unknown"
	}
	return tileNames[t]
}

// IsValid returns true if t is one of the declared tile types
func (t TileType) IsValid() bool {
	return t >= Wall && t <= DownStairs
}

// IsWalkable returns true if an actor can stand on the tile
func (t TileType) IsWalkable() bool {
	switch t {
	case Floor, DownStairs, Road, Grass, ShallowWater, WoodFloor, Bridge, Gravel, UpStairs:
		return true
	default:
		return false
	}
}

// IsOpaque returns true if the tile blocks sight
func (t TileType) IsOpaque() bool {
	switch t {
	case Wall, Stalactite, Stalagmite:
		return true
	default:
		return false
	}
}

// Cost returns the movement cost multiplier for entering the tile
func (t TileType) Cost() float64 {
	switch t {
	case Road:
		return 0.8
	case Grass:
		return 1.1
	case ShallowWater:
		return 1.2
	default:
		return 1.0
	}
}

// MarshalText encodes the tile type by name
func (t TileType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid tile type %d", int(t))
	}
	return []byte(tileNames[t]), nil
}

// UnmarshalText decodes a tile type name
func (t *TileType) UnmarshalText(text []byte) error {
	name := string(text)
	for i, n := range tileNames {
		if n == name {
			*t = TileType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown tile type %q", name)
}
