package world

import (
	"encoding/json"
	"testing"
)

// mapFromRows builds a map from ASCII rows:
// '#' wall, '.' floor, '~' deep water, '=' road, '"' grass, 'w' shallow water.
func mapFromRows(rows ...string) *Map {
	m := NewMap(1, len(rows[0]), len(rows), "test")
	for y, row := range rows {
		for x, ch := range row {
			t := Wall
			switch ch {
			case '.':
				t = Floor
			case '~':
				t = DeepWater
			case '=':
				t = Road
			case '"':
				t = Grass
			case 'w':
				t = ShallowWater
			}
			m.Set(x, y, t)
		}
	}
	return m
}

func TestNewMapIsAllWall(t *testing.T) {
	m := NewMap(3, 10, 7, "cave")
	if m.Size() != 70 {
		t.Fatalf("Size() = %d, want 70", m.Size())
	}
	if got := m.Count(Wall); got != 70 {
		t.Errorf("Count(Wall) = %d, want 70", got)
	}
	if m.Depth != 3 || m.Name != "cave" {
		t.Errorf("depth/name = %d/%q, want 3/cave", m.Depth, m.Name)
	}
}

func TestNewMapPanicsOnBadDimensions(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewMap(0, 5) did not panic")
		}
	}()
	NewMap(1, 0, 5, "bad")
}

func TestIndexCoordsRoundTrip(t *testing.T) {
	m := NewMap(1, 13, 9, "grid")
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			idx := m.Index(x, y)
			if idx != y*13+x {
				t.Fatalf("Index(%d,%d) = %d, want %d", x, y, idx, y*13+x)
			}
			gx, gy := m.Coords(idx)
			if gx != x || gy != y {
				t.Fatalf("Coords(%d) = %d,%d, want %d,%d", idx, gx, gy, x, y)
			}
		}
	}
}

func TestPerimeterHelpers(t *testing.T) {
	m := NewMap(1, 6, 5, "grid")
	tests := []struct {
		x, y      int
		playable  bool
		perimeter bool
	}{
		{0, 0, false, true},
		{5, 4, false, true},
		{1, 1, true, false},
		{4, 3, true, false},
		{5, 2, false, true},
		{6, 2, false, false},
	}
	for _, tt := range tests {
		if got := m.IsPlayablePosition(tt.x, tt.y); got != tt.playable {
			t.Errorf("IsPlayablePosition(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.playable)
		}
		if got := m.IsOnPerimeter(tt.x, tt.y); got != tt.perimeter {
			t.Errorf("IsOnPerimeter(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.perimeter)
		}
	}
}

func TestSealPerimeter(t *testing.T) {
	m := NewMap(1, 8, 6, "open")
	m.Fill(Floor)
	m.SealPerimeter()

	if msg := m.Validate(); msg != "" {
		t.Fatalf("Validate() = %q after sealing", msg)
	}
	if got, want := m.Count(Floor), 6*4; got != want {
		t.Errorf("Count(Floor) = %d, want %d", got, want)
	}
}

func TestValidateDetectsOpenPerimeter(t *testing.T) {
	m := NewMap(1, 8, 6, "open")
	m.Fill(Floor)
	if msg := m.Validate(); msg == "" {
		t.Error("Validate() accepted an open perimeter")
	}
}

func TestCloneIsDeep(t *testing.T) {
	m := NewMap(1, 5, 5, "orig")
	m.AddBloodstain(7, Color{R: 200})
	m.TileContent[6] = []EntityHandle{1, 2}

	c := m.Clone()
	c.Set(2, 2, Floor)
	c.Revealed[3] = true
	c.Bloodstains[8] = Color{G: 1}
	c.TileContent[6][0] = 99

	if m.At(2, 2) != Wall {
		t.Error("clone shares tiles with original")
	}
	if m.Revealed[3] {
		t.Error("clone shares revealed layer with original")
	}
	if _, ok := m.Bloodstains[8]; ok {
		t.Error("clone shares bloodstains with original")
	}
	if m.TileContent[6][0] != 1 {
		t.Error("clone shares tile content with original")
	}
	if c.Bloodstains[7] != (Color{R: 200}) {
		t.Error("clone lost existing bloodstain")
	}
}

func TestAtOutOfBoundsIsWall(t *testing.T) {
	m := NewMap(1, 3, 3, "tiny")
	m.Fill(Floor)
	if m.At(-1, 0) != Wall || m.At(3, 1) != Wall {
		t.Error("out-of-bounds At() should read as Wall")
	}
	if !m.IsOpaqueAt(-1, -1) {
		t.Error("out-of-bounds IsOpaqueAt() should be true")
	}
	if m.IsWalkableAt(5, 5) {
		t.Error("out-of-bounds IsWalkableAt() should be false")
	}
}

func TestUpdateVisibilityKeepsRevealed(t *testing.T) {
	m := mapFromRows(
		"##########",
		"#........#",
		"##########",
	)
	m.UpdateVisibility(Pt(1, 1), 2, FieldOfView)
	if !m.Visible[m.Index(3, 1)] || m.Visible[m.Index(6, 1)] {
		t.Fatal("visibility from (1,1) radius 2 is wrong")
	}

	m.UpdateVisibility(Pt(8, 1), 2, FieldOfView)
	if m.Visible[m.Index(3, 1)] {
		t.Error("tile left of view is still visible")
	}
	if !m.Revealed[m.Index(3, 1)] {
		t.Error("revealed tile was forgotten")
	}
	if !m.Revealed[m.Index(8, 1)] {
		t.Error("viewer tile is not revealed")
	}
}

func TestJSONKeepsTileContent(t *testing.T) {
	m := NewMap(1, 6, 4, "content")
	m.TileContent[m.Index(2, 1)] = []EntityHandle{3, 4}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got Map
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if len(got.TileContent) != m.Size() {
		t.Fatalf("tile content has %d entries, want %d", len(got.TileContent), m.Size())
	}
	if c := got.TileContent[m.Index(2, 1)]; len(c) != 2 || c[0] != 3 || c[1] != 4 {
		t.Errorf("tile content = %v, want [3 4]", c)
	}
	if msg := got.Validate(); msg != "" {
		t.Errorf("Validate() = %q after a round trip", msg)
	}
}

func TestValidateRejectsMissingTileContent(t *testing.T) {
	m := NewMap(1, 6, 4, "content")
	m.TileContent = nil
	if msg := m.Validate(); msg == "" {
		t.Error("Validate() accepted a map without a tile content layer")
	}
}
