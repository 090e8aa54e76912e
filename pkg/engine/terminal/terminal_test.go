package terminal

import "testing"

func TestClampViewport(t *testing.T) {
	tests := []struct {
		width, height, mapW, mapH, reserved int
		wantCols, wantRows                  int
	}{
		{80, 24, 80, 50, 2, 80, 22},
		{120, 60, 80, 50, 2, 80, 50},
		{40, 3, 80, 50, 5, 40, 1},
	}
	for _, tt := range tests {
		cols, rows := clampViewport(tt.width, tt.height, tt.mapW, tt.mapH, tt.reserved)
		if cols != tt.wantCols || rows != tt.wantRows {
			t.Errorf("clampViewport(%d,%d,%d,%d,%d) = %d,%d, want %d,%d",
				tt.width, tt.height, tt.mapW, tt.mapH, tt.reserved, cols, rows, tt.wantCols, tt.wantRows)
		}
	}
}

func TestGetSizeFallsBack(t *testing.T) {
	w, h := GetSize()
	if w <= 0 || h <= 0 {
		t.Errorf("GetSize() = %d,%d, want positive", w, h)
	}
}
