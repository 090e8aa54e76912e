package world

// Line returns the Bresenham line from a to b, both endpoints included.
func Line(a, b Point) []Point {
	dx := b.X - a.X
	dy := b.Y - a.Y
	absDx := abs(dx)
	absDy := abs(dy)
	stepX := sign(dx)
	stepY := sign(dy)

	points := make([]Point, 0, max(absDx, absDy)+1)
	x, y := a.X, a.Y
	points = append(points, Point{X: x, Y: y})

	if absDx >= absDy {
		// Step along columns
		err := 2*absDy - absDx
		for x != b.X {
			x += stepX
			if err > 0 {
				y += stepY
				err -= 2 * absDx
			}
			err += 2 * absDy
			points = append(points, Point{X: x, Y: y})
		}
	} else {
		// Step along rows
		err := 2*absDx - absDy
		for y != b.Y {
			y += stepY
			if err > 0 {
				x += stepX
				err -= 2 * absDy
			}
			err += 2 * absDx
			points = append(points, Point{X: x, Y: y})
		}
	}

	return points
}

// OrthogonalLine is Line with an elbow tile inserted before every diagonal step,
// so consecutive points always share an edge.
func OrthogonalLine(a, b Point) []Point {
	line := Line(a, b)
	points := make([]Point, 0, len(line)*2)
	for i, p := range line {
		if i > 0 {
			prev := line[i-1]
			if prev.X != p.X && prev.Y != p.Y {
				points = append(points, Point{X: p.X, Y: prev.Y})
			}
		}
		points = append(points, p)
	}
	return points
}

// HasLineOfSight returns true if no opaque tile lies strictly between a and b on the Bresenham line.
func HasLineOfSight(m OpacityMap, a, b Point) bool {
	line := Line(a, b)
	if len(line) < 3 {
		return true
	}
	for _, p := range line[1 : len(line)-1] {
		if m.IsOpaqueAt(p.X, p.Y) {
			return false
		}
	}
	return true
}
