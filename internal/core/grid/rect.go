package grid

// Rect is an axis-aligned cell region. W and H count cells, so the rect
// covers [X, X+W) × [Y, Y+H).
type Rect struct {
	X, Y, W, H int
}

// Center returns the middle cell of the rect, rounding toward the origin.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Area returns the number of cells the rect covers.
func (r Rect) Area() int {
	return r.W * r.H
}

// Contains reports whether other lies fully inside r.
func (r Rect) Contains(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.X+other.W <= r.X+r.W && other.Y+other.H <= r.Y+r.H
}

// Intersects reports whether the two rects share at least one cell.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && other.X < r.X+r.W &&
		r.Y < other.Y+other.H && other.Y < r.Y+r.H
}

// Inset shrinks the rect by n cells on every side. A rect too small to
// shrink collapses to zero size at its center.
func (r Rect) Inset(n int) Rect {
	out := Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
	if out.W < 0 {
		out.X = r.X + r.W/2
		out.W = 0
	}
	if out.H < 0 {
		out.Y = r.Y + r.H/2
		out.H = 0
	}
	return out
}
