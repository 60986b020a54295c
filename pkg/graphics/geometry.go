package graphics

// Offset is a 2D point or displacement in logical pixels.
type Offset struct {
	X float64
	Y float64
}

// Add returns the componentwise sum of o and other.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Sub returns the componentwise difference of o and other.
func (o Offset) Sub(other Offset) Offset {
	return Offset{X: o.X - other.X, Y: o.Y - other.Y}
}

// Rect is an axis-aligned rectangle in logical pixels.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromPoints returns the normalized rectangle spanned by two corners,
// regardless of drag direction.
func RectFromPoints(a, b Offset) Rect {
	r := Rect{Left: a.X, Top: a.Y, Right: b.X, Bottom: b.Y}
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

// RectFromCenter returns the rectangle of the given size centered on c.
func RectFromCenter(c Offset, width, height float64) Rect {
	return Rect{
		Left:   c.X - width/2,
		Top:    c.Y - height/2,
		Right:  c.X + width/2,
		Bottom: c.Y + height/2,
	}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Contains reports whether p lies inside the rectangle (inclusive edges).
func (r Rect) Contains(p Offset) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// Intersects reports whether r and other overlap (touching edges count).
func (r Rect) Intersects(other Rect) bool {
	return r.Left <= other.Right && other.Left <= r.Right &&
		r.Top <= other.Bottom && other.Top <= r.Bottom
}
