package components

// Body holds the physical extent of a balloon.
// Radius stays positive for as long as the entity is alive.
type Body struct {
	Radius float32
}

// Contains reports whether (x, y) lies within the body centred at pos,
// widened by margin.
func (b Body) Contains(pos Position, x, y, margin float32) bool {
	dx := x - pos.X
	dy := y - pos.Y
	r := b.Radius + margin
	return dx*dx+dy*dy < r*r
}
