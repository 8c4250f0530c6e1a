package components

// Position represents an entity's screen position in pixels.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity in pixels per tick.
type Velocity struct {
	X, Y float32
}
