// Package platform connects the game to the raylib window: touch polling,
// sound playback and the device features a desktop build can offer.
package platform

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/balloonwar/input"
)

// MousePointer is the contact id given to the mouse when no touch is reported.
const MousePointer int32 = 1 << 16

// PollContacts appends the current touch points to dst[:0]. On desktops
// without touch the left mouse button acts as a single finger.
func PollContacts(dst []input.Contact) []input.Contact {
	dst = dst[:0]
	n := rl.GetTouchPointCount()
	for i := int32(0); i < n; i++ {
		pos := rl.GetTouchPosition(i)
		dst = append(dst, input.Contact{ID: rl.GetTouchPointId(i), X: pos.X, Y: pos.Y})
	}
	if n == 0 && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		pos := rl.GetMousePosition()
		dst = append(dst, input.Contact{ID: MousePointer, X: pos.X, Y: pos.Y})
	}
	return dst
}
