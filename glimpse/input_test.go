package glimpse

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestKeysState(t *testing.T) {
	c := qt.New(t)

	var input InputState

	input.Keys.press(KeyW)
	c.Assert(input.Keys.Pressed[KeyW], qt.IsTrue)
	c.Assert(input.Keys.JustPressed[KeyW], qt.IsTrue)

	input.nextTick()
	c.Assert(input.Keys.Pressed[KeyW], qt.IsTrue)
	c.Assert(input.Keys.JustPressed[KeyW], qt.IsFalse)

	input.Keys.release(KeyW)
	c.Assert(input.Keys.Pressed[KeyW], qt.IsFalse)
	c.Assert(input.Keys.JustReleased[KeyW], qt.IsTrue)
}

func TestMouseDelta(t *testing.T) {
	c := qt.New(t)

	var input InputState

	input.Mouse.position(10, 10)
	c.Assert(input.Mouse.DeltaX, qt.Equals, float32(0))

	input.Mouse.position(15, 8)
	input.Mouse.position(20, 9)
	c.Assert(input.Mouse.CursorX, qt.Equals, float32(20))
	c.Assert(input.Mouse.DeltaX, qt.Equals, float32(10))
	c.Assert(input.Mouse.DeltaY, qt.Equals, float32(-1))

	input.nextTick()
	c.Assert(input.Mouse.DeltaX, qt.Equals, float32(0))
	c.Assert(input.Mouse.DeltaY, qt.Equals, float32(0))
}

func TestKeyString(t *testing.T) {
	c := qt.New(t)

	c.Assert(KeyEscape.String(), qt.Equals, "Escape")
	c.Assert(Key(999).String(), qt.Equals, "Key(999)")
}
