package orion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oliverbestmann/pulse/glimpse"
)

type KeyCode = glimpse.Key
type MouseButton = glimpse.MouseButton

func MousePosition() mgl32.Vec2 {
	inputState := currentInputState.Get()

	return mgl32.Vec2{
		inputState.Mouse.CursorX,
		inputState.Mouse.CursorY,
	}
}

// MouseDelta returns the cursor movement since the previous frame.
func MouseDelta() mgl32.Vec2 {
	inputState := currentInputState.Get()

	return mgl32.Vec2{
		inputState.Mouse.DeltaX,
		inputState.Mouse.DeltaY,
	}
}

func IsKeyPressed(key KeyCode) bool {
	inputState := currentInputState.Get()
	return inputState.Keys.Pressed[key]
}

func IsKeyJustPressed(key KeyCode) bool {
	inputState := currentInputState.Get()
	return inputState.Keys.JustPressed[key]
}

func IsKeyJustReleased(key KeyCode) bool {
	inputState := currentInputState.Get()
	return inputState.Keys.JustReleased[key]
}

func IsMouseButtonPressed(button MouseButton) bool {
	inputState := currentInputState.Get()
	return inputState.Mouse.Pressed[button]
}

func IsMouseButtonJustPressed(button MouseButton) bool {
	inputState := currentInputState.Get()
	return inputState.Mouse.JustPressed[button]
}

func IsMouseButtonJustReleased(button MouseButton) bool {
	inputState := currentInputState.Get()
	return inputState.Mouse.JustReleased[button]
}
