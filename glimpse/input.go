package glimpse

import (
	"fmt"
	"log/slog"
)

type UpdateInputState func() InputState

// Key is a keyboard key, values follow the GLFW key codes.
type Key int

const (
	KeySpace  Key = 32
	KeyA      Key = 65
	KeyD      Key = 68
	KeyP      Key = 80
	KeyR      Key = 82
	KeyS      Key = 83
	KeyW      Key = 87
	KeyEscape Key = 256
	KeyEnter  Key = 257
	KeyRight  Key = 262
	KeyLeft   Key = 263
	KeyDown   Key = 264
	KeyUp     Key = 265
)

var keyNames = map[Key]string{
	KeySpace:  "Space",
	KeyA:      "A",
	KeyD:      "D",
	KeyP:      "P",
	KeyR:      "R",
	KeyS:      "S",
	KeyW:      "W",
	KeyEscape: "Escape",
	KeyEnter:  "Enter",
	KeyRight:  "Right",
	KeyLeft:   "Left",
	KeyDown:   "Down",
	KeyUp:     "Up",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Key(%d)", int(k))
}

type MouseButton uint32

type KeysState struct {
	// the keys that are currently marked as "pressed"
	Pressed map[Key]bool

	// keys that where just pressed after the last call to nextTick()
	JustPressed map[Key]bool

	// keys that were just released after the last call to nextTick()
	JustReleased map[Key]bool
}

func (k *KeysState) press(key Key) {
	slog.Debug("Key just pressed", slog.String("key", key.String()))

	setTrue(&k.Pressed, key)
	setTrue(&k.JustPressed, key)
}

func (k *KeysState) release(key Key) {
	setFalse(&k.Pressed, key)
	setTrue(&k.JustReleased, key)
}

func (k *KeysState) nextTick() {
	clear(k.JustPressed)
	clear(k.JustReleased)
}

type MouseState struct {
	CursorX, CursorY float32

	// movement since the last tick
	DeltaX, DeltaY float32

	Pressed map[MouseButton]bool

	// mouse buttons that were just clicked after the last call to nextTick()
	JustPressed map[MouseButton]bool

	// mouse buttons that were just released after the last call to nextTick()
	JustReleased map[MouseButton]bool

	hasPosition bool
}

func (m *MouseState) press(button MouseButton) {
	setTrue(&m.Pressed, button)
	setTrue(&m.JustPressed, button)
}

func (m *MouseState) release(button MouseButton) {
	setFalse(&m.Pressed, button)
	setTrue(&m.JustReleased, button)
}

func (m *MouseState) position(x, y float32) {
	// the first event only establishes the position
	if m.hasPosition {
		m.DeltaX += x - m.CursorX
		m.DeltaY += y - m.CursorY
	}

	m.CursorX = x
	m.CursorY = y
	m.hasPosition = true
}

func (m *MouseState) nextTick() {
	m.DeltaX = 0
	m.DeltaY = 0

	clear(m.JustPressed)
	clear(m.JustReleased)
}

type InputState struct {
	Keys  KeysState
	Mouse MouseState
}

func (s *InputState) nextTick() {
	s.Keys.nextTick()
	s.Mouse.nextTick()
}

func setTrue[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = true
}

func setFalse[K comparable](m *map[K]bool, key K) {
	if *m == nil {
		*m = map[K]bool{}
	}

	(*m)[key] = false
}
