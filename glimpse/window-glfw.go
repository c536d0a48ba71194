package glimpse

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/profile"
)

type glfwWindow struct {
	win   *glfw.Window
	prof  interface{ Stop() }
	input InputState
}

// NewWindow opens a window with an OpenGL 4.5 core context and makes the
// context current on the calling thread.
func NewWindow(opts Options) (Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if opts.Debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	window.MakeContextCurrent()

	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &glfwWindow{
		win:  window,
		prof: startProfile(opts.Profile),
	}

	configureInput(window, &w.input)

	slog.Info("Window created",
		slog.Int("width", opts.Width),
		slog.Int("height", opts.Height),
		slog.Bool("debug", opts.Debug),
		slog.Bool("vsync", opts.VSync),
	)

	return w, nil
}

type noProfile struct{}

func (noProfile) Stop() {}

func startProfile(mode string) interface{ Stop() } {
	switch mode {
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.NoShutdownHook)
	case "mem":
		return profile.Start(profile.MemProfile, profile.NoShutdownHook)
	default:
		return noProfile{}
	}
}

func (g *glfwWindow) FramebufferSize() (int32, int32) {
	width, height := g.win.GetFramebufferSize()
	return int32(width), int32(height)
}

func (g *glfwWindow) Terminate() {
	g.prof.Stop()
	g.win.Destroy()
	glfw.Terminate()
}

func (g *glfwWindow) Run(render func(input UpdateInputState) error) error {
	var updateInputState UpdateInputState = func() InputState {
		g.input.nextTick()
		glfw.PollEvents()
		return g.input
	}

	for !g.win.ShouldClose() {
		if err := render(updateInputState); err != nil {
			return err
		}

		g.win.SwapBuffers()
	}

	return nil
}

func configureInput(window *glfw.Window, input *InputState) {
	window.SetKeyCallback(func(_win *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		switch action {
		case glfw.Press:
			input.Keys.press(Key(key))

		case glfw.Release:
			input.Keys.release(Key(key))
		}
	})

	window.SetMouseButtonCallback(func(_win *glfw.Window, btn glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		button := MouseButton(btn)

		switch action {
		case glfw.Press:
			input.Mouse.press(button)
		case glfw.Release:
			input.Mouse.release(button)
		}
	})

	window.SetCursorPosCallback(func(_win *glfw.Window, xpos float64, ypos float64) {
		input.Mouse.position(float32(xpos), float32(ypos))
	})
}
