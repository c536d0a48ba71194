package orion

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/pulse/glimpse"
	"github.com/oliverbestmann/pulse/gpu/gl45"
	"github.com/oliverbestmann/pulse/pulse"
)

// App builds a render graph and updates its state every frame.
type App interface {
	// Build adds the stages of the app to graph. It is called once, with
	// the initial framebuffer size.
	Build(ctx *pulse.Context, graph *Graph, width, height int32) error

	// Update is called every frame before the graph is drawn.
	Update(graph *Graph, times *FrameTimes) error

	// Release frees everything the app created outside of the graph.
	Release()
}

type RunOptions struct {
	// app to run. This is the only field that is required
	App App

	// zero values fall back to the defaults of ConfigFromEnv
	Config Config
}

func Run(opts RunOptions) error {
	app := opts.App
	if app == nil {
		return errors.New("App must not be nil")
	}

	config := opts.Config

	if config.WindowWidth == 0 {
		config.WindowWidth = 1280
	}

	if config.WindowHeight == 0 {
		config.WindowHeight = 720
	}

	if config.WindowTitle == "" {
		config.WindowTitle = "Pulse"
	}

	win, err := glimpse.NewWindow(glimpse.Options{
		Width:   config.WindowWidth,
		Height:  config.WindowHeight,
		Title:   config.WindowTitle,
		Debug:   config.GLDebug,
		VSync:   config.VSync,
		Profile: config.Profile,
	})
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	defer win.Terminate()

	dev, err := gl45.New(gl45.Options{Debug: config.GLDebug})
	if err != nil {
		return fmt.Errorf("initialize gl: %w", err)
	}

	ctx := pulse.New(dev)
	ctx.ReportLeaks = config.LogLevel <= slog.LevelDebug

	return runLoop(win, ctx, app)
}

type loopState struct {
	window glimpse.Window
	graph  *Graph
	app    App
	times  FrameTimes

	width  int32
	height int32
}

func runLoop(win glimpse.Window, ctx *pulse.Context, app App) error {
	width, height := win.FramebufferSize()

	graph := NewGraph(ctx)
	defer graph.Release()

	// also frees what a failed Build created
	defer app.Release()

	if err := app.Build(ctx, graph, width, height); err != nil {
		return fmt.Errorf("build app: %w", err)
	}

	order, err := graph.Order()
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}

	slog.Info("Render graph ready", slog.Any("order", order))

	currentContext.set(ctx)
	defer currentContext.reset()

	state := &loopState{
		window: win,
		graph:  graph,
		app:    app,
		width:  width,
		height: height,
	}

	return win.Run(state.loopOnce)
}

func (s *loopState) loopOnce(updateInput glimpse.UpdateInputState) error {
	width, height := s.window.FramebufferSize()

	// a minimized window has no framebuffer, keep the old size
	if (width != s.width || height != s.height) && width > 0 && height > 0 {
		if err := s.graph.Resize(width, height); err != nil {
			return fmt.Errorf("resize: %w", err)
		}

		s.width = width
		s.height = height
	}

	currentInputState.reset()
	currentInputState.set(updateInput())

	if s.times.Tick() {
		slog.Debug("Frame statistics",
			slog.Any("times", &s.times),
			slog.Any("memory", ReadMemoryStats()),
		)
	}

	if err := s.app.Update(s.graph, &s.times); err != nil {
		return fmt.Errorf("update app: %w", err)
	}

	if err := s.graph.Frame(); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}

	return nil
}
