package orion

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/oliverbestmann/pulse/pulse"
	"github.com/oliverbestmann/pulse/pulse/pipeline"
)

var (
	ErrUnknownStage   = errors.New("unknown stage")
	ErrDuplicateStage = errors.New("duplicate stage")
	ErrUnknownLink    = errors.New("unknown link")
	ErrCycle          = errors.New("stages form a cycle")
	ErrSelfLink       = errors.New("stage cannot link to itself")
)

// DrawFunc issues the draw calls of a stage. It runs after the stage is bound
// and before the stage draws itself.
type DrawFunc func(ctx *pulse.Context) error

type stage struct {
	name     string
	pipeline pipeline.RenderPipeline
	draw     DrawFunc
}

type edge struct {
	from, to string
}

// Graph holds named pipeline stages and the links between them. It runs the
// stages in producer before consumer order.
type Graph struct {
	ctx *pulse.Context

	// in insertion order
	stages []*stage
	byName map[string]*stage

	// in link order
	edges []edge

	// cached result of Order, nil if links changed
	order []*stage
}

func NewGraph(ctx *pulse.Context) *Graph {
	return &Graph{
		ctx:    ctx,
		byName: map[string]*stage{},
	}
}

// Add registers a pipeline under name. The graph takes over the pipeline and
// releases it in Release. draw may be nil.
func (g *Graph) Add(name string, p pipeline.RenderPipeline, draw DrawFunc) error {
	if _, ok := g.byName[name]; ok {
		return fmt.Errorf("add stage %q: %w", name, ErrDuplicateStage)
	}

	st := &stage{name: name, pipeline: p, draw: draw}

	g.stages = append(g.stages, st)
	g.byName[name] = st
	g.order = nil

	return nil
}

// Stage returns the pipeline registered under name or nil.
func (g *Graph) Stage(name string) pipeline.RenderPipeline {
	if st, ok := g.byName[name]; ok {
		return st.pipeline
	}

	return nil
}

// Link feeds the outputs of stage from into stage to.
func (g *Graph) Link(from, to string) error {
	if from == to {
		return fmt.Errorf("link %q: %w", from, ErrSelfLink)
	}

	producer, err := g.lookup(from)
	if err != nil {
		return fmt.Errorf("link %q to %q: %w", from, to, err)
	}

	consumer, err := g.lookup(to)
	if err != nil {
		return fmt.Errorf("link %q to %q: %w", from, to, err)
	}

	pipeline.Link(producer.pipeline, consumer.pipeline)

	g.edges = append(g.edges, edge{from: from, to: to})
	g.order = nil

	return nil
}

// Unlink removes every link between from and to and rewires the remaining ones.
func (g *Graph) Unlink(from, to string) error {
	count := len(g.edges)

	g.edges = slices.DeleteFunc(g.edges, func(e edge) bool {
		return e.from == from && e.to == to
	})

	if len(g.edges) == count {
		return fmt.Errorf("unlink %q from %q: %w", from, to, ErrUnknownLink)
	}

	g.Relink()

	return nil
}

func (g *Graph) lookup(name string) (*stage, error) {
	st, ok := g.byName[name]
	if !ok {
		return nil, fmt.Errorf("stage %q: %w", name, ErrUnknownStage)
	}

	return st, nil
}

// Relink drops the inputs of every stage and replays all links in their
// original order.
func (g *Graph) Relink() {
	for _, st := range g.stages {
		st.pipeline.Unlink()
	}

	for _, e := range g.edges {
		pipeline.Link(g.byName[e.from].pipeline, g.byName[e.to].pipeline)
	}

	g.order = nil
}

// Order returns the stage names so that every producer comes before all of
// its consumers. Independent stages keep their insertion order.
func (g *Graph) Order() ([]string, error) {
	order, err := g.sorted()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(order))
	for _, st := range order {
		names = append(names, st.name)
	}

	return names, nil
}

func (g *Graph) sorted() ([]*stage, error) {
	if g.order != nil {
		return g.order, nil
	}

	incoming := map[*stage]int{}
	outgoing := map[*stage][]*stage{}

	for _, e := range g.edges {
		from, to := g.byName[e.from], g.byName[e.to]
		if slices.Contains(outgoing[from], to) {
			continue
		}

		outgoing[from] = append(outgoing[from], to)
		incoming[to]++
	}

	order := make([]*stage, 0, len(g.stages))
	done := map[*stage]bool{}

	for len(order) < len(g.stages) {
		// the first stage in insertion order without pending producers
		idx := slices.IndexFunc(g.stages, func(st *stage) bool {
			return !done[st] && incoming[st] == 0
		})

		if idx == -1 {
			var pending []string
			for _, st := range g.stages {
				if !done[st] {
					pending = append(pending, st.name)
				}
			}

			return nil, fmt.Errorf("order stages %v: %w", pending, ErrCycle)
		}

		st := g.stages[idx]
		done[st] = true
		order = append(order, st)

		for _, consumer := range outgoing[st] {
			incoming[consumer]--
		}
	}

	g.order = order

	return order, nil
}

// Frame binds, draws into and draws every stage in order.
func (g *Graph) Frame() error {
	order, err := g.sorted()
	if err != nil {
		return err
	}

	for _, st := range order {
		st.pipeline.Bind()

		if st.draw != nil {
			if err := st.draw(g.ctx); err != nil {
				return fmt.Errorf("draw into stage %q: %w", st.name, err)
			}
		}

		if err := st.pipeline.Draw(); err != nil {
			return fmt.Errorf("draw stage %q: %w", st.name, err)
		}
	}

	return nil
}

// Resize sets the size of every stage.
func (g *Graph) Resize(width, height int32) error {
	slog.Info("Resize render graph",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
		slog.Int("stages", len(g.stages)),
	)

	for _, st := range g.stages {
		if err := st.pipeline.SetSize(width, height); err != nil {
			return fmt.Errorf("resize stage %q: %w", st.name, err)
		}
	}

	return nil
}

// Release releases every stage.
func (g *Graph) Release() {
	for _, st := range g.stages {
		st.pipeline.Release()
	}

	g.stages = nil
	g.byName = map[string]*stage{}
	g.edges = nil
	g.order = nil
}
