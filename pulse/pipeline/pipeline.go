// Package pipeline composes render targets into passes that can be chained
// into a graph. A producer exposes its color outputs with LinkSurface, a
// consumer samples them after LinkFrom or LinkPush.
//
// The caller binds and draws pipelines in producer before consumer order and
// calls SetSize on every pipeline after the window size changed.
package pipeline

import (
	"github.com/oliverbestmann/pulse/pulse"
)

type RenderPipeline interface {
	// Bind sets the viewport, binds the framebuffer draws should go to and
	// clears it as the pass requires.
	Bind()

	// Draw runs the work of the pass after the caller issued its own draws.
	Draw() error

	// LinkSurface returns a new reference to every output texture.
	LinkSurface() []*pulse.Texture

	// LinkFrom appends the given textures to the inputs and takes over
	// their references.
	LinkFrom(textures []*pulse.Texture)

	// LinkPush appends a single texture to the inputs.
	LinkPush(texture *pulse.Texture)

	// Unlink drops all inputs linked from outside.
	Unlink()

	SetSize(width, height int32) error
	Size() (width, height int32)

	Release()
}

// Link wires the surface of producer into consumer.
func Link(producer, consumer RenderPipeline) {
	consumer.LinkFrom(producer.LinkSurface())
}
