package orion

import (
	"github.com/oliverbestmann/pulse/glimpse"
	"github.com/oliverbestmann/pulse/pulse"
)

var currentContext global[*pulse.Context]
var currentInputState global[glimpse.InputState]

type global[T any] struct {
	value    T
	hasValue bool
}

func (g *global[T]) set(value T) *global[T] {
	if g.hasValue {
		panic("value already set")
	}

	g.value = value
	g.hasValue = true
	return g
}

func (g *global[T]) reset() {
	var tZero T
	g.value = tZero
	g.hasValue = false
}

func (g *global[T]) Get() T {
	if !g.hasValue {
		panic("must only be called from within Run")
	}

	return g.value
}

// CurrentContext exposes the context of the running app. It can be used to
// create resources outside of App.Build.
func CurrentContext() *pulse.Context {
	return currentContext.Get()
}
