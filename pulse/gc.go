package pulse

import (
	"log/slog"
	"reflect"
	"runtime"
)

type leakable interface {
	released() bool
}

// trackLeak logs a warning if value is garbage collected before it was
// released. Device objects can only be deleted on the thread owning the
// context, so the finalizer does not release anything itself.
func trackLeak[T leakable](ctx *Context, value T) T {
	if !ctx.ReportLeaks {
		return value
	}

	runtime.SetFinalizer(value, reportLeak[T])

	return value
}

func reportLeak[T leakable](value T) {
	if value.released() {
		return
	}

	typ := reflect.TypeOf(value).String()
	slog.Warn("Device resource was garbage collected without release", slog.String("type", typ))
}
