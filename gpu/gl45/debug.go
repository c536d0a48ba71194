package gl45

import (
	"context"
	"log/slog"
	"unsafe"

	"github.com/go-gl/gl/v4.5-core/gl"
)

func enableDebugOutput() {
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	gl.DebugMessageCallback(debugMessage, nil)

	slog.Info("GL debug output enabled")
}

func debugMessage(source, typ, id, severity uint32, length int32, message string, _ unsafe.Pointer) {
	level := slog.LevelDebug

	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		level = slog.LevelError
	case gl.DEBUG_SEVERITY_MEDIUM:
		level = slog.LevelWarn
	case gl.DEBUG_SEVERITY_LOW:
		level = slog.LevelInfo
	}

	slog.Log(context.Background(), level, "GL debug message",
		slog.Uint64("id", uint64(id)),
		slog.Uint64("source", uint64(source)),
		slog.Uint64("type", uint64(typ)),
		slog.String("message", message),
	)
}
