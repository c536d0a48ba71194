package orion

import (
	"fmt"
	"log/slog"
	"os"
)

var exit = os.Exit

// Handle ends the process with status 1 if err is not nil, after logging it
// together with the operation described by format and args.
func Handle(err error, format string, args ...any) {
	if err == nil {
		return
	}

	slog.Error("Fatal error",
		slog.String("op", fmt.Sprintf(format, args...)),
		slog.Any("err", err),
	)

	exit(1)
}
