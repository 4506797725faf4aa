package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/m-mizutani/clog"
	"golang.org/x/term"
)

var (
	verboseMode atomic.Bool
	current     atomic.Pointer[slog.Logger]

	mu     sync.Mutex
	output io.Writer = os.Stderr
)

func init() {
	SetOutput(os.Stderr)
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(verbose bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode.Store(verbose)
	rebuild()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	return verboseMode.Load()
}

// SetOutput redirects log output. Terminals get colored console output,
// anything else gets one JSON object per line.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	rebuild()
}

func rebuild() {
	level := slog.LevelInfo
	if verboseMode.Load() {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if isTerminal(output) {
		handler = clog.New(
			clog.WithWriter(output),
			clog.WithLevel(level),
			clog.WithTimeFmt("15:04:05"),
			clog.WithSource(false),
			clog.WithAttrHook(clog.GoerrHook),
		)
	} else {
		handler = slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level})
	}
	current.Store(slog.New(handler))
}

// Logger returns the structured logger for callers that want attributes
// instead of formatted messages.
func Logger() *slog.Logger {
	return current.Load()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Debugf logs a formatted debug message if verbose mode is enabled.
func Debugf(format string, v ...interface{}) {
	if verboseMode.Load() {
		Logger().Debug(fmt.Sprintf(format, v...))
	}
}

// Infof logs a formatted informational message.
func Infof(format string, v ...interface{}) {
	Logger().Info(fmt.Sprintf(format, v...))
}

// Errorf logs a formatted error message.
func Errorf(format string, v ...interface{}) {
	Logger().Error(fmt.Sprintf(format, v...))
}
