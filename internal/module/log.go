package module

import (
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

var logger atomic.Pointer[log.Logger]

func init() {
	logger.Store(log.NewWithOptions(io.Discard, log.Options{Prefix: "module"}))
}

// SetLogger installs the logger used for index diagnostics. A nil logger
// restores the silent default.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.NewWithOptions(io.Discard, log.Options{Prefix: "module"})
	}
	logger.Store(l)
}

func getLogger() *log.Logger {
	return logger.Load()
}
