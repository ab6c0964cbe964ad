package server

import (
	"fmt"
	"io"
	"sync"

	"github.com/df07/go-pathtracer/pkg/core"
)

// WebLogger implements core.Logger by tagging each message with the render
// it belongs to, so concurrent requests can be told apart in server logs
type WebLogger struct {
	renderID string
	mu       *sync.Mutex
	out      io.Writer
}

// NewWebLogger creates a new web logger for a specific render. Loggers that
// share out must share mu.
func NewWebLogger(renderID string, out io.Writer, mu *sync.Mutex) core.Logger {
	return &WebLogger{
		renderID: renderID,
		mu:       mu,
		out:      out,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	wl.mu.Lock()
	defer wl.mu.Unlock()
	fmt.Fprintf(wl.out, "[%s] %s", wl.renderID, message)
}
