// Package clipboard copies message text to the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"github.com/attt/sohbet/internal/logger"
)

var (
	mu          sync.Mutex
	initialized bool

	// Overridable for tests; the real clipboard needs a display server.
	initFunc  = clipboard.Init
	writeFunc = func(data []byte) { clipboard.Write(clipboard.FmtText, data) }
	readFunc  = func() []byte { return clipboard.Read(clipboard.FmtText) }
)

// Init initializes the clipboard. Safe to call more than once.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked()
}

func initLocked() error {
	if initialized {
		return nil
	}
	if err := initFunc(); err != nil {
		logger.WithComponent("clipboard").Warn("init failed", "error", err)
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}
	initialized = true
	return nil
}

// WriteText places text on the clipboard.
func WriteText(text string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := initLocked(); err != nil {
		return err
	}
	writeFunc([]byte(text))
	logger.WithComponent("clipboard").Debug("copied text", "bytes", len(text))
	return nil
}

// ReadText returns the clipboard's text, or "" when it holds none.
func ReadText() (string, error) {
	mu.Lock()
	defer mu.Unlock()

	if err := initLocked(); err != nil {
		return "", err
	}
	return string(readFunc()), nil
}
