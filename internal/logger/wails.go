package logger

import (
	"os"

	wailslogger "github.com/wailsapp/wails/v2/pkg/logger"
)

// wailsAdapter routes the desktop runtime's log calls into a Logger.
type wailsAdapter struct {
	l    Logger
	exit func(int)
}

// Wails adapts l to the desktop runtime's logger interface. Trace and Debug
// map to Debug, Print and Info to Info. Fatal logs an error and exits.
func Wails(l Logger) wailslogger.Logger {
	return &wailsAdapter{l: l, exit: os.Exit}
}

func (w *wailsAdapter) Print(message string)   { w.l.Info("%s", message) }
func (w *wailsAdapter) Trace(message string)   { w.l.Debug("%s", message) }
func (w *wailsAdapter) Debug(message string)   { w.l.Debug("%s", message) }
func (w *wailsAdapter) Info(message string)    { w.l.Info("%s", message) }
func (w *wailsAdapter) Warning(message string) { w.l.Warn("%s", message) }
func (w *wailsAdapter) Error(message string)   { w.l.Error("%s", message) }

func (w *wailsAdapter) Fatal(message string) {
	w.l.Error("FATAL: %s", message)
	w.exit(1)
}
