// Package logging provides the capability interface the core pipeline uses
// to report recovered parse and I/O failures and continue, without holding
// any global logging state.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Logger is the minimal capability an analysis component needs to report a
// recovered error and continue. It never aborts the pipeline.
type Logger interface {
	Warnf(format string, args ...any)
}

// Writer is a Logger that writes warnings to an io.Writer, colorizing the
// "warning:" prefix when the underlying file descriptor is a TTY.
type Writer struct {
	w       io.Writer
	colored bool
}

// NewWriter creates a Logger writing to w. If w is an *os.File attached to
// a terminal, warnings are prefixed in yellow.
func NewWriter(w io.Writer) *Writer {
	colored := false
	if f, ok := w.(*os.File); ok {
		colored = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Writer{w: w, colored: colored}
}

// Warnf logs a warning. Never returns an error; a logging failure is not
// itself a pipeline failure.
func (l *Writer) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	prefix := "warning: "
	if l.colored {
		prefix = color.YellowString("warning: ")
	}
	fmt.Fprintf(l.w, "%s%s\n", prefix, msg)
}

// Discard is a Logger that drops every warning. Useful in tests that assert
// on other output and don't want stderr noise.
type Discard struct{}

// Warnf implements Logger by doing nothing.
func (Discard) Warnf(string, ...any) {}
