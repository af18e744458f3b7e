package shell

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/text"

	"unifimac/pkg/logging"
)

// Printer writes user-facing shell output. It implements
// commands.OutputLogger.
type Printer struct {
	writer   io.Writer
	useColor bool
	verbose  bool
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer, useColor, verbose bool) *Printer {
	return &Printer{
		writer:   w,
		useColor: useColor,
		verbose:  verbose,
	}
}

// Output writes command results without decoration.
func (p *Printer) Output(format string, args ...interface{}) {
	fmt.Fprintf(p.writer, format, args...)
}

// OutputLine writes command results with a newline.
func (p *Printer) OutputLine(format string, args ...interface{}) {
	fmt.Fprintf(p.writer, format+"\n", args...)
}

func (p *Printer) colorize(s string, color text.Color) string {
	if !p.useColor {
		return s
	}
	return color.Sprint(s)
}

// Info writes a status message.
func (p *Printer) Info(format string, args ...interface{}) {
	fmt.Fprintln(p.writer, p.colorize(fmt.Sprintf(format, args...), text.FgBlue))
}

// Debug writes a message only in verbose mode.
func (p *Printer) Debug(format string, args ...interface{}) {
	if !p.verbose {
		return
	}
	fmt.Fprintln(p.writer, p.colorize("[DEBUG] "+fmt.Sprintf(format, args...), text.FgHiBlack))
}

// Error writes a failure message.
func (p *Printer) Error(format string, args ...interface{}) {
	fmt.Fprintln(p.writer, p.colorize(fmt.Sprintf(format, args...), text.FgRed))
}

// Success writes a completion message.
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintln(p.writer, p.colorize(fmt.Sprintf(format, args...), text.FgGreen))
}

// Log writes a structured log entry.
func (p *Printer) Log(entry logging.LogEntry) {
	color := text.FgHiBlack
	switch entry.Level {
	case logging.LevelWarn:
		color = text.FgYellow
	case logging.LevelError:
		color = text.FgRed
	}
	fmt.Fprintln(p.writer, p.colorize(entry.String(), color))
}
