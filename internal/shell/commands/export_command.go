package commands

import (
	"context"
	"fmt"
	"strings"

	"unifimac/internal/export"
)

// ExportCommand writes the shown MAC list to a file
type ExportCommand struct {
	*BaseCommand
}

// NewExportCommand creates a new export command
func NewExportCommand(session Session, output OutputLogger) *ExportCommand {
	return &ExportCommand{
		BaseCommand: NewBaseCommand(session, output),
	}
}

// Execute exports the filtered entries of the current WLAN. Without an
// explicit format it is taken from the file extension, then the configured
// default.
func (e *ExportCommand) Execute(ctx context.Context, args []string) error {
	if _, err := e.parseArgs(args, 1, e.Usage()); err != nil {
		return err
	}
	if len(args) > 2 {
		return fmt.Errorf("usage: %s", e.Usage())
	}
	if _, ok := e.session.CurrentWLAN(); !ok {
		return fmt.Errorf("no WLAN selected; use 'wlan <name>' first")
	}

	path := args[0]
	var format export.Format
	if len(args) == 2 {
		parsed, err := export.ParseFormat(args[1])
		if err != nil {
			return err
		}
		format = parsed
	} else {
		fallback := export.Format(strings.ToLower(e.session.Settings().Format))
		format = export.InferFormat(path, fallback)
	}

	shown, _ := e.session.Entries()
	if err := export.Export(shown, path, string(format)); err != nil {
		return err
	}
	e.output.Success("Exported %d entries to %s (%s).", len(shown), path, format)
	return nil
}

// Usage returns the usage string
func (e *ExportCommand) Usage() string {
	return "export <file> [" + strings.Join(export.Available(), "|") + "]"
}

// Description returns the command description
func (e *ExportCommand) Description() string {
	return "Write the shown MAC list to a file"
}

// Completions returns possible completions. Once a file name is typed, the
// available formats are offered.
func (e *ExportCommand) Completions(input string) []string {
	fields := strings.Fields(input)
	var last string
	switch {
	case len(fields) == 1 && strings.HasSuffix(input, " "):
	case len(fields) == 2:
		last = fields[1]
	default:
		return []string{}
	}

	var completions []string
	for _, format := range completeFrom(export.Available(), last) {
		completions = append(completions, fields[0]+" "+format)
	}
	return completions
}

// Aliases returns command aliases
func (e *ExportCommand) Aliases() []string {
	return []string{"save"}
}
