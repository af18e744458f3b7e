package commands

import (
	"context"
	"strings"
)

// FilterCommand narrows the shown MAC list
type FilterCommand struct {
	*BaseCommand
}

// NewFilterCommand creates a new filter command
func NewFilterCommand(session Session, output OutputLogger) *FilterCommand {
	return &FilterCommand{
		BaseCommand: NewBaseCommand(session, output),
	}
}

// Execute sets the filter term and shows the result. Without arguments the
// filter is cleared.
func (f *FilterCommand) Execute(ctx context.Context, args []string) error {
	term := strings.TrimSpace(f.joinArgsFrom(args, 0))
	f.session.SetFilter(term)

	if _, ok := f.session.CurrentWLAN(); !ok {
		if term == "" {
			f.output.Info("Filter cleared.")
		} else {
			f.output.Info("Filter set to %q.", term)
		}
		return nil
	}
	showEntries(f.session, f.output)
	return nil
}

// Usage returns the usage string
func (f *FilterCommand) Usage() string {
	return "filter [term]"
}

// Description returns the command description
func (f *FilterCommand) Description() string {
	return "Show only entries whose MAC or name contains term, ignoring case"
}

// Completions returns possible completions
func (f *FilterCommand) Completions(input string) []string {
	return []string{}
}

// Aliases returns command aliases
func (f *FilterCommand) Aliases() []string {
	return []string{"grep"}
}
