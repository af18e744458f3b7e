package commands

import (
	"context"
	"fmt"

	"unifimac/internal/export"
)

// ShowCommand prints the current MAC filter list
type ShowCommand struct {
	*BaseCommand
}

// NewShowCommand creates a new show command
func NewShowCommand(session Session, output OutputLogger) *ShowCommand {
	return &ShowCommand{
		BaseCommand: NewBaseCommand(session, output),
	}
}

// Execute prints the labelled entries of the current WLAN after filtering.
func (s *ShowCommand) Execute(ctx context.Context, args []string) error {
	if _, err := s.requireSite(); err != nil {
		return err
	}
	if _, ok := s.session.CurrentWLAN(); !ok {
		return fmt.Errorf("no WLAN selected; use 'wlan <name>' first")
	}

	showEntries(s.session, s.output)
	return nil
}

// Usage returns the usage string
func (s *ShowCommand) Usage() string {
	return "show"
}

// Description returns the command description
func (s *ShowCommand) Description() string {
	return "Show the MAC filter list of the current WLAN"
}

// Completions returns possible completions
func (s *ShowCommand) Completions(input string) []string {
	return []string{}
}

// Aliases returns command aliases
func (s *ShowCommand) Aliases() []string {
	return []string{"ls"}
}

// showEntries prints a heading for the current WLAN followed by the table.
func showEntries(session Session, output OutputLogger) {
	site, _ := session.CurrentSite()
	profile, _ := session.CurrentWLAN()
	shown, total := session.Entries()

	heading := fmt.Sprintf("%s @ %s (%s): %d of %d shown", profile.Name, site.Description, policyLabel(profile), len(shown), total)
	if filter := session.Filter(); filter != "" {
		heading += fmt.Sprintf(", filter %q", filter)
	}
	output.OutputLine("%s", heading)
	output.OutputLine("%s", export.Report(shown))
}
