package commands

import (
	"context"
	"strings"
)

// StatusCommand summarizes the session
type StatusCommand struct {
	*BaseCommand
}

// NewStatusCommand creates a new status command
func NewStatusCommand(session Session, output OutputLogger) *StatusCommand {
	return &StatusCommand{
		BaseCommand: NewBaseCommand(session, output),
	}
}

// Execute prints the connection, the current selection and pending requests.
func (s *StatusCommand) Execute(ctx context.Context, args []string) error {
	if s.session.Connected() {
		s.output.OutputLine("Controller: %s (user %s)", s.session.BaseURL(), s.session.User())
	} else {
		s.output.OutputLine("Controller: not connected")
	}

	if site, ok := s.session.CurrentSite(); ok {
		s.output.OutputLine("Site:       %s (%s)", site.Description, site.Code)
	} else {
		s.output.OutputLine("Site:       -")
	}

	if profile, ok := s.session.CurrentWLAN(); ok {
		shown, total := s.session.Entries()
		s.output.OutputLine("WLAN:       %s, %d of %d entries shown", profile.Name, len(shown), total)
	} else {
		s.output.OutputLine("WLAN:       -")
	}

	if filter := s.session.Filter(); filter != "" {
		s.output.OutputLine("Filter:     %q", filter)
	}

	if pending := s.session.Pending(); len(pending) > 0 {
		s.output.OutputLine("Pending:    %s", strings.Join(pending, ", "))
	}
	return nil
}

// Usage returns the usage string
func (s *StatusCommand) Usage() string {
	return "status"
}

// Description returns the command description
func (s *StatusCommand) Description() string {
	return "Show connection, selection and pending requests"
}

// Completions returns possible completions
func (s *StatusCommand) Completions(input string) []string {
	return []string{}
}

// Aliases returns command aliases
func (s *StatusCommand) Aliases() []string {
	return []string{}
}
