package commands

import (
	"fmt"
	"strconv"
	"strings"

	"unifimac/internal/controller"
)

// BaseCommand provides common functionality for all shell commands.
// It holds the session and output dependencies and the argument helpers
// most commands need.
type BaseCommand struct {
	session Session      // Shell state and background requests
	output  OutputLogger // Logger for user-facing output
}

// NewBaseCommand creates a new base command with the specified dependencies.
func NewBaseCommand(session Session, output OutputLogger) *BaseCommand {
	return &BaseCommand{
		session: session,
		output:  output,
	}
}

// parseArgs validates that at least minArgs arguments were given.
func (b *BaseCommand) parseArgs(args []string, minArgs int, usage string) ([]string, error) {
	if len(args) < minArgs {
		return nil, fmt.Errorf("usage: %s", usage)
	}
	return args, nil
}

// joinArgsFrom joins arguments starting from index into a single string.
// Site and WLAN names may contain spaces.
func (b *BaseCommand) joinArgsFrom(args []string, index int) string {
	if index >= len(args) {
		return ""
	}
	return strings.Join(args[index:], " ")
}

// requireConnected returns an error unless a login has succeeded.
func (b *BaseCommand) requireConnected() error {
	if !b.session.Connected() {
		return fmt.Errorf("not connected; use 'connect' first")
	}
	return nil
}

// requireSite returns the current site or an error if none is selected.
func (b *BaseCommand) requireSite() (controller.Site, error) {
	if err := b.requireConnected(); err != nil {
		return controller.Site{}, err
	}
	site, ok := b.session.CurrentSite()
	if !ok {
		return controller.Site{}, fmt.Errorf("no site selected; use 'site <name>' first")
	}
	return site, nil
}

// parseIndex interprets arg as a 1-based position in a list of n items.
func parseIndex(arg string, n int) (int, bool) {
	i, err := strconv.Atoi(arg)
	if err != nil || i < 1 || i > n {
		return 0, false
	}
	return i - 1, true
}

// completeFrom returns the candidates that start with the last word of input,
// ignoring case.
func completeFrom(candidates []string, input string) []string {
	prefix := strings.ToLower(input)
	var matches []string
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), prefix) {
			matches = append(matches, c)
		}
	}
	return matches
}
