package commands

import (
	"context"
	"fmt"
)

// ConnectCommand logs in to a controller
type ConnectCommand struct {
	*BaseCommand
}

// NewConnectCommand creates a new connect command
func NewConnectCommand(session Session, output OutputLogger) *ConnectCommand {
	return &ConnectCommand{
		BaseCommand: NewBaseCommand(session, output),
	}
}

// Execute starts a login. Missing arguments fall back to the configured URL
// and user.
func (c *ConnectCommand) Execute(ctx context.Context, args []string) error {
	settings := c.session.Settings()
	url, user := settings.URL, settings.User
	if len(args) > 0 {
		url = args[0]
	}
	if len(args) > 1 {
		user = args[1]
	}
	if len(args) > 2 {
		return fmt.Errorf("usage: %s", c.Usage())
	}
	if url == "" || user == "" {
		return fmt.Errorf("controller URL and user are required; usage: %s", c.Usage())
	}

	c.session.Connect(url, user)
	return nil
}

// Usage returns the usage string
func (c *ConnectCommand) Usage() string {
	return "connect [url] [user]"
}

// Description returns the command description
func (c *ConnectCommand) Description() string {
	return "Log in to a UniFi controller and load its sites"
}

// Completions returns possible completions
func (c *ConnectCommand) Completions(input string) []string {
	if url := c.session.Settings().URL; url != "" {
		return completeFrom([]string{url}, input)
	}
	return []string{}
}

// Aliases returns command aliases
func (c *ConnectCommand) Aliases() []string {
	return []string{"login"}
}
