// Package commands provides the interactive shell's command set.
//
// Every command implements Command and is registered in a Registry under its
// primary name and aliases. Commands run on the shell's event loop goroutine
// and act on the shell through the Session interface; network work is handed
// to the session, which queues it for the background worker and returns
// immediately.
package commands

import (
	"context"
	"errors"
	"sort"

	"unifimac/internal/config"
	"unifimac/internal/controller"
	"unifimac/internal/labeler"
)

// ErrExit is returned by a command to end the shell session.
var ErrExit = errors.New("exit")

// Command represents a shell command that can be executed interactively.
type Command interface {
	// Execute runs the command with the given arguments
	Execute(ctx context.Context, args []string) error

	// Usage returns the usage string for the command
	Usage() string

	// Description returns a brief description of what the command does
	Description() string

	// Completions returns candidates for the whole argument text that
	// follows the command name. It is called from the line editor's
	// goroutine and must only use Session methods documented as safe for
	// concurrent use.
	Completions(input string) []string

	// Aliases returns alternative names for this command
	Aliases() []string
}

// OutputLogger defines the interface for user-facing command output.
type OutputLogger interface {
	Output(format string, args ...interface{})
	OutputLine(format string, args ...interface{})

	Info(format string, args ...interface{})
	Debug(format string, args ...interface{})
	Error(format string, args ...interface{})
	Success(format string, args ...interface{})
}

// Session is the shell state commands read and change. Unless noted
// otherwise, methods must only be called from the event loop goroutine.
type Session interface {
	// Settings returns the resolved flag/env/file settings.
	Settings() config.Settings

	// Connect logs in to the controller at url as user. The password is
	// taken from the settings or prompted for. The call returns before the
	// login completes.
	Connect(url, user string)
	Connected() bool
	BaseURL() string
	User() string

	Sites() []controller.Site
	CurrentSite() (controller.Site, bool)
	// SelectSite makes site current and loads its WLANs and known clients
	// in the background.
	SelectSite(site controller.Site)

	Profiles() []controller.WirelessProfile
	CurrentWLAN() (controller.WirelessProfile, bool)
	// SelectWLAN makes profile current and labels its MAC filter list.
	SelectWLAN(profile controller.WirelessProfile)

	// Entries returns the labelled entries of the current WLAN that match
	// the filter, and the unfiltered total.
	Entries() (shown []labeler.Entry, total int)
	Filter() string
	SetFilter(term string)

	// Pending describes the requests still in flight.
	Pending() []string

	// SiteNames and WLANNames are safe for concurrent use.
	SiteNames() []string
	WLANNames() []string
}

// Registry manages available commands for the shell.
type Registry struct {
	commands map[string]Command
	aliases  map[string]string // alias -> primary command name
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		aliases:  make(map[string]string),
	}
}

// Register adds a command to the registry.
func (r *Registry) Register(name string, cmd Command) {
	r.commands[name] = cmd
	for _, alias := range cmd.Aliases() {
		r.aliases[alias] = name
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) (Command, bool) {
	if cmd, exists := r.commands[name]; exists {
		return cmd, true
	}
	if primary, exists := r.aliases[name]; exists {
		cmd, exists := r.commands[primary]
		return cmd, exists
	}
	return nil, false
}

// List returns all registered command names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AllCompletions returns all command names and aliases, sorted.
func (r *Registry) AllCompletions() []string {
	completions := r.List()
	for alias := range r.aliases {
		completions = append(completions, alias)
	}
	sort.Strings(completions)
	return completions
}

// RegisterDefaults registers the full command set on r.
func RegisterDefaults(r *Registry, session Session, output OutputLogger) {
	r.Register("help", NewHelpCommand(session, output, r))
	r.Register("connect", NewConnectCommand(session, output))
	r.Register("sites", NewSitesCommand(session, output))
	r.Register("site", NewSiteCommand(session, output))
	r.Register("wlans", NewWLANsCommand(session, output))
	r.Register("wlan", NewWLANCommand(session, output))
	r.Register("filter", NewFilterCommand(session, output))
	r.Register("show", NewShowCommand(session, output))
	r.Register("export", NewExportCommand(session, output))
	r.Register("status", NewStatusCommand(session, output))
	r.Register("exit", NewExitCommand(session, output))
}
