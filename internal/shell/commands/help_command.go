package commands

import (
	"context"
	"strings"
)

// HelpCommand shows available commands and usage information
type HelpCommand struct {
	*BaseCommand
	registry *Registry
}

// NewHelpCommand creates a new help command
func NewHelpCommand(session Session, output OutputLogger, registry *Registry) *HelpCommand {
	return &HelpCommand{
		BaseCommand: NewBaseCommand(session, output),
		registry:    registry,
	}
}

// Execute shows help information
func (h *HelpCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		h.showGeneralHelp()
		return nil
	}

	commandName := strings.ToLower(args[0])
	if commandName == "?" {
		commandName = "help"
	}

	command, exists := h.registry.Get(commandName)
	if !exists {
		h.output.Error("Unknown command: %s", commandName)
		h.output.OutputLine("Use 'help' to see all available commands.")
		return nil
	}

	h.showCommandHelp(commandName, command)
	return nil
}

func (h *HelpCommand) showGeneralHelp() {
	h.output.OutputLine("Available commands:")
	h.output.OutputLine("  help, ?                    - Show this help message")
	h.output.OutputLine("  connect [url] [user]       - Log in to a controller (prompts for the password)")
	h.output.OutputLine("  sites                      - List the sites of the controller")
	h.output.OutputLine("  site <name|code|#>         - Select a site and load its WLANs")
	h.output.OutputLine("  wlans                      - List the WLANs of the current site")
	h.output.OutputLine("  wlan <name|#>              - Select a WLAN and show its MAC filter list")
	h.output.OutputLine("  filter [term]              - Filter the list by MAC or name; no term clears it")
	h.output.OutputLine("  show                       - Show the current MAC filter list")
	h.output.OutputLine("  export <file> [format]     - Write the shown list to a file")
	h.output.OutputLine("  status                     - Show connection, selection and pending requests")
	h.output.OutputLine("  exit, quit, q              - Exit the shell")
	h.output.OutputLine("")
	h.output.OutputLine("Keyboard shortcuts:")
	h.output.OutputLine("  TAB                        - Auto-complete commands, sites and WLANs")
	h.output.OutputLine("  Up/Down                    - Navigate command history")
	h.output.OutputLine("  Ctrl+R                     - Search command history")
	h.output.OutputLine("  Ctrl+C                     - Cancel current line or prompt")
	h.output.OutputLine("  Ctrl+D                     - Exit the shell")
	h.output.OutputLine("")
	h.output.OutputLine("Examples:")
	h.output.OutputLine("  connect https://10.0.0.1:8443 admin")
	h.output.OutputLine("  site Main Office")
	h.output.OutputLine("  wlan 2")
	h.output.OutputLine("  filter printer")
	h.output.OutputLine("  export macs.csv")
}

func (h *HelpCommand) showCommandHelp(commandName string, cmd Command) {
	h.output.OutputLine("Command: %s", commandName)
	h.output.OutputLine("Description: %s", cmd.Description())
	h.output.OutputLine("Usage: %s", cmd.Usage())

	aliases := cmd.Aliases()
	if len(aliases) > 0 {
		h.output.OutputLine("Aliases: %s", strings.Join(aliases, ", "))
	}
}

// Usage returns the usage string
func (h *HelpCommand) Usage() string {
	return "help [command]"
}

// Description returns the command description
func (h *HelpCommand) Description() string {
	return "Show help information for commands"
}

// Completions returns possible completions
func (h *HelpCommand) Completions(input string) []string {
	return completeFrom(h.registry.AllCompletions(), input)
}

// Aliases returns command aliases
func (h *HelpCommand) Aliases() []string {
	return []string{"?"}
}
