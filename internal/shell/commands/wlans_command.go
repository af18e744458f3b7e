package commands

import (
	"context"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"unifimac/internal/controller"
	"unifimac/internal/export"
)

// WLANsCommand lists the WLANs of the current site
type WLANsCommand struct {
	*BaseCommand
}

// NewWLANsCommand creates a new wlans command
func NewWLANsCommand(session Session, output OutputLogger) *WLANsCommand {
	return &WLANsCommand{
		BaseCommand: NewBaseCommand(session, output),
	}
}

// Execute prints the WLANs of the current site with their filter settings.
func (w *WLANsCommand) Execute(ctx context.Context, args []string) error {
	site, err := w.requireSite()
	if err != nil {
		return err
	}

	profiles := w.session.Profiles()
	if len(profiles) == 0 {
		w.output.Info("No WLANs found for %s.", site.Description)
		return nil
	}

	current, hasCurrent := w.session.CurrentWLAN()
	rows := make([]table.Row, 0, len(profiles))
	for i, p := range profiles {
		rows = append(rows, table.Row{
			marker(hasCurrent && p.Name == current.Name),
			strconv.Itoa(i + 1),
			p.Name,
			strconv.Itoa(len(p.MACFilterList)),
			policyLabel(p),
		})
	}
	w.output.OutputLine("%s", export.RenderTable(table.Row{"", "#", "WLAN", "MACs", "Policy"}, rows))
	return nil
}

// Usage returns the usage string
func (w *WLANsCommand) Usage() string {
	return "wlans"
}

// Description returns the command description
func (w *WLANsCommand) Description() string {
	return "List the WLANs of the current site"
}

// Completions returns possible completions
func (w *WLANsCommand) Completions(input string) []string {
	return []string{}
}

// Aliases returns command aliases
func (w *WLANsCommand) Aliases() []string {
	return []string{}
}

// WLANCommand selects the current WLAN
type WLANCommand struct {
	*BaseCommand
}

// NewWLANCommand creates a new wlan command
func NewWLANCommand(session Session, output OutputLogger) *WLANCommand {
	return &WLANCommand{
		BaseCommand: NewBaseCommand(session, output),
	}
}

// Execute selects a WLAN by exact name or list position.
func (w *WLANCommand) Execute(ctx context.Context, args []string) error {
	if _, err := w.parseArgs(args, 1, w.Usage()); err != nil {
		return err
	}
	if _, err := w.requireSite(); err != nil {
		return err
	}

	profiles := w.session.Profiles()
	name := w.joinArgsFrom(args, 0)
	profile, err := controller.FindWirelessProfile(profiles, name)
	if err != nil {
		i, ok := parseIndex(name, len(profiles))
		if !ok {
			return err
		}
		profile = profiles[i]
	}

	w.session.SelectWLAN(profile)
	return nil
}

// Usage returns the usage string
func (w *WLANCommand) Usage() string {
	return "wlan <name|#>"
}

// Description returns the command description
func (w *WLANCommand) Description() string {
	return "Select a WLAN of the current site and show its MAC filter list"
}

// Completions returns possible completions
func (w *WLANCommand) Completions(input string) []string {
	return completeFrom(w.session.WLANNames(), input)
}

// Aliases returns command aliases
func (w *WLANCommand) Aliases() []string {
	return []string{"ssid"}
}

// policyLabel renders the filter policy, noting when filtering is switched off.
func policyLabel(p controller.WirelessProfile) string {
	policy := p.MACFilterPolicy
	if policy == "" {
		policy = "-"
	}
	if !p.MACFilterEnabled {
		policy += " (off)"
	}
	return policy
}
