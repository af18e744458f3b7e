package commands

import (
	"context"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"unifimac/internal/controller"
	"unifimac/internal/export"
)

// SitesCommand lists the controller's sites
type SitesCommand struct {
	*BaseCommand
}

// NewSitesCommand creates a new sites command
func NewSitesCommand(session Session, output OutputLogger) *SitesCommand {
	return &SitesCommand{
		BaseCommand: NewBaseCommand(session, output),
	}
}

// Execute prints the sites loaded at login. The current site is marked.
func (s *SitesCommand) Execute(ctx context.Context, args []string) error {
	if err := s.requireConnected(); err != nil {
		return err
	}

	sites := s.session.Sites()
	if len(sites) == 0 {
		s.output.Info("No sites available.")
		return nil
	}

	current, hasCurrent := s.session.CurrentSite()
	rows := make([]table.Row, 0, len(sites))
	for i, site := range sites {
		rows = append(rows, table.Row{marker(hasCurrent && site.Code == current.Code), strconv.Itoa(i + 1), site.Description, site.Code})
	}
	s.output.OutputLine("%s", export.RenderTable(table.Row{"", "#", "Site", "Code"}, rows))
	return nil
}

// Usage returns the usage string
func (s *SitesCommand) Usage() string {
	return "sites"
}

// Description returns the command description
func (s *SitesCommand) Description() string {
	return "List the sites visible to the logged-in user"
}

// Completions returns possible completions
func (s *SitesCommand) Completions(input string) []string {
	return []string{}
}

// Aliases returns command aliases
func (s *SitesCommand) Aliases() []string {
	return []string{}
}

// SiteCommand selects the current site
type SiteCommand struct {
	*BaseCommand
}

// NewSiteCommand creates a new site command
func NewSiteCommand(session Session, output OutputLogger) *SiteCommand {
	return &SiteCommand{
		BaseCommand: NewBaseCommand(session, output),
	}
}

// Execute selects a site by description, code or list position and starts
// loading its WLANs.
func (s *SiteCommand) Execute(ctx context.Context, args []string) error {
	if _, err := s.parseArgs(args, 1, s.Usage()); err != nil {
		return err
	}
	if err := s.requireConnected(); err != nil {
		return err
	}

	sites := s.session.Sites()
	hint := s.joinArgsFrom(args, 0)
	site, err := controller.FindSite(sites, hint)
	if err != nil {
		i, ok := parseIndex(hint, len(sites))
		if !ok {
			return err
		}
		site = sites[i]
	}

	s.session.SelectSite(site)
	return nil
}

// Usage returns the usage string
func (s *SiteCommand) Usage() string {
	return "site <name|code|#>"
}

// Description returns the command description
func (s *SiteCommand) Description() string {
	return "Select a site and load its WLANs and known devices"
}

// Completions returns possible completions
func (s *SiteCommand) Completions(input string) []string {
	return completeFrom(s.session.SiteNames(), input)
}

// Aliases returns command aliases
func (s *SiteCommand) Aliases() []string {
	return []string{"cd"}
}

func marker(current bool) string {
	if current {
		return "*"
	}
	return ""
}
