package shell

import (
	"context"
	"sort"

	"unifimac/internal/cli"
	"unifimac/internal/config"
	"unifimac/internal/controller"
	"unifimac/internal/export"
	"unifimac/internal/labeler"
	"unifimac/pkg/logging"
	pkgstrings "unifimac/pkg/strings"
)

// state is everything the user sees. Only the loop goroutine touches it.
type state struct {
	connected bool
	baseURL   string
	user      string

	sites []controller.Site
	site  *controller.Site

	profiles []controller.WirelessProfile
	known    map[string]string
	wlan     *controller.WirelessProfile
	entries  []labeler.Entry

	filter string
}

const maxPromptNameLen = 24

func truncateName(name string) string {
	return pkgstrings.TruncateMiddle(name, maxPromptNameLen)
}

// Settings implements commands.Session.
func (s *Shell) Settings() config.Settings {
	return s.settings
}

// Connect implements commands.Session. The password comes from the settings
// when one was configured, otherwise the user is asked for it.
func (s *Shell) Connect(url, user string) {
	if s.settings.Password != "" {
		s.startLogin(url, user, s.settings.Password)
		return
	}
	s.askUser(cli.PasswordPrompt, true, func(password string) {
		if password == "" {
			s.out.Error("Error: a password is required")
			return
		}
		s.startLogin(url, user, password)
	})
}

// startLogin discards the current session and queues a login. Results of
// requests made for the previous session are dropped when they arrive.
func (s *Shell) startLogin(url, user, password string) {
	s.state = state{filter: s.state.filter}
	for kind := range s.pending {
		delete(s.pending, kind)
	}
	s.queue = nil

	s.out.Info("Connecting to %s...", url)
	s.submit(job{kind: RequestLogin, url: url, user: user, password: password})
	s.refresh()
}

// Connected implements commands.Session.
func (s *Shell) Connected() bool {
	return s.state.connected
}

// BaseURL implements commands.Session.
func (s *Shell) BaseURL() string {
	return s.state.baseURL
}

// User implements commands.Session.
func (s *Shell) User() string {
	return s.state.user
}

// Sites implements commands.Session.
func (s *Shell) Sites() []controller.Site {
	return s.state.sites
}

// CurrentSite implements commands.Session.
func (s *Shell) CurrentSite() (controller.Site, bool) {
	if s.state.site == nil {
		return controller.Site{}, false
	}
	return *s.state.site, true
}

// SelectSite implements commands.Session. The WLAN list is cleared until the
// site's data arrives.
func (s *Shell) SelectSite(site controller.Site) {
	s.state.site = &site
	s.state.profiles = nil
	s.state.known = nil
	s.state.wlan = nil
	s.state.entries = nil

	s.out.Info("Loading WLANs for %s...", site.Description)
	s.submit(job{kind: RequestSiteData, site: site})
	s.refresh()
}

// Profiles implements commands.Session.
func (s *Shell) Profiles() []controller.WirelessProfile {
	return s.state.profiles
}

// CurrentWLAN implements commands.Session.
func (s *Shell) CurrentWLAN() (controller.WirelessProfile, bool) {
	if s.state.wlan == nil {
		return controller.WirelessProfile{}, false
	}
	return *s.state.wlan, true
}

// SelectWLAN implements commands.Session. Entries are labelled with the
// known clients of the current site.
func (s *Shell) SelectWLAN(profile controller.WirelessProfile) {
	s.state.wlan = &profile
	s.state.entries = labeler.Reconcile(profile.MACFilterList, s.state.known)

	s.out.Success("Loaded %d MAC addresses for %s.", len(s.state.entries), profile.Name)
	s.showCurrent()
	s.refresh()
}

// Entries implements commands.Session.
func (s *Shell) Entries() ([]labeler.Entry, int) {
	return labeler.FilterEntries(s.state.entries, s.state.filter), len(s.state.entries)
}

// Filter implements commands.Session.
func (s *Shell) Filter() string {
	return s.state.filter
}

// SetFilter implements commands.Session.
func (s *Shell) SetFilter(term string) {
	s.state.filter = term
}

// Pending implements commands.Session.
func (s *Shell) Pending() []string {
	kinds := make([]string, 0, len(s.pending))
	for kind := range s.pending {
		kinds = append(kinds, kind.String())
	}
	sort.Strings(kinds)
	return kinds
}

// SiteNames implements commands.Session.
func (s *Shell) SiteNames() []string {
	s.namesMu.RLock()
	defer s.namesMu.RUnlock()
	return append([]string(nil), s.siteNames...)
}

// WLANNames implements commands.Session.
func (s *Shell) WLANNames() []string {
	s.namesMu.RLock()
	defer s.namesMu.RUnlock()
	return append([]string(nil), s.wlanNames...)
}

// publishNames copies the site and WLAN names for the completer.
func (s *Shell) publishNames() {
	sites := make([]string, 0, len(s.state.sites))
	for _, site := range s.state.sites {
		sites = append(sites, site.Description)
	}
	wlans := make([]string, 0, len(s.state.profiles))
	for _, profile := range s.state.profiles {
		wlans = append(wlans, profile.Name)
	}

	s.namesMu.Lock()
	s.siteNames = sites
	s.wlanNames = wlans
	s.namesMu.Unlock()
}

// handleResult applies a worker result if it answers the current request of
// its kind.
func (s *Shell) handleResult(res FetchResult) {
	if current, ok := s.pending[res.Kind]; !ok || current != res.ID {
		logging.Debug(subsystem, "Discarding stale %s result %s", res.Kind, res.ID)
		return
	}
	delete(s.pending, res.Kind)

	if res.Err != nil {
		switch res.Kind {
		case RequestLogin:
			s.out.Error("Login failed: %s", cli.Describe(res.Err))
		default:
			s.out.Error("Failed to load data: %s", cli.Describe(res.Err))
		}
		s.refresh()
		return
	}

	switch payload := res.Payload.(type) {
	case loginPayload:
		s.applyLogin(payload)
	case siteDataPayload:
		s.applySiteData(payload)
	}
	s.refresh()
}

// applyLogin stores the site list and selects the configured site, or the
// first one.
func (s *Shell) applyLogin(p loginPayload) {
	s.state.connected = true
	s.state.baseURL = p.BaseURL
	s.state.user = p.User
	s.state.sites = p.Sites
	s.out.Success("Connected. Choose a site and WLAN.")

	if len(p.Sites) == 0 {
		s.out.Info("No sites available.")
		return
	}

	site := p.Sites[0]
	if s.settings.Site != "" {
		if preferred, err := controller.FindSite(p.Sites, s.settings.Site); err == nil {
			site = preferred
		} else {
			s.out.Error("%v", err)
		}
	}
	s.SelectSite(site)
}

// applySiteData stores a site's WLANs and known clients and selects the
// configured WLAN, or the first one.
func (s *Shell) applySiteData(p siteDataPayload) {
	s.state.profiles = p.Profiles
	s.state.known = p.Known

	if len(p.Profiles) == 0 {
		s.out.Info("No WLANs found for this site.")
		s.showCurrent()
		return
	}

	profile := p.Profiles[0]
	if s.settings.WLAN != "" {
		if preferred, err := controller.FindWirelessProfile(p.Profiles, s.settings.WLAN); err == nil {
			profile = preferred
		} else {
			s.out.Error("%v", err)
		}
	}
	s.SelectWLAN(profile)
}

// showCurrent prints the current list the way the show command does. With
// no WLAN it prints the empty-list message.
func (s *Shell) showCurrent() {
	if s.state.wlan == nil {
		s.out.OutputLine("%s", export.EmptyReportMessage)
		return
	}
	if show, ok := s.registry.Get("show"); ok {
		if err := show.Execute(context.Background(), nil); err != nil {
			s.out.Error("Error: %v", err)
		}
	}
}
