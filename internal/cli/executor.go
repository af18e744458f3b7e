package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"

	"unifimac/internal/config"
	"unifimac/internal/controller"
	"unifimac/internal/export"
	"unifimac/internal/labeler"
	"unifimac/pkg/logging"
)

// ExecutorOptions configures a ReportExecutor.
type ExecutorOptions struct {
	Settings config.Settings
	// OutFile selects file export instead of printing the report table.
	OutFile string
	// Quiet suppresses the progress spinner.
	Quiet bool

	Stdin  *os.File
	Stdout io.Writer
	Stderr io.Writer

	// ClientOptions are applied after the options derived from Settings.
	ClientOptions []controller.Option
}

// ReportExecutor runs one non-interactive fetch: login, resolve the site,
// fetch the WLAN filter list and known clients, then print or export the
// labelled entries.
type ReportExecutor struct {
	options ExecutorOptions
	format  export.Format
	client  *controller.Client
}

// NewReportExecutor validates options and prepares the controller client.
// Nothing is sent to the controller until Run.
func NewReportExecutor(options ExecutorOptions) (*ReportExecutor, error) {
	if options.Stdin == nil {
		options.Stdin = os.Stdin
	}
	if options.Stdout == nil {
		options.Stdout = os.Stdout
	}
	if options.Stderr == nil {
		options.Stderr = os.Stderr
	}

	s := options.Settings
	if err := ValidateSettings(s); err != nil {
		return nil, err
	}
	format, err := export.ParseFormat(s.Format)
	if err != nil {
		return nil, err
	}

	clientOpts := append([]controller.Option{
		controller.WithVerifyTLS(s.VerifySSL),
		controller.WithTimeout(s.TimeoutDuration()),
	}, options.ClientOptions...)
	client, err := controller.New(s.URL, clientOpts...)
	if err != nil {
		return nil, err
	}

	return &ReportExecutor{options: options, format: format, client: client}, nil
}

// Run performs the fetch. An empty filter list is reported, not an error.
func (e *ReportExecutor) Run(ctx context.Context) error {
	s := e.options.Settings

	password := s.Password
	if password == "" {
		var err error
		password, err = ReadPassword(ctx, PasswordPrompt, e.options.Stdin, e.options.Stderr)
		if err != nil {
			return err
		}
	}

	if err := e.step("Logging in to "+e.client.BaseURL()+"...", func() error {
		return e.client.Login(ctx, s.User, password)
	}); err != nil {
		return err
	}

	var site controller.Site
	if err := e.step("Resolving site...", func() error {
		var err error
		site, err = e.client.ResolveSite(ctx, s.Site)
		return err
	}); err != nil {
		return err
	}
	logging.Debug("Bootstrap", "Resolved site %q to code %s", s.Site, site.Code)

	var profile controller.WirelessProfile
	var known map[string]string
	if err := e.step("Fetching MAC filter list...", func() error {
		var err error
		profile, known, err = e.client.FetchFilterDetails(ctx, site.Code, s.WLAN)
		return err
	}); err != nil {
		return err
	}

	entries := labeler.Reconcile(profile.MACFilterList, known)
	logging.Debug("Bootstrap", "WLAN %s has %d filtered MAC addresses, %d known clients", profile.Name, len(entries), len(known))

	if e.options.OutFile == "" {
		return export.WriteReport(e.options.Stdout, entries)
	}
	if err := export.Export(entries, e.options.OutFile, string(e.format)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(e.options.Stdout, "Exported %d entries to %s (%s).\n", len(entries), e.options.OutFile, e.format)
	return err
}

// step runs fn behind a spinner on stderr, unless quiet or stderr is not a
// terminal.
func (e *ReportExecutor) step(suffix string, fn func() error) error {
	if e.options.Quiet || !IsTerminal(e.options.Stderr) {
		return fn()
	}

	s := newSpinner(e.options.Stderr)
	s.Suffix = " " + suffix
	s.Start()

	err := fn()
	if err != nil {
		s.FinalMSG = text.FgRed.Sprint("Failed: "+strings.TrimSuffix(suffix, "...")) + "\n"
	}
	s.Stop()
	return err
}

// newSpinner returns a spinner drawing on w. When w is a file the spinner's
// own terminal check looks at w rather than at stdout.
func newSpinner(w io.Writer) *spinner.Spinner {
	opt := spinner.WithWriter(w)
	if f, ok := w.(*os.File); ok {
		opt = spinner.WithWriterFile(f)
	}
	return spinner.New(spinner.CharSets[14], 100*time.Millisecond, opt)
}
