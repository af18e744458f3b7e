package cli

import (
	"github.com/spf13/cobra"

	"unifimac/internal/config"
)

// CommandFlags holds the values of the flags shared by the report command
// and the interactive shell.
type CommandFlags struct {
	URL       string
	User      string
	Password  string
	Site      string
	WLAN      string
	Out       string
	Format    string
	VerifySSL bool
	Timeout   int

	// ForceCLI skips the interactive shell.
	ForceCLI   bool
	Debug      bool
	Quiet      bool
	ConfigPath string
}

// fetchFlags are the flags whose presence selects CLI report mode.
var fetchFlags = []string{"url", "user", "password", "site", "wlan", "out", "format", "verify-ssl", "timeout"}

// RegisterConnectionFlags registers the controller connection and selection
// flags. Defaults are left empty so that environment and config file values
// are only overridden by flags the user actually passed.
func RegisterConnectionFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.PersistentFlags().StringVar(&flags.URL, "url", "", "Controller base URL, e.g. https://ip:8443 (env: UNIFI_API)")
	cmd.PersistentFlags().StringVar(&flags.User, "user", "", "UniFi username (env: UNIFI_USERNAME)")
	cmd.PersistentFlags().StringVar(&flags.Password, "password", "", "UniFi password, prompted when empty (env: UNIFI_PASSWORD)")
	cmd.PersistentFlags().StringVar(&flags.Site, "site", "", "Site name or description (env: UNIFI_SITE)")
	cmd.PersistentFlags().StringVar(&flags.WLAN, "wlan", "", "WLAN profile name, case sensitive (env: UNIFI_WLAN)")
	cmd.PersistentFlags().BoolVar(&flags.VerifySSL, "verify-ssl", false, "Enable SSL certificate verification (disabled by default for compatibility)")
	cmd.PersistentFlags().IntVar(&flags.Timeout, "timeout", config.DefaultTimeout, "HTTP timeout in seconds")
	cmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "Config file (default ~/.config/unifimac/config.yaml)")
	cmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable verbose logging")
}

// RegisterReportFlags registers the flags that only apply to CLI report
// mode.
func RegisterReportFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.Flags().StringVar(&flags.Out, "out", "", "Output filename; results are printed to stdout when omitted")
	cmd.Flags().StringVar(&flags.Format, "format", config.DefaultFormat, "Export format when --out is supplied (txt, csv, xlsx)")
	cmd.Flags().BoolVar(&flags.ForceCLI, "cli", false, "Force CLI mode (skip the interactive shell)")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress progress indicators")
}

// WantsCLI reports whether cmd should run in CLI report mode: --cli was
// given or any fetch flag was set explicitly.
func WantsCLI(cmd *cobra.Command, flags *CommandFlags) bool {
	if flags.ForceCLI {
		return true
	}
	for _, name := range fetchFlags {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			return true
		}
	}
	return false
}

// Layer returns the flags the user set explicitly as a config layer.
func (f *CommandFlags) Layer(cmd *cobra.Command) config.Config {
	changed := func(name string) bool {
		flag := cmd.Flags().Lookup(name)
		return flag != nil && flag.Changed
	}

	layer := config.Config{
		URL:      f.URL,
		User:     f.User,
		Password: f.Password,
		Site:     f.Site,
		WLAN:     f.WLAN,
	}
	if changed("format") {
		layer.Format = f.Format
	}
	if changed("verify-ssl") {
		verify := f.VerifySSL
		layer.VerifySSL = &verify
	}
	if changed("timeout") {
		layer.Timeout = f.Timeout
	}
	return layer
}
