package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"unifimac/internal/cli"
	"unifimac/internal/config"
	"unifimac/internal/shell"
	"unifimac/pkg/logging"
)

// newShellCmd creates the command that always opens the interactive shell,
// even when connection flags are given.
func newShellCmd(flags *cli.CommandFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Browse sites and WLANs interactively",
		Long: `Opens the interactive shell. Connection flags, UNIFI_* variables and the
config file supply defaults for 'connect'; --site and --wlan choose what is
selected after login instead of the first site and WLAN.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd, flags, os.LookupEnv)
			if err != nil {
				return err
			}
			return runShell(cmd, settings, flags.Debug)
		},
	}
}

// runShell routes logging into the shell for the session's lifetime.
func runShell(cmd *cobra.Command, settings config.Settings, debug bool) error {
	level := logging.LevelWarn
	if debug {
		level = logging.LevelDebug
	}
	logs := logging.InitForShell(level)
	defer logging.CloseShellChannel()

	sh := shell.New(shell.Options{
		Settings: settings,
		Logs:     logs,
		Color:    cli.IsTerminal(os.Stdout),
		Verbose:  debug,
	})
	return sh.Run(cmd.Context())
}
