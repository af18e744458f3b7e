package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"unifimac/internal/cli"
	"unifimac/internal/config"
	"unifimac/pkg/logging"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution, including an empty
	// filter list.
	ExitCodeSuccess = 0
	// ExitCodeError indicates any failure.
	ExitCodeError = 1
)

// rootFlags holds the values of the flags shared by every command.
var rootFlags cli.CommandFlags

// rootCmd represents the base command for the unifimac application.
var rootCmd = newRootCmd(&rootFlags)

// newRootCmd builds the base command. Without fetch flags it opens the
// interactive shell; with --cli or any fetch flag it prints one report.
func newRootCmd(flags *cli.CommandFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unifimac",
		Short: "View the MAC filter lists of UniFi WLANs",
		Long: `unifimac logs in to a UniFi Network controller and shows the MAC
addresses in a WLAN's MAC filter list, each labelled with the name of the
matching known device.

Run without flags to browse sites and WLANs in an interactive shell. Pass
--cli or any of --url, --user, --password, --site, --wlan, --out, --format,
--verify-ssl or --timeout to print (or export) a single report and exit.
Settings not given as flags are read from UNIFI_* environment variables and
then from ~/.config/unifimac/config.yaml.`,
		Args: cobra.NoArgs,
		// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
		SilenceUsage: true,
		// Errors are printed once by Execute, with a connection hint.
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging(flags.Debug, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, flags)
		},
	}

	cli.RegisterConnectionFlags(cmd, flags)
	cli.RegisterReportFlags(cmd, flags)
	return cmd
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "unifimac version %s\n" .Version}}`)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		os.Exit(ExitCodeError)
	}
}

// printError writes the single-line failure message.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %s\n", cli.Describe(err))
}

func initLogging(debug bool, w io.Writer) {
	level := logging.LevelWarn
	if debug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, w)
}

func runRoot(cmd *cobra.Command, flags *cli.CommandFlags) error {
	settings, err := loadSettings(cmd, flags, os.LookupEnv)
	if err != nil {
		return err
	}

	if !cli.WantsCLI(cmd, flags) {
		return runShell(cmd, settings, flags.Debug)
	}

	executor, err := cli.NewReportExecutor(cli.ExecutorOptions{
		Settings: settings,
		OutFile:  flags.Out,
		Quiet:    flags.Quiet,
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	return executor.Run(cmd.Context())
}

// loadSettings stacks the config file, the environment and the flags the
// user passed.
func loadSettings(cmd *cobra.Command, flags *cli.CommandFlags, lookup func(string) (string, bool)) (config.Settings, error) {
	path := flags.ConfigPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Settings{}, err
		}
	}

	file, err := config.LoadFile(path)
	if err != nil {
		return config.Settings{}, err
	}
	env, err := config.FromEnv(lookup)
	if err != nil {
		return config.Settings{}, err
	}

	settings := config.Resolve(file, env, flags.Layer(cmd))
	logging.Debug("Bootstrap", "Resolved settings: url=%q user=%q site=%q wlan=%q format=%s verify-ssl=%t timeout=%ds",
		settings.URL, settings.User, settings.Site, settings.WLAN, settings.Format, settings.VerifySSL, settings.Timeout)
	return settings, nil
}

func init() {
	rootCmd.AddCommand(newShellCmd(&rootFlags))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
