// Package cli implements non-interactive report mode and the helpers shared
// with the interactive shell: flag registration, settings validation, the
// password prompt and user-facing error descriptions.
//
// A report run logs in, resolves the site hint, fetches the WLAN's MAC
// filter list together with the site's known clients, and then either prints
// an aligned table or writes a txt/csv/xlsx file:
//
//	exec, err := cli.NewReportExecutor(cli.ExecutorOptions{
//		Settings: settings,
//		OutFile:  "macs.csv",
//	})
//	if err != nil {
//		return err
//	}
//	return exec.Run(ctx)
//
// While a request is in flight a spinner is drawn on stderr, unless --quiet
// is given or stderr is not a terminal.
package cli
