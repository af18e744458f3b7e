package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"unifimac/internal/config"
)

// PasswordPrompt is the prompt shown when no password was supplied.
const PasswordPrompt = "UniFi Password: "

// ValidateSettings checks that everything CLI report mode needs is present.
func ValidateSettings(s config.Settings) error {
	var missing []string
	for _, req := range []struct {
		flag  string
		value string
	}{
		{"--url", s.URL},
		{"--user", s.User},
		{"--site", s.Site},
		{"--wlan", s.WLAN},
	} {
		if strings.TrimSpace(req.value) == "" {
			missing = append(missing, req.flag)
		}
	}
	if len(missing) > 0 {
		return &UsageError{Missing: missing}
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("--timeout must be a positive number of seconds, got %d", s.Timeout)
	}
	return nil
}

// ReadPassword prints prompt to out and reads a password from in. Echo is
// disabled when in is a terminal; otherwise one line is read as is. When ctx
// is cancelled before a line arrives, the terminal is restored and the
// cancellation is returned without waiting for Enter.
func ReadPassword(ctx context.Context, prompt string, in *os.File, out io.Writer) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("password prompt interrupted: %w", err)
	}
	fmt.Fprint(out, prompt)

	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return readWithContext(ctx, func() (string, error) { return readLine(in) })
	}

	state, err := term.GetState(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password, err := readWithContext(ctx, func() (string, error) {
		b, err := term.ReadPassword(fd)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	})
	if ctx.Err() != nil {
		_ = term.Restore(fd, state)
	}
	fmt.Fprintln(out)
	return password, err
}

// readWithContext runs read in its own goroutine so that ctx can end the
// wait. The goroutine stays blocked on the read until input or exit.
func readWithContext(ctx context.Context, read func() (string, error)) (string, error) {
	type result struct {
		value string
		err   error
	}
	done := make(chan result, 1)
	go func() {
		v, err := read()
		done <- result{value: v, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		return "", fmt.Errorf("password prompt interrupted: %w", ctx.Err())
	}
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
