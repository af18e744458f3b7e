package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unifimac/internal/config"
	"unifimac/internal/controller"
	"unifimac/pkg/logging"
)

const waitTimeout = 2 * time.Second

// syncBuffer is a bytes.Buffer safe for the loop and the test to share.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// fakeReader feeds lines from a channel. "^C" is delivered as an interrupt;
// closing the channel ends input.
type fakeReader struct {
	input  chan string
	out    *syncBuffer
	closed chan struct{}
	once   sync.Once

	mu      sync.Mutex
	prompts []string
	secrets []string
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		input:  make(chan string),
		out:    &syncBuffer{},
		closed: make(chan struct{}),
	}
}

func (f *fakeReader) next() (string, error) {
	select {
	case line, ok := <-f.input:
		if !ok {
			return "", io.EOF
		}
		if line == "^C" {
			return "", readline.ErrInterrupt
		}
		return line, nil
	case <-f.closed:
		return "", io.EOF
	}
}

func (f *fakeReader) Readline() (string, error) {
	return f.next()
}

func (f *fakeReader) ReadPassword(prompt string) ([]byte, error) {
	f.mu.Lock()
	f.secrets = append(f.secrets, prompt)
	f.mu.Unlock()
	line, err := f.next()
	return []byte(line), err
}

func (f *fakeReader) SetPrompt(prompt string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
}

func (f *fakeReader) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

func (f *fakeReader) secretPrompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.secrets...)
}

func (f *fakeReader) Stdout() io.Writer { return f.out }
func (f *fakeReader) Refresh()          {}
func (f *fakeReader) Close() error {
	f.once.Do(func() { close(f.closed) })
	return nil
}

type fakeController struct {
	mu        sync.Mutex
	loginErr  error
	sites     []controller.Site
	profiles  map[string][]controller.WirelessProfile
	known     map[string]map[string]string
	gates     map[string]chan struct{}
	started   chan string
	passwords []string
}

func newFakeController() *fakeController {
	return &fakeController{
		sites: []controller.Site{
			{Code: "default", Description: "Main Office"},
			{Code: "wh", Description: "Warehouse"},
		},
		profiles: map[string][]controller.WirelessProfile{
			"default": {
				{Name: "Corp", MACFilterList: []string{"aa:bb:cc:dd:ee:01", "11:22:33:44:55:66"}, MACFilterPolicy: "allow", MACFilterEnabled: true},
				{Name: "IoT", MACFilterList: []string{}},
			},
			"wh": {
				{Name: "Scanners", MACFilterList: []string{"de:ad:be:ef:00:01"}, MACFilterPolicy: "deny", MACFilterEnabled: true},
				{Name: "Staff", MACFilterList: []string{}},
			},
		},
		known: map[string]map[string]string{
			"default": {"AA:BB:CC:DD:EE:01": "Office Printer"},
			"wh":      {"DE:AD:BE:EF:00:01": "Scanner 1"},
		},
		gates:   map[string]chan struct{}{},
		started: make(chan string, 16),
	}
}

func (f *fakeController) dial(baseURL string, verifyTLS bool, timeout time.Duration) (Controller, error) {
	return &fakeSession{fake: f, baseURL: baseURL}, nil
}

func (f *fakeController) loginPasswords() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.passwords...)
}

// fakeSession is the per-dial Controller handed to the worker.
type fakeSession struct {
	fake    *fakeController
	baseURL string
}

func (s *fakeSession) BaseURL() string { return s.baseURL }

func (s *fakeSession) Login(ctx context.Context, username, password string) error {
	s.fake.mu.Lock()
	defer s.fake.mu.Unlock()
	s.fake.passwords = append(s.fake.passwords, password)
	return s.fake.loginErr
}

func (s *fakeSession) ListSites(ctx context.Context) ([]controller.Site, error) {
	return s.fake.sites, nil
}

func (s *fakeSession) ListWirelessProfiles(ctx context.Context, siteCode string) ([]controller.WirelessProfile, error) {
	s.fake.started <- siteCode
	s.fake.mu.Lock()
	gate := s.fake.gates[siteCode]
	s.fake.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.fake.profiles[siteCode], nil
}

func (s *fakeSession) ListKnownClients(ctx context.Context, siteCode string) (map[string]string, error) {
	return s.fake.known[siteCode], nil
}

type harness struct {
	t      *testing.T
	reader *fakeReader
	fake   *fakeController
	shell  *Shell
	errc   chan error
	cancel context.CancelFunc
}

func startShell(t *testing.T, settings config.Settings, fake *fakeController, logs <-chan logging.LogEntry) *harness {
	t.Helper()
	reader := newFakeReader()
	sh := New(Options{
		Settings: settings,
		Reader:   reader,
		Dial:     fake.dial,
		Logs:     logs,
	})

	ctx, cancel := context.WithCancel(context.Background())
	h := &harness{t: t, reader: reader, fake: fake, shell: sh, errc: make(chan error, 1), cancel: cancel}
	go func() { h.errc <- sh.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		reader.Close()
	})
	return h
}

func (h *harness) send(line string) {
	h.t.Helper()
	select {
	case h.reader.input <- line:
	case <-time.After(waitTimeout):
		h.t.Fatalf("shell did not read %q", line)
	}
}

func (h *harness) waitFor(text string) {
	h.t.Helper()
	require.Eventually(h.t, func() bool {
		return bytes.Contains([]byte(h.reader.out.String()), []byte(text))
	}, waitTimeout, 5*time.Millisecond, "output never contained %q:\n%s", text, h.reader.out.String())
}

func (h *harness) wait() error {
	h.t.Helper()
	select {
	case err := <-h.errc:
		return err
	case <-time.After(waitTimeout):
		h.t.Fatal("shell did not stop")
		return nil
	}
}

func fullSettings() config.Settings {
	return config.Settings{URL: "https://unifi.local:8443", User: "admin", Password: "pw", Format: "txt", Timeout: 10}
}

func TestShellBrowse(t *testing.T) {
	h := startShell(t, fullSettings(), newFakeController(), nil)
	h.waitFor("Type 'connect' to log in to https://unifi.local:8443 as admin.")

	h.send("connect")
	h.waitFor("Connected. Choose a site and WLAN.")
	h.waitFor("Loading WLANs for Main Office...")
	h.waitFor("Loaded 2 MAC addresses for Corp.")
	h.waitFor("Corp @ Main Office (allow): 2 of 2 shown")
	h.waitFor("AA:BB:CC:DD:EE:01  Office Printer")
	h.waitFor("11:22:33:44:55:66  Unknown")
	assert.Equal(t, []string{"pw"}, h.fake.loginPasswords())

	h.send("filter printer")
	h.waitFor(`1 of 2 shown, filter "printer"`)

	h.send("wlan IoT")
	h.waitFor("Loaded 0 MAC addresses for IoT.")
	h.waitFor("No MAC addresses found.")

	h.send("status")
	h.waitFor("Controller: https://unifi.local:8443 (user admin)")
	h.waitFor("WLAN:       IoT, 0 of 0 entries shown")

	h.send("exit")
	h.waitFor("Goodbye!")
	require.NoError(t, h.wait())
}

func TestShellPrompt(t *testing.T) {
	h := startShell(t, fullSettings(), newFakeController(), nil)
	h.send("connect")
	h.waitFor("Loaded 2 MAC addresses for Corp.")

	h.send("status")
	h.waitFor("Site:       Main Office (default)")
	require.Eventually(t, func() bool {
		return h.reader.lastPrompt() == "unifimac Main Office/Corp > "
	}, waitTimeout, 5*time.Millisecond, "last prompt %q", h.reader.lastPrompt())
}

func TestShellPasswordPrompt(t *testing.T) {
	settings := fullSettings()
	settings.Password = ""
	h := startShell(t, settings, newFakeController(), nil)

	h.send("connect")
	require.Eventually(t, func() bool {
		return len(h.reader.secretPrompts()) == 1
	}, waitTimeout, 5*time.Millisecond)
	assert.Equal(t, []string{"UniFi Password: "}, h.reader.secretPrompts())

	h.send("s3cret")
	h.waitFor("Connected. Choose a site and WLAN.")
	assert.Equal(t, []string{"s3cret"}, h.fake.loginPasswords())
}

func TestShellPasswordCancelled(t *testing.T) {
	settings := fullSettings()
	settings.Password = ""
	h := startShell(t, settings, newFakeController(), nil)

	h.send("connect")
	h.send("^C")
	h.waitFor("Cancelled.")

	h.send("status")
	h.waitFor("Controller: not connected")
	assert.Empty(t, h.fake.loginPasswords())
}

func TestShellEmptyPassword(t *testing.T) {
	settings := fullSettings()
	settings.Password = ""
	h := startShell(t, settings, newFakeController(), nil)

	h.send("connect")
	h.send("")
	h.waitFor("Error: a password is required")
	assert.Empty(t, h.fake.loginPasswords())
}

func TestShellLoginFailure(t *testing.T) {
	fake := newFakeController()
	fake.loginErr = &controller.AuthenticationError{
		Endpoint:   "https://unifi.local:8443/api/login",
		StatusCode: 400,
		Reason:     errors.New("api.err.Invalid"),
	}
	h := startShell(t, fullSettings(), fake, nil)

	h.send("connect")
	h.waitFor("Login failed: login to https://unifi.local:8443/api/login failed (HTTP 400): api.err.Invalid")

	h.send("sites")
	h.waitFor("Error: not connected; use 'connect' first")
}

func TestShellPreferredSiteAndWLAN(t *testing.T) {
	settings := fullSettings()
	settings.Site = "WAREHOUSE"
	settings.WLAN = "Scanners"
	h := startShell(t, settings, newFakeController(), nil)

	h.send("connect")
	h.waitFor("Loading WLANs for Warehouse...")
	h.waitFor("Loaded 1 MAC addresses for Scanners.")
	h.waitFor("DE:AD:BE:EF:00:01  Scanner 1")
}

func TestShellUnknownPreferredWLAN(t *testing.T) {
	settings := fullSettings()
	settings.WLAN = "corp"
	h := startShell(t, settings, newFakeController(), nil)

	h.send("connect")
	h.waitFor("WLAN 'corp' not found. Available: Corp, IoT")
	h.waitFor("Loaded 2 MAC addresses for Corp.")
}

func TestShellSiteWithoutWLANs(t *testing.T) {
	fake := newFakeController()
	fake.profiles["wh"] = nil
	h := startShell(t, fullSettings(), fake, nil)

	h.send("connect")
	h.waitFor("Loaded 2 MAC addresses for Corp.")

	h.send("site 2")
	h.waitFor("Loading WLANs for Warehouse...")
	h.waitFor("No WLANs found for this site.")

	h.send("show")
	h.waitFor("Error: no WLAN selected; use 'wlan <name>' first")
}

func TestShellDiscardsStaleResults(t *testing.T) {
	fake := newFakeController()
	gate := make(chan struct{})
	fake.gates["default"] = gate
	h := startShell(t, fullSettings(), fake, nil)

	h.send("connect")
	select {
	case code := <-fake.started:
		require.Equal(t, "default", code)
	case <-time.After(waitTimeout):
		t.Fatal("site data request for Main Office never started")
	}

	// The prompt stays usable while the worker is busy.
	h.send("status")
	h.waitFor("Pending:    site data")

	h.send("site Warehouse")
	h.waitFor("Loading WLANs for Warehouse...")
	close(gate)

	h.waitFor("Loaded 1 MAC addresses for Scanners.")
	assert.NotContains(t, h.reader.out.String(), "for Corp.")

	h.send("wlans")
	h.waitFor("Staff")
}

func TestShellUnknownCommand(t *testing.T) {
	h := startShell(t, fullSettings(), newFakeController(), nil)
	h.send("frobnicate now")
	h.waitFor("Error: unknown command: frobnicate. Type 'help' for available commands")

	h.send("")
	h.send("help")
	h.waitFor("Available commands:")
}

func TestShellEndOfInput(t *testing.T) {
	h := startShell(t, fullSettings(), newFakeController(), nil)
	close(h.reader.input)
	require.NoError(t, h.wait())
	assert.Contains(t, h.reader.out.String(), "Goodbye!")
}

func TestShellContextCancelled(t *testing.T) {
	h := startShell(t, fullSettings(), newFakeController(), nil)
	h.waitFor("Type 'help'")
	h.cancel()
	require.NoError(t, h.wait())
	assert.Contains(t, h.reader.out.String(), "Shell shutting down...")
}

func TestShellPrintsLogEntries(t *testing.T) {
	logs := make(chan logging.LogEntry, 1)
	h := startShell(t, fullSettings(), newFakeController(), logs)

	entry := logging.LogEntry{
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:     logging.LevelWarn,
		Subsystem: "Controller",
		Message:   "slow response",
	}
	logs <- entry
	h.waitFor(entry.String())

	close(logs)
	h.send("help")
	h.waitFor("Available commands:")
}

func TestBuildPrompt(t *testing.T) {
	s := New(Options{})
	assert.Equal(t, "unifimac > ", s.buildPrompt())

	s.state.site = &controller.Site{Code: "default", Description: "Main Office"}
	assert.Equal(t, "unifimac Main Office > ", s.buildPrompt())

	s.state.wlan = &controller.WirelessProfile{Name: "Corporate Wireless Network 5GHz"}
	assert.Equal(t, "unifimac Main Office/Corporate Wi...work 5GHz > ", s.buildPrompt())

	s.pending[RequestSiteData] = uuid.New()
	assert.Equal(t, "unifimac Main Office/Corporate Wi...work 5GHz [loading] > ", s.buildPrompt())
}
