package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"unifimac/internal/config"
	"unifimac/internal/shell/commands"
	"unifimac/pkg/logging"
)

const subsystem = "Shell"

// Options configures a Shell.
type Options struct {
	// Settings supplies connection defaults and the preferred site and WLAN.
	Settings config.Settings
	// Reader overrides the readline line editor.
	Reader LineReader
	// Dial overrides how controller clients are created.
	Dial Dialer
	// Logs, when set, is drained and printed above the prompt.
	Logs <-chan logging.LogEntry
	// Color enables colored output.
	Color bool
	// Verbose enables debug output.
	Verbose bool
}

// pendingAsk is a question whose answer is handed to then.
type pendingAsk struct {
	prompt string
	secret bool
	then   func(answer string)
}

// Shell is the interactive MAC filter browser.
type Shell struct {
	opts     Options
	settings config.Settings
	rl       LineReader
	out      *Printer
	registry *commands.Registry
	worker   *worker

	jobs    chan job
	results chan FetchResult
	reads   chan readRequest
	lines   chan readResult
	done    chan struct{}

	// Loop-owned state.
	state   state
	pending map[RequestKind]uuid.UUID
	queue   []job
	ask     *pendingAsk
	reading bool
	quit    bool

	// Completion snapshot, read by the line editor's goroutine.
	namesMu   sync.RWMutex
	siteNames []string
	wlanNames []string
}

// New creates a Shell. Nothing runs until Run is called.
func New(opts Options) *Shell {
	if opts.Settings.Timeout <= 0 {
		opts.Settings.Timeout = config.DefaultTimeout
	}

	s := &Shell{
		opts:     opts,
		settings: opts.Settings,
		registry: commands.NewRegistry(),
		worker:   newWorker(opts.Dial, opts.Settings.VerifySSL, opts.Settings.TimeoutDuration()),
		jobs:     make(chan job),
		results:  make(chan FetchResult),
		reads:    make(chan readRequest, 1),
		lines:    make(chan readResult, 1),
		done:     make(chan struct{}),
		pending:  make(map[RequestKind]uuid.UUID),
	}
	return s
}

// Run starts the worker and reader and processes input until the user exits,
// input ends or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	rl := s.opts.Reader
	if rl == nil {
		var err error
		rl, err = newLineReader(s.buildPrompt(), newCompleter(s.registry))
		if err != nil {
			return err
		}
	}
	s.rl = rl
	defer rl.Close()

	s.out = NewPrinter(rl.Stdout(), s.opts.Color, s.opts.Verbose)
	commands.RegisterDefaults(s.registry, s, s.out)

	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.worker.run(workerCtx, s.jobs, s.results)
	go runReader(rl, s.reads, s.lines, s.done)
	defer close(s.done)

	s.out.Info("UniFi MAC filter shell. Type 'help' for available commands. Use TAB for completion.")
	if s.settings.URL != "" && s.settings.User != "" {
		s.out.Info("Type 'connect' to log in to %s as %s.", s.settings.URL, s.settings.User)
	}
	s.requestRead(s.buildPrompt(), false)

	return s.loop(ctx)
}

func (s *Shell) loop(ctx context.Context) error {
	logs := s.opts.Logs
	for !s.quit {
		var jobs chan<- job
		var next job
		if len(s.queue) > 0 {
			jobs = s.jobs
			next = s.queue[0]
		}

		select {
		case <-ctx.Done():
			s.out.Info("Shell shutting down...")
			return nil
		case jobs <- next:
			s.queue = s.queue[1:]
		case res := <-s.results:
			s.handleResult(res)
		case in := <-s.lines:
			if err := s.handleInput(ctx, in); err != nil {
				return err
			}
		case entry, ok := <-logs:
			if !ok {
				logs = nil
				continue
			}
			s.out.Log(entry)
			s.rl.Refresh()
		}
	}
	return nil
}

// handleInput processes one line from the reader and asks for the next one
// unless the shell is quitting or a command already asked.
func (s *Shell) handleInput(ctx context.Context, in readResult) error {
	s.reading = false

	switch {
	case errors.Is(in.err, readline.ErrInterrupt):
		if s.ask != nil {
			s.ask = nil
			s.out.Info("Cancelled.")
		}
	case errors.Is(in.err, io.EOF):
		s.out.Info("Goodbye!")
		s.quit = true
		return nil
	case in.err != nil:
		return fmt.Errorf("readline error: %w", in.err)
	case s.ask != nil:
		ask := s.ask
		s.ask = nil
		ask.then(in.line)
	default:
		s.executeCommand(ctx, in.line)
	}

	if !s.quit && !s.reading {
		s.requestRead(s.buildPrompt(), false)
	}
	return nil
}

// executeCommand parses and runs one command line.
func (s *Shell) executeCommand(ctx context.Context, input string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return
	}

	name := strings.ToLower(parts[0])
	command, exists := s.registry.Get(name)
	if !exists {
		s.out.Error("Error: unknown command: %s. Type 'help' for available commands", parts[0])
		return
	}

	if err := command.Execute(ctx, parts[1:]); err != nil {
		if errors.Is(err, commands.ErrExit) {
			s.out.Info("Goodbye!")
			s.quit = true
			return
		}
		s.out.Error("Error: %v", err)
	}
}

// askUser prompts for one answer and passes it to then on the loop.
func (s *Shell) askUser(prompt string, secret bool, then func(answer string)) {
	s.ask = &pendingAsk{prompt: prompt, secret: secret, then: then}
	s.requestRead(prompt, secret)
}

func (s *Shell) requestRead(prompt string, secret bool) {
	s.reading = true
	s.reads <- readRequest{prompt: prompt, secret: secret}
}

// submit queues a request for the worker and makes it the current one of its
// kind. Queued requests of the same kind are dropped.
func (s *Shell) submit(j job) {
	j.id = uuid.New()
	s.pending[j.kind] = j.id

	kept := s.queue[:0]
	for _, queued := range s.queue {
		if queued.kind != j.kind {
			kept = append(kept, queued)
		}
	}
	s.queue = append(kept, j)
	logging.Debug(subsystem, "Queued %s request %s", j.kind, j.id)
}

// refresh updates the prompt and completion data after a state change.
func (s *Shell) refresh() {
	s.publishNames()
	if s.rl != nil && s.reading && s.ask == nil {
		s.rl.SetPrompt(s.buildPrompt())
		s.rl.Refresh()
	}
}

// buildPrompt shows the current site and WLAN.
func (s *Shell) buildPrompt() string {
	parts := []string{"unifimac"}
	if s.state.site != nil {
		location := truncateName(s.state.site.Description)
		if s.state.wlan != nil {
			location += "/" + truncateName(s.state.wlan.Name)
		}
		parts = append(parts, location)
	}
	if len(s.pending) > 0 {
		parts = append(parts, "[loading]")
	}
	return strings.Join(parts, " ") + " > "
}
