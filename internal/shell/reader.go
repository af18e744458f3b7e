package shell

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
)

// LineReader is the line editor the shell reads from. *readline.Instance
// satisfies it.
type LineReader interface {
	Readline() (string, error)
	ReadPassword(prompt string) ([]byte, error)
	SetPrompt(prompt string)
	Stdout() io.Writer
	Refresh()
	Close() error
}

const historyFileName = ".unifimac_history"

// newLineReader creates the default readline-backed LineReader.
func newLineReader(prompt string, completer readline.AutoCompleter) (LineReader, error) {
	config := &readline.Config{
		Prompt:          prompt,
		HistoryFile:     filepath.Join(os.TempDir(), historyFileName),
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	}

	rl, err := readline.NewEx(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %w", err)
	}
	return rl, nil
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// readRequest asks the reader for one line. Secret lines are read without
// echo and kept out of the history.
type readRequest struct {
	prompt string
	secret bool
}

type readResult struct {
	line   string
	secret bool
	err    error
}

// runReader serves read requests until requests is closed or done fires.
// Only one request is outstanding at a time.
func runReader(rl LineReader, requests <-chan readRequest, results chan<- readResult, done <-chan struct{}) {
	for {
		var req readRequest
		select {
		case <-done:
			return
		case r, ok := <-requests:
			if !ok {
				return
			}
			req = r
		}

		var res readResult
		if req.secret {
			b, err := rl.ReadPassword(req.prompt)
			res = readResult{line: string(b), secret: true, err: err}
		} else {
			rl.SetPrompt(req.prompt)
			line, err := rl.Readline()
			res = readResult{line: line, err: err}
		}

		select {
		case results <- res:
		case <-done:
			return
		}
	}
}
