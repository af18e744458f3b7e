package shell

import (
	"strings"

	"unifimac/internal/shell/commands"
)

// completer implements readline.AutoCompleter. The first word completes to a
// command name; after that the command's own Completions supply candidates
// for the rest of the line, which may contain spaces (site names do).
type completer struct {
	registry *commands.Registry
}

func newCompleter(registry *commands.Registry) *completer {
	return &completer{registry: registry}
}

// Do returns the suffixes that complete line[:pos] and the length of the
// text they extend.
func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	input := strings.TrimLeft(string(line[:pos]), " ")

	name, rest, found := strings.Cut(input, " ")
	if !found {
		return suffixes(c.registry.AllCompletions(), name), len([]rune(name))
	}

	cmd, ok := c.registry.Get(strings.ToLower(name))
	if !ok {
		return nil, 0
	}
	rest = strings.TrimLeft(rest, " ")
	return suffixes(cmd.Completions(rest), rest), len([]rune(rest))
}

// suffixes returns, for each candidate starting with prefix (ignoring case),
// the remainder after prefix followed by a space.
func suffixes(candidates []string, prefix string) [][]rune {
	lower := strings.ToLower(prefix)
	n := len([]rune(prefix))

	var out [][]rune
	for _, candidate := range candidates {
		if !strings.HasPrefix(strings.ToLower(candidate), lower) {
			continue
		}
		runes := []rune(candidate)
		if n > len(runes) {
			continue
		}
		out = append(out, append(runes[n:], ' '))
	}
	return out
}
