package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"unifimac/internal/labeler"
	"unifimac/pkg/logging"
)

// Format is an export file format name.
type Format string

const (
	FormatTXT  Format = "txt"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// writeFunc writes entries to path.
type writeFunc func(entries []labeler.Entry, path string) error

var (
	knownFormats = mapset.NewThreadUnsafeSet(FormatTXT, FormatCSV, FormatXLSX)

	writers = map[Format]writeFunc{
		FormatTXT: writeTXT,
		FormatCSV: writeCSV,
	}
)

// register adds an optional writer. Called from init functions of files
// guarded by build tags.
func register(format Format, fn writeFunc) {
	writers[format] = fn
}

// Available returns the formats compiled into this binary, sorted.
func Available() []string {
	names := make([]string, 0, len(writers))
	for format := range writers {
		names = append(names, string(format))
	}
	sort.Strings(names)
	return names
}

// IsAvailable reports whether format can be written by this binary.
func IsAvailable(format Format) bool {
	_, ok := writers[format]
	return ok
}

// ParseFormat normalizes name and checks that the format is known and
// compiled in.
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	if !knownFormats.Contains(format) {
		return "", &ExportError{Format: name, Reason: fmt.Errorf("%w %q (supported: %s)", ErrUnsupportedFormat, name, strings.Join(Available(), ", "))}
	}
	if !IsAvailable(format) {
		return "", &ExportError{Format: string(format), Reason: ErrFormatUnavailable}
	}
	return format, nil
}

// InferFormat returns the format matching path's extension, or fallback if
// the extension names no known format.
func InferFormat(path string, fallback Format) Format {
	ext := Format(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")))
	if knownFormats.Contains(ext) {
		return ext
	}
	return fallback
}

// Export writes entries to path in the given format. The format is checked
// before the file is created, so an unusable format leaves no file behind.
func Export(entries []labeler.Entry, path, format string) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}

	logging.Debug("Export", "Writing %d entries to %s as %s", len(entries), path, f)
	if err := writers[f](entries, path); err != nil {
		return &ExportError{Format: string(f), Path: path, Reason: err}
	}
	return nil
}

// writeTXT writes one "MAC<TAB>Name" line per entry, without a trailing
// newline.
func writeTXT(entries []labeler.Entry, path string) error {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.MAC+"\t"+e.Label)
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
}

func writeCSV(entries []labeler.Entry, path string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true

	if err := w.Write([]string{"MAC", "Name"}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := w.Write([]string{e.MAC, e.Label}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
