package labeler

import (
	"strings"
)

// UnknownLabel is the label given to addresses absent from the roster.
const UnknownLabel = "Unknown"

// Entry is a filter-list MAC address with its resolved display label.
type Entry struct {
	MAC   string `json:"mac" yaml:"mac"`
	Label string `json:"label" yaml:"label"`
}

// NormalizeMAC upper-cases a MAC address. No format validation is applied.
func NormalizeMAC(mac string) string {
	return strings.ToUpper(mac)
}

// Reconcile labels every address in macs using known, a mapping from
// normalized MAC to display name. The result has the same length and order as
// macs; duplicates are kept.
func Reconcile(macs []string, known map[string]string) []Entry {
	entries := make([]Entry, 0, len(macs))
	for _, mac := range macs {
		normalized := NormalizeMAC(mac)
		label, ok := known[normalized]
		if !ok || label == "" {
			label = UnknownLabel
		}
		entries = append(entries, Entry{MAC: normalized, Label: label})
	}
	return entries
}

// FilterEntries returns the entries whose MAC or label contains term,
// ignoring case. An empty term returns entries unchanged.
func FilterEntries(entries []Entry, term string) []Entry {
	if term == "" {
		return entries
	}

	needle := strings.ToLower(term)
	filtered := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.MAC), needle) ||
			strings.Contains(strings.ToLower(entry.Label), needle) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
