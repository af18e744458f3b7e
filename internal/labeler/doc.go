// Package labeler joins a WLAN's MAC filter list with the known-client
// roster of a site.
//
// Reconcile is a pure, order-preserving projection: every filter-list address
// produces exactly one Entry, upper-cased, carrying the roster name or the
// literal Unknown. FilterEntries narrows a list of entries for interactive
// display by case-insensitive substring.
package labeler
