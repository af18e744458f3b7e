// Package export renders labelled MAC entries as a terminal report or writes
// them to a file.
//
// Supported file formats are txt (tab separated), csv and xlsx. The xlsx
// writer is compiled in by default; building with the noxlsx tag leaves it
// out, in which case Available no longer lists it and Export fails with
// ErrFormatUnavailable before touching the file system.
package export
