// Package shell implements the interactive MAC filter browser.
//
// The shell is built from three goroutines:
//
//   - the event loop, which owns every piece of UI state and is the only
//     goroutine that changes it
//   - a reader, which blocks on the line editor and hands each line (or
//     password) to the loop
//   - a worker, which owns the controller client and performs network
//     requests one at a time
//
// Commands run on the loop and never block on the network. They queue a
// request for the worker and return so the prompt stays responsive. Each
// request carries a fresh ID; the loop remembers the latest ID per request
// kind and drops any result whose ID no longer matches, so a slow answer for a
// site the user has already left cannot overwrite newer state.
//
// Log entries produced while the shell runs are delivered through
// logging.InitForShell and printed above the prompt by the loop.
package shell
