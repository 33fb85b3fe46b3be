// Package cli implements the interactive terminal client for docsync.
//
// The client is offline-first: capture, edit, list and show work without
// any connectivity, while sync and retry need the endpoint. A background
// watcher probes the endpoint and reflects reachability in the prompt.
package cli
