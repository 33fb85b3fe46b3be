package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Capture(ctx context.Context) error
	Edit(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context) error
	Sync(ctx context.Context) error
	Retry(ctx context.Context) error
	Status(ctx context.Context) error
	Wipe(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the docsync CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	  - help           — show available commands
//	  - register       — register this device on the endpoint
//	  - login          — obtain an access token
//	  - capture        — capture a new document from image files
//	  - edit           — replace a document's metadata and pages
//	  - list | l       — list documents, one page at a time
//	  - show           — show a single document (interactive ID prompt)
//	  - sync           — upload all pending documents
//	  - retry          — re-attempt all failed documents
//	  - status         — show pending/failed counts
//	  - wipe           — destroy the local store
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ds> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: capture, edit, (l)ist, show, sync, retry, status, wipe, exit")
			} else {
				printlnFn("Available commands: register, login, capture, edit, (l)ist, show, status, wipe, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "capture":
			_ = a.Capture(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx)

		case "sync":
			_ = a.Sync(ctx)

		case "retry":
			_ = a.Retry(ctx)

		case "status":
			_ = a.Status(ctx)

		case "wipe":
			_ = a.Wipe(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
