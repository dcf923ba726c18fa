// Package cmdprompt provides an embeddable interactive command prompt for
// terminal applications.
//
// The prompt is a single-line editor running in raw mode. While the user
// types, the suggestions whose trigger starts with the typed text are shown in
// an overlay below the line; Tab and Shift+Tab walk the list, Space accepts the
// selected trigger and Enter confirms the selection (or the typed text).
// Confirmed lines are kept in an in-memory history that Up and Down recall.
//
// Key Features:
//
//   - Raw-mode line editing with absolute cursor positioning
//   - Prefix-filtered suggestion overlay that scrolls the screen when the
//     line is near the bottom
//   - In-memory history with adjacent duplicate suppression
//   - Command registry and parser for "name -flag value" and "!text" lines
//   - A Shell loop that dispatches confirmed lines to registered commands
//   - Color themes for the prefix, the input and the overlay
//   - Context support for cancellation
//
// Quick Start:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		"github.com/nao1215/cmdprompt"
//	)
//
//	func main() {
//		p, err := cmdprompt.New(">>> ",
//			cmdprompt.WithSuggestions(
//				cmdprompt.Suggestion{Trigger: "help", Description: "List commands"},
//				cmdprompt.Suggestion{Trigger: "quit", Description: "Leave"},
//			),
//		)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer p.Close()
//
//		line, err := p.Run()
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Fprintf(p, "You entered: %s\n", line)
//	}
//
// Commands:
//
// A Registry maps triggers to commands. Named commands receive their parsed
// flags; special commands are bound to one punctuation character and receive
// the rest of the line verbatim:
//
//	registry := cmdprompt.NewRegistry()
//	_ = registry.AddFunc("ssh", "Connect to a host", func(flags map[string]cmdprompt.Argument) cmdprompt.Result {
//		ip, ok := flags["ip"]
//		if !ok || ip.IsFlag() {
//			return cmdprompt.Fail("usage: ssh -ip <address>")
//		}
//		return cmdprompt.Succeed("connecting to " + ip.Value)
//	})
//	_ = registry.AddSpecialFunc('!', "Run a local command", func(text string) cmdprompt.Result {
//		return cmdprompt.Succeed("would run " + text)
//	})
//
//	shell, err := cmdprompt.NewShell(">>> ", registry)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer shell.Close()
//	if err := shell.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// Key Bindings:
//
//   - Enter: Confirm the line (a blank line just starts a new prompt line)
//   - Tab / Shift+Tab: Select the next / previous suggestion
//   - Space: Accept the selected suggestion, otherwise insert a space
//   - Up / Down: Recall older / newer history entries
//   - Left / Right: Move the cursor
//   - Ctrl+A / Home, Ctrl+E / End: Move to the beginning / end of the line
//   - Backspace, Delete: Delete backwards / forwards
//   - Ctrl+U: Delete everything left of the cursor
//   - Ctrl+L: Clear the screen
//
// Ctrl+C is not bound by default. Bind it to ActionInterrupt to make Run
// return ErrInterrupted:
//
//	keyMap := cmdprompt.NewDefaultKeyMap()
//	keyMap.Bind('\x03', cmdprompt.ActionInterrupt)
//	p, err := cmdprompt.New("$ ", cmdprompt.WithKeyMap(keyMap))
//
// Error Handling:
//
//   - cmdprompt.ErrEOF: the input stream ended
//   - cmdprompt.ErrInterrupted: a key bound to ActionInterrupt was pressed
//   - cmdprompt.ErrUnparseable: a line could not be split into name and flags
//   - cmdprompt.ErrCommandNotFound: no command is registered for the trigger
//   - context.Canceled, context.DeadlineExceeded: from RunWithContext
//
// Output:
//
// The terminal stays in raw mode from New until Close, so "\n" alone does not
// return the carriage. Write through the Prompt (it implements io.Writer and
// converts line feeds) instead of printing to os.Stdout directly.
//
// Thread Safety:
//
// Prompt instances are not thread-safe. Each prompt should be used from a single
// goroutine.
//
// Resource Management:
//
// Always call Close() when done with a prompt. It restores the terminal mode
// and is safe to call multiple times. If the goroutine running the prompt
// panics, the terminal mode is restored before the panic continues.
package cmdprompt
