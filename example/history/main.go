// Package main demonstrates history features of the cmdprompt library.
package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/nao1215/cmdprompt"
)

func main() {
	fmt.Println("History Example")
	fmt.Println("Use Up/Down arrow keys to navigate history")
	fmt.Println("Type 'history' to see command history")
	fmt.Println("Type 'exit' or 'quit' to exit")
	fmt.Println()

	// The history lives in memory for as long as the process runs. It can be
	// shared between prompts and preloaded before the first line is read.
	history := cmdprompt.NewHistory()
	history.AppendIfChanged("echo preloaded entry")

	p, err := cmdprompt.New("history> ", cmdprompt.WithHistory(history))
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	p.AddHistory("history")

	for {
		result, err := p.Run()
		if err != nil {
			if errors.Is(err, cmdprompt.ErrEOF) {
				fmt.Fprintln(p, "\nGoodbye!")
				break
			}
			fmt.Fprintf(p, "Error: %v\n", err)
			continue
		}

		// Confirmed lines are already trimmed and recorded.
		switch result {
		case "exit", "quit":
			fmt.Fprintln(p, "Goodbye!")
			return
		case "history":
			fmt.Fprintln(p, "Command History:")
			for i, cmd := range p.History().Entries() {
				fmt.Fprintf(p, "  %3d: %s\n", i+1, cmd)
			}
		default:
			fmt.Fprintf(p, "Executed: %s\n", result)
		}
	}
}
