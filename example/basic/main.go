// Package main demonstrates basic usage of the cmdprompt library.
package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/nao1215/cmdprompt"
)

func main() {
	fmt.Println("Basic Prompt Example")
	fmt.Println("Type 'exit' or 'quit' to exit")
	fmt.Println("Press Ctrl+D to exit")
	fmt.Println()

	// Create a simple prompt with default settings
	p, err := cmdprompt.New(">>> ")
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	for {
		// Run the prompt and get user input
		result, err := p.Run()
		if err != nil {
			if errors.Is(err, cmdprompt.ErrEOF) {
				fmt.Fprintln(p, "\nGoodbye!")
				break
			}
			fmt.Fprintf(p, "Error: %v\n", err)
			continue
		}

		// Handle exit commands
		if result == "exit" || result == "quit" {
			fmt.Fprintln(p, "Goodbye!")
			break
		}

		// Echo the input back. The terminal is in raw mode, so write through p.
		fmt.Fprintf(p, "You typed: %s\n", result)
	}
}
