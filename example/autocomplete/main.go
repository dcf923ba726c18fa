// Package main demonstrates the suggestion overlay and color themes.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/nao1215/cmdprompt"
)

var themes = map[string]*cmdprompt.ColorScheme{
	"default":    cmdprompt.ThemeDefault,
	"dark":       cmdprompt.ThemeDark,
	"light":      cmdprompt.ThemeLight,
	"solarized":  cmdprompt.ThemeSolarizedDark,
	"accessible": cmdprompt.ThemeAccessible,
	"dracula":    cmdprompt.ThemeDracula,
}

func main() {
	fmt.Println("Suggestion Overlay Example")
	fmt.Println("==========================")
	fmt.Println("Start typing to see matching commands")
	fmt.Println("Tab / Shift+Tab select a suggestion, Space accepts it, Enter confirms")
	fmt.Println("Type 'theme <name>' to switch colors, 'exit' to quit")
	fmt.Println()

	theme := cmdprompt.ThemeDracula
	if len(os.Args) > 1 {
		if t, ok := themes[os.Args[1]]; ok {
			theme = t
		}
	}

	p, err := cmdprompt.New("app> ",
		cmdprompt.WithSuggestions(
			cmdprompt.Suggestion{Trigger: "help", Description: "Show help information"},
			cmdprompt.Suggestion{Trigger: "list", Description: "List all items"},
			cmdprompt.Suggestion{Trigger: "create", Description: "Create a new item"},
			cmdprompt.Suggestion{Trigger: "delete", Description: "Delete an existing item"},
			cmdprompt.Suggestion{Trigger: "update", Description: "Update an existing item"},
			cmdprompt.Suggestion{Trigger: "status", Description: "Show current status"},
			cmdprompt.Suggestion{Trigger: "theme", Description: "Switch the color theme"},
			cmdprompt.Suggestion{Trigger: "exit", Description: "Exit the program"},
		),
		cmdprompt.WithColorScheme(theme),
		cmdprompt.WithMaxSuggestions(5),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

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

		args := strings.Fields(result)
		switch args[0] {
		case "exit", "quit":
			fmt.Fprintln(p, "Goodbye!")
			return
		case "help":
			for _, s := range p.Catalog().Entries() {
				fmt.Fprintf(p, "  %-8s - %s\n", s.Trigger, s.Description)
			}
		case "theme":
			if len(args) < 2 {
				fmt.Fprintln(p, "usage: theme <default|dark|light|solarized|accessible|dracula>")
				continue
			}
			t, ok := themes[args[1]]
			if !ok {
				fmt.Fprintf(p, "unknown theme %q\n", args[1])
				continue
			}
			p.SetTheme(t)
		case "status":
			fmt.Fprintln(p, "Status: Running")
		case "list":
			fmt.Fprintln(p, "Items: item1, item2, item3")
		default:
			fmt.Fprintf(p, "Executed: %s\n", result)
		}
	}
}
