package cmdprompt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fatih/color"
)

// Shell is a read-eval-print loop over a Prompt and a Registry.
//
// Each confirmed line is parsed with ParseLine, dispatched through the
// registry and its result printed as "[SUCCESS] message" or
// "[FAILURE] message". A command returning an Exit result ends the loop.
type Shell struct {
	prompt   *Prompt
	registry *Registry
	logger   *slog.Logger

	successTag string
	failureTag string
}

// NewShell creates a prompt whose overlay shows the registry's commands.
//
//	registry := cmdprompt.NewRegistry()
//	_ = registry.AddFunc("quit", "Leave the shell", func(map[string]cmdprompt.Argument) cmdprompt.Result {
//		return cmdprompt.Quit()
//	})
//
//	shell, err := cmdprompt.NewShell(">>> ", registry)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer shell.Close()
//
//	if err := shell.Run(); err != nil {
//		log.Fatal(err)
//	}
func NewShell(prefix string, registry *Registry, options ...Option) (*Shell, error) {
	options = append([]Option{WithCatalog(registry.Catalog())}, options...)
	p, err := New(prefix, options...)
	if err != nil {
		return nil, err
	}
	return newShellWithPrompt(p, registry), nil
}

func newShellWithPrompt(p *Prompt, registry *Registry) *Shell {
	registry.SetLogger(p.logger)
	return &Shell{
		prompt:     p,
		registry:   registry,
		logger:     p.logger,
		successTag: color.New(color.FgGreen, color.Bold).Sprint("[SUCCESS]"),
		failureTag: color.New(color.FgRed, color.Bold).Sprint("[FAILURE]"),
	}
}

// Prompt returns the prompt the shell reads from.
func (s *Shell) Prompt() *Prompt {
	return s.prompt
}

// Close restores the terminal.
func (s *Shell) Close() error {
	return s.prompt.Close()
}

// Run loops until a command returns an Exit result or the input ends.
func (s *Shell) Run() error {
	return s.RunWithContext(context.Background())
}

// RunWithContext is Run with a context checked between key presses.
//
// The end of input is a normal end of the loop and returns nil; other prompt
// errors (including ErrInterrupted) are returned to the caller.
func (s *Shell) RunWithContext(ctx context.Context) error {
	for {
		line, err := s.prompt.RunWithContext(ctx)
		if err != nil {
			if errors.Is(err, ErrEOF) {
				return nil
			}
			return err
		}

		result, err := s.Execute(line)
		switch {
		case errors.Is(err, ErrEmptyLine):
			continue
		case errors.Is(err, ErrUnparseable):
			s.logger.Info("Unparseable line", "line", line, "error", err)
			s.printf("%s %s: could not parse arguments\n", s.failureTag, line)
		case errors.Is(err, ErrCommandNotFound):
			s.logger.Info("Command not found", "line", line)
			s.printf("%s %s: command not found\n", s.failureTag, line)
		case err != nil:
			return err
		case result.Kind == Exit:
			return nil
		case result.Kind == Failure:
			s.printf("%s %s\n", s.failureTag, result.Message)
		default:
			s.printf("%s %s\n", s.successTag, result.Message)
		}
	}
}

// Execute parses a line and runs the matching command.
//
// Parse failures wrap ErrUnparseable (or ErrEmptyLine); lines naming no
// registered command wrap ErrCommandNotFound.
func (s *Shell) Execute(line string) (Result, error) {
	inv, err := ParseLine(line)
	if err != nil {
		return Result{}, err
	}
	return s.registry.Dispatch(inv)
}

func (s *Shell) printf(format string, a ...any) {
	if _, err := fmt.Fprintf(s.prompt, format, a...); err != nil {
		s.logger.Warn("Failed to write result", "error", err)
	}
}
