package cmdprompt

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
)

var (
	// ErrCommandNotFound is returned when no command is registered for a trigger.
	ErrCommandNotFound = errors.New("command not found")
	// ErrDuplicateTrigger is returned when a trigger is registered twice.
	ErrDuplicateTrigger = errors.New("trigger already registered")
	// ErrInvalidTrigger is returned for triggers that could never be dispatched.
	ErrInvalidTrigger = errors.New("invalid trigger")
)

// ResultKind is the outcome of a command.
type ResultKind int

const (
	// Success reports a command that completed.
	Success ResultKind = iota
	// Failure reports a command that could not do its job.
	Failure
	// Exit asks the shell to stop.
	Exit
)

// Result is what a command returns to the shell.
type Result struct {
	Kind    ResultKind
	Message string
}

// Succeed creates a Success result.
func Succeed(message string) Result {
	return Result{Kind: Success, Message: message}
}

// Fail creates a Failure result.
func Fail(message string) Result {
	return Result{Kind: Failure, Message: message}
}

// Quit creates an Exit result.
func Quit() Result {
	return Result{Kind: Exit}
}

// Command is a named command invoked with its parsed flags.
type Command interface {
	Invoke(flags map[string]Argument) Result
}

// CommandFunc adapts an ordinary function to a Command.
type CommandFunc func(flags map[string]Argument) Result

// Invoke calls f(flags).
func (f CommandFunc) Invoke(flags map[string]Argument) Result {
	return f(flags)
}

// SpecialCommand is invoked with the text following its trigger character.
type SpecialCommand interface {
	Invoke(text string) Result
}

// SpecialCommandFunc adapts an ordinary function to a SpecialCommand.
type SpecialCommandFunc func(text string) Result

// Invoke calls f(text).
func (f SpecialCommandFunc) Invoke(text string) Result {
	return f(text)
}

// Registry maps triggers to commands and keeps the matching suggestion catalog.
//
// Build the registry before the prompt starts and hand it to NewShell (or its
// Catalog to WithCatalog); it is not safe for concurrent modification.
type Registry struct {
	commands map[string]Command
	specials map[rune]SpecialCommand
	catalog  *Catalog
	logger   *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		specials: make(map[rune]SpecialCommand),
		catalog:  NewCatalog(),
		logger:   slog.New(slog.DiscardHandler),
	}
}

// Add registers a named command and its suggestion.
//
// The name must be non-empty, contain no whitespace and must not start with a
// special trigger character, otherwise ParseLine could never produce it.
func (r *Registry) Add(name, description string, cmd Command) error {
	if name == "" || strings.ContainsFunc(name, unicode.IsSpace) || IsSpecialTrigger(rune(name[0])) {
		return fmt.Errorf("%w: %q", ErrInvalidTrigger, name)
	}
	if cmd == nil {
		return fmt.Errorf("%w: %q has no command", ErrInvalidTrigger, name)
	}
	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateTrigger, name)
	}
	r.commands[name] = cmd
	r.catalog.Add(name, description)
	return nil
}

// AddFunc registers a function as a named command.
func (r *Registry) AddFunc(name, description string, fn func(flags map[string]Argument) Result) error {
	if fn == nil {
		return fmt.Errorf("%w: %q has no command", ErrInvalidTrigger, name)
	}
	return r.Add(name, description, CommandFunc(fn))
}

// AddSpecial registers a special command for a single trigger character.
// The trigger must satisfy IsSpecialTrigger.
func (r *Registry) AddSpecial(trigger rune, description string, cmd SpecialCommand) error {
	if !IsSpecialTrigger(trigger) {
		return fmt.Errorf("%w: %q", ErrInvalidTrigger, trigger)
	}
	if cmd == nil {
		return fmt.Errorf("%w: %q has no command", ErrInvalidTrigger, trigger)
	}
	if _, exists := r.specials[trigger]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateTrigger, trigger)
	}
	r.specials[trigger] = cmd
	r.catalog.Add(string(trigger), description)
	return nil
}

// AddSpecialFunc registers a function as a special command.
func (r *Registry) AddSpecialFunc(trigger rune, description string, fn func(text string) Result) error {
	if fn == nil {
		return fmt.Errorf("%w: %q has no command", ErrInvalidTrigger, trigger)
	}
	return r.AddSpecial(trigger, description, SpecialCommandFunc(fn))
}

// Catalog returns the suggestions of every registered command.
func (r *Registry) Catalog() *Catalog {
	return r.catalog
}

// Dispatch runs the command for inv.
// It returns ErrCommandNotFound when nothing is registered for the trigger.
func (r *Registry) Dispatch(inv Invocation) (Result, error) {
	switch inv := inv.(type) {
	case *NamedCommand:
		cmd, ok := r.commands[inv.Name]
		if !ok {
			r.logger.Debug("Command not found", "name", inv.Name)
			return Result{}, fmt.Errorf("%w: %s", ErrCommandNotFound, inv.Name)
		}
		r.logger.Debug("Executing command", "name", inv.Name, "flags", len(inv.Flags))
		return cmd.Invoke(inv.Flags), nil
	case *SpecialInvocation:
		cmd, ok := r.specials[inv.Trigger]
		if !ok {
			r.logger.Debug("Special command not found", "trigger", string(inv.Trigger))
			return Result{}, fmt.Errorf("%w: %c", ErrCommandNotFound, inv.Trigger)
		}
		r.logger.Debug("Executing special command", "trigger", string(inv.Trigger))
		return cmd.Invoke(inv.Text), nil
	default:
		return Result{}, fmt.Errorf("%w: unsupported invocation %T", ErrCommandNotFound, inv)
	}
}

// SetLogger sets the logger used for dispatch diagnostics.
func (r *Registry) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r.logger = logger
}
