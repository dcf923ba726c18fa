package cmdprompt

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyLine is returned by ParseLine for an empty line.
	ErrEmptyLine = errors.New("empty line")
	// ErrUnparseable is returned by ParseLine when a token after the command name
	// does not start with '-'. It is distinct from ErrCommandNotFound.
	ErrUnparseable = errors.New("unparseable arguments")
)

// ArgumentKind tells a flag value apart from a bare flag.
type ArgumentKind int

const (
	// StringValue is a flag followed by a value: "-ip 1.2.3.4".
	StringValue ArgumentKind = iota
	// BooleanFlag is a flag without a value: "-v".
	BooleanFlag
)

// Argument is the value of one flag of a named command.
type Argument struct {
	Kind  ArgumentKind
	Value string // Set for StringValue only
}

// String creates a StringValue argument.
func String(value string) Argument {
	return Argument{Kind: StringValue, Value: value}
}

// Flag creates a BooleanFlag argument.
func Flag() Argument {
	return Argument{Kind: BooleanFlag}
}

// IsFlag reports whether the argument is a BooleanFlag.
func (a Argument) IsFlag() bool {
	return a.Kind == BooleanFlag
}

// Invocation is the result of parsing a line: a *NamedCommand or a *SpecialInvocation.
type Invocation interface {
	invocation()
}

// NamedCommand is a command name followed by flags.
type NamedCommand struct {
	Name  string
	Flags map[string]Argument
}

// SpecialInvocation is a single trigger character followed by free text.
type SpecialInvocation struct {
	Trigger rune
	Text    string // Everything after the trigger, verbatim
}

func (*NamedCommand) invocation()      {}
func (*SpecialInvocation) invocation() {}

// IsSpecialTrigger reports whether c starts a special invocation.
// Special triggers are the punctuation characters strictly between ' ' and '0'
// and strictly between '9' and 'A': !"#$%&'()*+,-./ and :;<=>?@
func IsSpecialTrigger(c rune) bool {
	return (c > ' ' && c < '0') || (c > '9' && c < 'A')
}

// ParseLine splits a confirmed line into an Invocation.
//
// A line whose first character is a special trigger becomes a
// SpecialInvocation carrying the rest of the line untouched:
//
//	"!ls -la"          -> SpecialInvocation{'!', "ls -la"}
//
// Any other line is split on ASCII whitespace. The first token is the command
// name, every following token must be a flag starting with '-'. A flag that is
// the last token, or is followed by another flag, is a BooleanFlag; otherwise
// the next token is its StringValue:
//
//	"ssh -ip 1.2.3.4"  -> NamedCommand{"ssh", {ip: "1.2.3.4"}}
//	"cmd -a -b val"    -> NamedCommand{"cmd", {a: flag, b: "val"}}
//	"cmd val"          -> ErrUnparseable
func ParseLine(line string) (Invocation, error) {
	if line == "" {
		return nil, ErrEmptyLine
	}

	first := rune(line[0])
	if IsSpecialTrigger(first) {
		return &SpecialInvocation{Trigger: first, Text: line[1:]}, nil
	}

	tokens := strings.FieldsFunc(line, isASCIISpace)
	if len(tokens) == 0 {
		return nil, ErrEmptyLine
	}

	cmd := &NamedCommand{
		Name:  tokens[0],
		Flags: make(map[string]Argument),
	}
	rest := tokens[1:]
	for i := 0; i < len(rest); i++ {
		if !strings.HasPrefix(rest[i], "-") {
			return nil, fmt.Errorf("%w: %q is not a flag", ErrUnparseable, rest[i])
		}
		key := strings.TrimLeft(rest[i], "-")

		if i+1 == len(rest) || strings.HasPrefix(rest[i+1], "-") {
			cmd.Flags[key] = Flag()
			continue
		}
		cmd.Flags[key] = String(rest[i+1])
		i++
	}
	return cmd, nil
}

// isASCIISpace matches space, tab, line feed, form feed and carriage return.
func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}
