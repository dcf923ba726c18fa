package cmdprompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	r := NewRegistry()
	require.NoError(t, r.AddFunc("quit", "Leave the shell", func(map[string]Argument) Result {
		return Quit()
	}))
	require.NoError(t, r.AddFunc("hello", "Greet someone", func(flags map[string]Argument) Result {
		name, ok := flags["name"]
		if !ok || name.IsFlag() {
			return Fail("missing -name")
		}
		return Succeed("hello " + name.Value)
	}))
	require.NoError(t, r.AddSpecialFunc('!', "Echo the text", func(text string) Result {
		return Succeed("echo:" + text)
	}))
	return r
}

func TestRegistryAdd(t *testing.T) {
	t.Parallel()

	noop := CommandFunc(func(map[string]Argument) Result { return Succeed("") })

	tests := []struct {
		name    string
		trigger string
		want    error
	}{
		{name: "plain name", trigger: "status", want: nil},
		{name: "name with dash", trigger: "list-all", want: nil},
		{name: "empty name", trigger: "", want: ErrInvalidTrigger},
		{name: "name with space", trigger: "two words", want: ErrInvalidTrigger},
		{name: "name starting with a special character", trigger: "!bang", want: ErrInvalidTrigger},
		{name: "duplicate", trigger: "quit", want: ErrDuplicateTrigger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newTestRegistry(t)
			err := r.Add(tt.trigger, "description", noop)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegistryAddNilCommand(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.ErrorIs(t, r.Add("x", "", nil), ErrInvalidTrigger)
	require.ErrorIs(t, r.AddFunc("x", "", nil), ErrInvalidTrigger)
	require.ErrorIs(t, r.AddSpecial('!', "", nil), ErrInvalidTrigger)
	require.ErrorIs(t, r.AddSpecialFunc('!', "", nil), ErrInvalidTrigger)
	assert.Equal(t, 0, r.Catalog().Len())
}

func TestRegistryAddSpecial(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	echo := SpecialCommandFunc(func(text string) Result { return Succeed(text) })

	require.ErrorIs(t, r.AddSpecial('a', "letters are names", echo), ErrInvalidTrigger)
	require.ErrorIs(t, r.AddSpecial('5', "digits are names", echo), ErrInvalidTrigger)
	require.ErrorIs(t, r.AddSpecial('!', "again", echo), ErrDuplicateTrigger)
	require.NoError(t, r.AddSpecial('@', "at", echo))
}

func TestRegistryCatalog(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	assert.Equal(t, []Suggestion{
		{Trigger: "!", Description: "Echo the text"},
		{Trigger: "hello", Description: "Greet someone"},
		{Trigger: "quit", Description: "Leave the shell"},
	}, r.Catalog().Entries())
}

func TestRegistryDispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want Result
	}{
		{name: "named command", line: "hello -name bob", want: Succeed("hello bob")},
		{name: "command failure", line: "hello -name", want: Fail("missing -name")},
		{name: "exit", line: "quit", want: Quit()},
		{name: "special command", line: "!ls -la", want: Succeed("echo:ls -la")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newTestRegistry(t)
			inv, err := ParseLine(tt.line)
			require.NoError(t, err)

			got, err := r.Dispatch(inv)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistryDispatchNotFound(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)

	_, err := r.Dispatch(&NamedCommand{Name: "missing", Flags: map[string]Argument{}})
	require.ErrorIs(t, err, ErrCommandNotFound)
	assert.Contains(t, err.Error(), "missing")

	_, err = r.Dispatch(&SpecialInvocation{Trigger: '#', Text: "x"})
	require.ErrorIs(t, err, ErrCommandNotFound)
}

func TestRegistrySetLoggerNil(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	r.SetLogger(nil)
	_, err := r.Dispatch(&NamedCommand{Name: "missing"})
	require.ErrorIs(t, err, ErrCommandNotFound)
}
