package cmdprompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Common errors
var (
	// ErrEOF is returned when the input stream ends
	ErrEOF = errors.New("EOF")
	// ErrInterrupted is returned when a key bound to ActionInterrupt is pressed
	ErrInterrupted = errors.New("interrupted")
	// ErrClosed is returned when a closed prompt is used
	ErrClosed = errors.New("prompt is closed")
)

// Prompt is an interactive line editor bound to a terminal.
//
// The terminal is switched to raw mode when the prompt is created and stays
// in raw mode until Close. History and the suggestion catalog live as long as
// the prompt; everything else is reset for each line read.
type Prompt struct {
	config   Config
	terminal screen
	renderer *renderer
	keyMap   *KeyMap
	history  *History
	catalog  *Catalog
	logger   *slog.Logger
	rawMode  bool
	closed   bool
}

// Config holds the configuration for a prompt.
type Config struct {
	Prefix         string       // Prompt prefix (e.g., ">>> ")
	Catalog        *Catalog     // Suggestions shown in the overlay (nil for none)
	History        *History     // History log (nil for a fresh one)
	ColorScheme    *ColorScheme // Color scheme (nil for default)
	KeyMap         *KeyMap      // Key bindings (nil for default)
	MaxSuggestions int          // Maximum overlay rows (0 for as many as the screen holds)
	RefreshOnMove  bool         // Redraw the overlay on cursor movement
	Logger         *slog.Logger // Diagnostics logger (nil discards)
}

// Option represents a configuration option for prompt
type Option func(*Config)

// WithCatalog sets the suggestions shown in the overlay.
func WithCatalog(catalog *Catalog) Option {
	return func(c *Config) {
		c.Catalog = catalog
	}
}

// WithSuggestions builds the catalog from a list of suggestions.
func WithSuggestions(suggestions ...Suggestion) Option {
	return func(c *Config) {
		c.Catalog = NewCatalog(suggestions...)
	}
}

// WithHistory shares a history log between prompts.
func WithHistory(history *History) Option {
	return func(c *Config) {
		c.History = history
	}
}

// WithoutHistory disables recording of confirmed lines.
func WithoutHistory() Option {
	return func(c *Config) {
		c.History = &History{enabled: false}
	}
}

// WithColorScheme sets the color scheme
func WithColorScheme(colorScheme *ColorScheme) Option {
	return func(c *Config) {
		c.ColorScheme = colorScheme
	}
}

// WithKeyMap sets the key bindings
func WithKeyMap(keyMap *KeyMap) Option {
	return func(c *Config) {
		c.KeyMap = keyMap
	}
}

// WithMaxSuggestions limits the number of overlay rows. When more entries
// match, the overlay shows a window of n rows that follows the selection.
// By default every match is drawn as long as it fits on the screen.
func WithMaxSuggestions(n int) Option {
	return func(c *Config) {
		c.MaxSuggestions = n
	}
}

// WithOverlayRefreshOnMove controls whether Left/Right/Home/End redraw the
// suggestion overlay. By default the overlay is only redrawn when the text changes.
func WithOverlayRefreshOnMove(refresh bool) Option {
	return func(c *Config) {
		c.RefreshOnMove = refresh
	}
}

// WithLogger sets the logger for diagnostics.
//
// The terminal is in raw mode while the prompt is open, so the logger should
// write somewhere other than the terminal (a file, or a discarding handler).
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// New creates a prompt on the controlling terminal and switches it to raw mode.
//
// Close must be called to restore the terminal:
//
//	p, err := cmdprompt.New(">>> ",
//		cmdprompt.WithSuggestions(
//			cmdprompt.Suggestion{Trigger: "help", Description: "List commands"},
//			cmdprompt.Suggestion{Trigger: "quit", Description: "Leave"},
//		),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer p.Close()
//
//	line, err := p.Run()
func New(prefix string, options ...Option) (*Prompt, error) {
	config := Config{
		Prefix: prefix,
	}

	// Apply options
	for _, option := range options {
		option(&config)
	}

	terminal, err := newRealTerminal()
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal: %w", err)
	}

	p, err := newWithScreen(config, terminal)
	if err != nil {
		_ = terminal.Close()
		return nil, err
	}
	return p, nil
}

// newWithScreen fills in configuration defaults and enters raw mode on sc.
func newWithScreen(config Config, sc screen) (*Prompt, error) {
	if config.ColorScheme == nil {
		config.ColorScheme = ThemeDefault
	}
	if config.KeyMap == nil {
		config.KeyMap = NewDefaultKeyMap()
	}
	if config.History == nil {
		config.History = NewHistory()
	}
	if config.Catalog == nil {
		config.Catalog = NewCatalog()
	}
	if config.MaxSuggestions < 0 {
		config.MaxSuggestions = 0
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}

	p := &Prompt{
		config:   config,
		terminal: sc,
		renderer: newRenderer(sc, config.ColorScheme, config.Prefix),
		keyMap:   config.KeyMap,
		history:  config.History,
		catalog:  config.Catalog,
		logger:   config.Logger,
	}

	if err := p.terminal.SetRaw(); err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	p.rawMode = true
	p.logger.Debug("Entered raw mode")

	return p, nil
}

// Run reads one line. It is RunWithContext with a background context.
func (p *Prompt) Run() (string, error) {
	return p.RunWithContext(context.Background())
}

// RunWithContext prints the prefix and edits one line until it is confirmed.
//
// Enter on a blank line starts a new prompt line instead of returning. The
// returned line is trimmed and has already been added to the history.
//
// Key reads block; ctx is checked between key presses only, so cancellation
// takes effect at the next key.
//
// If anything panics while the line is edited, the terminal mode is restored
// before the panic continues.
func (p *Prompt) RunWithContext(ctx context.Context) (line string, err error) {
	if p.closed {
		return "", ErrClosed
	}
	defer func() {
		if r := recover(); r != nil {
			p.restoreTerminal()
			panic(r)
		}
	}()

	s := newSession(p.terminal, p.renderer, p.catalog, p.history, sessionOptions{
		maxSuggestions: p.config.MaxSuggestions,
		refreshOnMove:  p.config.RefreshOnMove,
	})
	if err := s.start(); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}

	keys := &keyReader{in: p.terminal, keyMap: p.keyMap}
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		key, err := keys.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", ErrEOF
			}
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		line, done, err := s.handle(key)
		if err != nil {
			if errors.Is(err, ErrInterrupted) {
				return "", err
			}
			return "", fmt.Errorf("failed to render: %w", err)
		}
		if done {
			p.logger.Debug("Line confirmed", "length", len(line))
			return line, nil
		}
	}
}

// Write writes text to the terminal. In raw mode "\n" does not return the
// carriage, so Write converts lone line feeds to "\r\n".
func (p *Prompt) Write(b []byte) (int, error) {
	if p.closed {
		return 0, ErrClosed
	}
	if _, err := p.terminal.Write(toCRLF(b)); err != nil {
		return 0, err
	}
	return len(b), nil
}

// toCRLF converts "\n" not preceded by "\r" into "\r\n".
func toCRLF(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for i, c := range b {
		if c == '\n' && (i == 0 || b[i-1] != '\r') {
			out = append(out, '\r')
		}
		out = append(out, c)
	}
	return out
}

// Close restores the terminal and releases it.
//
// It's safe to call Close multiple times. It's recommended to use defer for
// automatic cleanup right after New.
func (p *Prompt) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.restoreTerminal()

	if p.terminal != nil {
		return p.terminal.Close()
	}
	return nil
}

// restoreTerminal leaves raw mode if the prompt is in it.
func (p *Prompt) restoreTerminal() {
	if !p.rawMode {
		return
	}
	p.rawMode = false
	if err := p.terminal.Restore(); err != nil {
		// Log error but continue with cleanup
		fmt.Fprintf(os.Stderr, "Warning: failed to restore terminal state: %v\n", err)
		return
	}
	p.logger.Debug("Restored terminal mode")
}

// History returns the history log shared by all lines read from this prompt.
func (p *Prompt) History() *History {
	return p.history
}

// AddHistory records a line as if it had been confirmed.
// The line is trimmed first; blank lines are ignored.
func (p *Prompt) AddHistory(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	p.history.AppendIfChanged(line)
}

// Catalog returns the suggestions shown in the overlay.
func (p *Prompt) Catalog() *Catalog {
	return p.catalog
}

// SetTheme changes the color scheme used from the next redraw on.
// A nil theme selects ThemeDefault.
func (p *Prompt) SetTheme(theme *ColorScheme) {
	if theme == nil {
		theme = ThemeDefault
	}
	p.config.ColorScheme = theme
	p.renderer.colorScheme = theme
}

// SetPrefix changes the prompt prefix used for the next line.
func (p *Prompt) SetPrefix(prefix string) {
	p.config.Prefix = prefix
	p.renderer.prefix = prefix
}
