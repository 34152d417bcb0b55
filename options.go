package icons

import (
	"log/slog"

	"github.com/gogpu/icons/symbol"
)

// Option configures Parse.
//
// Example:
//
//	// Report errors relative to line 120 of the rule file and log decisions:
//	arr, err := icons.Parse(lines, colors,
//	    icons.WithStartLine(120),
//	    icons.WithLogger(slog.Default()))
type Option func(*options)

// options holds optional configuration for Parse.
type options struct {
	startLine int
	logger    *slog.Logger
	minter    *symbol.Minter
	height    Height
}

// defaultOptions returns the default parse options.
func defaultOptions() options {
	return options{
		startLine: 1,
		logger:    nil, // Will be set to a nop logger if nil
		minter:    nil, // Will be created if nil
	}
}

// WithStartLine sets the line number of the segment's first line.
// Errors report line numbers relative to it. The default is 1.
func WithStartLine(n int) Option {
	return func(o *options) {
		o.startLine = n
	}
}

// WithLogger sets the logger for one Parse call.
// Pass nil to keep the default silent logger.
//
// Log levels used:
//   - [slog.LevelDebug]: height selection, per-state decode, gap fills
//   - [slog.LevelInfo]: segment summary
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMinter sets the source of symbols for fallback colours that have no
// symbol in the segment. Use symbol.NewSeededMinter for reproducible output.
func WithMinter(m *symbol.Minter) Option {
	return func(o *options) {
		o.minter = m
	}
}

// WithHeight forces the icon height instead of deriving it from the
// segment's "x = W, y = H" declarations.
func WithHeight(h Height) Option {
	return func(o *options) {
		o.height = h
	}
}
