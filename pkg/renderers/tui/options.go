package tui

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-regform/pkg/session"
)

// OutputFormat controls how an accepted registration is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits an indented JSON document.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML emits a YAML document.
	OutputFormatYAML OutputFormat = "yaml"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional message prefixes.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultMaxRounds bounds how many times the blocking fields are re-asked.
const DefaultMaxRounds = 3

// Option configures the Prompter.
type Option func(*Prompter)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(p *Prompter) {
		if driver != nil {
			p.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(p *Prompter) {
		if format != "" {
			p.outputFormat = format
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(p *Prompter) {
		p.theme = theme
	}
}

// WithMaxRounds sets how many prompt rounds run before giving up.
func WithMaxRounds(n int) Option {
	return func(p *Prompter) {
		if n > 0 {
			p.maxRounds = n
		}
	}
}

// WithSessionOptions configures the session backing the prompt flow.
func WithSessionOptions(options ...session.Option) Option {
	return func(p *Prompter) {
		p.sessionOptions = append(p.sessionOptions, options...)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Prompter) {
		if logger != nil {
			p.logger = logger
		}
	}
}
