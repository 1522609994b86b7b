package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/conduit-lang/bibkit/internal/save"
)

// ErrorLevel represents the severity of a message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

type levelStyle struct {
	symbol string
	attr   color.Attribute
}

var levelStyles = map[ErrorLevel]levelStyle{
	ErrorLevelError:   {"❌", color.FgRed},
	ErrorLevelWarning: {"⚠️", color.FgYellow},
	ErrorLevelInfo:    {"ℹ️", color.FgCyan},
}

// ErrorOptions configures the message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Consequence  string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

func paint(noColor bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if noColor {
		c.DisableColor()
	}
	return c
}

// FormatError renders a message with optional suggestions and help commands
//
// Example output:
//
//	⚠️ UNKNOWN FORMATTER: title_cse
//	   Save action for field 'title' uses an unknown formatter.
//
//	   Did you mean: title_case?
//
//	   → List formatters: bibkit formatters
func FormatError(opts ErrorOptions) string {
	var b strings.Builder
	style := levelStyles[opts.Level]
	header := paint(opts.NoColor, style.attr, color.Bold)
	body := paint(opts.NoColor, style.attr)

	if opts.Context != "" {
		header.Fprintf(&b, "%s %s: %s\n", style.symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		header.Fprintf(&b, "%s %s\n", style.symbol, opts.Problem)
	}

	if opts.Consequence != "" {
		b.WriteString("\n")
		body.Fprintf(&b, "   %s\n", opts.Consequence)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		paint(opts.NoColor, color.FgYellow).Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		cyan := paint(opts.NoColor, color.FgCyan)
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}
	return b.String()
}

// WriteError writes a formatted message to the writer
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	return paint(noColor, color.FgGreen, color.Bold).Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// UnknownFormatterWarning reports a save action naming a formatter that
// does not exist
func UnknownFormatterWarning(field, formatter string, suggestions []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:        ErrorLevelWarning,
		Context:      "unknown formatter",
		Problem:      formatter,
		Consequence:  fmt.Sprintf("Save action for field '%s' is skipped.", field),
		Suggestions:  suggestions,
		HelpCommands: []string{"List formatters: bibkit formatters"},
		NoColor:      noColor,
	})
}

// UnknownEntryTypeWarning reports an entry whose type is neither standard
// nor declared as a custom type
func UnknownEntryTypeWarning(key, entryType string, suggestions []string, noColor bool) string {
	subject := key
	if subject == "" {
		subject = "(no key)"
	}
	return FormatError(ErrorOptions{
		Level:       ErrorLevelWarning,
		Context:     "unknown entry type",
		Problem:     entryType,
		Consequence: fmt.Sprintf("Entry %s is written as @%s without field ordering.", subject, entryType),
		Suggestions: suggestions,
		NoColor:     noColor,
	})
}

// SaveError explains why a library could not be written
func SaveError(path string, err error, noColor bool) string {
	opts := ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "save failed",
		Problem:     err.Error(),
		Consequence: fmt.Sprintf("%s was not changed.", path),
		NoColor:     noColor,
	}
	var werr *save.WriteError
	if errors.As(err, &werr) && werr.Field != "" {
		opts.HelpCommands = []string{
			fmt.Sprintf("Balance the braces in field '%s' of %s", werr.Field, werr.Key),
		}
	}
	var cerr *save.ConfigurationError
	if errors.As(err, &cerr) {
		opts.HelpCommands = []string{"Use save.order 'original' or 'specified' in bibkit.yml"}
	}
	return FormatError(opts)
}

// ConfigError creates a configuration error
func ConfigError(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:        ErrorLevelError,
		Context:      "configuration error",
		Problem:      message,
		HelpCommands: []string{"View config: cat bibkit.yml", "Get help: bibkit --help"},
		NoColor:      noColor,
	})
}

// Warning creates a warning message
func Warning(message string, noColor bool) string {
	return FormatError(ErrorOptions{Level: ErrorLevelWarning, Problem: message, NoColor: noColor})
}

// Info creates an info message
func Info(message string, noColor bool) string {
	return FormatError(ErrorOptions{Level: ErrorLevelInfo, Problem: message, NoColor: noColor})
}
