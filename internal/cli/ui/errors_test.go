package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/conduit-lang/bibkit/internal/bibtex"
	"github.com/conduit-lang/bibkit/internal/model"
	"github.com/conduit-lang/bibkit/internal/save"
)

func TestFormatError(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		opts     ErrorOptions
		contains []string
	}{
		{
			name:     "basic error",
			opts:     ErrorOptions{Level: ErrorLevelError, Context: "save failed", Problem: "disk full"},
			contains: []string{"❌ SAVE FAILED: disk full"},
		},
		{
			name: "suggestions",
			opts: ErrorOptions{
				Level:       ErrorLevelWarning,
				Problem:     "title_cse",
				Suggestions: []string{"title_case", "lower_case"},
			},
			contains: []string{"⚠️ title_cse", "Did you mean: title_case, lower_case?"},
		},
		{
			name: "help commands",
			opts: ErrorOptions{
				Level:        ErrorLevelError,
				Problem:      "bad config",
				HelpCommands: []string{"Get help: bibkit --help"},
			},
			contains: []string{"→ Get help: bibkit --help"},
		},
		{
			name:     "info",
			opts:     ErrorOptions{Level: ErrorLevelInfo, Problem: "3 entries written"},
			contains: []string{"ℹ️ 3 entries written"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FormatError(tt.opts)
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("FormatError() = %q, want it to contain %q", out, want)
				}
			}
		})
	}
}

func TestFormatError_NoColorOption(t *testing.T) {
	out := FormatError(ErrorOptions{Level: ErrorLevelError, Problem: "plain", NoColor: true})
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected no escape codes, got %q", out)
	}
}

func TestUnknownFormatterWarning(t *testing.T) {
	out := UnknownFormatterWarning("title", "title_cse", []string{"title_case"}, true)
	for _, want := range []string{
		"UNKNOWN FORMATTER: title_cse",
		"Save action for field 'title' is skipped.",
		"Did you mean: title_case?",
		"bibkit formatters",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestUnknownEntryTypeWarning(t *testing.T) {
	out := UnknownEntryTypeWarning("", "artcle", []string{"article"}, true)
	if !strings.Contains(out, "Entry (no key) is written as @artcle") {
		t.Errorf("unexpected warning: %q", out)
	}
}

func TestSaveError(t *testing.T) {
	werr := &save.WriteError{
		Kind:  save.KindEntry,
		Key:   "k",
		Field: "title",
		Err:   &bibtex.InvalidValueError{Field: "title", Value: "{x", Reason: "unbalanced braces"},
	}
	out := SaveError("refs.bib", werr, true)
	if !strings.Contains(out, "refs.bib was not changed.") {
		t.Errorf("missing consequence in %q", out)
	}
	if !strings.Contains(out, "Balance the braces in field 'title' of k") {
		t.Errorf("missing hint in %q", out)
	}

	cerr := &save.ConfigurationError{Order: model.OrderTable, Err: save.ErrInvalidOrder}
	if out := SaveError("refs.bib", cerr, true); !strings.Contains(out, "save.order") {
		t.Errorf("missing order hint in %q", out)
	}

	if out := SaveError("refs.bib", errors.New("boom"), true); strings.Contains(out, "→") {
		t.Errorf("plain errors have no hints, got %q", out)
	}
}

func TestWriteSuccess(t *testing.T) {
	var buf bytes.Buffer
	WriteSuccess(&buf, "refs.bib formatted", true)
	if buf.String() != "✓ refs.bib formatted\n" {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	WriteError(&buf, ErrorOptions{Level: ErrorLevelWarning, Problem: "careful", NoColor: true})
	if !strings.Contains(buf.String(), "careful") {
		t.Errorf("unexpected output %q", buf.String())
	}
	if Warning("w", true) == "" || ConfigError("c", true) == "" || Info("i", true) == "" {
		t.Error("expected non-empty messages")
	}
}
