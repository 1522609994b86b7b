package format

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 2

// DiffResult represents the difference between the file on disk and the
// rendered library. Line matching runs on first use, so callers that only
// look at Changed pay for a string comparison.
type DiffResult struct {
	Original  string
	Formatted string
	Changed   bool
	matcher   *difflib.SequenceMatcher
}

// Diff compares original and formatted text line by line
func Diff(original, formatted string) *DiffResult {
	return &DiffResult{
		Original:  original,
		Formatted: formatted,
		Changed:   original != formatted,
	}
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (d *DiffResult) lines() ([]string, []string, *difflib.SequenceMatcher) {
	a, b := splitLines(d.Original), splitLines(d.Formatted)
	if d.matcher == nil {
		d.matcher = difflib.NewMatcher(a, b)
	}
	return a, b, d.matcher
}

// hunkHeader prints both ranges with an explicit count. An empty range
// starts at the line before it.
func hunkHeader(g []difflib.OpCode) string {
	first, last := g[0], g[len(g)-1]
	oldStart, oldCount := first.I1, last.I2-first.I1
	newStart, newCount := first.J1, last.J2-first.J1
	if oldCount > 0 {
		oldStart++
	}
	if newCount > 0 {
		newStart++
	}
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldCount, newStart, newCount)
}

func (d *DiffResult) render(buf *bytes.Buffer, colored bool) {
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)
	if !colored {
		red.DisableColor()
		green.DisableColor()
		cyan.DisableColor()
	}
	a, b, m := d.lines()
	groups := m.GetGroupedOpCodes(contextLines)
	if len(groups) == 0 {
		cyan.Fprintln(buf, `\ Newline at end of file differs`)
	}
	for _, g := range groups {
		cyan.Fprintln(buf, hunkHeader(g))
		for _, c := range g {
			if c.Tag == 'e' {
				for _, line := range a[c.I1:c.I2] {
					fmt.Fprintf(buf, " %s\n", line)
				}
				continue
			}
			if c.Tag == 'r' || c.Tag == 'd' {
				for _, line := range a[c.I1:c.I2] {
					red.Fprintf(buf, "-%s\n", line)
				}
			}
			if c.Tag == 'r' || c.Tag == 'i' {
				for _, line := range b[c.J1:c.J2] {
					green.Fprintf(buf, "+%s\n", line)
				}
			}
		}
	}
}

// String returns a human-readable diff with color highlighting
func (d *DiffResult) String() string {
	if !d.Changed {
		return color.GreenString("No changes needed")
	}
	var buf bytes.Buffer
	d.render(&buf, true)
	return buf.String()
}

// UnifiedDiff returns a unified diff without colors, suitable for patch(1)
func (d *DiffResult) UnifiedDiff(filename string) string {
	if !d.Changed {
		return ""
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--- a/%s\n", filename)
	fmt.Fprintf(&buf, "+++ b/%s\n", filename)
	d.render(&buf, false)
	return buf.String()
}

// Stats returns statistics about the changes
func (d *DiffResult) Stats() string {
	if !d.Changed {
		return "No changes"
	}
	added, removed := 0, 0
	_, _, m := d.lines()
	for _, c := range m.GetOpCodes() {
		if c.Tag == 'r' || c.Tag == 'd' {
			removed += c.I2 - c.I1
		}
		if c.Tag == 'r' || c.Tag == 'i' {
			added += c.J2 - c.J1
		}
	}
	return fmt.Sprintf("%d lines added, %d removed", added, removed)
}
