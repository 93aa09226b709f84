// Package display provides unified output formatting for the Herbie CLI.
// It visually separates Herbie's own messages from assistant replies and
// command results.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// Display handles all CLI output with visual hierarchy
type Display struct {
	out       io.Writer
	theme     *Theme
	termWidth int
	noColor   bool
	now       func() time.Time
}

// New creates a new Display instance
func New() *Display {
	return NewWithOptions(false)
}

// NewWithOptions creates a Display on stdout with configuration
func NewWithOptions(noColor bool) *Display {
	return NewWriter(os.Stdout, noColor, TerminalWidth())
}

// NewWriter creates a Display that writes to w with a fixed width
func NewWriter(w io.Writer, noColor bool, width int) *Display {
	if width < 40 {
		width = 80
	}
	d := &Display{
		out:       w,
		termWidth: width,
		noColor:   noColor,
		now:       time.Now,
	}
	if noColor {
		d.theme = NoColorTheme()
	} else {
		d.theme = DefaultTheme()
	}
	return d
}

// TerminalWidth returns the terminal width, defaulting to 80
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 40 {
		return 80
	}
	if width > 120 {
		return 120 // Cap at 120 for readability
	}
	return width
}

// IsTerminal reports whether stdout is a terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func (d *Display) println(a ...interface{}) {
	fmt.Fprintln(d.out, a...)
}

func (d *Display) printf(format string, a ...interface{}) {
	fmt.Fprintf(d.out, format, a...)
}

func (d *Display) timestamp() string {
	return d.now().Format("[15:04:05]")
}

// Herbie prints a boxed message for Herbie orchestration output
func (d *Display) Herbie(lines ...string) {
	d.Box("HERBIE", lines...)
}

// Box prints a boxed message with a custom title
func (d *Display) Box(title string, lines ...string) {
	if len(lines) == 0 {
		return
	}

	width := d.termWidth - 2
	titleLen := len(title) + 3 // "─ TITLE "
	remainingWidth := width - titleLen
	if remainingWidth < 0 {
		remainingWidth = 0
	}

	// Top border: ┌─ HERBIE ─────────────────────────┐
	topLine := BoxTopLeft + BoxHorizontal + " " + title + " " + strings.Repeat(BoxHorizontal, remainingWidth) + BoxTopRight
	d.println(d.theme.Border(topLine))

	for _, line := range lines {
		for _, wrapped := range d.wrapText(line, width-2, 0) {
			paddedLine := d.padRight(wrapped, width-2)
			d.println(d.theme.Border(BoxVertical) + " " + d.theme.Text(paddedLine) + " " + d.theme.Border(BoxVertical))
		}
	}

	bottomLine := BoxBottomLeft + strings.Repeat(BoxHorizontal, width) + BoxBottomRight
	d.println(d.theme.Border(bottomLine))
}

// Status prints a single-line Herbie status message (no box)
func (d *Display) Status(symbol, message string) {
	d.printf("%s %s %s\n",
		d.theme.Border(d.timestamp()),
		symbol,
		d.theme.Text(message))
}

// Success prints a success message with green checkmark
func (d *Display) Success(message string) {
	d.Status(d.theme.Success(SymbolSuccess), message)
}

// Error prints an error message with red X
func (d *Display) Error(message string) {
	d.Status(d.theme.Error(SymbolError), message)
}

// Warning prints a warning message with yellow triangle
func (d *Display) Warning(message string) {
	d.Status(d.theme.Warning(SymbolWarning), message)
}

// Info prints an info message with cyan label
func (d *Display) Info(label, message string) {
	d.Status(d.theme.Info(label+":"), message)
}

// Reply prints an assistant reply with a left gutter
func (d *Display) Reply(text string) {
	gutter := d.theme.ReplyGutter(GutterReply)
	for i, line := range d.wrapText(text, d.termWidth-6, 0) {
		if i == 0 {
			d.printf("  %s %s\n", gutter, d.theme.ReplyText(line))
		} else {
			d.printf("  %s %s\n", d.theme.ReplyGutter(GutterDot), d.theme.ReplyText(line))
		}
	}
}

// SectionBreak prints a horizontal separator
func (d *Display) SectionBreak() {
	d.println(d.theme.Separator(strings.Repeat(SectionBreak, d.termWidth)))
}

// Heading prints a bold title line
func (d *Display) Heading(title string) {
	d.println(d.theme.Bold(title))
}

// Duration prints execution duration
func (d *Display) Duration(dur time.Duration) {
	d.printf("   Duration: %s\n", dur.Round(time.Millisecond))
}

// Blank prints an empty line
func (d *Display) Blank() {
	d.println()
}

// Theme returns the current theme for external use
func (d *Display) Theme() *Theme {
	return d.theme
}

// wrapText wraps text to width. maxLines of 0 means unlimited; otherwise the
// last kept line ends with "...".
func (d *Display) wrapText(text string, maxWidth, maxLines int) []string {
	if maxWidth <= 0 {
		maxWidth = 80
	}

	var lines []string
	for _, paragraph := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if len(paragraph) <= maxWidth {
			lines = append(lines, paragraph)
			continue
		}

		indent := paragraph[:len(paragraph)-len(strings.TrimLeft(paragraph, " "))]
		var currentLine strings.Builder
		currentLine.WriteString(indent)
		for _, word := range strings.Fields(paragraph) {
			if currentLine.Len() > len(indent) && currentLine.Len()+len(word)+1 > maxWidth {
				lines = append(lines, currentLine.String())
				currentLine.Reset()
				currentLine.WriteString(indent)
			}
			if currentLine.Len() > len(indent) {
				currentLine.WriteString(" ")
			}
			currentLine.WriteString(word)
		}
		if currentLine.Len() > len(indent) {
			lines = append(lines, currentLine.String())
		}
	}

	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
		last := lines[maxLines-1]
		if len(last) > maxWidth-3 {
			last = last[:maxWidth-3]
		}
		lines[maxLines-1] = last + "..."
	}
	return lines
}

// padRight pads a string to the specified width
func (d *Display) padRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return string([]rune(s)[:width])
	}
	return s + strings.Repeat(" ", width-n)
}

// Truncate truncates text to max length with ellipsis
func Truncate(s string, max int) string {
	s = CleanText(s)
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// CleanText removes newlines and collapses spaces
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return strings.TrimSpace(s)
}
