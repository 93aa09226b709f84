package display

import (
	"fmt"

	"github.com/fatih/color"
)

// Box drawing characters
const (
	BoxTopLeft     = "┌"
	BoxTopRight    = "┐"
	BoxBottomLeft  = "└"
	BoxBottomRight = "┘"
	BoxHorizontal  = "─"
	BoxVertical    = "│"
	SectionBreak   = "━"
)

// Status symbols
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolPending = "○"
	SymbolPartial = "◐"
	SymbolPhase   = "▸"
)

// Gutters for assistant replies
const (
	GutterReply = "▌"
	GutterDot   = "·"
)

// IndentCommand is the indentation for command results
const IndentCommand = "  "

// Theme holds all color functions for consistent styling
type Theme struct {
	// Herbie orchestration (prominent)
	Border func(a ...interface{}) string
	Label  func(a ...interface{}) string
	Text   func(a ...interface{}) string

	// Assistant replies and command lines (subdued)
	ReplyGutter func(a ...interface{}) string
	ReplyText   func(a ...interface{}) string
	Command     func(a ...interface{}) string

	// Status indicators
	Success func(a ...interface{}) string
	Error   func(a ...interface{}) string
	Warning func(a ...interface{}) string
	Info    func(a ...interface{}) string

	// Structural elements
	Bold      func(a ...interface{}) string
	Dim       func(a ...interface{}) string
	Separator func(a ...interface{}) string
}

// DefaultTheme creates the default color theme
func DefaultTheme() *Theme {
	return &Theme{
		Border: color.New(color.FgMagenta).SprintFunc(),
		Label:  color.New(color.FgMagenta, color.Bold).SprintFunc(),
		Text:   color.New(color.FgWhite).SprintFunc(),

		ReplyGutter: color.New(color.FgHiBlue).SprintFunc(),
		ReplyText:   color.New(color.FgWhite).SprintFunc(),
		Command:     color.New(color.FgHiBlack).SprintFunc(),

		Success: color.New(color.FgGreen).SprintFunc(),
		Error:   color.New(color.FgRed).SprintFunc(),
		Warning: color.New(color.FgYellow).SprintFunc(),
		Info:    color.New(color.FgCyan).SprintFunc(),

		Bold:      color.New(color.Bold).SprintFunc(),
		Dim:       color.New(color.FgHiBlack).SprintFunc(),
		Separator: color.New(color.FgMagenta).SprintFunc(),
	}
}

// NoColorTheme creates a theme without colors (for --no-color flag or non-TTY)
func NoColorTheme() *Theme {
	identity := func(a ...interface{}) string {
		return fmt.Sprint(a...)
	}
	return &Theme{
		Border:      identity,
		Label:       identity,
		Text:        identity,
		ReplyGutter: identity,
		ReplyText:   identity,
		Command:     identity,
		Success:     identity,
		Error:       identity,
		Warning:     identity,
		Info:        identity,
		Bold:        identity,
		Dim:         identity,
		Separator:   identity,
	}
}
