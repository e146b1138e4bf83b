// Package ui provides theme and color support for the application's user
// interface. Themes are sets of github.com/fatih/color styles shared by the
// CLI output and the error handler.
package ui

import (
	"os"
	"sync"

	"github.com/fatih/color"
)

// Theme defines a color scheme for UI output.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color for important elements.
	Primary *color.Color
	// Secondary is used for less prominent elements.
	Secondary *color.Color
	// Success indicates positive outcomes, such as the computed value.
	Success *color.Color
	// Warning is used for caution messages such as a wrapped result.
	Warning *color.Color
	// Error indicates failures.
	Error *color.Color
	// Info is used for informational values such as the index.
	Info *color.Color
	// Bold is used for headings.
	Bold *color.Color
}

// DarkTheme is optimized for dark terminal backgrounds.
func DarkTheme() Theme {
	return Theme{
		Name:      "dark",
		Primary:   color.New(color.FgHiBlue),
		Secondary: color.New(color.FgHiBlack),
		Success:   color.New(color.FgHiGreen),
		Warning:   color.New(color.FgHiYellow),
		Error:     color.New(color.FgHiRed),
		Info:      color.New(color.FgHiMagenta),
		Bold:      color.New(color.Bold),
	}
}

// LightTheme uses darker colors for light terminal backgrounds.
func LightTheme() Theme {
	return Theme{
		Name:      "light",
		Primary:   color.New(color.FgBlue),
		Secondary: color.New(color.FgBlack),
		Success:   color.New(color.FgGreen),
		Warning:   color.New(color.FgYellow),
		Error:     color.New(color.FgRed),
		Info:      color.New(color.FgMagenta),
		Bold:      color.New(color.Bold),
	}
}

// NoColorTheme disables all color output.
func NoColorTheme() Theme {
	t := DarkTheme()
	t.Name = "none"
	for _, c := range t.all() {
		c.DisableColor()
	}
	return t
}

// Forced returns a copy of t whose colors are emitted even when stdout is
// not a terminal. Tests use it to assert on escape codes.
func (t Theme) Forced() Theme {
	out := t
	out.Primary = clone(t.Primary)
	out.Secondary = clone(t.Secondary)
	out.Success = clone(t.Success)
	out.Warning = clone(t.Warning)
	out.Error = clone(t.Error)
	out.Info = clone(t.Info)
	out.Bold = clone(t.Bold)
	for _, c := range out.all() {
		c.EnableColor()
	}
	return out
}

// Warn renders s in the warning color. It lets a Theme serve as the
// status-line highlighter of the error handler.
func (t Theme) Warn(s string) string {
	return t.Warning.Sprint(s)
}

func (t Theme) all() []*color.Color {
	return []*color.Color{t.Primary, t.Secondary, t.Success, t.Warning, t.Error, t.Info, t.Bold}
}

func clone(c *color.Color) *color.Color {
	dup := *c
	return &dup
}

var (
	currentTheme = DarkTheme()
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used for testing purposes to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name.
// Valid names are: "dark", "light", "none". Unknown names select dark.
func SetTheme(name string) {
	var t Theme
	switch name {
	case "light":
		t = LightTheme()
	case "none":
		t = NoColorTheme()
	default:
		t = DarkTheme()
	}
	SetCurrentTheme(t)
}

// InitTheme initializes the theme based on the noColor flag and environment.
// It respects the NO_COLOR environment variable (https://no-color.org/).
//
// Parameters:
//   - noColor: If true, disables all color output regardless of environment.
func InitTheme(noColor bool) {
	if noColor {
		SetCurrentTheme(NoColorTheme())
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		SetCurrentTheme(NoColorTheme())
		return
	}
	SetCurrentTheme(DarkTheme())
}
