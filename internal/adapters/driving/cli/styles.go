package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// palette is the colour set used for terminal output.
var palette = struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
}{
	Primary: lipgloss.Color("#7C3AED"),
	Muted:   lipgloss.Color("#6C7086"),
	Success: lipgloss.Color("#A6E3A1"),
	Warning: lipgloss.Color("#F9E2AF"),
}

// outputStyles renders command output. The zero value renders plain text.
type outputStyles struct {
	Title     lipgloss.Style
	ID        lipgloss.Style
	Muted     lipgloss.Style
	Preferred lipgloss.Style
	Override  lipgloss.Style
}

// stylesFor returns coloured styles when w is a terminal and plain ones
// otherwise, so piped output stays machine readable.
func stylesFor(w io.Writer) outputStyles {
	plain := lipgloss.NewStyle()
	s := outputStyles{Title: plain, ID: plain, Muted: plain, Preferred: plain, Override: plain}

	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return s
	}

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(palette.Primary)
	s.ID = lipgloss.NewStyle().Bold(true)
	s.Muted = lipgloss.NewStyle().Foreground(palette.Muted)
	s.Preferred = lipgloss.NewStyle().Foreground(palette.Success)
	s.Override = lipgloss.NewStyle().Foreground(palette.Warning)
	return s
}
