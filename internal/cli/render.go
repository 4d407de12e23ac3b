package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jober-app/go-alimtalk-client/api"
	"github.com/jober-app/go-alimtalk-client/session"
	"github.com/jober-app/go-alimtalk-client/spaces"
)

var (
	alertStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#DC2626")).
			Padding(0, 1)

	currentMarkStyle = lipgloss.NewStyle().Bold(true)

	severityStyles = map[session.Severity]lipgloss.Style{
		session.SeveritySuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A")),
		session.SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")),
		session.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#2563EB")),
		session.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#CA8A04")),
	}
)

// stderrAlerter renders the guard's blocking alerts. The web client used a
// modal; here a styled line on stderr is the closest equivalent.
func stderrAlerter() api.Alerter {
	return api.AlerterFunc(func(message string) {
		fmt.Fprintln(os.Stderr, alertStyle.Render(message))
	})
}

// swatch renders the space's derived palette color as a colored block.
func swatch(s spaces.Space) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render("■")
}

// printSpaces lists spaces in display order, marking the current one.
func (a *App) printSpaces() {
	state := a.store.State()
	for _, s := range state.SortedSpaces {
		mark := " "
		name := s.SpaceName
		if state.CurrentSpace != nil && state.CurrentSpace.SpaceID == s.SpaceID {
			mark = "*"
			name = currentMarkStyle.Render(name)
		}
		fmt.Printf("%s %s %-4d %s (%s)\n", mark, swatch(s), s.SpaceID, name, s.Authority)
	}
}

// flushSnackbar prints and closes the pending notification, if any.
func (a *App) flushSnackbar() {
	state := a.store.State()
	if state.Snackbar == nil || !state.Snackbar.Open {
		return
	}
	style, ok := severityStyles[state.Snackbar.Severity]
	if !ok {
		style = severityStyles[session.SeverityInfo]
	}
	fmt.Fprintln(os.Stderr, style.Render(state.Snackbar.Message))
	a.store.HideSnackbar()
}
