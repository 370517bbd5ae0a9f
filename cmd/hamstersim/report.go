package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Faultbox/hamsterrun/internal/locomotion"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E")).Width(16)
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2a3850")).
			Padding(0, 1)
)

func printRow(label, value string) {
	fmt.Println(row(label, value))
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

// View renders the report as a bordered block.
func (r report) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(r.Level))
	sb.WriteString("\n")

	lines := []string{
		row("Simulated", fmt.Sprintf("%.1fs in %d steps", r.Seconds, r.Steps)),
		row("Travelled", fmt.Sprintf("%.2f", r.Distance)),
		row("Final", fmt.Sprintf("(%.2f, %.2f, %.2f)", r.Final.X, r.Final.Y, r.Final.Z)),
		row("OK", goodStyle.Render(fmt.Sprint(r.Statuses[locomotion.StatusOK]))),
		row("Rolled back", r.statusText(locomotion.StatusRolledBack, warnStyle)),
		row("Restored", r.statusText(locomotion.StatusRestored, badStyle)),
		row("Unstable", fmt.Sprintf("%.2fs", r.Unstable)),
		row("Nuts", fmt.Sprintf("%d found, %d of %d left", r.Found, r.Left, r.Available)),
		row("Stack", fmt.Sprint(r.Revealed)),
		row("Objects", fmt.Sprintf("%d (%d visible)", r.Objects, r.Visible)),
		row("Marker tilt", fmt.Sprintf("%.1f°", r.MarkerTilt)),
		row("Message turn", r.messageText()),
	}
	if r.Score != "" {
		lines = append(lines, row("Score", goodStyle.Render(r.Score)))
	}
	sb.WriteString(strings.Join(lines, "\n"))
	return boxStyle.Render(sb.String())
}

// messageText flags a goal message that does not face the camera.
func (r report) messageText() string {
	text := fmt.Sprintf("%.1f°", r.MessageTurn)
	if r.MessageTurn > 1 {
		return warnStyle.Render(text)
	}
	return text
}

func (r report) statusText(s locomotion.Status, style lipgloss.Style) string {
	n := r.Statuses[s]
	if n == 0 {
		return "0"
	}
	return style.Render(fmt.Sprint(n))
}
