package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	stepStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginLeft(5)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00FF00"))

	skipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF00"))

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF0000"))

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))
)

// PlanItem is one renderable entry of a provisioning plan.
type PlanItem struct {
	Description string
	Detail      string
}

// RenderPlan prints the ordered plan with per-step detail.
func RenderPlan(w io.Writer, heading string, items []PlanItem) {
	fmt.Fprintln(w, titleStyle.Render(heading))
	for i, item := range items {
		fmt.Fprintf(w, "  %s\n", stepStyle.Render(fmt.Sprintf("%d. %s", i+1, item.Description)))
		if item.Detail != "" {
			for _, line := range strings.Split(strings.TrimRight(item.Detail, "\n"), "\n") {
				fmt.Fprintln(w, detailStyle.Render(line))
			}
		}
	}
	fmt.Fprintln(w)
}

// RenderOutcome prints what happened to each step after an execute run.
func RenderOutcome(w io.Writer, succeeded, skipped []string, failed string) {
	for _, desc := range succeeded {
		fmt.Fprintf(w, "  %s %s\n", okStyle.Render("✓"), desc)
	}
	for _, desc := range skipped {
		fmt.Fprintf(w, "  %s %s (already applied)\n", skipStyle.Render("-"), desc)
	}
	if failed != "" {
		fmt.Fprintf(w, "  %s %s\n", failStyle.Render("✗"), failed)
	}
}

// Confirm asks a yes/no question and blocks on a line of input. Only "y" and
// "yes" (case-insensitive) proceed; anything else, including EOF, declines.
func Confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", promptStyle.Render(prompt))

	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return false, nil
		}
		return false, fmt.Errorf("read confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
