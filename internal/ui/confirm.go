package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Confirmation describes a destructive operation the user must confirm by
// typing an exact phrase.
type Confirmation struct {
	Title    string   // e.g., "DELETE USER"
	Warnings []string // Bullet points shown in the warning box
	Phrase   string   // Text the user has to type, e.g. the username
	Width    int
}

// Render returns the warning box shown before the prompt
func (c Confirmation) Render() string {
	width := clampWidth(c.Width)

	lines := []string{"", WarningTitleStyle.Render(fmt.Sprintf("   %s  WARNING  ─  %s", WarningMarker, c.Title)), ""}

	bulletStyle := lipgloss.NewStyle().Foreground(TextColor)
	for _, warning := range c.Warnings {
		lines = append(lines, bulletStyle.Render("   • "+warning))
	}
	lines = append(lines, "")

	return ResultBoxStyle(width, WarningColor).Render(strings.Join(lines, "\n"))
}

// Ask prints the warning box to out and reads one line from in.
// It returns true only if the line equals Phrase after trimming.
func (c Confirmation) Ask(in io.Reader, out io.Writer) bool {
	_, _ = fmt.Fprintln(out, c.Render())
	_, _ = fmt.Fprintln(out)

	promptStyle := lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true)
	_, _ = fmt.Fprint(out, promptStyle.Render(fmt.Sprintf("To proceed, type %q and press Enter: ", c.Phrase)))

	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		_, _ = fmt.Fprintln(out)
		return false
	}

	if strings.TrimSpace(input) == c.Phrase {
		_, _ = fmt.Fprintln(out)
		return true
	}

	_, _ = fmt.Fprintln(out)
	cancelStyle := lipgloss.NewStyle().Foreground(MutedColor)
	_, _ = fmt.Fprintln(out, cancelStyle.Render("  Operation cancelled."))
	_, _ = fmt.Fprintln(out)
	return false
}

// ConfirmDeletion asks the user to type username before it is deleted
func ConfirmDeletion(in io.Reader, out io.Writer, username, server string) bool {
	return Confirmation{
		Title: "DELETE USER",
		Warnings: []string{
			fmt.Sprintf("User '%s' will be removed from %s", username, server),
			"Jobs and credentials owned by the user are not transferred",
			"This cannot be undone",
		},
		Phrase: username,
		Width:  GetTerminalWidth(),
	}.Ask(in, out)
}
