package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/tatianab/ghostbook/internal/engine"
	"github.com/tatianab/ghostbook/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	issueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(noteStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func writeGhosts(w io.Writer, ghosts []models.Ghost) {
	t := newTable("ID", "NAME", "EVIDENCE", "DIFFICULTY")
	for _, g := range ghosts {
		t.Row(g.ID, g.Name, g.Signature().String(), g.Difficulty)
	}
	fmt.Fprintln(w, t.String())
	fmt.Fprintf(w, "%d ghosts\n", len(ghosts))
}

func writeClassifications(w io.Writer, ranked []engine.Classification) {
	t := newTable("GHOST", "CONFIDENCE", "BAND", "REASON")
	for _, c := range ranked {
		t.Row(c.Ghost.Name, fmt.Sprintf("%d%%", c.Confidence), c.Band.String(), c.Reason)
	}
	fmt.Fprintln(w, t.String())
}

func writeHints(w io.Writer, hints []engine.Hint, limit int) {
	if len(hints) == 0 {
		fmt.Fprintln(w, "Nothing left to check.")
		return
	}
	t := newTable("CHECK", "EVIDENCE", "PRIORITY", "POWER")
	for i, h := range hints {
		if limit > 0 && i == limit {
			break
		}
		t.Row(h.Equipment, h.Evidence.String(), h.Priority.String(), fmt.Sprintf("%d", h.EliminationPower))
	}
	fmt.Fprintln(w, t.String())
	fmt.Fprintln(w, noteStyle.Render(hints[0].Reason))
}

func writeIssues(w io.Writer, issues []string) {
	for _, issue := range issues {
		fmt.Fprintln(w, issueStyle.Render("! "+issue))
	}
}
