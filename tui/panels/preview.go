package panels

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/fruitcraft/internal/fruit"
	"github.com/zappabad/fruitcraft/tui/styles"
)

// PreviewPanel shows the pre-game market history: a batch of simulated
// runs and their totals.
type PreviewPanel struct {
	tbl   table.Model
	width int
}

// NewPreviewPanel builds the preview table from simulated runs.
func NewPreviewPanel(preview fruit.Preview) *PreviewPanel {
	columns := []table.Column{
		{Title: "Run", Width: 6},
		{Title: "team 1 oranges", Width: 15},
		{Title: "team 1 lemons", Width: 15},
		{Title: "team 2 oranges", Width: 15},
		{Title: "team 2 lemons", Width: 15},
	}

	rows := make([]table.Row, 0, len(preview.Runs)+1)
	for i, run := range preview.Runs {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", run.Team1Oranges),
			fmt.Sprintf("%d", run.Team1Lemons),
			fmt.Sprintf("%d", run.Team2Oranges),
			fmt.Sprintf("%d", run.Team2Lemons),
		})
	}
	rows = append(rows, table.Row{
		"Total",
		fmt.Sprintf("%d", preview.Total.Team1Oranges),
		fmt.Sprintf("%d", preview.Total.Team1Lemons),
		fmt.Sprintf("%d", preview.Total.Team2Oranges),
		fmt.Sprintf("%d", preview.Total.Team2Lemons),
	})

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.Bold(true).Foreground(styles.TextSecondaryColor)
	ts.Selected = lipgloss.NewStyle()
	tbl.SetStyles(ts)

	return &PreviewPanel{tbl: tbl}
}

// SetSize sets the panel dimensions.
func (p *PreviewPanel) SetSize(width, _ int) { p.width = width }

// View renders the panel.
func (p *PreviewPanel) View() string {
	title := styles.RenderTitle("Market History", true)
	hint := styles.MutedStyle.Render("press enter to start trading")
	body := lipgloss.JoinVertical(lipgloss.Center, title, p.tbl.View(), "", hint)
	return styles.FocusedPanelStyle.Render(body)
}
