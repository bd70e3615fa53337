package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/fruitcraft/internal/session"
	"github.com/zappabad/fruitcraft/tui/styles"
)

// MarketPanel shows the clock, the team counters, the quote, and the
// player's balance.
type MarketPanel struct {
	snap    session.Snapshot
	focused bool
	width   int
	height  int
}

// NewMarketPanel creates the market panel.
func NewMarketPanel() *MarketPanel {
	return &MarketPanel{}
}

// SetSnapshot updates the displayed state.
func (p *MarketPanel) SetSnapshot(snap session.Snapshot) {
	p.snap = snap
}

// SetFocus sets the focus state.
func (p *MarketPanel) SetFocus(focused bool) { p.focused = focused }

// SetSize sets the panel dimensions.
func (p *MarketPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Clock formats elapsed seconds as mm:ss.
func Clock(seconds int) string {
	return fmt.Sprintf("%02d : %02d", seconds/60, seconds%60)
}

// View renders the panel.
func (p *MarketPanel) View() string {
	var content strings.Builder

	content.WriteString(styles.ClockStyle.Render(Clock(p.snap.Tick)))
	content.WriteString(styles.MutedStyle.Render(fmt.Sprintf("  / %s", Clock(p.snap.Horizon))))
	content.WriteString("\n\n")

	header := fmt.Sprintf("%-10s %8s %8s", "", "Oranges", "Lemons")
	content.WriteString(styles.HeaderStyle.Render(header))
	content.WriteString("\n")
	content.WriteString(styles.RowStyle.Render(fmt.Sprintf("%-10s %8d %8d",
		"Team 1", p.snap.Counts.Team1Oranges, p.snap.Counts.Team1Lemons)))
	content.WriteString("\n")
	content.WriteString(styles.RowStyle.Render(fmt.Sprintf("%-10s %8d %8d",
		"Team 2", p.snap.Counts.Team2Oranges, p.snap.Counts.Team2Lemons)))
	content.WriteString("\n\n")

	content.WriteString(styles.MutedStyle.Render("total oranges * total lemons"))
	content.WriteString("\n")
	content.WriteString(styles.QuoteStyle.Render(fmt.Sprintf("%.2f", p.snap.Quote)))
	content.WriteString(styles.MutedStyle.Render(fmt.Sprintf("  (fair %.2f)", p.snap.FairValue)))
	content.WriteString("\n\n")

	content.WriteString(styles.HeaderStyle.Render("Balance "))
	content.WriteString(styles.PnL(p.snap.Balance).Render(fmt.Sprintf("%.2f", p.snap.Balance)))
	content.WriteString(styles.MutedStyle.Render(fmt.Sprintf("   position %+d", p.snap.NetPosition)))

	return p.frame(content.String())
}

func (p *MarketPanel) frame(content string) string {
	style := styles.PanelStyle
	if p.focused {
		style = styles.FocusedPanelStyle
	}
	title := styles.RenderTitle("Market", p.focused)
	body := lipgloss.JoinVertical(lipgloss.Left, title, content)
	return style.Width(p.width - 2).Height(p.height - 2).Render(body)
}
