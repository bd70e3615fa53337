package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/fruitcraft/internal/session"
	"github.com/zappabad/fruitcraft/internal/trade"
	"github.com/zappabad/fruitcraft/tui/styles"
)

// HistoryPanel shows the trade tape, newest first.
type HistoryPanel struct {
	entries []session.HistoryEntry
	focused bool
	width   int
	height  int
}

// NewHistoryPanel creates the history panel.
func NewHistoryPanel() *HistoryPanel {
	return &HistoryPanel{}
}

// SetEntries updates the tape.
func (p *HistoryPanel) SetEntries(entries []session.HistoryEntry) {
	p.entries = entries
}

// SetFocus sets the focus state.
func (p *HistoryPanel) SetFocus(focused bool) { p.focused = focused }

// SetSize sets the panel dimensions.
func (p *HistoryPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// View renders the panel.
func (p *HistoryPanel) View() string {
	var content strings.Builder

	if len(p.entries) == 0 {
		content.WriteString(styles.MutedStyle.Render("no trades yet"))
	}

	// Two lines per entry; cap to the panel height.
	max := (p.height - 4) / 2
	if max < 1 {
		max = 1
	}

	for i, e := range p.entries {
		if i >= max {
			break
		}
		style := styles.BuyStyle
		action := "Buy"
		if e.Side == trade.SideSell {
			style = styles.SellStyle
			action = "Sell"
		}
		content.WriteString(style.Render(e.Label))
		content.WriteString("\n")
		content.WriteString(style.Render(fmt.Sprintf("%s @ %.2f", action, e.Price)))
		if i < len(p.entries)-1 && i < max-1 {
			content.WriteString("\n")
		}
	}

	style := styles.PanelStyle
	if p.focused {
		style = styles.FocusedPanelStyle
	}
	title := styles.RenderTitle("History", p.focused)
	body := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return style.Width(p.width - 2).Height(p.height - 2).Render(body)
}
