package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/fruitcraft/internal/trade"
	"github.com/zappabad/fruitcraft/tui/styles"
)

// expiringSoonTicks is when an instrument row turns red.
const expiringSoonTicks = 10

// BoardPanel lists the open instruments and tracks the player's selection.
type BoardPanel struct {
	open     []trade.Instrument
	tick     int
	selected int
	focused  bool
	width    int
	height   int
}

// NewBoardPanel creates the instrument board.
func NewBoardPanel() *BoardPanel {
	return &BoardPanel{}
}

// SetState updates the open instruments and the current tick.
func (p *BoardPanel) SetState(open []trade.Instrument, tick int) {
	p.open = open
	p.tick = tick
	if p.selected >= len(open) {
		p.selected = len(open) - 1
	}
	if p.selected < 0 {
		p.selected = 0
	}
}

// MoveUp moves the selection up.
func (p *BoardPanel) MoveUp() {
	if p.selected > 0 {
		p.selected--
	}
}

// MoveDown moves the selection down.
func (p *BoardPanel) MoveDown() {
	if p.selected < len(p.open)-1 {
		p.selected++
	}
}

// Selected returns the currently selected instrument.
func (p *BoardPanel) Selected() (trade.Instrument, bool) {
	if len(p.open) == 0 {
		return trade.Instrument{}, false
	}
	return p.open[p.selected], true
}

// SetFocus sets the focus state.
func (p *BoardPanel) SetFocus(focused bool) { p.focused = focused }

// SetSize sets the panel dimensions.
func (p *BoardPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// View renders the panel.
func (p *BoardPanel) View() string {
	var content strings.Builder

	if len(p.open) == 0 {
		content.WriteString(styles.MutedStyle.Render("no open trades"))
	}

	for i, inst := range p.open {
		left := inst.ExpiresAt() - p.tick
		row := fmt.Sprintf("%-34s @ %-8d expires in %d", inst.Formula.Label, inst.Price, left)

		style := styles.RowStyle
		if left <= expiringSoonTicks {
			style = styles.ExpiringStyle
		}
		if i == p.selected && p.focused {
			style = styles.SelectedRowStyle
		}
		content.WriteString(style.Render(row))
		if i < len(p.open)-1 {
			content.WriteString("\n")
		}
	}

	style := styles.PanelStyle
	if p.focused {
		style = styles.FocusedPanelStyle
	}
	title := styles.RenderTitle("Trades", p.focused)
	body := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return style.Width(p.width - 2).Height(p.height - 2).Render(body)
}
