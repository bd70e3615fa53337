package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	OrangeColor = lipgloss.Color("#F59E0B")
	LemonColor  = lipgloss.Color("#FDE047")

	BuyColor     = lipgloss.Color("#10B981") // Green
	SellColor    = lipgloss.Color("#EF4444") // Red
	NeutralColor = lipgloss.Color("#6B7280") // Gray

	BorderColor      = lipgloss.Color("#374151")
	FocusBorderColor = lipgloss.Color("#F59E0B")

	TextColor          = lipgloss.Color("#F9FAFB")
	TextSecondaryColor = lipgloss.Color("#9CA3AF")
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(FocusBorderColor).
				Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(OrangeColor).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextSecondaryColor)

	RowStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(lipgloss.Color("#374151"))
)

// Text styles
var (
	BuyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(BuyColor)

	SellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SellColor)

	ExpiringStyle = lipgloss.NewStyle().
			Foreground(SellColor)

	ClockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(LemonColor)

	QuoteStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(NeutralColor)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	StatusBarKeyStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(OrangeColor)

	StatusBarDescStyle = lipgloss.NewStyle().
				Foreground(TextSecondaryColor)
)

// RenderTitle renders a panel title bar.
func RenderTitle(title string, focused bool) string {
	style := TitleStyle
	if focused {
		style = style.Foreground(FocusBorderColor)
	}
	return style.Render(title)
}

// PnL returns the style for a signed profit figure.
func PnL(v float64) lipgloss.Style {
	switch {
	case v > 0:
		return BuyStyle
	case v < 0:
		return SellStyle
	default:
		return QuoteStyle
	}
}
