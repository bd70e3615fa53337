package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/fruitcraft/internal/fruit"
	"github.com/zappabad/fruitcraft/internal/session"
	"github.com/zappabad/fruitcraft/internal/trade"
	"github.com/zappabad/fruitcraft/tui/panels"
	"github.com/zappabad/fruitcraft/tui/styles"
)

// Phase is the screen the player is on.
type Phase int

const (
	PhasePreview Phase = iota
	PhasePlaying
	PhaseOver
)

// PanelFocus represents which panel receives selection keys.
type PanelFocus int

const (
	FocusMarket PanelFocus = 0
	FocusBoard  PanelFocus = 1
)

// Model is the main TUI application model.
type Model struct {
	sess    *session.Session
	preview fruit.Preview

	phase        Phase
	focusedPanel PanelFocus

	marketPanel  *panels.MarketPanel
	boardPanel   *panels.BoardPanel
	historyPanel *panels.HistoryPanel
	previewPanel *panels.PreviewPanel

	finalScore  float64
	finalCounts fruit.Counts

	width  int
	height int

	statusMsg string
	ready     bool
}

// NewModel creates a new TUI model.
func NewModel(sess *session.Session, preview fruit.Preview) *Model {
	return &Model{
		sess:         sess,
		preview:      preview,
		phase:        PhasePreview,
		focusedPanel: FocusBoard,
		marketPanel:  panels.NewMarketPanel(),
		boardPanel:   panels.NewBoardPanel(),
		historyPanel: panels.NewHistoryPanel(),
		previewPanel: panels.NewPreviewPanel(preview),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.listenSessionEvents()
}

// gameTickMsg fires once per second of game time.
type gameTickMsg struct{}

// sessionEventMsg wraps one session event.
type sessionEventMsg struct {
	ev session.Event
}

// actionResultMsg reports the outcome of a player action.
type actionResultMsg struct {
	message string
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case gameTickMsg:
		if m.phase == PhasePlaying {
			cmds = append(cmds, m.advanceTick(), m.scheduleTick())
		}

	case sessionEventMsg:
		m.handleSessionEvent(msg.ev)
		cmds = append(cmds, m.listenSessionEvents())

	case actionResultMsg:
		m.statusMsg = msg.message
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	}

	switch m.phase {
	case PhasePreview:
		if msg.String() == "enter" {
			m.phase = PhasePlaying
			return m.scheduleTick()
		}

	case PhasePlaying:
		switch msg.String() {
		case "tab":
			m.focusedPanel = (m.focusedPanel + 1) % 2
		case "up", "k":
			m.boardPanel.MoveUp()
		case "down", "j":
			m.boardPanel.MoveDown()
		case "b":
			return m.tradeQuote(trade.SideBuy)
		case "s":
			return m.tradeQuote(trade.SideSell)
		case "B":
			return m.fillSelected(trade.SideBuy)
		case "S":
			return m.fillSelected(trade.SideSell)
		}
	}
	return nil
}

func (m *Model) handleSessionEvent(ev session.Event) {
	snap := m.sess.Snapshot()
	m.marketPanel.SetSnapshot(snap)
	m.boardPanel.SetState(snap.Open, snap.Tick)
	m.historyPanel.SetEntries(m.sess.History(50))

	if over, ok := ev.(session.GameOverEvent); ok {
		m.phase = PhaseOver
		m.finalScore = over.Score
		m.finalCounts = over.Counts
	}
}

func (m *Model) advanceTick() tea.Cmd {
	return func() tea.Msg {
		_ = m.sess.Tick(context.Background())
		return nil
	}
}

func (m *Model) scheduleTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return gameTickMsg{}
	})
}

func (m *Model) tradeQuote(side trade.Side) tea.Cmd {
	return func() tea.Msg {
		var (
			price float64
			err   error
		)
		if side == trade.SideBuy {
			price, err = m.sess.BuyQuote(context.Background())
		} else {
			price, err = m.sess.SellQuote(context.Background())
		}
		if err != nil {
			return actionResultMsg{message: "trade failed: " + err.Error()}
		}
		return actionResultMsg{message: fmt.Sprintf("%s underlying @ %.2f", side, price)}
	}
}

func (m *Model) fillSelected(side trade.Side) tea.Cmd {
	inst, ok := m.boardPanel.Selected()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		filled, err := m.sess.FillInstrument(context.Background(), inst.ID, side)
		if err != nil {
			return actionResultMsg{message: "fill failed: " + err.Error()}
		}
		return actionResultMsg{message: fmt.Sprintf("%s %s @ %d", side, filled.Formula.Label, filled.Price)}
	}
}

func (m *Model) listenSessionEvents() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.sess.Events()
		if !ok {
			return nil
		}
		return sessionEventMsg{ev: ev}
	}
}

// View renders the UI.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	switch m.phase {
	case PhasePreview:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.previewPanel.View())
	case PhaseOver:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderScore())
	}

	m.marketPanel.SetFocus(m.focusedPanel == FocusMarket)
	m.boardPanel.SetFocus(m.focusedPanel == FocusBoard)
	m.historyPanel.SetFocus(false)

	leftWidth := m.width / 4
	rightWidth := m.width / 4
	middleWidth := m.width - leftWidth - rightWidth
	mainHeight := m.height - 1

	m.marketPanel.SetSize(leftWidth, mainHeight)
	m.boardPanel.SetSize(middleWidth, mainHeight)
	m.historyPanel.SetSize(rightWidth, mainHeight)

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		m.marketPanel.View(),
		m.boardPanel.View(),
		m.historyPanel.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m *Model) renderScore() string {
	title := styles.RenderTitle("Profit and Loss", true)
	score := styles.PnL(m.finalScore).Render(fmt.Sprintf("%.2f", m.finalScore))
	counts := styles.MutedStyle.Render(fmt.Sprintf(
		"final: team 1 %d oranges / %d lemons, team 2 %d oranges / %d lemons",
		m.finalCounts.Team1Oranges, m.finalCounts.Team1Lemons,
		m.finalCounts.Team2Oranges, m.finalCounts.Team2Lemons,
	))
	hint := styles.MutedStyle.Render("press q to quit")
	return styles.FocusedPanelStyle.Render(
		lipgloss.JoinVertical(lipgloss.Center, title, "", score, "", counts, "", hint),
	)
}

func (m *Model) renderStatusBar() string {
	help := []string{
		styles.StatusBarKeyStyle.Render("b/s") + styles.StatusBarDescStyle.Render(" trade underlying"),
		styles.StatusBarKeyStyle.Render("B/S") + styles.StatusBarDescStyle.Render(" trade selected"),
		styles.StatusBarKeyStyle.Render("↑↓") + styles.StatusBarDescStyle.Render(" select"),
		styles.StatusBarKeyStyle.Render("q") + styles.StatusBarDescStyle.Render(" quit"),
	}

	helpStr := lipgloss.JoinHorizontal(lipgloss.Center, help[0], " │ ", help[1], " │ ", help[2], " │ ", help[3])

	status := ""
	if m.statusMsg != "" {
		status = " │ " + m.statusMsg
	}

	return styles.StatusBarStyle.Width(m.width).Render(helpStr + status)
}
