package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	bankdto "qbank/internal/modules/bank/dto"
	"qbank/internal/ui/theme"
	bankview "qbank/internal/ui/views/bank"
)

type bankPort interface {
	ListRecords(ctx context.Context) ([]bankdto.RecordOutput, error)
}

// Model frames the bank browser with a header and footer and owns the quit keys.
type Model struct {
	title  string
	bank   bankview.Model
	width  int
	height int
}

func NewModel(title string, port bankPort) Model {
	return Model{title: title, bank: bankview.New(port)}
}

func (m Model) Init() tea.Cmd {
	return m.bank.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		inner := tea.WindowSizeMsg{Width: msg.Width, Height: max(msg.Height-2, 0)}
		var cmd tea.Cmd
		m.bank, cmd = m.bank.Update(inner)
		return m, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if !m.bank.Filtering() {
				return m, tea.Quit
			}
		}
	}
	var cmd tea.Cmd
	m.bank, cmd = m.bank.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := theme.Title.Render(m.title)
	footer := theme.Muted.Render("↑/↓ move  / filter  a answer  q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.bank.View(), footer)
}
