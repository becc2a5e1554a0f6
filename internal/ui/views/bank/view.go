package bank

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	bankdto "qbank/internal/modules/bank/dto"
	"qbank/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type BankPort interface {
	ListRecords(ctx context.Context) ([]bankdto.RecordOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type RecordsLoadedMsg struct {
	Records []bankdto.RecordOutput
	Err     error
}

// ─── list item ───────────────────────────────────────────────────────────────

type recordItem struct {
	record bankdto.RecordOutput
}

func (i recordItem) Title() string {
	if len(i.record.Question) == 0 {
		return fmt.Sprintf("#%d", i.record.ID)
	}
	return fmt.Sprintf("#%d %s", i.record.ID, i.record.Question[0])
}
func (i recordItem) Description() string { return i.record.Type }
func (i recordItem) FilterValue() string {
	return i.record.Type + " " + strings.Join(i.record.Question, " ")
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port       BankPort
	list       list.Model
	preview    viewport.Model
	showAnswer bool
	loading    bool
	err        error
	width      int
	height     int
}

func New(port BankPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Question bank"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	return Model{port: port, list: l, preview: vp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return m.loadRecordsCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case RecordsLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			m.list.Title = "Question bank: " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Records))
		for i, r := range msg.Records {
			items[i] = recordItem{record: r}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.refreshPreview()

	case tea.KeyMsg:
		if !m.Filtering() && msg.String() == "a" {
			m.showAnswer = !m.showAnswer
			m.refreshPreview()
			return m, nil
		}
	}

	if !m.loading {
		prevIdx := m.list.Index()
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.showAnswer = false
			m.refreshPreview()
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, "Loading question bank…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(max(detailW-2, 0)).
		Height(max(m.height-2, 0)).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SelectedRecord returns the highlighted record, if any.
func (m Model) SelectedRecord() (bankdto.RecordOutput, bool) {
	if item, ok := m.list.SelectedItem().(recordItem); ok {
		return item.record, true
	}
	return bankdto.RecordOutput{}, false
}

// Filtering reports whether the list's search filter is active so global keys
// are not swallowed while typing.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) AnswerVisible() bool { return m.showAnswer }

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = max(detailW-4, 0)
	m.preview.Height = max(m.height-4, 0)
}

func (m *Model) refreshPreview() {
	m.preview.SetContent(m.renderDetail())
}

func (m Model) renderDetail() string {
	r, ok := m.SelectedRecord()
	if !ok {
		return theme.Muted.Render("No records yet. Run qbank import first.")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("#%d", r.ID)) + "  " + theme.Muted.Render(r.Type) + "\n\n")
	if len(r.Question) == 0 {
		sb.WriteString(theme.Muted.Render("(no question text)") + "\n")
	}
	for _, line := range r.Question {
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n")
	if m.showAnswer {
		sb.WriteString(theme.Answer.Render("answer: "+r.Answer) + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("a: reveal answer") + "\n")
	}
	return sb.String()
}

func (m Model) loadRecordsCmd() tea.Cmd {
	return func() tea.Msg {
		records, err := m.port.ListRecords(context.Background())
		return RecordsLoadedMsg{Records: records, Err: err}
	}
}
