package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/pukulo/ledgerchat/internal/domain"
	"github.com/pukulo/ledgerchat/internal/pipeline"
	"github.com/pukulo/ledgerchat/internal/report"
)

const sidebarWidth = 34

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sidebarStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(sidebarWidth)
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	hintStyle      = lipgloss.NewStyle().Faint(true)
)

// resultMsg carries one handled message back into the update loop,
// along with a snapshot of the ledger taken after the message was
// applied. The view renders only the snapshot; it never touches the
// live ledger while a command goroutine may be writing to it.
type resultMsg struct {
	res     pipeline.Result
	balance decimal.Decimal
	agg     domain.Aggregates
}

type chatModel struct {
	ctx  context.Context
	orch *pipeline.Orchestrator

	turns   []domain.Turn
	input   string
	waiting bool
	notice  string

	balance decimal.Decimal
	agg     domain.Aggregates

	width  int
	height int
}

func newChatModel(ctx context.Context, orch *pipeline.Orchestrator, turns []domain.Turn) chatModel {
	led := orch.Ledger()
	return chatModel{
		ctx:     ctx,
		orch:    orch,
		turns:   turns,
		balance: led.CurrentBalance(),
		agg:     led.Aggregates(),
	}
}

func (m chatModel) Init() tea.Cmd {
	return nil
}

// sendCmd runs the blocking model call off the update loop. Input stays
// disabled until the result message lands, so exactly one message is in
// flight at a time.
func sendCmd(ctx context.Context, orch *pipeline.Orchestrator, text string) tea.Cmd {
	return func() tea.Msg {
		handleCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()
		res := orch.HandleUserMessage(handleCtx, text)
		led := orch.Ledger()
		return resultMsg{res: res, balance: led.CurrentBalance(), agg: led.Aggregates()}
	}
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case resultMsg:
		m.waiting = false
		m.balance = msg.balance
		m.agg = msg.agg
		switch msg.res.Status {
		case pipeline.StatusFailed:
			// shown like the original's toast, never part of the history
			m.notice = msg.res.Reply
		default:
			m.turns = append(m.turns, domain.Turn{Role: domain.RoleAssistant, Content: msg.res.Reply, At: time.Now()})
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input)
			if m.waiting || text == "" {
				return m, nil
			}
			m.input = ""
			m.notice = ""
			m.waiting = true
			m.turns = append(m.turns, domain.Turn{Role: domain.RoleUser, Content: text, At: time.Now()})
			return m, sendCmd(m.ctx, m.orch, text)
		case tea.KeyBackspace:
			if !m.waiting && m.input != "" {
				runes := []rune(m.input)
				m.input = string(runes[:len(runes)-1])
			}
			return m, nil
		case tea.KeySpace:
			if !m.waiting {
				m.input += " "
			}
			return m, nil
		case tea.KeyRunes:
			if !m.waiting {
				m.input += string(msg.Runes)
			}
			return m, nil
		}
	}
	return m, nil
}

func (m chatModel) View() string {
	if m.width == 0 {
		return "loading..."
	}

	chatWidth := m.width - sidebarWidth - 4
	if chatWidth < 20 {
		chatWidth = 20
	}

	sidebar := sidebarStyle.Render(m.sidebarView())
	chat := lipgloss.NewStyle().Width(chatWidth).Padding(0, 1).Render(m.chatView())

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, chat)
}

func (m chatModel) sidebarView() string {
	agg := m.agg

	var b strings.Builder
	b.WriteString(titleStyle.Render("AI Expense Tracker"))
	b.WriteString("\n\n")
	b.WriteString(report.Summary(m.balance, agg))

	if len(agg.ExpenseByCategory) > 0 {
		b.WriteString("\nExpenses by Category\n")
		b.WriteString(report.ExpenseBreakdown(agg))
	}

	if n := len(agg.BalanceSeries); n > 0 {
		b.WriteString("\nBalance Over Time\n")
		start := 0
		if n > 8 {
			start = n - 8
		}
		for _, p := range agg.BalanceSeries[start:] {
			fmt.Fprintf(&b, "#%-3d %-7s %10s\n", p.Index+1, p.Kind, "$"+p.Balance.StringFixed(2))
		}
	}

	return b.String()
}

func (m chatModel) chatView() string {
	var b strings.Builder

	visible := m.turns
	maxTurns := m.height - 6
	if maxTurns > 0 && len(visible) > maxTurns {
		visible = visible[len(visible)-maxTurns:]
	}

	for _, turn := range visible {
		switch turn.Role {
		case domain.RoleUser:
			b.WriteString(userStyle.Render("you ") + turn.Content)
		default:
			b.WriteString(assistantStyle.Render("ai  ") + strings.ReplaceAll(turn.Content, "\n\n", " | "))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	if m.waiting {
		b.WriteString(hintStyle.Render("analyzing your transaction..."))
	} else {
		b.WriteString("> " + m.input + "█")
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("type something like 'I bought snacks for $80' (esc to quit)"))

	return b.String()
}
