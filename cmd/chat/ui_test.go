package main

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/pukulo/ledgerchat/internal/domain"
	"github.com/pukulo/ledgerchat/internal/ledger"
	"github.com/pukulo/ledgerchat/internal/pipeline"
)

type fakeModel struct {
	response string
}

func (f *fakeModel) Generate(ctx context.Context, prompt string) (string, error) {
	return f.response, nil
}

type memStore struct {
	rows []domain.Transaction
}

func (s *memStore) Load() ([]domain.Transaction, error) { return s.rows, nil }

func (s *memStore) Save(rows []domain.Transaction) error {
	s.rows = rows
	return nil
}

func TestUpdate_RecordedResultAppendsAssistantTurn(t *testing.T) {
	m := chatModel{waiting: true}

	updated, _ := m.Update(resultMsg{res: pipeline.Result{
		Status: pipeline.StatusRecorded,
		Reply:  "Got it!\n\nNew Balance: $20.00",
	}})
	got := updated.(chatModel)

	if got.waiting {
		t.Error("waiting should clear once the result lands")
	}
	if len(got.turns) != 1 || got.turns[0].Role != domain.RoleAssistant {
		t.Fatalf("turns = %+v, want one assistant turn", got.turns)
	}
}

func TestUpdate_FailedResultShowsNoticeOnly(t *testing.T) {
	m := chatModel{waiting: true}

	updated, _ := m.Update(resultMsg{res: pipeline.Result{
		Status: pipeline.StatusFailed,
		Reply:  pipeline.NoticeFailure,
	}})
	got := updated.(chatModel)

	if got.notice != pipeline.NoticeFailure {
		t.Errorf("notice = %q, want the failure notice", got.notice)
	}
	if len(got.turns) != 0 {
		t.Errorf("turns = %+v, failure notices must not enter the history", got.turns)
	}
}

func TestUpdate_ResultRefreshesSidebarSnapshot(t *testing.T) {
	m := chatModel{waiting: true}

	updated, _ := m.Update(resultMsg{
		res:     pipeline.Result{Status: pipeline.StatusRecorded, Reply: "Got it!"},
		balance: decimal.RequireFromString("-80"),
		agg:     domain.Aggregates{TotalExpense: decimal.RequireFromString("80")},
	})
	got := updated.(chatModel)

	sidebar := got.sidebarView()
	if !strings.Contains(sidebar, "Current Balance: $-80.00") {
		t.Errorf("sidebar = %q, want the carried balance", sidebar)
	}
	if !strings.Contains(sidebar, "Total Expenses:  $80.00") {
		t.Errorf("sidebar = %q, want the carried expense total", sidebar)
	}
}

// The send command appends to the ledger off the update loop while the
// terminal keeps rendering. The view must only ever see the snapshot
// carried back by resultMsg, so rendering mid-append is safe.
func TestViewWhileMessageInFlight(t *testing.T) {
	st := &memStore{}
	led, err := ledger.Open(st)
	if err != nil {
		t.Fatal(err)
	}
	fm := &fakeModel{response: `{"data":{"type":"expense","amount":80,"category":"snacks","description":"snacks"},"reply":"Got it!"}`}
	orch := pipeline.NewOrchestrator(fm, led, nil)

	m := newChatModel(context.Background(), orch, nil)
	m.width = 80
	m.height = 24
	m.waiting = true

	cmd := sendCmd(context.Background(), orch, "I bought snacks for $80")
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	for msg == nil {
		_ = m.View()
		select {
		case msg = <-done:
		default:
		}
	}

	updated, _ := m.Update(msg)
	got := updated.(chatModel)
	if !got.balance.Equal(decimal.RequireFromString("-80")) {
		t.Errorf("balance = %s, want -80 after the recorded expense", got.balance)
	}
	if !strings.Contains(got.View(), "Current Balance: $-80.00") {
		t.Error("sidebar should show the post-append balance")
	}
}

func TestUpdate_EnterIgnoresEmptyInput(t *testing.T) {
	m := chatModel{}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := updated.(chatModel)

	if cmd != nil || got.waiting || len(got.turns) != 0 {
		t.Error("enter with empty input must be a no-op")
	}
}

func TestUpdate_TypingWhileWaitingIsIgnored(t *testing.T) {
	m := chatModel{waiting: true}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")})
	got := updated.(chatModel)

	if got.input != "" {
		t.Errorf("input = %q, want empty while a message is in flight", got.input)
	}
}
