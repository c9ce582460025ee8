package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pukulo/ledgerchat/internal/domain"
	"github.com/pukulo/ledgerchat/internal/extract"
	"github.com/pukulo/ledgerchat/internal/ledger"
	"github.com/pukulo/ledgerchat/internal/logger"
	"github.com/pukulo/ledgerchat/internal/model"
)

// Status tags the outcome of one handled message.
type Status int

const (
	// StatusRecorded: extraction, normalization and append all succeeded.
	StatusRecorded Status = iota
	// StatusRejected: the extracted data failed validation; ledger untouched.
	StatusRejected
	// StatusFailed: the model call, extraction, or persistence failed;
	// ledger untouched.
	StatusFailed
)

// User-facing notices. WarnInvalidAmount covers every validation failure;
// NoticeFailure covers everything upstream or unexpected.
const (
	WarnInvalidAmount = "Please include a valid amount (e.g. '$200' or 'for 300')."
	NoticeFailure     = "Oops! Something went wrong while processing your message."
)

const defaultReply = "Transaction recorded!"

// Result is what the chat surface renders after one user message.
type Result struct {
	Status Status
	// Reply is the assistant message for this turn: a confirmation with
	// the new balance, the amount warning, or the generic failure notice.
	Reply       string
	NewBalance  decimal.Decimal
	Transaction *domain.Transaction
}

// History receives the turns worth keeping. Failures to persist history
// are logged and swallowed: turns are display-only data.
type History interface {
	Append(turn domain.Turn) error
}

// Orchestrator wires the model, the ledger and the session history into
// one message-handling loop.
type Orchestrator struct {
	model   model.Model
	ledger  *ledger.Ledger
	history History
}

// NewOrchestrator creates an orchestrator. history may be nil.
func NewOrchestrator(m model.Model, l *ledger.Ledger, h History) *Orchestrator {
	return &Orchestrator{model: m, ledger: l, history: h}
}

// Ledger exposes the orchestrator's ledger for read-only display.
func (o *Orchestrator) Ledger() *ledger.Ledger {
	return o.ledger
}

// HandleUserMessage runs one utterance through prompt → model → extract →
// normalize → append. Every failure path leaves the ledger untouched and
// maps to a single notice; the session always continues.
func (o *Orchestrator) HandleUserMessage(ctx context.Context, text string) Result {
	log := logger.FromContext(ctx)

	o.recordTurn(ctx, domain.RoleUser, text)

	raw, err := o.model.Generate(ctx, model.BuildPrompt(text))
	if err != nil {
		log.Error().Err(err).Msg("model invocation failed")
		return o.failed()
	}

	payload := extract.FirstObject(raw)
	if payload == nil {
		log.Error().Int("response_len", len(raw)).Msg("no JSON object in model response")
		return o.failed()
	}

	reply := stringField(payload, "reply")
	if reply == "" {
		reply = defaultReply
	}

	tx, err := Normalize(payload, text)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			log.Warn().Str("reason", vErr.Reason).Msg("transaction rejected")
			o.recordTurn(ctx, domain.RoleAssistant, WarnInvalidAmount)
			return Result{Status: StatusRejected, Reply: WarnInvalidAmount}
		}
		log.Error().Err(err).Msg("normalization failed")
		return o.failed()
	}

	recorded, err := o.ledger.Append(tx)
	if err != nil {
		log.Error().Err(err).Msg("ledger append failed")
		return o.failed()
	}

	message := fmt.Sprintf("%s\n\nNew Balance: $%s", reply, recorded.BalanceAfter.StringFixed(2))
	o.recordTurn(ctx, domain.RoleAssistant, message)

	log.Info().
		Str("txn_id", recorded.ID).
		Str("kind", string(recorded.Kind)).
		Str("amount", recorded.Amount.String()).
		Str("balance", recorded.BalanceAfter.String()).
		Msg("transaction recorded")

	return Result{
		Status:      StatusRecorded,
		Reply:       message,
		NewBalance:  recorded.BalanceAfter,
		Transaction: &recorded,
	}
}

// failed is the generic notice; it is shown but not persisted to history.
func (o *Orchestrator) failed() Result {
	return Result{Status: StatusFailed, Reply: NoticeFailure}
}

func (o *Orchestrator) recordTurn(ctx context.Context, role, content string) {
	if o.history == nil {
		return
	}
	turn := domain.Turn{Role: role, Content: content, At: time.Now().UTC()}
	if err := o.history.Append(turn); err != nil {
		log := logger.FromContext(ctx)
		log.Warn().Err(err).Msg("failed to persist chat turn")
	}
}
