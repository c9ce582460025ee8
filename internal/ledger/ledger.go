// Package ledger keeps the append-only transaction log and its running
// balance. One session owns one ledger; there is no concurrent writer.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pukulo/ledgerchat/internal/domain"
)

// Store persists the full row set. Save rewrites the whole table; nothing
// is patched incrementally.
type Store interface {
	Load() ([]domain.Transaction, error)
	Save(rows []domain.Transaction) error
}

// Ledger is the in-memory transaction log plus its backing store.
type Ledger struct {
	store Store
	log   []domain.Transaction

	// seed is the balance carried into a session whose log is empty.
	// A loaded ledger derives its balance from the last row instead.
	seed decimal.Decimal
}

// Open loads all persisted rows into a new ledger.
func Open(store Store) (*Ledger, error) {
	rows, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("ledger: load: %w", err)
	}
	return &Ledger{store: store, log: rows, seed: decimal.Zero}, nil
}

// Append applies t to the running balance, persists the full log, and
// only then commits the new row in memory: the balance never advances
// past durable data. BalanceAfter on the input is ignored.
func (l *Ledger) Append(t domain.Transaction) (domain.Transaction, error) {
	if !t.Amount.IsPositive() {
		return domain.Transaction{}, fmt.Errorf("ledger: amount must be positive, got %s", t.Amount)
	}

	t.BalanceAfter = l.CurrentBalance().Add(t.Signed())
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.RecordedAt.IsZero() {
		t.RecordedAt = time.Now().UTC()
	}

	next := make([]domain.Transaction, len(l.log), len(l.log)+1)
	copy(next, l.log)
	next = append(next, t)

	if err := l.store.Save(next); err != nil {
		return domain.Transaction{}, fmt.Errorf("ledger: persist: %w", err)
	}

	l.log = next
	return t, nil
}

// CurrentBalance is the balance after the last transaction, or the seed
// when the log is empty.
func (l *Ledger) CurrentBalance() decimal.Decimal {
	if len(l.log) == 0 {
		return l.seed
	}
	return l.log[len(l.log)-1].BalanceAfter
}

// Transactions returns a copy of the log in append order.
func (l *Ledger) Transactions() []domain.Transaction {
	out := make([]domain.Transaction, len(l.log))
	copy(out, l.log)
	return out
}

// Len reports how many transactions the ledger holds.
func (l *Ledger) Len() int {
	return len(l.log)
}

// Aggregates computes the derived totals over the current log.
func (l *Ledger) Aggregates() domain.Aggregates {
	return Aggregate(l.log)
}
