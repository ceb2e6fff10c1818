// Package settlement is the in-process payment port for submission fees.
//
// In open mode every transfer succeeds and is journaled. In metered mode each
// principal holds a balance (credited with the opening balance on first
// sight) and a transfer fails when the payer cannot cover it or pays itself.
package settlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/chiboi241-boop/EduScience/pkg/domain"
	"github.com/chiboi241-boop/EduScience/pkg/requestcontext"
)

// Mode selects how strictly transfers are checked.
type Mode string

const (
	ModeOpen    Mode = "open"
	ModeMetered Mode = "metered"
)

var (
	ErrInvalidAmount     = errors.New("transfer amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSelfTransfer      = errors.New("sender and recipient are the same principal")
)

// Transfer is one journaled payment.
type Transfer struct {
	Amount    int64            `json:"amount"`
	From      domain.Principal `json:"from"`
	To        domain.Principal `json:"to"`
	Height    domain.Height    `json:"height"`
	RequestID string           `json:"request_id,omitempty"`
}

type Ledger struct {
	mode    Mode
	opening int64
	logger  *slog.Logger

	mu       sync.Mutex
	balances map[domain.Principal]int64
	journal  []Transfer
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithOpeningBalance credits every principal with amount the first time the
// ledger sees it. Only meaningful in metered mode.
func WithOpeningBalance(amount int64) Option {
	return func(l *Ledger) {
		l.opening = amount
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

func New(mode Mode, opts ...Option) *Ledger {
	l := &Ledger{
		mode:     mode,
		logger:   slog.Default(),
		balances: make(map[domain.Principal]int64),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Transfer moves amount from one principal to another.
func (l *Ledger) Transfer(ctx context.Context, amount int64, from, to domain.Principal) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.mode == ModeMetered {
		if from == to {
			return ErrSelfTransfer
		}
		if bal := l.balanceLocked(from); bal < amount {
			return fmt.Errorf("%w: %s holds %d, needs %d", ErrInsufficientFunds, from, bal, amount)
		}
		l.balances[from] = l.balanceLocked(from) - amount
		l.balances[to] = l.balanceLocked(to) + amount
	}

	l.journal = append(l.journal, Transfer{
		Amount:    amount,
		From:      from,
		To:        to,
		Height:    requestcontext.Height(ctx),
		RequestID: requestcontext.RequestID(ctx),
	})
	l.logger.DebugContext(ctx, "fee transferred",
		"amount", amount,
		"from", from,
		"to", to,
		"mode", l.mode,
	)
	return nil
}

// Credit adds amount to p's balance. Besides the opening balance it is the
// only way to fund a principal.
func (l *Ledger) Credit(ctx context.Context, p domain.Principal, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[p] = l.balanceLocked(p) + amount
	l.logger.InfoContext(ctx, "balance credited", "principal", p, "amount", amount)
	return nil
}

// Balance returns p's current balance, including the opening credit.
func (l *Ledger) Balance(p domain.Principal) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balanceLocked(p)
}

// Journal returns a copy of every successful transfer in order.
func (l *Ledger) Journal() []Transfer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Transfer(nil), l.journal...)
}

func (l *Ledger) balanceLocked(p domain.Principal) int64 {
	bal, ok := l.balances[p]
	if !ok {
		bal = l.opening
		l.balances[p] = bal
	}
	return bal
}
