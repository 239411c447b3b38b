package ledger

import (
	"errors"
	"fmt"
	"time"

	"qatmarket/internal/core/domain/model/kernel"
	"qatmarket/internal/pkg/errs"
)

var (
	// ErrEntryIsNotConstructed is returned when an Entry instance was not created
	// through the NewEntry or RestoreEntry factory methods.
	ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

	// ErrZeroDelta is returned when an entry would not change the balance at all.
	ErrZeroDelta = errors.New("ledger entry delta must not be zero")

	// ErrInsufficientBalance is returned when a debit would drive a balance negative.
	// The mutation that produced the debit must be aborted as a whole.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Entry is one immutable ledger record: a single signed balance delta for a
// user, tied to its cause. A user's balance is always the sum of their
// entries; balances are recomputable and never directly overwritten.
//
// Entries are append-only. Reversals are expressed as new compensating
// entries, never by editing or deleting existing ones.
type Entry struct {
	id        kernel.UUID
	userID    kernel.UUID
	delta     float64
	reason    Reason
	orderID   *kernel.UUID
	createdAt time.Time

	isConstructed bool
}

// NewEntry creates a validated ledger entry. Credits carry a positive delta,
// debits a negative one; a zero delta is rejected. The order reference is
// optional and only set for entries caused by an order transition.
func NewEntry(
	id kernel.UUID,
	userID kernel.UUID,
	delta float64,
	reason Reason,
	orderID *kernel.UUID,
	createdAt time.Time,
) (*Entry, error) {
	if err := errors.Join(id.Validate(), userID.Validate(), reason.Validate()); err != nil {
		return nil, err
	}
	if delta == 0 {
		return nil, ErrZeroDelta
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Entry{
		id:            id,
		userID:        userID,
		delta:         delta,
		reason:        reason,
		orderID:       orderID,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreEntry reconstructs an entry from persistence.
func RestoreEntry(
	id kernel.UUID,
	userID kernel.UUID,
	delta float64,
	reason Reason,
	orderID *kernel.UUID,
	createdAt time.Time,
) (*Entry, error) {
	return NewEntry(id, userID, delta, reason, orderID, createdAt)
}

// Validate ensures the Entry instance was properly constructed.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// UserID returns the account the entry belongs to.
func (e *Entry) UserID() kernel.UUID {
	return e.userID
}

// Delta returns the signed balance change.
func (e *Entry) Delta() float64 {
	return e.delta
}

// Reason returns the cause of the balance change.
func (e *Entry) Reason() Reason {
	return e.reason
}

// OrderID returns the order that caused the entry, or nil for wallet
// operations not tied to an order.
func (e *Entry) OrderID() *kernel.UUID {
	return e.orderID
}

// CreatedAt returns when the entry was recorded.
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

// Reason classifies why a balance changed. The reason is part of the audit
// trail: together with the order reference it makes every balance recomputable
// and every reversal attributable.
type Reason int

const (
	// ReasonUnknown represents an invalid or undefined reason.
	ReasonUnknown Reason = iota

	// ReasonPurchase debits the buyer when a balance-paid order is confirmed.
	ReasonPurchase

	// ReasonPurchaseRefund credits the buyer back after a cancellation or refund.
	ReasonPurchaseRefund

	// ReasonSalePayout credits the seller their share when an order is delivered.
	ReasonSalePayout

	// ReasonWashingPayout credits the washing station when a washed order is delivered.
	ReasonWashingPayout

	// ReasonPayoutReversal debits a previously paid-out party when an order is refunded.
	ReasonPayoutReversal

	// ReasonTopUp credits a wallet from an external payment channel.
	ReasonTopUp

	// ReasonWithdrawal debits a wallet for a payout to an external channel.
	ReasonWithdrawal

	// ReasonWithdrawalFee debits the platform's cut of a withdrawal.
	ReasonWithdrawalFee
)

func getReasonStrings() map[Reason]string {
	return map[Reason]string{
		ReasonUnknown:        "unknown",
		ReasonPurchase:       "purchase",
		ReasonPurchaseRefund: "purchase_refund",
		ReasonSalePayout:     "sale_payout",
		ReasonWashingPayout:  "washing_payout",
		ReasonPayoutReversal: "payout_reversal",
		ReasonTopUp:          "topup",
		ReasonWithdrawal:     "withdrawal",
		ReasonWithdrawalFee:  "withdrawal_fee",
	}
}

func getValidReasonStrings() map[Reason]string {
	strings := getReasonStrings()
	delete(strings, ReasonUnknown)
	return strings
}

// ReasonFromString parses a reason from its wire representation.
func ReasonFromString(s string) (Reason, error) {
	for reason, str := range getValidReasonStrings() {
		if str == s {
			return reason, nil
		}
	}
	return ReasonUnknown, errs.NewValueIsInvalidErrorWithCause("reason",
		fmt.Errorf("%q is not a valid ledger reason", s))
}

// Validate checks if the Reason value is valid.
func (r Reason) Validate() error {
	if _, ok := getValidReasonStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("reason",
			fmt.Errorf("%d is not a valid ledger reason", r))
	}
	return nil
}

// String returns the wire name of the reason.
func (r Reason) String() string {
	if str, ok := getReasonStrings()[r]; ok {
		return str
	}
	return "unknown"
}
