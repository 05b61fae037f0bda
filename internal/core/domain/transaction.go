package domain

import "github.com/shopspring/decimal"

// TransactionLeg is one signed ledger line of a journal, bound to one account.
// The source leg carries the negative amount, the destination leg the positive
// one; both share the journal's primary currency.
type TransactionLeg struct {
	LegID                string           `json:"legID"`     // Primary Key (UUID)
	JournalID            string           `json:"journalID"` // FK -> journals (Not Null)
	AccountID            string           `json:"accountID"` // FK -> accounts (Not Null)
	Amount               decimal.Decimal  `json:"amount"`    // Signed; negative = source
	CurrencyCode         string           `json:"currencyCode"`
	ForeignCurrencyCode  *string          `json:"foreignCurrencyCode"` // Nullable; must differ from CurrencyCode
	ForeignAmount        *decimal.Decimal `json:"foreignAmount"`       // Nullable; signed like Amount
	Reconciled           bool             `json:"reconciled"`
	BalanceDirty         bool             `json:"balanceDirty"` // Downstream balance caches must recompute
	AuditFields
}

// IsSource reports whether the leg is the journal's source (negative) leg.
func (l TransactionLeg) IsSource() bool {
	return l.Amount.IsNegative()
}

// LegPair is the structural two-leg invariant of a journal: exactly one
// source and one destination leg. Building one from anything else is a
// corrupted-ledger condition.
type LegPair struct {
	Source      TransactionLeg
	Destination TransactionLeg
}

// NewLegPair classifies legs by sign. It fails unless there is exactly one
// negative and one positive leg.
func NewLegPair(legs []TransactionLeg) (*LegPair, error) {
	if len(legs) != 2 {
		return nil, ErrLegCount
	}
	switch {
	case legs[0].IsSource() && !legs[1].IsSource():
		return &LegPair{Source: legs[0], Destination: legs[1]}, nil
	case legs[1].IsSource() && !legs[0].IsSource():
		return &LegPair{Source: legs[1], Destination: legs[0]}, nil
	}
	return nil, ErrLegSigns
}
