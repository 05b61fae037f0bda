package domain

import (
	"strings"
	"time"
)

// TransactionType classifies a journal. The type constrains which account
// categories may appear on the source and destination legs.
type TransactionType string

const (
	Withdrawal     TransactionType = "withdrawal"
	Deposit        TransactionType = "deposit"
	Transfer       TransactionType = "transfer"
	OpeningBalance TransactionType = "opening balance"
	Reconciliation TransactionType = "reconciliation"
)

// NormalizeTransactionType maps a request token to a known type. The literal
// "opening-balance" token maps to the type's display form.
func NormalizeTransactionType(value string) TransactionType {
	lowered := strings.ToLower(strings.TrimSpace(value))
	if lowered == "opening-balance" {
		return OpeningBalance
	}
	return TransactionType(lowered)
}

// IsKnownTransactionType reports whether t is one of the supported types.
func IsKnownTransactionType(t TransactionType) bool {
	switch t {
	case Withdrawal, Deposit, Transfer, OpeningBalance, Reconciliation:
		return true
	}
	return false
}

// Journal represents a single, balanced financial event composed of exactly
// two transaction legs.
type Journal struct {
	JournalID       string          `json:"journalID"`    // Primary Key (UUID)
	GroupID         *string         `json:"groupID"`      // Nullable FK -> transaction_groups
	UserID          string          `json:"userID"`       // Owning user
	TransactionType TransactionType `json:"type"`         // Constrains leg accounts
	Description     string          `json:"description"`  //
	Date            time.Time       `json:"date"`         // Date the event occurred
	DateTZ          string          `json:"dateTZ"`       // Timezone label the date was recorded in
	Order           int             `json:"order"`        // Ordering index within the group
	CurrencyCode    string          `json:"currencyCode"` // Primary currency of the journal (Not Null)
	BillID          *string         `json:"billID"`       // Nullable FK -> bills
	AuditFields
}

// TransactionGroup is an ordered collection of one or more journals (splits)
// forming one user-facing entry.
type TransactionGroup struct {
	GroupID string `json:"groupID"` // Primary Key (UUID)
	UserID  string `json:"userID"`
	Title   string `json:"title"` // Nullable; meaningful for split groups
	AuditFields
}
