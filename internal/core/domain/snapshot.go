package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SnapshotLine is one journal's observable content as used by the
// change-detection guard: everything a user could notice moving. A group
// snapshot is the ordered set of lines for every journal in the group.
type SnapshotLine struct {
	JournalID                      string
	TransactionType                TransactionType
	Description                    string
	Date                           time.Time
	Order                          int
	CurrencyCode                   string
	SourceAccountID                string
	DestinationAccountID           string
	SourceAmount                   decimal.Decimal
	DestinationAmount              decimal.Decimal
	DestinationCurrencyCode        string
	SourceForeignCurrencyCode      string
	SourceForeignAmount            string
	DestinationForeignCurrencyCode string
	DestinationForeignAmount       string
}
