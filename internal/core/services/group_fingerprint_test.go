package services_test

import (
	"testing"
	"time"

	"github.com/ledgerbook/ledgerbook/internal/core/domain"
	"github.com/ledgerbook/ledgerbook/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func snapshotLine(journalID string, order int, amount string) domain.SnapshotLine {
	value := decimal.RequireFromString(amount)
	return domain.SnapshotLine{
		JournalID:               journalID,
		TransactionType:         domain.Withdrawal,
		Description:             "Groceries",
		Date:                    time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Order:                   order,
		CurrencyCode:            "EUR",
		SourceAccountID:         "acct-src",
		DestinationAccountID:    "acct-dst",
		SourceAmount:            value.Neg(),
		DestinationAmount:       value,
		DestinationCurrencyCode: "EUR",
	}
}

func TestGroupFingerprintDeterministic(t *testing.T) {
	lines := []domain.SnapshotLine{snapshotLine("j-1", 0, "100"), snapshotLine("j-2", 1, "25")}

	first := services.GroupFingerprint(lines)
	second := services.GroupFingerprint(lines)
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestGroupFingerprintOrderIndependentInput(t *testing.T) {
	a := snapshotLine("j-1", 0, "100")
	b := snapshotLine("j-2", 1, "25")

	forward := services.GroupFingerprint([]domain.SnapshotLine{a, b})
	backward := services.GroupFingerprint([]domain.SnapshotLine{b, a})
	assert.Equal(t, forward, backward)
}

func TestGroupFingerprintSensitiveToContent(t *testing.T) {
	base := []domain.SnapshotLine{snapshotLine("j-1", 0, "100")}
	assert.NotEqual(t, services.GroupFingerprint(base), services.GroupFingerprint([]domain.SnapshotLine{snapshotLine("j-1", 0, "100.01")}))

	renamed := snapshotLine("j-1", 0, "100")
	renamed.Description = "Rent"
	assert.NotEqual(t, services.GroupFingerprint(base), services.GroupFingerprint([]domain.SnapshotLine{renamed}))

	moved := snapshotLine("j-1", 0, "100")
	moved.DestinationAccountID = "acct-other"
	assert.NotEqual(t, services.GroupFingerprint(base), services.GroupFingerprint([]domain.SnapshotLine{moved}))
}

func TestGroupFingerprintSensitiveToDestinationCurrencyFields(t *testing.T) {
	base := []domain.SnapshotLine{snapshotLine("j-1", 0, "100")}

	recoded := snapshotLine("j-1", 0, "100")
	recoded.DestinationCurrencyCode = "USD"
	assert.NotEqual(t, services.GroupFingerprint(base), services.GroupFingerprint([]domain.SnapshotLine{recoded}))

	foreign := snapshotLine("j-1", 0, "100")
	foreign.DestinationForeignCurrencyCode = "USD"
	foreign.DestinationForeignAmount = "110"
	assert.NotEqual(t, services.GroupFingerprint(base), services.GroupFingerprint([]domain.SnapshotLine{foreign}))

	srcForeign := snapshotLine("j-1", 0, "100")
	srcForeign.SourceForeignCurrencyCode = "USD"
	srcForeign.SourceForeignAmount = "110"
	assert.NotEqual(t, services.GroupFingerprint([]domain.SnapshotLine{foreign}), services.GroupFingerprint([]domain.SnapshotLine{srcForeign}))
}

func TestGroupFingerprintEmptyGroup(t *testing.T) {
	assert.Equal(t, services.GroupFingerprint(nil), services.GroupFingerprint([]domain.SnapshotLine{}))
}
