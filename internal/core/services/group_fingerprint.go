package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ledgerbook/ledgerbook/internal/core/domain"
)

// GroupFingerprint derives a deterministic digest of a group's observable
// content: types, accounts, amounts, dates and descriptions of every journal
// in the group. Equal fingerprints mean the update changed nothing a user
// could observe. The digest is purely content-derived; a journal without a
// group is fingerprinted over its own single line.
func GroupFingerprint(lines []domain.SnapshotLine) string {
	sorted := make([]domain.SnapshotLine, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Order != sorted[j].Order {
			return sorted[i].Order < sorted[j].Order
		}
		return sorted[i].JournalID < sorted[j].JournalID
	})

	var b strings.Builder
	for _, line := range sorted {
		fmt.Fprintf(&b, "%s|%s|%s|%s|%d|%s|%s|%s|%s|%s|%s|%s|%s|%s|%s\n",
			line.JournalID,
			line.TransactionType,
			line.Description,
			line.Date.UTC().Format(time.RFC3339),
			line.Order,
			line.CurrencyCode,
			line.SourceAccountID,
			line.DestinationAccountID,
			line.SourceAmount.String(),
			line.DestinationAmount.String(),
			line.DestinationCurrencyCode,
			line.SourceForeignCurrencyCode,
			line.SourceForeignAmount,
			line.DestinationForeignCurrencyCode,
			line.DestinationForeignAmount,
		)
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
