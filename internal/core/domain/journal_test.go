package domain_test

import (
	"testing"

	"github.com/ledgerbook/ledgerbook/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leg(id, amount string) domain.TransactionLeg {
	return domain.TransactionLeg{LegID: id, Amount: decimal.RequireFromString(amount)}
}

func TestNewLegPairClassifiesBySign(t *testing.T) {
	pair, err := domain.NewLegPair([]domain.TransactionLeg{leg("a", "-10"), leg("b", "10")})
	require.NoError(t, err)
	assert.Equal(t, "a", pair.Source.LegID)
	assert.Equal(t, "b", pair.Destination.LegID)

	// Order of the input slice must not matter.
	pair, err = domain.NewLegPair([]domain.TransactionLeg{leg("b", "10"), leg("a", "-10")})
	require.NoError(t, err)
	assert.Equal(t, "a", pair.Source.LegID)
}

func TestNewLegPairRejectsWrongCount(t *testing.T) {
	_, err := domain.NewLegPair([]domain.TransactionLeg{leg("a", "-10")})
	assert.ErrorIs(t, err, domain.ErrLegCount)

	_, err = domain.NewLegPair([]domain.TransactionLeg{leg("a", "-10"), leg("b", "10"), leg("c", "5")})
	assert.ErrorIs(t, err, domain.ErrLegCount)
}

func TestNewLegPairRejectsSameSign(t *testing.T) {
	_, err := domain.NewLegPair([]domain.TransactionLeg{leg("a", "10"), leg("b", "10")})
	assert.ErrorIs(t, err, domain.ErrLegSigns)

	_, err = domain.NewLegPair([]domain.TransactionLeg{leg("a", "-10"), leg("b", "-10")})
	assert.ErrorIs(t, err, domain.ErrLegSigns)
}

func TestNormalizeTransactionType(t *testing.T) {
	assert.Equal(t, domain.Withdrawal, domain.NormalizeTransactionType("Withdrawal"))
	assert.Equal(t, domain.OpeningBalance, domain.NormalizeTransactionType("opening-balance"))
	assert.Equal(t, domain.OpeningBalance, domain.NormalizeTransactionType("opening balance"))
	assert.Equal(t, domain.TransactionType("bogus"), domain.NormalizeTransactionType(" Bogus "))

	assert.True(t, domain.IsKnownTransactionType(domain.Transfer))
	assert.False(t, domain.IsKnownTransactionType(domain.TransactionType("bogus")))
}

func TestBetweenAssetAndLiability(t *testing.T) {
	asset := &domain.Account{AccountType: domain.Asset}
	loan := &domain.Account{AccountType: domain.Loan}
	expense := &domain.Account{AccountType: domain.Expense}

	assert.True(t, domain.BetweenAssetAndLiability(asset, loan))
	assert.True(t, domain.BetweenAssetAndLiability(loan, asset))
	assert.False(t, domain.BetweenAssetAndLiability(asset, expense))
	assert.False(t, domain.BetweenAssetAndLiability(loan, loan))
	assert.False(t, domain.BetweenAssetAndLiability(nil, asset))
}

func TestAccountTypeIsLiability(t *testing.T) {
	assert.True(t, domain.Loan.IsLiability())
	assert.True(t, domain.Debt.IsLiability())
	assert.True(t, domain.Mortgage.IsLiability())
	assert.False(t, domain.Asset.IsLiability())
	assert.False(t, domain.Cash.IsLiability())
}
