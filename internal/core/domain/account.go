package domain

// AccountType defines the category of an account. Liability subtypes (loan,
// debt, mortgage) are distinguished from plain assets because several update
// rules hinge on the asset/liability boundary.
type AccountType string

const (
	Asset          AccountType = "asset"
	Expense        AccountType = "expense"
	Revenue        AccountType = "revenue"
	Loan           AccountType = "loan"
	Debt           AccountType = "debt"
	Mortgage       AccountType = "mortgage"
	Cash           AccountType = "cash"
	InitialBalance AccountType = "initial-balance"
)

// IsLiability reports whether t is one of the liability-class types.
func (t AccountType) IsLiability() bool {
	switch t {
	case Loan, Debt, Mortgage:
		return true
	}
	return false
}

// Account represents a financial account a leg can be bound to.
type Account struct {
	AccountID    string      `json:"accountID"` // Primary Key (UUID)
	UserID       string      `json:"userID"`    // Owning user
	Name         string      `json:"name"`
	AccountType  AccountType `json:"accountType"`
	IBAN         string      `json:"iban"`   // Nullable
	Number       string      `json:"number"` // Nullable
	BIC          string      `json:"bic"`    // Nullable
	CurrencyCode string      `json:"currencyCode"`
	IsActive     bool        `json:"isActive"`
	AuditFields
}

// BetweenAssetAndLiability reports whether one account is liability-class and
// the other is an asset, checked in either direction.
func BetweenAssetAndLiability(a, b *Account) bool {
	if a == nil || b == nil {
		return false
	}
	if a.AccountType.IsLiability() && b.AccountType == Asset {
		return true
	}
	return b.AccountType.IsLiability() && a.AccountType == Asset
}
