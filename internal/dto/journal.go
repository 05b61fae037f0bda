package dto

import (
	"time"

	"github.com/ledgerbook/ledgerbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateJournalRequest is the sparse update map. A nil field means "leave
// unchanged"; every step of the update engine is gated on field presence.
// For scalar fields an empty string also means "leave unchanged"; notes and
// metadata treat the empty string as an explicit clear.
type UpdateJournalRequest struct {
	Type *string `json:"type" binding:"omitempty,max=30"`

	SourceID     *string `json:"source_id"`
	SourceName   *string `json:"source_name"`
	SourceIBAN   *string `json:"source_iban"`
	SourceNumber *string `json:"source_number"`
	SourceBIC    *string `json:"source_bic"`

	DestinationID     *string `json:"destination_id"`
	DestinationName   *string `json:"destination_name"`
	DestinationIBAN   *string `json:"destination_iban"`
	DestinationNumber *string `json:"destination_number"`
	DestinationBIC    *string `json:"destination_bic"`

	Description *string `json:"description" binding:"omitempty,max=1024"`
	Date        *string `json:"date"`
	Order       *int    `json:"order"`

	BillID   *string `json:"bill_id"`
	BillName *string `json:"bill_name"`

	CategoryID   *string `json:"category_id"`
	CategoryName *string `json:"category_name"`

	BudgetID   *string `json:"budget_id"`
	BudgetName *string `json:"budget_name"`

	Tags       *[]string `json:"tags"`
	Reconciled *bool     `json:"reconciled"`
	Notes      *string   `json:"notes"`

	InternalReference *string `json:"internal_reference"`
	SepaCC            *string `json:"sepa_cc"`
	SepaCtOp          *string `json:"sepa_ct_op"`
	SepaCtID          *string `json:"sepa_ct_id"`
	SepaDB            *string `json:"sepa_db"`
	SepaCountry       *string `json:"sepa_country"`
	SepaEP            *string `json:"sepa_ep"`
	SepaCI            *string `json:"sepa_ci"`
	SepaBatchID       *string `json:"sepa_batch_id"`
	ExternalID        *string `json:"external_id"`
	ExternalURL       *string `json:"external_url"`

	InterestDate *string `json:"interest_date"`
	BookDate     *string `json:"book_date"`
	ProcessDate  *string `json:"process_date"`
	DueDate      *string `json:"due_date"`
	PaymentDate  *string `json:"payment_date"`
	InvoiceDate  *string `json:"invoice_date"`

	CurrencyID   *string `json:"currency_id"`
	CurrencyCode *string `json:"currency_code"`

	Amount              *string `json:"amount"`
	ForeignCurrencyID   *string `json:"foreign_currency_id"`
	ForeignCurrencyCode *string `json:"foreign_currency_code"`
	ForeignAmount       *string `json:"foreign_amount"`
}

// AccountRef carries the identifying info for one account candidate.
type AccountRef struct {
	ID     *string
	Name   *string
	IBAN   *string
	Number *string
	BIC    *string
}

// IsEmpty reports whether the reference carries no identifying info at all.
func (r AccountRef) IsEmpty() bool {
	return r.ID == nil && r.Name == nil && r.IBAN == nil && r.Number == nil && r.BIC == nil
}

// HasSourceInfo reports whether the request names a source account.
func (r *UpdateJournalRequest) HasSourceInfo() bool {
	return r.SourceID != nil || r.SourceName != nil
}

// HasDestinationInfo reports whether the request names a destination account.
func (r *UpdateJournalRequest) HasDestinationInfo() bool {
	return r.DestinationID != nil || r.DestinationName != nil
}

// SourceRef assembles the source account candidate from the request.
func (r *UpdateJournalRequest) SourceRef() AccountRef {
	return AccountRef{ID: r.SourceID, Name: r.SourceName, IBAN: r.SourceIBAN, Number: r.SourceNumber, BIC: r.SourceBIC}
}

// DestinationRef assembles the destination account candidate from the request.
func (r *UpdateJournalRequest) DestinationRef() AccountRef {
	return AccountRef{ID: r.DestinationID, Name: r.DestinationName, IBAN: r.DestinationIBAN, Number: r.DestinationNumber, BIC: r.DestinationBIC}
}

// MetaString returns the request value for a recognized string metadata key.
func (r *UpdateJournalRequest) MetaString(name string) *string {
	switch name {
	case "internal_reference":
		return r.InternalReference
	case "sepa_cc":
		return r.SepaCC
	case "sepa_ct_op":
		return r.SepaCtOp
	case "sepa_ct_id":
		return r.SepaCtID
	case "sepa_db":
		return r.SepaDB
	case "sepa_country":
		return r.SepaCountry
	case "sepa_ep":
		return r.SepaEP
	case "sepa_ci":
		return r.SepaCI
	case "sepa_batch_id":
		return r.SepaBatchID
	case "external_id":
		return r.ExternalID
	case "external_url":
		return r.ExternalURL
	}
	return nil
}

// MetaDate returns the request value for a recognized date metadata key.
func (r *UpdateJournalRequest) MetaDate(name string) *string {
	switch name {
	case "interest_date":
		return r.InterestDate
	case "book_date":
		return r.BookDate
	case "process_date":
		return r.ProcessDate
	case "due_date":
		return r.DueDate
	case "payment_date":
		return r.PaymentDate
	case "invoice_date":
		return r.InvoiceDate
	}
	return nil
}

// FieldIssue reports one sub-update that was skipped or failed validation.
// The update as a whole still succeeds; callers inspect these to learn what
// did not apply.
type FieldIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// LegResponse defines the data returned for one transaction leg.
type LegResponse struct {
	LegID               string           `json:"legID"`
	AccountID           string           `json:"accountID"`
	Amount              decimal.Decimal  `json:"amount"`
	CurrencyCode        string           `json:"currencyCode"`
	ForeignCurrencyCode *string          `json:"foreignCurrencyCode,omitempty"`
	ForeignAmount       *decimal.Decimal `json:"foreignAmount,omitempty"`
	Reconciled          bool             `json:"reconciled"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID    string    `json:"journalID"`
	Type         string    `json:"type"`
	Description  string    `json:"description"`
	Date         time.Time `json:"date"`
	DateTZ       string    `json:"dateTZ"`
	Order        int       `json:"order"`
	CurrencyCode string    `json:"currencyCode"`
	BillID       *string   `json:"billID,omitempty"`
}

// UpdateJournalResult is the outcome of one update call: the final persisted
// state, whether anything observable changed, and the per-field issues.
type UpdateJournalResult struct {
	Journal     JournalResponse `json:"journal"`
	Source      LegResponse     `json:"source"`
	Destination LegResponse     `json:"destination"`
	Changed     bool            `json:"changed"`
	Issues      []FieldIssue    `json:"issues,omitempty"`
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID:    j.JournalID,
		Type:         string(j.TransactionType),
		Description:  j.Description,
		Date:         j.Date,
		DateTZ:       j.DateTZ,
		Order:        j.Order,
		CurrencyCode: j.CurrencyCode,
		BillID:       j.BillID,
	}
}

// ToLegResponse converts a domain.TransactionLeg to LegResponse DTO.
func ToLegResponse(l *domain.TransactionLeg) LegResponse {
	return LegResponse{
		LegID:               l.LegID,
		AccountID:           l.AccountID,
		Amount:              l.Amount,
		CurrencyCode:        l.CurrencyCode,
		ForeignCurrencyCode: l.ForeignCurrencyCode,
		ForeignAmount:       l.ForeignAmount,
		Reconciled:          l.Reconciled,
	}
}
