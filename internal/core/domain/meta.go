package domain

import "time"

// Recognized journal metadata keys. Each key is updated independently; string
// keys hold free-form values, date keys hold a calendar instant plus a
// companion "<name>_tz" entry carrying the resolved timezone label.
var (
	MetaStringFields = []string{
		"internal_reference",
		"sepa_cc",
		"sepa_ct_op",
		"sepa_ct_id",
		"sepa_db",
		"sepa_country",
		"sepa_ep",
		"sepa_ci",
		"sepa_batch_id",
		"external_id",
		"external_url",
	}

	MetaDateFields = []string{
		"interest_date",
		"book_date",
		"process_date",
		"due_date",
		"payment_date",
		"invoice_date",
	}
)

// JournalMeta is one free-form attribute attached 1:1 per (journal, key).
type JournalMeta struct {
	JournalID string     `json:"journalID"`
	Name      string     `json:"name"`
	Value     string     `json:"value"` // String form; date entries also fill Date
	Date      *time.Time `json:"date"`
	AuditFields
}

// Note is the free-form note attached to a journal, at most one per journal.
type Note struct {
	JournalID string `json:"journalID"`
	Text      string `json:"text"`
	AuditFields
}

// Category classifies a journal; resolved or created on demand by name.
type Category struct {
	CategoryID string `json:"categoryID"` // Primary Key (UUID)
	UserID     string `json:"userID"`
	Name       string `json:"name"`
	AuditFields
}

// Budget is a spending envelope a withdrawal can be booked against.
// Transfers must never carry a budget.
type Budget struct {
	BudgetID string `json:"budgetID"` // Primary Key (UUID)
	UserID   string `json:"userID"`
	Name     string `json:"name"`
	AuditFields
}

// Tag is a free-form label attached to journals.
type Tag struct {
	TagID  string `json:"tagID"` // Primary Key (UUID)
	UserID string `json:"userID"`
	Name   string `json:"name"`
	AuditFields
}

// Bill is a recurring expense a withdrawal can be linked to.
type Bill struct {
	BillID string `json:"billID"` // Primary Key (UUID)
	UserID string `json:"userID"`
	Name   string `json:"name"`
	AuditFields
}
