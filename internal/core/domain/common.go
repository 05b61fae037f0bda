package domain

import (
	"errors"
	"time"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// Structural violations of the two-leg journal invariant.
var (
	ErrLegCount = errors.New("journal does not have exactly two legs")
	ErrLegSigns = errors.New("journal legs are not one negative and one positive")
)
