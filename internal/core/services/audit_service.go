package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerbook/ledgerbook/internal/core/domain"
	portsrepo "github.com/ledgerbook/ledgerbook/internal/core/ports/repositories"
	portssvc "github.com/ledgerbook/ledgerbook/internal/core/ports/services"
	"github.com/ledgerbook/ledgerbook/internal/middleware"
)

// auditService persists per-field change events and logs each one.
type auditService struct {
	auditRepo portsrepo.AuditEventRepositoryFacade
}

// NewAuditService creates the audit sink collaborator.
func NewAuditService(auditRepo portsrepo.AuditEventRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) RecordChange(ctx context.Context, event domain.AuditEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	middleware.GetLoggerFromCtx(ctx).Info("Journal field changed",
		slog.String("journal_id", event.JournalID),
		slog.String("field", event.Field),
		slog.String("old", event.OldValue),
		slog.String("new", event.NewValue),
		slog.String("actor_id", event.ActorID),
	)
	return s.auditRepo.SaveAuditEvent(ctx, event)
}
