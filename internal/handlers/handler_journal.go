package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerbook/ledgerbook/internal/apperrors"
	portssvc "github.com/ledgerbook/ledgerbook/internal/core/ports/services"
	"github.com/ledgerbook/ledgerbook/internal/core/services"
	"github.com/ledgerbook/ledgerbook/internal/dto"
	"github.com/ledgerbook/ledgerbook/internal/middleware"
)

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService portssvc.JournalUpdaterSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalUpdaterSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// updateJournal applies a sparse partial update to a journal and its two
// legs. Only keys present in the body are touched.
func (h *journalHandler) updateJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	journalID := c.Param("journalID")
	if journalID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Journal ID is required"})
		return
	}

	updateReq := dto.UpdateJournalRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for UpdateJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("journal_id", journalID), slog.String("actor_id", actorID))

	result, err := h.journalService.UpdateJournal(c.Request.Context(), journalID, updateReq, actorID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrJournalNotFound) || errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Journal not found for update")
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating journal", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrCorruptedLedger):
			logger.Error("Journal legs are corrupted", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Journal is in an inconsistent state"})
		default:
			logger.Error("Failed to update journal in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update journal"})
		}
		return
	}

	logger.Info("Journal updated", slog.Bool("changed", result.Changed), slog.Int("issues", len(result.Issues)))
	c.JSON(http.StatusOK, result)
}

// registerJournalRoutes wires journal endpoints into the v1 group.
func registerJournalRoutes(v1 *gin.RouterGroup, journalService portssvc.JournalUpdaterSvcFacade) {
	handler := newJournalHandler(journalService)

	journals := v1.Group("/journals")
	{
		journals.PUT("/:journalID", handler.updateJournal)
	}
}
