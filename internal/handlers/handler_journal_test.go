package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ledgerbook/ledgerbook/internal/apperrors"
	portssvc "github.com/ledgerbook/ledgerbook/internal/core/ports/services"
	"github.com/ledgerbook/ledgerbook/internal/core/services"
	"github.com/ledgerbook/ledgerbook/internal/dto"
	"github.com/ledgerbook/ledgerbook/internal/handlers"
	"github.com/ledgerbook/ledgerbook/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalUpdater ---
type MockJournalUpdater struct {
	mock.Mock
}

func (m *MockJournalUpdater) UpdateJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest, actorID string) (*dto.UpdateJournalResult, error) {
	args := m.Called(ctx, journalID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UpdateJournalResult), args.Error(1)
}

var _ portssvc.JournalUpdaterSvcFacade = (*MockJournalUpdater)(nil)

type JournalHandlerTestSuite struct {
	suite.Suite

	router  *gin.Engine
	updater *MockJournalUpdater
}

func (s *JournalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.updater = new(MockJournalUpdater)
	cfg := &config.Config{Port: "8080"}
	container := &portssvc.ServiceContainer{Journal: s.updater}

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, cfg, container)
}

func (s *JournalHandlerTestSuite) performUpdate(journalID string, body any, actorID string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(s.T(), err)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/journals/"+journalID, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if actorID != "" {
		req.Header.Set("X-Actor-ID", actorID)
	}

	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)
	return recorder
}

func (s *JournalHandlerTestSuite) TestHealthRoute() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)

	s.Equal(http.StatusOK, recorder.Code)
	s.Equal("OK", recorder.Body.String())
}

func (s *JournalHandlerTestSuite) TestUpdateJournalSuccess() {
	result := &dto.UpdateJournalResult{
		Journal: dto.JournalResponse{JournalID: "j-1", Type: "withdrawal", Description: "Groceries", CurrencyCode: "EUR"},
		Source:  dto.LegResponse{LegID: "leg-src", Amount: decimal.RequireFromString("-80")},
		Changed: true,
	}
	s.updater.On("UpdateJournal", mock.Anything, "j-1", mock.Anything, "user-1").Return(result, nil)

	recorder := s.performUpdate("j-1", gin.H{"amount": "80"}, "user-1")

	s.Equal(http.StatusOK, recorder.Code)
	var response dto.UpdateJournalResult
	require.NoError(s.T(), json.Unmarshal(recorder.Body.Bytes(), &response))
	s.True(response.Changed)
	s.Equal("j-1", response.Journal.JournalID)
	s.updater.AssertExpectations(s.T())
}

func (s *JournalHandlerTestSuite) TestUpdateJournalMissingActor() {
	recorder := s.performUpdate("j-1", gin.H{"amount": "80"}, "")

	s.Equal(http.StatusUnauthorized, recorder.Code)
	s.updater.AssertNotCalled(s.T(), "UpdateJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalHandlerTestSuite) TestUpdateJournalNotFound() {
	s.updater.On("UpdateJournal", mock.Anything, "missing", mock.Anything, "user-1").Return(nil, services.ErrJournalNotFound)

	recorder := s.performUpdate("missing", gin.H{"amount": "80"}, "user-1")

	s.Equal(http.StatusNotFound, recorder.Code)
}

func (s *JournalHandlerTestSuite) TestUpdateJournalValidationError() {
	s.updater.On("UpdateJournal", mock.Anything, "j-1", mock.Anything, "user-1").Return(nil, apperrors.ErrValidation)

	recorder := s.performUpdate("j-1", gin.H{"amount": "80"}, "user-1")

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *JournalHandlerTestSuite) TestUpdateJournalCorruptedLedger() {
	s.updater.On("UpdateJournal", mock.Anything, "j-1", mock.Anything, "user-1").Return(nil, apperrors.ErrCorruptedLedger)

	recorder := s.performUpdate("j-1", gin.H{"amount": "80"}, "user-1")

	s.Equal(http.StatusInternalServerError, recorder.Code)
}

func (s *JournalHandlerTestSuite) TestUpdateJournalMalformedBody() {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/journals/j-1", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-ID", "user-1")

	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func TestJournalHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
