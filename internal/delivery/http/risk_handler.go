package http

import (
	"errors"

	"github.com/labstack/echo/v4"

	"riskengine/internal/delivery/http/dto"
	"riskengine/internal/domain"
	"riskengine/internal/usecase"
)

// RiskHandler exposes risk evaluation endpoints.
type RiskHandler struct {
	riskGate     domain.RiskAssessor
	transactions *usecase.TransactionService
	profileRepo  domain.UserProfileRepository
}

// NewRiskHandler creates a new RiskHandler.
func NewRiskHandler(
	riskGate domain.RiskAssessor,
	transactions *usecase.TransactionService,
	profileRepo domain.UserProfileRepository,
) *RiskHandler {
	return &RiskHandler{
		riskGate:     riskGate,
		transactions: transactions,
		profileRepo:  profileRepo,
	}
}

// Evaluate handles POST /api/risk-assessment/evaluate: scores an existing
// transaction by id.
func (h *RiskHandler) Evaluate(c echo.Context) error {
	var req dto.RiskEvaluationRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	tx, err := h.transactions.Get(c.Request().Context(), req.TransactionID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	score := h.riskGate.Assess(tx, h.profile(c, tx.UserID))
	return SuccessResponse(c, dto.RiskScoreResponse{
		TransactionID: score.TransactionID,
		Score:         score.Score,
		Level:         score.Level,
		CreatedAt:     score.CreatedAt,
	})
}

// EvaluateTransaction handles POST /api/risk-assessment/evaluate-transaction:
// scores a transaction without storing it.
func (h *RiskHandler) EvaluateTransaction(c echo.Context) error {
	var req dto.TransactionRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	tx := req.ToDomain()
	score := h.riskGate.Assess(tx, h.profile(c, tx.UserID))
	return SuccessResponse(c, dto.RiskScoreResponse{
		TransactionID: score.TransactionID,
		Score:         score.Score,
		Level:         score.Level,
		CreatedAt:     score.CreatedAt,
	})
}

func (h *RiskHandler) profile(c echo.Context, userID string) *domain.UserProfile {
	profile, err := h.profileRepo.FindByID(c.Request().Context(), userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		c.Logger().Warnf("failed to load profile for %s: %v", userID, err)
	}
	return profile
}
