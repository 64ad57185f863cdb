package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"riskengine/internal/delivery/http/dto"
	"riskengine/internal/usecase"
)

// TransactionHandler exposes transaction monitoring endpoints.
type TransactionHandler struct {
	transactions *usecase.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactions *usecase.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// GetAll handles GET /api/transactions
func (h *TransactionHandler) GetAll(c echo.Context) error {
	transactions, err := h.transactions.All(c.Request().Context())
	if err != nil {
		return DomainErrorResponse(c, err)
	}
	return SuccessResponse(c, transactions)
}

// GetByID handles GET /api/transactions/:id
func (h *TransactionHandler) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid transaction id")
	}
	tx, err := h.transactions.Get(c.Request().Context(), id)
	if err != nil {
		return DomainErrorResponse(c, err)
	}
	return SuccessResponse(c, tx)
}

// Create handles POST /api/transactions
func (h *TransactionHandler) Create(c echo.Context) error {
	var req dto.TransactionRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	tx := req.ToDomain()
	if err := h.transactions.Process(c.Request().Context(), tx); err != nil {
		return DomainErrorResponse(c, err)
	}
	return CreatedResponse(c, tx)
}

// Delete handles DELETE /api/transactions/:id
func (h *TransactionHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid transaction id")
	}
	if err := h.transactions.Delete(c.Request().Context(), id); err != nil {
		return DomainErrorResponse(c, err)
	}
	return SuccessResponse(c, map[string]string{"deleted": id.String()})
}

// GetAnomalies handles GET /api/transactions/anomalies
func (h *TransactionHandler) GetAnomalies(c echo.Context) error {
	anomalies, err := h.transactions.DetectAnomalies(c.Request().Context())
	if err != nil {
		return DomainErrorResponse(c, err)
	}
	return SuccessResponse(c, anomalies)
}
