package rest

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"agenticWallet/business/transactions"
	"agenticWallet/domain"
	"agenticWallet/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	TransactionHandler struct {
		validate   *validator.Validate
		txnService TransactionService
		timeout    time.Duration
	}

	TransactionService interface {
		Record(ctx context.Context, input transactions.RecordInput) (domain.Transaction, error)
		GetByRef(ctx context.Context, userID uint, ref string) (domain.Transaction, error)
		History(ctx context.Context, userID uint, limit int) ([]domain.Transaction, error)
		Stats(ctx context.Context, userID uint) (domain.TransactionStats, error)
		AnalyticsWindow(ctx context.Context, userID uint, days int) (transactions.Analytics, error)
	}

	TransactionRecordRequest struct {
		CardID            uint    `json:"card_id" validate:"required"`
		RecommendedCardID *uint   `json:"recommended_card_id,omitempty"`
		Merchant          string  `json:"merchant" validate:"required"`
		Amount            float64 `json:"amount" validate:"gte=0"`
		Category          string  `json:"category,omitempty"`
		Goal              string  `json:"goal,omitempty"`
	}

	HistoryQuery struct {
		Limit int `query:"limit" validate:"gte=0,lte=500"`
	}
)

func NewTransactionHandler(svc TransactionService) *TransactionHandler {
	return &TransactionHandler{
		validate:   validator.New(),
		txnService: svc,
		timeout:    10 * time.Second,
	}
}

func (h *TransactionHandler) Record(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req TransactionRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	txn, err := h.txnService.Record(ctx, transactions.RecordInput{
		UserID:            userID,
		CardID:            req.CardID,
		RecommendedCardID: req.RecommendedCardID,
		Merchant:          req.Merchant,
		Amount:            req.Amount,
		Category:          req.Category,
		Goal:              req.Goal,
	})
	if err != nil {
		logger.Error("Failed to record transaction", err)
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if strings.Contains(err.Error(), "negative") {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(txn))
}

func (h *TransactionHandler) GetByRef(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ref := c.Param("ref")
	if ref == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "transaction reference is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	txn, err := h.txnService.GetByRef(ctx, userID, ref)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to get transaction", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(txn))
}

func (h *TransactionHandler) History(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q HistoryQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	txns, err := h.txnService.History(ctx, userID, q.Limit)
	if err != nil {
		logger.Error("Failed to get transaction history", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(txns))
}

func (h *TransactionHandler) Stats(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stats, err := h.txnService.Stats(ctx, userID)
	if err != nil {
		logger.Error("Failed to compute transaction stats", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(stats))
}

func (h *TransactionHandler) Analytics(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	days := 30
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "days must be a number"})
		}
		days = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	report, err := h.txnService.AnalyticsWindow(ctx, userID, days)
	if err != nil {
		if strings.Contains(err.Error(), "between") {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to build analytics report", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(report))
}
