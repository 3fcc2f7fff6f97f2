package rest

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"agenticWallet/business/cards"
	"agenticWallet/domain"
	"agenticWallet/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	CardHandler struct {
		validate    *validator.Validate
		cardService CardService
		timeout     time.Duration
	}

	CardService interface {
		CreateCard(ctx context.Context, userID uint, input cards.CardInput) (domain.CreditCard, error)
		GetUserCards(ctx context.Context, userID uint, activeOnly bool) ([]domain.CreditCard, error)
		UpdateCard(ctx context.Context, userID, cardID uint, update cards.CardUpdate) (domain.CreditCard, error)
		DeleteCard(ctx context.Context, userID, cardID uint) error
	}

	CardCreateRequest struct {
		CardName         string         `json:"card_name" validate:"required"`
		Issuer           string         `json:"issuer,omitempty"`
		CashBackRate     map[string]any `json:"cash_back_rate,omitempty"`
		PointsMultiplier map[string]any `json:"points_multiplier,omitempty"`
		Benefits         []string       `json:"benefits,omitempty"`
		AnnualFee        float64        `json:"annual_fee,omitempty" validate:"gte=0"`
		LastFourDigits   string         `json:"last_four_digits,omitempty" validate:"omitempty,len=4,numeric"`
		CreditLimit      float64        `json:"credit_limit,omitempty" validate:"gte=0"`
	}

	CardUpdateRequest struct {
		CardName         *string        `json:"card_name,omitempty"`
		CashBackRate     map[string]any `json:"cash_back_rate,omitempty"`
		PointsMultiplier map[string]any `json:"points_multiplier,omitempty"`
		Benefits         *[]string      `json:"benefits,omitempty"`
		AnnualFee        *float64       `json:"annual_fee,omitempty"`
		CreditLimit      *float64       `json:"credit_limit,omitempty"`
		IsActive         *bool          `json:"is_active,omitempty"`
	}

	CardListQuery struct {
		IncludeInactive bool `query:"include_inactive"`
	}
)

func NewCardHandler(svc CardService) *CardHandler {
	return &CardHandler{
		validate:    validator.New(),
		cardService: svc,
		timeout:     10 * time.Second,
	}
}

func (h *CardHandler) CreateCard(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req CardCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	card, err := h.cardService.CreateCard(ctx, userID, cards.CardInput{
		CardName:         req.CardName,
		Issuer:           req.Issuer,
		CashBackRate:     req.CashBackRate,
		PointsMultiplier: req.PointsMultiplier,
		Benefits:         req.Benefits,
		AnnualFee:        req.AnnualFee,
		LastFourDigits:   req.LastFourDigits,
		CreditLimit:      req.CreditLimit,
	})
	if err != nil {
		logger.Error("Failed to create card", err)
		if strings.Contains(err.Error(), "required") {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(card))
}

func (h *CardHandler) GetUserCards(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q CardListQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	userCards, err := h.cardService.GetUserCards(ctx, userID, !q.IncludeInactive)
	if err != nil {
		logger.Error("Failed to get user cards", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(userCards))
}

func (h *CardHandler) UpdateCard(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	cardID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid card ID"})
	}

	var req CardUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	card, err := h.cardService.UpdateCard(ctx, userID, cardID, cards.CardUpdate{
		CardName:         req.CardName,
		CashBackRate:     req.CashBackRate,
		PointsMultiplier: req.PointsMultiplier,
		Benefits:         req.Benefits,
		AnnualFee:        req.AnnualFee,
		CreditLimit:      req.CreditLimit,
		IsActive:         req.IsActive,
	})
	if err != nil {
		logger.Error("Failed to update card", err)
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if strings.Contains(err.Error(), "belong") {
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(card))
}

func (h *CardHandler) DeleteCard(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	cardID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid card ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.cardService.DeleteCard(ctx, userID, cardID); err != nil {
		logger.Error("Failed to delete card", err)
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if strings.Contains(err.Error(), "belong") {
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Card deactivated successfully",
	})
}

func parseIDParam(c echo.Context) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(c.Param("id"), &id); err != nil {
		return 0, err
	}
	return id, nil
}
