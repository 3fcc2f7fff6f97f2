package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"agenticWallet/business/recommend"
	"agenticWallet/domain"
	"agenticWallet/pkg/logger"
	"agenticWallet/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendHandler struct {
		validate         *validator.Validate
		recommendService RecommendService
		profileSource    RewardProfileSource
		timeout          time.Duration
	}

	RecommendService interface {
		Recommend(ctx context.Context, profiles []domain.RewardProfile, pctx domain.PurchaseContext) (domain.RecommendationResult, error)
		RecommendRanked(ctx context.Context, profiles []domain.RewardProfile, pctx domain.PurchaseContext) ([]recommend.ScoreBreakdown, error)
	}

	RewardProfileSource interface {
		GetRewardProfiles(ctx context.Context, userID uint) ([]domain.RewardProfile, error)
	}

	RecommendRequest struct {
		Merchant string  `json:"merchant" validate:"required"`
		Amount   float64 `json:"amount" validate:"gte=0"`
		Category string  `json:"category,omitempty"`
		Goal     string  `json:"goal,omitempty"`
	}
)

func NewRecommendHandler(svc RecommendService, profiles RewardProfileSource) *RecommendHandler {
	return &RecommendHandler{
		validate:         validator.New(),
		recommendService: svc,
		profileSource:    profiles,
		// covers up to three reasoning retries with backoff
		timeout: 5 * time.Minute,
	}
}

func (h *RecommendHandler) Recommend(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profiles, err := h.profileSource.GetRewardProfiles(ctx, userID)
	if err != nil {
		logger.Error("Failed to load reward profiles", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.RecommendRequests.Inc()
	timer := time.Now()

	result, err := h.recommendService.Recommend(ctx, profiles, domain.PurchaseContext{
		Merchant: req.Merchant,
		Amount:   req.Amount,
		Category: req.Category,
		Goal:     req.Goal,
	})

	metrics.RecommendLatency.Observe(time.Since(timer).Seconds())

	if err != nil {
		return recommendError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

// RecommendRanked serves the scoring-only path, no reasoning service call.
func (h *RecommendHandler) RecommendRanked(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	profiles, err := h.profileSource.GetRewardProfiles(ctx, userID)
	if err != nil {
		logger.Error("Failed to load reward profiles", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	ranked, err := h.recommendService.RecommendRanked(ctx, profiles, domain.PurchaseContext{
		Merchant: req.Merchant,
		Amount:   req.Amount,
		Category: req.Category,
		Goal:     req.Goal,
	})
	if err != nil {
		return recommendError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(ranked))
}

// recommendError maps the recommendation error taxonomy onto HTTP statuses.
func recommendError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, recommend.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	case errors.Is(err, recommend.ErrQuotaExhausted),
		errors.Is(err, recommend.ErrRetriesExhausted):
		return c.JSON(http.StatusTooManyRequests, ResponseError{Message: err.Error()})
	case errors.Is(err, recommend.ErrDeadlineExceeded):
		return c.JSON(http.StatusGatewayTimeout, ResponseError{Message: err.Error()})
	case errors.Is(err, recommend.ErrServiceUnavailable):
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: err.Error()})
	default:
		logger.Error("Recommendation failed", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
}
