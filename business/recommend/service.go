package recommend

import (
	"context"
	"fmt"
	"strings"

	"agenticWallet/domain"
	"agenticWallet/pkg/logger"
)

// maximum breakdowns summarized for the reasoning prompt
const topSummaryCount = 3

// Service coordinates one recommendation request: validate, normalize,
// score, explain. All state is request-local; a single Service is safe for
// concurrent use.
type Service struct {
	invoker *Invoker
}

// NewService wires the reasoning client. A nil client is allowed; Recommend
// then fails fast with ErrServiceUnavailable and callers wanting degraded
// behavior use RecommendRanked instead.
func NewService(client ReasoningClient, maxRetries int) *Service {
	s := &Service{}
	if client != nil {
		s.invoker = NewInvoker(client, maxRetries)
	}
	return s
}

// normalizeContext fixes up category and goal in place. Unknown values are
// never rejected, only normalized with a diagnostic log.
func normalizeContext(pctx *domain.PurchaseContext) {
	if !domain.ValidCategory(pctx.Category) {
		if pctx.Category != "" {
			logger.Warn("unknown purchase category, using fallback",
				"category", pctx.Category,
			)
		}
		pctx.Category = domain.CategoryOther
	}
	if !domain.ValidGoal(pctx.Goal) {
		if pctx.Goal != "" {
			logger.Warn("unknown optimization goal, using balanced",
				"goal", pctx.Goal,
			)
		}
		pctx.Goal = domain.GoalBalanced
	}
}

// RecommendRanked runs validation and scoring only, skipping the reasoning
// service entirely. This is the explicit degraded mode for callers that
// caught ErrServiceUnavailable or never configured a client. Zero-amount
// purchases return all-zero breakdowns in input order.
func (s *Service) RecommendRanked(
	ctx context.Context,
	profiles []domain.RewardProfile,
	pctx domain.PurchaseContext,
) ([]ScoreBreakdown, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if pctx.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}

	normalizeContext(&pctx)

	if len(profiles) == 0 {
		return nil, fmt.Errorf("%w: at least one card is required", ErrInvalidInput)
	}

	// zero-amount purchases earn nothing; keep input order with zero values
	// instead of letting benefit weights manufacture a ranking
	if pctx.Amount == 0 {
		w := WeightsForGoal(pctx.Goal)
		ranked := make([]ScoreBreakdown, 0, len(profiles))
		for _, p := range profiles {
			ranked = append(ranked, ScoreBreakdown{
				CardID:       p.CardID,
				CardName:     p.CardName,
				BenefitCount: len(p.Benefits),
				Benefits:     p.Benefits,
				Weights:      w,
			})
		}
		return ranked, nil
	}

	ranked, err := Score(profiles, pctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return ranked, nil
}

// Recommend is the sole full entry point: ranked recommendation plus the
// composed explanation from the reasoning service.
func (s *Service) Recommend(
	ctx context.Context,
	profiles []domain.RewardProfile,
	pctx domain.PurchaseContext,
) (domain.RecommendationResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecommendationResult{}, fmt.Errorf("context error: %w", err)
	}

	if pctx.Amount < 0 {
		return domain.RecommendationResult{}, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}

	normalizeContext(&pctx)

	if len(profiles) == 0 {
		return domain.RecommendationResult{}, fmt.Errorf("%w: at least one active card is required", ErrInvalidInput)
	}

	// zero-amount purchases never reach scoring or the reasoning service
	if pctx.Amount == 0 {
		return zeroAmountResult(profiles[0]), nil
	}

	ranked, err := Score(profiles, pctx)
	if err != nil {
		return domain.RecommendationResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if s.invoker == nil {
		return domain.RecommendationResult{}, fmt.Errorf("%w: no reasoning client configured", ErrServiceUnavailable)
	}

	req := domain.ReasoningRequest{
		Merchant:      pctx.Merchant,
		Amount:        pctx.Amount,
		Category:      pctx.Category,
		Goal:          pctx.Goal,
		RankedSummary: buildRankedSummary(ranked),
	}

	modelText, err := s.invoker.Invoke(ctx, req)
	if err != nil {
		return domain.RecommendationResult{}, err
	}

	top := ranked[0]
	result := domain.RecommendationResult{
		RecommendedCard: toCardRecommendation(top, Compose(ranked, pctx, modelText)),
		Summary: fmt.Sprintf("%s recommended for maximum %s",
			top.CardName, strings.ReplaceAll(pctx.Goal, "_", " ")),
	}

	for _, alt := range ranked[1:] {
		result.Alternatives = append(result.Alternatives, toCardRecommendation(
			alt, fmt.Sprintf("Alternative option earning $%.2f", alt.Total)))
		if len(result.Alternatives) == 2 {
			break
		}
	}

	return result, nil
}

// buildRankedSummary digests the top breakdowns into prompt lines for the
// reasoning service.
func buildRankedSummary(ranked []ScoreBreakdown) string {
	n := len(ranked)
	if n > topSummaryCount {
		n = topSummaryCount
	}

	lines := make([]string, 0, n)
	for i, bd := range ranked[:n] {
		lines = append(lines, fmt.Sprintf(
			"%d. %s: $%.2f cash back, %.0f points ($%.2f value), %d benefits, total value $%.2f",
			i+1, bd.CardName, bd.CashBack, bd.Points, bd.PointsValue, bd.BenefitCount, bd.Total,
		))
	}
	return strings.Join(lines, "\n")
}

func toCardRecommendation(bd ScoreBreakdown, explanation string) domain.CardRecommendation {
	benefits := bd.Benefits
	if len(benefits) > 2 {
		benefits = benefits[:2]
	}
	return domain.CardRecommendation{
		CardID:         bd.CardID,
		CardName:       bd.CardName,
		ExpectedValue:  bd.Total,
		CashBackEarned: bd.CashBack,
		PointsEarned:   bd.Points,
		Benefits:       benefits,
		Explanation:    explanation,
	}
}

func zeroAmountResult(first domain.RewardProfile) domain.RecommendationResult {
	return domain.RecommendationResult{
		RecommendedCard: domain.CardRecommendation{
			CardID:      first.CardID,
			CardName:    first.CardName,
			Explanation: "A zero-amount purchase earns no rewards; any card works.",
		},
		Summary:    "No purchase amount provided - any card works",
		ZeroAmount: true,
	}
}
