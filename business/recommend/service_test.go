package recommend

import (
	"context"
	"testing"

	"agenticWallet/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walletProfiles() []domain.RewardProfile {
	return []domain.RewardProfile{
		{
			CardID:       1,
			CardName:     "Dining Plus",
			CashBackRate: map[string]float64{"dining": 0.03, "other": 0.01},
		},
		{
			CardID:       2,
			CardName:     "Everyday",
			CashBackRate: map[string]float64{"dining": 0.02, "other": 0.015},
		},
	}
}

func TestRecommend_HappyPath(t *testing.T) {
	client := &fakeClient{responses: []fakeResponse{
		{text: "Dining Plus triples your dining return compared to the flat-rate alternative."},
	}}
	svc := NewService(client, 3)

	pctx := domain.PurchaseContext{
		Merchant: "Luigi's",
		Amount:   100,
		Category: domain.CategoryDining,
		Goal:     domain.GoalCashBack,
	}

	res, err := svc.Recommend(context.Background(), walletProfiles(), pctx)
	require.NoError(t, err)

	assert.Equal(t, "Dining Plus", res.RecommendedCard.CardName)
	assert.InDelta(t, 3.00, res.RecommendedCard.CashBackEarned, 1e-9)
	assert.Contains(t, res.RecommendedCard.Explanation, "Dining Plus earns $3.00 cash back")
	assert.Contains(t, res.RecommendedCard.Explanation, "triples your dining return")
	require.Len(t, res.Alternatives, 1)
	assert.Equal(t, "Everyday", res.Alternatives[0].CardName)
	assert.False(t, res.ZeroAmount)
}

func TestRecommend_NegativeAmountRejected(t *testing.T) {
	svc := NewService(&fakeClient{}, 3)

	_, err := svc.Recommend(context.Background(), walletProfiles(), domain.PurchaseContext{Amount: -5})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecommend_ZeroAmountSkipsReasoningService(t *testing.T) {
	client := &fakeClient{} // any call would error: nothing scripted
	svc := NewService(client, 3)

	pctx := domain.PurchaseContext{
		Amount:   0,
		Category: domain.CategoryDining,
		Goal:     domain.GoalBalanced,
	}

	res, err := svc.Recommend(context.Background(), walletProfiles(), pctx)
	require.NoError(t, err)

	assert.True(t, res.ZeroAmount)
	assert.Zero(t, res.RecommendedCard.CashBackEarned)
	assert.Zero(t, res.RecommendedCard.PointsEarned)
	assert.Zero(t, res.RecommendedCard.ExpectedValue)
	assert.Equal(t, 0, client.calls)
}

func TestRecommend_ZeroAmountIgnoresGoal(t *testing.T) {
	svc := NewService(&fakeClient{}, 3)

	for _, goal := range domain.OptimizationGoals() {
		res, err := svc.Recommend(context.Background(), walletProfiles(), domain.PurchaseContext{
			Amount: 0, Category: domain.CategoryTravel, Goal: goal,
		})
		require.NoError(t, err)
		assert.True(t, res.ZeroAmount)
	}
}

func TestRecommend_NoClientFailsFast(t *testing.T) {
	svc := NewService(nil, 3)

	pctx := domain.PurchaseContext{
		Amount:   50,
		Category: domain.CategoryDining,
		Goal:     domain.GoalBalanced,
	}

	_, err := svc.Recommend(context.Background(), walletProfiles(), pctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestRecommend_EmptyCardList(t *testing.T) {
	svc := NewService(&fakeClient{}, 3)

	_, err := svc.Recommend(context.Background(), nil, domain.PurchaseContext{Amount: 10})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecommend_NormalizesUnknownCategoryAndGoal(t *testing.T) {
	client := &fakeClient{responses: []fakeResponse{
		{text: "Everyday has the best flat rate when the category is unknown territory."},
	}}
	svc := NewService(client, 3)

	pctx := domain.PurchaseContext{
		Merchant: "Mystery Shop",
		Amount:   200,
		Category: "cryptozoology",
		Goal:     "all_of_it",
	}

	res, err := svc.Recommend(context.Background(), walletProfiles(), pctx)
	require.NoError(t, err)

	// fallback "other" rates: Everyday 1.5% beats Dining Plus 1%
	assert.Equal(t, "Everyday", res.RecommendedCard.CardName)
	assert.Contains(t, res.Summary, "balanced")
}

func TestRecommend_ReasoningErrorsSurface(t *testing.T) {
	client := &fakeClient{responses: []fakeResponse{{err: dailyQuotaError()}}}
	svc := NewService(client, 3)

	pctx := domain.PurchaseContext{
		Amount:   75,
		Category: domain.CategoryDining,
		Goal:     domain.GoalCashBack,
	}

	_, err := svc.Recommend(context.Background(), walletProfiles(), pctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuotaExhausted)
}

func TestRecommendRanked_DegradedModeNeedsNoClient(t *testing.T) {
	svc := NewService(nil, 3)

	ranked, err := svc.RecommendRanked(context.Background(), walletProfiles(), domain.PurchaseContext{
		Amount:   100,
		Category: domain.CategoryDining,
		Goal:     domain.GoalCashBack,
	})
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Dining Plus", ranked[0].CardName)
}

func TestRecommendRanked_ZeroAmountEarnsNothing(t *testing.T) {
	svc := NewService(nil, 3)

	profiles := []domain.RewardProfile{
		{CardID: 1, CardName: "Perks", Benefits: []string{"lounge", "credits"}},
		{CardID: 2, CardName: "Plain", CashBackRate: map[string]float64{"other": 0.02}},
	}

	ranked, err := svc.RecommendRanked(context.Background(), profiles, domain.PurchaseContext{
		Amount: 0,
		Goal:   domain.GoalSpecificDiscounts,
	})
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	// benefit weights must not manufacture a ranking; input order kept
	assert.Equal(t, "Perks", ranked[0].CardName)
	for _, bd := range ranked {
		assert.Zero(t, bd.Total)
		assert.Zero(t, bd.CashBack)
		assert.Zero(t, bd.BenefitsValue)
	}

	_, err = svc.RecommendRanked(context.Background(), nil, domain.PurchaseContext{Amount: 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecommend_AtMostTwoAlternatives(t *testing.T) {
	profiles := append(walletProfiles(),
		domain.RewardProfile{CardID: 3, CardName: "Third", CashBackRate: map[string]float64{"other": 0.01}},
		domain.RewardProfile{CardID: 4, CardName: "Fourth", CashBackRate: map[string]float64{"other": 0.005}},
	)
	client := &fakeClient{responses: []fakeResponse{
		{text: "Dining Plus remains the standout pick for restaurant spending in this wallet."},
	}}
	svc := NewService(client, 3)

	res, err := svc.Recommend(context.Background(), profiles, domain.PurchaseContext{
		Amount:   100,
		Category: domain.CategoryDining,
		Goal:     domain.GoalCashBack,
	})
	require.NoError(t, err)
	assert.Len(t, res.Alternatives, 2)
}
