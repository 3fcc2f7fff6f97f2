package recommend

import (
	"fmt"
	"sort"

	"agenticWallet/domain"
)

const (
	// dollar value of a single reward point
	pointDollarValue = 0.015

	// flat per-benefit dollar estimate
	benefitUnitValue = 2.0
)

// WeightVector holds the per-goal coefficients applied to the three reward
// components. Built once at init, never mutated.
type WeightVector struct {
	Cash     float64
	Points   float64
	Benefits float64
}

var goalWeights = map[string]WeightVector{
	domain.GoalCashBack:          {Cash: 1.0, Points: 0.1, Benefits: 0.5},
	domain.GoalTravelPoints:      {Cash: 0.1, Points: 1.0, Benefits: 0.5},
	domain.GoalSpecificDiscounts: {Cash: 0.3, Points: 0.3, Benefits: 2.5},
	domain.GoalBalanced:          {Cash: 0.5, Points: 0.5, Benefits: 0.5},
}

// WeightsForGoal returns the weight vector for a goal, falling back to
// balanced for anything unrecognized.
func WeightsForGoal(goal string) WeightVector {
	if w, ok := goalWeights[goal]; ok {
		return w
	}
	return goalWeights[domain.GoalBalanced]
}

// ScoreBreakdown itemizes one card's reward value for one purchase.
type ScoreBreakdown struct {
	CardID        uint
	CardName      string
	CashBack      float64
	Points        float64
	PointsValue   float64
	BenefitCount  int
	BenefitsValue float64
	Benefits      []string
	Weights       WeightVector
	Total         float64
}

// rateFor looks up the category rate, falling back to the "other" sentinel,
// then to zero.
func rateFor(rates map[string]float64, category string) float64 {
	if r, ok := rates[category]; ok {
		return r
	}
	if r, ok := rates[domain.CategoryOther]; ok {
		return r
	}
	return 0
}

// Earned computes the unweighted reward of one card for one purchase:
// cash back, points, and combined dollar value (cash + point value).
func Earned(p domain.RewardProfile, category string, amount float64) (cashBack, points, value float64) {
	cashBack = amount * rateFor(p.CashBackRate, category)
	points = amount * rateFor(p.PointsMultiplier, category)
	value = cashBack + points*pointDollarValue
	return cashBack, points, value
}

// Score ranks the given reward profiles for one purchase, descending by
// weighted total value. Ties keep input order (stable sort). Pure, no I/O.
func Score(profiles []domain.RewardProfile, ctx domain.PurchaseContext) ([]ScoreBreakdown, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("at least one card is required")
	}

	w := WeightsForGoal(ctx.Goal)

	breakdowns := make([]ScoreBreakdown, 0, len(profiles))
	for _, p := range profiles {
		cashBack := ctx.Amount * rateFor(p.CashBackRate, ctx.Category)
		points := ctx.Amount * rateFor(p.PointsMultiplier, ctx.Category)
		pointsValue := points * pointDollarValue
		benefitsValue := float64(len(p.Benefits)) * benefitUnitValue

		breakdowns = append(breakdowns, ScoreBreakdown{
			CardID:        p.CardID,
			CardName:      p.CardName,
			CashBack:      cashBack,
			Points:        points,
			PointsValue:   pointsValue,
			BenefitCount:  len(p.Benefits),
			BenefitsValue: benefitsValue,
			Benefits:      p.Benefits,
			Weights:       w,
			Total:         w.Cash*cashBack + w.Points*pointsValue + w.Benefits*benefitsValue,
		})
	}

	sort.SliceStable(breakdowns, func(i, j int) bool {
		return breakdowns[i].Total > breakdowns[j].Total
	})

	return breakdowns, nil
}
