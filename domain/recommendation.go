package domain

// Spending categories a purchase can fall into. CategoryOther doubles as the
// fallback key inside a card's rate maps.
const (
	CategoryDining        = "dining"
	CategoryTravel        = "travel"
	CategoryGroceries     = "groceries"
	CategoryGas           = "gas"
	CategoryEntertainment = "entertainment"
	CategoryShopping      = "shopping"
	CategoryOther         = "other"
)

// Optimization goals a user can ask for.
const (
	GoalCashBack          = "cash_back"
	GoalTravelPoints      = "travel_points"
	GoalSpecificDiscounts = "specific_discounts"
	GoalBalanced          = "balanced"
)

func Categories() []string {
	return []string{
		CategoryDining,
		CategoryTravel,
		CategoryGroceries,
		CategoryGas,
		CategoryEntertainment,
		CategoryShopping,
		CategoryOther,
	}
}

func OptimizationGoals() []string {
	return []string{
		GoalCashBack,
		GoalTravelPoints,
		GoalSpecificDiscounts,
		GoalBalanced,
	}
}

func ValidCategory(c string) bool {
	switch c {
	case CategoryDining, CategoryTravel, CategoryGroceries, CategoryGas,
		CategoryEntertainment, CategoryShopping, CategoryOther:
		return true
	}
	return false
}

func ValidGoal(g string) bool {
	switch g {
	case GoalCashBack, GoalTravelPoints, GoalSpecificDiscounts, GoalBalanced:
		return true
	}
	return false
}

// PurchaseContext describes one purchase a recommendation is requested for.
type PurchaseContext struct {
	Merchant string  `json:"merchant"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Goal     string  `json:"goal"`
}

// CardRecommendation is one ranked card in a recommendation response.
type CardRecommendation struct {
	CardID         uint    `json:"card_id"`
	CardName       string  `json:"card_name"`
	ExpectedValue  float64 `json:"expected_value"`
	CashBackEarned float64 `json:"cash_back_earned"`
	PointsEarned   float64 `json:"points_earned"`
	Benefits       []string `json:"applicable_benefits"`
	Explanation    string  `json:"explanation"`
}

// RecommendationResult is the full outcome of one recommendation request.
type RecommendationResult struct {
	RecommendedCard CardRecommendation   `json:"recommended_card"`
	Alternatives    []CardRecommendation `json:"alternatives"`
	Summary         string               `json:"optimization_summary"`
	ZeroAmount      bool                 `json:"zero_amount,omitempty"`
}
