package domain

import (
	"time"

	"gorm.io/gorm"
)

type Transaction struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	TransactionRef string `gorm:"column:transaction_ref;unique;not null" json:"transaction_ref"`
	UserID         uint   `gorm:"column:user_id;not null;index" json:"user_id"`
	CardID         *uint  `gorm:"column:card_id" json:"card_id"`

	Merchant string  `gorm:"column:merchant;not null" json:"merchant"`
	Amount   float64 `gorm:"column:amount;not null" json:"amount"`
	Category string  `gorm:"column:category;not null" json:"category"`
	Goal     string  `gorm:"column:goal;not null" json:"goal"`

	RecommendedCardID   *uint `gorm:"column:recommended_card_id" json:"recommended_card_id"`
	UsedRecommendedCard bool  `gorm:"column:used_recommended_card" json:"used_recommended_card"`

	CashBackEarned   float64 `gorm:"column:cash_back_earned;default:0" json:"cash_back_earned"`
	PointsEarned     float64 `gorm:"column:points_earned;default:0" json:"points_earned"`
	TotalValueEarned float64 `gorm:"column:total_value_earned;default:0" json:"total_value_earned"`

	// what the top-ranked card would have earned
	OptimalValue float64 `gorm:"column:optimal_value;default:0" json:"optimal_value"`
	MissedValue  float64 `gorm:"column:missed_value;default:0" json:"missed_value"`

	TransactionDate time.Time      `gorm:"column:transaction_date;not null" json:"transaction_date"`
	CreatedAt       time.Time      `json:"created_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}

type TransactionStats struct {
	TotalTransactions     int     `json:"total_transactions"`
	TotalSpent            float64 `json:"total_spent"`
	TotalRewards          float64 `json:"total_rewards"`
	TotalPotentialRewards float64 `json:"total_potential_rewards"`
	MissedValue           float64 `json:"missed_value"`
	OptimizationRate      float64 `json:"optimization_rate"`
}
