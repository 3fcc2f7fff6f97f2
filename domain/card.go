package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreditCard struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"column:user_id;not null;index" json:"user_id"`

	CardName string `gorm:"column:card_name;not null" json:"card_name"`
	Issuer   string `gorm:"column:issuer;not null" json:"issuer"`

	// category -> rate maps, e.g. {"dining": 0.03, "other": 0.01}
	CashBackRate     datatypes.JSONMap `gorm:"column:cash_back_rate;type:jsonb" json:"cash_back_rate"`
	PointsMultiplier datatypes.JSONMap `gorm:"column:points_multiplier;type:jsonb" json:"points_multiplier"`

	Benefits  datatypes.JSONSlice[string] `gorm:"column:benefits;type:jsonb" json:"benefits"`
	AnnualFee float64                     `gorm:"column:annual_fee;default:0" json:"annual_fee"`

	// AES-CBC encrypted, base64 encoded; never returned raw
	LastFourEncrypted string `gorm:"column:last_four_encrypted" json:"-"`

	CreditLimit float64 `gorm:"column:credit_limit;default:0" json:"credit_limit"`
	IsActive    bool    `gorm:"column:is_active;default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CreditCard) TableName() string {
	return "credit_cards"
}

// RewardProfile is the read-only view of a card the scoring engine works on.
// Rate maps are materialized to float64 so scoring never touches JSON types.
type RewardProfile struct {
	CardID           uint
	CardName         string
	Issuer           string
	CashBackRate     map[string]float64
	PointsMultiplier map[string]float64
	Benefits         []string
	AnnualFee        float64
}

// ToRewardProfile coerces the JSONB rate maps into plain float maps.
// Non-numeric values are dropped rather than failing the whole card.
func (c CreditCard) ToRewardProfile() RewardProfile {
	return RewardProfile{
		CardID:           c.ID,
		CardName:         c.CardName,
		Issuer:           c.Issuer,
		CashBackRate:     toFloatMap(c.CashBackRate),
		PointsMultiplier: toFloatMap(c.PointsMultiplier),
		Benefits:         []string(c.Benefits),
		AnnualFee:        c.AnnualFee,
	}
}

func toFloatMap(m datatypes.JSONMap) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		switch n := v.(type) {
		case float64:
			out[k] = n
		case int:
			out[k] = float64(n)
		case int64:
			out[k] = float64(n)
		}
	}
	return out
}
