package transactions

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"agenticWallet/business/recommend"
	"agenticWallet/domain"
	"agenticWallet/pkg/logger"

	"github.com/google/uuid"
)

// TransactionRepository contract interface
type TransactionRepository interface {
	Create(ctx context.Context, txn *domain.Transaction) error
	FindByRef(ctx context.Context, ref string) (domain.Transaction, error)
	FindByUser(ctx context.Context, userID uint, limit int) ([]domain.Transaction, error)
	FindByUserSince(ctx context.Context, userID uint, since time.Time) ([]domain.Transaction, error)
}

// CardSource supplies reward profiles for earned/optimal value computation.
type CardSource interface {
	GetRewardProfiles(ctx context.Context, userID uint) ([]domain.RewardProfile, error)
}

type RecordInput struct {
	UserID            uint
	CardID            uint
	RecommendedCardID *uint
	Merchant          string
	Amount            float64
	Category          string
	Goal              string
}

type Analytics struct {
	PeriodDays        int                        `json:"period_days"`
	Stats             domain.TransactionStats    `json:"stats"`
	SpendByCategory   map[string]float64         `json:"spend_by_category"`
	TopMerchants      []MerchantSpend            `json:"top_merchants"`
	BestCardID        uint                       `json:"best_card_id,omitempty"`
	BestCardRewards   float64                    `json:"best_card_rewards"`
}

type MerchantSpend struct {
	Merchant string  `json:"merchant"`
	Count    int     `json:"count"`
	Spent    float64 `json:"spent"`
}

type Service struct {
	txnRepo TransactionRepository
	cards   CardSource
}

func NewService(txnRepo TransactionRepository, cards CardSource) *Service {
	return &Service{
		txnRepo: txnRepo,
		cards:   cards,
	}
}

// Record stores a completed purchase, computing what the used card earned
// and what the best card in the wallet would have earned.
func (s *Service) Record(ctx context.Context, input RecordInput) (domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return domain.Transaction{}, fmt.Errorf("context error: %w", err)
	}
	if input.Amount < 0 {
		return domain.Transaction{}, errors.New("amount must not be negative")
	}
	if !domain.ValidCategory(input.Category) {
		input.Category = domain.CategoryOther
	}
	if !domain.ValidGoal(input.Goal) {
		input.Goal = domain.GoalBalanced
	}

	profiles, err := s.cards.GetRewardProfiles(ctx, input.UserID)
	if err != nil {
		return domain.Transaction{}, err
	}

	var used *domain.RewardProfile
	optimalValue := 0.0
	for i := range profiles {
		_, _, value := recommend.Earned(profiles[i], input.Category, input.Amount)
		if value > optimalValue {
			optimalValue = value
		}
		if profiles[i].CardID == input.CardID {
			used = &profiles[i]
		}
	}
	if used == nil {
		return domain.Transaction{}, errors.New("card not found in user's wallet")
	}

	cashBack, points, earned := recommend.Earned(*used, input.Category, input.Amount)

	cardID := input.CardID
	txn := domain.Transaction{
		TransactionRef:      uuid.NewString(),
		UserID:              input.UserID,
		CardID:              &cardID,
		Merchant:            input.Merchant,
		Amount:              input.Amount,
		Category:            input.Category,
		Goal:                input.Goal,
		RecommendedCardID:   input.RecommendedCardID,
		UsedRecommendedCard: input.RecommendedCardID != nil && *input.RecommendedCardID == input.CardID,
		CashBackEarned:      cashBack,
		PointsEarned:        points,
		TotalValueEarned:    earned,
		OptimalValue:        optimalValue,
		MissedValue:         math.Max(0, optimalValue-earned),
		TransactionDate:     time.Now(),
	}

	if err := s.txnRepo.Create(ctx, &txn); err != nil {
		logger.Error("Failed to record transaction", err)
		return domain.Transaction{}, err
	}

	return txn, nil
}

// GetByRef looks up one transaction by its public reference, scoped to the
// requesting user.
func (s *Service) GetByRef(ctx context.Context, userID uint, ref string) (domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return domain.Transaction{}, fmt.Errorf("context error: %w", err)
	}

	txn, err := s.txnRepo.FindByRef(ctx, ref)
	if err != nil {
		return domain.Transaction{}, err
	}
	if txn.UserID != userID {
		return domain.Transaction{}, errors.New("transaction not found")
	}

	return txn, nil
}

func (s *Service) History(ctx context.Context, userID uint, limit int) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = 50
	}

	return s.txnRepo.FindByUser(ctx, userID, limit)
}

// Stats aggregates lifetime optimization metrics for a user.
func (s *Service) Stats(ctx context.Context, userID uint) (domain.TransactionStats, error) {
	if err := ctx.Err(); err != nil {
		return domain.TransactionStats{}, fmt.Errorf("context error: %w", err)
	}

	txns, err := s.txnRepo.FindByUser(ctx, userID, 0)
	if err != nil {
		return domain.TransactionStats{}, err
	}

	return computeStats(txns), nil
}

// AnalyticsWindow builds the analytics report over the last N days (1-365).
func (s *Service) AnalyticsWindow(ctx context.Context, userID uint, days int) (Analytics, error) {
	if err := ctx.Err(); err != nil {
		return Analytics{}, fmt.Errorf("context error: %w", err)
	}
	if days < 1 || days > 365 {
		return Analytics{}, errors.New("days must be between 1 and 365")
	}

	since := time.Now().AddDate(0, 0, -days)
	txns, err := s.txnRepo.FindByUserSince(ctx, userID, since)
	if err != nil {
		return Analytics{}, err
	}

	spendByCategory := map[string]float64{}
	merchants := map[string]*MerchantSpend{}
	rewardsByCard := map[uint]float64{}

	for _, t := range txns {
		spendByCategory[t.Category] += t.Amount

		m, ok := merchants[t.Merchant]
		if !ok {
			m = &MerchantSpend{Merchant: t.Merchant}
			merchants[t.Merchant] = m
		}
		m.Count++
		m.Spent += t.Amount

		if t.CardID != nil {
			rewardsByCard[*t.CardID] += t.TotalValueEarned
		}
	}

	top := make([]MerchantSpend, 0, len(merchants))
	for _, m := range merchants {
		top = append(top, *m)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Spent != top[j].Spent {
			return top[i].Spent > top[j].Spent
		}
		return top[i].Merchant < top[j].Merchant
	})
	if len(top) > 5 {
		top = top[:5]
	}

	var bestCard uint
	bestRewards := 0.0
	for id, rewards := range rewardsByCard {
		if rewards > bestRewards {
			bestCard, bestRewards = id, rewards
		}
	}

	return Analytics{
		PeriodDays:      days,
		Stats:           computeStats(txns),
		SpendByCategory: spendByCategory,
		TopMerchants:    top,
		BestCardID:      bestCard,
		BestCardRewards: round2(bestRewards),
	}, nil
}

func computeStats(txns []domain.Transaction) domain.TransactionStats {
	if len(txns) == 0 {
		return domain.TransactionStats{}
	}

	var spent, rewards, potential, missed float64
	followed := 0
	for _, t := range txns {
		spent += t.Amount
		rewards += t.TotalValueEarned
		potential += t.OptimalValue
		missed += t.MissedValue
		if t.UsedRecommendedCard {
			followed++
		}
	}

	return domain.TransactionStats{
		TotalTransactions:     len(txns),
		TotalSpent:            round2(spent),
		TotalRewards:          round2(rewards),
		TotalPotentialRewards: round2(potential),
		MissedValue:           round2(missed),
		OptimizationRate:      round2(float64(followed) / float64(len(txns)) * 100),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
