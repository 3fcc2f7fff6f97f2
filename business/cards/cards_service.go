package cards

import (
	"context"
	"errors"
	"fmt"

	"agenticWallet/domain"
	"agenticWallet/pkg/logger"

	"github.com/pobyzaarif/goshortcute"
	"gorm.io/datatypes"
)

// CardRepository contract interface
type CardRepository interface {
	Create(ctx context.Context, card *domain.CreditCard) error
	FindByID(ctx context.Context, id uint) (domain.CreditCard, error)
	FindByUser(ctx context.Context, userID uint, activeOnly bool) ([]domain.CreditCard, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]any) (domain.CreditCard, error)
	Deactivate(ctx context.Context, id uint) error
}

// CardCache contract interface
type CardCache interface {
	Get(ctx context.Context, userID uint) ([]domain.CreditCard, bool)
	Set(ctx context.Context, userID uint, cards []domain.CreditCard) error
	Invalidate(ctx context.Context, userID uint) error
}

type CardInput struct {
	CardName         string
	Issuer           string
	CashBackRate     map[string]any
	PointsMultiplier map[string]any
	Benefits         []string
	AnnualFee        float64
	LastFourDigits   string
	CreditLimit      float64
}

// CardUpdate carries a partial update; nil fields are left untouched.
type CardUpdate struct {
	CardName         *string
	CashBackRate     map[string]any
	PointsMultiplier map[string]any
	Benefits         *[]string
	AnnualFee        *float64
	CreditLimit      *float64
	IsActive         *bool
}

type Service struct {
	cardRepo    CardRepository
	cache       CardCache
	cardDataKey string
}

func NewService(cardRepo CardRepository, cache CardCache, cardDataKey string) *Service {
	return &Service{
		cardRepo:    cardRepo,
		cache:       cache,
		cardDataKey: cardDataKey,
	}
}

func (s *Service) CreateCard(ctx context.Context, userID uint, input CardInput) (domain.CreditCard, error) {
	if err := ctx.Err(); err != nil {
		return domain.CreditCard{}, fmt.Errorf("context error: %w", err)
	}
	if input.CardName == "" {
		return domain.CreditCard{}, errors.New("card_name is required")
	}
	if len(input.CashBackRate) == 0 && len(input.PointsMultiplier) == 0 {
		return domain.CreditCard{}, errors.New("at least one reward rate map is required")
	}

	card := domain.CreditCard{
		UserID:           userID,
		CardName:         input.CardName,
		Issuer:           input.Issuer,
		CashBackRate:     datatypes.JSONMap(input.CashBackRate),
		PointsMultiplier: datatypes.JSONMap(input.PointsMultiplier),
		Benefits:         datatypes.NewJSONSlice(input.Benefits),
		AnnualFee:        input.AnnualFee,
		CreditLimit:      input.CreditLimit,
		IsActive:         true,
	}

	if input.LastFourDigits != "" {
		enc, err := s.encryptLastFour(input.LastFourDigits)
		if err != nil {
			logger.Error("Failed to encrypt card digits", err)
			return domain.CreditCard{}, errors.New("failed to protect card data")
		}
		card.LastFourEncrypted = enc
	}

	if err := s.cardRepo.Create(ctx, &card); err != nil {
		logger.Error("Failed to create card", err)
		return domain.CreditCard{}, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			logger.Warn("Failed to invalidate card cache", "user_id", userID, "error", err)
		}
	}

	return card, nil
}

// GetUserCards returns the user's cards, serving active-only reads from the
// cache when possible.
func (s *Service) GetUserCards(ctx context.Context, userID uint, activeOnly bool) ([]domain.CreditCard, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if activeOnly && s.cache != nil {
		if cards, ok := s.cache.Get(ctx, userID); ok {
			return cards, nil
		}
	}

	cards, err := s.cardRepo.FindByUser(ctx, userID, activeOnly)
	if err != nil {
		logger.Error("Failed to find user cards", err)
		return nil, err
	}

	if activeOnly && s.cache != nil {
		if err := s.cache.Set(ctx, userID, cards); err != nil {
			logger.Warn("Failed to cache user cards", "user_id", userID, "error", err)
		}
	}

	return cards, nil
}

// GetRewardProfiles is the read path the recommendation flow consumes.
func (s *Service) GetRewardProfiles(ctx context.Context, userID uint) ([]domain.RewardProfile, error) {
	cards, err := s.GetUserCards(ctx, userID, true)
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.RewardProfile, 0, len(cards))
	for _, c := range cards {
		profiles = append(profiles, c.ToRewardProfile())
	}

	return profiles, nil
}

func (s *Service) UpdateCard(ctx context.Context, userID, cardID uint, update CardUpdate) (domain.CreditCard, error) {
	if err := ctx.Err(); err != nil {
		return domain.CreditCard{}, fmt.Errorf("context error: %w", err)
	}

	existing, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return domain.CreditCard{}, err
	}
	if existing.UserID != userID {
		return domain.CreditCard{}, errors.New("card does not belong to user")
	}

	fields := map[string]any{}
	if update.CardName != nil {
		fields["card_name"] = *update.CardName
	}
	if update.CashBackRate != nil {
		fields["cash_back_rate"] = datatypes.JSONMap(update.CashBackRate)
	}
	if update.PointsMultiplier != nil {
		fields["points_multiplier"] = datatypes.JSONMap(update.PointsMultiplier)
	}
	if update.Benefits != nil {
		fields["benefits"] = datatypes.NewJSONSlice(*update.Benefits)
	}
	if update.AnnualFee != nil {
		fields["annual_fee"] = *update.AnnualFee
	}
	if update.CreditLimit != nil {
		fields["credit_limit"] = *update.CreditLimit
	}
	if update.IsActive != nil {
		fields["is_active"] = *update.IsActive
	}
	if len(fields) == 0 {
		return existing, nil
	}

	card, err := s.cardRepo.UpdateFields(ctx, cardID, fields)
	if err != nil {
		logger.Error("Failed to update card", err)
		return domain.CreditCard{}, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			logger.Warn("Failed to invalidate card cache", "user_id", userID, "error", err)
		}
	}

	return card, nil
}

// DeleteCard deactivates rather than destroys; transactions keep their card
// references.
func (s *Service) DeleteCard(ctx context.Context, userID, cardID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	existing, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return errors.New("card does not belong to user")
	}

	if err := s.cardRepo.Deactivate(ctx, cardID); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			logger.Warn("Failed to invalidate card cache", "user_id", userID, "error", err)
		}
	}

	return nil
}

// LastFour decrypts the stored digits for display ("**** 1234" style UIs).
func (s *Service) LastFour(card domain.CreditCard) (string, error) {
	if card.LastFourEncrypted == "" {
		return "", nil
	}

	strDecode := goshortcute.StringtoBase64Decode(card.LastFourEncrypted)
	plain, err := goshortcute.AESCBCDecrypt([]byte(strDecode), []byte(s.cardDataKey))
	if err != nil {
		return "", fmt.Errorf("failed to decrypt card digits: %w", err)
	}

	return string(plain), nil
}

func (s *Service) encryptLastFour(lastFour string) (string, error) {
	enc, err := goshortcute.AESCBCEncrypt([]byte(lastFour), []byte(s.cardDataKey))
	if err != nil {
		return "", err
	}

	return goshortcute.StringtoBase64Encode(enc), nil
}
