package postgres

import (
	"context"
	"errors"

	"agenticWallet/domain"

	"gorm.io/gorm"
)

type CardRepository struct {
	DB *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{
		DB: db,
	}
}

func (r *CardRepository) Create(ctx context.Context, card *domain.CreditCard) error {
	if err := r.DB.WithContext(ctx).Create(&card).Error; err != nil {
		return err
	}

	return nil
}

func (r *CardRepository) FindByID(ctx context.Context, id uint) (domain.CreditCard, error) {
	var card domain.CreditCard

	err := r.DB.WithContext(ctx).First(&card, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CreditCard{}, errors.New("card not found")
		}
		return domain.CreditCard{}, err
	}

	return card, nil
}

func (r *CardRepository) FindByUser(ctx context.Context, userID uint, activeOnly bool) ([]domain.CreditCard, error) {
	var cards []domain.CreditCard

	q := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	if err := q.Order("id").Find(&cards).Error; err != nil {
		return nil, err
	}

	return cards, nil
}

// UpdateFields applies a partial update. Callers build the column map from an
// explicit optional-field struct; nothing is set reflectively.
func (r *CardRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) (domain.CreditCard, error) {
	result := r.DB.WithContext(ctx).Model(&domain.CreditCard{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return domain.CreditCard{}, result.Error
	}
	if result.RowsAffected == 0 {
		return domain.CreditCard{}, errors.New("card not found")
	}

	return r.FindByID(ctx, id)
}

// Deactivate soft-disables a card; history keeps referencing it.
func (r *CardRepository) Deactivate(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Model(&domain.CreditCard{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("card not found or already inactive")
	}

	return nil
}
