package postgres

import (
	"context"
	"errors"
	"time"

	"agenticWallet/domain"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	DB *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{
		DB: db,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	if err := r.DB.WithContext(ctx).Create(&txn).Error; err != nil {
		return err
	}

	return nil
}

func (r *TransactionRepository) FindByRef(ctx context.Context, ref string) (domain.Transaction, error) {
	var txn domain.Transaction

	err := r.DB.WithContext(ctx).Where("transaction_ref = ?", ref).First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Transaction{}, errors.New("transaction not found")
		}
		return domain.Transaction{}, err
	}

	return txn, nil
}

func (r *TransactionRepository) FindByUser(ctx context.Context, userID uint, limit int) ([]domain.Transaction, error) {
	var txns []domain.Transaction

	q := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("transaction_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Find(&txns).Error; err != nil {
		return nil, err
	}

	return txns, nil
}

func (r *TransactionRepository) FindByUserSince(ctx context.Context, userID uint, since time.Time) ([]domain.Transaction, error) {
	var txns []domain.Transaction

	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND transaction_date >= ?", userID, since).
		Order("transaction_date DESC").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}

	return txns, nil
}
