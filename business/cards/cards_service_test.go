package cards

import (
	"context"
	"errors"
	"testing"

	"agenticWallet/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeCardRepo struct {
	cards  map[uint]domain.CreditCard
	nextID uint
}

func newFakeCardRepo() *fakeCardRepo {
	return &fakeCardRepo{cards: map[uint]domain.CreditCard{}, nextID: 1}
}

func (f *fakeCardRepo) Create(_ context.Context, card *domain.CreditCard) error {
	card.ID = f.nextID
	f.nextID++
	f.cards[card.ID] = *card
	return nil
}

func (f *fakeCardRepo) FindByID(_ context.Context, id uint) (domain.CreditCard, error) {
	card, ok := f.cards[id]
	if !ok {
		return domain.CreditCard{}, errors.New("card not found")
	}
	return card, nil
}

func (f *fakeCardRepo) FindByUser(_ context.Context, userID uint, activeOnly bool) ([]domain.CreditCard, error) {
	out := []domain.CreditCard{}
	for _, c := range f.cards {
		if c.UserID != userID {
			continue
		}
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCardRepo) UpdateFields(_ context.Context, id uint, fields map[string]any) (domain.CreditCard, error) {
	card, ok := f.cards[id]
	if !ok {
		return domain.CreditCard{}, errors.New("card not found")
	}
	if v, ok := fields["card_name"]; ok {
		card.CardName = v.(string)
	}
	if v, ok := fields["cash_back_rate"]; ok {
		card.CashBackRate = v.(datatypes.JSONMap)
	}
	if v, ok := fields["annual_fee"]; ok {
		card.AnnualFee = v.(float64)
	}
	if v, ok := fields["is_active"]; ok {
		card.IsActive = v.(bool)
	}
	f.cards[id] = card
	return card, nil
}

func (f *fakeCardRepo) Deactivate(_ context.Context, id uint) error {
	card, ok := f.cards[id]
	if !ok {
		return errors.New("card not found")
	}
	card.IsActive = false
	f.cards[id] = card
	return nil
}

type fakeCache struct {
	entries     map[uint][]domain.CreditCard
	hits        int
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[uint][]domain.CreditCard{}}
}

func (f *fakeCache) Get(_ context.Context, userID uint) ([]domain.CreditCard, bool) {
	cards, ok := f.entries[userID]
	if ok {
		f.hits++
	}
	return cards, ok
}

func (f *fakeCache) Set(_ context.Context, userID uint, cards []domain.CreditCard) error {
	f.entries[userID] = cards
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, userID uint) error {
	delete(f.entries, userID)
	f.invalidated++
	return nil
}

const testDataKey = "0123456789abcdef0123456789abcdef"

func diningCardInput() CardInput {
	return CardInput{
		CardName:         "Dining Plus",
		Issuer:           "Chase",
		CashBackRate:     map[string]any{"dining": 0.03, "other": 0.01},
		PointsMultiplier: map[string]any{"dining": 2.0, "other": 1.0},
		Benefits:         []string{"airport lounge access"},
		AnnualFee:        95,
	}
}

func TestCreateCard(t *testing.T) {
	repo := newFakeCardRepo()
	cache := newFakeCache()
	svc := NewService(repo, cache, testDataKey)

	card, err := svc.CreateCard(context.Background(), 7, diningCardInput())
	require.NoError(t, err)

	assert.NotZero(t, card.ID)
	assert.Equal(t, uint(7), card.UserID)
	assert.True(t, card.IsActive)
	assert.Equal(t, 1, cache.invalidated)
}

func TestCreateCardValidation(t *testing.T) {
	svc := NewService(newFakeCardRepo(), newFakeCache(), testDataKey)

	_, err := svc.CreateCard(context.Background(), 7, CardInput{
		CashBackRate: map[string]any{"other": 0.01},
	})
	require.Error(t, err, "missing card name")

	_, err = svc.CreateCard(context.Background(), 7, CardInput{
		CardName: "No Rewards",
	})
	require.Error(t, err, "no reward rate maps")
}

func TestCreateCardEncryptsLastFour(t *testing.T) {
	repo := newFakeCardRepo()
	svc := NewService(repo, newFakeCache(), testDataKey)

	input := diningCardInput()
	input.LastFourDigits = "4242"

	card, err := svc.CreateCard(context.Background(), 7, input)
	require.NoError(t, err)
	require.NotEmpty(t, card.LastFourEncrypted)
	assert.NotEqual(t, "4242", card.LastFourEncrypted)

	plain, err := svc.LastFour(card)
	require.NoError(t, err)
	assert.Equal(t, "4242", plain)
}

func TestGetUserCardsUsesCache(t *testing.T) {
	repo := newFakeCardRepo()
	cache := newFakeCache()
	svc := NewService(repo, cache, testDataKey)

	_, err := svc.CreateCard(context.Background(), 7, diningCardInput())
	require.NoError(t, err)

	first, err := svc.GetUserCards(context.Background(), 7, true)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 0, cache.hits)

	second, err := svc.GetUserCards(context.Background(), 7, true)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 1, cache.hits)
}

func TestGetRewardProfiles(t *testing.T) {
	repo := newFakeCardRepo()
	svc := NewService(repo, newFakeCache(), testDataKey)

	_, err := svc.CreateCard(context.Background(), 7, diningCardInput())
	require.NoError(t, err)

	profiles, err := svc.GetRewardProfiles(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	assert.Equal(t, "Dining Plus", profiles[0].CardName)
	assert.InDelta(t, 0.03, profiles[0].CashBackRate["dining"], 1e-9)
	assert.InDelta(t, 2.0, profiles[0].PointsMultiplier["dining"], 1e-9)
	assert.Equal(t, []string{"airport lounge access"}, profiles[0].Benefits)
}

func TestUpdateCardPartial(t *testing.T) {
	repo := newFakeCardRepo()
	cache := newFakeCache()
	svc := NewService(repo, cache, testDataKey)

	created, err := svc.CreateCard(context.Background(), 7, diningCardInput())
	require.NoError(t, err)

	name := "Dining Plus Signature"
	fee := 150.0
	updated, err := svc.UpdateCard(context.Background(), 7, created.ID, CardUpdate{
		CardName:  &name,
		AnnualFee: &fee,
	})
	require.NoError(t, err)

	assert.Equal(t, name, updated.CardName)
	assert.InDelta(t, fee, updated.AnnualFee, 1e-9)
	assert.Equal(t, created.Issuer, updated.Issuer)
	assert.Equal(t, 2, cache.invalidated)
}

func TestUpdateCardOwnership(t *testing.T) {
	repo := newFakeCardRepo()
	svc := NewService(repo, newFakeCache(), testDataKey)

	created, err := svc.CreateCard(context.Background(), 7, diningCardInput())
	require.NoError(t, err)

	name := "stolen"
	_, err = svc.UpdateCard(context.Background(), 99, created.ID, CardUpdate{CardName: &name})
	require.Error(t, err)
}

func TestDeleteCardDeactivates(t *testing.T) {
	repo := newFakeCardRepo()
	svc := NewService(repo, newFakeCache(), testDataKey)

	created, err := svc.CreateCard(context.Background(), 7, diningCardInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCard(context.Background(), 7, created.ID))

	active, err := svc.GetUserCards(context.Background(), 7, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.GetUserCards(context.Background(), 7, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].IsActive)
}
