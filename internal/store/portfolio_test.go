package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplaincrypto/risk-engine/pkg/models"
	"github.com/xplaincrypto/risk-engine/pkg/utils/errors"
)

func TestPortfolioStoreSaveAndGet(t *testing.T) {
	s := NewPortfolioStore()

	err := s.Save(models.Portfolio{
		ID: "p1",
		Holdings: []models.Holding{
			{Symbol: "BTC", Quantity: 1},
			{Symbol: "UNI", Quantity: 100, Tags: []string{"DeFi"}},
		},
	})
	require.NoError(t, err)

	got, err := s.Get("p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)
	require.Len(t, got.Holdings, 2)
	assert.Equal(t, []string{"DeFi"}, got.Holdings[1].Tags)
	assert.False(t, got.Created.IsZero())
	assert.False(t, got.Updated.IsZero())
}

func TestPortfolioStoreGetMissing(t *testing.T) {
	s := NewPortfolioStore()

	_, err := s.Get("nope")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}

func TestPortfolioStoreSaveValidation(t *testing.T) {
	s := NewPortfolioStore()

	err := s.Save(models.Portfolio{})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindInvalidInput))

	err = s.Save(models.Portfolio{
		ID:       "p1",
		Holdings: []models.Holding{{Symbol: "BTC", Quantity: -1}},
	})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindInvalidInput))
}

func TestPortfolioStoreUpdatePreservesCreated(t *testing.T) {
	s := NewPortfolioStore()

	require.NoError(t, s.Save(models.Portfolio{ID: "p1"}))
	first, err := s.Get("p1")
	require.NoError(t, err)

	require.NoError(t, s.Save(models.Portfolio{ID: "p1", Name: "renamed"}))
	second, err := s.Get("p1")
	require.NoError(t, err)

	assert.Equal(t, first.Created, second.Created)
	assert.Equal(t, "renamed", second.Name)
}

func TestPortfolioStoreListOrderedByID(t *testing.T) {
	s := NewPortfolioStore()

	require.NoError(t, s.Save(models.Portfolio{ID: "b"}))
	require.NoError(t, s.Save(models.Portfolio{ID: "a"}))
	require.NoError(t, s.Save(models.Portfolio{ID: "c"}))

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
	assert.Equal(t, "c", list[2].ID)
}

func TestPortfolioStoreDelete(t *testing.T) {
	s := NewPortfolioStore()

	require.NoError(t, s.Save(models.Portfolio{ID: "p1"}))
	require.NoError(t, s.Delete("p1"))

	_, err := s.Get("p1")
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
	assert.True(t, errors.IsKind(s.Delete("p1"), errors.KindNotFound))
}

func TestPortfolioStoreReturnsSnapshots(t *testing.T) {
	s := NewPortfolioStore()

	require.NoError(t, s.Save(models.Portfolio{
		ID:       "p1",
		Holdings: []models.Holding{{Symbol: "BTC", Quantity: 1}},
	}))

	got, err := s.Get("p1")
	require.NoError(t, err)
	got.Holdings[0].Quantity = 999

	again, err := s.Get("p1")
	require.NoError(t, err)
	assert.Equal(t, 1.0, again.Holdings[0].Quantity)
}
