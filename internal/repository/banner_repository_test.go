package repository

import (
	"context"
	"testing"
	"time"

	"inza-store/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBanner(t *testing.T, name string, position int, active bool) *domain.Banner {
	t.Helper()

	banner := &domain.Banner{
		ID:        uuid.New(),
		Name:      name,
		ImageURL:  "/uploads/banners/" + name + ".png",
		Position:  position,
		IsActive:  active,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, NewBannerRepository(testDB).Create(context.Background(), banner))
	t.Cleanup(func() {
		_, _ = testDB.Exec("DELETE FROM banners WHERE id = $1", banner.ID)
	})
	return banner
}

func TestBannerRepository_ActiveListingHidesInactive(t *testing.T) {
	repo := NewBannerRepository(testDB)
	ctx := context.Background()

	active := seedBanner(t, "promo-active", 1, true)
	hidden := seedBanner(t, "promo-hidden", 2, false)

	banners, err := repo.List(ctx, true)
	require.NoError(t, err)

	ids := map[uuid.UUID]bool{}
	for _, b := range banners {
		ids[b.ID] = true
	}
	assert.True(t, ids[active.ID])
	assert.False(t, ids[hidden.ID], "inactive banners stay off the storefront")

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	ids = map[uuid.UUID]bool{}
	for _, b := range all {
		ids[b.ID] = true
	}
	assert.True(t, ids[hidden.ID], "admin listing includes inactive banners")
}

func TestBannerRepository_ReorderRewritesPositions(t *testing.T) {
	repo := NewBannerRepository(testDB)
	ctx := context.Background()

	first := seedBanner(t, "reorder-a", 0, true)
	second := seedBanner(t, "reorder-b", 1, true)
	third := seedBanner(t, "reorder-c", 2, true)

	require.NoError(t, repo.Reorder(ctx, []uuid.UUID{third.ID, first.ID, second.ID}))

	position := func(id uuid.UUID) int {
		var p int
		require.NoError(t, testDB.QueryRow("SELECT position FROM banners WHERE id = $1", id).Scan(&p))
		return p
	}
	assert.Equal(t, 0, position(third.ID))
	assert.Equal(t, 1, position(first.ID))
	assert.Equal(t, 2, position(second.ID))
}

func TestBannerRepository_UpdateAndDelete(t *testing.T) {
	repo := NewBannerRepository(testDB)
	ctx := context.Background()

	banner := seedBanner(t, "update-banner", 0, true)

	banner.IsActive = false
	banner.ButtonText = "Voir l'offre"
	require.NoError(t, repo.Update(ctx, banner))

	got, err := repo.FindByID(ctx, banner.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, "Voir l'offre", got.ButtonText)

	require.NoError(t, repo.Delete(ctx, banner.ID))
	_, err = repo.FindByID(ctx, banner.ID)
	assert.ErrorIs(t, err, ErrBannerNotFound)
}
