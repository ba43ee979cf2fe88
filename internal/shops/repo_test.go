package shops

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/juvoapp/juvo-backend/pkg/db/models"
	"github.com/juvoapp/juvo-backend/pkg/enums"
	"github.com/juvoapp/juvo-backend/pkg/pagination"
)

func setupShopsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	shops := `
CREATE TABLE IF NOT EXISTS shops (
  id TEXT PRIMARY KEY,
  owner_user_id TEXT NOT NULL,
  display_name TEXT NOT NULL,
  type TEXT,
  phone TEXT,
  active INTEGER NOT NULL DEFAULT 1,
  location TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	invitations := `
CREATE TABLE IF NOT EXISTS shop_invitations (
  id TEXT PRIMARY KEY,
  shop_id TEXT NOT NULL,
  driver_user_id TEXT NOT NULL,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  UNIQUE (shop_id, driver_user_id)
);`
	require.NoError(t, db.Exec(shops).Error)
	require.NoError(t, db.Exec(invitations).Error)
	return db
}

func seedShop(t *testing.T, db *gorm.DB, shopType *enums.ShopType) models.Shop {
	t.Helper()
	shop := models.Shop{
		ID:          uuid.New(),
		OwnerUserID: uuid.New(),
		DisplayName: "Test Shop",
		Type:        shopType,
		Active:      true,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	require.NoError(t, db.Create(&shop).Error)
	return shop
}

func TestRepositoryFindByIDLoadsType(t *testing.T) {
	db := setupShopsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	agri := enums.ShopTypeAgricultural
	seeded := seedShop(t, db, &agri)

	found, err := repo.FindByID(ctx, seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Type)
	assert.Equal(t, enums.ShopTypeAgricultural, *found.Type)
	assert.Equal(t, enums.ShopTypeAgricultural, found.EffectiveType())

	untyped := seedShop(t, db, nil)
	found, err = repo.FindByID(ctx, untyped.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Type)
	assert.Equal(t, enums.ShopTypeRetail, found.EffectiveType())
}

func TestInviteDriverIsIdempotent(t *testing.T) {
	db := setupShopsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	shop := seedShop(t, db, nil)
	driverID := uuid.New()

	require.NoError(t, repo.InviteDriver(ctx, shop.ID, driverID))
	require.NoError(t, repo.InviteDriver(ctx, shop.ID, driverID))

	var count int64
	require.NoError(t, db.Model(&models.ShopInvitation{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	has, err := repo.HasInvitation(ctx, shop.ID, driverID)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestRevokeInvitation(t *testing.T) {
	db := setupShopsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	shop := seedShop(t, db, nil)
	driverID := uuid.New()

	require.NoError(t, repo.InviteDriver(ctx, shop.ID, driverID))
	require.NoError(t, repo.RevokeInvitation(ctx, shop.ID, driverID))

	has, err := repo.HasInvitation(ctx, shop.ID, driverID)
	require.NoError(t, err)
	assert.False(t, has)

	// Revoking a missing invitation is not an error.
	require.NoError(t, repo.RevokeInvitation(ctx, shop.ID, driverID))
}

func TestListInvitationsPagination(t *testing.T) {
	db := setupShopsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	shop := seedShop(t, db, nil)
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		inv := models.ShopInvitation{
			ID:           uuid.New(),
			ShopID:       shop.ID,
			DriverUserID: uuid.New(),
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&inv).Error)
	}

	firstPage, nextCursor, err := repo.ListInvitations(ctx, shop.ID, pagination.Params{Limit: 3})
	require.NoError(t, err)
	require.Len(t, firstPage, 3)
	require.NotEmpty(t, nextCursor)

	secondPage, lastCursor, err := repo.ListInvitations(ctx, shop.ID, pagination.Params{Limit: 3, Cursor: nextCursor})
	require.NoError(t, err)
	require.Len(t, secondPage, 2)
	assert.Empty(t, lastCursor)

	seen := map[uuid.UUID]bool{}
	for _, inv := range append(firstPage, secondPage...) {
		assert.False(t, seen[inv.ID], "invitation repeated across pages")
		seen[inv.ID] = true
	}
}
