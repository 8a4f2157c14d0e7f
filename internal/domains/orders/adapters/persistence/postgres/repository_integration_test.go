//go:build integration
// +build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	cartdomain "github.com/programthis/order-cart-service/internal/domains/cart/domain"
	"github.com/programthis/order-cart-service/internal/domains/orders/domain"
	"github.com/programthis/order-cart-service/internal/domains/orders/ports"
	"github.com/programthis/order-cart-service/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("orders_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func buildOrder(t *testing.T, userID int64, when time.Time) *domain.Order {
	t.Helper()
	cart, err := cartdomain.NewCart(userID)
	require.NoError(t, err)
	require.NoError(t, cart.AddProduct(101, 2, decimal.RequireFromString("10.00"), when))
	require.NoError(t, cart.AddProduct(102, 1, decimal.RequireFromString("25.50"), when))
	order, err := domain.NewFromCart(cart, map[int64]string{101: "Laptop", 102: "Mouse"}, "10 Main St", "CARD", when)
	require.NoError(t, err)
	return order
}

func TestPostgresRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Save(ctx, buildOrder(t, 7, time.Now().UTC()))
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.Equal(t, domain.StatusPending, saved.Status)
	assert.True(t, saved.TotalAmount.Equal(decimal.RequireFromString("45.50")))

	loaded, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Lines, 2)
	assert.Equal(t, "Laptop", loaded.Lines[0].ProductName)
	assert.Equal(t, "Mouse", loaded.Lines[1].ProductName)
	assert.True(t, loaded.Lines[0].Subtotal.Equal(decimal.RequireFromString("20.00")))

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_StatusUpdateLeavesLinesFrozen(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Save(ctx, buildOrder(t, 7, time.Now().UTC()))
	require.NoError(t, err)

	require.NoError(t, saved.TransitionTo(domain.StatusPaid, time.Now().UTC()))
	updated, err := repo.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, updated.Status)
	assert.True(t, updated.TotalAmount.Equal(saved.TotalAmount))
	require.Len(t, updated.Lines, 2)

	// Updating an order that no longer exists fails.
	ghost := *saved
	ghost.ID = 9999
	_, err = repo.Save(ctx, &ghost)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_FindByUserOrdersByDateDesc(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	older, err := repo.Save(ctx, buildOrder(t, 7, base.Add(-time.Hour)))
	require.NoError(t, err)
	newer, err := repo.Save(ctx, buildOrder(t, 7, base))
	require.NoError(t, err)
	_, err = repo.Save(ctx, buildOrder(t, 8, base))
	require.NoError(t, err)

	orders, err := repo.FindByUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID)
	assert.Equal(t, older.ID, orders[1].ID)
	require.Len(t, orders[0].Lines, 2)

	empty, err := repo.FindByUser(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPostgresRepository_DeleteCascadesToLines(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Save(ctx, buildOrder(t, 7, time.Now().UTC()))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, saved.ID))

	_, err = repo.GetByID(ctx, saved.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	var lineCount int64
	require.NoError(t, db.Table("order_items").Where("order_id = ?", saved.ID).Count(&lineCount).Error)
	assert.Zero(t, lineCount)

	assert.ErrorIs(t, repo.Delete(ctx, saved.ID), ports.ErrNotFound)
}
