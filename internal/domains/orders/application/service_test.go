package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	cartmemory "github.com/programthis/order-cart-service/internal/domains/cart/adapters/memory"
	cartapp "github.com/programthis/order-cart-service/internal/domains/cart/application"
	cartports "github.com/programthis/order-cart-service/internal/domains/cart/ports"
	"github.com/programthis/order-cart-service/internal/domains/catalog"
	ordersmemory "github.com/programthis/order-cart-service/internal/domains/orders/adapters/memory"
	"github.com/programthis/order-cart-service/internal/domains/orders/domain"
)

type stubCatalog struct {
	products map[int64]catalog.Product
	calls    int
}

func (s *stubCatalog) GetProduct(_ context.Context, productID int64) (catalog.Product, error) {
	s.calls++
	product, ok := s.products[productID]
	if !ok {
		return catalog.Product{}, catalog.ErrProductNotFound
	}
	return product, nil
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{products: map[int64]catalog.Product{
		101: {ID: 101, Name: "Laptop", Price: decimal.RequireFromString("10.00")},
		102: {ID: 102, Name: "Mouse", Price: decimal.RequireFromString("25.50")},
	}}
}

// spyOrderRepo counts writes so tests can assert nothing was persisted on an
// aborted checkout.
type spyOrderRepo struct {
	*ordersmemory.Repository
	saves int
}

func (r *spyOrderRepo) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	r.saves++
	return r.Repository.Save(ctx, order)
}

type fixture struct {
	orders  *Service
	carts   cartports.Service
	repo    *spyOrderRepo
	gateway *stubCatalog
}

func newFixture() *fixture {
	gateway := newStubCatalog()
	carts := cartapp.NewService(cartmemory.NewRepository(), gateway)
	repo := &spyOrderRepo{Repository: ordersmemory.NewRepository()}
	return &fixture{
		orders:  NewService(repo, carts, gateway),
		carts:   carts,
		repo:    repo,
		gateway: gateway,
	}
}

func (f *fixture) fillCart(t *testing.T, userID int64) {
	t.Helper()
	_, err := f.carts.AddItem(context.Background(), userID, 101, 2)
	require.NoError(t, err)
	_, err = f.carts.AddItem(context.Background(), userID, 102, 1)
	require.NoError(t, err)
}

func TestCreateFromCart_FreezesCartIntoOrder(t *testing.T) {
	f := newFixture()
	f.fillCart(t, 7)

	order, err := f.orders.CreateFromCart(context.Background(), 7, "10 Main St", "CARD")
	require.NoError(t, err)
	require.NotZero(t, order.ID)
	require.Equal(t, domain.StatusPending, order.Status)
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("45.50")))
	require.Len(t, order.Lines, 2)
	require.Equal(t, "Laptop", order.Lines[0].ProductName)

	cart, err := f.carts.GetOrCreate(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())
}

func TestCreateFromCart_UsesPriceSnapshotsNotCurrentPrices(t *testing.T) {
	f := newFixture()
	f.fillCart(t, 7)

	// Catalog price moves after the items were added; the order still bills
	// the snapshot captured at addition time.
	f.gateway.products[101] = catalog.Product{ID: 101, Name: "Laptop", Price: decimal.RequireFromString("99.00")}

	order, err := f.orders.CreateFromCart(context.Background(), 7, "10 Main St", "CARD")
	require.NoError(t, err)
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("45.50")))
}

func TestCreateFromCart_EmptyCartAbortsBeforeAnyWork(t *testing.T) {
	f := newFixture()
	_, err := f.carts.GetOrCreate(context.Background(), 7)
	require.NoError(t, err)
	f.gateway.calls = 0

	_, err = f.orders.CreateFromCart(context.Background(), 7, "10 Main St", "CARD")
	require.ErrorIs(t, err, ErrEmptyCart)
	require.Zero(t, f.gateway.calls)
	require.Zero(t, f.repo.saves)
}

func TestCreateFromCart_MissingProductAbortsWithoutPersisting(t *testing.T) {
	f := newFixture()
	f.fillCart(t, 7)
	delete(f.gateway.products, 102)

	_, err := f.orders.CreateFromCart(context.Background(), 7, "10 Main St", "CARD")
	require.ErrorIs(t, err, ErrProductNotInCatalog)
	require.ErrorContains(t, err, "product 102")
	require.Zero(t, f.repo.saves)

	// The cart survives the failed checkout.
	cart, err := f.carts.GetOrCreate(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 2)
}

func TestPlaceFromCart_LeavesCartIntact(t *testing.T) {
	f := newFixture()
	f.fillCart(t, 7)

	order, err := f.orders.PlaceFromCart(context.Background(), 7, "10 Main St", "CARD")
	require.NoError(t, err)
	require.NotZero(t, order.ID)

	cart, err := f.carts.GetOrCreate(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 2)
}

func TestGetByID(t *testing.T) {
	f := newFixture()
	f.fillCart(t, 7)
	created, err := f.orders.CreateFromCart(context.Background(), 7, "10 Main St", "CARD")
	require.NoError(t, err)

	loaded, err := f.orders.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, loaded.ID)
	require.Len(t, loaded.Lines, 2)

	_, err = f.orders.GetByID(context.Background(), 9999)
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListByUser_EmptyIsNormal(t *testing.T) {
	f := newFixture()

	orders, err := f.orders.ListByUser(context.Background(), 7)
	require.NoError(t, err)
	require.Empty(t, orders)

	f.fillCart(t, 7)
	_, err = f.orders.CreateFromCart(context.Background(), 7, "10 Main St", "CARD")
	require.NoError(t, err)

	orders, err = f.orders.ListByUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, orders, 1)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture()
	f.fillCart(t, 7)
	created, err := f.orders.CreateFromCart(context.Background(), 7, "10 Main St", "CARD")
	require.NoError(t, err)

	updated, err := f.orders.UpdateStatus(context.Background(), created.ID, domain.StatusPaid)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPaid, updated.Status)
	// Everything but the status stays frozen.
	require.True(t, updated.TotalAmount.Equal(created.TotalAmount))
	require.Equal(t, created.Lines, updated.Lines)

	_, err = f.orders.UpdateStatus(context.Background(), created.ID, domain.StatusDelivered)
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.orders.UpdateStatus(context.Background(), 9999, domain.StatusPaid)
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestDelete(t *testing.T) {
	f := newFixture()
	f.fillCart(t, 7)
	created, err := f.orders.CreateFromCart(context.Background(), 7, "10 Main St", "CARD")
	require.NoError(t, err)

	require.NoError(t, f.orders.Delete(context.Background(), created.ID))
	require.ErrorIs(t, f.orders.Delete(context.Background(), created.ID), ErrOrderNotFound)
}
