package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	cartmemory "github.com/programthis/order-cart-service/internal/domains/cart/adapters/memory"
	"github.com/programthis/order-cart-service/internal/domains/catalog"
)

type stubCatalog struct {
	products map[int64]catalog.Product
	err      error
	calls    int
}

func (s *stubCatalog) GetProduct(_ context.Context, productID int64) (catalog.Product, error) {
	s.calls++
	if s.err != nil {
		return catalog.Product{}, s.err
	}
	product, ok := s.products[productID]
	if !ok {
		return catalog.Product{}, catalog.ErrProductNotFound
	}
	return product, nil
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{products: map[int64]catalog.Product{
		101: {ID: 101, Name: "Laptop", Price: decimal.RequireFromString("1200.00")},
		102: {ID: 102, Name: "Mouse", Price: decimal.RequireFromString("25.50")},
	}}
}

func TestGetOrCreate_ReturnsSameCartPerUser(t *testing.T) {
	svc := NewService(cartmemory.NewRepository(), newStubCatalog())

	first, err := svc.GetOrCreate(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, first.IsEmpty())

	second, err := svc.GetOrCreate(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
}

func TestAddItem_SnapshotsCatalogPrice(t *testing.T) {
	gateway := newStubCatalog()
	svc := NewService(cartmemory.NewRepository(), gateway)

	cart, err := svc.AddItem(context.Background(), 7, 101, 2)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	line, ok := cart.Line(101)
	require.True(t, ok)
	require.True(t, line.PriceAtAddition.Equal(decimal.RequireFromString("1200.00")))

	// The catalog price changes; topping up keeps the original snapshot.
	gateway.products[101] = catalog.Product{ID: 101, Name: "Laptop", Price: decimal.RequireFromString("999.00")}
	cart, err = svc.AddItem(context.Background(), 7, 101, 1)
	require.NoError(t, err)
	line, ok = cart.Line(101)
	require.True(t, ok)
	require.Equal(t, int32(3), line.Quantity)
	require.True(t, line.PriceAtAddition.Equal(decimal.RequireFromString("1200.00")))
}

func TestAddItem_UnknownProductLeavesCartUntouched(t *testing.T) {
	repo := cartmemory.NewRepository()
	svc := NewService(repo, newStubCatalog())

	_, err := svc.AddItem(context.Background(), 7, 101, 1)
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), 7, 999, 1)
	require.ErrorIs(t, err, ErrProductUnavailable)

	cart, err := svc.GetOrCreate(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
}

func TestAddItem_CatalogOutage(t *testing.T) {
	gateway := newStubCatalog()
	gateway.err = catalog.ErrCatalogUnavailable
	svc := NewService(cartmemory.NewRepository(), gateway)

	_, err := svc.AddItem(context.Background(), 7, 101, 1)
	require.ErrorIs(t, err, ErrProductUnavailable)
}

func TestAddItem_InvalidQuantitySkipsCatalog(t *testing.T) {
	gateway := newStubCatalog()
	svc := NewService(cartmemory.NewRepository(), gateway)

	_, err := svc.AddItem(context.Background(), 7, 101, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Zero(t, gateway.calls)
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	svc := NewService(cartmemory.NewRepository(), newStubCatalog())

	_, err := svc.AddItem(context.Background(), 7, 101, 2)
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(context.Background(), 7, 101, 0)
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())
}

func TestUpdateQuantity_MissingCartOrLine(t *testing.T) {
	svc := NewService(cartmemory.NewRepository(), newStubCatalog())

	_, err := svc.UpdateQuantity(context.Background(), 7, 101, 2)
	require.ErrorIs(t, err, ErrCartNotFound)

	_, err = svc.AddItem(context.Background(), 7, 101, 1)
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(context.Background(), 7, 102, 2)
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItem(t *testing.T) {
	svc := NewService(cartmemory.NewRepository(), newStubCatalog())

	_, err := svc.AddItem(context.Background(), 7, 101, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), 7, 102, 1)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(context.Background(), 7, 101)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)

	_, err = svc.RemoveItem(context.Background(), 7, 101)
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestClear_EmptyCartSucceeds(t *testing.T) {
	svc := NewService(cartmemory.NewRepository(), newStubCatalog())

	_, err := svc.GetOrCreate(context.Background(), 7)
	require.NoError(t, err)

	cart, err := svc.Clear(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())

	cart, err = svc.Clear(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())
}

func TestClear_MissingCart(t *testing.T) {
	svc := NewService(cartmemory.NewRepository(), newStubCatalog())

	_, err := svc.Clear(context.Background(), 7)
	require.ErrorIs(t, err, ErrCartNotFound)
}
