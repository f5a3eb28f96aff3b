package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otkirbek-shop/go-storefront/pkg/e"
)

func newTestCartUC(t *testing.T) *CartUseCase {
	t.Helper()

	catalog := newTestCatalogUC(healthyGateway(), nil)
	require.NoError(t, catalog.Refresh(context.Background()))

	return NewCartUC(catalog, testLogger())
}

func TestCartUseCase_AddItem(t *testing.T) {
	t.Run("товар из каталога попадает в корзину", func(t *testing.T) {
		uc := newTestCartUC(t)

		res, err := uc.AddItem(context.Background(), 1, "p1")

		require.NoError(t, err)
		require.Len(t, res.Lines, 1)
		assert.Equal(t, "Плов", res.Lines[0].Name)
		assert.Equal(t, int64(4_500_000), res.Total)
	})

	t.Run("неизвестный товар", func(t *testing.T) {
		uc := newTestCartUC(t)

		_, err := uc.AddItem(context.Background(), 1, "ghost")

		assert.ErrorIs(t, err, e.ErrProductNotFound)
	})

	t.Run("повторное добавление увеличивает количество", func(t *testing.T) {
		uc := newTestCartUC(t)

		_, err := uc.AddItem(context.Background(), 1, "p1")
		require.NoError(t, err)
		res, err := uc.AddItem(context.Background(), 1, "p1")
		require.NoError(t, err)

		require.Len(t, res.Lines, 1)
		assert.Equal(t, 2, res.Lines[0].Quantity)
		assert.Equal(t, int64(9_000_000), res.Total)
	})

	t.Run("корзины пользователей изолированы", func(t *testing.T) {
		uc := newTestCartUC(t)

		_, err := uc.AddItem(context.Background(), 1, "p1")
		require.NoError(t, err)
		_, err = uc.AddItem(context.Background(), 2, "p2")
		require.NoError(t, err)

		first := uc.GetCart(context.Background(), 1)
		second := uc.GetCart(context.Background(), 2)

		require.Len(t, first.Lines, 1)
		require.Len(t, second.Lines, 1)
		assert.Equal(t, "p1", first.Lines[0].ProductID)
		assert.Equal(t, "p2", second.Lines[0].ProductID)
	})
}

func TestCartUseCase_UpdateQuantity(t *testing.T) {
	uc := newTestCartUC(t)
	_, err := uc.AddItem(context.Background(), 1, "p1")
	require.NoError(t, err)

	t.Run("обычное изменение", func(t *testing.T) {
		res, err := uc.UpdateQuantity(context.Background(), 1, "p1", 3)

		require.NoError(t, err)
		assert.Equal(t, 3, res.Lines[0].Quantity)
	})

	t.Run("значение меньше единицы приводится к единице", func(t *testing.T) {
		res, err := uc.UpdateQuantity(context.Background(), 1, "p1", 0)

		require.NoError(t, err)
		assert.Equal(t, 1, res.Lines[0].Quantity)
	})

	t.Run("неизвестная строка — no-op", func(t *testing.T) {
		res, err := uc.UpdateQuantity(context.Background(), 1, "ghost", 5)

		require.NoError(t, err)
		require.Len(t, res.Lines, 1)
		assert.Equal(t, "p1", res.Lines[0].ProductID)
	})
}

func TestCartUseCase_RemoveAndClear(t *testing.T) {
	uc := newTestCartUC(t)
	_, err := uc.AddItem(context.Background(), 1, "p1")
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), 1, "p2")
	require.NoError(t, err)

	res := uc.RemoveItem(context.Background(), 1, "p1")
	require.Len(t, res.Lines, 1)
	assert.Equal(t, "p2", res.Lines[0].ProductID)

	res = uc.Clear(context.Background(), 1)
	assert.Empty(t, res.Lines)
	assert.Zero(t, res.Total)
}

func TestCartUseCase_GetCart_EmptyByDefault(t *testing.T) {
	uc := newTestCartUC(t)

	res := uc.GetCart(context.Background(), 42)

	assert.Empty(t, res.Lines)
	assert.Zero(t, res.Total)
}
