package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoritesUseCase(t *testing.T) {
	uc := NewFavoritesUC(newFakeFavoritesRepo(), testLogger())
	ctx := context.Background()

	require.NoError(t, uc.Add(ctx, 1, "p1"))
	require.NoError(t, uc.Add(ctx, 1, "p1")) // повтор — no-op
	require.NoError(t, uc.Add(ctx, 1, "p2"))
	require.NoError(t, uc.Add(ctx, 2, "p3"))

	ids, err := uc.List(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2"}, ids)

	ok, err := uc.Has(ctx, 1, "p1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.Has(ctx, 2, "p1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, uc.Remove(ctx, 1, "p1"))
	require.NoError(t, uc.Remove(ctx, 1, "ghost")) // отсутствующий — no-op

	ids, err = uc.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, ids)
}
