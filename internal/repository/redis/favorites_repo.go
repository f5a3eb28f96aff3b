package redis

import (
	"context"
	"fmt"

	"github.com/jimlawless/whereami"
	"github.com/otkirbek-shop/go-storefront/pkg/clients"
	"github.com/otkirbek-shop/go-storefront/pkg/e"
)

// FavoritesRepo хранит избранное как Redis-множество на пользователя.
// Множество переживает перезапуски сервиса и смену устройств: это
// постоянное хранилище, а не кэш, TTL не ставится.
type FavoritesRepo struct {
	client *clients.RedisClient
}

func NewFavoritesRepo(client *clients.RedisClient) *FavoritesRepo {
	return &FavoritesRepo{client: client}
}

// Add добавляет товар в множество. SADD идемпотентен.
func (r *FavoritesRepo) Add(ctx context.Context, userID int64, productID string) error {
	if err := r.client.Client.SAdd(ctx, r.favoritesKey(userID), productID).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Remove удаляет товар из множества. SREM отсутствующего элемента — no-op.
func (r *FavoritesRepo) Remove(ctx context.Context, userID int64, productID string) error {
	if err := r.client.Client.SRem(ctx, r.favoritesKey(userID), productID).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (r *FavoritesRepo) Has(ctx context.Context, userID int64, productID string) (bool, error) {
	ok, err := r.client.Client.SIsMember(ctx, r.favoritesKey(userID), productID).Result()
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return ok, nil
}

func (r *FavoritesRepo) List(ctx context.Context, userID int64) ([]string, error) {
	ids, err := r.client.Client.SMembers(ctx, r.favoritesKey(userID)).Result()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return ids, nil
}

// favoritesKey возвращает Redis-ключ множества избранного пользователя
func (r *FavoritesRepo) favoritesKey(userID int64) string {
	return fmt.Sprintf("favorites:%d", userID)
}
