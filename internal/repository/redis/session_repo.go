package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/jimlawless/whereami"
	"github.com/otkirbek-shop/go-storefront/pkg/clients"
	"github.com/otkirbek-shop/go-storefront/pkg/e"
)

// SessionRepo хранит отметки об успешном входе в админ-панель.
// Ключ живет ограниченное время: по истечении TTL админ проходит
// проверку initData заново.
type SessionRepo struct {
	client *clients.RedisClient
}

func NewSessionRepo(client *clients.RedisClient) *SessionRepo {
	return &SessionRepo{client: client}
}

func (r *SessionRepo) SetAdminSession(ctx context.Context, userID int64, ttl time.Duration) error {
	if err := r.client.Client.Set(ctx, r.sessionKey(userID), "1", ttl).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (r *SessionRepo) HasAdminSession(ctx context.Context, userID int64) (bool, error) {
	count, err := r.client.Client.Exists(ctx, r.sessionKey(userID)).Result()
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return count > 0, nil
}

// sessionKey возвращает Redis-ключ сессии администратора
func (r *SessionRepo) sessionKey(userID int64) string {
	return fmt.Sprintf("admin_session:%d", userID)
}
