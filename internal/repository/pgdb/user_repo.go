package pgdb

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/otkirbek-shop/go-storefront/internal/domain"
)

// UserRepo хранит реестр пользователей Telegram.
type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Upsert идемпотентно регистрирует пользователя по telegram id.
// Повторная регистрация обновляет имя и телефон, created_at не трогает.
func (u *UserRepo) Upsert(ctx context.Context, user *domain.TelegramUser) error {
	query := `
		INSERT INTO users (id, name, phone, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone
	`

	_, err := u.pool.Exec(ctx, query, user.ID, user.Name, user.Phone, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: failed to upsert user %d: %w", whereami.WhereAmI(), user.ID, err)
	}

	return nil
}
