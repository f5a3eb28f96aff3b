package usecase

import (
	"context"
	"time"

	"github.com/otkirbek-shop/go-storefront/internal/domain"
	"github.com/otkirbek-shop/go-storefront/pkg/e"
	"github.com/otkirbek-shop/go-storefront/pkg/logger"
)

// UserUseCase регистрирует пользователей Telegram при первом заказе.
// Реестр нужен для отчетов: сколько всего покупателей и кто оформлял
// заказы. Upsert — повторная регистрация обновляет имя и телефон.
type UserUseCase struct {
	userRepo UserRepository
	logger   logger.Logger
}

func NewUserUC(userRepo UserRepository, logger logger.Logger) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, logger: logger}
}

func (u *UserUseCase) RegisterUser(ctx context.Context, req *RegisterUserReq) error {
	const op = "UserUseCase.RegisterUser"

	user := &domain.TelegramUser{
		ID:        req.ID,
		Name:      req.Name,
		Phone:     domain.NormalizePhone(req.Phone),
		CreatedAt: time.Now(),
	}

	if err := u.userRepo.Upsert(ctx, user); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
