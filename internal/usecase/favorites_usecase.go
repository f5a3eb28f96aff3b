package usecase

import (
	"context"

	"github.com/otkirbek-shop/go-storefront/pkg/e"
	"github.com/otkirbek-shop/go-storefront/pkg/logger"
)

// FavoritesUseCase хранит избранное пользователя в Redis. Набор состоит
// из идентификаторов товаров; сам товар подтягивается из снапшота
// каталога на стороне клиента, поэтому здесь только множество.
type FavoritesUseCase struct {
	favoritesRepo FavoritesRepository
	logger        logger.Logger
}

func NewFavoritesUC(favoritesRepo FavoritesRepository, logger logger.Logger) *FavoritesUseCase {
	return &FavoritesUseCase{favoritesRepo: favoritesRepo, logger: logger}
}

// Add добавляет товар в избранное. Повторное добавление — no-op.
func (f *FavoritesUseCase) Add(ctx context.Context, userID int64, productID string) error {
	const op = "FavoritesUseCase.Add"

	if err := f.favoritesRepo.Add(ctx, userID, productID); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// Remove убирает товар из избранного. Отсутствующий товар — no-op.
func (f *FavoritesUseCase) Remove(ctx context.Context, userID int64, productID string) error {
	const op = "FavoritesUseCase.Remove"

	if err := f.favoritesRepo.Remove(ctx, userID, productID); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// Has сообщает, находится ли товар в избранном.
func (f *FavoritesUseCase) Has(ctx context.Context, userID int64, productID string) (bool, error) {
	const op = "FavoritesUseCase.Has"

	ok, err := f.favoritesRepo.Has(ctx, userID, productID)
	if err != nil {
		return false, e.Wrap(op, err)
	}

	return ok, nil
}

// List возвращает идентификаторы избранных товаров.
func (f *FavoritesUseCase) List(ctx context.Context, userID int64) ([]string, error) {
	const op = "FavoritesUseCase.List"

	ids, err := f.favoritesRepo.List(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return ids, nil
}
