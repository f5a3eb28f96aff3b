package usecase

import (
	"context"
	"time"

	"github.com/otkirbek-shop/go-storefront/internal/domain"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error)
	// UpdateStatus переводит заказ из статуса from в to.
	// Возвращает false, если заказ не найден или его статус уже не from.
	UpdateStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) (bool, error)
	StatsForWindow(ctx context.Context, from, to time.Time) (*StatsRes, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	// RequeueStale возвращает в pending события, зависшие в processing
	// дольше olderThan (воркер упал между публикацией и отметкой).
	RequeueStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

type UserRepository interface {
	Upsert(ctx context.Context, user *domain.TelegramUser) error
}

type FavoritesRepository interface {
	Add(ctx context.Context, userID int64, productID string) error
	Remove(ctx context.Context, userID int64, productID string) error
	Has(ctx context.Context, userID int64, productID string) (bool, error)
	List(ctx context.Context, userID int64) ([]string, error)
}

type SessionRepository interface {
	SetAdminSession(ctx context.Context, userID int64, ttl time.Duration) error
	HasAdminSession(ctx context.Context, userID int64) (bool, error)
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}
