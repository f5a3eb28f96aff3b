package usecase

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/otkirbek-shop/go-storefront/internal/domain"
	"github.com/otkirbek-shop/go-storefront/pkg/e"
	"github.com/otkirbek-shop/go-storefront/pkg/logger"
)

func testLogger() logger.Logger {
	return logger.NewSlogLogger()
}

type fakeGateway struct {
	fetchProductsFn   func(ctx context.Context) ([]domain.Product, error)
	fetchCategoriesFn func(ctx context.Context) ([]domain.Category, error)
	createProductFn   func(ctx context.Context, product *domain.Product) (*domain.Product, error)
	deleteProductFn   func(ctx context.Context, id string) error
	createCategoryFn  func(ctx context.Context, category *domain.Category) (*domain.Category, error)
	deleteCategoryFn  func(ctx context.Context, id string) error
	submitOrderFn     func(ctx context.Context, order *domain.Order) error
}

func (f *fakeGateway) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	return f.fetchProductsFn(ctx)
}

func (f *fakeGateway) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	return f.fetchCategoriesFn(ctx)
}

func (f *fakeGateway) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	return f.createProductFn(ctx, product)
}

func (f *fakeGateway) DeleteProduct(ctx context.Context, id string) error {
	return f.deleteProductFn(ctx, id)
}

func (f *fakeGateway) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	return f.createCategoryFn(ctx, category)
}

func (f *fakeGateway) DeleteCategory(ctx context.Context, id string) error {
	return f.deleteCategoryFn(ctx, id)
}

func (f *fakeGateway) SubmitOrder(ctx context.Context, order *domain.Order) error {
	if f.submitOrderFn == nil {
		return nil
	}
	return f.submitOrderFn(ctx, order)
}

type fakeImagesInfra struct {
	uploadFn  func(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error)
	cleanedUp [][]string
}

func (f *fakeImagesInfra) UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error) {
	return f.uploadFn(ctx, req)
}

func (f *fakeImagesInfra) CleanupImages(keys []string) {
	f.cleanedUp = append(f.cleanedUp, keys)
}

type fakeOrderRepo struct {
	orders       map[string]*domain.Order
	updateStatus func(ctx context.Context, orderID string, from, to domain.OrderStatus) (bool, error)
	stats        *StatsRes
}

func newFakeOrderRepo(orders ...*domain.Order) *fakeOrderRepo {
	repo := &fakeOrderRepo{orders: make(map[string]*domain.Order)}
	for _, order := range orders {
		repo.orders[order.ID] = order
	}
	return repo
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, orderID string) (*domain.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, e.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userID int64) ([]*domain.Order, error) {
	var result []*domain.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			result = append(result, order)
		}
	}
	// Новые первыми, как и запрос репозитория
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[j].CreatedAt.After(result[i].CreatedAt) {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) (bool, error) {
	if f.updateStatus != nil {
		return f.updateStatus(ctx, orderID, from, to)
	}

	order, ok := f.orders[orderID]
	if !ok || order.Status != from {
		return false, nil
	}
	order.Status = to
	return true, nil
}

func (f *fakeOrderRepo) StatsForWindow(_ context.Context, _, _ time.Time) (*StatsRes, error) {
	return f.stats, nil
}

type fakeOutboxRepo struct {
	created   []*OutboxEvent
	createErr error
}

func (f *fakeOutboxRepo) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	event.ID = int64(len(f.created) + 1)
	f.created = append(f.created, event)
	return event, nil
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(_ context.Context, _ int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(_ context.Context, _ int64) error { return nil }

func (f *fakeOutboxRepo) RequeueStale(_ context.Context, _ time.Duration) (int64, error) {
	return 0, nil
}

// fakeTx реализует pgx.Tx ровно настолько, насколько нужно юзкейсу:
// фиксация и откат. Запросы внутри транзакции уходят в фейковые репозитории.
type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Begin(_ context.Context) (pgx.Tx, error) { return f, nil }

func (f *fakeTx) Commit(_ context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(_ context.Context) error {
	f.rolledBack = true
	return nil
}

func (f *fakeTx) CopyFrom(_ context.Context, _ pgx.Identifier, _ []string, _ pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (f *fakeTx) SendBatch(_ context.Context, _ *pgx.Batch) pgx.BatchResults { return nil }

func (f *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (f *fakeTx) Prepare(_ context.Context, _, _ string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (f *fakeTx) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (f *fakeTx) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) { return nil, nil }

func (f *fakeTx) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row { return nil }

func (f *fakeTx) Conn() *pgx.Conn { return nil }

type fakeTransactional struct {
	tx *fakeTx
}

func (f *fakeTransactional) BeginTx(_ context.Context, _ pgx.TxOptions) (pgx.Tx, error) {
	return f.tx, nil
}

type fakeFavoritesRepo struct {
	sets map[int64]map[string]bool
}

func newFakeFavoritesRepo() *fakeFavoritesRepo {
	return &fakeFavoritesRepo{sets: make(map[int64]map[string]bool)}
}

func (f *fakeFavoritesRepo) Add(_ context.Context, userID int64, productID string) error {
	if f.sets[userID] == nil {
		f.sets[userID] = make(map[string]bool)
	}
	f.sets[userID][productID] = true
	return nil
}

func (f *fakeFavoritesRepo) Remove(_ context.Context, userID int64, productID string) error {
	delete(f.sets[userID], productID)
	return nil
}

func (f *fakeFavoritesRepo) Has(_ context.Context, userID int64, productID string) (bool, error) {
	return f.sets[userID][productID], nil
}

func (f *fakeFavoritesRepo) List(_ context.Context, userID int64) ([]string, error) {
	ids := make([]string, 0, len(f.sets[userID]))
	for id := range f.sets[userID] {
		ids = append(ids, id)
	}
	return ids, nil
}
