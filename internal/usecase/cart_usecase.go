package usecase

import (
	"context"
	"sync"

	"github.com/otkirbek-shop/go-storefront/internal/domain"
	"github.com/otkirbek-shop/go-storefront/pkg/e"
	"github.com/otkirbek-shop/go-storefront/pkg/logger"
)

// CartUseCase держит корзины пользователей в памяти на время сессии.
// Корзина создается пустой при первом обращении и мутируется только
// явными действиями пользователя. Мьютекс защищает реестр сессий:
// внутри одной сессии конкурентных мутаций нет (один пользователь —
// одна вкладка Mini App).
type CartUseCase struct {
	catalog CatalogUC
	logger  logger.Logger

	mu    sync.Mutex
	carts map[int64]*domain.Cart
}

func NewCartUC(catalog CatalogUC, logger logger.Logger) *CartUseCase {
	return &CartUseCase{
		catalog: catalog,
		logger:  logger,
		carts:   make(map[int64]*domain.Cart),
	}
}

// AddItem добавляет товар в корзину пользователя. Снимок полей товара
// фиксируется в строке на момент добавления.
func (c *CartUseCase) AddItem(ctx context.Context, userID int64, productID string) (*CartRes, error) {
	const op = "CartUseCase.AddItem"

	product, err := c.catalog.GetProductByID(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cart := c.cartLocked(userID)
	cart.AddItem(product)

	return NewCartRes(cart.Lines(), cart.Total()), nil
}

// UpdateQuantity устанавливает количество для строки. Дробные и
// отрицательные значения не принимаются; значения меньше 1 корзина
// приводит к 1 (удаление — только явным RemoveItem).
func (c *CartUseCase) UpdateQuantity(ctx context.Context, userID int64, productID string, quantity int) (*CartRes, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cart := c.cartLocked(userID)
	cart.UpdateQuantity(productID, quantity)

	return NewCartRes(cart.Lines(), cart.Total()), nil
}

// RemoveItem удаляет строку товара; для отсутствующей строки — no-op.
func (c *CartUseCase) RemoveItem(_ context.Context, userID int64, productID string) *CartRes {
	c.mu.Lock()
	defer c.mu.Unlock()

	cart := c.cartLocked(userID)
	cart.RemoveItem(productID)

	return NewCartRes(cart.Lines(), cart.Total())
}

// Clear опустошает корзину пользователя.
func (c *CartUseCase) Clear(_ context.Context, userID int64) *CartRes {
	c.mu.Lock()
	defer c.mu.Unlock()

	cart := c.cartLocked(userID)
	cart.Clear()

	return NewCartRes(cart.Lines(), cart.Total())
}

// GetCart возвращает текущее состояние корзины.
func (c *CartUseCase) GetCart(_ context.Context, userID int64) *CartRes {
	c.mu.Lock()
	defer c.mu.Unlock()

	cart := c.cartLocked(userID)
	return NewCartRes(cart.Lines(), cart.Total())
}

// cartLocked возвращает корзину пользователя, создавая пустую при первом
// обращении. Вызывается только под мьютексом.
func (c *CartUseCase) cartLocked(userID int64) *domain.Cart {
	cart, ok := c.carts[userID]
	if !ok {
		cart = domain.NewCart()
		c.carts[userID] = cart
	}

	return cart
}
