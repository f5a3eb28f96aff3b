package usecase

import (
	"context"

	"github.com/otkirbek-shop/go-storefront/internal/domain"
)

type CatalogUC interface {
	Refresh(ctx context.Context) error
	GetProducts(ctx context.Context) []domain.Product
	GetCategories(ctx context.Context) []domain.Category
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	AddProduct(ctx context.Context, req *AddProductReq) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	AddCategory(ctx context.Context, req *AddCategoryReq) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type CartUC interface {
	AddItem(ctx context.Context, userID int64, productID string) (*CartRes, error)
	UpdateQuantity(ctx context.Context, userID int64, productID string, quantity int) (*CartRes, error)
	RemoveItem(ctx context.Context, userID int64, productID string) *CartRes
	Clear(ctx context.Context, userID int64) *CartRes
	GetCart(ctx context.Context, userID int64) *CartRes
}

type OrderUC interface {
	CreateOrder(ctx context.Context, userID int64, req *CreateOrderReq) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) (*domain.Order, error)
	ConfirmReceived(ctx context.Context, userID int64, orderID string) (*domain.Order, error)
	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int64) ([]*domain.Order, error)
	StatsForWindow(ctx context.Context, req *StatsReq) (*StatsRes, error)
}

type FavoritesUC interface {
	Add(ctx context.Context, userID int64, productID string) error
	Remove(ctx context.Context, userID int64, productID string) error
	Has(ctx context.Context, userID int64, productID string) (bool, error)
	List(ctx context.Context, userID int64) ([]string, error)
}

type UserUC interface {
	RegisterUser(ctx context.Context, req *RegisterUserReq) error
}
