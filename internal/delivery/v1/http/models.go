package http

import (
	"time"

	"github.com/otkirbek-shop/go-storefront/internal/domain"
)

// Денежные поля в ответах API — int64 в тийинах, как и внутри сервиса.
// Перевод в сумы для отображения делает клиент.

type productResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         int64   `json:"price"`
	OriginalPrice *int64  `json:"originalPrice,omitempty"`
	Image         string  `json:"image,omitempty"`
	Category      string  `json:"category"`
	Description   string  `json:"description,omitempty"`
	Rating        float64 `json:"rating,omitempty"`
	Reviews       int     `json:"reviews,omitempty"`
	Discount      int     `json:"discount,omitempty"`
	InStock       bool    `json:"inStock"`
}

type categoryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Icon         string `json:"icon,omitempty"`
	ProductCount int    `json:"productCount"`
}

type cartLineResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Image     string `json:"image,omitempty"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

type cartResponse struct {
	Items []cartLineResponse `json:"items"`
	Total int64              `json:"total"`
}

type orderResponse struct {
	ID        string             `json:"id"`
	Items     []cartLineResponse `json:"items"`
	Total     int64              `json:"total"`
	Status    string             `json:"status"`
	Phone     string             `json:"phone"`
	Location  string             `json:"location"`
	Address   string             `json:"address,omitempty"`
	Name      string             `json:"name,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

type favoritesResponse struct {
	ProductIDs []string `json:"productIds"`
}

type createOrderRequest struct {
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Address  string `json:"address,omitempty"`
	Name     string `json:"name,omitempty"`
}

type addCartItemRequest struct {
	ProductID string `json:"productId"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type addCategoryRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

func toProductResponse(product *domain.Product) productResponse {
	return productResponse{
		ID:            product.ID,
		Name:          product.Name,
		Price:         product.Price,
		OriginalPrice: product.OriginalPrice,
		Image:         product.Image,
		Category:      product.CategoryID,
		Description:   product.Description,
		Rating:        product.Rating,
		Reviews:       product.Reviews,
		Discount:      product.Discount,
		InStock:       product.InStock,
	}
}

func toCategoryResponse(category *domain.Category) categoryResponse {
	return categoryResponse{
		ID:           category.ID,
		Name:         category.Name,
		Icon:         category.Icon,
		ProductCount: category.ProductCount,
	}
}

func toCartLineResponses(lines []domain.CartLine) []cartLineResponse {
	items := make([]cartLineResponse, 0, len(lines))
	for _, line := range lines {
		items = append(items, cartLineResponse{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Image:     line.Image,
			Quantity:  line.Quantity,
			Subtotal:  line.Subtotal(),
		})
	}
	return items
}

func toOrderResponse(order *domain.Order) orderResponse {
	return orderResponse{
		ID:        order.ID,
		Items:     toCartLineResponses(order.Lines),
		Total:     order.Total,
		Status:    string(order.Status),
		Phone:     order.Customer.Phone,
		Location:  order.Customer.Location,
		Address:   order.Customer.Address,
		Name:      order.Customer.Name,
		CreatedAt: order.CreatedAt,
	}
}

func toOrderResponses(orders []*domain.Order) []orderResponse {
	items := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		items = append(items, toOrderResponse(order))
	}
	return items
}
