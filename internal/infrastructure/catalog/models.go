package catalog

import (
	"fmt"

	"github.com/otkirbek-shop/go-storefront/internal/domain"
	"github.com/otkirbek-shop/go-storefront/pkg/e"
	"github.com/shopspring/decimal"
)

// Цены в API каталога — числа в сумах, возможно с дробной частью
// (тийины после точки). Внутри сервиса цена всегда int64 в тийинах,
// конвертация происходит только на этой границе.

type productModel struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	CostPrice     *decimal.Decimal `json:"costPrice,omitempty"`
	Image         string           `json:"image,omitempty"`
	Category      string           `json:"category"`
	Description   string           `json:"description,omitempty"`
	Rating        float64          `json:"rating,omitempty"`
	Reviews       int              `json:"reviews,omitempty"`
	Discount      int              `json:"discount,omitempty"`
	InStock       bool             `json:"inStock"`
}

type categoryModel struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Icon         string `json:"icon,omitempty"`
	ProductCount int    `json:"productCount,omitempty"`
}

type orderModel struct {
	ID        string           `json:"id"`
	UserID    int64            `json:"userId"`
	Items     []orderItemModel `json:"items"`
	Total     decimal.Decimal  `json:"total"`
	Status    string           `json:"status"`
	Phone     string           `json:"phone"`
	Location  string           `json:"location"`
	Address   string           `json:"address,omitempty"`
	Name      string           `json:"name,omitempty"`
	CreatedAt string           `json:"createdAt"`
}

type orderItemModel struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// toTiyin переводит цену из сумов в тийины. Более двух знаков после
// точки — ошибка данных каталога, а не повод молча округлить.
func toTiyin(price decimal.Decimal) (int64, error) {
	tiyin := price.Mul(decimal.NewFromInt(100))
	if !tiyin.IsInteger() {
		return 0, fmt.Errorf("%w: price %s has sub-tiyin precision", e.ErrPricePrecision, price.String())
	}

	return tiyin.IntPart(), nil
}

// fromTiyin переводит тийины обратно в сумы для API каталога.
func fromTiyin(tiyin int64) decimal.Decimal {
	return decimal.NewFromInt(tiyin).Div(decimal.NewFromInt(100))
}

func toDomainProduct(model *productModel) (*domain.Product, error) {
	price, err := toTiyin(model.Price)
	if err != nil {
		return nil, err
	}

	product := domain.NewProduct(model.ID, model.Name, price, model.Category)
	product.Image = model.Image
	product.Description = model.Description
	product.Rating = model.Rating
	product.Reviews = model.Reviews
	product.Discount = model.Discount
	product.InStock = model.InStock

	if model.OriginalPrice != nil {
		original, err := toTiyin(*model.OriginalPrice)
		if err != nil {
			return nil, err
		}
		product.OriginalPrice = &original
	}

	if model.CostPrice != nil {
		cost, err := toTiyin(*model.CostPrice)
		if err != nil {
			return nil, err
		}
		product.CostPrice = &cost
	}

	return product, nil
}

func toProductModel(product *domain.Product) *productModel {
	model := &productModel{
		ID:          product.ID,
		Name:        product.Name,
		Price:       fromTiyin(product.Price),
		Image:       product.Image,
		Category:    product.CategoryID,
		Description: product.Description,
		Rating:      product.Rating,
		Reviews:     product.Reviews,
		Discount:    product.Discount,
		InStock:     product.InStock,
	}

	if product.OriginalPrice != nil {
		original := fromTiyin(*product.OriginalPrice)
		model.OriginalPrice = &original
	}

	if product.CostPrice != nil {
		cost := fromTiyin(*product.CostPrice)
		model.CostPrice = &cost
	}

	return model
}

func toDomainCategory(model *categoryModel) *domain.Category {
	category := domain.NewCategory(model.ID, model.Name, model.Icon)
	category.ProductCount = model.ProductCount
	return category
}

func toCategoryModel(category *domain.Category) *categoryModel {
	return &categoryModel{
		ID:           category.ID,
		Name:         category.Name,
		Icon:         category.Icon,
		ProductCount: category.ProductCount,
	}
}

func toOrderModel(order *domain.Order) *orderModel {
	items := make([]orderItemModel, 0, len(order.Lines))
	for _, line := range order.Lines {
		items = append(items, orderItemModel{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     fromTiyin(line.Price),
			Quantity:  line.Quantity,
		})
	}

	return &orderModel{
		ID:        order.ID,
		UserID:    order.UserID,
		Items:     items,
		Total:     fromTiyin(order.Total),
		Status:    string(order.Status),
		Phone:     order.Customer.Phone,
		Location:  order.Customer.Location,
		Address:   order.Customer.Address,
		Name:      order.Customer.Name,
		CreatedAt: order.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}
