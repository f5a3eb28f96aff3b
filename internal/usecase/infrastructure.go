package usecase

import (
	"context"

	"github.com/otkirbek-shop/go-storefront/internal/domain"
)

// CatalogGateway — клиент удаленного сервиса каталога (REST).
type CatalogGateway interface {
	FetchProducts(ctx context.Context) ([]domain.Product, error)
	FetchCategories(ctx context.Context) ([]domain.Category, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	// SubmitOrder отправляет заказ на бэкенд единственным POST.
	// Вызывающая сторона не повторяет и не откатывает при ошибке.
	SubmitOrder(ctx context.Context, order *domain.Order) error
}

// ImagesInfra — загрузка изображений товара в объектное хранилище.
type ImagesInfra interface {
	UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error)
	CleanupImages(keys []string)
}

// Notifier — мост к хост-среде Telegram: все обращения к Bot API идут
// через этот интерфейс, основная логика глобалов не трогает.
type Notifier interface {
	NotifyOrder(ctx context.Context, event *OrderCreatedEvent) error
	NotifyText(ctx context.Context, text string) error
}

// MessageProducer — публикация событий во внешнюю шину.
type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// UploadImagesReq — запрос на загрузку изображений товара.
type UploadImagesReq struct {
	ProductName string
	Images      []ProductImage
}

// UploadImagesRes — результат загрузки: ключи объектов в порядке изображений.
type UploadImagesRes struct {
	ImagesKeys []string
}

func NewUploadImagesReq(productName string, images []ProductImage) *UploadImagesReq {
	return &UploadImagesReq{ProductName: productName, Images: images}
}

func NewUploadImagesRes(keys []string) *UploadImagesRes {
	return &UploadImagesRes{ImagesKeys: keys}
}
