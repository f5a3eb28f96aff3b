package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/otkirbek-shop/go-storefront/internal/domain"
	"github.com/otkirbek-shop/go-storefront/pkg/e"
	"github.com/otkirbek-shop/go-storefront/pkg/logger"
)

// CatalogUseCase держит снимок каталога (товары и категории) в памяти.
// Снимок загружается один раз при старте с ограниченным таймаутом;
// при ошибке загрузки каталог остается пустым — устаревшие или
// подставные данные не используются. Админские мутации выполняются
// оптимистично: сначала удаленный вызов, при успехе изменение
// зеркалируется в локальный снимок.
type CatalogUseCase struct {
	gateway      CatalogGateway
	imagesInfra  ImagesInfra
	logger       logger.Logger
	fetchTimeout time.Duration

	mu         sync.RWMutex
	products   []domain.Product
	categories []domain.Category
}

func NewCatalogUC(
	gateway CatalogGateway,
	imagesInfra ImagesInfra,
	logger logger.Logger,
	fetchTimeout time.Duration,
) *CatalogUseCase {
	return &CatalogUseCase{
		gateway:      gateway,
		imagesInfra:  imagesInfra,
		logger:       logger,
		fetchTimeout: fetchTimeout,
	}
}

// Refresh загружает списки товаров и категорий из удаленного каталога.
// Загрузка ограничена таймаутом; при любой ошибке снимок становится
// пустым, а ошибка возвращается вызывающей стороне. Повторных попыток нет.
func (c *CatalogUseCase) Refresh(ctx context.Context) error {
	const op = "CatalogUseCase.Refresh"

	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	products, err := c.gateway.FetchProducts(ctx)
	if err != nil {
		c.setSnapshot(nil, nil)
		return e.Wrap(op, err)
	}

	categories, err := c.gateway.FetchCategories(ctx)
	if err != nil {
		c.setSnapshot(nil, nil)
		return e.Wrap(op, err)
	}

	c.setSnapshot(products, categories)
	c.logger.Infof("catalog loaded: %d products, %d categories", len(products), len(categories))

	return nil
}

// GetProducts возвращает копию снимка товаров.
func (c *CatalogUseCase) GetProducts(_ context.Context) []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	products := make([]domain.Product, len(c.products))
	copy(products, c.products)
	return products
}

// GetCategories возвращает копию снимка категорий.
func (c *CatalogUseCase) GetCategories(_ context.Context) []domain.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()

	categories := make([]domain.Category, len(c.categories))
	copy(categories, c.categories)
	return categories
}

// GetProductByID ищет товар в снимке. Для неизвестного или удаленного
// идентификатора возвращает e.ErrProductNotFound (deep link на
// несуществующий товар — штатная ситуация, не исключение).
func (c *CatalogUseCase) GetProductByID(_ context.Context, id string) (*domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := range c.products {
		if c.products[i].ID == id {
			product := c.products[i]
			return &product, nil
		}
	}

	return nil, e.ErrProductNotFound
}

// AddProduct создает товар: изображения загружаются в хранилище,
// затем запись уходит в удаленный каталог. При успехе товар
// зеркалируется в локальный снимок; при ошибке удаленного вызова
// загруженные изображения зачищаются, снимок не меняется.
func (c *CatalogUseCase) AddProduct(ctx context.Context, req *AddProductReq) (*domain.Product, error) {
	const op = "CatalogUseCase.AddProduct"

	var err error
	if err = c.validateProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	var (
		imagesRes *UploadImagesRes
		uploaded  bool
	)
	// Если удаленный вызов не удался, загруженные изображения зачищаются
	defer func() {
		if err != nil && uploaded && imagesRes != nil {
			c.logger.Warnf(
				"Cleaning up orphaned images after catalog failure. product_name: %s, error: %v",
				req.Name,
				e.Wrap(op, err),
			)
			c.imagesInfra.CleanupImages(imagesRes.ImagesKeys)
		}
	}()

	var imageKey string
	if len(req.Images) > 0 {
		imagesRes, err = c.imagesInfra.UploadImages(ctx, NewUploadImagesReq(req.Name, req.Images))
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		uploaded = true
		imageKey = imagesRes.ImagesKeys[0]
	}

	product := domain.NewProduct("", req.Name, req.Price, req.CategoryID)
	product.Description = req.Description
	product.Image = imageKey

	created, err := c.gateway.CreateProduct(ctx, product)
	if err != nil {
		c.logger.Warnf("Failed to create product in catalog: %v", e.Wrap(op, err))
		return nil, e.Wrap(op, err)
	}

	c.mu.Lock()
	c.products = append(c.products, *created)
	c.mu.Unlock()

	return created, nil
}

// DeleteProduct удаляет товар из удаленного каталога и при успехе — из снимка.
func (c *CatalogUseCase) DeleteProduct(ctx context.Context, id string) error {
	const op = "CatalogUseCase.DeleteProduct"

	if err := c.gateway.DeleteProduct(ctx, id); err != nil {
		c.logger.Warnf("Failed to delete product %s: %v", id, e.Wrap(op, err))
		return e.Wrap(op, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.products {
		if c.products[i].ID == id {
			c.products = append(c.products[:i], c.products[i+1:]...)
			break
		}
	}

	return nil
}

// AddCategory создает категорию в удаленном каталоге и зеркалирует ее в снимок.
func (c *CatalogUseCase) AddCategory(ctx context.Context, req *AddCategoryReq) (*domain.Category, error) {
	const op = "CatalogUseCase.AddCategory"

	if strings.TrimSpace(req.Name) == "" {
		return nil, e.Wrap(op, e.ErrCategoryNameRequired)
	}

	created, err := c.gateway.CreateCategory(ctx, domain.NewCategory("", req.Name, req.Icon))
	if err != nil {
		c.logger.Warnf("Failed to create category: %v", e.Wrap(op, err))
		return nil, e.Wrap(op, err)
	}

	c.mu.Lock()
	c.categories = append(c.categories, *created)
	c.mu.Unlock()

	return created, nil
}

// DeleteCategory удаляет категорию из удаленного каталога и при успехе — из снимка.
func (c *CatalogUseCase) DeleteCategory(ctx context.Context, id string) error {
	const op = "CatalogUseCase.DeleteCategory"

	if err := c.gateway.DeleteCategory(ctx, id); err != nil {
		c.logger.Warnf("Failed to delete category %s: %v", id, e.Wrap(op, err))
		return e.Wrap(op, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.categories {
		if c.categories[i].ID == id {
			c.categories = append(c.categories[:i], c.categories[i+1:]...)
			break
		}
	}

	return nil
}

func (c *CatalogUseCase) setSnapshot(products []domain.Product, categories []domain.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = products
	c.categories = categories
}

// validateProduct проверяет корректность входных данных запроса на добавление товара.
func (c *CatalogUseCase) validateProduct(req *AddProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrProductNameRequired
	}

	if req.Price <= 0 {
		return e.ErrPriceMustBePositive
	}

	return nil
}
