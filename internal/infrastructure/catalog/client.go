package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jimlawless/whereami"
	"github.com/otkirbek-shop/go-storefront/internal/cfg"
	"github.com/otkirbek-shop/go-storefront/internal/domain"
	"github.com/otkirbek-shop/go-storefront/pkg/e"
	"github.com/otkirbek-shop/go-storefront/pkg/logger"
)

// Client — REST-клиент удаленного сервиса каталога. Таймауты задает
// вызывающая сторона через контекст: загрузка каталога ограничена,
// отправка заказа — нет.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     logger.Logger
}

func NewClient(cfg *cfg.CatalogCfg, logger logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logger:     logger,
	}
}

func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	var models []productModel
	if err := c.doJSON(ctx, http.MethodGet, "/products", nil, &models); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	products := make([]domain.Product, 0, len(models))
	for i := range models {
		product, err := toDomainProduct(&models[i])
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		products = append(products, *product)
	}

	return products, nil
}

func (c *Client) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	var models []categoryModel
	if err := c.doJSON(ctx, http.MethodGet, "/categories", nil, &models); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	categories := make([]domain.Category, 0, len(models))
	for i := range models {
		categories = append(categories, *toDomainCategory(&models[i]))
	}

	return categories, nil
}

func (c *Client) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	var created productModel
	if err := c.doJSON(ctx, http.MethodPost, "/products", toProductModel(product), &created); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	result, err := toDomainProduct(&created)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/products/"+id, nil, nil); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *Client) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	var created categoryModel
	if err := c.doJSON(ctx, http.MethodPost, "/categories", toCategoryModel(category), &created); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return toDomainCategory(&created), nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/categories/"+id, nil, nil); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// SubmitOrder отправляет полный заказ на бэкенд. Единственная попытка:
// повторы и компенсации здесь не делаются.
func (c *Client) SubmitOrder(ctx context.Context, order *domain.Order) error {
	if err := c.doJSON(ctx, http.MethodPost, "/orders", toOrderModel(order), nil); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// doJSON выполняет запрос с JSON-телом и декодирует JSON-ответ в out,
// если out не nil. Не-2xx статус — ошибка с телом ответа.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	// Бэкенд в dev-окружении живет за ngrok
	req.Header.Set("ngrok-skip-browser-warning", "true")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}

	return nil
}
