package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/otkirbek-shop/go-storefront/internal/usecase"
	"github.com/otkirbek-shop/go-storefront/pkg/logger"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// getProducts
//
//	@Summary		Список товаров
//	@Description	Возвращает снапшот каталога товаров
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{array}	productResponse
//	@Router			/products [get]
func (h *CatalogHandler) getProducts(w http.ResponseWriter, r *http.Request) {
	products := h.catalogUsecase.GetProducts(r.Context())

	res := make([]productResponse, 0, len(products))
	for i := range products {
		res = append(res, toProductResponse(&products[i]))
	}

	WriteSuccess(w, http.StatusOK, res)
}

// getProductByID
//
//	@Summary	Товар по идентификатору
//	@Tags		catalog
//	@Produce	json
//	@Param		id	path		string	true	"ID товара"
//	@Success	200	{object}	productResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (h *CatalogHandler) getProductByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogUsecase.GetProductByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// getCategories
//
//	@Summary	Список категорий
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{array}	categoryResponse
//	@Router		/categories [get]
func (h *CatalogHandler) getCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.catalogUsecase.GetCategories(r.Context())

	res := make([]categoryResponse, 0, len(categories))
	for i := range categories {
		res = append(res, toCategoryResponse(&categories[i]))
	}

	WriteSuccess(w, http.StatusOK, res)
}
