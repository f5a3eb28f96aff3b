package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/otkirbek-shop/go-storefront/internal/usecase"
	"github.com/otkirbek-shop/go-storefront/pkg/e"
	"github.com/otkirbek-shop/go-storefront/pkg/logger"
)

type AdminHandler struct {
	catalogUsecase usecase.CatalogUC
	orderUsecase   usecase.OrderUC
	logger         logger.Logger
}

func NewAdminHandler(catalogUsecase usecase.CatalogUC, orderUsecase usecase.OrderUC, logger logger.Logger) *AdminHandler {
	return &AdminHandler{
		catalogUsecase: catalogUsecase,
		orderUsecase:   orderUsecase,
		logger:         logger,
	}
}

// addProduct
//
//	@Summary		Добавление товара
//	@Description	Создает товар в каталоге с изображениями
//	@Tags			admin
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name		formData	string	true	"Название товара"
//	@Param			category	formData	string	true	"Категория"
//	@Param			price		formData	string	true	"Цена в сумах"
//	@Param			description	formData	string	false	"Описание"
//	@Param			images		formData	file	false	"Изображения товара"
//	@Success		201			{object}	productResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/admin/products [post]
func (h *AdminHandler) addProduct(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 150 << 20
		maxMemory           = 32 << 20
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	prMeta, err := parseProductForm(r)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	images, err := parseImages(r.MultipartForm.File["images"])
	if err != nil {
		// Товар без изображений допустим
		if !errors.Is(err, e.ErrNoImages) {
			h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
			WriteError(w, err)
			return
		}
	}

	product, err := h.catalogUsecase.AddProduct(r.Context(), usecase.NewAddProductReq(prMeta.Name, prMeta.CategoryID, prMeta.Price, prMeta.Description, images))
	if err != nil {
		h.logger.Warnf("Failed to add product: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponse(product))
}

// deleteProduct
//
//	@Summary	Удаление товара
//	@Tags		admin
//	@Produce	json
//	@Param		id	path	string	true	"ID товара"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/admin/products/{id} [delete]
func (h *AdminHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogUsecase.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logger.Warnf("Failed to delete product: %v", err)
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// addCategory
//
//	@Summary	Добавление категории
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		request	body		addCategoryRequest	true	"Категория"
//	@Success	201		{object}	categoryResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/admin/categories [post]
func (h *AdminHandler) addCategory(w http.ResponseWriter, r *http.Request) {
	var req addCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	category, err := h.catalogUsecase.AddCategory(r.Context(), &usecase.AddCategoryReq{Name: req.Name, Icon: req.Icon})
	if err != nil {
		h.logger.Warnf("Failed to add category: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toCategoryResponse(category))
}

// deleteCategory
//
//	@Summary	Удаление категории
//	@Tags		admin
//	@Produce	json
//	@Param		id	path	string	true	"ID категории"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/admin/categories/{id} [delete]
func (h *AdminHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogUsecase.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logger.Warnf("Failed to delete category: %v", err)
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// updateOrderStatus
//
//	@Summary		Смена статуса заказа
//	@Description	Переводит заказ по таблице переходов статусов
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"ID заказа"
//	@Param			request	body		updateStatusRequest	true	"Новый статус"
//	@Success		200		{object}	orderResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/admin/orders/{id}/status [patch]
func (h *AdminHandler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	order, err := h.orderUsecase.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.logger.Warnf("Failed to update order status: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrderResponse(order))
}
