package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/otkirbek-shop/go-storefront/internal/usecase"
	"github.com/otkirbek-shop/go-storefront/pkg/e"
	"github.com/otkirbek-shop/go-storefront/pkg/logger"
)

type CartHandler struct {
	cartUsecase usecase.CartUC
	logger      logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase, logger: logger}
}

// getCart
//
//	@Summary	Текущая корзина
//	@Tags		cart
//	@Produce	json
//	@Success	200	{object}	cartResponse
//	@Router		/cart [get]
func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	user, err := userFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	writeCart(w, h.cartUsecase.GetCart(r.Context(), user.ID))
}

// addItem
//
//	@Summary	Добавление товара в корзину
//	@Tags		cart
//	@Accept		json
//	@Produce	json
//	@Param		request	body		addCartItemRequest	true	"Товар"
//	@Success	200		{object}	cartResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/cart/items [post]
func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	user, err := userFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var req addCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	cart, err := h.cartUsecase.AddItem(r.Context(), user.ID, req.ProductID)
	if err != nil {
		h.logger.Warnf("Failed to add item %s to cart: %v", req.ProductID, err)
		WriteError(w, err)
		return
	}

	writeCart(w, cart)
}

// updateQuantity
//
//	@Summary	Изменение количества товара в корзине
//	@Tags		cart
//	@Accept		json
//	@Produce	json
//	@Param		productID	path		string					true	"ID товара"
//	@Param		request		body		updateQuantityRequest	true	"Количество"
//	@Success	200			{object}	cartResponse
//	@Router		/cart/items/{productID} [patch]
func (h *CartHandler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	user, err := userFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	cart, err := h.cartUsecase.UpdateQuantity(r.Context(), user.ID, chi.URLParam(r, "productID"), req.Quantity)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeCart(w, cart)
}

// removeItem
//
//	@Summary	Удаление товара из корзины
//	@Tags		cart
//	@Produce	json
//	@Param		productID	path		string	true	"ID товара"
//	@Success	200			{object}	cartResponse
//	@Router		/cart/items/{productID} [delete]
func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	user, err := userFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	writeCart(w, h.cartUsecase.RemoveItem(r.Context(), user.ID, chi.URLParam(r, "productID")))
}

// clearCart
//
//	@Summary	Очистка корзины
//	@Tags		cart
//	@Produce	json
//	@Success	200	{object}	cartResponse
//	@Router		/cart [delete]
func (h *CartHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	user, err := userFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	writeCart(w, h.cartUsecase.Clear(r.Context(), user.ID))
}

func writeCart(w http.ResponseWriter, cart *usecase.CartRes) {
	WriteSuccess(w, http.StatusOK, cartResponse{
		Items: toCartLineResponses(cart.Lines),
		Total: cart.Total,
	})
}
