package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/otkirbek-shop/go-storefront/internal/usecase"
	"github.com/otkirbek-shop/go-storefront/pkg/e"
	"github.com/otkirbek-shop/go-storefront/pkg/logger"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUC
	cartUsecase  usecase.CartUC
	userUsecase  usecase.UserUC
	logger       logger.Logger
}

func NewOrderHandler(orderUsecase usecase.OrderUC, cartUsecase usecase.CartUC, userUsecase usecase.UserUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{
		orderUsecase: orderUsecase,
		cartUsecase:  cartUsecase,
		userUsecase:  userUsecase,
		logger:       logger,
	}
}

// createOrder
//
//	@Summary		Оформление заказа
//	@Description	Создает заказ из текущей корзины и очищает ее
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		createOrderRequest	true	"Контактные данные"
//	@Success		201		{object}	orderResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/orders [post]
func (h *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	user, err := userFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	name := req.Name
	if name == "" {
		name = user.DisplayName()
	}

	order, err := h.orderUsecase.CreateOrder(r.Context(), user.ID, &usecase.CreateOrderReq{
		Phone:    req.Phone,
		Location: req.Location,
		Address:  req.Address,
		Name:     name,
	})
	if err != nil {
		h.logger.Warnf("Failed to create order for user %d: %v", user.ID, err)
		WriteError(w, err)
		return
	}

	// Заказ оформлен — корзина начинается заново
	h.cartUsecase.Clear(r.Context(), user.ID)

	if err := h.userUsecase.RegisterUser(r.Context(), &usecase.RegisterUserReq{
		ID:    user.ID,
		Name:  name,
		Phone: req.Phone,
	}); err != nil {
		// Реестр пользователей — для отчетов, заказ от него не зависит
		h.logger.Warnf("Failed to register user %d: %v", user.ID, err)
	}

	WriteSuccess(w, http.StatusCreated, toOrderResponse(order))
}

// listOrders
//
//	@Summary	История заказов пользователя
//	@Tags		orders
//	@Produce	json
//	@Success	200	{array}	orderResponse
//	@Router		/orders [get]
func (h *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	user, err := userFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	orders, err := h.orderUsecase.ListOrders(r.Context(), user.ID)
	if err != nil {
		h.logger.Warnf("Failed to list orders for user %d: %v", user.ID, err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrderResponses(orders))
}

// getOrderByID
//
//	@Summary	Заказ по идентификатору
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"ID заказа"
//	@Success	200	{object}	orderResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/orders/{id} [get]
func (h *OrderHandler) getOrderByID(w http.ResponseWriter, r *http.Request) {
	user, err := userFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	order, err := h.orderUsecase.GetOrderByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	// Чужой заказ неотличим от несуществующего
	if order.UserID != user.ID {
		WriteError(w, e.ErrOrderNotFound)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrderResponse(order))
}

// confirmReceived
//
//	@Summary		Подтверждение получения
//	@Description	Переводит заказ из shipping в delivered
//	@Tags			orders
//	@Produce		json
//	@Param			id	path		string	true	"ID заказа"
//	@Success		200	{object}	orderResponse
//	@Failure		409	{object}	ErrorResponse
//	@Router			/orders/{id}/received [post]
func (h *OrderHandler) confirmReceived(w http.ResponseWriter, r *http.Request) {
	user, err := userFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	order, err := h.orderUsecase.ConfirmReceived(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrderResponse(order))
}
