package usecase

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/otkirbek-shop/go-storefront/internal/domain"
	"github.com/otkirbek-shop/go-storefront/pkg/e"
	"github.com/otkirbek-shop/go-storefront/pkg/logger"
	"github.com/otkirbek-shop/go-storefront/pkg/tr"
)

// OrderUseCase реализует оформление заказа и работу с историей заказов.
// Локальная запись первична: заказ и outbox-событие сохраняются в одной
// транзакции, после чего полный payload уходит на бэкенд единственным
// фоновым POST. Ошибка удаленной записи не откатывает локальный заказ —
// доставка "локально всегда, удаленно по возможности".
type OrderUseCase struct {
	orderRepo  OrderRepository
	outboxRepo OutboxRepository
	cart       CartUC
	gateway    CatalogGateway
	dbPool     transaction.Transactional
	logger     logger.Logger
	now        func() time.Time
}

func NewOrderUC(
	orderRepo OrderRepository,
	outboxRepo OutboxRepository,
	cart CartUC,
	gateway CatalogGateway,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:  orderRepo,
		outboxRepo: outboxRepo,
		cart:       cart,
		gateway:    gateway,
		dbPool:     dbPool,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateOrder оформляет заказ из текущей корзины пользователя.
// Предусловия: корзина не пуста, телефон и локация заполнены, телефон
// соответствует формату +998 и 9 цифр. Идентификатор заказа —
// клиентский, на основе времени (миллисекунды Unix): монотонности на
// человеческих масштабах достаточно.
// Очистка корзины после успеха — ответственность вызывающей стороны.
func (o *OrderUseCase) CreateOrder(ctx context.Context, userID int64, req *CreateOrderReq) (*domain.Order, error) {
	const op = "OrderUseCase.CreateOrder"

	customer := domain.CustomerInfo{
		Phone:    req.Phone,
		Location: req.Location,
		Address:  req.Address,
		Name:     req.Name,
	}
	if err := customer.Validate(); err != nil {
		return nil, e.Wrap(op, err)
	}
	customer.Phone = domain.NormalizePhone(customer.Phone)

	cartRes := o.cart.GetCart(ctx, userID)
	if len(cartRes.Lines) == 0 {
		return nil, e.Wrap(op, e.ErrCartEmpty)
	}

	createdAt := o.now()
	order := domain.NewOrder(strconv.FormatInt(createdAt.UnixMilli(), 10), cartRes.Lines, customer, createdAt)
	order.UserID = userID

	event := NewOrderCreatedEvent(uuid.NewString(), order)
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, o.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = tr.CtxWithTx(ctx, tx.Transaction().(pgx.Tx))

	if err = o.orderRepo.Create(ctx, order); err != nil {
		return nil, e.Wrap(op, err)
	}

	if _, err = o.outboxRepo.Create(ctx, NewOutboxEvent(event.EventID, EventOrderCreated, order.ID, payload)); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	// Fire-and-forget: без таймаута, без повторов, без отмены.
	// Медленная или упавшая удаленная запись для пользователя невидима.
	go func() {
		if err := o.gateway.SubmitOrder(context.Background(), order); err != nil {
			o.logger.Warnf("Failed to forward order %s to backend: %v", order.ID, err)
		}
	}()

	return order, nil
}

// UpdateOrderStatus переводит заказ в новый статус по строгой таблице
// переходов: pending → confirmed → shipping → delivered, отмена — из
// любого нетерминального статуса. Недопустимый переход отклоняется.
func (o *OrderUseCase) UpdateOrderStatus(ctx context.Context, orderID, status string) (*domain.Order, error) {
	const op = "OrderUseCase.UpdateOrderStatus"

	next, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	order, err := o.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	prev := order.Status
	if err := order.Transition(next); err != nil {
		return nil, e.Wrap(op, err)
	}

	updated, err := o.orderRepo.UpdateStatus(ctx, orderID, prev, next)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if !updated {
		// Статус сменился между чтением и записью
		return nil, e.Wrap(op, e.ErrInvalidTransition)
	}

	return order, nil
}

// ConfirmReceived — подтверждение получения заказа пользователем:
// единственный переход, доступный не-админу (shipping → delivered).
// Чужой заказ выглядит как отсутствующий.
func (o *OrderUseCase) ConfirmReceived(ctx context.Context, userID int64, orderID string) (*domain.Order, error) {
	const op = "OrderUseCase.ConfirmReceived"

	order, err := o.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if order.UserID != userID {
		return nil, e.Wrap(op, e.ErrOrderNotFound)
	}

	prev := order.Status
	if err := order.Transition(domain.StatusDelivered); err != nil {
		return nil, e.Wrap(op, err)
	}

	updated, err := o.orderRepo.UpdateStatus(ctx, orderID, prev, domain.StatusDelivered)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if !updated {
		return nil, e.Wrap(op, e.ErrInvalidTransition)
	}

	return order, nil
}

// GetOrderByID возвращает заказ или e.ErrOrderNotFound.
func (o *OrderUseCase) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	const op = "OrderUseCase.GetOrderByID"

	order, err := o.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return order, nil
}

// ListOrders возвращает историю заказов пользователя, новые — первыми.
func (o *OrderUseCase) ListOrders(ctx context.Context, userID int64) ([]*domain.Order, error) {
	const op = "OrderUseCase.ListOrders"

	orders, err := o.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return orders, nil
}

// StatsForWindow возвращает агрегаты заказов за окно времени для
// периодических отчетов в группу.
func (o *OrderUseCase) StatsForWindow(ctx context.Context, req *StatsReq) (*StatsRes, error) {
	const op = "OrderUseCase.StatsForWindow"

	stats, err := o.orderRepo.StatsForWindow(ctx, req.From, req.To)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return stats, nil
}
