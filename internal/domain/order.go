package domain

import (
	"fmt"
	"time"

	"github.com/otkirbek-shop/go-storefront/pkg/e"
)

// OrderStatus — статус заказа.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipping  OrderStatus = "shipping"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// transitions — таблица допустимых переходов статуса.
// Разрешены только pending → confirmed → shipping → delivered,
// отмена возможна из любого нетерминального статуса.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipping, StatusCancelled},
	StatusShipping:  {StatusDelivered, StatusCancelled},
	StatusDelivered: {},
	StatusCancelled: {},
}

// ParseOrderStatus проверяет и возвращает статус заказа по строке.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := transitions[status]; !ok {
		return "", fmt.Errorf("%w: %q", e.ErrUnknownStatus, s)
	}

	return status, nil
}

// CanTransitionTo сообщает, допустим ли переход из текущего статуса в next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Order — заказ: снимок строк корзины на момент оформления,
// вычисленный итог и контактные данные покупателя.
type Order struct {
	ID        string
	UserID    int64
	Lines     []CartLine
	Total     int64
	Status    OrderStatus
	CreatedAt time.Time
	Customer  CustomerInfo
}

// NewOrder создает заказ в статусе pending. Итог вычисляется по тому же
// целочисленному правилу, что и итог корзины.
func NewOrder(id string, lines []CartLine, customer CustomerInfo, createdAt time.Time) *Order {
	return &Order{
		ID:        id,
		Lines:     lines,
		Total:     TotalOf(lines),
		Status:    StatusPending,
		CreatedAt: createdAt,
		Customer:  customer,
	}
}

// Transition переводит заказ в статус next, если переход допустим.
func (o *Order) Transition(next OrderStatus) error {
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", e.ErrInvalidTransition, o.Status, next)
	}

	o.Status = next
	return nil
}
