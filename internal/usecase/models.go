package usecase

import (
	"time"

	"github.com/otkirbek-shop/go-storefront/internal/domain"
)

// CATALOG USECASE

// AddProductReq — запрос на добавление нового товара через админ-панель.
type AddProductReq struct {
	Name        string
	CategoryID  string
	Price       int64
	Description string
	Images      []ProductImage
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// AddCategoryReq — запрос на добавление категории.
type AddCategoryReq struct {
	Name string
	Icon string
}

func NewAddProductReq(name, categoryID string, price int64, description string, images []ProductImage) *AddProductReq {
	return &AddProductReq{
		Name:        name,
		CategoryID:  categoryID,
		Price:       price,
		Description: description,
		Images:      images,
	}
}

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

// CART USECASE

// CartRes — текущее состояние корзины пользователя.
type CartRes struct {
	Lines []domain.CartLine
	Total int64
}

func NewCartRes(lines []domain.CartLine, total int64) *CartRes {
	return &CartRes{Lines: lines, Total: total}
}

// ORDER USECASE

// CreateOrderReq — форма оформления заказа.
type CreateOrderReq struct {
	Phone    string
	Location string
	Address  string
	Name     string
}

// StatsReq — запрос статистики заказов за окно времени.
type StatsReq struct {
	From time.Time
	To   time.Time
}

// ProductStat — агрегат по одному товару за окно.
type ProductStat struct {
	Name     string
	Quantity int
	Total    int64
}

// StatsRes — агрегаты заказов за окно времени.
type StatsRes struct {
	Products    []ProductStat
	TotalOrders int
	TotalSum    int64
}

// USER USECASE

// RegisterUserReq — регистрация пользователя Telegram при первом контакте.
type RegisterUserReq struct {
	ID    int64
	Name  string
	Phone string
}

// OUTBOX / EVENTS

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const EventOrderCreated OutboxEventType = "order.created"

// OutboxEvent — запись транзакционного outbox. Создается в одной транзакции
// с заказом и асинхронно выгружается в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	OrderID     string
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, orderID string, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		OrderID:   orderID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now(),
	}
}

// OrderCreatedEvent — JSON-полезная нагрузка события о новом заказе.
type OrderCreatedEvent struct {
	EventID   string            `json:"event_id"`
	OrderID   string            `json:"order_id"`
	UserID    int64             `json:"user_id"`
	Total     int64             `json:"total"`
	Lines     []OrderEventLine  `json:"lines"`
	Customer  OrderEventContact `json:"customer"`
	CreatedAt time.Time         `json:"created_at"`
}

type OrderEventLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

type OrderEventContact struct {
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Address  string `json:"address,omitempty"`
	Name     string `json:"name,omitempty"`
}

// NewOrderCreatedEvent формирует событие из заказа.
func NewOrderCreatedEvent(eventID string, order *domain.Order) *OrderCreatedEvent {
	lines := make([]OrderEventLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderEventLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}

	return &OrderCreatedEvent{
		EventID: eventID,
		OrderID: order.ID,
		UserID:  order.UserID,
		Total:   order.Total,
		Lines:   lines,
		Customer: OrderEventContact{
			Phone:    order.Customer.Phone,
			Location: order.Customer.Location,
			Address:  order.Customer.Address,
			Name:     order.Customer.Name,
		},
		CreatedAt: order.CreatedAt,
	}
}

// WriteRawMessageReq — запись готовой полезной нагрузки в Kafka.
type WriteRawMessageReq struct {
	OrderID string
	Payload []byte
}

func NewWriteRawMessageReq(orderID string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{OrderID: orderID, Payload: payload}
}
