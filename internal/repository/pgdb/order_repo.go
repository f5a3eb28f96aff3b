package pgdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/otkirbek-shop/go-storefront/internal/domain"
	"github.com/otkirbek-shop/go-storefront/internal/usecase"
	"github.com/otkirbek-shop/go-storefront/pkg/e"
	"github.com/otkirbek-shop/go-storefront/pkg/tr"
)

// orderLineModel — строка заказа в колонке items (jsonb).
type orderLineModel struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Image     string `json:"image,omitempty"`
	Quantity  int    `json:"quantity"`
}

// OrderRepo реализует репозиторий заказов поверх PostgreSQL.
// Строки заказа хранятся снимком в jsonb: состав заказа неизменяем
// после создания, реляционная декомпозиция не нужна.
type OrderRepo struct {
	pool *pgxpool.Pool
}

func NewOrderRepo(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// Create сохраняет заказ. Вызывается внутри транзакции вместе с записью
// в outbox, поэтому берет tx из контекста.
func (o *OrderRepo) Create(ctx context.Context, order *domain.Order) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	items, err := json.Marshal(toLineModels(order.Lines))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO orders (
			id,
			user_id,
			items,
			total,
			status,
			phone,
			location,
			address,
			customer_name,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = tx.Exec(ctx, query,
		order.ID,
		order.UserID,
		items,
		order.Total,
		string(order.Status),
		order.Customer.Phone,
		order.Customer.Location,
		order.Customer.Address,
		order.Customer.Name,
		order.CreatedAt,
	)
	if err != nil {
		if postgresDuplicate(err) {
			return fmt.Errorf("%s: order with id %s already exists", whereami.WhereAmI(), order.ID)
		}

		return fmt.Errorf("%s: failed to insert order: %w", whereami.WhereAmI(), err)
	}

	return nil
}

func (o *OrderRepo) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `
		SELECT id, user_id, items, total, status, phone, location, address, customer_name, created_at
		FROM orders
		WHERE id = $1
	`

	order, err := scanOrder(o.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return order, nil
}

// ListByUser возвращает заказы пользователя, новые — первыми.
func (o *OrderRepo) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	query := `
		SELECT id, user_id, items, total, status, phone, location, address, customer_name, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := o.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return orders, nil
}

// UpdateStatus переводит заказ из from в to атомарно: запись меняется
// только если текущий статус все еще from. Возвращает false, если
// заказ не найден или статус успел смениться.
func (o *OrderRepo) UpdateStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) (bool, error) {
	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`

	result, err := o.pool.Exec(ctx, query, string(to), orderID, string(from))
	if err != nil {
		return false, fmt.Errorf("%s: failed to update order %s status: %w", whereami.WhereAmI(), orderID, err)
	}

	return result.RowsAffected() > 0, nil
}

// StatsForWindow агрегирует заказы за полуинтервал [from, to): итоги по
// каждому товару плюс общее число заказов и сумма.
func (o *OrderRepo) StatsForWindow(ctx context.Context, from, to time.Time) (*usecase.StatsRes, error) {
	productsQuery := `
		SELECT
			line->>'name',
			SUM((line->>'quantity')::int),
			SUM((line->>'price')::bigint * (line->>'quantity')::int)
		FROM orders, jsonb_array_elements(items) AS line
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY line->>'name'
		ORDER BY 2 DESC
	`

	rows, err := o.pool.Query(ctx, productsQuery, from, to)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	res := &usecase.StatsRes{Products: make([]usecase.ProductStat, 0)}
	for rows.Next() {
		var stat usecase.ProductStat
		if err := rows.Scan(&stat.Name, &stat.Quantity, &stat.Total); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		res.Products = append(res.Products, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	totalsQuery := `
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
	`

	if err := o.pool.QueryRow(ctx, totalsQuery, from, to).Scan(&res.TotalOrders, &res.TotalSum); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return res, nil
}

func toLineModels(lines []domain.CartLine) []orderLineModel {
	models := make([]orderLineModel, 0, len(lines))
	for _, line := range lines {
		models = append(models, orderLineModel{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Image:     line.Image,
			Quantity:  line.Quantity,
		})
	}
	return models
}

func toDomainLines(models []orderLineModel) []domain.CartLine {
	lines := make([]domain.CartLine, 0, len(models))
	for _, model := range models {
		lines = append(lines, domain.CartLine{
			ProductID: model.ProductID,
			Name:      model.Name,
			Price:     model.Price,
			Image:     model.Image,
			Quantity:  model.Quantity,
		})
	}
	return lines
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		order  domain.Order
		items  []byte
		status string
	)

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&items,
		&order.Total,
		&status,
		&order.Customer.Phone,
		&order.Customer.Location,
		&order.Customer.Address,
		&order.Customer.Name,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	var models []orderLineModel
	if err := json.Unmarshal(items, &models); err != nil {
		return nil, fmt.Errorf("failed to decode order items: %w", err)
	}
	order.Lines = toDomainLines(models)

	order.Status, err = domain.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	return &order, nil
}
