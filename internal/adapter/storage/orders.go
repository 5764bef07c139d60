package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/niksmo/electrostyle/internal/core/domain"
	"github.com/niksmo/electrostyle/internal/core/port"
)

var (
	_ port.OrderPublisher = OrdersRepository{}
	_ port.OrderReader    = OrdersRepository{}
)

// An OrdersRepository keeps order confirmations in the orders table.
//
// It serves as the order book when no broker is configured.
type OrdersRepository struct {
	sqldb sqldb
}

func NewOrdersRepository(sqldb sqldb) OrdersRepository {
	return OrdersRepository{sqldb}
}

func (r OrdersRepository) PublishOrder(ctx context.Context, o domain.Order) error {
	const op = "OrdersRepository.PublishOrder"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	payload, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO orders (number, payload, placed_at)
		VALUES ($1, $2, $3);`

	_, err = r.sqldb.ExecContext(ctx, query, o.Number, string(payload), o.PlacedAt)
	if err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	return nil
}

func (r OrdersRepository) ReadOrder(
	ctx context.Context, number string,
) (domain.Order, error) {
	const op = "OrdersRepository.ReadOrder"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT payload FROM orders WHERE number = $1;`

	var payload string
	err := r.sqldb.QueryRowContext(ctx, query, number).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	var o domain.Order
	if err := json.Unmarshal([]byte(payload), &o); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}
