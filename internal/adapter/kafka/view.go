package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/niksmo/electrostyle/internal/core/domain"
	"github.com/niksmo/electrostyle/internal/core/port"
	"github.com/niksmo/electrostyle/pkg/schema"
)

var _ port.OrderReader = (*OrdersView)(nil)

// An OrdersView serves order lookups from the order book group table.
type OrdersView struct {
	gv *goka.View
}

func NewOrdersView(
	seedBrokers []string, groupTable string, orderSerde Serde,
) (*OrdersView, error) {
	const op = "NewOrdersView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(groupTable)),
		newOrderCodec(orderSerde),
		withNonlogViewOpt(),
	)
	if err != nil {
		return nil, opErr(err, op)
	}
	return &OrdersView{gv}, nil
}

// Run blocks until ctx is done or the view fails.
func (v *OrdersView) Run(ctx context.Context) error {
	const op = "OrdersView.Run"
	log := slog.With("op", op)

	log.Info("running")
	if err := v.gv.Run(ctx); err != nil {
		log.Error("unexpected fail on run", "err", err)
		return opErr(err, op)
	}
	log.Info("stopped")
	return nil
}

func (v *OrdersView) ReadOrder(
	ctx context.Context, number string,
) (domain.Order, error) {
	const op = "OrdersView.ReadOrder"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, opErr(err, op)
	}

	value, err := v.gv.Get(number)
	if err != nil {
		return domain.Order{}, opErr(err, op)
	}

	if value == nil {
		return domain.Order{}, opErr(domain.ErrNotFound, op)
	}

	s, ok := value.(schema.OrderV1)
	if !ok {
		err := fmt.Errorf("%w: %T", ErrInvalidValueType, value)
		return domain.Order{}, opErr(err, op)
	}

	order, err := orderFromSchemaV1(s)
	if err != nil {
		return domain.Order{}, opErr(err, op)
	}
	return order, nil
}
