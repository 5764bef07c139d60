package kafka

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/lovoo/goka"
	"github.com/niksmo/electrostyle/internal/core/port"
	"github.com/niksmo/electrostyle/pkg/schema"
)

var _ port.OrdersProcessor = (*OrdersProcessor)(nil)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// An orderCodec used for serde [schema.OrderV1]
type orderCodec struct {
	serde Serde
}

func newOrderCodec(s Serde) orderCodec {
	return orderCodec{s}
}

func (c orderCodec) Encode(v any) ([]byte, error) {
	const op = "orderCodec.Encode"
	if _, ok := v.(schema.OrderV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c orderCodec) Decode(data []byte) (any, error) {
	const op = "orderCodec.Decode"
	var s schema.OrderV1
	if err := c.serde.Decode(data, &s); err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// An OrdersProcessor folds the orders stream into the order book
// group table, keyed by order number.
type OrdersProcessor struct {
	opPrefix string
	proc     processor
}

func NewOrdersProcessor(
	seedBrokers []string,
	inputStream string,
	groupTable string,
	orderSerde Serde,
) (*OrdersProcessor, error) {
	const op = "NewOrdersProcessor"

	p := OrdersProcessor{opPrefix: "OrdersProcessor"}
	codec := newOrderCodec(orderSerde)

	gg := goka.DefineGroup(goka.Group(groupTable),
		goka.Input(goka.Stream(inputStream), codec, p.processFn),
		goka.Persist(codec),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{opPrefix: p.opPrefix, gp: gp}
	return &p, nil
}

func (p *OrdersProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *OrdersProcessor) Close() {
	p.proc.close()
}

func (p *OrdersProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"
	log := slog.With("op", makeOp(p.opPrefix, op))

	order, ok := msg.(schema.OrderV1)
	if !ok {
		log.Error("unexpected message type")
		return
	}

	if ctx.Value() != nil {
		log.Warn("order already booked", "number", order.Number)
		return
	}

	ctx.SetValue(order)
	log.Info("order booked", "number", order.Number, "total", order.Total)
}
