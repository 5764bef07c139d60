package kafka

import (
	"context"
	"log/slog"

	"github.com/niksmo/electrostyle/internal/core/domain"
	"github.com/niksmo/electrostyle/internal/core/port"
	"github.com/niksmo/electrostyle/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	_ port.OrderPublisher = OrdersProducer{}
	_ port.Notifier       = NotificationsProducer{}
)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(
	ctx context.Context, rs ...*kgo.Record,
) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

func applyProducerOpts(op string, opts []ProducerOpt) (producerOpts, error) {
	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return producerOpts{}, opErr(err, op)
		}
	}
	return options, nil
}

// An OrdersProducer publishes placed orders keyed by order number.
type OrdersProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewOrdersProducer(opts ...ProducerOpt) (OrdersProducer, error) {
	const op = "NewOrdersProducer"

	options, err := applyProducerOpts(op, opts)
	if err != nil {
		return OrdersProducer{}, err
	}

	opPrefix := "OrdersProducer"
	return OrdersProducer{
		producer: producer{opPrefix: opPrefix, cl: options.cl},
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p OrdersProducer) Close() {
	p.producer.close()
}

func (p OrdersProducer) PublishOrder(ctx context.Context, o domain.Order) error {
	const op = "PublishOrder"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(o)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

func (p OrdersProducer) createRecord(o domain.Order) (*kgo.Record, error) {
	const op = "createRecord"

	s := p.toSchema(o)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}
	return &kgo.Record{Key: []byte(s.Number), Value: b}, nil
}

func (OrdersProducer) toSchema(o domain.Order) schema.OrderV1 {
	return orderToSchemaV1(o)
}

// A NotificationsProducer mirrors storefront notifications to a topic.
//
// Notify never fails the caller; produce errors are logged.
type NotificationsProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewNotificationsProducer(
	opts ...ProducerOpt,
) (NotificationsProducer, error) {
	const op = "NewNotificationsProducer"

	options, err := applyProducerOpts(op, opts)
	if err != nil {
		return NotificationsProducer{}, err
	}

	opPrefix := "NotificationsProducer"
	return NotificationsProducer{
		producer: producer{opPrefix: opPrefix, cl: options.cl},
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p NotificationsProducer) Close() {
	p.producer.close()
}

func (p NotificationsProducer) Notify(ctx context.Context, n domain.Notification) {
	const op = "Notify"
	log := slog.With("op", makeOp(p.opPrefix, op))

	b, err := p.encoder.Encode(notificationToSchemaV1(n))
	if err != nil {
		log.Error("failed to encode notification", "err", err)
		return
	}

	r := &kgo.Record{Key: []byte(n.Severity), Value: b}
	if err := p.producer.produce(ctx, r); err != nil {
		log.Error("failed to produce notification", "err", err)
	}
}
