package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/lovoo/goka"
	"github.com/niksmo/electrostyle/internal/core/domain"
	"github.com/niksmo/electrostyle/pkg/schema"
	"github.com/shopspring/decimal"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

// ProducerClientOpt dials the seed brokers and pings them.
//
// tlsConfig is optional.
func ProducerClientOpt(
	ctx context.Context,
	seedBrokers []string,
	topic string,
	tlsConfig *tls.Config,
) ProducerOpt {
	return func(opts *producerOpts) error {
		kgoOpts := []kgo.Opt{
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		}
		if tlsConfig != nil {
			kgoOpts = append(kgoOpts, kgo.DialTLSConfig(tlsConfig))
		}

		cl, err := kgo.NewClient(kgoOpts...)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			cl.Close()
			return err
		}
		opts.cl = cl
		return nil
	}
}

// ProducerClientInstanceOpt sets an already built client.
func ProducerClientInstanceOpt(cl ProducerClient) ProducerOpt {
	return func(opts *producerOpts) error {
		if cl == nil {
			return errors.New("producer client is nil")
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

// ApplyGokaTLS switches the goka global sarama config to TLS.
//
// Must be called before processors and views are created.
func ApplyGokaTLS(tlsConfig *tls.Config) {
	if tlsConfig == nil {
		return
	}
	cfg := goka.DefaultConfig()
	cfg.Net.TLS.Enable = true
	cfg.Net.TLS.Config = tlsConfig
	goka.ReplaceGlobalConfig(cfg)
}

func withNonlogProcOpt() goka.ProcessorOption {
	return goka.WithLogger(log.New(io.Discard, "", 0))
}

func withNonlogViewOpt() goka.ViewOption {
	return goka.WithViewLogger(log.New(io.Discard, "", 0))
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func orderToSchemaV1(v domain.Order) (s schema.OrderV1) {
	s.Number = v.Number
	s.FullName = v.FullName
	s.Phone = v.Phone
	s.Address = v.Address
	s.PaymentMethod = string(v.PaymentMethod)
	s.Subtotal = v.Summary.Subtotal.String()
	s.Shipping = v.Summary.Shipping.String()
	s.Tax = v.Summary.Tax.String()
	s.Total = v.Summary.Total.String()
	s.PlacedAt = v.PlacedAt

	s.Items = make([]schema.OrderItemV1, len(v.Items))
	for i, item := range v.Items {
		s.Items[i].ProductID = item.ID
		s.Items[i].Name = item.Name
		s.Items[i].Brand = item.Brand
		s.Items[i].Category = item.Category
		s.Items[i].UnitPrice = item.Price.String()
		s.Items[i].Quantity = item.Quantity
	}
	return
}

func orderFromSchemaV1(s schema.OrderV1) (domain.Order, error) {
	subtotal, err := decimal.NewFromString(s.Subtotal)
	if err != nil {
		return domain.Order{}, err
	}

	// shipping, tax and total are taken as placed, not recomputed
	summary := domain.Summarize(subtotal)
	for _, f := range []struct {
		dst *decimal.Decimal
		src string
	}{
		{&summary.Shipping, s.Shipping},
		{&summary.Tax, s.Tax},
		{&summary.Total, s.Total},
	} {
		if *f.dst, err = decimal.NewFromString(f.src); err != nil {
			return domain.Order{}, err
		}
	}

	items := make([]domain.CartItem, len(s.Items))
	for i, item := range s.Items {
		price, err := decimal.NewFromString(item.UnitPrice)
		if err != nil {
			return domain.Order{}, err
		}
		items[i] = domain.CartItem{
			Product: domain.Product{
				ID:       item.ProductID,
				Name:     item.Name,
				Brand:    item.Brand,
				Category: item.Category,
				Price:    price,
			},
			Quantity: item.Quantity,
		}
	}

	return domain.Order{
		Number:        s.Number,
		FullName:      s.FullName,
		Phone:         s.Phone,
		Address:       s.Address,
		PaymentMethod: domain.PaymentMethod(s.PaymentMethod),
		Items:         items,
		Summary:       summary,
		PlacedAt:      s.PlacedAt,
	}, nil
}

func notificationToSchemaV1(v domain.Notification) (s schema.NotificationV1) {
	s.Title = v.Title
	s.Description = v.Description
	s.Severity = string(v.Severity)
	return
}
