package schema_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/electrostyle/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestSerdeOrderV1(t *testing.T) {

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeOrderV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeOrderV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("EmptySubject", func(t *testing.T) {
		_, err := schema.NewSerdeOrderV1(
			t.Context(),
			schema.SubjectOpt(""),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
	})

	t.Run("RegistryUnavailable", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		subject := "orders-value"
		registryErr := errors.New("registry unavailable")

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.OrderSchemaTextV1,
		).Return(0, registryErr)

		_, err := schema.NewSerdeOrderV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, registryErr)
		schemaIdentifier.AssertExpectations(t)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaID := 1
		subject := "orders-value"

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.OrderSchemaTextV1,
		).Return(schemaID, nil)

		serde, err := schema.NewSerdeOrderV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)

		orderValue1 := schema.OrderV1{
			Number:        "A1B2C3D4E",
			FullName:      "Jane Doe",
			Phone:         "+1 (555) 123-4567",
			Address:       "12 Main Street, Springfield",
			PaymentMethod: "card",
			Items: []schema.OrderItemV1{
				{
					ProductID: "5",
					Name:      "Sony 55\" OLED 4K TV",
					Brand:     "Sony",
					Category:  "TVs",
					UnitPrice: "1799.99",
					Quantity:  2,
				},
			},
			Subtotal: "3599.98",
			Shipping: "0",
			Tax:      "288",
			Total:    "3887.98",
			PlacedAt: time.Date(2026, 10, 17, 12, 30, 0, 0, time.UTC),
		}

		encodedData, err := serde.Encode(orderValue1)
		require.NoError(t, err)

		var orderValue2 schema.OrderV1
		err = serde.Decode(encodedData, &orderValue2)
		require.NoError(t, err)

		assert.Equal(t, orderValue1.Number, orderValue2.Number)
		assert.Equal(t, orderValue1.Items, orderValue2.Items)
		assert.Equal(t, orderValue1.Total, orderValue2.Total)
		assert.True(t, orderValue1.PlacedAt.Equal(orderValue2.PlacedAt))
	})
}

func TestSerdeNotificationV1(t *testing.T) {
	schemaIdentifier := new(MockSchemaIdentifier)
	subject := "notifications-value"

	schemaIdentifier.On(
		"DetermineID", t.Context(), subject, schema.NotificationSchemaTextV1,
	).Return(7, nil)

	serde, err := schema.NewSerdeNotificationV1(
		t.Context(),
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaIdentifier),
	)
	require.NoError(t, err)

	v1 := schema.NotificationV1{
		Title:       "Stock Limit Reached",
		Description: "Cannot add more Ninja Air Fryer Max XL to cart.",
		Severity:    "destructive",
	}

	data, err := serde.Encode(v1)
	require.NoError(t, err)

	var v2 schema.NotificationV1
	require.NoError(t, serde.Decode(data, &v2))
	assert.Equal(t, v1, v2)
}
