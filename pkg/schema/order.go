package schema

import "time"

const OrderSchemaTextV1 = `{
	"type": "record",
	"namespace": "electrostyle",
	"name": "order",
	"fields": [
		{"name": "number", "type": "string"},
		{"name": "full_name", "type": "string"},
		{"name": "phone", "type": "string"},
		{"name": "address", "type": "string"},
		{"name": "payment_method", "type": "string"},
		{"name": "items", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "order_item",
				"fields": [
					{"name": "product_id", "type": "string"},
					{"name": "name", "type": "string"},
					{"name": "brand", "type": "string"},
					{"name": "category", "type": "string"},
					{"name": "unit_price", "type": "string"},
					{"name": "quantity", "type": "long"}
				]
			}
		}},
		{"name": "subtotal", "type": "string"},
		{"name": "shipping", "type": "string"},
		{"name": "tax", "type": "string"},
		{"name": "total", "type": "string"},
		{"name": "placed_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type (
	// Money fields carry decimal strings.
	OrderV1 struct {
		Number        string        `avro:"number"`
		FullName      string        `avro:"full_name"`
		Phone         string        `avro:"phone"`
		Address       string        `avro:"address"`
		PaymentMethod string        `avro:"payment_method"`
		Items         []OrderItemV1 `avro:"items"`
		Subtotal      string        `avro:"subtotal"`
		Shipping      string        `avro:"shipping"`
		Tax           string        `avro:"tax"`
		Total         string        `avro:"total"`
		PlacedAt      time.Time     `avro:"placed_at"`
	}

	OrderItemV1 struct {
		ProductID string `avro:"product_id"`
		Name      string `avro:"name"`
		Brand     string `avro:"brand"`
		Category  string `avro:"category"`
		UnitPrice string `avro:"unit_price"`
		Quantity  int    `avro:"quantity"`
	}
)
