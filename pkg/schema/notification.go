package schema

const NotificationSchemaTextV1 = `{
	"type": "record",
	"namespace": "electrostyle",
	"name": "notification",
	"fields": [
		{"name": "title", "type": "string"},
		{"name": "description", "type": "string"},
		{"name": "severity", "type": "string"}
	]
}`

type NotificationV1 struct {
	Title       string `avro:"title"`
	Description string `avro:"description"`
	Severity    string `avro:"severity"`
}
