package domain

type Severity string

const (
	SeverityInfo        Severity = "info"
	SeveritySuccess     Severity = "success"
	SeverityDestructive Severity = "destructive"
)

// A Notification is a user visible event. Rendering is up to the UI.
type Notification struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}
