package notify

import (
	"context"
	"log/slog"

	"github.com/niksmo/electrostyle/internal/core/domain"
	"github.com/niksmo/electrostyle/internal/core/port"
)

var _ port.Notifier = LogNotifier{}

// A LogNotifier writes notifications to the structured log.
// It is the global notifier when no broker is configured.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return LogNotifier{log.With("op", "LogNotifier.Notify")}
}

func (n LogNotifier) Notify(ctx context.Context, v domain.Notification) {
	level := slog.LevelInfo
	if v.Severity == domain.SeverityDestructive {
		level = slog.LevelWarn
	}
	n.log.Log(ctx, level, v.Title,
		"description", v.Description,
		"severity", v.Severity,
	)
}
