// Package logsink is a notifier that writes notifications to the structured
// log. It is used when no broker is configured.
package logsink

import (
	"context"
	"log/slog"

	"github.com/vncsmyrnk/playervote/internal/core/domain"
	"github.com/vncsmyrnk/playervote/internal/core/ports"
)

type Sink struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) ports.Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{logger: logger}
}

func (s *Sink) Notify(ctx context.Context, n domain.Notification) (bool, error) {
	s.logger.InfoContext(ctx, "notification", "title", n.Title, "content", n.Content)
	return true, nil
}
