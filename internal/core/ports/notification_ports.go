package ports

import (
	"context"

	"github.com/vncsmyrnk/playervote/internal/core/domain"
)

// Notifier delivers an alert to the event owner. The boolean reports whether
// the sink accepted it.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) (bool, error)
}
