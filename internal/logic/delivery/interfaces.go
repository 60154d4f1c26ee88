package delivery

import (
	"context"

	"github.com/skillcoder/restart-notifier/internal/logic/notifier"
)

// Messenger is the port for the messaging platform.
// Implementations are provided by adapters in the outbound layer.
type Messenger interface {
	DeliverCommand(ctx context.Context, alert notifier.Alert) error
}

// AlertQueue is the consumer side of the bounded delivery queue.
type AlertQueue interface {
	Pop(ctx context.Context) (notifier.Alert, bool)
	Len() int
	Cap() int
}
