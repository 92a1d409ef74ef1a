package notify

import (
	"context"

	"github.com/mcoot/turnherald/internal/model"
)

// Sink delivers notifications to the chat channel. Delivery is
// fire-and-forget from the caller's perspective: a failed send is reported
// but never retried here, and never unwinds committed state.
type Sink interface {
	Send(ctx context.Context, n model.Notification) error
}
