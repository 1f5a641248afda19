package channel

import (
	"context"
	"fmt"

	"notification-service/pkg/inapp"
	"notification-service/pkg/notification"
)

// InApp delivers by appending to the in-app store. The append is the
// delivery, so the stored copy is recorded with its delivered status.
type InApp struct {
	store inapp.Store
}

// NewInApp creates the in-app channel adapter.
func NewInApp(store inapp.Store) *InApp {
	return &InApp{store: store}
}

func (a *InApp) Send(ctx context.Context, msg notification.Message) error {
	if msg.UserID == "" {
		return fmt.Errorf("%w: user_id", ErrMissingRecipient)
	}
	stored := msg
	_ = stored.MarkDelivered()
	return a.store.Append(ctx, stored)
}
