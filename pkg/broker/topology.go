package broker

import (
	"fmt"

	"notification-service/pkg/notification"
)

// Exchange is the single direct exchange all notification queues bind to.
const Exchange = "notifications"

// queueNames is the fixed channel -> queue mapping. Routing key == queue name.
var queueNames = map[notification.Channel]string{
	notification.ChannelEmail: "email_notifications",
	notification.ChannelSMS:   "sms_notifications",
	notification.ChannelInApp: "in_app_notifications",
}

// QueueName resolves the durable queue for a channel.
func QueueName(c notification.Channel) (string, error) {
	name, ok := queueNames[c]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownChannel, c)
	}
	return name, nil
}
