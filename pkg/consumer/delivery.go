package consumer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"notification-service/pkg/channel"
	"notification-service/pkg/logger"
	"notification-service/pkg/notification"
)

// Backoff returns the delay before retrying after the given zero-based
// attempt: base<<attempt, i.e. 1s, 2s, 4s for the defaults.
func Backoff(base time.Duration, attempt int) time.Duration {
	return base << attempt
}

// handle runs the delivery state machine for one delivered message. The
// message is an independent copy reconstructed from the wire payload, so
// finalizing its status never races with the producer.
//
// Both terminal outcomes return nil so the gateway acknowledges the
// delivery and the retry budget stays bounded. Only a context cancellation
// mid-flight propagates an error, which requeues the message for later
// redelivery.
func (c *Consumer) handle(ctx context.Context, msg notification.Message) error {
	for attempt := 0; ; attempt++ {
		err := c.sender.Send(ctx, msg)
		if err == nil {
			_ = msg.MarkDelivered()
			c.logger.Info("notification delivered",
				logger.Channel(string(c.channel)),
				logger.MessageID(msg.ID),
				logger.UserID(msg.UserID),
				logger.Attempt(attempt+1))
			return nil
		}

		if errors.Is(err, channel.ErrMissingRecipient) {
			_ = msg.MarkFailed()
			c.logger.Error("notification failed permanently",
				logger.Channel(string(c.channel)),
				logger.MessageID(msg.ID),
				logger.UserID(msg.UserID),
				logger.Attempt(attempt+1),
				logger.Error(err))
			return nil
		}

		c.logger.Warn("delivery attempt failed",
			logger.Channel(string(c.channel)),
			logger.MessageID(msg.ID),
			logger.Attempt(attempt+1),
			slog.Int("max_retries", c.maxRetries),
			logger.Error(err))

		if attempt+1 >= c.maxRetries {
			_ = msg.MarkFailed()
			c.logger.Error("notification failed after exhausting retries",
				logger.Channel(string(c.channel)),
				logger.MessageID(msg.ID),
				logger.UserID(msg.UserID),
				slog.Int("attempts", c.maxRetries),
				logger.Error(err))
			return nil
		}

		if err := c.sleep(ctx, Backoff(c.backoffBase, attempt)); err != nil {
			// Shutdown mid-retry: hand the message back to the broker.
			return err
		}
	}
}
