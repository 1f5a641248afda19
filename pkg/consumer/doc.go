// Package consumer runs the delivery side of the notification pipeline.
//
// One Consumer is started per channel, each on its own subscription, so a
// channel backing off between retries never stalls another channel's
// throughput. For every delivered message the consumer runs the delivery
// state machine:
//
//	attempt[0] .. attempt[maxRetries-1] -> delivered | failed
//
// A successful send finalizes the message as delivered. A transient failure
// sleeps for an exponentially growing delay (base<<attempt: 1s, 2s, 4s by
// default) and tries again; once the retry budget is exhausted the message
// is finalized as failed and dropped from the pipeline. A permanent failure
// (missing recipient for the channel) is finalized immediately, with no
// retries.
//
// The consumer acknowledges the broker delivery for both terminal outcomes,
// so the total attempt budget stays exactly maxRetries. The only path that
// requeues a message is shutdown while a delivery is in flight: the backoff
// sleep aborts with the context error and the broker redelivers the message
// later.
package consumer
