// Package eventlog is the producer side of the durable event log. Each
// accepted event becomes one JetStream entry; the publish is synchronous so
// an append failure surfaces to the ingest caller, which retries from its
// local queue.
package eventlog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/devtrail/devtrail/internal/events"
	"github.com/devtrail/devtrail/internal/natsclient"
)

// Appender publishes validated envelopes onto the EVENTS stream.
type Appender struct {
	nats   *natsclient.Client
	logger *zap.Logger
}

func NewAppender(nc *natsclient.Client, logger *zap.Logger) *Appender {
	return &Appender{nats: nc, logger: logger}
}

// Append publishes one envelope and waits for the stream acknowledgment.
// The returned error means the event is NOT durable and the HTTP layer must
// fail the ingest request.
func (a *Appender) Append(ctx context.Context, env *events.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	ack, err := a.nats.JS.Publish(natsclient.SubjectForType(env.Type), data, nats.Context(ctx))
	if err != nil {
		return fmt.Errorf("append event %s: %w", env.ID, err)
	}

	a.logger.Debug("event appended",
		zap.String("event_id", env.ID),
		zap.String("type", env.Type),
		zap.Uint64("sequence", ack.Sequence),
	)
	return nil
}
