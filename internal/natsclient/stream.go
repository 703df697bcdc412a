package natsclient

import (
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	// StreamEvents is the durable stream that buffers every accepted
	// client event between ingest and the processor group.
	StreamEvents = "EVENTS"
	// SubjectEvents is the wildcard subject hierarchy for event messages.
	// Individual events are published to "events.<type>".
	SubjectEvents = "events.>"
)

// SubjectForType returns the publish subject for an event type,
// e.g. "events.session.start".
func SubjectForType(eventType string) string {
	return "events." + eventType
}

// ProvisionStreams idempotently creates the required JetStream streams.
func (c *Client) ProvisionStreams() error {
	_, err := c.JS.StreamInfo(StreamEvents)
	if err == nil {
		c.Log.Info("NATS stream exists", zap.String("stream", StreamEvents))
		return nil
	}

	if err != nats.ErrStreamNotFound {
		return fmt.Errorf("failed to check stream info: %w", err)
	}

	cfg := &nats.StreamConfig{
		Name:      StreamEvents,
		Subjects:  []string{SubjectEvents},
		Storage:   nats.FileStorage,
		Retention: nats.LimitsPolicy,
	}

	_, err = c.JS.AddStream(cfg)
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	c.Log.Info("NATS stream provisioned", zap.String("stream", StreamEvents))
	return nil
}
