// Package consumer is the durable subscription side of the event log. Every
// replica joins the same consumer group, so entries are load-balanced across
// processors and redelivered when one crashes mid-batch.
package consumer

import (
	"context"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/devtrail/devtrail/internal/events"
	"github.com/devtrail/devtrail/internal/natsclient"
	"github.com/devtrail/devtrail/internal/processor"
)

// DurableName identifies the event-processor consumer group. All replicas
// share it.
const DurableName = "event-processor"

const (
	fetchBatch = 16
	ackWait    = 30 * time.Second
)

// EventConsumer pulls raw envelopes from the EVENTS stream and feeds them to
// the processor.
type EventConsumer struct {
	nats      *natsclient.Client
	processor *processor.Processor
	logger    *zap.Logger
	tracer    trace.Tracer
}

func New(n *natsclient.Client, p *processor.Processor, l *zap.Logger) *EventConsumer {
	return &EventConsumer{
		nats:      n,
		processor: p,
		logger:    l,
		tracer:    otel.Tracer("event-consumer"),
	}
}

// Start initializes the pull subscription and begins processing in a
// background goroutine until the context is canceled.
func (c *EventConsumer) Start(ctx context.Context) error {
	// DeliverNew only applies when the durable is first created; a
	// restarted replica resumes from the group's ack floor instead of
	// replaying the whole stream.
	sub, err := c.nats.JS.PullSubscribe(
		natsclient.SubjectEvents,
		DurableName,
		nats.BindStream(natsclient.StreamEvents),
		nats.AckWait(ackWait),
		nats.DeliverNew(),
	)
	if err != nil {
		return err
	}

	c.logger.Info("event consumer initialized",
		zap.String("stream", natsclient.StreamEvents),
		zap.String("durable", DurableName),
	)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				msgs, err := sub.Fetch(fetchBatch, nats.Context(ctx))
				if err != nil {
					continue // timeout or ctx cancel — retry
				}
				for _, msg := range msgs {
					c.processMessage(ctx, msg)
				}
			}
		}
	}()

	return nil
}

type ackAction int

const (
	actionAck ackAction = iota
	actionNak
	actionTerm
)

// decide maps the processor outcome onto JetStream acknowledgment:
// validation failures are poison pills and get terminated, transient errors
// are nak'd for redelivery, everything else acks. Handler failures that
// happen after the event row is durable also ack, because redelivering those
// would only produce duplicates.
func decide(err error) ackAction {
	if err == nil {
		return actionAck
	}
	var verr *events.ValidationError
	if errors.As(err, &verr) {
		return actionTerm
	}
	return actionNak
}

func (c *EventConsumer) processMessage(ctx context.Context, msg *nats.Msg) {
	ctx, span := c.tracer.Start(ctx, "consumer.processMessage")
	defer span.End()

	result, err := c.processor.Process(ctx, msg.Data)
	switch decide(err) {
	case actionTerm:
		c.logger.Warn("terminating poison pill", zap.String("subject", msg.Subject), zap.Error(err))
		msg.Term()
	case actionNak:
		c.logger.Error("transient processing failure, requeueing", zap.Error(err))
		msg.Nak()
	default:
		if result.HandlerErr != nil {
			c.logger.Warn("event persisted but handler failed",
				zap.String("status", result.Status),
				zap.Error(result.HandlerErr),
			)
		}
		msg.Ack()
	}
}
