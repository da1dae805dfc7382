// Package eventbus wraps watermill/NATS JetStream publishing behind a small
// interface so services can emit audit, notification and XP events without
// knowing the transport. All consumers are external (leaderboard UIs, the XP
// service, the audit sink); this process only publishes.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventBus publishes messages to a subject. Implementations must be safe for
// concurrent use.
type EventBus interface {
	Publish(ctx context.Context, subject string, msg *message.Message) error
	Close() error
}

// NewJSONMessage builds a watermill message with a JSON payload and the
// subject stored in metadata, matching what Publish expects.
func NewJSONMessage(subject string, payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("subject", subject)
	return msg, nil
}

type eventBus struct {
	publisher message.Publisher
	natsConn  *nc.Conn
	logger    *slog.Logger
}

// NewEventBus connects to NATS and returns a JetStream-backed EventBus.
func NewEventBus(ctx context.Context, natsURL string, logger *slog.Logger) (EventBus, error) {
	natsConn, err := nc.Connect(natsURL, nc.RetryOnFailedConnect(true))
	if err != nil {
		logger.ErrorContext(ctx, "Failed to connect to NATS", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(natsConn)
	if err != nil {
		natsConn.Close()
		logger.ErrorContext(ctx, "Failed to initialize JetStream", slog.Any("error", err))
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	if err := initializeStreams(ctx, js, logger); err != nil {
		natsConn.Close()
		return nil, err
	}

	watermillLogger := watermill.NewSlogLogger(logger)
	marshaller := &wmnats.NATSMarshaler{}

	publisher, err := wmnats.NewPublisher(
		wmnats.PublisherConfig{
			URL:       natsURL,
			Marshaler: marshaller,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
		},
		watermillLogger,
	)
	if err != nil {
		natsConn.Close()
		logger.ErrorContext(ctx, "Failed to create Watermill publisher", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create Watermill publisher: %w", err)
	}

	return &eventBus{
		publisher: publisher,
		natsConn:  natsConn,
		logger:    logger,
	}, nil
}

func (eb *eventBus) Publish(ctx context.Context, subject string, msg *message.Message) error {
	if msg.UUID == "" {
		msg.UUID = watermill.NewUUID()
	}
	msg.Metadata.Set("subject", subject)
	msg.SetContext(ctx)

	eb.logger.DebugContext(ctx, "Publishing message",
		slog.String("subject", subject),
		slog.String("message_id", msg.UUID),
	)

	if err := eb.publisher.Publish(subject, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

func (eb *eventBus) Close() error {
	if err := eb.publisher.Close(); err != nil {
		eb.natsConn.Close()
		return fmt.Errorf("failed to close publisher: %w", err)
	}
	eb.natsConn.Close()
	return nil
}

// initializeStreams creates the judging streams in JetStream during startup.
func initializeStreams(ctx context.Context, js jetstream.JetStream, logger *slog.Logger) error {
	streamConfigs := []jetstream.StreamConfig{
		{Name: "judging", Subjects: []string{"judge.>", "score.>", "submission.>", "leaderboard.>"}},
		{Name: "audit", Subjects: []string{"audit.>"}},
		{Name: "rewards", Subjects: []string{"xp.>"}},
	}

	for _, streamConfig := range streamConfigs {
		_, err := js.Stream(ctx, streamConfig.Name)
		if err == jetstream.ErrStreamNotFound {
			if _, err := js.CreateStream(ctx, streamConfig); err != nil {
				logger.ErrorContext(ctx, "Failed to create JetStream stream",
					slog.String("stream", streamConfig.Name), slog.Any("error", err))
				return err
			}
			logger.InfoContext(ctx, "Created JetStream stream", slog.String("stream", streamConfig.Name))
		} else if err != nil {
			return fmt.Errorf("failed to check stream: %w", err)
		}
	}
	return nil
}
