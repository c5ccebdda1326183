// Package worker consumes play-count update events from JetStream and runs
// crown evaluations over a bounded worker pool.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/chartbot/crown-engine/internal/adapter"
	"github.com/chartbot/crown-engine/internal/domain"
	"github.com/chartbot/crown-engine/internal/engine"
	"github.com/chartbot/crown-engine/internal/logger"
	"github.com/chartbot/crown-engine/internal/messaging"
)

// Config holds the configuration for the evaluation worker
type Config struct {
	URL            string
	StreamName     string
	ConsumerName   string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	AckWaitTimeout time.Duration
	MaxDeliver     int
	PoolSize       int
	QueueSize      int
}

// Worker defines the interface for the evaluation worker
type Worker interface {
	// Run starts consuming; it blocks until ctx is cancelled
	Run(ctx context.Context) error
	// Close closes the worker and cleans up resources
	Close()
}

type worker struct {
	nc     adapter.NatsConn
	js     adapter.JetStream
	engine engine.Engine
	json   adapter.JSON
	config Config
}

// NewWorker creates a new evaluation worker
func NewWorker(
	cfg Config,
	natsJS adapter.NatsJetStream,
	eng engine.Engine,
	jsonAdapter adapter.JSON,
) (Worker, error) {
	nc, js, err := messaging.Connect(messaging.Config{
		URL:            cfg.URL,
		StreamName:     cfg.StreamName,
		MaxReconnects:  cfg.MaxReconnects,
		ReconnectWait:  cfg.ReconnectWait,
		ConnectionName: cfg.ConnectionName,
	}, natsJS)
	if err != nil {
		return nil, err
	}

	return &worker{
		nc:     nc,
		js:     js,
		engine: eng,
		json:   jsonAdapter,
		config: cfg,
	}, nil
}

// Run starts the evaluation worker
func (w *worker) Run(ctx context.Context) error {
	logger.Info("Starting evaluation worker",
		zap.String("stream", w.config.StreamName),
		zap.String("consumer", w.config.ConsumerName))

	consumerConfig := jetstream.ConsumerConfig{
		Durable:       w.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       w.config.AckWaitTimeout,
		MaxDeliver:    w.config.MaxDeliver,
		FilterSubject: messaging.SubjectPrefix + ".>",
	}

	consumer, err := w.js.CreateOrUpdateConsumer(ctx, w.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	consumerInfo, err := consumer.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.Info("Consumer created/retrieved", zap.String("consumer", consumerInfo.Name))

	pool := pond.NewPool(
		w.config.PoolSize,
		pond.WithQueueSize(w.config.QueueSize),
		pond.WithContext(ctx),
	)
	defer pool.StopAndWait()

	msgChan := make(chan adapter.Message, 100)
	sub, err := consumer.Consume(func(msg adapter.Message) {
		msgChan <- msg
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	logger.Info("Started consuming messages")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down evaluation worker")
			return ctx.Err()
		case msg := <-msgChan:
			pool.Submit(func() {
				w.handleMessage(ctx, msg)
			})
		}
	}
}

// handleMessage processes a single play-count update
func (w *worker) handleMessage(ctx context.Context, msg adapter.Message) {
	metadata, err := msg.Metadata()
	if err != nil {
		// Metadata only feeds the delivery-count log field; the event itself
		// is still processed
		logger.Debug("Failed to read message metadata", zap.Error(err))
	}

	var event domain.PlayCountUpdateEvent
	if err := w.json.Unmarshal(msg.Data(), &event); err != nil {
		logger.Error(err, zap.String("message", "Failed to unmarshal event"))
		// Terminate message for unparseable data
		if err := msg.Term(); err != nil {
			logger.Error(err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	artist := domain.NormalizeArtist(event.ArtistName)
	if !artist.Valid() {
		logger.Warn("Dropping event with empty artist name",
			zap.String("eventID", event.EventID),
			zap.Uint64("communityID", event.CommunityID))
		if err := msg.Term(); err != nil {
			logger.Error(err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	var deliveries uint64
	if metadata != nil {
		deliveries = metadata.NumDelivered
	}
	logger.Debug("Received play count update",
		zap.String("eventID", event.EventID),
		zap.Uint64("communityID", event.CommunityID),
		zap.String("artist", artist.String()),
		zap.Uint64("deliveryCount", deliveries))

	result, err := w.engine.Evaluate(ctx, event.CommunityID, artist)
	if err != nil {
		logger.Error(err, zap.String("message", "Failed to evaluate crown"),
			zap.String("eventID", event.EventID),
			zap.Uint64("communityID", event.CommunityID),
			zap.String("artist", artist.String()))
		// Abandon rather than redeliver: the crown stays as it was, and the
		// next play-count update for this artist reconciles it
		if err := msg.Ack(); err != nil {
			logger.Error(err, zap.String("message", "Failed to ACK message"))
		}
		return
	}

	if result.Action != domain.ActionNone {
		logger.Info("Crown evaluation applied",
			zap.String("action", string(result.Action)),
			zap.Uint64("communityID", result.CommunityID),
			zap.String("artist", result.ArtistKey.String()),
			zap.Uint64("ownerID", result.OwnerID))
	}

	if err := msg.Ack(); err != nil {
		logger.Error(err, zap.String("message", "Failed to ACK message"))
	}
}

// Close closes the worker and cleans up resources
func (w *worker) Close() {
	if w.nc == nil {
		return
	}

	w.nc.Close()
}
