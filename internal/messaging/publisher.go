package messaging

import (
	"context"

	"github.com/chartbot/crown-engine/internal/domain"
)

// SubjectPrefix is the JetStream subject space for play-count updates; the
// community ID is the final token so consumers can filter per community
const SubjectPrefix = "crowns.updates"

// Publisher defines the interface for publishing events to the message queue
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishPlayCountUpdate publishes a play-count change for asynchronous
	// crown evaluation; an empty EventID is filled with a fresh ULID
	PublishPlayCountUpdate(ctx context.Context, event *domain.PlayCountUpdateEvent) error
	// Close closes the connection
	Close()
}
