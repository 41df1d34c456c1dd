package messaging

import (
	"context"

	"github.com/xivmarket/marketboard/internal/domain"
)

// Publisher defines the interface for publishing upload events to the event bus
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a committed upload event to the message broker
	PublishEvent(ctx context.Context, event *domain.UploadEvent) error
	// Close closes the connection
	Close()
}
