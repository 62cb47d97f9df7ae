package services

import (
	"encoding/json"
	"time"

	"cookbook/internal/logger"
)

// Routing keys of the domain events published after a mutation commits.
const (
	EventRecipeCreated  = "recipe.created"
	EventRecipeUpdated  = "recipe.updated"
	EventRecipeDeleted  = "recipe.deleted"
	EventRatingUpserted = "rating.upserted"
	EventRatingUpdated  = "rating.updated"
	EventRatingDeleted  = "rating.deleted"
)

// EventPublisher hands an encoded event to a broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// Event is the payload of every domain event.
type Event struct {
	Type       string    `json:"type"`
	EntityID   string    `json:"entityId"`
	ActorID    string    `json:"actorId"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data,omitempty"`
}

// emitter publishes best effort: the mutation is already committed, so failures are logged.
type emitter struct {
	publisher EventPublisher
	log       *logger.Logger
}

func (e emitter) emit(routingKey, entityID, actorID string, data any) {
	if e.publisher == nil {
		return
	}
	body, err := json.Marshal(Event{
		Type:       routingKey,
		EntityID:   entityID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	})
	if err != nil {
		e.log.Error("Failed to encode event", "routingKey", routingKey, "error", err)
		return
	}
	if err := e.publisher.Publish(routingKey, body); err != nil {
		eventPublishFailures.Inc()
		e.log.Warn("Failed to publish event", "routingKey", routingKey, "entityId", entityID, "error", err)
	}
}
