package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/domain"
	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/kafka"
)

// TicketEventType identifies the kind of booking event
type TicketEventType string

const (
	// TicketEventBooked is published after a ticket is issued
	TicketEventBooked TicketEventType = "ticket.booked"

	// TicketEventCancelled is published after a ticket is cancelled
	TicketEventCancelled TicketEventType = "ticket.cancelled"

	// CatalogEventSeeded is published after the catalog is seeded
	CatalogEventSeeded TicketEventType = "catalog.seeded"
)

// TicketEvent is the envelope published to the event stream
type TicketEvent struct {
	EventID   string          `json:"event_id"`
	EventType TicketEventType `json:"event_type"`
	Timestamp time.Time       `json:"timestamp"`
	Ticket    *domain.Ticket  `json:"ticket,omitempty"`
	BusCount  int             `json:"bus_count,omitempty"`
}

// EventPublisher defines the interface for publishing booking events
type EventPublisher interface {
	// PublishTicketBooked publishes a ticket booked event
	PublishTicketBooked(ctx context.Context, ticket *domain.Ticket) error

	// PublishTicketCancelled publishes a ticket cancelled event
	PublishTicketCancelled(ctx context.Context, ticket *domain.Ticket) error

	// PublishCatalogSeeded publishes a catalog seeded event
	PublishCatalogSeeded(ctx context.Context, busCount int) error

	// Close closes the event publisher
	Close() error
}

// NoOpEventPublisher is a no-op implementation of EventPublisher
type NoOpEventPublisher struct{}

// NewNoOpEventPublisher creates a new no-op event publisher
func NewNoOpEventPublisher() *NoOpEventPublisher {
	return &NoOpEventPublisher{}
}

// PublishTicketBooked is a no-op
func (p *NoOpEventPublisher) PublishTicketBooked(ctx context.Context, ticket *domain.Ticket) error {
	return nil
}

// PublishTicketCancelled is a no-op
func (p *NoOpEventPublisher) PublishTicketCancelled(ctx context.Context, ticket *domain.Ticket) error {
	return nil
}

// PublishCatalogSeeded is a no-op
func (p *NoOpEventPublisher) PublishCatalogSeeded(ctx context.Context, busCount int) error {
	return nil
}

// Close is a no-op
func (p *NoOpEventPublisher) Close() error {
	return nil
}

// KafkaEventPublisher implements EventPublisher using Kafka
type KafkaEventPublisher struct {
	producer *kafka.Producer
	topic    string
}

// EventPublisherConfig contains configuration for the event publisher
type EventPublisherConfig struct {
	Brokers  []string
	Topic    string
	ClientID string
}

// NewKafkaEventPublisher creates a new Kafka event publisher
func NewKafkaEventPublisher(ctx context.Context, cfg *EventPublisherConfig) (*KafkaEventPublisher, error) {
	if cfg == nil || len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	topic := cfg.Topic
	if topic == "" {
		topic = "ticket-events"
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "bus-booking-producer"
	}

	producer, err := kafka.NewProducer(ctx, &kafka.ProducerConfig{
		Brokers:  cfg.Brokers,
		ClientID: clientID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &KafkaEventPublisher{
		producer: producer,
		topic:    topic,
	}, nil
}

// PublishTicketBooked publishes a ticket booked event
func (p *KafkaEventPublisher) PublishTicketBooked(ctx context.Context, ticket *domain.Ticket) error {
	return p.publish(ctx, TicketEvent{
		EventID:   uuid.New().String(),
		EventType: TicketEventBooked,
		Timestamp: time.Now().UTC(),
		Ticket:    ticket,
	}, fmt.Sprintf("%d", ticket.ID))
}

// PublishTicketCancelled publishes a ticket cancelled event
func (p *KafkaEventPublisher) PublishTicketCancelled(ctx context.Context, ticket *domain.Ticket) error {
	return p.publish(ctx, TicketEvent{
		EventID:   uuid.New().String(),
		EventType: TicketEventCancelled,
		Timestamp: time.Now().UTC(),
		Ticket:    ticket,
	}, fmt.Sprintf("%d", ticket.ID))
}

// PublishCatalogSeeded publishes a catalog seeded event
func (p *KafkaEventPublisher) PublishCatalogSeeded(ctx context.Context, busCount int) error {
	return p.publish(ctx, TicketEvent{
		EventID:   uuid.New().String(),
		EventType: CatalogEventSeeded,
		Timestamp: time.Now().UTC(),
		BusCount:  busCount,
	}, "catalog")
}

// Close closes the event publisher
func (p *KafkaEventPublisher) Close() error {
	if p.producer != nil {
		p.producer.Close()
	}
	return nil
}

func (p *KafkaEventPublisher) publish(ctx context.Context, event TicketEvent, key string) error {
	headers := map[string]string{
		"event_id":   event.EventID,
		"event_type": string(event.EventType),
	}
	return p.producer.ProduceJSON(ctx, p.topic, key, event, headers)
}
