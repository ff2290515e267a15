package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/domain"
	internalredis "github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/redis"
	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/telemetry"
)

// RedisStore keeps each document section under its own key. The bus and
// ticket collections are JSON arrays so catalog order survives the round
// trip, and the id counter is a plain INCR key.
type RedisStore struct {
	client    *internalredis.Client
	namespace string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore wraps an established Redis connection. The namespace
// prefixes every key so several deployments can share one instance.
func NewRedisStore(client *internalredis.Client, namespace string) *RedisStore {
	if namespace == "" {
		namespace = "booking"
	}
	return &RedisStore{
		client:    client,
		namespace: namespace,
	}
}

func (s *RedisStore) busesKey() string   { return s.namespace + ":buses" }
func (s *RedisStore) ticketsKey() string { return s.namespace + ":tickets" }
func (s *RedisStore) counterKey() string { return s.namespace + ":next_ticket_id" }

// LoadBuses reads the bus section in catalog order.
func (s *RedisStore) LoadBuses(ctx context.Context) ([]*domain.Bus, error) {
	ctx, span := telemetry.StartSpan(ctx, "RedisStore.LoadBuses")
	defer span.End()

	data, err := s.client.Client().Get(ctx, s.busesKey()).Bytes()
	if errors.Is(err, goredis.Nil) {
		return []*domain.Bus{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read bus section: %w", err)
	}

	var records []busRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrCorruptStore, s.busesKey(), err)
	}
	return busesFromRecords(records)
}

// SaveBuses replaces the bus section.
func (s *RedisStore) SaveBuses(ctx context.Context, buses []*domain.Bus) error {
	ctx, span := telemetry.StartSpan(ctx, "RedisStore.SaveBuses")
	defer span.End()

	data, err := json.Marshal(busesToRecords(buses))
	if err != nil {
		return fmt.Errorf("failed to encode bus section: %w", err)
	}
	if err := s.client.Client().Set(ctx, s.busesKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write bus section: %w", err)
	}
	return nil
}

// LoadTickets reads the ticket section in issuance order.
func (s *RedisStore) LoadTickets(ctx context.Context) ([]*domain.Ticket, error) {
	ctx, span := telemetry.StartSpan(ctx, "RedisStore.LoadTickets")
	defer span.End()

	data, err := s.client.Client().Get(ctx, s.ticketsKey()).Bytes()
	if errors.Is(err, goredis.Nil) {
		return []*domain.Ticket{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ticket section: %w", err)
	}

	var records []ticketRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrCorruptStore, s.ticketsKey(), err)
	}
	return ticketsFromRecords(records)
}

// SaveTickets replaces the ticket section.
func (s *RedisStore) SaveTickets(ctx context.Context, tickets []*domain.Ticket) error {
	ctx, span := telemetry.StartSpan(ctx, "RedisStore.SaveTickets")
	defer span.End()

	data, err := json.Marshal(ticketsToRecords(tickets))
	if err != nil {
		return fmt.Errorf("failed to encode ticket section: %w", err)
	}
	if err := s.client.Client().Set(ctx, s.ticketsKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write ticket section: %w", err)
	}
	return nil
}

// NextTicketID advances the counter atomically on the server; INCR on a
// missing key yields 1, matching a freshly initialized store.
func (s *RedisStore) NextTicketID(ctx context.Context) (int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "RedisStore.NextTicketID")
	defer span.End()

	id, err := s.client.Client().Incr(ctx, s.counterKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to advance ticket counter: %w", err)
	}
	if id < 1 {
		return 0, fmt.Errorf("%w: ticket counter at %d", domain.ErrCorruptStore, id)
	}
	return id, nil
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
