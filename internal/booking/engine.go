package booking

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/domain"
	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/metrics"
	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/store"
	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/telemetry"
)

// BookingService defines the interface for booking business logic
type BookingService interface {
	// ListBuses returns every bus in catalog order
	ListBuses(ctx context.Context) ([]*domain.Bus, error)

	// ListAvailableBuses returns buses with at least one free seat
	ListAvailableBuses(ctx context.Context) ([]*domain.Bus, error)

	// SearchBuses returns buses matching origin and destination
	SearchBuses(ctx context.Context, origin, destination string) ([]*domain.Bus, error)

	// FindBusByName returns the first bus with the given name
	FindBusByName(ctx context.Context, name string) (*domain.Bus, error)

	// ListTickets returns every issued ticket in issuance order
	ListTickets(ctx context.Context) ([]*domain.Ticket, error)

	// FindTicket returns the ticket with the given id
	FindTicket(ctx context.Context, id int64) (*domain.Ticket, error)

	// BookTicket books seats on a bus and issues a ticket
	BookTicket(ctx context.Context, busName, passengerName, contact string, seatCount int) (*domain.Ticket, error)

	// CancelTicket cancels a ticket and refunds its seats
	CancelTicket(ctx context.Context, id int64) (bool, error)

	// Seed loads a catalog into an empty system
	Seed(ctx context.Context, buses []*domain.Bus) error
}

// Engine implements BookingService on top of a durable store. All state
// lives in memory between operations; every mutation persists before it
// is acknowledged, and failed persistence rolls the memory image back.
type Engine struct {
	mu      sync.Mutex
	store   store.Store
	events  EventPublisher
	log     *zap.Logger
	buses   []*domain.Bus
	tickets []*domain.Ticket
}

var _ BookingService = (*Engine)(nil)

// New creates an Engine and hydrates it from the store.
func New(ctx context.Context, st store.Store, events EventPublisher, log *zap.Logger) (*Engine, error) {
	if events == nil {
		events = NewNoOpEventPublisher()
	}
	if log == nil {
		log = zap.NewNop()
	}

	buses, err := st.LoadBuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load buses: %w", err)
	}
	tickets, err := st.LoadTickets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tickets: %w", err)
	}

	log.Info("booking engine hydrated",
		zap.Int("buses", len(buses)),
		zap.Int("tickets", len(tickets)))

	return &Engine{
		store:   st,
		events:  events,
		log:     log,
		buses:   buses,
		tickets: tickets,
	}, nil
}

// Seed loads the given catalog into an empty system. A system that
// already has buses or tickets refuses the seed.
func (e *Engine) Seed(ctx context.Context, buses []*domain.Bus) error {
	ctx, span := telemetry.StartSpan(ctx, "booking.seed")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.buses) > 0 || len(e.tickets) > 0 {
		span.SetStatus(codes.Error, "catalog already seeded")
		return domain.ErrCatalogNotEmpty
	}

	for _, b := range buses {
		if err := b.Validate(); err != nil {
			span.SetStatus(codes.Error, "invalid catalog entry")
			return err
		}
	}

	if err := e.store.SaveBuses(ctx, buses); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist failed")
		return fmt.Errorf("failed to persist catalog: %w", err)
	}
	e.buses = buses

	span.SetAttributes(attribute.Int("bus_count", len(buses)))
	e.log.Info("catalog seeded", zap.Int("buses", len(buses)))

	if err := e.events.PublishCatalogSeeded(ctx, len(buses)); err != nil {
		e.log.Warn("failed to publish catalog seeded event", zap.Error(err))
	}
	return nil
}

// ListBuses returns every bus in catalog order.
func (e *Engine) ListBuses(ctx context.Context) ([]*domain.Bus, error) {
	_, span := telemetry.StartSpan(ctx, "booking.list_buses")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*domain.Bus, len(e.buses))
	for i, b := range e.buses {
		out[i] = b.Clone()
	}
	return out, nil
}

// ListAvailableBuses returns buses with at least one free seat, in
// catalog order.
func (e *Engine) ListAvailableBuses(ctx context.Context) ([]*domain.Bus, error) {
	_, span := telemetry.StartSpan(ctx, "booking.list_available_buses")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*domain.Bus, 0, len(e.buses))
	for _, b := range e.buses {
		if b.HasAvailability() {
			out = append(out, b.Clone())
		}
	}
	return out, nil
}

// SearchBuses returns buses whose route matches origin and destination.
// Matching ignores case and surrounding whitespace.
func (e *Engine) SearchBuses(ctx context.Context, origin, destination string) ([]*domain.Bus, error) {
	_, span := telemetry.StartSpan(ctx, "booking.search_buses")
	defer span.End()

	o := normalize(origin)
	d := normalize(destination)
	span.SetAttributes(
		attribute.String("origin", o),
		attribute.String("destination", d),
	)

	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*domain.Bus, 0)
	for _, b := range e.buses {
		if normalize(b.Origin) == o && normalize(b.Destination) == d {
			out = append(out, b.Clone())
		}
	}
	return out, nil
}

// FindBusByName returns the first bus whose name matches, ignoring case
// and surrounding whitespace.
func (e *Engine) FindBusByName(ctx context.Context, name string) (*domain.Bus, error) {
	_, span := telemetry.StartSpan(ctx, "booking.find_bus")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	b := e.findBus(name)
	if b == nil {
		span.SetStatus(codes.Error, "bus not found")
		return nil, domain.ErrBusNotFound
	}
	return b.Clone(), nil
}

// ListTickets returns every issued ticket in issuance order.
func (e *Engine) ListTickets(ctx context.Context) ([]*domain.Ticket, error) {
	_, span := telemetry.StartSpan(ctx, "booking.list_tickets")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*domain.Ticket, len(e.tickets))
	for i, t := range e.tickets {
		out[i] = t.Clone()
	}
	return out, nil
}

// FindTicket returns the ticket with the given id.
func (e *Engine) FindTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	_, span := telemetry.StartSpan(ctx, "booking.find_ticket")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, t := range e.tickets {
		if t.ID == id {
			return t.Clone(), nil
		}
	}
	span.SetStatus(codes.Error, "ticket not found")
	return nil, domain.ErrTicketNotFound
}

// BookTicket books seatCount seats on the named bus and issues a ticket
// priced at seatCount times the bus's per-seat price. The engine state
// and the store stay consistent even when persistence fails mid-flight.
func (e *Engine) BookTicket(ctx context.Context, busName, passengerName, contact string, seatCount int) (*domain.Ticket, error) {
	ctx, span := telemetry.StartSpan(ctx, "booking.book_ticket")
	defer span.End()

	if strings.TrimSpace(passengerName) == "" {
		span.SetStatus(codes.Error, "invalid passenger name")
		metrics.RecordFailure(ctx, "validation")
		return nil, domain.ErrPassengerRequired
	}
	if strings.TrimSpace(contact) == "" {
		span.SetStatus(codes.Error, "invalid contact")
		metrics.RecordFailure(ctx, "validation")
		return nil, domain.ErrContactRequired
	}
	if seatCount <= 0 {
		span.SetStatus(codes.Error, "invalid seat count")
		metrics.RecordFailure(ctx, "validation")
		return nil, domain.ErrInvalidSeatCount
	}

	span.SetAttributes(
		attribute.String("bus_name", strings.TrimSpace(busName)),
		attribute.Int("seat_count", seatCount),
	)

	e.mu.Lock()
	defer e.mu.Unlock()

	bus := e.findBus(busName)
	if bus == nil {
		span.SetStatus(codes.Error, "bus not found")
		metrics.RecordFailure(ctx, "bus_not_found")
		return nil, domain.ErrBusNotFound
	}
	if !bus.Book(seatCount) {
		span.SetStatus(codes.Error, "insufficient seats")
		metrics.RecordFailure(ctx, "insufficient_seats")
		return nil, domain.ErrInsufficientSeats
	}

	id, err := e.store.NextTicketID(ctx)
	if err != nil {
		bus.Refund(seatCount)
		span.RecordError(err)
		span.SetStatus(codes.Error, "id allocation failed")
		metrics.RecordFailure(ctx, "store")
		return nil, fmt.Errorf("failed to allocate ticket id: %w", err)
	}

	ticket, err := domain.NewTicket(id, passengerName, contact, bus, seatCount, int64(seatCount)*bus.PricePerSeat)
	if err != nil {
		bus.Refund(seatCount)
		span.RecordError(err)
		span.SetStatus(codes.Error, "ticket construction failed")
		metrics.RecordFailure(ctx, "validation")
		return nil, err
	}

	if err := e.store.SaveBuses(ctx, e.buses); err != nil {
		bus.Refund(seatCount)
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist failed")
		metrics.RecordFailure(ctx, "store")
		return nil, fmt.Errorf("failed to persist seat inventory: %w", err)
	}

	e.tickets = append(e.tickets, ticket)
	if err := e.store.SaveTickets(ctx, e.tickets); err != nil {
		e.tickets = e.tickets[:len(e.tickets)-1]
		bus.Refund(seatCount)
		if rbErr := e.store.SaveBuses(ctx, e.buses); rbErr != nil {
			e.log.Error("failed to roll back seat inventory", zap.Error(rbErr))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist failed")
		metrics.RecordFailure(ctx, "store")
		return nil, fmt.Errorf("failed to persist ticket: %w", err)
	}

	span.SetAttributes(attribute.Int64("ticket_id", ticket.ID))
	metrics.RecordBooking(ctx, bus.Name, seatCount)
	e.log.Info("ticket booked",
		zap.Int64("ticket_id", ticket.ID),
		zap.String("bus_name", bus.Name),
		zap.Int("seat_count", seatCount),
		zap.Int64("price_paid", ticket.PricePaid))

	if err := e.events.PublishTicketBooked(ctx, ticket); err != nil {
		e.log.Warn("failed to publish ticket booked event",
			zap.Int64("ticket_id", ticket.ID), zap.Error(err))
	}
	return ticket.Clone(), nil
}

// CancelTicket removes the ticket with the given id and refunds its
// seats. An unknown id reports false without error. A missing bus makes
// the refund best effort; the cancellation still proceeds.
func (e *Engine) CancelTicket(ctx context.Context, id int64) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "booking.cancel_ticket")
	defer span.End()

	span.SetAttributes(attribute.Int64("ticket_id", id))

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i, t := range e.tickets {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	ticket := e.tickets[idx]
	bus := e.findBus(ticket.BusName)
	refunded := false
	if bus != nil {
		refunded = bus.Refund(ticket.SeatCount)
	}

	e.tickets = append(e.tickets[:idx:idx], e.tickets[idx+1:]...)

	rollback := func() {
		e.tickets = append(e.tickets[:idx:idx], append([]*domain.Ticket{ticket}, e.tickets[idx:]...)...)
		if refunded {
			bus.Book(ticket.SeatCount)
		}
	}

	if err := e.store.SaveBuses(ctx, e.buses); err != nil {
		rollback()
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist failed")
		return false, fmt.Errorf("failed to persist seat inventory: %w", err)
	}
	if err := e.store.SaveTickets(ctx, e.tickets); err != nil {
		rollback()
		if rbErr := e.store.SaveBuses(ctx, e.buses); rbErr != nil {
			e.log.Error("failed to roll back seat inventory", zap.Error(rbErr))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist failed")
		return false, fmt.Errorf("failed to persist tickets: %w", err)
	}

	metrics.RecordCancellation(ctx, ticket.BusName)
	e.log.Info("ticket cancelled",
		zap.Int64("ticket_id", ticket.ID),
		zap.String("bus_name", ticket.BusName),
		zap.Bool("seats_refunded", refunded))

	if err := e.events.PublishTicketCancelled(ctx, ticket); err != nil {
		e.log.Warn("failed to publish ticket cancelled event",
			zap.Int64("ticket_id", ticket.ID), zap.Error(err))
	}
	return true, nil
}

// findBus returns the first bus whose normalized name matches.
// Callers hold e.mu.
func (e *Engine) findBus(name string) *domain.Bus {
	key := normalize(name)
	for _, b := range e.buses {
		if normalize(b.Name) == key {
			return b
		}
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
