package store

import (
	"context"
	"fmt"

	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/domain"
)

// Store is the persistence boundary for the booking engine. It owns the
// durable copy of both entity collections and the ticket-id counter.
// Implementations must keep catalog order across save/load cycles and
// must advance the counter durably before NextTicketID returns, so an
// issued id is never reused even if the caller crashes.
type Store interface {
	// LoadBuses reconstructs every persisted bus record in catalog order.
	LoadBuses(ctx context.Context) ([]*domain.Bus, error)

	// SaveBuses replaces the persisted bus collection; the ticket
	// collection and the id counter are preserved across the call.
	SaveBuses(ctx context.Context, buses []*domain.Bus) error

	// LoadTickets reconstructs every persisted ticket record in issuance order.
	LoadTickets(ctx context.Context) ([]*domain.Ticket, error)

	// SaveTickets replaces the persisted ticket collection.
	SaveTickets(ctx context.Context, tickets []*domain.Ticket) error

	// NextTicketID returns an identifier never returned before by this
	// store. A freshly initialized store issues 1 first.
	NextTicketID(ctx context.Context) (int64, error)

	// Ping checks that the backing medium is reachable.
	Ping(ctx context.Context) error

	// Close releases the backing medium.
	Close() error
}

// document is the logical on-disk record: three named sections keyed
// the way data_store.json lays them out.
type document struct {
	Buses        []busRecord    `json:"buses"`
	Tickets      []ticketRecord `json:"tickets"`
	NextTicketID int64          `json:"next_ticket_id"`
}

func newDocument() *document {
	return &document{
		Buses:        []busRecord{},
		Tickets:      []ticketRecord{},
		NextTicketID: 1,
	}
}

type busRecord struct {
	Name           string `json:"name"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	Departure      string `json:"departure_time"`
	TotalSeats     int    `json:"total_seats"`
	PricePerSeat   int64  `json:"price_per_ticket"`
	AvailableSeats int    `json:"available_seats"`
}

type ticketRecord struct {
	ID            int64  `json:"ticket_id"`
	BusID         string `json:"bus_id"`
	PassengerName string `json:"passenger_name"`
	Contact       string `json:"contact_number"`
	BusName       string `json:"bus_name"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	Departure     string `json:"departure_time"`
	SeatCount     int    `json:"seat_count"`
	PricePaid     int64  `json:"price_paid"`
}

func busToRecord(b *domain.Bus) busRecord {
	return busRecord{
		Name:           b.Name,
		Origin:         b.Origin,
		Destination:    b.Destination,
		Departure:      b.Departure,
		TotalSeats:     b.TotalSeats,
		PricePerSeat:   b.PricePerSeat,
		AvailableSeats: b.AvailableSeats,
	}
}

// busFromRecord rebuilds a bus and re-checks its invariants; a persisted
// record that fails construction marks the whole store as corrupt.
func busFromRecord(r busRecord) (*domain.Bus, error) {
	b, err := domain.RestoreBus(r.Name, r.Origin, r.Destination, r.Departure, r.TotalSeats, r.PricePerSeat, r.AvailableSeats)
	if err != nil {
		return nil, fmt.Errorf("%w: bus record %q: %w", domain.ErrCorruptStore, r.Name, err)
	}
	return b, nil
}

func ticketToRecord(t *domain.Ticket) ticketRecord {
	return ticketRecord{
		ID:            t.ID,
		BusID:         t.BusID,
		PassengerName: t.PassengerName,
		Contact:       t.Contact,
		BusName:       t.BusName,
		Origin:        t.Origin,
		Destination:   t.Destination,
		Departure:     t.Departure,
		SeatCount:     t.SeatCount,
		PricePaid:     t.PricePaid,
	}
}

func ticketFromRecord(r ticketRecord) (*domain.Ticket, error) {
	t := &domain.Ticket{
		ID:            r.ID,
		BusID:         r.BusID,
		PassengerName: r.PassengerName,
		Contact:       r.Contact,
		BusName:       r.BusName,
		Origin:        r.Origin,
		Destination:   r.Destination,
		Departure:     r.Departure,
		SeatCount:     r.SeatCount,
		PricePaid:     r.PricePaid,
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("%w: ticket record %d: %w", domain.ErrCorruptStore, r.ID, err)
	}
	return t, nil
}

func busesToRecords(buses []*domain.Bus) []busRecord {
	records := make([]busRecord, len(buses))
	for i, b := range buses {
		records[i] = busToRecord(b)
	}
	return records
}

func busesFromRecords(records []busRecord) ([]*domain.Bus, error) {
	buses := make([]*domain.Bus, len(records))
	for i, r := range records {
		b, err := busFromRecord(r)
		if err != nil {
			return nil, err
		}
		buses[i] = b
	}
	return buses, nil
}

func ticketsToRecords(tickets []*domain.Ticket) []ticketRecord {
	records := make([]ticketRecord, len(tickets))
	for i, t := range tickets {
		records[i] = ticketToRecord(t)
	}
	return records
}

func ticketsFromRecords(records []ticketRecord) ([]*domain.Ticket, error) {
	tickets := make([]*domain.Ticket, len(records))
	for i, r := range records {
		t, err := ticketFromRecord(r)
		if err != nil {
			return nil, err
		}
		tickets[i] = t
	}
	return tickets, nil
}
