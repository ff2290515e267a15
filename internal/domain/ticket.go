package domain

import "strings"

// Ticket is an immutable record of one completed seat purchase. The bus
// fields are a snapshot frozen at booking time; later catalog changes
// never reach an issued ticket.
type Ticket struct {
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

// NewTicket creates a ticket for a successful booking, snapshotting the
// bus fields at issuance.
func NewTicket(id int64, passengerName, contact string, bus *Bus, seatCount int, pricePaid int64) (*Ticket, error) {
	t := &Ticket{
		ID:            id,
		BusID:         bus.Name,
		PassengerName: strings.TrimSpace(passengerName),
		Contact:       strings.TrimSpace(contact),
		BusName:       bus.Name,
		Origin:        bus.Origin,
		Destination:   bus.Destination,
		Departure:     bus.Departure,
		SeatCount:     seatCount,
		PricePaid:     pricePaid,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the construction invariants.
func (t *Ticket) Validate() error {
	if t.PassengerName == "" {
		return ErrPassengerRequired
	}
	if t.Contact == "" {
		return ErrContactRequired
	}
	if t.SeatCount <= 0 {
		return ErrInvalidSeatCount
	}
	if t.PricePaid < 0 {
		return ErrInvalidPricePaid
	}
	return nil
}

// Clone returns an independent copy for snapshot reads.
func (t *Ticket) Clone() *Ticket {
	c := *t
	return &c
}
