package domain

import "strings"

// Bus represents one scheduled trip and its seat inventory.
// The trimmed name is the business key used by lookups and tickets;
// Departure is a free-form label and is never parsed as a time.
type Bus struct {
	Name           string `json:"name"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	Departure      string `json:"departure_time"`
	TotalSeats     int    `json:"total_seats"`
	PricePerSeat   int64  `json:"price_per_ticket"`
	AvailableSeats int    `json:"available_seats"`
}

// NewBus creates a freshly opened trip with all seats available.
func NewBus(name, origin, destination, departure string, totalSeats int, pricePerSeat int64) (*Bus, error) {
	return RestoreBus(name, origin, destination, departure, totalSeats, pricePerSeat, totalSeats)
}

// RestoreBus reconstructs a bus with an explicit available-seat count,
// as read back from the durable store.
func RestoreBus(name, origin, destination, departure string, totalSeats int, pricePerSeat int64, availableSeats int) (*Bus, error) {
	b := &Bus{
		Name:           strings.TrimSpace(name),
		Origin:         strings.TrimSpace(origin),
		Destination:    strings.TrimSpace(destination),
		Departure:      strings.TrimSpace(departure),
		TotalSeats:     totalSeats,
		PricePerSeat:   pricePerSeat,
		AvailableSeats: availableSeats,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks the construction invariants.
func (b *Bus) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrBusNameRequired
	}
	if strings.TrimSpace(b.Origin) == "" || strings.TrimSpace(b.Destination) == "" {
		return ErrRouteRequired
	}
	if b.TotalSeats <= 0 {
		return ErrInvalidTotalSeats
	}
	if b.PricePerSeat <= 0 {
		return ErrInvalidPrice
	}
	if b.AvailableSeats < 0 || b.AvailableSeats > b.TotalSeats {
		return ErrInvalidAvailableSeats
	}
	return nil
}

// Book decrements the available seats by count. It reports whether the
// booking fit; on false the inventory is left unchanged.
func (b *Bus) Book(count int) bool {
	if count <= 0 {
		return false
	}
	if b.AvailableSeats < count {
		return false
	}
	b.AvailableSeats -= count
	return true
}

// Refund returns count seats to the inventory. It reports whether the
// refund fit below total capacity; on false the inventory is left unchanged.
func (b *Bus) Refund(count int) bool {
	if count <= 0 {
		return false
	}
	if b.AvailableSeats+count > b.TotalSeats {
		return false
	}
	b.AvailableSeats += count
	return true
}

// HasAvailability reports whether the bus has any seats left.
func (b *Bus) HasAvailability() bool {
	return b.AvailableSeats > 0
}

// Clone returns an independent copy for snapshot reads.
func (b *Bus) Clone() *Bus {
	c := *b
	return &c
}
