package dto

import "github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/domain"

// BusResponse represents a bus in API responses
type BusResponse struct {
	Name           string `json:"name"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	DepartureTime  string `json:"departure_time"`
	TotalSeats     int    `json:"total_seats"`
	PricePerTicket int64  `json:"price_per_ticket"`
	AvailableSeats int    `json:"available_seats"`
}

// BusFromDomain maps a bus to its API representation
func BusFromDomain(b *domain.Bus) BusResponse {
	return BusResponse{
		Name:           b.Name,
		Origin:         b.Origin,
		Destination:    b.Destination,
		DepartureTime:  b.Departure,
		TotalSeats:     b.TotalSeats,
		PricePerTicket: b.PricePerSeat,
		AvailableSeats: b.AvailableSeats,
	}
}

// BusesFromDomain maps a bus list preserving order
func BusesFromDomain(buses []*domain.Bus) []BusResponse {
	out := make([]BusResponse, len(buses))
	for i, b := range buses {
		out[i] = BusFromDomain(b)
	}
	return out
}

// TicketResponse represents a ticket in API responses
type TicketResponse struct {
	TicketID      int64  `json:"ticket_id"`
	BusID         string `json:"bus_id"`
	PassengerName string `json:"passenger_name"`
	ContactNumber string `json:"contact_number"`
	BusName       string `json:"bus_name"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureTime string `json:"departure_time"`
	SeatCount     int    `json:"seat_count"`
	PricePaid     int64  `json:"price_paid"`
}

// TicketFromDomain maps a ticket to its API representation
func TicketFromDomain(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		TicketID:      t.ID,
		BusID:         t.BusID,
		PassengerName: t.PassengerName,
		ContactNumber: t.Contact,
		BusName:       t.BusName,
		Origin:        t.Origin,
		Destination:   t.Destination,
		DepartureTime: t.Departure,
		SeatCount:     t.SeatCount,
		PricePaid:     t.PricePaid,
	}
}

// TicketsFromDomain maps a ticket list preserving order
func TicketsFromDomain(tickets []*domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, len(tickets))
	for i, t := range tickets {
		out[i] = TicketFromDomain(t)
	}
	return out
}

// BookTicketRequest represents a request to book seats
type BookTicketRequest struct {
	BusName       string `json:"bus_name" binding:"required"`
	PassengerName string `json:"passenger_name" binding:"required"`
	ContactNumber string `json:"contact_number" binding:"required"`
	SeatCount     int    `json:"seat_count" binding:"required,min=1"`
}

// CancelTicketResponse represents the result of a cancellation
type CancelTicketResponse struct {
	TicketID  int64  `json:"ticket_id"`
	Cancelled bool   `json:"cancelled"`
	Message   string `json:"message,omitempty"`
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}
