package domain

import (
	"errors"
	"testing"
)

func ticketBus(t *testing.T) *Bus {
	t.Helper()
	b, err := NewBus("Ena Transport", "Sylhet", "Dhaka", "08:00", 40, 800)
	if err != nil {
		t.Fatalf("NewBus() error = %v", err)
	}
	return b
}

func TestNewTicketSnapshotsBus(t *testing.T) {
	b := ticketBus(t)

	ticket, err := NewTicket(7, " Rahim Uddin ", " 01711000000 ", b, 3, 2400)
	if err != nil {
		t.Fatalf("NewTicket() error = %v", err)
	}
	if ticket.ID != 7 {
		t.Errorf("ID = %d, want 7", ticket.ID)
	}
	if ticket.PassengerName != "Rahim Uddin" || ticket.Contact != "01711000000" {
		t.Errorf("passenger fields not trimmed: %+v", ticket)
	}
	if ticket.BusID != "Ena Transport" || ticket.BusName != "Ena Transport" {
		t.Errorf("bus reference mismatch: %+v", ticket)
	}
	if ticket.Origin != "Sylhet" || ticket.Destination != "Dhaka" || ticket.Departure != "08:00" {
		t.Errorf("route snapshot mismatch: %+v", ticket)
	}

	// Later catalog changes must not reach the issued ticket.
	b.Origin = "Bogra"
	if ticket.Origin != "Sylhet" {
		t.Errorf("ticket snapshot tracked the bus: %q", ticket.Origin)
	}
}

func TestNewTicketValidation(t *testing.T) {
	b := ticketBus(t)

	tests := []struct {
		name      string
		passenger string
		contact   string
		seats     int
		price     int64
		wantErr   error
	}{
		{"blank passenger", "  ", "01711000000", 1, 800, ErrPassengerRequired},
		{"blank contact", "Rahim Uddin", "", 1, 800, ErrContactRequired},
		{"zero seats", "Rahim Uddin", "01711000000", 0, 0, ErrInvalidSeatCount},
		{"negative price", "Rahim Uddin", "01711000000", 1, -800, ErrInvalidPricePaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTicket(1, tt.passenger, tt.contact, b, tt.seats, tt.price)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewTicket() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestErrorClassifiers(t *testing.T) {
	if !IsValidationError(ErrInvalidSeatCount) || IsValidationError(ErrBusNotFound) {
		t.Error("IsValidationError misclassified")
	}
	if !IsNotFoundError(ErrTicketNotFound) || IsNotFoundError(ErrInsufficientSeats) {
		t.Error("IsNotFoundError misclassified")
	}
	if !IsConflictError(ErrInsufficientSeats) || !IsConflictError(ErrCatalogNotEmpty) {
		t.Error("IsConflictError misclassified")
	}
	if !IsCorruptStoreError(ErrCorruptStore) || IsCorruptStoreError(ErrBusNotFound) {
		t.Error("IsCorruptStoreError misclassified")
	}
}
