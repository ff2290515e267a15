package domain

import (
	"errors"
	"testing"
)

func TestNewBus(t *testing.T) {
	b, err := NewBus("  Ena Transport ", " Sylhet", "Dhaka ", " 08:00 ", 40, 800)
	if err != nil {
		t.Fatalf("NewBus() error = %v", err)
	}
	if b.Name != "Ena Transport" || b.Origin != "Sylhet" || b.Destination != "Dhaka" || b.Departure != "08:00" {
		t.Errorf("fields were not trimmed: %+v", b)
	}
	if b.AvailableSeats != 40 {
		t.Errorf("AvailableSeats = %d, want all 40 seats open", b.AvailableSeats)
	}
}

func TestNewBusValidation(t *testing.T) {
	tests := []struct {
		name    string
		busName string
		origin  string
		dest    string
		seats   int
		price   int64
		wantErr error
	}{
		{"blank name", "   ", "Sylhet", "Dhaka", 40, 800, ErrBusNameRequired},
		{"blank origin", "Ena Transport", "", "Dhaka", 40, 800, ErrRouteRequired},
		{"blank destination", "Ena Transport", "Sylhet", "  ", 40, 800, ErrRouteRequired},
		{"zero seats", "Ena Transport", "Sylhet", "Dhaka", 0, 800, ErrInvalidTotalSeats},
		{"negative seats", "Ena Transport", "Sylhet", "Dhaka", -5, 800, ErrInvalidTotalSeats},
		{"zero price", "Ena Transport", "Sylhet", "Dhaka", 40, 0, ErrInvalidPrice},
		{"negative price", "Ena Transport", "Sylhet", "Dhaka", 40, -100, ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBus(tt.busName, tt.origin, tt.dest, "08:00", tt.seats, tt.price)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewBus() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRestoreBusAvailableSeatsBounds(t *testing.T) {
	if _, err := RestoreBus("Ena Transport", "Sylhet", "Dhaka", "08:00", 40, 800, 41); !errors.Is(err, ErrInvalidAvailableSeats) {
		t.Errorf("RestoreBus() with 41/40 seats error = %v, want ErrInvalidAvailableSeats", err)
	}
	if _, err := RestoreBus("Ena Transport", "Sylhet", "Dhaka", "08:00", 40, 800, -1); !errors.Is(err, ErrInvalidAvailableSeats) {
		t.Errorf("RestoreBus() with -1 seats error = %v, want ErrInvalidAvailableSeats", err)
	}
	if b, err := RestoreBus("Ena Transport", "Sylhet", "Dhaka", "08:00", 40, 800, 0); err != nil || b.AvailableSeats != 0 {
		t.Errorf("RestoreBus() with 0 seats = (%+v, %v), want sold-out bus", b, err)
	}
}

func TestBusBook(t *testing.T) {
	tests := []struct {
		name          string
		available     int
		count         int
		wantOK        bool
		wantAvailable int
	}{
		{"books within inventory", 40, 3, true, 37},
		{"books entire inventory", 40, 40, true, 0},
		{"rejects over inventory", 5, 6, false, 5},
		{"rejects zero", 40, 0, false, 40},
		{"rejects negative", 40, -1, false, 40},
		{"rejects when sold out", 0, 1, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := RestoreBus("Ena Transport", "Sylhet", "Dhaka", "08:00", 40, 800, tt.available)
			if err != nil {
				t.Fatalf("RestoreBus() error = %v", err)
			}
			if got := b.Book(tt.count); got != tt.wantOK {
				t.Errorf("Book(%d) = %v, want %v", tt.count, got, tt.wantOK)
			}
			if b.AvailableSeats != tt.wantAvailable {
				t.Errorf("AvailableSeats = %d, want %d", b.AvailableSeats, tt.wantAvailable)
			}
		})
	}
}

func TestBusRefund(t *testing.T) {
	tests := []struct {
		name          string
		available     int
		count         int
		wantOK        bool
		wantAvailable int
	}{
		{"refunds within capacity", 37, 3, true, 40},
		{"refunds to full", 0, 40, true, 40},
		{"rejects past capacity", 39, 2, false, 39},
		{"rejects zero", 37, 0, false, 37},
		{"rejects negative", 37, -3, false, 37},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := RestoreBus("Ena Transport", "Sylhet", "Dhaka", "08:00", 40, 800, tt.available)
			if err != nil {
				t.Fatalf("RestoreBus() error = %v", err)
			}
			if got := b.Refund(tt.count); got != tt.wantOK {
				t.Errorf("Refund(%d) = %v, want %v", tt.count, got, tt.wantOK)
			}
			if b.AvailableSeats != tt.wantAvailable {
				t.Errorf("AvailableSeats = %d, want %d", b.AvailableSeats, tt.wantAvailable)
			}
		})
	}
}

func TestBusClone(t *testing.T) {
	b, _ := NewBus("Ena Transport", "Sylhet", "Dhaka", "08:00", 40, 800)
	c := b.Clone()
	c.Book(10)

	if b.AvailableSeats != 40 {
		t.Errorf("mutating clone changed original: %d", b.AvailableSeats)
	}
}
