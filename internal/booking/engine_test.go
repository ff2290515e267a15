package booking

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/domain"
	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/store"
)

// MockStore is a mock implementation of store.Store
type MockStore struct {
	LoadBusesFunc    func(ctx context.Context) ([]*domain.Bus, error)
	SaveBusesFunc    func(ctx context.Context, buses []*domain.Bus) error
	LoadTicketsFunc  func(ctx context.Context) ([]*domain.Ticket, error)
	SaveTicketsFunc  func(ctx context.Context, tickets []*domain.Ticket) error
	NextTicketIDFunc func(ctx context.Context) (int64, error)
}

func (m *MockStore) LoadBuses(ctx context.Context) ([]*domain.Bus, error) {
	if m.LoadBusesFunc != nil {
		return m.LoadBusesFunc(ctx)
	}
	return []*domain.Bus{}, nil
}

func (m *MockStore) SaveBuses(ctx context.Context, buses []*domain.Bus) error {
	if m.SaveBusesFunc != nil {
		return m.SaveBusesFunc(ctx, buses)
	}
	return nil
}

func (m *MockStore) LoadTickets(ctx context.Context) ([]*domain.Ticket, error) {
	if m.LoadTicketsFunc != nil {
		return m.LoadTicketsFunc(ctx)
	}
	return []*domain.Ticket{}, nil
}

func (m *MockStore) SaveTickets(ctx context.Context, tickets []*domain.Ticket) error {
	if m.SaveTicketsFunc != nil {
		return m.SaveTicketsFunc(ctx, tickets)
	}
	return nil
}

func (m *MockStore) NextTicketID(ctx context.Context) (int64, error) {
	if m.NextTicketIDFunc != nil {
		return m.NextTicketIDFunc(ctx)
	}
	return 1, nil
}

func (m *MockStore) Ping(ctx context.Context) error { return nil }
func (m *MockStore) Close() error                   { return nil }

func newSeededEngine(t *testing.T) *Engine {
	t.Helper()
	ctx := context.Background()

	st, err := store.NewFileStore(filepath.Join(t.TempDir(), "data_store.json"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	e, err := New(ctx, st, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := e.Seed(ctx, DefaultCatalog()); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	return e
}

func TestSeedRejectsNonEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	e := newSeededEngine(t)

	err := e.Seed(ctx, DefaultCatalog())
	if !errors.Is(err, domain.ErrCatalogNotEmpty) {
		t.Errorf("Seed() error = %v, want ErrCatalogNotEmpty", err)
	}
}

func TestListBusesPreservesCatalogOrder(t *testing.T) {
	ctx := context.Background()
	e := newSeededEngine(t)

	buses, err := e.ListBuses(ctx)
	if err != nil {
		t.Fatalf("ListBuses() error = %v", err)
	}
	if len(buses) != 23 {
		t.Fatalf("ListBuses() returned %d buses, want 23", len(buses))
	}
	if buses[0].Name != "Ena Transport" || buses[0].Destination != "Dhaka" {
		t.Errorf("first catalog entry = %q to %q, want Ena Transport to Dhaka", buses[0].Name, buses[0].Destination)
	}
	if buses[22].Name != "Haque Enterprise" {
		t.Errorf("last catalog entry = %q, want Haque Enterprise", buses[22].Name)
	}
}

func TestListBusesReturnsSnapshots(t *testing.T) {
	ctx := context.Background()
	e := newSeededEngine(t)

	buses, _ := e.ListBuses(ctx)
	buses[0].AvailableSeats = 0

	again, _ := e.ListBuses(ctx)
	if again[0].AvailableSeats != 40 {
		t.Errorf("mutating a returned bus leaked into engine state: %d", again[0].AvailableSeats)
	}
}

func TestSearchBusesIgnoresCaseAndWhitespace(t *testing.T) {
	ctx := context.Background()
	e := newSeededEngine(t)

	tests := []struct {
		name        string
		origin      string
		destination string
		want        int
	}{
		{"exact", "Sylhet", "Dhaka", 4},
		{"mixed case", "SYLHET", "dhaka", 4},
		{"padded", "  sylhet  ", " Dhaka ", 4},
		{"no match", "Sylhet", "Barisal", 0},
		{"reverse direction", "Dhaka", "Sylhet", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.SearchBuses(ctx, tt.origin, tt.destination)
			if err != nil {
				t.Fatalf("SearchBuses() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("SearchBuses(%q, %q) returned %d buses, want %d",
					tt.origin, tt.destination, len(got), tt.want)
			}
		})
	}
}

func TestFindBusByNameFirstMatchWins(t *testing.T) {
	ctx := context.Background()
	e := newSeededEngine(t)

	// Three catalog entries share this operator name.
	b, err := e.FindBusByName(ctx, "  ENA transport ")
	if err != nil {
		t.Fatalf("FindBusByName() error = %v", err)
	}
	if b.Destination != "Dhaka" {
		t.Errorf("FindBusByName() returned trip to %q, want the first entry to Dhaka", b.Destination)
	}

	if _, err := e.FindBusByName(ctx, "No Such Operator"); !errors.Is(err, domain.ErrBusNotFound) {
		t.Errorf("FindBusByName() error = %v, want ErrBusNotFound", err)
	}
}

func TestBookTicket(t *testing.T) {
	ctx := context.Background()
	e := newSeededEngine(t)

	ticket, err := e.BookTicket(ctx, "Ena Transport", "Rahim Uddin", "01711000000", 3)
	if err != nil {
		t.Fatalf("BookTicket() error = %v", err)
	}
	if ticket.ID != 1 {
		t.Errorf("ticket ID = %d, want 1", ticket.ID)
	}
	if ticket.PricePaid != 2400 {
		t.Errorf("PricePaid = %d, want 2400", ticket.PricePaid)
	}
	if ticket.Origin != "Sylhet" || ticket.Destination != "Dhaka" || ticket.Departure != "08:00" {
		t.Errorf("ticket snapshot mismatch: %+v", ticket)
	}

	b, _ := e.FindBusByName(ctx, "Ena Transport")
	if b.AvailableSeats != 37 {
		t.Errorf("AvailableSeats = %d, want 37", b.AvailableSeats)
	}

	second, err := e.BookTicket(ctx, "SilkLine", "Karim Ahmed", "01911000000", 1)
	if err != nil {
		t.Fatalf("BookTicket() error = %v", err)
	}
	if second.ID != 2 {
		t.Errorf("second ticket ID = %d, want 2", second.ID)
	}
}

func TestBookTicketValidation(t *testing.T) {
	ctx := context.Background()
	e := newSeededEngine(t)

	tests := []struct {
		name      string
		busName   string
		passenger string
		contact   string
		seats     int
		wantErr   error
	}{
		{"blank passenger", "Ena Transport", "   ", "01711000000", 1, domain.ErrPassengerRequired},
		{"blank contact", "Ena Transport", "Rahim Uddin", "", 1, domain.ErrContactRequired},
		{"zero seats", "Ena Transport", "Rahim Uddin", "01711000000", 0, domain.ErrInvalidSeatCount},
		{"negative seats", "Ena Transport", "Rahim Uddin", "01711000000", -2, domain.ErrInvalidSeatCount},
		{"unknown bus", "Ghost Express", "Rahim Uddin", "01711000000", 1, domain.ErrBusNotFound},
		{"too many seats", "Ena Transport", "Rahim Uddin", "01711000000", 41, domain.ErrInsufficientSeats},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.BookTicket(ctx, tt.busName, tt.passenger, tt.contact, tt.seats)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("BookTicket() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// Failed attempts must not consume inventory or ticket ids.
	b, _ := e.FindBusByName(ctx, "Ena Transport")
	if b.AvailableSeats != 40 {
		t.Errorf("AvailableSeats = %d, want 40 after failed attempts", b.AvailableSeats)
	}
	ticket, err := e.BookTicket(ctx, "Ena Transport", "Rahim Uddin", "01711000000", 1)
	if err != nil {
		t.Fatalf("BookTicket() error = %v", err)
	}
	if ticket.ID != 1 {
		t.Errorf("ticket ID = %d, want 1", ticket.ID)
	}
}

func TestBookTicketExhaustsInventory(t *testing.T) {
	ctx := context.Background()
	e := newSeededEngine(t)

	if _, err := e.BookTicket(ctx, "Saudia Coach", "Rahim Uddin", "01711000000", 40); err != nil {
		t.Fatalf("BookTicket() error = %v", err)
	}

	b, _ := e.FindBusByName(ctx, "Saudia Coach")
	if b.AvailableSeats != 0 {
		t.Fatalf("AvailableSeats = %d, want 0", b.AvailableSeats)
	}

	if _, err := e.BookTicket(ctx, "Saudia Coach", "Karim Ahmed", "01911000000", 1); !errors.Is(err, domain.ErrInsufficientSeats) {
		t.Errorf("BookTicket() error = %v, want ErrInsufficientSeats", err)
	}

	available, _ := e.ListAvailableBuses(ctx)
	for _, ab := range available {
		if ab.Name == "Saudia Coach" {
			t.Error("sold-out bus still listed as available")
		}
	}
}

func TestBookTicketRollsBackOnPersistFailure(t *testing.T) {
	ctx := context.Background()

	saveErr := errors.New("disk full")
	failBusSaves := false
	mock := &MockStore{
		SaveBusesFunc: func(ctx context.Context, buses []*domain.Bus) error {
			if failBusSaves {
				return saveErr
			}
			return nil
		},
	}

	e, err := New(ctx, mock, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := e.Seed(ctx, DefaultCatalog()); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	failBusSaves = true
	if _, err := e.BookTicket(ctx, "Ena Transport", "Rahim Uddin", "01711000000", 5); !errors.Is(err, saveErr) {
		t.Fatalf("BookTicket() error = %v, want wrapped save error", err)
	}

	b, _ := e.FindBusByName(ctx, "Ena Transport")
	if b.AvailableSeats != 40 {
		t.Errorf("AvailableSeats = %d, want 40 after rollback", b.AvailableSeats)
	}
	tickets, _ := e.ListTickets(ctx)
	if len(tickets) != 0 {
		t.Errorf("ListTickets() returned %d tickets, want 0 after rollback", len(tickets))
	}
}

func TestCancelTicket(t *testing.T) {
	ctx := context.Background()
	e := newSeededEngine(t)

	ticket, err := e.BookTicket(ctx, "Ena Transport", "Rahim Uddin", "01711000000", 3)
	if err != nil {
		t.Fatalf("BookTicket() error = %v", err)
	}

	ok, err := e.CancelTicket(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("CancelTicket() error = %v", err)
	}
	if !ok {
		t.Fatal("CancelTicket() = false, want true")
	}

	b, _ := e.FindBusByName(ctx, "Ena Transport")
	if b.AvailableSeats != 40 {
		t.Errorf("AvailableSeats = %d, want 40 after cancellation", b.AvailableSeats)
	}
	if _, err := e.FindTicket(ctx, ticket.ID); !errors.Is(err, domain.ErrTicketNotFound) {
		t.Errorf("FindTicket() error = %v, want ErrTicketNotFound", err)
	}

	// Cancelling again reports false without an error.
	ok, err = e.CancelTicket(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("CancelTicket() error = %v", err)
	}
	if ok {
		t.Error("CancelTicket() = true for already cancelled ticket")
	}
}

func TestCancelTicketUnknownID(t *testing.T) {
	ctx := context.Background()
	e := newSeededEngine(t)

	ok, err := e.CancelTicket(ctx, 9999)
	if err != nil {
		t.Fatalf("CancelTicket() error = %v", err)
	}
	if ok {
		t.Error("CancelTicket() = true for unknown id")
	}
}

func TestCancelledIDsAreNotReused(t *testing.T) {
	ctx := context.Background()
	e := newSeededEngine(t)

	first, err := e.BookTicket(ctx, "Ena Transport", "Rahim Uddin", "01711000000", 1)
	if err != nil {
		t.Fatalf("BookTicket() error = %v", err)
	}
	if _, err := e.CancelTicket(ctx, first.ID); err != nil {
		t.Fatalf("CancelTicket() error = %v", err)
	}

	second, err := e.BookTicket(ctx, "Ena Transport", "Karim Ahmed", "01911000000", 1)
	if err != nil {
		t.Fatalf("BookTicket() error = %v", err)
	}
	if second.ID <= first.ID {
		t.Errorf("second ticket ID = %d, want greater than %d", second.ID, first.ID)
	}
}

func TestStateSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data_store.json")

	st, err := store.NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	e, err := New(ctx, st, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := e.Seed(ctx, DefaultCatalog()); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	ticket, err := e.BookTicket(ctx, "Shohagh Paribahan", "Rahim Uddin", "01711000000", 2)
	if err != nil {
		t.Fatalf("BookTicket() error = %v", err)
	}

	// A second engine over the same file sees the booked state.
	st2, err := store.NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	e2, err := New(ctx, st2, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, err := e2.FindTicket(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("FindTicket() error = %v", err)
	}
	if got.PassengerName != "Rahim Uddin" || got.SeatCount != 2 {
		t.Errorf("restored ticket mismatch: %+v", got)
	}

	b, err := e2.FindBusByName(ctx, "Shohagh Paribahan")
	if err != nil {
		t.Fatalf("FindBusByName() error = %v", err)
	}
	if b.AvailableSeats != 38 {
		t.Errorf("AvailableSeats = %d, want 38 after restart", b.AvailableSeats)
	}
}
