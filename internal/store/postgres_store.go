package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/domain"
	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/telemetry"
)

// PostgresStore maps the three document sections onto tables. Collection
// saves are full replacements inside one transaction; the position column
// keeps catalog order without inventing surrogate keys.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore wraps an established connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the tables and seeds the counter row at 1.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	ctx, span := telemetry.StartSpan(ctx, "PostgresStore.EnsureSchema")
	defer span.End()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS buses (
			position INT PRIMARY KEY,
			name TEXT NOT NULL,
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			departure_time TEXT NOT NULL,
			total_seats INT NOT NULL,
			price_per_ticket BIGINT NOT NULL,
			available_seats INT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tickets (
			position INT PRIMARY KEY,
			ticket_id BIGINT NOT NULL,
			bus_id TEXT NOT NULL,
			passenger_name TEXT NOT NULL,
			contact_number TEXT NOT NULL,
			bus_name TEXT NOT NULL,
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			departure_time TEXT NOT NULL,
			seat_count INT NOT NULL,
			price_paid BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ticket_counter (
			id INT PRIMARY KEY,
			next_id BIGINT NOT NULL
		)`,
		`INSERT INTO ticket_counter (id, next_id) VALUES (1, 1)
			ON CONFLICT (id) DO NOTHING`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// LoadBuses reads the bus table in catalog order.
func (s *PostgresStore) LoadBuses(ctx context.Context) ([]*domain.Bus, error) {
	ctx, span := telemetry.StartSpan(ctx, "PostgresStore.LoadBuses")
	defer span.End()

	rows, err := s.pool.Query(ctx, `
		SELECT name, origin, destination, departure_time,
		       total_seats, price_per_ticket, available_seats
		FROM buses
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query buses: %w", err)
	}
	defer rows.Close()

	var records []busRecord
	for rows.Next() {
		var r busRecord
		if err := rows.Scan(&r.Name, &r.Origin, &r.Destination, &r.Departure,
			&r.TotalSeats, &r.PricePerSeat, &r.AvailableSeats); err != nil {
			return nil, fmt.Errorf("failed to scan bus row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bus rows: %w", err)
	}
	return busesFromRecords(records)
}

// SaveBuses replaces the bus table contents transactionally.
func (s *PostgresStore) SaveBuses(ctx context.Context, buses []*domain.Bus) error {
	ctx, span := telemetry.StartSpan(ctx, "PostgresStore.SaveBuses")
	defer span.End()

	return s.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM buses`); err != nil {
			return fmt.Errorf("failed to clear buses: %w", err)
		}
		for i, b := range buses {
			r := busToRecord(b)
			if _, err := tx.Exec(ctx, `
				INSERT INTO buses (position, name, origin, destination, departure_time,
				                   total_seats, price_per_ticket, available_seats)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				i, r.Name, r.Origin, r.Destination, r.Departure,
				r.TotalSeats, r.PricePerSeat, r.AvailableSeats); err != nil {
				return fmt.Errorf("failed to insert bus %q: %w", r.Name, err)
			}
		}
		return nil
	})
}

// LoadTickets reads the ticket table in issuance order.
func (s *PostgresStore) LoadTickets(ctx context.Context) ([]*domain.Ticket, error) {
	ctx, span := telemetry.StartSpan(ctx, "PostgresStore.LoadTickets")
	defer span.End()

	rows, err := s.pool.Query(ctx, `
		SELECT ticket_id, bus_id, passenger_name, contact_number,
		       bus_name, origin, destination, departure_time,
		       seat_count, price_paid
		FROM tickets
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	var records []ticketRecord
	for rows.Next() {
		var r ticketRecord
		if err := rows.Scan(&r.ID, &r.BusID, &r.PassengerName, &r.Contact,
			&r.BusName, &r.Origin, &r.Destination, &r.Departure,
			&r.SeatCount, &r.PricePaid); err != nil {
			return nil, fmt.Errorf("failed to scan ticket row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ticket rows: %w", err)
	}
	return ticketsFromRecords(records)
}

// SaveTickets replaces the ticket table contents transactionally.
func (s *PostgresStore) SaveTickets(ctx context.Context, tickets []*domain.Ticket) error {
	ctx, span := telemetry.StartSpan(ctx, "PostgresStore.SaveTickets")
	defer span.End()

	return s.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM tickets`); err != nil {
			return fmt.Errorf("failed to clear tickets: %w", err)
		}
		for i, t := range tickets {
			r := ticketToRecord(t)
			if _, err := tx.Exec(ctx, `
				INSERT INTO tickets (position, ticket_id, bus_id, passenger_name, contact_number,
				                     bus_name, origin, destination, departure_time,
				                     seat_count, price_paid)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
				i, r.ID, r.BusID, r.PassengerName, r.Contact,
				r.BusName, r.Origin, r.Destination, r.Departure,
				r.SeatCount, r.PricePaid); err != nil {
				return fmt.Errorf("failed to insert ticket %d: %w", r.ID, err)
			}
		}
		return nil
	})
}

// NextTicketID advances the counter row and returns the value it held.
// The UPDATE commits before the id reaches the caller.
func (s *PostgresStore) NextTicketID(ctx context.Context) (int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "PostgresStore.NextTicketID")
	defer span.End()

	var id int64
	err := s.pool.QueryRow(ctx, `
		UPDATE ticket_counter
		SET next_id = next_id + 1
		WHERE id = 1
		RETURNING next_id - 1`).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to advance ticket counter: %w", err)
	}
	if id < 1 {
		return 0, fmt.Errorf("%w: ticket counter at %d", domain.ErrCorruptStore, id)
	}
	return id, nil
}

// Ping checks the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
