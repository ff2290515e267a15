package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/domain"

	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/telemetry"
)

// FileStore persists the whole booking document as a single JSON file.
// Every mutation rewrites the file through a temp-file rename, so a
// crash mid-write leaves the previous document intact.
type FileStore struct {
	path string
	mu   sync.Mutex
}

var _ Store = (*FileStore)(nil)

// NewFileStore opens the store at path. A missing file is not an error;
// the first write materializes an empty document with the counter at 1.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file store path must be non-empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

// LoadBuses reads the bus section in catalog order.
func (s *FileStore) LoadBuses(ctx context.Context) ([]*domain.Bus, error) {
	_, span := telemetry.StartSpan(ctx, "FileStore.LoadBuses")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return busesFromRecords(doc.Buses)
}

// SaveBuses replaces the bus section and rewrites the file.
func (s *FileStore) SaveBuses(ctx context.Context, buses []*domain.Bus) error {
	_, span := telemetry.StartSpan(ctx, "FileStore.SaveBuses")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc.Buses = busesToRecords(buses)
	return s.write(doc)
}

// LoadTickets reads the ticket section in issuance order.
func (s *FileStore) LoadTickets(ctx context.Context) ([]*domain.Ticket, error) {
	_, span := telemetry.StartSpan(ctx, "FileStore.LoadTickets")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return ticketsFromRecords(doc.Tickets)
}

// SaveTickets replaces the ticket section and rewrites the file.
func (s *FileStore) SaveTickets(ctx context.Context, tickets []*domain.Ticket) error {
	_, span := telemetry.StartSpan(ctx, "FileStore.SaveTickets")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc.Tickets = ticketsToRecords(tickets)
	return s.write(doc)
}

// NextTicketID returns the current counter value and durably advances it
// before returning, so the id survives a crash right after issuance.
func (s *FileStore) NextTicketID(ctx context.Context) (int64, error) {
	_, span := telemetry.StartSpan(ctx, "FileStore.NextTicketID")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return 0, err
	}
	id := doc.NextTicketID
	doc.NextTicketID = id + 1
	if err := s.write(doc); err != nil {
		return 0, err
	}
	return id, nil
}

// Ping verifies the store location is usable.
func (s *FileStore) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.read()
	return err
}

// Close is a no-op; the file is not held open between operations.
func (s *FileStore) Close() error {
	return nil
}

// read loads and decodes the document. Callers hold s.mu.
func (s *FileStore) read() (*document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return newDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	doc := newDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrCorruptStore, s.path, err)
	}
	if doc.NextTicketID < 1 {
		return nil, fmt.Errorf("%w: next_ticket_id %d is below 1", domain.ErrCorruptStore, doc.NextTicketID)
	}
	if doc.Buses == nil {
		doc.Buses = []busRecord{}
	}
	if doc.Tickets == nil {
		doc.Tickets = []ticketRecord{}
	}
	return doc, nil
}

// write encodes the document to a sibling temp file and renames it over
// the store path. Callers hold s.mu.
func (s *FileStore) write(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp store file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close store file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}
