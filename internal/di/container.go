package di

import (
	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/booking"
	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/handler"
	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/store"
)

// Container holds all dependencies for the booking service
type Container struct {
	// Infrastructure
	Store          store.Store
	EventPublisher booking.EventPublisher

	// Services
	BookingService booking.BookingService

	// Handlers
	HealthHandler  *handler.HealthHandler
	BookingHandler *handler.BookingHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	Store          store.Store
	EventPublisher booking.EventPublisher
	BookingService booking.BookingService
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		Store:          cfg.Store,
		EventPublisher: cfg.EventPublisher,
		BookingService: cfg.BookingService,
	}

	c.HealthHandler = handler.NewHealthHandler(c.Store)
	c.BookingHandler = handler.NewBookingHandler(c.BookingService)

	return c
}
