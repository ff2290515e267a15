package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/booking"
	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/domain"
	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/dto"
	"github.com/NavidZamanKhan/Bus-Ticket-Booking-System/internal/telemetry"
)

// BookingHandler handles booking HTTP requests
type BookingHandler struct {
	service booking.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service booking.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// ListBuses handles GET /buses
func (h *BookingHandler) ListBuses(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.list_buses")
	defer span.End()

	buses, err := h.service.ListBuses(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}

	span.SetAttributes(attribute.Int("bus_count", len(buses)))
	c.JSON(http.StatusOK, dto.BusesFromDomain(buses))
}

// ListAvailableBuses handles GET /buses/available
func (h *BookingHandler) ListAvailableBuses(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.list_available_buses")
	defer span.End()

	buses, err := h.service.ListAvailableBuses(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}

	span.SetAttributes(attribute.Int("bus_count", len(buses)))
	c.JSON(http.StatusOK, dto.BusesFromDomain(buses))
}

// SearchBuses handles GET /buses/search?origin=X&destination=Y
func (h *BookingHandler) SearchBuses(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.search_buses")
	defer span.End()

	origin := c.Query("origin")
	destination := c.Query("destination")
	span.SetAttributes(
		attribute.String("origin", origin),
		attribute.String("destination", destination),
	)

	buses, err := h.service.SearchBuses(ctx, origin, destination)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}

	span.SetAttributes(attribute.Int("bus_count", len(buses)))
	c.JSON(http.StatusOK, dto.BusesFromDomain(buses))
}

// GetBus handles GET /buses/:name
func (h *BookingHandler) GetBus(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.get_bus")
	defer span.End()

	name := c.Param("name")
	span.SetAttributes(attribute.String("bus_name", name))

	bus, err := h.service.FindBusByName(ctx, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BusFromDomain(bus))
}

// ListTickets handles GET /tickets
func (h *BookingHandler) ListTickets(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.list_tickets")
	defer span.End()

	tickets, err := h.service.ListTickets(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}

	span.SetAttributes(attribute.Int("ticket_count", len(tickets)))
	c.JSON(http.StatusOK, dto.TicketsFromDomain(tickets))
}

// GetTicket handles GET /tickets/:id
func (h *BookingHandler) GetTicket(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.get_ticket")
	defer span.End()

	id, ok := h.ticketID(c)
	if !ok {
		span.SetStatus(codes.Error, "invalid ticket id")
		return
	}
	span.SetAttributes(attribute.Int64("ticket_id", id))

	ticket, err := h.service.FindTicket(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TicketFromDomain(ticket))
}

// BookTicket handles POST /tickets
func (h *BookingHandler) BookTicket(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.book_ticket")
	defer span.End()

	var req dto.BookTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid request",
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		})
		return
	}

	span.SetAttributes(
		attribute.String("bus_name", req.BusName),
		attribute.Int("seat_count", req.SeatCount),
	)

	ticket, err := h.service.BookTicket(ctx, req.BusName, req.PassengerName, req.ContactNumber, req.SeatCount)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}

	span.SetAttributes(attribute.Int64("ticket_id", ticket.ID))
	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusCreated, dto.TicketFromDomain(ticket))
}

// CancelTicket handles DELETE /tickets/:id
func (h *BookingHandler) CancelTicket(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.cancel_ticket")
	defer span.End()

	id, ok := h.ticketID(c)
	if !ok {
		span.SetStatus(codes.Error, "invalid ticket id")
		return
	}
	span.SetAttributes(attribute.Int64("ticket_id", id))

	cancelled, err := h.service.CancelTicket(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}

	if !cancelled {
		c.JSON(http.StatusNotFound, dto.CancelTicketResponse{
			TicketID:  id,
			Cancelled: false,
			Message:   "ticket not found",
		})
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, dto.CancelTicketResponse{
		TicketID:  id,
		Cancelled: true,
	})
}

// ticketID parses the :id path parameter and writes the error response
// itself when the value is not a positive integer.
func (h *BookingHandler) ticketID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid ticket id",
			Code:    "INVALID_TICKET_ID",
			Message: "ticket id must be a positive integer",
		})
		return 0, false
	}
	return id, true
}

// handleError maps domain errors onto HTTP status codes
func (h *BookingHandler) handleError(c *gin.Context, err error) {
	switch {
	case domain.IsValidationError(err):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_REQUEST",
		})
	case domain.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "NOT_FOUND",
		})
	case domain.IsConflictError(err):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "CONFLICT",
		})
	case domain.IsCorruptStoreError(err):
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "CORRUPT_STORE",
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "internal server error",
			Code:  "INTERNAL_ERROR",
		})
	}
}
