package metrics

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	// Booking counters
	ticketsBooked    metric.Int64Counter
	ticketsCancelled metric.Int64Counter
	bookingFailures  metric.Int64Counter
	seatsBooked      metric.Int64Counter
	requestDuration  metric.Float64Histogram

	initOnce sync.Once
	initErr  error
)

// Init registers all booking metrics on the global meter provider
func Init() error {
	initOnce.Do(func() {
		initErr = initMetrics()
	})
	return initErr
}

func initMetrics() error {
	meter := otel.Meter("booking")
	var err error

	ticketsBooked, err = meter.Int64Counter("booking_tickets_total",
		metric.WithDescription("Total number of tickets booked"),
		metric.WithUnit("1"))
	if err != nil {
		return err
	}

	ticketsCancelled, err = meter.Int64Counter("booking_cancellations_total",
		metric.WithDescription("Total number of tickets cancelled"),
		metric.WithUnit("1"))
	if err != nil {
		return err
	}

	bookingFailures, err = meter.Int64Counter("booking_failures_total",
		metric.WithDescription("Total number of failed booking attempts"),
		metric.WithUnit("1"))
	if err != nil {
		return err
	}

	seatsBooked, err = meter.Int64Counter("booking_seats_total",
		metric.WithDescription("Total number of seats sold"),
		metric.WithUnit("1"))
	if err != nil {
		return err
	}

	requestDuration, err = meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("s"))
	if err != nil {
		return err
	}

	return nil
}

// RecordBooking counts a successful booking of seatCount seats.
func RecordBooking(ctx context.Context, busName string, seatCount int) {
	if ticketsBooked == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("bus_name", busName))
	ticketsBooked.Add(ctx, 1, attrs)
	seatsBooked.Add(ctx, int64(seatCount), attrs)
}

// RecordCancellation counts a successful cancellation.
func RecordCancellation(ctx context.Context, busName string) {
	if ticketsCancelled == nil {
		return
	}
	ticketsCancelled.Add(ctx, 1, metric.WithAttributes(attribute.String("bus_name", busName)))
}

// RecordFailure counts a failed booking attempt by reason.
func RecordFailure(ctx context.Context, reason string) {
	if bookingFailures == nil {
		return
	}
	bookingFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// RecordRequestDuration records one HTTP request's latency.
func RecordRequestDuration(ctx context.Context, route string, seconds float64) {
	if requestDuration == nil {
		return
	}
	requestDuration.Record(ctx, seconds, metric.WithAttributes(attribute.String("http.route", route)))
}
