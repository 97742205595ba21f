package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	// From upcoming every terminal status is reachable
	assert.True(t, CanTransition(StatusUpcoming, StatusCompleted))
	assert.True(t, CanTransition(StatusUpcoming, StatusCancelled))
	assert.True(t, CanTransition(StatusUpcoming, StatusNoShow))

	// Terminal statuses never transition
	for _, from := range []BookingStatus{StatusCompleted, StatusCancelled, StatusNoShow} {
		for _, to := range []BookingStatus{StatusUpcoming, StatusCompleted, StatusCancelled, StatusNoShow} {
			assert.False(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}

	// No way back to upcoming
	assert.False(t, CanTransition(StatusUpcoming, StatusUpcoming))
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(StatusUpcoming))
	assert.True(t, IsValidStatus(StatusCompleted))
	assert.True(t, IsValidStatus(StatusCancelled))
	assert.True(t, IsValidStatus(StatusNoShow))
	assert.False(t, IsValidStatus(BookingStatus("confirmed")))
	assert.False(t, IsValidStatus(BookingStatus("")))
}

func TestBookingStatusHelpers(t *testing.T) {
	b := &Booking{Status: StatusUpcoming}
	assert.True(t, b.IsActive())
	assert.False(t, b.IsTerminal())
	assert.True(t, b.CanBeCancelled())
	assert.True(t, b.CanBeCompleted())

	b.Status = StatusCompleted
	assert.False(t, b.IsActive())
	assert.True(t, b.IsTerminal())
	assert.False(t, b.CanBeCancelled())
	assert.False(t, b.CanBeCompleted())

	b.Status = StatusCancelled
	assert.True(t, b.IsTerminal())
	assert.False(t, b.CanBeCancelled())
}

func TestDefaultServices(t *testing.T) {
	services := DefaultServices(42)
	assert.Len(t, services, 3)

	for _, svc := range services {
		// Synthetic IDs are negative so they never collide with stored rows
		assert.Negative(t, svc.ID)
		assert.EqualValues(t, 42, svc.SalonID)
		assert.NotEmpty(t, svc.Name)
		assert.Positive(t, svc.Price)
		assert.Positive(t, svc.DurationMinutes)
	}
}
