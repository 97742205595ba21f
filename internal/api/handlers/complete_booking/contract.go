package complete_booking

import (
	"context"

	"github.com/salonbook/SalonBook-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	Complete(ctx context.Context, bookingID int64, req *models.CompleteBookingRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
