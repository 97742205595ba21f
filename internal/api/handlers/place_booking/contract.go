package place_booking

import (
	"context"

	placeBooking "github.com/salonbook/SalonBook-BookingService/internal/usecase/place_booking"
)

type PlaceBookingUseCase interface {
	Execute(ctx context.Context, req *placeBooking.Request) (*placeBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
