package list_salon_services

import (
	"context"

	"github.com/salonbook/SalonBook-BookingService/internal/service/salons/models"
)

type SalonsService interface {
	ListServices(ctx context.Context, salonID int64) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
