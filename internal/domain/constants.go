package domain

import "github.com/salonbook/SalonBook-BookingService/pkg/types"

// Default slot grid and limits.
// Реальные значения приходят из конфигурации, это фолбэки и значения для тестов.
const (
	DefaultOpenTime            = types.TimeString("10:00")
	DefaultCloseTime           = types.TimeString("17:30") // последний слот, включительно
	DefaultSlotDurationMinutes = 30
	DefaultMaxActiveBookings   = 2
)

// Validation constants
const (
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, не занимающие слот.
// Используются при фильтрации занятых слотов.
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses статусы, занимающие слот
var ActiveStatuses = []BookingStatus{
	StatusUpcoming,
}
