package domain

import (
	"time"

	"github.com/salonbook/SalonBook-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	// StatusUpcoming активное бронирование, занимает слот
	StatusUpcoming BookingStatus = "upcoming"
	// StatusCompleted клиент пришел, визит состоялся (терминальный)
	StatusCompleted BookingStatus = "completed"
	// StatusCancelled бронирование отменено клиентом или салоном (терминальный)
	StatusCancelled BookingStatus = "cancelled"
	// StatusNoShow клиент не пришел (терминальный)
	StatusNoShow BookingStatus = "no_show"
)

// PaymentStatus represents the payment state of a booking.
// Не участвует в инвариантах слотов, хранится для UI.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// PaymentMethod represents how the customer pays
type PaymentMethod string

const (
	PayAtSalon PaymentMethod = "pay_at_salon"
	PayOnline  PaymentMethod = "pay_online"
)

// Booking represents a salon appointment.
// Записи никогда не удаляются, только переводятся по статусам.
type Booking struct {
	ID        int64
	UserID    int64
	SalonID   int64
	ServiceID int64

	BookingDate time.Time        // дата без времени
	BookingTime types.TimeString // время начала слота
	Status      BookingStatus

	PaymentStatus PaymentStatus
	PaymentMethod PaymentMethod

	// Denormalized service data for history
	ServiceName  string
	ServicePrice float64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusUpcoming
}

// IsTerminal returns true if the booking is in a final state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled || b.Status == StatusNoShow
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusUpcoming
}

// CanBeCompleted returns true if the booking can be checked in
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusUpcoming
}

// SalonBookingsFilter фильтр для выборки бронирований салона
type SalonBookingsFilter struct {
	SalonID         int64          // обязательный параметр
	Date            *time.Time     // конкретная дата (опционально)
	Status          *BookingStatus // фильтр по статусу (опционально)
	IncludeInactive bool           // включать ли завершенные/отмененные
}
