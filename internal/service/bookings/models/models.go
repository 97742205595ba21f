package models

import (
	"errors"
	"time"

	"github.com/salonbook/SalonBook-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// CompleteBookingRequest запрос на завершение бронирования (чек-ин)
type CompleteBookingRequest struct {
	UserID int64 `json:"userId"`
}

// MarkNoShowRequest запрос на пометку бронирования как no-show
type MarkNoShowRequest struct {
	UserID int64 `json:"userId"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID      int64   `json:"userId"`
	RequesterID int64   `json:"-"` // аутентифицированный пользователь
	Status      *string `json:"status,omitempty"`
}

// GetSalonBookingsRequest запрос на получение бронирований салона
type GetSalonBookingsRequest struct {
	UserID          int64      `json:"userId"`
	SalonID         int64      `json:"salonId"`
	Date            *time.Time `json:"date,omitempty"`            // фильтр по дате (опционально)
	Status          *string    `json:"status,omitempty"`          // фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // включить завершенные и отмененные
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetSalonBookingsRequest) ToDomainFilter() (domain.SalonBookingsFilter, error) {
	filter := domain.SalonBookingsFilter{
		SalonID:         r.SalonID,
		Date:            r.Date,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"userId"`
	SalonID   int64 `json:"salonId"`
	ServiceID int64 `json:"serviceId"`

	BookingDate string `json:"bookingDate"` // "2026-03-01"
	BookingTime string `json:"bookingTime"` // "10:00", wire-формат
	// DisplayTime 12-часовой формат для UI, "10:00 AM".
	// Единственная санкционированная точка конвертации форматов.
	DisplayTime string `json:"displayTime"`
	Status      string `json:"status"`

	PaymentStatus string `json:"paymentStatus"`
	PaymentMethod string `json:"paymentMethod"`

	// Денормализованные данные услуги
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	// Значение из каталога всегда конвертируется без ошибки
	display, _ := b.BookingTime.Format12Hour()

	resp := &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		SalonID:            b.SalonID,
		ServiceID:          b.ServiceID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		BookingTime:        b.BookingTime.String(),
		DisplayTime:        display,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		PaymentMethod:      string(b.PaymentMethod),
		ServiceName:        b.ServiceName,
		ServicePrice:       b.ServicePrice,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !domain.IsValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
