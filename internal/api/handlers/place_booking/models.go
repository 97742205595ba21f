package place_booking

import (
	"time"

	"github.com/salonbook/SalonBook-BookingService/internal/domain"
	placeBooking "github.com/salonbook/SalonBook-BookingService/internal/usecase/place_booking"
	"github.com/salonbook/SalonBook-BookingService/pkg/types"
)

// PlaceBookingRequest HTTP request model
type PlaceBookingRequest struct {
	SalonID     int64  `json:"salonId"`
	ServiceID   int64  `json:"serviceId"`
	BookingDate string `json:"bookingDate"` // "2026-03-01"
	BookingTime string `json:"bookingTime"` // "10:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"userId"`
	SalonID       int64   `json:"salonId"`
	ServiceID     int64   `json:"serviceId"`
	BookingDate   string  `json:"bookingDate"`
	BookingTime   string  `json:"bookingTime"`
	DisplayTime   string  `json:"displayTime"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	PaymentMethod string  `json:"paymentMethod"`
	ServiceName   string  `json:"serviceName"`
	ServicePrice  float64 `json:"servicePrice"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PlaceBookingRequest) ToUseCaseRequest(userID int64) (*placeBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.BookingTime)
	if err != nil {
		return nil, err
	}

	return &placeBooking.Request{
		UserID:    userID,
		SalonID:   r.SalonID,
		ServiceID: r.ServiceID,
		Date:      bookingDate,
		StartTime: startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *placeBooking.Response) *BookingResponse {
	// Значение из каталога всегда конвертируется без ошибки
	display, _ := resp.StartTime.Format12Hour()

	return &BookingResponse{
		ID:            resp.ID,
		UserID:        resp.UserID,
		SalonID:       resp.SalonID,
		ServiceID:     resp.ServiceID,
		BookingDate:   resp.Date.Format(domain.DateFormat),
		BookingTime:   resp.StartTime.String(),
		DisplayTime:   display,
		Status:        resp.Status,
		PaymentStatus: resp.PaymentStatus,
		PaymentMethod: resp.PaymentMethod,
		ServiceName:   resp.ServiceName,
		ServicePrice:  resp.ServicePrice,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
