package place_booking

import (
	"time"

	"github.com/salonbook/SalonBook-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64            // ID клиента (из заголовка аутентификации)
	SalonID   int64            // ID салона
	ServiceID int64            // ID услуги (отрицательный для дефолтного набора)
	Date      time.Time        // дата бронирования (без времени)
	StartTime types.TimeString // время начала слота, например "10:00"
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64            // ID созданного бронирования
	UserID    int64            // ID клиента
	SalonID   int64            // ID салона
	ServiceID int64            // ID услуги
	Date      time.Time        // дата бронирования
	StartTime types.TimeString // время начала
	Status    string           // статус бронирования

	PaymentStatus string // статус оплаты
	PaymentMethod string // способ оплаты

	// Денормализованные данные услуги
	ServiceName  string
	ServicePrice float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
