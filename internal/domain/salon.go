package domain

import "time"

// Salon represents a salon (barber shop).
// Создаются вне этого сервиса (seed данные / онбординг владельца),
// здесь только читаются.
type Salon struct {
	ID        int64
	OwnerID   int64 // пользователь-владелец, управляет бронированиями салона
	Name      string
	Address   string
	Rating    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service represents a service offered by a salon
type Service struct {
	ID              int64
	SalonID         int64
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
	CreatedAt       time.Time
}

// DefaultServices возвращается, когда салон не определил собственных услуг.
// Синтетические отрицательные ID не пересекаются с bigserial из БД.
func DefaultServices(salonID int64) []*Service {
	return []*Service{
		{ID: -1, SalonID: salonID, Name: "Haircut", Description: "Classic haircut", Price: 200, DurationMinutes: 30},
		{ID: -2, SalonID: salonID, Name: "Shave", Description: "Clean shave", Price: 100, DurationMinutes: 20},
		{ID: -3, SalonID: salonID, Name: "Beard Trim", Description: "Beard trimming and styling", Price: 280, DurationMinutes: 25},
	}
}
