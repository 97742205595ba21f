package get_occupied_slots

import (
	"time"

	"github.com/salonbook/SalonBook-BookingService/pkg/types"
)

// Request модель запроса занятости слотов
type Request struct {
	SalonID int64     // ID салона
	Date    time.Time // дата (без времени)

	// Selected слот, выбранный клиентом в данный момент (опционально).
	// Если он занят, в ответ попадает SuggestedTime — первый свободный
	// слот в порядке сетки.
	Selected *types.TimeString
}

// Slot один слот сетки с признаком занятости
type Slot struct {
	Time     types.TimeString // wire-формат "HH:MM"
	Display  string           // 12-часовой формат для отображения, "5:30 PM"
	Occupied bool
}

// Response модель ответа с занятостью слотов.
// Ответ advisory: к моменту следующего опроса занятость может измениться,
// единственный авторитетный источник — админ-контроль при создании.
type Response struct {
	SalonID int64
	Date    time.Time
	Slots   []Slot // вся сетка в порядке каталога

	// SuggestedTime заполняется, только если Selected из запроса занят.
	// nil — либо Selected свободен/не передан, либо свободных слотов нет.
	SuggestedTime *types.TimeString
}
