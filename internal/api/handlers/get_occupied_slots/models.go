package get_occupied_slots

import (
	"github.com/salonbook/SalonBook-BookingService/internal/domain"
	getOccupiedSlots "github.com/salonbook/SalonBook-BookingService/internal/usecase/get_occupied_slots"
)

// SlotResponse один слот сетки с признаком занятости
type SlotResponse struct {
	Time     string `json:"time"`    // "17:30"
	Display  string `json:"display"` // "5:30 PM"
	Occupied bool   `json:"occupied"`
}

// OccupiedSlotsResponse HTTP response model.
// Снимок на момент запроса: клиент опрашивает эндпоинт периодически,
// авторитетная проверка все равно происходит при создании бронирования.
type OccupiedSlotsResponse struct {
	SalonID       int64          `json:"salonId"`
	Date          string         `json:"date"`
	Slots         []SlotResponse `json:"slots"`
	OccupiedTimes []string       `json:"occupiedTimes"`
	SuggestedTime *string        `json:"suggestedTime,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getOccupiedSlots.Response) *OccupiedSlotsResponse {
	out := &OccupiedSlotsResponse{
		SalonID:       resp.SalonID,
		Date:          resp.Date.Format(domain.DateFormat),
		Slots:         make([]SlotResponse, 0, len(resp.Slots)),
		OccupiedTimes: make([]string, 0),
	}

	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			Time:     slot.Time.String(),
			Display:  slot.Display,
			Occupied: slot.Occupied,
		})
		if slot.Occupied {
			out.OccupiedTimes = append(out.OccupiedTimes, slot.Time.String())
		}
	}

	if resp.SuggestedTime != nil {
		suggested := resp.SuggestedTime.String()
		out.SuggestedTime = &suggested
	}

	return out
}
