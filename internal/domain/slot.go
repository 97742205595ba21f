package domain

import (
	"fmt"

	"github.com/salonbook/SalonBook-BookingService/pkg/types"
)

// SlotGrid параметры сетки слотов. Сетка одинакова для всех салонов и дат.
type SlotGrid struct {
	OpenTime    types.TimeString
	CloseTime   types.TimeString // время последнего слота, включительно
	StepMinutes int
}

// DefaultSlotGrid сетка по умолчанию: 10:00–17:30 с шагом 30 минут, 16 слотов
func DefaultSlotGrid() SlotGrid {
	return SlotGrid{
		OpenTime:    DefaultOpenTime,
		CloseTime:   DefaultCloseTime,
		StepMinutes: DefaultSlotDurationMinutes,
	}
}

// GenerateSlots возвращает упорядоченный список времен начала слотов.
// CloseTime попадает в результат, если лежит на сетке: сетка по умолчанию
// заканчивается слотом 17:30, а не 17:00.
func (g SlotGrid) GenerateSlots() ([]types.TimeString, error) {
	if err := g.OpenTime.Validate(); err != nil {
		return nil, err
	}
	if err := g.CloseTime.Validate(); err != nil {
		return nil, err
	}
	if g.StepMinutes <= 0 {
		return nil, fmt.Errorf("slot grid: step must be positive, got %d", g.StepMinutes)
	}

	slots := make([]types.TimeString, 0, 16)
	current := g.OpenTime

	for !current.IsAfter(g.CloseTime) {
		slots = append(slots, current)

		next, err := current.AddMinutes(g.StepMinutes)
		if err != nil {
			// Вышли за границу суток
			break
		}
		current = next
	}

	return slots, nil
}

// SlotIndex предвычисленное множество слотов сетки. Строится один раз
// через Index, чтобы проверка принадлежности на горячем пути не
// регенерировала сетку на каждый запрос.
type SlotIndex map[types.TimeString]struct{}

// Index строит множество слотов сетки
func (g SlotGrid) Index() (SlotIndex, error) {
	slots, err := g.GenerateSlots()
	if err != nil {
		return nil, err
	}

	index := make(SlotIndex, len(slots))
	for _, s := range slots {
		index[s] = struct{}{}
	}
	return index, nil
}

// Contains возвращает true, если t лежит на сетке.
// Для nil-индекса (невалидная сетка) всегда false.
func (idx SlotIndex) Contains(t types.TimeString) bool {
	_, ok := idx[t]
	return ok
}

// FirstFreeSlot возвращает первый незанятый слот в порядке сетки.
// Используется клиентом для детерминированного переназначения выбора,
// когда выбранный слот оказался занят. Второе значение false — свободных нет.
func FirstFreeSlot(catalog []types.TimeString, occupied map[types.TimeString]bool) (types.TimeString, bool) {
	for _, slot := range catalog {
		if !occupied[slot] {
			return slot, true
		}
	}
	return "", false
}
