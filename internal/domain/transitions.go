package domain

// allowedTransitions допустимые переходы статусов бронирования.
// Терминальные статусы переходов не имеют: история append-only,
// отмененное бронирование нельзя завершить или вернуть в upcoming.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusUpcoming:  {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCompleted: {},
	StatusCancelled: {},
	StatusNoShow:    {},
}

// CanTransition возвращает true, если переход from -> to допустим
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsValidStatus возвращает true для известного статуса
func IsValidStatus(s BookingStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}
