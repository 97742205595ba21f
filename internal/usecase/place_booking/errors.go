package place_booking

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("place_booking: salon not found")

	// ErrInvalidDate возвращается, когда дата бронирования раньше сегодняшней
	ErrInvalidDate = errors.New("place_booking: booking date is in the past")

	// ErrInvalidTimeSlot возвращается, когда время не лежит на сетке слотов
	ErrInvalidTimeSlot = errors.New("place_booking: time is not on the slot grid")

	// ErrBookingLimitExceeded возвращается при превышении лимита активных бронирований
	ErrBookingLimitExceeded = errors.New("place_booking: active booking limit exceeded")

	// ErrSlotTaken возвращается, когда слот уже занят активным бронированием.
	// Ожидаемый исход гонки двух клиентов за один слот, не сбой.
	ErrSlotTaken = errors.New("place_booking: slot already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("place_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("place_booking: internal error")
)
