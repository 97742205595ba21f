package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("salon not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrAlreadyCompleted возвращается при повторном завершении бронирования.
	// Повторный чек-ин (например, повторное сканирование QR) не должен
	// молча «завершать» уже завершенный визит.
	ErrAlreadyCompleted = errors.New("booking already completed")

	// ErrCannotComplete возвращается при завершении отмененного или no-show бронирования
	ErrCannotComplete = errors.New("booking cannot be completed")

	// ErrCannotMarkNoShow возвращается, когда бронирование нельзя пометить как no-show
	ErrCannotMarkNoShow = errors.New("booking cannot be marked as no-show")

	// ErrInvalidStatus возвращается при неизвестном статусе в фильтре
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
