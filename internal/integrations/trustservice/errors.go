package trustservice

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден в TrustService
	ErrUserNotFound = errors.New("trustservice client: user not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("trustservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("trustservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Недоступность TrustService не должна блокировать отмену бронирования.
	ErrServiceDegraded = errors.New("trustservice unavailable: graceful degradation applied")
)
