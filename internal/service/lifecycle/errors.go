package lifecycle

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("lifecycle: reservation not found")

	// ErrRegistrationNotFound возвращается, когда связанный пакет PT занятий не найден
	ErrRegistrationNotFound = errors.New("lifecycle: pt registration not found")

	// ErrIllegalTransition возвращается, когда операция не применима к текущему статусу
	ErrIllegalTransition = errors.New("lifecycle: illegal status transition")

	// ErrForbidden возвращается, когда роль актора не позволяет выполнить операцию
	ErrForbidden = errors.New("lifecycle: action not allowed for actor role")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("lifecycle: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("lifecycle: internal error")
)
