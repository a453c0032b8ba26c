package create_reservation

import "errors"

var (
	// ErrSlotUnavailable возвращается, когда интервал вне рабочих часов, заблокирован или пересекается с активным бронированием
	ErrSlotUnavailable = errors.New("create_reservation: slot is not available")

	// ErrNoSessionsRemaining возвращается, когда в привязанном пакете PT не осталось занятий
	ErrNoSessionsRemaining = errors.New("create_reservation: no sessions remaining")

	// ErrRegistrationNotFound возвращается, когда пакет PT занятий не найден
	ErrRegistrationNotFound = errors.New("create_reservation: registration not found")

	// ErrRegistrationMismatch возвращается, когда пакет принадлежит другому члену клуба или тренеру
	ErrRegistrationMismatch = errors.New("create_reservation: registration does not belong to member or trainer")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
