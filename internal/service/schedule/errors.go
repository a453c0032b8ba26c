package schedule

import "errors"

var (
	// ErrBlockedIntervalNotFound возвращается, когда блокировка не найдена
	ErrBlockedIntervalNotFound = errors.New("blocked interval not found")

	// ErrAccessDenied возвращается, когда у актора нет прав менять расписание
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
