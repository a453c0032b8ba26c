package recurrence

import "errors"

var (
	// ErrNotRecurring возвращается, если у бронирования нет политики повторения или даты окончания
	ErrNotRecurring = errors.New("recurrence: reservation is not recurring")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("recurrence: internal error")
)
