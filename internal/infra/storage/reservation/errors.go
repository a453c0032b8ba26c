package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrSlotNotAvailable возвращается, когда вставка нарушила ограничение непересечения интервалов
	ErrSlotNotAvailable = errors.New("reservation.repository: slot not available")

	// ErrLock возвращается при ошибке взятия advisory lock на день тренера
	ErrLock = errors.New("reservation.repository: failed to lock trainer day")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
