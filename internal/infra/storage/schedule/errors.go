package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда у тренера нет расписания на день недели
	ErrScheduleNotFound = errors.New("schedule.repository: weekly schedule not found")

	// ErrBlockedIntervalNotFound возвращается, когда блокировка не найдена
	ErrBlockedIntervalNotFound = errors.New("schedule.repository: blocked interval not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
