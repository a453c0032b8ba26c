package ptregistration

import "errors"

var (
	// ErrRegistrationNotFound возвращается, когда пакет PT занятий не найден
	ErrRegistrationNotFound = errors.New("ptregistration.repository: registration not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("ptregistration.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("ptregistration.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("ptregistration.repository: failed to scan row")
)
