package ptrecord

import "errors"

var (
	// ErrRecordNotFound возвращается, когда запись о занятии не найдена
	ErrRecordNotFound = errors.New("ptrecord.repository: record not found")

	// ErrRecordExists возвращается при повторном создании записи для того же бронирования
	ErrRecordExists = errors.New("ptrecord.repository: record already exists for reservation")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("ptrecord.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("ptrecord.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("ptrecord.repository: failed to scan row")
)
