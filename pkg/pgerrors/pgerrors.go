// Package pgerrors классифицирует ошибки PostgreSQL по SQLSTATE кодам lib/pq.
package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

const (
	codeUniqueViolation      = "23505"
	codeExclusionViolation   = "23P01"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

func code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsUniqueViolation нарушение UNIQUE ограничения
func IsUniqueViolation(err error) bool {
	return code(err) == codeUniqueViolation
}

// IsExclusionViolation нарушение EXCLUDE ограничения (пересечение интервалов бронирований)
func IsExclusionViolation(err error) bool {
	return code(err) == codeExclusionViolation
}

// IsRetryable транзакцию можно безопасно повторить целиком
func IsRetryable(err error) bool {
	c := code(err)
	return c == codeSerializationFailure || c == codeDeadlockDetected
}
