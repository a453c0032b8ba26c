package pgerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	exclusion := fmt.Errorf("insert: %w", &pq.Error{Code: "23P01"})
	assert.True(t, IsExclusionViolation(exclusion))
	assert.False(t, IsUniqueViolation(exclusion))

	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsRetryable(fmt.Errorf("commit: %w", &pq.Error{Code: "40001"})))
	assert.True(t, IsRetryable(&pq.Error{Code: "40P01"}))

	assert.False(t, IsRetryable(errors.New("connection refused")))
	assert.False(t, IsExclusionViolation(nil))
}
