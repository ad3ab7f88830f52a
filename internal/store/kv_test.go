package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnrollmentCountKey(t *testing.T) {
	assert.Equal(t, "onedrop:campaign:42:enrollments", EnrollmentCountKey(42))
	assert.NotEqual(t, EnrollmentCountKey(1), EnrollmentCountKey(11))
}
