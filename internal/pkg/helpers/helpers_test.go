package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetNullInt64(t *testing.T) {
	assert.False(t, GetNullInt64(nil).Valid)

	id := int64(7)
	v := GetNullInt64(&id)
	assert.True(t, v.Valid)
	assert.Equal(t, int64(7), v.Int64)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 5*time.Second, ParseDuration("5s", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("soon", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
}
