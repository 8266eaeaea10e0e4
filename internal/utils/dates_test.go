package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToDate(t *testing.T) {
	ref := time.Date(2025, 4, 3, 10, 30, 0, 0, time.UTC)

	t.Run("Time", func(t *testing.T) {
		got, ok := ToDate(ref)
		assert.True(t, ok)
		assert.Equal(t, ref, got)
	})

	t.Run("TimePointer", func(t *testing.T) {
		got, ok := ToDate(&ref)
		assert.True(t, ok)
		assert.Equal(t, ref, got)

		_, ok = ToDate((*time.Time)(nil))
		assert.False(t, ok)
	})

	t.Run("EpochMillis", func(t *testing.T) {
		got, ok := ToDate(ref.UnixMilli())
		assert.True(t, ok)
		assert.True(t, got.Equal(ref))

		got, ok = ToDate(float64(ref.UnixMilli()))
		assert.True(t, ok)
		assert.True(t, got.Equal(ref))
	})

	t.Run("Strings", func(t *testing.T) {
		got, ok := ToDate("2025-04-03T10:30:00Z")
		assert.True(t, ok)
		assert.True(t, got.Equal(ref))

		got, ok = ToDate("2025-04-03")
		assert.True(t, ok)
		assert.Equal(t, 2025, got.Year())

		_, ok = ToDate("not a date")
		assert.False(t, ok)
	})

	t.Run("Unparseable", func(t *testing.T) {
		_, ok := ToDate(nil)
		assert.False(t, ok)
		_, ok = ToDate(time.Time{})
		assert.False(t, ok)
		_, ok = ToDate(struct{}{})
		assert.False(t, ok)
	})
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2025, 4, 3, 23, 59, 59, 123, time.UTC)
	got := DateOnly(ts)
	assert.Equal(t, time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC), got)
}
