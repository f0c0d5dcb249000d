package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFederalHoliday(t *testing.T) {
	holidays := []time.Time{
		time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC), // July 4th falls on a Saturday
		time.Date(2026, 11, 26, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range holidays {
		_, ok := FederalHoliday(d)
		assert.True(t, ok, d.Format("2006-01-02"))
	}

	for _, d := range []time.Time{
		time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC),
	} {
		_, ok := FederalHoliday(d)
		assert.False(t, ok, d.Format("2006-01-02"))
	}
}

func TestFederalHoliday_ObservedName(t *testing.T) {
	actual, ok := FederalHoliday(time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC))
	assert.True(t, ok)

	observed, ok := FederalHoliday(time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC))
	assert.True(t, ok)
	assert.Equal(t, actual+" (observed)", observed)

	name, ok := FederalHoliday(time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
	assert.Empty(t, name)
}
