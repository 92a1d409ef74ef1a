package blackout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func utc(hour, minute int) time.Time {
	return time.Date(2024, 6, 15, hour, minute, 0, 0, time.UTC)
}

func TestInBlackoutDisabled(t *testing.T) {
	cfg := Config{Enabled: false, StartHour: 0, EndHour: 23, GMTOffset: 0}
	assert.False(t, InBlackout(utc(3, 0), cfg))
}

func TestInBlackoutSimpleWindow(t *testing.T) {
	// Midnight to 7am at GMT-5
	cfg := Config{Enabled: true, StartHour: 0, EndHour: 7, GMTOffset: -5}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"local midnight", utc(5, 0), true},
		{"local 3am", utc(8, 0), true},
		{"local 6:59", utc(11, 59), true},
		{"local 7:30", utc(12, 30), false},
		{"local noon", utc(17, 0), false},
		{"local 23:00", utc(4, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InBlackout(tt.now, cfg))
		})
	}
}

func TestInBlackoutMidnightCrossing(t *testing.T) {
	// 10pm to 6am, no offset
	cfg := Config{Enabled: true, StartHour: 22, EndHour: 6, GMTOffset: 0}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"local 23:00", utc(23, 0), true},
		{"local 05:00", utc(5, 0), true},
		{"local 22:00", utc(22, 0), true},
		{"local 06:00", utc(6, 0), false},
		{"local 10:00", utc(10, 0), false},
		{"local 21:59", utc(21, 59), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InBlackout(tt.now, cfg))
		})
	}
}

func TestInBlackoutEqualHoursIsFullDay(t *testing.T) {
	cfg := Config{Enabled: true, StartHour: 9, EndHour: 9, GMTOffset: 0}

	for hour := 0; hour < 24; hour++ {
		assert.True(t, InBlackout(utc(hour, 30), cfg), "hour %d", hour)
	}
}

func TestInBlackoutPositiveOffsetWraps(t *testing.T) {
	// GMT+11: UTC 20:00 is local 07:00 the next day
	cfg := Config{Enabled: true, StartHour: 0, EndHour: 7, GMTOffset: 11}

	assert.False(t, InBlackout(utc(20, 0), cfg)) // local 07:00
	assert.True(t, InBlackout(utc(19, 0), cfg))  // local 06:00
	assert.True(t, InBlackout(utc(13, 0), cfg))  // local 00:00
}
