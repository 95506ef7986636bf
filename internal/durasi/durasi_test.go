package durasi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hhmmss string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", "2025-01-01T"+hhmmss)
	if err != nil {
		panic(err)
	}
	return t
}

func TestFormat(t *testing.T) {
	testCases := []struct {
		name     string
		entry    time.Time
		exit     time.Time
		expected string
	}{
		{"hours and minutes", at("08:00:00"), at("12:45:00"), "4 jam 45 menit"},
		{"under an hour", at("08:00:00"), at("08:30:00"), "30 menit"},
		{"exact hour keeps zero minutes", at("09:00:00"), at("17:00:00"), "8 jam 0 menit"},
		{"seconds floor away", at("08:00:00"), at("08:29:59"), "29 menit"},
		{"zero elapsed", at("08:00:00"), at("08:00:00"), "0 menit"},
		{"sub-minute floors to zero", at("08:00:00"), at("08:00:45"), "0 menit"},
		{"exit before entry clamps", at("09:00:00"), at("08:00:00"), "0 menit"},
		{"overnight stay", at("07:00:00"), at("19:30:00"), "12 jam 30 menit"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Format(tc.entry, tc.exit))
		})
	}
}

func TestMinutes(t *testing.T) {
	assert.Equal(t, 285, Minutes(at("08:00:00"), at("12:45:00")))
	assert.Equal(t, 0, Minutes(at("12:45:00"), at("08:00:00")))
	assert.Equal(t, 74, Minutes(at("08:00:30"), at("09:15:00")))
}
