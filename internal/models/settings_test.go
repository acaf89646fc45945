package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcademicYearStart(t *testing.T) {
	cases := []struct {
		year  string
		start int
		ok    bool
	}{
		{"2024/2025", 2024, true},
		{"2024-2025", 2024, true},
		{"2024", 2024, true},
		{" 2024 / 2025", 2024, true},
		{"next year", 0, false},
		{"", 0, false},
		{"20xx/2025", 0, false},
	}

	for _, tc := range cases {
		start, ok := AcademicYearStart(tc.year)
		assert.Equal(t, tc.ok, ok, tc.year)
		if tc.ok {
			assert.Equal(t, tc.start, start, tc.year)
		}
	}
}

func TestIsWeekday(t *testing.T) {
	assert.True(t, IsWeekday("Monday"))
	assert.True(t, IsWeekday("Sunday"))
	assert.False(t, IsWeekday("monday"))
	assert.False(t, IsWeekday("Funday"))
}
