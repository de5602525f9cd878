package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "2024-06-10"},
		{name: "leap day", input: "2024-02-29"},
		{name: "not a leap year", input: "2023-02-29", wantErr: true},
		{name: "day out of range", input: "2024-02-30", wantErr: true},
		{name: "no zero padding", input: "2024-6-1", wantErr: true},
		{name: "month only", input: "2024-06", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParseYearMonth(t *testing.T) {
	m, err := ParseYearMonth("2024-06")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), m)

	for _, bad := range []string{"2024-13", "2024-00", "2024-6", "24-06", "2024-06-01", "abcd-ef"} {
		_, err := ParseYearMonth(bad)
		assert.ErrorIs(t, err, ErrInvalidMonth, bad)
	}
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(time.Date(2024, 12, 17, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), to)

	assert.True(t, IsMonthRange(from, to))
	assert.False(t, IsMonthRange(from, to.AddDate(0, 0, 1)))
	assert.False(t, IsMonthRange(from.AddDate(0, 0, 1), to))
}

func TestNormalizeDate(t *testing.T) {
	jst := time.FixedZone("JST", 9*3600)
	got := NormalizeDate(time.Date(2024, 6, 10, 23, 59, 0, 0, jst))
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), got)
}
