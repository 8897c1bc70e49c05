package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWallKeepsLocalReading(t *testing.T) {
	loc := time.FixedZone("MYT", 8*60*60)
	local := time.Date(2025, 3, 4, 23, 30, 0, 0, loc)

	got := Wall(local)

	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 23, got.Hour())
	assert.Equal(t, 4, got.Day())
}

func TestToday(t *testing.T) {
	c := Fixed(time.Date(2025, 3, 4, 17, 45, 12, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), Today(c))
}

func TestMonthRange(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		last  int
	}{
		{2025, time.January, 31},
		{2025, time.February, 28},
		{2024, time.February, 29},
		{2025, time.April, 30},
	}
	for _, c := range cases {
		first, last := MonthRange(c.year, c.month)
		if first.Day() != 1 || last.Day() != c.last || last.Month() != c.month {
			t.Errorf("MonthRange(%d, %s) = %v..%v, want last day %d", c.year, c.month, first, last, c.last)
		}
	}
}

func TestAt(t *testing.T) {
	date := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)

	got, err := At(date, "08:15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 4, 8, 15, 0, 0, time.UTC), got)

	_, err = At(date, "8am")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-12-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("01/12/2025")
	assert.Error(t, err)
}
