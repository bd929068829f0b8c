package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(time.Date(2024, 2, 17, 13, 45, 0, 0, time.UTC))

	assert.Equal(t, Date(2024, 2, 1), start)
	assert.Equal(t, Date(2024, 2, 29), end)
}

func TestParseMonth(t *testing.T) {
	start, end, err := ParseMonth("2025-03")
	require.NoError(t, err)
	assert.Equal(t, Date(2025, 3, 1), start)
	assert.Equal(t, Date(2025, 3, 31), end)

	_, _, err = ParseMonth("March")
	assert.Error(t, err)
}

func TestLastMonths(t *testing.T) {
	got := LastMonths(Date(2025, 1, 15), 3)

	require.Len(t, got, 3)
	assert.Equal(t, [2]time.Time{Date(2024, 11, 1), Date(2024, 11, 30)}, got[0])
	assert.Equal(t, [2]time.Time{Date(2024, 12, 1), Date(2024, 12, 31)}, got[1])
	assert.Equal(t, [2]time.Time{Date(2025, 1, 1), Date(2025, 1, 31)}, got[2])
}

func TestCivilIn(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	instant := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, Date(2025, 3, 11), CivilIn(instant, jakarta))
	assert.Equal(t, Date(2025, 3, 10), CivilIn(instant, nil))
}

func TestWorkWeek(t *testing.T) {
	// 2025-03-07 is a Friday
	assert.True(t, DefaultWorkWeek.Contains(Date(2025, 3, 7)))
	assert.False(t, DefaultWorkWeek.Contains(Date(2025, 3, 8)))
	assert.Equal(t, 5, DefaultWorkWeek.CountIn(Date(2025, 3, 7), Date(2025, 3, 13)))
	assert.Equal(t, 0, DefaultWorkWeek.CountIn(Date(2025, 3, 13), Date(2025, 3, 7)))

	ww, err := ParseWorkWeek([]string{"Sat", " sunday "})
	require.NoError(t, err)
	assert.Equal(t, WorkWeek{time.Saturday, time.Sunday}, ww)

	_, err = ParseWorkWeek([]string{"funday"})
	assert.Error(t, err)
}

func TestClock(t *testing.T) {
	d, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9*time.Hour+30*time.Minute, d)

	d, err = ParseClock("26:00:05")
	require.NoError(t, err)
	assert.Equal(t, "26:00:05", FormatClock(d))

	for _, bad := range []string{"9", "09:75", "aa:bb", "1:2:3:4"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}

	assert.Equal(t, "00:00:00", FormatClock(-time.Minute))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 3, DaysBetween(Date(2025, 3, 10), Date(2025, 3, 13)))
	assert.Equal(t, -1, DaysBetween(Date(2025, 3, 10), Date(2025, 3, 9)))
	assert.Equal(t, Date(2025, 4, 1), AddDays(Date(2025, 3, 31), 1))
}
