package ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDateRoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"2024-01-01", "2024-12-31", "2020-02-29", "1999-06-15"} {
		d, ok := ParseDate(s)
		require.True(t, ok, "ParseDate(%q)", s)
		require.Equal(t, s, d.Format("2006-01-02"))
	}
}

func TestParseDateRejectsMalformed(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		"2024",
		"2024-01",
		"2024/01/01",
		"not-a-date",
		"2024-13-01",
		"2024-00-10",
		"2024-01-00",
		"24-01-01",
		"2024-01-01-01",
	}
	for _, s := range cases {
		_, ok := ParseDate(s)
		require.False(t, ok, "ParseDate(%q) should fail", s)
	}
}

func TestParseDateNoRollover(t *testing.T) {
	t.Parallel()

	// day 30 of February must not silently become March
	_, ok := ParseDate("2021-02-30")
	require.False(t, ok)
	_, ok = ParseDate("2023-02-29")
	require.False(t, ok)
	_, ok = ParseDate("2024-04-31")
	require.False(t, ok)
}

func TestDaysSince(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.Local)

	day := func(t time.Time) string { return t.Format("2006-01-02") }

	d, ok := DaysSince(day(now), now)
	require.True(t, ok)
	require.Equal(t, 0, d)

	d, ok = DaysSince(day(now.AddDate(0, 0, -1)), now)
	require.True(t, ok)
	require.Equal(t, 1, d)

	d, ok = DaysSince(day(now.AddDate(0, 0, 1)), now)
	require.True(t, ok)
	require.Equal(t, -1, d)

	d, ok = DaysSince("2024-06-05", now)
	require.True(t, ok)
	require.Equal(t, 10, d)

	_, ok = DaysSince("garbage", now)
	require.False(t, ok)
}

func TestDaysSinceIgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	// calendar-day difference, not 24-hour multiples: one minute past
	// midnight is still a full day after yesterday
	now := time.Date(2024, 6, 15, 0, 1, 0, 0, time.Local)
	d, ok := DaysSince("2024-06-14", now)
	require.True(t, ok)
	require.Equal(t, 1, d)
}

func TestFloorDiv(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct{ a, b, want int64 }{
		{86_400_000, 86_400_000, 1},
		{-86_400_000, 86_400_000, -1},
		{0, 86_400_000, 0},
		{-1, 86_400_000, -1},
		{86_399_999, 86_400_000, 0},
	} {
		require.Equal(t, tc.want, floorDiv(tc.a, tc.b), fmt.Sprintf("floorDiv(%d, %d)", tc.a, tc.b))
	}
}
