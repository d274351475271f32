package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByMonthAlwaysTwelveBuckets(t *testing.T) {
	t.Parallel()

	months := ByMonth(nil, 2024)
	require.Len(t, months, 12)
	for i, m := range months {
		require.Equal(t, i, m.MonthIndex)
		require.Zero(t, m.TotalAmount)
		require.Zero(t, m.Count)
	}
	require.Equal(t, "January", months[0].Month)
	require.Equal(t, "December", months[11].Month)
}

func TestByMonth(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{ManualDate: "2024-01-10", AmountRs: 100},
		{ManualDate: "2024-01-20", AmountRs: 50},
		{ManualDate: "2024-03-05", AmountRs: 200},
		{ManualDate: "2023-01-01", AmountRs: 999}, // wrong year
		{ManualDate: "bad-date", AmountRs: 999},   // unparseable
	}

	months := ByMonth(entries, 2024)
	require.Len(t, months, 12)
	require.Equal(t, int64(150), months[0].TotalAmount)
	require.Equal(t, 2, months[0].Count)
	require.Equal(t, int64(200), months[2].TotalAmount)
	require.Equal(t, 1, months[2].Count)
	require.Zero(t, months[1].Count)
}

func TestByYearAscending(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{ManualDate: "2024-01-10", AmountRs: 100},
		{ManualDate: "2022-06-01", AmountRs: 40},
		{ManualDate: "2024-03-05", AmountRs: 200},
		{ManualDate: "nope", AmountRs: 999},
	}

	years := ByYear(entries)
	require.Len(t, years, 2)
	require.Equal(t, 2022, years[0].Year)
	require.Equal(t, int64(40), years[0].TotalAmount)
	require.Equal(t, 2024, years[1].Year)
	require.Equal(t, int64(300), years[1].TotalAmount)
	require.Equal(t, 2, years[1].Count)
}

func TestAvailableYearsDescending(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{ManualDate: "2022-06-01"},
		{ManualDate: "2024-01-10"},
		{ManualDate: "2023-12-31"},
		{ManualDate: "2024-02-02"},
		{ManualDate: "???"},
	}
	require.Equal(t, []int{2024, 2023, 2022}, AvailableYears(entries))
	require.Empty(t, AvailableYears(nil))
}
