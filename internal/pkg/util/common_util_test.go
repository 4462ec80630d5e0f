package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	day, err := ParseDate("2026-03-10", "")
	require.NoError(t, err)
	assert.Equal(t, 2026, day.Year())
	assert.Equal(t, time.March, day.Month())
	assert.Equal(t, 10, day.Day())

	_, err = ParseDate("03/10/2026", "")
	assert.Error(t, err)

	_, err = ParseDate("2026-13-40", "")
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	day := time.Date(2026, 3, 10, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "2026-03-10", FormatDate(day))
}

func TestMidnight(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	at := time.Date(2026, 3, 10, 23, 59, 59, 0, loc)
	mid := Midnight(at)
	assert.Equal(t, 0, mid.Hour())
	assert.Equal(t, 10, mid.Day())
	assert.Equal(t, loc, mid.Location())
}

func TestLoadLocation(t *testing.T) {
	assert.Equal(t, time.UTC, LoadLocation(""))
	assert.Equal(t, time.UTC, LoadLocation("Not/AZone"))

	tokyo := LoadLocation("Asia/Tokyo")
	assert.Equal(t, "Asia/Tokyo", tokyo.String())
}

func TestStrSliceToUInt64Slice(t *testing.T) {
	out, err := StrSliceToUInt64Slice([]string{"1", "42", "9000"})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 42, 9000}, out)

	_, err = StrSliceToUInt64Slice([]string{"1", "nope"})
	assert.Error(t, err)

	out, err = StrSliceToUInt64Slice(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
