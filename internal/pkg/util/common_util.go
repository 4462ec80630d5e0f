package util

import (
	"axis6/internal/pkg/consts"
	"strconv"
	"time"
)

// StrSliceToUInt64Slice converts string IDs drained from Redis sets.
func StrSliceToUInt64Slice(in []string) ([]uint64, error) {
	out := make([]uint64, 0, len(in))
	for _, s := range in {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// LoadLocation resolves an IANA timezone name, falling back to UTC.
func LoadLocation(name string) *time.Location {
	if name == "" {
		name = consts.DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Midnight truncates t to the start of its day in t's location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// LocalToday returns the start of today in the given timezone.
func LocalToday(tzName string) time.Time {
	return Midnight(time.Now().In(LoadLocation(tzName)))
}

// ParseDate parses a YYYY-MM-DD string in the given timezone.
func ParseDate(value string, tzName string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, value, LoadLocation(tzName))
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// PtrInt converts an int to *int.
func PtrInt(i int) *int {
	return &i
}
