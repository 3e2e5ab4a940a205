package shared

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseIDSet splits a comma-separated list of ids ("1,2,3") into a set of
// int64 values. Empty input yields nil without error.
func ParseIDSet(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid id list %q", ErrValidation, raw)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// NumericRange is an inclusive [Min, Max] interval. An exact-match filter is
// represented with Min == Max.
type NumericRange struct {
	Min float64
	Max float64
}

// ParseNumericRange parses a bounded range filter value. A bare number means
// exact match; "min|max" means an inclusive interval. Values outside
// [lower, upper] and malformed inputs are rejected at parse time.
func ParseNumericRange(raw string, lower, upper float64) (*NumericRange, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	invalid := fmt.Errorf("%w: invalid range filter parameter %q", ErrValidation, raw)
	if !strings.Contains(raw, "|") {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < lower || value > upper {
			return nil, invalid
		}
		return &NumericRange{Min: value, Max: value}, nil
	}
	parts := strings.Split(raw, "|")
	if len(parts) != 2 {
		return nil, invalid
	}
	min, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, invalid
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, invalid
	}
	if min < lower || min > upper || max < lower || max > upper {
		return nil, invalid
	}
	return &NumericRange{Min: min, Max: max}, nil
}

// TimeRange is a half-open [From, To) interval.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// ParseDateRange parses a date filter value. A bare "2006-01-02" covers
// that whole day; "from|to" covers from the first day through the end of
// the last. Malformed inputs are rejected at parse time.
func ParseDateRange(raw string) (*TimeRange, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	invalid := fmt.Errorf("%w: invalid date filter parameter %q", ErrValidation, raw)
	parse := func(s string) (time.Time, error) {
		return time.Parse("2006-01-02", strings.TrimSpace(s))
	}
	if !strings.Contains(raw, "|") {
		day, err := parse(raw)
		if err != nil {
			return nil, invalid
		}
		return &TimeRange{From: day, To: day.AddDate(0, 0, 1)}, nil
	}
	parts := strings.Split(raw, "|")
	if len(parts) != 2 {
		return nil, invalid
	}
	from, err := parse(parts[0])
	if err != nil {
		return nil, invalid
	}
	to, err := parse(parts[1])
	if err != nil {
		return nil, invalid
	}
	if to.Before(from) {
		return nil, invalid
	}
	return &TimeRange{From: from, To: to.AddDate(0, 0, 1)}, nil
}
