package shared

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDSet(t *testing.T) {
	ids, err := ParseIDSet("1,2, 3")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	ids, err = ParseIDSet("")
	require.NoError(t, err)
	assert.Nil(t, ids)

	_, err = ParseIDSet("1,x")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestParseNumericRangeExact(t *testing.T) {
	r, err := ParseNumericRange("3", 1, 5)
	require.NoError(t, err)
	assert.Equal(t, &NumericRange{Min: 3, Max: 3}, r)
}

func TestParseNumericRangeInterval(t *testing.T) {
	r, err := ParseNumericRange("2|4", 1, 5)
	require.NoError(t, err)
	assert.Equal(t, &NumericRange{Min: 2, Max: 4}, r)
}

func TestParseNumericRangeRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"2|4|4", "abc", "0|4", "2|6", "6", "|", "2|"} {
		_, err := ParseNumericRange(raw, 1, 5)
		assert.Truef(t, errors.Is(err, ErrValidation), "value %q should be rejected", raw)
	}
}

func TestParseNumericRangeEmpty(t *testing.T) {
	r, err := ParseNumericRange("", 1, 5)
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestParseDateRangeSingleDay(t *testing.T) {
	r, err := ParseDateRange("2024-03-10")
	require.NoError(t, err)
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, &TimeRange{From: day, To: day.AddDate(0, 0, 1)}, r)
}

func TestParseDateRangeInterval(t *testing.T) {
	r, err := ParseDateRange("2024-03-01|2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), r.From)
	// The upper bound is exclusive and covers the whole last day.
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), r.To)
}

func TestParseDateRangeRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"2024-3-1", "yesterday", "2024-03-10|", "|2024-03-10", "2024-03-10|2024-03-01", "a|b|c"} {
		_, err := ParseDateRange(raw)
		assert.Truef(t, errors.Is(err, ErrValidation), "value %q should be rejected", raw)
	}
}

func TestParseDateRangeEmpty(t *testing.T) {
	r, err := ParseDateRange("")
	require.NoError(t, err)
	assert.Nil(t, r)
}
