package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDisplayAmount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1", 100_000_000},
		{"2.5", 250_000_000},
		{"0.00000001", 1},
		{"0.1", 10_000_000},
		{"100", 10_000_000_000},
		{"3.14159265", 314_159_265},
		{"2.50", 250_000_000},
		{".5", 50_000_000},
		{"1.", 100_000_000},
	}
	for _, c := range cases {
		got, err := ParseDisplayAmount(c.in)
		require.NoError(t, err, "input %q", c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestParseDisplayAmountAtInt64Bound(t *testing.T) {
	// Largest representable amount parses exactly
	got, err := ParseDisplayAmount("92233720368.54775807")
	require.NoError(t, err)
	assert.Equal(t, int64(9223372036854775807), got)

	// One subunit past the bound overflows and must be rejected as
	// invalid, not as non-positive
	_, err = ParseDisplayAmount("92233720368.54775808")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ParseDisplayAmount("92233720369")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestParseDisplayAmountRejectsInvalid(t *testing.T) {
	invalid := []string{
		"",
		".",
		"abc",
		"1.2.3",
		"-1",
		"+1",
		"1e8",
		"0.000000001", // 9 fraction digits
		"1 000",
	}
	for _, in := range invalid {
		_, err := ParseDisplayAmount(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", in)
	}
}

func TestParseDisplayAmountRejectsNonPositive(t *testing.T) {
	for _, in := range []string{"0", "0.0", "0.00000000"} {
		_, err := ParseDisplayAmount(in)
		assert.ErrorIs(t, err, ErrNonPositiveAmount, "input %q", in)
	}
}

func TestFormatDisplayAmount(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{100_000_000, "1"},
		{250_000_000, "2.5"},
		{1, "0.00000001"},
		{10_000_000, "0.1"},
		{314_159_265, "3.14159265"},
		{0, "0"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatDisplayAmount(c.in), "input %d", c.in)
	}
}

func TestDisplayAmountRoundTrip(t *testing.T) {
	for _, sub := range []int64{1, 99, 100_000_000, 250_000_000, 123_456_789_012} {
		parsed, err := ParseDisplayAmount(FormatDisplayAmount(sub))
		require.NoError(t, err)
		assert.Equal(t, sub, parsed)
	}
}
