package mathutil_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accuwallet/walletcore/pkg/mathutil"
)

func TestCreditsToTokenAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		credits  uint64
		oracle   uint64
		expected uint64
	}{
		{100, 1000000, 10000000000},
		{1, 500000, 20000},
		{0, 1000000, 0},
		// Floor, not round: 1*100*1e8/3000000 = 3333.33...
		{1, 3000000, 3333},
		{2500, 445000, 56179775280},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("%d_credits_at_%d", tt.credits, tt.oracle), func(t *testing.T) {
			t.Parallel()
			got, err := mathutil.CreditsToTokenAmount(tt.credits, tt.oracle)
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestCreditsToTokenAmountZeroOracle(t *testing.T) {
	t.Parallel()

	_, err := mathutil.CreditsToTokenAmount(100, 0)
	require.ErrorIs(t, err, mathutil.ErrZeroOracleValue)
}

func TestTokenAmountToCredits(t *testing.T) {
	t.Parallel()

	// Inverse preview of the conversion above.
	require.Equal(t, uint64(100), mathutil.TokenAmountToCredits(10000000000, 1000000))
	require.Equal(t, uint64(0), mathutil.TokenAmountToCredits(0, 1000000))
}

func TestFormatTokenAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		baseUnits uint64
		precision int
		expected  string
	}{
		{150000000, 8, "1.5"},
		{100000000, 8, "1"},
		{1, 8, "0.00000001"},
		{0, 8, "0"},
		{42, 0, "42"},
		{123456, 4, "12.3456"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()
			got, err := mathutil.FormatTokenAmount(tt.baseUnits, tt.precision)
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}

	_, err := mathutil.FormatTokenAmount(1, 19)
	require.ErrorIs(t, err, mathutil.ErrInvalidPrecision)
}

func TestParseTokenAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text      string
		precision int
		expected  uint64
	}{
		{"1.5", 8, 150000000},
		{"1", 8, 100000000},
		{"0.00000001", 8, 1},
		{"0", 8, 0},
		{"42", 0, 42},
		{" 12.3456 ", 4, 123456},
		{"1.50000000000", 8, 150000000},
		{".5", 8, 50000000},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			got, err := mathutil.ParseTokenAmount(tt.text, tt.precision)
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestParseTokenAmountFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		precision int
		expected  error
	}{
		{"too_many_decimals", "0.123456789", 8, mathutil.ErrTooManyDecimals},
		{"fraction_with_zero_precision", "1.5", 0, mathutil.ErrTooManyDecimals},
		{"empty", "", 8, mathutil.ErrInvalidAmount},
		{"not_a_number", "one", 8, mathutil.ErrInvalidAmount},
		{"negative", "-1", 8, mathutil.ErrInvalidAmount},
		{"bad_precision", "1", 19, mathutil.ErrInvalidPrecision},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := mathutil.ParseTokenAmount(tt.text, tt.precision)
			require.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	t.Parallel()

	for _, precision := range []int{0, 1, 4, 8, 18} {
		for _, x := range []uint64{0, 1, 9, 10, 999999999, 150000000, 1 << 40} {
			formatted, err := mathutil.FormatTokenAmount(x, precision)
			require.NoError(t, err)

			parsed, err := mathutil.ParseTokenAmount(formatted, precision)
			require.NoError(t, err)
			require.Equal(t, x, parsed, "precision %d amount %d", precision, x)
		}
	}
}
