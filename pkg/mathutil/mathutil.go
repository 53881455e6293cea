package mathutil

import (
	"errors"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	//BigOne represents a single unit of the native token with precision 8
	BigOne = uint64(math.Pow10(8))
	//BigOneDecimal represents a single unit of the native token as decimal.Decimal
	BigOneDecimal = decimal.NewFromInt(int64(BigOne))
	// CreditUnitScale converts whole credits into the network's credit base unit
	CreditUnitScale = uint64(100)

	// ErrZeroOracleValue ...
	ErrZeroOracleValue = errors.New("oracle value must be greater than zero")
)

func init() {
	decimal.DivisionPrecision = 8
}

// CreditsToTokenAmount converts an amount of credits into native token base
// units at the given oracle rate:
//
//	tokenBaseUnits = floor(credits * 100 * 10^8 / oracleValue)
//
// The division is an exact integer floor, never a float round.
func CreditsToTokenAmount(credits, oracleValue uint64) (uint64, error) {
	if oracleValue == 0 {
		return 0, ErrZeroOracleValue
	}

	z := new(big.Int).SetUint64(credits)
	z.Mul(z, new(big.Int).SetUint64(CreditUnitScale))
	z.Mul(z, new(big.Int).SetUint64(BigOne))
	z.Quo(z, new(big.Int).SetUint64(oracleValue))

	return z.Uint64(), nil
}

// TokenAmountToCredits is the inverse preview of CreditsToTokenAmount, used
// to show how many credits a given token amount purchases at the current
// oracle rate. Floor division as well.
func TokenAmountToCredits(tokenBaseUnits, oracleValue uint64) uint64 {
	z := new(big.Int).SetUint64(tokenBaseUnits)
	z.Mul(z, new(big.Int).SetUint64(oracleValue))
	z.Quo(z, new(big.Int).SetUint64(CreditUnitScale))
	z.Quo(z, new(big.Int).SetUint64(BigOne))
	return z.Uint64()
}

// Div takes two uint64 numbers and divides them x/y returning the result as decimal
func Div(x, y uint64) decimal.Decimal {
	X := decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0)
	Y := decimal.NewFromBigInt(new(big.Int).SetUint64(y), 0)
	return X.Div(Y)
}
