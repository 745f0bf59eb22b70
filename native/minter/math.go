package minter

import "math/big"

// All USD values and risk factors are fixed-point integers scaled by 1e18.
// Token amounts stay in their native decimals until valuation rescales them.
var (
	scale     = mustBigInt("1000000000000000000")
	bigOne    = big.NewInt(1)
	bigTen    = big.NewInt(10)
	maxWadFee = mustBigInt("100000000000000000")  // 10%
	maxBonus  = mustBigInt("1250000000000000000") // 1.25x
)

func mustBigInt(value string) *big.Int {
	v, ok := new(big.Int).SetString(value, 10)
	if !ok {
		panic("invalid big integer constant")
	}
	return v
}

// wadMul multiplies two wad values truncating toward zero.
func wadMul(a, b *big.Int) *big.Int {
	if a == nil || b == nil {
		return big.NewInt(0)
	}
	product := new(big.Int).Mul(a, b)
	return product.Quo(product, scale)
}

// wadMulUp multiplies two wad values rounding the result up.
func wadMulUp(a, b *big.Int) *big.Int {
	if a == nil || b == nil {
		return big.NewInt(0)
	}
	product := new(big.Int).Mul(a, b)
	return ceilQuo(product, scale)
}

// wadDiv divides a by b in wad precision, truncating toward zero.
func wadDiv(a, b *big.Int) (*big.Int, error) {
	if b == nil || b.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	if a == nil {
		return big.NewInt(0), nil
	}
	numerator := new(big.Int).Mul(a, scale)
	return numerator.Quo(numerator, b), nil
}

// wadDivUp divides a by b in wad precision, rounding the result up.
func wadDivUp(a, b *big.Int) (*big.Int, error) {
	if b == nil || b.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	if a == nil {
		return big.NewInt(0), nil
	}
	numerator := new(big.Int).Mul(a, scale)
	return ceilQuo(numerator, b), nil
}

func ceilQuo(a, b *big.Int) *big.Int {
	quo, rem := new(big.Int).QuoRem(a, b, new(big.Int))
	if rem.Sign() != 0 && (a.Sign() > 0) == (b.Sign() > 0) {
		quo.Add(quo, bigOne)
	}
	return quo
}

// rescale converts an amount between decimal precisions. Scaling down
// truncates toward zero; callers are responsible for bounding magnitudes so
// scaling up cannot overflow meaningfully.
func rescale(amount *big.Int, from, to uint8) *big.Int {
	if amount == nil {
		return big.NewInt(0)
	}
	switch {
	case from == to:
		return new(big.Int).Set(amount)
	case from < to:
		factor := pow10(to - from)
		return new(big.Int).Mul(amount, factor)
	default:
		factor := pow10(from - to)
		return new(big.Int).Quo(amount, factor)
	}
}

func pow10(n uint8) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}
