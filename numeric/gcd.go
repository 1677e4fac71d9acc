package numeric

import "math/big"

// GCD returns the non-negative greatest common divisor of a and b.
// Complexity: O(log(min(|a|,|b|))) via big.Int's binary-free Euclidean GCD.
func GCD(a, b int64) int64 {
	x := new(big.Int).SetInt64(a)
	y := new(big.Int).SetInt64(b)
	g := new(big.Int).GCD(nil, nil, x.Abs(x), y.Abs(y))

	return g.Int64()
}

// LCM returns the least common multiple of a and b, or 0 if both are 0.
// Complexity: O(log(min(|a|,|b|))).
func LCM(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	g := GCD(a, b)

	return (a / g) * b
}

// GCDRow returns the gcd of the numerators of every non-zero entry in row,
// after clearing denominators — the rescaling factor spec §4.2's
// removeLoop asks for ("gcd rescaling of result rows"). Returns 1 for an
// all-zero row so callers can divide unconditionally.
func GCDRow(row []*big.Rat) *big.Int {
	g := big.NewInt(0)
	den := big.NewInt(1)
	// First find a common denominator across the row (lcm of denominators).
	for _, v := range row {
		if v == nil || v.Sign() == 0 {
			continue
		}
		den = lcmBigInt(den, v.Denom())
	}
	// Then accumulate gcd of numerators scaled to that denominator.
	scaled := new(big.Int)
	for _, v := range row {
		if v == nil || v.Sign() == 0 {
			continue
		}
		scaled.Mul(v.Num(), new(big.Int).Div(den, v.Denom()))
		g.GCD(nil, nil, g, new(big.Int).Abs(scaled))
	}
	if g.Sign() == 0 {
		return big.NewInt(1)
	}

	return g
}

func lcmBigInt(a, b *big.Int) *big.Int {
	if a.Sign() == 0 {
		return new(big.Int).Set(b)
	}
	if b.Sign() == 0 {
		return new(big.Int).Set(a)
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
	out := new(big.Int).Div(a, g)
	out.Mul(out, b)

	return out.Abs(out)
}
