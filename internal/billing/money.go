package billing

import "math"

// All amounts are integer minor currency units (cents). Rounding is
// round-half-up at cent granularity, done in integer arithmetic so results
// are deterministic across platforms.

// roundHalfUpDiv returns numerator/denominator rounded half-up.
// Both operands must be non-negative and denominator non-zero.
func roundHalfUpDiv(numerator, denominator int64) int64 {
	return (2*numerator + denominator) / (2 * denominator)
}

// percentOf returns pct percent of amount in cents, rounded half-up.
// The percentage is converted to basis points first so fractional rates
// like 2.5% stay exact.
func percentOf(amount int64, pct float64) int64 {
	bp := int64(math.Round(pct * 100))
	if bp <= 0 || amount <= 0 {
		return 0
	}
	return roundHalfUpDiv(amount*bp, 10000)
}
