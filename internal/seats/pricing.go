package seats

import "math"

// UnitPrice returns the price of a single seat: tier base scaled by the
// theatre multiplier and rounded half-up to a whole amount. The product is
// taken to cent precision first, so binary float artifacts (350*1.15
// evaluates just under 402.5) cannot tip a half right below the boundary.
func UnitPrice(seatID string, multiplier float64) (int, error) {
	if _, _, err := ParseSeatID(seatID); err != nil {
		return 0, err
	}

	base := float64(BasePrice(TierFor(seatID)))
	cents := int(math.Round(base * multiplier * 100))
	return (cents + 50) / 100, nil
}

// Total prices a selection. Each seat is rounded individually before
// summation, so the total is always the sum of the displayed per-seat prices.
func Total(seatIDs []string, multiplier float64) (int, error) {
	total := 0
	for _, seatID := range seatIDs {
		price, err := UnitPrice(seatID, multiplier)
		if err != nil {
			return 0, err
		}
		total += price
	}
	return total, nil
}
