package seats

import (
	"fmt"
	"strconv"
)

// Auditorium layout. Every screening uses the same grid: rows A-H with 12
// seats each. Rows A-D are premium, the rest standard. The aisle sits after
// column 6 and is purely a display marker.
const (
	FirstRow         = 'A'
	LastRow          = 'H'
	SeatsPerRow      = 12
	AisleAfterColumn = 6
	LastPremiumRow   = 'D'
)

// Base tier prices before the theatre multiplier is applied
const (
	PremiumBasePrice  = 350
	StandardBasePrice = 250
)

// RowLabels returns the row letters in display order
func RowLabels() []string {
	labels := make([]string, 0, LastRow-FirstRow+1)
	for row := FirstRow; row <= LastRow; row++ {
		labels = append(labels, string(row))
	}
	return labels
}

// ParseSeatID validates a seat label like "A1" or "F12" and returns its row
// and column
func ParseSeatID(seatID string) (row rune, column int, err error) {
	if len(seatID) < 2 {
		return 0, 0, fmt.Errorf("invalid seat id %q", seatID)
	}

	row = rune(seatID[0])
	if row < FirstRow || row > LastRow {
		return 0, 0, fmt.Errorf("invalid seat row in %q", seatID)
	}

	column, err = strconv.Atoi(seatID[1:])
	if err != nil || column < 1 || column > SeatsPerRow {
		return 0, 0, fmt.Errorf("invalid seat column in %q", seatID)
	}

	return row, column, nil
}

// TierFor returns the pricing tier of a seat. Callers must pass a valid seat
// id.
func TierFor(seatID string) Tier {
	if rune(seatID[0]) <= LastPremiumRow {
		return TierPremium
	}
	return TierStandard
}

// BasePrice returns the tier price before the theatre multiplier
func BasePrice(tier Tier) int {
	if tier == TierPremium {
		return PremiumBasePrice
	}
	return StandardBasePrice
}

// Generate synthesizes the full seat map for one screening. booked holds the
// seat ids with persisted booked status; everything else is available.
func Generate(booked map[string]bool, multiplier float64) []SeatView {
	grid := make([]SeatView, 0, int(LastRow-FirstRow+1)*SeatsPerRow)

	for row := FirstRow; row <= LastRow; row++ {
		for column := 1; column <= SeatsPerRow; column++ {
			seatID := fmt.Sprintf("%c%d", row, column)
			tier := TierFor(seatID)

			status := StatusAvailable
			if booked[seatID] {
				status = StatusBooked
			}

			price, _ := UnitPrice(seatID, multiplier)

			grid = append(grid, SeatView{
				SeatID: seatID,
				Row:    string(row),
				Column: column,
				Tier:   tier,
				Price:  price,
				Status: status,
				Aisle:  column == AisleAfterColumn,
			})
		}
	}

	return grid
}
