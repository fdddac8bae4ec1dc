package seats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitPrice(t *testing.T) {
	tests := []struct {
		name       string
		seatID     string
		multiplier float64
		want       int
	}{
		{"premium base", "A1", 1.0, 350},
		{"standard base", "F3", 1.0, 250},
		{"premium city plex", "A1", 1.2, 420},
		{"standard city plex", "F3", 1.2, 300},
		{"premium imax", "C7", 1.5, 525},
		{"standard imax", "H12", 1.5, 375},
		// 350*1.15 and 250*1.15 both land on an exact half, but the float
		// products evaluate fractionally below it; half-up must still win
		{"rounds half up premium", "A1", 1.15, 403}, // 402.5 -> 403
		{"rounds half up standard", "F3", 1.15, 288}, // 287.5 -> 288
		{"rounds down below half", "A1", 1.149, 402}, // 402.15 -> 402
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := UnitPrice(tt.seatID, tt.multiplier)
			require.NoError(t, err)
			assert.Equal(t, tt.want, price)
		})
	}
}

func TestUnitPriceInvalidSeat(t *testing.T) {
	_, err := UnitPrice("Z9", 1.0)
	assert.Error(t, err)
}

func TestTotal(t *testing.T) {
	// Each seat is rounded before summation: 350*1.2=420, 250*1.2=300
	total, err := Total([]string{"A1", "F3"}, 1.2)
	require.NoError(t, err)
	assert.Equal(t, 720, total)
}

func TestTotalRoundsPerSeat(t *testing.T) {
	// 350*1.15 = 402.5 -> 403 each; the sum of rounded prices, not the
	// rounded sum
	total, err := Total([]string{"A1", "B1"}, 1.15)
	require.NoError(t, err)
	assert.Equal(t, 806, total)
}

func TestTotalEmptySelection(t *testing.T) {
	total, err := Total(nil, 1.5)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestTotalInvalidSeat(t *testing.T) {
	_, err := Total([]string{"A1", "bogus"}, 1.0)
	assert.Error(t, err)
}
