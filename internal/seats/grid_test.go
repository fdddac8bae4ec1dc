package seats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowLabels(t *testing.T) {
	labels := RowLabels()

	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G", "H"}, labels)
}

func TestParseSeatID(t *testing.T) {
	tests := []struct {
		seatID  string
		row     rune
		column  int
		wantErr bool
	}{
		{"A1", 'A', 1, false},
		{"D6", 'D', 6, false},
		{"H12", 'H', 12, false},
		{"A0", 0, 0, true},
		{"A13", 0, 0, true},
		{"I1", 0, 0, true},
		{"a1", 0, 0, true},
		{"A", 0, 0, true},
		{"", 0, 0, true},
		{"1A", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.seatID, func(t *testing.T) {
			row, column, err := ParseSeatID(tt.seatID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.row, row)
			assert.Equal(t, tt.column, column)
		})
	}
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, TierPremium, TierFor("A1"))
	assert.Equal(t, TierPremium, TierFor("D12"))
	assert.Equal(t, TierStandard, TierFor("E1"))
	assert.Equal(t, TierStandard, TierFor("H12"))
}

func TestBasePrice(t *testing.T) {
	assert.Equal(t, 350, BasePrice(TierPremium))
	assert.Equal(t, 250, BasePrice(TierStandard))
}

func TestGenerate(t *testing.T) {
	booked := map[string]bool{"A1": true, "F3": true}
	grid := Generate(booked, 1.0)

	require.Len(t, grid, 96)

	byID := make(map[string]SeatView, len(grid))
	for _, seat := range grid {
		byID[seat.SeatID] = seat
	}

	assert.Equal(t, StatusBooked, byID["A1"].Status)
	assert.Equal(t, StatusBooked, byID["F3"].Status)
	assert.Equal(t, StatusAvailable, byID["A2"].Status)

	assert.Equal(t, TierPremium, byID["D12"].Tier)
	assert.Equal(t, 350, byID["D12"].Price)
	assert.Equal(t, TierStandard, byID["E1"].Tier)
	assert.Equal(t, 250, byID["E1"].Price)

	// Aisle marker sits on column 6 in every row
	assert.True(t, byID["A6"].Aisle)
	assert.True(t, byID["H6"].Aisle)
	assert.False(t, byID["A7"].Aisle)
	assert.False(t, byID["A5"].Aisle)
}

func TestGenerateAppliesMultiplier(t *testing.T) {
	grid := Generate(nil, 1.5)

	byID := make(map[string]SeatView, len(grid))
	for _, seat := range grid {
		byID[seat.SeatID] = seat
	}

	assert.Equal(t, 525, byID["B4"].Price)
	assert.Equal(t, 375, byID["G9"].Price)
}
