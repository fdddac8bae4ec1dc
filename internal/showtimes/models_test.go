package showtimes

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceIDRoundTrip(t *testing.T) {
	original := InstanceID{
		MovieID:   uuid.New(),
		TheatreID: uuid.New(),
		Date:      "2026-09-01",
		Time:      "18:45",
	}

	parsed, err := ParseInstanceID(original.String())
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestParseInstanceIDRejectsMalformedKeys(t *testing.T) {
	movieID := uuid.New()
	theatreID := uuid.New()

	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"too few parts", fmt.Sprintf("%s:%s:2026-09-01", movieID, theatreID)},
		{"missing time colon", fmt.Sprintf("%s:%s:2026-09-01:1845", movieID, theatreID)},
		{"bad movie id", fmt.Sprintf("not-a-uuid:%s:2026-09-01:18:45", theatreID)},
		{"bad theatre id", fmt.Sprintf("%s:not-a-uuid:2026-09-01:18:45", movieID)},
		{"bad date", fmt.Sprintf("%s:%s:tomorrow:18:45", movieID, theatreID)},
		{"bad time", fmt.Sprintf("%s:%s:2026-09-01:25:99", movieID, theatreID)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInstanceID(tt.key)
			assert.Error(t, err)
		})
	}
}

func TestInstanceIDValidate(t *testing.T) {
	id := InstanceID{Date: "2026-09-01", Time: "09:05"}
	assert.NoError(t, id.Validate())

	id.Time = "9:5"
	assert.Error(t, id.Validate())

	id = InstanceID{Date: "09/01/2026", Time: "09:05"}
	assert.Error(t, id.Validate())
}

func TestInstanceIDStartsAt(t *testing.T) {
	id := InstanceID{Date: "2026-09-01", Time: "18:45"}

	startsAt, err := id.StartsAt()
	require.NoError(t, err)

	want := time.Date(2026, 9, 1, 18, 45, 0, 0, time.Local)
	assert.True(t, startsAt.Equal(want))
}
