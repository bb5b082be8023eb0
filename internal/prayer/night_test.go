package prayer

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNightTimes(t *testing.T) {
	tests := []struct {
		name          string
		maghrib, fajr string
		wantLength    float64
		wantMidnight  string
		wantLastThird string
	}{
		{"makkah october", "17:49", "05:04", 675, "23:26", "01:19"},
		{"round numbers", "18:30", "04:30", 600, "23:30", "01:10"},
		{"short summer night", "21:30", "02:30", 300, "00:00", "00:50"},
		{"timezone suffix", "17:49 (+03)", "05:04 (+03)", 675, "23:26", "01:19"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NightTimes(tt.maghrib, tt.fajr)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLength, n.Length)
			assert.Equal(t, tt.wantMidnight, FormatMinutes(n.Midnight))
			assert.Equal(t, tt.wantLastThird, FormatMinutes(n.LastThird))
		})
	}
}

func TestNightTimes_FractionalMidnightFloors(t *testing.T) {
	n, err := NightTimes("17:49", "05:04")
	require.NoError(t, err)
	assert.Equal(t, 1406.5, n.Midnight)
	assert.Equal(t, "23:26", FormatMinutes(n.Midnight))
}

func TestNightTimes_InvalidInput(t *testing.T) {
	_, err := NightTimes("sunset", "05:04")
	assert.ErrorContains(t, err, "maghrib")

	_, err = NightTimes("17:49", "")
	assert.ErrorContains(t, err, "fajr")
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "00:00", FormatMinutes(0))
	assert.Equal(t, "23:59", FormatMinutes(1439.99))
	assert.Equal(t, "00:00", FormatMinutes(1440))
	assert.Equal(t, "01:19", FormatMinutes(1519))
}

func TestNight_AtPlacesPostMidnightOnNextDay(t *testing.T) {
	n, err := NightTimes("18:30", "04:30")
	require.NoError(t, err)

	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	mid, last := n.At(day, time.UTC)

	want := []Prayer{
		{Name: Midnight, Time: time.Date(2026, 10, 19, 23, 30, 0, 0, time.UTC)},
		{Name: LastThird, Time: time.Date(2026, 10, 20, 1, 10, 0, 0, time.UTC)},
	}
	if diff := cmp.Diff(want, []Prayer{mid, last}); diff != "" {
		t.Errorf("Night.At mismatch (-want +got):\n%s", diff)
	}
}
