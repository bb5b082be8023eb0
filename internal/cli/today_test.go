package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokyabdulrahman/prayer-widget/internal/api"
	"github.com/smokyabdulrahman/prayer-widget/internal/config"
	"github.com/smokyabdulrahman/prayer-widget/internal/i18n"
	"github.com/smokyabdulrahman/prayer-widget/internal/prayer"
	"github.com/smokyabdulrahman/prayer-widget/internal/snapshot"
)

func TestToday_JSON(t *testing.T) {
	r := execute(t, makkahArgs("--json", "--lang", "en")...)
	require.NoError(t, r.err)

	var got todayJSON
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))

	want := todayJSON{
		Location: todayJSONLocation{Timezone: "Asia/Riyadh", Latitude: 21.4225, Longitude: 39.8262},
		Date: todayJSONDate{
			Gregorian: "Monday, October 19, 2026",
			Hijri:     "Al Athnayn, 08 Jumādá al-ūlá 1448",
		},
		Method: 4,
		Timings: map[string]string{
			"fajr": "05:04", "sunrise": "06:19", "dhuhr": "12:04",
			"asr": "15:23", "maghrib": "17:49", "isha": "19:19",
		},
		Night: nightJSON{
			Maghrib: "17:49", Fajr: "05:05",
			Midnight: "23:27", LastThird: "01:19",
			Length: "11h 16m", LengthMinutes: 676,
		},
		Current: "sunrise",
		Next: todayJSONNext{
			Prayer: "dhuhr", Label: "Dhuhr", Time: "12:04",
			Remaining: "4m", Countdown: "0:04:00",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("today --json mismatch (-want +got):\n%s", diff)
	}
}

func TestToday_RichEnglish(t *testing.T) {
	r := execute(t, makkahArgs("--lang", "en")...)
	require.NoError(t, r.err)

	for _, want := range []string{
		"Prayer Times",
		"Asia/Riyadh",
		"Monday, October 19, 2026",
		"Al Athnayn, 08 Jumādá al-ūlá 1448",
		"Fajr", "05:04", "Midnight", "23:27", "Last Third", "01:19",
		"Next: Dhuhr  0:04:00",
	} {
		assert.Contains(t, r.stdout, want)
	}
	// Coordinates without a city are shown as numbers.
	assert.Contains(t, r.stdout, "21.4225, 39.8262")
}

func TestToday_RichArabicIsRightToLeft(t *testing.T) {
	r := execute(t, makkahArgs()...)
	require.NoError(t, r.err)

	assert.Contains(t, r.stdout, "مواقيت الصلاة")
	assert.Contains(t, r.stdout, "الاثنين، ١٩ أكتوبر ٢٠٢٦")
	assert.Contains(t, r.stdout, "الحدث القادم: الظهر")
	assert.Contains(t, r.stdout, "بداية الثلث الأخير")

	// Times sit in the left column, names on the right.
	var fajr string
	for _, line := range strings.Split(r.stdout, "\n") {
		if strings.Contains(line, "الفجر") {
			fajr = line
		}
	}
	require.NotEmpty(t, fajr)
	assert.Less(t, strings.Index(fajr, "05:04"), strings.Index(fajr, "الفجر"))
}

func TestToday_FallbackLocationWarns(t *testing.T) {
	r := execute(t, "--json")
	require.NoError(t, r.err)

	assert.Contains(t, r.stderr, "location detection failed, using Makkah")

	var got todayJSON
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
	assert.Equal(t, "Asia/Riyadh", got.Location.Timezone)
	assert.Equal(t, "Makkah", got.Location.City)
}

func TestToday_TwelveHour(t *testing.T) {
	r := execute(t, makkahArgs("--json", "--time-format", "12h")...)
	require.NoError(t, r.err)

	var got todayJSON
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
	assert.Equal(t, "5:49 PM", got.Timings["maghrib"])
	assert.Equal(t, "11:27 PM", got.Night.Midnight)
	assert.Equal(t, "1:19 AM", got.Night.LastThird)
}

func TestLocationLine(t *testing.T) {
	meta := api.Meta{Latitude: 24.7136, Longitude: 46.6753}

	assert.Equal(t, "Riyadh, Saudi Arabia",
		locationLine(i18n.English, snapshot.Location{City: "Riyadh", Country: "Saudi Arabia"}, meta))
	assert.Equal(t, "الرياض، السعودية",
		locationLine(i18n.Arabic, snapshot.Location{City: "الرياض", Country: "السعودية"}, meta))
	assert.Equal(t, "24.7136, 46.6753",
		locationLine(i18n.English, snapshot.Location{}, meta))
}

func TestEventLabel(t *testing.T) {
	assert.Equal(t, "بداية الثلث الأخير", eventLabel(i18n.Arabic, prayer.LastThird))
	assert.Equal(t, "منتصف الليل", eventLabel(i18n.Arabic, prayer.Midnight))
	assert.Equal(t, "Asr", eventLabel(i18n.English, "Asr"))
}

func TestJSONKey(t *testing.T) {
	assert.Equal(t, "last_third", jsonKey(prayer.LastThird))
	assert.Equal(t, "midnight", jsonKey(prayer.Midnight))
	assert.Equal(t, "fajr", jsonKey("Fajr"))
}

func TestSelectedPrayers(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, prayer.DefaultPrayerNames, selectedPrayers(cfg))

	cfg.Prayers = "Fajr, Isha"
	assert.Equal(t, []string{"Fajr", "Isha"}, selectedPrayers(cfg))
}
