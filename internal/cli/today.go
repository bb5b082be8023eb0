package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-widget/internal/display"
	"github.com/smokyabdulrahman/prayer-widget/internal/i18n"
	"github.com/smokyabdulrahman/prayer-widget/internal/prayer"
	"github.com/smokyabdulrahman/prayer-widget/internal/snapshot"
)

func (a *app) runToday(cmd *cobra.Command, args []string) error {
	cfg, snap, err := a.load(cmd)
	if err != nil {
		return err
	}

	lang := cfg.LangOrDefault()
	goTimeFmt := goTimeFormat(cfg)
	now := a.env.now().In(snap.TZ)

	prayers, err := prayer.ParseTimings(snap.Today.Timings, snap.Day, snap.TZ, selectedPrayers(cfg))
	if err != nil {
		return err
	}
	night, start := snap.Tonight(now)
	mid, last := night.At(start, snap.TZ)
	rows := append(append([]prayer.Prayer{}, prayers...), mid, last)

	cd := snap.Countdown(now)
	out := cmd.OutOrStdout()

	if a.flags.JSON {
		return printTodayJSON(out, lang, snap, prayers, cd, now, goTimeFmt)
	}

	printTodayRich(out, lang, snap, rows, cd, now, goTimeFmt)
	return nil
}

// printTodayRich renders the colored terminal output for today's schedule.
func printTodayRich(w io.Writer, lang i18n.Lang, snap *snapshot.Snapshot, rows []prayer.Prayer, cd prayer.Countdown, now time.Time, goTimeFmt string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold(i18n.T(lang, i18n.KeyTitle)))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s\n", locationLine(lang, snap.Location, snap.Today.Meta))
	fmt.Fprintf(w, "  %s\n", display.Gray(snap.TZ.String()))
	fmt.Fprintf(w, "  %s\n", i18n.Gregorian(lang, now))
	if h := i18n.Hijri(lang, snap.Today.Date.Hijri); h != "" {
		fmt.Fprintf(w, "  %s\n", h)
	}
	fmt.Fprintln(w)

	tbl := display.NewTable([]string{i18n.T(lang, i18n.KeyPrayer), i18n.T(lang, i18n.KeyTime)})
	tbl.SetRTL(lang.RTL())
	for i, p := range rows {
		tbl.AddRow([]string{eventLabel(lang, p.Name), p.Time.Format(goTimeFmt)})
		if p.Name == cd.Event.Name && p.Time.Equal(cd.Event.Time) {
			tbl.SetHighlightRow(i)
		}
	}
	fmt.Fprint(w, tbl.Render())

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s  %s\n", display.Highlight(i18n.NextLabel(lang, cd.Event.Name)), display.Bold(cd.String()))
	fmt.Fprintln(w)
}

// eventLabel names a row; the last third uses the "beginning of" wording.
func eventLabel(lang i18n.Lang, name string) string {
	if name == prayer.LastThird {
		return i18n.T(lang, i18n.KeyLastThirdOpen)
	}
	return i18n.PrayerName(lang, name)
}

// jsonKey is the lower-case key used in JSON output.
func jsonKey(name string) string {
	if name == prayer.LastThird {
		return "last_third"
	}
	return strings.ToLower(name)
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	Location todayJSONLocation `json:"location"`
	Date     todayJSONDate     `json:"date"`
	Method   int               `json:"method"`
	Timings  map[string]string `json:"timings"`
	Night    nightJSON         `json:"night"`
	Current  string            `json:"current"`
	Next     todayJSONNext     `json:"next"`
}

type todayJSONLocation struct {
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
	Timezone  string  `json:"timezone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type todayJSONDate struct {
	Gregorian string `json:"gregorian"`
	Hijri     string `json:"hijri"`
}

type todayJSONNext struct {
	Prayer    string `json:"prayer"`
	Label     string `json:"label"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
	Countdown string `json:"countdown"`
}

func newLocationJSON(snap *snapshot.Snapshot) todayJSONLocation {
	return todayJSONLocation{
		City:      snap.Location.City,
		Country:   snap.Location.Country,
		Timezone:  snap.TZ.String(),
		Latitude:  snap.Today.Meta.Latitude,
		Longitude: snap.Today.Meta.Longitude,
	}
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(w io.Writer, lang i18n.Lang, snap *snapshot.Snapshot, prayers []prayer.Prayer, cd prayer.Countdown, now time.Time, goTimeFmt string) error {
	timings := make(map[string]string, len(prayers))
	for _, p := range prayers {
		timings[jsonKey(p.Name)] = p.Time.Format(goTimeFmt)
	}

	out := todayJSON{
		Location: newLocationJSON(snap),
		Date: todayJSONDate{
			Gregorian: i18n.Gregorian(lang, now),
			Hijri:     i18n.Hijri(lang, snap.Today.Date.Hijri),
		},
		Method:  snap.Method,
		Timings: timings,
		Night:   newNightJSON(snap, now, goTimeFmt),
		Next: todayJSONNext{
			Prayer:    jsonKey(cd.Event.Name),
			Label:     i18n.PrayerName(lang, cd.Event.Name),
			Time:      cd.Event.Time.Format(goTimeFmt),
			Remaining: prayer.FormatRemaining(cd.Remaining),
			Countdown: cd.String(),
		},
	}
	if current := prayer.CurrentPrayer(snap.Schedule.Events, now); current != nil {
		out.Current = jsonKey(current.Name)
	}

	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
