package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-widget/internal/display"
	"github.com/smokyabdulrahman/prayer-widget/internal/i18n"
	"github.com/smokyabdulrahman/prayer-widget/internal/prayer"
	"github.com/smokyabdulrahman/prayer-widget/internal/snapshot"
)

func (a *app) newNightCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "night",
		Short: "Show midnight and the last third of tonight",
		Long: "Derive tonight's midnight and the beginning of its last third from today's Maghrib\n" +
			"and tomorrow's Fajr. Before Fajr the night that is still running is shown.",
		Args: cobra.NoArgs,
		RunE: a.runNight,
	}
}

// nightJSON is the JSON shape of the night events.
type nightJSON struct {
	Maghrib       string  `json:"maghrib"`
	Fajr          string  `json:"fajr"`
	Midnight      string  `json:"midnight"`
	LastThird     string  `json:"last_third"`
	Length        string  `json:"length"`
	LengthMinutes float64 `json:"length_minutes"`
}

func newNightJSON(snap *snapshot.Snapshot, now time.Time, goTimeFmt string) nightJSON {
	night, start := snap.Tonight(now)
	mid, last := night.At(start, snap.TZ)
	return nightJSON{
		Maghrib:       minutesAt(start, night.Maghrib).Format(goTimeFmt),
		Fajr:          minutesAt(start, night.Fajr).Format(goTimeFmt),
		Midnight:      mid.Time.Format(goTimeFmt),
		LastThird:     last.Time.Format(goTimeFmt),
		Length:        nightLength(night),
		LengthMinutes: night.Length,
	}
}

func minutesAt(day time.Time, m int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, m, 0, 0, day.Location())
}

// nightLength renders the night span as "11h 16m".
func nightLength(n prayer.Night) string {
	return prayer.FormatRemaining(time.Duration(n.Length) * time.Minute)
}

func (a *app) runNight(cmd *cobra.Command, args []string) error {
	cfg, snap, err := a.load(cmd)
	if err != nil {
		return err
	}

	goTimeFmt := goTimeFormat(cfg)
	now := a.env.now().In(snap.TZ)
	out := cmd.OutOrStdout()
	if a.flags.JSON {
		return writeJSON(out, newNightJSON(snap, now, goTimeFmt))
	}

	lang := cfg.LangOrDefault()
	night, start := snap.Tonight(now)
	mid, last := night.At(start, snap.TZ)

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", display.Bold(i18n.T(lang, i18n.KeyNight)))
	fmt.Fprintf(out, "  %s\n", locationLine(lang, snap.Location, snap.Today.Meta))
	fmt.Fprintln(out)

	tbl := display.NewTable([]string{i18n.T(lang, i18n.KeyPrayer), i18n.T(lang, i18n.KeyTime), ""})
	tbl.SetRTL(lang.RTL())
	for i, p := range []prayer.Prayer{mid, last} {
		in := ""
		if p.Time.After(now) {
			in = i18n.T(lang, i18n.KeyIn, prayer.FormatRemaining(p.Time.Sub(now)))
		}
		tbl.AddRow([]string{eventLabel(lang, p.Name), p.Time.Format(goTimeFmt), in})
		if cd := snap.Countdown(now); cd.Event.Name == p.Name && cd.Event.Time.Equal(p.Time) {
			tbl.SetHighlightRow(i)
		}
	}
	fmt.Fprint(out, tbl.Render())
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", display.Gray(i18n.T(lang, i18n.KeyNightLength, nightLength(night))))
	fmt.Fprintln(out)
	return nil
}
