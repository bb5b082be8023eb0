package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-widget/internal/config"
	"github.com/smokyabdulrahman/prayer-widget/internal/display"
	"github.com/smokyabdulrahman/prayer-widget/internal/i18n"
	"github.com/smokyabdulrahman/prayer-widget/internal/prayer"
	"github.com/smokyabdulrahman/prayer-widget/internal/snapshot"
)

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [days]",
		Short: "Show prayer times for multiple days",
		Long:  "Display a grid of prayer times for N days (default: 7).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days := 7
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("invalid number of days: %q (must be a positive integer)", args[0])
				}
				days = n
			}
			return a.runList(cmd, days)
		},
	}
}

func (a *app) newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show prayer times for the next 7 days",
		Long:  "Alias for 'list 7'. Display a grid of prayer times for 7 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd, 7)
		},
	}
}

func (a *app) newMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Show prayer times for the next 30 days",
		Long:  "Alias for 'list 30'. Display a grid of prayer times for 30 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd, 30)
		},
	}
}

// calendarView is a resolved multi-day result.
type calendarView struct {
	cfg  *config.Config
	loc  snapshot.Location
	tz   *time.Location
	now  time.Time
	days []snapshot.Day
}

// calendar resolves the location and fetches `days` days starting today.
func (a *app) calendar(cmd *cobra.Command, days int) (*calendarView, error) {
	cfg, err := a.effectiveConfig(cmd)
	if err != nil {
		return nil, err
	}
	loader := a.loader(cmd, cfg)
	req := a.request(cfg)

	loc, err := loader.Resolve(cmd.Context(), req)
	if err != nil {
		return nil, err
	}
	if loc.Fallback {
		fmt.Fprintln(cmd.ErrOrStderr(), display.Warn(fallbackWarning))
	}

	now := req.Now
	if loc.Timezone != "" {
		if tz, err := time.LoadLocation(loc.Timezone); err == nil {
			now = now.In(tz)
		}
	}

	list, err := loader.Calendar(cmd.Context(), now, days, loc, req.Method, req.School)
	if err != nil {
		return nil, err
	}

	name := loc.Timezone
	if name == "" {
		name = list[0].Data.Meta.Timezone
	}
	tz, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}

	return &calendarView{cfg: cfg, loc: loc, tz: tz, now: now.In(tz), days: list}, nil
}

// dateIn returns d's calendar date at 00:00 in tz.
func dateIn(d time.Time, tz *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, tz)
}

func (v *calendarView) isToday(d time.Time) bool {
	return d.Format("2006-01-02") == v.now.Format("2006-01-02")
}

func (v *calendarView) locationJSON() todayJSONLocation {
	meta := v.days[0].Data.Meta
	return todayJSONLocation{
		City:      v.loc.City,
		Country:   v.loc.Country,
		Timezone:  v.tz.String(),
		Latitude:  meta.Latitude,
		Longitude: meta.Longitude,
	}
}

func (a *app) runList(cmd *cobra.Command, days int) error {
	v, err := a.calendar(cmd, days)
	if err != nil {
		return err
	}

	selected := selectedPrayers(v.cfg)
	goTimeFmt := goTimeFormat(v.cfg)
	lang := v.cfg.LangOrDefault()
	out := cmd.OutOrStdout()

	if a.flags.JSON {
		return printListJSON(out, v, selected, goTimeFmt)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", display.Bold(i18n.T(lang, i18n.KeyDays, i18n.T(lang, i18n.KeyTitle), days)))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", locationLine(lang, v.loc, v.days[0].Data.Meta))
	fmt.Fprintln(out)

	headers := []string{i18n.T(lang, i18n.KeyDate)}
	for _, name := range selected {
		headers = append(headers, i18n.PrayerName(lang, name))
	}
	tbl := display.NewTable(headers)
	tbl.SetRTL(lang.RTL())

	for i, d := range v.days {
		date := dateIn(d.Date, v.tz)
		parsed, err := prayer.ParseTimings(d.Data.Timings, date, v.tz, selected)
		if err != nil {
			return err
		}

		row := []string{i18n.ShortDate(lang, date)}
		for _, p := range parsed {
			row = append(row, p.Time.Format(goTimeFmt))
		}
		tbl.AddRow(row)

		if v.isToday(date) {
			tbl.SetHighlightRow(i)
		}
	}

	fmt.Fprint(out, tbl.Render())
	fmt.Fprintln(out)
	return nil
}

// listJSONOutput is the JSON structure for the list command.
type listJSONOutput struct {
	Location todayJSONLocation `json:"location"`
	Days     []listJSONDay     `json:"days"`
}

type listJSONDay struct {
	Date    string            `json:"date"`
	Hijri   string            `json:"hijri"`
	Timings map[string]string `json:"timings"`
}

func printListJSON(w io.Writer, v *calendarView, selected []string, goTimeFmt string) error {
	out := listJSONOutput{Location: v.locationJSON()}

	for _, d := range v.days {
		date := dateIn(d.Date, v.tz)
		parsed, err := prayer.ParseTimings(d.Data.Timings, date, v.tz, selected)
		if err != nil {
			return err
		}

		timings := make(map[string]string, len(parsed))
		for _, p := range parsed {
			timings[jsonKey(p.Name)] = p.Time.Format(goTimeFmt)
		}

		out.Days = append(out.Days, listJSONDay{
			Date:    date.Format("2006-01-02"),
			Hijri:   d.Data.Date.Hijri.Format(),
			Timings: timings,
		})
	}

	return writeJSON(w, out)
}
