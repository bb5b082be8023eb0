package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-widget/internal/display"
	"github.com/smokyabdulrahman/prayer-widget/internal/i18n"
	"github.com/smokyabdulrahman/prayer-widget/internal/prayer"
)

func (a *app) newQueryCmd() *cobra.Command {
	var days string

	cmd := &cobra.Command{
		Use:   "query <prayer>",
		Short: "Query a specific prayer time",
		Long: "Query a specific prayer time for today, or across multiple days with --days.\n\n" +
			"Valid prayer names: " + strings.Join(prayer.AllPrayerNames, ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := normalizePrayer(args[0])
			if err != nil {
				return err
			}
			n, err := parseDays(days)
			if err != nil {
				return err
			}
			if n == 1 {
				return a.runQueryToday(cmd, name)
			}
			return a.runQueryDays(cmd, name, n)
		},
	}

	cmd.Flags().StringVar(&days, "days", "", "Number of days to show (or 'week'/'month')")

	return cmd
}

// normalizePrayer matches name case-insensitively against the API's names.
func normalizePrayer(name string) (string, error) {
	for _, n := range prayer.AllPrayerNames {
		if strings.EqualFold(n, name) {
			return n, nil
		}
	}
	return "", fmt.Errorf("unknown prayer %q; valid names: %s", name, strings.Join(prayer.AllPrayerNames, ", "))
}

func parseDays(s string) (int, error) {
	switch s {
	case "":
		return 1, nil
	case "week":
		return 7, nil
	case "month":
		return 30, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid --days value %q: must be a positive integer, 'week', or 'month'", s)
	}
	return n, nil
}

type queryJSONSingle struct {
	Prayer string `json:"prayer"`
	Time   string `json:"time"`
	Date   string `json:"date"`
	Hijri  string `json:"hijri"`
}

func (a *app) runQueryToday(cmd *cobra.Command, name string) error {
	cfg, snap, err := a.load(cmd)
	if err != nil {
		return err
	}

	parsed, err := prayer.ParseTimings(snap.Today.Timings, snap.Day, snap.TZ, []string{name})
	if err != nil {
		return err
	}
	if len(parsed) == 0 {
		return fmt.Errorf("no timing found for %s", name)
	}
	timeStr := parsed[0].Time.Format(goTimeFormat(cfg))

	if a.flags.JSON {
		return writeJSON(cmd.OutOrStdout(), queryJSONSingle{
			Prayer: jsonKey(name),
			Time:   timeStr,
			Date:   snap.Day.Format("2006-01-02"),
			Hijri:  snap.Today.Date.Hijri.Format(),
		})
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", i18n.PrayerName(cfg.LangOrDefault(), name), timeStr)
	return err
}

type queryJSONMulti struct {
	Location todayJSONLocation `json:"location"`
	Prayer   string            `json:"prayer"`
	Days     []queryJSONDay    `json:"days"`
}

type queryJSONDay struct {
	Date  string `json:"date"`
	Hijri string `json:"hijri"`
	Time  string `json:"time"`
}

func (a *app) runQueryDays(cmd *cobra.Command, name string, days int) error {
	v, err := a.calendar(cmd, days)
	if err != nil {
		return err
	}

	goTimeFmt := goTimeFormat(v.cfg)
	lang := v.cfg.LangOrDefault()
	out := cmd.OutOrStdout()

	times := make([]string, len(v.days))
	for i, d := range v.days {
		parsed, err := prayer.ParseTimings(d.Data.Timings, dateIn(d.Date, v.tz), v.tz, []string{name})
		if err != nil {
			return err
		}
		if len(parsed) > 0 {
			times[i] = parsed[0].Time.Format(goTimeFmt)
		}
	}

	if a.flags.JSON {
		return printQueryJSON(out, v, name, times)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", display.Bold(i18n.T(lang, i18n.KeyDays, i18n.PrayerName(lang, name), days)))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", locationLine(lang, v.loc, v.days[0].Data.Meta))
	fmt.Fprintln(out)

	tbl := display.NewTable([]string{i18n.T(lang, i18n.KeyDate), i18n.PrayerName(lang, name)})
	tbl.SetRTL(lang.RTL())
	for i, d := range v.days {
		date := dateIn(d.Date, v.tz)
		tbl.AddRow([]string{i18n.ShortDate(lang, date), times[i]})
		if v.isToday(date) {
			tbl.SetHighlightRow(i)
		}
	}

	fmt.Fprint(out, tbl.Render())
	fmt.Fprintln(out)
	return nil
}

func printQueryJSON(w io.Writer, v *calendarView, name string, times []string) error {
	out := queryJSONMulti{
		Location: v.locationJSON(),
		Prayer:   jsonKey(name),
	}
	for i, d := range v.days {
		out.Days = append(out.Days, queryJSONDay{
			Date:  dateIn(d.Date, v.tz).Format("2006-01-02"),
			Hijri: d.Data.Date.Hijri.Format(),
			Time:  times[i],
		})
	}
	return writeJSON(w, out)
}
