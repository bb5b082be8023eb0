package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-widget/internal/i18n"
	"github.com/smokyabdulrahman/prayer-widget/internal/prayer"
)

func (a *app) newNextCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next event with countdown",
		Long: "Display the next upcoming event, including midnight and the last third of the night, with a countdown.\n" +
			"Suitable for status bars such as tmux.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runNext(cmd, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", prayer.FormatFull, "Display format: time-remaining, next-prayer-time, name-and-time, name-and-remaining, short-name-and-time, short-name-and-remaining, full, countdown, or a custom Go template")

	return cmd
}

func (a *app) runNext(cmd *cobra.Command, format string) error {
	cfg, snap, err := a.load(cmd)
	if err != nil {
		return err
	}

	lang := cfg.LangOrDefault()
	now := a.env.now().In(snap.TZ)
	cd := snap.Countdown(now)

	if a.flags.JSON {
		return writeJSON(cmd.OutOrStdout(), todayJSONNext{
			Prayer:    jsonKey(cd.Event.Name),
			Label:     i18n.PrayerName(lang, cd.Event.Name),
			Time:      cd.Event.Time.Format(goTimeFormat(cfg)),
			Remaining: prayer.FormatRemaining(cd.Remaining),
			Countdown: cd.String(),
		})
	}

	label := i18n.PrayerName(lang, cd.Event.Name)
	_, err = fmt.Fprint(cmd.OutOrStdout(), prayer.FormatOutput(cd.Event, label, now, format, goTimeFormat(cfg)))
	return err
}
