package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/smokyabdulrahman/prayer-widget/internal/api"
	"github.com/smokyabdulrahman/prayer-widget/internal/cache"
	"github.com/smokyabdulrahman/prayer-widget/internal/config"
	"github.com/smokyabdulrahman/prayer-widget/internal/display"
	"github.com/smokyabdulrahman/prayer-widget/internal/i18n"
	"github.com/smokyabdulrahman/prayer-widget/internal/logging"
	"github.com/smokyabdulrahman/prayer-widget/internal/prayer"
	"github.com/smokyabdulrahman/prayer-widget/internal/snapshot"
)

// globalFlags are shared across all subcommands.
type globalFlags struct {
	City       string
	Country    string
	Latitude   float64
	Longitude  float64
	Method     int
	School     int
	Lang       string
	JSON       bool
	CacheDir   string
	TimeFormat string
	Verbose    bool
}

// env holds the collaborators tests replace.
type env struct {
	apiURL string
	geo    snapshot.Locator
	now    func() time.Time
}

// app is the state shared by the commands of one invocation.
type app struct {
	flags globalFlags
	// cfg is the config file as loaded during PersistentPreRunE.
	cfg    *config.Config
	logger *zap.Logger
	env    env
}

// NewRootCmd creates the root command for the prayer-widget CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	return newRootCmd(version, env{})
}

func newRootCmd(version string, e env) *cobra.Command {
	if e.now == nil {
		e.now = time.Now
	}
	a := &app{env: e}

	rootCmd := &cobra.Command{
		Use:   "prayer-widget",
		Short: "Bilingual Islamic prayer times with a live countdown",
		Long: "Prayer times for your location in Arabic or English, powered by the Al Adhan API.\n" +
			"Shows the six daily times, midnight and the last third of the night, and counts down to the next event.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a.cfg = cfg

			logger, err := logging.New(logging.Options{Verbose: a.flags.Verbose})
			if err != nil {
				return err
			}
			a.logger = logger

			if a.flags.JSON {
				display.SetEnabled(false)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		// Default action: show today's prayer schedule.
		RunE:          a.runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(PrintVersion(version))

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.flags.City, "city", "", "Override city (takes precedence over config)")
	pf.StringVar(&a.flags.Country, "country", "", "Override country")
	pf.Float64Var(&a.flags.Latitude, "latitude", 0, "Override latitude")
	pf.Float64Var(&a.flags.Longitude, "longitude", 0, "Override longitude")
	pf.IntVar(&a.flags.Method, "method", -1, "Override calculation method (0-23, 99)")
	pf.IntVar(&a.flags.School, "school", -1, "Override school (0=Shafi, 1=Hanafi)")
	pf.StringVar(&a.flags.Lang, "lang", "", "Display language: ar or en (overrides config)")
	pf.BoolVar(&a.flags.JSON, "json", false, "Output as JSON (where supported)")
	pf.StringVar(&a.flags.CacheDir, "cache-dir", "", "Cache directory (default: ~/.cache/prayer-widget/)")
	pf.StringVar(&a.flags.TimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")
	pf.BoolVarP(&a.flags.Verbose, "verbose", "v", false, "Log diagnostics to stderr")

	rootCmd.AddCommand(a.newWidgetCmd())
	rootCmd.AddCommand(a.newNextCmd())
	rootCmd.AddCommand(a.newNightCmd())
	rootCmd.AddCommand(a.newListCmd())
	rootCmd.AddCommand(a.newWeekCmd())
	rootCmd.AddCommand(a.newMonthCmd())
	rootCmd.AddCommand(a.newQueryCmd())
	rootCmd.AddCommand(a.newMethodsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// PrintVersion prints the version string in the expected format.
func PrintVersion(version string) string {
	return fmt.Sprintf("prayer-widget %s\n", version)
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > config file > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
func (a *app) effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Config{}
	if a.cfg != nil {
		cfg = *a.cfg
	}
	defaults := config.Defaults()

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	if flagWasSet(flags, root, "city") {
		cfg.City = a.flags.City
	}
	if flagWasSet(flags, root, "country") {
		cfg.Country = a.flags.Country
	}
	if flagWasSet(flags, root, "latitude") {
		cfg.Latitude = a.flags.Latitude
	}
	if flagWasSet(flags, root, "longitude") {
		cfg.Longitude = a.flags.Longitude
	}
	if flagWasSet(flags, root, "method") {
		m := a.flags.Method
		cfg.Method = &m
	} else if cfg.Method == nil {
		cfg.Method = defaults.Method
	}
	if flagWasSet(flags, root, "school") {
		s := a.flags.School
		cfg.School = &s
	} else if cfg.School == nil {
		cfg.School = defaults.School
	}
	if flagWasSet(flags, root, "cache-dir") {
		cfg.CacheDir = a.flags.CacheDir
	}
	if flagWasSet(flags, root, "lang") {
		lang, err := i18n.Parse(a.flags.Lang)
		if err != nil {
			return nil, err
		}
		cfg.Lang = string(lang)
	}
	if cfg.Lang == "" {
		cfg.Lang = defaults.Lang
	}

	// Time format: CLI flag > config > default ("24h").
	if flagWasSet(flags, root, "time-format") {
		if a.flags.TimeFormat != "12h" && a.flags.TimeFormat != "24h" {
			return nil, fmt.Errorf("invalid --time-format %q: must be 12h or 24h", a.flags.TimeFormat)
		}
		cfg.TimeFormat = a.flags.TimeFormat
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = defaults.TimeFormat
	}

	return &cfg, nil
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}

// loader builds the snapshot loader for cfg. A cache that cannot be
// created only disables caching.
func (a *app) loader(cmd *cobra.Command, cfg *config.Config) *snapshot.Loader {
	client := api.NewClient()
	if a.env.apiURL != "" {
		client.BaseURL = a.env.apiURL
	}

	c, err := cache.New(cfg.CacheDir)
	if err != nil {
		c = nil
		fmt.Fprintln(cmd.ErrOrStderr(), display.Warn(fmt.Sprintf("warning: cache disabled: %v", err)))
	}

	return &snapshot.Loader{Client: client, Cache: c, Geo: a.env.geo, Logger: a.logger}
}

// request converts the merged config into a snapshot request.
func (a *app) request(cfg *config.Config) snapshot.Request {
	return snapshot.Request{
		Lat:     cfg.Latitude,
		Lon:     cfg.Longitude,
		City:    cfg.City,
		Country: cfg.Country,
		Method:  cfg.MethodOrDefault(config.DefaultMethod),
		School:  cfg.SchoolOrDefault(-1),
		Now:     a.env.now(),
	}
}

const fallbackWarning = "warning: location detection failed, using Makkah"

// load merges the config and builds today's snapshot.
func (a *app) load(cmd *cobra.Command) (*config.Config, *snapshot.Snapshot, error) {
	cfg, err := a.effectiveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	snap, err := a.loader(cmd, cfg).Load(cmd.Context(), a.request(cfg))
	if err != nil {
		return nil, nil, err
	}
	if snap.Location.Fallback {
		fmt.Fprintln(cmd.ErrOrStderr(), display.Warn(fallbackWarning))
	}
	return cfg, snap, nil
}

// goTimeFormat maps the config value to a Go layout.
func goTimeFormat(cfg *config.Config) string {
	if cfg.TimeFormat == "12h" {
		return "3:04 PM"
	}
	return "15:04"
}

// selectedPrayers returns the prayers configured for tables.
func selectedPrayers(cfg *config.Config) []string {
	if cfg.Prayers == "" {
		return prayer.DefaultPrayerNames
	}
	names := strings.Split(cfg.Prayers, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	return names
}

// locationLine renders the snapshot location, falling back to coordinates.
func locationLine(lang i18n.Lang, loc snapshot.Location, meta api.Meta) string {
	if loc.City == "" && loc.Country == "" {
		return fmt.Sprintf("%.4f, %.4f", meta.Latitude, meta.Longitude)
	}
	return i18n.Location(lang, loc.City, loc.Country)
}
