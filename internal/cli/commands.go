package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smokyabdulrahman/prayer-widget/internal/cache"
	"github.com/smokyabdulrahman/prayer-widget/internal/config"
	"github.com/smokyabdulrahman/prayer-widget/internal/display"
	"github.com/smokyabdulrahman/prayer-widget/internal/i18n"
	"github.com/smokyabdulrahman/prayer-widget/internal/logging"
	"github.com/smokyabdulrahman/prayer-widget/internal/methods"
	"github.com/smokyabdulrahman/prayer-widget/internal/widget"
)

const widgetLogName = "widget.log"

func (a *app) newWidgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "widget",
		Short: "Open the live prayer-times widget",
		Long: "Full-screen widget with the six daily times, midnight, the last third of the night\n" +
			"and a countdown to the next event. Keys: l language, m/M method, r refresh, q quit.\n" +
			"Edits to the config file are picked up while the widget runs.",
		Args: cobra.NoArgs,
		RunE: a.runWidget,
	}
}

// settings converts a merged config into widget settings.
func (a *app) settings(cfg *config.Config) widget.Settings {
	req := a.request(cfg)
	// The model stamps Now on every load.
	req.Now = time.Time{}
	return widget.Settings{
		Request:    req,
		Lang:       cfg.LangOrDefault(),
		TimeFormat: goTimeFormat(cfg),
	}
}

func (a *app) runWidget(cmd *cobra.Command, args []string) error {
	cfg, err := a.effectiveConfig(cmd)
	if err != nil {
		return err
	}

	dir := cfg.CacheDir
	if dir == "" {
		if dir, err = cache.DefaultDir(); err != nil {
			return err
		}
	}
	logger, err := logging.New(logging.Options{Verbose: a.flags.Verbose, File: filepath.Join(dir, widgetLogName)})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	a.logger = logger

	loader := a.loader(cmd, cfg)

	configPath, err := config.Path()
	if err != nil {
		logger.Warn("config path unavailable", zap.Error(err))
		configPath = ""
	}

	return widget.Run(cmd.Context(), widget.Options{
		Settings: a.settings(cfg),
		Load:     loader.Load,
		Methods:  loader.Methods,
		OnMethodChange: func(id int) error {
			// An explicit --method must not undo the choice on the next config reload.
			a.flags.Method = id
			file, err := config.Load()
			if err != nil {
				return err
			}
			file.Method = &id
			return file.Save()
		},
		Reconfigure: func() (widget.Settings, error) {
			file, err := config.Load()
			if err != nil {
				return widget.Settings{}, err
			}
			a.cfg = file
			merged, err := a.effectiveConfig(cmd)
			if err != nil {
				return widget.Settings{}, err
			}
			return a.settings(merged), nil
		},
		Now:    a.env.now,
		Logger: logger,
	}, configPath)
}

// methodJSON is one entry of `methods --json`.
type methodJSON struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	NameAr   string `json:"name_ar"`
	Selected bool   `json:"selected"`
}

func (a *app) newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List all calculation methods",
		Long: "Print the calculation methods offered by the Al Adhan API, the selected one first\n" +
			"and the rest in Arabic alphabetical order.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.effectiveConfig(cmd)
			if err != nil {
				return err
			}
			lang := cfg.LangOrDefault()
			list := methods.Order(a.loader(cmd, cfg).Methods(cmd.Context()), cfg.MethodOrDefault(config.DefaultMethod))
			out := cmd.OutOrStdout()

			if a.flags.JSON {
				entries := make([]methodJSON, len(list))
				for i, m := range list {
					entries[i] = methodJSON{ID: m.ID, Name: m.Name, NameAr: m.ArName, Selected: i == 0}
				}
				return writeJSON(out, entries)
			}

			fmt.Fprintf(out, "  %s\n\n", display.Bold(i18n.T(lang, i18n.KeyMethod)))
			tbl := display.NewTable([]string{"", "ID", ""})
			tbl.SetRTL(lang.RTL())
			for i, m := range list {
				mark := ""
				if i == 0 {
					mark = "*"
					tbl.SetHighlightRow(i)
				}
				tbl.AddRow([]string{mark, strconv.Itoa(m.ID), m.Label(lang)})
			}
			fmt.Fprint(out, tbl.Render())
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Use --method <ID> or `prayer-widget config set method <ID>` to select a method.")
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the current configuration.",
		RunE:  runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nExamples:\n  prayer-widget config set city Riyadh\n  prayer-widget config set country \"Saudi Arabia\"\n  prayer-widget config set method 4\n  prayer-widget config set lang en\n  prayer-widget config set time_format 12h",
			strings.Join(config.ValidKeys, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		Args:  cobra.NoArgs,
		RunE:  runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	})

	return cmd
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Configuration (%s)\n\n", path)

	for _, key := range config.ValidKeys {
		val, _ := cfg.Get(key)
		shown := val
		if shown == "" {
			shown = "(not set)"
		}
		if key == "method" && val != "" {
			shown = formatMethodValue(val)
		}
		if key == "school" && val != "" {
			shown = formatSchoolValue(val)
		}
		fmt.Fprintf(out, "  %-14s %s\n", key, shown)
	}
	return nil
}

// runConfigSet sets a config key to the given value.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

// runConfigReset deletes the config file.
func runConfigReset(cmd *cobra.Command, args []string) error {
	if err := config.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults.")
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// formatMethodValue adds the method name to the numeric value.
func formatMethodValue(val string) string {
	for _, m := range methods.Builtin() {
		if m.Key() == val {
			return fmt.Sprintf("%s (%s)", val, m.Name)
		}
	}
	return val
}

// formatSchoolValue adds the school name to the numeric value.
func formatSchoolValue(val string) string {
	switch val {
	case "0":
		return "0 (Shafi)"
	case "1":
		return "1 (Hanafi)"
	default:
		return val
	}
}
