package widget

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// dailyReload fires at local midnight. The model also reloads on its own
// once the location's day is over.
const dailyReload = "0 0 * * *"

// sender is satisfied by *tea.Program.
type sender interface {
	Send(msg tea.Msg)
}

// Run shows the widget until the user quits or ctx is cancelled.
// configPath, when set, is watched and edits reload the widget.
func Run(ctx context.Context, opts Options, configPath string) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))

	sched, err := startScheduler(p, logger)
	if err != nil {
		return err
	}
	defer sched.Stop()

	if configPath != "" {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		if err := watchConfig(watchCtx, configPath, p, logger); err != nil {
			// The widget still works without live config reload.
			logger.Warn("config watcher disabled", zap.Error(err))
		}
	}

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("widget: %w", err)
	}
	return nil
}

func startScheduler(p sender, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(dailyReload, func() {
		logger.Info("daily reload")
		p.Send(reloadMsg{})
	}); err != nil {
		return nil, fmt.Errorf("failed to schedule daily reload: %w", err)
	}
	c.Start()
	return c, nil
}

// watchConfig sends configChangedMsg when the config file is written,
// created, removed or renamed. The directory is watched since editors
// often replace the file.
func watchConfig(ctx context.Context, path string, p sender, logger *zap.Logger) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()

		// Editors emit bursts of events; coalesce them.
		debounce := time.NewTicker(200 * time.Millisecond)
		defer debounce.Stop()
		pending := false

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
					logger.Debug("config event", zap.String("op", event.Op.String()))
					pending = true
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", zap.Error(err))

			case <-debounce.C:
				if pending {
					pending = false
					p.Send(configChangedMsg{})
				}
			}
		}
	}()

	return nil
}
