// Package widget is the live prayer-times display: six prayer cards, the
// night panel and a countdown to the next event refreshed once per second.
package widget

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/smokyabdulrahman/prayer-widget/internal/i18n"
	"github.com/smokyabdulrahman/prayer-widget/internal/methods"
	"github.com/smokyabdulrahman/prayer-widget/internal/snapshot"
)

const loadTimeout = 30 * time.Second

// LoadFunc produces a snapshot for a request. (*snapshot.Loader).Load satisfies it.
type LoadFunc func(ctx context.Context, req snapshot.Request) (*snapshot.Snapshot, error)

// Settings are the user-adjustable inputs of the widget.
type Settings struct {
	Request    snapshot.Request
	Lang       i18n.Lang
	TimeFormat string // Go layout, "15:04" or "3:04 PM"
}

// Options configures a Model.
type Options struct {
	Settings Settings
	Load     LoadFunc
	// Methods fetches the method catalogue. Optional.
	Methods func(ctx context.Context) []methods.Method
	// OnMethodChange persists a new selection. Optional.
	OnMethodChange func(id int) error
	// Reconfigure re-reads settings after the config file changed. Optional.
	Reconfigure func() (Settings, error)
	Now         func() time.Time
	Logger      *zap.Logger
}

type (
	tickMsg   time.Time
	loadedMsg struct {
		gen  int
		snap *snapshot.Snapshot
		err  error
	}
	methodsMsg       []methods.Method
	reloadMsg        struct{}
	configChangedMsg struct{}
)

// Model is the bubbletea model of the widget.
type Model struct {
	opts     Options
	settings Settings
	styles   styles
	spinner  spinner.Model

	methods []methods.Method
	snap    *snapshot.Snapshot
	err     error
	loading bool
	// gen identifies the latest load; older results are discarded.
	gen   int
	now   time.Time
	width int
}

// New returns a model that starts loading on Init.
func New(opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Settings.TimeFormat == "" {
		opts.Settings.TimeFormat = "15:04"
	}

	st := defaultStyles()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.Spinner

	return Model{
		opts:     opts,
		settings: opts.Settings,
		styles:   st,
		spinner:  sp,
		methods:  methods.Order(methods.Builtin(), opts.Settings.Request.Method),
		loading:  true,
		gen:      1,
		now:      opts.Now(),
	}
}

// Init starts the first load, the spinner and the 1 Hz clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadCmd(),
		m.methodsCmd(),
		m.tick(),
	)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) loadCmd() tea.Cmd {
	gen, req, load := m.gen, m.settings.Request, m.opts.Load
	req.Now = m.opts.Now()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		snap, err := load(ctx, req)
		return loadedMsg{gen: gen, snap: snap, err: err}
	}
}

func (m Model) methodsCmd() tea.Cmd {
	if m.opts.Methods == nil {
		return nil
	}
	fetch := m.opts.Methods
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		return methodsMsg(fetch(ctx))
	}
}

// reload starts a new load generation.
func (m Model) reload() (Model, tea.Cmd) {
	m.gen++
	m.loading = true
	m.opts.Logger.Debug("reloading",
		zap.Int("generation", m.gen),
		zap.Int("method", m.settings.Request.Method))
	return m, tea.Batch(m.loadCmd(), m.spinner.Tick)
}

// Update handles keys, the clock and load results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tickMsg:
		m.now = time.Time(msg)
		if m.snap != nil && !m.loading && m.snap.Stale(m.now) {
			var cmd tea.Cmd
			m, cmd = m.reload()
			return m, tea.Batch(cmd, m.tick())
		}
		return m, m.tick()

	case loadedMsg:
		if msg.gen != m.gen {
			m.opts.Logger.Debug("discarding stale load", zap.Int("generation", msg.gen))
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.opts.Logger.Error("load failed", zap.Error(msg.err))
			return m, nil
		}
		m.snap = msg.snap
		m.opts.Logger.Info("schedule loaded",
			zap.String("city", msg.snap.Location.City),
			zap.String("timezone", msg.snap.TZ.String()))

	case methodsMsg:
		if len(msg) > 0 {
			m.methods = methods.Order(msg, m.settings.Request.Method)
		}

	case reloadMsg:
		return m.reload()

	case configChangedMsg:
		if m.opts.Reconfigure == nil {
			return m, nil
		}
		s, err := m.opts.Reconfigure()
		if err != nil {
			m.opts.Logger.Warn("ignoring config change", zap.Error(err))
			return m, nil
		}
		if s.TimeFormat == "" {
			s.TimeFormat = m.settings.TimeFormat
		}
		// Our own method writes come back through the watcher.
		if s.Request == m.settings.Request && s.TimeFormat == m.settings.TimeFormat {
			return m, nil
		}
		m.settings = s
		return m.reload()

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "l":
		m.settings.Lang = m.settings.Lang.Toggle()
		return m, nil
	case "m", "right":
		return m.selectMethod(1)
	case "M", "left":
		return m.selectMethod(-1)
	case "r":
		return m.reload()
	}
	return m, nil
}

func (m Model) selectMethod(step int) (tea.Model, tea.Cmd) {
	next := methods.Cycle(m.methods, m.settings.Request.Method, step)
	if next.ID == m.settings.Request.Method {
		return m, nil
	}
	m.settings.Request.Method = next.ID
	if m.opts.OnMethodChange != nil {
		if err := m.opts.OnMethodChange(next.ID); err != nil {
			m.opts.Logger.Warn("cannot save method", zap.Error(err))
		}
	}
	return m.reload()
}

// Lang reports the language currently displayed.
func (m Model) Lang() i18n.Lang {
	return m.settings.Lang
}

// Method reports the selected calculation method id.
func (m Model) Method() int {
	return m.settings.Request.Method
}
