package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/perch/internal/config"
	"github.com/five82/perch/internal/logtail"
	"github.com/five82/perch/internal/prefs"
	"github.com/five82/perch/internal/widget"
)

// View represents the current active view.
type View int

const (
	ViewDashboard View = iota
	ViewLogs
)

// inputMode is the purpose of the text input while it is open.
type inputMode int

const (
	inputNone inputMode = iota
	inputAdd
	inputRename
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Board     *widget.Board
	Config    *config.Config
	ThemeName string
	Focus     string
	PrefsPath string
	LogPath   string
	Logger    *slog.Logger

	// OpenURL and CopyText default to the system browser and clipboard.
	OpenURL  func(string) error
	CopyText func(string) error
	Clock    func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	board     *widget.Board
	config    *config.Config
	prefsPath string
	logPath   string
	logger    *slog.Logger
	openURL   func(string) error
	copyText  func(string) error
	clock     func() time.Time

	// UI state
	theme       Theme
	keys        keyMap
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Dashboard state
	focus    panelID
	selected [panelCount]int
	expanded map[string]bool

	// Todo input
	input     textinput.Model
	inputMode inputMode
	renameID  int64

	// Transient status line
	flash      string
	flashError bool
	flashUntil time.Time

	// Log state
	logViewport viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	openURL := opts.OpenURL
	if openURL == nil {
		openURL = openInBrowser
	}
	copyText := opts.CopyText
	if copyText == nil {
		copyText = clipboard.WriteAll
	}
	focus, _ := panelByName(opts.Focus)

	input := textinput.New()
	input.CharLimit = 200

	return Model{
		ctx:         ctx,
		board:       opts.Board,
		config:      opts.Config,
		prefsPath:   prefsPath,
		logPath:     opts.LogPath,
		logger:      logger,
		openURL:     openURL,
		copyText:    copyText,
		clock:       opts.Clock,
		theme:       GetTheme(themeName),
		keys:        DefaultKeyMap(),
		currentView: ViewDashboard,
		focus:       focus,
		expanded:    make(map[string]bool),
		input:       input,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(DefaultUIInterval),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.logViewport = viewport.New(m.width, max(m.height-2, 1))
		}
		m.ready = true
		m.resizeLogViewport()
		return m, nil

	case tickMsg:
		return m, tickCmd(DefaultUIInterval)

	case boardChangedMsg:
		m.clampSelections()
		return m, nil

	case todoAddedMsg:
		if msg.err != nil {
			m.setFlash("Add failed: "+msg.err.Error(), true)
			return m, nil
		}
		m.setFlash("Added "+truncate(msg.title, 40), false)
		m.selected[panelTodos] = len(m.board.Todos.Snapshot().Data) - 1
		return m, nil

	case logChangedMsg:
		if m.currentView == ViewLogs {
			return m, m.loadLogs()
		}
		return m, nil

	case logLinesMsg:
		m.setLogContent(msg.lines)
		return m, nil

	case logErrorMsg:
		m.setFlash("Log read failed: "+msg.err.Error(), true)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.board != nil && m.board.AuthDialog.Open() {
		return m.renderAuthDialog()
	}
	if m.inputMode != inputNone {
		return m.renderInput()
	}
	return m.renderMain()
}

// handleKey processes keyboard input. Overlays get first refusal.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.inputMode != inputNone {
		return m.handleInputKey(msg)
	}
	if m.board != nil && m.board.AuthDialog.Open() {
		return m.handleAuthKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.savePrefs()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ReloadAll):
		m.board.ReloadAll()
		m.setFlash("Reloading all widgets", false)
		return m, nil

	case key.Matches(msg, m.keys.ViewLogs):
		if m.currentView == ViewLogs {
			m.currentView = ViewDashboard
			return m, nil
		}
		m.currentView = ViewLogs
		return m, m.loadLogs()

	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewDashboard
		return m, nil

	case key.Matches(msg, m.keys.QuickLink):
		m.openQuickLink(msg.String())
		return m, nil

	case key.Matches(msg, m.keys.OpenMail):
		m.open(config.GmailURL)
		return m, nil
	}

	switch m.currentView {
	case ViewLogs:
		return m.handleLogsKey(msg)
	default:
		return m.handleDashboardKey(msg)
	}
}

// handleDashboardKey processes navigation and item actions on the grid.
func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Tab):
		m.focus = (m.focus + 1) % panelCount
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.focus = (m.focus + panelCount - 1) % panelCount
		return m, nil
	}

	items := m.panel(m.focus).items
	count := len(items)

	if m.focus == panelTodos {
		if handled, cmd := m.handleTodoKey(msg, items); handled {
			return m, cmd
		}
	}
	if count == 0 {
		return m, nil
	}
	sel := m.selection(m.focus, count)
	current := items[sel]

	switch {
	case key.Matches(msg, m.keys.Down):
		m.selected[m.focus] = min(sel+1, count-1)
	case key.Matches(msg, m.keys.Up):
		m.selected[m.focus] = max(sel-1, 0)
	case key.Matches(msg, m.keys.Top):
		m.selected[m.focus] = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected[m.focus] = count - 1
	case key.Matches(msg, m.keys.Expand):
		k := expandKey(m.focus, current.key)
		m.expanded[k] = !m.expanded[k]
	case key.Matches(msg, m.keys.Open):
		m.open(current.url)
	case key.Matches(msg, m.keys.Copy):
		m.copyURL(current.url)
	}
	return m, nil
}

// handleTodoKey handles the todo-only bindings. It reports whether msg was
// consumed.
func (m *Model) handleTodoKey(msg tea.KeyMsg, items []item) (bool, tea.Cmd) {
	todos := m.board.Todos
	if key.Matches(msg, m.keys.AddTodo) {
		m.openInput(inputAdd, "", 0)
		return true, nil
	}
	if len(items) == 0 {
		return false, nil
	}
	sel := m.selection(panelTodos, len(items))
	current := items[sel]

	switch {
	case key.Matches(msg, m.keys.ToggleTodo), key.Matches(msg, m.keys.Expand):
		m.report("toggle", todos.Toggle(m.ctx, current.todoID))
		return true, nil
	case key.Matches(msg, m.keys.RenameTodo):
		m.openInput(inputRename, current.title, current.todoID)
		return true, nil
	case key.Matches(msg, m.keys.DeleteTodo):
		m.report("delete", todos.Delete(m.ctx, current.todoID))
		m.selected[panelTodos] = max(min(sel, len(items)-2), 0)
		return true, nil
	case key.Matches(msg, m.keys.MoveDown):
		if sel < len(items)-1 {
			m.report("move", todos.Move(m.ctx, current.todoID, sel+1))
			m.selected[panelTodos] = sel + 1
		}
		return true, nil
	case key.Matches(msg, m.keys.MoveUp):
		if sel > 0 {
			m.report("move", todos.Move(m.ctx, current.todoID, sel-1))
			m.selected[panelTodos] = sel - 1
		}
		return true, nil
	}
	return false, nil
}

func (m *Model) openInput(mode inputMode, value string, id int64) {
	m.inputMode = mode
	m.renameID = id
	m.input.SetValue(value)
	m.input.CursorEnd()
	if mode == inputAdd {
		m.input.Placeholder = "Add a new task..."
	} else {
		m.input.Placeholder = "Rename task..."
	}
	m.input.Focus()
}

func (m *Model) closeInput() {
	m.inputMode = inputNone
	m.renameID = 0
	m.input.Blur()
	m.input.SetValue("")
}

// handleInputKey feeds keys to the todo text input.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeInput()
		return m, nil
	case tea.KeyCtrlC:
		m.savePrefs()
		return m, tea.Quit
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		mode, id := m.inputMode, m.renameID
		if value == "" {
			return m, nil
		}
		m.closeInput()
		if mode == inputRename {
			m.report("rename", m.board.Todos.Rename(m.ctx, id, value))
			return m, nil
		}
		return m, addTodoCmd(m.ctx, m.board.Todos, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleAuthKey handles the authorization dialog.
func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.savePrefs()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape):
		m.board.AuthDialog.Dismiss()
	case key.Matches(msg, m.keys.Authorize):
		if url := m.board.AuthDialog.Status().AuthURL; url != "" {
			m.open(url)
		}
	case key.Matches(msg, m.keys.ReloadAll):
		m.board.AuthDialog.Dismiss()
		m.board.ReloadAll()
		m.setFlash("Reloading all widgets", false)
	}
	return m, nil
}

func (m *Model) openQuickLink(digit string) {
	if m.config == nil {
		return
	}
	idx := int(digit[0] - '1')
	if idx < 0 || idx >= len(m.config.QuickLinks) {
		return
	}
	m.open(m.config.QuickLinks[idx].URL)
}

func (m *Model) open(url string) {
	if url == "" {
		m.setFlash("No link for this item", true)
		return
	}
	if err := m.openURL(url); err != nil {
		m.logger.Warn("open url failed", "url", url, "err", err)
		m.setFlash("Open failed: "+err.Error(), true)
		return
	}
	m.setFlash("Opened "+truncate(url, 60), false)
}

func (m *Model) copyURL(url string) {
	if url == "" {
		m.setFlash("No link for this item", true)
		return
	}
	if err := m.copyText(url); err != nil {
		m.logger.Warn("copy to clipboard failed", "err", err)
		m.setFlash("Copy failed: "+err.Error(), true)
		return
	}
	m.setFlash("Copied "+truncate(url, 60), false)
}

// report surfaces a rejected todo operation. Remote failures are handled by
// the widget's resync and only show up in the log.
func (m *Model) report(op string, err error) {
	if err != nil {
		m.setFlash(op+": "+err.Error(), true)
	}
}

func (m *Model) setFlash(text string, isError bool) {
	m.flash = text
	m.flashError = isError
	m.flashUntil = m.now().Add(StatusFlashDuration)
}

func (m Model) activeFlash() (string, bool) {
	if m.flash == "" || m.now().After(m.flashUntil) {
		return "", false
	}
	return m.flash, m.flashError
}

func (m Model) selection(p panelID, count int) int {
	if count == 0 {
		return 0
	}
	return min(max(m.selected[p], 0), count-1)
}

func (m *Model) clampSelections() {
	for p := panelID(0); p < panelCount; p++ {
		m.selected[p] = m.selection(p, len(m.panel(p).items))
	}
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Focus: panelNames[m.focus]}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", "err", err)
	}
}

// renderMain renders the header, command bar and the active view.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	contentHeight := max(m.height-2, 0)
	switch m.currentView {
	case ViewLogs:
		b.WriteString(m.renderLogs(contentHeight))
	default:
		b.WriteString(m.renderDashboard(contentHeight))
	}
	return b.String()
}

// Messages

type tickMsg time.Time

type boardChangedMsg struct{}

type todoAddedMsg struct {
	title string
	err   error
}

type logChangedMsg struct{}

type logLinesMsg struct{ lines []string }

type logErrorMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func addTodoCmd(ctx context.Context, todos *widget.Todos, title string) tea.Cmd {
	return func() tea.Msg {
		_, err := todos.Add(ctx, title)
		return todoAddedMsg{title: title, err: err}
	}
}

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogLineLimit)
		if err != nil {
			return logErrorMsg{err: err}
		}
		return logLinesMsg{lines: lines}
	}
}

// forwardBoardChanges relays Board changes to send from its own goroutine.
// Todo edits write the store from inside Update, so the notifying goroutine
// is often the event loop itself and must never block on send. Changes that
// arrive while one is pending collapse into it.
func forwardBoardChanges(board *widget.Board, send func(tea.Msg)) (stop func()) {
	pending := make(chan struct{}, 1)
	done := make(chan struct{})
	board.OnChange(func() {
		select {
		case pending <- struct{}{}:
		default:
		}
	})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-pending:
				send(boardChangedMsg{})
			}
		}
	}()
	return func() {
		board.OnChange(nil)
		close(done)
	}
}

// Run starts the Bubble Tea program and blocks until it exits. Board changes
// and log file writes are forwarded to the program as messages.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))

	if opts.Board != nil {
		stop := forwardBoardChanges(opts.Board, p.Send)
		defer stop()
	}
	if opts.LogPath != "" {
		watchCtx, cancel := context.WithCancel(m.ctx)
		defer cancel()
		go func() {
			if err := logtail.Watch(watchCtx, opts.LogPath, func() { p.Send(logChangedMsg{}) }); err != nil {
				m.logger.Warn("log watch stopped", "err", err)
			}
		}()
	}

	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		return nil
	}
	return err
}
