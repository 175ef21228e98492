// Package tui provides a Bubble Tea terminal user interface for the catalog
// photo downloader.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/catalog-photo-downloader/internal/catalog"
	"github.com/handiism/catalog-photo-downloader/internal/config"
	"github.com/handiism/catalog-photo-downloader/internal/download"
	"github.com/handiism/catalog-photo-downloader/internal/model"
	"github.com/handiism/catalog-photo-downloader/internal/report"
	"github.com/handiism/catalog-photo-downloader/internal/storage"
)

var (
	accent = lipgloss.Color("#E07A5F")
	teal   = lipgloss.Color("#3D9A9B")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1)
	subtitleStyle = lipgloss.NewStyle().Foreground(teal)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D8491"))
	errorStyle    = lipgloss.NewStyle().Foreground(accent)
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(teal).Padding(1, 2)
)

// levelLook maps a progress level to its log prefix and style.
var levelLook = map[download.ProgressLevel]struct {
	prefix string
	style  lipgloss.Style
}{
	download.LevelError:   {"✗", errorStyle},
	download.LevelWarning: {"!", lipgloss.NewStyle().Foreground(lipgloss.Color("#F2CC8F"))},
	download.LevelSuccess: {"✓", lipgloss.NewStyle().Foreground(lipgloss.Color("#81B29A"))},
	download.LevelInfo:    {"›", lipgloss.NewStyle().Foreground(lipgloss.Color("#A8C5DA"))},
	download.LevelVerbose: {"•", dimStyle},
}

const (
	maxLogs         = 10
	maxFailedShown  = 10
	eventBufferSize = 64
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateInitializing
	StateDownloading
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	photos    int
	report    *model.Report
	err       error

	// Download context
	ctx    context.Context
	cancel context.CancelFunc

	manager *download.Manager
	events  chan download.ProgressEvent

	// Download progress
	processed int32
	total     int32
	failed    int32
	received  int64

	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model using settings as the starting point.
func NewModel(settings *config.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = config.DefaultCatalogURL
	ti.SetValue(settings.CatalogURL)
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		events:    make(chan download.ProgressEvent, eventBufferSize),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.waitForEvent())
}

// Message types
type (
	// ProgressMsg is sent when the manager reports an event.
	ProgressMsg struct {
		Event download.ProgressEvent
	}

	// InitDoneMsg is sent when the catalog has been fetched.
	InitDoneMsg struct {
		Photos  int
		Manager *download.Manager
		Err     error
	}

	// DownloadDoneMsg is sent when all downloads complete.
	DownloadDoneMsg struct {
		Report *model.Report
		Err    error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateDownloading || m.state == StateInitializing {
				m.cancel()
			}

		case "enter":
			if m.state == StateInput && m.textInput.Value() != "" {
				m.state = StateInitializing
				return m, tea.Batch(m.initializeDownload(), m.spinner.Tick)
			}

		case "ctrl+v":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for new download
				m.state = StateInput
				m.logs = nil
				m.photos = 0
				m.report = nil
				m.err = nil
				m.processed = 0
				m.total = 0
				m.failed = 0
				m.received = 0
				m.manager = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.Focus()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, m.waitForEvent())
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level == download.LevelVerbose && !m.verbose {
			break
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case InitDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.photos = msg.Photos
			m.manager = msg.Manager
			m.total = int32(msg.Photos)
			m.state = StateDownloading
			cmds = append(cmds, m.startDownload(), m.tickProgress())
		}

	case DownloadDoneMsg:
		m.report = msg.Report
		if m.manager != nil {
			m.processed, m.total, m.failed, m.received = m.manager.GetProgress()
		}
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateDownloading {
			m.processed, m.total, m.failed, m.received = m.manager.GetProgress()

			var percent float64
			if m.total > 0 {
				percent = float64(m.processed) / float64(m.total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForEvent returns a command that delivers the next manager event.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return ProgressMsg{Event: <-events}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Catalog Photo Downloader"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Download every product photo from the shop catalog"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateInitializing:
		b.WriteString(m.viewInitializing())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Catalog URL:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(levelLook[download.LevelInfo].style.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Verbose output (ctrl+v)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Image URL: %s<name>", m.settings.ImageBaseURL)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Saving to: %s", m.location())))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewInitializing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Fetching product catalog..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	var percent float64
	if m.total > 0 {
		percent = float64(m.processed) / float64(m.total)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(levelLook[download.LevelInfo].style.Render(fmt.Sprintf(
		"Photos: %d/%d | Failed: %d | Downloaded: %.2f MB",
		m.processed,
		m.total,
		m.failed,
		float64(m.received)/1024/1024,
	)))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	if m.report == nil {
		return ""
	}

	var b strings.Builder

	title := "Download complete!"
	if m.report.Cancelled {
		title = fmt.Sprintf("Download cancelled after %d/%d photos", m.report.Attempted, m.report.Total)
	}

	var body strings.Builder
	body.WriteString(fmt.Sprintf("%s\n\nResult: %s\nSaved to: %s",
		title, report.Summary(m.report), m.report.Location))

	if len(m.report.Failed) > 0 {
		body.WriteString(fmt.Sprintf("\n\nFailed to download %d photos:", len(m.report.Failed)))
		for i, f := range m.report.Failed {
			if i == maxFailedShown {
				body.WriteString(fmt.Sprintf("\n  ... and %d more", len(m.report.Failed)-maxFailedShown))
				break
			}
			body.WriteString("\n  - " + f.Name)
		}
	}

	b.WriteString(boxStyle.Render(body.String()))
	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", describeError(m.err)))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder
	for _, entry := range m.logs {
		look, ok := levelLook[entry.Level]
		if !ok {
			look = levelLook[download.LevelVerbose]
		}
		b.WriteString(look.style.Render(look.prefix + " " + entry.Message))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • ctrl+v: verbose • esc: quit"
	case StateInitializing, StateDownloading:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new download • q: quit"
	}
	return ""
}

func (m Model) location() string {
	if m.settings.Storage == config.StorageS3 {
		return fmt.Sprintf("s3://%s/%s", m.settings.S3.Bucket, m.settings.S3.Prefix)
	}
	return storage.NewLocal(m.settings.DownloadDir, false).Location()
}

// initializeDownload fetches the catalog and creates the manager.
func (m *Model) initializeDownload() tea.Cmd {
	settings := *m.settings
	settings.CatalogURL = strings.TrimSpace(m.textInput.Value())
	ctx := m.ctx
	events := m.events

	return func() tea.Msg {
		if err := settings.Validate(); err != nil {
			return InitDoneMsg{Err: err}
		}

		store, err := storage.New(ctx, &settings)
		if err != nil {
			return InitDoneMsg{Err: err}
		}

		manager := download.NewManager(&settings, store, func(event download.ProgressEvent) {
			select {
			case events <- event:
			default:
				// The UI only shows the latest events; drop when it lags behind.
			}
		})

		if err := manager.Initialize(ctx); err != nil {
			return InitDoneMsg{Err: err}
		}

		return InitDoneMsg{
			Photos:  len(manager.PhotoNames()),
			Manager: manager,
		}
	}
}

// startDownload runs the download loop in the background.
func (m *Model) startDownload() tea.Cmd {
	manager := m.manager
	ctx := m.ctx

	return func() tea.Msg {
		if manager == nil {
			return DownloadDoneMsg{Err: fmt.Errorf("no manager")}
		}

		result, err := manager.StartDownloads(ctx)
		return DownloadDoneMsg{Report: result, Err: err}
	}
}

// describeError turns a run-ending error into a user-facing message.
func describeError(err error) string {
	var (
		fetchErr *catalog.FetchError
		parseErr *catalog.ParseError
	)

	switch {
	case errors.Is(err, context.Canceled):
		return "cancelled by user"
	case errors.As(err, &fetchErr):
		return fmt.Sprintf("Error requesting the catalog: %v", fetchErr.Err)
	case errors.As(err, &parseErr):
		return fmt.Sprintf("Error parsing the catalog: %v", parseErr.Err)
	default:
		return fmt.Sprintf("Unexpected error: %v", err)
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
