package cli

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/handiism/catalog-photo-downloader/internal/download"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8DADC"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
)

// console serializes progress events on stdout with a progress bar redrawn
// in place on stderr.
type console struct {
	out     io.Writer
	barOut  io.Writer
	verbose bool

	showBar bool
	bar     progress.Model
	drawn   bool
	mu      sync.Mutex
}

func newConsole(out, barOut io.Writer, verbose, wantBar bool) *console {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	return &console{
		out:     out,
		barOut:  barOut,
		verbose: verbose,
		showBar: wantBar && isTerminal(barOut),
		bar:     bar,
	}
}

// Event prints a progress event. Verbose events are dropped unless verbose
// output was requested.
func (c *console) Event(event download.ProgressEvent) {
	if event.Level == download.LevelVerbose && !c.verbose {
		return
	}

	var style lipgloss.Style
	prefix := "•"
	switch event.Level {
	case download.LevelError:
		style = errorStyle
		prefix = "✗"
	case download.LevelWarning:
		style = warningStyle
		prefix = "!"
	case download.LevelSuccess:
		style = successStyle
		prefix = "✓"
	case download.LevelInfo:
		style = infoStyle
		prefix = "›"
	default:
		style = dimStyle
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearLocked()
	fmt.Fprintln(c.out, style.Render(prefix+" "+event.Message))
}

// DrawProgress redraws the progress bar.
func (c *console) DrawProgress(processed, total int32, received int64) {
	if !c.showBar {
		return
	}

	var percent float64
	if total > 0 {
		percent = float64(processed) / float64(total)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.barOut, "\r%s %d/%d photos | %.2f MB\x1b[K",
		c.bar.ViewAs(percent), processed, total, float64(received)/1024/1024)
	c.drawn = true
}

// ClearProgress removes the progress bar line.
func (c *console) ClearProgress() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

func (c *console) clearLocked() {
	if c.drawn {
		fmt.Fprint(c.barOut, "\r\x1b[K")
		c.drawn = false
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
