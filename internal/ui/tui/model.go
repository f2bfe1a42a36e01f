package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// recentLimit bounds the list of recently uploaded keys shown.
const recentLimit = 6

// Model is the Bubble Tea model for the publish display.
type Model struct {
	App    string
	Bucket string
	Prefix string

	Files     int
	Bytes     int64
	Uploaded  int
	BytesDone int64
	Recent    []string
	Failures  []UploadMsg
	Latest    string

	StartTime    time.Time
	SpinnerFrame int

	Width  int
	Height int
	Err    error
	Done   bool
}

// NewPublishModel creates a model for publishing app to bucket.
func NewPublishModel(app, bucket string) Model {
	return Model{
		App:       app,
		Bucket:    bucket,
		StartTime: time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case StartedMsg:
		m.Prefix = msg.Prefix
		m.Files = msg.Files
		m.Bytes = msg.Bytes

	case UploadMsg:
		m.Uploaded++
		if msg.Err != nil {
			m.Failures = append(m.Failures, msg)
			break
		}
		m.BytesDone += msg.Size
		m.Recent = append(m.Recent, msg.Key)
		if len(m.Recent) > recentLimit {
			m.Recent = m.Recent[len(m.Recent)-recentLimit:]
		}

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Latest = msg.Latest
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

// Progress returns the uploaded fraction by bytes, falling back to file count.
func (m Model) Progress() float64 {
	if m.Done {
		return 1
	}
	if m.Bytes > 0 {
		return min(float64(m.BytesDone)/float64(m.Bytes), 1)
	}
	if m.Files > 0 {
		return min(float64(m.Uploaded)/float64(m.Files), 1)
	}
	return 0
}

// EstimatedRemaining extrapolates the observed throughput.
func (m Model) EstimatedRemaining(now time.Time) time.Duration {
	p := m.Progress()
	if p <= 0 || p >= 1 {
		return 0
	}
	elapsed := now.Sub(m.StartTime)
	return time.Duration(float64(elapsed) * (1 - p) / p)
}

func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m, time.Now())
}
