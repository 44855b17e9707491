package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zaibi117/readme-maker/internal/adapters/driving/tui/components/status"
	"github.com/zaibi117/readme-maker/internal/adapters/driving/tui/keymap"
	"github.com/zaibi117/readme-maker/internal/adapters/driving/tui/messages"
	"github.com/zaibi117/readme-maker/internal/adapters/driving/tui/styles"
	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driving"
)

// statusBuffer is the subscription depth; older updates are dropped when full.
const statusBuffer = 32

// App is the progress view following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports *Ports
	job   Job
	ctx   context.Context

	styles    *styles.Styles
	keymap    *keymap.KeyMap
	spinner   spinner.Model
	bar       progress.Model
	help      help.Model
	statusBar *status.Bar

	updates     <-chan domain.ProcessingStatus
	unsubscribe func()

	// status is the latest snapshot; stages holds the last snapshot of every
	// stage seen, in order.
	status domain.ProcessingStatus
	stages []domain.ProcessingStatus

	result   *driving.Result
	err      error
	done     bool
	stopping bool

	width int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a progress view for job and subscribes to the processor.
// Call Close if the app is never run.
func NewApp(ports *Ports, job Job) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	updates, unsubscribe := ports.Processor.Subscribe(statusBuffer)

	return &App{
		ports:       ports,
		job:         job,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.Title)),
		bar:         progress.New(progress.WithDefaultGradient()),
		help:        help.New(),
		statusBar:   status.NewBar(s, km),
		updates:     updates,
		unsubscribe: unsubscribe,
		status:      domain.NewStatus(),
		width:       80,
	}, nil
}

// WithContext sets the context the run executes under.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model. It starts the run and the status listener.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("readme-maker - "+a.repoName()),
		a.spinner.Tick,
		a.waitForStatus(),
		a.runJob(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetWidth(msg.Width)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.StatusUpdated:
		a.record(msg.Status)
		return a, a.waitForStatus()

	case messages.StatusClosed:
		return a, nil

	case messages.RunFinished:
		a.finish(msg.Result, msg.Err)
		return a, tea.Quit

	case spinner.TickMsg:
		if a.done {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, a.keymap.Help):
		a.help.ShowAll = !a.help.ShowAll
		return a, nil

	case keymap.Matches(keyStr, a.keymap.Quit):
		if a.done || a.stopping {
			return a, tea.Quit
		}
		a.stop()
		return a, nil

	case keymap.Matches(keyStr, a.keymap.Stop):
		if !a.done {
			a.stop()
		}
		return a, nil
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	title := "readme-maker  " + a.repoName()
	if a.job.FromCache {
		title += "  (from cache)"
	}
	b.WriteString(a.styles.Title.Render(title))
	b.WriteString("\n\n")

	for i, st := range a.stages {
		current := i == len(a.stages)-1
		b.WriteString(a.renderStage(st, current))
		b.WriteString("\n")
	}
	if len(a.stages) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(a.bar.ViewAs(float64(a.status.Progress) / 100))
	b.WriteString("\n\n")

	if a.done {
		b.WriteString(a.renderSummary())
		b.WriteString("\n\n")
	} else if a.stopping {
		b.WriteString(a.styles.Warning.Render("Stopping..."))
		b.WriteString("\n\n")
	}

	b.WriteString(a.statusBar.View())
	b.WriteString("\n")
	if !a.done {
		b.WriteString(a.help.View(a.keymap))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) renderStage(st domain.ProcessingStatus, current bool) string {
	label := messages.StageLabel(st.Stage)
	switch {
	case current && !st.Stage.IsTerminal():
		line := fmt.Sprintf("%s %s  %s", a.spinner.View(), a.styles.ForStage(st.Stage).Render(label), st.Message)
		if st.CurrentFile != "" {
			line += a.styles.Muted.Render("  " + st.CurrentFile)
		}
		return line
	case st.Stage.IsTerminal():
		return fmt.Sprintf("%s %s  %s", a.terminalIcon(st.Stage), a.styles.ForStage(st.Stage).Render(label), st.Message)
	default:
		return fmt.Sprintf("%s %s", a.styles.Success.Render("✓"), a.styles.Muted.Render(label+"  "+st.Message))
	}
}

func (a *App) terminalIcon(stage domain.Stage) string {
	switch stage {
	case domain.StageComplete:
		return a.styles.Success.Render("✓")
	case domain.StageStopped:
		return a.styles.Warning.Render("■")
	default:
		return a.styles.Error.Render("✗")
	}
}

func (a *App) renderSummary() string {
	if a.err != nil {
		return a.styles.Error.Render("Error: " + a.err.Error())
	}
	if a.result == nil {
		return ""
	}
	stats := a.result.Stats
	counts := fmt.Sprintf("%d chunks (%d summarised, %d skipped, %d failed)",
		stats.Total, stats.Successful, stats.Skipped, stats.Failed)
	if a.result.Stopped {
		return a.styles.Warning.Render(fmt.Sprintf("Stopped after %d summarised chunks", len(a.result.Chunks)))
	}
	return a.styles.Success.Render(fmt.Sprintf("README ready from %s in %s",
		counts, a.result.Duration.Round(time.Millisecond)))
}

// record stores a status snapshot, collapsing consecutive updates of one stage.
func (a *App) record(st domain.ProcessingStatus) {
	a.status = st
	a.statusBar.SetStatus(st)
	if st.Stage == domain.StageIdle {
		return
	}
	if n := len(a.stages); n > 0 && a.stages[n-1].Stage == st.Stage {
		a.stages[n-1] = st
		return
	}
	a.stages = append(a.stages, st)
}

func (a *App) finish(result *driving.Result, err error) {
	a.done = true
	a.result = result
	a.err = err
	a.statusBar.SetDone(true)
	a.Close()

	final := a.ports.Processor.Status()
	if final.Stage.IsTerminal() {
		a.record(final)
	}
}

func (a *App) stop() {
	a.stopping = true
	a.ports.Processor.Stop()
}

// waitForStatus blocks on the next subscription update.
func (a *App) waitForStatus() tea.Cmd {
	updates := a.updates
	return func() tea.Msg {
		st, ok := <-updates
		if !ok {
			return messages.StatusClosed{}
		}
		return messages.StatusUpdated{Status: st}
	}
}

// runJob executes the pipeline and reports its outcome.
func (a *App) runJob() tea.Cmd {
	proc := a.ports.Processor
	job := a.job
	ctx := a.ctx
	return func() tea.Msg {
		var (
			res *driving.Result
			err error
		)
		if job.FromCache {
			res, err = proc.ProcessFromCache(ctx, job.Owner, job.Repo)
		} else {
			res, err = proc.Process(ctx, job.Owner, job.Repo)
		}
		return messages.RunFinished{Result: res, Err: err}
	}
}

func (a *App) repoName() string {
	return a.job.Owner + "/" + a.job.Repo
}

// Close ends the status subscription. Safe to call more than once.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

// SetWidth resizes the progress bar and status bar.
func (a *App) SetWidth(width int) {
	a.width = width
	a.bar.Width = max(width-4, 10)
	a.help.Width = width
	a.statusBar.SetWidth(width)
}

// Result returns the run result once finished.
func (a *App) Result() *driving.Result {
	return a.result
}

// Err returns the run error once finished.
func (a *App) Err() error {
	return a.err
}

// Done reports whether the run has finished.
func (a *App) Done() bool {
	return a.done
}

// Stages returns the stage history shown by the view.
func (a *App) Stages() []domain.ProcessingStatus {
	return a.stages
}

// Run executes job inside a Bubbletea program and returns the run outcome.
func Run(ctx context.Context, ports *Ports, job Job, opts ...tea.ProgramOption) (*driving.Result, error) {
	app, err := NewApp(ports, job)
	if err != nil {
		return nil, err
	}
	defer app.Close()

	final, err := tea.NewProgram(app.WithContext(ctx), opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}

	model, ok := final.(*App)
	if !ok || !model.Done() {
		// Quit before the run finished, e.g. a second ctrl+c while stopping.
		ports.Processor.Stop()
		return &driving.Result{Stopped: true, Chunks: ports.Processor.Partial()}, nil
	}
	return model.Result(), model.Err()
}
