package ui

import (
	"context"
	"log"
	"sync"

	"github.com/Ossianbb/WorkoutTimer/internal/events"
	"github.com/Ossianbb/WorkoutTimer/internal/presets"
	"github.com/Ossianbb/WorkoutTimer/internal/runner"
	"github.com/Ossianbb/WorkoutTimer/internal/safego"
	"github.com/Ossianbb/WorkoutTimer/internal/workout"
)

// Screen identifies which page of the UI is active
type Screen int

const (
	ScreenSetup Screen = iota // Workout configuration form and presets
	ScreenRun                 // Countdown dashboard
)

// Notice is a transient user-facing message shown on the setup screen.
// An empty Text clears the display.
type Notice struct {
	Text    string
	IsError bool
}

const maxLogLines = 1000

// Model is the state shared between the controller and the view. Views listen
// to its feeds; the controller writes through its setters. All state is
// snapshotted under the lock and published after release.
type Model struct {
	screenFeed   *events.Feed[Screen]
	snapshotFeed *events.Feed[runner.Snapshot]
	cueFeed      *events.Feed[runner.Cue]
	presetFeed   *events.Feed[[]presets.Preset]
	formFeed     *events.Feed[workout.WorkoutConfig]
	noticeFeed   *events.Feed[Notice]
	closeFeed    *events.Feed[struct{}]
	logFeed      *events.Feed[string]

	mu          sync.RWMutex
	screen      Screen
	snapshot    runner.Snapshot
	hasSnapshot bool
	presetList  []presets.Preset

	logMu    sync.RWMutex
	logLines []string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *log.Logger
}

// NewModel creates the model and starts draining uiLogChan into the log tail
// buffer
func NewModel(logger *log.Logger, uiLogChan <-chan string) *Model {
	if logger == nil {
		panic("Model: logger cannot be nil")
	}
	if uiLogChan == nil {
		panic("Model: uiLogChan cannot be nil")
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		screenFeed:   events.NewFeed[Screen](true),
		snapshotFeed: events.NewFeed[runner.Snapshot](true),
		cueFeed:      events.NewFeed[runner.Cue](false),
		presetFeed:   events.NewFeed[[]presets.Preset](true),
		formFeed:     events.NewFeed[workout.WorkoutConfig](true),
		noticeFeed:   events.NewFeed[Notice](false),
		closeFeed:    events.NewFeed[struct{}](true),
		logFeed:      events.NewFeed[string](false),
		screen:       ScreenSetup,
		logLines:     make([]string, 0, maxLogLines),
		ctx:          ctx,
		cancel:       cancel,
		logger:       logger,
	}

	m.wg.Add(1)
	safego.Go(logger, func() { m.readFromLogChannel(ctx, uiLogChan) })

	return m
}

// Shutdown stops the model's goroutines and waits for them to finish
func (m *Model) Shutdown() {
	m.cancel()
	m.wg.Wait()
	m.logger.Println("Model: shutdown complete")
}

// ListenToScreen registers a channel for screen changes
func (m *Model) ListenToScreen(ch chan<- Screen) func() {
	return m.screenFeed.Subscribe(ch)
}

// GetScreen returns the active screen
func (m *Model) GetScreen() Screen {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.screen
}

// SetScreen switches the active screen and notifies listeners
func (m *Model) SetScreen(screen Screen) {
	m.mu.Lock()
	if m.screen == screen {
		m.mu.Unlock()
		return
	}
	m.screen = screen
	m.mu.Unlock()

	m.screenFeed.Publish(screen)
}

// ListenToRunSnapshots registers a channel for run state updates
func (m *Model) ListenToRunSnapshots(ch chan<- runner.Snapshot) func() {
	return m.snapshotFeed.Subscribe(ch)
}

// GetRunSnapshot returns the latest run snapshot, if any
func (m *Model) GetRunSnapshot() (runner.Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot, m.hasSnapshot
}

// SetRunSnapshot stores the latest run snapshot and notifies listeners
func (m *Model) SetRunSnapshot(snapshot runner.Snapshot) {
	m.mu.Lock()
	m.snapshot = snapshot
	m.hasSnapshot = true
	m.mu.Unlock()

	m.snapshotFeed.Publish(snapshot)
}

// ListenToCues registers a channel for cue events
func (m *Model) ListenToCues(ch chan<- runner.Cue) func() {
	return m.cueFeed.Subscribe(ch)
}

// NotifyCue forwards a cue event to listeners
func (m *Model) NotifyCue(cue runner.Cue) {
	m.cueFeed.Publish(cue)
}

// ListenToPresets registers a channel for preset list changes
func (m *Model) ListenToPresets(ch chan<- []presets.Preset) func() {
	return m.presetFeed.Subscribe(ch)
}

// GetPresets returns the current preset list
func (m *Model) GetPresets() []presets.Preset {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.presetList
}

// SetPresets stores the preset list and notifies listeners
func (m *Model) SetPresets(list []presets.Preset) {
	m.mu.Lock()
	m.presetList = list
	m.mu.Unlock()

	m.presetFeed.Publish(list)
}

// ListenToFormConfig registers a channel that receives a workout config to
// fill the setup form with (loading a preset)
func (m *Model) ListenToFormConfig(ch chan<- workout.WorkoutConfig) func() {
	return m.formFeed.Subscribe(ch)
}

// SetFormConfig pushes a config into the setup form
func (m *Model) SetFormConfig(cfg workout.WorkoutConfig) {
	m.formFeed.Publish(cfg)
}

// ListenToNotices registers a channel for user-facing messages
func (m *Model) ListenToNotices(ch chan<- Notice) func() {
	return m.noticeFeed.Subscribe(ch)
}

// NotifyError publishes a blocking error message
func (m *Model) NotifyError(text string) {
	m.logger.Printf("Model: error notice: %s", text)
	m.noticeFeed.Publish(Notice{Text: text, IsError: true})
}

// ListenToCloseApplication registers a channel for the application close signal
func (m *Model) ListenToCloseApplication(ch chan<- struct{}) func() {
	return m.closeFeed.Subscribe(ch)
}

// RequestCloseApplication signals that the application should exit
func (m *Model) RequestCloseApplication() {
	m.closeFeed.Publish(struct{}{})
}

// ListenToLog registers a channel for new log lines
func (m *Model) ListenToLog(ch chan<- string) func() {
	return m.logFeed.Subscribe(ch)
}

// GetLogTail returns the last n log lines
func (m *Model) GetLogTail(n int) []string {
	m.logMu.RLock()
	defer m.logMu.RUnlock()

	if n <= 0 {
		return []string{}
	}
	if n > len(m.logLines) {
		n = len(m.logLines)
	}
	result := make([]string, n)
	copy(result, m.logLines[len(m.logLines)-n:])
	return result
}

func (m *Model) readFromLogChannel(ctx context.Context, logChan <-chan string) {
	defer m.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-logChan:
			if !ok {
				return
			}

			m.logMu.Lock()
			m.logLines = append(m.logLines, line)
			if len(m.logLines) > maxLogLines {
				m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
			}
			m.logMu.Unlock()

			m.logFeed.Publish(line)
		}
	}
}
