package runner

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/Ossianbb/WorkoutTimer/internal/events"
	"github.com/Ossianbb/WorkoutTimer/internal/workout"
)

// command represents commands sent to the run goroutine
type command int

const (
	cmdStart command = iota
	cmdPause
	cmdSkip
	cmdReset
)

// Phase is the lifecycle state of a run
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhasePaused
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "Not Started"
	case PhaseRunning:
		return "Running"
	case PhasePaused:
		return "Paused"
	case PhaseFinished:
		return "Finished"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Snapshot is the read-only view of a run published to observers on every tick
// and transition.
type Snapshot struct {
	Phase            Phase
	StepIndex        int
	Step             workout.Step
	SecondsRemaining int
	NextExercise     string
	Progress         workout.ProgressInfo
	ProgressOK       bool
	ElapsedSeconds   int
	TotalSeconds     int
	PercentComplete  float64
}

// Controller advances a run through its step sequence on a one-second cadence.
// All state lives behind mu and is mutated only by the single run goroutine,
// which serializes ticks and user commands. The ticker is owned by that
// goroutine: started on Start, stopped on Pause, Reset, and Finished.
type Controller struct {
	cfg    workout.WorkoutConfig
	steps  []workout.Step
	total  int
	logger *log.Logger
	clock  clock.Clock

	mu               sync.RWMutex
	phase            Phase
	currentIndex     int
	secondsRemaining int
	cues             *cueTable

	snapshotFeed *events.Feed[Snapshot]
	cueFeed      *events.Feed[Cue]

	cmdChan      chan command
	doneChan     chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// Option configures a Controller
type Option func(*Controller)

// WithClock substitutes the wall clock. Tests use clock.NewMock to drive ticks
// deterministically.
func WithClock(c clock.Clock) Option {
	return func(ctrl *Controller) { ctrl.clock = c }
}

// New creates a Controller for the given config and its built step sequence.
// An empty step sequence is a caller error: configs must pass
// workout.Validate before a run is constructed.
func New(cfg workout.WorkoutConfig, steps []workout.Step, logger *log.Logger, opts ...Option) (*Controller, error) {
	if logger == nil {
		panic("Controller: logger cannot be nil")
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("runner: step sequence is empty")
	}

	c := &Controller{
		cfg:              cfg,
		steps:            steps,
		total:            workout.TotalSeconds(steps),
		logger:           logger,
		clock:            clock.New(),
		phase:            PhaseNotStarted,
		secondsRemaining: steps[0].DurationSeconds,
		cues:             newCueTable(),
		snapshotFeed:     events.NewFeed[Snapshot](true),
		cueFeed:          events.NewFeed[Cue](false),
		cmdChan:          make(chan command, 1),
		doneChan:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.wg.Add(1)
	go c.run()

	return c, nil
}

// ListenToSnapshots registers a channel to receive run snapshots.
// Returns a deregistration function. New subscribers receive the latest
// snapshot immediately once one exists.
func (c *Controller) ListenToSnapshots(ch chan<- Snapshot) func() {
	return c.snapshotFeed.Subscribe(ch)
}

// ListenToCues registers a channel to receive cue events.
// Returns a deregistration function.
func (c *Controller) ListenToCues(ch chan<- Cue) func() {
	return c.cueFeed.Subscribe(ch)
}

// Snapshot returns the current state of the run
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// Start begins or resumes the countdown. No-op while already Running, after
// the run has Finished, and for anything else that is not a valid start state.
func (c *Controller) Start() {
	c.mu.RLock()
	phase := c.phase
	c.mu.RUnlock()

	switch phase {
	case PhaseRunning:
		c.logger.Printf("Controller: already running")
		return
	case PhaseFinished:
		c.logger.Printf("Controller: run is finished - reset to start again")
		return
	}

	c.cmdChan <- cmdStart
}

// Resume continues counting down from the current remaining time. It is the
// same operation as Start.
func (c *Controller) Resume() {
	c.Start()
}

// Pause stops the countdown. No-op unless Running.
func (c *Controller) Pause() {
	c.mu.RLock()
	phase := c.phase
	c.mu.RUnlock()

	if phase != PhaseRunning {
		c.logger.Printf("Controller: cannot pause - not running")
		return
	}

	c.cmdChan <- cmdPause
}

// Skip advances to the next step immediately, regardless of remaining time.
// While Running the countdown continues from the new step's full duration;
// otherwise only the position moves. Skipping from the last step finishes the
// run. No-op once Finished.
func (c *Controller) Skip() {
	c.mu.RLock()
	phase := c.phase
	c.mu.RUnlock()

	if phase == PhaseFinished {
		c.logger.Printf("Controller: cannot skip - run is finished")
		return
	}

	c.cmdChan <- cmdSkip
}

// Reset stops the countdown and returns the run to the first step, even after
// it has Finished.
func (c *Controller) Reset() {
	c.cmdChan <- cmdReset
}

// Steps returns the immutable step sequence for this run
func (c *Controller) Steps() []workout.Step {
	return c.steps
}

// Shutdown stops the run goroutine and waits for it to exit.
// Safe to call multiple times - only the first call has effect.
func (c *Controller) Shutdown() {
	c.shutdownOnce.Do(func() {
		close(c.doneChan)
		c.wg.Wait()
		c.logger.Printf("Controller: shutdown complete")
	})
}

// --- Private methods ---

// snapshotLocked builds the current snapshot.
// MUST be called with mu held (at least read lock).
func (c *Controller) snapshotLocked() Snapshot {
	step := c.steps[c.currentIndex]
	progress, ok := workout.Progress(c.cfg, c.steps, c.currentIndex)

	elapsed := 0
	for i := 0; i < c.currentIndex; i++ {
		elapsed += c.steps[i].DurationSeconds
	}
	elapsed += step.DurationSeconds - c.secondsRemaining
	if c.phase == PhaseFinished {
		elapsed = c.total
	}

	percent := 0.0
	if c.total > 0 {
		percent = float64(elapsed) / float64(c.total) * 100
	}

	return Snapshot{
		Phase:            c.phase,
		StepIndex:        c.currentIndex,
		Step:             step,
		SecondsRemaining: c.secondsRemaining,
		NextExercise:     workout.NextExerciseLabel(c.steps, c.currentIndex),
		Progress:         progress,
		ProgressOK:       ok,
		ElapsedSeconds:   elapsed,
		TotalSeconds:     c.total,
		PercentComplete:  percent,
	}
}

// advanceLocked moves to the next step, or finishes the run when none remains.
// Returns true when the run finished. MUST be called with mu held.
func (c *Controller) advanceLocked() bool {
	if c.currentIndex+1 >= len(c.steps) {
		c.phase = PhaseFinished
		c.secondsRemaining = 0
		return true
	}
	c.currentIndex++
	c.secondsRemaining = c.steps[c.currentIndex].DurationSeconds
	return false
}

// tickResult holds the outcome of processing one timer tick
type tickResult struct {
	skip     bool // phase was not Running, ignore this tick
	finished bool
	snapshot Snapshot
	cues     []Cue
}

// handleTick decrements the countdown and advances on exhaustion, remaining
// Running across step boundaries so the new step counts down without a
// restart. A tick that lands after a pause or reset sees a non-Running phase
// here and is discarded.
func (c *Controller) handleTick() tickResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseRunning {
		return tickResult{skip: true}
	}

	c.secondsRemaining--

	finished := false
	if c.secondsRemaining <= 0 {
		finished = c.advanceLocked()
	}

	var cues []Cue
	if !finished {
		cues = c.cues.due(c.currentIndex, c.steps[c.currentIndex], c.secondsRemaining)
	}

	return tickResult{
		finished: finished,
		snapshot: c.snapshotLocked(),
		cues:     cues,
	}
}

// handleSkip advances the position while preserving the current phase, except
// that skipping past the last step always finishes the run.
func (c *Controller) handleSkip() tickResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseFinished {
		return tickResult{skip: true}
	}

	finished := c.advanceLocked()
	return tickResult{
		finished: finished,
		snapshot: c.snapshotLocked(),
	}
}

// run is the single goroutine that owns the ticker and serializes all state
// transitions.
func (c *Controller) run() {
	defer c.wg.Done()

	ticker := c.clock.Ticker(time.Second)
	ticker.Stop() // started when the run starts

	for {
		select {
		case <-c.doneChan:
			ticker.Stop()
			return

		case cmd := <-c.cmdChan:
			switch cmd {
			case cmdStart:
				snapshot := func() Snapshot {
					c.mu.Lock()
					defer c.mu.Unlock()
					c.phase = PhaseRunning
					return c.snapshotLocked()
				}()

				ticker.Reset(time.Second)
				c.snapshotFeed.Publish(snapshot)
				c.logger.Printf("Controller: running")

			case cmdPause:
				ticker.Stop()
				snapshot := func() Snapshot {
					c.mu.Lock()
					defer c.mu.Unlock()
					if c.phase == PhaseRunning {
						c.phase = PhasePaused
					}
					return c.snapshotLocked()
				}()

				c.snapshotFeed.Publish(snapshot)
				c.logger.Printf("Controller: paused")

			case cmdSkip:
				result := c.handleSkip()
				if result.skip {
					continue
				}
				if result.finished {
					ticker.Stop()
					c.logger.Printf("Controller: skipped past last step - finished")
				} else if result.snapshot.Phase == PhaseRunning {
					// Realign so the new step gets its full first second
					ticker.Reset(time.Second)
				}
				c.snapshotFeed.Publish(result.snapshot)

			case cmdReset:
				ticker.Stop()
				snapshot := func() Snapshot {
					c.mu.Lock()
					defer c.mu.Unlock()
					c.phase = PhaseNotStarted
					c.currentIndex = 0
					c.secondsRemaining = c.steps[0].DurationSeconds
					c.cues.reset()
					return c.snapshotLocked()
				}()

				c.snapshotFeed.Publish(snapshot)
				c.logger.Printf("Controller: reset")
			}

		case <-ticker.C:
			result := c.handleTick()
			if result.skip {
				continue
			}
			if result.finished {
				ticker.Stop()
				c.logger.Printf("Controller: workout complete")
			}
			c.snapshotFeed.Publish(result.snapshot)
			for _, cue := range result.cues {
				c.cueFeed.Publish(cue)
			}
		}
	}
}
