package ui

import (
	"context"
	"log"
	"sync"

	"github.com/Ossianbb/WorkoutTimer/internal/config"
	"github.com/Ossianbb/WorkoutTimer/internal/presets"
	"github.com/Ossianbb/WorkoutTimer/internal/runner"
	"github.com/Ossianbb/WorkoutTimer/internal/safego"
	"github.com/Ossianbb/WorkoutTimer/internal/workout"
)

// Controller handles UI events: it validates form submissions, owns the run
// controller for the active workout, and keeps the preset store and model in
// sync. One run controller exists at a time; it is discarded when the user
// returns to the setup screen.
type Controller struct {
	model  *Model
	store  *presets.Store
	appCfg *config.Config
	logger *log.Logger

	mu        sync.Mutex
	run       *runner.Controller
	runCancel context.CancelFunc

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewController creates a Controller and publishes the initial preset list
// and form defaults to the model
func NewController(model *Model, store *presets.Store, appCfg *config.Config, logger *log.Logger) *Controller {
	if model == nil {
		panic("Controller: model cannot be nil")
	}
	if store == nil {
		panic("Controller: store cannot be nil")
	}
	if appCfg == nil {
		panic("Controller: appCfg cannot be nil")
	}
	if logger == nil {
		panic("Controller: logger cannot be nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		model:  model,
		store:  store,
		appCfg: appCfg,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}

	model.SetPresets(store.List())
	model.SetFormConfig(c.DefaultConfig())

	return c
}

// DefaultConfig returns the workout config the setup form is pre-filled with
func (c *Controller) DefaultConfig() workout.WorkoutConfig {
	return workout.WorkoutConfig{
		WorkSeconds:                 c.appCfg.DefaultWorkSeconds,
		RestBetweenExercisesSeconds: c.appCfg.DefaultRestExerciseSeconds,
		RestBetweenCircuitsSeconds:  c.appCfg.DefaultRestCircuitSeconds,
		TransitionRestSeconds:       c.appCfg.DefaultTransitionSeconds,
		CircuitA:                    workout.CircuitConfig{Repeats: c.appCfg.DefaultRepeats},
		CircuitB:                    workout.CircuitConfig{Repeats: c.appCfg.DefaultRepeats},
	}
}

// BeginWorkout validates the submitted config and, if it is runnable, builds
// the step sequence, starts a fresh run controller, and switches to the run
// screen. Validation failures surface as a blocking notice on the setup
// screen.
func (c *Controller) BeginWorkout(cfg workout.WorkoutConfig) {
	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		c.model.NotifyError(err.Error())
		return
	}

	steps := workout.BuildSteps(cfg)
	run, err := runner.New(cfg, steps, c.logger)
	if err != nil {
		c.model.NotifyError(err.Error())
		return
	}

	c.mu.Lock()
	c.stopRunLocked()
	runCtx, runCancel := context.WithCancel(c.ctx)
	c.run = run
	c.runCancel = runCancel
	c.mu.Unlock()

	c.forwardRunEvents(runCtx, run)

	c.logger.Printf("UIController: starting workout, %d steps, %s total",
		len(steps), workout.FormatSeconds(workout.TotalSeconds(steps)))
	c.model.SetScreen(ScreenRun)
	run.Start()
}

// forwardRunEvents pumps the run controller's snapshots and cues into the
// model until the run is discarded
func (c *Controller) forwardRunEvents(ctx context.Context, run *runner.Controller) {
	snapshotChan := make(chan runner.Snapshot, 16)
	snapshotUnregister := run.ListenToSnapshots(snapshotChan)
	c.wg.Add(1)
	safego.Go(c.logger, func() {
		defer c.wg.Done()
		defer snapshotUnregister()
		for {
			select {
			case <-ctx.Done():
				return
			case snapshot, ok := <-snapshotChan:
				if !ok {
					return
				}
				c.model.SetRunSnapshot(snapshot)
			}
		}
	})

	cueChan := make(chan runner.Cue, 16)
	cueUnregister := run.ListenToCues(cueChan)
	c.wg.Add(1)
	safego.Go(c.logger, func() {
		defer c.wg.Done()
		defer cueUnregister()
		for {
			select {
			case <-ctx.Done():
				return
			case cue, ok := <-cueChan:
				if !ok {
					return
				}
				c.model.NotifyCue(cue)
			}
		}
	})
}

// currentRun returns the active run controller, or nil
func (c *Controller) currentRun() *runner.Controller {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.run
}

// ToggleRun starts, pauses, or resumes the countdown based on its phase
func (c *Controller) ToggleRun() {
	run := c.currentRun()
	if run == nil {
		return
	}

	switch run.Snapshot().Phase {
	case runner.PhaseRunning:
		run.Pause()
	case runner.PhaseNotStarted, runner.PhasePaused:
		run.Start()
	default:
		c.logger.Printf("UIController: run finished - reset or leave")
	}
}

// SkipStep advances the run to the next step
func (c *Controller) SkipStep() {
	if run := c.currentRun(); run != nil {
		run.Skip()
	}
}

// ResetRun returns the run to its first step
func (c *Controller) ResetRun() {
	if run := c.currentRun(); run != nil {
		run.Reset()
	}
}

// LeaveRun discards the active run and returns to the setup screen
func (c *Controller) LeaveRun() {
	c.mu.Lock()
	c.stopRunLocked()
	c.mu.Unlock()

	c.model.SetScreen(ScreenSetup)
}

// stopRunLocked shuts down the active run and its event forwarders.
// MUST be called with mu held.
func (c *Controller) stopRunLocked() {
	if c.run == nil {
		return
	}
	c.runCancel()
	c.run.Shutdown()
	c.run = nil
	c.runCancel = nil
}

// SavePreset stores the given config under name and refreshes the preset list
func (c *Controller) SavePreset(name string, cfg workout.WorkoutConfig) {
	if name == "" {
		c.model.NotifyError("preset name cannot be empty")
		return
	}
	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		c.model.NotifyError(err.Error())
		return
	}
	c.store.Save(name, cfg)
	c.model.SetPresets(c.store.List())
}

// LoadPreset fills the setup form with the named preset's config
func (c *Controller) LoadPreset(id string) {
	p, ok := c.store.Get(id)
	if !ok {
		c.logger.Printf("UIController: unknown preset %s", id)
		return
	}
	c.logger.Printf("UIController: loaded preset %q", p.Name)
	c.model.SetFormConfig(p.Config)
}

// DeletePreset removes a preset and refreshes the list
func (c *Controller) DeletePreset(id string) {
	c.store.Delete(id)
	c.model.SetPresets(c.store.List())
}

// OnEscapeKey leaves the run screen, or requests application exit from the
// setup screen
func (c *Controller) OnEscapeKey() {
	if c.model.GetScreen() == ScreenRun {
		c.LeaveRun()
		return
	}
	c.model.RequestCloseApplication()
}

// Shutdown discards the active run and stops the controller's goroutines
func (c *Controller) Shutdown() {
	c.mu.Lock()
	c.stopRunLocked()
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
	c.logger.Printf("UIController: shutdown complete")
}
