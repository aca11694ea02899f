package ui

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Ossianbb/WorkoutTimer/internal/presets"
	"github.com/Ossianbb/WorkoutTimer/internal/runner"
	"github.com/Ossianbb/WorkoutTimer/internal/safego"
	"github.com/Ossianbb/WorkoutTimer/internal/workout"
)

// ViewImpl is the framework-facing side of the view. BaseView drives it from
// model events; the implementation owns the widgets and never touches the
// model or controller directly outside the callbacks set up in Initialize.
type ViewImpl interface {
	// Initialize builds the widgets and wires their callbacks to the controller
	Initialize(controller *Controller)

	// SetupKeyboardHandlers installs the global key bindings
	SetupKeyboardHandlers(controller *Controller)

	// SetScreen switches between the setup form and the run dashboard
	SetScreen(screen Screen)

	// SetFormConfig fills the setup form fields from a workout config
	SetFormConfig(cfg workout.WorkoutConfig)

	// SetPresetList replaces the contents of the preset list
	SetPresetList(list []presets.Preset)

	// UpdateRunSnapshot renders the run dashboard from a snapshot
	UpdateRunSnapshot(snapshot runner.Snapshot)

	// FlashCue displays a transient cue on the run dashboard
	FlashCue(cue runner.Cue)

	// ShowNotice displays a validation or status message on the setup screen
	ShowNotice(notice Notice)

	// Log view plumbing
	GetLogViewHeight() int
	ClearLogView()
	WriteLogLine(line string) error

	// Draw refreshes the screen
	Draw() error

	// Run starts the UI loop and blocks until it exits
	Run() error

	// Stop terminates the UI loop
	Stop()
}

// BaseView connects the model's event feeds to a ViewImpl. It owns the
// listener goroutines; the implementation stays free of concurrency.
type BaseView struct {
	impl       ViewImpl
	model      *Model
	controller *Controller
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	logger     *log.Logger
}

// NewBaseViewArg holds the arguments for creating a BaseView
type NewBaseViewArg struct {
	Impl       ViewImpl
	Model      *Model
	Controller *Controller
	Logger     *log.Logger
}

// NewBaseView wires the view implementation to the model and controller
func NewBaseView(args NewBaseViewArg) *BaseView {
	if args.Logger == nil {
		panic("BaseView: logger cannot be nil")
	}
	if args.Impl == nil {
		panic("BaseView: impl cannot be nil")
	}
	if args.Model == nil {
		panic("BaseView: model cannot be nil")
	}
	if args.Controller == nil {
		panic("BaseView: controller cannot be nil")
	}
	ctx, cancel := context.WithCancel(context.Background())

	view := &BaseView{
		impl:       args.Impl,
		model:      args.Model,
		controller: args.Controller,
		ctx:        ctx,
		cancel:     cancel,
		logger:     args.Logger,
	}

	args.Impl.Initialize(args.Controller)
	args.Impl.SetupKeyboardHandlers(args.Controller)
	args.Impl.SetScreen(args.Model.GetScreen())
	args.Impl.SetPresetList(args.Model.GetPresets())

	view.wg.Add(1)
	safego.Go(view.logger, func() { view.monitorLogResize() })
	view.updateLogDisplay()

	view.setupEventListeners()

	return view
}

func (view *BaseView) setupEventListeners() {
	screenChan := make(chan Screen, 1)
	screenUnregister := view.model.ListenToScreen(screenChan)
	view.wg.Add(1)
	safego.Go(view.logger, func() {
		defer view.wg.Done()
		defer screenUnregister()
		for {
			select {
			case <-view.ctx.Done():
				return
			case screen, ok := <-screenChan:
				if !ok {
					return
				}
				view.impl.SetScreen(screen)
				view.drawOrLog()
			}
		}
	})

	snapshotChan := make(chan runner.Snapshot, 4)
	snapshotUnregister := view.model.ListenToRunSnapshots(snapshotChan)
	view.wg.Add(1)
	safego.Go(view.logger, func() {
		defer view.wg.Done()
		defer snapshotUnregister()
		for {
			select {
			case <-view.ctx.Done():
				return
			case snapshot, ok := <-snapshotChan:
				if !ok {
					return
				}
				view.impl.UpdateRunSnapshot(snapshot)
				view.drawOrLog()
			}
		}
	})

	cueChan := make(chan runner.Cue, 4)
	cueUnregister := view.model.ListenToCues(cueChan)
	view.wg.Add(1)
	safego.Go(view.logger, func() {
		defer view.wg.Done()
		defer cueUnregister()
		for {
			select {
			case <-view.ctx.Done():
				return
			case cue, ok := <-cueChan:
				if !ok {
					return
				}
				view.impl.FlashCue(cue)
				view.drawOrLog()
			}
		}
	})

	presetChan := make(chan []presets.Preset, 1)
	presetUnregister := view.model.ListenToPresets(presetChan)
	view.wg.Add(1)
	safego.Go(view.logger, func() {
		defer view.wg.Done()
		defer presetUnregister()
		for {
			select {
			case <-view.ctx.Done():
				return
			case list, ok := <-presetChan:
				if !ok {
					return
				}
				view.impl.SetPresetList(list)
				view.drawOrLog()
			}
		}
	})

	formChan := make(chan workout.WorkoutConfig, 1)
	formUnregister := view.model.ListenToFormConfig(formChan)
	view.wg.Add(1)
	safego.Go(view.logger, func() {
		defer view.wg.Done()
		defer formUnregister()
		for {
			select {
			case <-view.ctx.Done():
				return
			case cfg, ok := <-formChan:
				if !ok {
					return
				}
				view.impl.SetFormConfig(cfg)
				view.drawOrLog()
			}
		}
	})

	noticeChan := make(chan Notice, 1)
	noticeUnregister := view.model.ListenToNotices(noticeChan)
	view.wg.Add(1)
	safego.Go(view.logger, func() {
		defer view.wg.Done()
		defer noticeUnregister()
		for {
			select {
			case <-view.ctx.Done():
				return
			case notice, ok := <-noticeChan:
				if !ok {
					return
				}
				view.impl.ShowNotice(notice)
				view.drawOrLog()
			}
		}
	})

	logChan := make(chan string, 1)
	logUnregister := view.model.ListenToLog(logChan)
	view.wg.Add(1)
	safego.Go(view.logger, func() {
		defer view.wg.Done()
		defer logUnregister()
		for {
			select {
			case <-view.ctx.Done():
				return
			case _, ok := <-logChan:
				if !ok {
					return
				}
				view.updateLogDisplay()
			}
		}
	})

	closeChan := make(chan struct{}, 1)
	closeUnregister := view.model.ListenToCloseApplication(closeChan)
	view.wg.Add(1)
	safego.Go(view.logger, func() {
		defer view.wg.Done()
		defer closeUnregister()
		select {
		case <-view.ctx.Done():
			return
		case _, ok := <-closeChan:
			if !ok {
				return
			}
			view.impl.Stop()
		}
	})
}

func (view *BaseView) drawOrLog() {
	if err := view.impl.Draw(); err != nil {
		view.logger.Printf("BaseView: Error drawing: %v", err)
	}
}

func (view *BaseView) updateLogDisplay() {
	height := view.impl.GetLogViewHeight()
	if height <= 0 {
		return
	}

	logLines := view.model.GetLogTail(height)

	view.impl.ClearLogView()
	for _, line := range logLines {
		if err := view.impl.WriteLogLine(line); err != nil {
			view.logger.Printf("BaseView: Error writing to log view: %v", err)
		}
	}
}

// monitorLogResize re-renders the log tail when the terminal is resized
func (view *BaseView) monitorLogResize() {
	defer view.wg.Done()
	var lastHeight int
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-view.ctx.Done():
			return
		case <-ticker.C:
			height := view.impl.GetLogViewHeight()
			if height != lastHeight && height > 0 {
				lastHeight = height
				view.updateLogDisplay()
				view.drawOrLog()
			}
		}
	}
}

// Run starts the UI and blocks until it exits
func (view *BaseView) Run() error {
	return view.impl.Run()
}

// Shutdown stops all listener goroutines and waits for them to finish
func (view *BaseView) Shutdown() {
	view.logger.Println("BaseView: Shutting down")
	view.cancel()
	view.wg.Wait()
	view.logger.Println("BaseView: Shutdown complete")
}
