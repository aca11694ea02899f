package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/rivo/tview"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Ossianbb/WorkoutTimer/internal/config"
	"github.com/Ossianbb/WorkoutTimer/internal/presets"
	"github.com/Ossianbb/WorkoutTimer/internal/ui"
)

// channelWriter forwards log output to the in-app log pane. Writes never
// block; if the UI falls behind, lines are dropped rather than stalling the
// logger.
type channelWriter struct {
	ch chan<- string
}

func (w *channelWriter) Write(p []byte) (int, error) {
	select {
	case w.ch <- string(p):
	default:
	}
	return len(p), nil
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "workout-timer: %v\n", err)
		os.Exit(1)
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	}
	defer fileWriter.Close()

	uiLogChan := make(chan string, 256)
	logger := log.New(io.MultiWriter(fileWriter, &channelWriter{ch: uiLogChan}), "", log.LstdFlags)

	logger.Printf("workout-timer starting, presets=%s", cfg.PresetFile)

	app := tview.NewApplication()

	model := ui.NewModel(logger, uiLogChan)
	store := presets.NewStore(cfg.PresetFile, logger)
	controller := ui.NewController(model, store, cfg, logger)
	impl := ui.NewTviewImpl(logger, app)
	view := ui.NewBaseView(ui.NewBaseViewArg{
		Impl:       impl,
		Model:      model,
		Controller: controller,
		Logger:     logger,
	})

	runErr := view.Run()

	view.Shutdown()
	controller.Shutdown()
	model.Shutdown()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "workout-timer: UI error: %v\n", runErr)
		os.Exit(1)
	}
	logger.Printf("workout-timer exited cleanly")
}
