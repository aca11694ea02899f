package ui

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/Ossianbb/WorkoutTimer/internal/presets"
	"github.com/Ossianbb/WorkoutTimer/internal/runner"
	"github.com/Ossianbb/WorkoutTimer/internal/workout"
)

// Page names for tview.Pages
const (
	pageSetup = "setup"
	pageRun   = "run"
)

const progressBarWidth = 30

// TviewImpl implements ViewImpl using tview (curses-based terminal UI)
type TviewImpl struct {
	logger        *log.Logger
	app           *tview.Application
	currentScreen Screen

	// Root container that holds all pages
	pages *tview.Pages

	// Shared components (visible on both screens)
	logView  *tview.TextView
	mainFlex *tview.Flex // Screen content on left, logs on right

	// Setup screen components
	setupFlex        *tview.Flex
	form             *tview.Form
	workField        *tview.InputField
	restExField      *tview.InputField
	restCircuitField *tview.InputField
	transitionField  *tview.InputField
	circuitAField    *tview.TextArea
	repeatsAField    *tview.InputField
	circuitBCheck    *tview.Checkbox
	circuitBField    *tview.TextArea
	repeatsBField    *tview.InputField
	presetNameField  *tview.InputField
	estimateText     *tview.TextView
	noticeText       *tview.TextView
	presetList       *tview.List
	presetItems      []presets.Preset
	defaults         workout.WorkoutConfig

	// Run screen components
	runFlex       *tview.Flex
	stepPanel     *tview.TextView
	progressPanel *tview.TextView

	// Last cue, shown on the step panel while its step is current
	cueStepIndex int
	cueText      string
}

func NewTviewImpl(logger *log.Logger, app *tview.Application) *TviewImpl {
	return &TviewImpl{
		logger:        logger,
		app:           app,
		currentScreen: ScreenSetup,
		cueStepIndex:  -1,
	}
}

// Initialize sets up the tview widgets
func (ui *TviewImpl) Initialize(controller *Controller) {
	ui.defaults = controller.DefaultConfig()

	// Shared log view.
	// Note: Don't use SetChangedFunc with app.Draw() - it can cause hangs
	// during shutdown when the app has been stopped but log messages are
	// still being written. The BaseView listeners call Draw() after updates.
	ui.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	ui.logView.SetBorder(true).SetTitle(" Logs ")

	ui.pages = tview.NewPages()

	ui.initSetupScreen(controller)
	ui.initRunScreen()

	ui.pages.AddPage(pageSetup, ui.setupFlex, true, true)
	ui.pages.AddPage(pageRun, ui.runFlex, true, false)

	ui.mainFlex = tview.NewFlex().
		AddItem(ui.pages, 0, 2, true).
		AddItem(ui.logView, 0, 1, false)
}

// initSetupScreen sets up the workout configuration form and preset list
func (ui *TviewImpl) initSetupScreen(controller *Controller) {
	numeric := func(textToCheck string, lastChar rune) bool {
		return lastChar >= '0' && lastChar <= '9'
	}
	onChange := func(string) { ui.updateEstimate() }

	ui.workField = tview.NewInputField().
		SetLabel("Work seconds").
		SetFieldWidth(5).
		SetAcceptanceFunc(numeric).
		SetChangedFunc(onChange)
	ui.restExField = tview.NewInputField().
		SetLabel("Rest between exercises").
		SetFieldWidth(5).
		SetAcceptanceFunc(numeric).
		SetChangedFunc(onChange)
	ui.restCircuitField = tview.NewInputField().
		SetLabel("Rest between rounds").
		SetFieldWidth(5).
		SetAcceptanceFunc(numeric).
		SetChangedFunc(onChange)
	ui.transitionField = tview.NewInputField().
		SetLabel("Transition rest").
		SetFieldWidth(5).
		SetAcceptanceFunc(numeric).
		SetChangedFunc(onChange)

	ui.circuitAField = tview.NewTextArea().
		SetLabel("Circuit A exercises").
		SetSize(4, 40).
		SetPlaceholder("one per line, or: Plank | 60")
	ui.circuitAField.SetChangedFunc(ui.updateEstimate)
	ui.repeatsAField = tview.NewInputField().
		SetLabel("Circuit A rounds").
		SetFieldWidth(3).
		SetAcceptanceFunc(numeric).
		SetChangedFunc(onChange)

	ui.circuitBCheck = tview.NewCheckbox().
		SetLabel("Enable circuit B").
		SetChangedFunc(func(bool) { ui.updateEstimate() })
	ui.circuitBField = tview.NewTextArea().
		SetLabel("Circuit B exercises").
		SetSize(4, 40).
		SetPlaceholder("one per line, or: Plank | 60")
	ui.circuitBField.SetChangedFunc(ui.updateEstimate)
	ui.repeatsBField = tview.NewInputField().
		SetLabel("Circuit B rounds").
		SetFieldWidth(3).
		SetAcceptanceFunc(numeric).
		SetChangedFunc(onChange)

	ui.presetNameField = tview.NewInputField().
		SetLabel("Preset name").
		SetFieldWidth(20)

	ui.form = tview.NewForm().
		AddFormItem(ui.workField).
		AddFormItem(ui.restExField).
		AddFormItem(ui.restCircuitField).
		AddFormItem(ui.transitionField).
		AddFormItem(ui.circuitAField).
		AddFormItem(ui.repeatsAField).
		AddFormItem(ui.circuitBCheck).
		AddFormItem(ui.circuitBField).
		AddFormItem(ui.repeatsBField).
		AddFormItem(ui.presetNameField).
		AddButton("Start", func() {
			cfg, ok := ui.readFormConfig()
			if !ok {
				return
			}
			controller.BeginWorkout(cfg)
		}).
		AddButton("Save Preset", func() {
			cfg, ok := ui.readFormConfig()
			if !ok {
				return
			}
			controller.SavePreset(strings.TrimSpace(ui.presetNameField.GetText()), cfg)
		})
	ui.form.SetBorder(true).SetTitle(" Workout Setup ")

	ui.estimateText = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.estimateText.SetBorder(true).SetTitle(" Estimated Duration ")

	ui.noticeText = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)

	ui.presetList = tview.NewList().
		ShowSecondaryText(true).
		SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			if index < len(ui.presetItems) {
				controller.LoadPreset(ui.presetItems[index].ID)
			}
		})
	ui.presetList.SetBorder(true).SetTitle(" Presets ")
	ui.presetList.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'd' {
			index := ui.presetList.GetCurrentItem()
			if index >= 0 && index < len(ui.presetItems) {
				controller.DeletePreset(ui.presetItems[index].ID)
			}
			return nil
		}
		return event
	})

	instructionsText := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	instructionsText.SetText("[yellow]Ctrl+P[white] Focus Presets  |  [yellow]Enter[white] Load Preset  |  [yellow]D[white] Delete Preset  |  [yellow]Esc[white] Quit")

	rightColumn := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.presetList, 0, 1, false).
		AddItem(ui.estimateText, 4, 0, false).
		AddItem(ui.noticeText, 2, 0, false)

	contentFlex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(ui.form, 0, 2, true).
		AddItem(rightColumn, 0, 1, false)

	ui.setupFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(instructionsText, 1, 0, false).
		AddItem(contentFlex, 0, 1, true)
}

// initRunScreen sets up the run dashboard panels
func (ui *TviewImpl) initRunScreen() {
	instructionsText := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	instructionsText.SetText("[yellow]Space[white] Start/Pause  |  [yellow]S[white] Skip  |  [yellow]R[white] Restart  |  [yellow]Esc[white] Back to Setup")

	ui.stepPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	ui.stepPanel.SetBorder(true).SetTitle(" Current Step ")
	ui.stepPanel.SetText("\n\n  [gray]Waiting to start...[white]")

	ui.progressPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.progressPanel.SetBorder(true).SetTitle(" Progress ")

	ui.runFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(instructionsText, 1, 0, false).
		AddItem(ui.stepPanel, 0, 2, true).
		AddItem(ui.progressPanel, 0, 1, false)
}

// readFormConfig assembles a workout config from the form fields. Unparseable
// numbers fall back to the defaults and are clamped; bad exercise lines are a
// hard error surfaced as a notice.
func (ui *TviewImpl) readFormConfig() (workout.WorkoutConfig, bool) {
	exercisesA, err := ParseExerciseList(ui.circuitAField.GetText())
	if err != nil {
		ui.ShowNotice(Notice{Text: fmt.Sprintf("circuit A: %v", err), IsError: true})
		return workout.WorkoutConfig{}, false
	}
	exercisesB, err := ParseExerciseList(ui.circuitBField.GetText())
	if err != nil {
		ui.ShowNotice(Notice{Text: fmt.Sprintf("circuit B: %v", err), IsError: true})
		return workout.WorkoutConfig{}, false
	}

	cfg := workout.WorkoutConfig{
		WorkSeconds:                 ParseSeconds(ui.workField.GetText(), ui.defaults.WorkSeconds),
		RestBetweenExercisesSeconds: ParseRestSeconds(ui.restExField.GetText(), ui.defaults.RestBetweenExercisesSeconds),
		RestBetweenCircuitsSeconds:  ParseRestSeconds(ui.restCircuitField.GetText(), ui.defaults.RestBetweenCircuitsSeconds),
		TransitionRestSeconds:       ParseRestSeconds(ui.transitionField.GetText(), ui.defaults.TransitionRestSeconds),
		CircuitA: workout.CircuitConfig{
			Exercises: exercisesA,
			Repeats:   ParseRepeats(ui.repeatsAField.GetText(), ui.defaults.CircuitA.Repeats),
		},
		CircuitB: workout.CircuitConfig{
			Exercises: exercisesB,
			Repeats:   ParseRepeats(ui.repeatsBField.GetText(), ui.defaults.CircuitB.Repeats),
			Enabled:   ui.circuitBCheck.IsChecked(),
		},
	}
	ui.ShowNotice(Notice{})
	return cfg, true
}

// updateEstimate recomputes the estimated total duration from the form
func (ui *TviewImpl) updateEstimate() {
	if ui.estimateText == nil {
		return
	}

	exercisesA, errA := ParseExerciseList(ui.circuitAField.GetText())
	exercisesB, errB := ParseExerciseList(ui.circuitBField.GetText())
	if errA != nil || errB != nil || len(exercisesA) == 0 {
		ui.estimateText.SetText("\n  [gray]--:--[white]")
		return
	}

	cfg := workout.WorkoutConfig{
		WorkSeconds:                 ParseSeconds(ui.workField.GetText(), ui.defaults.WorkSeconds),
		RestBetweenExercisesSeconds: ParseRestSeconds(ui.restExField.GetText(), ui.defaults.RestBetweenExercisesSeconds),
		RestBetweenCircuitsSeconds:  ParseRestSeconds(ui.restCircuitField.GetText(), ui.defaults.RestBetweenCircuitsSeconds),
		TransitionRestSeconds:       ParseRestSeconds(ui.transitionField.GetText(), ui.defaults.TransitionRestSeconds),
		CircuitA: workout.CircuitConfig{
			Exercises: exercisesA,
			Repeats:   ParseRepeats(ui.repeatsAField.GetText(), ui.defaults.CircuitA.Repeats),
		},
		CircuitB: workout.CircuitConfig{
			Exercises: exercisesB,
			Repeats:   ParseRepeats(ui.repeatsBField.GetText(), ui.defaults.CircuitB.Repeats),
			Enabled:   ui.circuitBCheck.IsChecked(),
		},
	}.Normalized()

	steps := workout.BuildSteps(cfg)
	total := workout.TotalSeconds(steps)
	ui.estimateText.SetText(fmt.Sprintf("\n  [yellow]%s[white]  (%d steps)", workout.FormatSeconds(total), len(steps)))
}

// SetFormConfig fills the setup form fields from a workout config
func (ui *TviewImpl) SetFormConfig(cfg workout.WorkoutConfig) {
	ui.workField.SetText(strconv.Itoa(cfg.WorkSeconds))
	ui.restExField.SetText(strconv.Itoa(cfg.RestBetweenExercisesSeconds))
	ui.restCircuitField.SetText(strconv.Itoa(cfg.RestBetweenCircuitsSeconds))
	ui.transitionField.SetText(strconv.Itoa(cfg.TransitionRestSeconds))
	ui.circuitAField.SetText(FormatExerciseList(cfg.CircuitA.Exercises), false)
	ui.repeatsAField.SetText(strconv.Itoa(cfg.CircuitA.Repeats))
	ui.circuitBCheck.SetChecked(cfg.CircuitB.Enabled)
	ui.circuitBField.SetText(FormatExerciseList(cfg.CircuitB.Exercises), false)
	ui.repeatsBField.SetText(strconv.Itoa(cfg.CircuitB.Repeats))
	ui.updateEstimate()
}

// SetPresetList replaces the contents of the preset list
func (ui *TviewImpl) SetPresetList(list []presets.Preset) {
	ui.presetItems = list

	currentIndex := ui.presetList.GetCurrentItem()
	ui.presetList.Clear()

	for _, p := range list {
		cfg := p.Config.Normalized()
		total := workout.TotalSeconds(workout.BuildSteps(cfg))
		ui.presetList.AddItem(p.Name, workout.FormatSeconds(total), 0, nil)
	}
	if currentIndex >= 0 && currentIndex < len(list) {
		ui.presetList.SetCurrentItem(currentIndex)
	}
}

// ShowNotice displays a validation or status message on the setup screen
func (ui *TviewImpl) ShowNotice(notice Notice) {
	if notice.Text == "" {
		ui.noticeText.SetText("")
		return
	}
	if notice.IsError {
		ui.noticeText.SetText(fmt.Sprintf(" [red]%s[white]", notice.Text))
	} else {
		ui.noticeText.SetText(fmt.Sprintf(" [green]%s[white]", notice.Text))
	}
}

// SetScreen switches the UI to the specified screen
func (ui *TviewImpl) SetScreen(screen Screen) {
	if ui.currentScreen == screen {
		return
	}

	ui.currentScreen = screen

	switch screen {
	case ScreenSetup:
		ui.pages.SwitchToPage(pageSetup)
		ui.app.SetFocus(ui.form)
	case ScreenRun:
		ui.cueStepIndex = -1
		ui.cueText = ""
		ui.pages.SwitchToPage(pageRun)
		ui.app.SetFocus(ui.stepPanel)
	}
	ui.app.Draw()
}

// FlashCue displays a cue on the step panel until its step is over
func (ui *TviewImpl) FlashCue(cue runner.Cue) {
	ui.cueStepIndex = cue.StepIndex
	if cue.Kind == runner.CueCountdown {
		ui.cueText = fmt.Sprintf("[red::b]%d[white::-]", cue.SecondsRemaining)
	} else {
		ui.cueText = fmt.Sprintf("[orange::b]%s[white::-]", cue.String())
	}
}

// UpdateRunSnapshot renders the run dashboard from a snapshot
func (ui *TviewImpl) UpdateRunSnapshot(snapshot runner.Snapshot) {
	if snapshot.StepIndex != ui.cueStepIndex {
		ui.cueText = ""
		ui.cueStepIndex = -1
	}

	ui.stepPanel.SetText(ui.formatStepPanel(snapshot))
	ui.progressPanel.SetText(formatProgressPanel(snapshot))
}

func (ui *TviewImpl) formatStepPanel(snapshot runner.Snapshot) string {
	if snapshot.Phase == runner.PhaseFinished {
		return "\n\n[green::b]Workout Complete![white::-]\n\n" +
			fmt.Sprintf("Total time: [yellow]%s[white]\n\n", workout.FormatSeconds(snapshot.TotalSeconds)) +
			"[gray]Press R to go again, Esc for setup[white]"
	}

	step := snapshot.Step
	color := "green"
	if step.Kind.IsRest() {
		color = "blue"
	}

	text := "\n"
	text += fmt.Sprintf("[gray]%s[white]\n\n", step.Kind)
	text += fmt.Sprintf("[%s::b]%s[white::-]\n\n", color, step.Label)
	text += fmt.Sprintf("[yellow::b]%s[white::-]\n\n", workout.FormatSeconds(snapshot.SecondsRemaining))

	if ui.cueText != "" {
		text += ui.cueText + "\n\n"
	}

	if snapshot.Phase == runner.PhasePaused {
		text += "[orange]PAUSED[white]\n"
	} else if snapshot.Phase == runner.PhaseNotStarted {
		text += "[gray]Press Space to start[white]\n"
	} else if snapshot.NextExercise != "" && step.Kind.IsRest() {
		text += fmt.Sprintf("[gray]Next:[white] %s\n", snapshot.NextExercise)
	}

	return text
}

func formatProgressPanel(snapshot runner.Snapshot) string {
	text := "\n"

	if snapshot.ProgressOK {
		p := snapshot.Progress
		text += fmt.Sprintf("  [gray]Circuit:[white]  %s\n", p.Circuit)
		text += fmt.Sprintf("  [gray]Round:[white]    %d / %d\n", p.Round, p.TotalRounds)
		text += fmt.Sprintf("  [gray]Exercise:[white] %d / %d\n", p.ExercisePosition, p.ExercisesPerRound)
	}

	text += fmt.Sprintf("\n  %s [yellow]%.0f%%[white]\n", buildProgressBar(snapshot.PercentComplete, progressBarWidth), snapshot.PercentComplete)
	text += fmt.Sprintf("  [gray]Elapsed:[white] %s / %s\n",
		workout.FormatSeconds(snapshot.ElapsedSeconds), workout.FormatSeconds(snapshot.TotalSeconds))

	return text
}

func buildProgressBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	return "[green]" + strings.Repeat("█", filled) + "[gray]" + strings.Repeat("░", width-filled) + "[white]"
}

// SetupKeyboardHandlers sets up keyboard event handlers
func (ui *TviewImpl) SetupKeyboardHandlers(controller *Controller) {
	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			controller.OnEscapeKey()
			return nil
		}

		switch ui.currentScreen {
		case ScreenSetup:
			// Ctrl+P toggles focus between the form and the preset list.
			// Plain runes stay with the form, it has text inputs.
			if event.Key() == tcell.KeyCtrlP {
				if ui.presetList.HasFocus() {
					ui.app.SetFocus(ui.form)
				} else {
					ui.app.SetFocus(ui.presetList)
				}
				return nil
			}
		case ScreenRun:
			if event.Key() == tcell.KeyRune {
				switch event.Rune() {
				case ' ':
					controller.ToggleRun()
					return nil
				case 's':
					controller.SkipStep()
					return nil
				case 'r':
					controller.ResetRun()
					return nil
				}
			}
		}

		return event
	})
}

// GetLogViewHeight returns the visible height of the log view
func (ui *TviewImpl) GetLogViewHeight() int {
	_, _, _, height := ui.logView.GetInnerRect()
	return height
}

// ClearLogView clears the log view
func (ui *TviewImpl) ClearLogView() {
	ui.logView.Clear()
}

// WriteLogLine writes a line to the log view
func (ui *TviewImpl) WriteLogLine(line string) error {
	_, err := fmt.Fprint(ui.logView, line)
	return err
}

// Draw refreshes/redraws the UI
func (ui *TviewImpl) Draw() error {
	ui.app.Draw()
	return nil
}

// Run starts the UI and blocks until it exits
func (ui *TviewImpl) Run() error {
	// SetRoot must be called before setting focus, otherwise focus may be reset
	ui.app.SetRoot(ui.mainFlex, true)
	ui.app.SetFocus(ui.form)
	return ui.app.Run()
}

// Stop stops the UI framework
func (ui *TviewImpl) Stop() {
	ui.app.Stop()
}
