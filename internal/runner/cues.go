package runner

import (
	"fmt"

	"github.com/Ossianbb/WorkoutTimer/internal/workout"
)

// CueKind classifies an audible/spoken cue
type CueKind int

const (
	CueHalfway   CueKind = iota // Midpoint of an exercise step
	CueCountdown                // Final 3-2-1 of any step
)

// Cue is a one-shot notification at a countdown threshold. Each (step, kind,
// second) fires at most once per run.
type Cue struct {
	Kind             CueKind
	StepIndex        int
	StepLabel        string
	SecondsRemaining int
}

func (c Cue) String() string {
	switch c.Kind {
	case CueHalfway:
		return fmt.Sprintf("Halfway through %s", c.StepLabel)
	case CueCountdown:
		return fmt.Sprintf("%d", c.SecondsRemaining)
	}
	return fmt.Sprintf("CueKind(%d)", int(c.Kind))
}

// Halfway cues are skipped for steps shorter than this: the midpoint would
// land on top of the final countdown.
const minHalfwaySeconds = 10

// Countdown cues fire at this remaining value and below
const countdownFromSeconds = 3

// cueKey identifies one cue firing for idempotence tracking
type cueKey struct {
	step   int
	kind   CueKind
	second int
}

// cueTable tracks which cues have fired so that repeated evaluation at the
// same countdown value delivers each cue exactly once. Accessed only from the
// run goroutine with the controller's lock held.
type cueTable struct {
	fired map[cueKey]struct{}
}

func newCueTable() *cueTable {
	return &cueTable{fired: make(map[cueKey]struct{})}
}

func (t *cueTable) reset() {
	t.fired = make(map[cueKey]struct{})
}

// due returns the cues triggered by the given remaining count for the current
// step, marking each as fired.
func (t *cueTable) due(stepIndex int, step workout.Step, secondsRemaining int) []Cue {
	var cues []Cue

	if step.Kind == workout.StepExercise &&
		step.DurationSeconds >= minHalfwaySeconds &&
		secondsRemaining == step.DurationSeconds/2 {
		if t.mark(cueKey{step: stepIndex, kind: CueHalfway}) {
			cues = append(cues, Cue{
				Kind:             CueHalfway,
				StepIndex:        stepIndex,
				StepLabel:        step.Label,
				SecondsRemaining: secondsRemaining,
			})
		}
	}

	if secondsRemaining >= 1 && secondsRemaining <= countdownFromSeconds {
		if t.mark(cueKey{step: stepIndex, kind: CueCountdown, second: secondsRemaining}) {
			cues = append(cues, Cue{
				Kind:             CueCountdown,
				StepIndex:        stepIndex,
				StepLabel:        step.Label,
				SecondsRemaining: secondsRemaining,
			})
		}
	}

	return cues
}

// mark records the key and reports whether it was newly fired
func (t *cueTable) mark(key cueKey) bool {
	if _, ok := t.fired[key]; ok {
		return false
	}
	t.fired[key] = struct{}{}
	return true
}
