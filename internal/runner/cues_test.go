package runner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ossianbb/WorkoutTimer/internal/workout"
)

func TestCueTable_HalfwayOnce(t *testing.T) {
	table := newCueTable()
	step := workout.Step{Kind: workout.StepExercise, Label: "Squats", DurationSeconds: 20}

	cues := table.due(0, step, 10)
	require.Len(t, cues, 1)
	assert.Equal(t, CueHalfway, cues[0].Kind)
	assert.Equal(t, "Squats", cues[0].StepLabel)

	// Re-evaluating at the same countdown value fires nothing
	assert.Empty(t, table.due(0, step, 10))

	// A different step index is an independent cue
	assert.Len(t, table.due(2, step, 10), 1)
}

func TestCueTable_NoHalfwayForRestSteps(t *testing.T) {
	table := newCueTable()
	rest := workout.Step{Kind: workout.StepRest, Label: "Rest", DurationSeconds: 20}
	assert.Empty(t, table.due(0, rest, 10))
}

func TestCueTable_NoHalfwayForShortSteps(t *testing.T) {
	table := newCueTable()
	step := workout.Step{Kind: workout.StepExercise, Label: "Burpees", DurationSeconds: 8}
	assert.Empty(t, table.due(0, step, 4))
}

func TestCueTable_CountdownEveryKind(t *testing.T) {
	table := newCueTable()
	for i, step := range []workout.Step{
		{Kind: workout.StepExercise, Label: "Squats", DurationSeconds: 30},
		{Kind: workout.StepRest, Label: "Rest", DurationSeconds: 15},
		{Kind: workout.StepCircuitRest, Label: "Circuit Rest", DurationSeconds: 60},
		{Kind: workout.StepTransitionRest, Label: "Transition", DurationSeconds: 30},
	} {
		for second := 3; second >= 1; second-- {
			cues := table.due(i, step, second)
			require.Len(t, cues, 1, "step %d at %d", i, second)
			assert.Equal(t, CueCountdown, cues[0].Kind)
			assert.Equal(t, second, cues[0].SecondsRemaining)

			assert.Empty(t, table.due(i, step, second), "repeat at %d", second)
		}
	}
}

func TestCueTable_Reset(t *testing.T) {
	table := newCueTable()
	step := workout.Step{Kind: workout.StepExercise, Label: "Squats", DurationSeconds: 20}

	require.Len(t, table.due(0, step, 3), 1)
	require.Empty(t, table.due(0, step, 3))

	table.reset()
	assert.Len(t, table.due(0, step, 3), 1)
}

func TestCue_String(t *testing.T) {
	assert.Equal(t, "Halfway through Squats", Cue{Kind: CueHalfway, StepLabel: "Squats"}.String())
	assert.Equal(t, "3", Cue{Kind: CueCountdown, SecondsRemaining: 3}.String())
}

func TestController_CueDelivery(t *testing.T) {
	// Single 20 s exercise: halfway at 10, countdown at 3, 2, 1
	cfg := workout.WorkoutConfig{
		WorkSeconds: 20,
		CircuitA: workout.CircuitConfig{
			Exercises: []workout.ExerciseSpec{{Name: "Plank"}},
			Repeats:   1,
		},
	}
	c, mock, ch := newTestController(t, cfg)

	cueCh := make(chan Cue, 16)
	unsubscribe := c.ListenToCues(cueCh)
	t.Cleanup(unsubscribe)

	c.Start()
	waitSnapshot(t, ch)

	var cues []Cue
	for i := 0; i < 20; i++ {
		mock.Add(time.Second)
		waitSnapshot(t, ch)
	drain:
		for {
			select {
			case cue := <-cueCh:
				cues = append(cues, cue)
			default:
				break drain
			}
		}
	}

	require.Len(t, cues, 4)
	assert.Equal(t, CueHalfway, cues[0].Kind)
	assert.Equal(t, 10, cues[0].SecondsRemaining)
	for i, second := range []int{3, 2, 1} {
		assert.Equal(t, CueCountdown, cues[1+i].Kind)
		assert.Equal(t, second, cues[1+i].SecondsRemaining)
	}
}
