package workout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress_TwoByTwo(t *testing.T) {
	cfg := twoByTwoConfig()
	steps := BuildSteps(cfg)
	// [Ex, Rest, Ex, CircuitRest, Ex, Rest, Ex]

	wantRound := []int{1, 1, 1, 1, 2, 2, 2}
	wantPos := []int{1, 1, 2, 2, 1, 1, 2}

	for i := range steps {
		info, ok := Progress(cfg, steps, i)
		require.True(t, ok, "step %d", i)
		assert.Equal(t, CircuitA, info.Circuit, "step %d", i)
		assert.Equal(t, wantRound[i], info.Round, "round at %d", i)
		assert.Equal(t, wantPos[i], info.ExercisePosition, "position at %d", i)
		assert.Equal(t, 2, info.ExercisesPerRound)
		assert.Equal(t, 2, info.TotalRounds)
	}
}

func TestProgress_BoundsForAnyIndex(t *testing.T) {
	cfg := WorkoutConfig{
		WorkSeconds:                 30,
		RestBetweenExercisesSeconds: 10,
		RestBetweenCircuitsSeconds:  20,
		TransitionRestSeconds:       15,
		CircuitA: CircuitConfig{
			Exercises: []ExerciseSpec{{Name: "A1"}, {Name: "A2"}, {Name: "A3"}},
			Repeats:   3,
		},
		CircuitB: CircuitConfig{
			Exercises: []ExerciseSpec{{Name: "B1"}, {Name: "B2"}},
			Repeats:   2,
			Enabled:   true,
		},
	}
	steps := BuildSteps(cfg)

	for i := range steps {
		info, ok := Progress(cfg, steps, i)
		require.True(t, ok, "step %d", i)
		assert.GreaterOrEqual(t, info.ExercisePosition, 1, "step %d", i)
		assert.LessOrEqual(t, info.ExercisePosition, info.ExercisesPerRound, "step %d", i)
		assert.GreaterOrEqual(t, info.Round, 1, "step %d", i)
		assert.LessOrEqual(t, info.Round, info.TotalRounds, "step %d", i)
	}
}

func TestProgress_LeadingRestPlaceholder(t *testing.T) {
	// The transition rest belongs to circuit B but precedes its first exercise
	cfg := WorkoutConfig{
		WorkSeconds:           30,
		TransitionRestSeconds: 15,
		CircuitA: CircuitConfig{
			Exercises: []ExerciseSpec{{Name: "A1"}},
			Repeats:   1,
		},
		CircuitB: CircuitConfig{
			Exercises: []ExerciseSpec{{Name: "B1"}},
			Repeats:   1,
			Enabled:   true,
		},
	}
	steps := BuildSteps(cfg)
	require.Equal(t, StepTransitionRest, steps[1].Kind)

	info, ok := Progress(cfg, steps, 1)
	require.True(t, ok)
	assert.Equal(t, CircuitB, info.Circuit)
	assert.Equal(t, 1, info.Round)
	assert.Equal(t, 1, info.ExercisePosition)
}

func TestProgress_Unavailable(t *testing.T) {
	cfg := twoByTwoConfig()
	steps := BuildSteps(cfg)

	_, ok := Progress(cfg, steps, -1)
	assert.False(t, ok)

	_, ok = Progress(cfg, steps, len(steps))
	assert.False(t, ok)

	// Steps referencing a circuit with no configured exercises
	orphan := []Step{{Kind: StepExercise, Label: "B1", DurationSeconds: 30, Circuit: CircuitB}}
	_, ok = Progress(cfg, orphan, 0)
	assert.False(t, ok)
}
