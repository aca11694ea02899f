package workout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalized_ClampsMinimums(t *testing.T) {
	cfg := WorkoutConfig{
		WorkSeconds:                 0,
		RestBetweenExercisesSeconds: -5,
		RestBetweenCircuitsSeconds:  -1,
		TransitionRestSeconds:       -30,
		CircuitA: CircuitConfig{
			Exercises: []ExerciseSpec{{Name: "Squats", SecondsOverride: -10}},
			Repeats:   0,
		},
	}

	got := cfg.Normalized()

	assert.Equal(t, MinWorkSeconds, got.WorkSeconds)
	assert.Equal(t, 0, got.RestBetweenExercisesSeconds)
	assert.Equal(t, 0, got.RestBetweenCircuitsSeconds)
	assert.Equal(t, 0, got.TransitionRestSeconds)
	assert.Equal(t, MinRepeats, got.CircuitA.Repeats)
	assert.Equal(t, 0, got.CircuitA.Exercises[0].SecondsOverride)

	// Original untouched
	assert.Equal(t, 0, cfg.WorkSeconds)
}

func TestValidate(t *testing.T) {
	valid := WorkoutConfig{
		WorkSeconds: 30,
		CircuitA: CircuitConfig{
			Exercises: []ExerciseSpec{{Name: "Squats"}},
			Repeats:   1,
		},
	}
	require.NoError(t, valid.Validate())

	empty := valid
	empty.CircuitA.Exercises = nil
	assert.Error(t, empty.Validate())

	unnamed := valid
	unnamed.CircuitA.Exercises = []ExerciseSpec{{Name: ""}}
	assert.Error(t, unnamed.Validate())

	emptyB := valid
	emptyB.CircuitB = CircuitConfig{Enabled: true, Repeats: 1}
	assert.Error(t, emptyB.Validate())

	disabledEmptyB := valid
	disabledEmptyB.CircuitB = CircuitConfig{Enabled: false}
	assert.NoError(t, disabledEmptyB.Validate())
}

func TestStepKind(t *testing.T) {
	assert.Equal(t, "Exercise", StepExercise.String())
	assert.Equal(t, "Circuit Rest", StepCircuitRest.String())

	assert.False(t, StepExercise.IsRest())
	assert.True(t, StepRest.IsRest())
	assert.True(t, StepCircuitRest.IsRest())
	assert.True(t, StepTransitionRest.IsRest())
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "0:05", FormatSeconds(5))
	assert.Equal(t, "4:30", FormatSeconds(270))
	assert.Equal(t, "1:00:01", FormatSeconds(3601))
	assert.Equal(t, "0:00", FormatSeconds(-3))
}
