package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ossianbb/WorkoutTimer/internal/workout"
)

func TestParseExerciseList_NamesOnly(t *testing.T) {
	specs, err := ParseExerciseList("Pushups\nSquats\n")
	require.NoError(t, err)
	assert.Equal(t, []workout.ExerciseSpec{
		{Name: "Pushups"},
		{Name: "Squats"},
	}, specs)
}

func TestParseExerciseList_SecondsOverride(t *testing.T) {
	specs, err := ParseExerciseList("Plank | 60\nSquats")
	require.NoError(t, err)
	assert.Equal(t, []workout.ExerciseSpec{
		{Name: "Plank", SecondsOverride: 60},
		{Name: "Squats"},
	}, specs)
}

func TestParseExerciseList_SkipsBlankLines(t *testing.T) {
	specs, err := ParseExerciseList("\n  \nPushups\n\n")
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, "Pushups", specs[0].Name)
}

func TestParseExerciseList_InvalidOverride(t *testing.T) {
	_, err := ParseExerciseList("Plank | sixty")
	assert.ErrorContains(t, err, "line 1")

	_, err = ParseExerciseList("Pushups\nPlank | -5")
	assert.ErrorContains(t, err, "line 2")
}

func TestParseExerciseList_EmptyName(t *testing.T) {
	_, err := ParseExerciseList(" | 30")
	assert.ErrorContains(t, err, "name cannot be empty")
}

func TestFormatExerciseList_RoundTrip(t *testing.T) {
	specs := []workout.ExerciseSpec{
		{Name: "Plank", SecondsOverride: 60},
		{Name: "Squats"},
	}
	text := FormatExerciseList(specs)
	assert.Equal(t, "Plank | 60\nSquats", text)

	parsed, err := ParseExerciseList(text)
	require.NoError(t, err)
	assert.Equal(t, specs, parsed)
}

func TestParseSeconds_FallbackThenClamp(t *testing.T) {
	assert.Equal(t, 45, ParseSeconds("45", 30))
	assert.Equal(t, 30, ParseSeconds("garbage", 30))
	assert.Equal(t, 30, ParseSeconds("", 30))
	assert.Equal(t, workout.MinWorkSeconds, ParseSeconds("1", 30))
	assert.Equal(t, workout.MinWorkSeconds, ParseSeconds("junk", 0))
}

func TestParseRestSeconds_ZeroAllowed(t *testing.T) {
	assert.Equal(t, 0, ParseRestSeconds("0", 15))
	assert.Equal(t, 15, ParseRestSeconds("nope", 15))
	assert.Equal(t, 0, ParseRestSeconds("-3", 15))
}

func TestParseRepeats_FallbackThenClamp(t *testing.T) {
	assert.Equal(t, 3, ParseRepeats("3", 2))
	assert.Equal(t, 2, ParseRepeats("x", 2))
	assert.Equal(t, workout.MinRepeats, ParseRepeats("0", 2))
}
