package presets

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ossianbb/WorkoutTimer/internal/workout"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func sampleConfig() workout.WorkoutConfig {
	return workout.WorkoutConfig{
		WorkSeconds:                 45,
		RestBetweenExercisesSeconds: 15,
		CircuitA: workout.CircuitConfig{
			Exercises: []workout.ExerciseSpec{{Name: "Push-ups"}, {Name: "Squats", SecondsOverride: 60}},
			Repeats:   3,
		},
	}
}

func TestStore_EmptyWhenFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	store := NewStore(path, testLogger())
	assert.Empty(t, store.List())
}

func TestStore_SaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")

	store := NewStore(path, testLogger())
	saved := store.Save("Morning Circuit", sampleConfig())
	require.NotEmpty(t, saved.ID)

	// A fresh store reads the same preset back
	reloaded := NewStore(path, testLogger())
	got, ok := reloaded.Get(saved.ID)
	require.True(t, ok)
	assert.Equal(t, "Morning Circuit", got.Name)
	assert.Equal(t, sampleConfig(), got.Config)
}

func TestStore_ListSortedByName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	store := NewStore(path, testLogger())

	store.Save("Legs", sampleConfig())
	store.Save("Abs", sampleConfig())
	store.Save("Full Body", sampleConfig())

	list := store.List()
	require.Len(t, list, 3)
	assert.Equal(t, "Abs", list[0].Name)
	assert.Equal(t, "Full Body", list[1].Name)
	assert.Equal(t, "Legs", list[2].Name)
}

func TestStore_UniqueIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	store := NewStore(path, testLogger())

	a := store.Save("Same Name", sampleConfig())
	b := store.Save("Same Name", sampleConfig())
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, store.List(), 2)
}

func TestStore_Delete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	store := NewStore(path, testLogger())

	saved := store.Save("Doomed", sampleConfig())
	store.Delete(saved.ID)
	assert.Empty(t, store.List())

	// Deleting an unknown id is harmless
	store.Delete("no-such-id")

	// The deletion persisted
	reloaded := NewStore(path, testLogger())
	assert.Empty(t, reloaded.List())
}

func TestStore_MalformedFileReadsAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{{not yaml"), 0644))

	store := NewStore(path, testLogger())
	assert.Empty(t, store.List())

	// And the store remains usable
	saved := store.Save("Recovered", sampleConfig())
	_, ok := store.Get(saved.ID)
	assert.True(t, ok)
}
