package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Ossianbb/WorkoutTimer/internal/workout"
)

// ParseExerciseList parses the text of an exercise list field, one exercise
// per line. A line is either a bare name or "name | seconds" to override the
// default work duration for that exercise. Blank lines are skipped.
func ParseExerciseList(text string) ([]workout.ExerciseSpec, error) {
	var specs []workout.ExerciseSpec
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name := line
		override := 0
		if idx := strings.LastIndex(line, "|"); idx >= 0 {
			name = strings.TrimSpace(line[:idx])
			secondsText := strings.TrimSpace(line[idx+1:])
			seconds, err := strconv.Atoi(secondsText)
			if err != nil || seconds <= 0 {
				return nil, fmt.Errorf("line %d: invalid duration %q", i+1, secondsText)
			}
			override = seconds
		}
		if name == "" {
			return nil, fmt.Errorf("line %d: exercise name cannot be empty", i+1)
		}
		specs = append(specs, workout.ExerciseSpec{Name: name, SecondsOverride: override})
	}
	return specs, nil
}

// FormatExerciseList renders exercise specs back into the one-per-line form
// field format, the inverse of ParseExerciseList
func FormatExerciseList(specs []workout.ExerciseSpec) string {
	lines := make([]string, 0, len(specs))
	for _, spec := range specs {
		if spec.SecondsOverride > 0 {
			lines = append(lines, fmt.Sprintf("%s | %d", spec.Name, spec.SecondsOverride))
		} else {
			lines = append(lines, spec.Name)
		}
	}
	return strings.Join(lines, "\n")
}

// ParseSeconds interprets a duration field. Unparseable input falls back to
// fallback, then the result is clamped to the workout minimum.
func ParseSeconds(text string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		value = fallback
	}
	if value < workout.MinWorkSeconds {
		value = workout.MinWorkSeconds
	}
	return value
}

// ParseRestSeconds is ParseSeconds for rest fields, where zero is allowed
// and means the rest step is omitted
func ParseRestSeconds(text string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		value = fallback
	}
	if value < 0 {
		value = 0
	}
	return value
}

// ParseRepeats interprets a repeat-count field with the same
// fallback-then-clamp policy
func ParseRepeats(text string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		value = fallback
	}
	if value < workout.MinRepeats {
		value = workout.MinRepeats
	}
	return value
}
