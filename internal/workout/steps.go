package workout

// Rest step display labels
const (
	labelRest        = "Rest"
	labelCircuitRest = "Circuit Rest"
	labelTransition  = "Transition"
)

// BuildSteps flattens a workout configuration into the ordered step sequence a
// run counts down through. Deterministic and side-effect free; the config is
// expected to have passed Validate and Normalized first.
//
// Zero-valued rest settings never produce steps, so the sequence contains no
// zero-duration entries.
func BuildSteps(cfg WorkoutConfig) []Step {
	steps := buildCircuit(CircuitA, cfg.CircuitA, cfg)
	if cfg.CircuitB.Enabled {
		if cfg.TransitionRestSeconds > 0 {
			steps = append(steps, Step{
				Kind:            StepTransitionRest,
				Label:           labelTransition,
				DurationSeconds: cfg.TransitionRestSeconds,
				Circuit:         CircuitB,
			})
		}
		steps = append(steps, buildCircuit(CircuitB, cfg.CircuitB, cfg)...)
	}
	return steps
}

// buildCircuit emits the steps for one circuit: every exercise per round, a
// rest between consecutive exercises, and a circuit rest between consecutive
// rounds. No trailing rest after the last exercise or last round.
func buildCircuit(id CircuitID, circuit CircuitConfig, cfg WorkoutConfig) []Step {
	var steps []Step
	for round := 0; round < circuit.Repeats; round++ {
		for i, ex := range circuit.Exercises {
			if i > 0 && cfg.RestBetweenExercisesSeconds > 0 {
				steps = append(steps, Step{
					Kind:            StepRest,
					Label:           labelRest,
					DurationSeconds: cfg.RestBetweenExercisesSeconds,
					Circuit:         id,
				})
			}
			duration := cfg.WorkSeconds
			if ex.SecondsOverride > 0 {
				duration = ex.SecondsOverride
			}
			steps = append(steps, Step{
				Kind:            StepExercise,
				Label:           ex.Name,
				DurationSeconds: duration,
				Circuit:         id,
			})
		}
		if round < circuit.Repeats-1 && cfg.RestBetweenCircuitsSeconds > 0 {
			steps = append(steps, Step{
				Kind:            StepCircuitRest,
				Label:           labelCircuitRest,
				DurationSeconds: cfg.RestBetweenCircuitsSeconds,
				Circuit:         id,
			})
		}
	}
	return steps
}

// TotalSeconds returns the sum of all step durations. This is the exact value
// the UI shows as the estimated workout length and the denominator for the
// overall progress percentage.
func TotalSeconds(steps []Step) int {
	total := 0
	for _, s := range steps {
		total += s.DurationSeconds
	}
	return total
}

// NextExerciseLabel returns the label of the first exercise step after index i,
// or "" when no exercise remains
func NextExerciseLabel(steps []Step, i int) string {
	for j := i + 1; j < len(steps); j++ {
		if steps[j].Kind == StepExercise {
			return steps[j].Label
		}
	}
	return ""
}
