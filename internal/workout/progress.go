package workout

// ProgressInfo locates a step within its circuit for display:
// "Circuit A - Round 2/3 - Exercise 1/4".
type ProgressInfo struct {
	Circuit           CircuitID
	Round             int
	ExercisePosition  int
	ExercisesPerRound int
	TotalRounds       int
}

// Progress computes the round and exercise position for the step at index i by
// counting the exercise steps of the same circuit up to and including i. On a
// rest step that precedes the circuit's first exercise it reports round 1,
// exercise 1 as a placeholder. Returns ok=false when the index is out of range
// or the circuit has no exercises configured.
func Progress(cfg WorkoutConfig, steps []Step, i int) (ProgressInfo, bool) {
	if i < 0 || i >= len(steps) {
		return ProgressInfo{}, false
	}

	circuit := steps[i].Circuit
	circuitCfg := cfg.CircuitA
	if circuit == CircuitB {
		circuitCfg = cfg.CircuitB
	}

	per := len(circuitCfg.Exercises)
	if per == 0 {
		return ProgressInfo{}, false
	}

	count := 0
	for j := 0; j <= i; j++ {
		if steps[j].Circuit == circuit && steps[j].Kind == StepExercise {
			count++
		}
	}

	info := ProgressInfo{
		Circuit:           circuit,
		Round:             1,
		ExercisePosition:  1,
		ExercisesPerRound: per,
		TotalRounds:       circuitCfg.Repeats,
	}
	if count > 0 {
		info.Round = (count + per - 1) / per
		info.ExercisePosition = (count-1)%per + 1
	}
	return info, true
}
