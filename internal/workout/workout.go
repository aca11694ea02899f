package workout

import (
	"fmt"
	"time"
)

// CircuitID identifies one of the two exercise circuits
type CircuitID string

const (
	CircuitA CircuitID = "A"
	CircuitB CircuitID = "B"
)

// StepKind classifies one timed unit of a run sequence
type StepKind int

const (
	StepExercise       StepKind = iota // A timed exercise
	StepRest                           // Rest between exercises in the same round
	StepCircuitRest                    // Rest between rounds of the same circuit
	StepTransitionRest                 // One-time rest between circuit A and circuit B
)

// StepKindInfo contains display information for a step kind
type StepKindInfo struct {
	Kind        StepKind
	DisplayName string
}

// AllStepKinds defines metadata for all step kinds
var AllStepKinds = map[StepKind]StepKindInfo{
	StepExercise:       {Kind: StepExercise, DisplayName: "Exercise"},
	StepRest:           {Kind: StepRest, DisplayName: "Rest"},
	StepCircuitRest:    {Kind: StepCircuitRest, DisplayName: "Circuit Rest"},
	StepTransitionRest: {Kind: StepTransitionRest, DisplayName: "Transition"},
}

func (k StepKind) String() string {
	if info, ok := AllStepKinds[k]; ok {
		return info.DisplayName
	}
	return fmt.Sprintf("StepKind(%d)", int(k))
}

// IsRest reports whether the kind is any of the rest-family kinds
func (k StepKind) IsRest() bool {
	return k == StepRest || k == StepCircuitRest || k == StepTransitionRest
}

// ExerciseSpec describes a single exercise within a circuit.
// SecondsOverride of 0 means the workout-level work duration applies.
type ExerciseSpec struct {
	Name            string `yaml:"name"`
	SecondsOverride int    `yaml:"seconds_override,omitempty"`
}

// CircuitConfig describes one circuit: an ordered exercise list repeated
// Repeats times. Enabled is only consulted for circuit B; circuit A always runs.
type CircuitConfig struct {
	Exercises []ExerciseSpec `yaml:"exercises"`
	Repeats   int            `yaml:"repeats"`
	Enabled   bool           `yaml:"enabled,omitempty"`
}

// WorkoutConfig is the full configuration for one workout run
type WorkoutConfig struct {
	WorkSeconds                 int           `yaml:"work_seconds"`
	RestBetweenExercisesSeconds int           `yaml:"rest_between_exercises_seconds"`
	RestBetweenCircuitsSeconds  int           `yaml:"rest_between_circuits_seconds"`
	TransitionRestSeconds       int           `yaml:"transition_rest_seconds"`
	CircuitA                    CircuitConfig `yaml:"circuit_a"`
	CircuitB                    CircuitConfig `yaml:"circuit_b"`
}

// Minimums applied by Normalized before a config reaches the step builder
const (
	MinWorkSeconds = 5
	MinRepeats     = 1
)

// Normalized returns a copy of the config with all duration and repeat values
// clamped to their documented minimums. Rest values clamp to zero (meaning the
// corresponding rest steps are simply omitted).
func (c WorkoutConfig) Normalized() WorkoutConfig {
	if c.WorkSeconds < MinWorkSeconds {
		c.WorkSeconds = MinWorkSeconds
	}
	if c.RestBetweenExercisesSeconds < 0 {
		c.RestBetweenExercisesSeconds = 0
	}
	if c.RestBetweenCircuitsSeconds < 0 {
		c.RestBetweenCircuitsSeconds = 0
	}
	if c.TransitionRestSeconds < 0 {
		c.TransitionRestSeconds = 0
	}
	c.CircuitA = c.CircuitA.normalized()
	c.CircuitB = c.CircuitB.normalized()
	return c
}

func (cc CircuitConfig) normalized() CircuitConfig {
	if cc.Repeats < MinRepeats {
		cc.Repeats = MinRepeats
	}
	exercises := make([]ExerciseSpec, 0, len(cc.Exercises))
	for _, ex := range cc.Exercises {
		if ex.SecondsOverride < 0 {
			ex.SecondsOverride = 0
		}
		exercises = append(exercises, ex)
	}
	cc.Exercises = exercises
	return cc
}

// Validate checks the preconditions the run controller relies on. It is called
// by the UI layer before a run is constructed; failures surface as a user-facing
// prompt, never as a runner error.
func (c WorkoutConfig) Validate() error {
	if len(c.CircuitA.Exercises) == 0 {
		return fmt.Errorf("circuit A needs at least one exercise")
	}
	if c.CircuitB.Enabled && len(c.CircuitB.Exercises) == 0 {
		return fmt.Errorf("circuit B is enabled but has no exercises")
	}
	for _, ex := range c.CircuitA.Exercises {
		if ex.Name == "" {
			return fmt.Errorf("circuit A contains an unnamed exercise")
		}
	}
	if c.CircuitB.Enabled {
		for _, ex := range c.CircuitB.Exercises {
			if ex.Name == "" {
				return fmt.Errorf("circuit B contains an unnamed exercise")
			}
		}
	}
	return nil
}

// Step is one atomic timed unit in the run sequence. Steps are produced once
// per run by BuildSteps and are immutable thereafter.
type Step struct {
	Kind            StepKind
	Label           string
	DurationSeconds int
	Circuit         CircuitID
}

// FormatSeconds renders a second count as m:ss (or h:mm:ss past an hour)
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	d := time.Duration(seconds) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
