package models

import "fmt"

type Phase string

const (
	PhaseInspection Phase = "Inspection"
	PhaseCross      Phase = "Cross"
	PhaseF2L        Phase = "F2L"
	PhaseOLL        Phase = "OLL"
	PhasePLL        Phase = "PLL"
)

// Phases is ordered by the classifier's output index.
var Phases = []Phase{PhaseInspection, PhaseCross, PhaseF2L, PhaseOLL, PhasePLL}

func PhaseFromIndex(idx int) (Phase, error) {
	if idx < 0 || idx >= len(Phases) {
		return "", fmt.Errorf("label index %d out of range [0, %d)", idx, len(Phases))
	}
	return Phases[idx], nil
}

// Prediction is the phase recognized for the window starting at Time seconds.
type Prediction struct {
	Time  float64 `json:"time"`
	Phase Phase   `json:"phase"`
}
