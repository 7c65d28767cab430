// internal/wizard/step.go
//
// The four wizard steps, in display order.

package wizard

import "strings"

// Step identifies one position in the wizard.
type Step int

const (
	StepUpload Step = iota
	StepAnalysis
	StepScenarios
	StepOutput
)

// Steps lists every step in order.
var Steps = []Step{StepUpload, StepAnalysis, StepScenarios, StepOutput}

// String returns the stable identifier for the step
func (s Step) String() string {
	switch s {
	case StepUpload:
		return "upload"
	case StepAnalysis:
		return "analysis"
	case StepScenarios:
		return "scenarios"
	case StepOutput:
		return "output"
	default:
		return "unknown"
	}
}

// Label returns the name shown in the step indicator
func (s Step) Label() string {
	switch s {
	case StepUpload:
		return "Upload"
	case StepAnalysis:
		return "Analysis"
	case StepScenarios:
		return "Scenarios"
	case StepOutput:
		return "Decision"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of the four wizard steps.
func (s Step) Valid() bool {
	return s >= StepUpload && s <= StepOutput
}

// Next returns the following step, or s itself at the end.
func (s Step) Next() Step {
	if s >= StepOutput {
		return StepOutput
	}
	return s + 1
}

// Prev returns the preceding step, or s itself at the start.
func (s Step) Prev() Step {
	if s <= StepUpload {
		return StepUpload
	}
	return s - 1
}

// ParseStep resolves an identifier or label (case-insensitive).
func ParseStep(value string) (Step, bool) {
	key := strings.ToLower(strings.TrimSpace(value))
	for _, s := range Steps {
		if key == s.String() || key == strings.ToLower(s.Label()) {
			return s, true
		}
	}
	return StepUpload, false
}
