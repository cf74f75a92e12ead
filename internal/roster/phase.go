package roster

import (
	"regexp"
	"strings"

	"fundboard/internal/models"
)

var phaseNumberPattern = regexp.MustCompile(`Phase [0-9]+`)

// ClassifyPhase derives the account phase from a challenge-type title.
// Precedence matters: a title naming both "1-Step" and "Funded"
// classifies as 1-Step.
func ClassifyPhase(title string) models.Phase {
	switch {
	case strings.Contains(title, "1-Step"):
		return models.PhaseOneStep
	case strings.Contains(title, "Phase"):
		if match := phaseNumberPattern.FindString(title); match != "" {
			return models.Phase(match)
		}
		return models.PhaseUnknown
	case strings.Contains(title, "Funded"):
		return models.PhaseFunded
	case strings.Contains(title, "2Step_No"):
		return models.PhaseOne
	default:
		return models.PhaseUnknown
	}
}
