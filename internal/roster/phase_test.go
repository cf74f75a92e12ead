package roster

import (
	"testing"

	"fundboard/internal/models"
)

func TestClassifyPhase(t *testing.T) {
	tests := []struct {
		title string
		want  models.Phase
	}{
		{"$100,000 1-Step Challenge", models.PhaseOneStep},
		{"$50,000 Challenge Phase 1", models.PhaseOne},
		{"$50,000 Challenge Phase 2", models.PhaseTwo},
		{"Funded $200,000", models.PhaseFunded},
		{"2Step_No Evaluation", models.PhaseOne},
		{"Funded 1-Step $25,000", models.PhaseOneStep},
		{"Phase without number", models.PhaseUnknown},
		{"Swing Account", models.PhaseUnknown},
		{"", models.PhaseUnknown},
	}
	for _, tt := range tests {
		if got := ClassifyPhase(tt.title); got != tt.want {
			t.Fatalf("ClassifyPhase(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
