package assessment

import (
	"strings"
	"testing"
)

func TestExplain(t *testing.T) {
	a := CalculateRisk(PatientData{
		Diabetes:    Bool(true),
		Cholesterol: Float64(250),
	})
	text := Explain(a)

	for _, want := range []string{
		"PURE-India cardiovascular risk score:",
		"Risk multipliers:",
		"Diabetes: 3.20x",
		"Framingham comparison:",
		"Recommendations:",
		"  1. ",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("explanation missing %q:\n%s", want, text)
		}
	}

	if strings.Contains(text, "very_low") || strings.Contains(text, "very_high") {
		t.Error("category must be rendered with spaces, not underscores")
	}
}

func TestExplain_Deterministic(t *testing.T) {
	a := CalculateRisk(PatientData{Smoking: Bool(true)})
	if Explain(a) != Explain(a) {
		t.Error("explanation is not deterministic")
	}
}
