package assessment

import (
	"strings"
	"testing"
)

func checkFor(t *testing.T, checks []VitalCheck, field string) VitalCheck {
	t.Helper()
	for _, c := range checks {
		if c.Field == field {
			return c
		}
	}
	t.Fatalf("no finding for %s in %+v", field, checks)
	return VitalCheck{}
}

func TestValidateVitals_Buckets(t *testing.T) {
	p := PatientData{
		Age:         Float64(45),   // valid
		SystolicBP:  Float64(150),  // warning: above normal, within plausible
		Cholesterol: Float64(700),  // error: beyond plausible
		HeartRate:   Float64(72),   // valid
		BloodSugar:  Float64(15),   // error: below plausible
	}
	checks := ValidateVitals(p)
	if len(checks) != 5 {
		t.Fatalf("expected 5 findings, got %d: %+v", len(checks), checks)
	}

	if c := checkFor(t, checks, "age"); c.Severity != SeverityValid {
		t.Errorf("age severity = %s", c.Severity)
	}
	if c := checkFor(t, checks, "systolicBP"); c.Severity != SeverityWarning {
		t.Errorf("systolicBP severity = %s", c.Severity)
	} else if !strings.Contains(c.Message, "normal range") {
		t.Errorf("systolicBP message = %q", c.Message)
	}
	if c := checkFor(t, checks, "cholesterol"); c.Severity != SeverityError {
		t.Errorf("cholesterol severity = %s", c.Severity)
	} else if !strings.Contains(c.Message, "plausible") {
		t.Errorf("cholesterol message = %q", c.Message)
	}
	if c := checkFor(t, checks, "bloodSugar"); c.Severity != SeverityError {
		t.Errorf("bloodSugar severity = %s", c.Severity)
	}
}

func TestValidateVitals_AbsentVitalsSkipped(t *testing.T) {
	if checks := ValidateVitals(PatientData{}); len(checks) != 0 {
		t.Errorf("empty patient must yield no findings, got %+v", checks)
	}
}

func TestValidateVitals_DoesNotAffectScoring(t *testing.T) {
	// An implausible vital still scores; range validation is advisory only.
	p := PatientData{Cholesterol: Float64(700)}
	a := CalculateRisk(p)
	if a.RiskScore <= 0 {
		t.Errorf("scoring must proceed despite implausible input, score = %v", a.RiskScore)
	}
}

func TestValidateVitals_BoundaryInclusive(t *testing.T) {
	p := PatientData{Age: Float64(119)}
	c := checkFor(t, ValidateVitals(p), "age")
	if c.Severity == SeverityError {
		t.Errorf("plausible bound is inclusive, got %s", c.Severity)
	}
}
