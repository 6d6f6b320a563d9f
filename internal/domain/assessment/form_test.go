package assessment

import "testing"

func TestFromForm(t *testing.T) {
	form := map[string]any{
		"age":              45.0,
		"stressLevel":      7, // ints from hand-built forms are accepted
		"gender":           "female",
		"smoking":          true,
		"physicalActivity": "moderate",
		"chestPainType":    "atypical angina",
		"mystery":          "ignored",
		"cholesterol":      "220", // wrong dynamic type, treated as absent
	}
	p := FromForm(form)

	if p.Age == nil || *p.Age != 45 {
		t.Errorf("age = %v", p.Age)
	}
	if p.StressLevel == nil || *p.StressLevel != 7 {
		t.Errorf("stressLevel = %v", p.StressLevel)
	}
	if p.Gender != GenderFemale {
		t.Errorf("gender = %q", p.Gender)
	}
	if p.Smoking == nil || !*p.Smoking {
		t.Errorf("smoking = %v", p.Smoking)
	}
	if p.PhysicalActivity != ActivityModerate {
		t.Errorf("physicalActivity = %q", p.PhysicalActivity)
	}
	if p.ChestPainType != ChestPainAtypical {
		t.Errorf("chestPainType = %q", p.ChestPainType)
	}
	if p.Cholesterol != nil {
		t.Errorf("string-typed cholesterol must be absent, got %v", *p.Cholesterol)
	}
}

func TestFromForm_Empty(t *testing.T) {
	p := FromForm(map[string]any{})
	a := CalculateRisk(p)
	b := CalculateRisk(PatientData{})
	if a.RiskScore != b.RiskScore {
		t.Errorf("empty form must score like an empty patient: %v vs %v", a.RiskScore, b.RiskScore)
	}
}
