package assessment

import "fmt"

// Severity classifies a vital reading. The scoring engine never consults
// this: CalculateRisk always produces a number, and validation judges the
// inputs independently at the caller's discretion.
type Severity string

const (
	SeverityValid   Severity = "valid"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// VitalCheck is one range-validation finding for a single vital.
type VitalCheck struct {
	Field    string   `json:"field"`
	Value    float64  `json:"value"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message,omitempty"`
}

// vitalRange defines the clinically plausible band and the narrower
// normal band for one vital. Outside plausible is an error; inside
// plausible but outside normal is a warning.
type vitalRange struct {
	field                string
	plausibleLo, plausibleHi float64
	normalLo, normalHi       float64
}

var vitalRanges = []vitalRange{
	{"age", 1, 119, 18, 100},
	{"systolicBP", 50, 300, 90, 140},
	{"diastolicBP", 30, 200, 60, 90},
	{"cholesterol", 50, 600, 125, 200},
	{"heartRate", 20, 250, 60, 100},
	{"bmi", 10, 80, 18.5, 25},
	{"bloodSugar", 30, 600, 70, 140},
}

// ValidateVitals classifies the raw vitals present in p into valid, warning
// and error buckets. Absent vitals produce no finding.
func ValidateVitals(p PatientData) []VitalCheck {
	values := map[string]*float64{
		"age":         p.Age,
		"systolicBP":  p.SystolicBP,
		"diastolicBP": p.DiastolicBP,
		"cholesterol": p.Cholesterol,
		"heartRate":   p.HeartRate,
		"bmi":         p.BMI,
		"bloodSugar":  p.BloodSugar,
	}

	var checks []VitalCheck
	for _, r := range vitalRanges {
		v := values[r.field]
		if v == nil {
			continue
		}
		checks = append(checks, r.check(*v))
	}
	return checks
}

func (r vitalRange) check(v float64) VitalCheck {
	c := VitalCheck{Field: r.field, Value: v}
	switch {
	case v < r.plausibleLo || v > r.plausibleHi:
		c.Severity = SeverityError
		c.Message = fmt.Sprintf("%s %.1f is outside the clinically plausible range [%.0f, %.0f]", r.field, v, r.plausibleLo, r.plausibleHi)
	case v < r.normalLo || v > r.normalHi:
		c.Severity = SeverityWarning
		c.Message = fmt.Sprintf("%s %.1f is outside the normal range [%.1f, %.1f]", r.field, v, r.normalLo, r.normalHi)
	default:
		c.Severity = SeverityValid
	}
	return c
}
