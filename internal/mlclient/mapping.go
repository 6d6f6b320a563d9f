package mlclient

import "github.com/arogyalabs/cardioscope/internal/domain/assessment"

// FromPatientData maps the optional-field patient record onto the fixed
// 13-feature request the ensemble expects, using the encodings the backend
// was trained with. Absent fields receive the same neutral defaults the
// local engine documents, so both engines see a consistent patient.
func FromPatientData(p assessment.PatientData) *PredictRequest {
	req := &PredictRequest{
		Age:      deref(p.Age, 50),
		Sex:      sexCode(p.Gender),
		CP:       chestPainCode(p.ChestPainType),
		Trestbps: restingBP(p),
		Chol:     deref(p.Cholesterol, 200),
		Restecg:  0,
		Thalach:  deref(p.MaxHeartRate, maxHRFromAge(p.Age)),
		Oldpeak:  deref(p.OldPeak, 0),
		Slope:    slopeCode(p.STSlope),
		CA:       0,
		Thal:     0,
	}

	if p.BloodSugar != nil && *p.BloodSugar > 120 {
		req.FBS = 1
	}
	if p.ExerciseAngina != nil && *p.ExerciseAngina {
		req.Exang = 1
	}

	return req
}

func deref(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}

func sexCode(g assessment.Gender) int {
	if g == assessment.GenderMale {
		return 1
	}
	return 0
}

func chestPainCode(cp assessment.ChestPainType) int {
	switch cp {
	case assessment.ChestPainTypical:
		return 0
	case assessment.ChestPainAtypical:
		return 1
	case assessment.ChestPainNonAnginal:
		return 2
	default:
		return 3
	}
}

func slopeCode(s assessment.STSlope) int {
	switch s {
	case assessment.SlopeUpsloping:
		return 0
	case assessment.SlopeDownsloping:
		return 2
	default:
		return 1 // flat, also the neutral default
	}
}

func restingBP(p assessment.PatientData) float64 {
	if p.SystolicBP != nil {
		return *p.SystolicBP
	}
	if p.RestingBP != nil {
		return *p.RestingBP
	}
	return 130
}

// maxHRFromAge falls back to the standard 220-age estimate when maximum
// heart rate was not measured.
func maxHRFromAge(age *float64) float64 {
	if age == nil {
		return 150
	}
	return 220 - *age
}
