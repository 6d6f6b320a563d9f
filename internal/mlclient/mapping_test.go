package mlclient

import (
	"testing"

	"github.com/arogyalabs/cardioscope/internal/domain/assessment"
)

func TestFromPatientData_Encodings(t *testing.T) {
	p := assessment.PatientData{
		Age:            assessment.Float64(45),
		Gender:         assessment.GenderMale,
		SystolicBP:     assessment.Float64(140),
		Cholesterol:    assessment.Float64(220),
		BloodSugar:     assessment.Float64(130),
		MaxHeartRate:   assessment.Float64(165),
		ExerciseAngina: assessment.Bool(true),
		OldPeak:        assessment.Float64(1.4),
		ChestPainType:  assessment.ChestPainAtypical,
		STSlope:        assessment.SlopeDownsloping,
	}
	req := FromPatientData(p)

	if req.Age != 45 || req.Sex != 1 {
		t.Errorf("age/sex = %v/%d", req.Age, req.Sex)
	}
	if req.CP != 1 {
		t.Errorf("cp = %d, want 1 for atypical angina", req.CP)
	}
	if req.Trestbps != 140 || req.Chol != 220 {
		t.Errorf("trestbps/chol = %v/%v", req.Trestbps, req.Chol)
	}
	if req.FBS != 1 {
		t.Errorf("fbs = %d, want 1 for blood sugar 130", req.FBS)
	}
	if req.Thalach != 165 {
		t.Errorf("thalach = %v", req.Thalach)
	}
	if req.Exang != 1 {
		t.Errorf("exang = %d", req.Exang)
	}
	if req.Oldpeak != 1.4 {
		t.Errorf("oldpeak = %v", req.Oldpeak)
	}
	if req.Slope != 2 {
		t.Errorf("slope = %d, want 2 for downsloping", req.Slope)
	}
}

func TestFromPatientData_Defaults(t *testing.T) {
	req := FromPatientData(assessment.PatientData{})

	if req.Age != 50 {
		t.Errorf("age default = %v", req.Age)
	}
	if req.Sex != 0 {
		t.Errorf("sex default = %d", req.Sex)
	}
	if req.CP != 3 {
		t.Errorf("cp default = %d, want asymptomatic encoding", req.CP)
	}
	if req.Trestbps != 130 || req.Chol != 200 {
		t.Errorf("trestbps/chol defaults = %v/%v", req.Trestbps, req.Chol)
	}
	if req.FBS != 0 || req.Exang != 0 {
		t.Errorf("fbs/exang defaults = %d/%d", req.FBS, req.Exang)
	}
	if req.Thalach != 150 {
		t.Errorf("thalach default without age = %v", req.Thalach)
	}
	if req.Slope != 1 {
		t.Errorf("slope default = %d, want flat", req.Slope)
	}
}

func TestFromPatientData_MaxHRFromAge(t *testing.T) {
	req := FromPatientData(assessment.PatientData{Age: assessment.Float64(40)})
	if req.Thalach != 180 {
		t.Errorf("thalach = %v, want 220-age", req.Thalach)
	}
}

func TestFromPatientData_RestingBPFallback(t *testing.T) {
	req := FromPatientData(assessment.PatientData{RestingBP: assessment.Float64(125)})
	if req.Trestbps != 125 {
		t.Errorf("trestbps = %v, want restingBP fallback", req.Trestbps)
	}
}

func TestFromPatientData_FBSBoundary(t *testing.T) {
	req := FromPatientData(assessment.PatientData{BloodSugar: assessment.Float64(120)})
	if req.FBS != 0 {
		t.Errorf("fbs = %d, blood sugar must exceed 120 to set the flag", req.FBS)
	}
}
