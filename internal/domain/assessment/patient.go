package assessment

// Gender of the patient as the scoring model understands it. Anything other
// than male/female skips the gender-specific waist thresholds.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ActivityLevel is the three-way physical-activity scale the PURE-India
// calibration uses.
type ActivityLevel string

const (
	ActivityLow      ActivityLevel = "low"
	ActivityModerate ActivityLevel = "moderate"
	ActivityHigh     ActivityLevel = "high"
)

// ChestPainType follows the standard four-way clinical classification.
type ChestPainType string

const (
	ChestPainTypical      ChestPainType = "typical angina"
	ChestPainAtypical     ChestPainType = "atypical angina"
	ChestPainNonAnginal   ChestPainType = "non-anginal pain"
	ChestPainAsymptomatic ChestPainType = "asymptomatic"
)

// STSlope of the peak exercise ST segment.
type STSlope string

const (
	SlopeUpsloping   STSlope = "upsloping"
	SlopeFlat        STSlope = "flat"
	SlopeDownsloping STSlope = "downsloping"
)

// PatientData is the scoring engine's sole input. Optional fields are
// pointers; the engine applies documented defaults for absent values and
// never faults on a missing field. The struct is read-only to the engine.
//
// Defaults applied by CalculateRisk when nil: Cholesterol 200, SystolicBP
// 130 (RestingBP is consulted first as a fallback), Triglycerides 150,
// HDLCholesterol 40, PhysicalActivity "low", StressLevel 5. Age, Gender,
// Smoking, Diabetes and WaistCircumference have no default: their absence
// means the related contribution is computed as "no effect".
type PatientData struct {
	Age    *float64 `json:"age,omitempty"`
	Gender Gender   `json:"gender,omitempty"`

	SystolicBP  *float64 `json:"systolicBP,omitempty"`
	DiastolicBP *float64 `json:"diastolicBP,omitempty"`
	RestingBP   *float64 `json:"restingBP,omitempty"`

	Cholesterol    *float64 `json:"cholesterol,omitempty"`
	HDLCholesterol *float64 `json:"hdlCholesterol,omitempty"`
	LDLCholesterol *float64 `json:"ldlCholesterol,omitempty"`
	Triglycerides  *float64 `json:"triglycerides,omitempty"`

	HeartRate    *float64 `json:"heartRate,omitempty"`
	MaxHeartRate *float64 `json:"maxHeartRate,omitempty"`
	BloodSugar   *float64 `json:"bloodSugar,omitempty"`
	BMI          *float64 `json:"bmi,omitempty"`

	WaistCircumference *float64 `json:"waistCircumference,omitempty"`
	SleepHours         *float64 `json:"sleep_hours,omitempty"`
	StressLevel        *float64 `json:"stressLevel,omitempty"`

	Smoking        *bool `json:"smoking,omitempty"`
	Diabetes       *bool `json:"diabetes,omitempty"`
	ExerciseAngina *bool `json:"exerciseAngina,omitempty"`
	FamilyHistory  *bool `json:"familyHistory,omitempty"`

	ChestPainType    ChestPainType `json:"chestPainType,omitempty"`
	PhysicalActivity ActivityLevel `json:"physicalActivity,omitempty"`
	DietType         string        `json:"dietType,omitempty"`
	STSlope          STSlope       `json:"stSlope,omitempty"`

	OldPeak *float64 `json:"oldpeak,omitempty"`
}

// Float64 returns a pointer to n. Convenience for building PatientData.
func Float64(n float64) *float64 { return &n }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// orDefault resolves an optional numeric field against its documented
// default.
func orDefault(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}

// effectiveSystolic resolves the systolic blood pressure used for scoring:
// SystolicBP when present, else RestingBP, else the default of 130.
func (p *PatientData) effectiveSystolic() float64 {
	if p.SystolicBP != nil {
		return *p.SystolicBP
	}
	if p.RestingBP != nil {
		return *p.RestingBP
	}
	return 130
}

func (p *PatientData) isDiabetic() bool {
	return p.Diabetes != nil && *p.Diabetes
}

func (p *PatientData) isSmoker() bool {
	return p.Smoking != nil && *p.Smoking
}
