package report

import "strings"

// Canonical field names. These identifiers are the closed vocabulary the
// extraction engine maps labels onto and the keys ConvertToFormData emits.
const (
	FieldAge                = "age"
	FieldGender             = "gender"
	FieldSystolicBP         = "systolicBP"
	FieldDiastolicBP        = "diastolicBP"
	FieldRestingBP          = "restingBP"
	FieldCholesterol        = "cholesterol"
	FieldHDLCholesterol     = "hdlCholesterol"
	FieldLDLCholesterol     = "ldlCholesterol"
	FieldTriglycerides      = "triglycerides"
	FieldHeartRate          = "heartRate"
	FieldMaxHeartRate       = "maxHeartRate"
	FieldBloodSugar         = "bloodSugar"
	FieldSleepHours         = "sleep_hours"
	FieldStressLevel        = "stressLevel"
	FieldWaistCircumference = "waistCircumference"
	FieldBMI                = "bmi"
	FieldSmoking            = "smoking"
	FieldDiabetes           = "diabetes"
	FieldExerciseAngina     = "exerciseAngina"
	FieldFamilyHistory      = "familyHistory"
	FieldChestPainType      = "chestPainType"
	FieldPhysicalActivity   = "physicalActivity"
	FieldDietType           = "dietType"
	FieldSTSlope            = "stSlope"
)

// enumToken maps a token that may appear inside the value text to its
// canonical normalization. Tokens are matched by case-insensitive
// containment, so more specific tokens must come first ("atypical" before
// "typical", "non-vegetarian" before "vegetarian").
type enumToken struct {
	Token     string
	Canonical string
}

// fieldSpec declares everything the engine knows about one canonical field.
// Label matching against Synonyms is exact after normalization; the engine
// never maps a near-miss spelling.
type fieldSpec struct {
	Name     string
	Kind     ValueKind
	Synonyms map[string]Confidence
	Min, Max float64 // inclusive, numeric kinds only
	Enum     []enumToken
}

var truthyTokens = map[string]bool{"yes": true, "true": true, "positive": true, "y": true, "1": true}
var falsyTokens = map[string]bool{"no": true, "false": true, "negative": true, "n": true, "0": true}

var registry = []fieldSpec{
	{
		Name: FieldAge, Kind: KindNumber, Min: 1, Max: 119,
		Synonyms: map[string]Confidence{"age": ConfidenceHigh, "patient age": ConfidenceHigh, "age years": ConfidenceMedium},
	},
	{
		Name: FieldGender, Kind: KindEnum,
		Synonyms: map[string]Confidence{"gender": ConfidenceHigh, "sex": ConfidenceHigh},
		Enum: []enumToken{
			{"female", "female"},
			{"male", "male"},
			{"other", "other"},
		},
	},
	{
		Name: FieldSystolicBP, Kind: KindNumber, Min: 50, Max: 300,
		Synonyms: map[string]Confidence{"systolic": ConfidenceHigh, "systolic bp": ConfidenceHigh, "systolic blood pressure": ConfidenceHigh, "sbp": ConfidenceMedium},
	},
	{
		Name: FieldDiastolicBP, Kind: KindNumber, Min: 30, Max: 200,
		Synonyms: map[string]Confidence{"diastolic": ConfidenceHigh, "diastolic bp": ConfidenceHigh, "diastolic blood pressure": ConfidenceHigh, "dbp": ConfidenceMedium},
	},
	{
		Name: FieldRestingBP, Kind: KindNumber, Min: 50, Max: 300,
		Synonyms: map[string]Confidence{"resting bp": ConfidenceHigh, "resting blood pressure": ConfidenceHigh, "blood pressure": ConfidenceMedium, "bp": ConfidenceLow},
	},
	{
		Name: FieldCholesterol, Kind: KindNumber, Min: 50, Max: 600,
		Synonyms: map[string]Confidence{"cholesterol": ConfidenceHigh, "total cholesterol": ConfidenceHigh, "serum cholesterol": ConfidenceHigh},
	},
	{
		Name: FieldHDLCholesterol, Kind: KindNumber, Min: 0, Max: 200,
		Synonyms: map[string]Confidence{"hdl": ConfidenceMedium, "hdl cholesterol": ConfidenceHigh, "good cholesterol": ConfidenceHigh},
	},
	{
		Name: FieldLDLCholesterol, Kind: KindNumber, Min: 0, Max: 400,
		Synonyms: map[string]Confidence{"ldl": ConfidenceMedium, "ldl cholesterol": ConfidenceHigh, "bad cholesterol": ConfidenceHigh},
	},
	{
		Name: FieldTriglycerides, Kind: KindNumber, Min: 0, Max: 1500,
		Synonyms: map[string]Confidence{"triglycerides": ConfidenceHigh, "triglyceride": ConfidenceHigh, "tg": ConfidenceLow},
	},
	{
		Name: FieldHeartRate, Kind: KindNumber, Min: 20, Max: 250,
		Synonyms: map[string]Confidence{"heart rate": ConfidenceHigh, "resting heart rate": ConfidenceHigh, "pulse": ConfidenceHigh, "hr": ConfidenceLow},
	},
	{
		Name: FieldMaxHeartRate, Kind: KindNumber, Min: 60, Max: 250,
		Synonyms: map[string]Confidence{"max heart rate": ConfidenceHigh, "maximum heart rate": ConfidenceHigh, "thalach": ConfidenceMedium},
	},
	{
		Name: FieldBloodSugar, Kind: KindNumber, Min: 30, Max: 600,
		Synonyms: map[string]Confidence{"blood sugar": ConfidenceHigh, "fasting blood sugar": ConfidenceHigh, "glucose": ConfidenceHigh, "fbs": ConfidenceLow},
	},
	{
		Name: FieldSleepHours, Kind: KindNumber, Min: 0, Max: 24,
		Synonyms: map[string]Confidence{"sleep": ConfidenceMedium, "sleep hours": ConfidenceHigh, "hours of sleep": ConfidenceHigh},
	},
	{
		Name: FieldStressLevel, Kind: KindNumber, Min: 1, Max: 10,
		Synonyms: map[string]Confidence{"stress": ConfidenceMedium, "stress level": ConfidenceHigh},
	},
	{
		Name: FieldWaistCircumference, Kind: KindNumber, Min: 40, Max: 200,
		Synonyms: map[string]Confidence{"waist": ConfidenceMedium, "waist circumference": ConfidenceHigh},
	},
	{
		Name: FieldBMI, Kind: KindNumber, Min: 10, Max: 80,
		Synonyms: map[string]Confidence{"bmi": ConfidenceHigh, "body mass index": ConfidenceHigh},
	},
	{
		Name: FieldSmoking, Kind: KindBoolean,
		Synonyms: map[string]Confidence{"smoking": ConfidenceHigh, "smoker": ConfidenceHigh, "tobacco": ConfidenceMedium, "tobacco use": ConfidenceHigh},
	},
	{
		Name: FieldDiabetes, Kind: KindBoolean,
		Synonyms: map[string]Confidence{"diabetes": ConfidenceHigh, "diabetic": ConfidenceHigh},
	},
	{
		Name: FieldExerciseAngina, Kind: KindBoolean,
		Synonyms: map[string]Confidence{"exercise angina": ConfidenceHigh, "exercise induced angina": ConfidenceHigh, "exang": ConfidenceMedium},
	},
	{
		Name: FieldFamilyHistory, Kind: KindBoolean,
		Synonyms: map[string]Confidence{"family history": ConfidenceHigh, "family history of heart disease": ConfidenceHigh},
	},
	{
		Name: FieldChestPainType, Kind: KindEnum,
		Synonyms: map[string]Confidence{"chest pain": ConfidenceHigh, "chest pain type": ConfidenceHigh, "cp": ConfidenceLow},
		Enum: []enumToken{
			{"non-anginal", "non-anginal pain"},
			{"non anginal", "non-anginal pain"},
			{"nonanginal", "non-anginal pain"},
			{"atypical", "atypical angina"},
			{"typical", "typical angina"},
			{"asymptomatic", "asymptomatic"},
		},
	},
	{
		Name: FieldPhysicalActivity, Kind: KindEnum,
		Synonyms: map[string]Confidence{"physical activity": ConfidenceHigh, "activity level": ConfidenceHigh, "exercise": ConfidenceMedium, "activity": ConfidenceMedium},
		Enum: []enumToken{
			{"moderate", "moderate"},
			{"high", "high"},
			{"low", "low"},
			{"sedentary", "low"},
			{"active", "high"},
		},
	},
	{
		Name: FieldDietType, Kind: KindEnum,
		Synonyms: map[string]Confidence{"diet": ConfidenceMedium, "diet type": ConfidenceHigh},
		Enum: []enumToken{
			{"non-vegetarian", "non-vegetarian"},
			{"non vegetarian", "non-vegetarian"},
			{"vegetarian", "vegetarian"},
			{"vegan", "vegan"},
			{"mixed", "mixed"},
		},
	},
	{
		Name: FieldSTSlope, Kind: KindEnum,
		Synonyms: map[string]Confidence{"st slope": ConfidenceHigh, "slope": ConfidenceMedium, "st segment slope": ConfidenceHigh},
		Enum: []enumToken{
			{"upsloping", "upsloping"},
			{"downsloping", "downsloping"},
			{"up", "upsloping"},
			{"down", "downsloping"},
			{"flat", "flat"},
		},
	},
}

// labelIndex maps every normalized synonym to its field spec. Built once;
// read-only afterwards, so concurrent Parse calls are safe.
var labelIndex = buildLabelIndex()

type labelEntry struct {
	spec       *fieldSpec
	confidence Confidence
}

func buildLabelIndex() map[string]labelEntry {
	idx := make(map[string]labelEntry)
	for i := range registry {
		spec := &registry[i]
		for syn, conf := range spec.Synonyms {
			idx[normalizeLabel(syn)] = labelEntry{spec: spec, confidence: conf}
		}
	}
	return idx
}

// normalizeLabel lowercases, trims and collapses inner whitespace. This is
// the only transformation applied before exact synonym lookup; anything
// beyond it would break the non-hallucination rule.
func normalizeLabel(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), " ")
}

func lookupLabel(label string) (labelEntry, bool) {
	e, ok := labelIndex[normalizeLabel(label)]
	return e, ok
}
