package assessment

import "math"

// RiskCategory is the five-way ordinal classification of the composite
// score. Boundaries are closed-open: a score of exactly 25.0 is "low".
type RiskCategory string

const (
	CategoryVeryLow  RiskCategory = "very_low"
	CategoryLow      RiskCategory = "low"
	CategoryModerate RiskCategory = "moderate"
	CategoryHigh     RiskCategory = "high"
	CategoryVeryHigh RiskCategory = "very_high"
)

// RiskMultipliers are the six population-calibrated factors of the
// PURE-India model, rounded to two decimals for reporting.
type RiskMultipliers struct {
	Triglycerides    float64 `json:"triglycerides"`
	Obesity          float64 `json:"obesity"`
	Diabetes         float64 `json:"diabetes"`
	Smoking          float64 `json:"smoking"`
	PhysicalActivity float64 `json:"physicalActivity"`
	Diet             float64 `json:"diet"`
}

// ComponentRisks are the six independently capped weighted sub-scores.
type ComponentRisks struct {
	Lipid         float64 `json:"lipid"`
	Obesity       float64 `json:"obesity"`
	Glucose       float64 `json:"glucose"`
	BloodPressure float64 `json:"bloodPressure"`
	Lifestyle     float64 `json:"lifestyle"`
	Psychosocial  float64 `json:"psychosocial"`
}

// FraminghamComparison relates the PURE-India score to an age-adjusted
// Framingham-equivalent baseline.
type FraminghamComparison struct {
	FraminghamEquivalent float64 `json:"framinghamEquivalent"`
	Difference           float64 `json:"difference"`
	Interpretation       string  `json:"interpretation"`
}

// RiskAssessment is the scoring engine's complete result. It carries no
// identity or timestamp of its own; persistence wrappers attach those.
type RiskAssessment struct {
	RiskScore            float64              `json:"riskScore"`
	RiskCategory         RiskCategory         `json:"riskCategory"`
	RiskMultipliers      RiskMultipliers      `json:"riskMultipliers"`
	ComponentRisks       ComponentRisks       `json:"componentRisks"`
	FraminghamComparison FraminghamComparison `json:"framinghamComparison"`
	Recommendations      []string             `json:"recommendations"`
}

// Model constants calibrated against the PURE study's Indian cohort.
const (
	triglycerideBonus     = 0.56
	triglycerideThreshold = 150.0
	waistThresholdMale    = 90.0
	waistThresholdFemale  = 85.0
	diabetesMultiplier    = 3.2
	smokingMultiplier     = 2.1
	dietMultiplier        = 1.2
)

var componentWeights = ComponentRisks{
	Lipid:         0.25,
	Obesity:       0.25,
	Glucose:       0.20,
	BloodPressure: 0.15,
	Lifestyle:     0.10,
	Psychosocial:  0.05,
}

var generalRecommendations = []string{
	"Adopt a diet low in refined carbohydrates and saturated fats, emphasizing whole grains, legumes and vegetables.",
	"Practice daily stress-reduction techniques such as yoga, meditation or breathing exercises.",
	"Screen for metabolic syndrome annually, including fasting glucose, lipid profile and waist circumference.",
	"Discuss statin therapy with your physician given the elevated baseline risk in the Indian population.",
}

// CalculateRisk computes the PURE-India cardiovascular risk assessment for
// one patient. It is a pure function: missing optional fields receive the
// documented defaults, out-of-range inputs are clamped rather than
// rejected, and identical input always produces an identical assessment.
// Input sanity checking is a separate concern; see ValidateVitals.
func CalculateRisk(p PatientData) RiskAssessment {
	trigMult := triglycerideMultiplier(orDefault(p.Triglycerides, 150))
	obesityMult := obesityMultiplier(p.WaistCircumference, p.Gender)
	diabMult := stepMultiplier(p.isDiabetic(), diabetesMultiplier)
	smokeMult := stepMultiplier(p.isSmoker(), smokingMultiplier)
	activityMult := activityMultiplier(effectiveActivity(p.PhysicalActivity))

	stress := orDefault(p.StressLevel, 5)

	components := ComponentRisks{
		Lipid: lipidRisk(
			orDefault(p.Cholesterol, 200),
			orDefault(p.Triglycerides, 150),
			orDefault(p.HDLCholesterol, 40),
			trigMult,
		),
		Obesity:       math.Min((obesityMult-1.0)*100, 40),
		Glucose:       glucoseRisk(p.isDiabetic(), stress),
		BloodPressure: bloodPressureRisk(p.effectiveSystolic()),
		Lifestyle:     lifestyleRisk(effectiveActivity(p.PhysicalActivity)),
		Psychosocial:  psychosocialRisk(stress),
	}

	score := components.Lipid*componentWeights.Lipid +
		components.Obesity*componentWeights.Obesity +
		components.Glucose*componentWeights.Glucose +
		components.BloodPressure*componentWeights.BloodPressure +
		components.Lifestyle*componentWeights.Lifestyle +
		components.Psychosocial*componentWeights.Psychosocial
	score = round1(clamp(score, 0, 100))

	return RiskAssessment{
		RiskScore:    score,
		RiskCategory: Categorize(score),
		RiskMultipliers: RiskMultipliers{
			Triglycerides:    round2(trigMult),
			Obesity:          round2(obesityMult),
			Diabetes:         diabMult,
			Smoking:          smokeMult,
			PhysicalActivity: activityMult,
			Diet:             dietMultiplier,
		},
		ComponentRisks: ComponentRisks{
			Lipid:         round1(components.Lipid),
			Obesity:       round1(components.Obesity),
			Glucose:       round1(components.Glucose),
			BloodPressure: round1(components.BloodPressure),
			Lifestyle:     round1(components.Lifestyle),
			Psychosocial:  round1(components.Psychosocial),
		},
		FraminghamComparison: framinghamComparison(score, p.Age),
		Recommendations:      recommendations(diabMult, trigMult, smokeMult, activityMult),
	}
}

// Categorize maps a composite score onto the ordinal risk category.
func Categorize(score float64) RiskCategory {
	switch {
	case score < 25:
		return CategoryVeryLow
	case score < 40:
		return CategoryLow
	case score < 60:
		return CategoryModerate
	case score < 80:
		return CategoryHigh
	default:
		return CategoryVeryHigh
	}
}

// triglycerideMultiplier ramps linearly up to the threshold and applies the
// full Indian-population bonus above it.
func triglycerideMultiplier(tg float64) float64 {
	if tg > triglycerideThreshold {
		return 1.0 + triglycerideBonus
	}
	return 1.0 + (tg/triglycerideThreshold)*triglycerideBonus
}

// obesityMultiplier is only computed when waist circumference is present;
// absence means exactly 1.0. The female threshold applies for female
// patients, the male threshold otherwise.
func obesityMultiplier(waist *float64, gender Gender) float64 {
	if waist == nil {
		return 1.0
	}
	threshold := waistThresholdMale
	if gender == GenderFemale {
		threshold = waistThresholdFemale
	}
	return clamp(1.0+((*waist-threshold)/threshold)*0.5, 1.0, 2.0)
}

func stepMultiplier(present bool, factor float64) float64 {
	if present {
		return factor
	}
	return 1.0
}

func effectiveActivity(level ActivityLevel) ActivityLevel {
	if level == "" {
		return ActivityLow
	}
	return level
}

func activityMultiplier(level ActivityLevel) float64 {
	switch level {
	case ActivityLow:
		return 1.5
	case ActivityModerate:
		return 1.0
	default:
		return 0.7
	}
}

// lipidRisk combines cholesterol tiers, a multiplier-scaled triglyceride
// add-on and an HDL add-on, capped at 50. Tiers are non-cumulative: only
// the highest matching one applies.
func lipidRisk(chol, tg, hdl, trigMult float64) float64 {
	var risk float64

	switch {
	case chol > 240:
		risk += 30
	case chol > 200:
		risk += 20
	case chol > 160:
		risk += 10
	}

	switch {
	case tg > 200:
		risk += 20 * trigMult
	case tg > 150:
		risk += 15 * trigMult
	}

	switch {
	case hdl < 35:
		risk += 15
	case hdl < 40:
		risk += 10
	}

	return math.Min(risk, 50)
}

func glucoseRisk(diabetic bool, stress float64) float64 {
	if diabetic {
		return 40
	}
	if stress >= 8 {
		return 5
	}
	return 0
}

func bloodPressureRisk(systolic float64) float64 {
	switch {
	case systolic >= 160:
		return 30
	case systolic >= 140:
		return 20
	case systolic >= 130:
		return 10
	default:
		return 0
	}
}

// lifestyleRisk uses a calibrated constant table, deliberately not the same
// scale as the activity multiplier.
func lifestyleRisk(level ActivityLevel) float64 {
	switch level {
	case ActivityLow:
		return 25
	case ActivityModerate:
		return 10
	default:
		return 2
	}
}

func psychosocialRisk(stress float64) float64 {
	if stress > 7 {
		return math.Min((stress-5)*3, 20)
	}
	return 0
}

// framinghamComparison derives the baseline equivalent score. The two age
// adjustments are mutually exclusive; an absent age skips both.
func framinghamComparison(score float64, age *float64) FraminghamComparison {
	equivalent := score * 0.85
	if age != nil {
		switch {
		case *age < 45:
			equivalent *= 1.1
		case *age > 65:
			equivalent *= 1.2
		}
	}
	equivalent = round1(equivalent)
	difference := round1(score - equivalent)

	var interpretation string
	switch {
	case difference > 15:
		interpretation = "PURE-India risk is significantly higher than the Framingham baseline, reflecting population-specific metabolic factors."
	case difference > 5:
		interpretation = "PURE-India risk is moderately higher than the Framingham baseline."
	default:
		interpretation = "PURE-India risk is similar to the Framingham baseline."
	}

	return FraminghamComparison{
		FraminghamEquivalent: equivalent,
		Difference:           difference,
		Interpretation:       interpretation,
	}
}

// recommendations assembles the advisory list in fixed order: one entry per
// triggered multiplier, then the four general advisories. Never empty.
func recommendations(diabMult, trigMult, smokeMult, activityMult float64) []string {
	recs := make([]string, 0, 8)

	if diabMult > 1.0 {
		recs = append(recs, "Maintain strict glycemic control; diabetes multiplies cardiovascular risk more than threefold in the Indian population.")
	}
	if trigMult > 1.2 {
		recs = append(recs, "Reduce triglycerides through dietary changes and regular exercise; elevated triglycerides carry an outsized risk in South Asian cohorts.")
	}
	if smokeMult > 1.0 {
		recs = append(recs, "Stop smoking completely; tobacco use roughly doubles your cardiovascular risk.")
	}
	if activityMult > 1.0 {
		recs = append(recs, "Increase physical activity to at least 150 minutes of moderate exercise per week.")
	}

	return append(recs, generalRecommendations...)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
