package assessment

import (
	"fmt"
	"strings"
)

// Explain renders an assessment into the fixed human-readable template:
// score and category, the six multipliers, the Framingham comparison
// sentence, and the numbered recommendations.
func Explain(a RiskAssessment) string {
	var b strings.Builder

	fmt.Fprintf(&b, "PURE-India cardiovascular risk score: %.1f/100 (%s)\n\n",
		a.RiskScore, strings.ReplaceAll(string(a.RiskCategory), "_", " "))

	b.WriteString("Risk multipliers:\n")
	fmt.Fprintf(&b, "  Triglycerides: %.2fx\n", a.RiskMultipliers.Triglycerides)
	fmt.Fprintf(&b, "  Obesity: %.2fx\n", a.RiskMultipliers.Obesity)
	fmt.Fprintf(&b, "  Diabetes: %.2fx\n", a.RiskMultipliers.Diabetes)
	fmt.Fprintf(&b, "  Smoking: %.2fx\n", a.RiskMultipliers.Smoking)
	fmt.Fprintf(&b, "  Physical activity: %.2fx\n", a.RiskMultipliers.PhysicalActivity)
	fmt.Fprintf(&b, "  Diet: %.2fx\n\n", a.RiskMultipliers.Diet)

	fmt.Fprintf(&b, "Framingham comparison: equivalent score %.1f (difference %+.1f). %s\n\n",
		a.FraminghamComparison.FraminghamEquivalent,
		a.FraminghamComparison.Difference,
		a.FraminghamComparison.Interpretation)

	b.WriteString("Recommendations:\n")
	for i, rec := range a.Recommendations {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, rec)
	}

	return b.String()
}
