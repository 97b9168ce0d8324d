package coach

import (
	"fmt"
	"strings"

	"healthscore/internal/analysis"
)

const systemPrompt = "You are a supportive health coach. Given a structured health assessment, " +
	"write short, practical coaching in plain language. Focus on the weakest areas first. " +
	"Do not diagnose conditions or recommend medication."

// BuildPrompt summarises an assessment result for the coaching model.
// The output depends only on the result.
func BuildPrompt(result analysis.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Overall health score: %d/100 (%s)\n", result.OverallScore, result.Description)

	b.WriteString("\nPillar scores:\n")
	for _, p := range analysis.Pillars {
		fmt.Fprintf(&b, "- %s: %d/100\n", p.Label(), p.Score(result.Scores))
	}

	weakest := analysis.WeakestPillar(result.Scores)
	fmt.Fprintf(&b, "\nWeakest area: %s\n", weakest.Label())

	c := result.Calculations
	b.WriteString("\nMetrics:\n")
	writeMetric(&b, "BMI", c.BMI, "%.1f")
	if c.BMICategory != "" {
		fmt.Fprintf(&b, "- BMI category: %s\n", c.BMICategory)
	}
	writeMetric(&b, "Body fat %", c.BodyFat, "%.1f")
	writeMetric(&b, "TDEE kcal", c.TDEE, "%.0f")
	writeMetric(&b, "Recommended kcal", c.RecommendedCalories, "%.0f")
	if c.ProteinGrams != nil && c.CarbGrams != nil && c.FatGrams != nil {
		fmt.Fprintf(&b, "- Macros: protein %.0fg, carbs %.0fg, fat %.0fg\n", *c.ProteinGrams, *c.CarbGrams, *c.FatGrams)
	}

	b.WriteString("\nRecommendations so far:\n")
	wrote := false
	for _, f := range result.Feedback {
		for _, r := range f.Recommendations {
			fmt.Fprintf(&b, "- [%s] %s\n", f.Pillar.Label(), r)
			wrote = true
		}
	}
	if !wrote {
		b.WriteString("- none\n")
	}

	b.WriteString("\nWrite three short paragraphs of coaching for this person.")
	return b.String()
}

func writeMetric(b *strings.Builder, name string, v *float64, format string) {
	if v == nil {
		fmt.Fprintf(b, "- %s: unavailable\n", name)
		return
	}
	fmt.Fprintf(b, "- %s: "+format+"\n", name, *v)
}
