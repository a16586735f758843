package remedy

import (
	"fmt"
	"strings"
	"time"
)

// BuildPlanMarkdown renders an assessment as a markdown report. Layout
// mirrors the JSON envelope; nothing here recomputes engine decisions.
func BuildPlanMarkdown(env PlanEnvelope) string {
	var b strings.Builder
	buildPlanHeader(&b, env)
	buildDiagnosisSection(&b, env)
	buildPestSection(&b, env)
	buildTreatmentSection(&b, env.Plan)
	buildTimingSection(&b, env.Plan)
	buildCostSection(&b, env.Plan)
	buildEnvironmentalSection(&b, env.Plan)
	buildSecondarySection(&b, env.Plan)
	buildPreventionSection(&b, env.Plan)
	return b.String()
}

func buildPlanHeader(b *strings.Builder, env PlanEnvelope) {
	fmt.Fprintf(b, "# Crop Management Plan\n\n")
	if len(env.Predictions) > 0 {
		fmt.Fprintf(b, "- Primary diagnosis: %s (%.1f%% confidence)\n", env.Predictions[0].Disease, env.Predictions[0].Confidence*100)
	}
	if env.Season != "" {
		fmt.Fprintf(b, "- Season: %s\n", env.Season)
	}
	if !env.GeneratedAt.IsZero() {
		fmt.Fprintf(b, "- Date: %s\n", env.GeneratedAt.Format(time.RFC3339))
	}
	fmt.Fprintf(b, "\n%s\n\n", Disclaimer)
}

func buildDiagnosisSection(b *strings.Builder, env PlanEnvelope) {
	fmt.Fprintf(b, "## Assessment\n\n")
	fmt.Fprintf(b, "%s\n\n", env.Plan.Description)
	fmt.Fprintf(b, "- Catalog urgency: `%s`\n", env.Plan.Urgency)
	if env.Plan.CalculatedUrgency != "" {
		fmt.Fprintf(b, "- Calculated urgency: `%s`\n", env.Plan.CalculatedUrgency)
	}
	fmt.Fprintf(b, "- Management priority: `%s` — %s\n", env.ManagementPriority.Priority, env.ManagementPriority.Action)
	if env.SeasonalRisk != nil {
		fmt.Fprintf(b, "- Seasonal risk: `%s`\n", env.SeasonalRisk.RiskLevel)
		for _, rec := range env.SeasonalRisk.Recommendations {
			fmt.Fprintf(b, "  - %s\n", rec)
		}
	}
	b.WriteString("\n")
}

func buildPestSection(b *strings.Builder, env PlanEnvelope) {
	if len(env.Pests) == 0 {
		return
	}
	fmt.Fprintf(b, "## Likely Causal Pests\n\n")
	fmt.Fprintf(b, "| Pest | Type | Confidence | Damage |\n")
	fmt.Fprintf(b, "|------|------|-----------:|--------|\n")
	for _, p := range env.Pests {
		fmt.Fprintf(b, "| %s (*%s*) | %s | %.1f%% | %s |\n", p.PestName, p.ScientificName, p.PestType, p.Confidence*100, p.DamageDescription)
	}
	b.WriteString("\n")
	for _, p := range env.Pests {
		if p.OptimalConditions == "" && p.SpreadMethod == "" {
			continue
		}
		fmt.Fprintf(b, "### %s\n\n", p.PestName)
		if p.OptimalConditions != "" {
			fmt.Fprintf(b, "- Optimal conditions: %s\n", p.OptimalConditions)
		}
		if p.SpreadMethod != "" {
			fmt.Fprintf(b, "- Spread: %s\n", p.SpreadMethod)
		}
		if p.HostRange != "" {
			fmt.Fprintf(b, "- Host range: %s\n", p.HostRange)
		}
		if p.EconomicImpact != "" {
			fmt.Fprintf(b, "- Economic impact: %s\n", p.EconomicImpact)
		}
		b.WriteString("\n")
	}
}

func buildTreatmentSection(b *strings.Builder, plan ManagementPlan) {
	fmt.Fprintf(b, "## Treatments\n\n")
	if len(plan.ChemicalTreatments) > 0 {
		fmt.Fprintf(b, "### Chemical\n\n")
		for _, t := range plan.ChemicalTreatments {
			fmt.Fprintf(b, "- **%s** (%s), %s — %s\n", t.Product, t.ActiveIngredient, t.Dosage, t.Application)
			fmt.Fprintf(b, "  - Timing: %s\n", t.Timing)
			fmt.Fprintf(b, "  - Precautions: %s\n", t.Precautions)
		}
		b.WriteString("\n")
	}
	if len(plan.OrganicTreatments) > 0 {
		fmt.Fprintf(b, "### Organic\n\n")
		for _, t := range plan.OrganicTreatments {
			fmt.Fprintf(b, "- **%s**: %s\n", t.Method, t.Procedure)
			fmt.Fprintf(b, "  - Timing: %s\n", t.Timing)
			fmt.Fprintf(b, "  - Effectiveness: %s\n", t.Effectiveness)
		}
		b.WriteString("\n")
	}
	if len(plan.PestSpecificTreatments) > 0 {
		fmt.Fprintf(b, "### Pest-Specific\n\n")
		for _, t := range plan.PestSpecificTreatments {
			fmt.Fprintf(b, "- %s (%s)\n", t.Target, t.TreatmentType)
			for _, rec := range t.Recommendations {
				fmt.Fprintf(b, "  - %s\n", rec)
			}
		}
		b.WriteString("\n")
	}
}

func buildTimingSection(b *strings.Builder, plan ManagementPlan) {
	fmt.Fprintf(b, "## Application Timing\n\n")
	fmt.Fprintf(b, "- Immediate action: %s\n", plan.ApplicationTiming.ImmediateAction)
	fmt.Fprintf(b, "- Follow-up: %s\n", plan.ApplicationTiming.FollowUp)
	fmt.Fprintf(b, "- Best time: %s\n", plan.ApplicationTiming.BestTime)
	if plan.ApplicationTiming.SeasonalNote != "" {
		fmt.Fprintf(b, "- Seasonal note: %s\n", plan.ApplicationTiming.SeasonalNote)
	}
	b.WriteString("\n")
}

func buildCostSection(b *strings.Builder, plan ManagementPlan) {
	if plan.CostAnalysis == nil {
		return
	}
	fmt.Fprintf(b, "## Cost Analysis\n\n")
	fmt.Fprintf(b, "| Option | Cost | Effectiveness | Notes |\n")
	fmt.Fprintf(b, "|--------|------|---------------|-------|\n")
	fmt.Fprintf(b, "| Chemical | %s | %s | %s |\n", plan.CostAnalysis.ChemicalTreatments.CostLevel, plan.CostAnalysis.ChemicalTreatments.Effectiveness, plan.CostAnalysis.ChemicalTreatments.Notes)
	fmt.Fprintf(b, "| Organic | %s | %s | %s |\n", plan.CostAnalysis.OrganicTreatments.CostLevel, plan.CostAnalysis.OrganicTreatments.Effectiveness, plan.CostAnalysis.OrganicTreatments.Notes)
	fmt.Fprintf(b, "| Prevention | %s | %s | %s |\n", plan.CostAnalysis.Prevention.CostLevel, plan.CostAnalysis.Prevention.Effectiveness, plan.CostAnalysis.Prevention.Notes)
	fmt.Fprintf(b, "\n%s\n\n", plan.CostAnalysis.Recommendation)
}

func buildEnvironmentalSection(b *strings.Builder, plan ManagementPlan) {
	if plan.EnvironmentalImpact == nil {
		return
	}
	fmt.Fprintf(b, "## Environmental Impact\n\n")
	writeImpact := func(name string, tier ImpactTier) {
		fmt.Fprintf(b, "### %s (risk: %s)\n\n", name, tier.EnvironmentalRisk)
		for _, c := range tier.Considerations {
			fmt.Fprintf(b, "- %s\n", c)
		}
		b.WriteString("\n")
	}
	writeImpact("Chemical Treatments", plan.EnvironmentalImpact.ChemicalTreatments)
	writeImpact("Organic Treatments", plan.EnvironmentalImpact.OrganicTreatments)
	writeImpact("Cultural Practices", plan.EnvironmentalImpact.CulturalPractices)
}

func buildSecondarySection(b *strings.Builder, plan ManagementPlan) {
	if len(plan.SecondaryConsiderations) == 0 {
		return
	}
	fmt.Fprintf(b, "## Secondary Considerations\n\n")
	for _, s := range plan.SecondaryConsiderations {
		fmt.Fprintf(b, "### %s (%.1f%% confidence)\n\n", s.Disease, s.Confidence*100)
		for _, t := range s.KeyTreatments {
			fmt.Fprintf(b, "- %s (%s), %s\n", t.Product, t.ActiveIngredient, t.Dosage)
		}
		for _, p := range s.Prevention {
			fmt.Fprintf(b, "- Prevention: %s\n", p)
		}
		b.WriteString("\n")
	}
}

func buildPreventionSection(b *strings.Builder, plan ManagementPlan) {
	if len(plan.Prevention) > 0 {
		fmt.Fprintf(b, "## Prevention\n\n")
		for _, p := range plan.Prevention {
			fmt.Fprintf(b, "- %s\n", p)
		}
		b.WriteString("\n")
	}
	if len(plan.CulturalPractices) > 0 {
		fmt.Fprintf(b, "## Cultural Practices\n\n")
		for _, p := range plan.CulturalPractices {
			fmt.Fprintf(b, "- %s\n", p)
		}
		b.WriteString("\n")
	}
}
