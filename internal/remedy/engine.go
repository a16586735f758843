package remedy

import (
	"time"

	"github.com/fieldlab/crop-advisor/internal/pestinfer"
	"github.com/fieldlab/crop-advisor/internal/refdata"
)

// Engine assembles management plans from the treatment catalog. It holds no
// mutable state beyond an injectable clock, so one instance serves any
// number of concurrent requests.
type Engine struct {
	catalog *refdata.Catalog
	now     func() time.Time
}

func NewEngine(catalog *refdata.Catalog) *Engine {
	return &Engine{catalog: catalog, now: time.Now}
}

// WithClock pins the engine's notion of "now". Only the calendar month is
// ever read from it (for the seasonal application note).
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Recommend builds the management plan for one disease. Unknown diseases
// degrade to the default plan without numeric scoring; a malformed
// confidence is rejected instead, since defaulting is reserved for unknown
// keys, not invalid input.
func (e *Engine) Recommend(disease string, pests []pestinfer.PestCandidate, diseaseConfidence float64) (ManagementPlan, error) {
	if err := (pestinfer.DiseasePrediction{Disease: disease, Confidence: diseaseConfidence}).Validate(); err != nil {
		return ManagementPlan{}, err
	}

	profile, ok := e.catalog.TreatmentProfile(disease)
	if !ok {
		return e.DefaultPlan(), nil
	}

	urgency := calculateUrgency(profile.Urgency, diseaseConfidence, pests)
	plan := ManagementPlan{
		TreatmentProfile:    profile,
		CalculatedUrgency:   urgency,
		ApplicationTiming:   e.applicationTiming(urgency),
		CostAnalysis:        analyzeCosts(profile),
		EnvironmentalImpact: environmentalImpact(),
	}
	if len(pests) > 0 {
		plan.PestSpecificTreatments = pestSpecificTreatments(pests)
	}
	return plan, nil
}

// IntegratedPlan runs Recommend for the primary (rank-0) disease and
// attaches secondary considerations for ranks 1-2 with confidence >= 0.3.
// Secondaries reuse their own static profiles without urgency recomputation.
func (e *Engine) IntegratedPlan(predictions []pestinfer.DiseasePrediction, pests []pestinfer.PestCandidate) (ManagementPlan, error) {
	if len(predictions) == 0 {
		return e.DefaultPlan(), nil
	}
	for _, p := range predictions {
		if err := p.Validate(); err != nil {
			return ManagementPlan{}, err
		}
	}

	primary := predictions[0]
	plan, err := e.Recommend(primary.Disease, pests, primary.Confidence)
	if err != nil {
		return ManagementPlan{}, err
	}

	secondaries := predictions[1:]
	if len(secondaries) > 2 {
		secondaries = secondaries[:2]
	}
	for _, pred := range secondaries {
		if pred.Confidence < 0.3 {
			continue
		}
		profile, _ := e.catalog.TreatmentProfile(pred.Disease)
		plan.SecondaryConsiderations = append(plan.SecondaryConsiderations, SecondaryConsideration{
			Disease:       pred.Disease,
			Confidence:    pred.Confidence,
			KeyTreatments: headChemical(profile.ChemicalTreatments, 2),
			Prevention:    headStrings(profile.Prevention, 3),
		})
	}
	return plan, nil
}

// DefaultPlan is the unknown-disease fallback: generic organic advice with
// static urgency "medium" and fixed timing. Scoring, cost analysis, and
// environmental impact are skipped on this path.
func (e *Engine) DefaultPlan() ManagementPlan {
	return ManagementPlan{
		TreatmentProfile: defaultProfile(),
		ApplicationTiming: ApplicationTiming{
			ImmediateAction: "Implement general management practices",
			FollowUp:        "Monitor closely and seek expert diagnosis",
			BestTime:        "As needed based on weather conditions",
		},
	}
}

// calculateUrgency combines the static profile urgency with the disease
// confidence and the strength of the pest evidence. The arithmetic and the
// thresholds are the published decision contract; do not reorder them.
func calculateUrgency(base refdata.Urgency, diseaseConfidence float64, pests []pestinfer.PestCandidate) CalculatedUrgency {
	score := float64(baseScore(base)) * confidenceModifier(diseaseConfidence) * pestModifier(pests)
	return mapScore(score)
}

func baseScore(u refdata.Urgency) int {
	switch u {
	case refdata.UrgencyNone:
		return 0
	case refdata.UrgencyLow:
		return 1
	case refdata.UrgencyMedium:
		return 2
	case refdata.UrgencyHigh:
		return 3
	default:
		return 1
	}
}

func confidenceModifier(c float64) float64 {
	switch {
	case c >= 0.9:
		return 1.2
	case c >= 0.7:
		return 1.0
	default:
		return 0.8
	}
}

func pestModifier(pests []pestinfer.PestCandidate) float64 {
	modifier := 1.0
	for _, p := range pests {
		if p.Confidence >= 0.8 {
			return 1.3
		}
		if p.Confidence >= 0.6 {
			modifier = 1.1
		}
	}
	return modifier
}

// mapScore translates the numeric score back onto the five-level scale.
// Tiers are evaluated high to low and inclusive on their lower bound: a
// score of exactly 2.5 is "high", not "medium".
func mapScore(score float64) CalculatedUrgency {
	switch {
	case score >= 3.5:
		return CalculatedCritical
	case score >= 2.5:
		return CalculatedHigh
	case score >= 1.5:
		return CalculatedMedium
	case score >= 0.5:
		return CalculatedLow
	default:
		return CalculatedNone
	}
}

func pestSpecificTreatments(pests []pestinfer.PestCandidate) []PestTreatment {
	var out []PestTreatment
	for _, p := range pests {
		tpl, ok := pestTreatmentTemplates[p.PestType]
		if !ok {
			continue
		}
		out = append(out, PestTreatment{
			Target:          p.PestName,
			TreatmentType:   tpl.treatmentType,
			Recommendations: append([]string(nil), tpl.recommendations...),
		})
	}
	return out
}

func (e *Engine) applicationTiming(urgency CalculatedUrgency) ApplicationTiming {
	timing, ok := timingTable[urgency]
	if !ok {
		timing = timingTable[CalculatedMedium]
	}
	switch e.now().Month() {
	case time.June, time.July, time.August:
		timing.SeasonalNote = seasonalNoteSummer
	case time.December, time.January, time.February:
		timing.SeasonalNote = seasonalNoteWinter
	default:
		timing.SeasonalNote = seasonalNoteSpringFall
	}
	return timing
}

func analyzeCosts(profile refdata.TreatmentProfile) *CostAnalysis {
	chemical, organic, prevention := costTiers()
	analysis := &CostAnalysis{
		ChemicalTreatments: chemical,
		OrganicTreatments:  organic,
		Prevention:         prevention,
	}
	hasChemical := len(profile.ChemicalTreatments) > 0
	hasOrganic := len(profile.OrganicTreatments) > 0
	switch {
	case hasChemical && hasOrganic:
		analysis.Recommendation = costRecommendationIntegrated
	case hasChemical:
		analysis.Recommendation = costRecommendationChemical
	case hasOrganic:
		analysis.Recommendation = costRecommendationOrganic
	default:
		analysis.Recommendation = costRecommendationPrevention
	}
	return analysis
}

func headChemical(list []refdata.ChemicalTreatment, n int) []refdata.ChemicalTreatment {
	if len(list) > n {
		list = list[:n]
	}
	return append([]refdata.ChemicalTreatment{}, list...)
}

func headStrings(list []string, n int) []string {
	if len(list) > n {
		list = list[:n]
	}
	return append([]string{}, list...)
}
