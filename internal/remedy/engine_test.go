package remedy

import (
	"strings"
	"testing"
	"time"

	"github.com/fieldlab/crop-advisor/internal/pestinfer"
	"github.com/fieldlab/crop-advisor/internal/refdata"
)

func fixedClock(month time.Month) func() time.Time {
	return func() time.Time {
		return time.Date(2026, month, 15, 12, 0, 0, 0, time.UTC)
	}
}

func testEngine(t *testing.T) (*Engine, *pestinfer.Inferencer) {
	t.Helper()
	catalog, err := refdata.Default()
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}
	engine := NewEngine(catalog).WithClock(fixedClock(time.April))
	return engine, pestinfer.NewInferencer(catalog)
}

func inferFor(t *testing.T, inf *pestinfer.Inferencer, disease string, confidence float64) []pestinfer.PestCandidate {
	t.Helper()
	pests, err := inf.Infer(disease, confidence)
	if err != nil {
		t.Fatalf("Infer(%q, %v): %v", disease, confidence, err)
	}
	return pests
}

func TestMapScoreTiers(t *testing.T) {
	cases := []struct {
		score float64
		want  CalculatedUrgency
	}{
		{4.68, CalculatedCritical},
		{3.5, CalculatedCritical},
		{3.49, CalculatedHigh},
		{2.5, CalculatedHigh},
		{2.49, CalculatedMedium},
		{1.5, CalculatedMedium},
		{1.49, CalculatedLow},
		{0.5, CalculatedLow},
		{0.49, CalculatedNone},
		{0, CalculatedNone},
	}
	for _, tc := range cases {
		if got := mapScore(tc.score); got != tc.want {
			t.Fatalf("mapScore(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestRecommendHighConfidenceFusariumIsCritical(t *testing.T) {
	engine, inf := testEngine(t)
	pests := inferFor(t, inf, "Fusarium Wilt", 0.95)

	plan, err := engine.Recommend("Fusarium Wilt", pests, 0.95)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	// high base (3) * 1.2 confidence * 1.3 pest evidence = 4.68
	if plan.CalculatedUrgency != CalculatedCritical {
		t.Fatalf("calculated urgency = %q, want critical", plan.CalculatedUrgency)
	}
	if plan.Urgency != refdata.UrgencyHigh {
		t.Fatalf("static urgency = %q, want high (both fields ship)", plan.Urgency)
	}
	if plan.ApplicationTiming.ImmediateAction != "Apply treatment within 24 hours" {
		t.Fatalf("timing = %q", plan.ApplicationTiming.ImmediateAction)
	}
	if plan.CostAnalysis == nil || plan.EnvironmentalImpact == nil {
		t.Fatal("scored plan must carry cost analysis and environmental impact")
	}
}

func TestRecommendFusariumWithoutPestListStillCritical(t *testing.T) {
	engine, _ := testEngine(t)
	plan, err := engine.Recommend("Fusarium Wilt", nil, 0.95)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	// high base (3) * 1.2 confidence * 1.0 pest evidence = 3.6
	if plan.CalculatedUrgency != CalculatedCritical {
		t.Fatalf("calculated urgency = %q, want critical", plan.CalculatedUrgency)
	}
}

func TestRecommendModerateMildewIsLow(t *testing.T) {
	engine, inf := testEngine(t)
	pests := inferFor(t, inf, "Powdery Mildew", 0.65)

	plan, err := engine.Recommend("Powdery Mildew", pests, 0.65)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	// low base (1) * 0.8 confidence * 1.1 pest evidence = 0.88
	if plan.CalculatedUrgency != CalculatedLow {
		t.Fatalf("calculated urgency = %q, want low", plan.CalculatedUrgency)
	}
}

func TestRecommendHealthyIsNone(t *testing.T) {
	engine, inf := testEngine(t)
	pests := inferFor(t, inf, "Healthy Plant", 0.99)

	plan, err := engine.Recommend("Healthy Plant", pests, 0.99)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	// none base (0): any modifier still multiplies to zero
	if plan.CalculatedUrgency != CalculatedNone {
		t.Fatalf("calculated urgency = %q, want none", plan.CalculatedUrgency)
	}
	if len(plan.PestSpecificTreatments) != 0 {
		t.Fatalf("healthy plan has pest treatments: %v", plan.PestSpecificTreatments)
	}
}

func TestRecommendUnknownDiseaseDefaultPlan(t *testing.T) {
	engine, _ := testEngine(t)
	plan, err := engine.Recommend("Mystery Blight", nil, 0.9)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if plan.CalculatedUrgency != "" {
		t.Fatalf("default plan must skip scoring, got %q", plan.CalculatedUrgency)
	}
	if plan.Urgency != refdata.UrgencyMedium {
		t.Fatalf("default urgency = %q, want medium", plan.Urgency)
	}
	if plan.CostAnalysis != nil || plan.EnvironmentalImpact != nil {
		t.Fatal("default plan must skip cost and environmental sections")
	}
	if len(plan.ChemicalTreatments) != 0 || len(plan.OrganicTreatments) != 1 {
		t.Fatalf("default plan treatments: chem=%d org=%d", len(plan.ChemicalTreatments), len(plan.OrganicTreatments))
	}
	if plan.ApplicationTiming.SeasonalNote != "" {
		t.Fatalf("default plan timing is fixed, got seasonal note %q", plan.ApplicationTiming.SeasonalNote)
	}
}

func TestRecommendRejectsMalformedConfidence(t *testing.T) {
	engine, _ := testEngine(t)
	if _, err := engine.Recommend("Fusarium Wilt", nil, 1.5); err == nil {
		t.Fatal("expected validation error for confidence 1.5")
	}
	if _, err := engine.Recommend("", nil, 0.5); err == nil {
		t.Fatal("expected validation error for empty disease")
	}
}

func TestPestModifierTiers(t *testing.T) {
	strong := []pestinfer.PestCandidate{{PestName: "A", Confidence: 0.81}}
	moderate := []pestinfer.PestCandidate{{PestName: "A", Confidence: 0.65}}
	weak := []pestinfer.PestCandidate{{PestName: "A", Confidence: 0.4}}
	if got := pestModifier(strong); got != 1.3 {
		t.Fatalf("strong modifier = %v, want 1.3", got)
	}
	if got := pestModifier(moderate); got != 1.1 {
		t.Fatalf("moderate modifier = %v, want 1.1", got)
	}
	if got := pestModifier(weak); got != 1.0 {
		t.Fatalf("weak modifier = %v, want 1.0", got)
	}
	if got := pestModifier(nil); got != 1.0 {
		t.Fatalf("empty modifier = %v, want 1.0", got)
	}
}

func TestPestSpecificTreatmentsByType(t *testing.T) {
	pests := []pestinfer.PestCandidate{
		{PestName: "Whitefly", PestType: refdata.PestTypeInsect, Confidence: 0.9},
		{PestName: "Mildew", PestType: refdata.PestTypeFungus, Confidence: 0.8},
		{PestName: "Blight", PestType: refdata.PestTypeBacteria, Confidence: 0.7},
		{PestName: "Mosaic", PestType: refdata.PestTypeVirus, Confidence: 0.6},
		{PestName: "Nematode", PestType: refdata.PestTypeNematode, Confidence: 0.5},
	}
	got := pestSpecificTreatments(pests)
	if len(got) != 4 {
		t.Fatalf("treatments = %d, want 4 (nematodes have no template)", len(got))
	}
	wantTypes := []string{"Insecticide", "Fungicide", "Bactericide", "Vector Control"}
	for i, want := range wantTypes {
		if got[i].TreatmentType != want {
			t.Fatalf("treatment %d type = %q, want %q", i, got[i].TreatmentType, want)
		}
	}
}

func TestApplicationTimingSeasonalNotes(t *testing.T) {
	catalog, err := refdata.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	cases := []struct {
		month time.Month
		want  string
	}{
		{time.June, seasonalNoteSummer},
		{time.August, seasonalNoteSummer},
		{time.December, seasonalNoteWinter},
		{time.February, seasonalNoteWinter},
		{time.April, seasonalNoteSpringFall},
		{time.October, seasonalNoteSpringFall},
	}
	for _, tc := range cases {
		engine := NewEngine(catalog).WithClock(fixedClock(tc.month))
		plan, err := engine.Recommend("Target Spot", nil, 0.8)
		if err != nil {
			t.Fatalf("Recommend in %s: %v", tc.month, err)
		}
		if plan.ApplicationTiming.SeasonalNote != tc.want {
			t.Fatalf("%s seasonal note = %q, want %q", tc.month, plan.ApplicationTiming.SeasonalNote, tc.want)
		}
	}
}

func TestAnalyzeCostsRecommendations(t *testing.T) {
	chem := []refdata.ChemicalTreatment{{Product: "X"}}
	org := []refdata.OrganicTreatment{{Method: "Y"}}
	cases := []struct {
		name    string
		profile refdata.TreatmentProfile
		want    string
	}{
		{"both", refdata.TreatmentProfile{ChemicalTreatments: chem, OrganicTreatments: org}, costRecommendationIntegrated},
		{"chemical only", refdata.TreatmentProfile{ChemicalTreatments: chem}, costRecommendationChemical},
		{"organic only", refdata.TreatmentProfile{OrganicTreatments: org}, costRecommendationOrganic},
		{"neither", refdata.TreatmentProfile{}, costRecommendationPrevention},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := analyzeCosts(tc.profile)
			if got.Recommendation != tc.want {
				t.Fatalf("recommendation = %q, want %q", got.Recommendation, tc.want)
			}
		})
	}
}

func TestIntegratedPlanSecondaries(t *testing.T) {
	engine, inf := testEngine(t)
	predictions := []pestinfer.DiseasePrediction{
		{Disease: "Fusarium Wilt", Confidence: 0.6},
		{Disease: "Verticillium Wilt", Confidence: 0.35},
		{Disease: "Target Spot", Confidence: 0.25},
		{Disease: "Anthracnose", Confidence: 0.9},
	}
	pests, err := inf.Aggregate(predictions)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	plan, err := engine.IntegratedPlan(predictions, pests)
	if err != nil {
		t.Fatalf("IntegratedPlan: %v", err)
	}
	// Rank 1 passes the 0.3 floor, rank 2 fails it, rank 3 is out of window
	// regardless of confidence.
	if len(plan.SecondaryConsiderations) != 1 {
		t.Fatalf("secondaries = %d, want 1: %+v", len(plan.SecondaryConsiderations), plan.SecondaryConsiderations)
	}
	sec := plan.SecondaryConsiderations[0]
	if sec.Disease != "Verticillium Wilt" {
		t.Fatalf("secondary disease = %q", sec.Disease)
	}
	if len(sec.KeyTreatments) > 2 {
		t.Fatalf("key treatments = %d, want at most 2", len(sec.KeyTreatments))
	}
	if len(sec.Prevention) != 3 {
		t.Fatalf("prevention entries = %d, want 3", len(sec.Prevention))
	}
}

func TestIntegratedPlanEmptyPredictions(t *testing.T) {
	engine, _ := testEngine(t)
	plan, err := engine.IntegratedPlan(nil, nil)
	if err != nil {
		t.Fatalf("IntegratedPlan: %v", err)
	}
	if plan.Urgency != refdata.UrgencyMedium || plan.CalculatedUrgency != "" {
		t.Fatalf("empty input should yield the default plan, got %+v", plan)
	}
}

func TestIntegratedPlanRejectsMalformedSecondary(t *testing.T) {
	engine, _ := testEngine(t)
	predictions := []pestinfer.DiseasePrediction{
		{Disease: "Fusarium Wilt", Confidence: 0.9},
		{Disease: "Target Spot", Confidence: -0.2},
	}
	if _, err := engine.IntegratedPlan(predictions, nil); err == nil {
		t.Fatal("expected validation error, got nil")
	}
}

func TestDisclaimerMentionsNoSubstitute(t *testing.T) {
	if !strings.Contains(Disclaimer, "does not replace") {
		t.Fatalf("disclaimer text changed: %q", Disclaimer)
	}
}
