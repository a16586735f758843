package remedy

import (
	"time"

	"github.com/fieldlab/crop-advisor/internal/pestinfer"
	"github.com/fieldlab/crop-advisor/internal/refdata"
)

const Disclaimer = "Automated agronomic guidance generated from reference tables. " +
	"It does not replace field scouting, lab diagnosis, or local extension advice. " +
	"Always follow product labels and local regulations."

// CalculatedUrgency is the engine's composite urgency. It has one level more
// than the static profile urgency ("critical") and the two are never
// collapsed into each other: both ship in the plan and the presentation
// layer decides which to show.
type CalculatedUrgency string

const (
	CalculatedNone     CalculatedUrgency = "none"
	CalculatedLow      CalculatedUrgency = "low"
	CalculatedMedium   CalculatedUrgency = "medium"
	CalculatedHigh     CalculatedUrgency = "high"
	CalculatedCritical CalculatedUrgency = "critical"
)

type PestTreatment struct {
	Target          string   `json:"target"`
	TreatmentType   string   `json:"treatment_type"`
	Recommendations []string `json:"recommendations"`
}

type ApplicationTiming struct {
	ImmediateAction string `json:"immediate_action"`
	FollowUp        string `json:"follow_up"`
	BestTime        string `json:"best_time"`
	SeasonalNote    string `json:"seasonal_note,omitempty"`
}

type CostTier struct {
	CostLevel     string `json:"cost_level"`
	Effectiveness string `json:"effectiveness"`
	Notes         string `json:"notes"`
}

type CostAnalysis struct {
	ChemicalTreatments CostTier `json:"chemical_treatments"`
	OrganicTreatments  CostTier `json:"organic_treatments"`
	Prevention         CostTier `json:"prevention"`
	Recommendation     string   `json:"recommendation"`
}

type ImpactTier struct {
	EnvironmentalRisk string   `json:"environmental_risk"`
	Considerations    []string `json:"considerations"`
}

type EnvironmentalImpact struct {
	ChemicalTreatments ImpactTier `json:"chemical_treatments"`
	OrganicTreatments  ImpactTier `json:"organic_treatments"`
	CulturalPractices  ImpactTier `json:"cultural_practices"`
}

type SecondaryConsideration struct {
	Disease       string                      `json:"disease"`
	Confidence    float64                     `json:"confidence"`
	KeyTreatments []refdata.ChemicalTreatment `json:"key_treatments"`
	Prevention    []string                    `json:"prevention"`
}

// ManagementPlan is the engine's output: a copy of the static profile
// enriched with the computed annotations. Cost analysis, environmental
// impact, and calculated urgency are absent on the default
// (unknown-disease) plan, matching the degraded shape of that path.
type ManagementPlan struct {
	refdata.TreatmentProfile

	CalculatedUrgency       CalculatedUrgency        `json:"calculated_urgency,omitempty"`
	PestSpecificTreatments  []PestTreatment          `json:"pest_specific_treatments,omitempty"`
	ApplicationTiming       ApplicationTiming        `json:"application_timing"`
	CostAnalysis            *CostAnalysis            `json:"cost_analysis,omitempty"`
	EnvironmentalImpact     *EnvironmentalImpact     `json:"environmental_impact,omitempty"`
	SecondaryConsiderations []SecondaryConsideration `json:"secondary_considerations,omitempty"`
}

// PlanEnvelope is the assembled assessment the API and CLI return.
type PlanEnvelope struct {
	Predictions        []pestinfer.DiseasePrediction     `json:"predictions"`
	Season             pestinfer.Season                  `json:"season,omitempty"`
	Pests              []pestinfer.PestCandidate         `json:"pests"`
	ManagementPriority pestinfer.ManagementAssessment    `json:"management_priority"`
	SeasonalRisk       *pestinfer.SeasonalRiskAssessment `json:"seasonal_risk,omitempty"`
	Plan               ManagementPlan                    `json:"plan"`
	ReportMarkdown     string                            `json:"report_markdown,omitempty"`
	GeneratedAt        time.Time                         `json:"generated_at"`
	Disclaimer         string                            `json:"disclaimer"`
}
