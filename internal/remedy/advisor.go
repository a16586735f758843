package remedy

import (
	"github.com/fieldlab/crop-advisor/internal/pestinfer"
	"github.com/fieldlab/crop-advisor/internal/refdata"
)

// Advisor composes the fixed pipeline: classifier output → pest inference →
// aggregation → treatment engine → plan envelope. Data flows one way; no
// stage calls back into an earlier one.
type Advisor struct {
	inferencer *pestinfer.Inferencer
	engine     *Engine
}

func NewAdvisor(catalog *refdata.Catalog) *Advisor {
	return &Advisor{
		inferencer: pestinfer.NewInferencer(catalog),
		engine:     NewEngine(catalog),
	}
}

// Engine exposes the underlying engine, mainly so callers can pin its clock.
func (a *Advisor) Engine() *Engine {
	return a.engine
}

// Assess runs the full pipeline for one ordered prediction sequence.
// An empty season skips the seasonal risk section.
func (a *Advisor) Assess(predictions []pestinfer.DiseasePrediction, season pestinfer.Season) (PlanEnvelope, error) {
	pests, err := a.inferencer.Aggregate(predictions)
	if err != nil {
		return PlanEnvelope{}, err
	}
	plan, err := a.engine.IntegratedPlan(predictions, pests)
	if err != nil {
		return PlanEnvelope{}, err
	}

	env := PlanEnvelope{
		Predictions:        predictions,
		Season:             season,
		Pests:              pests,
		ManagementPriority: pestinfer.ManagementPriority(pests),
		Plan:               plan,
		GeneratedAt:        a.engine.now(),
		Disclaimer:         Disclaimer,
	}
	if season != "" {
		risk := pestinfer.SeasonalRisk(pests, season)
		env.SeasonalRisk = &risk
	}
	env.ReportMarkdown = BuildPlanMarkdown(env)
	return env, nil
}
