package pestinfer

import (
	"math"
	"strings"

	"github.com/fieldlab/crop-advisor/internal/refdata"
)

// DiseasePrediction is one entry of the classifier's descending-ordered
// output. Confidence is an absolute probability in [0,1].
type DiseasePrediction struct {
	Disease    string  `json:"disease"`
	Confidence float64 `json:"confidence"`
}

// Validate rejects malformed input. Unknown disease ids are fine, they
// degrade to empty results downstream, but an empty id or an out-of-range
// confidence is a caller bug, not an unknown key.
func (p DiseasePrediction) Validate() error {
	if strings.TrimSpace(p.Disease) == "" {
		return refdata.NewValidationError("disease id is required")
	}
	if math.IsNaN(p.Confidence) || p.Confidence < 0 || p.Confidence > 1 {
		return refdata.NewValidationError("disease %q: confidence %v outside [0,1]", p.Disease, p.Confidence)
	}
	return nil
}

// PestCandidate is an association scaled by the disease confidence and
// enriched with any detail metadata the catalog carries for that pest.
// Detail fields are empty strings when the catalog has no entry.
type PestCandidate struct {
	PestName          string           `json:"pest_name"`
	ScientificName    string           `json:"scientific_name"`
	PestType          refdata.PestType `json:"pest_type"`
	Confidence        float64          `json:"confidence"`
	LifecycleInfo     string           `json:"lifecycle_info"`
	DamageDescription string           `json:"damage_description"`
	OptimalConditions string           `json:"optimal_conditions,omitempty"`
	SpreadMethod      string           `json:"spread_method,omitempty"`
	HostRange         string           `json:"host_range,omitempty"`
	EconomicImpact    string           `json:"economic_impact,omitempty"`
}
