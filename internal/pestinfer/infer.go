package pestinfer

import (
	"sort"

	"github.com/fieldlab/crop-advisor/internal/refdata"
)

// Inferencer maps disease predictions to ranked causal-pest candidates.
// It is a pure function of its inputs and the catalog; one instance is safe
// for concurrent use across requests.
type Inferencer struct {
	catalog *refdata.Catalog
}

func NewInferencer(catalog *refdata.Catalog) *Inferencer {
	return &Inferencer{catalog: catalog}
}

// Infer returns the pest candidates for one disease, each with confidence
// base * diseaseConfidence, sorted descending. The sort is stable: equal
// confidences keep the catalog's source-table order. Diseases missing from
// the catalog (healthy classes included) yield an empty result, not an error.
func (i *Inferencer) Infer(disease string, diseaseConfidence float64) ([]PestCandidate, error) {
	if err := (DiseasePrediction{Disease: disease, Confidence: diseaseConfidence}).Validate(); err != nil {
		return nil, err
	}

	assocs := i.catalog.PestsFor(disease)
	if len(assocs) == 0 {
		return nil, nil
	}

	candidates := make([]PestCandidate, 0, len(assocs))
	for _, a := range assocs {
		c := PestCandidate{
			PestName:          a.PestName,
			ScientificName:    a.ScientificName,
			PestType:          a.PestType,
			Confidence:        a.Confidence * diseaseConfidence,
			LifecycleInfo:     a.LifecycleInfo,
			DamageDescription: a.DamageDescription,
		}
		if d, ok := i.catalog.PestDetails(a.PestName); ok {
			c.OptimalConditions = d.OptimalConditions
			c.SpreadMethod = d.SpreadMethod
			c.HostRange = d.HostRange
			c.EconomicImpact = d.EconomicImpact
		}
		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Confidence > candidates[b].Confidence
	})
	return candidates, nil
}

// Aggregate merges pest inferences across competing disease hypotheses.
// Each pest keeps the maximum confidence seen across all contributing
// diseases: a pest implicated by two weak diagnoses must not outrank one
// implicated by a single strong diagnosis, and max keeps the value inside
// the probabilistic range. Ties in the final ordering fall back to first
// insertion order.
func (i *Inferencer) Aggregate(predictions []DiseasePrediction) ([]PestCandidate, error) {
	for _, p := range predictions {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	byName := map[string]PestCandidate{}
	var order []string
	for _, p := range predictions {
		candidates, err := i.Infer(p.Disease, p.Confidence)
		if err != nil {
			return nil, err
		}
		for _, c := range candidates {
			existing, seen := byName[c.PestName]
			if !seen {
				byName[c.PestName] = c
				order = append(order, c.PestName)
				continue
			}
			if c.Confidence > existing.Confidence {
				byName[c.PestName] = c
			}
		}
	}

	out := make([]PestCandidate, 0, len(order))
	for _, name := range order {
		out = append(out, byName[name])
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Confidence > out[b].Confidence
	})
	return out, nil
}
