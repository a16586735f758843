package refdata

import (
	"math"
	"sort"
	"strings"
)

// Catalog holds the three reference tables: disease→pest associations,
// pest detail metadata, and disease→treatment profiles. It is built once at
// process start and never written afterwards, so it is safe to share across
// goroutines. Accessors return copies; callers cannot reach the backing maps.
type Catalog struct {
	pests      map[string][]PestAssociation
	details    map[string]PestDetails
	treatments map[string]TreatmentProfile
}

func NewCatalog(pests map[string][]PestAssociation, details map[string]PestDetails, treatments map[string]TreatmentProfile) (*Catalog, error) {
	c := &Catalog{
		pests:      map[string][]PestAssociation{},
		details:    map[string]PestDetails{},
		treatments: map[string]TreatmentProfile{},
	}
	for disease, assocs := range pests {
		if strings.TrimSpace(disease) == "" {
			return nil, NewValidationError("pest table has an empty disease key")
		}
		for _, a := range assocs {
			if strings.TrimSpace(a.PestName) == "" {
				return nil, NewValidationError("disease %q has an association with no pest name", disease)
			}
			if !validPestType(a.PestType) {
				return nil, NewValidationError("pest %q has unknown pest type %q", a.PestName, a.PestType)
			}
			if math.IsNaN(a.Confidence) || a.Confidence < 0 || a.Confidence > 1 {
				return nil, NewValidationError("pest %q has base confidence %v outside [0,1]", a.PestName, a.Confidence)
			}
		}
		c.pests[disease] = append([]PestAssociation(nil), assocs...)
	}
	for pest, d := range details {
		if strings.TrimSpace(pest) == "" {
			return nil, NewValidationError("pest detail table has an empty pest key")
		}
		c.details[pest] = d
	}
	for disease, profile := range treatments {
		if strings.TrimSpace(disease) == "" {
			return nil, NewValidationError("treatment table has an empty disease key")
		}
		if !validUrgency(profile.Urgency) {
			return nil, NewValidationError("disease %q has unknown urgency %q", disease, profile.Urgency)
		}
		c.treatments[disease] = copyProfile(profile)
	}
	return c, nil
}

// PestsFor returns the associations for a disease in source-table order.
// Unknown diseases (including healthy classes) return nil.
func (c *Catalog) PestsFor(disease string) []PestAssociation {
	assocs, ok := c.pests[disease]
	if !ok {
		return nil
	}
	return append([]PestAssociation(nil), assocs...)
}

func (c *Catalog) PestDetails(pestName string) (PestDetails, bool) {
	d, ok := c.details[pestName]
	return d, ok
}

func (c *Catalog) TreatmentProfile(disease string) (TreatmentProfile, bool) {
	p, ok := c.treatments[disease]
	if !ok {
		return TreatmentProfile{}, false
	}
	return copyProfile(p), true
}

// Diseases returns every disease id known to the treatment table, sorted.
func (c *Catalog) Diseases() []string {
	out := make([]string, 0, len(c.treatments))
	for disease := range c.treatments {
		out = append(out, disease)
	}
	sort.Strings(out)
	return out
}

// Sizes reports the row counts of the three tables, for health reporting.
func (c *Catalog) Sizes() (pests, details, treatments int) {
	return len(c.pests), len(c.details), len(c.treatments)
}

func copyProfile(p TreatmentProfile) TreatmentProfile {
	out := p
	out.ChemicalTreatments = append([]ChemicalTreatment(nil), p.ChemicalTreatments...)
	out.OrganicTreatments = append([]OrganicTreatment(nil), p.OrganicTreatments...)
	out.Prevention = append([]string(nil), p.Prevention...)
	out.CulturalPractices = append([]string(nil), p.CulturalPractices...)
	return out
}
