package refdata

type PestType string

const (
	PestTypeFungus   PestType = "fungus"
	PestTypeBacteria PestType = "bacteria"
	PestTypeInsect   PestType = "insect"
	PestTypeNematode PestType = "nematode"
	PestTypeVirus    PestType = "virus"
	PestTypeUnknown  PestType = "unknown"
)

type Urgency string

const (
	UrgencyNone   Urgency = "none"
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// PestAssociation links a disease to a candidate causal pest. Confidence is
// conditional: the probability this pest is the agent given the disease is
// present. Callers scale it by the disease confidence themselves.
type PestAssociation struct {
	PestName          string   `json:"pest_name"`
	ScientificName    string   `json:"scientific_name"`
	PestType          PestType `json:"pest_type"`
	Confidence        float64  `json:"confidence"`
	LifecycleInfo     string   `json:"lifecycle_info"`
	DamageDescription string   `json:"damage_description"`
}

// PestDetails holds optional metadata joined to associations by pest name.
// Empty string means the field is absent for that pest.
type PestDetails struct {
	OptimalConditions string `json:"optimal_conditions,omitempty"`
	SpreadMethod      string `json:"spread_method,omitempty"`
	HostRange         string `json:"host_range,omitempty"`
	EconomicImpact    string `json:"economic_impact,omitempty"`
}

type ChemicalTreatment struct {
	Product          string `json:"product"`
	ActiveIngredient string `json:"active_ingredient"`
	Dosage           string `json:"dosage"`
	Application      string `json:"application"`
	Timing           string `json:"timing"`
	Precautions      string `json:"precautions"`
}

type OrganicTreatment struct {
	Method        string `json:"method"`
	Procedure     string `json:"procedure"`
	Timing        string `json:"timing"`
	Effectiveness string `json:"effectiveness"`
}

type TreatmentProfile struct {
	Urgency            Urgency             `json:"urgency"`
	Description        string              `json:"description"`
	ChemicalTreatments []ChemicalTreatment `json:"chemical_treatments"`
	OrganicTreatments  []OrganicTreatment  `json:"organic_treatments"`
	Prevention         []string            `json:"prevention"`
	CulturalPractices  []string            `json:"cultural_practices"`
}

func validPestType(t PestType) bool {
	switch t {
	case PestTypeFungus, PestTypeBacteria, PestTypeInsect, PestTypeNematode, PestTypeVirus, PestTypeUnknown:
		return true
	}
	return false
}

func validUrgency(u Urgency) bool {
	switch u {
	case UrgencyNone, UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}
