package pestinfer

import "github.com/fieldlab/crop-advisor/internal/refdata"

type Priority string

const (
	PriorityNone   Priority = "none"
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type ManagementAssessment struct {
	Priority         Priority           `json:"priority"`
	Action           string             `json:"action"`
	PestTypesPresent []refdata.PestType `json:"pest_types_present,omitempty"`
	PrimaryPest      string             `json:"primary_pest,omitempty"`
}

// ManagementPriority grades how quickly the grower should act on a ranked
// candidate list. Thresholds are on the top candidate's confidence, with
// overrides when insects or fungi are among the candidates.
func ManagementPriority(pests []PestCandidate) ManagementAssessment {
	if len(pests) == 0 {
		return ManagementAssessment{
			Priority: PriorityNone,
			Action:   "Monitor plant health regularly",
		}
	}

	top := pests[0].Confidence
	types := distinctTypes(pests)

	priority := PriorityLow
	action := "Monitor closely and consider preventive measures"
	switch {
	case top >= 0.8:
		priority = PriorityHigh
		action = "Immediate treatment required"
	case top >= 0.6:
		priority = PriorityMedium
		action = "Treatment recommended within 1-2 days"
	}

	if hasType(types, refdata.PestTypeInsect) && top >= 0.7 {
		priority = PriorityHigh
		action = "Immediate insect control measures needed"
	} else if hasType(types, refdata.PestTypeFungus) && top >= 0.8 {
		priority = PriorityHigh
		action = "Apply fungicide treatment immediately"
	}

	return ManagementAssessment{
		Priority:         priority,
		Action:           action,
		PestTypesPresent: types,
		PrimaryPest:      pests[0].PestName,
	}
}

type Season string

const (
	SeasonSpring  Season = "spring"
	SeasonSummer  Season = "summer"
	SeasonFall    Season = "fall"
	SeasonWinter  Season = "winter"
	SeasonUnknown Season = "unknown"
)

type SeasonalRiskAssessment struct {
	RiskLevel          string   `json:"risk_level"`
	Recommendations    []string `json:"recommendations"`
	SeasonalConditions string   `json:"seasonal_conditions,omitempty"`
}

type seasonProfile struct {
	highRiskTypes []refdata.PestType
	conditions    string
}

var seasonProfiles = map[Season]seasonProfile{
	SeasonSpring: {
		highRiskTypes: []refdata.PestType{refdata.PestTypeFungus, refdata.PestTypeBacteria},
		conditions:    "Cool, wet conditions favor fungal and bacterial diseases",
	},
	SeasonSummer: {
		highRiskTypes: []refdata.PestType{refdata.PestTypeInsect, refdata.PestTypeVirus},
		conditions:    "Hot, dry conditions favor insect pests and virus transmission",
	},
	SeasonFall: {
		highRiskTypes: []refdata.PestType{refdata.PestTypeFungus},
		conditions:    "Moderate temperatures and humidity favor fungal diseases",
	},
	SeasonWinter: {
		highRiskTypes: []refdata.PestType{refdata.PestTypeFungus},
		conditions:    "Cool, wet conditions may promote soil-borne fungi",
	},
}

// SeasonalRisk weighs the candidate list against the pest types the given
// season favors. Season is an input parameter, never sensed.
func SeasonalRisk(pests []PestCandidate, season Season) SeasonalRiskAssessment {
	if len(pests) == 0 {
		return SeasonalRiskAssessment{RiskLevel: "low", Recommendations: []string{}}
	}

	profile, known := seasonProfiles[season]
	if !known {
		return SeasonalRiskAssessment{
			RiskLevel:       "medium",
			Recommendations: []string{"Monitor all pest types as season is unknown"},
		}
	}

	var riskPests []PestCandidate
	for _, p := range pests {
		if hasType(profile.highRiskTypes, p.PestType) {
			riskPests = append(riskPests, p)
		}
	}

	risk := "low"
	if len(riskPests) > 0 {
		if riskPests[0].Confidence >= 0.7 {
			risk = "high"
		} else {
			risk = "medium"
		}
	}

	return SeasonalRiskAssessment{
		RiskLevel: risk,
		Recommendations: []string{
			"Current season (" + string(season) + ") conditions: " + profile.conditions,
			"Monitor for " + joinTypes(profile.highRiskTypes) + " pests closely",
		},
		SeasonalConditions: profile.conditions,
	}
}

func distinctTypes(pests []PestCandidate) []refdata.PestType {
	var out []refdata.PestType
	for _, p := range pests {
		if !hasType(out, p.PestType) {
			out = append(out, p.PestType)
		}
	}
	return out
}

func hasType(types []refdata.PestType, t refdata.PestType) bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}

func joinTypes(types []refdata.PestType) string {
	out := ""
	for i, t := range types {
		if i > 0 {
			out += ", "
		}
		out += string(t)
	}
	return out
}
