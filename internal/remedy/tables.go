package remedy

import "github.com/fieldlab/crop-advisor/internal/refdata"

// Static annotation tables. These never change at runtime; the functions
// below return copies so a caller mutating a plan cannot corrupt them.

var pestTreatmentTemplates = map[refdata.PestType]struct {
	treatmentType   string
	recommendations []string
}{
	refdata.PestTypeInsect: {
		treatmentType: "Insecticide",
		recommendations: []string{
			"Use systemic insecticides for sucking pests",
			"Apply contact insecticides for chewing pests",
			"Consider biological control agents",
			"Implement integrated pest management",
		},
	},
	refdata.PestTypeFungus: {
		treatmentType: "Fungicide",
		recommendations: []string{
			"Use preventive fungicide applications",
			"Ensure good spray coverage",
			"Rotate fungicide modes of action",
			"Improve cultural practices",
		},
	},
	refdata.PestTypeBacteria: {
		treatmentType: "Bactericide",
		recommendations: []string{
			"Use copper-based bactericides",
			"Apply during cool, humid conditions",
			"Implement sanitation measures",
			"Use resistant varieties when available",
		},
	},
	refdata.PestTypeVirus: {
		treatmentType: "Vector Control",
		recommendations: []string{
			"Control insect vectors",
			"Remove infected plants immediately",
			"Use virus-resistant varieties",
			"Implement quarantine measures",
		},
	},
}

var timingTable = map[CalculatedUrgency]ApplicationTiming{
	CalculatedCritical: {
		ImmediateAction: "Apply treatment within 24 hours",
		FollowUp:        "Monitor daily, retreat if necessary after 7 days",
		BestTime:        "Early morning or late evening to avoid heat stress",
	},
	CalculatedHigh: {
		ImmediateAction: "Apply treatment within 2-3 days",
		FollowUp:        "Monitor every 2-3 days, retreat after 10-14 days if needed",
		BestTime:        "Early morning or late evening",
	},
	CalculatedMedium: {
		ImmediateAction: "Apply treatment within 1 week",
		FollowUp:        "Monitor weekly, retreat after 14-21 days if needed",
		BestTime:        "Morning hours when dew has dried",
	},
	CalculatedLow: {
		ImmediateAction: "Consider treatment within 2 weeks",
		FollowUp:        "Monitor bi-weekly, apply preventive measures",
		BestTime:        "Any time during favorable weather",
	},
	CalculatedNone: {
		ImmediateAction: "Continue monitoring",
		FollowUp:        "Maintain preventive practices",
		BestTime:        "N/A",
	},
}

const (
	seasonalNoteSummer     = "Avoid midday applications due to heat. Ensure adequate water for plant recovery."
	seasonalNoteWinter     = "Apply during warmer parts of the day. Allow time for drying before evening."
	seasonalNoteSpringFall = "Optimal conditions for most treatments. Monitor weather forecasts."
)

func costTiers() (chemical, organic, prevention CostTier) {
	chemical = CostTier{
		CostLevel:     "medium-high",
		Effectiveness: "high",
		Notes:         "Higher upfront cost but quick results",
	}
	organic = CostTier{
		CostLevel:     "low-medium",
		Effectiveness: "medium",
		Notes:         "Lower cost, environmentally friendly, may require multiple applications",
	}
	prevention = CostTier{
		CostLevel:     "low",
		Effectiveness: "high",
		Notes:         "Most cost-effective long-term strategy",
	}
	return chemical, organic, prevention
}

const (
	costRecommendationIntegrated = "Consider integrated approach: start with organic methods, use chemicals if needed"
	costRecommendationChemical   = "Chemical treatments available - use judiciously to prevent resistance"
	costRecommendationOrganic    = "Organic treatments preferred - may require patience for results"
	costRecommendationPrevention = "Focus on prevention and cultural practices"
)

func environmentalImpact() *EnvironmentalImpact {
	return &EnvironmentalImpact{
		ChemicalTreatments: ImpactTier{
			EnvironmentalRisk: "medium-high",
			Considerations: []string{
				"Potential impact on beneficial insects",
				"Risk of pesticide resistance development",
				"Possible soil and water contamination",
				"Follow label instructions strictly",
			},
		},
		OrganicTreatments: ImpactTier{
			EnvironmentalRisk: "low",
			Considerations: []string{
				"Generally safe for beneficial organisms",
				"Biodegradable and sustainable",
				"May require more frequent applications",
				"Support natural ecosystem balance",
			},
		},
		CulturalPractices: ImpactTier{
			EnvironmentalRisk: "very low",
			Considerations: []string{
				"Enhance soil health and biodiversity",
				"Reduce dependency on external inputs",
				"Sustainable long-term approach",
				"Support integrated pest management",
			},
		},
	}
}

func defaultProfile() refdata.TreatmentProfile {
	return refdata.TreatmentProfile{
		Urgency:            refdata.UrgencyMedium,
		Description:        "Unknown disease - general management recommended",
		ChemicalTreatments: []refdata.ChemicalTreatment{},
		OrganicTreatments: []refdata.OrganicTreatment{
			{
				Method:        "General Fungicide",
				Procedure:     "Apply broad-spectrum organic fungicide",
				Timing:        "Weekly applications until symptoms improve",
				Effectiveness: "Variable depending on actual disease",
			},
		},
		Prevention: []string{
			"Improve plant hygiene",
			"Ensure proper nutrition",
			"Maintain optimal growing conditions",
			"Monitor for symptom changes",
			"Consult agricultural extension services",
		},
		CulturalPractices: []string{
			"Regular field inspection",
			"Proper sanitation",
			"Balanced fertilization",
			"Adequate irrigation management",
		},
	}
}
