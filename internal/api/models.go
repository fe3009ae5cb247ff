package api

import "github.com/osu-soilwater/cover-crop-advisor/internal/dataset"

// OptionsResponse carries the selectable goal and cash crop vocabularies.
type OptionsResponse struct {
	Goals     []string `json:"goals"`
	CashCrops []string `json:"cash_crops"`
}

// RecommendRequest is the form submission: the farmer's selected goals and
// cash crops.
type RecommendRequest struct {
	Goals []string `json:"goals"`
	Crops []string `json:"crops"`
}

// MatchedCoverCrop is the display-column subset of a matched record.
type MatchedCoverCrop struct {
	CoverCrop              string `json:"cover_crop"`
	PlantingMonths         string `json:"planting_months"`
	TerminationMonths      string `json:"termination_months"`
	SeedCostPerAcre        string `json:"seed_cost_per_acre"`
	TerminationCostPerAcre string `json:"termination_cost_per_acre"`
	Notes                  string `json:"notes"`
}

// RecommendResponse is the outcome of a recommendation request. Match is
// false when the filter found nothing; Message then explains why.
type RecommendResponse struct {
	Match          bool               `json:"match"`
	Message        string             `json:"message,omitempty"`
	Matches        []MatchedCoverCrop `json:"matches,omitempty"`
	Recommendation string             `json:"recommendation,omitempty"`
}

// ReplayResponse returns the session's last recommendation text.
type ReplayResponse struct {
	Recommendation string `json:"recommendation"`
}

// ErrorResponse carries a user-facing error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

func toMatchedCoverCrops(records []dataset.CoverCropRecord) []MatchedCoverCrop {
	out := make([]MatchedCoverCrop, 0, len(records))
	for _, r := range records {
		out = append(out, MatchedCoverCrop{
			CoverCrop:              r.Name,
			PlantingMonths:         r.PlantingMonths,
			TerminationMonths:      r.TerminationMonths,
			SeedCostPerAcre:        r.SeedCostPerAcre,
			TerminationCostPerAcre: r.TerminationCostPerAcre,
			Notes:                  r.Notes,
		})
	}
	return out
}
