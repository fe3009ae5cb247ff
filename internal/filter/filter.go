// Package filter reduces the cover crop table to the rows matching a
// farmer's selected goals and cash crops.
package filter

import (
	"strings"

	"github.com/osu-soilwater/cover-crop-advisor/internal/dataset"
)

// Apply returns the records that satisfy every selected goal and match at
// least one selected cash crop, in their original order.
//
// Goals combine with AND semantics: a record must carry the flag for each
// one. Crops combine with OR semantics and are matched as case-insensitive
// substrings of the record's target cash crop field, so a crop name that is
// a prefix of a longer name ("Sorg" vs "Sorghum") also matches. Callers are
// expected to guard against empty selections before calling; if invoked
// anyway, empty goals filter nothing and empty crops match nothing.
func Apply(records []dataset.CoverCropRecord, goals []dataset.Goal, crops []string) []dataset.CoverCropRecord {
	matched := make([]dataset.CoverCropRecord, 0, len(records))
	for _, r := range records {
		if meetsAllGoals(r, goals) && matchesAnyCrop(r, crops) {
			matched = append(matched, r)
		}
	}
	return matched
}

func meetsAllGoals(r dataset.CoverCropRecord, goals []dataset.Goal) bool {
	for _, g := range goals {
		if !r.MeetsGoal(g) {
			return false
		}
	}
	return true
}

func matchesAnyCrop(r dataset.CoverCropRecord, crops []string) bool {
	field := strings.ToLower(r.TargetCashCrops)
	for _, crop := range crops {
		crop = strings.TrimSpace(crop)
		if crop == "" {
			continue
		}
		if strings.Contains(field, strings.ToLower(crop)) {
			return true
		}
	}
	return false
}
