// Package dataset holds the cover crop table loaded once at startup.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Goal is one of the ten fixed farming goals a cover crop may satisfy.
type Goal string

const (
	GoalCashcropCompatibility Goal = "Cashcrop compatibility"
	GoalErosionFighter        Goal = "Erosion fighter"
	GoalGoodGrazing           Goal = "Good grazing"
	GoalGrainHarvest          Goal = "Grain harvest"
	GoalLastingResidue        Goal = "Lasting residue"
	GoalMechanicalForage      Goal = "Mechanical forage"
	GoalNitrogenSource        Goal = "Nitrogen source"
	GoalQuickGrowth           Goal = "Quick growth"
	GoalSoilBuilder           Goal = "Soil builder"
	GoalWeedFighter           Goal = "Weed fighter"
)

// Goals lists the full goal vocabulary in display order. The names double as
// the CSV column headers for the goal flags.
var Goals = []Goal{
	GoalCashcropCompatibility,
	GoalErosionFighter,
	GoalGoodGrazing,
	GoalGrainHarvest,
	GoalLastingResidue,
	GoalMechanicalForage,
	GoalNitrogenSource,
	GoalQuickGrowth,
	GoalSoilBuilder,
	GoalWeedFighter,
}

// ParseGoal maps a goal name to its Goal value.
func ParseGoal(name string) (Goal, bool) {
	for _, g := range Goals {
		if string(g) == name {
			return g, true
		}
	}
	return "", false
}

// CoverCropRecord is one row of the cover crop table. The goal flags are
// stored as booleans; the loader maps the source file's "Yes" markers onto
// them. Records are never mutated after load.
type CoverCropRecord struct {
	Name                   string
	CashcropCompatibility  bool
	ErosionFighter         bool
	GoodGrazing            bool
	GrainHarvest           bool
	LastingResidue         bool
	MechanicalForage       bool
	NitrogenSource         bool
	QuickGrowth            bool
	SoilBuilder            bool
	WeedFighter            bool
	TargetCashCrops        string
	PlantingMonths         string
	TerminationMonths      string
	SeedCostPerAcre        string
	TerminationCostPerAcre string
	Notes                  string
}

// MeetsGoal reports whether the record's flag for the given goal is set.
func (r CoverCropRecord) MeetsGoal(g Goal) bool {
	switch g {
	case GoalCashcropCompatibility:
		return r.CashcropCompatibility
	case GoalErosionFighter:
		return r.ErosionFighter
	case GoalGoodGrazing:
		return r.GoodGrazing
	case GoalGrainHarvest:
		return r.GrainHarvest
	case GoalLastingResidue:
		return r.LastingResidue
	case GoalMechanicalForage:
		return r.MechanicalForage
	case GoalNitrogenSource:
		return r.NitrogenSource
	case GoalQuickGrowth:
		return r.QuickGrowth
	case GoalSoilBuilder:
		return r.SoilBuilder
	case GoalWeedFighter:
		return r.WeedFighter
	}
	return false
}

// Column headers outside the goal flags.
const (
	colName                   = "Cover Crop"
	colTargetCashCrops        = "Target Cash Crops"
	colPlantingMonths         = "Planting Months"
	colTerminationMonths      = "TerminationMonths"
	colSeedCostPerAcre        = "SeedCostPerAcre"
	colTerminationCostPerAcre = "TerminationCostPerAcre"
	colNotes                  = "Notes"
)

// Load reads the cover crop CSV at path. A missing or malformed file is a
// startup fault; callers are expected to abort on error.
func Load(path string) ([]CoverCropRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}

	// Resolve every required column from the header row.
	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.TrimSpace(h)] = i
	}
	required := []string{
		colName, colTargetCashCrops, colPlantingMonths, colTerminationMonths,
		colSeedCostPerAcre, colTerminationCostPerAcre, colNotes,
	}
	for _, g := range Goals {
		required = append(required, string(g))
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("dataset %s is missing column %q", path, col)
		}
	}

	records := make([]CoverCropRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		field := func(col string) string {
			return strings.TrimSpace(row[index[col]])
		}
		flag := func(g Goal) bool {
			return field(string(g)) == "Yes"
		}
		records = append(records, CoverCropRecord{
			Name:                   field(colName),
			CashcropCompatibility:  flag(GoalCashcropCompatibility),
			ErosionFighter:         flag(GoalErosionFighter),
			GoodGrazing:            flag(GoalGoodGrazing),
			GrainHarvest:           flag(GoalGrainHarvest),
			LastingResidue:         flag(GoalLastingResidue),
			MechanicalForage:       flag(GoalMechanicalForage),
			NitrogenSource:         flag(GoalNitrogenSource),
			QuickGrowth:            flag(GoalQuickGrowth),
			SoilBuilder:            flag(GoalSoilBuilder),
			WeedFighter:            flag(GoalWeedFighter),
			TargetCashCrops:        field(colTargetCashCrops),
			PlantingMonths:         field(colPlantingMonths),
			TerminationMonths:      field(colTerminationMonths),
			SeedCostPerAcre:        field(colSeedCostPerAcre),
			TerminationCostPerAcre: field(colTerminationCostPerAcre),
			Notes:                  field(colNotes),
		})
	}
	return records, nil
}

// CashCropOptions returns the distinct cash crop names found across all
// records' target cash crop fields, trimmed and sorted.
func CashCropOptions(records []CoverCropRecord) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		for _, crop := range strings.Split(r.TargetCashCrops, ",") {
			crop = strings.TrimSpace(crop)
			if crop != "" {
				seen[crop] = struct{}{}
			}
		}
	}
	options := make([]string, 0, len(seen))
	for crop := range seen {
		options = append(options, crop)
	}
	sort.Strings(options)
	return options
}
