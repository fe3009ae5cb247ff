package advisor

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"strings"
	"text/template"

	"github.com/osu-soilwater/cover-crop-advisor/internal/dataset"
)

// systemPrompt frames the completion service as an agronomic advisor.
const systemPrompt = "You are a smart farm advisor helping farmers choose the best cover crops using expert agronomic knowledge."

//go:embed prompt.tmpl
var promptTemplateSrc string

var promptTemplate = template.Must(template.New("prompt").Parse(promptTemplateSrc))

// promptData holds the variables available in the prompt template.
type promptData struct {
	Crops string
	Goals string
	Table string
}

// buildPrompt renders the user prompt from the filtered records and the
// farmer's selections.
func buildPrompt(records []dataset.CoverCropRecord, goals []dataset.Goal, crops []string) (string, error) {
	table, err := serializeRecords(records)
	if err != nil {
		return "", err
	}

	goalNames := make([]string, 0, len(goals))
	for _, g := range goals {
		goalNames = append(goalNames, string(g))
	}

	var buf bytes.Buffer
	err = promptTemplate.Execute(&buf, promptData{
		Crops: strings.Join(crops, ", "),
		Goals: strings.Join(goalNames, ", "),
		Table: table,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return buf.String(), nil
}

// displayHeader is the column subset shown to the farmer and sent to the
// completion service.
var displayHeader = []string{
	"Cover Crop", "Planting Months", "TerminationMonths",
	"SeedCostPerAcre", "TerminationCostPerAcre", "Notes",
}

// serializeRecords renders the display columns of the filtered records as a
// CSV block.
func serializeRecords(records []dataset.CoverCropRecord) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(displayHeader); err != nil {
		return "", fmt.Errorf("failed to serialize records: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Name, r.PlantingMonths, r.TerminationMonths,
			r.SeedCostPerAcre, r.TerminationCostPerAcre, r.Notes,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to serialize records: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to serialize records: %w", err)
	}
	return buf.String(), nil
}
