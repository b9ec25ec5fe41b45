// Package analytics projects stored responses into the owner's dashboard
// views: per-option distributions and the responses table.
package analytics

import (
	"sort"
	"strings"

	"Backend-Formcraft/src/models"
)

// DistributionItem count of one option.
type DistributionItem struct {
	Option string `json:"option"`
	Count  int    `json:"count"`
}

// FieldDistribution per select field.
type FieldDistribution struct {
	FieldID        string             `json:"fieldId"`
	FieldLabel     string             `json:"fieldLabel"`
	FieldType      models.FieldTypeID `json:"fieldType"`
	TotalResponses int                `json:"totalResponses"`
	Distribution   []DistributionItem `json:"distribution"`
}

// BuildDistributions counts answers of every single/multi select field.
// Every current option starts at zero; answers naming options that were
// since removed or renamed get their own bucket. TotalResponses counts
// respondents, not selections.
func BuildDistributions(fields []models.FormField, responses []models.FormResponse) []FieldDistribution {
	out := make([]FieldDistribution, 0)
	for _, f := range fields {
		if f.Type != models.FieldSingleSelect && f.Type != models.FieldMultiSelect {
			continue
		}
		counts := make(map[string]int, len(f.Options))
		for _, o := range f.Options {
			counts[o] = 0
		}
		total := 0
		for _, r := range responses {
			v, ok := r.Answers[f.ID]
			if !ok {
				continue
			}
			if f.Type == models.FieldSingleSelect {
				if v.IsList || !v.Present {
					continue
				}
				selected := strings.TrimSpace(v.Text)
				if selected == "" {
					continue
				}
				total++
				counts[selected]++
				continue
			}
			if !v.IsList || len(v.List) == 0 {
				continue
			}
			total++
			for _, o := range v.List {
				counts[o]++
			}
		}
		out = append(out, FieldDistribution{
			FieldID:        f.ID,
			FieldLabel:     f.Label,
			FieldType:      f.Type,
			TotalResponses: total,
			Distribution:   sortDistribution(counts),
		})
	}
	return out
}

func sortDistribution(counts map[string]int) []DistributionItem {
	items := make([]DistributionItem, 0, len(counts))
	for option, count := range counts {
		items = append(items, DistributionItem{Option: option, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Option < items[j].Option
	})
	return items
}
