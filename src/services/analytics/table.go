package analytics

import (
	"sort"
	"strings"
	"time"

	"Backend-Formcraft/src/models"
)

// NoValue is shown for unanswered cells.
const NoValue = "No value"

// Column of the responses table; the first one is always the submission time.
type Column struct {
	ID     string `json:"id"`
	Header string `json:"header"`
}

// Row one response, cells keyed by column id.
type Row struct {
	ResponseID  string            `json:"responseId"`
	SubmittedAt time.Time         `json:"submittedAt"`
	Cells       map[string]string `json:"cells"`
}

type Table struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

const SubmittedAtColumn = "submittedAt"

// BuildResponseTable lays responses out in schema order, newest first.
// Answers are shown verbatim, so options removed from the schema still
// render as their stored text.
func BuildResponseTable(fields []models.FormField, responses []models.FormResponse) Table {
	t := Table{
		Columns: make([]Column, 0, len(fields)+1),
		Rows:    make([]Row, 0, len(responses)),
	}
	t.Columns = append(t.Columns, Column{ID: SubmittedAtColumn, Header: "Submitted at"})
	for _, f := range fields {
		t.Columns = append(t.Columns, Column{ID: f.ID, Header: models.NormalizeLabel(f.Type, f.Label)})
	}
	for _, r := range responses {
		row := Row{
			ResponseID:  r.ID,
			SubmittedAt: r.SubmittedAt,
			Cells:       make(map[string]string, len(fields)+1),
		}
		row.Cells[SubmittedAtColumn] = r.SubmittedAt.UTC().Format(time.RFC3339)
		for _, f := range fields {
			row.Cells[f.ID] = FormatAnswer(r.Answers[f.ID])
		}
		t.Rows = append(t.Rows, row)
	}
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return t.Rows[i].SubmittedAt.After(t.Rows[j].SubmittedAt)
	})
	return t
}

// FormatAnswer renders one stored answer as table text.
func FormatAnswer(v models.AnswerValue) string {
	if v.IsList {
		if len(v.List) == 0 {
			return NoValue
		}
		return strings.Join(v.List, ", ")
	}
	if s := strings.TrimSpace(v.Text); s != "" {
		return s
	}
	return NoValue
}
