package analytics

import (
	"testing"
	"time"

	"Backend-Formcraft/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func response(id string, at time.Time, answers models.AnswerMap) models.FormResponse {
	return models.FormResponse{ID: id, FormID: "form-1", Answers: answers, SubmittedAt: at}
}

func TestBuildDistributions(t *testing.T) {
	fields := []models.FormField{
		{ID: "name", Type: models.FieldShortText, Label: "Name", Options: []string{}},
		{ID: "size", Type: models.FieldSingleSelect, Label: "Size", Options: []string{"S", "M", "L"}},
		{ID: "tags", Type: models.FieldMultiSelect, Label: "Tags", Options: []string{"a", "b"}},
	}
	now := time.Now()
	responses := []models.FormResponse{
		response("r1", now, models.AnswerMap{"size": models.TextAnswer("M"), "tags": models.ListAnswer("a", "b")}),
		response("r2", now, models.AnswerMap{"size": models.TextAnswer("M"), "tags": models.ListAnswer("a")}),
		response("r3", now, models.AnswerMap{"size": models.TextAnswer("XL"), "tags": models.ListAnswer()}),
		response("r4", now, models.AnswerMap{"size": models.TextAnswer(" ")}),
	}

	out := BuildDistributions(fields, responses)
	require.Len(t, out, 2)

	size := out[0]
	assert.Equal(t, "size", size.FieldID)
	assert.Equal(t, 3, size.TotalResponses)
	assert.Equal(t, []DistributionItem{
		{Option: "M", Count: 2},
		{Option: "XL", Count: 1},
		{Option: "L", Count: 0},
		{Option: "S", Count: 0},
	}, size.Distribution)

	tags := out[1]
	assert.Equal(t, 2, tags.TotalResponses, "counts respondents, not selections")
	assert.Equal(t, []DistributionItem{{Option: "a", Count: 2}, {Option: "b", Count: 1}}, tags.Distribution)
}

func TestBuildDistributionsNoResponses(t *testing.T) {
	fields := []models.FormField{{ID: "size", Type: models.FieldSingleSelect, Label: "Size", Options: []string{"S"}}}
	out := BuildDistributions(fields, nil)
	require.Len(t, out, 1)
	assert.Zero(t, out[0].TotalResponses)
	assert.Equal(t, []DistributionItem{{Option: "S", Count: 0}}, out[0].Distribution)
}
