package tools

import (
	"context"
	"encoding/json"

	"github.com/jobmatchpro/backend/models"
	"github.com/jobmatchpro/backend/query"
)

// BuildQueriesTool turns a profile into search query strings
type BuildQueriesTool struct {
	opts query.Options
}

// NewBuildQueriesTool creates a new query builder tool
func NewBuildQueriesTool(opts query.Options) *BuildQueriesTool {
	return &BuildQueriesTool{opts: opts}
}

func (t *BuildQueriesTool) Name() string {
	return "build_queries"
}

func (t *BuildQueriesTool) Description() string {
	return `Build bounded search queries from a candidate profile.
Words are joined with "+"; each query starts with a title and ends with the top keywords.`
}

func (t *BuildQueriesTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"profile": profileProperty(),
		},
		"required": []string{"profile"},
	}
}

// BuildQueriesInput represents the input for the query tool
type BuildQueriesInput struct {
	Profile models.Profile `json:"profile"`
}

// BuildQueriesOutput represents the output of the query tool
type BuildQueriesOutput struct {
	Queries []string `json:"queries"`
}

func (t *BuildQueriesTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in BuildQueriesInput
	if err := decodeInput(input, &in); err != nil {
		return NewErrorResult(err.Error())
	}

	return NewSuccessResult(BuildQueriesOutput{Queries: query.Build(in.Profile, t.opts)})
}
