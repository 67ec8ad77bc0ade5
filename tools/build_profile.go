package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jobmatchpro/backend/profile"
	"github.com/jobmatchpro/backend/utils"
)

// BuildProfileTool derives titles and keywords from résumé text
type BuildProfileTool struct {
	opts profile.Options
}

// NewBuildProfileTool creates a new profile builder tool
func NewBuildProfileTool(opts profile.Options) *BuildProfileTool {
	return &BuildProfileTool{opts: opts}
}

func (t *BuildProfileTool) Name() string {
	return "build_profile"
}

func (t *BuildProfileTool) Description() string {
	return `Derive a candidate profile from plain résumé text.
Returns up to three candidate job titles and keywords ranked by frequency.`
}

func (t *BuildProfileTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"text": stringProperty("Plain résumé text, at least 30 non-whitespace characters"),
		},
		"required": []string{"text"},
	}
}

// BuildProfileInput represents the input for the profile tool
type BuildProfileInput struct {
	Text string `json:"text"`
}

func (t *BuildProfileTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in BuildProfileInput
	if err := decodeInput(input, &in); err != nil {
		return NewErrorResult(err.Error())
	}

	if utils.CountNonSpace(in.Text) < profile.MinTextChars {
		return NewErrorResult(fmt.Sprintf("text must contain at least %d non-whitespace characters", profile.MinTextChars))
	}

	return NewSuccessResult(profile.Build(in.Text, t.opts))
}
