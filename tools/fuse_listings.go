package tools

import (
	"context"
	"encoding/json"

	"github.com/jobmatchpro/backend/fusion"
	"github.com/jobmatchpro/backend/models"
)

// FuseListingsTool merges, scores and ranks listings against a profile
type FuseListingsTool struct {
	opts fusion.Options
}

// NewFuseListingsTool creates a new fusion tool
func NewFuseListingsTool(opts fusion.Options) *FuseListingsTool {
	return &FuseListingsTool{opts: opts}
}

func (t *FuseListingsTool) Name() string {
	return "fuse_listings"
}

func (t *FuseListingsTool) Description() string {
	return `Deduplicate, score and rank listings gathered with search_source.
Listings earn a bonus per profile keyword found in their title or snippet.
Set only_paid to keep listings that state a salary.`
}

func (t *FuseListingsTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"listings": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "object"},
				"description": "Listings in fetch order; earlier duplicates win",
			},
			"profile": profileProperty(),
			"only_paid": map[string]interface{}{
				"type":        "boolean",
				"description": "Keep listings with salary information only",
			},
		},
		"required": []string{"listings", "profile"},
	}
}

// FuseListingsInput represents the input for the fusion tool
type FuseListingsInput struct {
	Listings []models.Listing `json:"listings"`
	Profile  models.Profile   `json:"profile"`
	OnlyPaid bool             `json:"only_paid,omitempty"`
}

// FuseListingsOutput represents the output of the fusion tool
type FuseListingsOutput struct {
	Listings []models.Listing `json:"listings"`
}

func (t *FuseListingsTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in FuseListingsInput
	if err := decodeInput(input, &in); err != nil {
		return NewErrorResult(err.Error())
	}

	listings := make([]models.Listing, 0, len(in.Listings))
	for _, l := range in.Listings {
		listings = append(listings, l.Normalize())
	}

	opts := t.opts
	opts.OnlyPaid = in.OnlyPaid

	return NewSuccessResult(FuseListingsOutput{Listings: fusion.Fuse(listings, in.Profile, opts)})
}
