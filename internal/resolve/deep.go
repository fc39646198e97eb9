package resolve

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/shipcube/leads-cli/internal/model"
	"github.com/shipcube/leads-cli/pkg/jina"
)

// DeepValidator fetches a candidate's profile page through a reader
// proxy and checks the page actually describes that person. The check
// is advisory: in lenient mode, network failures accept the candidate.
type DeepValidator struct {
	reader jina.Client
	strict bool
}

// NewDeepValidator creates a DeepValidator. When strict is true,
// fetch failures reject the candidate instead of giving the benefit
// of the doubt.
func NewDeepValidator(reader jina.Client, strict bool) *DeepValidator {
	return &DeepValidator{reader: reader, strict: strict}
}

// Profile markers; at least two must appear for the page to count as a
// real profile.
var profileMarkers = []string{"linkedin", "profile", "experience", "education"}

// Validate fetches dm's profile URL and requires at least two profile
// markers plus one token of the person's name in the page text.
func (d *DeepValidator) Validate(ctx context.Context, dm *model.DecisionMaker) bool {
	if dm.ProfileURL == "" {
		return true
	}

	resp, err := d.reader.Read(ctx, dm.ProfileURL)
	if err != nil {
		zap.L().Debug("resolve: deep validation fetch failed",
			zap.String("url", dm.ProfileURL),
			zap.Bool("strict", d.strict),
			zap.Error(err),
		)
		return !d.strict
	}

	text := strings.ToLower(resp.Data.Content)

	markers := 0
	for _, m := range profileMarkers {
		if strings.Contains(text, m) {
			markers++
		}
	}
	if markers < 2 {
		return false
	}

	for _, token := range strings.Fields(strings.ToLower(dm.FullName())) {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}
