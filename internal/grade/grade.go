// Package grade wraps the LLM collaborator that scores leads, cleans
// company names, extracts people from page text, and generates search
// keywords from an ICP.
package grade

import (
	"context"

	"github.com/shipcube/leads-cli/internal/model"
)

// Grader is the grading collaborator consumed by the pipeline.
type Grader interface {
	// AnalyzeLead scores a company for 3PL fit and produces the
	// narrative fields. Returns nil when the model output is unusable.
	AnalyzeLead(ctx context.Context, companyName, websiteText string, dm *model.DecisionMaker) (*model.Analysis, error)

	// CleanCompanyName extracts the brand name from a messy search
	// title. In strict mode, titles that do not denote a real company
	// return an empty string.
	CleanCompanyName(ctx context.Context, rawTitle string, strict bool) (string, error)

	// ExtractPerson finds the best-ranking named person in page text.
	// Returns nil when no specific person is present.
	ExtractPerson(ctx context.Context, text, companyName string) (*model.DecisionMaker, error)

	// GenerateKeywords produces storefront-intent search keywords for
	// an ICP. The variation seed steers repeat passes toward different
	// keyword angles.
	GenerateKeywords(ctx context.Context, icp model.ICP, variationSeed int) ([]string, error)
}
