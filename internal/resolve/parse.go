package resolve

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/shipcube/leads-cli/internal/model"
	"github.com/shipcube/leads-cli/pkg/googlecse"
)

var titleSplitRe = regexp.MustCompile(`[-|]`)

// ParseProfileResult parses a professional-network search result title
// of the form "Name - Title | Company" into a DecisionMaker, applying
// strict identity validation. When expectedCompany is non-empty, the
// result must mention the company's first token in its title or snippet;
// cross-company matches are rejected.
func ParseProfileResult(item googlecse.Result, expectedCompany string) *model.DecisionMaker {
	if !IsValidProfileURL(item.Link) {
		return nil
	}

	parts := titleSplitRe.Split(item.Title, -1)
	name := strings.TrimSpace(strings.ReplaceAll(parts[0], "LinkedIn", ""))

	if !IsValidName(name) {
		return nil
	}

	if expectedCompany != "" {
		tokens := strings.Fields(strings.ToLower(expectedCompany))
		if len(tokens) > 0 {
			token := tokens[0]
			titleMatch := strings.Contains(strings.ToLower(item.Title), token)
			snippetMatch := strings.Contains(strings.ToLower(item.Snippet), token)
			if !titleMatch && !snippetMatch {
				zap.L().Debug("resolve: profile not tied to company",
					zap.String("name", name),
					zap.String("company", expectedCompany),
				)
				return nil
			}
		}
	}

	jobTitle := "Founder"
	if len(parts) > 1 {
		if t := strings.TrimSpace(parts[1]); t != "" {
			jobTitle = t
		}
	}

	tokens := strings.Fields(name)
	dm := &model.DecisionMaker{
		FirstName:  tokens[0],
		Title:      jobTitle,
		ProfileURL: item.Link,
	}
	if len(tokens) > 1 {
		dm.LastName = tokens[len(tokens)-1]
	}
	return dm
}
