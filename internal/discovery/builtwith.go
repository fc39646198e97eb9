package discovery

import (
	"context"

	"go.uber.org/zap"

	"github.com/shipcube/leads-cli/internal/model"
	"github.com/shipcube/leads-cli/pkg/builtwith"
)

// TechDiscoverer finds candidate companies by technology profile, e.g.
// sites detected as running Shopify.
type TechDiscoverer struct {
	client builtwith.Client
}

// NewTechDiscoverer creates a TechDiscoverer from a BuiltWith client.
func NewTechDiscoverer(client builtwith.Client) *TechDiscoverer {
	return &TechDiscoverer{client: client}
}

// Discover returns candidates whose sites match the given keyword and
// technology. Lookup failures return an empty slice.
func (t *TechDiscoverer) Discover(ctx context.Context, keyword, technology string, limit int) []model.Candidate {
	sites, err := t.client.Lookup(ctx, keyword, technology)
	if err != nil {
		zap.L().Warn("discovery: builtwith lookup failed",
			zap.String("technology", technology),
			zap.Error(err),
		)
		return nil
	}

	if limit > 0 && len(sites) > limit {
		sites = sites[:limit]
	}

	out := make([]model.Candidate, 0, len(sites))
	for _, site := range sites {
		if site.Domain == "" {
			continue
		}
		out = append(out, model.Candidate{
			Title:   site.Domain,
			Link:    "https://" + site.Domain,
			Market:  "USA",
			Keyword: keyword,
		})
	}
	return out
}
