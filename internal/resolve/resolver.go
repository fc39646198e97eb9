package resolve

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shipcube/leads-cli/internal/model"
	"github.com/shipcube/leads-cli/internal/scrape"
	"github.com/shipcube/leads-cli/pkg/googlecse"
)

// PersonExtractor extracts a named person from page text. Implemented
// by the grading collaborator.
type PersonExtractor interface {
	ExtractPerson(ctx context.Context, text, companyName string) (*model.DecisionMaker, error)
}

// Resolver finds at most one validated decision maker for a company by
// trying an ordered list of strategies until one produces a result.
type Resolver struct {
	cse       googlecse.Client
	cx        string
	extractor PersonExtractor
	deep      *DeepValidator
}

// NewResolver creates a Resolver using the people search engine.
// The deep validator is optional; pass nil to disable deep validation.
func NewResolver(cse googlecse.Client, peopleCX string, extractor PersonExtractor, deep *DeepValidator) *Resolver {
	return &Resolver{
		cse:       cse,
		cx:        peopleCX,
		extractor: extractor,
		deep:      deep,
	}
}

// strategy is one attempt in the fallback chain.
type strategy struct {
	name    string
	attempt func(ctx context.Context) *model.DecisionMaker
}

// Resolve runs the strategy chain for a company. The scraped site is
// used for on-page extraction; it may be nil when no scrape is
// available. Returns nil when every strategy comes up empty.
func (r *Resolver) Resolve(ctx context.Context, companyName, companyURL string, site *scrape.SiteContent) *model.DecisionMaker {
	domain := model.DomainFromURL(companyURL)

	strategies := []strategy{
		{"on_page", func(ctx context.Context) *model.DecisionMaker {
			return r.fromSiteText(ctx, site, companyName)
		}},
		{"domain_xray", func(ctx context.Context) *model.DecisionMaker {
			return r.byDomain(ctx, domain)
		}},
		{"name_xray", func(ctx context.Context) *model.DecisionMaker {
			return r.byCompanyName(ctx, companyName)
		}},
		{"derived_name", func(ctx context.Context) *model.DecisionMaker {
			return r.byDerivedName(ctx, domain, companyName)
		}},
	}

	for _, s := range strategies {
		dm := s.attempt(ctx)
		if dm == nil {
			continue
		}
		if r.deep != nil && !r.deep.Validate(ctx, dm) {
			zap.L().Info("resolve: candidate failed deep validation",
				zap.String("strategy", s.name),
				zap.String("name", dm.FullName()),
			)
			continue
		}
		zap.L().Info("resolve: decision maker found",
			zap.String("strategy", s.name),
			zap.String("name", dm.FullName()),
			zap.String("title", dm.Title),
		)
		return dm
	}
	return nil
}

// fromSiteText asks the extractor for a named person in the team and
// about page text, then applies the strict name checks.
func (r *Resolver) fromSiteText(ctx context.Context, site *scrape.SiteContent, companyName string) *model.DecisionMaker {
	if site == nil {
		return nil
	}

	text := strings.TrimSpace(site.Team + "\n" + site.About)
	if len(text) < 100 {
		return nil
	}

	dm, err := r.extractor.ExtractPerson(ctx, text, companyName)
	if err != nil {
		zap.L().Warn("resolve: on-page extraction failed", zap.Error(err))
		return nil
	}
	if dm == nil || !ValidFirstName(dm.FirstName, companyName) {
		return nil
	}
	if dm.Title == "" {
		dm.Title = "Contact"
	}
	return dm
}

// byDomain issues three prioritized profile queries scoped to the
// domain's leading label, stopping at the first validated hit.
func (r *Resolver) byDomain(ctx context.Context, domain string) *model.DecisionMaker {
	if domain == "" {
		return nil
	}
	companyToken := strings.Split(domain, ".")[0]

	queries := []struct {
		label string
		query string
	}{
		{"exec", fmt.Sprintf(`site:linkedin.com/in "%s" (Founder OR CEO OR Owner OR Principal)`, companyToken)},
		{"ops", fmt.Sprintf(`site:linkedin.com/in "%s" ("Head of Operations" OR Logistics OR "Supply Chain")`, companyToken)},
		{"senior", fmt.Sprintf(`site:linkedin.com/in "%s" (Director OR VP)`, companyToken)},
	}

	for _, q := range queries {
		results, err := r.cse.Search(ctx, r.cx, q.query, googlecse.WithNum(5))
		if err != nil {
			zap.L().Warn("resolve: domain strategy failed",
				zap.String("label", q.label),
				zap.Error(err),
			)
			continue
		}
		for _, item := range results {
			if dm := ParseProfileResult(item, companyToken); dm != nil {
				return dm
			}
		}
	}
	return nil
}

// byCompanyName searches by the cleaned company name with executive
// titles, broadening to director/manager roles on failure.
func (r *Resolver) byCompanyName(ctx context.Context, companyName string) *model.DecisionMaker {
	if len(companyName) <= 2 || strings.EqualFold(companyName, "home") {
		return nil
	}

	query := fmt.Sprintf(`site:linkedin.com/in "%s" (Founder OR CEO OR "Head of Operations")`, companyName)
	if dm := r.firstValidResult(ctx, query, companyName, 1); dm != nil {
		return dm
	}

	broad := fmt.Sprintf(`site:linkedin.com/in "%s" (Director OR Manager OR VP OR Owner)`, companyName)
	return r.firstValidResult(ctx, broad, companyName, 1)
}

// byDerivedName title-cases the domain's leading label and repeats an
// executive search, skipped when it matches the company name already
// tried.
func (r *Resolver) byDerivedName(ctx context.Context, domain, companyName string) *model.DecisionMaker {
	if domain == "" {
		return nil
	}

	label := strings.ReplaceAll(strings.Split(domain, ".")[0], "-", " ")
	derived := cases.Title(language.English).String(label)
	if derived == "" || strings.EqualFold(derived, companyName) {
		return nil
	}

	query := fmt.Sprintf(`"%s" (Founder OR CEO OR "Head of Operations")`, derived)
	return r.firstValidResult(ctx, query, derived, 1)
}

func (r *Resolver) firstValidResult(ctx context.Context, query, expectedCompany string, num int) *model.DecisionMaker {
	results, err := r.cse.Search(ctx, r.cx, query, googlecse.WithNum(num))
	if err != nil {
		zap.L().Warn("resolve: profile search failed", zap.Error(err))
		return nil
	}
	for _, item := range results {
		if dm := ParseProfileResult(item, expectedCompany); dm != nil {
			return dm
		}
	}
	return nil
}
