package pipeline

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shipcube/leads-cli/internal/discovery"
	"github.com/shipcube/leads-cli/internal/model"
)

// Enricher generates full leads from a list of known company names:
// discover the official website, verify it belongs to the company, then
// run the standard resolution/analysis/email stages.
type Enricher struct {
	Pipeline *Pipeline
	Searcher *discovery.Searcher
	Workers  int
}

var companySplitRe = regexp.MustCompile(`[-|]`)

// CleanCompanyInput normalizes a raw company cell: everything after the
// first dash or pipe is marketing copy.
func CleanCompanyInput(raw string) string {
	return strings.TrimSpace(companySplitRe.Split(raw, 2)[0])
}

// EnrichCompanies processes company names through a bounded worker
// pool. Every input produces a persisted lead, blocked entries included,
// so operators can see why a company was rejected.
func (e *Enricher) EnrichCompanies(ctx context.Context, companies []string) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.Workers)

	var (
		mu        sync.Mutex
		processed = map[string]struct{}{}
	)

	for _, raw := range companies {
		company := CleanCompanyInput(raw)
		if company == "" {
			continue
		}

		key := strings.ToLower(company)
		mu.Lock()
		if _, dup := processed[key]; dup {
			mu.Unlock()
			continue
		}
		processed[key] = struct{}{}
		mu.Unlock()

		g.Go(func() error {
			e.enrichOne(gCtx, company)
			return nil
		})
	}

	return g.Wait()
}

func (e *Enricher) enrichOne(ctx context.Context, company string) {
	p := e.Pipeline
	log := zap.L().With(zap.String("company", company))

	lead := &model.Lead{
		RunID:     p.RunID,
		Company:   company,
		Keyword:   "Enrichment",
		CreatedAt: time.Now(),
	}

	// Website discovery.
	cand, err := e.Searcher.FindWebsite(ctx, company)
	if err != nil || cand == nil || !model.IsValidCompanyURL(cand.Link) {
		log.Warn("enrich: website not found", zap.Error(err))
		lead.Status = blockedStatus("Website Not Found")
		p.persist(ctx, lead)
		return
	}

	domain := model.DomainFromURL(cand.Link)
	lead.Domain = domain
	siteURL := cand.Link

	// Scrape and verify identity.
	site := p.Cache.Get(siteURL)
	if site == nil {
		site, err = p.Sites.FetchSite(ctx, siteURL)
		if err != nil {
			log.Info("enrich: scrape failed", zap.Error(err))
			lead.Status = blockedStatus("Website Scrape Failed")
			p.persist(ctx, lead)
			return
		}
		p.Cache.Set(siteURL, site)
	}

	if !websiteMatchesCompany(company, domain, site.Homepage) {
		log.Warn("enrich: website identity mismatch", zap.String("domain", domain))
		lead.Status = blockedStatus("Website Identity Mismatch")
		p.persist(ctx, lead)
		return
	}

	// Decision maker.
	dm := p.Resolver.Resolve(ctx, company, siteURL, site)
	if dm == nil {
		lead.Status = blockedStatus("No Decision Maker Found")
		p.persist(ctx, lead)
		return
	}
	lead.Person = *dm

	// Analysis.
	analysis, err := p.Grader.AnalyzeLead(ctx, company, site.Combined(), dm)
	if err != nil || analysis == nil {
		log.Info("enrich: analysis failed", zap.Error(err))
		lead.Status = blockedStatus("Analysis Failed")
		p.persist(ctx, lead)
		return
	}
	lead.Analysis = *analysis

	// Email, with a domain ownership check: an address on someone
	// else's domain means the finder matched the wrong company.
	addr, status := p.Emails.Resolve(ctx, dm.FirstName, dm.LastName, domain, siteURL)
	if addr != "" {
		emailDomain := strings.ToLower(addr[strings.LastIndex(addr, "@")+1:])
		if emailDomain != strings.ToLower(domain) {
			log.Warn("enrich: email domain mismatch",
				zap.String("email_domain", emailDomain),
				zap.String("domain", domain),
			)
			lead.Status = blockedStatus("Email Domain Mismatch")
			p.persist(ctx, lead)
			return
		}
	}
	lead.Email = addr
	lead.Status = status

	p.persist(ctx, lead)
	if err := p.Ledger.MarkProcessed(ctx, domain, company); err != nil {
		log.Warn("enrich: ledger mark failed", zap.Error(err))
	}
	log.Info("enrich: lead complete", zap.String("status", status))
}

func blockedStatus(reason string) string {
	return "Blocked - " + reason
}

// websiteMatchesCompany requires the company's first token in both the
// domain and the homepage text.
func websiteMatchesCompany(company, domain, homepage string) bool {
	tokens := strings.Fields(strings.ToLower(company))
	if len(tokens) == 0 || domain == "" || homepage == "" {
		return false
	}
	token := tokens[0]
	if !strings.Contains(strings.ToLower(domain), token) {
		return false
	}
	return strings.Contains(strings.ToLower(homepage), token)
}
