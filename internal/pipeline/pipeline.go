// Package pipeline orchestrates candidate companies through scraping,
// decision-maker resolution, grading, and email resolution.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shipcube/leads-cli/internal/email"
	"github.com/shipcube/leads-cli/internal/grade"
	"github.com/shipcube/leads-cli/internal/ledger"
	"github.com/shipcube/leads-cli/internal/model"
	"github.com/shipcube/leads-cli/internal/resolve"
	"github.com/shipcube/leads-cli/internal/scrape"
	"github.com/shipcube/leads-cli/internal/store"
)

// Pipeline runs the per-candidate state machine. It is safe for
// concurrent use: shared state is confined to the ledger, the site
// cache, and the store, each of which synchronizes internally.
type Pipeline struct {
	RunID    string
	MinGrade int

	Store    store.Store
	Mirror   Mirror // optional
	Ledger   *ledger.Ledger
	Grader   grade.Grader
	Resolver *resolve.Resolver
	Sites    *scrape.SiteScraper
	Emails   *email.Engine
	Cache    *SiteCache
}

// ProcessCandidate runs one candidate through the full state machine.
// Returns true when a fully qualified lead was persisted; partial leads
// (scrape failure, no decision maker, failed analysis, low grade) are
// persisted but not counted. Panics inside a candidate are recovered so
// one bad page cannot take down the run.
func (p *Pipeline) ProcessCandidate(ctx context.Context, cand model.Candidate) (counted bool) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("pipeline: candidate panicked",
				zap.String("link", cand.Link),
				zap.Any("panic", r),
			)
			counted = false
		}
	}()

	log := zap.L().With(zap.String("link", cand.Link))

	// 1. URL sanity.
	if !model.IsValidCompanyURL(cand.Link) {
		log.Debug("pipeline: invalid or placeholder url, skipping")
		return false
	}

	// 2. Domain dedup.
	domain := model.DomainFromURL(cand.Link)
	processed, err := p.Ledger.IsProcessed(ctx, domain)
	if err != nil {
		log.Warn("pipeline: ledger check failed", zap.Error(err))
	}
	if processed {
		log.Debug("pipeline: domain already processed", zap.String("domain", domain))
		return false
	}

	// 3. Company-name gate.
	companyName, err := p.Grader.CleanCompanyName(ctx, cand.Title, true)
	if err != nil {
		log.Warn("pipeline: name clean failed", zap.Error(err))
		return false
	}
	if companyName == "" {
		log.Info("pipeline: title is not a company, skipping", zap.String("title", cand.Title))
		return false
	}

	lead := &model.Lead{
		RunID:      p.RunID,
		Domain:     domain,
		Company:    companyName,
		Keyword:    cand.Keyword,
		Status:     model.StatusIdentified,
		SnippetBio: cand.Snippet,
		CreatedAt:  time.Now(),
	}

	// 4. Scrape, via the shared cache.
	site := p.Cache.Get(cand.Link)
	if site == nil {
		site, err = p.Sites.FetchSite(ctx, cand.Link)
		if err != nil {
			log.Info("pipeline: scraping failed", zap.Error(err))
			lead.Status = model.StatusScrapingFailed
			p.persist(ctx, lead)
			return false
		}
		p.Cache.Set(cand.Link, site)
	}
	if site.Homepage == "" {
		lead.Status = model.StatusScrapingFailed
		p.persist(ctx, lead)
		return false
	}

	// 5. Decision maker.
	dm := p.Resolver.Resolve(ctx, companyName, cand.Link, site)
	if dm == nil {
		dm = p.personFromSiteEmails(ctx, cand.Link)
	}
	if dm == nil {
		log.Info("pipeline: no decision maker found", zap.String("company", companyName))
		lead.Status = model.StatusNoDecisionMaker
		p.persist(ctx, lead)
		return false
	}
	lead.Person = *dm

	// 6. Analysis.
	combined := site.Combined()
	if len(site.Metadata) > 0 {
		combined += "\n\n=== METADATA HINTS ===\n"
		for k, v := range site.Metadata {
			combined += k + ": " + v + "\n"
		}
	}
	analysis, err := p.Grader.AnalyzeLead(ctx, companyName, combined, dm)
	if err != nil || analysis == nil {
		log.Info("pipeline: analysis failed", zap.Error(err))
		lead.Status = model.StatusAnalysisFailed
		p.persist(ctx, lead)
		return false
	}
	lead.Analysis = *analysis

	// 7. Grade gate.
	if p.MinGrade > 0 && analysis.QualificationGrade < p.MinGrade {
		log.Info("pipeline: below minimum grade",
			zap.Int("grade", analysis.QualificationGrade),
			zap.Int("min", p.MinGrade),
		)
		lead.Status = model.StatusLowGrade
		p.persist(ctx, lead)
		return false
	}

	// 8. Email resolution. Its status string is final.
	addr, status := p.Emails.Resolve(ctx, dm.FirstName, dm.LastName, domain, cand.Link)
	lead.Email = addr
	lead.Status = status

	// 9. Persist and mark the domain processed.
	p.persist(ctx, lead)
	if err := p.Ledger.MarkProcessed(ctx, domain, companyName); err != nil {
		log.Warn("pipeline: ledger mark failed", zap.Error(err))
	}

	log.Info("pipeline: lead complete",
		zap.String("company", companyName),
		zap.Int("grade", analysis.QualificationGrade),
		zap.String("status", status),
	)
	return true
}

// personFromSiteEmails infers a decision maker from addresses harvested
// off the site, the orchestrator's last-resort fallback.
func (p *Pipeline) personFromSiteEmails(ctx context.Context, companyURL string) *model.DecisionMaker {
	for _, addr := range p.Emails.FindOnSite(ctx, companyURL) {
		first, last, ok := resolve.NameFromEmail(addr)
		if !ok {
			continue
		}
		zap.L().Info("pipeline: inferred name from email",
			zap.String("name", first+" "+last),
			zap.String("email", addr),
		)
		return &model.DecisionMaker{
			FirstName: first,
			LastName:  last,
			Title:     "Contact (Inferred from Email)",
			Email:     addr,
		}
	}
	return nil
}

// persist saves the lead to the store and best-effort mirrors it.
func (p *Pipeline) persist(ctx context.Context, lead *model.Lead) {
	if err := p.Store.SaveLead(ctx, lead); err != nil {
		zap.L().Error("pipeline: save lead failed",
			zap.String("company", lead.Company),
			zap.Error(err),
		)
	}
	if p.Mirror != nil {
		if err := p.Mirror.AppendLead(ctx, lead); err != nil {
			zap.L().Warn("pipeline: mirror append failed",
				zap.String("company", lead.Company),
				zap.Error(err),
			)
		}
	}
}
