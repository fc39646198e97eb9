package email

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/shipcube/leads-cli/internal/model"
	"github.com/shipcube/leads-cli/internal/scrape"
	"github.com/shipcube/leads-cli/pkg/hunter"
)

// Contact-style subpages tried when harvesting addresses from a site.
// Only the first two are attempted.
var contactPaths = []string{
	"/contact", "/contact-us", "/about", "/about-us", "/team", "/our-story",
}

// Engine resolves an email address for a decision maker by trying the
// company site, a third-party finder, and pattern generation in order.
type Engine struct {
	chain    *scrape.Chain
	hunter   hunter.Client // optional
	verifier *Verifier     // optional
}

// NewEngine creates an Engine. The hunter client and verifier may be
// nil, disabling their stages.
func NewEngine(chain *scrape.Chain, hunterClient hunter.Client, verifier *Verifier) *Engine {
	return &Engine{chain: chain, hunter: hunterClient, verifier: verifier}
}

// Resolve finds an email for the person at the domain. Returns the
// address (possibly empty) and a status string describing how it was
// obtained.
func (e *Engine) Resolve(ctx context.Context, first, last, domain, companyURL string) (string, string) {
	if first == "" || domain == "" {
		return "", model.StatusMissingLeadData
	}

	// 1. Harvest from the company site.
	if companyURL != "" {
		if found := e.FindOnSite(ctx, companyURL); len(found) > 0 {
			return found[0], model.StatusWebsiteScrape
		}
	}

	// 2. Third-party finder.
	hunterStatus := ""
	if e.hunter != nil {
		result, err := e.hunter.FindEmail(ctx, domain, first, last)
		switch {
		case err != nil:
			zap.L().Warn("email: hunter lookup failed", zap.Error(err))
			hunterStatus = model.StatusHunterError(err)
		case result != nil && result.Email != "":
			zap.L().Info("email: hunter found address",
				zap.String("email", result.Email),
				zap.Int("score", result.Score),
			)
			status := model.StatusHunter
			if e.verifier != nil && e.verifier.Remaining() > 0 {
				if e.verifier.Verify(result.Email) == OutcomeValid {
					status = model.SMTPVerified(status)
				}
			}
			return result.Email, status
		default:
			hunterStatus = model.StatusHunterNotFound
		}
	}

	// 3. Pattern guess.
	if patterns := GeneratePatterns(first, last, domain); len(patterns) > 0 {
		return patterns[0], model.StatusPatternGuess
	}

	if hunterStatus != "" {
		return "", hunterStatus
	}
	return "", model.StatusEmailNotFound
}

// FindOnSite scrapes the homepage and up to two contact-style subpages
// for non-generic email addresses, stopping at the first subpage that
// yields any.
func (e *Engine) FindOnSite(ctx context.Context, baseURL string) []string {
	var all []string

	if result, err := e.chain.Scrape(ctx, baseURL); err == nil {
		all = append(all, ExtractEmails(result.Page.Content)...)
	}

	base := strings.TrimRight(baseURL, "/")
	for _, path := range contactPaths[:2] {
		result, err := e.chain.Scrape(ctx, base+path)
		if err != nil {
			continue
		}
		found := ExtractEmails(result.Page.Content)
		all = append(all, found...)
		if len(found) > 0 {
			break
		}
	}

	unique := Dedupe(all)
	if len(unique) > 0 {
		zap.L().Info("email: found addresses on site",
			zap.String("url", baseURL),
			zap.Int("count", len(unique)),
		)
	}
	return unique
}
