package scrape

import (
	"context"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SiteContent holds the text gathered from a company website across its
// homepage and the standard informational subpages.
type SiteContent struct {
	URL      string
	Homepage string
	About    string
	Team     string
	Press    string
	Careers  string
	Metadata map[string]string
}

// Combined concatenates all non-empty sections for LLM analysis.
func (s *SiteContent) Combined() string {
	var b strings.Builder
	for _, sec := range []struct {
		label, text string
	}{
		{"HOMEPAGE", s.Homepage},
		{"ABOUT", s.About},
		{"TEAM", s.Team},
		{"PRESS", s.Press},
		{"CAREERS", s.Careers},
	} {
		if sec.text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("=== " + sec.label + " ===\n")
		b.WriteString(sec.text)
	}
	return b.String()
}

// Section limits. The homepage carries the most signal; subpages are
// truncated harder to keep LLM prompts bounded.
const (
	homepageLimit = 15000
	aboutLimit    = 5000
	teamLimit     = 3000
	pressLimit    = 3000
	careersLimit  = 2000
)

var (
	aboutPaths   = []string{"/about", "/about-us", "/our-story"}
	teamPaths    = []string{"/team", "/our-team"}
	pressPaths   = []string{"/press", "/news"}
	careersPaths = []string{"/careers", "/jobs"}
)

// SiteScraper assembles SiteContent for a company website using a
// scraper chain.
type SiteScraper struct {
	chain *Chain
}

// NewSiteScraper creates a SiteScraper over the given chain.
func NewSiteScraper(chain *Chain) *SiteScraper {
	return &SiteScraper{chain: chain}
}

// FetchSite scrapes the homepage plus about/team/press/careers subpages.
// The homepage is required: if it cannot be fetched, an error is returned.
// Subpage failures are tolerated and leave their section empty.
func (s *SiteScraper) FetchSite(ctx context.Context, siteURL string) (*SiteContent, error) {
	content := &SiteContent{
		URL:      siteURL,
		Metadata: map[string]string{},
	}

	home, err := s.chain.Scrape(ctx, siteURL)
	if err != nil {
		return nil, eris.Wrap(err, "scrape: homepage")
	}
	content.Homepage = truncate(home.Page.Content, homepageLimit)
	extractHints(content.Homepage, content.Metadata)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	g.Go(func() error {
		if text := s.firstSubpage(gCtx, siteURL, aboutPaths, 200); text != "" {
			content.About = truncate(text, aboutLimit)
			extractHints(content.About, content.Metadata)
		}
		return nil
	})
	g.Go(func() error {
		if text := s.firstSubpage(gCtx, siteURL, teamPaths, 200); text != "" {
			content.Team = truncate(text, teamLimit)
		}
		return nil
	})
	g.Go(func() error {
		if text := s.firstSubpage(gCtx, siteURL, pressPaths, 200); text != "" {
			content.Press = truncate(text, pressLimit)
		}
		return nil
	})
	g.Go(func() error {
		if text := s.firstSubpage(gCtx, siteURL, careersPaths, 100); text != "" {
			content.Careers = truncate(text, careersLimit)
		}
		return nil
	})

	_ = g.Wait()

	zap.L().Debug("scrape: site assembled",
		zap.String("url", siteURL),
		zap.Int("homepage_chars", len(content.Homepage)),
		zap.Int("about_chars", len(content.About)),
		zap.Int("team_chars", len(content.Team)),
	)

	return content, nil
}

// firstSubpage tries each path in order and returns the first page whose
// text exceeds minChars.
func (s *SiteScraper) firstSubpage(ctx context.Context, siteURL string, paths []string, minChars int) string {
	base := strings.TrimRight(siteURL, "/")
	for _, path := range paths {
		result, err := s.chain.Scrape(ctx, base+path)
		if err != nil {
			continue
		}
		if len(result.Page.Content) > minChars {
			return result.Page.Content
		}
	}
	return ""
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

var (
	employeeHintRe = regexp.MustCompile(`(?i)\d+[+\-]?\s*(employees|team members|people)`)
	revenueHintRe  = regexp.MustCompile(`(?i)\$\d+[MmBbKk]?\s*(revenue|ARR|sales)`)
)

// extractHints scans text for employee-count and revenue phrases and
// records the first occurrence of each.
func extractHints(text string, meta map[string]string) {
	if _, ok := meta["employee_hint"]; !ok {
		if m := employeeHintRe.FindString(text); m != "" {
			meta["employee_hint"] = m
		}
	}
	if _, ok := meta["revenue_hint"]; !ok {
		if m := revenueHintRe.FindString(text); m != "" {
			meta["revenue_hint"] = m
		}
	}
}
