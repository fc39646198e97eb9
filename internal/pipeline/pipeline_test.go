package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipcube/leads-cli/internal/email"
	"github.com/shipcube/leads-cli/internal/ledger"
	"github.com/shipcube/leads-cli/internal/model"
	"github.com/shipcube/leads-cli/internal/resolve"
	"github.com/shipcube/leads-cli/internal/scrape"
	"github.com/shipcube/leads-cli/internal/store"
	"github.com/shipcube/leads-cli/pkg/googlecse"
)

// memStore collects saved leads in memory.
type memStore struct {
	mu    sync.Mutex
	leads []model.Lead
}

func (m *memStore) SaveLead(_ context.Context, lead *model.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leads = append(m.leads, *lead)
	return nil
}

func (m *memStore) ListLeads(context.Context, store.LeadFilter) ([]model.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Lead(nil), m.leads...), nil
}

func (m *memStore) CountLeads(context.Context, string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.leads), nil
}

func (m *memStore) Migrate(context.Context) error { return nil }
func (m *memStore) Close() error                  { return nil }

func (m *memStore) last(t *testing.T) model.Lead {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.leads)
	return m.leads[len(m.leads)-1]
}

// fakeGrader scripts the LLM collaborator.
type fakeGrader struct {
	companyName string
	nameErr     error
	analysis    *model.Analysis
	analysisErr error
	person      *model.DecisionMaker
	keywords    []string
}

func (f *fakeGrader) AnalyzeLead(context.Context, string, string, *model.DecisionMaker) (*model.Analysis, error) {
	return f.analysis, f.analysisErr
}

func (f *fakeGrader) CleanCompanyName(context.Context, string, bool) (string, error) {
	return f.companyName, f.nameErr
}

func (f *fakeGrader) ExtractPerson(context.Context, string, string) (*model.DecisionMaker, error) {
	return f.person, nil
}

func (f *fakeGrader) GenerateKeywords(context.Context, model.ICP, int) ([]string, error) {
	return f.keywords, nil
}

// sitePages serves canned scrape content per URL.
type sitePages struct {
	pages map[string]string
}

func (s *sitePages) Name() string         { return "pages" }
func (s *sitePages) Supports(string) bool { return true }
func (s *sitePages) Scrape(_ context.Context, url string) (*scrape.Result, error) {
	content, ok := s.pages[url]
	if !ok {
		return nil, errors.New("not found")
	}
	return &scrape.Result{Page: scrape.Page{URL: url, Content: content}, Source: "pages"}, nil
}

type noopCSE struct{}

func (noopCSE) Search(context.Context, string, string, ...googlecse.SearchOption) ([]googlecse.Result, error) {
	return nil, nil
}

func testLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	l, err := ledger.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func homepage() string {
	return "Acme sells handmade soap." + strings.Repeat(" Nationwide shipping and retail.", 10)
}

// newTestPipeline wires a pipeline around a canned site and grader.
func newTestPipeline(t *testing.T, grader *fakeGrader, pages map[string]string) (*Pipeline, *memStore) {
	t.Helper()
	chain := scrape.NewChain(&sitePages{pages: pages})
	st := &memStore{}
	p := &Pipeline{
		RunID:    "test-run",
		Store:    st,
		Ledger:   testLedger(t),
		Grader:   grader,
		Resolver: resolve.NewResolver(noopCSE{}, "people-cx", grader, nil),
		Sites:    scrape.NewSiteScraper(chain),
		Emails:   email.NewEngine(chain, nil, nil),
		Cache:    NewSiteCache(),
	}
	return p, st
}

func TestProcessCandidateInvalidURL(t *testing.T) {
	p, st := newTestPipeline(t, &fakeGrader{}, nil)

	counted := p.ProcessCandidate(context.Background(), model.Candidate{Link: "https://example.com/x"})
	assert.False(t, counted)
	assert.Empty(t, st.leads, "invalid urls never produce a record")
}

func TestProcessCandidateAlreadyProcessed(t *testing.T) {
	grader := &fakeGrader{companyName: "Acme"}
	p, st := newTestPipeline(t, grader, nil)
	require.NoError(t, p.Ledger.MarkProcessed(context.Background(), "acme.com", "Acme"))

	counted := p.ProcessCandidate(context.Background(), model.Candidate{Link: "https://acme.com"})
	assert.False(t, counted)
	assert.Empty(t, st.leads)
}

func TestProcessCandidateNotACompany(t *testing.T) {
	grader := &fakeGrader{companyName: ""}
	p, st := newTestPipeline(t, grader, nil)

	counted := p.ProcessCandidate(context.Background(), model.Candidate{
		Title: "10 Best Soap Brands 2026",
		Link:  "https://listicle.com/best-soap",
	})
	assert.False(t, counted)
	assert.Empty(t, st.leads)
}

func TestProcessCandidateScrapeFailure(t *testing.T) {
	grader := &fakeGrader{companyName: "Acme"}
	p, st := newTestPipeline(t, grader, map[string]string{})

	counted := p.ProcessCandidate(context.Background(), model.Candidate{Link: "https://acme.com"})
	assert.False(t, counted)

	lead := st.last(t)
	assert.Equal(t, model.StatusScrapingFailed, lead.Status)
	assert.Equal(t, "Acme", lead.Company)

	processed, err := p.Ledger.IsProcessed(context.Background(), "acme.com")
	require.NoError(t, err)
	assert.False(t, processed, "partial leads leave the domain retryable")
}

func TestProcessCandidateNoDecisionMaker(t *testing.T) {
	grader := &fakeGrader{companyName: "Acme"}
	p, st := newTestPipeline(t, grader, map[string]string{
		"https://acme.com": homepage(),
	})

	counted := p.ProcessCandidate(context.Background(), model.Candidate{Link: "https://acme.com"})
	assert.False(t, counted)
	assert.Equal(t, model.StatusNoDecisionMaker, st.last(t).Status)
}

func TestProcessCandidateAnalysisFailure(t *testing.T) {
	grader := &fakeGrader{
		companyName: "Acme",
		person:      &model.DecisionMaker{FirstName: "Jane", LastName: "Doe", Title: "CEO"},
		analysisErr: errors.New("model overloaded"),
	}
	p, st := newTestPipeline(t, grader, map[string]string{
		"https://acme.com":       homepage(),
		"https://acme.com/about": homepage(),
	})

	counted := p.ProcessCandidate(context.Background(), model.Candidate{Link: "https://acme.com"})
	assert.False(t, counted)
	assert.Equal(t, model.StatusAnalysisFailed, st.last(t).Status)
}

func TestProcessCandidateLowGrade(t *testing.T) {
	grader := &fakeGrader{
		companyName: "Acme",
		person:      &model.DecisionMaker{FirstName: "Jane", LastName: "Doe", Title: "CEO"},
		analysis:    &model.Analysis{QualificationGrade: 2},
	}
	p, st := newTestPipeline(t, grader, map[string]string{
		"https://acme.com":       homepage(),
		"https://acme.com/about": homepage(),
	})
	p.MinGrade = 5

	counted := p.ProcessCandidate(context.Background(), model.Candidate{Link: "https://acme.com"})
	assert.False(t, counted)
	assert.Equal(t, model.StatusLowGrade, st.last(t).Status)
}

func TestProcessCandidateFullSuccess(t *testing.T) {
	grader := &fakeGrader{
		companyName: "Acme",
		person:      &model.DecisionMaker{FirstName: "Jane", LastName: "Doe", Title: "CEO"},
		analysis:    &model.Analysis{QualificationGrade: 8, CompanyInfo: "Soap brand."},
	}
	p, st := newTestPipeline(t, grader, map[string]string{
		"https://acme.com":       homepage(),
		"https://acme.com/about": homepage(),
	})

	counted := p.ProcessCandidate(context.Background(), model.Candidate{
		Title:   "Acme - Handmade Soap",
		Link:    "https://acme.com",
		Keyword: "organic soap",
	})
	assert.True(t, counted)

	lead := st.last(t)
	assert.Equal(t, "Acme", lead.Company)
	assert.Equal(t, "acme.com", lead.Domain)
	assert.Equal(t, model.StatusPatternGuess, lead.Status)
	assert.Equal(t, "jane@acme.com", lead.Email)
	assert.Equal(t, 8, lead.Analysis.QualificationGrade)

	processed, err := p.Ledger.IsProcessed(context.Background(), "acme.com")
	require.NoError(t, err)
	assert.True(t, processed, "completed leads mark the domain ledger")
}

func TestProcessCandidateUsesCachedSite(t *testing.T) {
	grader := &fakeGrader{companyName: "Acme"}
	p, st := newTestPipeline(t, grader, map[string]string{})
	p.Cache.Set("https://acme.com", &scrape.SiteContent{
		URL:      "https://acme.com",
		Homepage: homepage(),
	})

	counted := p.ProcessCandidate(context.Background(), model.Candidate{Link: "https://acme.com"})
	assert.False(t, counted)
	assert.Equal(t, model.StatusNoDecisionMaker, st.last(t).Status,
		"cached content skips the scrape stage")
}

func TestPersonFromSiteEmails(t *testing.T) {
	grader := &fakeGrader{companyName: "Acme"}
	p, _ := newTestPipeline(t, grader, map[string]string{
		"https://acme.com": "Contact jane.doe@acme.com for wholesale." + homepage(),
	})

	dm := p.personFromSiteEmails(context.Background(), "https://acme.com")
	require.NotNil(t, dm)
	assert.Equal(t, "Jane", dm.FirstName)
	assert.Equal(t, "Doe", dm.LastName)
	assert.Equal(t, "Contact (Inferred from Email)", dm.Title)
	assert.Equal(t, "jane.doe@acme.com", dm.Email)
}

func TestBudget(t *testing.T) {
	b := NewBudget(10)
	assert.Equal(t, 10, b.Remaining())
	assert.False(t, b.Exhausted())

	b.Consume(4)
	b.Consume(6)
	assert.Equal(t, 0, b.Remaining())
	assert.Equal(t, 10, b.Used())
	assert.True(t, b.Exhausted())
}

func TestSiteCache(t *testing.T) {
	c := NewSiteCache()
	assert.Nil(t, c.Get("https://acme.com"))

	content := &scrape.SiteContent{URL: "https://acme.com"}
	c.Set("https://acme.com", content)
	assert.Same(t, content, c.Get("https://acme.com"))
}
