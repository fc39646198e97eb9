package discovery

import (
	"context"
	"math/rand"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/shipcube/leads-cli/internal/model"
	"github.com/shipcube/leads-cli/pkg/googlecse"
)

// Limits for the shuffled keyword sweep.
const (
	maxKeywordsPerSweep  = 20
	maxCompaniesPerSweep = 100
)

// Searcher discovers candidate companies through the Custom Search API.
type Searcher struct {
	cse googlecse.Client
	cx  string
}

// NewSearcher creates a Searcher using the companies search engine.
func NewSearcher(cse googlecse.Client, companiesCX string) *Searcher {
	return &Searcher{cse: cse, cx: companiesCX}
}

// SearchCompanies runs a single discovery query for a keyword in a market.
func (s *Searcher) SearchCompanies(ctx context.Context, keyword, market string) ([]model.Candidate, error) {
	query := DiscoveryQuery(keyword, market)
	if query == "" {
		return nil, eris.Errorf("discovery: unknown market %q", market)
	}

	results, err := s.cse.Search(ctx, s.cx, query, googlecse.WithNum(10))
	if err != nil {
		return nil, eris.Wrap(err, "discovery: company search")
	}

	return toCandidates(results, market, keyword), nil
}

// SearchKeywordsShuffled sweeps a shuffled copy of the keyword list,
// issuing one query per keyword up to the sweep limits. It returns the
// candidates found and the number of queries actually issued, which the
// caller charges against the daily search quota.
func (s *Searcher) SearchKeywordsShuffled(ctx context.Context, keywords []string, market string, limitPerKeyword int) ([]model.Candidate, int) {
	shuffled := make([]string, len(keywords))
	copy(shuffled, keywords)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if len(shuffled) > maxKeywordsPerSweep {
		shuffled = shuffled[:maxKeywordsPerSweep]
	}

	var (
		all     []model.Candidate
		queries int
	)
	for _, keyword := range shuffled {
		if len(all) >= maxCompaniesPerSweep {
			break
		}

		results, err := s.cse.Search(ctx, s.cx, KeywordQuery(keyword), googlecse.WithNum(limitPerKeyword))
		queries++
		if err != nil {
			zap.L().Warn("discovery: keyword search failed",
				zap.String("keyword", keyword),
				zap.Error(err),
			)
			continue
		}

		all = append(all, toCandidates(results, market, keyword)...)
	}

	return all, queries
}

// SearchBroad runs a market-wide storefront query from a random result
// offset, mixing fresh companies into the pipeline when keywords run dry.
func (s *Searcher) SearchBroad(ctx context.Context, market string, limit int) []model.Candidate {
	query := BroadQuery(market)
	if query == "" {
		return nil
	}

	start := rand.Intn(50) + 1
	results, err := s.cse.Search(ctx, s.cx, query,
		googlecse.WithNum(limit),
		googlecse.WithStart(start),
	)
	if err != nil {
		zap.L().Warn("discovery: broad search failed", zap.Error(err))
		return nil
	}

	return toCandidates(results, market, "Broad Discovery")
}

// FindWebsite looks up the official website for a known company name.
// Used in enrichment mode where the input is a company list, not keywords.
func (s *Searcher) FindWebsite(ctx context.Context, companyName string) (*model.Candidate, error) {
	results, err := s.cse.Search(ctx, s.cx, EnrichmentQuery(companyName), googlecse.WithNum(3))
	if err != nil {
		return nil, eris.Wrap(err, "discovery: website lookup")
	}
	if len(results) == 0 {
		return nil, nil
	}

	c := model.Candidate{
		Title:   results[0].Title,
		Link:    results[0].Link,
		Snippet: results[0].Snippet,
		Keyword: "Enrichment",
	}
	return &c, nil
}

func toCandidates(results []googlecse.Result, market, keyword string) []model.Candidate {
	out := make([]model.Candidate, 0, len(results))
	for _, r := range results {
		if r.Link == "" {
			continue
		}
		out = append(out, model.Candidate{
			Title:   r.Title,
			Link:    r.Link,
			Snippet: r.Snippet,
			Market:  market,
			Keyword: keyword,
		})
	}
	return out
}

// DedupeAndShuffle removes candidates with duplicate links (first
// occurrence wins) and shuffles the survivors.
func DedupeAndShuffle(candidates []model.Candidate) []model.Candidate {
	seen := make(map[string]struct{}, len(candidates))
	unique := make([]model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.Link]; ok {
			continue
		}
		seen[c.Link] = struct{}{}
		unique = append(unique, c)
	}

	rand.Shuffle(len(unique), func(i, j int) {
		unique[i], unique[j] = unique[j], unique[i]
	})
	return unique
}
