package pipeline

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shipcube/leads-cli/internal/discovery"
	"github.com/shipcube/leads-cli/internal/model"
)

// Runner cycles through ICP definitions, discovering and processing
// candidates until the lead target is met or the search budget runs out.
type Runner struct {
	Pipeline *Pipeline
	Searcher *discovery.Searcher
	Tech     *discovery.TechDiscoverer // optional
	Budget   *Budget

	ICPs            []model.ICP
	TargetLeads     int
	Workers         int
	MaxKeywordUsage int
	BroadLimit      int
}

// Run executes the discovery loop. Quota exhaustion and reaching the
// target both terminate cleanly; only context cancellation returns an
// error.
func (r *Runner) Run(ctx context.Context) error {
	var (
		mu    sync.Mutex
		leads int
	)
	targetReached := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return leads >= r.TargetLeads
	}

	for iteration := 0; ; iteration++ {
		if targetReached() {
			break
		}

		for idx, profile := range r.ICPs {
			if err := ctx.Err(); err != nil {
				return err
			}
			if targetReached() {
				break
			}

			log := zap.L().With(
				zap.String("industry", profile.Industry),
				zap.Int("iteration", iteration),
			)
			log.Info("run: processing icp")

			// Fresh keywords each pass; the seed steers the model away
			// from keywords it generated on earlier iterations.
			seed := iteration*len(r.ICPs) + idx
			keywords, err := r.Pipeline.Grader.GenerateKeywords(ctx, profile, seed)
			if err != nil {
				log.Warn("run: keyword generation failed", zap.Error(err))
				continue
			}
			if len(keywords) == 0 {
				log.Warn("run: no keywords generated, skipping icp")
				continue
			}

			fresh, err := r.Pipeline.Ledger.FilterFresh(ctx, keywords, r.MaxKeywordUsage)
			if err != nil {
				log.Warn("run: keyword freshness check failed", zap.Error(err))
				fresh = keywords
			}

			remaining := r.Budget.Remaining()
			if remaining <= 0 {
				zap.L().Info("run: daily search limit reached, shutting down",
					zap.Int("used", r.Budget.Used()),
				)
				return nil
			}
			if len(fresh) > remaining {
				log.Info("run: trimming keywords to stay in budget",
					zap.Int("keywords", len(fresh)),
					zap.Int("remaining", remaining),
				)
				fresh = fresh[:remaining]
			}
			if len(fresh) == 0 {
				log.Info("run: no search quota remaining for this batch")
				continue
			}

			market := profile.Geography
			if market == "" {
				market = "USA"
			}

			// First pass seeds each ICP with the market-specific
			// discovery query on the industry itself, before any
			// generated keywords; only when quota allows it on top
			// of the keyword batch.
			var candidates []model.Candidate
			if iteration == 0 && r.Budget.Remaining() > len(fresh) {
				seeded, err := r.Searcher.SearchCompanies(ctx, profile.Industry, market)
				r.Budget.Consume(1)
				if err != nil {
					log.Warn("run: seed discovery failed", zap.Error(err))
				} else {
					candidates = append(candidates, seeded...)
				}
			}

			swept, queries := r.Searcher.SearchKeywordsShuffled(ctx, fresh, market, 3)
			candidates = append(candidates, swept...)
			r.Budget.Consume(queries)
			log.Info("run: search quota used",
				zap.Int("used", r.Budget.Used()),
			)

			for i, kw := range fresh {
				if i >= 10 {
					break
				}
				if err := r.Pipeline.Ledger.MarkKeywordUsed(ctx, kw, len(swept)); err != nil {
					log.Warn("run: keyword tracking failed", zap.Error(err))
				}
			}

			// Mix in broad storefront results so the pipeline keeps
			// moving when keywords underperform.
			candidates = append(candidates, r.Searcher.SearchBroad(ctx, market, r.BroadLimit)...)
			if r.Tech != nil {
				candidates = append(candidates, r.Tech.Discover(ctx, profile.Industry, "Shopify", r.BroadLimit)...)
			}

			candidates = discovery.DedupeAndShuffle(candidates)
			log.Info("run: candidates discovered", zap.Int("count", len(candidates)))

			g, gCtx := errgroup.WithContext(ctx)
			g.SetLimit(r.Workers)
			for _, cand := range candidates {
				if targetReached() {
					break
				}
				g.Go(func() error {
					if targetReached() {
						return nil
					}
					if r.Pipeline.ProcessCandidate(gCtx, cand) {
						mu.Lock()
						leads++
						total := leads
						mu.Unlock()
						zap.L().Info("run: lead saved",
							zap.Int("total", total),
							zap.Int("target", r.TargetLeads),
						)
					}
					return nil
				})
			}
			_ = g.Wait()
		}

		zap.L().Info("run: completed icp iteration",
			zap.Int("iteration", iteration+1),
			zap.Int("leads", leads),
			zap.Int("target", r.TargetLeads),
		)
	}

	zap.L().Info("run: target reached, exiting")
	return nil
}
