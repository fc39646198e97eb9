package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/shipcube/leads-cli/internal/config"
	"github.com/shipcube/leads-cli/internal/discovery"
	"github.com/shipcube/leads-cli/internal/email"
	"github.com/shipcube/leads-cli/internal/grade"
	"github.com/shipcube/leads-cli/internal/ledger"
	"github.com/shipcube/leads-cli/internal/pipeline"
	"github.com/shipcube/leads-cli/internal/resolve"
	"github.com/shipcube/leads-cli/internal/scrape"
	"github.com/shipcube/leads-cli/internal/store"
	"github.com/shipcube/leads-cli/pkg/anthropic"
	"github.com/shipcube/leads-cli/pkg/builtwith"
	"github.com/shipcube/leads-cli/pkg/firecrawl"
	"github.com/shipcube/leads-cli/pkg/googlecse"
	"github.com/shipcube/leads-cli/pkg/hunter"
	"github.com/shipcube/leads-cli/pkg/jina"
	"github.com/shipcube/leads-cli/pkg/notion"
)

// env holds every wired component a pipeline command needs. Built once
// per invocation and torn down with Close.
type env struct {
	Store    store.Store
	Ledger   *ledger.Ledger
	Pipeline *pipeline.Pipeline
	Searcher *discovery.Searcher
	Tech     *discovery.TechDiscoverer
}

func initStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		return store.NewSQLite(cfg.Store.Path)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("cmd: unknown store driver %q", cfg.Store.Driver)
	}
}

// initEnv validates credentials and wires the full pipeline graph.
func initEnv(ctx context.Context, cfg *config.Config) (*env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := initStore(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "cmd: init store")
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "cmd: migrate store")
	}

	led, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "cmd: open ledger")
	}

	cse := googlecse.NewClient(cfg.Search.Key, googlecse.WithRateLimit(cfg.Search.RateLimit))

	var scrapers []scrape.Scraper
	if cfg.Firecrawl.Key != "" {
		fc := firecrawl.NewClient(cfg.Firecrawl.Key, firecrawl.WithBaseURL(cfg.Firecrawl.BaseURL))
		scrapers = append(scrapers, scrape.NewFirecrawlAdapter(fc))
	}
	var jinaClient jina.Client
	if cfg.Jina.Key != "" {
		jinaClient = jina.NewClient(cfg.Jina.Key, jina.WithBaseURL(cfg.Jina.BaseURL))
		scrapers = append(scrapers, scrape.NewJinaAdapter(jinaClient))
	}
	scrapers = append(scrapers, scrape.NewLocalScraper())
	chain := scrape.NewChain(scrapers...)
	sites := scrape.NewSiteScraper(chain)

	grader := grade.NewClaudeGrader(
		anthropic.NewClient(cfg.Anthropic.Key),
		cfg.Anthropic.HaikuModel,
		cfg.Anthropic.GradeModel,
	)

	var deep *resolve.DeepValidator
	if cfg.Resolver.DeepValidation && jinaClient != nil {
		deep = resolve.NewDeepValidator(jinaClient, cfg.Resolver.DeepValidationStrict)
	}
	resolver := resolve.NewResolver(cse, cfg.Search.PeopleCX, grader, deep)

	var hunterClient hunter.Client
	if cfg.Hunter.Key != "" {
		hunterClient = hunter.NewClient(cfg.Hunter.Key)
	}
	verifier := email.NewVerifier(
		cfg.SMTP.VerifyLimit,
		cfg.SMTP.HelloDomain,
		cfg.SMTP.FromAddress,
		time.Duration(cfg.SMTP.TimeoutSecs)*time.Second,
	)
	emails := email.NewEngine(chain, hunterClient, verifier)

	var mirror pipeline.Mirror
	if cfg.Notion.Token != "" && cfg.Notion.LeadDB != "" {
		mirror = pipeline.NewNotionMirror(notion.NewClient(cfg.Notion.Token), cfg.Notion.LeadDB)
	}

	var tech *discovery.TechDiscoverer
	if cfg.BuiltWith.Key != "" {
		tech = discovery.NewTechDiscoverer(builtwith.NewClient(cfg.BuiltWith.Key))
	}

	runID := uuid.NewString()
	zap.L().Info("environment initialized",
		zap.String("run_id", runID),
		zap.String("store", cfg.Store.Driver),
		zap.Bool("hunter", hunterClient != nil),
		zap.Bool("notion", mirror != nil),
		zap.Bool("builtwith", tech != nil),
		zap.Bool("deep_validation", deep != nil))

	return &env{
		Store:  st,
		Ledger: led,
		Pipeline: &pipeline.Pipeline{
			RunID:    runID,
			MinGrade: cfg.Pipeline.MinGrade,
			Store:    st,
			Mirror:   mirror,
			Ledger:   led,
			Grader:   grader,
			Resolver: resolver,
			Sites:    sites,
			Emails:   emails,
			Cache:    pipeline.NewSiteCache(),
		},
		Searcher: discovery.NewSearcher(cse, cfg.Search.CompaniesCX),
		Tech:     tech,
	}, nil
}

func (e *env) Close() {
	if err := e.Ledger.Close(); err != nil {
		zap.L().Warn("close ledger", zap.Error(err))
	}
	if err := e.Store.Close(); err != nil {
		zap.L().Warn("close store", zap.Error(err))
	}
}
