package main

import (
	"bufio"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shipcube/leads-cli/internal/pipeline"
)

var enrichInput string

var enrichCmd = &cobra.Command{
	Use:   "enrich [company ...]",
	Short: "Enrich known company names into full leads",
	Long:  "Takes company names (as arguments or one per line via --input) and runs each through website discovery, decision-maker resolution, grading, and email discovery.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		companies := args
		if enrichInput != "" {
			fromFile, err := readCompanyFile(enrichInput)
			if err != nil {
				return err
			}
			companies = append(companies, fromFile...)
		}
		if len(companies) == 0 {
			return eris.New("cmd: no companies given; pass names as arguments or --input FILE")
		}

		e, err := initEnv(ctx, cfg)
		if err != nil {
			return err
		}
		defer e.Close()

		enricher := &pipeline.Enricher{
			Pipeline: e.Pipeline,
			Searcher: e.Searcher,
			Workers:  cfg.Pipeline.Workers,
		}

		zap.L().Info("starting enrichment",
			zap.String("run_id", e.Pipeline.RunID),
			zap.Int("companies", len(companies)))

		return enricher.EnrichCompanies(ctx, companies)
	},
}

// readCompanyFile reads one company name per line, skipping blanks and
// a leading "company" header if present.
func readCompanyFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "cmd: open input file")
	}
	defer f.Close()

	var companies []string
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if first && strings.EqualFold(line, "company") {
			first = false
			continue
		}
		first = false
		companies = append(companies, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrap(err, "cmd: read input file")
	}
	return companies, nil
}

func init() {
	enrichCmd.Flags().StringVar(&enrichInput, "input", "", "file with one company name per line")
	rootCmd.AddCommand(enrichCmd)
}
