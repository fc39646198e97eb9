package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/shipcube/leads-cli/internal/ledger"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect the dedup and quota ledgers",
}

var ledgerDomainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List processed company domains",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := ledger.Open(cfg.Ledger.Path)
		if err != nil {
			return eris.Wrap(err, "cmd: open ledger")
		}
		defer l.Close()

		entries, err := l.Domains(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DOMAIN\tCOMPANY\tFIRST SEEN\tLAST SEEN")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				e.Domain, e.CompanyName,
				e.FirstSeen.Format("2006-01-02"), e.LastSeen.Format("2006-01-02"))
		}
		return w.Flush()
	},
}

var ledgerKeywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "List search keyword usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := ledger.Open(cfg.Ledger.Path)
		if err != nil {
			return eris.Wrap(err, "cmd: open ledger")
		}
		defer l.Close()

		entries, err := l.Keywords(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KEYWORD\tTIMES USED\tCOMPANIES FOUND\tLAST USED")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\n",
				e.Keyword, e.TimesUsed, e.CompaniesFound,
				e.LastUsed.Format("2006-01-02"))
		}
		return w.Flush()
	},
}

func init() {
	ledgerCmd.AddCommand(ledgerDomainsCmd, ledgerKeywordsCmd)
	rootCmd.AddCommand(ledgerCmd)
}
