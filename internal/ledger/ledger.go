// Package ledger persists the two dedup/usage tables that gate pipeline work:
// processed company domains and search-keyword usage counters.
package ledger

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// Ledger stores processed-domain and keyword-usage entries in SQLite.
// Reads are safe for concurrent use; writes are serialized with a mutex
// since workers complete in arbitrary order.
type Ledger struct {
	db *sql.DB
	mu sync.Mutex
}

// DomainEntry is one processed-domain record. At most one entry per domain.
type DomainEntry struct {
	Domain      string    `json:"domain"`
	FirstSeen   time.Time `json:"first_seen"`
	LastSeen    time.Time `json:"last_seen"`
	CompanyName string    `json:"company_name"`
}

// KeywordEntry tracks how often a search keyword has been used and what it
// yielded. Counters are monotonically non-decreasing.
type KeywordEntry struct {
	Keyword        string    `json:"keyword"`
	LastUsed       time.Time `json:"last_used"`
	TimesUsed      int       `json:"times_used"`
	CompaniesFound int       `json:"companies_found"`
}

// Open opens (or creates) the ledger database at the given path.
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "ledger: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "ledger: exec %s", pragma)
		}
	}
	l := &Ledger{db: db}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS processed_domains (
	domain       TEXT PRIMARY KEY,
	first_seen   DATETIME NOT NULL,
	last_seen    DATETIME NOT NULL,
	company_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS keyword_usage (
	keyword         TEXT PRIMARY KEY,
	last_used       DATETIME NOT NULL,
	times_used      INTEGER NOT NULL DEFAULT 0,
	companies_found INTEGER NOT NULL DEFAULT 0
);
`

func (l *Ledger) migrate() error {
	_, err := l.db.Exec(migration)
	return eris.Wrap(err, "ledger: migrate")
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// IsProcessed reports whether a domain already has a ledger entry.
func (l *Ledger) IsProcessed(ctx context.Context, domain string) (bool, error) {
	var one int
	err := l.db.QueryRowContext(ctx,
		`SELECT 1 FROM processed_domains WHERE domain = ?`, domain,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, eris.Wrap(err, "ledger: is processed")
	}
	return true, nil
}

// MarkProcessed records a domain as processed. Idempotent upsert: a new
// entry gets first_seen = last_seen = now; an existing entry only has its
// last_seen refreshed and keeps its original company name.
func (l *Ledger) MarkProcessed(ctx context.Context, domain, companyName string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now().UTC()
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO processed_domains (domain, first_seen, last_seen, company_name)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(domain) DO UPDATE SET last_seen = excluded.last_seen`,
		domain, now, now, companyName,
	)
	return eris.Wrapf(err, "ledger: mark processed %s", domain)
}

// Domains lists all processed-domain entries.
func (l *Ledger) Domains(ctx context.Context) ([]DomainEntry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT domain, first_seen, last_seen, company_name FROM processed_domains ORDER BY domain`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "ledger: list domains")
	}
	defer rows.Close()

	var entries []DomainEntry
	for rows.Next() {
		var e DomainEntry
		if err := rows.Scan(&e.Domain, &e.FirstSeen, &e.LastSeen, &e.CompanyName); err != nil {
			return nil, eris.Wrap(err, "ledger: scan domain entry")
		}
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "ledger: iterate domains")
}

// FilterFresh returns the subset of keywords used fewer than maxUsage times.
// If filtering would leave nothing, the original input is returned unchanged:
// reusing exhausted keywords beats starving the pipeline.
func (l *Ledger) FilterFresh(ctx context.Context, keywords []string, maxUsage int) ([]string, error) {
	fresh := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		var used int
		err := l.db.QueryRowContext(ctx,
			`SELECT times_used FROM keyword_usage WHERE keyword = ?`, kw,
		).Scan(&used)
		if err == sql.ErrNoRows {
			fresh = append(fresh, kw)
			continue
		}
		if err != nil {
			return nil, eris.Wrap(err, "ledger: filter fresh")
		}
		if used < maxUsage {
			fresh = append(fresh, kw)
		}
	}
	if len(fresh) == 0 {
		return keywords, nil
	}
	return fresh, nil
}

// MarkKeywordUsed increments a keyword's usage counter, adds companiesFound
// to its cumulative yield, and refreshes its last-used timestamp.
func (l *Ledger) MarkKeywordUsed(ctx context.Context, keyword string, companiesFound int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now().UTC()
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO keyword_usage (keyword, last_used, times_used, companies_found)
		 VALUES (?, ?, 1, ?)
		 ON CONFLICT(keyword) DO UPDATE SET
			times_used      = times_used + 1,
			companies_found = companies_found + excluded.companies_found,
			last_used       = excluded.last_used`,
		keyword, now, companiesFound,
	)
	return eris.Wrapf(err, "ledger: mark keyword used %q", keyword)
}

// Keywords lists all keyword-usage entries.
func (l *Ledger) Keywords(ctx context.Context) ([]KeywordEntry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT keyword, last_used, times_used, companies_found FROM keyword_usage ORDER BY keyword`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "ledger: list keywords")
	}
	defer rows.Close()

	var entries []KeywordEntry
	for rows.Next() {
		var e KeywordEntry
		if err := rows.Scan(&e.Keyword, &e.LastUsed, &e.TimesUsed, &e.CompaniesFound); err != nil {
			return nil, eris.Wrap(err, "ledger: scan keyword entry")
		}
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "ledger: iterate keywords")
}
