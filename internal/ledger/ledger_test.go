package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestMarkProcessedIdempotent(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()

	processed, err := l.IsProcessed(ctx, "acme.com")
	require.NoError(t, err)
	assert.False(t, processed)

	require.NoError(t, l.MarkProcessed(ctx, "acme.com", "Acme Goods"))
	require.NoError(t, l.MarkProcessed(ctx, "acme.com", "Different Name"))

	processed, err = l.IsProcessed(ctx, "acme.com")
	require.NoError(t, err)
	assert.True(t, processed)

	entries, err := l.Domains(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Acme Goods", entries[0].CompanyName, "re-marking keeps the original company name")
	assert.False(t, entries[0].LastSeen.Before(entries[0].FirstSeen))
}

func TestFilterFresh(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()

	require.NoError(t, l.MarkKeywordUsed(ctx, "stale", 5))
	require.NoError(t, l.MarkKeywordUsed(ctx, "stale", 2))
	require.NoError(t, l.MarkKeywordUsed(ctx, "stale", 0))
	require.NoError(t, l.MarkKeywordUsed(ctx, "once", 3))

	fresh, err := l.FilterFresh(ctx, []string{"stale", "once", "new"}, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"once", "new"}, fresh)
}

func TestFilterFreshAllExhaustedReturnsOriginal(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()

	require.NoError(t, l.MarkKeywordUsed(ctx, "only", 1))

	fresh, err := l.FilterFresh(ctx, []string{"only"}, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, fresh, "exhausted input falls back to itself")
}

func TestMarkKeywordUsedAccumulates(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()

	require.NoError(t, l.MarkKeywordUsed(ctx, "organic soap", 4))
	require.NoError(t, l.MarkKeywordUsed(ctx, "organic soap", 6))

	entries, err := l.Keywords(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].TimesUsed)
	assert.Equal(t, 10, entries[0].CompaniesFound)
}
