package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipcube/leads-cli/internal/model"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "leads.db"))
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testLead(runID, domain, status string) *model.Lead {
	return &model.Lead{
		RunID:   runID,
		Domain:  domain,
		Company: "Acme Goods",
		Keyword: "organic soap",
		Status:  status,
		Person:  model.DecisionMaker{FirstName: "Jane", LastName: "Doe", Title: "CEO"},
		Email:   "jane@" + domain,
		Analysis: model.Analysis{
			QualificationGrade: 8,
			CompanyInfo:        "Soap brand.",
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestSaveAndListLeads(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveLead(ctx, testLead("run-1", "acme.com", model.StatusPatternGuess)))
	require.NoError(t, s.SaveLead(ctx, testLead("run-1", "widgets.io", model.StatusNoDecisionMaker)))
	require.NoError(t, s.SaveLead(ctx, testLead("run-2", "other.com", model.StatusPatternGuess)))

	all, err := s.ListLeads(ctx, LeadFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	run1, err := s.ListLeads(ctx, LeadFilter{RunID: "run-1"})
	require.NoError(t, err)
	require.Len(t, run1, 2)
	assert.Equal(t, "acme.com", run1[0].Domain)
	assert.Equal(t, "Jane", run1[0].Person.FirstName)
	assert.Equal(t, 8, run1[0].Analysis.QualificationGrade)

	byStatus, err := s.ListLeads(ctx, LeadFilter{Status: model.StatusNoDecisionMaker})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "widgets.io", byStatus[0].Domain)
}

func TestListLeadsLimitOffset(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i, domain := range []string{"a.com", "b.com", "c.com"} {
		lead := testLead("run-1", domain, model.StatusPatternGuess)
		lead.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, s.SaveLead(ctx, lead))
	}

	page, err := s.ListLeads(ctx, LeadFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "b.com", page[0].Domain)
	assert.Equal(t, "c.com", page[1].Domain)
}

func TestCountLeads(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveLead(ctx, testLead("run-1", "acme.com", model.StatusPatternGuess)))
	require.NoError(t, s.SaveLead(ctx, testLead("run-2", "other.com", model.StatusPatternGuess)))

	n, err := s.CountLeads(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.CountLeads(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestListLeadsEmpty(t *testing.T) {
	s := testStore(t)

	leads, err := s.ListLeads(context.Background(), LeadFilter{RunID: "missing"})
	require.NoError(t, err)
	assert.Empty(t, leads)
}
