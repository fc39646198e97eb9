// Package store persists completed lead records. All writes are appends;
// a lead row is never updated once saved.
package store

import (
	"context"

	"github.com/shipcube/leads-cli/internal/model"
)

// LeadFilter specifies criteria for listing leads.
type LeadFilter struct {
	RunID  string `json:"run_id,omitempty"`
	Status string `json:"status,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for lead records. Append must be
// safe to call from multiple workers.
type Store interface {
	SaveLead(ctx context.Context, lead *model.Lead) error
	ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, error)
	CountLeads(ctx context.Context, runID string) (int, error)

	Migrate(ctx context.Context) error
	Close() error
}
