package pipeline

import (
	"context"

	"github.com/shipcube/leads-cli/internal/model"
	"github.com/shipcube/leads-cli/pkg/notion"
)

// Mirror appends lead rows to an external spreadsheet-style sink.
// Mirror failures are logged by callers and never fail the pipeline.
type Mirror interface {
	AppendLead(ctx context.Context, lead *model.Lead) error
}

// NotionMirror mirrors leads into a Notion database whose properties
// follow the lead column schema.
type NotionMirror struct {
	client notion.Client
	dbID   string
}

// NewNotionMirror creates a NotionMirror for the given database.
func NewNotionMirror(client notion.Client, dbID string) *NotionMirror {
	return &NotionMirror{client: client, dbID: dbID}
}

func (m *NotionMirror) AppendLead(ctx context.Context, lead *model.Lead) error {
	// Company moves to the front so it becomes the page title.
	row := lead.Row()
	columns := []string{"Company"}
	values := []string{lead.Company}
	for i, col := range model.LeadColumns {
		if col == "Company" {
			continue
		}
		columns = append(columns, col)
		values = append(values, row[i])
	}
	return notion.AppendRow(ctx, m.client, m.dbID, columns, values)
}
