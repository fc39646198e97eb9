package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/shipcube/leads-cli/internal/model"
)

func sampleLeads() []model.Lead {
	return []model.Lead{
		{
			RunID:   "run-1",
			Domain:  "acme.com",
			Company: "Acme Goods",
			Status:  model.StatusPatternGuess,
			Person:  model.DecisionMaker{FirstName: "Jane", LastName: "Doe", Title: "CEO"},
			Email:   "jane@acme.com",
			Analysis: model.Analysis{
				QualificationGrade: 8,
				CompanyInfo:        "Soap brand.",
			},
			CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.xlsx")
	require.NoError(t, WriteXLSX(path, sampleLeads()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)

	sheet := f.Sheets[0]
	assert.Equal(t, "Leads", sheet.Name)
	require.Len(t, sheet.Rows, 2)

	header := sheet.Rows[0]
	require.Len(t, header.Cells, len(model.LeadColumns))
	assert.Equal(t, "First Name", header.Cells[0].String())

	row := sheet.Rows[1]
	assert.Equal(t, "Jane", row.Cells[0].String())
	assert.Equal(t, "jane@acme.com", row.Cells[3].String())
}

func TestWriteCSVRows(t *testing.T) {
	rows := WriteCSVRows(sampleLeads())
	require.Len(t, rows, 2)
	assert.Equal(t, model.LeadColumns, rows[0])
	require.Len(t, rows[1], len(model.LeadColumns))
	assert.Equal(t, "Jane", rows[1][0])
}

func TestWriteCSVRowsEmpty(t *testing.T) {
	rows := WriteCSVRows(nil)
	require.Len(t, rows, 1, "header only")
}
