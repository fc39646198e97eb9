// Package export writes collected leads to operator-facing files.
package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/shipcube/leads-cli/internal/model"
)

// WriteXLSX writes leads to an XLSX workbook with one "Leads" sheet.
// The header row follows the lead column schema.
func WriteXLSX(path string, leads []model.Lead) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Leads")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range model.LeadColumns {
		header.AddCell().SetString(col)
	}

	for i := range leads {
		row := sheet.AddRow()
		for _, val := range leads[i].Row() {
			row.AddCell().SetString(val)
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save file")
	}
	return nil
}

// WriteCSVRows renders leads as string rows prefixed with the header,
// for sinks that consume raw tabular data.
func WriteCSVRows(leads []model.Lead) [][]string {
	rows := make([][]string, 0, len(leads)+1)
	rows = append(rows, model.LeadColumns)
	for i := range leads {
		rows = append(rows, leads[i].Row())
	}
	return rows
}
