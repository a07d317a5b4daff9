// Package exporter renders composed views into the downloadable report
// formats: a two-sheet xlsx workbook and the paginated document model the
// PDF collaborator consumes.
package exporter

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dcezar286-art/telecon-ocorrencias/internal/parser"
	"github.com/dcezar286-art/telecon-ocorrencias/internal/view"
)

// Report workbook sheet names.
const (
	SheetServices = "SERVICOS_FILTRADOS"
	SheetReport   = "RELATORIO_TECNICOS"
)

// XlsxFilename download name for a day's report, keyed by the trimmed raw
// sheet name ("relatorio_29042025.xlsx").
func XlsxFilename(rawDay string) string {
	return fmt.Sprintf("relatorio_%s.xlsx", strings.TrimSpace(rawDay))
}

// BuildWorkbook renders the filtered rows and the technician summaries into
// the two-sheet report workbook. The caller owns and closes the file.
func BuildWorkbook(v view.View, rawDay string) (*excelize.File, error) {
	day := parser.FormatDayLabel(rawDay)

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetServices); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename services sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetReport); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create report sheet: %w", err)
	}

	servicesHeader := []interface{}{
		"Dia", "Periodo", "Tecnico", "Motivo", "Cliente", "Endereco", "Telefone", "Status", "Ocorrencia",
	}
	if err := f.SetSheetRow(SheetServices, "A1", &servicesHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write services header: %w", err)
	}
	for i, r := range v.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		row := []interface{}{
			day, r.Period, r.Technician, r.Motive, r.ClientName,
			r.Address, r.Phone, r.Status.Label(), r.OccText,
		}
		if err := f.SetSheetRow(SheetServices, cell, &row); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write services row %d: %w", i+2, err)
		}
	}

	reportHeader := []interface{}{
		"Dia", "Tecnico", "Total", "Concluidos", "NaoConcluidos", "Percentual",
	}
	if err := f.SetSheetRow(SheetReport, "A1", &reportHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write report header: %w", err)
	}
	for i, sum := range v.Report {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		row := []interface{}{
			day, sum.Technician, sum.Total, sum.Done, sum.Pending,
			fmt.Sprintf("%d%%", sum.Percent),
		}
		if err := f.SetSheetRow(SheetReport, cell, &row); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write report row %d: %w", i+2, err)
		}
	}

	index, err := f.GetSheetIndex(SheetServices)
	if err == nil && index >= 0 {
		f.SetActiveSheet(index)
	}
	return f, nil
}
