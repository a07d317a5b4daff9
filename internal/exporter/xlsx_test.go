package exporter_test

import (
	"testing"

	"github.com/dcezar286-art/telecon-ocorrencias/internal/exporter"
	"github.com/dcezar286-art/telecon-ocorrencias/internal/model"
	"github.com/dcezar286-art/telecon-ocorrencias/internal/view"
)

func sampleView() view.View {
	kpi := model.KPI{Total: 2, Done: 1, Pending: 1, Percent: 50}
	return view.View{
		Rows: []model.ViewRow{
			{
				ServiceRecord: model.ServiceRecord{
					Period: "MANHÃ", Technician: "JOÃO", Motive: "Instalação",
					ClientName: "Maria Silva", Address: "Rua A, 10", Phone: "1111",
				},
				Status:  model.StatusPending,
				OccText: "Maria Silva pediu reagendamento",
			},
			{
				ServiceRecord: model.ServiceRecord{
					Period: "TARDE", Technician: "JOÃO", Motive: "Reparo",
					ClientName: "Carlos Souza", Address: "Rua B, 20", Phone: "2222",
				},
				Status: model.StatusDone,
			},
		},
		Report: []model.TechnicianSummary{
			{Technician: "JOÃO", Total: 2, Done: 1, Pending: 1, Percent: 50},
		},
		KPI: &kpi,
	}
}

func TestXlsxFilename(t *testing.T) {
	if got := exporter.XlsxFilename("15052025 "); got != "relatorio_15052025.xlsx" {
		t.Fatalf("filename=%q", got)
	}
}

func TestBuildWorkbook(t *testing.T) {
	f, err := exporter.BuildWorkbook(sampleView(), "29042025")
	if err != nil {
		t.Fatalf("BuildWorkbook failed: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != exporter.SheetServices || sheets[1] != exporter.SheetReport {
		t.Fatalf("sheets=%v", sheets)
	}

	cell := func(sheet, ref string) string {
		v, err := f.GetCellValue(sheet, ref)
		if err != nil {
			t.Fatalf("GetCellValue(%s!%s) failed: %v", sheet, ref, err)
		}
		return v
	}

	if cell(exporter.SheetServices, "A1") != "Dia" || cell(exporter.SheetServices, "I1") != "Ocorrencia" {
		t.Fatal("services header mismatch")
	}
	if cell(exporter.SheetServices, "A2") != "29/04/2025" {
		t.Fatalf("day cell=%q", cell(exporter.SheetServices, "A2"))
	}
	if cell(exporter.SheetServices, "E2") != "Maria Silva" {
		t.Fatalf("client cell=%q", cell(exporter.SheetServices, "E2"))
	}
	if cell(exporter.SheetServices, "H2") != "Não concluído" {
		t.Fatalf("status cell=%q", cell(exporter.SheetServices, "H2"))
	}
	if cell(exporter.SheetServices, "H3") != "Concluído" {
		t.Fatalf("status cell=%q", cell(exporter.SheetServices, "H3"))
	}
	if cell(exporter.SheetServices, "I3") != "" {
		t.Fatalf("done row must carry no occurrence text, got %q", cell(exporter.SheetServices, "I3"))
	}

	if cell(exporter.SheetReport, "B2") != "JOÃO" {
		t.Fatalf("technician cell=%q", cell(exporter.SheetReport, "B2"))
	}
	if cell(exporter.SheetReport, "C2") != "2" || cell(exporter.SheetReport, "F2") != "50%" {
		t.Fatalf("report row: total=%q percent=%q",
			cell(exporter.SheetReport, "C2"), cell(exporter.SheetReport, "F2"))
	}
}
