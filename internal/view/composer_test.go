package view_test

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/dcezar286-art/telecon-ocorrencias/internal/model"
	"github.com/dcezar286-art/telecon-ocorrencias/internal/session"
	"github.com/dcezar286-art/telecon-ocorrencias/internal/view"
)

// dayWorkbook builds a two-day workbook. 29042025 holds seven services
// across two technicians plus one row without a technician, and four
// occurrence notes (one above the header); 30042025 holds two services and
// no occurrences.
func dayWorkbook(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "29042025"); err != nil {
		t.Fatalf("SetSheetName failed: %v", err)
	}

	rows := [][]interface{}{
		{"OCORRÊNCIAS DO DIA : Maria Silva pediu reagendamento"},
		{},
		{"PERÍODO", "CONFIRMAÇÕES", "MOTIVO", "TECNICO", "NOME", "ENDEREÇO", "TELEFONE"},
		{"MANHÃ", "OK", "Instalação", "JOÃO", "Maria Silva", "Rua A, 10", "1111"},
		{"TARDE", "OK", "Reparo", "JOÃO", "Carlos Souza", "Rua B, 20", "2222"},
		{"MANHÃ", "OK", "Instalação", "JOÃO", "Bruno Dias", "Rua C, 30", "3333"},
		{"TARDE", "OK", "Mudança", "ANA", "Pedro Lima", "Rua D, 40", "4444"},
		{"MANHÃ", "OK", "Instalação", "ANA", "Jose Santos", "Rua E, 50", "5555"},
		{"TARDE", "OK", "Reparo", "ANA", "Paula Costa", "Rua F, 60", "6666"},
		{"MANHÃ", "OK", "Reparo", "", "Rita Alves", "Rua G, 70", "7777"},
		{"OCORRÊNCIAS DO DIA : Pedro Lima - sem retorno"},
		{"OCORRÊNCIAS DO DIA : Rita Alves pediu novo horário"},
		{"OCORRÊNCIAS DO DIA : Jose Santos ---- ausente"},
	}
	for i, row := range rows {
		row := row
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName failed: %v", err)
		}
		if err := f.SetSheetRow("29042025", cell, &row); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}

	if _, err := f.NewSheet("30042025"); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	clean := [][]interface{}{
		{"PERÍODO", "TECNICO", "NOME"},
		{"MANHÃ", "JOÃO", "Laura Melo"},
		{"TARDE", "ANA", "Tiago Nunes"},
	}
	for i, row := range clean {
		row := row
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName failed: %v", err)
		}
		if err := f.SetSheetRow("30042025", cell, &row); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf.Bytes()
}

func newSession(t *testing.T, mode model.ExtractionMode) *session.Session {
	t.Helper()
	sess, err := session.New(dayWorkbook(t), mode)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { sess.Close() })
	return sess
}

func TestComposeNoDay(t *testing.T) {
	sess := newSession(t, model.DefaultMode())

	v := view.Compose(sess, model.Filters{})
	if len(v.Rows) != 0 || len(v.Occurrences) != 0 || len(v.Report) != 0 {
		t.Fatalf("empty day must compose an empty view: %+v", v)
	}
	if v.KPI != nil {
		t.Fatalf("KPI=%+v, want nil without a selected day", v.KPI)
	}
}

func TestComposeUnfiltered(t *testing.T) {
	sess := newSession(t, model.DefaultMode())

	v := view.Compose(sess, model.Filters{Day: "29042025"})
	if len(v.Rows) != 7 {
		t.Fatalf("rows=%d, want 7", len(v.Rows))
	}

	pending := map[string]bool{}
	for _, r := range v.Rows {
		if r.Status == model.StatusPending {
			pending[r.ClientName] = true
			if r.OccText == "" {
				t.Fatalf("pending row %q without occurrence text", r.ClientName)
			}
		}
	}
	for _, name := range []string{"Maria Silva", "Pedro Lima", "Jose Santos", "Rita Alves"} {
		if !pending[name] {
			t.Fatalf("%q should be pending (matched occurrence)", name)
		}
	}

	if v.KPI == nil {
		t.Fatal("KPI missing")
	}
	if v.KPI.Total != 7 || v.KPI.Done != 3 || v.KPI.Pending != 4 {
		t.Fatalf("kpi=%+v", v.KPI)
	}
	// 3/7 rounds to 43.
	if v.KPI.Percent != 43 {
		t.Fatalf("percent=%d, want 43", v.KPI.Percent)
	}
}

func TestComposeReport(t *testing.T) {
	sess := newSession(t, model.DefaultMode())

	v := view.Compose(sess, model.Filters{Day: "29042025"})
	if len(v.Report) != 3 {
		t.Fatalf("report=%d entries, want 3", len(v.Report))
	}

	// JOÃO and ANA tie on total; first appearance breaks the tie. The
	// technician-less row lands under the placeholder label.
	want := []model.TechnicianSummary{
		{Technician: "JOÃO", Total: 3, Done: 2, Pending: 1, Percent: 67},
		{Technician: "ANA", Total: 3, Done: 1, Pending: 2, Percent: 33},
		{Technician: model.NoTechnicianLabel, Total: 1, Done: 0, Pending: 1, Percent: 0},
	}
	for i, w := range want {
		if v.Report[i] != w {
			t.Fatalf("report[%d]=%+v, want %+v", i, v.Report[i], w)
		}
	}

	sumTotal := 0
	for _, r := range v.Report {
		sumTotal += r.Total
		if r.Done+r.Pending != r.Total {
			t.Fatalf("inconsistent summary: %+v", r)
		}
	}
	if sumTotal != len(v.Rows) {
		t.Fatalf("summary totals=%d, rows=%d", sumTotal, len(v.Rows))
	}
}

func TestComposeFilters(t *testing.T) {
	sess := newSession(t, model.DefaultMode())

	cases := []struct {
		name    string
		filters model.Filters
		want    int
	}{
		{"technician exact", model.Filters{Day: "29042025", Technician: "JOÃO"}, 3},
		{"motive accent-insensitive", model.Filters{Day: "29042025", Motive: "instalacao"}, 3},
		{"period accent-insensitive", model.Filters{Day: "29042025", Period: "manha"}, 4},
		{"query over name and address", model.Filters{Day: "29042025", Query: "rua a"}, 1},
		{"query no match", model.Filters{Day: "29042025", Query: "inexistente"}, 0},
		{"combined", model.Filters{Day: "29042025", Technician: "ANA", Period: "tarde"}, 2},
	}
	for _, tc := range cases {
		v := view.Compose(sess, tc.filters)
		if len(v.Rows) != tc.want {
			t.Fatalf("%s: rows=%d, want %d", tc.name, len(v.Rows), tc.want)
		}
	}

	// Technician comparison is exact, not normalized.
	v := view.Compose(sess, model.Filters{Day: "29042025", Technician: "joao"})
	if len(v.Rows) != 0 {
		t.Fatalf("lowercase technician must not match: rows=%d", len(v.Rows))
	}
}

func TestComposeKPITracksFilteredRows(t *testing.T) {
	sess := newSession(t, model.DefaultMode())

	v := view.Compose(sess, model.Filters{Day: "29042025", Technician: "JOÃO"})
	if v.KPI.Total != 3 || v.KPI.Done != 2 || v.KPI.Percent != 67 {
		t.Fatalf("kpi=%+v", v.KPI)
	}
}

func TestComposeOccurrenceVisibility(t *testing.T) {
	sess := newSession(t, model.DefaultMode())

	// Unfiltered: every note relates to a visible client.
	v := view.Compose(sess, model.Filters{Day: "29042025"})
	if len(v.Occurrences) != 4 {
		t.Fatalf("occurrences=%d, want 4", len(v.Occurrences))
	}

	// Filtered to JOÃO only Maria Silva's note stays related.
	v = view.Compose(sess, model.Filters{Day: "29042025", Technician: "JOÃO"})
	if len(v.Occurrences) != 1 {
		t.Fatalf("occurrences=%d, want 1", len(v.Occurrences))
	}
	if v.Occurrences[0].ClientGuess != "Maria Silva" {
		t.Fatalf("guess=%q", v.Occurrences[0].ClientGuess)
	}
}

func TestComposeOccurrenceListAll(t *testing.T) {
	mode := model.DefaultMode()
	mode.OccurrenceList = model.OccurrenceListAll
	sess := newSession(t, mode)

	v := view.Compose(sess, model.Filters{Day: "29042025", Technician: "JOÃO"})
	if len(v.Occurrences) != 4 {
		t.Fatalf("occurrences=%d, want all 4 under the all policy", len(v.Occurrences))
	}
}

func TestComposeCleanDay(t *testing.T) {
	sess := newSession(t, model.DefaultMode())

	v := view.Compose(sess, model.Filters{Day: "30042025"})
	if len(v.Rows) != 2 || len(v.Occurrences) != 0 {
		t.Fatalf("rows=%d occs=%d", len(v.Rows), len(v.Occurrences))
	}
	if v.KPI.Percent != 100 {
		t.Fatalf("percent=%d, want 100 with no occurrences", v.KPI.Percent)
	}
}

func TestFiltersForDay(t *testing.T) {
	sess := newSession(t, model.DefaultMode())

	f := view.FiltersForDay(sess, "29042025")

	wantTechs := []string{"ANA", "JOÃO"}
	if len(f.Technicians) != len(wantTechs) {
		t.Fatalf("technicians=%v", f.Technicians)
	}
	for i, w := range wantTechs {
		if f.Technicians[i] != w {
			t.Fatalf("technicians=%v, want %v", f.Technicians, wantTechs)
		}
	}

	// Sorted accent-insensitively: Instalação < Mudança < Reparo.
	wantMotives := []string{"Instalação", "Mudança", "Reparo"}
	for i, w := range wantMotives {
		if f.Motives[i] != w {
			t.Fatalf("motives=%v, want %v", f.Motives, wantMotives)
		}
	}

	wantPeriods := []string{"MANHÃ", "TARDE"}
	for i, w := range wantPeriods {
		if f.Periods[i] != w {
			t.Fatalf("periods=%v, want %v", f.Periods, wantPeriods)
		}
	}
}
