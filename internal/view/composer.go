// Package view derives everything the dashboard renders from a session and
// the active filters. Compose is a pure function of its inputs; the only
// state it touches is the session's parse cache.
package view

import (
	"math"
	"sort"
	"strings"

	"github.com/dcezar286-art/telecon-ocorrencias/internal/model"
	"github.com/dcezar286-art/telecon-ocorrencias/internal/parser"
	"github.com/dcezar286-art/telecon-ocorrencias/internal/session"
)

// View the composed result for one filter state. KPI is nil when no day is
// selected.
type View struct {
	Rows        []model.ViewRow           `json:"rows"`
	Occurrences []model.OccurrenceNote    `json:"occs"`
	Report      []model.TechnicianSummary `json:"report"`
	KPI         *model.KPI                `json:"kpi"`
}

// Compose joins the selected day's services with their occurrence matches,
// applies the filter chain and derives summaries and KPIs.
func Compose(s *session.Session, f model.Filters) View {
	out := View{
		Rows:        []model.ViewRow{},
		Occurrences: []model.OccurrenceNote{},
		Report:      []model.TechnicianSummary{},
	}
	if f.Day == "" {
		return out
	}

	ps := s.ParsedSheet(f.Day)
	query := parser.Normalize(f.Query)

	for _, svc := range ps.Services {
		row := model.ViewRow{ServiceRecord: svc, Status: model.StatusDone}
		if note, ok := parser.MatchOccurrence(svc, ps.Index); ok {
			row.Status = model.StatusPending
			row.OccText = note.Text
		}

		// Technician is an exact string match; the other filters compare
		// normalized forms.
		if f.Technician != "" && svc.Technician != f.Technician {
			continue
		}
		if f.Motive != "" && parser.Normalize(svc.Motive) != parser.Normalize(f.Motive) {
			continue
		}
		if f.Period != "" && parser.Normalize(svc.Period) != parser.Normalize(f.Period) {
			continue
		}
		if query != "" && !strings.Contains(parser.Normalize(svc.ClientName+" "+svc.Address), query) {
			continue
		}

		out.Rows = append(out.Rows, row)
	}

	out.Report = summarize(out.Rows)
	kpi := computeKPI(out.Rows)
	out.KPI = &kpi
	out.Occurrences = visibleOccurrences(ps, out.Rows, s.Mode().OccurrenceList)
	return out
}

func summarize(rows []model.ViewRow) []model.TechnicianSummary {
	order := []string{}
	byTech := map[string]*model.TechnicianSummary{}

	for _, r := range rows {
		tech := r.Technician
		if tech == "" {
			tech = model.NoTechnicianLabel
		}
		sum, ok := byTech[tech]
		if !ok {
			sum = &model.TechnicianSummary{Technician: tech}
			byTech[tech] = sum
			order = append(order, tech)
		}
		sum.Total++
		if r.Status == model.StatusDone {
			sum.Done++
		} else {
			sum.Pending++
		}
	}

	out := make([]model.TechnicianSummary, 0, len(order))
	for _, tech := range order {
		sum := *byTech[tech]
		sum.Percent = percent(sum.Done, sum.Total)
		out = append(out, sum)
	}

	// Descending by total; stable, so ties keep first-appearance order.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}

func computeKPI(rows []model.ViewRow) model.KPI {
	done := 0
	for _, r := range rows {
		if r.Status == model.StatusDone {
			done++
		}
	}
	total := len(rows)
	return model.KPI{
		Total:   total,
		Done:    done,
		Pending: total - done,
		Percent: percent(done, total),
	}
}

func percent(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// visibleOccurrences applies the occurrence-list policy. Under the related
// policy a note stays visible when its key relates to any currently visible
// client; notes without a guessed key are always shown.
func visibleOccurrences(ps model.ParsedSheet, rows []model.ViewRow, policy model.OccurrenceListPolicy) []model.OccurrenceNote {
	if policy == model.OccurrenceListAll {
		return append([]model.OccurrenceNote{}, ps.Occurrences...)
	}

	visible := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		visible[parser.Normalize(r.ClientName)] = struct{}{}
	}

	out := []model.OccurrenceNote{}
	for _, note := range ps.Occurrences {
		if note.ClientKey == "" {
			out = append(out, note)
			continue
		}
		for key := range visible {
			if parser.KeysRelated(key, note.ClientKey) {
				out = append(out, note)
				break
			}
		}
	}
	return out
}

// DayFilters distinct selectable values of one day, for the filter controls.
type DayFilters struct {
	Technicians []string `json:"tecnicos"`
	Motives     []string `json:"motivos"`
	Periods     []string `json:"periodos"`
}

// FiltersForDay collects the distinct technician, motive and period values
// of a day's services.
func FiltersForDay(s *session.Session, day string) DayFilters {
	ps := s.ParsedSheet(day)

	technicians := make([]string, 0, len(ps.Services))
	motives := make([]string, 0, len(ps.Services))
	periods := make([]string, 0, len(ps.Services))
	for _, svc := range ps.Services {
		technicians = append(technicians, svc.Technician)
		motives = append(motives, svc.Motive)
		periods = append(periods, svc.Period)
	}

	return DayFilters{
		Technicians: uniqSorted(technicians),
		Motives:     uniqSorted(motives),
		Periods:     uniqSorted(periods),
	}
}

// uniqSorted dedupes trimmed non-empty values and sorts them accent- and
// case-insensitively, raw form breaking ties.
func uniqSorted(values []string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := parser.Normalize(out[i]), parser.Normalize(out[j])
		if a != b {
			return a < b
		}
		return out[i] < out[j]
	})
	return out
}
