package exporter

import (
	"fmt"
	"strings"

	"github.com/dcezar286-art/telecon-ocorrencias/internal/parser"
	"github.com/dcezar286-art/telecon-ocorrencias/internal/view"
)

// maxDocumentRows the services table of the document is cut at this many
// filtered rows.
const maxDocumentRows = 180

// documentRowsPerPage how many service rows fit one A4 page of the rendered
// document.
const documentRowsPerPage = 36

// Table a headed table of string cells.
type Table struct {
	Head []string   `json:"head"`
	Body [][]string `json:"body"`
}

// DocumentPage one page of the services table with its footer label.
type DocumentPage struct {
	Number int        `json:"number"`
	Footer string     `json:"footer"`
	Rows   [][]string `json:"rows"`
}

// Document the paginated report model for the document collaborator. The
// server never rasterizes a PDF itself; the model is served as JSON for a
// client-side renderer, and DocumentRenderer is the seam for a native one.
type Document struct {
	Title     string         `json:"title"`
	Subtitle  string         `json:"subtitle"`
	KPILine   string         `json:"kpiLine"`
	Summary   Table          `json:"summary"`
	Services  Table          `json:"services"`
	Pages     []DocumentPage `json:"pages"`
	Truncated bool           `json:"truncated"`
	Filename  string         `json:"filename"`
}

// DocumentRenderer turns a document model into bytes in a concrete format.
type DocumentRenderer interface {
	Render(doc Document) ([]byte, error)
}

// DocumentFilename download name for a day's document report.
func DocumentFilename(rawDay string) string {
	return fmt.Sprintf("relatorio_%s.pdf", strings.TrimSpace(rawDay))
}

// BuildDocument lays the composed view out as a paginated document: title
// block, KPI line, summary-by-technician table and the services table capped
// at maxDocumentRows rows. The caller guards against a nil KPI (no day
// selected).
func BuildDocument(v view.View, rawDay string) Document {
	day := parser.FormatDayLabel(rawDay)

	doc := Document{
		Title:    "Telecom Relatórios",
		Subtitle: fmt.Sprintf("Relatório do dia: %s", day),
		Filename: DocumentFilename(rawDay),
	}
	if v.KPI != nil {
		doc.KPILine = fmt.Sprintf(
			"Total: %d   Concluídos: %d   Não concluídos: %d   %% Conclusão: %d%%",
			v.KPI.Total, v.KPI.Done, v.KPI.Pending, v.KPI.Percent,
		)
	}

	doc.Summary = Table{
		Head: []string{"Técnico", "Total", "Concluídos", "Não concluídos", "%"},
		Body: make([][]string, 0, len(v.Report)),
	}
	for _, sum := range v.Report {
		doc.Summary.Body = append(doc.Summary.Body, []string{
			sum.Technician,
			fmt.Sprintf("%d", sum.Total),
			fmt.Sprintf("%d", sum.Done),
			fmt.Sprintf("%d", sum.Pending),
			fmt.Sprintf("%d%%", sum.Percent),
		})
	}

	rows := v.Rows
	if len(rows) > maxDocumentRows {
		rows = rows[:maxDocumentRows]
		doc.Truncated = true
	}
	doc.Services = Table{
		Head: []string{"Período", "Técnico", "Motivo", "Cliente", "Status"},
		Body: make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		doc.Services.Body = append(doc.Services.Body, []string{
			r.Period, r.Technician, r.Motive, r.ClientName, r.Status.Label(),
		})
	}

	doc.Pages = paginate(doc.Services.Body)
	return doc
}

func paginate(body [][]string) []DocumentPage {
	pages := []DocumentPage{}
	for start := 0; start < len(body) || start == 0; start += documentRowsPerPage {
		end := start + documentRowsPerPage
		if end > len(body) {
			end = len(body)
		}
		number := len(pages) + 1
		pages = append(pages, DocumentPage{
			Number: number,
			Footer: fmt.Sprintf("Página %d", number),
			Rows:   body[start:end],
		})
		if end == len(body) {
			break
		}
	}
	return pages
}
