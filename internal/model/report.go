package model

// ServiceStatus result of reconciling a service against the day's occurrence
// notes. A service counts as done exactly when no outstanding note references
// its client.
type ServiceStatus string

const (
	StatusDone    ServiceStatus = "concluido"
	StatusPending ServiceStatus = "nao_concluido"
)

// Label pt-BR display text used in exports.
func (s ServiceStatus) Label() string {
	if s == StatusDone {
		return "Concluído"
	}
	return "Não concluído"
}

// NoTechnicianLabel summary bucket for service rows without a technician.
const NoTechnicianLabel = "SEM TÉCNICO"

// ServiceRecord one technician visit parsed from the tabular part of a day
// sheet. All fields are raw trimmed cell values; empty when the cell or the
// whole column was absent. JSON tags keep the field names the front end has
// always used.
type ServiceRecord struct {
	Sheet         string `json:"sheet"`
	Period        string `json:"periodo"`
	Confirmations string `json:"confirmacoes"`
	Motive        string `json:"motivo"`
	Technician    string `json:"tecnico"`
	ClientName    string `json:"nome"`
	Address       string `json:"endereco"`
	Phone         string `json:"telefone"`
	CPF           string `json:"cpf"`
	RG            string `json:"rg"`
	BirthDate     string `json:"dtnasc"`
	Plan          string `json:"plano"`
	DueDate       string `json:"vencimento"`
	Fee           string `json:"taxa"`
	Payment       string `json:"pagto"`
	BillingSlip   string `json:"boleto"`
	Credentials   string `json:"login"`
	Attendant     string `json:"atendente"`
	Observation   string `json:"obs"`
}

// OccurrenceNote one free-text incident row ("OCORRÊNCIAS DO DIA : ...").
type OccurrenceNote struct {
	Sheet       string `json:"sheet"`
	Raw         string `json:"raw"`
	Text        string `json:"text"`
	ClientGuess string `json:"clientGuess"`
	ClientKey   string `json:"clientKey"`
}

// OccurrenceIndex maps normalized client keys to the first note seen with
// each key. Insertion order is preserved because the containment fallback of
// the matcher resolves ties by it.
type OccurrenceIndex struct {
	keys  []string
	notes map[string]OccurrenceNote
}

// NewOccurrenceIndex creates an empty index.
func NewOccurrenceIndex() *OccurrenceIndex {
	return &OccurrenceIndex{notes: make(map[string]OccurrenceNote)}
}

// Add indexes a note under key unless the key is already taken.
func (ix *OccurrenceIndex) Add(key string, note OccurrenceNote) {
	if _, ok := ix.notes[key]; ok {
		return
	}
	ix.keys = append(ix.keys, key)
	ix.notes[key] = note
}

// Get looks a key up exactly.
func (ix *OccurrenceIndex) Get(key string) (OccurrenceNote, bool) {
	note, ok := ix.notes[key]
	return note, ok
}

// Keys returns the indexed keys in insertion order.
func (ix *OccurrenceIndex) Keys() []string {
	return ix.keys
}

// Len number of indexed keys.
func (ix *OccurrenceIndex) Len() int {
	return len(ix.keys)
}

// ParsedSheet everything extracted from one day sheet. Services and
// Occurrences keep source order; duplicate occurrence keys stay in
// Occurrences but only the first one is indexed. Immutable once built.
type ParsedSheet struct {
	Services    []ServiceRecord
	Occurrences []OccurrenceNote
	Index       *OccurrenceIndex
}

// Filters active selection state. Empty fields are no-ops; Day empty means
// nothing is selected at all.
type Filters struct {
	Day        string
	Technician string
	Motive     string
	Period     string
	Query      string
}

// ViewRow a service joined with its reconciliation outcome. Transient,
// recomputed on every filter change.
type ViewRow struct {
	ServiceRecord
	Status  ServiceStatus `json:"status"`
	OccText string        `json:"occText"`
}

// TechnicianSummary aggregate over the currently filtered rows.
type TechnicianSummary struct {
	Technician string `json:"tecnico"`
	Total      int    `json:"total"`
	Done       int    `json:"concluidos"`
	Pending    int    `json:"nao_concluidos"`
	Percent    int    `json:"perc"`
}

// KPI global aggregates over the currently filtered rows.
type KPI struct {
	Total   int `json:"total"`
	Done    int `json:"concluidos"`
	Pending int `json:"nao"`
	Percent int `json:"perc"`
}

// Option one labeled select entry. Replaces the original front end's
// string-or-object select items with a single explicit shape.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
