package parser

import (
	"github.com/dcezar286-art/telecon-ocorrencias/internal/model"
)

// MatchOccurrence resolves the occurrence note for a service, if one exists.
// Exact lookup of the normalized client name is the fast path and always
// wins; otherwise the first indexed key (insertion order) related to the
// name by symmetric containment is taken. Empty keys are skipped in the
// fallback. Containment can pick the wrong client when one name is a
// substring of another; that risk is accepted and no confidence score is
// reported.
func MatchOccurrence(service model.ServiceRecord, index *model.OccurrenceIndex) (model.OccurrenceNote, bool) {
	key := Normalize(service.ClientName)
	if note, ok := index.Get(key); ok {
		return note, true
	}

	for _, k := range index.Keys() {
		if k == "" {
			continue
		}
		if KeysRelated(key, k) {
			note, _ := index.Get(k)
			return note, true
		}
	}

	return model.OccurrenceNote{}, false
}
