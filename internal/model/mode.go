package model

import "fmt"

// OccurrenceRowPolicy what the service pass does when it reaches a row that
// starts with the occurrence marker.
type OccurrenceRowPolicy string

const (
	// OccurrenceRowStop ends the service pass at the marker row.
	OccurrenceRowStop OccurrenceRowPolicy = "stop"
	// OccurrenceRowSkip skips the marker row and keeps scanning.
	OccurrenceRowSkip OccurrenceRowPolicy = "skip"
)

// PromotionPolicy which fields a surviving row must carry to become a
// service record.
type PromotionPolicy string

const (
	PromoteClientOrTechnician  PromotionPolicy = "client-or-technician"
	PromoteClientOnly          PromotionPolicy = "client-only"
	PromoteClientAndTechnician PromotionPolicy = "client-and-technician"
)

// OccurrenceListPolicy which notes the composed view lists.
type OccurrenceListPolicy string

const (
	// OccurrenceListRelated keeps only notes whose key relates to a visible
	// client; notes without a guessed key always stay visible.
	OccurrenceListRelated OccurrenceListPolicy = "related"
	// OccurrenceListAll lists the whole day's notes regardless of filters.
	OccurrenceListAll OccurrenceListPolicy = "all"
)

// ExtractionMode the three behavioural axes the spreadsheet variants in the
// field disagree on. The defaults reproduce the behaviour of the sheets in
// production.
type ExtractionMode struct {
	OccurrenceRow  OccurrenceRowPolicy
	Promotion      PromotionPolicy
	OccurrenceList OccurrenceListPolicy
}

// DefaultMode stop at the marker row, promote rows carrying a client or a
// technician, restrict the occurrence list to visible clients.
func DefaultMode() ExtractionMode {
	return ExtractionMode{
		OccurrenceRow:  OccurrenceRowStop,
		Promotion:      PromoteClientOrTechnician,
		OccurrenceList: OccurrenceListRelated,
	}
}

// ParseMode builds an ExtractionMode from configuration strings. Empty
// strings fall back to the default for that axis; unknown values fail.
func ParseMode(occurrenceRow, promotion, occurrenceList string) (ExtractionMode, error) {
	mode := DefaultMode()

	switch OccurrenceRowPolicy(occurrenceRow) {
	case "":
	case OccurrenceRowStop, OccurrenceRowSkip:
		mode.OccurrenceRow = OccurrenceRowPolicy(occurrenceRow)
	default:
		return mode, fmt.Errorf("unknown occurrence_row policy %q", occurrenceRow)
	}

	switch PromotionPolicy(promotion) {
	case "":
	case PromoteClientOrTechnician, PromoteClientOnly, PromoteClientAndTechnician:
		mode.Promotion = PromotionPolicy(promotion)
	default:
		return mode, fmt.Errorf("unknown promotion policy %q", promotion)
	}

	switch OccurrenceListPolicy(occurrenceList) {
	case "":
	case OccurrenceListRelated, OccurrenceListAll:
		mode.OccurrenceList = OccurrenceListPolicy(occurrenceList)
	default:
		return mode, fmt.Errorf("unknown occurrence_list policy %q", occurrenceList)
	}

	return mode, nil
}
