package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"

	"github.com/dcezar286-art/telecon-ocorrencias/internal/model"
)

// occurrenceMarker normalized prefix of rows holding free-text incident
// notes ("OCORRÊNCIAS DO DIA : ...").
const occurrenceMarker = "ocorrencias do dia"

// cutPhrases truncation points for the client-name guess, tried in this
// order. Each phrase is matched in its folded, edge-trimmed form (" pediu "
// searches for "pediu", " - " for "-"), so a note ending in the phrase or
// running it against punctuation still cuts. The first phrase found past
// position zero wins; the order is part of the contract and must not be
// re-sorted by length or position.
var cutPhrases = []string{" pediu ", "----", " - ", " reagend", " reagenda", " cliente ", " nao ", " não "}

// maxGuessWords guesses longer than this are cut to their first words.
const maxGuessWords = 7

// columnMap indexes of the canonical service columns in a header row.
// -1 means the column is absent and every read from it yields "".
type columnMap struct {
	period        int
	confirmations int
	motive        int
	technician    int
	client        int
	address       int
	phone         int
	cpf           int
	rg            int
	birthDate     int
	plan          int
	dueDate       int
	fee           int
	payment       int
	billingSlip   int
	credentials   int
	attendant     int
	observation   int
}

func mapColumns(header []string) columnMap {
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = Normalize(h)
	}
	col := func(name string) int {
		want := Normalize(name)
		for i, k := range keys {
			if k == want {
				return i
			}
		}
		return -1
	}
	return columnMap{
		period:        col("PERÍODO"),
		confirmations: col("CONFIRMAÇÕES"),
		motive:        col("MOTIVO"),
		technician:    col("TECNICO"),
		client:        col("NOME"),
		address:       col("ENDEREÇO"),
		phone:         col("TELEFONE"),
		cpf:           col("CPF"),
		rg:            col("RG"),
		birthDate:     col("DT.NASC"),
		plan:          col("PLANO"),
		dueDate:       col("VENCIMENTO"),
		fee:           col("TAXA R$"),
		payment:       col("PAGTO"),
		billingSlip:   col("BOLETO"),
		credentials:   col("LOGIN/SENHA"),
		attendant:     col("ATENDENTE"),
		observation:   col("OBSERVAÇÃO"),
	}
}

// ExtractSheet builds the parsed bundle for one day sheet. The service pass
// walks rows strictly after headerRow; the occurrence pass always covers the
// whole grid so notes placed above the header still count. headerRow -1
// (no header found) yields an empty bundle. Never fails on any grid.
func ExtractSheet(sheetName string, grid [][]string, headerRow int, mode model.ExtractionMode) model.ParsedSheet {
	parsed := model.ParsedSheet{
		Services:    []model.ServiceRecord{},
		Occurrences: []model.OccurrenceNote{},
		Index:       model.NewOccurrenceIndex(),
	}
	if headerRow < 0 || headerRow >= len(grid) {
		return parsed
	}

	cols := mapColumns(grid[headerRow])

	for r := headerRow + 1; r < len(grid); r++ {
		row := grid[r]

		first := SafeString(Cell(row, 0))
		if strings.HasPrefix(Normalize(first), occurrenceMarker) {
			if mode.OccurrenceRow == model.OccurrenceRowStop {
				break
			}
			continue
		}

		if rowIsEmpty(row) {
			continue
		}

		client := SafeString(Cell(row, cols.client))
		technician := SafeString(Cell(row, cols.technician))
		if !promote(mode.Promotion, client, technician) {
			continue
		}

		parsed.Services = append(parsed.Services, model.ServiceRecord{
			Sheet:         sheetName,
			Period:        SafeString(Cell(row, cols.period)),
			Confirmations: SafeString(Cell(row, cols.confirmations)),
			Motive:        SafeString(Cell(row, cols.motive)),
			Technician:    technician,
			ClientName:    client,
			Address:       SafeString(Cell(row, cols.address)),
			Phone:         SafeString(Cell(row, cols.phone)),
			CPF:           SafeString(Cell(row, cols.cpf)),
			RG:            SafeString(Cell(row, cols.rg)),
			BirthDate:     SafeString(Cell(row, cols.birthDate)),
			Plan:          SafeString(Cell(row, cols.plan)),
			DueDate:       SafeString(Cell(row, cols.dueDate)),
			Fee:           SafeString(Cell(row, cols.fee)),
			Payment:       SafeString(Cell(row, cols.payment)),
			BillingSlip:   SafeString(Cell(row, cols.billingSlip)),
			Credentials:   SafeString(Cell(row, cols.credentials)),
			Attendant:     SafeString(Cell(row, cols.attendant)),
			Observation:   SafeString(Cell(row, cols.observation)),
		})
	}

	for _, row := range grid {
		raw := SafeString(Cell(row, 0))
		if !strings.HasPrefix(Normalize(raw), occurrenceMarker) {
			continue
		}
		note, ok := buildOccurrence(sheetName, raw)
		if !ok {
			continue
		}
		parsed.Occurrences = append(parsed.Occurrences, note)
		parsed.Index.Add(note.ClientKey, note)
	}

	return parsed
}

func rowIsEmpty(row []string) bool {
	for _, cell := range row {
		if Normalize(cell) != "" {
			return false
		}
	}
	return true
}

func promote(policy model.PromotionPolicy, client, technician string) bool {
	switch policy {
	case model.PromoteClientOnly:
		return client != ""
	case model.PromoteClientAndTechnician:
		return client != "" && technician != ""
	default:
		return client != "" || technician != ""
	}
}

// buildOccurrence turns a raw marker row into a note. The note text is
// everything after the first colon (colon-joined when more follow); rows
// left empty after trimming are discarded.
func buildOccurrence(sheetName, raw string) (model.OccurrenceNote, bool) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 {
		return model.OccurrenceNote{}, false
	}
	text := strings.TrimSpace(strings.Join(parts[1:], ":"))
	if text == "" {
		return model.OccurrenceNote{}, false
	}

	guess := guessClient(text)
	return model.OccurrenceNote{
		Sheet:       sheetName,
		Raw:         raw,
		Text:        text,
		ClientGuess: guess,
		ClientKey:   Normalize(guess),
	}, true
}

// guessClient derives the client name from a note text: cut at the first
// cut-phrase matched (case-, diacritic- and edge-space-insensitively) past
// position zero, then cap the guess at maxGuessWords words. The guess keeps
// the raw casing of the note.
func guessClient(text string) string {
	raw := []rune(text)
	folded := foldRunes(raw)

	guess := text
	for _, phrase := range cutPhrases {
		needle := strings.TrimSpace(string(foldRunes([]rune(phrase))))
		pos := strings.Index(folded, needle)
		if pos <= 0 {
			continue
		}
		runePos := utf8.RuneCountInString(folded[:pos])
		guess = strings.TrimSpace(string(raw[:runePos]))
		break
	}

	words := strings.Fields(guess)
	if len(words) > maxGuessWords {
		guess = strings.Join(words[:maxGuessWords], " ")
	}
	return guess
}

// foldRunes lowercases and strips diacritics one rune at a time, preserving
// the rune count so indexes found on the folded text map back onto the raw
// runes.
func foldRunes(rs []rune) string {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = foldRune(r)
	}
	return string(out)
}

func foldRune(r rune) rune {
	if r < utf8.RuneSelf {
		return unicode.ToLower(r)
	}
	stripped, _, err := transform.String(stripMarks, string(r))
	if err != nil || stripped == "" {
		return unicode.ToLower(r)
	}
	first, _ := utf8.DecodeRuneInString(stripped)
	return unicode.ToLower(first)
}
