// Package session owns the lifetime of one loaded workbook: the excelize
// handle, the day-sheet listing and the per-sheet parse cache. It replaces
// the page-global workbook state of the original tool; the host creates one
// session per upload and discards it wholesale on the next load.
package session

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/dcezar286-art/telecon-ocorrencias/internal/model"
	"github.com/dcezar286-art/telecon-ocorrencias/internal/parser"
)

// Session one loaded workbook plus its parse cache.
type Session struct {
	id   string
	mode model.ExtractionMode

	mu    sync.Mutex
	file  *excelize.File
	cache map[string]model.ParsedSheet
}

// New loads a workbook from raw file bytes. Unreadable bytes fail hard
// here; the extraction engine below never sees a malformed workbook.
func New(content []byte, mode model.ExtractionMode) (*Session, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Session{
		id:    uuid.New().String(),
		mode:  mode,
		file:  f,
		cache: make(map[string]model.ParsedSheet),
	}, nil
}

// ID session identifier handed to the client.
func (s *Session) ID() string {
	return s.id
}

// Mode the extraction mode this session was created with.
func (s *Session) Mode() model.ExtractionMode {
	return s.mode
}

// Workbook the underlying file (read-only use).
func (s *Session) Workbook() *excelize.File {
	return s.file
}

// Days lists the workbook's day sheets as labeled options, sorted ascending
// by the trimmed 8-digit name. An empty result is the "no day sheets"
// condition the host surfaces as a hint.
func (s *Session) Days() []model.Option {
	days := []string{}
	for _, name := range s.file.GetSheetList() {
		if parser.IsDaySheet(name) {
			days = append(days, strings.TrimSpace(name))
		}
	}
	sort.Strings(days)

	opts := make([]model.Option, 0, len(days))
	for _, d := range days {
		opts = append(opts, model.Option{Value: d, Label: parser.FormatDayLabel(d)})
	}
	return opts
}

// ParsedSheet returns the memoized parse for one day, building it on first
// use. The day is the trimmed sheet name; the raw name may carry
// surrounding whitespace in the workbook. Unknown or headerless sheets
// yield an empty bundle, never an error.
func (s *Session) ParsedSheet(day string) model.ParsedSheet {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ps, ok := s.cache[day]; ok {
		return ps
	}

	ps := s.parse(day)
	s.cache[day] = ps
	return ps
}

func (s *Session) parse(day string) model.ParsedSheet {
	name, ok := s.sheetByTrimmedName(day)
	if !ok {
		return parser.ExtractSheet(day, nil, -1, s.mode)
	}
	grid, err := parser.SheetMatrix(s.file, name)
	if err != nil {
		grid = nil
	}
	return parser.ExtractSheet(day, grid, parser.FindHeaderRow(grid), s.mode)
}

func (s *Session) sheetByTrimmedName(day string) (string, bool) {
	for _, name := range s.file.GetSheetList() {
		if strings.TrimSpace(name) == day {
			return name, true
		}
	}
	return "", false
}

// Close releases the workbook handle.
func (s *Session) Close() error {
	return s.file.Close()
}
