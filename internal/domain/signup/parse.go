// Package signup turns the raw signup sheet CSV into validated events.
package signup

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/bottoscon/consched/internal/domain/model"
	"github.com/bottoscon/consched/internal/domain/timefmt"
	"github.com/bottoscon/consched/pkg/metrics"
)

// Parser extracts events from raw sheet CSV against a fixed column
// contract. Parsing is a pure transform: a row either yields an event
// or is dropped, and a dropped row never fails the whole pass.
type Parser struct {
	columns    Columns
	headerRows int
}

// Option applies a configuration option to the Parser.
type Option func(*Parser)

// WithColumns overrides the positional column contract.
func WithColumns(c Columns) Option {
	return func(p *Parser) {
		if c.MinWidth > 0 {
			p.columns = c
		}
	}
}

// WithHeaderRows sets how many leading instruction rows to skip.
func WithHeaderRows(n int) Option {
	return func(p *Parser) {
		if n >= 0 {
			p.headerRows = n
		}
	}
}

// NewParser constructs a Parser with the published sheet defaults.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		columns:    DefaultColumns(),
		headerRows: 2,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse splits raw CSV text into rows, skips the configured header
// rows, and keeps every row that survives validation, preserving
// source order. It never fails: a sheet full of junk simply yields
// zero events.
func (p *Parser) Parse(raw string) []*model.Event {
	reader := csv.NewReader(strings.NewReader(raw))
	reader.FieldsPerRecord = -1 // rows vary in width
	reader.LazyQuotes = true

	events := make([]*model.Event, 0)
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			// Malformed CSV line; a row-level defect never escalates.
			metrics.RecordRowExcluded("malformed")
			continue
		}
		if rowNum <= p.headerRows {
			continue
		}
		if ev, ok := p.extract(row); ok {
			events = append(events, ev)
		}
	}
	return events
}

// extract applies the exclusion rules in order and maps the surviving
// row onto an Event. Only missing width, id, or name exclude a row;
// every other defect is tolerated and mapped to a default.
func (p *Parser) extract(row []string) (*model.Event, bool) {
	if len(row) < p.columns.MinWidth {
		metrics.RecordRowExcluded("short_row")
		return nil, false
	}
	id := strings.TrimSpace(row[p.columns.ID])
	if id == "" {
		metrics.RecordRowExcluded("missing_id")
		return nil, false
	}
	name := strings.TrimSpace(row[p.columns.Name])
	if name == "" {
		metrics.RecordRowExcluded("missing_name")
		return nil, false
	}

	ev := &model.Event{
		ID:       id,
		Name:     name,
		Status:   p.cell(row, p.columns.Status),
		StartDay: p.cell(row, p.columns.StartDay),
		StartAt:  canonicalOrDefault(p.cell(row, p.columns.StartTime)),
		EndDay:   p.cell(row, p.columns.EndDay),
		EndAt:    canonicalOrDefault(p.cell(row, p.columns.EndTime)),
		Duration: p.cell(row, p.columns.Duration),
		Location: p.cell(row, p.columns.Location),
		Players:  make([]string, 0),
	}

	end := p.columns.PlayerTo
	if end > len(row) {
		end = len(row)
	}
	for i := p.columns.PlayerFrom; i < end; i++ {
		if player, ok := CleanPlayerName(row[i]); ok {
			ev.Players = append(ev.Players, player)
		}
	}

	return ev, true
}

// cell returns the trimmed value at index i, or "" when the row is too
// narrow to hold it.
func (p *Parser) cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func canonicalOrDefault(s string) string {
	canonical, err := timefmt.Canonicalize(s)
	if err != nil {
		return timefmt.Default
	}
	return canonical
}
