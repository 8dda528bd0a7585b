package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// Row is one parsed ledger line. Amount and Total are nil when the source
// field was absent or unparseable; such rows still carry the customer name,
// so the customer is created even when no entry can be.
type Row struct {
	FullName string
	Date     string // ISO YYYY-MM-DD, "" when missing/invalid
	Amount   *float64
	Note     *string
	Total    *float64
}

// column headers of the spreadsheet export
const (
	colName   = "kunde"
	colDate   = "datum"
	colAmount = "betrag"
	colNote   = "notiz"
	colTotal  = "gesamtsumme"
)

// Parse reads a semicolon- or comma-delimited ledger export with a header
// line. Rows without a customer name are dropped; all other per-field
// problems degrade to nil fields rather than failing the parse.
func Parse(r io.Reader) ([]Row, error) {
	br := bufio.NewReader(r)
	delim, err := sniffDelimiter(br)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(br)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty import file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols[colName]; !ok {
		return nil, fmt.Errorf("import header misses %q column", colName)
	}

	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		name := field(rec, colName)
		if name == "" {
			continue
		}

		row := Row{
			FullName: name,
			Date:     normalizeDate(field(rec, colDate)),
			Amount:   parseAmount(field(rec, colAmount)),
			Total:    parseAmount(field(rec, colTotal)),
		}
		if note := dedupeNote(field(rec, colNote)); note != "" {
			row.Note = &note
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// sniffDelimiter peeks at the header line and picks ';' when it outnumbers
// ',' there; exports arrive in both flavors.
func sniffDelimiter(br *bufio.Reader) (rune, error) {
	peek, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return 0, err
	}
	line := string(peek)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';', nil
	}
	return ',', nil
}

// normalizeDate accepts ISO (2024-01-05) and German (05.01.2024) dates and
// returns ISO, or "" when the value is missing or unparseable.
func normalizeDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range []string{"2006-01-02", "02.01.2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// parseAmount converts a decimal-comma money string to a float, nil when the
// field is not a number.
func parseAmount(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// dedupeNote collapses repeated note fragments ("Theorie; Theorie|Fahrt")
// into one occurrence each, joined by "; ". The spreadsheet export tends to
// duplicate fragments when rows were merged.
func dedupeNote(s string) string {
	if s == "" {
		return ""
	}
	seen := map[string]bool{}
	var out []string
	for _, frag := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '|' }) {
		frag = strings.TrimSpace(frag)
		if frag == "" || seen[frag] {
			continue
		}
		seen[frag] = true
		out = append(out, frag)
	}
	return strings.Join(out, "; ")
}
