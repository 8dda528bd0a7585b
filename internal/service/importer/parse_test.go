package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasicRow(t *testing.T) {
	in := "Kunde,Datum,Betrag,Notiz\n" +
		`Jane Doe,2024-01-05,"1,50",Lesson1` + "\n"

	rows, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Jane Doe", row.FullName)
	assert.Equal(t, "2024-01-05", row.Date)
	require.NotNil(t, row.Amount)
	assert.Equal(t, 1.50, *row.Amount)
	require.NotNil(t, row.Note)
	assert.Equal(t, "Lesson1", *row.Note)
	assert.Nil(t, row.Total)
}

func TestParseUnparseableAmountKeepsRow(t *testing.T) {
	in := "Kunde,Datum,Betrag,Notiz\n" +
		"Jane Doe,2024-01-05,abc,\n" +
		"John Roe,2024-01-06,20,\n"

	rows, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// name survives so the customer still gets created; no entry though
	assert.Equal(t, "Jane Doe", rows[0].FullName)
	assert.Nil(t, rows[0].Amount)

	require.NotNil(t, rows[1].Amount)
	assert.Equal(t, 20.0, *rows[1].Amount)
}

func TestParseSkipsNamelessRows(t *testing.T) {
	in := "Kunde,Datum,Betrag,Notiz\n" +
		",2024-01-05,10,\n" +
		"Jane Doe,2024-01-06,20,\n"

	rows, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Jane Doe", rows[0].FullName)
}

func TestParseSemicolonDelimiter(t *testing.T) {
	in := "Kunde;Datum;Betrag;Notiz\n" +
		"Jane Doe;2024-01-05;1,50;Lesson1\n"

	rows, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Amount)
	assert.Equal(t, 1.50, *rows[0].Amount)
}

func TestParseGermanDates(t *testing.T) {
	in := "Kunde,Datum,Betrag,Notiz\n" +
		"Jane Doe,05.01.2024,10,\n" +
		"John Roe,kein Datum,10,\n"

	rows, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01-05", rows[0].Date)
	assert.Equal(t, "", rows[1].Date)
}

func TestParseGrandTotalColumn(t *testing.T) {
	in := "Kunde,Datum,Betrag,Notiz,Gesamtsumme\n" +
		`Jane Doe,2024-01-05,"50,00",,120` + "\n"

	rows, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.NotNil(t, rows[0].Amount)
	assert.Equal(t, 50.0, *rows[0].Amount)
	require.NotNil(t, rows[0].Total)
	assert.Equal(t, 120.0, *rows[0].Total)
}

func TestParseMissingHeaderColumn(t *testing.T) {
	_, err := Parse(strings.NewReader("Datum,Betrag\n2024-01-05,10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kunde")
}

func TestDedupeNote(t *testing.T) {
	assert.Equal(t, "Theorie; Fahrt", dedupeNote("Theorie; Theorie|Fahrt"))
	assert.Equal(t, "Lesson1", dedupeNote("Lesson1"))
	assert.Equal(t, "", dedupeNote("  ;  |  "))
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2024-01-05", normalizeDate("2024-01-05"))
	assert.Equal(t, "2024-01-05", normalizeDate("05.01.2024"))
	assert.Equal(t, "", normalizeDate("05/01/2024"))
	assert.Equal(t, "", normalizeDate(""))
}

func TestParseAmount(t *testing.T) {
	require.NotNil(t, parseAmount("1,50"))
	assert.Equal(t, 1.5, *parseAmount("1,50"))
	assert.Equal(t, -3.0, *parseAmount("-3"))
	assert.Nil(t, parseAmount("abc"))
	assert.Nil(t, parseAmount(""))
}
