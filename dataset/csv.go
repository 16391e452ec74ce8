package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bechdel/film"
)

// Column names of the FiveThirtyEight movies.csv export.
const (
	colYear                   = "year"
	colIMDB                   = "imdb"
	colTitle                  = "title"
	colTest                   = "test"
	colCleanTest              = "clean_test"
	colBinary                 = "binary"
	colBudget                 = "budget"
	colDomesticGross          = "domgross"
	colInternationalGross     = "intgross"
	colCode                   = "code"
	colBudget2013             = "budget_2013$"
	colDomesticGross2013      = "domgross_2013$"
	colInternationalGross2013 = "intgross_2013$"
	colPeriodCode             = "period code"
	colDecadeCode             = "decade code"
)

var requiredColumns = []string{colYear, colTitle, colBinary}

type csvRow struct {
	columns map[string]int
	record  []string
}

func (r csvRow) get(name string) string {
	i, ok := r.columns[name]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func decodeCSV(r io.Reader) ([]film.Film, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	columns, err := parseFilmCSVHeader(reader)
	if err != nil {
		return nil, err
	}

	films := []film.Film{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		f, err := parseFilmRecord(csvRow{columns: columns, record: record})
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		films = append(films, f)
	}

	return films, nil
}

func parseFilmCSVHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing required column %q in csv header", name)
		}
	}

	return columns, nil
}

func parseFilmRecord(row csvRow) (film.Film, error) {
	year, err := strconv.Atoi(row.get(colYear))
	if err != nil {
		return film.Film{}, fmt.Errorf("invalid year %q", row.get(colYear))
	}

	f := film.Film{
		Year:      year,
		IMDB:      row.get(colIMDB),
		Title:     row.get(colTitle),
		Test:      row.get(colTest),
		CleanTest: row.get(colCleanTest),
		Binary:    film.Outcome(row.get(colBinary)),
		Code:      row.get(colCode),
	}
	if err := f.Validate(); err != nil {
		return film.Film{}, err
	}
	f.Binary, _ = film.ParseOutcome(string(f.Binary))

	int64Fields := []struct {
		column string
		dst    **int64
	}{
		{colBudget, &f.Budget},
		{colDomesticGross, &f.DomesticGross},
		{colInternationalGross, &f.InternationalGross},
		{colBudget2013, &f.Budget2013},
		{colDomesticGross2013, &f.DomesticGross2013},
		{colInternationalGross2013, &f.InternationalGross2013},
	}
	for _, field := range int64Fields {
		v, err := optionalInt64(row.get(field.column))
		if err != nil {
			return film.Film{}, fmt.Errorf("invalid %s: %w", field.column, err)
		}
		*field.dst = v
	}

	intFields := []struct {
		column string
		dst    **int
	}{
		{colPeriodCode, &f.PeriodCode},
		{colDecadeCode, &f.DecadeCode},
	}
	for _, field := range intFields {
		v, err := optionalInt64(row.get(field.column))
		if err != nil {
			return film.Film{}, fmt.Errorf("invalid %s: %w", field.column, err)
		}
		if v != nil {
			n := int(*v)
			*field.dst = &n
		}
	}

	return f, nil
}

// optionalInt64 treats blanks and the spreadsheet "#N/A" marker as missing.
func optionalInt64(s string) (*int64, error) {
	if s == "" || strings.EqualFold(s, "#N/A") {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
