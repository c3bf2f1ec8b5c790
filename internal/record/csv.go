package record

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseCSV reads records from the legacy CSV format
// (username,content,date,printed). Consecutive rows with the same
// author are treated as a primary/translation pair: the second row's
// content becomes the body of the first.
func ParseCSV(r io.Reader) ([]*Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("Couldn't read CSV header:\n%w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"username", "content", "date"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("CSV is missing required column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var rows []*Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("Couldn't read CSV row:\n%w", err)
		}
		if field(row, "content") == "" {
			continue
		}
		rows = append(rows, &Record{
			Author:  field(row, "username"),
			Title:   field(row, "content"),
			Date:    field(row, "date"),
			Printed: strings.EqualFold(field(row, "printed"), "true"),
		})
	}

	// Pair consecutive rows from the same author: primary first,
	// translation second.
	var records []*Record
	for i := 0; i < len(rows); i++ {
		rec := rows[i]
		if i+1 < len(rows) && rows[i+1].Author == rec.Author {
			rec.Body = rows[i+1].Title
			i++
		}
		records = append(records, rec)
	}

	return records, nil
}

// ImportCSV loads a CSV file into the repository, skipping records
// that are already stored. Returns the number of records inserted.
func (r *Repository) ImportCSV(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("Couldn't open CSV file:\n%w", err)
	}
	defer f.Close()

	records, err := ParseCSV(f)
	if err != nil {
		return 0, err
	}

	// Existence checks run outside the transaction: the pool holds a
	// single connection and the open transaction would starve them.
	var fresh []*Record
	for _, rec := range records {
		exists, err := r.Exists(rec.Author, rec.Date, rec.Title)
		if err != nil {
			return 0, err
		}
		if !exists {
			fresh = append(fresh, rec)
		}
	}

	err = r.Transact(func(tx *sql.Tx) error {
		for _, rec := range fresh {
			if err := r.Insert(tx, rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(fresh), nil
}
