package record

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

//go:embed schema.sql
var schema string

type Repository struct {
	Db *sql.DB
}

// Open opens (creating if needed) the record database at the given
// path and applies the schema.
func Open(path string) (*Repository, error) {
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("Couldn't open database:\n%w", err)
	}
	// One writer keeps sqlite happy and makes :memory: databases
	// behave: every caller sees the same connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("Couldn't initialise database:\n%w", err)
	}
	return &Repository{Db: db}, nil
}

func (r *Repository) Close() error {
	return r.Db.Close()
}

// Run operations in a transaction, committing afterward, or rolling
// back if the passed function returns an error
func (r *Repository) Transact(f func(*sql.Tx) error) error {
	tx, err := r.Db.Begin()
	if err != nil {
		return err
	}

	if err := f(tx); err != nil {
		if err2 := tx.Rollback(); err2 != nil {
			return fmt.Errorf("Failed to roll back transaction: %w\n\nAfter handling: %v", err2, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Failed to commit transaction:\n%w", err)
	}
	return nil
}

func (r *Repository) Insert(tx *sql.Tx, rec *Record) error {
	if rec.Uuid == uuid.Nil {
		rec.Uuid = uuid.New()
	}
	_, err := tx.Exec(`
	  INSERT INTO record(uuid, author, title, body, tags, date, printed, created_at)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Uuid.String(), rec.Author, rec.Title, rec.Body,
		joinTags(rec.Tags), rec.Date, rec.Printed, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("Failed to insert record:\n%w", err)
	}
	return nil
}

// Exists reports whether a record with the same author, date and title
// is already stored. Used to keep CSV re-imports idempotent.
func (r *Repository) Exists(author, date, title string) (bool, error) {
	var count int
	row := r.Db.QueryRow(`
	  SELECT COUNT(1) FROM record
	  WHERE author = ? AND date = ? AND title = ?`, author, date, title)
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("Failed to check for existing record:\n%w", err)
	}
	return count > 0, nil
}

// Unprinted returns up to limit unprinted records in random order.
func (r *Repository) Unprinted(limit int) ([]*Record, error) {
	rows, err := r.Db.Query(`
	  SELECT uuid, author, title, body, tags, date, printed
	  FROM record
	  WHERE printed = 0
	  ORDER BY RANDOM()
	  LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("Query execution failed:\n%w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Error iterating rows:\n%w", err)
	}
	return records, nil
}

// RandomUnprinted returns a single random unprinted record, or nil
// when every record has been printed.
func (r *Repository) RandomUnprinted() (*Record, error) {
	records, err := r.Unprinted(1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

func (r *Repository) MarkPrinted(u uuid.UUID) error {
	result, err := r.Db.Exec(`UPDATE record SET printed = 1 WHERE uuid = ?`, u.String())
	if err != nil {
		return fmt.Errorf("Failed to mark record as printed:\n%w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("No record with UUID %s", u.String())
	}
	return nil
}

// ResetPrinted marks every record unprinted again, the way each run
// starts from a full pool.
func (r *Repository) ResetPrinted() error {
	if _, err := r.Db.Exec(`UPDATE record SET printed = 0`); err != nil {
		return fmt.Errorf("Failed to reset printed flags:\n%w", err)
	}
	return nil
}

func (r *Repository) Count() (int, error) {
	var count int
	if err := r.Db.QueryRow(`SELECT COUNT(1) FROM record`).Scan(&count); err != nil {
		return 0, fmt.Errorf("Failed to count records:\n%w", err)
	}
	return count, nil
}

func scanRecord(rows *sql.Rows) (*Record, error) {
	rec := Record{}
	var uuidString, tags string
	if err := rows.Scan(&uuidString, &rec.Author, &rec.Title, &rec.Body, &tags, &rec.Date, &rec.Printed); err != nil {
		return nil, fmt.Errorf("Row scanning failed:\n%w", err)
	}
	u, err := uuid.Parse(uuidString)
	if err != nil {
		return nil, fmt.Errorf("Stored record has invalid UUID %q:\n%w", uuidString, err)
	}
	rec.Uuid = u
	rec.Tags = splitTags(tags)
	return &rec, nil
}
