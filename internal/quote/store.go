// Package quote loads the literature-clock dataset and serves one quote per
// minute of the day.
package quote

import (
	"bufio"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/quietpress/typewriter-clock/internal/logging/events"
)

// DownloadURL is the canonical source of the annotated quote CSV.
const DownloadURL = "https://raw.githubusercontent.com/JohannesNE/literature-clock/master/litclock_annotated.csv"

// Quote is one literary excerpt tied to a minute of the day.
type Quote struct {
	Time        string // "HH:MM", 24-hour
	TimeNatural string // the time as written in the text
	Text        string // raw excerpt, may contain markup
	Source      string // "title | author"
}

// Store indexes quotes by time code in an in-memory SQLite database. The
// data is loaded once at startup and read-only afterwards.
type Store struct {
	db *sql.DB
}

// Open loads the CSV at path, downloading it first when missing.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := download(path); err != nil {
			return nil, fmt.Errorf("download quote data: %w", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open quote data: %w", err)
	}
	defer f.Close()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open quote index: %w", err)
	}
	// One connection, or each pool member would see its own empty :memory: DB.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
		CREATE TABLE quotes (
			time_code    TEXT NOT NULL,
			time_natural TEXT NOT NULL,
			quote        TEXT NOT NULL,
			source       TEXT NOT NULL
		);
		CREATE INDEX quotes_by_time ON quotes(time_code);
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create quote index: %w", err)
	}

	s := &Store{db: db}
	if err := s.load(f); err != nil {
		db.Close()
		return nil, err
	}

	quotes, _ := s.QuoteCount()
	times, _ := s.TimeCount()
	events.Quote.Loaded(path, quotes, times)
	return s, nil
}

// load parses the pipe-delimited file. The data embeds unbalanced double
// quotes, so this is a plain split rather than a quoting CSV reader.
// Malformed rows are skipped; they are the dataset's problem, not ours.
func (s *Store) load(r io.Reader) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("load quotes: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO quotes (time_code, time_natural, quote, source) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("load quotes: %w", err)
	}
	defer stmt.Close()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		parts := strings.Split(sc.Text(), "|")
		if len(parts) < 4 {
			continue
		}
		timeCode := strings.TrimSpace(parts[0])
		if !strings.Contains(timeCode, ":") {
			continue
		}
		if _, err := stmt.Exec(
			timeCode,
			strings.TrimSpace(parts[1]),
			strings.TrimSpace(parts[2]),
			strings.TrimSpace(parts[3]),
		); err != nil {
			return fmt.Errorf("load quotes: %w", err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("load quotes: %w", err)
	}
	return tx.Commit()
}

// Lookup returns a random quote for the given time, or ok=false when the
// dataset has nothing for that minute. A miss is not an error.
func (s *Store) Lookup(hour, minute int) (*Quote, bool, error) {
	code := fmt.Sprintf("%02d:%02d", hour, minute)
	row := s.db.QueryRow(`
		SELECT time_code, time_natural, quote, source
		FROM quotes WHERE time_code = ?
		ORDER BY random() LIMIT 1
	`, code)

	var q Quote
	err := row.Scan(&q.Time, &q.TimeNatural, &q.Text, &q.Source)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup %s: %w", code, err)
	}
	return &q, true, nil
}

// TimeCount reports how many distinct minutes have at least one quote.
func (s *Store) TimeCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(DISTINCT time_code) FROM quotes`).Scan(&n)
	return n, err
}

// QuoteCount reports the total number of quotes.
func (s *Store) QuoteCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM quotes`).Scan(&n)
	return n, err
}

// Close releases the index.
func (s *Store) Close() error {
	return s.db.Close()
}

func download(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	resp, err := http.Get(DownloadURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
