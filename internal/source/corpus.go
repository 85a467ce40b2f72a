// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/repurpose-engine/pkg/types"
)

// Corpus is a local SQLite store of literature and trial records, built
// with Import and queried by substring match.
type Corpus struct {
	db *sql.DB
}

// OpenCorpus opens or creates the corpus database at path and ensures the
// schema exists.
func OpenCorpus(path string) (*Corpus, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating corpus directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	c := &Corpus{db: db}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return c, nil
}

// Close releases the database connection.
func (c *Corpus) Close() error {
	return c.db.Close()
}

func (c *Corpus) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS literature (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			abstract TEXT NOT NULL DEFAULT '',
			source_id TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS trials (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			conditions TEXT NOT NULL DEFAULT '[]',
			interventions TEXT NOT NULL DEFAULT '[]',
			intervention_types TEXT NOT NULL DEFAULT '[]',
			phase TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT '',
			start_date TEXT NOT NULL DEFAULT '',
			completion_date TEXT NOT NULL DEFAULT '',
			source_id TEXT NOT NULL DEFAULT ''
		)`,
	}
	for _, stmt := range statements {
		if _, err := c.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ImportSummary holds counts from a corpus import run.
type ImportSummary struct {
	Literature int
	Trials     int
}

// Import loads a fixtures file into the corpus. Records are upserted by ID
// so re-importing a file refreshes it in place.
func (c *Corpus) Import(ctx context.Context, path string, w io.Writer) (ImportSummary, error) {
	fx, err := ReadFixtures(path)
	if err != nil {
		return ImportSummary{}, err
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	litStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO literature (id, title, abstract, source_id) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, abstract=excluded.abstract, source_id=excluded.source_id`)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("preparing literature insert: %w", err)
	}
	defer litStmt.Close()

	var summary ImportSummary
	for _, r := range fx.Literature {
		if r.ID == "" {
			fmt.Fprintf(w, "skipped literature record without id: %q\n", r.Title)
			continue
		}
		if _, err := litStmt.ExecContext(ctx, r.ID, r.Title, r.Abstract, r.SourceID); err != nil {
			return ImportSummary{}, fmt.Errorf("inserting literature %s: %w", r.ID, err)
		}
		summary.Literature++
	}

	trialStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO trials (id, title, conditions, interventions, intervention_types,
			phase, status, start_date, completion_date, source_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, conditions=excluded.conditions,
			interventions=excluded.interventions, intervention_types=excluded.intervention_types,
			phase=excluded.phase, status=excluded.status, start_date=excluded.start_date,
			completion_date=excluded.completion_date, source_id=excluded.source_id`)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("preparing trial insert: %w", err)
	}
	defer trialStmt.Close()

	for _, r := range fx.Trials {
		if r.ID == "" {
			fmt.Fprintf(w, "skipped trial record without id: %q\n", r.Title)
			continue
		}
		_, err := trialStmt.ExecContext(ctx,
			r.ID, r.Title, encodeList(r.Conditions), encodeList(r.Interventions),
			encodeList(r.InterventionTypes), r.Phase, r.Status, r.StartDate,
			r.CompletionDate, r.SourceID,
		)
		if err != nil {
			return ImportSummary{}, fmt.Errorf("inserting trial %s: %w", r.ID, err)
		}
		summary.Trials++
	}

	if err := tx.Commit(); err != nil {
		return ImportSummary{}, fmt.Errorf("committing import: %w", err)
	}

	fmt.Fprintf(w, "imported %s: %d literature, %d trials\n", path, summary.Literature, summary.Trials)
	return summary, nil
}

// CorpusStats reports how many records the corpus holds.
type CorpusStats struct {
	Literature int `json:"literature" yaml:"literature"`
	Trials     int `json:"trials" yaml:"trials"`
}

// Stats counts stored records.
func (c *Corpus) Stats(ctx context.Context) (CorpusStats, error) {
	var s CorpusStats
	if err := c.db.QueryRowContext(ctx, `SELECT count(*) FROM literature`).Scan(&s.Literature); err != nil {
		return CorpusStats{}, fmt.Errorf("counting literature: %w", err)
	}
	if err := c.db.QueryRowContext(ctx, `SELECT count(*) FROM trials`).Scan(&s.Trials); err != nil {
		return CorpusStats{}, fmt.Errorf("counting trials: %w", err)
	}
	return s, nil
}

// FetchLiterature returns literature whose title or abstract contains
// query, in import order.
func (c *Corpus) FetchLiterature(ctx context.Context, query string, max int) ([]types.LiteratureRecord, error) {
	pattern := likePattern(query)
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, title, abstract, source_id FROM literature
		 WHERE lower(title) LIKE ? ESCAPE '\' OR lower(abstract) LIKE ? ESCAPE '\'
		 ORDER BY rowid LIMIT ?`,
		pattern, pattern, sqlLimit(max),
	)
	if err != nil {
		return nil, fmt.Errorf("querying literature: %w", err)
	}
	defer rows.Close()

	var out []types.LiteratureRecord
	for rows.Next() {
		var r types.LiteratureRecord
		if err := rows.Scan(&r.ID, &r.Title, &r.Abstract, &r.SourceID); err != nil {
			return nil, fmt.Errorf("scanning literature row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// FetchTrials returns trials whose title, conditions, or interventions
// contain query, in import order.
func (c *Corpus) FetchTrials(ctx context.Context, query string, max int) ([]types.TrialRecord, error) {
	pattern := likePattern(query)
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, title, conditions, interventions, intervention_types,
			phase, status, start_date, completion_date, source_id
		 FROM trials
		 WHERE lower(title) LIKE ? ESCAPE '\'
			OR lower(conditions) LIKE ? ESCAPE '\'
			OR lower(interventions) LIKE ? ESCAPE '\'
		 ORDER BY rowid LIMIT ?`,
		pattern, pattern, pattern, sqlLimit(max),
	)
	if err != nil {
		return nil, fmt.Errorf("querying trials: %w", err)
	}
	defer rows.Close()

	var out []types.TrialRecord
	for rows.Next() {
		var (
			r                                 types.TrialRecord
			conditions, interventions, itypes string
		)
		err := rows.Scan(&r.ID, &r.Title, &conditions, &interventions, &itypes,
			&r.Phase, &r.Status, &r.StartDate, &r.CompletionDate, &r.SourceID)
		if err != nil {
			return nil, fmt.Errorf("scanning trial row: %w", err)
		}
		r.Conditions = decodeList(conditions)
		r.Interventions = decodeList(interventions)
		r.InterventionTypes = decodeList(itypes)
		out = append(out, r)
	}
	return out, rows.Err()
}

// likePattern builds a case-insensitive substring pattern for LIKE with
// backslash as the escape character.
func likePattern(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	q = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(q)
	return "%" + q + "%"
}

// sqlLimit maps a zero cap to SQLite's "no limit".
func sqlLimit(max int) int {
	if max <= 0 {
		return -1
	}
	return max
}

func encodeList(list []string) string {
	if len(list) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(list)
	return string(data)
}

func decodeList(s string) []string {
	var list []string
	if err := json.Unmarshal([]byte(s), &list); err != nil {
		return nil
	}
	return list
}
