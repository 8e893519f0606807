package store

import (
	"database/sql"
	"fmt"

	"git.sr.ht/~jakintosh/tasklist/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteStore mirrors the session state into SQLite. The schema is dropped
// and recreated on open, so a database only ever holds the current session.
type SQLiteStore struct {
	db  *sql.DB
	ids domain.IDGenerator
}

func NewSQLiteStore(dsn string, ids domain.IDGenerator) (*SQLiteStore, error) {
	if ids == nil {
		ids = domain.UUIDGenerator{}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// ":memory:" databases live and die with their connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStore{db: db, ids: ids}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		DROP TABLE IF EXISTS tasks;
		DROP TABLE IF EXISTS session;

		CREATE TABLE tasks (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			category TEXT NOT NULL,
			sort_order INTEGER NOT NULL
		);

		CREATE TABLE session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			draft TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO session (id, draft, category)
		VALUES (1, '', ?)`,
		string(domain.DefaultCategory),
	)
	return err
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

func (s *SQLiteStore) State() (domain.State, error) {
	return loadState(s.db)
}

func loadState(q queryer) (domain.State, error) {
	st := domain.NewState()

	var category string
	if err := q.QueryRow(`
		SELECT
			draft,
			category
		FROM session
		WHERE id = 1`,
	).Scan(
		&st.Draft,
		&category,
	); err != nil {
		return domain.State{}, fmt.Errorf("failed to load session: %w", err)
	}
	st.Category = domain.Category(category)

	rows, err := q.Query(`
		SELECT
			id,
			text,
			completed,
			category
		FROM tasks
		ORDER BY sort_order ASC`,
	)
	if err != nil {
		return domain.State{}, fmt.Errorf("failed to load tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.Task
		var cat string
		if err := rows.Scan(
			&t.ID,
			&t.Text,
			&t.Completed,
			&cat,
		); err != nil {
			return domain.State{}, err
		}
		t.Category = domain.Category(cat)
		st.Tasks = append(st.Tasks, t)
	}
	if err := rows.Err(); err != nil {
		return domain.State{}, err
	}

	return st, nil
}

func (s *SQLiteStore) Dispatch(a domain.Action) (domain.Transition, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return domain.Transition{}, err
	}
	defer tx.Rollback()

	prev, err := loadState(tx)
	if err != nil {
		return domain.Transition{}, err
	}

	tr := domain.Apply(prev, domain.AssignID(a, s.ids))
	if !tr.Changed() {
		return tr, nil
	}

	if err := writeTransition(tx, tr); err != nil {
		return domain.Transition{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Transition{}, err
	}
	return tr, nil
}

func writeTransition(tx *sql.Tx, tr domain.Transition) error {
	sessionDirty := false

	for _, e := range tr.Events {
		switch e.Kind {
		case domain.TaskAdded:
			t, _ := tr.Next.Find(e.TaskID)
			if _, err := tx.Exec(`
				INSERT INTO tasks (id, text, completed, category, sort_order)
				SELECT ?, ?, ?, ?, COALESCE(MAX(sort_order), 0) + 1
				FROM tasks`,
				t.ID,
				t.Text,
				t.Completed,
				string(t.Category),
			); err != nil {
				return fmt.Errorf("failed to insert task %s: %w", t.ID, err)
			}

		case domain.TaskToggled:
			t, _ := tr.Next.Find(e.TaskID)
			if _, err := tx.Exec(`
				UPDATE tasks
				SET completed = ?
				WHERE id = ?`,
				t.Completed,
				t.ID,
			); err != nil {
				return fmt.Errorf("failed to update task %s: %w", t.ID, err)
			}

		case domain.TaskRemoved:
			if _, err := tx.Exec(`
				DELETE FROM tasks
				WHERE id = ?`,
				e.TaskID,
			); err != nil {
				return fmt.Errorf("failed to delete task %s: %w", e.TaskID, err)
			}

		case domain.DraftChanged, domain.CategoryChanged:
			sessionDirty = true
		}
	}

	if !sessionDirty {
		return nil
	}

	_, err := tx.Exec(`
		UPDATE session
		SET draft = ?,
			category = ?
		WHERE id = 1`,
		tr.Next.Draft,
		string(tr.Next.Category),
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}
