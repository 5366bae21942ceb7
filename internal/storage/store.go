// Package storage persists project records in a SQLite file under the data
// directory. The agent backend owns the richer schema; the shell only needs
// the project model for the GUI's library view.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/inkforge/inkforge/internal/constants"
	_ "modernc.org/sqlite" // database/sql driver
)

// Common errors.
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrEmptyName       = errors.New("project name is empty")
)

// Project is a single writing project.
type Project struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Genre          string  `json:"genre"`
	Description    *string `json:"description"`
	Status         string  `json:"status"`
	ModelMain      string  `json:"model_main"`
	ModelSecondary string  `json:"model_secondary"`
	Temperature    float64 `json:"temperature"`
	EmbeddingDim   int     `json:"embedding_dim"`
	WordTarget     int     `json:"word_target"`
}

// Defaults applied when a project is created with only name and genre.
const (
	DefaultStatus         = "drafting"
	DefaultModelMain      = "claude-sonnet-4"
	DefaultModelSecondary = "gpt-4o"
	DefaultTemperature    = 0.7
	DefaultEmbeddingDim   = 3072
	DefaultWordTarget     = 100000
)

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	genre           TEXT NOT NULL DEFAULT '',
	description     TEXT,
	status          TEXT NOT NULL DEFAULT 'drafting',
	model_main      TEXT NOT NULL DEFAULT 'claude-sonnet-4',
	model_secondary TEXT NOT NULL DEFAULT 'gpt-4o',
	temperature     REAL NOT NULL DEFAULT 0.7,
	embedding_dim   INTEGER NOT NULL DEFAULT 3072,
	word_target     INTEGER NOT NULL DEFAULT 100000,
	created_at      TIMESTAMP NOT NULL,
	updated_at      TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_projects_updated_at ON projects(updated_at);
`

// Store is the project repository over the local database file.
type Store struct {
	db *sql.DB
}

// DatabasePath returns the database file location under a data dir.
func DatabasePath(dataDir string) string {
	return filepath.Join(dataDir, constants.FileDatabase)
}

// Open opens (creating if needed) the project database under dataDir.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", DatabasePath(dataDir))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// The shell and the agent share this file; serialize shell access.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

const projectColumns = `id, name, genre, description, status,
	model_main, model_secondary, temperature, embedding_dim, word_target`

// ListProjects returns all projects, most recently updated first.
func (s *Store) ListProjects() ([]Project, error) {
	rows, err := s.db.Query(
		`SELECT ` + projectColumns + ` FROM projects ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// CreateProject inserts a project with a generated id and defaulted columns
// and returns the stored record.
func (s *Store) CreateProject(name, genre string) (*Project, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := s.db.Exec(
		`INSERT INTO projects (id, name, genre, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, name, genre, now, now)
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	return s.GetProject(id)
}

// GetProject returns a project by id.
func (s *Store) GetProject(id string) (*Project, error) {
	row := s.db.QueryRow(
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProjectStatus sets a project's status and bumps updated_at, moving
// it to the front of the list ordering.
func (s *Store) UpdateProjectStatus(id, status string) error {
	res, err := s.db.Exec(
		`UPDATE projects SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return nil
}

// DeleteProject removes a project by id.
func (s *Store) DeleteProject(id string) error {
	res, err := s.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (Project, error) {
	var p Project
	err := row.Scan(
		&p.ID, &p.Name, &p.Genre, &p.Description, &p.Status,
		&p.ModelMain, &p.ModelSecondary, &p.Temperature,
		&p.EmbeddingDim, &p.WordTarget)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("scanning project: %w", err)
	}
	return p, nil
}
