// Package favorites persists the user's favorite projects in a local
// SQLite database under the state directory.
package favorites

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// modernc.org/sqlite driver name is "sqlite".
	_ "modernc.org/sqlite"
)

// Store is the favorites database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (and if needed creates) the favorites database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open favorites db: %w", err)
	}

	s := &Store{db: db, logger: logger}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS favorites (
			project_id INTEGER PRIMARY KEY,
			created_at TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("migrate favorites db: %w", err)
	}
	return nil
}

// Add marks a project as favorite. Adding twice is a no-op.
func (s *Store) Add(ctx context.Context, projectID int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO favorites(project_id, created_at) VALUES(?, ?)`,
		projectID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	s.logger.Debug("favorite added", "project", projectID)
	return nil
}

// Remove unmarks a project. Removing a non-favorite is a no-op.
func (s *Store) Remove(ctx context.Context, projectID int) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM favorites WHERE project_id = ?`, projectID)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	s.logger.Debug("favorite removed", "project", projectID)
	return nil
}

// Toggle flips a project's favorite flag and returns the new value.
func (s *Store) Toggle(ctx context.Context, projectID int) (bool, error) {
	fav, err := s.Contains(ctx, projectID)
	if err != nil {
		return false, err
	}
	if fav {
		return false, s.Remove(ctx, projectID)
	}
	return true, s.Add(ctx, projectID)
}

// Contains reports whether a project is a favorite.
func (s *Store) Contains(ctx context.Context, projectID int) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM favorites WHERE project_id = ?`, projectID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query favorite: %w", err)
	}
	return true, nil
}

// List returns the favorite project ids, oldest first.
func (s *Store) List(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT project_id FROM favorites ORDER BY created_at, project_id`)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
