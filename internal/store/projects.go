package store

import (
	"context"
	"fmt"
	"time"
)

type Project struct {
	ID           string
	Name         string
	OwnerID      string
	CanvasWidth  int32
	CanvasHeight int32
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateProjectParams struct {
	ID      string
	Name    string
	OwnerID string
}

const projectColumns = "id, name, owner_id, canvas_width, canvas_height, created_at, updated_at"

func scanProject(row interface{ Scan(dest ...any) error }) (Project, error) {
	var p Project
	err := row.Scan(&p.ID, &p.Name, &p.OwnerID, &p.CanvasWidth, &p.CanvasHeight, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (s *Store) CreateProject(ctx context.Context, arg CreateProjectParams) (Project, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO projects (id, name, owner_id)
		VALUES ($1, $2, $3)
		RETURNING `+projectColumns,
		arg.ID, arg.Name, arg.OwnerID)

	p, err := scanProject(row)
	if err != nil {
		return Project{}, fmt.Errorf("insert project: %w", mapErr(err))
	}
	return p, nil
}

func (s *Store) GetProject(ctx context.Context, id string) (Project, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)

	p, err := scanProject(row)
	if err != nil {
		return Project{}, mapErr(err)
	}
	return p, nil
}

func (s *Store) ListProjectsForOwner(ctx context.Context, ownerID string) ([]Project, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+projectColumns+` FROM projects
		WHERE owner_id = $1 ORDER BY updated_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) TouchProject(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `UPDATE projects SET updated_at = now() WHERE id = $1`, id)
	return err
}
