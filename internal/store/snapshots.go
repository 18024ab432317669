package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

type Snapshot struct {
	ID        string
	ProjectID string
	Version   int32
	Document  json.RawMessage
	CreatedAt time.Time
}

type CreateSnapshotParams struct {
	ID        string
	ProjectID string
	Document  json.RawMessage
}

// CreateSnapshot appends a new snapshot with the next version number
// for the project and bumps the project's updated_at.
func (s *Store) CreateSnapshot(ctx context.Context, arg CreateSnapshotParams) (Snapshot, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO snapshots (id, project_id, version, document)
		VALUES ($1, $2,
		        (SELECT COALESCE(MAX(version), 0) + 1 FROM snapshots WHERE project_id = $2),
		        $3)
		RETURNING id, project_id, version, document, created_at`,
		arg.ID, arg.ProjectID, arg.Document)

	var snap Snapshot
	if err := row.Scan(&snap.ID, &snap.ProjectID, &snap.Version, &snap.Document, &snap.CreatedAt); err != nil {
		return Snapshot{}, fmt.Errorf("insert snapshot: %w", mapErr(err))
	}
	if err := s.TouchProject(ctx, arg.ProjectID); err != nil {
		return Snapshot{}, fmt.Errorf("touch project: %w", err)
	}
	return snap, nil
}

func (s *Store) GetLatestSnapshot(ctx context.Context, projectID string) (Snapshot, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, project_id, version, document, created_at
		FROM snapshots WHERE project_id = $1
		ORDER BY version DESC LIMIT 1`, projectID)

	var snap Snapshot
	if err := row.Scan(&snap.ID, &snap.ProjectID, &snap.Version, &snap.Document, &snap.CreatedAt); err != nil {
		return Snapshot{}, mapErr(err)
	}
	return snap, nil
}
