// Package project manages project records and their document snapshots.
package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/slateboard/slateboard/internal/document"
	"github.com/slateboard/slateboard/internal/store"
	"github.com/slateboard/slateboard/internal/typeid"
)

var (
	ErrNotFound  = errors.New("project not found")
	ErrForbidden = errors.New("forbidden")
)

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

type Project struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	OwnerID      string `json:"ownerId"`
	CanvasWidth  int    `json:"canvasWidth"`
	CanvasHeight int    `json:"canvasHeight"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// Create makes a project and seeds version 1 with an empty document so
// the first session open always has something to load.
func (s *Service) Create(ctx context.Context, name, ownerID string) (*Project, error) {
	rec, err := s.store.CreateProject(ctx, store.CreateProjectParams{
		ID:      typeid.NewProjectID(),
		Name:    name,
		OwnerID: ownerID,
	})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	docJSON, err := json.Marshal(document.NewEmptyDocument())
	if err != nil {
		return nil, fmt.Errorf("marshal empty document: %w", err)
	}

	_, err = s.store.CreateSnapshot(ctx, store.CreateSnapshotParams{
		ID:        typeid.NewSnapshotID(),
		ProjectID: rec.ID,
		Document:  docJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("create initial snapshot: %w", err)
	}

	return toProject(rec), nil
}

func (s *Service) Get(ctx context.Context, projectID, userID string) (*Project, error) {
	rec, err := s.getOwned(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	return toProject(rec), nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Project, error) {
	recs, err := s.store.ListProjectsForOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	projects := make([]Project, len(recs))
	for i, rec := range recs {
		projects[i] = *toProject(rec)
	}
	return projects, nil
}

func (s *Service) Delete(ctx context.Context, projectID, userID string) error {
	if _, err := s.getOwned(ctx, projectID, userID); err != nil {
		return err
	}
	return s.store.DeleteProject(ctx, projectID)
}

// CheckAccess reports whether the user may open the project. The
// websocket upgrade path calls this before handing the connection to a
// session.
func (s *Service) CheckAccess(ctx context.Context, projectID, userID string) error {
	_, err := s.getOwned(ctx, projectID, userID)
	return err
}

func (s *Service) GetLatestSnapshot(ctx context.Context, projectID, userID string) (json.RawMessage, error) {
	if _, err := s.getOwned(ctx, projectID, userID); err != nil {
		return nil, err
	}
	snap, err := s.store.GetLatestSnapshot(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return snap.Document, nil
}

// LoadDocument fetches and decodes the latest snapshot without an
// ownership check. Access is verified before the session opens.
func (s *Service) LoadDocument(ctx context.Context, projectID string) (document.Document, error) {
	snap, err := s.store.GetLatestSnapshot(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return document.Document{}, ErrNotFound
		}
		return document.Document{}, fmt.Errorf("get snapshot: %w", err)
	}

	var doc document.Document
	if err := json.Unmarshal(snap.Document, &doc); err != nil {
		return document.Document{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return doc, nil
}

// SaveDocument appends the document as a new snapshot version.
func (s *Service) SaveDocument(ctx context.Context, projectID string, doc document.Document) error {
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	_, err = s.store.CreateSnapshot(ctx, store.CreateSnapshotParams{
		ID:        typeid.NewSnapshotID(),
		ProjectID: projectID,
		Document:  docJSON,
	})
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	return nil
}

func (s *Service) getOwned(ctx context.Context, projectID, userID string) (store.Project, error) {
	rec, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Project{}, ErrNotFound
		}
		return store.Project{}, fmt.Errorf("get project: %w", err)
	}
	if rec.OwnerID != userID {
		return store.Project{}, ErrForbidden
	}
	return rec, nil
}

func toProject(rec store.Project) *Project {
	return &Project{
		ID:           rec.ID,
		Name:         rec.Name,
		OwnerID:      rec.OwnerID,
		CanvasWidth:  int(rec.CanvasWidth),
		CanvasHeight: int(rec.CanvasHeight),
		CreatedAt:    rec.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:    rec.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
