package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/slateboard/slateboard/internal/document"
)

// LoadFunc fetches the latest snapshot of a project.
type LoadFunc func(projectID string) (document.Document, error)

// Manager tracks live sessions and shuts them down cleanly, saving
// dirty documents on the way out.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	load     LoadFunc
	save     SaveFunc
}

func NewManager(load LoadFunc, save SaveFunc) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		load:     load,
		save:     save,
	}
}

// Open loads the project's latest snapshot and starts a session
// goroutine over it.
func (m *Manager) Open(ctx context.Context, projectID string) (*Session, error) {
	doc, err := m.load(projectID)
	if err != nil {
		return nil, fmt.Errorf("load project %s: %w", projectID, err)
	}

	sess, err := New(projectID, doc, m.save)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	go sess.Run(ctx)

	slog.Info("session opened", "session", sess.ID, "project", projectID)
	return sess, nil
}

// Close stops one session, saving its document if dirty.
func (m *Manager) Close(sess *Session) {
	m.mu.Lock()
	_, ok := m.sessions[sess.ID]
	delete(m.sessions, sess.ID)
	m.mu.Unlock()
	if !ok {
		return
	}

	sess.Stop()
	slog.Info("session closed", "session", sess.ID, "project", sess.ProjectID)
}

// Stop closes every live session. Called on server shutdown.
func (m *Manager) Stop() {
	m.mu.Lock()
	open := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		open = append(open, sess)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, sess := range open {
		sess.Stop()
	}
}
