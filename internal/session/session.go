// Package session confines an editor to one goroutine and feeds it
// through a message inbox. All pointer and panel mutation enters
// through the same channel, so the scene, selection and gesture state
// have exactly one mutator; external calls (save on shutdown) are
// serialized the same way.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/slateboard/slateboard/internal/document"
	"github.com/slateboard/slateboard/internal/editor"
	"github.com/slateboard/slateboard/internal/scene"
	"github.com/slateboard/slateboard/internal/typeid"
)

// SaveFunc persists a project snapshot.
type SaveFunc func(projectID string, doc document.Document) error

// Session owns one editor for one connected editing surface.
type Session struct {
	ID        string
	ProjectID string

	editor  *editor.Editor
	inbox   chan *Message
	quit    chan struct{}
	stopped chan struct{}
	save    SaveFunc

	clientMu sync.Mutex
	client   *Client
}

const inboxSize = 256

// typeInternalSync never arrives over the wire; SyncNow queues it so
// the initial push happens on the session goroutine.
const typeInternalSync = "internal.sync"

// New creates a session over a loaded project document.
func New(projectID string, doc document.Document, save SaveFunc) (*Session, error) {
	ed := editor.New()
	if err := ed.LoadDocument(doc); err != nil {
		return nil, fmt.Errorf("load project document: %w", err)
	}
	ed.MarkSaved()

	return &Session{
		ID:        typeid.NewSessionID(),
		ProjectID: projectID,
		editor:    ed,
		inbox:     make(chan *Message, inboxSize),
		quit:      make(chan struct{}),
		stopped:   make(chan struct{}),
		save:      save,
	}, nil
}

// Attach binds the websocket client whose reads feed the inbox.
func (s *Session) Attach(c *Client) {
	s.clientMu.Lock()
	s.client = c
	s.clientMu.Unlock()
}

// SyncNow asks the session goroutine to push the full document and
// editor state to the client. Called once after Attach so a fresh
// connection starts from the loaded snapshot.
func (s *Session) SyncNow() {
	s.Submit(&Message{Type: typeInternalSync})
}

// Submit queues a message for the session goroutine. Messages are
// dropped with a log line when the inbox is full; pointer moves are
// high-frequency and a dropped frame is recomputed by the next one.
func (s *Session) Submit(msg *Message) {
	select {
	case s.inbox <- msg:
	default:
		slog.Warn("session inbox full, dropping message", "session", s.ID, "type", msg.Type)
	}
}

// Run drains the inbox until the context is done or Stop is called,
// then saves any unsaved changes.
func (s *Session) Run(ctx context.Context) {
	defer close(s.stopped)
	for {
		select {
		case msg := <-s.inbox:
			s.handle(msg)
		case <-s.quit:
			s.drainAndSave()
			return
		case <-ctx.Done():
			s.drainAndSave()
			return
		}
	}
}

// drainAndSave handles anything still queued, then persists. Messages
// submitted before Stop are not lost to the shutdown race.
func (s *Session) drainAndSave() {
	for {
		select {
		case msg := <-s.inbox:
			s.handle(msg)
		default:
			s.saveIfDirty()
			return
		}
	}
}

// Stop asks the session goroutine to save and exit, and waits for it.
func (s *Session) Stop() {
	close(s.quit)
	<-s.stopped
}

func (s *Session) handle(msg *Message) {
	mutated := true

	switch msg.Type {
	case TypePointerDown:
		var p PointerPayload
		if !s.decode(msg, &p) {
			return
		}
		s.editor.PointerDown(p.X, p.Y)

	case TypePointerMove:
		var p PointerPayload
		if !s.decode(msg, &p) {
			return
		}
		s.editor.PointerMove(p.X, p.Y)

	case TypePointerUp:
		s.editor.PointerUp()

	case TypePointerLeave:
		s.editor.PointerLeave()

	case TypeElementAdd:
		var p AddPayload
		if !s.decode(msg, &p) {
			return
		}
		el, err := newElement(p)
		if err != nil {
			s.sendError(err.Error())
			return
		}
		s.editor.Add(el)

	case TypeElementPatch:
		var p PatchPayload
		if !s.decode(msg, &p) {
			return
		}
		s.editor.Patch(p.ID, p.Patch)

	case TypeElementDelete:
		var p TargetPayload
		if !s.decode(msg, &p) {
			return
		}
		s.editor.Delete(p.ID)

	case TypeElementDuplicate:
		var p TargetPayload
		if !s.decode(msg, &p) {
			return
		}
		s.editor.Duplicate(p.ID)

	case TypeElementReorder:
		var p ReorderPayload
		if !s.decode(msg, &p) {
			return
		}
		s.editor.Reorder(p.ID, p.Direction)

	case TypeSelectionSet:
		var p TargetPayload
		if !s.decode(msg, &p) {
			return
		}
		s.editor.Select(p.ID)
		mutated = false

	case TypeSelectionClear:
		s.editor.ClearSelection()
		mutated = false

	case TypeThemeSet:
		var p ThemePayload
		if !s.decode(msg, &p) {
			return
		}
		s.editor.SetTheme(p.Theme)

	case TypeEditBegin:
		var p TargetPayload
		if !s.decode(msg, &p) {
			return
		}
		s.editor.BeginEdit(p.ID)
		mutated = false

	case TypeEditInput:
		var p EditInputPayload
		if !s.decode(msg, &p) {
			return
		}
		s.editor.SetEditText(p.Text)
		mutated = false

	case TypeEditCommit:
		s.editor.CommitEdit()

	case TypeEditCancel:
		s.editor.CancelEdit()
		mutated = false

	case TypeDocSave:
		s.saveIfDirty()
		s.send(mustMessage(TypeSaved, struct{}{}))
		return

	case typeInternalSync:
		s.send(mustMessage(TypeDocSync, DocSyncPayload{Document: s.editor.Document()}))
		s.send(s.stateMessage())
		return

	default:
		slog.Warn("unknown message type", "session", s.ID, "type", msg.Type)
		s.sendError("unknown message type: " + msg.Type)
		return
	}

	if mutated {
		s.send(mustMessage(TypeDocSync, DocSyncPayload{Document: s.editor.Document()}))
	}
	s.send(s.stateMessage())
}

func (s *Session) stateMessage() *Message {
	state := StatePayload{
		Editing: s.editor.IsEditing(),
		Gesture: s.editor.Gesture(),
	}
	if id, ok := s.editor.Selected(); ok {
		state.SelectedID = id
	}
	if state.Editing {
		state.EditBuffer = s.editor.EditBuffer()
	}
	return mustMessage(TypeEditorState, state)
}

func (s *Session) decode(msg *Message, into interface{}) bool {
	if err := json.Unmarshal(msg.Payload, into); err != nil {
		slog.Warn("invalid payload", "session", s.ID, "type", msg.Type, "error", err)
		s.sendError("invalid payload for " + msg.Type)
		return false
	}
	return true
}

func (s *Session) send(msg *Message) {
	s.clientMu.Lock()
	c := s.client
	s.clientMu.Unlock()
	if c == nil {
		return
	}
	c.Send(msg)
}

func (s *Session) sendError(text string) {
	s.send(mustMessage(TypeError, ErrorPayload{Message: text}))
}

func (s *Session) saveIfDirty() {
	if !s.editor.Dirty() || s.save == nil {
		return
	}
	if err := s.save(s.ProjectID, s.editor.Document()); err != nil {
		slog.Error("save project", "project", s.ProjectID, "error", err)
		return
	}
	s.editor.MarkSaved()
}

func newElement(p AddPayload) (scene.Element, error) {
	switch p.Kind {
	case scene.KindImage:
		return scene.NewImage(p.Source), nil
	case scene.KindText:
		return scene.NewText(p.Text), nil
	case scene.KindSwatch:
		return scene.NewSwatch(p.Fill), nil
	default:
		return nil, fmt.Errorf("unknown element kind %q", p.Kind)
	}
}
