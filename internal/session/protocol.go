package session

import (
	"encoding/json"

	"github.com/slateboard/slateboard/internal/document"
	"github.com/slateboard/slateboard/internal/editor"
	"github.com/slateboard/slateboard/internal/scene"
)

// Message is the wire envelope for the editing surface transport.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

const (
	// Pointer gesture path (client → server).
	TypePointerDown  = "pointer.down"
	TypePointerMove  = "pointer.move"
	TypePointerUp    = "pointer.up"
	TypePointerLeave = "pointer.leave"

	// Property panel path (client → server).
	TypeElementAdd       = "element.add"
	TypeElementPatch     = "element.patch"
	TypeElementDelete    = "element.delete"
	TypeElementDuplicate = "element.duplicate"
	TypeElementReorder   = "element.reorder"
	TypeSelectionSet     = "selection.set"
	TypeSelectionClear   = "selection.clear"
	TypeThemeSet         = "theme.set"

	// Inline text editing (client → server).
	TypeEditBegin  = "edit.begin"
	TypeEditInput  = "edit.input"
	TypeEditCommit = "edit.commit"
	TypeEditCancel = "edit.cancel"

	// Persistence (client → server).
	TypeDocSave = "doc.save"

	// Server → client.
	TypeDocSync     = "doc.sync"
	TypeEditorState = "editor.state"
	TypeSaved       = "doc.saved"
	TypeError       = "error"
)

// PointerPayload carries a pointer position in board units.
type PointerPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// AddPayload creates a new element of the given kind. Only the field
// matching the kind is read.
type AddPayload struct {
	Kind   scene.Kind `json:"kind"`
	Source string     `json:"source,omitempty"`
	Text   string     `json:"text,omitempty"`
	Fill   string     `json:"fill,omitempty"`
}

// PatchPayload applies a partial update to one element.
type PatchPayload struct {
	ID    string      `json:"id"`
	Patch scene.Patch `json:"patch"`
}

// TargetPayload names an element for delete/duplicate/select/edit.
type TargetPayload struct {
	ID string `json:"id"`
}

// ReorderPayload moves an element to the front or back.
type ReorderPayload struct {
	ID        string          `json:"id"`
	Direction scene.Direction `json:"direction"`
}

// EditInputPayload replaces the inline edit buffer.
type EditInputPayload struct {
	Text string `json:"text"`
}

// ThemePayload switches the canvas background theme.
type ThemePayload struct {
	Theme document.Theme `json:"theme"`
}

// DocSyncPayload is the full document pushed after every mutation.
type DocSyncPayload struct {
	Document document.Document `json:"document"`
}

// StatePayload mirrors the selection and gesture state so the surface
// can draw selection chrome.
type StatePayload struct {
	SelectedID string              `json:"selectedId,omitempty"`
	Editing    bool                `json:"editing"`
	EditBuffer string              `json:"editBuffer,omitempty"`
	Gesture    editor.GestureState `json:"gesture"`
}

// ErrorPayload reports a rejected message.
type ErrorPayload struct {
	Message string `json:"message"`
}

func mustMessage(msgType string, payload interface{}) *Message {
	data, _ := json.Marshal(payload)
	return &Message{Type: msgType, Payload: data}
}
