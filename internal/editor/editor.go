// Package editor is the interaction layer over one scene: the pointer
// gesture state machine, the selection and inline-edit overlay, and the
// externally callable mutators the property panel uses. One Editor is
// owned by exactly one goroutine (the session actor); nothing here
// locks.
package editor

import (
	"github.com/slateboard/slateboard/internal/document"
	"github.com/slateboard/slateboard/internal/geometry"
	"github.com/slateboard/slateboard/internal/scene"
)

// HandleRadius is the half-extent of a corner resize handle's hit
// area, in board units.
const HandleRadius = 10.0

// Default canvas extent for new projects.
const (
	DefaultCanvasWidth  = 1280.0
	DefaultCanvasHeight = 720.0
)

// Editor owns a scene, the canvas theme, the selection and the
// in-progress gesture.
type Editor struct {
	scene     *scene.Scene
	theme     document.Theme
	canvasW   float64
	canvasH   float64
	selection *Selection
	drag      *gesture
	dirty     bool
}

// New returns an editor over an empty scene.
func New() *Editor {
	return &Editor{
		scene:   scene.New(),
		theme:   document.DefaultTheme,
		canvasW: DefaultCanvasWidth,
		canvasH: DefaultCanvasHeight,
	}
}

// Scene exposes the live scene for rendering and panel reads.
func (e *Editor) Scene() *scene.Scene {
	return e.scene
}

// Theme returns the canvas background theme.
func (e *Editor) Theme() document.Theme {
	return e.theme
}

// SetTheme switches the canvas background. Unknown themes are ignored.
func (e *Editor) SetTheme(t document.Theme) {
	if !t.Valid() {
		return
	}
	e.theme = t
	e.dirty = true
}

// CanvasSize returns the board extent in board units.
func (e *Editor) CanvasSize() (float64, float64) {
	return e.canvasW, e.canvasH
}

// SetCanvasSize sets the board extent.
func (e *Editor) SetCanvasSize(w, h float64) {
	if w > 0 {
		e.canvasW = w
	}
	if h > 0 {
		e.canvasH = h
	}
}

// Dirty reports whether the document changed since the last save.
func (e *Editor) Dirty() bool {
	return e.dirty
}

// MarkSaved clears the dirty flag after a successful persist.
func (e *Editor) MarkSaved() {
	e.dirty = false
}

// --- Document load/save ---

// Load replaces the scene and theme from a serialized project
// document. All-or-nothing: a malformed document returns
// document.ErrMalformedProject and leaves scene, selection and gesture
// untouched.
func (e *Editor) Load(data []byte) error {
	s, theme, err := document.Deserialize(data)
	if err != nil {
		return err
	}
	e.install(s, theme)
	return nil
}

// LoadDocument replaces state from an already-parsed document.
func (e *Editor) LoadDocument(doc document.Document) error {
	s, theme, err := document.FromDocument(doc)
	if err != nil {
		return err
	}
	e.install(s, theme)
	return nil
}

func (e *Editor) install(s *scene.Scene, theme document.Theme) {
	e.scene = s
	e.theme = theme
	e.selection = nil
	e.drag = nil
	e.dirty = false
}

// Document snapshots the current scene and theme.
func (e *Editor) Document() document.Document {
	return document.Snapshot(e.scene, e.theme)
}

// Serialize encodes the current scene and theme.
func (e *Editor) Serialize() ([]byte, error) {
	return document.Serialize(e.scene, e.theme)
}

// --- External mutators (property panel boundary) ---

// Add inserts an element and selects it. Returns the new id.
func (e *Editor) Add(el scene.Element) string {
	e.resolveEdit()
	id := e.scene.Add(el)
	e.selection = &Selection{ID: id}
	e.dirty = true
	return id
}

// Patch applies a partial update to one element. Absent ids are
// silently ignored and leave the document clean.
func (e *Editor) Patch(id string, p scene.Patch) {
	if e.scene.Patch(id, p) {
		e.dirty = true
	}
}

// Delete removes an element. If it was selected the selection is
// cleared (a live edit on it is discarded), never left dangling.
func (e *Editor) Delete(id string) {
	if _, ok := e.scene.Get(id); !ok {
		return
	}
	if e.selection != nil && e.selection.ID == id {
		e.selection = nil
	}
	if e.drag != nil && e.drag.elementID == id {
		e.drag = nil
	}
	e.scene.Delete(id)
	e.dirty = true
}

// Duplicate clones an element and selects the clone. Returns the new
// id, or "" if the source is absent.
func (e *Editor) Duplicate(id string) string {
	dup := e.scene.Duplicate(id)
	if dup == "" {
		return ""
	}
	e.resolveEdit()
	e.selection = &Selection{ID: dup}
	e.dirty = true
	return dup
}

// Reorder sends an element to the front or back of the paint order.
func (e *Editor) Reorder(id string, dir scene.Direction) {
	if e.scene.Reorder(id, dir) {
		e.dirty = true
	}
}

// Select sets the selection from outside the pointer path (the panel's
// element list). A live edit on another element commits first. No-op
// if the id is absent.
func (e *Editor) Select(id string) {
	if _, ok := e.scene.Get(id); !ok {
		return
	}
	if e.selection != nil && e.selection.ID == id {
		return
	}
	e.resolveEdit()
	e.selection = &Selection{ID: id}
}

// ClearSelection deselects, committing any live edit first.
func (e *Editor) ClearSelection() {
	e.resolveEdit()
	e.selection = nil
}

// --- Pointer gesture path ---

// PointerDown starts a gesture. Over the selected element's corner
// handle it begins a resize; over an element body it selects that
// element and begins a move; over empty background it clears the
// selection and starts nothing. While the selected text element is
// being edited, gestures on that element are suppressed.
func (e *Editor) PointerDown(x, y float64) {
	if e.drag != nil {
		return
	}

	// Corner handles belong to the selected element and sit above
	// everything else.
	if e.selection != nil {
		if el, ok := e.scene.Get(e.selection.ID); ok {
			if corner, ok := e.hitCorner(el, x, y); ok {
				if e.IsEditing() {
					return
				}
				e.drag = &gesture{
					elementID:    e.selection.ID,
					mode:         ModeResize,
					corner:       corner,
					startPointer: geometry.Point{X: x, Y: y},
					start:        el.Common().Bounds(),
				}
				return
			}
		}
	}

	id, ok := e.hitTest(x, y)
	if !ok {
		e.resolveEdit()
		e.selection = nil
		return
	}

	if e.IsEditing() {
		if e.selection.ID == id {
			// Gestures on the element being edited are suppressed.
			return
		}
		e.resolveEdit()
	}

	el, _ := e.scene.Get(id)
	e.selection = &Selection{ID: id}
	e.drag = &gesture{
		elementID:    id,
		mode:         ModeMove,
		startPointer: geometry.Point{X: x, Y: y},
		start:        el.Common().Bounds(),
	}
}

// PointerMove advances an in-progress gesture. The candidate geometry
// is recomputed from the stored start geometry and the cumulative
// delta, then written back as a patch.
func (e *Editor) PointerMove(x, y float64) {
	if e.drag == nil {
		return
	}

	dx := x - e.drag.startPointer.X
	dy := y - e.drag.startPointer.Y

	var next geometry.Rect
	switch e.drag.mode {
	case ModeMove:
		next = geometry.MoveBy(e.drag.start, dx, dy)
	case ModeResize:
		next = geometry.ResizeFromCorner(e.drag.start, e.drag.corner, dx, dy)
	}

	if e.scene.Patch(e.drag.elementID, scene.GeometryPatch(next)) {
		e.dirty = true
	}
}

// PointerUp ends the gesture.
func (e *Editor) PointerUp() {
	e.drag = nil
}

// PointerLeave is an implicit release: the pointer left the
// interactive surface mid-drag.
func (e *Editor) PointerLeave() {
	e.drag = nil
}

// --- Inline text editing ---

// BeginEdit enters inline edit on a text element, snapshotting its
// text into the buffer. A live edit elsewhere commits first. No-op for
// absent ids or non-text elements.
func (e *Editor) BeginEdit(id string) {
	el, ok := e.scene.Get(id)
	if !ok {
		return
	}
	text, ok := el.(*scene.TextElement)
	if !ok {
		return
	}
	if e.selection != nil && e.selection.ID == id && e.selection.Edit != nil {
		return
	}
	e.resolveEdit()
	e.selection = &Selection{ID: id, Edit: &EditSession{Buffer: text.Text}}
}

// SetEditText replaces the edit buffer. No-op when not editing.
func (e *Editor) SetEditText(text string) {
	if !e.IsEditing() {
		return
	}
	e.selection.Edit.Buffer = text
}

// CommitEdit writes the buffer back as a patch and exits the edit
// sub-state.
func (e *Editor) CommitEdit() {
	if !e.IsEditing() {
		return
	}
	buf := e.selection.Edit.Buffer
	if e.scene.Patch(e.selection.ID, scene.Patch{Text: &buf}) {
		e.dirty = true
	}
	e.selection.Edit = nil
}

// CancelEdit discards the buffer and exits the edit sub-state without
// patching.
func (e *Editor) CancelEdit() {
	if !e.IsEditing() {
		return
	}
	e.selection.Edit = nil
}

// resolveEdit commits any live edit. Commit is the safe default when
// the surrounding action forces the edit to end.
func (e *Editor) resolveEdit() {
	if e.IsEditing() {
		e.CommitEdit()
	}
}

// --- Hit testing ---

// HitTest returns the topmost element at the point, if any, without
// changing selection or gesture state.
func (e *Editor) HitTest(x, y float64) (string, bool) {
	return e.hitTest(x, y)
}

// hitTest returns the topmost element whose body contains the point,
// walking the paint order front to back. Rotated elements are tested
// by mapping the point into their unrotated local space.
func (e *Editor) hitTest(x, y float64) (string, bool) {
	order := e.scene.PaintOrder()
	for i := len(order) - 1; i >= 0; i-- {
		el := order[i]
		if containsPoint(el, x, y) {
			return el.Common().ID, true
		}
	}
	return "", false
}

func containsPoint(el scene.Element, x, y float64) bool {
	a := el.Common()
	r := a.Bounds()
	if a.Rotation != 0 {
		cx, cy := r.Center()
		inv := geometry.RotateAround(a.Rotation, cx, cy).Invert()
		x, y = inv.TransformPoint(x, y)
	}
	return r.Contains(x, y)
}

// hitCorner tests the four resize handles of an element, in local
// space so rotated handles track the rotated outline.
func (e *Editor) hitCorner(el scene.Element, x, y float64) (geometry.Corner, bool) {
	a := el.Common()
	r := a.Bounds()
	if a.Rotation != 0 {
		cx, cy := r.Center()
		inv := geometry.RotateAround(a.Rotation, cx, cy).Invert()
		x, y = inv.TransformPoint(x, y)
	}
	for _, c := range geometry.Corners {
		p := r.Corner(c)
		if x >= p.X-HandleRadius && x <= p.X+HandleRadius &&
			y >= p.Y-HandleRadius && y <= p.Y+HandleRadius {
			return c, true
		}
	}
	return "", false
}
