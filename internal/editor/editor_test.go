package editor

import (
	"testing"

	"github.com/slateboard/slateboard/internal/document"
	"github.com/slateboard/slateboard/internal/scene"
)

// placeSwatch adds a swatch and pins its geometry so pointer positions
// in the tests are predictable.
func placeSwatch(t *testing.T, e *Editor, x, y, w, h float64) string {
	t.Helper()
	id := e.Add(scene.NewSwatch(""))
	e.Patch(id, scene.Patch{X: &x, Y: &y, Width: &w, Height: &h})
	e.ClearSelection()
	return id
}

func bounds(t *testing.T, e *Editor, id string) (x, y, w, h float64) {
	t.Helper()
	el, ok := e.Scene().Get(id)
	if !ok {
		t.Fatalf("element %s missing", id)
	}
	a := el.Common()
	return a.X, a.Y, a.Width, a.Height
}

func TestAbsentIDMutationsLeaveDocumentClean(t *testing.T) {
	e := New()
	id := placeSwatch(t, e, 96, 96, 120, 120)
	e.MarkSaved()

	// Stale messages referencing a deleted element must not trigger a
	// snapshot save on session close.
	x := 48.0
	e.Patch("el_gone", scene.Patch{X: &x})
	e.Reorder("el_gone", scene.DirectionFront)
	if e.Dirty() {
		t.Error("no-op mutations on an absent id dirtied the document")
	}

	e.Patch(id, scene.Patch{X: &x})
	if !e.Dirty() {
		t.Error("real patch left the document clean")
	}
}

func TestPointerDownSelectsAndStartsMove(t *testing.T) {
	e := New()
	id := placeSwatch(t, e, 96, 96, 120, 120)

	e.PointerDown(120, 120)
	if sel, ok := e.Selected(); !ok || sel != id {
		t.Fatalf("selected = %q, want %q", sel, id)
	}
	g := e.Gesture()
	if !g.Active || g.Mode != ModeMove || g.ElementID != id {
		t.Errorf("gesture = %+v, want active move on %s", g, id)
	}
}

func TestMoveGestureRecomputesFromStart(t *testing.T) {
	e := New()
	id := placeSwatch(t, e, 96, 96, 120, 120)

	e.PointerDown(120, 120)
	// Many intermediate frames; only the cumulative delta matters.
	e.PointerMove(121, 121)
	e.PointerMove(150, 130)
	e.PointerMove(120+55, 120+55)
	x, y, _, _ := bounds(t, e, id)
	if x != 144 || y != 144 {
		t.Errorf("moved to (%v, %v), want (144, 144)", x, y)
	}

	// Dragging back to the start lands on the snapped origin.
	e.PointerMove(120, 120)
	x, y, _, _ = bounds(t, e, id)
	if x != 96 || y != 96 {
		t.Errorf("returned to (%v, %v), want (96, 96)", x, y)
	}
	e.PointerUp()
	if e.Gesture().Active {
		t.Error("gesture still active after pointer up")
	}
}

func TestResizeGestureFromCornerHandle(t *testing.T) {
	e := New()
	id := placeSwatch(t, e, 96, 96, 120, 120)

	// Select first, then grab the SE handle at (216, 216).
	e.PointerDown(120, 120)
	e.PointerUp()
	e.PointerDown(216, 216)
	g := e.Gesture()
	if g.Mode != ModeResize || string(g.Corner) != "se" {
		t.Fatalf("gesture = %+v, want resize from se", g)
	}

	e.PointerMove(216+50, 216+26)
	_, _, w, h := bounds(t, e, id)
	if w != 168 || h != 144 {
		t.Errorf("size = %vx%v, want 168x144", w, h)
	}
	e.PointerUp()
}

func TestResizeNeverCollapsesBelowMinimum(t *testing.T) {
	e := New()
	id := placeSwatch(t, e, 96, 96, 120, 120)
	e.PointerDown(120, 120)
	e.PointerUp()
	e.PointerDown(216, 216)
	e.PointerMove(-2000, -2000)
	_, _, w, h := bounds(t, e, id)
	if w < 60 || h < 60 {
		t.Errorf("size = %vx%v, below minimum", w, h)
	}
}

func TestBackgroundClickClearsSelection(t *testing.T) {
	e := New()
	placeSwatch(t, e, 96, 96, 120, 120)
	e.PointerDown(120, 120)
	e.PointerUp()

	e.PointerDown(700, 700)
	if _, ok := e.Selected(); ok {
		t.Error("selection not cleared by background pointer down")
	}
	if e.Gesture().Active {
		t.Error("background pointer down started a gesture")
	}
}

func TestPointerLeaveIsImplicitRelease(t *testing.T) {
	e := New()
	placeSwatch(t, e, 96, 96, 120, 120)
	e.PointerDown(120, 120)
	e.PointerLeave()
	if e.Gesture().Active {
		t.Error("gesture survived pointer leave")
	}
}

func TestTopmostElementWinsHit(t *testing.T) {
	e := New()
	under := placeSwatch(t, e, 96, 96, 120, 120)
	over := placeSwatch(t, e, 96, 96, 120, 120)
	_ = under

	e.PointerDown(120, 120)
	if sel, _ := e.Selected(); sel != over {
		t.Errorf("selected %s, want topmost %s", sel, over)
	}
}

func TestHitTestRespectsRotation(t *testing.T) {
	e := New()
	id := placeSwatch(t, e, 96, 96, 240, 60)
	rot := 90.0
	e.Patch(id, scene.Patch{Rotation: &rot})

	// Rotated 90° about the center (216, 126): the long axis now runs
	// vertically. A point near the original unrotated left edge no
	// longer hits.
	e.PointerDown(100, 126)
	if _, ok := e.Selected(); ok {
		t.Error("hit outside the rotated outline selected the element")
	}
	// A point above the center, inside the rotated outline, hits.
	e.PointerDown(216, 30)
	if sel, _ := e.Selected(); sel != id {
		t.Errorf("selected %q, want %q", sel, id)
	}
}

func TestDeleteSelectedClearsSelection(t *testing.T) {
	e := New()
	id := placeSwatch(t, e, 96, 96, 120, 120)
	e.Select(id)
	e.Delete(id)
	if _, ok := e.Selected(); ok {
		t.Error("selection dangled after deleting the selected element")
	}

	// A stale patch to the deleted id is a silent no-op.
	x := 10.0
	e.Patch(id, scene.Patch{X: &x})
}

func TestDeleteDraggedElementEndsGesture(t *testing.T) {
	e := New()
	id := placeSwatch(t, e, 96, 96, 120, 120)
	e.PointerDown(120, 120)
	e.Delete(id)
	if e.Gesture().Active {
		t.Error("gesture still active after its element was deleted")
	}
	e.PointerMove(300, 300) // no-op, no panic
}

func TestEditCommitAndCancel(t *testing.T) {
	e := New()
	id := e.Add(scene.NewText("draft"))

	e.BeginEdit(id)
	if !e.IsEditing() || e.EditBuffer() != "draft" {
		t.Fatalf("edit buffer = %q, want snapshot of text", e.EditBuffer())
	}

	e.SetEditText("final")
	e.CommitEdit()
	el, _ := e.Scene().Get(id)
	if el.(*scene.TextElement).Text != "final" {
		t.Errorf("text = %q, want %q", el.(*scene.TextElement).Text, "final")
	}
	if e.IsEditing() {
		t.Error("still editing after commit")
	}

	e.BeginEdit(id)
	e.SetEditText("discarded")
	e.CancelEdit()
	if el.(*scene.TextElement).Text != "final" {
		t.Errorf("cancel patched the element: %q", el.(*scene.TextElement).Text)
	}
}

func TestEditSuppressesGestureOnEditedElement(t *testing.T) {
	e := New()
	id := e.Add(scene.NewText("hi"))
	x, y, w, h := 96.0, 96.0, 240.0, 72.0
	e.Patch(id, scene.Patch{X: &x, Y: &y, Width: &w, Height: &h})

	e.BeginEdit(id)
	e.PointerDown(120, 120)
	if e.Gesture().Active {
		t.Error("gesture started on the element being edited")
	}
	if !e.IsEditing() {
		t.Error("edit ended by a pointer down on the edited element")
	}
}

func TestPointerDownElsewhereCommitsEdit(t *testing.T) {
	e := New()
	textID := e.Add(scene.NewText("typing"))
	tx, ty, tw, th := 96.0, 96.0, 240.0, 72.0
	e.Patch(textID, scene.Patch{X: &tx, Y: &ty, Width: &tw, Height: &th})
	other := placeSwatch(t, e, 500, 500, 120, 120)

	e.BeginEdit(textID)
	e.SetEditText("typed while editing")
	e.PointerDown(550, 550)

	if e.IsEditing() {
		t.Error("edit still live after selecting another element")
	}
	el, _ := e.Scene().Get(textID)
	if el.(*scene.TextElement).Text != "typed while editing" {
		t.Errorf("buffer not committed, text = %q", el.(*scene.TextElement).Text)
	}
	if sel, _ := e.Selected(); sel != other {
		t.Errorf("selected %q, want %q", sel, other)
	}
}

func TestBeginEditRejectsNonText(t *testing.T) {
	e := New()
	id := placeSwatch(t, e, 96, 96, 120, 120)
	e.BeginEdit(id)
	if e.IsEditing() {
		t.Error("entered edit on a swatch")
	}
}

func TestSelectAbsentIsNoOp(t *testing.T) {
	e := New()
	e.Select("el_missing")
	if _, ok := e.Selected(); ok {
		t.Error("selection points at an absent element")
	}
}

func TestLoadMalformedLeavesStateUntouched(t *testing.T) {
	e := New()
	id := placeSwatch(t, e, 96, 96, 120, 120)
	e.Select(id)

	if err := e.Load([]byte(`[not a project]`)); err == nil {
		t.Fatal("malformed load did not error")
	}

	if e.Scene().Len() != 1 {
		t.Errorf("scene len = %d, want 1", e.Scene().Len())
	}
	if sel, ok := e.Selected(); !ok || sel != id {
		t.Errorf("selection = %q, want preserved %q", sel, id)
	}
}

func TestLoadReplacesStateAndClearsSelection(t *testing.T) {
	e := New()
	placeSwatch(t, e, 96, 96, 120, 120)

	data, err := document.Serialize(scene.New(), document.ThemeDots)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if err := e.Load(data); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if e.Scene().Len() != 0 {
		t.Errorf("scene len = %d, want 0", e.Scene().Len())
	}
	if e.Theme() != document.ThemeDots {
		t.Errorf("theme = %s, want dots", e.Theme())
	}
	if _, ok := e.Selected(); ok {
		t.Error("selection survived a document load")
	}
}

func TestSetThemeIgnoresUnknown(t *testing.T) {
	e := New()
	e.SetTheme(document.ThemePaper)
	e.SetTheme(document.Theme("neon"))
	if e.Theme() != document.ThemePaper {
		t.Errorf("theme = %s, want paper", e.Theme())
	}
}
