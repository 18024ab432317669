package editor

// EditSession is the inline-edit sub-state of a selected text element.
// The buffer snapshots the element's text on begin and is written back
// on commit, or dropped on cancel.
type EditSession struct {
	Buffer string
}

// Selection is the single optional selected element. The edit session
// lives inside the selection value, so "editing implies selected, and
// of the edited element" cannot be violated structurally.
type Selection struct {
	ID   string
	Edit *EditSession
}

// Selected returns the selected element id, if any.
func (e *Editor) Selected() (string, bool) {
	if e.selection == nil {
		return "", false
	}
	return e.selection.ID, true
}

// IsEditing reports whether the selected element is in inline edit.
func (e *Editor) IsEditing() bool {
	return e.selection != nil && e.selection.Edit != nil
}

// EditBuffer returns the live edit buffer, or "" when not editing.
func (e *Editor) EditBuffer() string {
	if !e.IsEditing() {
		return ""
	}
	return e.selection.Edit.Buffer
}
