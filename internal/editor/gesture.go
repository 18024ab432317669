package editor

import (
	"github.com/slateboard/slateboard/internal/geometry"
)

// Mode distinguishes the two pointer gestures.
type Mode string

const (
	ModeMove   Mode = "move"
	ModeResize Mode = "resize"
)

// gesture is one in-progress pointer drag. It stores the geometry and
// pointer position captured at pointer-down; every pointer-move frame
// recomputes from those anchors and the cumulative delta, so rounding
// never accumulates across frames. The held start geometry doubles as
// the open-transaction record a future undo could commit or discard.
type gesture struct {
	elementID    string
	mode         Mode
	corner       geometry.Corner
	startPointer geometry.Point
	start        geometry.Rect
}

// GestureState is the externally visible drag state, synced to editing
// surfaces so they can draw feedback.
type GestureState struct {
	Active    bool            `json:"active"`
	ElementID string          `json:"elementId,omitempty"`
	Mode      Mode            `json:"mode,omitempty"`
	Corner    geometry.Corner `json:"corner,omitempty"`
}

// Gesture returns the current drag state.
func (e *Editor) Gesture() GestureState {
	if e.drag == nil {
		return GestureState{}
	}
	return GestureState{
		Active:    true,
		ElementID: e.drag.elementID,
		Mode:      e.drag.mode,
		Corner:    e.drag.corner,
	}
}
