// Package scene owns the ordered, keyed collection of elements and the
// mutation operations over it. Identity and z-order live here; the
// interaction controller and the property panel both mutate the scene
// exclusively through these operations.
package scene

import (
	"sort"

	"github.com/slateboard/slateboard/internal/typeid"
)

// Direction selects which end of the paint order a reorder targets.
type Direction string

const (
	DirectionFront Direction = "front"
	DirectionBack  Direction = "back"
)

// Scene is the element collection. Insertion order is preserved for
// equal-zIndex paint-order ties and for serialization. Mutations
// referencing an absent id are silent no-ops: a deletion racing a
// queued patch is expected, not an error.
type Scene struct {
	order []Element
	byID  map[string]Element
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{byID: make(map[string]Element)}
}

// Restore rebuilds a scene from already-identified elements, in the
// given order. Used by the persistence codec: ids are kept as-is,
// never regenerated.
func Restore(elements []Element) *Scene {
	s := New()
	for _, el := range elements {
		s.order = append(s.order, el)
		s.byID[el.Common().ID] = el
	}
	return s
}

// Add inserts the element, assigning a fresh identifier and a zIndex
// of max(existing)+1, or 1 for an empty scene. Returns the new id.
func (s *Scene) Add(el Element) string {
	a := el.Common()
	a.ID = typeid.NewElementID()
	a.SetBounds(a.Bounds()) // clamp any caller-supplied size

	if len(s.order) == 0 {
		a.ZIndex = 1
	} else {
		maxZ := s.order[0].Common().ZIndex
		for _, other := range s.order[1:] {
			if z := other.Common().ZIndex; z > maxZ {
				maxZ = z
			}
		}
		a.ZIndex = maxZ + 1
	}

	s.order = append(s.order, el)
	s.byID[a.ID] = el
	return a.ID
}

// Get returns the element with the given id.
func (s *Scene) Get(id string) (Element, bool) {
	el, ok := s.byID[id]
	return el, ok
}

// Patch applies a partial update to one element. Reports whether an
// element was patched; an absent id is a no-op.
func (s *Scene) Patch(id string, p Patch) bool {
	el, ok := s.byID[id]
	if !ok {
		return false
	}
	apply(el, p)
	return true
}

// Delete removes the element. Its identifier is never reused. No-op if
// the id is absent.
func (s *Scene) Delete(id string) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	for i, el := range s.order {
		if el.Common().ID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Duplicate clones an element: full attribute copy with a fresh id,
// position offset by DuplicateOffset on both axes, and zIndex one
// above the source's. Returns the new id, or "" if the source is
// absent.
func (s *Scene) Duplicate(id string) string {
	src, ok := s.byID[id]
	if !ok {
		return ""
	}

	clone := src.Clone()
	a := clone.Common()
	a.ID = typeid.NewElementID()
	a.X += DuplicateOffset
	a.Y += DuplicateOffset
	a.ZIndex = src.Common().ZIndex + 1

	s.order = append(s.order, clone)
	s.byID[a.ID] = clone
	return a.ID
}

// Reorder sends an element to the front or back of the paint order.
// Front sets zIndex to 1+max(all zIndex, floored at 0); back sets it
// to min(all zIndex, capped at 0)-1. Reports whether an element was
// reordered; an absent id is a no-op.
//
// The max/min scans are O(n) per call, which is fine at this scale; a
// cached extremum invalidated on insert/delete would remove even that.
func (s *Scene) Reorder(id string, dir Direction) bool {
	el, ok := s.byID[id]
	if !ok {
		return false
	}

	switch dir {
	case DirectionFront:
		maxZ := 0
		for _, other := range s.order {
			if z := other.Common().ZIndex; z > maxZ {
				maxZ = z
			}
		}
		el.Common().ZIndex = maxZ + 1
	case DirectionBack:
		minZ := 0
		for _, other := range s.order {
			if z := other.Common().ZIndex; z < minZ {
				minZ = z
			}
		}
		el.Common().ZIndex = minZ - 1
	default:
		return false
	}
	return true
}

// PaintOrder returns the elements sorted by zIndex ascending, ties
// broken by insertion order. Recomputed on every call rather than
// cached, so render passes always see the live order.
func (s *Scene) PaintOrder() []Element {
	out := make([]Element, len(s.order))
	copy(out, s.order)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Common().ZIndex < out[j].Common().ZIndex
	})
	return out
}

// Elements returns the elements in insertion order.
func (s *Scene) Elements() []Element {
	out := make([]Element, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of elements.
func (s *Scene) Len() int {
	return len(s.order)
}
