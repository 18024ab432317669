//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/slateboard/slateboard/internal/document"
	"github.com/slateboard/slateboard/internal/editor"
	"github.com/slateboard/slateboard/internal/scene"
)

var ed *editor.Editor

func main() {
	ed = editor.New()

	api := js.Global().Get("Object").New()

	// --- Documents ---
	api.Set("loadDocument", js.FuncOf(loadDocument))
	api.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	api.Set("serialize", js.FuncOf(serialize))
	api.Set("isDirty", js.FuncOf(isDirty))
	api.Set("markSaved", js.FuncOf(markSaved))

	// --- Pointer events ---
	api.Set("pointerDown", js.FuncOf(pointerDown))
	api.Set("pointerMove", js.FuncOf(pointerMove))
	api.Set("pointerUp", js.FuncOf(pointerUp))
	api.Set("pointerLeave", js.FuncOf(pointerLeave))

	// --- Element operations ---
	api.Set("addElement", js.FuncOf(addElement))
	api.Set("patchElement", js.FuncOf(patchElement))
	api.Set("deleteElement", js.FuncOf(deleteElement))
	api.Set("duplicateElement", js.FuncOf(duplicateElement))
	api.Set("reorderElement", js.FuncOf(reorderElement))

	// --- Selection and editing ---
	api.Set("select", js.FuncOf(selectElement))
	api.Set("clearSelection", js.FuncOf(clearSelection))
	api.Set("getSelection", js.FuncOf(getSelection))
	api.Set("beginEdit", js.FuncOf(beginEdit))
	api.Set("setEditText", js.FuncOf(setEditText))
	api.Set("commitEdit", js.FuncOf(commitEdit))
	api.Set("cancelEdit", js.FuncOf(cancelEdit))

	// --- Canvas ---
	api.Set("setTheme", js.FuncOf(setTheme))
	api.Set("getTheme", js.FuncOf(getTheme))
	api.Set("setCanvasSize", js.FuncOf(setCanvasSize))
	api.Set("getGesture", js.FuncOf(getGesture))
	api.Set("hitTest", js.FuncOf(hitTest))

	js.Global().Set("slateboardEditor", api)
	js.Global().Set("slateboardWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func ok() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func fail(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{"error": msg})
}

// --- Documents ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return fail("missing document JSON")
	}
	if err := ed.Load([]byte(args[0].String())); err != nil {
		return fail(err.Error())
	}
	return ok()
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	if err := ed.LoadDocument(document.NewSampleDocument()); err != nil {
		return fail(err.Error())
	}
	return ok()
}

func serialize(this js.Value, args []js.Value) interface{} {
	data, err := ed.Serialize()
	if err != nil {
		return fail(err.Error())
	}
	return js.ValueOf(string(data))
}

func isDirty(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.Dirty())
}

func markSaved(this js.Value, args []js.Value) interface{} {
	ed.MarkSaved()
	return nil
}

// --- Pointer events ---

func pointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	ed.PointerDown(args[0].Float(), args[1].Float())
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	ed.PointerMove(args[0].Float(), args[1].Float())
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	ed.PointerUp()
	return nil
}

func pointerLeave(this js.Value, args []js.Value) interface{} {
	ed.PointerLeave()
	return nil
}

// --- Element operations ---

func addElement(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return fail("missing kind")
	}

	var el scene.Element
	switch scene.Kind(args[0].String()) {
	case scene.KindImage:
		source := ""
		if len(args) > 1 {
			source = args[1].String()
		}
		el = scene.NewImage(source)
	case scene.KindText:
		text := ""
		if len(args) > 1 {
			text = args[1].String()
		}
		el = scene.NewText(text)
	case scene.KindSwatch:
		fill := ""
		if len(args) > 1 {
			fill = args[1].String()
		}
		el = scene.NewSwatch(fill)
	default:
		return fail("unknown element kind: " + args[0].String())
	}

	return js.ValueOf(ed.Add(el))
}

func patchElement(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return fail("missing id or patch JSON")
	}
	var p scene.Patch
	if err := json.Unmarshal([]byte(args[1].String()), &p); err != nil {
		return fail("invalid patch: " + err.Error())
	}
	ed.Patch(args[0].String(), p)
	return ok()
}

func deleteElement(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	ed.Delete(args[0].String())
	return nil
}

func duplicateElement(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf("")
	}
	return js.ValueOf(ed.Duplicate(args[0].String()))
}

func reorderElement(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	ed.Reorder(args[0].String(), scene.Direction(args[1].String()))
	return nil
}

// --- Selection and editing ---

func selectElement(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	ed.Select(args[0].String())
	return nil
}

func clearSelection(this js.Value, args []js.Value) interface{} {
	ed.ClearSelection()
	return nil
}

func getSelection(this js.Value, args []js.Value) interface{} {
	id, selected := ed.Selected()
	return js.ValueOf(map[string]interface{}{
		"id":         id,
		"selected":   selected,
		"editing":    ed.IsEditing(),
		"editBuffer": ed.EditBuffer(),
	})
}

func beginEdit(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	ed.BeginEdit(args[0].String())
	return nil
}

func setEditText(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	ed.SetEditText(args[0].String())
	return nil
}

func commitEdit(this js.Value, args []js.Value) interface{} {
	ed.CommitEdit()
	return nil
}

func cancelEdit(this js.Value, args []js.Value) interface{} {
	ed.CancelEdit()
	return nil
}

// --- Canvas ---

func setTheme(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	ed.SetTheme(document.Theme(args[0].String()))
	return nil
}

func getTheme(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(string(ed.Theme()))
}

func setCanvasSize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	ed.SetCanvasSize(args[0].Float(), args[1].Float())
	return nil
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	id, _ := ed.HitTest(args[0].Float(), args[1].Float())
	return js.ValueOf(id)
}

func getGesture(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(ed.Gesture())
	if err != nil {
		return js.ValueOf("{}")
	}
	return js.ValueOf(string(data))
}
