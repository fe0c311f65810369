package editor

import "github.com/example/markup/internal/markup"

// History is the operation log plus the redo buffer.
type History struct {
	log  []markup.Operation
	redo []markup.Operation
}

// Push appends a new user edit. Any redo history is discarded.
func (h *History) Push(op markup.Operation) {
	h.log = append(h.log, op)
	h.redo = nil
}

// Undo moves the newest operation to the redo buffer.
func (h *History) Undo() (markup.Operation, bool) {
	if len(h.log) == 0 {
		return nil, false
	}
	op := h.log[len(h.log)-1]
	h.log[len(h.log)-1] = nil
	h.log = h.log[:len(h.log)-1]
	h.redo = append(h.redo, op)
	return op, true
}

// Redo moves the newest undone operation back onto the log.
func (h *History) Redo() (markup.Operation, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	op := h.redo[len(h.redo)-1]
	h.redo[len(h.redo)-1] = nil
	h.redo = h.redo[:len(h.redo)-1]
	h.log = append(h.log, op)
	return op, true
}

func (h *History) CanUndo() bool { return len(h.log) > 0 }

func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Ops returns the log in replay order. The slice is shared; callers must not
// modify it.
func (h *History) Ops() []markup.Operation { return h.log[:len(h.log):len(h.log)] }

// Len returns the number of logged operations.
func (h *History) Len() int { return len(h.log) }

// RedoLen returns the number of operations available to Redo.
func (h *History) RedoLen() int { return len(h.redo) }

// DropRedo discards the redo buffer.
func (h *History) DropRedo() { h.redo = nil }

// Clear empties both stacks.
func (h *History) Clear() {
	h.log = nil
	h.redo = nil
}
