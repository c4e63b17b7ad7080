package planner

import (
	"slices"

	"routeplanner/internal/core/domain/model/delivery"
	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/core/domain/services"
)

// round is the mutable part of the planner that edits act on.
type round struct {
	warehouse roadgraph.IntersectionID
	requests  []*delivery.Request
	routers   []*services.CourierRouter
}

// Edit is a reversible, already validated change of the round.
type Edit interface {
	Name() string
	Apply(r *round)
	Revert(r *round)
}

// History is a linear undo/redo log: executing a new edit discards the redo stack.
type History struct {
	done   []Edit
	undone []Edit
}

// Execute applies e and records it.
func (h *History) Execute(r *round, e Edit) {
	e.Apply(r)
	h.done = append(h.done, e)
	h.undone = h.undone[:0]
}

// Undo reverts the latest edit. ok is false when there is nothing to undo.
func (h *History) Undo(r *round) (Edit, bool) {
	if len(h.done) == 0 {
		return nil, false
	}
	e := h.done[len(h.done)-1]
	h.done = h.done[:len(h.done)-1]
	e.Revert(r)
	h.undone = append(h.undone, e)
	return e, true
}

// Redo re-applies the latest undone edit. ok is false when there is nothing to redo.
func (h *History) Redo(r *round) (Edit, bool) {
	if len(h.undone) == 0 {
		return nil, false
	}
	e := h.undone[len(h.undone)-1]
	h.undone = h.undone[:len(h.undone)-1]
	e.Apply(r)
	h.done = append(h.done, e)
	return e, true
}

func (h *History) CanUndo() bool { return len(h.done) > 0 }

func (h *History) CanRedo() bool { return len(h.undone) > 0 }

// Reset forgets every edit.
func (h *History) Reset() {
	h.done = nil
	h.undone = nil
}

// addStopEdit puts a new request at the end of the list and swaps one courier's router.
type addStopEdit struct {
	courier  int
	request  *delivery.Request
	position int
	before   *services.CourierRouter
	after    *services.CourierRouter
}

func (e *addStopEdit) Name() string { return "add stop " + string(e.request.Address()) }

func (e *addStopEdit) Apply(r *round) {
	r.requests = slices.Insert(slices.Clone(r.requests), e.position, e.request)
	r.routers[e.courier] = e.after
}

func (e *addStopEdit) Revert(r *round) {
	r.requests = slices.Delete(slices.Clone(r.requests), e.position, e.position+1)
	r.routers[e.courier] = e.before
}

// removeStopEdit drops a request, remembering where it was in the list.
type removeStopEdit struct {
	courier  int
	request  *delivery.Request
	position int
	before   *services.CourierRouter
	after    *services.CourierRouter
}

func (e *removeStopEdit) Name() string { return "remove stop " + string(e.request.Address()) }

func (e *removeStopEdit) Apply(r *round) {
	r.requests = slices.Delete(slices.Clone(r.requests), e.position, e.position+1)
	r.routers[e.courier] = e.after
}

func (e *removeStopEdit) Revert(r *round) {
	r.requests = slices.Insert(slices.Clone(r.requests), e.position, e.request)
	r.routers[e.courier] = e.before
}

// warehouseEdit moves or clears the warehouse. Tours computed for the previous
// warehouse no longer apply, so every courier becomes unassigned.
type warehouseEdit struct {
	previous roadgraph.IntersectionID
	next     roadgraph.IntersectionID
	routers  []*services.CourierRouter
}

func (e *warehouseEdit) Name() string {
	if e.next == "" {
		return "clear warehouse"
	}
	return "set warehouse " + string(e.next)
}

func (e *warehouseEdit) Apply(r *round) {
	r.warehouse = e.next
	r.routers = make([]*services.CourierRouter, len(e.routers))
}

func (e *warehouseEdit) Revert(r *round) {
	r.warehouse = e.previous
	r.routers = slices.Clone(e.routers)
}

// routersEdit swaps the whole router assignment: a recompute or a refinement.
type routersEdit struct {
	name   string
	before []*services.CourierRouter
	after  []*services.CourierRouter
}

func (e *routersEdit) Name() string { return e.name }

func (e *routersEdit) Apply(r *round) {
	r.routers = slices.Clone(e.after)
}

func (e *routersEdit) Revert(r *round) {
	r.routers = slices.Clone(e.before)
}
