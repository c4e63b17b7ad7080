package planner

import (
	"testing"

	"routeplanner/internal/core/domain/model/delivery"
	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// warehouseOnly edits only the warehouse, so history mechanics can be tested
// without solving anything.
func warehouseOnly(previous, next roadgraph.IntersectionID) Edit {
	return &warehouseEdit{previous: previous, next: next, routers: []*services.CourierRouter{nil}}
}

func TestHistory(t *testing.T) {
	r := &round{routers: []*services.CourierRouter{nil}}
	var h History

	h.Execute(r, warehouseOnly("", "A"))
	h.Execute(r, warehouseOnly("A", "B"))
	assert.Equal(t, roadgraph.IntersectionID("B"), r.warehouse)

	e, ok := h.Undo(r)
	require.True(t, ok)
	assert.Equal(t, "set warehouse B", e.Name())
	assert.Equal(t, roadgraph.IntersectionID("A"), r.warehouse)
	assert.True(t, h.CanRedo())

	_, ok = h.Redo(r)
	require.True(t, ok)
	assert.Equal(t, roadgraph.IntersectionID("B"), r.warehouse)

	_, _ = h.Undo(r)
	h.Execute(r, warehouseOnly("A", ""))
	assert.False(t, h.CanRedo())
	assert.Equal(t, roadgraph.IntersectionID(""), r.warehouse)

	_, _ = h.Undo(r)
	_, _ = h.Undo(r)
	_, ok = h.Undo(r)
	assert.False(t, ok)
	assert.Equal(t, roadgraph.IntersectionID(""), r.warehouse)
	assert.False(t, h.CanUndo())

	h.Reset()
	_, ok = h.Redo(r)
	assert.False(t, ok)
}

func TestStopEdits_RestorePosition(t *testing.T) {
	mk := func(id roadgraph.IntersectionID) *delivery.Request {
		req, err := delivery.NewRequest(kernel.NewUUID(), id)
		require.NoError(t, err)
		return req
	}
	a, b, c := mk("a"), mk("b"), mk("c")
	r := &round{requests: []*delivery.Request{a, b, c}, routers: []*services.CourierRouter{nil}}
	shared := r.requests

	e := &removeStopEdit{courier: 0, request: b, position: 1}
	e.Apply(r)
	assert.Equal(t, []*delivery.Request{a, c}, r.requests)
	assert.Equal(t, []*delivery.Request{a, b, c}, shared)

	e.Revert(r)
	assert.Equal(t, []*delivery.Request{a, b, c}, r.requests)

	add := &addStopEdit{courier: 0, request: mk("d"), position: 3}
	add.Apply(r)
	assert.Len(t, r.requests, 4)
	add.Revert(r)
	assert.Equal(t, []*delivery.Request{a, b, c}, r.requests)
}
