package delivery_test

import (
	"testing"

	"routeplanner/internal/core/domain/model/delivery"
	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	validID := kernel.NewUUID()

	t.Run("should create pending request", func(t *testing.T) {
		r, err := delivery.NewRequest(validID, "25303831")

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.True(t, r.ID().IsEqual(validID))
		assert.EqualValues(t, "25303831", r.Address())
		assert.Equal(t, delivery.Pending, r.Status())
		assert.Nil(t, r.Courier())
	})

	t.Run("should aggregate id and address errors", func(t *testing.T) {
		var invalidID kernel.UUID

		r, err := delivery.NewRequest(invalidID, "")

		require.Error(t, err)
		assert.Nil(t, r)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRequest_Validate(t *testing.T) {
	var zero delivery.Request
	var nilRequest *delivery.Request

	assert.ErrorIs(t, zero.Validate(), delivery.ErrRequestIsNotConstructed)
	assert.ErrorIs(t, nilRequest.Validate(), delivery.ErrRequestIsNotConstructed)
}

func TestRequest_AssignUnassign(t *testing.T) {
	r, err := delivery.NewRequest(kernel.NewUUID(), "A")
	require.NoError(t, err)
	first, second := kernel.NewUUID(), kernel.NewUUID()

	t.Run("assign pending request", func(t *testing.T) {
		require.NoError(t, r.Assign(first))

		assert.Equal(t, delivery.Assigned, r.Status())
		require.NotNil(t, r.Courier())
		assert.True(t, r.Courier().IsEqual(first))
	})

	t.Run("reassign to another courier", func(t *testing.T) {
		require.NoError(t, r.Assign(second))

		assert.True(t, r.Courier().IsEqual(second))
	})

	t.Run("invalid courier id leaves request untouched", func(t *testing.T) {
		err := r.Assign(kernel.UUID{})

		require.Error(t, err)
		assert.True(t, r.Courier().IsEqual(second))
	})

	t.Run("unassign", func(t *testing.T) {
		require.NoError(t, r.Unassign())

		assert.Equal(t, delivery.Pending, r.Status())
		assert.Nil(t, r.Courier())
	})

	t.Run("unassign pending request fails", func(t *testing.T) {
		err := r.Unassign()

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus(t *testing.T) {
	testCases := []struct {
		status  delivery.Status
		name    string
		isValid bool
	}{
		{delivery.Unknown, "Unknown", false},
		{delivery.Pending, "Pending", true},
		{delivery.Assigned, "Assigned", true},
		{delivery.Status(42), "Unknown", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.name, tc.status.String())
			if tc.isValid {
				assert.NoError(t, tc.status.Validate())
			} else {
				assert.ErrorIs(t, tc.status.Validate(), errs.ErrValueIsInvalid)
			}
		})
	}

	t.Run("unknown cannot be assigned", func(t *testing.T) {
		_, err := delivery.Unknown.Assign()
		assert.Error(t, err)
	})
}
