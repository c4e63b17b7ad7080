package kernel_test

import (
	"math"
	"testing"

	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	t.Run("valid coordinates", func(t *testing.T) {
		loc, err := kernel.NewLocation(45.7597, 4.8422)

		require.NoError(t, err)
		assert.InDelta(t, 45.7597, loc.Latitude(), 1e-12)
		assert.InDelta(t, 4.8422, loc.Longitude(), 1e-12)
		assert.NoError(t, loc.Validate())
	})

	t.Run("boundaries are inclusive", func(t *testing.T) {
		_, err := kernel.NewLocation(kernel.LatitudeMax, kernel.LongitudeMin)
		require.NoError(t, err)
	})

	testCases := []struct {
		name     string
		lat, lon float64
		param    string
	}{
		{name: "latitude too high", lat: 90.5, lon: 0, param: "latitude"},
		{name: "latitude too low", lat: -91, lon: 0, param: "latitude"},
		{name: "longitude too high", lat: 0, lon: 181, param: "longitude"},
		{name: "longitude NaN", lat: 0, lon: math.NaN(), param: "longitude"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := kernel.NewLocation(tc.lat, tc.lon)

			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			assert.Contains(t, err.Error(), tc.param)
		})
	}

	t.Run("both invalid are joined", func(t *testing.T) {
		_, err := kernel.NewLocation(100, 200)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})
}

func TestLocation_DistanceTo(t *testing.T) {
	t.Run("same point is zero", func(t *testing.T) {
		a, _ := kernel.NewLocation(45.75, 4.85)

		d, err := a.DistanceTo(a)

		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-9)
	})

	t.Run("one degree of latitude is about 111 km", func(t *testing.T) {
		a, _ := kernel.NewLocation(0, 0)
		b, _ := kernel.NewLocation(1, 0)

		d, err := a.DistanceTo(b)

		require.NoError(t, err)
		assert.InDelta(t, 111_195, d, 50)
	})

	t.Run("zero value is rejected", func(t *testing.T) {
		a, _ := kernel.NewLocation(0, 0)
		var zero kernel.Location

		_, err := a.DistanceTo(zero)

		require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
	})
}

func TestLocation_IsEqual(t *testing.T) {
	a, _ := kernel.NewLocation(1, 2)
	b, _ := kernel.NewLocation(1, 2)
	c, _ := kernel.NewLocation(2, 1)

	eq, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, eq)
	assert.Equal(t, "Location(1.000000,2.000000)", a.String())
}
