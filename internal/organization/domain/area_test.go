package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAreaFilter(t *testing.T) {
	t.Run("circle", func(t *testing.T) {
		area, err := ParseAreaFilter("circle:55.7558,37.6173,1000")
		require.NoError(t, err)
		assert.Equal(t, AreaCircle, area.Kind)
		assert.Equal(t, 55.7558, area.Lat)
		assert.Equal(t, 37.6173, area.Lon)
		assert.Equal(t, 1000.0, area.RadiusMeters)
	})

	t.Run("rect", func(t *testing.T) {
		area, err := ParseAreaFilter("rect:55.0,37.0,56.0,38.0")
		require.NoError(t, err)
		assert.Equal(t, AreaRectangle, area.Kind)
		assert.Equal(t, 55.0, area.MinLat)
		assert.Equal(t, 37.0, area.MinLon)
		assert.Equal(t, 56.0, area.MaxLat)
		assert.Equal(t, 38.0, area.MaxLon)
	})

	t.Run("whitespace around parts is tolerated", func(t *testing.T) {
		area, err := ParseAreaFilter("circle: 0 , 0 , 500")
		require.NoError(t, err)
		assert.Equal(t, 500.0, area.RadiusMeters)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		for _, raw := range []string{
			"",
			"circle",
			"circle:55.7558,37.6173",
			"circle:55.7558,37.6173,1000,9",
			"circle:a,b,c",
			"rect:55.0,37.0,56.0",
			"rect:55.0,37.0,56.0,38.0,39.0",
			"sphere:1,2,3",
			"55.7558,37.6173,1000",
		} {
			_, err := ParseAreaFilter(raw)
			assert.ErrorIs(t, err, ErrInvalidArea, "input %q", raw)
		}
	})
}
