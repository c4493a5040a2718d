package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	t.Run("zero distance for identical points", func(t *testing.T) {
		assert.Zero(t, Haversine(55.7558, 37.6173, 55.7558, 37.6173))
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		// 1 degree of latitude on the reference sphere is R * pi/180.
		d := Haversine(0, 0, 1, 0)
		assert.InDelta(t, 111194.9, d, 1)
	})

	t.Run("moscow to saint petersburg", func(t *testing.T) {
		d := Haversine(55.7558, 37.6173, 59.9343, 30.3351)
		assert.InDelta(t, 633000, d, 2500)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Haversine(55.7558, 37.6173, 56.8380, 60.5970)
		b := Haversine(56.8380, 60.5970, 55.7558, 37.6173)
		assert.InDelta(t, a, b, 1e-6)
	})

	t.Run("monotonic with separation", func(t *testing.T) {
		near := Haversine(55.7558, 37.6173, 55.7600, 37.6200)
		far := Haversine(55.7558, 37.6173, 55.7800, 37.6300)
		assert.Less(t, near, far)
	})
}
