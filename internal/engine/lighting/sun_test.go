package lighting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/meadow/pkg/math"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name     string
		lon, lat float32
		want     math.Vec3
	}{
		{"south horizon", 0, 0, math.Vec3{X: 0, Y: 0, Z: 1}},
		{"east horizon", 90, 0, math.Vec3{X: 1, Y: 0, Z: 0}},
		{"zenith", 45, 90, math.Vec3{X: 0, Y: 1, Z: 0}},
		{"north horizon", 180, 0, math.Vec3{X: 0, Y: 0, Z: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.lon, tt.lat)
			assert.InDelta(t, tt.want.X, got.X, 1e-5)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-5)
			assert.InDelta(t, tt.want.Z, got.Z, 1e-5)
			assert.InDelta(t, 1, got.Length(), 1e-5)
		})
	}
}

func TestElevation(t *testing.T) {
	assert.InDelta(t, 0.5, Elevation(SunDirection(30, 30)), 1e-5)
	assert.Less(t, Elevation(SunDirection(0, -10)), float32(0))
	assert.InDelta(t, 1, Elevation(math.Vec3{Y: 4}), 1e-6)
}
