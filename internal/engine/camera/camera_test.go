package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionDistance(t *testing.T) {
	c := NewOrbitCamera()
	c.RotationY = 1.1
	assert.InDelta(t, c.Distance, c.Position().Sub(c.Center).Length(), 1e-4)
	assert.Greater(t, c.Position().Y, float32(0))
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()

	c.HandleDrag(0, 1e6)
	assert.Equal(t, c.MaxPitch, c.RotationX)

	c.HandleDrag(0, -1e6)
	assert.Equal(t, c.MinPitch, c.RotationX)

	c.HandleDrag(100, 0)
	assert.InDelta(t, -0.5, c.RotationY, 1e-6)
}

func TestHandleZoomClamps(t *testing.T) {
	c := NewOrbitCamera()
	before := c.Distance

	c.HandleZoom(1)
	assert.Less(t, c.Distance, before)

	for i := 0; i < 200; i++ {
		c.HandleZoom(1)
	}
	assert.Equal(t, c.MinDistance, c.Distance)

	for i := 0; i < 500; i++ {
		c.HandleZoom(-1)
	}
	assert.Equal(t, c.MaxDistance, c.Distance)
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.RotationY = 2
	c.FitToBounds(20, 5)

	assert.InDelta(t, 24, c.Distance, 1e-5)
	assert.Equal(t, float32(0), c.RotationY)
}
