// Package lighting provides the directional light used for blade shading.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meadow/pkg/math"
)

// SunDirection converts longitude/latitude angles in degrees to a unit
// vector pointing towards the sun. Longitude rotates around Y starting at
// +Z, latitude is the elevation above the horizon.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lon := longitude * math32.Pi / 180
	lat := latitude * math32.Pi / 180

	return math.Vec3{
		X: math32.Cos(lat) * math32.Sin(lon),
		Y: math32.Sin(lat),
		Z: math32.Cos(lat) * math32.Cos(lon),
	}
}

// Elevation reports the sun's height above the horizon for dir, in the
// range [-1, 1]. Values at or below zero mean the sun has set.
func Elevation(dir math.Vec3) float32 {
	return dir.Normalize().Y
}
