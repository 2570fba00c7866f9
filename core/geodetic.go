package core

import (
	"math"
)

// Geodetic2D is a position on the ellipsoid surface in geodetic coordinates
type Geodetic2D struct {
	Longitude float64 // Radians [-π, π], positive = east
	Latitude  float64 // Radians [-π/2, π/2], positive = north
}

// Geodetic3D is a geodetic position with height above the surface
type Geodetic3D struct {
	Longitude float64 // Radians [-π, π], positive = east
	Latitude  float64 // Radians [-π/2, π/2], positive = north
	Height    float64 // Along the surface normal, same unit as the radii
}

// NewGeodetic3D builds a surface position from longitude and latitude in degrees
func NewGeodetic3D(lonDegrees, latDegrees, height float64) Geodetic3D {
	return Geodetic3D{
		Longitude: DegreesToRadians(lonDegrees),
		Latitude:  DegreesToRadians(latDegrees),
		Height:    height,
	}
}

// Surface drops the height
func (g Geodetic3D) Surface() Geodetic2D {
	return Geodetic2D{Longitude: g.Longitude, Latitude: g.Latitude}
}

// DegreesToRadians converts degrees to radians
func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// RadiansToDegrees converts radians to degrees
func RadiansToDegrees(radians float64) float64 {
	return radians * 180.0 / math.Pi
}

// Valid reports whether the coordinates are within range
func (g Geodetic2D) Valid() bool {
	return g.Latitude >= -math.Pi/2 && g.Latitude <= math.Pi/2 &&
		g.Longitude >= -math.Pi && g.Longitude <= math.Pi
}

// NormalizeGeodetic clamps latitude and wraps longitude into [-π, π]
func NormalizeGeodetic(g Geodetic2D) Geodetic2D {
	if g.Latitude > math.Pi/2 {
		g.Latitude = math.Pi / 2
	} else if g.Latitude < -math.Pi/2 {
		g.Latitude = -math.Pi / 2
	}

	for g.Longitude > math.Pi {
		g.Longitude -= 2 * math.Pi
	}
	for g.Longitude < -math.Pi {
		g.Longitude += 2 * math.Pi
	}

	return g
}
