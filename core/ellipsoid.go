package core

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ellipsoid is an origin-centred ellipsoid with semi-axes along X, Y and Z.
// Z points to the north pole and X to longitude 0. The zero value is not a
// usable shape; construct one with NewEllipsoid.
type Ellipsoid struct {
	radii               mgl64.Vec3
	radiiSquared        mgl64.Vec3
	radiiToTheFourth    mgl64.Vec3
	oneOverRadii        mgl64.Vec3
	oneOverRadiiSquared mgl64.Vec3
}

var (
	// Wgs84 uses metres
	Wgs84 = MustEllipsoid(6378137.0, 6378137.0, 6356752.314245)
	// ScaledWgs84 is Wgs84 with an equatorial radius of 1
	ScaledWgs84 = MustEllipsoid(1.0, 1.0, 6356752.314245/6378137.0)
	UnitSphere  = MustEllipsoid(1.0, 1.0, 1.0)
)

// NewEllipsoid creates an ellipsoid from its three radii. Every radius must be
// positive and finite.
func NewEllipsoid(x, y, z float64) (Ellipsoid, error) {
	for _, r := range [3]float64{x, y, z} {
		if !(r > 0) || math.IsInf(r, 0) {
			return Ellipsoid{}, fmt.Errorf("%w: ellipsoid radii must be positive, got (%g, %g, %g)",
				ErrInvalidArgument, x, y, z)
		}
	}

	radii := mgl64.Vec3{x, y, z}
	squared := MultiplyComponents(radii, radii)
	return Ellipsoid{
		radii:               radii,
		radiiSquared:        squared,
		radiiToTheFourth:    MultiplyComponents(squared, squared),
		oneOverRadii:        mgl64.Vec3{1 / x, 1 / y, 1 / z},
		oneOverRadiiSquared: mgl64.Vec3{1 / squared[0], 1 / squared[1], 1 / squared[2]},
	}, nil
}

// NewEllipsoidFromRadii is NewEllipsoid taking a vector
func NewEllipsoidFromRadii(radii mgl64.Vec3) (Ellipsoid, error) {
	return NewEllipsoid(radii[0], radii[1], radii[2])
}

// MustEllipsoid is like NewEllipsoid but panics on invalid radii
func MustEllipsoid(x, y, z float64) Ellipsoid {
	e, err := NewEllipsoid(x, y, z)
	if err != nil {
		panic(err)
	}
	return e
}

// Valid reports whether e was built by NewEllipsoid
func (e Ellipsoid) Valid() bool {
	return e.radii[0] > 0 && e.radii[1] > 0 && e.radii[2] > 0
}

// Radii returns the semi-axes along x, y and z
func (e Ellipsoid) Radii() mgl64.Vec3 { return e.radii }

// RadiiSquared returns each radius squared
func (e Ellipsoid) RadiiSquared() mgl64.Vec3 { return e.radiiSquared }

// OneOverRadii returns the reciprocal of each radius
func (e Ellipsoid) OneOverRadii() mgl64.Vec3 { return e.oneOverRadii }

// OneOverRadiiSquared returns the reciprocal of each squared radius
func (e Ellipsoid) OneOverRadiiSquared() mgl64.Vec3 { return e.oneOverRadiiSquared }

// MaximumRadius returns the largest of the three radii
func (e Ellipsoid) MaximumRadius() float64 {
	return math.Max(e.radii[0], math.Max(e.radii[1], e.radii[2]))
}

// MinimumRadius returns the smallest of the three radii
func (e Ellipsoid) MinimumRadius() float64 {
	return math.Min(e.radii[0], math.Min(e.radii[1], e.radii[2]))
}

func (e Ellipsoid) String() string {
	return fmt.Sprintf("Ellipsoid(%g, %g, %g)", e.radii[0], e.radii[1], e.radii[2])
}

// DeticSurfaceNormal returns the geodetic normal at a point on or near the
// surface: perpendicular to the ellipsoid, not to the sphere through p.
func (e Ellipsoid) DeticSurfaceNormal(p mgl64.Vec3) mgl64.Vec3 {
	return MultiplyComponents(p, e.oneOverRadiiSquared).Normalize()
}

// CentricSurfaceNormal returns the geocentric normal, the direction of p
func (e Ellipsoid) CentricSurfaceNormal(p mgl64.Vec3) mgl64.Vec3 {
	return p.Normalize()
}

// GeodeticSurfaceNormal returns the surface normal at a geodetic position
func (e Ellipsoid) GeodeticSurfaceNormal(g Geodetic3D) mgl64.Vec3 {
	cosLat := math.Cos(g.Latitude)
	return mgl64.Vec3{
		cosLat * math.Cos(g.Longitude),
		cosLat * math.Sin(g.Longitude),
		math.Sin(g.Latitude),
	}
}

// ToVector3D converts a geodetic position to Cartesian coordinates
func (e Ellipsoid) ToVector3D(g Geodetic3D) mgl64.Vec3 {
	n := e.GeodeticSurfaceNormal(g)
	k := MultiplyComponents(e.radiiSquared, n)
	gamma := math.Sqrt(k.Dot(n))

	surface := k.Mul(1 / gamma)
	return surface.Add(n.Mul(g.Height))
}

// ToGeodetic2D converts a Cartesian position to longitude and latitude of
// the nearest surface point
func (e Ellipsoid) ToGeodetic2D(p mgl64.Vec3) Geodetic2D {
	n := e.DeticSurfaceNormal(e.ScaleToGeodeticSurface(p))
	return Geodetic2D{
		Longitude: math.Atan2(n[1], n[0]),
		Latitude:  math.Asin(n[2] / n.Len()),
	}
}

// ToGeodetic3D converts a Cartesian position to geodetic coordinates. The
// height is negative below the surface.
func (e Ellipsoid) ToGeodetic3D(p mgl64.Vec3) Geodetic3D {
	surface := e.ScaleToGeodeticSurface(p)
	h := p.Sub(surface)
	height := h.Len()
	if h.Dot(p) < 0 {
		height = -height
	}

	g := e.ToGeodetic2D(surface)
	return Geodetic3D{Longitude: g.Longitude, Latitude: g.Latitude, Height: height}
}

// maxGeodeticIterations bounds the Newton iteration in ScaleToGeodeticSurface
const maxGeodeticIterations = 64

// ScaleToGeodeticSurface returns the surface point nearest to p, found by
// Newton's method on the distance along the geodetic normal. Undefined at
// the centre.
func (e Ellipsoid) ScaleToGeodeticSurface(p mgl64.Vec3) mgl64.Vec3 {
	oorr := e.oneOverRadiiSquared
	beta := 1.0 / math.Sqrt(p[0]*p[0]*oorr[0]+p[1]*p[1]*oorr[1]+p[2]*p[2]*oorr[2])
	n := mgl64.Vec3{beta * p[0] * oorr[0], beta * p[1] * oorr[1], beta * p[2] * oorr[2]}.Len()
	alpha := (1.0 - beta) * (p.Len() / n)

	x2, y2, z2 := p[0]*p[0], p[1]*p[1], p[2]*p[2]

	var da, db, dc float64
	s := 0.0
	dSdA := 1.0
	for i := 0; i < maxGeodeticIterations; i++ {
		alpha -= s / dSdA

		da = 1.0 + alpha*oorr[0]
		db = 1.0 + alpha*oorr[1]
		dc = 1.0 + alpha*oorr[2]

		da2, db2, dc2 := da*da, db*db, dc*dc
		da3, db3, dc3 := da*da2, db*db2, dc*dc2

		s = x2/(e.radiiSquared[0]*da2) + y2/(e.radiiSquared[1]*db2) + z2/(e.radiiSquared[2]*dc2) - 1.0
		dSdA = -2.0 * (x2/(e.radiiToTheFourth[0]*da3) +
			y2/(e.radiiToTheFourth[1]*db3) +
			z2/(e.radiiToTheFourth[2]*dc3))

		if math.Abs(s) <= 1e-10 {
			break
		}
	}

	return mgl64.Vec3{p[0] / da, p[1] / db, p[2] / dc}
}

// ScaleToGeocentricSurface moves p along the ray from the centre onto the
// surface
func (e Ellipsoid) ScaleToGeocentricSurface(p mgl64.Vec3) mgl64.Vec3 {
	oorr := e.oneOverRadiiSquared
	beta := 1.0 / math.Sqrt(p[0]*p[0]*oorr[0]+p[1]*p[1]*oorr[1]+p[2]*p[2]*oorr[2])
	return p.Mul(beta)
}

// Intersections returns the ray parameters, in ascending order, at which the
// ray origin + t*direction crosses the surface. The direction is normalized
// first. A miss returns nil and a tangent ray returns one value.
func (e Ellipsoid) Intersections(origin, direction mgl64.Vec3) []float64 {
	d := direction.Normalize()
	oorr := e.oneOverRadiiSquared

	a := d[0]*d[0]*oorr[0] + d[1]*d[1]*oorr[1] + d[2]*d[2]*oorr[2]
	b := 2.0 * (origin[0]*d[0]*oorr[0] + origin[1]*d[1]*oorr[1] + origin[2]*d[2]*oorr[2])
	c := origin[0]*origin[0]*oorr[0] + origin[1]*origin[1]*oorr[1] + origin[2]*origin[2]*oorr[2] - 1.0

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}
	if discriminant == 0 {
		return []float64{-0.5 * b / a}
	}

	t := -0.5 * (b + math.Copysign(math.Sqrt(discriminant), b))
	root1 := t / a
	root2 := c / t
	if root1 > root2 {
		root1, root2 = root2, root1
	}
	return []float64{root1, root2}
}

// MultiplyComponents returns the component-wise product of a and b
func MultiplyComponents(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
