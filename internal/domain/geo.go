package domain

import "math"

// Mean earth radius in meters, matching the map widget's spherical model.
const EarthRadiusMeters = 6378137.0

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }

// AngleBetween returns the central angle in radians between two coordinates (haversine).
func AngleBetween(from, to LatLng) float64 {
	lat1 := toRadians(from.Lat)
	lat2 := toRadians(to.Lat)
	dLat := lat2 - lat1
	dLng := toRadians(to.Lng - from.Lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * math.Asin(math.Min(1, math.Sqrt(a)))
}

// DistanceMeters returns the great-circle distance between two coordinates.
func DistanceMeters(from, to LatLng) float64 {
	return AngleBetween(from, to) * EarthRadiusMeters
}

// Interpolate returns the point at the given fraction along the great circle from -> to.
//
// fraction 0 returns from, 1 returns to. Nearly coincident points fall back to linear
// interpolation to avoid dividing by a vanishing sine.
func Interpolate(from, to LatLng, fraction float64) LatLng {
	angle := AngleBetween(from, to)
	sinAngle := math.Sin(angle)
	if sinAngle < 1e-6 {
		return LatLng{
			Lat: from.Lat + fraction*(to.Lat-from.Lat),
			Lng: from.Lng + fraction*(to.Lng-from.Lng),
		}
	}

	lat1, lng1 := toRadians(from.Lat), toRadians(from.Lng)
	lat2, lng2 := toRadians(to.Lat), toRadians(to.Lng)

	a := math.Sin((1-fraction)*angle) / sinAngle
	b := math.Sin(fraction*angle) / sinAngle

	x := a*math.Cos(lat1)*math.Cos(lng1) + b*math.Cos(lat2)*math.Cos(lng2)
	y := a*math.Cos(lat1)*math.Sin(lng1) + b*math.Cos(lat2)*math.Sin(lng2)
	z := a*math.Sin(lat1) + b*math.Sin(lat2)

	return LatLng{
		Lat: toDegrees(math.Atan2(z, math.Sqrt(x*x+y*y))),
		Lng: toDegrees(math.Atan2(y, x)),
	}
}

// Midpoint is the spherical interpolation of two coordinates at fraction 0.5.
func Midpoint(a, b LatLng) LatLng {
	return Interpolate(a, b, 0.5)
}

// Offset returns the coordinate reached by travelling distanceMeters from origin
// along the initial bearing headingDeg (clockwise from north).
func Offset(origin LatLng, distanceMeters, headingDeg float64) LatLng {
	d := distanceMeters / EarthRadiusMeters
	heading := toRadians(headingDeg)
	lat := toRadians(origin.Lat)
	lng := toRadians(origin.Lng)

	sinLat := math.Sin(lat)*math.Cos(d) + math.Cos(lat)*math.Sin(d)*math.Cos(heading)
	dLng := math.Atan2(
		math.Sin(heading)*math.Sin(d)*math.Cos(lat),
		math.Cos(d)-math.Sin(lat)*sinLat,
	)

	return LatLng{
		Lat: toDegrees(math.Asin(sinLat)),
		Lng: toDegrees(lng + dLng),
	}
}

// CirclePath approximates a circle of radiusMeters around center with a closed ring
// of segments+1 points (first == last).
func CirclePath(center LatLng, radiusMeters float64, segments int) []LatLng {
	if segments < 3 {
		segments = 3
	}

	ring := make([]LatLng, 0, segments+1)
	for i := 0; i < segments; i++ {
		ring = append(ring, Offset(center, radiusMeters, float64(i)*360/float64(segments)))
	}
	ring = append(ring, ring[0])

	return ring
}
