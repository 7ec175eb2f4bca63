package geo

import (
	"math"
)

// EarthRadiusM is the mean Earth radius used for great-circle distances.
const EarthRadiusM = 6371000.0

type Point struct {
	Latitude  float64
	Longitude float64
}

// Distance returns the great-circle distance between two points in meters,
// computed with the haversine formula. Coordinates are assumed to already
// be validated; out-of-range input is the caller's problem.
func Distance(a, b Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * EarthRadiusM * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// BoundingBox is a latitude/longitude rectangle guaranteed to contain every
// point within some radius of its center.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// metersPerDegreeLat is the length of one degree of latitude, derived from
// the same Earth radius as Distance so the box never undershoots it.
const metersPerDegreeLat = EarthRadiusM * math.Pi / 180

// BoundingBoxAround returns a box containing all points within radiusM of
// center. Longitude degrees shrink with latitude, so the longitude span is
// widened by 1/cos(lat); near the poles it degrades to the full range.
func BoundingBoxAround(center Point, radiusM float64) BoundingBox {
	dLat := radiusM / metersPerDegreeLat

	cosLat := math.Cos(center.Latitude * math.Pi / 180)
	var dLon float64
	if cosLat < 1e-6 {
		dLon = 180
	} else {
		dLon = radiusM / (metersPerDegreeLat * cosLat)
	}

	return BoundingBox{
		MinLat: math.Max(center.Latitude-dLat, -90),
		MaxLat: math.Min(center.Latitude+dLat, 90),
		MinLon: math.Max(center.Longitude-dLon, -180),
		MaxLon: math.Min(center.Longitude+dLon, 180),
	}
}
