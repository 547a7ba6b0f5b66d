// Package geo computes great-circle distances between coordinates.
package geo

import "math"

// EarthRadiusMiles is the mean earth radius used for all distances.
const EarthRadiusMiles = 3958.8

type Point struct {
	Lat  float64
	Long float64
}

// Distance returns the haversine distance between a and b in miles.
func Distance(a, b Point) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := lat2 - lat1
	dLong := toRadians(b.Long - a.Long)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLong/2)*math.Sin(dLong/2)
	return 2 * EarthRadiusMiles * math.Asin(math.Min(1, math.Sqrt(h)))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
