// Package geo provides great-circle math for proximity search.
package geo

import "math"

// EarthRadiusMeters is the sphere radius used by the distance contract.
// Clients compare returned distances against values computed with this
// exact formulation, so it must not change.
const EarthRadiusMeters = 6371000.0

// Haversine returns the great-circle distance in meters between two
// latitude/longitude points given in decimal degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := radians(lat1)
	rlon1 := radians(lon1)
	rlat2 := radians(lat2)
	rlon2 := radians(lon2)

	dlat := rlat2 - rlat1
	dlon := rlon2 - rlon1

	a := math.Pow(math.Sin(dlat/2), 2) + math.Cos(rlat1)*math.Cos(rlat2)*math.Pow(math.Sin(dlon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
