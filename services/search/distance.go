package search

import "math"

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// DistanceKm is the great-circle distance used by the search query,
// evaluated in Go.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	c := math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Cos(radians(lng2)-radians(lng1)) +
		math.Sin(radians(lat1))*math.Sin(radians(lat2))
	c = math.Max(-1, math.Min(1, c))
	return earthRadiusKm * math.Acos(c)
}
