package cqc

import "math"

// earthRadiusMiles keeps distances in miles to match the radius
// parameter callers pass.
const earthRadiusMiles = 3959

// Distance computes the great-circle distance in miles between two
// points using the Haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

// roundTenth rounds a distance to one decimal place for display.
func roundTenth(d float64) float64 {
	return math.Round(d*10) / 10
}
