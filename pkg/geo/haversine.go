package geo

import "math"

const (
	// EarthRadiusKm is the mean Earth radius used by [Haversine].
	EarthRadiusKm = 6371.0

	// MilesPerKm converts kilometers to the miles reported by every distance.
	MilesPerKm = 0.62
)

// Haversine returns the great-circle distance in miles between two points
// given in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)
	lat1 = radians(lat1)
	lat2 = radians(lat2)

	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Pow(math.Sin(dLon/2), 2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Asin(math.Sqrt(a))
	return EarthRadiusKm * c * MilesPerKm
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
