package coord

import "github.com/golang/geo/s1"

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return (s1.Angle(deg) * s1.Degree).Radians()
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return s1.Angle(rad).Degrees()
}
