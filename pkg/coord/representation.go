package coord

import "math"

// CartesianToSpherical converts (x, y, z) to (theta, phi, r). Angles in degrees.
func CartesianToSpherical(x, y, z float64) (theta, phi, r float64) {
	rho2 := x*x + y*y
	rho := math.Sqrt(rho2)

	return Degrees(math.Atan2(rho, z)), Degrees(math.Atan2(y, x)), math.Sqrt(rho2 + z*z)
}

// SphericalToCartesian converts (theta, phi, r) with angles in degrees to (x, y, z).
func SphericalToCartesian(theta, phi, r float64) (x, y, z float64) {
	st, ct := math.Sincos(Radians(theta))
	sp, cp := math.Sincos(Radians(phi))

	return r * cp * st, r * sp * st, r * ct
}

// SphericalToHorizontal remaps spherical angles to azimuth/elevation.
//
// This is not a frame change: it only holds when both representations share the
// same origin and an ENU-like basis (x east, y north, z up).
func SphericalToHorizontal(theta, phi, r float64) (azimuth, elevation, norm float64) {
	return 90 - phi, 90 - theta, r
}

// HorizontalToSpherical is the inverse of SphericalToHorizontal.
func HorizontalToSpherical(azimuth, elevation, norm float64) (theta, phi, r float64) {
	return 90 - elevation, 90 - azimuth, norm
}

func CartesianToHorizontal(x, y, z float64) (azimuth, elevation, norm float64) {
	return SphericalToHorizontal(CartesianToSpherical(x, y, z))
}

func HorizontalToCartesian(azimuth, elevation, norm float64) (x, y, z float64) {
	return SphericalToCartesian(HorizontalToSpherical(azimuth, elevation, norm))
}

func mapBatch(t components, f func(a, b, c float64) (float64, float64, float64)) components {
	n := t.Len()
	res := components{c: [3][]float64{make([]float64, n), make([]float64, n), make([]float64, n)}}

	for i := 0; i < n; i++ {
		res.c[0][i], res.c[1][i], res.c[2][i] = f(t.c[0][i], t.c[1][i], t.c[2][i])
	}

	return res
}
