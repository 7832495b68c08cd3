// Package lighting provides light types and sun/moon geometry for the scene.
package lighting

import "math"

// Direction converts horizontal coordinates to a unit vector pointing at the body.
// Azimuth is rotation around the Y axis in degrees, elevation is degrees above the horizon.
func Direction(azimuth, elevation float64) [3]float32 {
	azRad := azimuth * math.Pi / 180.0
	elRad := elevation * math.Pi / 180.0

	x := float32(math.Cos(elRad) * math.Sin(azRad))
	y := float32(math.Sin(elRad))
	z := float32(math.Cos(elRad) * math.Cos(azRad))

	return [3]float32{x, y, z}
}

// OrbitPosition places a body at radius along dir.
func OrbitPosition(dir [3]float32, radius float64) [3]float32 {
	r := float32(radius)
	return [3]float32{dir[0] * r, dir[1] * r, dir[2] * r}
}

// Horizontal computes elevation and azimuth in degrees for a body at the given
// hour angle and declination seen from latitude (all in degrees).
// Azimuth is measured from north through east, in [0, 360).
func Horizontal(hourAngle, declination, latitude float64) (elevation, azimuth float64) {
	h := hourAngle * math.Pi / 180
	d := declination * math.Pi / 180
	phi := latitude * math.Pi / 180

	sinEl := math.Sin(phi)*math.Sin(d) + math.Cos(phi)*math.Cos(d)*math.Cos(h)
	sinEl = math.Max(-1, math.Min(1, sinEl))
	el := math.Asin(sinEl)

	az := math.Atan2(
		-math.Cos(d)*math.Sin(h),
		math.Sin(d)*math.Cos(phi)-math.Cos(d)*math.Sin(phi)*math.Cos(h),
	)
	azimuth = math.Mod(az*180/math.Pi+360, 360)

	return el * 180 / math.Pi, azimuth
}
