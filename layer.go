package cubesim

import "math"

// SelectLayer returns the cubies whose coordinate on axis equals layer.
// An invalid axis or layer selects nothing.
func SelectLayer(cubies []Cubie, axis Axis, layer int) []Cubie {
	if !axis.Valid() {
		return nil
	}
	var out []Cubie
	for _, c := range cubies {
		p := c.Position
		if InLayer(float64(p[0]), float64(p[1]), float64(p[2]), axis, layer) {
			out = append(out, c)
		}
	}
	return out
}

// InLayer reports whether a possibly interpolated position belongs to the
// given layer once its coordinate on axis is rounded to the nearest integer.
func InLayer(x, y, z float64, axis Axis, layer int) bool {
	var coord float64
	switch axis {
	case AxisX:
		coord = x
	case AxisY:
		coord = y
	case AxisZ:
		coord = z
	default:
		return false
	}
	return int(math.Round(coord)) == layer
}
