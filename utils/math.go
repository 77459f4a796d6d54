package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DegRad = math.Pi / 180.0
	RadDeg = 180.0 / math.Pi
)

func SinDeg(deg float32) float32 {
	return float32(math.Sin(float64(deg) * DegRad))
}

func CosDeg(deg float32) float32 {
	return float32(math.Cos(float64(deg) * DegRad))
}

func Sin(rad float32) float32 {
	return float32(math.Sin(float64(rad)))
}

func Cos(rad float32) float32 {
	return float32(math.Cos(float64(rad)))
}

func Atan2(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

func Sqrt(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

func Abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func Signum(v float32) float32 {
	if v > 0 {
		return 1
	} else if v < 0 {
		return -1
	}
	return 0
}

func Clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func Lerp(from, to, t float32) float32 {
	return from + (to-from)*t
}

// WrapDeg wraps an angle into [-180, 180).
func WrapDeg(deg float32) float32 {
	return deg - float32(16384-int(16384.499999999996-float64(deg)/360))*360
}

func Mod(a, b float32) float32 {
	return float32(math.Mod(float64(a), float64(b)))
}

func IsNaN(v float32) bool {
	return math.IsNaN(float64(v))
}

// BoundsOf returns the min corner and size of the axis-aligned box over points.
func BoundsOf(points []mgl32.Vec2) (min mgl32.Vec2, size mgl32.Vec2) {
	if len(points) == 0 {
		return
	}
	min = points[0]
	max := points[0]
	for _, p := range points[1:] {
		if p[0] < min[0] {
			min[0] = p[0]
		}
		if p[1] < min[1] {
			min[1] = p[1]
		}
		if p[0] > max[0] {
			max[0] = p[0]
		}
		if p[1] > max[1] {
			max[1] = p[1]
		}
	}
	return min, max.Sub(min)
}
