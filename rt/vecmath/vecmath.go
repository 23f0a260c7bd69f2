// Package vecmath holds the small amount of vector math the ray tracer needs.
//
// Everything is float32, matching the precision the scene constants were tuned for.
package vecmath

import "math"

// Vec3 is a 3D vector. Y grows downward: the floor is y=0 and the scene lives at y<0.
type Vec3 struct {
	X, Y, Z float32
}

func V3(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3    { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3    { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func Dot(a, b Vec3) float32 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func Len(v Vec3) float32 { return Sqrt(Dot(v, v)) }

func Normalize(v Vec3) Vec3 {
	l := Len(v)
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

func Sqrt(x float32) float32 { return float32(math.Sqrt(float64(x))) }
func Sin(x float32) float32  { return float32(math.Sin(float64(x))) }
func Cos(x float32) float32  { return float32(math.Cos(float64(x))) }

// Rotate2D rotates (x, y) by ang and then mirrors through the origin.
//
// The result is the same as a rotation by ang+π. Callers invert it with -ang.
func Rotate2D(x, y, ang float32) (float32, float32) {
	c := Cos(ang)
	s := Sin(ang)
	return -(x*c - y*s), -(x*s + y*c)
}

// WrapAngle wraps a into (-π, π].
func WrapAngle(a float32) float32 {
	if a > -math.Pi && a <= math.Pi {
		return a
	}
	w := math.Mod(float64(a)+math.Pi, 2*math.Pi)
	if w <= 0 {
		w += 2 * math.Pi
	}
	r := float32(w - math.Pi)
	// float32 rounding can land exactly on the excluded bound.
	if r <= -math.Pi {
		r = math.Pi
	}
	return r
}

func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
