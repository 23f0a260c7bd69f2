// Package scene holds the fixed six-sphere world and the camera that looks at it.
package scene

import (
	"math"
	"math/rand"

	"mirrorball/rt/vecmath"
)

// Color is a packed 0x00RRGGBB pixel.
type Color uint32

func RGB(r, g, b uint8) Color { return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b)) }

func (c Color) RGB() (r, g, b uint8) { return uint8(c >> 16), uint8(c >> 8), uint8(c) }

// Palette indices. Floor shading picks a pair: {ShadowA, ShadowB} or {FloorA, FloorB}.
const (
	ShadowA = iota
	ShadowB
	FloorA
	FloorB
)

// Palette is the floor color table.
var Palette = [4]Color{
	ShadowA: RGB(120, 65, 45),
	ShadowB: RGB(0, 0, 100),
	FloorA:  RGB(255, 255, 0),
	FloorB:  RGB(0, 0, 200),
}

// NumSpheres is the size of the literal sphere table.
const NumSpheres = 6

// Sphere is one bouncing mirror ball.
type Sphere struct {
	// Base is the horizontal anchor (x, z).
	BaseX, BaseZ float32
	// Height is the current bounce height before rotation.
	Height float32
	// Velocity drives the scripted bounce.
	Velocity float32

	Radius   float32
	RadiusSq float32

	// Pos is Base/Height rotated about the camera. Valid only after physics.Step.
	Pos vecmath.Vec3
}

// Camera is the viewer pose.
type Camera struct {
	Pos vecmath.Vec3
	// Yaw is kept in (-π, π].
	Yaw float32
	// HeightOffset shifts the vertical scan origin, in pixels.
	HeightOffset float32
}

// Scene is the whole mutable world, updated once per frame and read by the sweep.
type Scene struct {
	Spheres [NumSpheres]Sphere
	Camera  Camera
}

type sphereSeed struct {
	x, y, z, r float32
}

var table = [NumSpheres]sphereSeed{
	{-0.3, -0.8, 3, 0.6},
	{0.9, -1.4, 3.5, 0.35},
	{0.7, -0.45, 2.5, 0.4},
	{-0.5, -0.3, 1.5, 0.25},
	{1.0, -0.2, 1.5, 0.2},
	{-0.1, -0.2, 1.25, 0.2},
}

const initialVelocity = 0.1

// New builds the initial scene for a buffer of the given height.
//
// rng scatters the starting bounce heights; nil starts every sphere at its
// table height plus the fixed 0.3 lift.
func New(bufHeight int, rng *rand.Rand) *Scene {
	s := &Scene{}
	for k, d := range table {
		lift := float32(0)
		if rng != nil {
			lift = 2 * rng.Float32()
		}
		s.Spheres[k] = Sphere{
			BaseX:    d.x,
			BaseZ:    d.z,
			Height:   -(d.y + 0.3 + lift),
			Velocity: initialVelocity,
			Radius:   d.r,
			RadiusSq: d.r * d.r,
		}
	}
	s.Camera = Camera{
		Pos:          vecmath.V3(table[0].x, -0.2, -3),
		Yaw:          math.Pi,
		HeightOffset: float32(bufHeight / 4),
	}
	return s
}
