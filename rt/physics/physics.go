// Package physics advances the scene by one frame: the scripted sphere bounce,
// the camera pose from input, and the view-dependent sphere positions.
package physics

import (
	"math"

	"mirrorball/rt/scene"
	"mirrorball/rt/vecmath"
)

const (
	gravity       = 0.01
	bounceDivisor = 5
	bounceReset   = -0.2

	yawPerMouse    = 0.01
	heightPerMouse = 6
	minHeightOff   = -600
	maxHeightOff   = 1000

	walkSpeed     = 0.05
	climbSpeed    = 0.03
	cameraCeiling = -0.1
)

// Controls is one frame's input snapshot.
type Controls struct {
	Forward, Back, Left, Right bool
	// Ascend raises camera y (toward the floor); Descend lowers it.
	Ascend, Descend bool
	Quit            bool

	// MouseDX and MouseDY are the relative motion accumulated since the last frame.
	MouseDX, MouseDY float32
}

// ConsumeMouse zeroes the accumulated mouse delta.
func (c *Controls) ConsumeMouse() {
	c.MouseDX = 0
	c.MouseDY = 0
}

// Bounces is a bitmask of spheres that hit the floor this frame.
type Bounces uint8

func (b Bounces) Has(k int) bool { return b&(1<<k) != 0 }

// Step advances s by one frame of length dt (1.0 == 1/60 s) and consumes the
// mouse delta in in.
func Step(s *scene.Scene, in *Controls, dt float32) Bounces {
	b := bounce(s, dt)
	moveCamera(&s.Camera, in, dt)
	in.ConsumeMouse()
	Derive(s)
	return b
}

func bounce(s *scene.Scene, dt float32) Bounces {
	var b Bounces
	for k := range s.Spheres {
		sp := &s.Spheres[k]
		sp.Velocity += gravity * dt / bounceDivisor
		h := sp.Height + sp.Velocity*dt/bounceDivisor
		if -h < sp.Radius {
			sp.Velocity = bounceReset
			h = -sp.Radius
			b |= 1 << k
		}
		sp.Height = h
	}
	return b
}

func moveCamera(c *scene.Camera, in *Controls, dt float32) {
	c.Yaw = vecmath.WrapAngle(c.Yaw + in.MouseDX*yawPerMouse)
	c.HeightOffset = vecmath.Clamp(c.HeightOffset+in.MouseDY*heightPerMouse, minHeightOff, maxHeightOff)

	left, right, fwd, back := b2f(in.Left), b2f(in.Right), b2f(in.Forward), b2f(in.Back)
	goAngle := -(left*90-right*90+fwd*180-180)*(math.Pi/180) - c.Yaw

	// Two or more direction keys cancel out.
	var speed float32
	if left+right+fwd+back == 1 {
		speed = walkSpeed * dt
	}
	c.Pos.X += vecmath.Sin(goAngle) * speed
	c.Pos.Z -= vecmath.Cos(goAngle) * speed

	c.Pos.Y += (b2f(in.Ascend) - b2f(in.Descend)) * climbSpeed * dt
	if c.Pos.Y > cameraCeiling {
		c.Pos.Y = cameraCeiling
	}
}

// Derive recomputes every sphere's view-dependent position from its anchor
// and the camera pose.
func Derive(s *scene.Scene) {
	cam := s.Camera
	for k := range s.Spheres {
		sp := &s.Spheres[k]
		x, z := vecmath.Rotate2D(sp.BaseX-cam.Pos.X, sp.BaseZ-cam.Pos.Z, cam.Yaw)
		sp.Pos = vecmath.V3(x+cam.Pos.X, sp.Height, z+cam.Pos.Z)
	}
}

func b2f(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
