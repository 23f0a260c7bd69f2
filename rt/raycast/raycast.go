// Package raycast shades every pixel by casting a ray from the camera, bouncing
// it off mirror spheres until it reaches the sky or the checkerboard floor.
package raycast

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"mirrorball/rt/scene"
	"mirrorball/rt/vecmath"
)

// MaxSteps bounds the bounce loop for rays caught between spheres.
const MaxSteps = 2000

// HitKind tags what a ray struck.
type HitKind uint8

const (
	NoHit HitKind = iota
	Floor
	Sphere
)

// Hit is the nearest intersection found in one bounce step.
type Hit struct {
	Kind HitKind
	// Index is valid for Kind == Sphere.
	Index int
	// Dist is measured in units of the current direction vector.
	Dist float32
}

func (h Hit) String() string {
	switch h.Kind {
	case NoHit:
		return "none"
	case Floor:
		return fmt.Sprintf("floor@%g", h.Dist)
	default:
		return fmt.Sprintf("sphere[%d]@%g", h.Index, h.Dist)
	}
}

// Intersect returns the distance along dir (in units of |dir|) to the near
// surface of sp, or false when the ray misses or the sphere is behind it.
func Intersect(origin, dir vecmath.Vec3, sp *scene.Sphere) (float32, bool) {
	return intersect(origin, dir, vecmath.Dot(dir, dir), sp)
}

func intersect(o, d vecmath.Vec3, dd float32, sp *scene.Sphere) (float32, bool) {
	p := sp.Pos.Sub(o)
	proj := vecmath.Dot(p, d)
	if proj <= 0 {
		return 0, false
	}
	hc := proj * proj / dd
	disc := sp.RadiusSq - vecmath.Dot(p, p) + hc
	if disc <= 0 {
		return 0, false
	}
	return (vecmath.Sqrt(hc) - vecmath.Sqrt(disc)) / vecmath.Sqrt(dd), true
}

// nearest finds the closest surface for the ray. The floor is the default
// candidate whenever the ray descends toward it from above.
func nearest(s *scene.Scene, o, d vecmath.Vec3, dd float32) Hit {
	var h Hit
	if o.Y >= 0 || d.Y <= 0 {
		h.Kind = NoHit
	} else {
		h = Hit{Kind: Floor, Dist: -(o.Y / d.Y)}
	}
	for k := range s.Spheres {
		sc, ok := intersect(o, d, dd, &s.Spheres[k])
		if !ok {
			continue
		}
		if sc < h.Dist || h.Kind == NoHit {
			h = Hit{Kind: Sphere, Index: k, Dist: sc}
		}
	}
	return h
}

// PrimaryRay returns the unnormalized camera ray direction for pixel (j, row).
func PrimaryRay(cam scene.Camera, w, h, j, row int) vecmath.Vec3 {
	scan := h - row
	return vecmath.V3(float32(j-w/2), cam.HeightOffset-float32(scan), float32(w))
}

// TracePixel shades pixel (j, row) of a w×h frame. It reports the number of
// bounce steps taken and false if the ray hit MaxSteps without resolving.
func TracePixel(s *scene.Scene, w, h, j, row int) (scene.Color, int, bool) {
	o := s.Camera.Pos
	d := PrimaryRay(s.Camera, w, h, j, row)
	dd := vecmath.Dot(d, d)

	for step := 1; step <= MaxSteps; step++ {
		hit := nearest(s, o, d, dd)
		if hit.Kind == NoHit {
			return sky(row, h, d.Y, dd), step, true
		}

		d = d.Mul(hit.Dist)
		o = o.Add(d)
		dd *= hit.Dist * hit.Dist

		if hit.Kind == Sphere {
			n := o.Sub(s.Spheres[hit.Index].Pos)
			l := 2 * vecmath.Dot(d, n) / vecmath.Dot(n, n)
			d = d.Sub(n.Mul(l))
			continue
		}
		return floorColor(s, o), step, true
	}
	return 0, MaxSteps, false
}

func sky(row, h int, dy, dd float32) scene.Color {
	k := dy * dy / dd
	// The gradient term is integer division.
	rg := float32(128*row/h) + 128*k
	return scene.RGB(channel(rg), channel(rg), channel(200+55*k))
}

func floorColor(s *scene.Scene, hit vecmath.Vec3) scene.Color {
	base := scene.FloorA
	for k := range s.Spheres {
		sp := &s.Spheres[k]
		u := sp.Pos.X - hit.X
		v := sp.Pos.Z - hit.Z
		if u*u+v*v <= sp.RadiusSq {
			base = scene.ShadowA
			break
		}
	}
	cam := s.Camera
	x2, z2 := vecmath.Rotate2D(hit.X-cam.Pos.X, hit.Z-cam.Pos.Z, -cam.Yaw)
	return scene.Palette[base+Checker(x2+cam.Pos.X, z2+cam.Pos.Z)]
}

// Checker returns 0 or 1: 0 when the rounded coordinates share parity.
func Checker(x, z float32) int {
	if even(x) == even(z) {
		return 0
	}
	return 1
}

func even(v float32) bool {
	return int(math.Round(float64(v)))%2 == 0
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// Renderer sweeps a frame, splitting rows across goroutines.
type Renderer struct {
	// Workers caps concurrent row bands. 0 means runtime.NumCPU().
	Workers int
}

func (r *Renderer) workers() int {
	if r == nil || r.Workers <= 0 {
		return runtime.NumCPU()
	}
	return r.Workers
}

// Render writes every pixel of the w×h frame in pix (row-major, packed RGB).
//
// The scene is copied before the sweep, so callers may mutate s as soon as
// Render returns. Pixels whose ray exceeds MaxSteps keep their previous value.
func (r *Renderer) Render(ctx context.Context, s *scene.Scene, pix []uint32, w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("render: invalid size %dx%d", w, h)
	}
	if len(pix) < w*h {
		return fmt.Errorf("render: buffer holds %d pixels, need %d", len(pix), w*h)
	}
	snap := *s

	n := r.workers()
	if n > h {
		n = h
	}
	band := (h + n - 1) / n

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(n)
	for y0 := 0; y0 < h; y0 += band {
		y0 := y0
		y1 := y0 + band
		if y1 > h {
			y1 = h
		}
		rows := pix[y0*w : y1*w]
		g.Go(func() error {
			return sweep(ctx, &snap, rows, w, h, y0, y1)
		})
	}
	return g.Wait()
}

func sweep(ctx context.Context, s *scene.Scene, rows []uint32, w, h, y0, y1 int) error {
	for row := y0; row < y1; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := rows[(row-y0)*w : (row-y0+1)*w]
		for j := range line {
			c, _, ok := TracePixel(s, w, h, j, row)
			if ok {
				line[j] = uint32(c)
			}
		}
	}
	return nil
}
