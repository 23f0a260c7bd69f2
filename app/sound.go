package app

import (
	"errors"
	"math"

	"mirrorball/hal"
	"mirrorball/rt/physics"
	"mirrorball/rt/scene"
)

const (
	clipSeconds = 0.08
	clipDecay   = 40
	clipLevel   = 0.35
	// pitchScale over the radius gives the tone: big spheres thud, small ones ping.
	pitchScale = 110
)

// bounceSound plays a short tone for every sphere that hits the floor.
type bounceSound struct {
	aud   hal.Audio
	log   hal.Logger
	clips [scene.NumSpheres][]int16
	mix   []int32
	off   bool
}

func newBounceSound(aud hal.Audio, log hal.Logger, s *scene.Scene) *bounceSound {
	b := &bounceSound{aud: aud, log: log}
	if aud == nil || aud.SampleRate() <= 0 {
		b.off = true
		return b
	}
	for k := range s.Spheres {
		b.clips[k] = bounceClip(s.Spheres[k].Radius, aud.SampleRate())
	}
	return b
}

// sink mixes the clips of every bouncing sphere into one buffer and plays it.
func (b *bounceSound) sink(mask physics.Bounces, _ *scene.Scene) {
	if b.off {
		return
	}
	pcm := b.mixClips(mask)
	if len(pcm) == 0 {
		return
	}
	if err := b.aud.Play(pcm); err != nil {
		b.off = true
		if !errors.Is(err, hal.ErrNotImplemented) && b.log != nil {
			b.log.WriteLineString("sound disabled: " + err.Error())
		}
	}
}

func (b *bounceSound) mixClips(mask physics.Bounces) []int16 {
	n := 0
	for k := range b.clips {
		if mask.Has(k) && len(b.clips[k]) > n {
			n = len(b.clips[k])
		}
	}
	if n == 0 {
		return nil
	}
	if cap(b.mix) < n {
		b.mix = make([]int32, n)
	}
	mix := b.mix[:n]
	clear(mix)
	for k, clip := range b.clips {
		if !mask.Has(k) {
			continue
		}
		for i, v := range clip {
			mix[i] += int32(v)
		}
	}
	out := make([]int16, n)
	for i, v := range mix {
		out[i] = int16(max(math.MinInt16, min(math.MaxInt16, v)))
	}
	return out
}

// bounceClip synthesizes an exponentially decaying sine whose pitch falls
// with the sphere radius.
func bounceClip(radius float32, rate int) []int16 {
	if rate <= 0 || radius <= 0 {
		return nil
	}
	freq := pitchScale / float64(radius)
	n := int(clipSeconds * float64(rate))
	pcm := make([]int16, n)
	for i := range pcm {
		t := float64(i) / float64(rate)
		v := math.Sin(2*math.Pi*freq*t) * math.Exp(-clipDecay*t) * clipLevel
		pcm[i] = int16(v * math.MaxInt16)
	}
	return pcm
}
