//go:build cgo

package hal

import (
	"errors"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const hostAudioSampleRate = 44100

// hostAudio plays clips through Ebiten's audio package.
type hostAudio struct {
	mu      sync.Mutex
	ctx     *audio.Context
	players []*audio.Player
	vol     float64
}

func newHostAudio(vol uint8) *hostAudio {
	return &hostAudio{vol: float64(vol) / 255.0}
}

func (a *hostAudio) SampleRate() int { return hostAudioSampleRate }

func (a *hostAudio) Play(pcm []int16) error {
	if len(pcm) == 0 {
		return errors.New("host audio: empty clip")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ctx == nil {
		// Ebiten allows a single context per process.
		if a.ctx = audio.CurrentContext(); a.ctx == nil {
			a.ctx = audio.NewContext(hostAudioSampleRate)
		}
	}

	// Drop finished clips.
	live := a.players[:0]
	for _, p := range a.players {
		if p.IsPlaying() {
			live = append(live, p)
			continue
		}
		_ = p.Close()
	}
	a.players = live

	// Ebiten audio expects 16-bit little-endian stereo.
	b := make([]byte, len(pcm)*4)
	for i, s := range pcm {
		j := i * 4
		b[j+0] = byte(s)
		b[j+1] = byte(s >> 8)
		b[j+2] = byte(s)
		b[j+3] = byte(s >> 8)
	}
	p := a.ctx.NewPlayerFromBytes(b)
	p.SetVolume(a.vol)
	p.Play()
	a.players = append(a.players, p)
	return nil
}
