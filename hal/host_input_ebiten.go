//go:build cgo

package hal

import "github.com/hajimehoshi/ebiten/v2"

var controlKeys = []struct {
	key  ebiten.Key
	ctrl Control
}{
	{ebiten.KeyW, ControlForward},
	{ebiten.KeyS, ControlBack},
	{ebiten.KeyA, ControlLeft},
	{ebiten.KeyD, ControlRight},
	// Ascend moves toward the floor (y grows downward).
	{ebiten.KeyControlLeft, ControlAscend},
	{ebiten.KeySpace, ControlDescend},
	{ebiten.KeyEscape, ControlQuit},
}

func (in *hostInput) poll() {
	var held Control
	for _, k := range controlKeys {
		if ebiten.IsKeyPressed(k.key) {
			held |= k.ctrl
		}
	}
	cx, cy := ebiten.CursorPosition()
	in.apply(held, cx, cy)
}
