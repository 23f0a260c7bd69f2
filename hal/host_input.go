package hal

import "sync"

// hostInput accumulates held controls and cursor motion between Polls.
type hostInput struct {
	mu     sync.Mutex
	held   Control
	dx, dy float32

	lastX, lastY int
	seen         bool
}

func newHostInput() *hostInput {
	return &hostInput{}
}

func (in *hostInput) Poll() InputState {
	in.mu.Lock()
	defer in.mu.Unlock()
	s := InputState{Held: in.held, MouseDX: in.dx, MouseDY: in.dy}
	in.dx, in.dy = 0, 0
	return s
}

// apply records one window tick of input: the held controls and the
// absolute cursor position, turned into relative motion.
func (in *hostInput) apply(held Control, cx, cy int) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.held = held
	if in.seen {
		in.dx += float32(cx - in.lastX)
		in.dy += float32(cy - in.lastY)
	}
	in.lastX, in.lastY = cx, cy
	in.seen = true
}
