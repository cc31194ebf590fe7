package game

import "math"

// Integrate advances pos along dir.
func Integrate(pos *Position, dir AutoMover, speed, dt float64) {
	pos.X += dir.DX * speed * dt
	pos.Y += dir.DY * speed * dt
}

// Reflect flips the direction component of every axis on which pos touches or
// crosses a window edge. Both axes may flip in the same call.
func Reflect(pos Position, dir *AutoMover, half float64, w Window) {
	if pos.X-half <= 0 || pos.X+half >= w.Width {
		dir.DX = -dir.DX
	}
	if pos.Y-half <= 0 || pos.Y+half >= w.Height {
		dir.DY = -dir.DY
	}
}

// Steer moves pos by speed*dt for each held direction, one axis at a time, and
// skips any move that would leave [half, size-half]. Diagonals are not normalised.
func Steer(pos *Position, held Direction, speed, dt, half float64, w Window) {
	step := speed * dt
	if held.Has(DirLeft) {
		moveWithin(&pos.X, -step, half, w.Width-half)
	}
	if held.Has(DirRight) {
		moveWithin(&pos.X, step, half, w.Width-half)
	}
	if held.Has(DirUp) {
		moveWithin(&pos.Y, -step, half, w.Height-half)
	}
	if held.Has(DirDown) {
		moveWithin(&pos.Y, step, half, w.Height-half)
	}
}

func moveWithin(v *float64, delta, lo, hi float64) {
	if next := *v + delta; next >= lo && next <= hi {
		*v = next
	}
}

// Confine pulls pos back into [half, size-half] on both axes. When dir is not
// nil, every axis that was clamped gets its direction pointed back inside. A
// window narrower than 2*half centres pos on that axis.
func Confine(pos *Position, dir *AutoMover, half float64, w Window) {
	var dx, dy *float64
	if dir != nil {
		dx, dy = &dir.DX, &dir.DY
	}
	confineAxis(&pos.X, dx, half, w.Width-half)
	confineAxis(&pos.Y, dy, half, w.Height-half)
}

func confineAxis(v, d *float64, lo, hi float64) {
	switch {
	case hi < lo:
		*v = (lo + hi) / 2
	case *v < lo:
		*v = lo
		if d != nil {
			*d = math.Abs(*d)
		}
	case *v > hi:
		*v = hi
		if d != nil {
			*d = -math.Abs(*d)
		}
	}
}

// Distance is the Euclidean distance between two centres.
func Distance(a, b Position) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Touching reports whether two colliders are close enough to collide.
func Touching(a Position, ra float64, b Position, rb float64) bool {
	return Distance(a, b) < (ra+rb)*HitFactor
}

// Apply changes the session for the effect of touching an object of kind k.
// It reports which counters moved.
func Apply(s *Session, k Kind) (scored, hurt bool) {
	switch k.Effect() {
	case EffectScore:
		s.CollectPresent()
		return true, false
	case EffectHurt:
		return false, s.LoseLife()
	}
	return false, false
}

// Evaluate decides whether the session ends this step. Running out of presents
// wins; lives are only checked when they changed this step. A session already
// over is left alone and Playing is returned.
func Evaluate(s *Session, presentsLeft int, livesChanged bool) Outcome {
	if s.Over() {
		return Playing
	}
	switch {
	case presentsLeft == 0:
		s.End(Won)
	case livesChanged && s.Lives == 0:
		s.End(Lost)
	}
	return s.Outcome
}
