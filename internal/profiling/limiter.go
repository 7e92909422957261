package profiling

import "time"

// PausedLimit caps the frame rate while the game is paused; nothing but the
// menu and the video overlay animate.
const PausedLimit = 60

// FrameInterval returns the time budget of one frame, zero when uncapped.
func FrameInterval(limit int, paused bool) time.Duration {
	if paused && (limit <= 0 || limit > PausedLimit) {
		limit = PausedLimit
	}
	if limit <= 0 {
		return 0
	}
	return time.Second / time.Duration(limit)
}

// Limiter paces the render loop. The zero value is ready to use.
type Limiter struct {
	next time.Time
}

// Wait blocks until the next frame is due. It sleeps most of the interval
// and spins for the last 200µs.
func (l *Limiter) Wait(limit int, paused bool) {
	target := FrameInterval(limit, paused)
	if target == 0 {
		l.next = time.Time{}
		return
	}
	l.next = l.schedule(time.Now(), target)

	for remaining := time.Until(l.next); remaining > 0; remaining = time.Until(l.next) {
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
	}
}

// schedule returns the deadline of the frame after the current one. A loop
// that fell more than a frame behind starts over from now.
func (l *Limiter) schedule(now time.Time, target time.Duration) time.Time {
	if l.next.IsZero() || now.Sub(l.next) > target {
		return now.Add(target)
	}
	return l.next.Add(target)
}
