package logic

import "time"

// Pulse is a square wave started on demand and checked each cycle instead of
// sleeping. While requested it is on for On, then off for Off, repeating from
// the moment it was first requested.
type Pulse struct {
	On  time.Duration
	Off time.Duration

	running bool
	start   time.Time
}

// Level reports whether the output is on at now. want starts the wave or
// keeps it going; false stops it immediately.
func (p *Pulse) Level(now time.Time, want bool) bool {
	if !want {
		p.running = false
		return false
	}
	if !p.running {
		p.running = true
		p.start = now
	}
	period := p.On + p.Off
	if period <= 0 {
		return true
	}
	return now.Sub(p.start)%period < p.On
}
