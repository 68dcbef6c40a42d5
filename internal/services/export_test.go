package services

import "time"

// AgeRevealSessions backdates every open reveal session by d.
func AgeRevealSessions(svc PackService, d time.Duration) {
	ps := svc.(*packService)
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for _, sess := range ps.sessions {
		sess.created = sess.created.Add(-d)
	}
}
