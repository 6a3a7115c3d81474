package action

import "sync"

// Guard allows at most one in-flight request per action kind.
// The zero value is ready to use and safe for concurrent use.
type Guard struct {
	mu       sync.Mutex
	inFlight map[Kind]bool
}

// TryAcquire marks kind as in flight. It returns false if it already was.
func (g *Guard) TryAcquire(kind Kind) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.inFlight == nil {
		g.inFlight = make(map[Kind]bool)
	}
	if g.inFlight[kind] {
		return false
	}
	g.inFlight[kind] = true
	return true
}

// Release marks kind as finished
func (g *Guard) Release(kind Kind) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, kind)
}

// Busy reports whether kind has a request in flight
func (g *Guard) Busy(kind Kind) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inFlight[kind]
}
