package workshop

import "sync"

type lockRef struct {
	sync.Mutex
	refs int
}

// sessionLocks serialises work on one session id within this process.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*lockRef
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*lockRef)}
}

// lock blocks until id is free and returns its unlock function.
func (l *sessionLocks) lock(id string) func() {
	l.mu.Lock()
	ref, ok := l.locks[id]
	if !ok {
		ref = &lockRef{}
		l.locks[id] = ref
	}
	ref.refs++
	l.mu.Unlock()

	ref.Lock()
	return func() {
		ref.Unlock()
		l.mu.Lock()
		ref.refs--
		if ref.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
