package services

import "sync"

// keyedMutex serializes multi-statement store sequences that share a logical
// key: household resolution per apartment code, payment application per fee
// id. Check-then-insert and read-modify-write are not atomic at the store
// level, so without this two concurrent registrations could both pass the
// occupancy check, and two concurrent payments could drop an update.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use, and returns the
// matching unlock function.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
