package review

import "sync"

// keyedMutex serializes work per key. Grading the same scheduling row from
// two requests must not interleave; different rows proceed in parallel.
// Mutexes are never reclaimed, which is acceptable at the scale of one
// row per (user, concept, direction) a user is actively studying.
type keyedMutex struct {
	mutexes sync.Map
}

func (k *keyedMutex) lock(key string) func() {
	value, _ := k.mutexes.LoadOrStore(key, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
