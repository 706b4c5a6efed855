package card

import "sync"

// DefaultRecentSize is how many printed addresses are remembered.
const DefaultRecentSize = 5

// Recent remembers the last few printed addresses, oldest overwritten first.
// It answers "is this card probably still on screen"; it does not know how far
// the band has scrolled since.
type Recent struct {
	mu    sync.Mutex
	addrs []string
	next  int
}

// NewRecent creates a cache of the given size. Sizes below 1 use DefaultRecentSize.
func NewRecent(size int) *Recent {
	if size < 1 {
		size = DefaultRecentSize
	}
	return &Recent{addrs: make([]string, size)}
}

// Add records addr in the oldest slot.
func (r *Recent) Add(addr string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addrs[r.next] = addr
	r.next = (r.next + 1) % len(r.addrs)
}

// Contains reports whether addr is one of the last printed addresses.
func (r *Recent) Contains(addr string) bool {
	if addr == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.addrs {
		if a == addr {
			return true
		}
	}
	return false
}

// Size is the cache capacity.
func (r *Recent) Size() int {
	return len(r.addrs)
}
