package notify

import (
	"sync"
	"time"
)

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 2400 * time.Millisecond

// Toast is the notification currently on screen.
type Toast struct {
	Notification
	Seq       uint64    `json:"seq"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Board is the toast area: one notification at a time, the newest replacing
// the previous one and restarting the timer.
type Board struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	current *Toast
	seq     uint64
}

// NewBoard creates a Board. A non-positive ttl uses DefaultTTL.
func NewBoard(ttl time.Duration) *Board {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Board{ttl: ttl, now: time.Now}
}

// SetClock replaces the time source.
func (b *Board) SetClock(now func() time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = now
}

// Notify shows n, replacing any visible toast.
func (b *Board) Notify(n Notification) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if n.Time.IsZero() {
		n.Time = now
	}
	b.seq++
	b.current = &Toast{Notification: n, Seq: b.seq, ExpiresAt: now.Add(b.ttl)}
	return nil
}

// Current returns the visible toast, if it has not expired.
func (b *Board) Current() (Toast, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil {
		return Toast{}, false
	}
	if !b.now().Before(b.current.ExpiresAt) {
		b.current = nil
		return Toast{}, false
	}
	return *b.current, true
}
