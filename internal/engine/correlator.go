package engine

import (
	"slices"
	"sync"
	"time"
)

// Pending is a request submitted to the vendor that has not yet seen its final response.
type Pending struct {
	RequestID int       `json:"requestId"`
	Op        string    `json:"op"`
	SentAt    time.Time `json:"sentAt"`
	Pages     int       `json:"pages"`
}

// Correlator allocates request ids and matches responses to them. A request
// is complete on its isLast response. Sweep expires requests the vendor
// never answered.
type Correlator struct {
	mu      sync.Mutex
	next    int
	pending map[int]*Pending
	timeout time.Duration
	now     func() time.Time
}

// NewCorrelator creates a correlator expiring requests after timeout.
func NewCorrelator(timeout time.Duration) *Correlator {
	return &Correlator{
		pending: make(map[int]*Pending),
		timeout: timeout,
		now:     time.Now,
	}
}

// Track allocates the next request id and records it as pending under op.
// Ids start at 1 and are never reused within a correlator.
func (c *Correlator) Track(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	c.pending[c.next] = &Pending{RequestID: c.next, Op: op, SentAt: c.now()}
	return c.next
}

// Forget drops a request that was rejected before reaching the vendor.
func (c *Correlator) Forget(requestID int) {
	c.mu.Lock()
	delete(c.pending, requestID)
	c.mu.Unlock()
}

// Observe records one response for requestID. It returns the pending entry
// as of this response and whether the id was known. A last response
// removes the entry.
func (c *Correlator) Observe(requestID int, isLast bool) (Pending, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pending[requestID]
	if !ok {
		return Pending{}, false
	}
	p.Pages++
	if isLast {
		delete(c.pending, requestID)
	}
	return *p, true
}

// Op returns the operation a pending request was submitted under.
func (c *Correlator) Op(requestID int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pending[requestID]
	if !ok {
		return "", false
	}
	return p.Op, true
}

// Sweep removes and returns every request older than the timeout at now.
func (c *Correlator) Sweep(now time.Time) []Pending {
	c.mu.Lock()
	defer c.mu.Unlock()
	var expired []Pending
	for id, p := range c.pending {
		if now.Sub(p.SentAt) >= c.timeout {
			expired = append(expired, *p)
			delete(c.pending, id)
		}
	}
	sortPending(expired)
	return expired
}

// Snapshot returns the pending requests ordered by id.
func (c *Correlator) Snapshot() []Pending {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Pending, 0, len(c.pending))
	for _, p := range c.pending {
		out = append(out, *p)
	}
	sortPending(out)
	return out
}

// Len returns the number of pending requests.
func (c *Correlator) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func sortPending(list []Pending) {
	slices.SortFunc(list, func(a, b Pending) int { return a.RequestID - b.RequestID })
}
