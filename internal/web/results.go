package web

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// storedResult holds one serialized merge output until it is downloaded or
// expires. Only the bytes and display metadata are kept; the merged Table
// itself is released as soon as the response is built.
type storedResult struct {
	data      []byte
	delimiter string
	encoding  string
	rows      int
	cols      int
	created   time.Time
}

// resultStore is an in-memory, TTL-evicted store of merge outputs keyed by
// download token.
type resultStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*storedResult
}

func newResultStore(ttl time.Duration) *resultStore {
	rs := &resultStore{
		ttl:     ttl,
		entries: make(map[string]*storedResult),
	}
	go rs.janitor()
	return rs
}

// Put stores a result and returns its download token.
func (rs *resultStore) Put(res *storedResult) string {
	id := uuid.New().String()
	res.created = time.Now()

	rs.mu.Lock()
	rs.entries[id] = res
	rs.mu.Unlock()

	return id
}

// Get returns the result for a token, or false if unknown or expired.
func (rs *resultStore) Get(id string) (*storedResult, bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	res, ok := rs.entries[id]
	if !ok {
		return nil, false
	}
	if time.Since(res.created) > rs.ttl {
		delete(rs.entries, id)
		return nil, false
	}
	return res, true
}

// janitor evicts expired entries every minute.
func (rs *resultStore) janitor() {
	for {
		time.Sleep(time.Minute)
		rs.mu.Lock()
		for id, res := range rs.entries {
			if time.Since(res.created) > rs.ttl {
				delete(rs.entries, id)
			}
		}
		rs.mu.Unlock()
	}
}
